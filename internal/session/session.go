// Package session implements the edit loop for one resume: a committed value
// that mirrors the store, a working draft while editing, and the
// transitions between them.
package session

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/jonathan/resume-builder/internal/debounce"
	"github.com/jonathan/resume-builder/internal/export"
	"github.com/jonathan/resume-builder/internal/sections"
	"github.com/jonathan/resume-builder/internal/templates"
	"github.com/jonathan/resume-builder/internal/types"
	"github.com/jonathan/resume-builder/internal/view"
)

// State is the edit state of a session
type State int

// Session states
const (
	Viewing State = iota
	Editing
)

func (s State) String() string {
	if s == Editing {
		return "editing"
	}
	return "viewing"
}

// MarshalText writes the state name.
func (s State) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText parses a state name.
func (s *State) UnmarshalText(text []byte) error {
	switch string(text) {
	case "viewing":
		*s = Viewing
	case "editing":
		*s = Editing
	default:
		return fmt.Errorf("unknown session state: %q", text)
	}
	return nil
}

// Config tunes session timing
type Config struct {
	SaveTimeout time.Duration
	AccentDelay time.Duration
	// Export options applied by Export, e.g. a custom LaTeX template.
	Export export.Options
}

// DefaultConfig returns the timing used by the server.
func DefaultConfig() Config {
	return Config{
		SaveTimeout: 10 * time.Second,
		AccentDelay: debounce.DefaultDelay,
	}
}

// EventType names a session change
type EventType string

// Event types
const (
	EventChanged   EventType = "changed"
	EventSaved     EventType = "saved"
	EventCancelled EventType = "cancelled"
	EventClosed    EventType = "closed"
)

// Event is sent to subscribers after every change
type Event struct {
	Type     EventType `json:"type"`
	State    State     `json:"state"`
	Revision uint64    `json:"revision"`
}

// Snapshot is a consistent copy of the session for display
type Snapshot struct {
	ID       string             `json:"id"`
	State    State              `json:"state"`
	Saving   bool               `json:"saving"`
	Revision uint64             `json:"revision"`
	Template types.TemplateName `json:"template"`
	Data     types.ResumeData   `json:"data"`
	// PendingAccent is an accent colour accepted but not yet applied to Data.
	PendingAccent string `json:"pendingAccent,omitempty"`
}

// Session holds the committed value and, while editing, the working draft.
// It is safe for concurrent use.
type Session struct {
	owner string
	id    string
	cfg   Config

	gateway Gateway
	prefs   Preferences
	accent  *debounce.Debouncer[string]

	mu        sync.Mutex
	state     State
	committed types.ResumeData
	draft     types.ResumeData
	saving    bool
	closed    bool
	revision  uint64
	lastUsed  time.Time
	subs      map[int]chan Event
	nextSub   int
}

// New creates a viewing session over data. Gateway and prefs are used for
// persistence; prefs may be nil.
func New(owner, id string, data *types.ResumeData, gateway Gateway, prefs Preferences, cfg Config) *Session {
	if cfg.SaveTimeout <= 0 {
		cfg.SaveTimeout = DefaultConfig().SaveTimeout
	}
	s := &Session{
		owner:     owner,
		id:        id,
		cfg:       cfg,
		gateway:   gateway,
		prefs:     prefs,
		committed: data.Clone(),
		lastUsed:  time.Now(),
		subs:      make(map[int]chan Event),
	}
	if !s.committed.Template.Valid() {
		s.committed.Template = types.DefaultTemplate
	}
	s.accent = debounce.New(cfg.AccentDelay, s.applyAccent)
	return s
}

// ID returns the resume ID.
func (s *Session) ID() string { return s.id }

// Owner returns the owning user.
func (s *Session) Owner() string { return s.owner }

// State returns the current state.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

func (s *Session) touch() {
	s.lastUsed = time.Now()
}

// displayed is the value shown to the user. Caller holds mu.
func (s *Session) displayed() *types.ResumeData {
	if s.state == Editing {
		return &s.draft
	}
	return &s.committed
}

// Displayed returns a copy of the value currently shown: the draft while
// editing, otherwise the committed value.
func (s *Session) Displayed() types.ResumeData {
	s.accent.Flush()
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.displayed().Clone()
}

// Committed returns a copy of the last saved value.
func (s *Session) Committed() types.ResumeData {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.committed.Clone()
}

// Snapshot returns the displayed value with its state. A queued accent
// colour is reported in PendingAccent and left to the debouncer.
func (s *Session) Snapshot() Snapshot {
	pending, _ := s.accent.Peek()
	s.mu.Lock()
	defer s.mu.Unlock()
	d := s.displayed()
	snap := Snapshot{
		ID:       s.id,
		State:    s.state,
		Saving:   s.saving,
		Revision: s.revision,
		Template: d.Template,
		Data:     d.Clone(),
	}
	if s.state == Editing {
		snap.PendingAccent = pending
	}
	return snap
}

// Begin starts editing with a deep copy of the committed value.
func (s *Session) Begin() error {
	s.mu.Lock()
	if err := s.usable(); err != nil {
		s.mu.Unlock()
		return err
	}
	if s.state == Editing {
		s.mu.Unlock()
		return ErrAlreadyEditing
	}
	s.draft = s.committed.Clone()
	s.state = Editing
	s.revision++
	s.touch()
	ev := s.eventLocked(EventChanged)
	s.mu.Unlock()
	s.publish(ev)
	return nil
}

func (s *Session) usable() error {
	if s.closed {
		return ErrClosed
	}
	return nil
}

// edit runs fn against the draft under the lock and publishes a change.
func (s *Session) edit(fn func(d *types.ResumeData) error) error {
	s.mu.Lock()
	if err := s.usable(); err != nil {
		s.mu.Unlock()
		return err
	}
	if s.state != Editing {
		s.mu.Unlock()
		return ErrNotEditing
	}
	if err := fn(&s.draft); err != nil {
		s.mu.Unlock()
		return err
	}
	s.revision++
	s.touch()
	ev := s.eventLocked(EventChanged)
	s.mu.Unlock()
	s.publish(ev)
	return nil
}

// Apply writes one field patch into the draft.
func (s *Session) Apply(p types.FieldPatch) error {
	return s.edit(func(d *types.ResumeData) error { return d.Apply(p) })
}

// ApplyAll writes a batch of patches. Either every patch applies or the
// draft is left unchanged and the first failure is returned.
func (s *Session) ApplyAll(patches []types.FieldPatch) error {
	return s.edit(func(d *types.ResumeData) error {
		next := d.Clone()
		for _, p := range patches {
			if err := next.Apply(p); err != nil {
				return err
			}
		}
		*d = next
		return nil
	})
}

// SetFont sets the draft font family.
func (s *Session) SetFont(font string) error {
	return s.edit(func(d *types.ResumeData) error {
		d.FontFamily = font
		return nil
	})
}

// SetShowIcons sets the draft icon preference.
func (s *Session) SetShowIcons(show bool) error {
	return s.edit(func(d *types.ResumeData) error {
		d.SetIcons(show)
		return nil
	})
}

// SetSectionOrder replaces the draft section order. Sections left out of
// order are hidden.
func (s *Session) SetSectionOrder(order []types.SectionToken) error {
	cp := append([]types.SectionToken(nil), order...)
	return s.edit(func(d *types.ResumeData) error {
		d.SectionOrder = cp
		return nil
	})
}

// MoveSection moves a section within the draft order.
func (s *Session) MoveSection(from, to int) error {
	return s.edit(func(d *types.ResumeData) error {
		d.SectionOrder = sections.Move(d.Order(), from, to)
		return nil
	})
}

// SetAccentColor queues an accent colour change. Bursts are coalesced and
// the last value applies after the debounce delay, or sooner when the draft
// is copied out, saved, cancelled or exported. Snapshots and rendered views
// do not apply it.
func (s *Session) SetAccentColor(color string) error {
	hex, ok := templates.NormalizeHex(color)
	if !ok {
		return fmt.Errorf("%w: accent color %q", ErrInvalidValue, color)
	}
	s.mu.Lock()
	err := s.usable()
	if err == nil && s.state != Editing {
		err = ErrNotEditing
	}
	s.mu.Unlock()
	if err != nil {
		return err
	}
	s.accent.Push(hex)
	return nil
}

func (s *Session) applyAccent(hex string) {
	err := s.edit(func(d *types.ResumeData) error {
		d.AccentColor = hex
		return nil
	})
	if err != nil {
		log.Printf("[session] dropped accent color for %s: %v", s.id, err)
	}
}

// Save persists the full draft. On success the saved snapshot becomes the
// committed value and the session returns to viewing, unless the draft
// changed while the save was in flight. On failure the draft is untouched.
func (s *Session) Save(ctx context.Context) error {
	s.accent.Flush()

	s.mu.Lock()
	if err := s.usable(); err != nil {
		s.mu.Unlock()
		return err
	}
	if s.state != Editing {
		s.mu.Unlock()
		return ErrNotEditing
	}
	if s.saving {
		s.mu.Unlock()
		return ErrBusy
	}
	s.saving = true
	snapshot := s.draft.Clone()
	rev := s.revision
	s.touch()
	s.mu.Unlock()

	saveCtx, cancel := context.WithTimeout(ctx, s.cfg.SaveTimeout)
	defer cancel()
	err := s.gateway.Save(saveCtx, s.owner, s.id, &snapshot)

	s.mu.Lock()
	s.saving = false
	if err != nil {
		s.mu.Unlock()
		log.Printf("[session] save failed for %s: %v", s.id, err)
		return &SaveError{Message: "failed to persist resume", Cause: err}
	}
	s.committed = snapshot
	if s.state == Editing && s.revision == rev {
		s.state = Viewing
		s.draft = types.ResumeData{}
	}
	s.revision++
	ev := s.eventLocked(EventSaved)
	s.mu.Unlock()

	s.remember(ctx, snapshot.Template)
	s.publish(ev)
	return nil
}

func (s *Session) remember(ctx context.Context, name types.TemplateName) {
	if s.prefs == nil {
		return
	}
	if err := s.prefs.RememberTemplate(ctx, s.owner, name); err != nil {
		log.Printf("[session] failed to remember template for %s: %v", s.owner, err)
	}
}

// Cancel discards the draft and shows the committed value again.
func (s *Session) Cancel() error {
	s.accent.Flush()

	s.mu.Lock()
	if err := s.usable(); err != nil {
		s.mu.Unlock()
		return err
	}
	if s.state != Editing {
		s.mu.Unlock()
		return ErrNotEditing
	}
	s.draft = types.ResumeData{}
	s.state = Viewing
	s.revision++
	s.touch()
	ev := s.eventLocked(EventCancelled)
	s.mu.Unlock()
	s.publish(ev)
	return nil
}

// SelectTemplate changes the template of the committed value and persists
// the choice. It is refused while editing.
func (s *Session) SelectTemplate(ctx context.Context, name types.TemplateName) error {
	if !name.Valid() {
		return fmt.Errorf("unknown template: %q", name)
	}

	s.mu.Lock()
	if err := s.usable(); err != nil {
		s.mu.Unlock()
		return err
	}
	if s.state == Editing {
		s.mu.Unlock()
		return ErrTemplateLocked
	}
	s.mu.Unlock()

	saveCtx, cancel := context.WithTimeout(ctx, s.cfg.SaveTimeout)
	defer cancel()
	if err := s.gateway.SaveTemplate(saveCtx, s.owner, s.id, name); err != nil {
		return &SaveError{Message: "failed to persist template", Cause: err}
	}

	s.mu.Lock()
	if s.state == Editing {
		// Begin won the race. The store already holds name, so the
		// committed value follows it and the draft keeps its own template.
		s.committed.Template = name
		s.touch()
		s.mu.Unlock()
		s.remember(ctx, name)
		return nil
	}
	s.committed.Template = name
	s.revision++
	s.touch()
	ev := s.eventLocked(EventChanged)
	s.mu.Unlock()

	s.remember(ctx, name)
	s.publish(ev)
	return nil
}

// Export renders the displayed value, draft included, in the given format.
// It never changes the session.
func (s *Session) Export(ctx context.Context, format export.Format) (*export.Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data := s.Displayed()
	return export.ExportWithOptions(&data, data.Template, format, s.cfg.Export)
}

// View renders the displayed value with its template. While editing, edits
// made through the tree's controls are applied to the draft.
func (s *Session) View() *view.Node {
	return s.Render("")
}

// Render is View with a template override for previews. An empty name
// uses the displayed value's template; the override is never stored.
func (s *Session) Render(name types.TemplateName) *view.Node {
	s.mu.Lock()
	editing := s.state == Editing
	data := s.displayed().Clone()
	s.mu.Unlock()

	var onPatch view.PatchFunc
	if editing {
		onPatch = func(p types.FieldPatch) {
			if err := s.Apply(p); err != nil {
				log.Printf("[session] dropped patch for %s: %v", s.id, err)
			}
		}
	}
	if name == "" {
		name = data.Template
	}
	return templates.Resolve(name).Render(&data, templates.OptionsFor(data.Presentation, editing), onPatch)
}

// Subscribe returns a channel of change events and a function that ends
// the subscription. Slow subscribers miss events rather than block edits.
func (s *Session) Subscribe() (<-chan Event, func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	ch := make(chan Event, 8)
	if s.closed {
		close(ch)
		return ch, func() {}
	}
	id := s.nextSub
	s.nextSub++
	s.subs[id] = ch
	var once sync.Once
	return ch, func() {
		once.Do(func() {
			s.mu.Lock()
			defer s.mu.Unlock()
			if c, ok := s.subs[id]; ok {
				delete(s.subs, id)
				close(c)
			}
		})
	}
}

func (s *Session) eventLocked(t EventType) Event {
	return Event{Type: t, State: s.state, Revision: s.revision}
}

func (s *Session) publish(ev Event) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, ch := range s.subs {
		select {
		case ch <- ev:
		default:
		}
	}
}

// Close stops the accent debouncer and ends all subscriptions.
func (s *Session) Close() {
	s.accent.Stop()
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.closed = true
	for id, ch := range s.subs {
		select {
		case ch <- Event{Type: EventClosed, State: s.state, Revision: s.revision}:
		default:
		}
		close(ch)
		delete(s.subs, id)
	}
}

// idleSince reports when the session was last used and whether it holds
// work that must not be discarded: an open draft or a save in flight.
func (s *Session) idleSince() (time.Time, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastUsed, s.saving || s.state == Editing
}
