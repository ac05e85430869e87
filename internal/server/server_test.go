package server

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/resume-builder/internal/db"
	"github.com/jonathan/resume-builder/internal/server/middleware"
	"github.com/jonathan/resume-builder/internal/server/ratelimit"
	"github.com/jonathan/resume-builder/internal/session"
	"github.com/jonathan/resume-builder/internal/settings"
	"github.com/jonathan/resume-builder/internal/types"
)

// fakeStore is an in-memory ResumeStore and settings.Remote.
type fakeStore struct {
	mu        sync.Mutex
	resumes   map[string]map[string]*types.ResumeData
	settings  map[string]types.UserSettings
	saveErr   error
	saveCalls int
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		resumes:  make(map[string]map[string]*types.ResumeData),
		settings: make(map[string]types.UserSettings),
	}
}

func (f *fakeStore) seed(owner string, data *types.ResumeData) string {
	f.mu.Lock()
	defer f.mu.Unlock()
	id := uuid.NewString()
	if f.resumes[owner] == nil {
		f.resumes[owner] = make(map[string]*types.ResumeData)
	}
	cp := data.Clone()
	f.resumes[owner][id] = &cp
	return id
}

func (f *fakeStore) get(owner, id string) (types.ResumeData, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	d, ok := f.resumes[owner][id]
	if !ok {
		return types.ResumeData{}, false
	}
	return d.Clone(), true
}

func (f *fakeStore) Load(_ context.Context, owner, id string) (*types.ResumeData, error) {
	d, ok := f.get(owner, id)
	if !ok {
		return nil, session.ErrNotFound
	}
	return &d, nil
}

func (f *fakeStore) Save(_ context.Context, owner, id string, data *types.ResumeData) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.saveCalls++
	if f.saveErr != nil {
		return f.saveErr
	}
	if _, ok := f.resumes[owner][id]; !ok {
		return session.ErrNotFound
	}
	cp := data.Clone()
	f.resumes[owner][id] = &cp
	return nil
}

func (f *fakeStore) SaveTemplate(_ context.Context, owner, id string, name types.TemplateName) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	d, ok := f.resumes[owner][id]
	if !ok {
		return session.ErrNotFound
	}
	d.Template = name
	return nil
}

func (f *fakeStore) Create(_ context.Context, owner string, data *types.ResumeData) (*db.Resume, error) {
	id := f.seed(owner, data)
	now := time.Now()
	return &db.Resume{
		ID:        uuid.MustParse(id),
		Owner:     owner,
		Document:  data.Clone(),
		Template:  data.Template,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

func (f *fakeStore) List(_ context.Context, owner string) ([]types.ResumeSummary, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []types.ResumeSummary
	for id, d := range f.resumes[owner] {
		out = append(out, types.ResumeSummary{ID: id, FullName: d.PersonalDetails.FullName, Template: d.Template})
	}
	return out, nil
}

func (f *fakeStore) Delete(_ context.Context, owner, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.resumes[owner][id]; !ok {
		return session.ErrNotFound
	}
	delete(f.resumes[owner], id)
	return nil
}

func (f *fakeStore) GetSettings(_ context.Context, owner string) (*types.UserSettings, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	s, ok := f.settings[owner]
	if !ok {
		return nil, nil
	}
	return &s, nil
}

func (f *fakeStore) PutSettings(_ context.Context, owner string, s types.UserSettings) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.settings[owner] = s
	return nil
}

const testOwner = "user-1"

type testServer struct {
	*Server
	store *fakeStore
	token string
}

func newTestServer(t *testing.T, opts ...func(*Deps)) *testServer {
	t.Helper()
	store := newFakeStore()
	identity := newTestIdentity("")
	token, err := identity.IssueToken(testOwner, "Ada")
	require.NoError(t, err)

	deps := Deps{
		Store:     store,
		Settings:  settings.NewService(store, nil),
		Auth:      middleware.AuthMiddleware(identity.AsTokenValidator()),
		RateLimit: &ratelimit.Config{Enabled: false},
		Sessions:  session.Config{SaveTimeout: time.Second, AccentDelay: 10 * time.Millisecond},
		IdleAfter: time.Hour,
	}
	for _, opt := range opts {
		opt(&deps)
	}
	s := NewWithDeps(deps)
	t.Cleanup(s.Close)
	return &testServer{Server: s, store: store, token: token}
}

func (ts *testServer) do(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		reader = strings.NewReader(b)
	default:
		raw, err := json.Marshal(b)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Authorization", "Bearer "+ts.token)
	w := httptest.NewRecorder()
	ts.Handler().ServeHTTP(w, req)
	return w
}

type snapshotBody struct {
	ID       string             `json:"id"`
	State    string             `json:"state"`
	Revision uint64             `json:"revision"`
	Template types.TemplateName `json:"template"`
	Data     types.ResumeData   `json:"data"`
	Pending  string             `json:"pendingAccent"`
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out
}

func sampleResume() *types.ResumeData {
	return &types.ResumeData{
		PersonalDetails: types.PersonalDetails{FullName: "Ada Lovelace", Email: "ada@example.com"},
		JobTitle:        "Engineer",
		Objective:       "Build **analytical** engines",
		WorkExperience: []types.WorkExperience{
			{JobTitle: "Analyst", CompanyName: "Babbage & Co", Description: "- Wrote notes"},
		},
		Skills: []types.Skill{types.NewGroupedSkill("Math", "Algebra, Calculus")},
		Presentation: types.Presentation{
			Template: types.TemplateMinimal,
		},
	}
}

func TestHealthEndpoint(t *testing.T) {
	ts := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()
	ts.Handler().ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	resp := decode[map[string]any](t, w)
	assert.Equal(t, "ok", resp["status"])
}

func TestAuthRequired(t *testing.T) {
	ts := newTestServer(t)

	for _, path := range []string{"/resumes", "/settings", "/resumes/x/session"} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		w := httptest.NewRecorder()
		ts.Handler().ServeHTTP(w, req)
		assert.Equal(t, http.StatusUnauthorized, w.Code, path)
	}
}

func TestResumeLifecycle(t *testing.T) {
	ts := newTestServer(t)

	w := ts.do(t, http.MethodPost, "/resumes", types.CreateResumeRequest{Resume: *sampleResume()})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	created := decode[types.ResumeSummary](t, w)
	assert.Equal(t, "Ada Lovelace", created.FullName)
	assert.Equal(t, types.TemplateMinimal, created.Template)

	w = ts.do(t, http.MethodGet, "/resumes", nil)
	require.Equal(t, http.StatusOK, w.Code)
	list := decode[struct {
		Resumes []types.ResumeSummary `json:"resumes"`
		Count   int                   `json:"count"`
	}](t, w)
	assert.Equal(t, 1, list.Count)

	w = ts.do(t, http.MethodGet, "/resumes/"+created.ID, nil)
	require.Equal(t, http.StatusOK, w.Code)
	got := decode[ResumeResponse](t, w)
	assert.Equal(t, "Engineer", got.Resume.JobTitle)
	assert.Equal(t, types.TemplateMinimal, got.Template)

	w = ts.do(t, http.MethodDelete, "/resumes/"+created.ID, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Zero(t, ts.sessions.Len())

	w = ts.do(t, http.MethodGet, "/resumes/"+created.ID, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCreateResume_Validation(t *testing.T) {
	ts := newTestServer(t)

	w := ts.do(t, http.MethodPost, "/resumes", `{"resume":{},"template":"fancy"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = ts.do(t, http.MethodPost, "/resumes", `{not json`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreateResume_UsesDefaultTemplate(t *testing.T) {
	ts := newTestServer(t)
	require.NoError(t, ts.store.PutSettings(context.Background(), testOwner, types.UserSettings{DefaultTemplate: types.TemplateProfessional}))

	data := sampleResume()
	data.Template = ""
	w := ts.do(t, http.MethodPost, "/resumes", types.CreateResumeRequest{Resume: *data})
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, types.TemplateProfessional, decode[types.ResumeSummary](t, w).Template)
}

func TestOtherOwnersResumeIsNotFound(t *testing.T) {
	ts := newTestServer(t)
	id := ts.store.seed("someone-else", sampleResume())

	w := ts.do(t, http.MethodGet, "/resumes/"+id, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestEditAndSave(t *testing.T) {
	ts := newTestServer(t)
	id := ts.store.seed(testOwner, sampleResume())
	base := "/resumes/" + id + "/session"

	w := ts.do(t, http.MethodPost, base+"/edit", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "editing", decode[snapshotBody](t, w).State)

	w = ts.do(t, http.MethodPatch, base+"/fields", types.PatchFieldsRequest{Patches: []types.FieldPatch{
		{Section: types.FieldGroupPersonalDetails, Field: "fullName", Value: "Augusta Ada King"},
		{Section: string(types.SectionWorkExperience), Index: types.At(0), Field: "companyName", Value: "Analytical Engines"},
	}})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	snap := decode[snapshotBody](t, w)
	assert.Equal(t, "Augusta Ada King", snap.Data.PersonalDetails.FullName)

	// The committed value is untouched until save.
	w = ts.do(t, http.MethodGet, "/resumes/"+id, nil)
	assert.Equal(t, "Ada Lovelace", decode[ResumeResponse](t, w).Resume.PersonalDetails.FullName)

	w = ts.do(t, http.MethodPost, base+"/save", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "viewing", decode[snapshotBody](t, w).State)

	stored, ok := ts.store.get(testOwner, id)
	require.True(t, ok)
	assert.Equal(t, "Augusta Ada King", stored.PersonalDetails.FullName)
	assert.Equal(t, "Analytical Engines", stored.WorkExperience[0].CompanyName)
}

func TestEditAndCancel(t *testing.T) {
	ts := newTestServer(t)
	id := ts.store.seed(testOwner, sampleResume())
	base := "/resumes/" + id + "/session"

	require.Equal(t, http.StatusOK, ts.do(t, http.MethodPost, base+"/edit", nil).Code)
	w := ts.do(t, http.MethodPatch, base+"/fields", types.PatchFieldsRequest{Patches: []types.FieldPatch{
		{Section: string(types.SectionObjective), Field: "objective", Value: "changed"},
	}})
	require.Equal(t, http.StatusOK, w.Code)

	w = ts.do(t, http.MethodPost, base+"/cancel", nil)
	require.Equal(t, http.StatusOK, w.Code)
	snap := decode[snapshotBody](t, w)
	assert.Equal(t, "viewing", snap.State)
	assert.Equal(t, "Build **analytical** engines", snap.Data.Objective)
	assert.Zero(t, ts.store.saveCalls)
}

func TestSessionErrors(t *testing.T) {
	ts := newTestServer(t)
	id := ts.store.seed(testOwner, sampleResume())
	base := "/resumes/" + id + "/session"
	patch := types.PatchFieldsRequest{Patches: []types.FieldPatch{
		{Section: string(types.SectionObjective), Field: "objective", Value: "x"},
	}}

	assert.Equal(t, http.StatusConflict, ts.do(t, http.MethodPatch, base+"/fields", patch).Code, "patch while viewing")
	assert.Equal(t, http.StatusConflict, ts.do(t, http.MethodPost, base+"/save", nil).Code, "save while viewing")

	require.Equal(t, http.StatusOK, ts.do(t, http.MethodPost, base+"/edit", nil).Code)
	assert.Equal(t, http.StatusConflict, ts.do(t, http.MethodPost, base+"/edit", nil).Code, "double edit")

	bad := types.PatchFieldsRequest{Patches: []types.FieldPatch{
		{Section: string(types.SectionObjective), Field: "objective", Value: "applied?"},
		{Section: string(types.SectionWorkExperience), Index: types.At(9), Field: "jobTitle", Value: "x"},
	}}
	assert.Equal(t, http.StatusBadRequest, ts.do(t, http.MethodPatch, base+"/fields", bad).Code)
	snap := decode[snapshotBody](t, ts.do(t, http.MethodGet, base, nil))
	assert.Equal(t, "Build **analytical** engines", snap.Data.Objective, "batch is atomic")

	assert.Equal(t, http.StatusBadRequest, ts.do(t, http.MethodPatch, base+"/fields", `{"patches":[]}`).Code)
	assert.Equal(t, http.StatusNotFound, ts.do(t, http.MethodPost, "/resumes/missing/session/edit", nil).Code)
}

func TestSaveFailureKeepsDraft(t *testing.T) {
	ts := newTestServer(t)
	id := ts.store.seed(testOwner, sampleResume())
	base := "/resumes/" + id + "/session"
	ts.store.saveErr = errors.New("connection reset")

	require.Equal(t, http.StatusOK, ts.do(t, http.MethodPost, base+"/edit", nil).Code)
	require.Equal(t, http.StatusOK, ts.do(t, http.MethodPatch, base+"/fields", types.PatchFieldsRequest{Patches: []types.FieldPatch{
		{Section: types.FieldGroupJobTitle, Field: types.FieldGroupJobTitle, Value: "Architect"},
	}}).Code)

	w := ts.do(t, http.MethodPost, base+"/save", nil)
	assert.Equal(t, http.StatusBadGateway, w.Code)

	snap := decode[snapshotBody](t, ts.do(t, http.MethodGet, base, nil))
	assert.Equal(t, "editing", snap.State)
	assert.Equal(t, "Architect", snap.Data.JobTitle)

	ts.store.saveErr = nil
	w = ts.do(t, http.MethodPost, base+"/save", nil)
	assert.Equal(t, http.StatusOK, w.Code, "retry succeeds")
}

func TestPresentationAndMove(t *testing.T) {
	ts := newTestServer(t)
	id := ts.store.seed(testOwner, sampleResume())
	base := "/resumes/" + id + "/session"

	red := "#ff0000"
	hide := false
	req := types.PresentationRequest{AccentColor: &red, ShowIcons: &hide}
	assert.Equal(t, http.StatusConflict, ts.do(t, http.MethodPut, base+"/presentation", req).Code)

	require.Equal(t, http.StatusOK, ts.do(t, http.MethodPost, base+"/edit", nil).Code)
	w := ts.do(t, http.MethodPut, base+"/presentation", req)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	snap := decode[snapshotBody](t, w)
	assert.Equal(t, red, snap.Pending, "accent is queued, not applied")
	assert.False(t, snap.Data.IconsVisible())
	assert.Eventually(t, func() bool {
		snap := decode[snapshotBody](t, ts.do(t, http.MethodGet, base, nil))
		return snap.Data.AccentColor == red && snap.Pending == ""
	}, time.Second, 5*time.Millisecond)

	w = ts.do(t, http.MethodPut, base+"/presentation", `{"accentColor":"red"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	w = ts.do(t, http.MethodPut, base+"/presentation", `{"sectionOrder":["hobbies"]}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = ts.do(t, http.MethodPost, base+"/sections/move", types.MoveSectionRequest{From: 0, To: 2})
	require.Equal(t, http.StatusOK, w.Code)
	order := decode[snapshotBody](t, w).Data.Order()
	assert.Equal(t, []types.SectionToken{
		types.SectionWorkExperience, types.SectionProjects, types.SectionObjective,
	}, order[:3])
}

func TestPresentationAccentBurstCoalesces(t *testing.T) {
	const window = 200 * time.Millisecond
	ts := newTestServer(t, func(d *Deps) { d.Sessions.AccentDelay = window })
	id := ts.store.seed(testOwner, sampleResume())
	base := "/resumes/" + id + "/session"

	require.Equal(t, http.StatusOK, ts.do(t, http.MethodPost, base+"/edit", nil).Code)
	sess, ok := ts.sessions.Get(testOwner, id)
	require.True(t, ok)
	events, unsubscribe := sess.Subscribe()
	defer unsubscribe()

	colors := []string{
		"#100000", "#200000", "#300000", "#400000", "#500000",
		"#600000", "#700000", "#800000", "#900000", "#a00000",
	}
	for _, c := range colors {
		w := ts.do(t, http.MethodPut, base+"/presentation", types.PresentationRequest{AccentColor: &c})
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		snap := decode[snapshotBody](t, w)
		assert.Equal(t, c, snap.Pending)
		assert.Empty(t, snap.Data.AccentColor)
	}
	assert.Empty(t, events, "no change is published inside the debounce window")

	last := colors[len(colors)-1]
	select {
	case ev := <-events:
		assert.Equal(t, session.EventChanged, ev.Type)
	case <-time.After(5 * window):
		t.Fatal("debounced accent was never applied")
	}
	assert.Equal(t, last, sess.Snapshot().Data.AccentColor)

	select {
	case ev := <-events:
		t.Fatalf("unexpected second event %+v", ev)
	case <-time.After(2 * window):
	}

	snap := decode[snapshotBody](t, ts.do(t, http.MethodGet, base, nil))
	assert.Equal(t, last, snap.Data.AccentColor)
	assert.Empty(t, snap.Pending)
}

func TestSelectTemplate(t *testing.T) {
	ts := newTestServer(t)
	id := ts.store.seed(testOwner, sampleResume())
	path := "/resumes/" + id + "/template"

	w := ts.do(t, http.MethodPut, path, types.SelectTemplateRequest{Template: types.TemplateCreative})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, types.TemplateCreative, decode[snapshotBody](t, w).Template)
	stored, _ := ts.store.get(testOwner, id)
	assert.Equal(t, types.TemplateCreative, stored.Template)

	assert.Equal(t, http.StatusBadRequest, ts.do(t, http.MethodPut, path, `{"template":"fancy"}`).Code)

	require.Equal(t, http.StatusOK, ts.do(t, http.MethodPost, "/resumes/"+id+"/session/edit", nil).Code)
	assert.Equal(t, http.StatusConflict, ts.do(t, http.MethodPut, path, types.SelectTemplateRequest{Template: types.TemplateModern}).Code)
}

func TestViewResume(t *testing.T) {
	ts := newTestServer(t)
	id := ts.store.seed(testOwner, sampleResume())
	path := "/resumes/" + id + "/view"

	w := ts.do(t, http.MethodGet, path, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "text/html")
	doc, err := goquery.NewDocumentFromReader(w.Body)
	require.NoError(t, err)
	assert.Equal(t, "minimal", doc.Find("main").AttrOr("data-template", ""))
	assert.Equal(t, "Ada Lovelace", doc.Find("title").Text())

	w = ts.do(t, http.MethodGet, path+"?template=creative", nil)
	require.Equal(t, http.StatusOK, w.Code)
	doc, err = goquery.NewDocumentFromReader(w.Body)
	require.NoError(t, err)
	assert.Equal(t, "creative", doc.Find("main").AttrOr("data-template", ""))
	stored, _ := ts.store.get(testOwner, id)
	assert.Equal(t, types.TemplateMinimal, stored.Template, "preview override is not stored")

	w = ts.do(t, http.MethodGet, path+"?format=json", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "document", decode[map[string]any](t, w)["kind"])

	assert.Equal(t, http.StatusBadRequest, ts.do(t, http.MethodGet, path+"?template=fancy", nil).Code)
	assert.Equal(t, http.StatusBadRequest, ts.do(t, http.MethodGet, path+"?format=pdf", nil).Code)
}

func TestExportResume(t *testing.T) {
	ts := newTestServer(t)
	id := ts.store.seed(testOwner, sampleResume())
	path := "/resumes/" + id + "/export"

	w := ts.do(t, http.MethodGet, path+"?format=text", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Contains(t, w.Header().Get("Content-Type"), "text/plain")
	assert.Contains(t, w.Header().Get("Content-Disposition"), "Ada Lovelace's Resume.txt")
	assert.Contains(t, w.Body.String(), "Ada Lovelace")

	w = ts.do(t, http.MethodGet, path+"?format=latex", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `\begin{document}`)

	assert.Equal(t, http.StatusBadRequest, ts.do(t, http.MethodGet, path+"?format=pdf", nil).Code)
}

func TestExportIncludesDraft(t *testing.T) {
	ts := newTestServer(t)
	id := ts.store.seed(testOwner, sampleResume())

	require.Equal(t, http.StatusOK, ts.do(t, http.MethodPost, "/resumes/"+id+"/session/edit", nil).Code)
	require.Equal(t, http.StatusOK, ts.do(t, http.MethodPatch, "/resumes/"+id+"/session/fields", types.PatchFieldsRequest{
		Patches: []types.FieldPatch{{Section: types.FieldGroupJobTitle, Field: types.FieldGroupJobTitle, Value: "Draft Title"}},
	}).Code)

	w := ts.do(t, http.MethodGet, "/resumes/"+id+"/export?format=text", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Draft Title")
}

func TestSettingsEndpoints(t *testing.T) {
	ts := newTestServer(t)

	w := ts.do(t, http.MethodGet, "/settings", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, types.DefaultTemplate, decode[types.UserSettings](t, w).DefaultTemplate)

	w = ts.do(t, http.MethodPut, "/settings", types.UserSettings{DisplayName: "Ada", DefaultTemplate: types.TemplateMinimal})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = ts.do(t, http.MethodGet, "/settings", nil)
	got := decode[types.UserSettings](t, w)
	assert.Equal(t, "Ada", got.DisplayName)
	assert.Equal(t, types.TemplateMinimal, got.DefaultTemplate)

	w = ts.do(t, http.MethodPut, "/settings", `{"defaultTemplate":"fancy"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestPresentAnalysis(t *testing.T) {
	ts := newTestServer(t)
	body := "```json\n" + `{
		"currentScore": 61, "potentialScore": 84,
		"keywords": ["go"],
		"suggestions": [
			{"suggestion": "Add Go", "originalText": "MISSING", "improvedText": "Built services in Go", "category": "keyword"},
			{"suggestion": "Quantify", "originalText": "Wrote notes", "improvedText": "Wrote 40 pages of notes", "category": "text"}
		]
	}` + "\n```"

	w := ts.do(t, http.MethodPost, "/analysis/present", body)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	report := decode[struct {
		CurrentScore float64 `json:"currentScore"`
		Groups       []struct {
			Category string `json:"category"`
			Cards    []struct {
				OriginalLabel string `json:"originalLabel"`
				OriginalText  string `json:"originalText"`
				CopyOriginal  bool   `json:"copyOriginal"`
			} `json:"cards"`
		} `json:"groups"`
	}](t, w)
	assert.Equal(t, 61.0, report.CurrentScore)

	var sawMissing bool
	for _, g := range report.Groups {
		for _, c := range g.Cards {
			assert.NotEqual(t, types.MissingSentinel, c.OriginalText)
			if c.OriginalLabel == "Missing from Resume" {
				sawMissing = true
				assert.False(t, c.CopyOriginal)
			}
		}
	}
	assert.True(t, sawMissing)

	assert.Equal(t, http.StatusBadRequest, ts.do(t, http.MethodPost, "/analysis/present", "").Code)
	assert.Equal(t, http.StatusBadRequest, ts.do(t, http.MethodPost, "/analysis/present", "{oops").Code)
}

func TestSessionEvents(t *testing.T) {
	ts := newTestServer(t)
	id := ts.store.seed(testOwner, sampleResume())

	srv := httptest.NewServer(ts.Handler())
	defer srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, srv.URL+"/resumes/"+id+"/session/events", nil)
	require.NoError(t, err)
	req.Header.Set("Authorization", "Bearer "+ts.token)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "text/event-stream", resp.Header.Get("Content-Type"))

	scanner := bufio.NewScanner(resp.Body)
	scanner.Buffer(make([]byte, 0, 64*1024), 1<<20)
	next := func() (string, PreviewEvent) {
		t.Helper()
		var event string
		for scanner.Scan() {
			line := scanner.Text()
			switch {
			case strings.HasPrefix(line, "event: "):
				event = strings.TrimPrefix(line, "event: ")
			case strings.HasPrefix(line, "data: "):
				var ev PreviewEvent
				require.NoError(t, json.Unmarshal([]byte(strings.TrimPrefix(line, "data: ")), &ev))
				return event, ev
			}
		}
		t.Fatalf("stream ended: %v", scanner.Err())
		return "", PreviewEvent{}
	}

	name, ev := next()
	assert.Equal(t, "snapshot", name)
	assert.Contains(t, ev.HTML, "Ada Lovelace")

	editReq, err := http.NewRequest(http.MethodPost, srv.URL+"/resumes/"+id+"/session/edit", nil)
	require.NoError(t, err)
	editReq.Header.Set("Authorization", "Bearer "+ts.token)
	editResp, err := http.DefaultClient.Do(editReq)
	require.NoError(t, err)
	editResp.Body.Close()
	require.Equal(t, http.StatusOK, editResp.StatusCode)

	name, ev = next()
	assert.Equal(t, "changed", name)
	assert.Equal(t, session.Editing, ev.State)
	assert.Contains(t, ev.HTML, "<textarea", "editing preview carries controls")

	ts.sessions.Close(testOwner, id)
	name, _ = next()
	assert.Equal(t, "closed", name)
}

func TestRateLimitMiddleware(t *testing.T) {
	ts := newTestServer(t, func(d *Deps) {
		d.RateLimit = &ratelimit.Config{Enabled: true, DefaultLimit: 2, DefaultWindow: time.Minute}
	})

	for i := 0; i < 2; i++ {
		w := ts.do(t, http.MethodGet, "/resumes", nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "2", w.Header().Get("X-RateLimit-Limit"))
	}

	w := ts.do(t, http.MethodGet, "/resumes", nil)
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.NotEmpty(t, w.Header().Get("Retry-After"))
	assert.Equal(t, "rate_limit_exceeded", decode[map[string]any](t, w)["error"])

	health := httptest.NewRecorder()
	ts.Handler().ServeHTTP(health, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, health.Code, "health is never limited")
}

func TestCORS(t *testing.T) {
	ts := newTestServer(t, func(d *Deps) {
		d.Origins = []string{"https://app.example.com"}
	})

	req := httptest.NewRequest(http.MethodOptions, "/resumes", nil)
	req.Header.Set("Origin", "https://app.example.com")
	w := httptest.NewRecorder()
	ts.Handler().ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "https://app.example.com", w.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodOptions, "/resumes", nil)
	req.Header.Set("Origin", "https://evil.example.com")
	w = httptest.NewRecorder()
	ts.Handler().ServeHTTP(w, req)
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
}
