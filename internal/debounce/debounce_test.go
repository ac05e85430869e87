package debounce

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recorder struct {
	mu   sync.Mutex
	got  []string
	done chan struct{}
}

func newRecorder() *recorder {
	return &recorder{done: make(chan struct{}, 16)}
}

func (r *recorder) record(v string) {
	r.mu.Lock()
	r.got = append(r.got, v)
	r.mu.Unlock()
	r.done <- struct{}{}
}

func (r *recorder) values() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.got...)
}

func TestDebouncer_TrailingValueWins(t *testing.T) {
	r := newRecorder()
	d := New(20*time.Millisecond, r.record)

	d.Push("#111111")
	d.Push("#222222")
	d.Push("#333333")

	select {
	case <-r.done:
	case <-time.After(time.Second):
		t.Fatal("debounced call never happened")
	}
	assert.Equal(t, []string{"#333333"}, r.values())
	assert.False(t, d.Pending())
}

func TestDebouncer_Flush(t *testing.T) {
	r := newRecorder()
	d := New(time.Hour, r.record)

	assert.False(t, d.Flush(), "nothing pending")

	d.Push("a")
	d.Push("b")
	require.True(t, d.Pending())
	assert.True(t, d.Flush())
	assert.Equal(t, []string{"b"}, r.values())
	assert.False(t, d.Flush(), "flushed value is delivered once")
}

func TestDebouncer_PeekDoesNotDeliver(t *testing.T) {
	r := newRecorder()
	d := New(time.Hour, r.record)

	_, ok := d.Peek()
	assert.False(t, ok)

	d.Push("a")
	d.Push("b")
	v, ok := d.Peek()
	require.True(t, ok)
	assert.Equal(t, "b", v)
	assert.Empty(t, r.values())
	assert.True(t, d.Pending())

	require.True(t, d.Flush())
	_, ok = d.Peek()
	assert.False(t, ok)
}

func TestDebouncer_Stop(t *testing.T) {
	r := newRecorder()
	d := New(10*time.Millisecond, r.record)

	d.Push("a")
	d.Stop()
	d.Push("b")

	time.Sleep(50 * time.Millisecond)
	assert.Empty(t, r.values())
	assert.False(t, d.Pending())
}

func TestNew_DefaultDelay(t *testing.T) {
	d := New(0, func(int) {})
	assert.Equal(t, DefaultDelay, d.delay)
}
