package realtime

import (
	"context"
	"errors"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ecole_backend/internals/helpers/form"
)

type parentRef struct {
	ID      int64  `json:"idparent"`
	NomPere string `json:"nompere"`
}

type pupil struct {
	ID       int64      `json:"ideleve"`
	Nom      string     `json:"nom"`
	IDParent *int64     `json:"idparent"`
	Parent   *parentRef `json:"parent,omitempty"`
}

type fakeSub struct {
	mu       sync.Mutex
	handlers map[string]Handler
	cancels  int
}

func (f *fakeSub) Subscribe(table string, fn Handler) func() {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.handlers == nil {
		f.handlers = map[string]Handler{}
	}
	f.handlers[table] = fn
	return func() {
		f.mu.Lock()
		f.cancels++
		delete(f.handlers, table)
		f.mu.Unlock()
	}
}

func (f *fakeSub) emit(table string, ev ChangeEvent) {
	f.mu.Lock()
	h := f.handlers[table]
	f.mu.Unlock()
	if h != nil {
		h(ev)
	}
}

func pupilKey(p pupil) string { return strconv.FormatInt(p.ID, 10) }

func next(t *testing.T, ch <-chan Change[pupil]) Change[pupil] {
	t.Helper()
	select {
	case c := <-ch:
		return c
	case <-time.After(2 * time.Second):
		t.Fatal("no change received")
		return Change[pupil]{}
	}
}

func newPupilSync(sub *fakeSub, seed []pupil, lookups ...Lookup[pupil]) (*Synchronizer[pupil], chan Change[pupil]) {
	ch := make(chan Change[pupil], 8)
	s := NewSynchronizer(sub, seed, SyncConfig[pupil]{
		Table:    "eleve",
		Key:      pupilKey,
		Lookups:  lookups,
		Messages: Messages{Inserted: "Élève ajouté", Updated: "Élève mis à jour", Deleted: "Élève supprimé"},
		OnChange: func(c Change[pupil]) { ch <- c },
	})
	return s, ch
}

func TestParseEvent(t *testing.T) {
	ev, err := ParseEvent(`{"type":"INSERT","table":"eleve","record":{"ideleve":1},"old_record":null}`)
	require.NoError(t, err)
	assert.Equal(t, OpInsert, ev.Type)
	assert.JSONEq(t, `{"ideleve":1}`, string(ev.Record))

	ev, err = ParseEvent(`{"type":"UPDATE","table":"notification","truncated":true,"record":{"idnotification":4},"old_record":{"idnotification":4}}`)
	require.NoError(t, err)
	assert.True(t, ev.Truncated)

	_, err = ParseEvent(`{"type":"TRUNCATE","table":"eleve"}`)
	assert.Error(t, err)
	_, err = ParseEvent(`{"type":"INSERT"}`)
	assert.Error(t, err)
	_, err = ParseEvent(`nope`)
	assert.Error(t, err)
}

type countingInvalidator struct{ tables []string }

func (c *countingInvalidator) Invalidate(entity string) []string {
	c.tables = append(c.tables, entity)
	return nil
}

func TestListenerDispatch(t *testing.T) {
	inv := &countingInvalidator{}
	l := NewListener("", "table_changes", inv)

	var got []Op
	cancel := l.Subscribe("eleve", func(ev ChangeEvent) { got = append(got, ev.Type) })
	l.Subscribe("classe", func(ev ChangeEvent) { got = append(got, "classe:"+ev.Type) })

	l.Dispatch(ChangeEvent{Type: OpInsert, Table: "eleve"})
	l.Dispatch(errorEvent("", errors.New("down")))
	cancel()
	l.Dispatch(ChangeEvent{Type: OpDelete, Table: "eleve"})

	assert.Contains(t, got, OpInsert)
	assert.Contains(t, got, OpError)
	assert.Contains(t, got, Op("classe:ERROR"))
	assert.NotContains(t, got, OpDelete)
	assert.Equal(t, []string{"eleve", "eleve"}, inv.tables)
}

func TestSynchronizerInsertIsEnriched(t *testing.T) {
	sub := &fakeSub{}
	lookup := func(ctx context.Context, p *pupil) error {
		if p.IDParent == nil {
			return nil
		}
		p.Parent = &parentRef{ID: *p.IDParent, NomPere: "Kabila"}
		return nil
	}
	s, ch := newPupilSync(sub, []pupil{{ID: 1, Nom: "Amani"}}, lookup)
	defer s.Stop()

	sub.emit("eleve", ChangeEvent{Type: OpInsert, Table: "eleve", Record: []byte(`{"ideleve":2,"nom":"Bora","idparent":7}`)})
	c := next(t, ch)

	assert.Equal(t, OpInsert, c.Op)
	assert.Equal(t, form.ToastSuccess, c.Toast.Level)
	require.NotNil(t, c.Row.Parent)
	assert.Equal(t, "Kabila", c.Row.Parent.NomPere)

	rows := s.Rows()
	require.Len(t, rows, 2)
	assert.Equal(t, int64(2), rows[0].ID)
	require.NotNil(t, rows[0].Parent)
}

func TestSynchronizerLookupFailureLeavesRelationNil(t *testing.T) {
	sub := &fakeSub{}
	failing := func(ctx context.Context, p *pupil) error { return errors.New("timeout") }
	s, ch := newPupilSync(sub, nil, failing)
	defer s.Stop()

	sub.emit("eleve", ChangeEvent{Type: OpInsert, Record: []byte(`{"ideleve":3,"nom":"Chiku","idparent":1}`)})
	c := next(t, ch)
	assert.Nil(t, c.Row.Parent)
	assert.Len(t, s.Rows(), 1)
}

func TestSynchronizerUpdateAndDelete(t *testing.T) {
	sub := &fakeSub{}
	s, ch := newPupilSync(sub, []pupil{{ID: 1, Nom: "Amani"}, {ID: 2, Nom: "Bora"}})
	defer s.Stop()

	sub.emit("eleve", ChangeEvent{Type: OpUpdate, Record: []byte(`{"ideleve":2,"nom":"Bora Z"}`)})
	c := next(t, ch)
	assert.Equal(t, form.ToastInfo, c.Toast.Level)
	assert.Equal(t, "Bora Z", s.Rows()[1].Nom)

	sub.emit("eleve", ChangeEvent{Type: OpDelete, OldRecord: []byte(`{"ideleve":1}`)})
	c = next(t, ch)
	assert.Equal(t, "1", c.Key)
	assert.Equal(t, form.ToastWarning, c.Toast.Level)
	rows := s.Rows()
	require.Len(t, rows, 1)
	assert.Equal(t, int64(2), rows[0].ID)
}

func TestSynchronizerReloadsTruncatedRows(t *testing.T) {
	sub := &fakeSub{}
	ch := make(chan Change[pupil], 8)
	var reloaded []int64
	s := NewSynchronizer(sub, []pupil{{ID: 1, Nom: "Amani"}}, SyncConfig[pupil]{
		Table: "eleve",
		Key:   pupilKey,
		Reload: func(ctx context.Context, p pupil) (pupil, error) {
			reloaded = append(reloaded, p.ID)
			if p.ID == 404 {
				return p, errors.New("Élève non trouvé.")
			}
			return pupil{ID: p.ID, Nom: "Amani Kabongo"}, nil
		},
		OnChange: func(c Change[pupil]) { ch <- c },
	})
	defer s.Stop()

	sub.emit("eleve", ChangeEvent{Type: OpUpdate, Truncated: true, Record: []byte(`{"ideleve":1}`)})
	c := next(t, ch)
	assert.Equal(t, "Amani Kabongo", c.Row.Nom)
	assert.Equal(t, "Amani Kabongo", s.Rows()[0].Nom)

	// a failed reload drops the event; a full record skips the reload
	sub.emit("eleve", ChangeEvent{Type: OpInsert, Truncated: true, Record: []byte(`{"ideleve":404}`)})
	sub.emit("eleve", ChangeEvent{Type: OpInsert, Record: []byte(`{"ideleve":2,"nom":"Bora"}`)})
	c = next(t, ch)
	assert.Equal(t, "2", c.Key)
	assert.Len(t, s.Rows(), 2)
	assert.Equal(t, []int64{1, 404}, reloaded)
}

func TestSynchronizerErrorEventToasts(t *testing.T) {
	sub := &fakeSub{}
	s, ch := newPupilSync(sub, nil)
	defer s.Stop()

	sub.emit("eleve", errorEvent("", errors.New("connection refused")))
	c := next(t, ch)
	assert.Equal(t, form.ToastError, c.Toast.Level)
	assert.Contains(t, c.Toast.Message, "connection refused")
}

func TestSynchronizerStopDropsLateResults(t *testing.T) {
	sub := &fakeSub{}
	release := make(chan struct{})
	started := make(chan struct{})
	slow := func(ctx context.Context, p *pupil) error {
		close(started)
		<-release
		return nil
	}
	s, ch := newPupilSync(sub, nil, slow)

	sub.emit("eleve", ChangeEvent{Type: OpInsert, Record: []byte(`{"ideleve":9,"nom":"Late"}`)})
	<-started

	stopped := make(chan struct{})
	go func() { s.Stop(); close(stopped) }()
	require.Eventually(t, func() bool { return s.stopped.Load() }, time.Second, 5*time.Millisecond)
	close(release)
	<-stopped

	assert.Empty(t, s.Rows())
	assert.Len(t, ch, 0)
	assert.Equal(t, 1, sub.cancels)

	// no-op after stop
	sub.emit("eleve", ChangeEvent{Type: OpInsert, Record: []byte(`{"ideleve":10}`)})
	assert.Empty(t, s.Rows())
}

type fakeWriter struct {
	mu     sync.Mutex
	frames [][]byte
	closed bool
}

func (w *fakeWriter) WriteMessage(_ int, data []byte) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if data != nil {
		w.frames = append(w.frames, data)
	}
	return nil
}
func (w *fakeWriter) SetWriteDeadline(time.Time) error { return nil }
func (w *fakeWriter) Close() error {
	w.mu.Lock()
	w.closed = true
	w.mu.Unlock()
	return nil
}

func TestHubBroadcastByTopic(t *testing.T) {
	h := NewHub()
	a, b := newClient("eleve"), newClient("classe")
	h.register(a)
	h.register(b)

	assert.Equal(t, 1, h.Broadcast("eleve", map[string]string{"kind": "toast"}))
	assert.Equal(t, 2, h.Broadcast("", map[string]string{"kind": "refresh"}))
	assert.Len(t, a.send, 2)
	assert.Len(t, b.send, 1)

	h.unregister(a)
	assert.Equal(t, 0, h.Count("eleve"))
	assert.False(t, a.Send("late"))
}

func TestClientWritePumpAndSlowClient(t *testing.T) {
	c := newClient("eleve")
	w := &fakeWriter{}
	go c.writePump(w)

	require.True(t, c.Send(map[string]string{"kind": "snapshot"}))
	require.Eventually(t, func() bool {
		w.mu.Lock()
		defer w.mu.Unlock()
		return len(w.frames) == 1
	}, time.Second, 5*time.Millisecond)

	c.Close()
	require.Eventually(t, func() bool {
		w.mu.Lock()
		defer w.mu.Unlock()
		return w.closed
	}, time.Second, 5*time.Millisecond)

	slow := newClient("eleve")
	for i := 0; i < sendBuffer; i++ {
		require.True(t, slow.Send(i))
	}
	assert.False(t, slow.Send("overflow"))
	select {
	case <-slow.Done():
	default:
		t.Fatal("slow client should be closed")
	}
}
