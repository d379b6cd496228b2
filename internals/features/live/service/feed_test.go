package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	classModel "ecole_backend/internals/features/academics/classes/model"
	classService "ecole_backend/internals/features/academics/classes/service"
	optionModel "ecole_backend/internals/features/academics/options/model"
	optionService "ecole_backend/internals/features/academics/options/service"
	"ecole_backend/internals/helpers/form"
	"ecole_backend/internals/helpers/testdb"
	"ecole_backend/internals/realtime"
	"ecole_backend/internals/revalidate"
)

type inbox struct {
	frames chan Frame
}

func newInbox() *inbox { return &inbox{frames: make(chan Frame, 16)} }

func (b *inbox) Send(msg any) bool {
	b.frames <- msg.(Frame)
	return true
}

func (b *inbox) next(t *testing.T) Frame {
	t.Helper()
	select {
	case f := <-b.frames:
		return f
	case <-time.After(2 * time.Second):
		t.Fatal("no frame received")
		return Frame{}
	}
}

func classFeeds(t *testing.T) (*Feeds, *realtime.Listener, *optionService.OptionService) {
	db := testdb.Open(t, &optionModel.OptionModel{}, &classModel.ClassModel{})
	options := optionService.NewOptionService(db, nil)
	classes := classService.NewClassService(db, nil)

	ctx := context.Background()
	opt := options.Create(ctx, &optionModel.OptionModel{NomOption: "Scientifique", Abreviation: "SC"})
	require.True(t, opt.Success, opt.Error)
	cl := classes.Create(ctx, &classModel.ClassModel{NomClasse: "1ère", IDOption: opt.Data.IDOption})
	require.True(t, cl.Success, cl.Error)

	l := realtime.NewListener("", "table_changes", nil)
	feeds := NewFeeds(l, 0)
	feeds.Register(revalidate.EntityClass, NewFeed[classModel.ClassModel](classes.List,
		realtime.SyncConfig[classModel.ClassModel]{
			Table:  revalidate.EntityClass,
			Key:    func(m classModel.ClassModel) string { return id(m.IDClasse) },
			Reload: Reload(classes.Get, func(m classModel.ClassModel) []any { return []any{m.IDClasse} }),
			Lookups: []realtime.Lookup[classModel.ClassModel]{
				Relation(options.Get,
					func(m *classModel.ClassModel) *int64 { return &m.IDOption },
					func(m *classModel.ClassModel, o *optionModel.OptionModel) { m.Option = o }),
			},
			Messages: messages("Classe", true),
		}))
	return feeds, l, options
}

func TestOpenSendsSnapshotThenChanges(t *testing.T) {
	feeds, l, _ := classFeeds(t)
	f, ok := feeds.Lookup(revalidate.EntityClass)
	require.True(t, ok)

	out := newInbox()
	stop := feeds.Open(context.Background(), f, out)
	require.NotNil(t, stop)
	defer stop()

	snap := out.next(t)
	assert.Equal(t, KindSnapshot, snap.Kind)
	rows := snap.Rows.([]classModel.ClassModel)
	require.Len(t, rows, 1)
	require.NotNil(t, rows[0].Option)

	l.Dispatch(realtime.ChangeEvent{
		Type:   realtime.OpInsert,
		Table:  revalidate.EntityClass,
		Record: []byte(`{"idclasse":9,"nomclasse":"2ème","idoption":1}`),
	})

	change := out.next(t)
	assert.Equal(t, KindChange, change.Kind)
	assert.Equal(t, realtime.OpInsert, change.Op)
	assert.Equal(t, "9", change.Key)
	row := change.Row.(*classModel.ClassModel)
	require.NotNil(t, row.Option)
	assert.Equal(t, "SC", row.Option.Abreviation)

	toast := out.next(t)
	assert.Equal(t, KindToast, toast.Kind)
	assert.Equal(t, form.ToastSuccess, toast.Level)
	assert.Equal(t, "Classe ajoutée", toast.Message)

	l.Dispatch(realtime.ChangeEvent{
		Type:      realtime.OpDelete,
		Table:     revalidate.EntityClass,
		OldRecord: []byte(`{"idclasse":9}`),
	})
	del := out.next(t)
	assert.Equal(t, realtime.OpDelete, del.Op)
	assert.Nil(t, del.Row)
	assert.Equal(t, "Classe supprimée", out.next(t).Message)
}

func TestTruncatedChangeIsReloaded(t *testing.T) {
	feeds, l, options := classFeeds(t)
	f, _ := feeds.Lookup(revalidate.EntityClass)
	out := newInbox()
	stop := feeds.Open(context.Background(), f, out)
	require.NotNil(t, stop)
	defer stop()

	rows := out.next(t).Rows.([]classModel.ClassModel)
	require.Len(t, rows, 1)
	classID := rows[0].IDClasse

	require.NoError(t, options.DB().Model(&classModel.ClassModel{}).
		Where("idclasse = ?", classID).Update("nomclasse", "1ère B").Error)

	l.Dispatch(realtime.ChangeEvent{
		Type:      realtime.OpUpdate,
		Table:     revalidate.EntityClass,
		Truncated: true,
		Record:    []byte(`{"idclasse":` + id(classID) + `}`),
	})

	change := out.next(t)
	assert.Equal(t, realtime.OpUpdate, change.Op)
	row := change.Row.(*classModel.ClassModel)
	assert.Equal(t, "1ère B", row.NomClasse)
	require.NotNil(t, row.Option)
	assert.Equal(t, "SC", row.Option.Abreviation)
	assert.Equal(t, "Classe mise à jour", out.next(t).Message)
}

func TestConnectionErrorIsOnlyAToast(t *testing.T) {
	feeds, l, _ := classFeeds(t)
	f, _ := feeds.Lookup(revalidate.EntityClass)
	out := newInbox()
	stop := feeds.Open(context.Background(), f, out)
	defer stop()
	out.next(t)

	l.Dispatch(realtime.ChangeEvent{Type: realtime.OpError, Table: revalidate.EntityClass})
	fr := out.next(t)
	assert.Equal(t, KindToast, fr.Kind)
	assert.Equal(t, form.ToastError, fr.Level)
}

func TestOpenReportsSeedFailure(t *testing.T) {
	feeds, _, options := classFeeds(t)
	sqlDB, err := options.DB().DB()
	require.NoError(t, err)
	require.NoError(t, sqlDB.Close())

	f, _ := feeds.Lookup(revalidate.EntityClass)
	out := newInbox()
	assert.Nil(t, feeds.Open(context.Background(), f, out))
	fr := out.next(t)
	assert.Equal(t, KindToast, fr.Kind)
	assert.Contains(t, fr.Message, "Erreur lors de la récupération")
}

type recorder struct {
	mu   sync.Mutex
	msgs []any
}

func (r *recorder) Broadcast(topic string, msg any) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.msgs = append(r.msgs, msg)
	return 1
}

func TestRelayInvalidationsSendsRefresh(t *testing.T) {
	reg := revalidate.NewRegistry(nil)
	hub := &recorder{}
	reg.OnInvalidate(RelayInvalidations(hub))

	reg.Invalidate(revalidate.EntityFee)

	require.Len(t, hub.msgs, 1)
	fr := hub.msgs[0].(Frame)
	assert.Equal(t, KindRefresh, fr.Kind)
	assert.Equal(t, revalidate.EntityFee, fr.Entity)
	assert.Contains(t, fr.Routes, revalidate.RouteFees)
}

func TestFeedsTablesSorted(t *testing.T) {
	fs := NewFeeds(nil, 0)
	fs.Register("paiement", nil).Register("classe", nil)
	assert.Equal(t, []string{"classe", "paiement"}, fs.Tables())
	assert.Equal(t, realtime.DefaultMaxLookups, fs.MaxLookups)
}
