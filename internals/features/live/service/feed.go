package service

import (
	"context"
	"errors"
	"sort"

	helper "ecole_backend/internals/helpers"
	"ecole_backend/internals/helpers/crud"
	"ecole_backend/internals/helpers/form"
	"ecole_backend/internals/realtime"
)

// Frame kinds pushed on a live connection.
const (
	KindSnapshot = "snapshot"
	KindChange   = "change"
	KindToast    = "toast"
	KindRefresh  = "refresh"
)

type Frame struct {
	Kind    string          `json:"kind"`
	Table   string          `json:"table,omitempty"`
	Rows    any             `json:"rows,omitempty"`
	Op      realtime.Op     `json:"op,omitempty"`
	Row     any             `json:"row,omitempty"`
	Key     string          `json:"key,omitempty"`
	Level   form.ToastLevel `json:"level,omitempty"`
	Message string          `json:"message,omitempty"`
	Entity  string          `json:"entity,omitempty"`
	Routes  []string        `json:"routes,omitempty"`
}

// Sender is satisfied by *realtime.Client.
type Sender interface {
	Send(msg any) bool
}

// Feed seeds one live list and keeps it in sync until the returned stop
// func runs.
type Feed interface {
	Open(ctx context.Context, src realtime.Subscriber, out Sender, maxLookups int) (stop func())
}

// Lister is the List method of a crud.Access.
type Lister[T any] func(ctx context.Context, scopes ...crud.Scope) helper.Result[[]T]

type feed[T any] struct {
	list Lister[T]
	cfg  realtime.SyncConfig[T]
}

func NewFeed[T any](list Lister[T], cfg realtime.SyncConfig[T]) Feed {
	return &feed[T]{list: list, cfg: cfg}
}

func (f *feed[T]) Open(ctx context.Context, src realtime.Subscriber, out Sender, maxLookups int) func() {
	res := f.list(ctx)
	if !res.Success {
		out.Send(Frame{Kind: KindToast, Table: f.cfg.Table, Level: form.ToastError, Message: res.Error})
		return nil
	}
	if !out.Send(Frame{Kind: KindSnapshot, Table: f.cfg.Table, Rows: res.Data}) {
		return nil
	}

	cfg := f.cfg
	cfg.MaxLookups = maxLookups
	cfg.OnChange = func(ch realtime.Change[T]) {
		if ch.Op != realtime.OpError {
			fr := Frame{Kind: KindChange, Table: cfg.Table, Op: ch.Op, Key: ch.Key}
			if ch.Row != nil {
				fr.Row = ch.Row
			}
			out.Send(fr)
		}
		if ch.Toast.Message != "" {
			out.Send(Frame{Kind: KindToast, Table: cfg.Table, Level: ch.Toast.Level, Message: ch.Toast.Message})
		}
	}
	return realtime.NewSynchronizer(src, res.Data, cfg).Stop
}

// Relation builds a lookup that loads one foreign row through get and
// stores it with set. A nil id leaves the relation empty.
func Relation[T, R any](get func(ctx context.Context, key ...any) helper.Result[R], id func(*T) *int64, set func(*T, *R)) realtime.Lookup[T] {
	return func(ctx context.Context, row *T) error {
		k := id(row)
		if k == nil {
			return nil
		}
		res := get(ctx, *k)
		if !res.Success {
			return errors.New(res.Error)
		}
		v := res.Data
		set(row, &v)
		return nil
	}
}

// Reload refetches a row announced by key only through get.
func Reload[T any](get func(ctx context.Context, key ...any) helper.Result[T], key func(T) []any) func(context.Context, T) (T, error) {
	return func(ctx context.Context, partial T) (T, error) {
		res := get(ctx, key(partial)...)
		if !res.Success {
			return partial, errors.New(res.Error)
		}
		return res.Data, nil
	}
}

// Feeds maps a table name to its live feed.
type Feeds struct {
	Src        realtime.Subscriber
	MaxLookups int

	byTable map[string]Feed
}

func NewFeeds(src realtime.Subscriber, maxLookups int) *Feeds {
	if maxLookups <= 0 {
		maxLookups = realtime.DefaultMaxLookups
	}
	return &Feeds{Src: src, MaxLookups: maxLookups, byTable: map[string]Feed{}}
}

func (fs *Feeds) Register(table string, f Feed) *Feeds {
	fs.byTable[table] = f
	return fs
}

func (fs *Feeds) Lookup(table string) (Feed, bool) {
	f, ok := fs.byTable[table]
	return f, ok
}

func (fs *Feeds) Tables() []string {
	out := make([]string, 0, len(fs.byTable))
	for t := range fs.byTable {
		out = append(out, t)
	}
	sort.Strings(out)
	return out
}

// Open runs f for one connection.
func (fs *Feeds) Open(ctx context.Context, f Feed, out Sender) func() {
	return f.Open(ctx, fs.Src, out, fs.MaxLookups)
}

// Broadcaster is satisfied by *realtime.Hub.
type Broadcaster interface {
	Broadcast(topic string, msg any) int
}

// RelayInvalidations returns a revalidate listener that tells every live
// client which routes went stale.
func RelayInvalidations(hub Broadcaster) func(entity string, routes []string) {
	return func(entity string, routes []string) {
		hub.Broadcast("", Frame{Kind: KindRefresh, Entity: entity, Routes: routes})
	}
}
