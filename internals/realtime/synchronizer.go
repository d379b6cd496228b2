package realtime

import (
	"context"
	"log"
	"sync"
	"sync/atomic"

	"github.com/bytedance/sonic"
	"golang.org/x/sync/errgroup"

	"ecole_backend/internals/helpers/form"
)

const DefaultMaxLookups = 3

// Subscriber is satisfied by *Listener.
type Subscriber interface {
	Subscribe(table string, fn Handler) func()
}

// Lookup fills one relation of row. On error the synchronizer leaves the
// relation as the lookup left it (nil) and keeps going.
type Lookup[T any] func(ctx context.Context, row *T) error

type Change[T any] struct {
	Op    Op         `json:"op"`
	Row   *T         `json:"row,omitempty"`
	Key   string     `json:"key,omitempty"`
	Toast form.Toast `json:"toast"`
}

type Messages struct {
	Inserted string
	Updated  string
	Deleted  string
}

type SyncConfig[T any] struct {
	Table      string
	Key        func(T) string
	Lookups    []Lookup[T]
	// Reload fetches the full row for a truncated event from its key
	// columns. Without it the partial row is used as is.
	Reload     func(ctx context.Context, partial T) (T, error)
	MaxLookups int
	Messages   Messages
	// OnChange receives every applied change, in event order.
	OnChange func(Change[T])
}

// Synchronizer keeps a list of rows in step with the table's change
// events. Events are applied one at a time on a private goroutine; lookups
// inside one event run in parallel.
type Synchronizer[T any] struct {
	cfg SyncConfig[T]

	mu   sync.RWMutex
	rows []T

	events      chan ChangeEvent
	stopped     atomic.Bool
	ctx         context.Context
	cancel      context.CancelFunc
	unsubscribe func()
	done        chan struct{}
}

func NewSynchronizer[T any](src Subscriber, seed []T, cfg SyncConfig[T]) *Synchronizer[T] {
	if cfg.MaxLookups <= 0 {
		cfg.MaxLookups = DefaultMaxLookups
	}
	ctx, cancel := context.WithCancel(context.Background())
	s := &Synchronizer[T]{
		cfg:    cfg,
		rows:   append([]T(nil), seed...),
		events: make(chan ChangeEvent, 64),
		ctx:    ctx,
		cancel: cancel,
		done:   make(chan struct{}),
	}
	go s.loop()
	s.unsubscribe = src.Subscribe(cfg.Table, s.enqueue)
	return s
}

func (s *Synchronizer[T]) enqueue(ev ChangeEvent) {
	if s.stopped.Load() {
		return
	}
	select {
	case s.events <- ev:
	case <-s.ctx.Done():
	}
}

func (s *Synchronizer[T]) loop() {
	defer close(s.done)
	for {
		select {
		case <-s.ctx.Done():
			return
		case ev := <-s.events:
			s.apply(ev)
		}
	}
}

// Rows returns a copy of the current state.
func (s *Synchronizer[T]) Rows() []T {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]T(nil), s.rows...)
}

// Stop unsubscribes and drops any result still in flight.
func (s *Synchronizer[T]) Stop() {
	if s.stopped.Swap(true) {
		return
	}
	if s.unsubscribe != nil {
		s.unsubscribe()
	}
	s.cancel()
	<-s.done
}

func (s *Synchronizer[T]) apply(ev ChangeEvent) {
	switch ev.Type {
	case OpInsert, OpUpdate:
		row, err := s.decode(ev.Record)
		if err != nil {
			log.Printf("[REALTIME] %s: décodage: %v", s.cfg.Table, err)
			return
		}
		if ev.Truncated && s.cfg.Reload != nil {
			full, err := s.cfg.Reload(s.ctx, row)
			if err != nil {
				log.Printf("[REALTIME] %s: rechargement: %v", s.cfg.Table, err)
				return
			}
			row = full
		}
		s.resolve(&row)
		if s.stopped.Load() {
			return
		}
		key := s.cfg.Key(row)
		s.mu.Lock()
		if ev.Type == OpInsert {
			s.rows = append([]T{row}, s.rows...)
		} else {
			s.replace(key, row)
		}
		s.mu.Unlock()

		if ev.Type == OpInsert {
			s.emit(Change[T]{Op: ev.Type, Row: &row, Key: key, Toast: toast(form.ToastSuccess, s.cfg.Messages.Inserted)})
		} else {
			s.emit(Change[T]{Op: ev.Type, Row: &row, Key: key, Toast: toast(form.ToastInfo, s.cfg.Messages.Updated)})
		}

	case OpDelete:
		old, err := s.decode(ev.OldRecord)
		if err != nil {
			log.Printf("[REALTIME] %s: décodage old_record: %v", s.cfg.Table, err)
			return
		}
		key := s.cfg.Key(old)
		s.mu.Lock()
		s.remove(key)
		s.mu.Unlock()
		s.emit(Change[T]{Op: ev.Type, Key: key, Toast: toast(form.ToastWarning, s.cfg.Messages.Deleted)})

	case OpError:
		msg := "Erreur de connexion au temps réel"
		if ev.Err != nil {
			msg += " : " + ev.Err.Error()
		}
		s.emit(Change[T]{Op: OpError, Toast: toast(form.ToastError, msg)})
	}
}

func (s *Synchronizer[T]) decode(raw []byte) (T, error) {
	var row T
	err := sonic.Unmarshal(raw, &row)
	return row, err
}

// resolve runs the lookups with bounded concurrency. A failed lookup is
// logged and the row goes out without that relation.
func (s *Synchronizer[T]) resolve(row *T) {
	if len(s.cfg.Lookups) == 0 {
		return
	}
	var g errgroup.Group
	g.SetLimit(s.cfg.MaxLookups)
	for _, lk := range s.cfg.Lookups {
		lk := lk
		g.Go(func() error {
			if err := lk(s.ctx, row); err != nil {
				log.Printf("[REALTIME] %s: relation non résolue: %v", s.cfg.Table, err)
			}
			return nil
		})
	}
	_ = g.Wait()
}

func (s *Synchronizer[T]) replace(key string, row T) {
	for i := range s.rows {
		if s.cfg.Key(s.rows[i]) == key {
			s.rows[i] = row
			return
		}
	}
	s.rows = append(s.rows, row)
}

func (s *Synchronizer[T]) remove(key string) {
	out := s.rows[:0]
	for _, r := range s.rows {
		if s.cfg.Key(r) != key {
			out = append(out, r)
		}
	}
	s.rows = out
}

func (s *Synchronizer[T]) emit(ch Change[T]) {
	if s.stopped.Load() || s.cfg.OnChange == nil {
		return
	}
	s.cfg.OnChange(ch)
}

func toast(level form.ToastLevel, msg string) form.Toast {
	return form.Toast{Level: level, Message: msg}
}
