package realtime

import (
	"context"
	"errors"
	"log"
	"sync"
	"time"

	"github.com/lib/pq"
)

type Handler func(ChangeEvent)

// Invalidator is the slice of revalidate.Registry the listener needs.
type Invalidator interface {
	Invalidate(entity string) []string
}

// Listener holds the single LISTEN connection of the process and fans
// notifications out to per-table subscribers.
type Listener struct {
	dsn     string
	channel string
	inv     Invalidator

	mu   sync.RWMutex
	seq  uint64
	subs map[string]map[uint64]Handler

	pql *pq.Listener
}

func NewListener(dsn, channel string, inv Invalidator) *Listener {
	return &Listener{
		dsn:     dsn,
		channel: channel,
		inv:     inv,
		subs:    make(map[string]map[uint64]Handler),
	}
}

// Subscribe registers fn for one table. The returned func removes it.
func (l *Listener) Subscribe(table string, fn Handler) func() {
	l.mu.Lock()
	l.seq++
	id := l.seq
	if l.subs[table] == nil {
		l.subs[table] = make(map[uint64]Handler)
	}
	l.subs[table][id] = fn
	l.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			l.mu.Lock()
			delete(l.subs[table], id)
			if len(l.subs[table]) == 0 {
				delete(l.subs, table)
			}
			l.mu.Unlock()
		})
	}
}

func (l *Listener) handlers(table string) []Handler {
	l.mu.RLock()
	defer l.mu.RUnlock()
	var out []Handler
	for t, m := range l.subs {
		if table != "" && t != table {
			continue
		}
		for _, h := range m {
			out = append(out, h)
		}
	}
	return out
}

// Dispatch delivers ev to the table's subscribers. Error events without a
// table go to everyone. Row changes also invalidate dependent routes, which
// covers writes made outside this process.
func (l *Listener) Dispatch(ev ChangeEvent) {
	if ev.Type != OpError && l.inv != nil {
		l.inv.Invalidate(ev.Table)
	}
	for _, h := range l.handlers(ev.Table) {
		h(ev)
	}
}

// Start connects and blocks until ctx is done. lib/pq reconnects on its
// own; there is no polling fallback.
func (l *Listener) Start(ctx context.Context) error {
	l.pql = pq.NewListener(l.dsn, 10*time.Second, time.Minute, func(ev pq.ListenerEventType, err error) {
		switch ev {
		case pq.ListenerEventConnected:
			log.Printf("[REALTIME] connecté, canal=%s", l.channel)
		case pq.ListenerEventReconnected:
			log.Printf("[REALTIME] reconnecté, canal=%s", l.channel)
		case pq.ListenerEventDisconnected, pq.ListenerEventConnectionAttemptFailed:
			if err == nil {
				err = errors.New("connexion realtime perdue")
			}
			log.Printf("[REALTIME] ❌ %v", err)
			l.Dispatch(errorEvent("", err))
		}
	})
	if err := l.pql.Listen(l.channel); err != nil {
		_ = l.pql.Close()
		return err
	}
	defer l.pql.Close()

	keepAlive := time.NewTicker(90 * time.Second)
	defer keepAlive.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case n := <-l.pql.Notify:
			if n == nil {
				// reconnect; notifications sent meanwhile are lost
				continue
			}
			ev, err := ParseEvent(n.Extra)
			if err != nil {
				log.Printf("[REALTIME] %v", err)
				continue
			}
			l.Dispatch(ev)
		case <-keepAlive.C:
			go func() {
				if err := l.pql.Ping(); err != nil {
					log.Printf("[REALTIME] ping: %v", err)
				}
			}()
		}
	}
}
