// Package dedup detects retransmitted Confirmable and NonConfirmable
// messages by their identity within the exchange lifetime.
package dedup

import (
	"errors"
	"fmt"
	"time"

	"github.com/plgd-dev/coapmsg/message"
	"github.com/plgd-dev/coapmsg/pkg/cache"
	"go.uber.org/atomic"
)

var ErrFilterFull = errors.New("deduplication filter is full")

// Stats are monotonic counters of a Filter.
type Stats struct {
	Checked    uint64
	Duplicates uint64
	Expired    uint64
	Dropped    uint64
}

// Filter remembers identities of received messages. It is safe for
// concurrent use.
type Filter struct {
	cfg   Config
	cache *cache.Cache[message.Identity, time.Time]

	checked    atomic.Uint64
	duplicates atomic.Uint64
	expired    atomic.Uint64
	dropped    atomic.Uint64
	closed     atomic.Bool
}

func New(opts ...Option) *Filter {
	cfg := DefaultConfig
	for _, o := range opts {
		o.DedupApply(&cfg)
	}
	if cfg.Errors == nil {
		cfg.Errors = func(error) {
			// NO-OP
		}
	}
	f := &Filter{
		cfg:   cfg,
		cache: cache.NewCache[message.Identity, time.Time](),
	}
	if cfg.PeriodicRunner != nil {
		cfg.PeriodicRunner(func(now time.Time) bool {
			if f.closed.Load() {
				return false
			}
			f.CheckExpirations(now)
			return true
		})
	}
	return f
}

func (f *Filter) key(id message.Identity) message.Identity {
	if f.cfg.MatchTokens {
		return id
	}
	k, _ := message.NewIdentity(id.MessageID, nil)
	return k
}

func (f *Filter) onExpire(time.Time) {
	f.expired.Inc()
}

// Check reports whether v repeats a message seen within the lifetime and
// records it otherwise. Acknowledgement and Reset messages are never
// duplicates.
func (f *Filter) Check(v message.View) bool {
	return f.CheckAt(v, time.Now())
}

// CheckAt is Check with an explicit receive time.
func (f *Filter) CheckAt(v message.View, now time.Time) bool {
	if typ := v.Type(); typ != message.Confirmable && typ != message.NonConfirmable {
		return false
	}
	f.checked.Inc()
	id := v.Identity()
	key := f.key(id)
	if f.cache.Load(key, now) != nil {
		f.duplicates.Inc()
		return true
	}
	if f.cfg.MaxEntries > 0 && f.cache.Length() >= f.cfg.MaxEntries {
		f.cache.CheckExpirations(now)
		if f.cache.Length() >= f.cfg.MaxEntries {
			f.dropped.Inc()
			f.cfg.Errors(fmt.Errorf("cannot track message %v: %w", id, ErrFilterFull))
			return false
		}
	}
	_, loaded := f.cache.LoadOrStore(key, cache.NewElement(now, now.Add(f.cfg.Lifetime), f.onExpire), now)
	if loaded {
		f.duplicates.Inc()
	}
	return loaded
}

// CheckDatagram validates data and checks the resulting message.
func (f *Filter) CheckDatagram(data []byte) (bool, error) {
	v, err := message.Parse(data)
	if err != nil {
		return false, err
	}
	return f.Check(v), nil
}

// Forget drops the identity so that the next message with it is accepted.
func (f *Filter) Forget(id message.Identity) bool {
	return f.cache.Delete(f.key(id))
}

// CheckExpirations removes identities older than the lifetime.
func (f *Filter) CheckExpirations(now time.Time) {
	f.cache.CheckExpirations(now)
}

// Len returns the number of remembered identities, expired ones not yet
// collected included.
func (f *Filter) Len() int {
	return f.cache.Length()
}

func (f *Filter) Stats() Stats {
	return Stats{
		Checked:    f.checked.Load(),
		Duplicates: f.duplicates.Load(),
		Expired:    f.expired.Load(),
		Dropped:    f.dropped.Load(),
	}
}

// Close stops the periodic expiration and forgets all identities.
func (f *Filter) Close() {
	f.closed.Store(true)
	f.cache.PullOutAll()
}
