package periodic

import (
	"time"

	"github.com/plgd-dev/coapmsg/pkg/sync"
	"go.uber.org/atomic"
)

// Func registers f to be called on every tick until it returns false.
type Func = func(f func(now time.Time) bool)

// New starts a ticker goroutine that runs until stop is closed.
func New(stop <-chan struct{}, tick time.Duration) Func {
	var idx atomic.Uint64
	m := sync.NewMap[uint64, func(time.Time) bool]()
	go func() {
		t := time.NewTicker(tick)
		defer t.Stop()
		for {
			var now time.Time
			select {
			case now = <-t.C:
			case <-stop:
				return
			}
			m.Range(func(key uint64, f func(time.Time) bool) bool {
				if ok := f(now); !ok {
					m.Delete(key)
				}
				return true
			})
		}
	}()
	return func(f func(time.Time) bool) {
		if f == nil {
			return
		}
		m.Store(idx.Inc(), f)
	}
}
