package rand

import (
	"math/rand"
	"sync"
)

// Rand is a mutex guarded math/rand source. It is not cryptographically
// secure and is used only when crypto/rand fails.
type Rand struct {
	src  *rand.Rand
	lock sync.Mutex
}

func NewRand(seed int64) *Rand {
	return &Rand{
		src: rand.New(rand.NewSource(seed)), //nolint:gosec
	}
}

func (l *Rand) Int63() int64 {
	l.lock.Lock()
	defer l.lock.Unlock()
	return l.src.Int63()
}

func (l *Rand) Uint32() uint32 {
	l.lock.Lock()
	defer l.lock.Unlock()
	return l.src.Uint32()
}

// Read fills p with pseudo-random bytes. It never fails.
func (l *Rand) Read(p []byte) (int, error) {
	l.lock.Lock()
	defer l.lock.Unlock()
	return l.src.Read(p)
}
