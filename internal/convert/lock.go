package convert

import (
	"context"
	"path/filepath"
	"sync"

	"golang.org/x/sync/semaphore"

	"github.com/koustreak/json2sqlite/internal/errs"
)

// pathLocks serializes conversions that write the same output file.
// Entries are reference counted and removed once unused.
type pathLocks struct {
	mu    sync.Mutex
	locks map[string]*pathLock
}

type pathLock struct {
	sem  *semaphore.Weighted
	refs int
}

func newPathLocks() *pathLocks {
	return &pathLocks{locks: make(map[string]*pathLock)}
}

// acquire blocks until path is free or ctx is done. The returned func
// releases the lock and must be called exactly once.
func (p *pathLocks) acquire(ctx context.Context, path string) (func(), error) {
	key := lockKey(path)

	p.mu.Lock()
	l, ok := p.locks[key]
	if !ok {
		l = &pathLock{sem: semaphore.NewWeighted(1)}
		p.locks[key] = l
	}
	l.refs++
	p.mu.Unlock()

	if err := l.sem.Acquire(ctx, 1); err != nil {
		p.drop(key, l)
		return nil, errs.Wrap(errs.ErrKindTimeout, "waiting for output "+path, err)
	}

	var once sync.Once
	return func() {
		once.Do(func() {
			l.sem.Release(1)
			p.drop(key, l)
		})
	}, nil
}

func (p *pathLocks) drop(key string, l *pathLock) {
	p.mu.Lock()
	defer p.mu.Unlock()
	l.refs--
	if l.refs == 0 {
		delete(p.locks, key)
	}
}

func (p *pathLocks) size() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.locks)
}

func lockKey(path string) string {
	if abs, err := filepath.Abs(path); err == nil {
		return abs
	}
	return filepath.Clean(path)
}
