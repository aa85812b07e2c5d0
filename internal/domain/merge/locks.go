package merge

import "sync"

// projectLocks serializes merge-path operations per project. The snapshot
// table's composite primary key is the durable backstop; the lock keeps
// concurrent merges from burning versions on constraint retries.
type projectLocks struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func newProjectLocks() *projectLocks {
	return &projectLocks{locks: make(map[string]*sync.Mutex)}
}

// lock acquires the per-project mutex and returns its unlock func.
func (p *projectLocks) lock(projectID string) func() {
	p.mu.Lock()
	l, ok := p.locks[projectID]
	if !ok {
		l = &sync.Mutex{}
		p.locks[projectID] = l
	}
	p.mu.Unlock()

	l.Lock()
	return l.Unlock
}
