package orchestrator

import (
	"context"
	"sync"
)

// ExecutionCache records which cacheable scripts have been claimed during
// one run. It must not outlive the run it was created for.
type ExecutionCache struct {
	mu      sync.Mutex
	entries map[string]*Claim
}

// Claim is the marker for one claimed script. It is pending until its
// claimant calls Finish.
type Claim struct {
	done chan struct{}
	once sync.Once
	err  error
}

// NewExecutionCache creates an empty cache
func NewExecutionCache() *ExecutionCache {
	return &ExecutionCache{entries: make(map[string]*Claim)}
}

// Claim atomically checks name and claims it if nobody has. first is true
// for the caller that made the claim; every other caller gets the same
// Claim back with first false.
func (c *ExecutionCache) Claim(name string) (claim *Claim, first bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if existing, ok := c.entries[name]; ok {
		return existing, false
	}

	claim = &Claim{done: make(chan struct{})}
	c.entries[name] = claim
	return claim, true
}

// Len returns the number of claimed scripts
func (c *ExecutionCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// Finish marks the claim done with the claimant's result. Only the first
// call has an effect.
func (cl *Claim) Finish(err error) {
	cl.once.Do(func() {
		cl.err = err
		close(cl.done)
	})
}

// Wait blocks until the claim is finished and returns the claimant's
// result, or until ctx is canceled.
func (cl *Claim) Wait(ctx context.Context) error {
	select {
	case <-cl.done:
		return cl.err
	case <-ctx.Done():
		return ctx.Err()
	}
}
