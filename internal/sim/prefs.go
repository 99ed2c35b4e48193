package sim

import "sync"

// BestScoreKey is the preference key holding the best score.
const BestScoreKey = "BestScore"

// Prefs is the persisted integer store. Reads of missing keys return 0.
// Implementations are synchronous and never fail from the caller's view.
type Prefs interface {
	Integer(key string) int
	SetInteger(key string, v int)
}

// MemoryPrefs is a process-local Prefs.
type MemoryPrefs struct {
	mu     sync.Mutex
	values map[string]int
}

// NewMemoryPrefs creates an empty store.
func NewMemoryPrefs() *MemoryPrefs {
	return &MemoryPrefs{values: make(map[string]int)}
}

// Integer returns the stored value or 0.
func (p *MemoryPrefs) Integer(key string) int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.values[key]
}

// SetInteger stores v under key.
func (p *MemoryPrefs) SetInteger(key string, v int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.values[key] = v
}
