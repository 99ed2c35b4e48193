package storage

import (
	"github.com/charmbracelet/log"
)

// Prefs adapts a Store to the simulation's best-score capability. Reads that
// fail fall back to 0 and writes that fail are dropped; both are logged.
type Prefs struct {
	store  *Store
	logger *log.Logger
}

// NewPrefs wraps store. A nil logger uses the default logger.
func NewPrefs(store *Store, logger *log.Logger) *Prefs {
	if logger == nil {
		logger = log.Default()
	}
	return &Prefs{store: store, logger: logger}
}

// Integer returns the stored value, or 0 when absent or unreadable.
func (p *Prefs) Integer(key string) int {
	v, err := p.store.Integer(key)
	if err != nil {
		p.logger.Warn("pref read failed", "key", key, "err", err)
		return 0
	}
	return v
}

// SetInteger stores v under key.
func (p *Prefs) SetInteger(key string, v int) {
	if err := p.store.SetInteger(key, v); err != nil {
		p.logger.Warn("pref write failed", "key", key, "value", v, "err", err)
	}
}
