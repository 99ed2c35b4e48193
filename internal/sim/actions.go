package sim

import "sort"

// timeEpsilon absorbs float drift when comparing accumulated frame times
// against scheduled due times.
const timeEpsilon = 1e-9

// action is a timed callback on the simulation clock, the equivalent of a
// keyed engine action sequence.
type action struct {
	key       string
	due       float64
	every     float64 // 0 for one-shot
	seq       int
	run       func()
	cancelled bool
}

// schedule runs fn once, delay seconds from now.
func (s *Simulation) schedule(key string, delay float64, fn func()) {
	s.addAction(&action{key: key, due: s.elapsed + delay, run: fn})
}

// repeat runs fn after delay and then every interval seconds until removed.
func (s *Simulation) repeat(key string, delay, interval float64, fn func()) {
	s.addAction(&action{key: key, due: s.elapsed + delay, every: interval, run: fn})
}

func (s *Simulation) addAction(a *action) {
	s.actionSeq++
	a.seq = s.actionSeq
	s.actions = append(s.actions, a)
}

// removeAction cancels every action registered under key.
func (s *Simulation) removeAction(key string) {
	kept := s.actions[:0]
	for _, a := range s.actions {
		if a.key == key {
			a.cancelled = true
			continue
		}
		kept = append(kept, a)
	}
	s.actions = kept
}

// hasAction returns true if an action with key is pending.
func (s *Simulation) hasAction(key string) bool {
	for _, a := range s.actions {
		if a.key == key {
			return true
		}
	}
	return false
}

// runActions fires every action that is due. A repeating action catches up on
// every interval it missed, oldest first. While an action runs, s.late holds
// how long after its due time it fired. Actions added while running wait for
// the next tick.
func (s *Simulation) runActions() {
	var due []*action
	for _, a := range s.actions {
		if a.due <= s.elapsed+timeEpsilon {
			due = append(due, a)
		}
	}
	if len(due) == 0 {
		return
	}
	sort.SliceStable(due, func(i, j int) bool {
		if due[i].due != due[j].due {
			return due[i].due < due[j].due
		}
		return due[i].seq < due[j].seq
	})

	for _, a := range due {
		if a.every <= 0 {
			if !a.cancelled {
				s.dropAction(a)
				s.fire(a)
			}
			continue
		}
		for !a.cancelled && a.due <= s.elapsed+timeEpsilon {
			fired := *a
			a.due += a.every
			s.fire(&fired)
		}
	}
}

func (s *Simulation) fire(a *action) {
	s.late = max(s.elapsed-a.due, 0)
	a.run()
	s.late = 0
}

func (s *Simulation) dropAction(target *action) {
	for i, a := range s.actions {
		if a == target {
			s.actions = append(s.actions[:i], s.actions[i+1:]...)
			return
		}
	}
}
