package physics

import "sort"

// Category is a body category bitmask.
type Category uint32

// Body is one shape in world space for a single detector step.
type Body struct {
	ID          int
	Category    Category
	ContactMask Category // categories this body wants begin-contact reports for
	Shape       Polygon
}

// Contact is a begin-contact report between two bodies.
type Contact struct {
	A, B Body
}

type pairKey struct {
	a, b int
}

func keyFor(a, b int) pairKey {
	if a > b {
		a, b = b, a
	}
	return pairKey{a: a, b: b}
}

// Detector reports pairs that begin overlapping between consecutive steps.
type Detector struct {
	touching map[pairKey]bool
}

// NewDetector creates a detector with no contacts in progress.
func NewDetector() *Detector {
	return &Detector{touching: make(map[pairKey]bool)}
}

// Step tests all body pairs. A contact is reported only on the first step in
// which a pair overlaps; it is reported again after the pair has separated.
// Pairs are tested only when either body's contact mask matches the other's
// category.
func (d *Detector) Step(bodies []Body) []Contact {
	now := make(map[pairKey]bool)
	var contacts []Contact

	for i := 0; i < len(bodies); i++ {
		for j := i + 1; j < len(bodies); j++ {
			a, b := bodies[i], bodies[j]
			if a.ContactMask&b.Category == 0 && b.ContactMask&a.Category == 0 {
				continue
			}
			if !a.Shape.Bounds().Intersects(b.Shape.Bounds()) {
				continue
			}
			if !Overlaps(a.Shape, b.Shape) {
				continue
			}
			k := keyFor(a.ID, b.ID)
			now[k] = true
			if !d.touching[k] {
				contacts = append(contacts, Contact{A: a, B: b})
			}
		}
	}

	d.touching = now
	sort.SliceStable(contacts, func(i, j int) bool {
		ki := keyFor(contacts[i].A.ID, contacts[i].B.ID)
		kj := keyFor(contacts[j].A.ID, contacts[j].B.ID)
		if ki.a != kj.a {
			return ki.a < kj.a
		}
		return ki.b < kj.b
	})
	return contacts
}

// Reset forgets all contacts in progress.
func (d *Detector) Reset() {
	d.touching = make(map[pairKey]bool)
}
