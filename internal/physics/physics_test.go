package physics

import (
	"math"
	"testing"

	"github.com/vovakirdan/tui-flappy/internal/core"
)

const (
	catPlayer   Category = 1
	catObstacle Category = 2
	catGround   Category = 4
)

func square(x, y, size float64) Polygon {
	return Polygon{
		core.V(x, y), core.V(x+size, y), core.V(x+size, y+size), core.V(x, y+size),
	}
}

func TestOverlaps(t *testing.T) {
	tests := []struct {
		name string
		a, b Polygon
		want bool
	}{
		{"separated", square(0, 0, 10), square(20, 0, 10), false},
		{"touching edge", square(0, 0, 10), square(10, 0, 10), true},
		{"overlapping", square(0, 0, 10), square(5, 5, 10), true},
		{"contained", square(0, 0, 10), square(2, 2, 2), true},
		{"diagonal gap", square(0, 0, 10), Polygon{core.V(12, 0), core.V(20, 0), core.V(20, 8)}, false},
		{"edge crossing", square(0, 0, 10), Polygon{core.V(-5, 5), core.V(15, 5)}, true},
		{"edge below", square(0, 0, 10), Polygon{core.V(-5, -1), core.V(15, -1)}, false},
		{"empty", square(0, 0, 10), nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Overlaps(tt.a, tt.b); got != tt.want {
				t.Errorf("Overlaps(a, b) = %v, want %v", got, tt.want)
			}
			if got := Overlaps(tt.b, tt.a); got != tt.want {
				t.Errorf("Overlaps(b, a) = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCenteredHulls(t *testing.T) {
	player := PlayerHull.Centered(39, 27)
	b := player.Bounds()
	if b.Min.X < -19.5 || b.Max.X > 19.5 || b.Min.Y < -13.5 || b.Max.Y > 13.5 {
		t.Errorf("player hull %v escapes its sprite", b)
	}

	cactus := CactusHull.Centered(54, 315)
	b = cactus.Bounds()
	if b.Min.Y != -157.5 || b.Max.Y != 157.5 {
		t.Errorf("cactus hull y range = [%v, %v], want full height", b.Min.Y, b.Max.Y)
	}
}

func TestTransformRotates(t *testing.T) {
	p := Polygon{core.V(1, 0)}.Transform(core.V(10, 10), math.Pi)
	if math.Abs(p[0].X-9) > 1e-9 || math.Abs(p[0].Y-10) > 1e-9 {
		t.Errorf("rotated point = %v, want (9, 10)", p[0])
	}
}

func TestDetectorBeginOnly(t *testing.T) {
	d := NewDetector()
	ground := Body{ID: 1, Category: catGround, Shape: Polygon{core.V(0, 0), core.V(100, 0)}}
	player := func(y float64) Body {
		return Body{ID: 2, Category: catPlayer, ContactMask: catGround | catObstacle, Shape: square(40, y, 10)}
	}

	steps := []struct {
		y    float64
		want int
	}{
		{20, 0},
		{0, 1},
		{-2, 0},
		{-4, 0},
		{5, 0},
		{0, 1},
	}

	for i, st := range steps {
		got := d.Step([]Body{ground, player(st.y)})
		if len(got) != st.want {
			t.Fatalf("step %d: %d contacts, want %d", i, len(got), st.want)
		}
	}
}

func TestDetectorMasks(t *testing.T) {
	d := NewDetector()
	a := Body{ID: 1, Category: catObstacle, Shape: square(0, 0, 10)}
	b := Body{ID: 2, Category: catObstacle, Shape: square(5, 0, 10)}
	if got := d.Step([]Body{a, b}); len(got) != 0 {
		t.Errorf("obstacles without masks reported %d contacts", len(got))
	}

	p := Body{ID: 3, Category: catPlayer, ContactMask: catObstacle, Shape: square(8, 8, 4)}
	got := d.Step([]Body{a, b, p})
	if len(got) != 2 {
		t.Fatalf("%d contacts, want 2", len(got))
	}
	if got[0].A.ID != 1 || got[1].A.ID != 2 {
		t.Errorf("contacts out of order: %v then %v", got[0].A.ID, got[1].A.ID)
	}
}

func TestDetectorReset(t *testing.T) {
	d := NewDetector()
	bodies := []Body{
		{ID: 1, Category: catGround, Shape: square(0, 0, 10)},
		{ID: 2, Category: catPlayer, ContactMask: catGround, Shape: square(5, 5, 10)},
	}
	d.Step(bodies)
	d.Reset()
	if got := d.Step(bodies); len(got) != 1 {
		t.Errorf("after reset %d contacts, want 1", len(got))
	}
}
