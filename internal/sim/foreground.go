package sim

// ForegroundTile is one of the two scrolling ground tiles.
type ForegroundTile struct {
	X float64 // left edge
}

// UpdateForeground scrolls both ground tiles left at ground speed. A tile that
// moved fully off the left edge jumps right by two tile widths, landing
// directly behind its sibling.
func (s *Simulation) UpdateForeground(dt float64) {
	tw := s.cfg.Ground.TileWidth
	step := s.cfg.Ground.Speed * dt
	for i := range s.tiles {
		t := &s.tiles[i]
		t.X -= step
		for t.X < -tw {
			t.X += 2 * tw
		}
	}
}
