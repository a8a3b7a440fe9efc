package catalog

import (
	"sort"
	"strings"
)

// Catalog is an ordered collection of stars. It is filled once by the
// loader and read-only afterwards, so it is safe to share between
// goroutines that only read.
type Catalog struct {
	stars []Star
	byID  map[int]int
}

// New creates a catalog holding stars in the given order.
func New(stars ...Star) *Catalog {
	c := &Catalog{
		stars: make([]Star, 0, len(stars)),
		byID:  make(map[int]int, len(stars)),
	}
	for _, s := range stars {
		c.add(s)
	}
	return c
}

func (c *Catalog) add(s Star) {
	if _, dup := c.byID[s.ID]; !dup {
		c.byID[s.ID] = len(c.stars)
	}
	c.stars = append(c.stars, s)
}

// Stars returns the stars in catalog order. Callers must not modify the
// returned slice.
func (c *Catalog) Stars() []Star {
	return c.stars
}

// Len returns the number of stars.
func (c *Catalog) Len() int {
	return len(c.stars)
}

// ByID returns the first star with the given catalog id (the HIP number
// for Hipparcos-derived files).
func (c *Catalog) ByID(id int) (Star, bool) {
	i, ok := c.byID[id]
	if !ok {
		return Star{}, false
	}
	return c.stars[i], true
}

// FindByName returns the first star whose name matches, ignoring case.
func (c *Catalog) FindByName(name string) (Star, bool) {
	for _, s := range c.stars {
		if s.Name != "" && strings.EqualFold(s.Name, name) {
			return s, true
		}
	}
	return Star{}, false
}

// Brightest returns up to n stars ordered by magnitude, brightest first.
// Ties keep catalog order.
func (c *Catalog) Brightest(n int) []Star {
	sorted := make([]Star, len(c.stars))
	copy(sorted, c.stars)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Mag < sorted[j].Mag
	})
	if n < len(sorted) {
		sorted = sorted[:n]
	}
	return sorted
}
