package combine

// Cart is the ordered, deduplicated set of files staged for export. It
// lives for one session, is owned by a single goroutine, and preserves
// insertion order because the output document lists files in the order
// they were selected. The zero value is ready to use.
type Cart struct {
	order  []Path
	member map[Path]struct{}
}

// NewCart returns an empty cart.
func NewCart() *Cart {
	return &Cart{member: make(map[Path]struct{})}
}

// Add appends p unless it is already present. It reports whether the cart
// changed.
func (c *Cart) Add(p Path) bool {
	if c.member == nil {
		c.member = make(map[Path]struct{})
	}
	if _, ok := c.member[p]; ok {
		return false
	}
	c.member[p] = struct{}{}
	c.order = append(c.order, p)
	return true
}

// Remove deletes p, keeping the relative order of the remaining entries.
// Removing an absent path is a no-op.
func (c *Cart) Remove(p Path) bool {
	if _, ok := c.member[p]; !ok {
		return false
	}
	delete(c.member, p)
	for i, have := range c.order {
		if have == p {
			c.order = append(c.order[:i], c.order[i+1:]...)
			break
		}
	}
	return true
}

// Contains reports whether p is staged.
func (c *Cart) Contains(p Path) bool {
	_, ok := c.member[p]
	return ok
}

// Len returns the number of staged files.
func (c *Cart) Len() int {
	return len(c.order)
}

// Paths returns the staged files in insertion order. The slice is a copy.
func (c *Cart) Paths() []Path {
	out := make([]Path, len(c.order))
	copy(out, c.order)
	return out
}
