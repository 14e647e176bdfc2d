package beat

// Cell is the set of oneshot names scheduled to fire on one beat slot.
// Names keep their insertion order and cannot repeat.
type Cell struct {
	names   []string
	present map[string]bool
}

// Add appends name unless the cell already holds it.
func (c *Cell) Add(name string) {
	if c.present[name] {
		return
	}
	if nil == c.present {
		c.present = map[string]bool{}
	}
	c.present[name] = true
	c.names = append(c.names, name)
}

// Remove drops name from the cell, doing nothing when it is absent.
func (c *Cell) Remove(name string) {
	if !c.present[name] {
		return
	}
	delete(c.present, name)
	for i, n := range c.names {
		if n == name {
			c.names = append(c.names[:i], c.names[i+1:]...)
			break
		}
	}
}

func (c *Cell) Contains(name string) bool {
	return c.present[name]
}

func (c *Cell) Len() int {
	return len(c.names)
}

// Names returns the cell contents in insertion order.
func (c *Cell) Names() []string {
	names := make([]string, len(c.names))
	copy(names, c.names)
	return names
}

func (c *Cell) change(name string, mode Mode) {
	if mode == Remove {
		c.Remove(name)
		return
	}
	c.Add(name)
}

func (c *Cell) clone() *Cell {
	clone := &Cell{}
	for _, n := range c.names {
		clone.Add(n)
	}
	return clone
}
