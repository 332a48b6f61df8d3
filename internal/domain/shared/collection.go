package shared

// Identified is anything stored under a unique id
type Identified interface {
	ID() string
}

// Collection is an insertion-ordered keyed set. It is not safe for concurrent use.
type Collection[T Identified] struct {
	byID  map[string]T
	order []string
}

func NewCollection[T Identified]() *Collection[T] {
	return &Collection[T]{byID: make(map[string]T)}
}

func (c *Collection[T]) Get(id string) (T, bool) {
	v, ok := c.byID[id]
	return v, ok
}

func (c *Collection[T]) Has(id string) bool {
	_, ok := c.byID[id]
	return ok
}

// Insert appends v; callers check for duplicates first
func (c *Collection[T]) Insert(v T) {
	c.byID[v.ID()] = v
	c.order = append(c.order, v.ID())
}

// Replace swaps the value stored under v.ID() without moving it
func (c *Collection[T]) Replace(v T) {
	c.byID[v.ID()] = v
}

// Remove deletes id and reports whether it was present
func (c *Collection[T]) Remove(id string) bool {
	if _, ok := c.byID[id]; !ok {
		return false
	}
	delete(c.byID, id)
	for i, o := range c.order {
		if o == id {
			c.order = append(c.order[:i], c.order[i+1:]...)
			break
		}
	}
	return true
}

// List returns the values in insertion order
func (c *Collection[T]) List() []T {
	out := make([]T, 0, len(c.order))
	for _, id := range c.order {
		out = append(out, c.byID[id])
	}
	return out
}

func (c *Collection[T]) Len() int {
	return len(c.order)
}
