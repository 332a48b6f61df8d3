package shared

import (
	"fmt"
	"strconv"
	"strings"
	"sync"

	"github.com/google/uuid"
)

// IDGenerator is an abstraction over identity creation, allowing ids to be made
// deterministic in tests
type IDGenerator interface {
	NewID() string
}

// IDObserver is implemented by generators that must skip ids already present in
// restored state
type IDObserver interface {
	Observe(id string)
}

// UUIDGenerator issues random v4 UUIDs
type UUIDGenerator struct{}

// NewID returns a fresh UUID string
func (UUIDGenerator) NewID() string {
	return uuid.New().String()
}

// NewUUIDGenerator creates the production id generator
func NewUUIDGenerator() IDGenerator {
	return UUIDGenerator{}
}

// SequentialIDGenerator issues predictable ids ("<prefix>-1", "<prefix>-2", ...)
type SequentialIDGenerator struct {
	mu     sync.Mutex
	prefix string
	next   int
}

// NewSequentialIDGenerator creates a SequentialIDGenerator starting at 1
func NewSequentialIDGenerator(prefix string) *SequentialIDGenerator {
	if prefix == "" {
		prefix = "id"
	}
	return &SequentialIDGenerator{prefix: prefix, next: 1}
}

// NewID returns the next id in sequence
func (g *SequentialIDGenerator) NewID() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	id := fmt.Sprintf("%s-%d", g.prefix, g.next)
	g.next++
	return id
}

// Observe moves the sequence past id when id carries this generator's prefix
func (g *SequentialIDGenerator) Observe(id string) {
	rest, ok := strings.CutPrefix(id, g.prefix+"-")
	if !ok {
		return
	}
	n, err := strconv.Atoi(rest)
	if err != nil {
		return
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	if n >= g.next {
		g.next = n + 1
	}
}

// ValidateID checks that an externally supplied id is usable as a collection key
func ValidateID(field, id string) error {
	if id == "" {
		return NewInvalidConfigurationError(field, "id cannot be empty")
	}
	return nil
}
