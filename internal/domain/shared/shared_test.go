package shared_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/andrescamacho/factoryplanner-go/internal/domain/shared"
)

type named string

func (n named) ID() string { return string(n) }

func TestCollection_KeepsInsertionOrder(t *testing.T) {
	c := shared.NewCollection[named]()
	c.Insert("b")
	c.Insert("a")
	c.Insert("c")

	assert.Equal(t, []named{"b", "a", "c"}, c.List())
	assert.True(t, c.Remove("a"))
	assert.False(t, c.Remove("a"))
	assert.Equal(t, []named{"b", "c"}, c.List())
	assert.Equal(t, 2, c.Len())
	assert.False(t, c.Has("a"))
}

func TestSequentialIDGenerator(t *testing.T) {
	g := shared.NewSequentialIDGenerator("unit")

	assert.Equal(t, "unit-1", g.NewID())
	assert.Equal(t, "unit-2", g.NewID())
}

func TestUUIDGenerator_Unique(t *testing.T) {
	g := shared.NewUUIDGenerator()
	assert.NotEqual(t, g.NewID(), g.NewID())
}

func TestErrorKinds(t *testing.T) {
	wrapped := fmt.Errorf("failed to remove unit: %w", shared.NewNotFoundError("production unit", "u-1"))

	assert.ErrorIs(t, wrapped, shared.ErrNotFound)
	assert.NotErrorIs(t, wrapped, shared.ErrConflict)
	assert.EqualError(t, wrapped, "failed to remove unit: production unit not found: u-1")

	dangling := &shared.DanglingReferenceError{Role: "source", FactoryID: "f-9"}
	assert.ErrorIs(t, dangling, shared.ErrInvalidConfiguration)
	assert.NotErrorIs(t, dangling, shared.ErrNotFound)

	inner := errors.New("unexpected EOF")
	ser := shared.NewSerializationError("malformed plan document", inner)
	assert.ErrorIs(t, ser, shared.ErrSerialization)
	assert.Same(t, inner, ser.Err)
	assert.EqualError(t, ser, "serialization error: malformed plan document: unexpected EOF")

	invalid := shared.NewSerializationError("logistics link l-1", dangling)
	assert.ErrorIs(t, invalid, shared.ErrSerialization)
	assert.NotErrorIs(t, invalid, shared.ErrInvalidConfiguration)
	assert.NotErrorIs(t, invalid, shared.ErrNotFound)

	conflict := shared.NewConflictError("factory is linked", "l-1", "l-2")
	assert.EqualError(t, conflict, "conflict: factory is linked (l-1, l-2)")
}

func TestSequentialIDGenerator_ObserveSkipsUsedIDs(t *testing.T) {
	g := shared.NewSequentialIDGenerator("id")
	g.Observe("id-7")
	g.Observe("id-3")
	g.Observe("other-40")
	g.Observe("id-x")

	assert.Equal(t, "id-8", g.NewID())
}
