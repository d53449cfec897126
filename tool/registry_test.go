package tool_test

import (
	"context"
	"testing"

	"github.com/habiliai/toolserver/entity"
	"github.com/habiliai/toolserver/tool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func constant(s string) tool.Func {
	return func(context.Context, []entity.Message, string) (string, error) {
		return s, nil
	}
}

func TestRegistry_ListKeepsRegistrationOrder(t *testing.T) {
	r := tool.NewRegistry()
	r.Register("b", constant("b"), "use b")
	r.Register("a", constant("a"), "")
	r.Register("c", constant("c"), "use c")

	assert.Equal(t, []string{"b", "a", "c"}, r.List())
	assert.Equal(t, []string{"use b", "use c"}, r.Usages())
}

func TestRegistry_RegisterTwiceKeepsPosition(t *testing.T) {
	r := tool.NewRegistry()
	r.Register("x", constant("first"), "old")
	r.Register("y", constant("y"), "")
	r.Register("x", constant("second"), "new")

	assert.Equal(t, []string{"x", "y"}, r.List())

	e, ok := r.Lookup("x")
	require.True(t, ok)
	assert.Equal(t, "new", e.Usage)

	out, err := e.Func(context.Background(), nil, "")
	require.NoError(t, err)
	assert.Equal(t, "second", out)
}

func TestRegistry_LookupUnknown(t *testing.T) {
	r := tool.NewRegistry()
	_, ok := r.Lookup("nope")
	assert.False(t, ok)
	assert.Empty(t, r.List())
}

func TestRegistry_ListReturnsCopy(t *testing.T) {
	r := tool.NewRegistry()
	r.Register("a", constant("a"), "")

	names := r.List()
	names[0] = "mutated"

	assert.Equal(t, []string{"a"}, r.List())
}

func TestRegistry_Entries(t *testing.T) {
	r := tool.NewRegistry()
	r.Register("a", constant("a"), "ua")
	r.Register("b", constant("b"), "ub")

	entries := r.Entries()
	require.Len(t, entries, 2)
	assert.Equal(t, "a", entries[0].Name)
	assert.Equal(t, "ub", entries[1].Usage)
}
