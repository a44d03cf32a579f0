package structgen_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/syssam/structgen"
	"github.com/syssam/structgen/schema"
)

func TestErrors(t *testing.T) {
	t.Run("class not found", func(t *testing.T) {
		_, err := structgen.GenerateFromClass(nil, "C1")
		require.Error(t, err)
		assert.True(t, errors.Is(err, structgen.ErrClassNotFound))
		assert.True(t, structgen.IsClassNotFound(fmt.Errorf("wrapper: %w", err)))
		assert.False(t, structgen.IsClassNotFound(nil))
	})

	t.Run("unresolved reference", func(t *testing.T) {
		_, err := structgen.GenerateFromClass([]schema.Node{schema.NewClass("C1", "Person", "P1")}, "C1")
		assert.ErrorIs(t, err, structgen.ErrUnresolvedReference)
		var uerr *structgen.UnresolvedReferenceError
		require.ErrorAs(t, err, &uerr)
		assert.Equal(t, "P1", uerr.Ref)
		assert.True(t, structgen.IsUnresolvedReference(err))
	})

	t.Run("cyclic hierarchy", func(t *testing.T) {
		nodes := []schema.Node{
			schema.NewSubclass("A", "A", []string{"B"}),
			schema.NewSubclass("B", "B", []string{"A"}),
		}
		_, err := structgen.GenerateFromClass(nodes, "A")
		assert.ErrorIs(t, err, structgen.ErrCyclicHierarchy)
		assert.True(t, structgen.IsCyclicHierarchy(err))
	})

	t.Run("unsupported type", func(t *testing.T) {
		nodes := []schema.Node{
			schema.NewClass("C1", "Person", "P1"),
			schema.NewProperty("P1", "Blob", schema.Range{Type: "Binary"}),
		}
		_, err := structgen.GenerateFromClass(nodes, "C1")
		assert.ErrorIs(t, err, structgen.ErrUnsupportedType)
		assert.True(t, structgen.IsUnsupportedType(err))
	})

	t.Run("config", func(t *testing.T) {
		_, err := structgen.GenerateFromClass(nil, "C1", structgen.WithIndent("--"))
		assert.True(t, structgen.IsConfigError(err))
	})
}
