package gen

import (
	"flag"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/syssam/structgen/schema"
)

var update = flag.Bool("update", false, "update golden files")

func personGraph() []schema.Node {
	return []schema.Node{
		schema.NewClass("C1", "Person", "P1"),
		schema.NewProperty("P1", "Age", schema.Number(schema.FormatInt32)),
	}
}

// libraryGraph exercises inheritance, nesting, links and a link cycle.
func libraryGraph() []schema.Node {
	return []schema.Node{
		schema.NewClass("C0", "Entity", "P0"),
		schema.NewSubclass("C1", "Person", []string{"C0"}, "P1", "P2", "P3", "P8"),
		schema.NewSubclass("C2", "Company", []string{"C0"}, "P1", "P10", "P11", "P12"),
		schema.NewProperty("P0", "ID", schema.Text()),
		schema.NewProperty("P1", "Name", schema.Text()),
		schema.NewProperty("P2", "Born", schema.Date()),
		schema.NewProperty("P3", "Address", schema.Nested("Address", "P4", "P5")),
		schema.NewProperty("P4", "Street", schema.Text()),
		schema.NewProperty("P5", "Geo", schema.Nested("Geo", "P6", "P7")),
		schema.NewProperty("P6", "Lat", schema.Number(schema.FormatFloat64)),
		schema.NewProperty("P7", "Lng", schema.Number(schema.FormatFloat64)),
		schema.NewProperty("P8", "Employer", schema.Linked("C2")),
		schema.NewProperty("P10", "Founded", schema.Number(schema.FormatInt16)),
		schema.NewProperty("P11", "CEO", schema.Linked("C1")),
		schema.NewProperty("P12", "Public", schema.Boolean()),
	}
}

func TestGenerateFromClass(t *testing.T) {
	t.Run("single struct", func(t *testing.T) {
		out, err := GenerateFromClass(personGraph(), "C1")
		require.NoError(t, err)
		assert.Equal(t, "type Person struct {\n  Age int32\n}", out)
	})

	t.Run("date adds import", func(t *testing.T) {
		nodes := personGraph()
		nodes[0].PropertySpecs = append(nodes[0].PropertySpecs, schema.PropertyRef{Ref: "P2"})
		nodes = append(nodes, schema.NewProperty("P2", "Born", schema.Date()))

		out, err := GenerateFromClass(nodes, "C1")
		require.NoError(t, err)
		assert.Equal(t, "import \"time\"\n\ntype Person struct {\n  Age int32\n  Born time.Time\n}", out)
	})

	t.Run("missing class", func(t *testing.T) {
		out, err := GenerateFromClass(personGraph(), "C9")
		require.Error(t, err)
		assert.Empty(t, out)
		assert.ErrorIs(t, err, ErrClassNotFound)
		var cerr *ClassNotFoundError
		require.ErrorAs(t, err, &cerr)
		assert.Equal(t, "C9", cerr.UID)
	})

	t.Run("property uid is not a class", func(t *testing.T) {
		_, err := GenerateFromClass(personGraph(), "P1")
		assert.True(t, IsClassNotFound(err))
	})

	t.Run("custom indent", func(t *testing.T) {
		out, err := GenerateFromClass(personGraph(), "C1", WithIndent("\t"))
		require.NoError(t, err)
		assert.Equal(t, "type Person struct {\n\tAge int32\n}", out)
	})

	t.Run("invalid option", func(t *testing.T) {
		_, err := GenerateFromClass(personGraph(), "C1", WithIndent("x"))
		assert.True(t, IsConfigError(err))
	})

	t.Run("empty class", func(t *testing.T) {
		out, err := GenerateFromClass([]schema.Node{schema.NewClass("C1", "Empty")}, "C1")
		require.NoError(t, err)
		assert.Equal(t, "type Empty struct {\n}", out)
	})

	t.Run("exported fields", func(t *testing.T) {
		out, err := GenerateFromClass([]schema.Node{
			schema.NewClass("C1", "Person", "P1"),
			schema.NewProperty("P1", "firstName", schema.Text()),
		}, "C1", WithExportedFields())
		require.NoError(t, err)
		assert.Equal(t, "type Person struct {\n  FirstName string\n}", out)
	})

	t.Run("exported fields case struct names", func(t *testing.T) {
		out, err := GenerateFromClass([]schema.Node{
			schema.NewClass("C1", "person", "P1", "P2"),
			schema.NewClass("C2", "company", "P4"),
			schema.NewProperty("P1", "address", schema.Nested("address", "P3")),
			schema.NewProperty("P2", "employer", schema.Linked("C2")),
			schema.NewProperty("P3", "street", schema.Text()),
			schema.NewProperty("P4", "name", schema.Text()),
		}, "C1", WithExportedFields())
		require.NoError(t, err)
		assert.Equal(t, "type Person struct {\n  Address Address\n  Employer Company\n}\n\n"+
			"type Address struct {\n  Street string\n}\n\n"+
			"type Company struct {\n  Name string\n}", out)
	})
}

func TestGenerateGolden(t *testing.T) {
	out, err := GenerateFromClass(libraryGraph(), "C1")
	require.NoError(t, err)

	golden := filepath.Join("testdata", "library.golden")
	if *update {
		require.NoError(t, os.WriteFile(golden, []byte(out+"\n"), 0o644))
		t.Log("Golden file updated.")
	}
	want, err := os.ReadFile(golden)
	require.NoError(t, err)
	assert.Equal(t, string(want), out+"\n")
}

func TestGenerate(t *testing.T) {
	res, err := Generate(libraryGraph(), "C1")
	require.NoError(t, err)

	t.Run("emission order", func(t *testing.T) {
		var names []string
		for _, s := range res.Structs {
			names = append(names, s.Name)
		}
		assert.Equal(t, []string{"Person", "Address", "Geo", "Company"}, names)
		assert.Equal(t, "Person", res.Root())
		assert.True(t, res.DateUsed)
	})

	t.Run("field order follows flattened specs", func(t *testing.T) {
		var fields []string
		for _, f := range res.Structs[0].Fields {
			fields = append(fields, f.Name+" "+f.Type.Ident)
		}
		assert.Equal(t, []string{
			"ID string",
			"Name string",
			"Born time.Time",
			"Address Address",
			"Employer Company",
		}, fields)
	})

	t.Run("linked cycle back to root", func(t *testing.T) {
		company := res.Structs[3]
		require.Equal(t, "Company", company.Name)
		require.Len(t, company.Fields, 5)
		assert.Equal(t, Field{Name: "CEO", Type: GoType{Ident: "Person"}}, company.Fields[3])
	})

	t.Run("deterministic", func(t *testing.T) {
		first, err := GenerateFromClass(libraryGraph(), "C1")
		require.NoError(t, err)
		for range 10 {
			again, err := GenerateFromClass(libraryGraph(), "C1")
			require.NoError(t, err)
			assert.Equal(t, first, again)
		}
	})

	t.Run("reusing the node slice", func(t *testing.T) {
		nodes := libraryGraph()
		first, err := GenerateFromClass(nodes, "C2")
		require.NoError(t, err)
		second, err := GenerateFromClass(nodes, "C2")
		require.NoError(t, err)
		assert.Equal(t, first, second)
		assert.True(t, strings.HasPrefix(first, "import \"time\"\n\ntype Company struct {"))
	})
}

func TestGenerateDeduplication(t *testing.T) {
	t.Run("shared linked class", func(t *testing.T) {
		out, err := GenerateFromClass([]schema.Node{
			schema.NewClass("C1", "Order", "P1", "P2"),
			schema.NewClass("C2", "Address", "P3"),
			schema.NewProperty("P1", "Billing", schema.Linked("C2")),
			schema.NewProperty("P2", "Shipping", schema.Linked("C2")),
			schema.NewProperty("P3", "City", schema.Text()),
		}, "C1")
		require.NoError(t, err)
		assert.Equal(t, 1, strings.Count(out, "type Address struct"))
		assert.Equal(t, "type Order struct {\n  Billing Address\n  Shipping Address\n}\n\ntype Address struct {\n  City string\n}", out)
	})

	t.Run("nested objects with the same label", func(t *testing.T) {
		out, err := GenerateFromClass([]schema.Node{
			schema.NewClass("C1", "Order", "P1", "P2"),
			schema.NewClass("C2", "Customer", "P4"),
			schema.NewProperty("P1", "Meta", schema.Nested("Meta", "P3")),
			schema.NewProperty("P2", "Customer", schema.Linked("C2")),
			schema.NewProperty("P3", "Note", schema.Text()),
			schema.NewProperty("P4", "Meta", schema.Nested("Meta", "P3")),
		}, "C1")
		require.NoError(t, err)
		assert.Equal(t, 1, strings.Count(out, "type Meta struct"))
		assert.Equal(t, "type Order struct {\n  Meta Meta\n  Customer Customer\n}\n\ntype Meta struct {\n  Note string\n}\n\ntype Customer struct {\n  Meta Meta\n}", out)
	})

	t.Run("self reference", func(t *testing.T) {
		out, err := GenerateFromClass([]schema.Node{
			schema.NewClass("C1", "Node", "P1"),
			schema.NewProperty("P1", "Next", schema.Linked("C1")),
		}, "C1")
		require.NoError(t, err)
		assert.Equal(t, "type Node struct {\n  Next Node\n}", out)
	})

	t.Run("nested object named like its parent", func(t *testing.T) {
		out, err := GenerateFromClass([]schema.Node{
			schema.NewClass("C1", "Tree", "P1"),
			schema.NewProperty("P1", "Tree", schema.Nested("Tree", "P2")),
			schema.NewProperty("P2", "Leaf", schema.Text()),
		}, "C1")
		require.NoError(t, err)
		assert.Equal(t, "type Tree struct {\n  Tree Tree\n}", out)
	})
}

func TestGenerateImportGating(t *testing.T) {
	t.Run("date on unreached class", func(t *testing.T) {
		out, err := GenerateFromClass([]schema.Node{
			schema.NewClass("C1", "Person", "P1"),
			schema.NewClass("C2", "Event", "P2"),
			schema.NewProperty("P1", "Name", schema.Text()),
			schema.NewProperty("P2", "At", schema.Date()),
		}, "C1")
		require.NoError(t, err)
		assert.NotContains(t, out, "import")
	})

	t.Run("date in nested object", func(t *testing.T) {
		out, err := GenerateFromClass([]schema.Node{
			schema.NewClass("C1", "Person", "P1"),
			schema.NewProperty("P1", "Life", schema.Nested("Life", "P2")),
			schema.NewProperty("P2", "Born", schema.Date()),
		}, "C1")
		require.NoError(t, err)
		assert.Equal(t, "import \"time\"\n\ntype Person struct {\n  Life Life\n}\n\ntype Life struct {\n  Born time.Time\n}", out)
	})
}

func TestGenerateErrors(t *testing.T) {
	t.Run("unresolved property", func(t *testing.T) {
		_, err := GenerateFromClass([]schema.Node{schema.NewClass("C1", "Person", "P9")}, "C1")
		assert.ErrorIs(t, err, ErrUnresolvedReference)
	})

	t.Run("unresolved nested property", func(t *testing.T) {
		_, err := GenerateFromClass([]schema.Node{
			schema.NewClass("C1", "Person", "P1"),
			schema.NewProperty("P1", "Address", schema.Nested("Address", "P9")),
		}, "C1")
		var rerr *UnresolvedReferenceError
		require.ErrorAs(t, err, &rerr)
		assert.Equal(t, "P9", rerr.Ref)
		assert.Equal(t, "Address", rerr.Owner)
	})

	t.Run("unresolved linked class", func(t *testing.T) {
		_, err := GenerateFromClass([]schema.Node{
			schema.NewClass("C1", "Person", "P1"),
			schema.NewProperty("P1", "Employer", schema.Linked("C9")),
		}, "C1")
		var rerr *UnresolvedReferenceError
		require.ErrorAs(t, err, &rerr)
		assert.Equal(t, RefClass, rerr.Kind)
	})

	t.Run("unsupported type", func(t *testing.T) {
		out, err := GenerateFromClass([]schema.Node{
			schema.NewClass("C1", "Person", "P1"),
			schema.NewProperty("P1", "Where", schema.Range{Type: "Geo"}),
		}, "C1")
		assert.Empty(t, out)
		assert.True(t, IsUnsupportedType(err))
	})

	t.Run("cyclic hierarchy", func(t *testing.T) {
		_, err := GenerateFromClass([]schema.Node{
			schema.NewSubclass("C1", "A", []string{"C2"}),
			schema.NewSubclass("C2", "B", []string{"C1"}),
		}, "C1")
		assert.ErrorIs(t, err, ErrCyclicHierarchy)
	})
}

func TestResultWithout(t *testing.T) {
	res, err := Generate(libraryGraph(), "C1")
	require.NoError(t, err)

	rest := res.Without(map[string]bool{"Person": true})
	require.Len(t, rest.Structs, 3)
	assert.Equal(t, "Address", rest.Root())
	assert.False(t, rest.DateUsed)
	assert.NotContains(t, rest.Text(), "import")

	all := res.Without(nil)
	assert.Equal(t, res.Text(), all.Text())
	assert.Equal(t, "", (&Result{}).Root())
}
