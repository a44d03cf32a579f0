package gen

import (
	"log/slog"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/syssam/structgen/schema"
)

// Context is the state of a single generation run. It indexes the graph
// nodes by uid, holds the class records the flattener rewrites and records
// whether a date type was mapped. A Context is not safe for concurrent use
// and must not be shared between runs.
type Context struct {
	cfg        *Config
	log        *slog.Logger
	classes    map[string]*schema.Class
	properties map[string]*schema.Property
	// class uids in graph order.
	order    []string
	dateUsed bool
	title    cases.Caser
}

// NewContext builds the lookup tables of the graph in a single pass. Nodes
// that are neither classes nor properties are ignored, and a uid declared
// twice resolves to its last declaration. References are not checked here.
func NewContext(nodes []schema.Node, cfg *Config) *Context {
	if cfg == nil {
		cfg = MustNewConfig()
	}
	c := &Context{
		cfg:        cfg,
		log:        cfg.logger(),
		classes:    make(map[string]*schema.Class),
		properties: make(map[string]*schema.Property),
	}
	if cfg.ExportedFields {
		c.title = cases.Title(language.English, cases.NoLower)
	}
	for _, n := range nodes {
		switch n.Type {
		case schema.KindClass:
			if _, ok := c.classes[n.UID]; !ok {
				c.order = append(c.order, n.UID)
			}
			c.classes[n.UID] = n.Class()
		case schema.KindProperty:
			c.properties[n.UID] = n.Property()
		}
	}
	c.log.Debug("graph indexed", "classes", len(c.classes), "properties", len(c.properties))
	return c
}

// Class returns the class record of the given uid.
func (c *Context) Class(uid string) (*schema.Class, bool) {
	cls, ok := c.classes[uid]
	return cls, ok
}

// Property returns the property record of the given uid.
func (c *Context) Property(uid string) (*schema.Property, bool) {
	p, ok := c.properties[uid]
	return p, ok
}

// Classes returns the class records in graph order.
func (c *Context) Classes() []*schema.Class {
	classes := make([]*schema.Class, 0, len(c.order))
	for _, uid := range c.order {
		classes = append(classes, c.classes[uid])
	}
	return classes
}

// DateUsed reports whether a Date range was mapped during the run.
func (c *Context) DateUsed() bool { return c.dateUsed }

// property resolves a property ref held by owner.
func (c *Context) property(ref, owner string) (*schema.Property, error) {
	p, ok := c.properties[ref]
	if !ok {
		return nil, NewUnresolvedReferenceError(RefProperty, ref, owner)
	}
	return p, nil
}

// class resolves a class ref held by owner.
func (c *Context) class(ref, owner string) (*schema.Class, error) {
	cls, ok := c.classes[ref]
	if !ok {
		return nil, NewUnresolvedReferenceError(RefClass, ref, owner)
	}
	return cls, nil
}

// fieldName returns the emitted name of a property label.
func (c *Context) fieldName(label string) string { return c.exported(label) }

// typeName returns the emitted name of a struct label. It follows the field
// casing so an exported field never refers to an unexported type.
func (c *Context) typeName(label string) string { return c.exported(label) }

func (c *Context) exported(label string) string {
	if !c.cfg.ExportedFields {
		return label
	}
	return c.title.String(label)
}
