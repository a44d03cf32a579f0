package gen

import (
	"slices"

	"github.com/syssam/structgen/schema"
)

type flattenState uint8

const (
	flattenVisiting flattenState = iota + 1
	flattenDone
)

// flattener merges ancestor property specs into every class.
type flattener struct {
	ctx   *Context
	state map[string]flattenState
}

// Flatten rewrites the property list of every class in the context so that
// it holds the inherited specs followed by its own. Parents are resolved
// depth first, left to right. A spec whose property label is already in the
// list replaces the earlier entry in place, so a subclass overrides an
// ancestor field of the same name and the last declaration wins.
//
// Classes are visited in graph order. An ancestor chain that loops back
// fails with a CyclicHierarchyError, a dangling parent or property ref with
// an UnresolvedReferenceError.
func Flatten(c *Context) error {
	f := &flattener{
		ctx:   c,
		state: make(map[string]flattenState, len(c.order)),
	}
	for _, uid := range c.order {
		if err := f.flatten(uid, nil); err != nil {
			return err
		}
	}
	c.log.Debug("hierarchies flattened", "classes", len(c.order))
	return nil
}

func (f *flattener) flatten(uid string, path []string) error {
	switch f.state[uid] {
	case flattenDone:
		return nil
	case flattenVisiting:
		start := slices.Index(path, uid)
		cycle := append(slices.Clone(path[start:]), uid)
		return NewCyclicHierarchyError(cycle...)
	}
	cls := f.ctx.classes[uid]
	f.state[uid] = flattenVisiting
	path = append(path, uid)

	m := newSpecMerger(f.ctx, cls.Label)
	for _, ref := range cls.ParentRefs {
		parent, err := f.ctx.class(ref, cls.Label)
		if err != nil {
			return err
		}
		if err := f.flatten(ref, path); err != nil {
			return err
		}
		if err := m.add(parent.PropertySpecs...); err != nil {
			return err
		}
	}
	if err := m.add(cls.PropertySpecs...); err != nil {
		return err
	}
	cls.PropertySpecs = m.specs
	f.state[uid] = flattenDone
	return nil
}

// specMerger accumulates property specs with label shadowing.
type specMerger struct {
	ctx    *Context
	owner  string
	specs  []schema.PropertyRef
	labels map[string]int
}

func newSpecMerger(c *Context, owner string) *specMerger {
	return &specMerger{
		ctx:    c,
		owner:  owner,
		labels: make(map[string]int),
	}
}

func (m *specMerger) add(refs ...schema.PropertyRef) error {
	for _, ref := range refs {
		p, err := m.ctx.property(ref.Ref, m.owner)
		if err != nil {
			return err
		}
		if i, ok := m.labels[p.Label]; ok {
			m.specs[i] = ref
			continue
		}
		m.labels[p.Label] = len(m.specs)
		m.specs = append(m.specs, ref)
	}
	return nil
}

// FlattenGraph indexes the nodes and returns every class with its
// inheritance-resolved property list, in graph order.
func FlattenGraph(nodes []schema.Node, opts ...Option) ([]*schema.Class, error) {
	cfg, err := NewConfig(opts...)
	if err != nil {
		return nil, err
	}
	c := NewContext(nodes, cfg)
	if err := Flatten(c); err != nil {
		return nil, err
	}
	return c.Classes(), nil
}
