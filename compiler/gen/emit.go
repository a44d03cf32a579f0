package gen

import (
	"github.com/syssam/structgen/schema"
)

type (
	// Struct is an emitted struct definition.
	Struct struct {
		Name   string
		Fields []Field
	}

	// Field is a single field line of an emitted struct.
	Field struct {
		Name string
		Type GoType
	}
)

type emitState uint8

const (
	emitPending emitState = iota + 1
	emitDone
)

// emitter walks flattened property lists and emits one struct per name.
// A label is reserved as pending before its members are visited, so shared
// and self-referencing shapes are emitted exactly once.
type emitter struct {
	ctx   *Context
	state map[string]emitState
	// structs in reservation order.
	structs []*Struct
}

func newEmitter(c *Context) *emitter {
	return &emitter{
		ctx:   c,
		state: make(map[string]emitState),
	}
}

// emit builds the struct for label. Nested objects and linked classes are
// emitted as sibling structs under their own labels. Field order follows
// the property list.
func (e *emitter) emit(label string, specs []schema.PropertyRef) error {
	name := e.ctx.typeName(label)
	if _, ok := e.state[name]; ok {
		return nil
	}
	s := &Struct{Name: name, Fields: make([]Field, 0, len(specs))}
	e.state[name] = emitPending
	e.structs = append(e.structs, s)

	for _, spec := range specs {
		p, err := e.ctx.property(spec.Ref, label)
		if err != nil {
			return err
		}
		switch p.Range.Type {
		case schema.TypeNestedObject:
			if err := e.emit(p.Label, p.Range.PropertySpecs); err != nil {
				return err
			}
		case schema.TypeLinkedClass:
			cls, err := e.ctx.class(p.Range.Ref, p.Label)
			if err != nil {
				return err
			}
			if err := e.emit(cls.Label, cls.PropertySpecs); err != nil {
				return err
			}
		}
		typ, err := e.ctx.MapType(p)
		if err != nil {
			return err
		}
		s.Fields = append(s.Fields, Field{Name: e.ctx.fieldName(p.Label), Type: typ})
	}
	e.state[name] = emitDone
	e.ctx.log.Debug("struct emitted", "struct", name, "fields", len(s.Fields))
	return nil
}
