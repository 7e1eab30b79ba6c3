package descriptor

import (
	"cmp"
	"slices"
	"strings"
)

// Identity is a stable key for one type instantiation.
type Identity string

// Well-known identities shared by adapters and tests.
const (
	AnyIdentity    Identity = "any"
	StringIdentity Identity = "string"
	BoolIdentity   Identity = "bool"
)

// Descriptor is an immutable structural summary of one type.
type Descriptor struct {
	kind       Kind
	id         Identity
	elem       *Descriptor
	key        *Descriptor
	elems      []*Descriptor
	underlying *Descriptor
	origin     Identity
	typeArgs   []*Descriptor
	convs      map[Identity]Conversion
	equatable  map[Identity]struct{}
	ancestors  map[Identity]struct{}
	completed  bool
}

// Option configures a descriptor while it is being built.
type Option func(*Descriptor)

// WithElement attaches an enumerable capability with element type elem.
func WithElement(elem *Descriptor) Option {
	return func(d *Descriptor) {
		d.elem = mustChild(elem, "element")
	}
}

// WithKey sets the key type of a keyed collection.
func WithKey(key *Descriptor) Option {
	return func(d *Descriptor) {
		d.key = mustChild(key, "key")
	}
}

// WithBases records base types. Their own ancestors are inherited.
func WithBases(bases ...*Descriptor) Option {
	return func(d *Descriptor) {
		for _, b := range bases {
			b = mustChild(b, "base")
			d.addAncestor(b.id)
			for id := range b.ancestors {
				d.addAncestor(id)
			}
		}
	}
}

// WithAncestors records ancestor identities directly.
func WithAncestors(ids ...Identity) Option {
	return func(d *Descriptor) {
		for _, id := range ids {
			d.addAncestor(id)
		}
	}
}

// WithConversion declares a conversion from the owning type to target.
func WithConversion(target *Descriptor, kind ConversionKind) Option {
	return func(d *Descriptor) {
		target = mustChild(target, "conversion target")
		if d.convs == nil {
			d.convs = map[Identity]Conversion{}
		}
		d.convs[target.id] = Conversion{Target: target.id, Kind: kind}
	}
}

// WithEquatable declares a typed equality from the owning type to target.
func WithEquatable(target *Descriptor) Option {
	return func(d *Descriptor) {
		target = mustChild(target, "equatable target")
		if d.equatable == nil {
			d.equatable = map[Identity]struct{}{}
		}
		d.equatable[target.id] = struct{}{}
	}
}

// WithUnderlying sets the wrapped type of a nullable.
func WithUnderlying(of *Descriptor) Option {
	return func(d *Descriptor) {
		d.underlying = mustChild(of, "nullable underlying")
	}
}

// WithTupleElements sets the ordered elements of a tuple.
func WithTupleElements(elems ...*Descriptor) Option {
	return func(d *Descriptor) {
		d.elems = make([]*Descriptor, 0, len(elems))
		for _, e := range elems {
			d.elems = append(d.elems, mustChild(e, "tuple element"))
		}
	}
}

// WithGeneric records the generic origin and type arguments of an instantiation.
func WithGeneric(origin Identity, args ...*Descriptor) Option {
	return func(d *Descriptor) {
		d.origin = origin
		d.typeArgs = make([]*Descriptor, 0, len(args))
		for _, a := range args {
			d.typeArgs = append(d.typeArgs, mustChild(a, "type argument"))
		}
	}
}

// NewUnknown returns a descriptor for a type the host could not resolve.
func NewUnknown(name string) *Descriptor {
	return build(KindUnknown, Identity("<error "+name+">"))
}

// NewNumeric returns a numeric primitive such as int32 or float64.
func NewNumeric(id Identity, opts ...Option) *Descriptor {
	return build(KindNumeric, id, opts...)
}

// NewBoolean returns a boolean descriptor.
func NewBoolean(id Identity, opts ...Option) *Descriptor {
	return build(KindBoolean, id, opts...)
}

// NewString returns a string descriptor.
func NewString(id Identity, opts ...Option) *Descriptor {
	return build(KindString, id, opts...)
}

// NewEnum returns a nominal enumeration.
func NewEnum(id Identity, opts ...Option) *Descriptor {
	return build(KindEnum, id, opts...)
}

// NewNullable wraps of. The identity is derived from the wrapped type.
func NewNullable(of *Descriptor) *Descriptor {
	of = mustChild(of, "nullable underlying")
	return build(KindNullable, "*"+of.id, WithUnderlying(of))
}

// NewArray returns an unnamed array over elem. A nil elem is non-generic.
func NewArray(elem *Descriptor) *Descriptor {
	if elem == nil {
		return build(KindArray, "[]any")
	}
	return build(KindArray, "[]"+elem.id, WithElement(elem))
}

// NewCollection returns a named enumerable. A nil elem is non-generic.
func NewCollection(id Identity, elem *Descriptor, opts ...Option) *Descriptor {
	if elem != nil {
		opts = append([]Option{WithElement(elem)}, opts...)
	}
	return build(KindCollection, id, opts...)
}

// NewMap returns a keyed collection.
func NewMap(key, elem *Descriptor) *Descriptor {
	key = mustChild(key, "map key")
	elem = mustChild(elem, "map element")
	return build(KindCollection, "map["+key.id+"]"+elem.id, WithKey(key), WithElement(elem))
}

// NewTuple returns a structural tuple. Its identity is the element list.
func NewTuple(elems ...*Descriptor) *Descriptor {
	ids := make([]string, 0, len(elems))
	for _, e := range elems {
		ids = append(ids, string(mustChild(e, "tuple element").id))
	}
	return NewNamedTuple(Identity("("+strings.Join(ids, ", ")+")"), elems...)
}

// NewNamedTuple returns a nominal tuple.
func NewNamedTuple(id Identity, elems ...*Descriptor) *Descriptor {
	return build(KindTuple, id, WithTupleElements(elems...))
}

// NewUserDefined returns a class or struct type.
func NewUserDefined(id Identity, opts ...Option) *Descriptor {
	return build(KindUserDefined, id, opts...)
}

// NewInterface returns an interface type.
func NewInterface(id Identity, opts ...Option) *Descriptor {
	return build(KindInterface, id, opts...)
}

func build(kind Kind, id Identity, opts ...Option) *Descriptor {
	d := &Descriptor{kind: kind, id: id}
	for _, opt := range opts {
		opt(d)
	}
	d.validate()
	d.completed = true
	return d
}

// validate panics on a descriptor the rules cannot traverse.
func (d *Descriptor) validate() {
	if d.kind == KindNullable && d.underlying == nil {
		panic("descriptor: nullable " + string(d.id) + " has no underlying type")
	}
}

func mustChild(d *Descriptor, role string) *Descriptor {
	if d == nil {
		panic("descriptor: nil " + role)
	}
	return d
}

func (d *Descriptor) addAncestor(id Identity) {
	if id == d.id {
		return
	}
	if d.ancestors == nil {
		d.ancestors = map[Identity]struct{}{}
	}
	d.ancestors[id] = struct{}{}
}

// Kind returns the type category.
func (d *Descriptor) Kind() Kind { return d.kind }

// Identity returns the stable type key.
func (d *Descriptor) Identity() Identity { return d.id }

// Element returns the element type of an enumerable, or nil.
func (d *Descriptor) Element() *Descriptor { return d.elem }

// Key returns the key type of a keyed collection, or nil.
func (d *Descriptor) Key() *Descriptor { return d.key }

// Underlying returns the wrapped type of a nullable, or nil.
func (d *Descriptor) Underlying() *Descriptor { return d.underlying }

// TupleElements returns a copy of the tuple elements.
func (d *Descriptor) TupleElements() []*Descriptor { return slices.Clone(d.elems) }

// Arity returns the number of tuple elements.
func (d *Descriptor) Arity() int { return len(d.elems) }

// TupleElement returns the i-th tuple element.
func (d *Descriptor) TupleElement(i int) *Descriptor { return d.elems[i] }

// Origin returns the generic origin identity, empty for non-generic types.
func (d *Descriptor) Origin() Identity { return d.origin }

// TypeArguments returns a copy of the generic type arguments.
func (d *Descriptor) TypeArguments() []*Descriptor { return slices.Clone(d.typeArgs) }

// NumTypeArguments returns the number of generic type arguments.
func (d *Descriptor) NumTypeArguments() int { return len(d.typeArgs) }

// TypeArgument returns the i-th generic type argument.
func (d *Descriptor) TypeArgument(i int) *Descriptor { return d.typeArgs[i] }

// Enumerable reports whether values of the type yield elements.
func (d *Descriptor) Enumerable() bool {
	return d.kind == KindArray || d.kind == KindCollection || d.elem != nil
}

// NonGeneric reports an enumerable whose element type is unknown.
func (d *Descriptor) NonGeneric() bool {
	return d.Enumerable() && d.elem == nil
}

// ConvertsTo returns the conversion declared toward target, if any.
func (d *Descriptor) ConvertsTo(target Identity) (Conversion, bool) {
	c, ok := d.convs[target]
	return c, ok
}

// Conversions returns declared conversions sorted by target.
func (d *Descriptor) Conversions() []Conversion {
	out := make([]Conversion, 0, len(d.convs))
	for _, c := range d.convs {
		out = append(out, c)
	}
	slices.SortFunc(out, func(a, b Conversion) int { return cmp.Compare(a.Target, b.Target) })
	return out
}

// EquatableTo reports a declared typed equality toward target.
func (d *Descriptor) EquatableTo(target Identity) bool {
	_, ok := d.equatable[target]
	return ok
}

// HasAncestor reports whether id is a base type or implemented interface.
func (d *Descriptor) HasAncestor(id Identity) bool {
	_, ok := d.ancestors[id]
	return ok
}

// Ancestors returns ancestor identities sorted.
func (d *Descriptor) Ancestors() []Identity {
	out := make([]Identity, 0, len(d.ancestors))
	for id := range d.ancestors {
		out = append(out, id)
	}
	slices.Sort(out)
	return out
}

func (d *Descriptor) String() string {
	if d == nil {
		return "<nil>"
	}
	return string(d.id) + " (" + d.kind.String() + ")"
}
