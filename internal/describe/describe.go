// Package describe adapts go/types into equality type descriptors.
package describe

import (
	"go/types"

	"github.com/seitarof/eqcheck/internal/descriptor"
)

// Describer maps go/types types to descriptors. Results are memoised by
// type string so self-referential named types terminate. A Describer is not
// safe for concurrent use; descriptors it returns are.
type Describer struct {
	builder *descriptor.Builder
	memo    map[descriptor.Identity]*descriptor.Descriptor
	ifaces  []*types.Named
	known   map[*types.Named]bool
}

// Option configures a Describer.
type Option func(*Describer)

// WithInterfaces registers interfaces that concrete types are checked against.
func WithInterfaces(ifaces ...*types.Named) Option {
	return func(d *Describer) {
		d.Register(ifaces...)
	}
}

// New returns a describer with the universe error interface registered.
func New(opts ...Option) *Describer {
	d := &Describer{
		builder: descriptor.NewBuilder(),
		memo:    map[descriptor.Identity]*descriptor.Descriptor{},
		known:   map[*types.Named]bool{},
	}
	if errType, ok := types.Universe.Lookup("error").Type().(*types.Named); ok {
		d.Register(errType)
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Register adds interfaces to the implementation checks. Types described
// before the call keep their ancestors.
func (d *Describer) Register(ifaces ...*types.Named) {
	for _, n := range ifaces {
		if n == nil || d.known[n] {
			continue
		}
		if _, ok := n.Underlying().(*types.Interface); !ok {
			continue
		}
		d.known[n] = true
		d.ifaces = append(d.ifaces, n)
	}
}

// Describe returns the descriptor for t. A nil or invalid type is unknown.
func (d *Describer) Describe(t types.Type) *descriptor.Descriptor {
	if t == nil {
		return descriptor.NewUnknown("nil")
	}
	t = types.Unalias(t)
	id := identityOf(t)
	if cached, ok := d.memo[id]; ok {
		return cached
	}

	if n, ok := t.(*types.Named); ok {
		return d.describeNamed(n, id)
	}

	kind := kindOf(t)
	if kind == descriptor.KindUnknown {
		out := descriptor.NewUnknown(string(id))
		d.memo[id] = out
		return out
	}
	if kind == descriptor.KindInterface && isEmptyInterface(t) {
		id = descriptor.AnyIdentity
		if cached, ok := d.memo[id]; ok {
			return cached
		}
	}

	out := d.builder.Declare(id, kind)
	d.memo[id] = out
	return d.builder.Complete(out, d.shapeOptions(t, kind)...)
}

func (d *Describer) describeNamed(n *types.Named, id descriptor.Identity) *descriptor.Descriptor {
	under := n.Underlying()
	if isInvalid(under) {
		out := descriptor.NewUnknown(string(id))
		d.memo[id] = out
		return out
	}

	kind := kindOf(under)
	if kind == descriptor.KindUserDefined || kind == descriptor.KindTuple {
		kind = descriptor.KindUserDefined
	}
	if isEnum(n) {
		kind = descriptor.KindEnum
	}

	out := d.builder.Declare(id, kind)
	d.memo[id] = out

	var opts []descriptor.Option
	switch kind {
	case descriptor.KindNumeric, descriptor.KindBoolean, descriptor.KindString:
		opts = append(opts, descriptor.WithConversion(d.Describe(under), descriptor.ConversionExplicit))
	case descriptor.KindEnum, descriptor.KindUserDefined:
		if st, ok := under.(*types.Struct); ok {
			opts = append(opts, d.embeddedBases(st)...)
		}
	default:
		opts = append(opts, d.shapeOptions(under, kind)...)
	}

	if args := n.TypeArgs(); args.Len() > 0 {
		described := make([]*descriptor.Descriptor, 0, args.Len())
		for i := 0; i < args.Len(); i++ {
			described = append(described, d.Describe(args.At(i)))
		}
		opts = append(opts, descriptor.WithGeneric(identityOf(n.Origin()), described...))
	}

	opts = append(opts, d.methodOptions(n, kind)...)
	opts = append(opts, d.ancestorOptions(n, kind)...)
	return d.builder.Complete(out, opts...)
}

// shapeOptions fills in the structure of an unnamed type or of the
// underlying type of a named one.
func (d *Describer) shapeOptions(t types.Type, kind descriptor.Kind) []descriptor.Option {
	var opts []descriptor.Option
	switch v := t.(type) {
	case *types.Pointer:
		opts = append(opts, descriptor.WithUnderlying(d.Describe(v.Elem())))
	case *types.Slice:
		opts = append(opts, d.elementOption(v.Elem())...)
	case *types.Array:
		opts = append(opts, d.elementOption(v.Elem())...)
	case *types.Chan:
		opts = append(opts, d.elementOption(v.Elem())...)
	case *types.Map:
		opts = append(opts,
			descriptor.WithKey(d.Describe(v.Key())),
			descriptor.WithElement(d.Describe(v.Elem())),
		)
	case *types.Signature:
		if key, elem, ok := rangeFuncElems(v); ok {
			if key != nil {
				opts = append(opts, descriptor.WithKey(d.Describe(key)))
			}
			opts = append(opts, d.elementOption(elem)...)
		}
	case *types.Struct:
		elems := make([]*descriptor.Descriptor, 0, v.NumFields())
		for i := 0; i < v.NumFields(); i++ {
			elems = append(elems, d.Describe(v.Field(i).Type()))
		}
		opts = append(opts, descriptor.WithTupleElements(elems...))
		opts = append(opts, d.embeddedBases(v)...)
	case *types.Tuple:
		elems := make([]*descriptor.Descriptor, 0, v.Len())
		for i := 0; i < v.Len(); i++ {
			elems = append(elems, d.Describe(v.At(i).Type()))
		}
		opts = append(opts, descriptor.WithTupleElements(elems...))
	}
	if kind != descriptor.KindInterface && kind != descriptor.KindNullable {
		opts = append(opts, d.ancestorOptions(t, kind)...)
	}
	return opts
}

// elementOption leaves the element unset for any-typed elements so the
// enumerable is treated as non-generic.
func (d *Describer) elementOption(elem types.Type) []descriptor.Option {
	if isEmptyInterface(elem) {
		return nil
	}
	return []descriptor.Option{descriptor.WithElement(d.Describe(elem))}
}

// ancestorOptions lists any plus every registered interface t implements,
// either directly or through its pointer.
func (d *Describer) ancestorOptions(t types.Type, kind descriptor.Kind) []descriptor.Option {
	ids := make([]descriptor.Identity, 0, len(d.ifaces)+1)
	if kind != descriptor.KindInterface || !isEmptyInterface(t) {
		ids = append(ids, descriptor.AnyIdentity)
	}
	if _, ok := t.(*types.Tuple); ok {
		return []descriptor.Option{descriptor.WithAncestors(ids...)}
	}
	iface, isIface := t.Underlying().(*types.Interface)
	for _, n := range d.ifaces {
		if types.Identical(n, t) {
			continue
		}
		target := n.Underlying().(*types.Interface)
		if types.Implements(t, target) {
			ids = append(ids, identityOf(n))
			continue
		}
		if !isIface {
			if types.Implements(types.NewPointer(t), target) {
				ids = append(ids, identityOf(n))
			}
		}
	}
	if isIface {
		for i := 0; i < iface.NumEmbeddeds(); i++ {
			if emb, ok := types.Unalias(iface.EmbeddedType(i)).(*types.Named); ok {
				ids = append(ids, identityOf(emb))
			}
		}
	}
	return []descriptor.Option{descriptor.WithAncestors(ids...)}
}

func identityOf(t types.Type) descriptor.Identity {
	return descriptor.Identity(types.TypeString(t, nil))
}
