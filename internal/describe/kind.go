package describe

import (
	"go/types"

	"github.com/seitarof/eqcheck/internal/descriptor"
)

// kindOf classifies an unnamed type, or the underlying type of a named one.
func kindOf(t types.Type) descriptor.Kind {
	switch v := t.(type) {
	case *types.Basic:
		return basicKind(v)
	case *types.Pointer:
		return descriptor.KindNullable
	case *types.Slice, *types.Array:
		return descriptor.KindArray
	case *types.Map, *types.Chan:
		return descriptor.KindCollection
	case *types.Signature:
		if _, _, ok := rangeFuncElems(v); ok {
			return descriptor.KindCollection
		}
		return descriptor.KindUserDefined
	case *types.Struct, *types.Tuple:
		return descriptor.KindTuple
	case *types.Interface:
		return descriptor.KindInterface
	default:
		// Type parameters and unions could be anything.
		return descriptor.KindUnknown
	}
}

func basicKind(b *types.Basic) descriptor.Kind {
	info := b.Info()
	switch {
	case b.Kind() == types.Invalid, b.Kind() == types.UntypedNil:
		return descriptor.KindUnknown
	case info&types.IsBoolean != 0:
		return descriptor.KindBoolean
	case info&types.IsString != 0:
		return descriptor.KindString
	case info&types.IsNumeric != 0:
		return descriptor.KindNumeric
	default:
		return descriptor.KindUserDefined
	}
}

func isInvalid(t types.Type) bool {
	b, ok := t.(*types.Basic)
	return ok && b.Kind() == types.Invalid
}

func isEmptyInterface(t types.Type) bool {
	iface, ok := types.Unalias(t).Underlying().(*types.Interface)
	return ok && iface.Empty()
}

// isEnum reports a named integer or string type with at least one
// package-level constant of exactly that type.
func isEnum(n *types.Named) bool {
	b, ok := n.Underlying().(*types.Basic)
	if !ok || b.Info()&(types.IsInteger|types.IsString) == 0 {
		return false
	}
	pkg := n.Obj().Pkg()
	if pkg == nil {
		return false
	}
	scope := pkg.Scope()
	for _, name := range scope.Names() {
		c, ok := scope.Lookup(name).(*types.Const)
		if ok && types.Identical(c.Type(), n) {
			return true
		}
	}
	return false
}

// rangeFuncElems matches func(yield func(E) bool) and
// func(yield func(K, V) bool).
func rangeFuncElems(sig *types.Signature) (key, elem types.Type, ok bool) {
	if sig.Params().Len() != 1 || sig.Results().Len() != 0 {
		return nil, nil, false
	}
	yield, ok := sig.Params().At(0).Type().Underlying().(*types.Signature)
	if !ok || yield.Results().Len() != 1 || !isBool(yield.Results().At(0).Type()) {
		return nil, nil, false
	}
	switch yield.Params().Len() {
	case 1:
		return nil, yield.Params().At(0).Type(), true
	case 2:
		return yield.Params().At(0).Type(), yield.Params().At(1).Type(), true
	default:
		return nil, nil, false
	}
}

func isBool(t types.Type) bool {
	b, ok := t.Underlying().(*types.Basic)
	return ok && b.Info()&types.IsBoolean != 0
}
