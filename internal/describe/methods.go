package describe

import (
	"go/types"

	"github.com/seitarof/eqcheck/internal/descriptor"
)

// methodOptions reads declared capabilities from the method set of *n:
// String() string converts to string, Equal(X) bool is a typed equality
// toward X, and All() returning a range func exposes an element type.
func (d *Describer) methodOptions(n *types.Named, kind descriptor.Kind) []descriptor.Option {
	var recv types.Type = types.NewPointer(n)
	if kind == descriptor.KindInterface {
		recv = n
	}
	ms := types.NewMethodSet(recv)

	var opts []descriptor.Option
	for i := 0; i < ms.Len(); i++ {
		fn, ok := ms.At(i).Obj().(*types.Func)
		if !ok {
			continue
		}
		sig, ok := fn.Type().(*types.Signature)
		if !ok {
			continue
		}
		switch fn.Name() {
		case "String":
			if isStringer(sig) {
				opts = append(opts, descriptor.WithConversion(d.Describe(types.Typ[types.String]), descriptor.ConversionExplicit))
			}
		case "Equal", "Equals":
			if target, ok := equalTarget(sig); ok {
				opts = append(opts, descriptor.WithEquatable(d.Describe(target)))
				// The nullable rule strips pointers before conversions are
				// consulted, so Equal(*X) must also be found under X.
				for {
					ptr, ok := types.Unalias(target).(*types.Pointer)
					if !ok {
						break
					}
					target = ptr.Elem()
					opts = append(opts, descriptor.WithEquatable(d.Describe(target)))
				}
			}
		case "All":
			if kind == descriptor.KindArray || kind == descriptor.KindCollection {
				continue
			}
			if elem, ok := allElem(sig); ok {
				opts = append(opts, d.elementOption(elem)...)
			}
		}
	}
	return opts
}

func isStringer(sig *types.Signature) bool {
	if sig.Params().Len() != 0 || sig.Results().Len() != 1 {
		return false
	}
	b, ok := sig.Results().At(0).Type().(*types.Basic)
	return ok && b.Kind() == types.String
}

func equalTarget(sig *types.Signature) (types.Type, bool) {
	if sig.Params().Len() != 1 || sig.Results().Len() != 1 || !isBool(sig.Results().At(0).Type()) {
		return nil, false
	}
	return sig.Params().At(0).Type(), true
}

func allElem(sig *types.Signature) (types.Type, bool) {
	if sig.Params().Len() != 0 || sig.Results().Len() != 1 {
		return nil, false
	}
	inner, ok := sig.Results().At(0).Type().Underlying().(*types.Signature)
	if !ok {
		return nil, false
	}
	_, elem, ok := rangeFuncElems(inner)
	return elem, ok
}
