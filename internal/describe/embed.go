package describe

import (
	"go/types"

	"github.com/seitarof/eqcheck/internal/descriptor"
)

// embeddedBases treats every embedded named type as a base. Bases of bases
// are inherited through descriptor.WithBases.
func (d *Describer) embeddedBases(st *types.Struct) []descriptor.Option {
	var bases []*descriptor.Descriptor
	for i := 0; i < st.NumFields(); i++ {
		f := st.Field(i)
		if !f.Embedded() {
			continue
		}
		named := resolveEmbeddedNamed(f.Type())
		if named == nil {
			continue
		}
		bases = append(bases, d.Describe(named))
	}
	if len(bases) == 0 {
		return nil
	}
	return []descriptor.Option{descriptor.WithBases(bases...)}
}

func resolveEmbeddedNamed(t types.Type) *types.Named {
	switch v := t.(type) {
	case *types.Alias:
		return resolveEmbeddedNamed(v.Rhs())
	case *types.Named:
		return v
	case *types.Pointer:
		return resolveEmbeddedNamed(v.Elem())
	}
	return nil
}

// InterfacesIn collects the named interfaces reachable from t. Callers
// register them so concrete operands are checked against the interfaces
// they are compared with.
func InterfacesIn(t types.Type) []*types.Named {
	var out []*types.Named
	seen := map[types.Type]bool{}
	var walk func(types.Type)
	walk = func(t types.Type) {
		if t == nil || seen[t] {
			return
		}
		seen[t] = true
		switch v := types.Unalias(t).(type) {
		case *types.Named:
			if _, ok := v.Underlying().(*types.Interface); ok {
				out = append(out, v)
				return
			}
			args := v.TypeArgs()
			for i := 0; i < args.Len(); i++ {
				walk(args.At(i))
			}
			walk(v.Underlying())
		case *types.Pointer:
			walk(v.Elem())
		case *types.Slice:
			walk(v.Elem())
		case *types.Array:
			walk(v.Elem())
		case *types.Chan:
			walk(v.Elem())
		case *types.Map:
			walk(v.Key())
			walk(v.Elem())
		case *types.Struct:
			for i := 0; i < v.NumFields(); i++ {
				walk(v.Field(i).Type())
			}
		case *types.Tuple:
			for i := 0; i < v.Len(); i++ {
				walk(v.At(i).Type())
			}
		}
	}
	walk(t)
	return out
}
