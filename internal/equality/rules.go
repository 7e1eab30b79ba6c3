package equality

import "github.com/seitarof/eqcheck/internal/descriptor"

// DefaultRules returns built-in rules in priority order.
func DefaultRules() []Rule {
	return []Rule{
		&UnknownRule{},
		&IdentityRule{},
		&NullableRule{},
		&EnumRule{},
		&NumericRule{},
		&CollectionRule{},
		&TupleRule{},
		&GenericRule{},
		&InheritanceRule{},
		&InterfaceRule{},
		&ConversionRule{},
	}
}

// UnknownRule: unresolved type on either side -> compatible.
type UnknownRule struct{}

func (r *UnknownRule) Name() string { return "unknown" }

func (r *UnknownRule) Try(_ *Walker, left, right *descriptor.Descriptor) (Verdict, bool) {
	if isUnknown(left) || isUnknown(right) {
		return Compatible, true
	}
	return Incompatible, false
}

// IdentityRule: same type -> compatible.
type IdentityRule struct{}

func (r *IdentityRule) Name() string { return "identity" }

func (r *IdentityRule) Try(_ *Walker, left, right *descriptor.Descriptor) (Verdict, bool) {
	if left.Identity() == right.Identity() {
		return Compatible, true
	}
	return Incompatible, false
}

// NullableRule unwraps a nullable side and compares the wrapped type.
type NullableRule struct{}

func (r *NullableRule) Name() string { return "nullable" }

func (r *NullableRule) Try(w *Walker, left, right *descriptor.Descriptor) (Verdict, bool) {
	if left.Kind() == descriptor.KindNullable {
		return w.Compare(left.Underlying(), right), true
	}
	if right.Kind() == descriptor.KindNullable {
		return w.Compare(left, right.Underlying()), true
	}
	return Incompatible, false
}

// EnumRule: an enum only equals the identical enum. An interface on the
// other side can hold the enum value, so that case is left to later rules.
type EnumRule struct{}

func (r *EnumRule) Name() string { return "enum" }

func (r *EnumRule) Try(_ *Walker, left, right *descriptor.Descriptor) (Verdict, bool) {
	if left.Kind() != descriptor.KindEnum && right.Kind() != descriptor.KindEnum {
		return Incompatible, false
	}
	if left.Kind() == descriptor.KindInterface || right.Kind() == descriptor.KindInterface {
		return Incompatible, false
	}
	if left.Identity() == right.Identity() {
		return Compatible, true
	}
	return Incompatible, true
}

// NumericRule: any two numeric kinds are comparable after widening.
type NumericRule struct{}

func (r *NumericRule) Name() string { return "numeric" }

func (r *NumericRule) Try(_ *Walker, left, right *descriptor.Descriptor) (Verdict, bool) {
	if left.Kind() == descriptor.KindNumeric && right.Kind() == descriptor.KindNumeric {
		return Compatible, true
	}
	return Incompatible, false
}

// CollectionRule compares enumerables element-wise. Keyed collections only
// match keyed collections with identical key types.
type CollectionRule struct{}

func (r *CollectionRule) Name() string { return "collection" }

func (r *CollectionRule) Try(w *Walker, left, right *descriptor.Descriptor) (Verdict, bool) {
	if !left.Enumerable() || !right.Enumerable() {
		return Incompatible, false
	}
	// Element type unknown: over-approximated as "any".
	if left.NonGeneric() || right.NonGeneric() {
		return Compatible, true
	}

	leftKey, rightKey := left.Key(), right.Key()
	if (leftKey == nil) != (rightKey == nil) {
		return Incompatible, false
	}
	if leftKey != nil && !sameKey(leftKey, rightKey) {
		return Incompatible, true
	}
	return w.Compare(left.Element(), right.Element()), true
}

// TupleRule compares tuples of equal arity element by element.
type TupleRule struct{}

func (r *TupleRule) Name() string { return "tuple" }

func (r *TupleRule) Try(w *Walker, left, right *descriptor.Descriptor) (Verdict, bool) {
	if left.Kind() != descriptor.KindTuple || right.Kind() != descriptor.KindTuple {
		return Incompatible, false
	}
	if left.Arity() != right.Arity() {
		return Incompatible, true
	}
	v := Compatible
	for i := range left.Arity() {
		v = And(v, w.Compare(left.TupleElement(i), right.TupleElement(i)))
		if v == Incompatible {
			break
		}
	}
	return v, true
}

// GenericRule compares two instantiations of one generic type by their
// type arguments.
type GenericRule struct{}

func (r *GenericRule) Name() string { return "generic" }

func (r *GenericRule) Try(w *Walker, left, right *descriptor.Descriptor) (Verdict, bool) {
	if left.Origin() == "" || left.Origin() != right.Origin() {
		return Incompatible, false
	}
	if left.NumTypeArguments() != right.NumTypeArguments() {
		return Incompatible, false
	}
	v := Compatible
	for i := range left.NumTypeArguments() {
		v = And(v, w.Compare(left.TypeArgument(i), right.TypeArgument(i)))
		if v == Incompatible {
			break
		}
	}
	return v, true
}

// InheritanceRule: one side derives from or implements the other.
type InheritanceRule struct{}

func (r *InheritanceRule) Name() string { return "inheritance" }

func (r *InheritanceRule) Try(_ *Walker, left, right *descriptor.Descriptor) (Verdict, bool) {
	if left.HasAncestor(right.Identity()) || right.HasAncestor(left.Identity()) {
		return Compatible, true
	}
	return Incompatible, false
}

// InterfaceRule: one dynamic value may implement two interfaces at once.
type InterfaceRule struct{}

func (r *InterfaceRule) Name() string { return "interface" }

func (r *InterfaceRule) Try(_ *Walker, left, right *descriptor.Descriptor) (Verdict, bool) {
	if left.Kind() == descriptor.KindInterface && right.Kind() == descriptor.KindInterface {
		return Compatible, true
	}
	return Incompatible, false
}

// ConversionRule: left declares a conversion or typed equality toward right.
// The reverse direction is not implied.
type ConversionRule struct{}

func (r *ConversionRule) Name() string { return "conversion" }

func (r *ConversionRule) Try(_ *Walker, left, right *descriptor.Descriptor) (Verdict, bool) {
	if _, ok := left.ConvertsTo(right.Identity()); ok {
		return Compatible, true
	}
	if left.EquatableTo(right.Identity()) {
		return Compatible, true
	}
	return Incompatible, false
}

func isUnknown(d *descriptor.Descriptor) bool {
	return d.Kind() == descriptor.KindUnknown
}

func sameKey(left, right *descriptor.Descriptor) bool {
	return left.Identity() == right.Identity() || isUnknown(left) || isUnknown(right)
}
