package descriptor

// Kind is the closed set of type categories the equality engine dispatches on.
type Kind int

const (
	// KindUnknown marks a type the host could not resolve.
	KindUnknown Kind = iota
	KindNumeric
	KindBoolean
	KindString
	KindEnum
	KindNullable
	KindArray
	KindCollection
	KindTuple
	KindUserDefined
	KindInterface
)

var kindNames = [...]string{
	KindUnknown:     "unknown",
	KindNumeric:     "numeric",
	KindBoolean:     "boolean",
	KindString:      "string",
	KindEnum:        "enum",
	KindNullable:    "nullable",
	KindArray:       "array",
	KindCollection:  "collection",
	KindTuple:       "tuple",
	KindUserDefined: "user-defined",
	KindInterface:   "interface",
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return "kind(?)"
	}
	return kindNames[k]
}

// ConversionKind tells whether a declared conversion applies implicitly.
type ConversionKind int

const (
	ConversionExplicit ConversionKind = iota
	ConversionImplicit
)

// Conversion is a source->target conversion declared by the owning descriptor.
type Conversion struct {
	Target Identity
	Kind   ConversionKind
}
