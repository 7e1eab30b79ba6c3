package describe

import (
	"go/ast"
	"go/importer"
	"go/parser"
	"go/token"
	"go/types"
	"testing"

	"github.com/seitarof/eqcheck/internal/descriptor"
	"github.com/seitarof/eqcheck/internal/equality"
)

const fixtureSrc = `package fixture

type Seq[V any] func(yield func(V) bool)

type Color int

const (
	Red Color = iota
	Green
	Blue
)

type Shade int

const (
	Light Shade = iota
	Dark
	Darker
)

type Level string

const Low Level = "low"

type Celsius float64

type Animal struct{ Name string }

type Dog struct {
	Animal
	Breed string
}

type Puppy struct{ *Dog }

type Cat struct{ Animal }

type Link struct{ Raw string }

func (l Link) String() string { return l.Raw }

type Money struct{ Cents int64 }

type Price struct{ Amount Money }

func (p Price) Equal(m Money) bool { return p.Amount == m }

type Quote struct{ Total Money }

func (q *Quote) Equal(m *Money) bool { return q.Total == *m }

type A []A

type B []B

type Pair[K comparable, V any] struct {
	Key   K
	Value V
}

type Bag struct{ items []int }

func (b *Bag) All() Seq[int] {
	return func(yield func(int) bool) {
		for _, v := range b.items {
			if !yield(v) {
				return
			}
		}
	}
}

type Shape interface{ Area() float64 }

type Square struct{ Side float64 }

func (s Square) Area() float64 { return s.Side * s.Side }

type Circle struct{ R float64 }

func (c *Circle) Area() float64 { return 3 * c.R * c.R }

type Broken = Missing
`

func loadFixture(t *testing.T) *types.Package {
	t.Helper()
	fset := token.NewFileSet()
	f, err := parser.ParseFile(fset, "fixture.go", fixtureSrc, 0)
	if err != nil {
		t.Fatalf("ParseFile() error = %v", err)
	}
	conf := types.Config{
		Importer: importer.Default(),
		Error:    func(error) {},
	}
	pkg, _ := conf.Check("example.com/fixture", fset, []*ast.File{f}, nil)
	if pkg == nil {
		t.Fatal("type check produced no package")
	}
	return pkg
}

func evalType(t *testing.T, pkg *types.Package, expr string) types.Type {
	t.Helper()
	tv, err := types.Eval(token.NewFileSet(), pkg, token.NoPos, expr)
	if err != nil {
		t.Fatalf("Eval(%q) error = %v", expr, err)
	}
	if !tv.IsType() {
		t.Fatalf("%q is not a type", expr)
	}
	return tv.Type
}

func TestDescribe_Kinds(t *testing.T) {
	pkg := loadFixture(t)

	tests := []struct {
		expr string
		kind descriptor.Kind
	}{
		{expr: "int", kind: descriptor.KindNumeric},
		{expr: "uint8", kind: descriptor.KindNumeric},
		{expr: "complex128", kind: descriptor.KindNumeric},
		{expr: "bool", kind: descriptor.KindBoolean},
		{expr: "string", kind: descriptor.KindString},
		{expr: "Color", kind: descriptor.KindEnum},
		{expr: "Level", kind: descriptor.KindEnum},
		{expr: "Celsius", kind: descriptor.KindNumeric},
		{expr: "*Color", kind: descriptor.KindNullable},
		{expr: "[]int", kind: descriptor.KindArray},
		{expr: "[3]string", kind: descriptor.KindArray},
		{expr: "map[string]int", kind: descriptor.KindCollection},
		{expr: "chan int", kind: descriptor.KindCollection},
		{expr: "func(func(int) bool)", kind: descriptor.KindCollection},
		{expr: "struct{ X int; Y string }", kind: descriptor.KindTuple},
		{expr: "Dog", kind: descriptor.KindUserDefined},
		{expr: "A", kind: descriptor.KindArray},
		{expr: "Shape", kind: descriptor.KindInterface},
		{expr: "any", kind: descriptor.KindInterface},
		{expr: "error", kind: descriptor.KindInterface},
		{expr: "func()", kind: descriptor.KindUserDefined},
	}

	for _, tc := range tests {
		t.Run(tc.expr, func(t *testing.T) {
			d := New().Describe(evalType(t, pkg, tc.expr))
			if d.Kind() != tc.kind {
				t.Fatalf("Describe(%s) kind = %v, want %v", tc.expr, d.Kind(), tc.kind)
			}
		})
	}
}

func TestDescribe_NilAndInvalidAreUnknown(t *testing.T) {
	pkg := loadFixture(t)
	d := New()

	if got := d.Describe(nil).Kind(); got != descriptor.KindUnknown {
		t.Fatalf("Describe(nil) kind = %v, want unknown", got)
	}
	if got := d.Describe(types.Typ[types.Invalid]).Kind(); got != descriptor.KindUnknown {
		t.Fatalf("Describe(invalid) kind = %v, want unknown", got)
	}
	broken := pkg.Scope().Lookup("Broken")
	if broken == nil {
		t.Fatal("Broken not declared")
	}
	if got := d.Describe(broken.Type()).Kind(); got != descriptor.KindUnknown {
		t.Fatalf("Describe(Broken) kind = %v, want unknown", got)
	}
}

func TestDescribe_SelfReferentialNamedSlice(t *testing.T) {
	pkg := loadFixture(t)

	a := New().Describe(evalType(t, pkg, "A"))
	if a.Element() != a {
		t.Fatalf("A element = %v, want A itself", a.Element())
	}
	if a.Identity() != "example.com/fixture.A" {
		t.Fatalf("identity = %q", a.Identity())
	}
}

func TestDescribe_Capabilities(t *testing.T) {
	pkg := loadFixture(t)
	d := New(WithInterfaces(pkg.Scope().Lookup("Shape").Type().(*types.Named)))

	link := d.Describe(evalType(t, pkg, "Link"))
	if _, ok := link.ConvertsTo(descriptor.StringIdentity); !ok {
		t.Fatal("Link should convert to string through String()")
	}

	price := d.Describe(evalType(t, pkg, "Price"))
	if !price.EquatableTo("example.com/fixture.Money") {
		t.Fatal("Price should be equatable to Money")
	}

	quote := d.Describe(evalType(t, pkg, "Quote"))
	for _, id := range []descriptor.Identity{"*example.com/fixture.Money", "example.com/fixture.Money"} {
		if !quote.EquatableTo(id) {
			t.Fatalf("Quote should be equatable to %s", id)
		}
	}

	celsius := d.Describe(evalType(t, pkg, "Celsius"))
	if _, ok := celsius.ConvertsTo("float64"); !ok {
		t.Fatal("Celsius should convert to its underlying float64")
	}

	puppy := d.Describe(evalType(t, pkg, "Puppy"))
	for _, id := range []descriptor.Identity{"example.com/fixture.Dog", "example.com/fixture.Animal", descriptor.AnyIdentity} {
		if !puppy.HasAncestor(id) {
			t.Fatalf("Puppy should have ancestor %s, got %v", id, puppy.Ancestors())
		}
	}

	bag := d.Describe(evalType(t, pkg, "Bag"))
	if !bag.Enumerable() || bag.Element() == nil || bag.Element().Identity() != "int" {
		t.Fatalf("Bag should enumerate ints, got element %v", bag.Element())
	}

	for _, expr := range []string{"Square", "Circle"} {
		if !d.Describe(evalType(t, pkg, expr)).HasAncestor("example.com/fixture.Shape") {
			t.Fatalf("%s should implement Shape", expr)
		}
	}

	pair := d.Describe(evalType(t, pkg, "Pair[string, int]"))
	if pair.Origin() == "" || pair.Origin() == pair.Identity() {
		t.Fatalf("Pair origin = %q, want the generic declaration", pair.Origin())
	}
	args := pair.TypeArguments()
	if len(args) != 2 || args[0].Identity() != "string" || args[1].Identity() != "int" {
		t.Fatalf("Pair type arguments = %v, want [string int]", args)
	}
	args[0] = nil
	if pair.TypeArgument(0) == nil {
		t.Fatal("TypeArguments should return a copy")
	}
}

func TestDescribe_AnySliceIsNonGeneric(t *testing.T) {
	pkg := loadFixture(t)
	d := New()

	for _, expr := range []string{"[]any", "[]interface{}"} {
		if !d.Describe(evalType(t, pkg, expr)).NonGeneric() {
			t.Fatalf("%s should be non-generic", expr)
		}
	}
}

func TestDescribe_MemoisesByIdentity(t *testing.T) {
	pkg := loadFixture(t)
	d := New()

	first := d.Describe(evalType(t, pkg, "map[string]Dog"))
	second := d.Describe(evalType(t, pkg, "map[string]Dog"))
	if first != second {
		t.Fatal("describing the same type twice should return the same descriptor")
	}
}

func TestDescribe_WithEngine(t *testing.T) {
	pkg := loadFixture(t)

	tests := []struct {
		left, right string
		forward     bool
		reverse     bool
	}{
		{left: "Color", right: "Shade", forward: false, reverse: false},
		{left: "*Color", right: "Shade", forward: false, reverse: false},
		{left: "*Color", right: "Color", forward: true, reverse: true},
		{left: "Color", right: "int", forward: false, reverse: false},
		{left: "Color", right: "any", forward: true, reverse: true},
		{left: "A", right: "B", forward: false, reverse: false},
		{left: "Animal", right: "Dog", forward: true, reverse: true},
		{left: "Dog", right: "Cat", forward: false, reverse: false},
		{left: "Link", right: "string", forward: true, reverse: false},
		{left: "Price", right: "Money", forward: true, reverse: false},
		{left: "*Quote", right: "*Money", forward: true, reverse: false},
		{left: "Quote", right: "*Money", forward: true, reverse: false},
		{left: "*Quote", right: "Money", forward: true, reverse: false},
		{left: "Celsius", right: "float32", forward: true, reverse: true},
		{left: "[]int", right: "[]float64", forward: true, reverse: true},
		{left: "[]string", right: "[]int", forward: false, reverse: false},
		{left: "[]any", right: "[]Dog", forward: true, reverse: true},
		{left: "map[string]int", right: "map[string]float64", forward: true, reverse: true},
		{left: "map[int]string", right: "map[float64]string", forward: false, reverse: false},
		{left: "struct{ X int; Y int }", right: "struct{ X int; Y float64 }", forward: true, reverse: true},
		{left: "struct{ X int; Y int }", right: "struct{ X int; Y string }", forward: false, reverse: false},
		{left: "Pair[string, int]", right: "Pair[string, float64]", forward: true, reverse: true},
		{left: "Pair[string, string]", right: "Pair[string, float64]", forward: false, reverse: false},
		{left: "Bag", right: "[]int64", forward: true, reverse: true},
		{left: "Shape", right: "Square", forward: true, reverse: true},
		{left: "Shape", right: "*Circle", forward: true, reverse: true},
		{left: "Shape", right: "Dog", forward: false, reverse: false},
		{left: "error", right: "Shape", forward: true, reverse: true},
		{left: "int", right: "Broken", forward: true, reverse: true},
		{left: "string", right: "bool", forward: false, reverse: false},
	}

	shape := pkg.Scope().Lookup("Shape").Type().(*types.Named)
	for _, tc := range tests {
		t.Run(tc.left+" vs "+tc.right, func(t *testing.T) {
			d := New(WithInterfaces(shape))
			l := d.Describe(evalTypeLenient(t, pkg, tc.left))
			r := d.Describe(evalTypeLenient(t, pkg, tc.right))

			fwd, err := equality.CanBeEqual(l, r)
			if err != nil {
				t.Fatalf("CanBeEqual() error = %v", err)
			}
			rev, err := equality.CanBeEqual(r, l)
			if err != nil {
				t.Fatalf("CanBeEqual() error = %v", err)
			}
			if fwd != tc.forward || rev != tc.reverse {
				t.Fatalf("forward/reverse = %v/%v, want %v/%v", fwd, rev, tc.forward, tc.reverse)
			}
		})
	}
}

func TestInterfacesIn(t *testing.T) {
	pkg := loadFixture(t)

	got := InterfacesIn(evalType(t, pkg, "map[string][]Shape"))
	if len(got) != 1 || got[0].Obj().Name() != "Shape" {
		t.Fatalf("InterfacesIn() = %v, want [Shape]", got)
	}
	if got := InterfacesIn(evalType(t, pkg, "[]int")); len(got) != 0 {
		t.Fatalf("InterfacesIn([]int) = %v, want none", got)
	}
}

// evalTypeLenient resolves names that failed to type-check to their
// declared (invalid) type instead of failing the test.
func evalTypeLenient(t *testing.T, pkg *types.Package, expr string) types.Type {
	t.Helper()
	if obj := pkg.Scope().Lookup(expr); obj != nil {
		return obj.Type()
	}
	return evalType(t, pkg, expr)
}
