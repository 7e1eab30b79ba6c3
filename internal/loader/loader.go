package loader

import (
	"fmt"
	"go/token"
	"go/types"
	"sync"

	"golang.org/x/tools/go/packages"
)

// Loader resolves Go packages and type expressions into go/types values.
type Loader interface {
	Load(pkgPath string) (*packages.Package, error)
	Eval(pkgPath string, expr string) (types.Type, error)
	NamedTypes(pkgPath string) ([]NamedType, error)
	Interfaces(pkgPath string) ([]*types.Named, error)
}

// NamedType is an exported type declared at package scope.
type NamedType struct {
	Name    string
	PkgPath string
	Type    types.Type
}

type loaderImpl struct {
	mu    sync.Mutex
	cache map[string]*packages.Package
}

// New returns default loader. Loaded packages are cached for its lifetime.
func New() Loader {
	return &loaderImpl{cache: map[string]*packages.Package{}}
}

func (l *loaderImpl) Load(pkgPath string) (*packages.Package, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if cached, ok := l.cache[pkgPath]; ok {
		return cached, nil
	}

	// Syntax is needed so expressions can see the file's imports.
	cfg := &packages.Config{
		Mode: packages.NeedName |
			packages.NeedTypes |
			packages.NeedSyntax |
			packages.NeedTypesInfo |
			packages.NeedModule,
	}

	pkgs, err := packages.Load(cfg, pkgPath)
	if err != nil {
		return nil, fmt.Errorf("load package %q: %w", pkgPath, err)
	}
	if packages.PrintErrors(pkgs) > 0 {
		return nil, fmt.Errorf("package %q has compilation errors", pkgPath)
	}
	if len(pkgs) == 0 {
		return nil, fmt.Errorf("package %q not found", pkgPath)
	}
	pkg := pkgs[0]
	if pkg.Types == nil || pkg.Types.Scope() == nil {
		return nil, fmt.Errorf("type info unavailable for package %q", pkgPath)
	}
	l.cache[pkgPath] = pkg
	return pkg, nil
}

func (l *loaderImpl) Eval(pkgPath string, expr string) (types.Type, error) {
	pkg, err := l.Load(pkgPath)
	if err != nil {
		return nil, err
	}

	// Evaluating inside the first file makes its imports resolvable, so
	// qualified names like time.Duration work.
	var tv types.TypeAndValue
	if len(pkg.Syntax) > 0 {
		tv, err = types.Eval(pkg.Fset, pkg.Types, pkg.Syntax[0].Package, expr)
	} else {
		tv, err = types.Eval(pkg.Fset, pkg.Types, token.NoPos, expr)
	}
	if err != nil {
		return nil, fmt.Errorf("evaluate %q in package %q: %w", expr, pkgPath, err)
	}
	if !tv.IsType() {
		return nil, fmt.Errorf("%q in package %q is not a type", expr, pkgPath)
	}
	return tv.Type, nil
}

func (l *loaderImpl) NamedTypes(pkgPath string) ([]NamedType, error) {
	pkg, err := l.Load(pkgPath)
	if err != nil {
		return nil, err
	}

	scope := pkg.Types.Scope()
	out := []NamedType{}
	for _, name := range scope.Names() {
		tn, ok := scope.Lookup(name).(*types.TypeName)
		if !ok || !tn.Exported() {
			continue
		}
		if isGenericDecl(tn.Type()) {
			continue
		}
		out = append(out, NamedType{
			Name:    name,
			PkgPath: pkg.Types.Path(),
			Type:    tn.Type(),
		})
	}
	return out, nil
}

func (l *loaderImpl) Interfaces(pkgPath string) ([]*types.Named, error) {
	named, err := l.NamedTypes(pkgPath)
	if err != nil {
		return nil, err
	}

	out := []*types.Named{}
	for _, nt := range named {
		n, ok := types.Unalias(nt.Type).(*types.Named)
		if !ok {
			continue
		}
		iface, ok := n.Underlying().(*types.Interface)
		// Constraint interfaces have no values to compare.
		if !ok || !iface.IsMethodSet() {
			continue
		}
		out = append(out, n)
	}
	return out, nil
}

// isGenericDecl reports an uninstantiated generic type declaration.
func isGenericDecl(t types.Type) bool {
	n, ok := t.(*types.Named)
	return ok && n.TypeParams().Len() > 0 && n.TypeArgs().Len() == 0
}
