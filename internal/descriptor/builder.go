package descriptor

import "fmt"

// Builder creates descriptors that refer to themselves, directly or through
// other declared descriptors. A declared descriptor may be referenced right
// away and is filled in once by Complete.
type Builder struct {
	pending map[*Descriptor]struct{}
}

// NewBuilder returns an empty builder.
func NewBuilder() *Builder {
	return &Builder{pending: map[*Descriptor]struct{}{}}
}

// Declare reserves a descriptor with a fixed kind and identity.
func (b *Builder) Declare(id Identity, kind Kind) *Descriptor {
	d := &Descriptor{kind: kind, id: id}
	b.pending[d] = struct{}{}
	return d
}

// Complete applies opts to a declared descriptor. It panics when d was not
// declared by b or was already completed.
func (b *Builder) Complete(d *Descriptor, opts ...Option) *Descriptor {
	if _, ok := b.pending[d]; !ok {
		panic(fmt.Sprintf("descriptor: %s not pending in builder", d))
	}
	delete(b.pending, d)
	for _, opt := range opts {
		opt(d)
	}
	d.validate()
	d.completed = true
	return d
}

// Pending returns the number of declared descriptors not yet completed.
func (b *Builder) Pending() int { return len(b.pending) }

// Recursive builds a single self-referential descriptor. build receives the
// descriptor being defined and returns its options.
func Recursive(id Identity, kind Kind, build func(self *Descriptor) []Option) *Descriptor {
	b := NewBuilder()
	d := b.Declare(id, kind)
	return b.Complete(d, build(d)...)
}

// Completed reports whether the descriptor is fully built.
func (d *Descriptor) Completed() bool { return d.completed }
