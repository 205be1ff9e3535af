package domain

import (
	"cpacsedit.dev/pkg/cpacsedit/internal/adapter"
	"cpacsedit.dev/pkg/cpacsedit/internal/cpacs"
	m "cpacsedit.dev/pkg/cpacsedit/internal/model"
)

// treeBuilder writes a subtree depth-first. The first error sticks and turns
// every later call into a no-op, so callers check err once per block.
type treeBuilder struct {
	doc  adapter.Document
	uids *UIDRegistry
	err  error
}

func newTreeBuilder(doc adapter.Document, uids *UIDRegistry) *treeBuilder {
	return &treeBuilder{doc: doc, uids: uids}
}

// element appends a child and returns its path.
func (b *treeBuilder) element(parent, name string) string {
	path := cpacs.Child(parent, name)
	if b.err == nil {
		b.err = b.doc.CreateElement(parent, name)
	}

	return path
}

// indexed appends the ordinal-th repeated child and returns its indexed path.
func (b *treeBuilder) indexed(parent, name string, ordinal int) string {
	path := cpacs.Indexed(parent, name, ordinal)
	if b.err == nil {
		b.err = b.doc.CreateElement(parent, name)
	}

	return path
}

func (b *treeBuilder) text(parent, name, value string) {
	if b.err == nil {
		b.err = b.doc.AddTextElement(parent, name, value)
	}
}

func (b *treeBuilder) number(parent, name string, value float64, format m.NumberFormat) {
	if b.err == nil {
		b.err = b.doc.AddDoubleElement(parent, name, value, format)
	}
}

func (b *treeBuilder) vector(parent, name string, values []float64, format m.NumberFormat) {
	if b.err == nil {
		b.err = b.doc.AddFloatVector(parent, name, values, format)
	}
}

func (b *treeBuilder) attr(path, name, value string) {
	if b.err == nil {
		b.err = b.doc.AddTextAttribute(path, name, value)
	}
}

func (b *treeBuilder) namespace(path, prefix, uri string) {
	if b.err == nil {
		b.err = b.doc.DeclareNamespace(path, prefix, uri)
	}
}

// uid mints uid and attaches it to the element at path.
func (b *treeBuilder) uid(path, uid string) string {
	if b.err != nil {
		return uid
	}

	if _, b.err = b.uids.Mint(uid); b.err != nil {
		return uid
	}

	b.attr(path, cpacs.UIDAttribute, uid)

	return uid
}

// xyz appends a named x/y/z triple.
func (b *treeBuilder) xyz(parent, name string, x, y, z float64, format m.NumberFormat) string {
	path := b.element(parent, name)
	b.number(path, "x", x, format)
	b.number(path, "y", y, format)
	b.number(path, "z", z, format)

	return path
}

// identityTransformation appends a transformation with unit scaling and zero
// rotation and translation, in CPACS order.
func (b *treeBuilder) identityTransformation(parent, owner string) {
	path := b.element(parent, "transformation")
	uid := b.uid(path, cpacs.TransformationUID(owner))

	scaling := b.xyz(path, "scaling", 1, 1, 1, m.Integer)
	b.uid(scaling, cpacs.TransformationPartUID(uid, "scaling"))

	rotation := b.xyz(path, "rotation", 0, 0, 0, m.Integer)
	b.uid(rotation, cpacs.TransformationPartUID(uid, "rotation"))

	translation := b.xyz(path, "translation", 0, 0, 0, m.Integer)
	b.attr(translation, "refType", "absLocal")
	b.uid(translation, cpacs.TransformationPartUID(uid, "translation"))
}
