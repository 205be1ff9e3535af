package adapter

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/beevik/etree"

	m "cpacsedit.dev/pkg/cpacsedit/internal/model"
)

// vectorSeparator separates the values of a TIXI float vector.
const vectorSeparator = ";"

// Node is a read-only view of one element visited by Document.Walk.
type Node struct {
	Path  string
	Name  string
	Attrs map[string]string
	Text  string
	Leaf  bool
}

// Document is an exclusively owned handle on one in-memory CPACS tree.
// Every path is of the form /root/a/b[i]/c with 1-based sibling ordinals;
// a step without an ordinal selects the first matching child.
//
//nolint:interfacebloat // Mirrors the path-addressed tree store contract.
type Document interface {
	// CreateElement appends a new named child under parentPath.
	CreateElement(parentPath, name string) error
	// AddTextElement appends a named child holding text.
	AddTextElement(parentPath, name, text string) error
	// AddDoubleElement appends a named child holding a formatted number.
	AddDoubleElement(parentPath, name string, value float64, format m.NumberFormat) error
	// AddFloatVector appends a named child holding a fixed-length numeric sequence.
	AddFloatVector(parentPath, name string, values []float64, format m.NumberFormat) error
	// GetFloatVector reads a numeric sequence written by AddFloatVector.
	GetFloatVector(path string) ([]float64, error)
	// GetDouble reads the numeric text of the element at path.
	GetDouble(path string) (float64, error)
	// UpdateDouble replaces the numeric text of the element at path.
	UpdateDouble(path string, value float64, format m.NumberFormat) error
	// GetText reads the text of the element at path.
	GetText(path string) (string, error)
	// UpdateText replaces the text of the element at path.
	UpdateText(path, text string) error
	// AddTextAttribute sets an attribute on the element at path.
	AddTextAttribute(path, name, value string) error
	// GetTextAttribute reads an attribute of the element at path.
	GetTextAttribute(path, name string) (string, error)
	// DeclareNamespace binds prefix to uri on the element at path.
	DeclareNamespace(path, prefix, uri string) error
	// CountNamedChildren counts the children of parentPath called name.
	CountNamedChildren(parentPath, name string) (int, error)
	// Exists reports whether path resolves to an element.
	Exists(path string) bool
	// Walk visits every element depth-first in document order.
	Walk(fn func(node Node) error) error
	// Bytes renders the tree. Created documents are indented; opened ones
	// keep their original layout.
	Bytes() ([]byte, error)
	// Original returns the bytes the document was parsed from, nil for new documents.
	Original() []byte
	// Close releases the handle. Any later call fails with model.ErrClosed.
	Close() error
}

type pathStep struct {
	name    string
	ordinal int
}

type etreeDocument struct {
	doc      *etree.Document
	original []byte
	indent   bool
	closed   bool
}

func newEtreeDocument(doc *etree.Document, original []byte, indent bool) *etreeDocument {
	return &etreeDocument{doc: doc, original: original, indent: indent}
}

func parsePath(path string) ([]pathStep, error) {
	trimmed := strings.TrimSpace(path)
	if !strings.HasPrefix(trimmed, "/") {
		return nil, fmt.Errorf("%w: path %q is not absolute", m.ErrDocument, path)
	}

	trimmed = strings.Trim(trimmed, "/")
	if trimmed == "" {
		return nil, fmt.Errorf("%w: empty path", m.ErrDocument)
	}

	parts := strings.Split(trimmed, "/")
	steps := make([]pathStep, 0, len(parts))

	for _, part := range parts {
		step, err := parseStep(strings.TrimSpace(part))
		if err != nil {
			return nil, fmt.Errorf("%w: path %q: %w", m.ErrDocument, path, err)
		}

		steps = append(steps, step)
	}

	return steps, nil
}

func parseStep(part string) (pathStep, error) {
	if part == "" {
		return pathStep{}, errors.New("empty step")
	}

	open := strings.IndexByte(part, '[')
	if open < 0 {
		return pathStep{name: part, ordinal: 1}, nil
	}

	if !strings.HasSuffix(part, "]") || open == 0 {
		return pathStep{}, fmt.Errorf("malformed step %q", part)
	}

	ordinal, err := strconv.Atoi(part[open+1 : len(part)-1])
	if err != nil || ordinal < 1 {
		return pathStep{}, fmt.Errorf("bad ordinal in step %q", part)
	}

	return pathStep{name: part[:open], ordinal: ordinal}, nil
}

// childAt returns the ordinal-th child of parent called name.
func childAt(parent *etree.Element, name string, ordinal int) *etree.Element {
	seen := 0

	for _, child := range parent.ChildElements() {
		if child.FullTag() != name {
			continue
		}

		seen++
		if seen == ordinal {
			return child
		}
	}

	return nil
}

func countChildren(parent *etree.Element, name string) int {
	count := 0

	for _, child := range parent.ChildElements() {
		if child.FullTag() == name {
			count++
		}
	}

	return count
}

func (d *etreeDocument) resolve(path string) (*etree.Element, error) {
	if d.closed {
		return nil, m.ErrClosed
	}

	steps, err := parsePath(path)
	if err != nil {
		return nil, err
	}

	current := d.doc.Root()
	if current == nil || current.FullTag() != steps[0].name || steps[0].ordinal != 1 {
		return nil, fmt.Errorf("%w: element %s not found", m.ErrDocument, path)
	}

	for _, step := range steps[1:] {
		current = childAt(current, step.name, step.ordinal)
		if current == nil {
			return nil, fmt.Errorf("%w: element %s not found", m.ErrDocument, path)
		}
	}

	return current, nil
}

func (d *etreeDocument) CreateElement(parentPath, name string) error {
	_, err := d.createChild(parentPath, name)
	return err
}

func (d *etreeDocument) createChild(parentPath, name string) (*etree.Element, error) {
	parent, err := d.resolve(parentPath)
	if err != nil {
		return nil, err
	}

	if name == "" || strings.ContainsAny(name, "[]/ ") {
		return nil, fmt.Errorf("%w: invalid element name %q", m.ErrDocument, name)
	}

	return parent.CreateElement(name), nil
}

func (d *etreeDocument) AddTextElement(parentPath, name, text string) error {
	child, err := d.createChild(parentPath, name)
	if err != nil {
		return err
	}

	child.SetText(text)

	return nil
}

func (d *etreeDocument) AddDoubleElement(parentPath, name string, value float64, format m.NumberFormat) error {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return fmt.Errorf("%w: %s/%s: non-finite value", m.ErrInvalidInput, parentPath, name)
	}

	return d.AddTextElement(parentPath, name, format.Format(value))
}

func (d *etreeDocument) AddFloatVector(parentPath, name string, values []float64, format m.NumberFormat) error {
	formatted := make([]string, 0, len(values))

	for _, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%w: %s/%s: non-finite value", m.ErrInvalidInput, parentPath, name)
		}

		formatted = append(formatted, format.Format(v))
	}

	child, err := d.createChild(parentPath, name)
	if err != nil {
		return err
	}

	child.CreateAttr("mapType", "vector")
	child.SetText(strings.Join(formatted, vectorSeparator))

	return nil
}

func (d *etreeDocument) GetFloatVector(path string) ([]float64, error) {
	el, err := d.resolve(path)
	if err != nil {
		return nil, err
	}

	text := strings.TrimSpace(el.Text())
	if text == "" {
		return []float64{}, nil
	}

	parts := strings.Split(text, vectorSeparator)
	values := make([]float64, 0, len(parts))

	for _, part := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(part), 64)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: value %q is not numeric", m.ErrDocument, path, part)
		}

		values = append(values, v)
	}

	return values, nil
}

func (d *etreeDocument) GetDouble(path string) (float64, error) {
	el, err := d.resolve(path)
	if err != nil {
		return 0, err
	}

	text := strings.TrimSpace(el.Text())

	v, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %s: value %q is not numeric", m.ErrDocument, path, text)
	}

	return v, nil
}

func (d *etreeDocument) UpdateDouble(path string, value float64, format m.NumberFormat) error {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return fmt.Errorf("%w: %s: non-finite value", m.ErrInvalidInput, path)
	}

	return d.UpdateText(path, format.Format(value))
}

func (d *etreeDocument) GetText(path string) (string, error) {
	el, err := d.resolve(path)
	if err != nil {
		return "", err
	}

	return strings.TrimSpace(el.Text()), nil
}

func (d *etreeDocument) UpdateText(path, text string) error {
	el, err := d.resolve(path)
	if err != nil {
		return err
	}

	el.SetText(text)

	return nil
}

func (d *etreeDocument) AddTextAttribute(path, name, value string) error {
	el, err := d.resolve(path)
	if err != nil {
		return err
	}

	el.CreateAttr(name, value)

	return nil
}

func (d *etreeDocument) GetTextAttribute(path, name string) (string, error) {
	el, err := d.resolve(path)
	if err != nil {
		return "", err
	}

	attr := el.SelectAttr(name)
	if attr == nil {
		return "", fmt.Errorf("%w: %s: attribute %q not found", m.ErrDocument, path, name)
	}

	return attr.Value, nil
}

func (d *etreeDocument) DeclareNamespace(path, prefix, uri string) error {
	return d.AddTextAttribute(path, "xmlns:"+prefix, uri)
}

func (d *etreeDocument) CountNamedChildren(parentPath, name string) (int, error) {
	parent, err := d.resolve(parentPath)
	if err != nil {
		return 0, err
	}

	return countChildren(parent, name), nil
}

func (d *etreeDocument) Exists(path string) bool {
	_, err := d.resolve(path)
	return err == nil
}

func (d *etreeDocument) Walk(fn func(node Node) error) error {
	if d.closed {
		return m.ErrClosed
	}

	root := d.doc.Root()
	if root == nil {
		return nil
	}

	return walkElement(root, "/"+root.FullTag(), fn)
}

func walkElement(el *etree.Element, path string, fn func(node Node) error) error {
	children := el.ChildElements()

	attrs := make(map[string]string, len(el.Attr))
	for _, attr := range el.Attr {
		attrs[attr.FullKey()] = attr.Value
	}

	node := Node{
		Path:  path,
		Name:  el.FullTag(),
		Attrs: attrs,
		Text:  strings.TrimSpace(el.Text()),
		Leaf:  len(children) == 0,
	}

	if err := fn(node); err != nil {
		return err
	}

	ordinals := make(map[string]int)

	for _, child := range children {
		name := child.FullTag()
		ordinals[name]++

		childPath := fmt.Sprintf("%s/%s[%d]", path, name, ordinals[name])
		if err := walkElement(child, childPath, fn); err != nil {
			return err
		}
	}

	return nil
}

func (d *etreeDocument) Bytes() ([]byte, error) {
	if d.closed {
		return nil, m.ErrClosed
	}

	if d.indent {
		d.doc.Indent(2)
	}

	data, err := d.doc.WriteToBytes()
	if err != nil {
		return nil, fmt.Errorf("%w: render document: %w", m.ErrDocument, err)
	}

	return data, nil
}

func (d *etreeDocument) Original() []byte {
	return d.original
}

func (d *etreeDocument) Close() error {
	if d.closed {
		return m.ErrClosed
	}

	d.closed = true
	d.doc = nil

	return nil
}
