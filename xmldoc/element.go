// MFP    - Miulti-Function Printers and scanners toolkit
// xmldoc - XML mini library
//
// Copyright (C) 2024 and up by Alexander Pevzner (pzz@apevzner.com)
// See LICENSE for license terms and conditions
//
// XML element tree

package xmldoc

// Attr is a single XML attribute.
type Attr struct {
	Name  string
	Value string
}

// Element represents a single XML element, decoded into a tree.
//
// Name uses the caller-supplied namespace prefix convention
// ("prefix:Local"); Path is the full slash-separated path from the
// document root to this element, in the same convention.
type Element struct {
	Name     string    // "prefix:Local", or "Local" if unprefixed
	Path     string     // Full path from the root
	Text     string     // Element body, trimmed
	Attrs    []Attr     // Element attributes
	Children []Element  // Direct children, in document order
}

// Lookup describes a single child element to look for by [Element.Lookup].
type Lookup struct {
	Name     string  // Child name to look for ("prefix:Local")
	Required bool    // If true and not found, Lookup fails
	Found    bool    // Set by Element.Lookup: was the child found
	Elem     Element // Set by Element.Lookup: the found child
}

// ChildByName returns the first direct child with the given name.
func (elm Element) ChildByName(name string) (Element, bool) {
	for _, c := range elm.Children {
		if c.Name == name {
			return c, true
		}
	}
	return Element{}, false
}

// ChildrenByName returns all direct children with the given name.
func (elm Element) ChildrenByName(name string) []Element {
	var out []Element
	for _, c := range elm.Children {
		if c.Name == name {
			out = append(out, c)
		}
	}
	return out
}

// Lookup resolves a list of [Lookup] descriptors against elm's direct
// children. Each matching child fills in Found/Elem on the
// corresponding Lookup. If any Lookup marked Required is not found,
// Lookup stops and returns a pointer to the first such missing entry;
// otherwise it returns nil.
func (elm Element) Lookup(lookups ...*Lookup) *Lookup {
	for _, l := range lookups {
		l.Found = false
		if c, ok := elm.ChildByName(l.Name); ok {
			l.Elem = c
			l.Found = true
		}
	}

	for _, l := range lookups {
		if l.Required && !l.Found {
			return l
		}
	}

	return nil
}

// Attr returns the named attribute's value.
func (elm Element) Attr(name string) (string, bool) {
	for _, a := range elm.Attrs {
		if a.Name == name {
			return a.Value, true
		}
	}
	return "", false
}

// Iter walks an Element tree in document order (root first, then
// each child's subtree).
type Iter struct {
	stack []Element
	cur   Element
}

// Iterate returns an iterator over elm and all its descendants, in
// document order.
func (elm Element) Iterate() *Iter {
	return &Iter{stack: []Element{elm}}
}

// Next advances the iterator. It returns false when exhausted.
func (it *Iter) Next() bool {
	if len(it.stack) == 0 {
		return false
	}

	elm := it.stack[0]
	it.stack = it.stack[1:]

	// Pre-order: visit elm now, push its children ahead of the
	// remaining queue so they are visited before later siblings of
	// elm's ancestors.
	if len(elm.Children) > 0 {
		rest := make([]Element, 0, len(elm.Children)+len(it.stack))
		rest = append(rest, elm.Children...)
		rest = append(rest, it.stack...)
		it.stack = rest
	}

	it.cur = elm
	return true
}

// Elem returns the element at the iterator's current position.
func (it *Iter) Elem() Element {
	return it.cur
}
