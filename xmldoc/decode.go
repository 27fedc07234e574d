// MFP    - Miulti-Function Printers and scanners toolkit
// xmldoc - XML mini library
//
// Copyright (C) 2024 and up by Alexander Pevzner (pzz@apevzner.com)
// See LICENSE for license terms and conditions
//
// XML decoder

package xmldoc

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
)

// buildNode is the mutable tree node used while decoding, before the
// tree is frozen into the public, value-typed [Element].
type buildNode struct {
	name     string
	path     string
	text     string
	attrs    []Attr
	parent   *buildNode
	children []*buildNode
}

func (n *buildNode) freeze() Element {
	elm := Element{
		Name:  n.name,
		Path:  n.path,
		Text:  n.text,
		Attrs: n.attrs,
	}
	for _, c := range n.children {
		elm.Children = append(elm.Children, c.freeze())
	}
	return elm
}

// Decode parses an XML document and returns its root [Element],
// decoded as a tree.
//
// Each element's Name, Path and Text are set as documented on
// [Element]. Namespace prefixes in the document are rewritten
// according to ns: the full namespace URL is used as the map index,
// and the corresponding short prefix replaces it. Unknown namespace
// URLs are rewritten to the "-" prefix.
func Decode(ns Namespace, in io.Reader) (Element, error) {
	var root *buildNode
	var cur *buildNode
	var path bytes.Buffer

	decoder := xml.NewDecoder(in)
	for {
		token, err := decoder.Token()
		if err != nil {
			if err != io.EOF {
				return Element{}, err
			}
			break
		}

		switch t := token.(type) {
		case xml.StartElement:
			var name string
			if t.Name.Space != "" {
				prefix, ok := ns.ByURL(t.Name.Space)
				if !ok {
					prefix = "-"
				}
				name = prefix + ":"
			}
			name += t.Name.Local

			path.WriteByte('/')
			path.WriteString(name)

			node := &buildNode{
				name:   name,
				path:   path.String(),
				parent: cur,
			}

			for _, a := range t.Attr {
				node.attrs = append(node.attrs, Attr{
					Name:  a.Name.Local,
					Value: a.Value,
				})
			}

			if cur != nil {
				cur.children = append(cur.children, node)
			} else if root == nil {
				root = node
			}
			cur = node

		case xml.EndElement:
			if cur != nil {
				cur = cur.parent
			}
			if cur != nil {
				path.Truncate(len(cur.path))
			} else {
				path.Truncate(0)
			}

		case xml.CharData:
			if cur != nil {
				text := string(bytes.TrimSpace(t))
				if text != "" {
					cur.text = text
				}
			}
		}
	}

	if root == nil {
		return Element{}, fmt.Errorf("xmldoc: empty document")
	}

	return root.freeze(), nil
}

// DecodeBytes is a convenience wrapper around Decode for in-memory data.
func DecodeBytes(ns Namespace, data []byte) (Element, error) {
	return Decode(ns, bytes.NewReader(data))
}
