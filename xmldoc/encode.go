// MFP    - Miulti-Function Printers and scanners toolkit
// xmldoc - XML mini library
//
// Copyright (C) 2024 and up by Alexander Pevzner (pzz@apevzner.com)
// See LICENSE for license terms and conditions
//
// XML encoder

package xmldoc

import (
	"bytes"
	"encoding/xml"
	"io"
	"strings"
)

// Encode writes the XML tree rooted at elm into w, in compact form,
// declaring the namespace prefixes actually used anywhere in the
// tree.
func (elm Element) Encode(w io.Writer, ns Namespace) error {
	return elm.encode(w, ns, true, "")
}

// EncodeString is [Element.Encode], returning the result as a string.
func (elm Element) EncodeString(ns Namespace) string {
	buf := &bytes.Buffer{}
	elm.Encode(buf, ns)
	return buf.String()
}

// EncodeIndent is [Element.Encode], pretty-printed with the given
// per-level indent string.
func (elm Element) EncodeIndent(w io.Writer, ns Namespace, indent string) error {
	return elm.encode(w, ns, false, indent)
}

// EncodeIndentString is [Element.EncodeIndent], returning the result
// as a string.
func (elm Element) EncodeIndentString(ns Namespace, indent string) string {
	buf := &bytes.Buffer{}
	elm.EncodeIndent(buf, ns, indent)
	return buf.String()
}

func (elm Element) encode(w io.Writer, ns Namespace, compact bool, indent string) error {
	encoder := xml.NewEncoder(w)
	if !compact {
		encoder.Indent("", indent)
	}

	nsused := elm.namespaceUsed(ns)
	nsattrs := make([]Attr, len(nsused))
	for i := range nsused {
		nsattrs[i] = Attr{Name: "xmlns:" + nsused[i].Prefix, Value: nsused[i].URL}
	}
	elm.Attrs = append(append([]Attr{}, nsattrs...), elm.Attrs...)

	tok := xml.ProcInst{Target: "xml", Inst: []byte(`version="1.0"`)}
	if err := encoder.EncodeToken(tok); err != nil {
		return err
	}

	if !compact {
		encoder.EncodeToken(xml.CharData("\n"))
	}

	if err := elm.encodeRecursive(encoder); err != nil {
		return err
	}

	if !compact {
		encoder.EncodeToken(xml.CharData("\n"))
	}

	return encoder.Flush()
}

func (elm Element) encodeRecursive(encoder *xml.Encoder) error {
	name := xml.Name{Local: elm.Name}

	attrs := make([]xml.Attr, 0, len(elm.Attrs))
	for _, a := range elm.Attrs {
		attrs = append(attrs, xml.Attr{Name: xml.Name{Local: a.Name}, Value: a.Value})
	}

	if err := encoder.EncodeToken(xml.StartElement{Name: name, Attr: attrs}); err != nil {
		return err
	}

	if text := strings.TrimSpace(elm.Text); text != "" {
		if err := encoder.EncodeToken(xml.CharData(text)); err != nil {
			return err
		}
	}

	for _, c := range elm.Children {
		if err := c.encodeRecursive(encoder); err != nil {
			return err
		}
	}

	return encoder.EncodeToken(xml.EndElement{Name: name})
}

// namespaceUsed returns the subset of ns actually referenced by
// names/attributes anywhere in elm's subtree.
func (elm Element) namespaceUsed(ns Namespace) Namespace {
	out := make(Namespace, 0, len(ns))
	inuse := make(map[string]struct{})

	consider := func(name string) {
		prefix, ok := nsPrefix(name)
		if !ok {
			return
		}
		if _, found := inuse[prefix]; found {
			return
		}
		inuse[prefix] = struct{}{}
		if url, ok := ns.ByPrefix(prefix); ok {
			out.Append(url, prefix)
		}
	}

	it := elm.Iterate()
	for it.Next() {
		e := it.Elem()
		consider(e.Name)
		for _, a := range e.Attrs {
			consider(a.Name)
		}
	}

	return out
}

// nsPrefix splits "prefix:local" into its prefix, if present.
func nsPrefix(name string) (string, bool) {
	i := strings.IndexByte(name, ':')
	if i < 0 {
		return "", false
	}
	return name[:i], true
}
