// MFP - Miulti-Function Printers and scanners toolkit
// WSD core protocol
//
// Copyright (C) 2024 and up by Alexander Pevzner (pzz@apevzner.com)
// See LICENSE for license terms and conditions
//
// Localized strings

package wsd

import "github.com/alexpevzner/scanbridge/xmldoc"

// LocalizedString is a single xml:lang-tagged string value.
type LocalizedString struct {
	Lang string // xml:lang, may be empty
	Text string // String value
}

// LocalizedStringList is a list of [LocalizedString], one per
// language, as used by devprof FriendlyName/Manufacturer/ModelName
// elements.
type LocalizedStringList []LocalizedString

// decodeLocalizedString decodes [LocalizedString] from the XML tree.
func decodeLocalizedString(root xmldoc.Element) LocalizedString {
	lang, _ := root.Attr("xml:lang")
	return LocalizedString{Lang: lang, Text: root.Text}
}

// ToXML generates XML tree for the LocalizedString, under the given
// element name.
func (ls LocalizedString) ToXML(name string) xmldoc.Element {
	elm := xmldoc.Element{Name: name, Text: ls.Text}
	if ls.Lang != "" {
		elm.Attrs = []xmldoc.Attr{{Name: "xml:lang", Value: ls.Lang}}
	}
	return elm
}
