package etree

import (
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/beevik/etree"
	"github.com/wikimeta/commonsmeta"
)

// Element tags used by the MediaWiki preprocessor parse tree. A template
// invocation is serialized as a "template" element holding a "title" child
// and one "part" child per parameter; each part holds an optional "name"
// and a "value".
const (
	templateTag = "template"
	titleTag    = "title"
	partTag     = "part"
	nameTag     = "name"
	valueTag    = "value"
)

// languageTitleMax is the title length below which a nested template is
// treated as a language wrapper like {{en|...}}. Inherited heuristic: a
// content template with a one- or two-character name is misclassified as a
// language code.
const languageTitleMax = 3

// FindTemplate returns the first direct child of parent that is a template
// with the given title. Titles are compared in capitalized form (first rune
// uppercased, rest untouched), mirroring wiki title casing.
// Returns ENOTFOUND if no child template matches and EMALFORMED if a child
// template has no title element.
func FindTemplate(parent *etree.Element, title string) (*etree.Element, error) {
	want := capitalize(title)
	for _, child := range parent.ChildElements() {
		if child.Tag != templateTag {
			continue
		}
		got, err := TemplateTitle(child)
		if err != nil {
			return nil, err
		}
		if capitalize(got) == want {
			return child, nil
		}
	}
	return nil, commonsmeta.Errorf(commonsmeta.ENOTFOUND, "template %q not found", title)
}

// TemplateTitle returns the trimmed text of a template's title element.
// Returns EMALFORMED if the template has no title element.
func TemplateTitle(tpl *etree.Element) (string, error) {
	for _, child := range tpl.ChildElements() {
		if child.Tag == titleTag {
			return strings.TrimSpace(FlattenText(child)), nil
		}
	}
	return "", commonsmeta.Errorf(commonsmeta.EMALFORMED, "template has no title element")
}

// matchFunc reports whether a part's name element selects that part.
type matchFunc func(name *etree.Element) bool

// FindParameterByName returns the value element of the template parameter
// with the given name. Names are compared in capitalized form.
func FindParameterByName(tpl *etree.Element, name string) (*etree.Element, error) {
	want := capitalize(name)
	return findParameter(tpl, func(el *etree.Element) bool {
		return capitalize(strings.TrimSpace(FlattenText(el))) == want
	})
}

// FindParameterByIndex returns the value element of the positional template
// parameter with the given 1-based index. Positional parameters carry the
// index either as the name element's text or as its "index" attribute;
// the attribute is checked when the text does not match.
func FindParameterByIndex(tpl *etree.Element, index int) (*etree.Element, error) {
	want := strconv.Itoa(index)
	return findParameter(tpl, func(el *etree.Element) bool {
		if strings.TrimSpace(FlattenText(el)) == want {
			return true
		}
		return strings.TrimSpace(el.SelectAttrValue("index", "")) == want
	})
}

// findParameter scans the template's part children in order and returns the
// value element following the first name element accepted by match.
// Returns EMALFORMED if a matched name has no value sibling after it, and
// ENOTFOUND if no part matches. A template with no part children always
// falls through to ENOTFOUND.
func findParameter(tpl *etree.Element, match matchFunc) (*etree.Element, error) {
	for _, part := range tpl.ChildElements() {
		if part.Tag != partTag {
			continue
		}
		for i, tok := range part.Child {
			name, ok := tok.(*etree.Element)
			if !ok || name.Tag != nameTag {
				continue
			}
			if !match(name) {
				continue
			}
			for _, sib := range part.Child[i+1:] {
				if value, ok := sib.(*etree.Element); ok && value.Tag == valueTag {
					return value, nil
				}
			}
			return nil, commonsmeta.Errorf(commonsmeta.EMALFORMED, "no value node for matched template parameter")
		}
	}
	return nil, commonsmeta.Errorf(commonsmeta.ENOTFOUND, "no matching template parameter")
}

// MultilingualText decodes the language-wrapper convention used by Commons
// description values, e.g. {{en|foo}} or {{en|1=foo bar}}. It walks the
// direct children of value: template children with titles shorter than
// three characters are read as language wrappers whose first positional
// parameter holds the text; longer-titled templates are ignored; plain text
// accumulates under the "default" key when non-blank.
func MultilingualText(value *etree.Element) (map[string]string, error) {
	texts := make(map[string]string)
	var local strings.Builder

	for _, tok := range value.Child {
		switch n := tok.(type) {
		case *etree.Element:
			if n.Tag != templateTag {
				continue
			}
			title, err := TemplateTitle(n)
			if err != nil {
				return nil, err
			}
			if utf8.RuneCountInString(title) >= languageTitleMax {
				continue
			}
			v, err := FindParameterByIndex(n, 1)
			if err != nil {
				return nil, err
			}
			texts[title] = FlattenText(v)
		case *etree.CharData:
			local.WriteString(n.Data)
		}
	}

	// Some descriptions don't list multilingual variants. The trim only
	// decides presence; the stored text keeps its whitespace.
	if strings.TrimSpace(local.String()) != "" {
		texts[commonsmeta.DefaultLanguage] = local.String()
	}
	return texts, nil
}

// FlattenText concatenates all descendant character data of el in document
// order.
func FlattenText(el *etree.Element) string {
	var b strings.Builder
	flattenInto(&b, el)
	return b.String()
}

func flattenInto(b *strings.Builder, el *etree.Element) {
	for _, tok := range el.Child {
		switch n := tok.(type) {
		case *etree.CharData:
			b.WriteString(n.Data)
		case *etree.Element:
			flattenInto(b, n)
		}
	}
}

// capitalize uppercases the first rune only, leaving the rest of the string
// untouched. This is wiki title casing, not general case folding: "iPhone"
// and "IPhone" compare equal, "IPHONE" does not.
func capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError && size <= 1 {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}
