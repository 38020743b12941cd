// Package doccomment reads XML documentation comments ("///" blocks) and
// pulls out the parts that end up in the generated document: the summary
// text and the per-parameter descriptions.
package doccomment

import (
	"encoding/xml"
	"strings"
)

// Resolver extracts summaries and parameter descriptions from raw doc
// comment blocks. The zero value is ready to use.
type Resolver struct{}

// NewResolver creates a new doc comment resolver.
func NewResolver() *Resolver {
	return &Resolver{}
}

// Summary returns the text of the first <summary> element, with whitespace
// collapsed. A block without a summary yields "".
func (r *Resolver) Summary(doc string) string {
	decoder := newDecoder(doc)
	if decoder == nil {
		return ""
	}
	for {
		tok, err := decoder.Token()
		if err != nil {
			return ""
		}
		if start, ok := tok.(xml.StartElement); ok && strings.EqualFold(start.Name.Local, "summary") {
			return collectText(decoder)
		}
	}
}

// ParamDescriptions maps each <param name="x"> to its text. Later entries
// for the same name overwrite earlier ones.
func (r *Resolver) ParamDescriptions(doc string) map[string]string {
	params := make(map[string]string)
	decoder := newDecoder(doc)
	if decoder == nil {
		return params
	}

	for {
		tok, err := decoder.Token()
		if err != nil {
			break
		}
		start, ok := tok.(xml.StartElement)
		if !ok || !strings.EqualFold(start.Name.Local, "param") {
			continue
		}
		name := strings.TrimSpace(attr(start, "name"))
		text := collectText(decoder)
		if name != "" {
			params[name] = text
		}
	}
	return params
}

// StripMarkers removes the leading "///" from every line of a doc block.
func StripMarkers(doc string) string {
	lines := strings.Split(doc, "\n")
	for i, line := range lines {
		line = strings.TrimSpace(line)
		line = strings.TrimPrefix(line, "///")
		lines[i] = line
	}
	return strings.Join(lines, "\n")
}

// newDecoder wraps the stripped block in a root element so that a fragment
// with several top-level elements is still a single document. The decoder is
// lenient so hand-written markup (unclosed tags, HTML entities) degrades
// instead of failing.
func newDecoder(doc string) *xml.Decoder {
	body := strings.TrimSpace(StripMarkers(doc))
	if body == "" {
		return nil
	}
	decoder := xml.NewDecoder(strings.NewReader("<root>" + body + "</root>"))
	decoder.Strict = false
	decoder.AutoClose = xml.HTMLAutoClose
	decoder.Entity = xml.HTMLEntity
	return decoder
}

// collectText consumes tokens up to the end of the element just opened and
// returns its text content. Reference elements contribute their target name,
// separated from neighbouring words but not from adjacent punctuation.
func collectText(decoder *xml.Decoder) string {
	var b strings.Builder
	afterRef := false
	depth := 1
	for depth > 0 {
		tok, err := decoder.Token()
		if err != nil {
			break
		}
		switch t := tok.(type) {
		case xml.StartElement:
			depth++
			if ref := referenceText(t); ref != "" {
				if needsSpaceBefore(b.String()) {
					b.WriteByte(' ')
				}
				b.WriteString(ref)
				afterRef = true
			}
		case xml.EndElement:
			depth--
		case xml.CharData:
			if len(t) == 0 {
				continue
			}
			if afterRef && !strings.ContainsRune(" \t\r\n.,;:)!?", rune(t[0])) {
				b.WriteByte(' ')
			}
			afterRef = false
			b.Write(t)
		}
	}
	return collapse(b.String())
}

func needsSpaceBefore(text string) bool {
	if text == "" {
		return false
	}
	return !strings.ContainsRune(" \t\r\n(", rune(text[len(text)-1]))
}

// referenceText returns the value shown for inline reference elements such
// as <see cref="Order"/> or <paramref name="id"/>.
func referenceText(start xml.StartElement) string {
	switch strings.ToLower(start.Name.Local) {
	case "see", "seealso":
		if v := attr(start, "cref"); v != "" {
			return trimCref(v)
		}
		return attr(start, "langword")
	case "paramref", "typeparamref":
		return attr(start, "name")
	}
	return ""
}

// trimCref drops the member kind prefix of a cref ("T:Shop.Order").
func trimCref(cref string) string {
	if len(cref) > 2 && cref[1] == ':' {
		return cref[2:]
	}
	return cref
}

func attr(start xml.StartElement, name string) string {
	for _, a := range start.Attr {
		if strings.EqualFold(a.Name.Local, name) {
			return a.Value
		}
	}
	return ""
}

func collapse(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
