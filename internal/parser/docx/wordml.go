package docx

import (
	"encoding/xml"
	"io"
	"strings"

	"gitlab.com/tozd/go/errors"
)

// paragraphSpan locates one body paragraph inside word/document.xml.
type paragraphSpan struct {
	start, end int    // byte range of the whole w:p element
	openTag    string // raw start tag, attributes included
	props      string // raw w:pPr element, empty when absent
	prefix     string // namespace prefix used for the paragraph, usually "w"
	text       string
}

// scanBody finds the paragraphs that are direct children of w:body. Tables,
// text boxes, headers and footers are left alone.
func scanBody(content string) ([]paragraphSpan, error) {
	decoder := xml.NewDecoder(strings.NewReader(content))

	var (
		spans    []paragraphSpan
		stack    []string
		current  *paragraphSpan
		text     strings.Builder
		pDepth   int
		runDepth int
		propsAt  = -1
		inText   bool
	)

	for {
		offset := int(decoder.InputOffset())
		token, err := decoder.RawToken()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.Errorf("XML parse error: %w", err)
		}

		switch t := token.(type) {
		case xml.StartElement:
			parent := ""
			if len(stack) > 0 {
				parent = stack[len(stack)-1]
			}
			stack = append(stack, t.Name.Local)
			depth := len(stack)

			if current == nil {
				if t.Name.Local == "p" && parent == "body" {
					current = &paragraphSpan{
						start:   offset,
						openTag: content[offset:decoder.InputOffset()],
						prefix:  t.Name.Space,
					}
					pDepth = depth
				}
				continue
			}

			switch {
			case depth == pDepth+1 && t.Name.Local == "pPr":
				propsAt = offset
			case runDepth == 0 && t.Name.Local == "r" &&
				(depth == pDepth+1 || (depth == pDepth+2 && parent == "hyperlink")):
				runDepth = depth
			case runDepth > 0 && depth == runDepth+1:
				switch t.Name.Local {
				case "t":
					inText = true
				case "tab", "ptab":
					text.WriteByte('\t')
				case "br":
					if breakType(t) == "textWrapping" {
						text.WriteByte('\n')
					}
				case "cr":
					text.WriteByte('\n')
				case "noBreakHyphen":
					text.WriteByte('-')
				}
			}

		case xml.CharData:
			if inText {
				text.Write(t)
			}

		case xml.EndElement:
			depth := len(stack)
			if depth > 0 {
				stack = stack[:depth-1]
			}
			if current == nil {
				continue
			}

			switch {
			case depth == pDepth:
				current.end = int(decoder.InputOffset())
				current.text = text.String()
				spans = append(spans, *current)
				current = nil
				text.Reset()
				runDepth = 0
				inText = false
			case depth == pDepth+1 && t.Name.Local == "pPr" && propsAt >= 0:
				current.props = content[propsAt:decoder.InputOffset()]
				propsAt = -1
			case depth == runDepth:
				runDepth = 0
			case inText && t.Name.Local == "t":
				inText = false
			}
		}
	}

	return spans, nil
}

// breakType returns the w:type of a w:br, defaulting to a line break.
func breakType(t xml.StartElement) string {
	for _, attr := range t.Attr {
		if attr.Name.Local == "type" {
			return attr.Value
		}
	}
	return "textWrapping"
}

// render returns the paragraph element with all content except its
// properties replaced by a single unformatted run holding text.
func (s paragraphSpan) render(text string) string {
	var b strings.Builder

	open := s.openTag
	if strings.HasSuffix(open, "/>") {
		open = strings.TrimRight(strings.TrimSuffix(open, "/>"), " \t\r\n") + ">"
	}
	b.WriteString(open)
	b.WriteString(s.props)
	writeRun(&b, s.prefix, text)
	b.WriteString("</" + qualify(s.prefix, "p") + ">")

	return b.String()
}

// writeRun writes text as one w:r, mapping tabs and line breaks to their
// elements. Empty text produces no run.
func writeRun(b *strings.Builder, prefix, text string) {
	if text == "" {
		return
	}

	var segment strings.Builder
	flush := func() {
		if segment.Len() == 0 {
			return
		}
		b.WriteString("<" + qualify(prefix, "t") + ` xml:space="preserve">`)
		_ = xml.EscapeText(b, []byte(segment.String()))
		b.WriteString("</" + qualify(prefix, "t") + ">")
		segment.Reset()
	}

	b.WriteString("<" + qualify(prefix, "r") + ">")
	for _, r := range text {
		switch r {
		case '\t':
			flush()
			b.WriteString("<" + qualify(prefix, "tab") + "/>")
		case '\n', '\r':
			flush()
			b.WriteString("<" + qualify(prefix, "br") + "/>")
		default:
			segment.WriteRune(r)
		}
	}
	flush()
	b.WriteString("</" + qualify(prefix, "r") + ">")
}

func qualify(prefix, local string) string {
	if prefix == "" {
		return local
	}
	return prefix + ":" + local
}
