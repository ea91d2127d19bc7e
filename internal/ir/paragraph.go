package ir

import "strings"

// nbsp is the non-breaking space word processors put in fill-in lines.
const nbsp = "\u00a0"

// Paragraph is one addressable block of text. Index is its 0-based position in
// the document and stays fixed for the lifetime of the document.
type Paragraph struct {
	Index int

	text     string
	modified bool
}

// NewParagraph creates a paragraph at the given position.
func NewParagraph(index int, text string) *Paragraph {
	return &Paragraph{
		Index: index,
		text:  text,
	}
}

// Text returns the current paragraph text.
func (p *Paragraph) Text() string {
	return p.text
}

// SetText replaces the whole paragraph text. The paragraph is marked modified
// even when the new text equals the old one, since the saved paragraph loses
// its run formatting either way.
func (p *Paragraph) SetText(text string) {
	p.text = text
	p.modified = true
}

// Contains reports whether the current text contains needle.
func (p *Paragraph) Contains(needle string) bool {
	return strings.Contains(p.text, needle)
}

// ReplaceAll replaces every occurrence of old in the paragraph text.
func (p *Paragraph) ReplaceAll(old, replacement string) {
	p.SetText(strings.ReplaceAll(p.text, old, replacement))
}

// Modified reports whether SetText has been called.
func (p *Paragraph) Modified() bool {
	return p.modified
}

// IsBlank reports whether the text is empty once surrounding whitespace is removed.
func (p *Paragraph) IsBlank() bool {
	return strings.TrimSpace(p.text) == ""
}

// Normalized returns the text with non-breaking spaces mapped to spaces and
// surrounding whitespace trimmed.
func (p *Paragraph) Normalized() string {
	return NormalizeSpace(p.text)
}

// NormalizeSpace maps non-breaking spaces to regular spaces and trims.
func NormalizeSpace(s string) string {
	return strings.TrimSpace(strings.ReplaceAll(s, nbsp, " "))
}
