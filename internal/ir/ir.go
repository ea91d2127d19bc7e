// Package ir defines the in-memory paragraph model of a word-processing document.
// The loader produces it, the dumper reads it and the rewrite engine mutates it.
package ir

// Document is the ordered sequence of body paragraphs of one loaded file.
// Paragraph order and count never change after loading; only text does.
type Document struct {
	Source     string
	Paragraphs []*Paragraph
}

// NewDocument creates an empty document loaded from source.
func NewDocument(source string) *Document {
	return &Document{
		Source:     source,
		Paragraphs: make([]*Paragraph, 0),
	}
}

// AddParagraph appends a paragraph at the next position index.
func (d *Document) AddParagraph(text string) *Paragraph {
	p := NewParagraph(len(d.Paragraphs), text)
	d.Paragraphs = append(d.Paragraphs, p)
	return p
}

// Len returns the number of paragraphs.
func (d *Document) Len() int {
	return len(d.Paragraphs)
}

// Texts returns the current text of every paragraph in document order.
func (d *Document) Texts() []string {
	texts := make([]string, len(d.Paragraphs))
	for i, p := range d.Paragraphs {
		texts[i] = p.Text()
	}
	return texts
}

// Modified returns the indices of paragraphs whose text has been set since loading.
func (d *Document) Modified() []int {
	var indices []int
	for _, p := range d.Paragraphs {
		if p.Modified() {
			indices = append(indices, p.Index)
		}
	}
	return indices
}
