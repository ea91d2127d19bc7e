// Package docx loads Office Open XML word-processing documents as ordered
// paragraphs and saves paragraph text changes back into the package.
package docx

import (
	"os"
	"path/filepath"
	"strings"

	ooxml "github.com/nguyenthenguyen/docx"
	"gitlab.com/tozd/go/errors"

	"github.com/respectabullz/contracttpl/internal/ir"
	"github.com/respectabullz/contracttpl/internal/parser"
)

// Parser reads and writes one .docx package. Only body paragraph text in
// word/document.xml is ever changed; every other part and every untouched
// paragraph is written back byte for byte.
type Parser struct {
	path     string
	reader   *ooxml.ReplaceDocx
	editable *ooxml.Docx

	content string
	spans   []paragraphSpan
}

var _ parser.Parser = (*Parser)(nil)

// New opens the document at path.
func New(path string) (*Parser, error) {
	format, err := parser.Inspect(path)
	if err != nil {
		return nil, err
	}
	if err := parser.CheckSupported(format, path); err != nil {
		return nil, err
	}

	r, err := ooxml.ReadDocxFile(path)
	if err != nil {
		return nil, errors.Errorf("failed to open DOCX file: %w", err)
	}

	p := &Parser{
		path:     path,
		reader:   r,
		editable: r.Editable(),
	}
	p.content = p.editable.GetContent()

	spans, err := scanBody(p.content)
	if err != nil {
		r.Close()
		return nil, errors.Errorf("failed to parse word/document.xml: %w", err)
	}
	p.spans = spans

	return p, nil
}

// Parse implements the Parser interface.
func (p *Parser) Parse() (*ir.Document, error) {
	doc := ir.NewDocument(p.path)
	for _, span := range p.spans {
		doc.AddParagraph(span.text)
	}
	return doc, nil
}

// Save implements the Parser interface.
func (p *Parser) Save(doc *ir.Document, path string) error {
	if doc.Len() != len(p.spans) {
		return errors.Errorf("paragraph count changed from %d to %d", len(p.spans), doc.Len())
	}

	p.editable.SetContent(p.render(doc))
	return p.writeFile(path)
}

// writeFile writes the package to a temporary file beside path and renames
// it into place, so a failed write never leaves a partial document at path.
func (p *Parser) writeFile(path string) (err error) {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return errors.Errorf("failed to write %s: %w", path, err)
	}
	defer func() {
		if err != nil {
			tmp.Close()
			os.Remove(tmp.Name())
		}
	}()

	if err := p.editable.Write(tmp); err != nil {
		return errors.Errorf("failed to write %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		return errors.Errorf("failed to write %s: %w", path, err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return errors.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

// Close releases resources.
func (p *Parser) Close() error {
	if p.reader != nil {
		return p.reader.Close()
	}
	return nil
}

// render splices modified paragraphs into the original document XML.
func (p *Parser) render(doc *ir.Document) string {
	var b strings.Builder
	b.Grow(len(p.content))

	last := 0
	for i, span := range p.spans {
		para := doc.Paragraphs[i]
		if !para.Modified() {
			continue
		}
		b.WriteString(p.content[last:span.start])
		b.WriteString(span.render(para.Text()))
		last = span.end
	}
	b.WriteString(p.content[last:])

	return b.String()
}

// Load opens path and returns its paragraphs together with the parser that
// can save them. Callers must Close the parser.
func Load(path string) (*ir.Document, *Parser, error) {
	p, err := New(path)
	if err != nil {
		return nil, nil, err
	}
	doc, err := p.Parse()
	if err != nil {
		p.Close()
		return nil, nil, err
	}
	return doc, p, nil
}
