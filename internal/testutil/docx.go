// Package testutil builds small .docx fixtures for tests.
package testutil

import (
	"archive/zip"
	"encoding/xml"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const contentTypes = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types"><Default Extension="rels" ContentType="application/vnd.openxmlformats-package.relationships+xml"/><Default Extension="xml" ContentType="application/xml"/><Override PartName="/word/document.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.document.main+xml"/></Types>`

const packageRels = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships"><Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/officeDocument" Target="word/document.xml"/></Relationships>`

const documentRels = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships"></Relationships>`

const documentHeader = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main" xmlns:r="http://schemas.openxmlformats.org/officeDocument/2006/relationships"><w:body>`

const documentFooter = `<w:sectPr><w:pgSz w:w="12240" w:h="15840"/></w:sectPr></w:body></w:document>`

// DocumentXML wraps body in a word/document.xml part.
func DocumentXML(body string) string {
	return documentHeader + body + documentFooter
}

// Paragraph renders text as a styled body paragraph with a bold run, so tests
// can tell rewritten paragraphs from untouched ones.
func Paragraph(text string) string {
	if text == "" {
		return `<w:p><w:pPr><w:pStyle w:val="Normal"/></w:pPr></w:p>`
	}
	var b strings.Builder
	b.WriteString(`<w:p><w:pPr><w:pStyle w:val="Normal"/></w:pPr><w:r><w:rPr><w:b/></w:rPr><w:t xml:space="preserve">`)
	_ = xml.EscapeText(&b, []byte(text))
	b.WriteString(`</w:t></w:r></w:p>`)
	return b.String()
}

// Body renders each text as a Paragraph.
func Body(texts ...string) string {
	var b strings.Builder
	for _, text := range texts {
		b.WriteString(Paragraph(text))
	}
	return b.String()
}

// WriteDOCX writes a minimal word-processing package whose document body is
// body and returns its path.
func WriteDOCX(t testing.TB, dir, name, body string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("failed to create fixture: %v", err)
	}
	defer f.Close()

	w := zip.NewWriter(f)
	addZipFile(t, w, "[Content_Types].xml", contentTypes)
	addZipFile(t, w, "_rels/.rels", packageRels)
	addZipFile(t, w, "word/_rels/document.xml.rels", documentRels)
	addZipFile(t, w, "word/document.xml", DocumentXML(body))
	if err := w.Close(); err != nil {
		t.Fatalf("failed to close zip writer: %v", err)
	}
	return path
}

// WriteParagraphs writes a fixture with one styled paragraph per text.
func WriteParagraphs(t testing.TB, dir, name string, texts ...string) string {
	t.Helper()
	return WriteDOCX(t, dir, name, Body(texts...))
}

// ReadPart returns the raw content of one part of a package.
func ReadPart(t testing.TB, path, part string) string {
	t.Helper()

	r, err := zip.OpenReader(path)
	if err != nil {
		t.Fatalf("failed to open %s: %v", path, err)
	}
	defer r.Close()

	for _, f := range r.File {
		if f.Name != part {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			t.Fatalf("failed to open part %s: %v", part, err)
		}
		defer rc.Close()
		data, err := io.ReadAll(rc)
		if err != nil {
			t.Fatalf("failed to read part %s: %v", part, err)
		}
		return string(data)
	}
	t.Fatalf("part %s not found in %s", part, path)
	return ""
}

func addZipFile(t testing.TB, w *zip.Writer, name, content string) {
	t.Helper()
	fw, err := w.Create(name)
	if err != nil {
		t.Fatalf("failed to create zip entry %s: %v", name, err)
	}
	if _, err := io.WriteString(fw, content); err != nil {
		t.Fatalf("failed to write zip entry %s: %v", name, err)
	}
}
