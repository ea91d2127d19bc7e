// Package parser provides format detection and the loader interface for
// word-processing documents.
package parser

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/richardlehane/mscfb"
	"gitlab.com/tozd/go/errors"

	"github.com/respectabullz/contracttpl/internal/ir"
)

// Parser loads a document into paragraphs and writes modified paragraphs back.
type Parser interface {
	// Parse reads the document and returns its body paragraphs.
	Parse() (*ir.Document, error)

	// Save writes doc, which must come from Parse, to path.
	Save(doc *ir.Document, path string) error

	// Close releases any resources held by the parser.
	Close() error
}

var (
	ErrUnsupportedFormat = errors.Base("unsupported document format")
	ErrLegacyWord        = errors.Base("legacy Word binary documents (.doc) are not supported; re-save as .docx")
	ErrEncrypted         = errors.Base("password-protected documents are not supported")
)

// Format represents a document format.
type Format int

const (
	FormatUnknown Format = iota
	FormatDOCX
	FormatDOC       // Word 97-2003 binary, an OLE2 compound file
	FormatEncrypted // OOXML package wrapped in an OLE2 EncryptedPackage stream
)

// String returns the string representation of the format.
func (f Format) String() string {
	switch f {
	case FormatDOCX:
		return "docx"
	case FormatDOC:
		return "doc"
	case FormatEncrypted:
		return "encrypted"
	default:
		return "unknown"
	}
}

// DetectFormat detects the document format from the file path.
func DetectFormat(path string) Format {
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".docx", ".docm", ".dotx", ".dotm":
		return FormatDOCX
	case ".doc", ".dot":
		return FormatDOC
	default:
		return FormatUnknown
	}
}

var oleMagic = []byte{0xD0, 0xCF, 0x11, 0xE0, 0xA1, 0xB1, 0x1A, 0xE1}

// DetectFormatFromReader detects the format by reading magic bytes. OLE2
// compound files are opened to tell a legacy Word file from an encrypted
// OOXML package, which share the same signature.
func DetectFormatFromReader(r io.ReaderAt) (Format, error) {
	buf := make([]byte, 8)
	n, err := r.ReadAt(buf, 0)
	if err != nil && err != io.EOF {
		return FormatUnknown, errors.Errorf("failed to read magic bytes: %w", err)
	}
	if n < 4 {
		return FormatUnknown, errors.New("file too small to detect format")
	}

	// ZIP magic number (OOXML package)
	if buf[0] == 'P' && buf[1] == 'K' {
		return FormatDOCX, nil
	}

	if n == len(oleMagic) && bytes.Equal(buf, oleMagic) {
		return detectCompound(r)
	}

	return FormatUnknown, nil
}

func detectCompound(r io.ReaderAt) (Format, error) {
	doc, err := mscfb.New(r)
	if err != nil {
		return FormatUnknown, errors.Errorf("failed to read OLE2 container: %w", err)
	}

	format := FormatUnknown
	for _, entry := range doc.File {
		switch entry.Name {
		case "EncryptedPackage", "EncryptionInfo":
			return FormatEncrypted, nil
		case "WordDocument":
			format = FormatDOC
		}
	}
	return format, nil
}

// Inspect opens path and detects its format from content. A missing file
// yields an error that matches fs.ErrNotExist.
func Inspect(path string) (Format, error) {
	f, err := os.Open(path)
	if err != nil {
		return FormatUnknown, errors.Errorf("failed to open document: %w", err)
	}
	defer f.Close()

	format, err := DetectFormatFromReader(f)
	if err != nil {
		return FormatUnknown, errors.Errorf("failed to inspect %s: %w", path, err)
	}
	return format, nil
}

// CheckSupported returns nil for formats the loader can read.
func CheckSupported(format Format, path string) error {
	switch format {
	case FormatDOCX:
		return nil
	case FormatDOC:
		return errors.Errorf("%s: %w", path, ErrLegacyWord)
	case FormatEncrypted:
		return errors.Errorf("%s: %w", path, ErrEncrypted)
	default:
		if named := DetectFormat(path); named != FormatUnknown {
			return errors.Errorf("%s: content is not a %s document: %w", path, named, ErrUnsupportedFormat)
		}
		return errors.Errorf("%s: %w", path, ErrUnsupportedFormat)
	}
}
