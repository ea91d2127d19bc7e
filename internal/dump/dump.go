// Package dump writes the paragraph-indexed plain text of a document so that
// rewrite needles can be chosen against the exact text a rule will see.
package dump

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"

	"github.com/respectabullz/contracttpl/internal/ir"
	"github.com/respectabullz/contracttpl/internal/parser/docx"
)

// Write prints one "<index>: <text>" line per non-blank paragraph of doc.
// Text is trimmed; indices are document positions, so blank paragraphs leave
// gaps in the numbering. It returns the number of lines written.
func Write(w io.Writer, doc *ir.Document) (int, error) {
	bw := bufio.NewWriter(w)

	lines := 0
	for _, p := range doc.Paragraphs {
		if p.IsBlank() {
			continue
		}
		if _, err := fmt.Fprintf(bw, "%d: %s\n", p.Index, strings.TrimSpace(p.Text())); err != nil {
			return lines, errors.Errorf("failed to write paragraph %d: %w", p.Index, err)
		}
		lines++
	}

	if err := bw.Flush(); err != nil {
		return lines, errors.Errorf("failed to flush dump: %w", err)
	}
	return lines, nil
}

// WriteFile creates or truncates path and writes the dump of doc to it.
func WriteFile(ctx context.Context, path string, doc *ir.Document) (n int, err error) {
	f, err := os.Create(path)
	if err != nil {
		return 0, errors.Errorf("failed to create dump file: %w", err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = errors.Errorf("failed to close dump file: %w", cerr)
		}
	}()

	n, err = Write(f, doc)
	if err != nil {
		return n, err
	}

	zerolog.Ctx(ctx).Debug().Str("output", path).Int("lines", n).Int("paragraphs", doc.Len()).Msg("wrote paragraph dump")
	return n, nil
}

// Run loads source and writes its dump to output.
func Run(ctx context.Context, source, output string) (int, error) {
	doc, p, err := docx.Load(source)
	if err != nil {
		return 0, err
	}
	defer p.Close()

	zerolog.Ctx(ctx).Debug().Str("source", source).Int("paragraphs", doc.Len()).Msg("loaded document")
	return WriteFile(ctx, output, doc)
}
