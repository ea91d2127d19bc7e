// Package builder turns a filled-in contract document into a template file.
package builder

import (
	"context"
	"path/filepath"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"

	"github.com/respectabullz/contracttpl/internal/parser/docx"
	"github.com/respectabullz/contracttpl/internal/rewrite"
)

// ErrSameTarget is returned when the target would overwrite the source.
var ErrSameTarget = errors.Base("target path is the source path")

// Options configures one build.
type Options struct {
	Source string
	Target string
	// Rules defaults to the dog-sale catalogue when empty.
	Rules []rewrite.Rule
	// DryRun applies the rules in memory and skips the save.
	DryRun bool
}

func (o Options) rules() []rewrite.Rule {
	if len(o.Rules) == 0 {
		return rewrite.DogSaleCatalogue()
	}
	return o.Rules
}

// Build loads Source, applies the rules in order and saves the result to
// Target. Nothing is written unless every rule succeeds. The report is
// returned even when a rule fails, listing the rules applied before it.
func Build(ctx context.Context, opts Options) (*rewrite.Report, error) {
	logger := zerolog.Ctx(ctx)

	if err := checkPaths(opts.Source, opts.Target, opts.DryRun); err != nil {
		return nil, err
	}

	doc, p, err := docx.Load(opts.Source)
	if err != nil {
		return nil, err
	}
	defer p.Close()

	logger.Debug().Str("source", opts.Source).Int("paragraphs", doc.Len()).Msg("loaded document")

	report, err := rewrite.Apply(ctx, doc, opts.rules())
	if err != nil {
		return report, err
	}

	if opts.DryRun {
		logger.Debug().Ints("paragraphs", report.Rewritten()).Msg("dry run, template not saved")
		return report, nil
	}

	if err := p.Save(doc, opts.Target); err != nil {
		return report, err
	}

	logger.Debug().Str("target", opts.Target).Ints("paragraphs", doc.Modified()).Msg("saved template")
	return report, nil
}

func checkPaths(source, target string, dryRun bool) error {
	if source == "" {
		return errors.New("source path is empty")
	}
	if dryRun {
		return nil
	}
	if target == "" {
		return errors.New("target path is empty")
	}

	src, err := filepath.Abs(source)
	if err != nil {
		return errors.Errorf("failed to resolve source path: %w", err)
	}
	dst, err := filepath.Abs(target)
	if err != nil {
		return errors.Errorf("failed to resolve target path: %w", err)
	}
	if src == dst {
		return errors.Errorf("%w: %s", ErrSameTarget, source)
	}
	return nil
}
