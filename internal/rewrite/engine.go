package rewrite

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"

	"github.com/respectabullz/contracttpl/internal/ir"
)

// ErrRequiredMatch is matched by every RequiredMatchError.
var ErrRequiredMatch = errors.Base("required paragraph not found")

// RequiredMatchError reports a whole-paragraph rule whose needle appears in
// no paragraph. Closest is the best fuzzy candidate, if any, formatted the way
// the dumper prints paragraphs.
type RequiredMatchError struct {
	Needle  string
	Closest string
}

func (e *RequiredMatchError) Error() string {
	return fmt.Sprintf("could not find paragraph containing: %q", e.Needle)
}

// Is makes errors.Is(err, ErrRequiredMatch) hold.
func (e *RequiredMatchError) Is(target error) bool {
	return target == ErrRequiredMatch
}

// ReplaceWholeParagraph sets the entire text of the first paragraph, in
// document order, whose text contains needle. It returns the index of that
// paragraph, or a *RequiredMatchError when no paragraph contains needle.
func ReplaceWholeParagraph(doc *ir.Document, needle, replacement string) (int, error) {
	for i := 0; i < len(doc.Paragraphs); i++ {
		p := doc.Paragraphs[i]
		if p.Contains(needle) {
			p.SetText(replacement)
			return i, nil
		}
	}
	return -1, newRequiredMatchError(doc, needle)
}

// ReplaceSubstring replaces every occurrence of needle inside every paragraph
// that contains it, leaving surrounding text intact. Matching nothing is not
// an error. It returns the indices of rewritten paragraphs.
func ReplaceSubstring(doc *ir.Document, needle, replacement string) []int {
	var rewritten []int
	for i := 0; i < len(doc.Paragraphs); i++ {
		p := doc.Paragraphs[i]
		if p.Contains(needle) {
			p.ReplaceAll(needle, replacement)
			rewritten = append(rewritten, i)
		}
	}
	return rewritten
}

// Outcome is the effect of one rule.
type Outcome struct {
	Order      int   // 1-based position in the catalogue
	Rule       Rule
	Paragraphs []int // indices rewritten by this rule
	Repeated   []int // subset of Paragraphs already rewritten by an earlier rule
}

// Report lists the outcome of every applied rule in catalogue order.
type Report struct {
	Outcomes []Outcome
}

// Rewritten returns the distinct paragraph indices touched by any rule.
func (r *Report) Rewritten() []int {
	seen := make(map[int]bool)
	var indices []int
	for _, o := range r.Outcomes {
		for _, i := range o.Paragraphs {
			if !seen[i] {
				seen[i] = true
				indices = append(indices, i)
			}
		}
	}
	sort.Ints(indices)
	return indices
}

// Misses returns the optional rules that matched nothing.
func (r *Report) Misses() []Outcome {
	var misses []Outcome
	for _, o := range r.Outcomes {
		if len(o.Paragraphs) == 0 {
			misses = append(misses, o)
		}
	}
	return misses
}

// Apply runs rules in order against doc. Each rule sees the text left by the
// rules before it. The first failing rule stops the run; doc then holds the
// partial in-memory result and the report lists the rules applied so far.
func Apply(ctx context.Context, doc *ir.Document, rules []Rule) (*Report, error) {
	logger := zerolog.Ctx(ctx)
	report := &Report{}

	for i, rule := range rules {
		if err := rule.Validate(); err != nil {
			return report, errors.Errorf("rule %d: %w", i+1, err)
		}

		before := doc.Modified()
		indices, err := applyRule(doc, rule)
		if err != nil {
			logger.Debug().Int("rule", i+1).Str("kind", string(rule.Kind)).Str("needle", rule.Needle).Msg("required rule matched nothing")
			return report, errors.Errorf("rule %d (%s): %w", i+1, rule.Kind, err)
		}

		outcome := Outcome{
			Order:      i + 1,
			Rule:       rule,
			Paragraphs: indices,
			Repeated:   intersect(indices, before),
		}
		report.Outcomes = append(report.Outcomes, outcome)

		logger.Debug().
			Int("rule", outcome.Order).
			Str("kind", string(rule.Kind)).
			Str("needle", rule.Needle).
			Ints("paragraphs", indices).
			Msg("rule applied")
		if len(outcome.Repeated) > 0 && !rule.Literal() {
			logger.Debug().Int("rule", outcome.Order).Ints("paragraphs", outcome.Repeated).Msg("normalization rewrote already templated paragraphs")
		}
	}

	return report, nil
}

// applyRule is the single interpreter for every rule variant.
func applyRule(doc *ir.Document, rule Rule) ([]int, error) {
	switch rule.Kind {
	case KindReplaceParagraph:
		idx, err := ReplaceWholeParagraph(doc, rule.Needle, rule.Replacement)
		if err != nil {
			return nil, err
		}
		return []int{idx}, nil
	case KindReplaceText:
		return ReplaceSubstring(doc, rule.Needle, rule.Replacement), nil
	case KindNormalizeState:
		return NormalizeStateLines(doc), nil
	case KindNormalizeCounty:
		return NormalizeCountyLines(doc), nil
	default:
		return nil, errors.Errorf("unknown rule kind %q", rule.Kind)
	}
}

func newRequiredMatchError(doc *ir.Document, needle string) *RequiredMatchError {
	e := &RequiredMatchError{Needle: needle}

	targets := make([]string, len(doc.Paragraphs))
	for i, p := range doc.Paragraphs {
		targets[i] = p.Normalized()
	}
	ranks := fuzzy.RankFindNormalizedFold(needle, targets)
	if len(ranks) > 0 {
		sort.Sort(ranks)
		best := ranks[0]
		e.Closest = fmt.Sprintf("%d: %s", best.OriginalIndex, strings.TrimSpace(best.Target))
	}
	return e
}

func intersect(indices, other []int) []int {
	if len(indices) == 0 || len(other) == 0 {
		return nil
	}
	set := make(map[int]bool, len(other))
	for _, i := range other {
		set[i] = true
	}
	var out []int
	for _, i := range indices {
		if set[i] {
			out = append(out, i)
		}
	}
	return out
}
