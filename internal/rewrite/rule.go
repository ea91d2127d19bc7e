// Package rewrite turns a filled-in contract into a template by applying an
// ordered catalogue of paragraph rewrite rules.
package rewrite

import (
	"fmt"

	"gitlab.com/tozd/go/errors"
)

// Kind tags the variant of a Rule.
type Kind string

const (
	// KindReplaceParagraph replaces the whole text of the first paragraph
	// containing Needle. A miss is fatal.
	KindReplaceParagraph Kind = "replace-paragraph"
	// KindReplaceText replaces every occurrence of Needle in every paragraph
	// containing it. A miss is not an error.
	KindReplaceText Kind = "replace-text"
	// KindNormalizeState rewrites "STATE OF ... )" notary lines.
	KindNormalizeState Kind = "normalize-state"
	// KindNormalizeCounty rewrites "COUNTY ... )SS" notary lines.
	KindNormalizeCounty Kind = "normalize-county"
)

// Rule is one entry of a catalogue. Needle and Replacement are only used by
// the literal kinds.
type Rule struct {
	Kind        Kind   `yaml:"kind"`
	Needle      string `yaml:"needle,omitempty"`
	Replacement string `yaml:"replacement,omitempty"`
}

// ReplaceParagraph builds a required whole-paragraph rule.
func ReplaceParagraph(needle, replacement string) Rule {
	return Rule{Kind: KindReplaceParagraph, Needle: needle, Replacement: replacement}
}

// ReplaceText builds an optional in-place substring rule.
func ReplaceText(needle, replacement string) Rule {
	return Rule{Kind: KindReplaceText, Needle: needle, Replacement: replacement}
}

// NormalizeState builds the "STATE OF" notary line scan.
func NormalizeState() Rule {
	return Rule{Kind: KindNormalizeState}
}

// NormalizeCounty builds the "COUNTY ... )SS" notary line scan.
func NormalizeCounty() Rule {
	return Rule{Kind: KindNormalizeCounty}
}

// Required reports whether a miss aborts the run.
func (r Rule) Required() bool {
	return r.Kind == KindReplaceParagraph
}

// Literal reports whether the rule is keyed to a needle.
func (r Rule) Literal() bool {
	return r.Kind == KindReplaceParagraph || r.Kind == KindReplaceText
}

// Validate checks that the rule can be applied.
func (r Rule) Validate() error {
	switch r.Kind {
	case KindReplaceParagraph, KindReplaceText:
		if r.Needle == "" {
			return errors.Errorf("%s rule has an empty needle", r.Kind)
		}
	case KindNormalizeState, KindNormalizeCounty:
		if r.Needle != "" || r.Replacement != "" {
			return errors.Errorf("%s rule takes no needle or replacement", r.Kind)
		}
	default:
		return errors.Errorf("unknown rule kind %q", r.Kind)
	}
	return nil
}

// String returns a short description used in logs and reports.
func (r Rule) String() string {
	if r.Literal() {
		return fmt.Sprintf("%s %q", r.Kind, r.Needle)
	}
	return string(r.Kind)
}
