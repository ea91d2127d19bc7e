package rewrite

import (
	"strings"

	"github.com/respectabullz/contracttpl/internal/ir"
)

const (
	stateLabel   = "STATE OF"
	countyLabel  = "COUNTY"
	countyMarker = ")SS"

	// StatePrefix replaces everything before the closing parenthesis of a
	// "STATE OF" notary line.
	StatePrefix = "STATE OF {state} "
	// CountyLine replaces the whole "COUNTY ... )SS" notary line.
	CountyLine = "COUNTY OF {county} )SS.:"
)

// NormalizeStateLines rewrites every paragraph whose normalized text starts
// with "STATE OF" and contains ")" to StatePrefix followed by the normalized
// text from the first ")" on. It returns the rewritten indices.
func NormalizeStateLines(doc *ir.Document) []int {
	var rewritten []int
	for i := 0; i < len(doc.Paragraphs); i++ {
		p := doc.Paragraphs[i]
		stripped := p.Normalized()
		if !strings.HasPrefix(stripped, stateLabel) {
			continue
		}
		idx := strings.Index(stripped, ")")
		if idx < 0 {
			continue
		}
		p.SetText(StatePrefix + stripped[idx:])
		rewritten = append(rewritten, i)
	}
	return rewritten
}

// NormalizeCountyLines rewrites every paragraph whose normalized text starts
// with "COUNTY" and contains ")SS" to CountyLine, discarding the rest of the
// paragraph. It returns the rewritten indices.
func NormalizeCountyLines(doc *ir.Document) []int {
	var rewritten []int
	for i := 0; i < len(doc.Paragraphs); i++ {
		p := doc.Paragraphs[i]
		stripped := p.Normalized()
		if strings.HasPrefix(stripped, countyLabel) && strings.Contains(stripped, countyMarker) {
			p.SetText(CountyLine)
			rewritten = append(rewritten, i)
		}
	}
	return rewritten
}
