package builder

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/respectabullz/contracttpl/internal/parser/docx"
	"github.com/respectabullz/contracttpl/internal/rewrite"
	"github.com/respectabullz/contracttpl/internal/testutil"
)

func writeContract(t *testing.T) (dir, source string) {
	t.Helper()
	dir = t.TempDir()
	source = testutil.WriteParagraphs(t, dir, "Contract of Sale.docx", testutil.ContractOfSale()...)
	return dir, source
}

func TestBuild(t *testing.T) {
	dir, source := writeContract(t)
	target := filepath.Join(dir, "Contract Template.docx")
	original, err := os.ReadFile(source)
	require.NoError(t, err)

	report, err := Build(context.Background(), Options{Source: source, Target: target})
	require.NoError(t, err)
	assert.Len(t, report.Outcomes, len(rewrite.DogSaleCatalogue()))

	doc, p, err := docx.Load(target)
	require.NoError(t, err)
	defer p.Close()

	texts := doc.Texts()
	require.Len(t, texts, len(testutil.ContractOfSale()))
	assert.Equal(t, "Sire: {sireName}", texts[5])
	assert.Equal(t, "STATE OF {state} )", texts[15])
	assert.Equal(t, "COUNTY OF {county} )SS.:", texts[16])
	assert.Equal(t, "PUPPY SALE CONTRACT", texts[0])

	after, err := os.ReadFile(source)
	require.NoError(t, err)
	assert.Equal(t, original, after, "source must not change")
}

func TestBuild_UntouchedParagraphKeepFormatting(t *testing.T) {
	dir, source := writeContract(t)
	target := filepath.Join(dir, "out.docx")

	_, err := Build(context.Background(), Options{Source: source, Target: target})
	require.NoError(t, err)

	xml := testutil.ReadPart(t, target, "word/document.xml")
	assert.Contains(t, xml, testutil.Paragraph("PUPPY SALE CONTRACT"))
	assert.Contains(t, xml, testutil.Paragraph("Breeder Signature: ____________"))
	assert.NotContains(t, xml, testutil.Paragraph("Sire: Big Tank"))
}

func TestBuild_RequiredMatchFailureSavesNothing(t *testing.T) {
	dir := t.TempDir()
	source := testutil.WriteParagraphs(t, dir, "in.docx", "Sire: Big Tank", "Dam: Lady Blue")
	target := filepath.Join(dir, "out.docx")

	report, err := Build(context.Background(), Options{Source: source, Target: target})
	require.Error(t, err)
	assert.True(t, errors.Is(err, rewrite.ErrRequiredMatch))
	assert.Contains(t, err.Error(), "This Agreement dated")
	assert.Empty(t, report.Outcomes)

	_, statErr := os.Stat(target)
	assert.True(t, errors.Is(statErr, fs.ErrNotExist), "target must not be written")
}

func TestBuild_RerunOnTemplateFails(t *testing.T) {
	dir, source := writeContract(t)
	target := filepath.Join(dir, "template.docx")
	_, err := Build(context.Background(), Options{Source: source, Target: target})
	require.NoError(t, err)

	_, err = Build(context.Background(), Options{Source: target, Target: filepath.Join(dir, "again.docx")})
	require.Error(t, err)
	assert.True(t, errors.Is(err, rewrite.ErrRequiredMatch))
	assert.Contains(t, err.Error(), "If No Registration")
}

func TestBuild_DryRun(t *testing.T) {
	dir, source := writeContract(t)
	target := filepath.Join(dir, "out.docx")

	report, err := Build(context.Background(), Options{Source: source, Target: target, DryRun: true})
	require.NoError(t, err)
	assert.NotEmpty(t, report.Rewritten())

	_, statErr := os.Stat(target)
	assert.True(t, errors.Is(statErr, fs.ErrNotExist))
}

func TestBuild_CustomRules(t *testing.T) {
	dir := t.TempDir()
	source := testutil.WriteParagraphs(t, dir, "in.docx", "Sire: Big Tank", "Dam: Lady Blue")
	target := filepath.Join(dir, "out.docx")

	_, err := Build(context.Background(), Options{
		Source: source,
		Target: target,
		Rules:  []rewrite.Rule{rewrite.ReplaceParagraph("Dam:", "Dam: {damName}")},
	})
	require.NoError(t, err)

	doc, p, err := docx.Load(target)
	require.NoError(t, err)
	defer p.Close()
	assert.Equal(t, []string{"Sire: Big Tank", "Dam: {damName}"}, doc.Texts())
}

func TestBuild_SameTarget(t *testing.T) {
	_, source := writeContract(t)

	_, err := Build(context.Background(), Options{Source: source, Target: source})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrSameTarget))
}

func TestBuild_MissingSource(t *testing.T) {
	dir := t.TempDir()

	_, err := Build(context.Background(), Options{
		Source: filepath.Join(dir, "missing.docx"),
		Target: filepath.Join(dir, "out.docx"),
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, fs.ErrNotExist), "expected fs.ErrNotExist, got %v", err)
}

func TestCheckPaths(t *testing.T) {
	tests := []struct {
		name    string
		source  string
		target  string
		dryRun  bool
		wantErr bool
	}{
		{"distinct", "a.docx", "b.docx", false, false},
		{"same", "a.docx", "a.docx", false, true},
		{"same after clean", "dir/../a.docx", "a.docx", false, true},
		{"empty source", "", "b.docx", false, true},
		{"empty target", "a.docx", "", false, true},
		{"dry run ignores target", "a.docx", "", true, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := checkPaths(tc.source, tc.target, tc.dryRun)
			if tc.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
