// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/pdiddy/cisconv/internal/category"
	"github.com/pdiddy/cisconv/internal/pdftext"
	"github.com/pdiddy/cisconv/internal/store"
	"github.com/pdiddy/cisconv/pkg/types"
)

// fakeExtractor hands out an in-memory document regardless of path.
type fakeExtractor struct {
	pages   []string
	openErr error
	opened  string
}

func (f *fakeExtractor) Open(path string) (pdftext.Document, error) {
	f.opened = path
	if f.openErr != nil {
		return nil, f.openErr
	}
	return &fakeDocument{pages: f.pages}, nil
}

type fakeDocument struct {
	pages []string
}

func (d *fakeDocument) NumPages() int                  { return len(d.pages) }
func (d *fakeDocument) PageText(n int) (string, error) { return d.pages[n-1], nil }
func (d *fakeDocument) Close() error                   { return nil }

var benchmarkPages = []string{
	"CIS Debian Linux 12\nBenchmark\nv1.0.1 - 09-26-2024",
	"Table of Contents\n1.1.1 Ensure cramfs is disabled (Automated) ..... 17",
	strings.Join([]string{
		"1.1.1 Ensure cramfs is disabled (Automated)",
		"Profile Applicability:",
		"• Level 1 - Server",
		"Description:",
		"The cramfs filesystem type is a compressed read-only Linux filesystem.",
		"Page 17",
	}, "\n"),
	strings.Join([]string{
		"Audit:",
		"# modprobe -n -v cramfs",
		"4.1.1 Ensure auditd is installed (Automated)",
		"Profile Applicability:",
		"• Level 2 - Server",
		"Remediation:",
		"# apt install auditd",
		"4.2 Configure Logging",
		"This section covers logging.",
	}, "\n"),
}

const categoriesJSON = `{
  "default": {"1": "Initial Setup"},
  "debian": {"1": "Initial Setup", "4": "Logging and Auditing"}
}`

func setup(t *testing.T) (types.ConvertConfig, string) {
	t.Helper()
	dir := t.TempDir()
	catPath := filepath.Join(dir, "cis_categories.json")
	require.NoError(t, os.WriteFile(catPath, []byte(categoriesJSON), 0o644))

	cfg := types.ConvertConfig{
		Extraction:     types.ExtractionConfig{StartPage: 3},
		InputPath:      filepath.Join(dir, "CIS_Debian_Linux_12_Benchmark.pdf"),
		OutputPath:     filepath.Join(dir, "out.xlsx"),
		CategoriesPath: catPath,
	}
	return cfg, dir
}

func TestRun(t *testing.T) {
	cfg, dir := setup(t)
	cfg.DBPath = filepath.Join(dir, "audit.db")

	var out bytes.Buffer
	res, err := Run(context.Background(), cfg, &fakeExtractor{pages: benchmarkPages}, nil, &out)
	require.NoError(t, err)

	assert.Equal(t, 2, res.Recommendations)
	assert.Equal(t, "CIS Debian Linux 12 Benchmark", res.Document.Title)
	assert.Equal(t, "v1.0.1 - 09-26-2024", res.Document.Version)
	assert.Equal(t, "debian", res.Document.Selector)
	assert.Equal(t, "CIS_Debian_Linux_12_Benchmark", res.Document.ID)
	require.Len(t, res.Groups, 2)
	assert.Equal(t, "Initial Setup", res.Groups[0].Category)
	assert.Equal(t, "Logging and Auditing", res.Groups[1].Category)

	first := res.Groups[0].Recommendations[0]
	assert.Equal(t, "# modprobe -n -v cramfs", first.Section(types.SectionAudit))
	assert.Equal(t, "The cramfs filesystem type is a compressed read-only Linux filesystem.", first.Section(types.SectionDescription))

	assert.Contains(t, out.String(), "Logging and Auditing")
	assert.Contains(t, out.String(), "wrote "+cfg.OutputPath)

	f, err := excelize.OpenFile(cfg.OutputPath)
	require.NoError(t, err)
	defer f.Close()
	assert.Equal(t, []string{"1. Initial Setup", "2. Logging and Auditing", "3. SCORE"}, f.GetSheetList())
	title, err := f.GetCellValue("2. Logging and Auditing", "B1")
	require.NoError(t, err)
	assert.Equal(t, "CIS Debian Linux 12 Benchmark - Logging and Auditing", title)

	st, err := store.Open(cfg.DBPath)
	require.NoError(t, err)
	defer st.Close()
	stored, err := st.Search(context.Background(), store.QueryOptions{Query: "auditd"})
	require.NoError(t, err)
	require.Len(t, stored, 1)
	assert.Equal(t, "4.1.1", stored[0].Number)
	assert.True(t, res.Stored)
}

func TestRun_DottedFileName(t *testing.T) {
	cfg, dir := setup(t)
	cfg.InputPath = filepath.Join(dir, "CIS_v1.0.1_Debian_Linux_12_Benchmark.pdf")

	res, err := Run(context.Background(), cfg, &fakeExtractor{pages: benchmarkPages}, nil, &bytes.Buffer{})
	require.NoError(t, err)
	assert.Equal(t, "CIS_v1.0.1_Debian_Linux_12_Benchmark", res.Document.ID)
	assert.Equal(t, "debian", res.Document.Selector)
	require.Len(t, res.Groups, 2)
	assert.Equal(t, "Logging and Auditing", res.Groups[1].Category)
}

func TestRun_StoreFailureKeepsWorkbook(t *testing.T) {
	cfg, dir := setup(t)
	blocker := filepath.Join(dir, "not-a-dir")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o644))
	cfg.DBPath = filepath.Join(blocker, "audit.db")

	var out bytes.Buffer
	res, err := Run(context.Background(), cfg, &fakeExtractor{pages: benchmarkPages}, nil, &out)
	require.NoError(t, err)
	assert.False(t, res.Stored)
	assert.Equal(t, 2, res.Recommendations)
	assert.Contains(t, out.String(), "not updated")

	_, statErr := os.Stat(cfg.OutputPath)
	assert.NoError(t, statErr)
}

func TestRun_OSTypeOverride(t *testing.T) {
	cfg, _ := setup(t)
	cfg.OSType = "default"

	res, err := Run(context.Background(), cfg, &fakeExtractor{pages: benchmarkPages}, nil, &bytes.Buffer{})
	require.NoError(t, err)
	assert.Equal(t, "default", res.Document.Selector)
	require.Len(t, res.Groups, 2)
	assert.Equal(t, types.AdditionalCategory, res.Groups[1].Category)
}

func TestRun_FatalErrorsWriteNothing(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*types.ConvertConfig)
		ex     *fakeExtractor
		target error
	}{
		{
			name:   "missing category configuration",
			mutate: func(c *types.ConvertConfig) { c.CategoriesPath = c.CategoriesPath + ".missing" },
			ex:     &fakeExtractor{pages: benchmarkPages},
			target: category.ErrConfigNotFound,
		},
		{
			name:   "start page beyond document",
			mutate: func(c *types.ConvertConfig) { c.Extraction.StartPage = 40 },
			ex:     &fakeExtractor{pages: benchmarkPages},
			target: pdftext.ErrStartPageOutOfRange,
		},
		{
			name:   "unreadable PDF",
			mutate: func(*types.ConvertConfig) {},
			ex:     &fakeExtractor{openErr: os.ErrNotExist},
			target: os.ErrNotExist,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, _ := setup(t)
			tt.mutate(&cfg)

			_, err := Run(context.Background(), cfg, tt.ex, nil, &bytes.Buffer{})
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.target), "got %v", err)

			_, statErr := os.Stat(cfg.OutputPath)
			assert.True(t, os.IsNotExist(statErr), "no workbook should be written")
		})
	}
}

func TestRun_DefaultStartPage(t *testing.T) {
	cfg, _ := setup(t)
	cfg.Extraction.StartPage = 0

	_, err := Run(context.Background(), cfg, &fakeExtractor{pages: benchmarkPages}, nil, &bytes.Buffer{})
	require.Error(t, err)
	assert.True(t, errors.Is(err, pdftext.ErrStartPageOutOfRange))
}

func TestDefaultOutputPath(t *testing.T) {
	assert.Equal(t, "CIS_Ubuntu_22.04.xlsx", DefaultOutputPath("/data/CIS_Ubuntu_22.04.pdf"))
	assert.Equal(t, "bench.xlsx", DefaultOutputPath("bench"))
}
