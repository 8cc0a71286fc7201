// Package pdf converts markdown reports to PDF.
package pdf

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/mandolyte/mdtopdf"
)

// Theme selects the PDF color scheme.
type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

func (t Theme) mdtopdf() mdtopdf.Theme {
	if t == ThemeDark {
		return mdtopdf.DARK
	}
	return mdtopdf.LIGHT
}

// ConvertMarkdownToPDF converts a markdown file to an A4 PDF next to it and
// returns the absolute PDF path.
func ConvertMarkdownToPDF(markdownPath string) (string, error) {
	return ConvertMarkdownToPDFWithTheme(markdownPath, ThemeLight)
}

func ConvertMarkdownToPDFWithTheme(markdownPath string, theme Theme) (string, error) {
	if !strings.HasSuffix(markdownPath, ".md") {
		return "", fmt.Errorf("input file must have .md extension: %s", markdownPath)
	}

	content, err := os.ReadFile(markdownPath)
	if err != nil {
		return "", fmt.Errorf("os.ReadFile(%s) > %w", markdownPath, err)
	}

	pdfPath := strings.TrimSuffix(markdownPath, ".md") + ".pdf"

	renderer := mdtopdf.NewPdfRenderer("P", "A4", pdfPath, "", nil, theme.mdtopdf())
	if err := renderer.Process(content); err != nil {
		return "", fmt.Errorf("renderer.Process() > %w", err)
	}

	absPath, err := filepath.Abs(pdfPath)
	if err != nil {
		return pdfPath, nil
	}
	return absPath, nil
}
