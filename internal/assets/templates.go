// Package assets renders markdown documents from embedded templates that can be overridden on disk.
package assets

import (
	_ "embed"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"text/template"
	"time"
)

//go:embed templates/progress-report.md.go.tmpl
var fallbackProgressReportTemplate string

const progressReportTemplateName = "progress-report.md.go.tmpl"

func ParseProgressReportTemplate(templatePath string) (*template.Template, error) {
	return parseTemplateWithFallback(templatePath, progressReportTemplateName, fallbackProgressReportTemplate)
}

func parseTemplateWithFallback(templatePath, fallbackName, fallbackTemplate string) (*template.Template, error) {
	funcMap := template.FuncMap{
		"join": strings.Join,
		"date": func(t time.Time) string {
			return t.Format(time.DateOnly)
		},
		"hours": func(h float64) string {
			return fmt.Sprintf("%.1f", h)
		},
		"bar": progressBar,
	}

	if templatePath != "" {
		if _, err := os.Stat(templatePath); err == nil {
			fileName := filepath.Base(templatePath)
			tmpl, err := template.New(fileName).
				Funcs(funcMap).
				ParseFiles(templatePath)
			if err == nil {
				return tmpl, nil
			}
			slog.Default().Warn("failed to parse a templatePath",
				slog.String("templatePath", templatePath),
				slog.Any("error", err),
			)
		}
	}

	tmpl, err := template.New(fallbackName).
		Funcs(funcMap).
		Parse(fallbackTemplate)
	if err != nil {
		return nil, fmt.Errorf("failed to parse embedded template: %w", err)
	}

	return tmpl, nil
}

// progressBar renders a percentage as ten blocks.
func progressBar(percent int) string {
	filled := min(max(percent, 0), 100) / 10
	return strings.Repeat("█", filled) + strings.Repeat("░", 10-filled)
}
