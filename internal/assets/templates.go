// Package assets renders study sets with text templates, falling back to the embedded ones.
package assets

import (
	_ "embed"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"text/template"
)

const setTemplateName = "set.md.go.tmpl"

//go:embed templates/set.md.go.tmpl
var fallbackSetTemplate string

// SetTemplate is the data passed to the set template
type SetTemplate struct {
	Name  string
	Cards []SetCard
}

// SetCard is one card as printed in a set
type SetCard struct {
	Number    int
	Question  string
	MediaType string
	Choices   []string
	Answer    string
}

// ParseSetTemplate parses templatePath, or the embedded set template when it is empty or unreadable
func ParseSetTemplate(templatePath string) (*template.Template, error) {
	return parseTemplateWithFallback(templatePath, setTemplateName, fallbackSetTemplate)
}

// WriteSet renders a set as markdown
func WriteSet(output io.Writer, templatePath string, data SetTemplate) error {
	tmpl, err := ParseSetTemplate(templatePath)
	if err != nil {
		return fmt.Errorf("ParseSetTemplate() > %w", err)
	}
	if err := tmpl.Execute(output, data); err != nil {
		return fmt.Errorf("tmpl.Execute() > %w", err)
	}
	return nil
}

func parseTemplateWithFallback(templatePath, fallbackName, fallbackTemplate string) (*template.Template, error) {
	funcMap := template.FuncMap{
		"join": strings.Join,
	}

	if templatePath != "" {
		if _, err := os.Stat(templatePath); err == nil {
			tmpl, err := template.New(filepath.Base(templatePath)).
				Funcs(funcMap).
				ParseFiles(templatePath)
			if err == nil {
				return tmpl, nil
			}
			slog.Default().Warn("failed to parse a template, using the embedded one",
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
