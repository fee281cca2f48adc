// Package setio imports and exports study sets as JSON, YAML, ZIP, markdown and PDF files.
package setio

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/flashlearn/flashlearn/internal/card"
)

// Format is a set file format
type Format string

const (
	FormatJSON     Format = "json"
	FormatYAML     Format = "yaml"
	FormatZip      Format = "zip"
	FormatMarkdown Format = "md"
	FormatPDF      Format = "pdf"
)

var (
	ErrUnsupportedFormat = errors.New("unsupported format")
	ErrNoValidCards      = errors.New("no valid cards to import")
)

// ExportFormats lists the formats accepted by Export
var ExportFormats = []Format{FormatJSON, FormatYAML, FormatZip, FormatMarkdown, FormatPDF}

// ParseFormat parses a format name
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(s)); f {
	case FormatJSON, FormatYAML, FormatZip, FormatMarkdown, FormatPDF:
		return f, nil
	case "yml":
		return FormatYAML, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, s)
}

// FormatFromPath returns the format for the extension of path
func FormatFromPath(path string) (Format, error) {
	ext := strings.TrimPrefix(filepath.Ext(path), ".")
	if ext == "" {
		return "", fmt.Errorf("%w: %s has no extension", ErrUnsupportedFormat, path)
	}
	return ParseFormat(ext)
}

// SetFile is the portable form of a set
type SetFile struct {
	Name  string     `json:"name" yaml:"name"`
	Cards []CardFile `json:"cards" yaml:"cards"`
}

// CardFile is the portable form of a card.
// For image and sound cards Question is a media path.
type CardFile struct {
	Question   string   `json:"question" yaml:"question"`
	Correct    string   `json:"correct" yaml:"correct"`
	Wrong      []string `json:"wrong,omitempty" yaml:"wrong,omitempty"`
	MediaType  string   `json:"media_type,omitempty" yaml:"media_type,omitempty"`
	AnswerType string   `json:"answer_type,omitempty" yaml:"answer_type,omitempty"`
}

func (f SetFile) validate() error {
	if f.Name == "" {
		return errors.New("missing field 'name'")
	}
	if f.Cards == nil {
		return errors.New("missing field 'cards'")
	}
	return nil
}

// Draft converts the card into a draft that can be stored
func (c CardFile) Draft() (card.Draft, error) {
	mediaType, err := card.ParseMediaType(c.MediaType)
	if err != nil {
		return card.Draft{}, err
	}
	kind, err := card.ParseAnswerKind(c.AnswerType)
	if err != nil {
		return card.Draft{}, err
	}
	draft := card.Draft{
		Question:      c.Question,
		MediaType:     mediaType,
		CorrectAnswer: c.Correct,
		WrongAnswers:  c.Wrong,
		AnswerKind:    kind,
	}
	if err := draft.Validate(); err != nil {
		return card.Draft{}, err
	}
	return draft, nil
}

// NewSetFile builds the portable form of a stored set
func NewSetFile(set card.Set, cards []card.Card) SetFile {
	f := SetFile{
		Name:  set.Name,
		Cards: make([]CardFile, 0, len(cards)),
	}
	for _, c := range cards {
		f.Cards = append(f.Cards, CardFile{
			Question:   c.QuestionText(),
			Correct:    c.CorrectAnswer,
			Wrong:      c.WrongAnswers,
			MediaType:  c.MediaType().String(),
			AnswerType: c.AnswerKind.String(),
		})
	}
	return f
}
