package setio

import (
	"archive/zip"
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path"
	"path/filepath"
	"slices"

	"gopkg.in/yaml.v3"

	"github.com/flashlearn/flashlearn/internal/assets"
	"github.com/flashlearn/flashlearn/internal/card"
	"github.com/flashlearn/flashlearn/internal/pdf"
)

// Exporter writes a set to dest
type Exporter interface {
	Export(set card.Set, cards []card.Card, dest string) error
}

// JSONExporter writes the same document JSONImporter reads
type JSONExporter struct{}

func (JSONExporter) Export(set card.Set, cards []card.Card, dest string) error {
	content, err := json.MarshalIndent(NewSetFile(set, cards), "", "  ")
	if err != nil {
		return fmt.Errorf("json.MarshalIndent() > %w", err)
	}
	return writeFile(dest, append(content, '\n'))
}

// YAMLExporter writes the same document YAMLImporter reads
type YAMLExporter struct{}

func (YAMLExporter) Export(set card.Set, cards []card.Card, dest string) error {
	var buf bytes.Buffer
	encoder := yaml.NewEncoder(&buf)
	encoder.SetIndent(2)
	if err := encoder.Encode(NewSetFile(set, cards)); err != nil {
		return fmt.Errorf("encoder.Encode() > %w", err)
	}
	if err := encoder.Close(); err != nil {
		return fmt.Errorf("encoder.Close() > %w", err)
	}
	return writeFile(dest, buf.Bytes())
}

// ZipExporter writes data.json and the media files of image and sound cards
type ZipExporter struct {
	MediaDir string
	Logger   *slog.Logger
}

func (e ZipExporter) Export(set card.Set, cards []card.Card, dest string) error {
	f := NewSetFile(set, cards)

	var buf bytes.Buffer
	archive := zip.NewWriter(&buf)
	written := map[string]bool{}
	for n, c := range cards {
		if c.MediaType() == card.MediaText {
			continue
		}
		rel := c.QuestionText()
		entry := path.Join(archiveMediaDir, filepath.ToSlash(rel))
		if !written[entry] {
			if err := e.addMedia(archive, rel, entry); err != nil {
				if !os.IsNotExist(err) {
					return err
				}
				e.logger().Warn("media file missing, exporting the path only",
					slog.Int64("card_id", c.ID),
					slog.String("path", rel),
				)
				continue
			}
			written[entry] = true
		}
		f.Cards[n].Question = entry
	}

	data, err := json.MarshalIndent(f, "", "  ")
	if err != nil {
		return fmt.Errorf("json.MarshalIndent() > %w", err)
	}
	w, err := archive.Create(archiveDataFile)
	if err != nil {
		return fmt.Errorf("archive.Create(%s) > %w", archiveDataFile, err)
	}
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("w.Write(%s) > %w", archiveDataFile, err)
	}
	if err := archive.Close(); err != nil {
		return fmt.Errorf("archive.Close() > %w", err)
	}
	return writeFile(dest, buf.Bytes())
}

func (e ZipExporter) addMedia(archive *zip.Writer, rel, entry string) error {
	src, err := os.Open(filepath.Join(e.MediaDir, rel))
	if err != nil {
		return err
	}
	defer func() {
		_ = src.Close()
	}()

	w, err := archive.Create(entry)
	if err != nil {
		return fmt.Errorf("archive.Create(%s) > %w", entry, err)
	}
	if _, err := io.Copy(w, src); err != nil {
		return fmt.Errorf("io.Copy(%s) > %w", entry, err)
	}
	return nil
}

func (e ZipExporter) logger() *slog.Logger {
	if e.Logger != nil {
		return e.Logger
	}
	return slog.Default()
}

// MarkdownExporter renders the set template
type MarkdownExporter struct {
	TemplatePath string
}

func (e MarkdownExporter) Export(set card.Set, cards []card.Card, dest string) error {
	content, err := e.render(set, cards)
	if err != nil {
		return err
	}
	return writeFile(dest, content)
}

func (e MarkdownExporter) render(set card.Set, cards []card.Card) ([]byte, error) {
	data := assets.SetTemplate{
		Name:  set.Name,
		Cards: make([]assets.SetCard, 0, len(cards)),
	}
	for n, c := range cards {
		var choices []string
		if c.IsChoiceCard() {
			choices = append(slices.Clone(c.WrongAnswers), c.CorrectAnswer)
			slices.Sort(choices)
		}
		data.Cards = append(data.Cards, assets.SetCard{
			Number:    n + 1,
			Question:  c.QuestionText(),
			MediaType: c.MediaType().String(),
			Choices:   choices,
			Answer:    c.CorrectAnswer,
		})
	}

	var buf bytes.Buffer
	if err := assets.WriteSet(&buf, e.TemplatePath, data); err != nil {
		return nil, fmt.Errorf("assets.WriteSet() > %w", err)
	}
	return buf.Bytes(), nil
}

// PDFExporter renders the set template as a printable PDF
type PDFExporter struct {
	TemplatePath string
}

func (e PDFExporter) Export(set card.Set, cards []card.Card, dest string) error {
	content, err := MarkdownExporter{TemplatePath: e.TemplatePath}.render(set, cards)
	if err != nil {
		return err
	}
	if _, err := pdf.ConvertMarkdownToPDF(content, dest); err != nil {
		return fmt.Errorf("pdf.ConvertMarkdownToPDF() > %w", err)
	}
	return nil
}

// ExporterFor returns the exporter for a format
func ExporterFor(format Format, mediaDir, templatePath string, logger *slog.Logger) (Exporter, error) {
	switch format {
	case FormatJSON:
		return JSONExporter{}, nil
	case FormatYAML:
		return YAMLExporter{}, nil
	case FormatZip:
		return ZipExporter{MediaDir: mediaDir, Logger: logger}, nil
	case FormatMarkdown:
		return MarkdownExporter{TemplatePath: templatePath}, nil
	case FormatPDF:
		return PDFExporter{TemplatePath: templatePath}, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
}

func writeFile(dest string, content []byte) error {
	if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		return fmt.Errorf("os.MkdirAll(%s) > %w", filepath.Dir(dest), err)
	}
	if err := os.WriteFile(dest, content, 0o644); err != nil {
		return fmt.Errorf("os.WriteFile(%s) > %w", dest, err)
	}
	return nil
}
