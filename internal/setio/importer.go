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
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/flashlearn/flashlearn/internal/card"
)

const (
	archiveDataFile = "data.json"
	archiveMediaDir = "media"
)

// Importer reads a set file
type Importer interface {
	Read(filePath string) (SetFile, error)
}

// JSONImporter reads a set from a JSON document
type JSONImporter struct{}

func (JSONImporter) Read(filePath string) (SetFile, error) {
	content, err := os.ReadFile(filePath)
	if err != nil {
		return SetFile{}, fmt.Errorf("os.ReadFile(%s) > %w", filePath, err)
	}
	return decodeJSON(content)
}

func decodeJSON(content []byte) (SetFile, error) {
	var f SetFile
	if err := json.Unmarshal(content, &f); err != nil {
		return SetFile{}, fmt.Errorf("json.Unmarshal() > %w", err)
	}
	if err := f.validate(); err != nil {
		return SetFile{}, err
	}
	return f, nil
}

// YAMLImporter reads a set from a YAML document with the same fields as JSON
type YAMLImporter struct{}

func (YAMLImporter) Read(filePath string) (SetFile, error) {
	content, err := os.ReadFile(filePath)
	if err != nil {
		return SetFile{}, fmt.Errorf("os.ReadFile(%s) > %w", filePath, err)
	}

	var f SetFile
	if err := yaml.Unmarshal(content, &f); err != nil {
		return SetFile{}, fmt.Errorf("yaml.Unmarshal() > %w", err)
	}
	if err := f.validate(); err != nil {
		return SetFile{}, err
	}
	return f, nil
}

// ZipImporter reads an archive with data.json at its root and media files under media/.
// Media files are copied into MediaDir and the questions are rewritten relative to it.
type ZipImporter struct {
	MediaDir string
	Logger   *slog.Logger
}

func (i ZipImporter) Read(filePath string) (SetFile, error) {
	archive, err := zip.OpenReader(filePath)
	if err != nil {
		return SetFile{}, fmt.Errorf("zip.OpenReader(%s) > %w", filePath, err)
	}
	defer func() {
		_ = archive.Close()
	}()

	files := make(map[string]*zip.File, len(archive.File))
	for _, file := range archive.File {
		files[file.Name] = file
	}

	data, ok := files[archiveDataFile]
	if !ok {
		return SetFile{}, fmt.Errorf("invalid archive: %s not found", archiveDataFile)
	}
	content, err := readZipFile(data)
	if err != nil {
		return SetFile{}, err
	}
	f, err := decodeJSON(content)
	if err != nil {
		return SetFile{}, err
	}

	for n, c := range f.Cards {
		mediaType, err := card.ParseMediaType(c.MediaType)
		if err != nil || mediaType == card.MediaText {
			continue
		}
		file, ok := files[path.Clean(c.Question)]
		if !ok {
			i.logger().Warn("media file missing in the archive",
				slog.String("archive", filePath),
				slog.String("question", c.Question),
			)
			continue
		}
		rel, err := i.extractMedia(file)
		if err != nil {
			return SetFile{}, err
		}
		f.Cards[n].Question = rel
	}
	return f, nil
}

func (i ZipImporter) extractMedia(file *zip.File) (string, error) {
	rel := strings.TrimPrefix(path.Clean(file.Name), archiveMediaDir+"/")
	if !filepath.IsLocal(rel) {
		return "", fmt.Errorf("invalid archive: unsafe media path %q", file.Name)
	}

	content, err := readZipFile(file)
	if err != nil {
		return "", err
	}
	dest := filepath.Join(i.MediaDir, filepath.FromSlash(rel))
	if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		return "", fmt.Errorf("os.MkdirAll(%s) > %w", filepath.Dir(dest), err)
	}
	if err := os.WriteFile(dest, content, 0o644); err != nil {
		return "", fmt.Errorf("os.WriteFile(%s) > %w", dest, err)
	}
	return rel, nil
}

func (i ZipImporter) logger() *slog.Logger {
	if i.Logger != nil {
		return i.Logger
	}
	return slog.Default()
}

func readZipFile(file *zip.File) ([]byte, error) {
	r, err := file.Open()
	if err != nil {
		return nil, fmt.Errorf("file.Open(%s) > %w", file.Name, err)
	}
	defer func() {
		_ = r.Close()
	}()

	var buf bytes.Buffer
	if _, err := io.Copy(&buf, r); err != nil {
		return nil, fmt.Errorf("io.Copy(%s) > %w", file.Name, err)
	}
	return buf.Bytes(), nil
}

// ImporterFor returns the importer for the extension of filePath
func ImporterFor(filePath, mediaDir string, logger *slog.Logger) (Importer, error) {
	format, err := FormatFromPath(filePath)
	if err != nil {
		return nil, err
	}
	switch format {
	case FormatJSON:
		return JSONImporter{}, nil
	case FormatYAML:
		return YAMLImporter{}, nil
	case FormatZip:
		return ZipImporter{MediaDir: mediaDir, Logger: logger}, nil
	}
	return nil, fmt.Errorf("%w: cannot import %s files", ErrUnsupportedFormat, format)
}
