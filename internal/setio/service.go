package setio

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/flashlearn/flashlearn/internal/card"
)

// ImportResult describes a stored set
type ImportResult struct {
	SetID    int64
	Name     string
	Imported int
	Skipped  int
}

// Service moves sets between files and the card repository
type Service struct {
	repo         card.Repository
	mediaDir     string
	templatePath string
	logger       *slog.Logger
}

type Option func(*Service)

func WithTemplatePath(templatePath string) Option {
	return func(s *Service) {
		s.templatePath = templatePath
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

// NewService creates a Service storing media files under mediaDir
func NewService(repo card.Repository, mediaDir string, opts ...Option) *Service {
	s := &Service{
		repo:     repo,
		mediaDir: mediaDir,
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Import reads a set file chosen by its extension and stores it as a new set.
// Cards without a question or a correct answer are skipped.
func (s *Service) Import(ctx context.Context, filePath string) (ImportResult, error) {
	importer, err := ImporterFor(filePath, s.mediaDir, s.logger)
	if err != nil {
		return ImportResult{}, err
	}
	f, err := importer.Read(filePath)
	if err != nil {
		return ImportResult{}, fmt.Errorf("importer.Read(%s) > %w", filePath, err)
	}

	drafts := make([]card.Draft, 0, len(f.Cards))
	for n, c := range f.Cards {
		draft, err := c.Draft()
		if err != nil {
			s.logger.Warn("skip an invalid card",
				slog.String("file", filePath),
				slog.Int("index", n),
				slog.Any("error", err),
			)
			continue
		}
		drafts = append(drafts, draft)
	}
	if len(drafts) == 0 {
		return ImportResult{}, fmt.Errorf("%s: %w", filePath, ErrNoValidCards)
	}

	setID, err := s.repo.CreateSet(ctx, f.Name, drafts)
	if err != nil {
		return ImportResult{}, fmt.Errorf("repo.CreateSet() > %w", err)
	}
	return ImportResult{
		SetID:    setID,
		Name:     f.Name,
		Imported: len(drafts),
		Skipped:  len(f.Cards) - len(drafts),
	}, nil
}

// Export writes a stored set to dest in format
func (s *Service) Export(ctx context.Context, setID int64, dest string, format Format) error {
	exporter, err := ExporterFor(format, s.mediaDir, s.templatePath, s.logger)
	if err != nil {
		return err
	}

	set, err := s.repo.GetSet(ctx, setID)
	if err != nil {
		return fmt.Errorf("repo.GetSet() > %w", err)
	}
	cards, err := s.repo.ListCards(ctx, setID)
	if err != nil {
		return fmt.Errorf("repo.ListCards() > %w", err)
	}

	if err := exporter.Export(*set, cards, dest); err != nil {
		return fmt.Errorf("exporter.Export(%s) > %w", dest, err)
	}
	s.logger.Debug("exported a set",
		slog.Int64("set_id", setID),
		slog.String("format", string(format)),
		slog.String("dest", dest),
	)
	return nil
}
