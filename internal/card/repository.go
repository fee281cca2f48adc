package card

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
)

// Columns selects a card row from the cards table aliased as c
const Columns = "c.id, c.set_id, c.question, c.correct_answer, c.wrong_answers, c.media_type, c.answer_type"

// Row is the stored form of a card
type Row struct {
	ID            int64          `db:"id"`
	SetID         int64          `db:"set_id"`
	Question      string         `db:"question"`
	CorrectAnswer string         `db:"correct_answer"`
	WrongAnswers  sql.NullString `db:"wrong_answers"`
	MediaType     int            `db:"media_type"`
	AnswerType    int            `db:"answer_type"`
}

// Card converts the row into a Card
func (r Row) Card() (Card, error) {
	question, err := NewQuestion(MediaType(r.MediaType), r.Question)
	if err != nil {
		return Card{}, fmt.Errorf("card %d: %w", r.ID, err)
	}
	kind := AnswerKind(r.AnswerType)
	if !kind.IsValid() {
		return Card{}, fmt.Errorf("card %d: unknown answer type %d", r.ID, r.AnswerType)
	}

	var wrongAnswers []string
	if r.WrongAnswers.Valid && r.WrongAnswers.String != "" {
		if err := json.Unmarshal([]byte(r.WrongAnswers.String), &wrongAnswers); err != nil {
			return Card{}, fmt.Errorf("json.Unmarshal(wrong_answers of card %d) > %w", r.ID, err)
		}
	}

	return Card{
		ID:            r.ID,
		SetID:         r.SetID,
		Question:      question,
		CorrectAnswer: r.CorrectAnswer,
		WrongAnswers:  wrongAnswers,
		AnswerKind:    kind,
	}, nil
}

// FromRows converts rows in order
func FromRows(rows []Row) ([]Card, error) {
	cards := make([]Card, 0, len(rows))
	for _, row := range rows {
		c, err := row.Card()
		if err != nil {
			return nil, err
		}
		cards = append(cards, c)
	}
	return cards, nil
}

func encodeWrongAnswers(wrongAnswers []string) (sql.NullString, error) {
	if len(wrongAnswers) == 0 {
		return sql.NullString{}, nil
	}
	b, err := json.Marshal(wrongAnswers)
	if err != nil {
		return sql.NullString{}, fmt.Errorf("json.Marshal(wrong_answers) > %w", err)
	}
	return sql.NullString{String: string(b), Valid: true}, nil
}

// Repository defines operations for managing study sets and their cards.
type Repository interface {
	CreateSet(ctx context.Context, name string, drafts []Draft) (int64, error)
	ListSets(ctx context.Context) ([]Set, error)
	GetSet(ctx context.Context, setID int64) (*Set, error)
	RenameSet(ctx context.Context, setID int64, name string) error
	DeleteSet(ctx context.Context, setID int64) error
	AddCard(ctx context.Context, setID int64, draft Draft) (int64, error)
	GetCard(ctx context.Context, cardID int64) (*Card, error)
	ListCards(ctx context.Context, setID int64) ([]Card, error)
	DeleteCard(ctx context.Context, cardID int64) error
}

// DBRepository implements Repository using sqlx.
type DBRepository struct {
	db *sqlx.DB
}

// NewDBRepository creates a new DBRepository.
func NewDBRepository(db *sqlx.DB) *DBRepository {
	return &DBRepository{db: db}
}

// CreateSet inserts a set with its cards in one transaction and returns the set id.
func (r *DBRepository) CreateSet(ctx context.Context, name string, drafts []Draft) (int64, error) {
	if name == "" {
		return 0, ErrEmptySetName
	}
	for i, draft := range drafts {
		if err := draft.Validate(); err != nil {
			return 0, fmt.Errorf("card #%d: %w", i+1, err)
		}
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("db.BeginTxx() > %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	result, err := tx.ExecContext(ctx, "INSERT INTO sets (name) VALUES (?)", name)
	if err != nil {
		return 0, fmt.Errorf("tx.ExecContext(insert set) > %w", err)
	}
	setID, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("result.LastInsertId() > %w", err)
	}

	for _, draft := range drafts {
		if _, err := insertCard(ctx, tx, setID, draft); err != nil {
			return 0, err
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("tx.Commit() > %w", err)
	}
	return setID, nil
}

// ListSets returns all sets, newest first, with their card counts.
func (r *DBRepository) ListSets(ctx context.Context) ([]Set, error) {
	var sets []Set
	if err := r.db.SelectContext(ctx, &sets,
		`SELECT s.id, s.name, COUNT(c.id) AS card_count
		FROM sets s LEFT JOIN cards c ON c.set_id = s.id
		GROUP BY s.id, s.name
		ORDER BY s.id DESC`); err != nil {
		return nil, fmt.Errorf("db.SelectContext(sets) > %w", err)
	}
	return sets, nil
}

// GetSet returns a set by id, or ErrNotFound.
func (r *DBRepository) GetSet(ctx context.Context, setID int64) (*Set, error) {
	var set Set
	err := r.db.GetContext(ctx, &set,
		`SELECT s.id, s.name, COUNT(c.id) AS card_count
		FROM sets s LEFT JOIN cards c ON c.set_id = s.id
		WHERE s.id = ?
		GROUP BY s.id, s.name`, setID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("set %d: %w", setID, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("db.GetContext(set) > %w", err)
	}
	return &set, nil
}

// RenameSet changes the name of a set.
func (r *DBRepository) RenameSet(ctx context.Context, setID int64, name string) error {
	if name == "" {
		return ErrEmptySetName
	}
	result, err := r.db.ExecContext(ctx, "UPDATE sets SET name = ? WHERE id = ?", name, setID)
	if err != nil {
		return fmt.Errorf("db.ExecContext(rename set) > %w", err)
	}
	return requireAffected(result, fmt.Sprintf("set %d", setID))
}

// DeleteSet removes a set together with its cards and their progress.
func (r *DBRepository) DeleteSet(ctx context.Context, setID int64) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("db.BeginTxx() > %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if _, err := tx.ExecContext(ctx,
		"DELETE FROM learning_progress WHERE card_id IN (SELECT id FROM cards WHERE set_id = ?)", setID); err != nil {
		return fmt.Errorf("tx.ExecContext(delete progress) > %w", err)
	}
	if _, err := tx.ExecContext(ctx, "DELETE FROM cards WHERE set_id = ?", setID); err != nil {
		return fmt.Errorf("tx.ExecContext(delete cards) > %w", err)
	}
	result, err := tx.ExecContext(ctx, "DELETE FROM sets WHERE id = ?", setID)
	if err != nil {
		return fmt.Errorf("tx.ExecContext(delete set) > %w", err)
	}
	if err := requireAffected(result, fmt.Sprintf("set %d", setID)); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("tx.Commit() > %w", err)
	}
	return nil
}

// AddCard inserts a card into an existing set and returns its id.
func (r *DBRepository) AddCard(ctx context.Context, setID int64, draft Draft) (int64, error) {
	if err := draft.Validate(); err != nil {
		return 0, err
	}
	if _, err := r.GetSet(ctx, setID); err != nil {
		return 0, err
	}
	return insertCard(ctx, r.db, setID, draft)
}

// GetCard returns a card by id, or ErrNotFound.
func (r *DBRepository) GetCard(ctx context.Context, cardID int64) (*Card, error) {
	var row Row
	err := r.db.GetContext(ctx, &row, "SELECT "+Columns+" FROM cards c WHERE c.id = ?", cardID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("card %d: %w", cardID, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("db.GetContext(card) > %w", err)
	}
	c, err := row.Card()
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// ListCards returns all cards of a set in insertion order.
func (r *DBRepository) ListCards(ctx context.Context, setID int64) ([]Card, error) {
	var rows []Row
	if err := r.db.SelectContext(ctx, &rows,
		"SELECT "+Columns+" FROM cards c WHERE c.set_id = ? ORDER BY c.id", setID); err != nil {
		return nil, fmt.Errorf("db.SelectContext(cards) > %w", err)
	}
	return FromRows(rows)
}

// DeleteCard removes a card and its progress.
func (r *DBRepository) DeleteCard(ctx context.Context, cardID int64) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("db.BeginTxx() > %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if _, err := tx.ExecContext(ctx, "DELETE FROM learning_progress WHERE card_id = ?", cardID); err != nil {
		return fmt.Errorf("tx.ExecContext(delete progress) > %w", err)
	}
	result, err := tx.ExecContext(ctx, "DELETE FROM cards WHERE id = ?", cardID)
	if err != nil {
		return fmt.Errorf("tx.ExecContext(delete card) > %w", err)
	}
	if err := requireAffected(result, fmt.Sprintf("card %d", cardID)); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("tx.Commit() > %w", err)
	}
	return nil
}

func insertCard(ctx context.Context, execer sqlx.ExecerContext, setID int64, draft Draft) (int64, error) {
	draft = draft.Normalize()
	wrongAnswers, err := encodeWrongAnswers(draft.WrongAnswers)
	if err != nil {
		return 0, err
	}
	result, err := execer.ExecContext(ctx,
		`INSERT INTO cards (set_id, question, correct_answer, wrong_answers, media_type, answer_type)
		VALUES (?, ?, ?, ?, ?, ?)`,
		setID, draft.Question, draft.CorrectAnswer, wrongAnswers, int(draft.MediaType), int(draft.AnswerKind))
	if err != nil {
		return 0, fmt.Errorf("ExecContext(insert card) > %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("result.LastInsertId() > %w", err)
	}
	return id, nil
}

func requireAffected(result sql.Result, what string) error {
	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("result.RowsAffected() > %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%s: %w", what, ErrNotFound)
	}
	return nil
}
