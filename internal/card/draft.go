package card

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	enTranslations "github.com/go-playground/validator/v10/translations/en"
)

const MaxWrongAnswers = 3

var (
	ErrEmptySetName = errors.New("set name must not be empty")
	ErrNotFound     = errors.New("not found")
)

// Set is a named collection of cards
type Set struct {
	ID        int64  `db:"id"`
	Name      string `db:"name"`
	CardCount int    `db:"card_count"`
}

// Draft is a card that has not been stored yet
type Draft struct {
	Question      string     `json:"question" validate:"required"`
	MediaType     MediaType  `json:"media_type"`
	CorrectAnswer string     `json:"correct_answer" validate:"required"`
	WrongAnswers  []string   `json:"wrong_answers" validate:"max=3,dive,required"`
	AnswerKind    AnswerKind `json:"answer_kind"`
}

// Normalize applies the storage rule that a flashcard with distractors is a text choice card
func (d Draft) Normalize() Draft {
	if len(d.WrongAnswers) > 0 && d.AnswerKind == Flashcard {
		d.AnswerKind = TextChoice
	}
	return d
}

// Validate checks the required fields and the number of distractors
func (d Draft) Validate() error {
	v, trans, err := draftValidator()
	if err != nil {
		return err
	}
	if !d.AnswerKind.IsValid() {
		return fmt.Errorf("invalid card: answer_kind %d is unknown", int(d.AnswerKind))
	}
	if _, err := NewQuestion(d.MediaType, d.Question); err != nil {
		return fmt.Errorf("invalid card: %w", err)
	}
	if err := v.Struct(d); err != nil {
		var validationErrors validator.ValidationErrors
		if !errors.As(err, &validationErrors) {
			return fmt.Errorf("validate.Struct() > %w", err)
		}
		var msgs []string
		for _, e := range validationErrors {
			msgs = append(msgs, e.Translate(trans))
		}
		return fmt.Errorf("invalid card: %s", strings.Join(msgs, ", "))
	}
	return nil
}

var (
	draftValidatorOnce  sync.Once
	draftValidate       *validator.Validate
	draftTranslator     ut.Translator
	draftValidatorError error
)

func draftValidator() (*validator.Validate, ut.Translator, error) {
	draftValidatorOnce.Do(func() {
		validate := validator.New()

		enLocale := en.New()
		uni := ut.New(enLocale, enLocale)
		trans, _ := uni.GetTranslator("en")
		if err := enTranslations.RegisterDefaultTranslations(validate, trans); err != nil {
			draftValidatorError = fmt.Errorf("failed to register default translations: %w", err)
			return
		}
		validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})
		draftValidate = validate
		draftTranslator = trans
	})
	return draftValidate, draftTranslator, draftValidatorError
}
