// Package card provides the flashcard model, study sets and their repository.
package card

import (
	"fmt"
	"math/rand/v2"
	"slices"

	"golang.org/x/text/cases"
)

// MediaType tells how a question payload is presented
type MediaType int

const (
	MediaText MediaType = iota
	MediaImage
	MediaSound
)

func (m MediaType) String() string {
	switch m {
	case MediaText:
		return "text"
	case MediaImage:
		return "image"
	case MediaSound:
		return "sound"
	}
	return fmt.Sprintf("MediaType(%d)", int(m))
}

// ParseMediaType parses the names used in set files. An empty name is text.
func ParseMediaType(s string) (MediaType, error) {
	switch s {
	case "", "text":
		return MediaText, nil
	case "image":
		return MediaImage, nil
	case "sound":
		return MediaSound, nil
	}
	return MediaText, fmt.Errorf("unknown media type %q", s)
}

// QuestionPayload is the question side of a card.
// It is implemented only by TextQuestion, ImageQuestion and SoundQuestion.
type QuestionPayload interface {
	MediaType() MediaType
	// Value is the text of a text question or the media path otherwise
	Value() string
	isQuestionPayload()
}

type TextQuestion struct {
	Text string
}

type ImageQuestion struct {
	Path string
}

type SoundQuestion struct {
	Path string
}

func (TextQuestion) MediaType() MediaType  { return MediaText }
func (ImageQuestion) MediaType() MediaType { return MediaImage }
func (SoundQuestion) MediaType() MediaType { return MediaSound }

func (q TextQuestion) Value() string  { return q.Text }
func (q ImageQuestion) Value() string { return q.Path }
func (q SoundQuestion) Value() string { return q.Path }

func (TextQuestion) isQuestionPayload()  {}
func (ImageQuestion) isQuestionPayload() {}
func (SoundQuestion) isQuestionPayload() {}

// NewQuestion builds the payload variant for a media type
func NewQuestion(mediaType MediaType, value string) (QuestionPayload, error) {
	switch mediaType {
	case MediaText:
		return TextQuestion{Text: value}, nil
	case MediaImage:
		return ImageQuestion{Path: value}, nil
	case MediaSound:
		return SoundQuestion{Path: value}, nil
	}
	return nil, fmt.Errorf("unknown media type %d", int(mediaType))
}

// AnswerKind is the interaction offered for a card
type AnswerKind int

const (
	// Flashcard reveals the answer and lets the learner grade themselves
	Flashcard AnswerKind = iota
	TextChoice
	SoundChoice
	ImageChoice
	// Input asks for a typed answer
	Input
)

var answerKindNames = []string{"flashcard", "text_choice", "sound_choice", "image_choice", "input"}

func (k AnswerKind) String() string {
	if k.IsValid() {
		return answerKindNames[k]
	}
	return fmt.Sprintf("AnswerKind(%d)", int(k))
}

func (k AnswerKind) IsValid() bool {
	return k >= Flashcard && k <= Input
}

// ParseAnswerKind parses the names used in set files. An empty name is Flashcard.
func ParseAnswerKind(s string) (AnswerKind, error) {
	if s == "" {
		return Flashcard, nil
	}
	for i, name := range answerKindNames {
		if name == s {
			return AnswerKind(i), nil
		}
	}
	return Flashcard, fmt.Errorf("unknown answer kind %q", s)
}

// Card is a single learning item. Cards are passed by value and never modified after loading.
type Card struct {
	ID            int64
	SetID         int64
	Question      QuestionPayload
	CorrectAnswer string
	WrongAnswers  []string
	AnswerKind    AnswerKind
}

// CheckAnswer compares the input with the correct answer ignoring case only
func (c Card) CheckAnswer(input string) bool {
	return cases.Fold().String(input) == cases.Fold().String(c.CorrectAnswer)
}

// Choices returns the distractors and the correct answer in random order.
// A card without distractors yields only the correct answer.
// The order changes between calls, so callers keep the result for one presentation.
// A nil rng uses the global generator.
func (c Card) Choices(rng *rand.Rand) []string {
	if !c.IsChoiceCard() {
		return []string{c.CorrectAnswer}
	}

	choices := make([]string, 0, len(c.WrongAnswers)+1)
	choices = append(choices, c.WrongAnswers...)
	choices = append(choices, c.CorrectAnswer)

	swap := func(i, j int) { choices[i], choices[j] = choices[j], choices[i] }
	if rng == nil {
		rand.Shuffle(len(choices), swap)
	} else {
		rng.Shuffle(len(choices), swap)
	}
	return choices
}

// QuestionText returns the question text, or the media path for image and sound questions
func (c Card) QuestionText() string {
	if c.Question == nil {
		return ""
	}
	return c.Question.Value()
}

// MediaType returns the media type of the question
func (c Card) MediaType() MediaType {
	if c.Question == nil {
		return MediaText
	}
	return c.Question.MediaType()
}

// IsChoiceCard is decided by the presence of distractors, not by AnswerKind
func (c Card) IsChoiceCard() bool {
	return len(c.WrongAnswers) > 0
}

// Equal reports whether two cards hold the same data
func (c Card) Equal(other Card) bool {
	return c.ID == other.ID &&
		c.SetID == other.SetID &&
		c.Question == other.Question &&
		c.CorrectAnswer == other.CorrectAnswer &&
		slices.Equal(c.WrongAnswers, other.WrongAnswers) &&
		c.AnswerKind == other.AnswerKind
}
