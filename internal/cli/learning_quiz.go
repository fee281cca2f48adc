package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math/rand/v2"
	"os"
	"strconv"
	"strings"

	"github.com/flashlearn/flashlearn/internal/card"
	"github.com/flashlearn/flashlearn/internal/learning"
	"github.com/flashlearn/flashlearn/internal/sm2"
)

const (
	correctGrade = sm2.MaxGrade
	wrongGrade   = 1
)

// LearningQuizCLI presents the cards of a learning session one by one
type LearningQuizCLI struct {
	*InteractiveQuizCLI
	session *learning.Session
	rng     *rand.Rand
}

type Option func(*LearningQuizCLI)

// WithIO replaces stdin and stdout
func WithIO(stdin io.Reader, stdout io.Writer) Option {
	return func(r *LearningQuizCLI) {
		r.InteractiveQuizCLI = newInteractiveQuizCLI(stdin, stdout)
	}
}

// WithRand sets the random source used to order the choices
func WithRand(rng *rand.Rand) Option {
	return func(r *LearningQuizCLI) {
		r.rng = rng
	}
}

// NewLearningQuizCLI creates a quiz for a started session
func NewLearningQuizCLI(session *learning.Session, opts ...Option) *LearningQuizCLI {
	r := &LearningQuizCLI{
		InteractiveQuizCLI: newInteractiveQuizCLI(os.Stdin, os.Stdout),
		session:            session,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run asks every card of the session and prints a summary at the end
func (r *LearningQuizCLI) Run(ctx context.Context) error {
	err := r.InteractiveQuizCLI.Run(ctx, r)
	r.printSummary()
	return err
}

// Session presents the current card, grades it and moves to the next one
func (r *LearningQuizCLI) Session(ctx context.Context) error {
	currentCard, err := r.session.Current()
	if errors.Is(err, learning.ErrNoActiveCard) {
		return errEnd
	}
	if err != nil {
		return err
	}

	r.printQuestion(currentCard)

	var grade int
	switch {
	case currentCard.IsChoiceCard():
		grade, err = r.askChoice(currentCard)
	case currentCard.AnswerKind == card.Input:
		grade, err = r.askInput(currentCard)
	default:
		grade, err = r.askSelfGrade(currentCard)
	}
	if err != nil {
		return err
	}

	if err := r.session.SubmitGrade(ctx, grade); err != nil {
		return fmt.Errorf("session.SubmitGrade() > %w", err)
	}
	_, _ = fmt.Fprintln(r.stdoutWriter)
	r.session.Next()
	return nil
}

func (r *LearningQuizCLI) printQuestion(c card.Card) {
	_, _ = fmt.Fprintf(r.stdoutWriter, "[%d%%] ", int(r.session.Progress()*100))
	switch c.Question.(type) {
	case card.ImageQuestion:
		_, _ = r.italic.Fprintf(r.stdoutWriter, "(image) ")
	case card.SoundQuestion:
		_, _ = r.italic.Fprintf(r.stdoutWriter, "(sound) ")
	}
	_, _ = r.bold.Fprintln(r.stdoutWriter, c.QuestionText())
}

func (r *LearningQuizCLI) askChoice(c card.Card) (int, error) {
	choices := c.Choices(r.rng)
	for n, choice := range choices {
		_, _ = fmt.Fprintf(r.stdoutWriter, "  %d) %s\n", n+1, choice)
	}

	for {
		_, _ = fmt.Fprintf(r.stdoutWriter, "Choose 1-%d: ", len(choices))
		line, err := r.readLine()
		if err != nil {
			return 0, err
		}
		n, err := strconv.Atoi(strings.TrimSpace(line))
		if err != nil || n < 1 || n > len(choices) {
			continue
		}
		return r.judge(c, c.CheckAnswer(choices[n-1])), nil
	}
}

func (r *LearningQuizCLI) askInput(c card.Card) (int, error) {
	_, _ = fmt.Fprint(r.stdoutWriter, "Your answer: ")
	line, err := r.readLine()
	if err != nil {
		return 0, err
	}
	return r.judge(c, c.CheckAnswer(line)), nil
}

func (r *LearningQuizCLI) askSelfGrade(c card.Card) (int, error) {
	_, _ = fmt.Fprint(r.stdoutWriter, "Press Enter to show the answer")
	if _, err := r.readLine(); err != nil {
		return 0, err
	}
	_, _ = fmt.Fprintf(r.stdoutWriter, "Answer: %s\n", r.italic.Sprint(c.CorrectAnswer))

	for {
		_, _ = fmt.Fprintf(r.stdoutWriter, "How well did you remember it? (%d-%d): ", sm2.MinGrade, sm2.MaxGrade)
		line, err := r.readLine()
		if err != nil {
			return 0, err
		}
		grade, err := strconv.Atoi(strings.TrimSpace(line))
		if err != nil || !sm2.IsValidGrade(grade) {
			continue
		}
		return grade, nil
	}
}

func (r *LearningQuizCLI) judge(c card.Card, correct bool) int {
	if correct {
		_, _ = fmt.Fprint(r.stdoutWriter, "✅ ")
		_, _ = r.green.Fprintln(r.stdoutWriter, "It's correct.")
		return correctGrade
	}
	_, _ = fmt.Fprint(r.stdoutWriter, "❌ ")
	_, _ = r.red.Fprintf(r.stdoutWriter, "It's wrong. The answer is %q\n", c.CorrectAnswer)
	return wrongGrade
}

func (r *LearningQuizCLI) printSummary() {
	summary := r.session.Summary()
	_, _ = fmt.Fprintf(r.stdoutWriter, "Reviewed %d cards: %d passed, %d failed\n",
		summary.Reviewed, summary.Passed, summary.Failed)
}
