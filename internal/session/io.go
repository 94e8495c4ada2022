package session

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
)

// ErrInputClosed is returned when the answer source has no more input.
var ErrInputClosed = errors.New("answer input closed")

// AnswerSource supplies the candidate's answers, one per call.
type AnswerSource interface {
	NextAnswer(ctx context.Context) (string, error)
}

// Presenter shows a question to the candidate.
type Presenter interface {
	Present(turn int, question string) error
}

// ConsoleAnswers reads one answer per line.
type ConsoleAnswers struct {
	scanner *bufio.Scanner
	prompt  io.Writer
}

// NewConsoleAnswers reads from in, writing a "> " prompt to prompt when it is non-nil.
func NewConsoleAnswers(in io.Reader, prompt io.Writer) *ConsoleAnswers {
	scanner := bufio.NewScanner(in)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	return &ConsoleAnswers{scanner: scanner, prompt: prompt}
}

// NextAnswer implements AnswerSource.
func (c *ConsoleAnswers) NextAnswer(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if c.prompt != nil {
		_, _ = fmt.Fprint(c.prompt, "> ")
	}
	if !c.scanner.Scan() {
		if err := c.scanner.Err(); err != nil {
			return "", fmt.Errorf("failed to read answer: %w", err)
		}
		return "", ErrInputClosed
	}
	return strings.TrimSpace(c.scanner.Text()), nil
}

// QueueAnswers replays a fixed list of answers, then reports ErrInputClosed.
type QueueAnswers struct {
	answers []string
}

// NewQueueAnswers creates a source that yields answers in order.
func NewQueueAnswers(answers ...string) *QueueAnswers {
	return &QueueAnswers{answers: answers}
}

// NextAnswer implements AnswerSource.
func (q *QueueAnswers) NextAnswer(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if len(q.answers) == 0 {
		return "", ErrInputClosed
	}
	next := q.answers[0]
	q.answers = q.answers[1:]
	return next, nil
}

// WriterPresenter prints each question to a writer, formatted by Format when set.
type WriterPresenter struct {
	Out    io.Writer
	Format func(turn int, question string) string
}

// Present implements Presenter.
func (p *WriterPresenter) Present(turn int, question string) error {
	line := fmt.Sprintf("Q%d: %s", turn, question)
	if p.Format != nil {
		line = p.Format(turn, question)
	}
	_, err := fmt.Fprintln(p.Out, line)
	return err
}
