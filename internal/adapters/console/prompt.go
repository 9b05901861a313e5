package console

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/okian/bikeshare/pkg/logger"
	"github.com/okian/bikeshare/pkg/metrics"
)

// prompter asks questions on out and reads answers line by line from in.
type prompter struct {
	in     *bufio.Reader
	out    io.Writer
	logger logger.Logger
}

func newPrompter(in io.Reader, out io.Writer, log logger.Logger) *prompter {
	return &prompter{in: bufio.NewReader(in), out: out, logger: log}
}

// readLine returns the next answer without its line ending. io.EOF is
// returned once input is exhausted.
func (p *prompter) readLine() (string, error) {
	line, err := p.in.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("read answer: %w", err)
	}
	if errors.Is(err, io.EOF) && line == "" {
		return "", io.EOF
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// choose asks question until parse accepts the answer. name labels the
// prompt in logs and metrics; hint is printed after each rejected answer.
func (p *prompter) choose(ctx context.Context, name, question, hint string, parse func(string) error) (string, error) {
	for {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		fmt.Fprint(p.out, question)
		answer, err := p.readLine()
		if err != nil {
			return "", err
		}
		err = parse(answer)
		if err == nil {
			return answer, nil
		}
		if !errors.Is(err, ErrInvalidInput) {
			return "", err
		}
		metrics.RecordInvalidInput(name)
		p.logger.Debug(ctx, "answer rejected", logger.String("prompt", name), logger.String("answer", answer))
		fmt.Fprintf(p.out, "\n%s\n\n", hint)
	}
}

// confirm asks a yes/no question. Only "yes", in any case, counts as yes.
func (p *prompter) confirm(question string) (bool, error) {
	fmt.Fprint(p.out, question)
	answer, err := p.readLine()
	if err != nil {
		return false, err
	}
	return isYes(answer), nil
}

func isYes(answer string) bool {
	return strings.EqualFold(strings.TrimSpace(answer), "yes")
}
