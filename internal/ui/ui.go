package ui

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/briandowns/spinner"
	"github.com/fatih/color"
	domainErrors "github.com/thomas-vilte/commitsage/internal/errors"
	"github.com/thomas-vilte/commitsage/internal/i18n"
)

var (
	Heading = color.New(color.FgCyan, color.Bold)
	Error   = color.New(color.FgRed, color.Bold)
	Hint    = color.New(color.FgYellow)
	Dim     = color.New(color.FgHiBlack)
)

// Spinner shows progress on stderr while a model call is running. It stays
// silent when stderr is not a terminal.
type Spinner struct {
	spinner *spinner.Spinner
}

func NewSpinner(message string) *Spinner {
	s := spinner.New(
		spinner.CharSets[14],
		100*time.Millisecond,
		spinner.WithColor("cyan"),
		spinner.WithSuffix(" "+message),
		spinner.WithWriterFile(os.Stderr),
	)
	return &Spinner{spinner: s}
}

func (s *Spinner) Start() {
	s.spinner.Start()
}

func (s *Spinner) Stop() {
	s.spinner.Stop()
}

// WithSpinner runs fn while a spinner is showing message.
func WithSpinner(message string, fn func() error) error {
	s := NewSpinner(message)
	s.Start()
	defer s.Stop()

	return fn()
}

func PrintHeading(w io.Writer, title string) {
	_, _ = Heading.Fprintf(w, "\n%s\n", title)
}

func PrintBody(w io.Writer, text string) {
	_, _ = fmt.Fprintln(w, strings.TrimSpace(text))
}

func PrintBullet(w io.Writer, text string) {
	_, _ = fmt.Fprintf(w, "- %s\n", text)
}

// HandleAppError prints err and, for application errors, the suggestion that
// comes with it.
func HandleAppError(w io.Writer, err error, t *i18n.Translations) {
	if err == nil {
		return
	}

	_, _ = Error.Fprintf(w, "%s: ", t.GetMessage("error_prefix", 0, nil))
	_, _ = fmt.Fprintln(w, err)

	var appErr *domainErrors.AppError
	if errors.As(err, &appErr) && appErr.Suggestion != "" {
		_, _ = Hint.Fprintf(w, "%s: ", t.GetMessage("suggestion_prefix", 0, nil))
		_, _ = fmt.Fprintln(w, appErr.Suggestion)
	}
}
