package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"golang.org/x/term"
)

// errAborted is returned when the user cancels a multi-step prompt.
var errAborted = errors.New("aborted")

const cancelWord = "cancel"

// isTerminal is a test seam for term.IsTerminal.
var isTerminal = term.IsTerminal

// isInteractive reports whether r is a terminal. Prompts of the shell are
// only decorated when it is.
func isInteractive(r io.Reader) bool {
	f, ok := r.(*os.File)
	if !ok {
		return false
	}
	return isTerminal(int(f.Fd()))
}

// GetSimpleText prints a prompt to w and reads a single line of input from reader.
// The trailing newline is trimmed. If EOF occurs after some input was read,
// the partial line is returned.
//
// Example prompt format:
//
//	Prompt text
//	> _
func GetSimpleText(reader *bufio.Reader, prompt string, w io.Writer) (string, error) {
	if _, err := fmt.Fprint(w, prompt+"\n> "); err != nil {
		return "", err
	}
	line, err := reader.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && len(line) > 0 {
			return strings.TrimSpace(line), nil
		}
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// GetWithDefault is GetSimpleText that returns def for an empty answer.
// The default is shown in brackets after the prompt.
func GetWithDefault(reader *bufio.Reader, prompt, def string, w io.Writer) (string, error) {
	if def != "" {
		prompt = fmt.Sprintf("%s [%s]", prompt, def)
	}
	s, err := GetSimpleText(reader, prompt, w)
	if err != nil {
		return "", err
	}
	if s == "" {
		return def, nil
	}
	return s, nil
}

// Option is one entry of a Choose list.
type Option struct {
	Value string
	Label string
}

// Choose lists options numbered from 1 and reads the answer, which may be
// the number or the value itself (case-insensitive). An empty answer
// yields def. An answer matching nothing is returned unchanged so that the
// caller's validation reports it.
func Choose(reader *bufio.Reader, prompt string, options []Option, def string, w io.Writer) (string, error) {
	for i, o := range options {
		label := o.Value
		if o.Label != "" && o.Label != o.Value {
			label = fmt.Sprintf("%s (%s)", o.Label, o.Value)
		}
		fmt.Fprintf(w, "  %d) %s\n", i+1, label)
	}
	s, err := GetWithDefault(reader, prompt, def, w)
	if err != nil {
		return "", err
	}
	if n, err := strconv.Atoi(s); err == nil && n >= 1 && n <= len(options) {
		return options[n-1].Value, nil
	}
	for _, o := range options {
		if strings.EqualFold(o.Value, s) {
			return o.Value, nil
		}
	}
	return s, nil
}

// Confirm asks a yes/no question. Only y and yes count as yes.
func Confirm(reader *bufio.Reader, prompt string, w io.Writer) (bool, error) {
	s, err := GetSimpleText(reader, prompt+" (y/N)", w)
	if err != nil {
		return false, err
	}
	switch strings.ToLower(s) {
	case "y", "yes":
		return true, nil
	}
	return false, nil
}

func isCancel(s string) bool {
	return strings.EqualFold(strings.TrimSpace(s), cancelWord)
}
