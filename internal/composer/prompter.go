package composer

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/viper"
)

// Choice is one option of a numbered menu. Choices sharing a Group are listed under a common
// heading.
type Choice struct {
	Value string
	Label string
	Group string
}

// Prompter asks the questions the composer needs answered. Every question carries a stable key
// so the same session can be driven from an answers file.
type Prompter interface {
	Ask(key, question, defaultValue string) (string, error)
	Confirm(key, question string, defaultValue bool) (bool, error)
	// Choose returns the zero based index of the selected choice. A negative defaultIndex means
	// the question has no default.
	Choose(key, question string, choices []Choice, defaultIndex int) (int, error)
}

var ErrNoInput = errors.New("input closed before an answer was given")

// LinePrompter reads answers line by line, re-asking until it gets a usable one.
type LinePrompter struct {
	in  *bufio.Reader
	out io.Writer
}

func NewLinePrompter(in io.Reader, out io.Writer) *LinePrompter {
	return &LinePrompter{in: bufio.NewReader(in), out: out}
}

func (p *LinePrompter) readLine() (string, error) {
	line, err := p.in.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && strings.TrimSpace(line) != "" {
			return strings.TrimSpace(line), nil
		}
		if errors.Is(err, io.EOF) {
			return "", ErrNoInput
		}
		return "", fmt.Errorf("failed to read answer: %w", err)
	}
	return strings.TrimSpace(line), nil
}

func (p *LinePrompter) Ask(_ string, question, defaultValue string) (string, error) {
	if defaultValue != "" {
		fmt.Fprintf(p.out, "%s [%s]: ", question, color.CyanString(defaultValue))
	} else {
		fmt.Fprintf(p.out, "%s: ", question)
	}

	answer, err := p.readLine()
	if err != nil {
		return "", err
	}
	if answer == "" {
		return defaultValue, nil
	}
	return answer, nil
}

func (p *LinePrompter) Confirm(_ string, question string, defaultValue bool) (bool, error) {
	hint := "y/N"
	if defaultValue {
		hint = "Y/n"
	}

	for {
		fmt.Fprintf(p.out, "%s [%s]: ", question, hint)
		answer, err := p.readLine()
		if err != nil {
			return false, err
		}
		if answer == "" {
			return defaultValue, nil
		}
		if v, ok := parseYesNo(answer); ok {
			return v, nil
		}
		fmt.Fprintln(p.out, color.YellowString("Please answer y or n."))
	}
}

func (p *LinePrompter) Choose(_ string, question string, choices []Choice, defaultIndex int) (int, error) {
	if len(choices) == 0 {
		return 0, fmt.Errorf("no choices available for %q", question)
	}

	fmt.Fprintln(p.out, color.New(color.Bold).Sprint(question))
	group := ""
	for i, c := range choices {
		if c.Group != "" && c.Group != group {
			group = c.Group
			fmt.Fprintf(p.out, "\n  %s\n", color.New(color.Underline).Sprint(group))
		}
		fmt.Fprintf(p.out, "  %2d) %s\n", i+1, c.Label)
	}

	for {
		if defaultIndex >= 0 && defaultIndex < len(choices) {
			fmt.Fprintf(p.out, "Select 1-%d [%d]: ", len(choices), defaultIndex+1)
		} else {
			fmt.Fprintf(p.out, "Select 1-%d: ", len(choices))
		}

		answer, err := p.readLine()
		if err != nil {
			return 0, err
		}
		if answer == "" && defaultIndex >= 0 && defaultIndex < len(choices) {
			return defaultIndex, nil
		}
		if idx, ok := matchChoice(answer, choices); ok {
			return idx, nil
		}
		fmt.Fprintln(p.out, color.YellowString("Invalid selection %q, enter a number between 1 and %d.", answer, len(choices)))
	}
}

// AnswerPrompter answers from a viper-loaded answers file. Keys are the prompt keys; dotted keys
// address nested sections, e.g. variables.region or billing.model. Missing keys fall back to the
// prompt default.
type AnswerPrompter struct {
	v *viper.Viper
}

func NewAnswerPrompter(v *viper.Viper) *AnswerPrompter {
	return &AnswerPrompter{v: v}
}

// LoadAnswerPrompter reads a YAML, JSON or TOML answers file.
func LoadAnswerPrompter(path string) (*AnswerPrompter, error) {
	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read answers file %s: %w", path, err)
	}
	return NewAnswerPrompter(v), nil
}

func (p *AnswerPrompter) Ask(key, _ string, defaultValue string) (string, error) {
	if !p.v.IsSet(key) {
		return defaultValue, nil
	}
	return strings.TrimSpace(p.v.GetString(key)), nil
}

func (p *AnswerPrompter) Confirm(key, _ string, defaultValue bool) (bool, error) {
	if !p.v.IsSet(key) {
		return defaultValue, nil
	}
	if v, ok := parseYesNo(p.v.GetString(key)); ok {
		return v, nil
	}
	return false, fmt.Errorf("answer for %s must be a boolean, got %q", key, p.v.GetString(key))
}

func (p *AnswerPrompter) Choose(key, _ string, choices []Choice, defaultIndex int) (int, error) {
	if !p.v.IsSet(key) {
		if defaultIndex >= 0 && defaultIndex < len(choices) {
			return defaultIndex, nil
		}
		return 0, fmt.Errorf("answers file has no value for %s", key)
	}

	answer := strings.TrimSpace(p.v.GetString(key))
	if idx, ok := matchChoice(answer, choices); ok {
		return idx, nil
	}
	return 0, fmt.Errorf("answer %q for %s is not one of the available choices", answer, key)
}

// matchChoice accepts a 1-based index or a choice value.
func matchChoice(answer string, choices []Choice) (int, bool) {
	if n, err := strconv.Atoi(answer); err == nil {
		if n >= 1 && n <= len(choices) {
			return n - 1, true
		}
		return 0, false
	}
	for i, c := range choices {
		if strings.EqualFold(c.Value, answer) {
			return i, true
		}
	}
	return 0, false
}

func parseYesNo(s string) (bool, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "y", "yes", "true":
		return true, true
	case "n", "no", "false":
		return false, true
	}
	return false, false
}
