package markdown

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/glamour"
)

const wordWrap = 120

// Markdown represents a markdown document that can be built incrementally
type Markdown struct {
	content strings.Builder
}

func New() *Markdown {
	return &Markdown{}
}

// AddHeading adds a heading with the specified level (1-6)
func (m *Markdown) AddHeading(text string, level int) *Markdown {
	if level < 1 || level > 6 {
		level = 1
	}
	fmt.Fprintf(&m.content, "%s %s\n\n", strings.Repeat("#", level), text)
	return m
}

func (m *Markdown) AddParagraph(text string) *Markdown {
	fmt.Fprintf(&m.content, "%s\n\n", text)
	return m
}

// AddTable adds a table with the given headers and rows. Short rows are padded and pipes inside
// cells are escaped.
func (m *Markdown) AddTable(headers []string, rows [][]string) *Markdown {
	if len(headers) == 0 {
		return m
	}

	m.content.WriteString("| " + strings.Join(headers, " | ") + " |\n")

	separators := make([]string, len(headers))
	for i := range headers {
		separators[i] = "---"
	}
	m.content.WriteString("| " + strings.Join(separators, " | ") + " |\n")

	for _, row := range rows {
		cells := make([]string, len(headers))
		for i := range cells {
			if i < len(row) {
				cells[i] = strings.ReplaceAll(row[i], "|", `\|`)
			}
		}
		m.content.WriteString("| " + strings.Join(cells, " | ") + " |\n")
	}

	m.content.WriteString("\n")
	return m
}

// AddKeyValueTable renders ordered pairs as a two column table.
func (m *Markdown) AddKeyValueTable(keyHeader, valueHeader string, pairs [][2]string) *Markdown {
	rows := make([][]string, len(pairs))
	for i, p := range pairs {
		rows[i] = []string{p[0], p[1]}
	}
	return m.AddTable([]string{keyHeader, valueHeader}, rows)
}

// AddCodeBlock adds a code block with optional language specification
func (m *Markdown) AddCodeBlock(code string, language string) *Markdown {
	fmt.Fprintf(&m.content, "```%s\n%s\n```\n\n", language, strings.TrimRight(code, "\n"))
	return m
}

func (m *Markdown) AddList(items []string) *Markdown {
	for _, item := range items {
		fmt.Fprintf(&m.content, "- %s\n", item)
	}
	m.content.WriteString("\n")
	return m
}

func (m *Markdown) AddNumberedList(items []string) *Markdown {
	for i, item := range items {
		fmt.Fprintf(&m.content, "%d. %s\n", i+1, item)
	}
	m.content.WriteString("\n")
	return m
}

// AddChecklist adds unchecked task list items.
func (m *Markdown) AddChecklist(items []string) *Markdown {
	for _, item := range items {
		fmt.Fprintf(&m.content, "- [ ] %s\n", item)
	}
	m.content.WriteString("\n")
	return m
}

func (m *Markdown) AddHorizontalRule() *Markdown {
	m.content.WriteString("---\n\n")
	return m
}

func (m *Markdown) String() string {
	return m.content.String()
}

func (m *Markdown) Bytes() []byte {
	return []byte(m.content.String())
}

// WriteTo writes the raw markdown content to the provided io.Writer
func (m *Markdown) WriteTo(w io.Writer) (int64, error) {
	n, err := io.WriteString(w, m.content.String())
	return int64(n), err
}

// Render returns the markdown rendered for a terminal with glamour
func (m *Markdown) Render() (string, error) {
	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(wordWrap),
	)
	if err != nil {
		return "", fmt.Errorf("failed to create glamour renderer: %w", err)
	}

	out, err := renderer.Render(m.content.String())
	if err != nil {
		return "", fmt.Errorf("failed to render markdown: %w", err)
	}

	return out, nil
}

// Print writes the rendered markdown to w, falling back to the raw text if rendering fails.
func (m *Markdown) Print(w io.Writer) error {
	out, err := m.Render()
	if err != nil {
		_, err = m.WriteTo(w)
		return err
	}
	_, err = io.WriteString(w, out)
	return err
}

// PrintToTerminal renders to stdout.
func (m *Markdown) PrintToTerminal() error {
	return m.Print(os.Stdout)
}
