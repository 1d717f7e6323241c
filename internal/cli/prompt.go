package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/pkg/errors"
)

var errPromptCancelled = errors.New("cancelled")

var (
	promptLabelStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39"))
	promptErrorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	promptHelpStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
)

// schemaFileName trims name and appends .xsd when it has no such
// extension
func schemaFileName(name string) string {
	name = strings.TrimSpace(name)
	if name == "" || strings.EqualFold(filepath.Ext(name), ".xsd") {
		return name
	}
	return name + ".xsd"
}

func fileExists(path string) bool {
	st, err := os.Stat(path)
	return err == nil && !st.IsDir()
}

// promptModel asks for a schema file name until an existing file is
// entered
type promptModel struct {
	input     textinput.Model
	exists    func(string) bool
	path      string
	err       string
	cancelled bool
}

func newPromptModel(exists func(string) bool) promptModel {
	ti := textinput.New()
	ti.Placeholder = "schema.xsd"
	ti.CharLimit = 1024
	ti.Width = 50
	ti.Focus()
	return promptModel{input: ti, exists: exists}
}

func (m promptModel) Init() tea.Cmd { return textinput.Blink }

func (m promptModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			m.cancelled = true
			return m, tea.Quit
		case tea.KeyEnter:
			name := schemaFileName(m.input.Value())
			switch {
			case name == "":
				m.err = "enter a file name"
			case !m.exists(name):
				m.err = fmt.Sprintf("%s: no such file", name)
				m.input.SetValue("")
			default:
				m.path, m.err = name, ""
				return m, tea.Quit
			}
			return m, nil
		}
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m promptModel) View() string {
	var sb strings.Builder
	sb.WriteString(promptLabelStyle.Render("XSD file:") + " " + m.input.View() + "\n")
	if m.err != "" {
		sb.WriteString(promptErrorStyle.Render(m.err) + "\n")
	}
	sb.WriteString(promptHelpStyle.Render("enter to confirm, esc to cancel") + "\n")
	return sb.String()
}

// promptSchemaFile runs the file name prompt on the terminal
func promptSchemaFile() (string, error) {
	final, err := tea.NewProgram(newPromptModel(fileExists)).Run()
	if err != nil {
		return "", errors.Wrap(err, "prompt")
	}
	m := final.(promptModel)
	if m.cancelled {
		return "", errPromptCancelled
	}
	return m.path, nil
}
