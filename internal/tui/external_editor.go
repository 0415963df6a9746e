package tui

import (
	"os"
	"os/exec"
	"strings"
	"unicode"

	tea "github.com/charmbracelet/bubbletea"
)

type editorDoneMsg struct {
	path string
	err  error
}

func editorName() string {
	for _, k := range []string{"QUICKCOMM_EDITOR", "VISUAL", "EDITOR"} {
		if v := strings.TrimSpace(os.Getenv(k)); v != "" {
			return v
		}
	}
	return "vi"
}

// editorArgv splits an editor setting like `code --wait` or
// `vim -c "set tw=0"` into argv. Quotes group words; a backslash escapes
// the next rune outside single quotes.
func editorArgv(s string) []string {
	var (
		out     []string
		word    strings.Builder
		inWord  bool
		quote   rune
		escaped bool
	)
	for _, r := range s {
		switch {
		case escaped:
			word.WriteRune(r)
			escaped = false
		case r == '\\' && quote != '\'':
			escaped, inWord = true, true
		case quote != 0 && r == quote:
			quote = 0
		case quote == 0 && (r == '\'' || r == '"'):
			quote, inWord = r, true
		case quote == 0 && unicode.IsSpace(r):
			if inWord {
				out = append(out, word.String())
				word.Reset()
				inWord = false
			}
		default:
			word.WriteRune(r)
			inWord = true
		}
	}
	if inWord {
		out = append(out, word.String())
	}
	return out
}

// openEditor hands the phrase being typed to an external editor. The program
// is suspended until the editor exits.
func (m *appModel) openEditor() (tea.Cmd, error) {
	argv := editorArgv(editorName())
	if len(argv) == 0 {
		argv = []string{"vi"}
	}
	f, err := os.CreateTemp("", "quickcomm-phrase-*.txt")
	if err != nil {
		return nil, err
	}
	path := f.Name()
	if _, err := f.WriteString(m.input.Value()); err != nil {
		_ = f.Close()
		_ = os.Remove(path)
		return nil, err
	}
	_ = f.Close()

	cmd := exec.Command(argv[0], append(argv[1:], path)...)
	return tea.ExecProcess(cmd, func(err error) tea.Msg {
		return editorDoneMsg{path: path, err: err}
	}), nil
}

// applyEditorResult loads the edited text back into the input line. Phrases
// are one line, so newlines collapse to spaces.
func (m *appModel) applyEditorResult(msg editorDoneMsg) tea.Cmd {
	defer func() { _ = os.Remove(msg.path) }()
	if msg.err != nil {
		return m.showWarning("Editor failed: " + msg.err.Error())
	}
	b, err := os.ReadFile(msg.path)
	if err != nil {
		return m.showWarning("Editor read failed: " + err.Error())
	}
	text := strings.Join(strings.Fields(string(b)), " ")
	if text == strings.TrimSpace(m.input.Value()) {
		return m.showMinibuffer("No changes from " + editorName())
	}
	m.input.SetValue(text)
	m.input.CursorEnd()
	return m.showMinibuffer("Updated from " + editorName() + " (enter to save)")
}
