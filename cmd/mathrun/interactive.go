package main

import (
	"context"
	stderrors "errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/wippyai/wasm-math/arith"
	"github.com/wippyai/wasm-math/errors"
	"github.com/wippyai/wasm-math/host"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	funcStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#98FB98"))

	typeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#87CEEB"))

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4"))

	resultStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#90EE90"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))
)

var argNames = []string{"lhs", "rhs"}

type interactiveModel struct {
	err        error
	callErr    error
	log        *zap.Logger
	session    *session
	moduleName string
	result     string
	sigs       []host.Signature
	inputs     []textinput.Model
	selected   int
	focusIdx   int
	state      modelState
}

type modelState int

const (
	stateSelectFunc modelState = iota
	stateInputArgs
	stateShowResult
)

func newInteractiveModel(moduleName string, log *zap.Logger) *interactiveModel {
	return &interactiveModel{
		moduleName: moduleName,
		log:        log,
		sigs:       host.Signatures(),
		state:      stateSelectFunc,
	}
}

type loadedMsg struct {
	err     error
	session *session
}

type callResultMsg struct {
	err    error
	result string
}

func (m *interactiveModel) Init() tea.Cmd {
	return m.loadHost
}

func (m *interactiveModel) loadHost() tea.Msg {
	s, err := newSession(context.Background(), m.moduleName, m.log)
	return loadedMsg{session: s, err: err}
}

func (m *interactiveModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m.quit()

		case "q":
			if m.state != stateInputArgs {
				return m.quit()
			}

		case "up", "k":
			if m.state == stateSelectFunc && m.selected > 0 {
				m.selected--
			}

		case "down", "j":
			if m.state == stateSelectFunc && m.selected < len(m.sigs)-1 {
				m.selected++
			}

		case "enter":
			switch m.state {
			case stateSelectFunc:
				m.prepareInputs()
				m.state = stateInputArgs
				return m, nil

			case stateInputArgs:
				return m, m.callFunction

			case stateShowResult:
				m.reset()
				return m, nil
			}

		case "tab":
			if m.state == stateInputArgs && len(m.inputs) > 1 {
				m.inputs[m.focusIdx].Blur()
				m.focusIdx = (m.focusIdx + 1) % len(m.inputs)
				m.inputs[m.focusIdx].Focus()
			}

		case "esc":
			switch m.state {
			case stateInputArgs:
				m.state = stateSelectFunc
				m.inputs = nil
			case stateShowResult:
				m.reset()
			}
		}

	case loadedMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.session = msg.session

	case callResultMsg:
		m.result = msg.result
		m.callErr = msg.err
		m.state = stateShowResult
	}

	if m.state == stateInputArgs {
		var cmds []tea.Cmd
		for i := range m.inputs {
			var cmd tea.Cmd
			m.inputs[i], cmd = m.inputs[i].Update(msg)
			cmds = append(cmds, cmd)
		}
		return m, tea.Batch(cmds...)
	}

	return m, nil
}

func (m *interactiveModel) quit() (tea.Model, tea.Cmd) {
	if m.session != nil {
		m.session.Close(context.Background())
		m.session = nil
	}
	return m, tea.Quit
}

func (m *interactiveModel) reset() {
	m.state = stateSelectFunc
	m.result = ""
	m.callErr = nil
}

func (m *interactiveModel) prepareInputs() {
	sig := m.sigs[m.selected]
	m.inputs = make([]textinput.Model, len(argNames))
	for i, name := range argNames {
		ti := textinput.New()
		ti.Placeholder = acceptedTypes(sig, i)
		ti.Prompt = name + ": "
		ti.Width = 40
		if i == 0 {
			ti.Focus()
		}
		m.inputs[i] = ti
	}
	m.focusIdx = 0
}

func (m *interactiveModel) callFunction() tea.Msg {
	if m.session == nil {
		return callResultMsg{err: fmt.Errorf("host not loaded")}
	}

	sig := m.sigs[m.selected]
	args := make([]any, len(m.inputs))
	for i, input := range m.inputs {
		args[i] = arith.ParseLiteral(input.Value())
	}

	v, err := m.session.caller.Call(context.Background(), sig.Name, args...)
	if err != nil {
		return callResultMsg{err: err}
	}
	return callResultMsg{result: fmt.Sprintf("%s %s", v.Kind(), v)}
}

func (m *interactiveModel) View() string {
	if m.err != nil {
		return errorStyle.Render(fmt.Sprintf("Error: %v\n\nPress q to quit.", m.err))
	}

	if m.session == nil {
		return "Loading host..."
	}

	var b strings.Builder

	b.WriteString(titleStyle.Render("WASM Math"))
	b.WriteString(" ")
	b.WriteString(m.moduleName)
	b.WriteString("\n\n")

	switch m.state {
	case stateSelectFunc:
		b.WriteString("Select a function to call:\n\n")
		for i, sig := range m.sigs {
			if i == m.selected {
				b.WriteString(selectedStyle.Render("> ") + formatSignature(sig))
			} else {
				b.WriteString("  " + formatSignature(sig))
			}
			b.WriteString("\n")
		}
		b.WriteString("\n")
		b.WriteString(helpStyle.Render("↑/↓ select • enter call • q quit"))

	case stateInputArgs:
		sig := m.sigs[m.selected]
		b.WriteString(fmt.Sprintf("Calling %s\n\n", funcStyle.Render(sig.Name)))
		for i, input := range m.inputs {
			b.WriteString(input.View())
			b.WriteString(" ")
			b.WriteString(typeStyle.Render(acceptedTypes(sig, i)))
			b.WriteString("\n")
		}
		b.WriteString("\n")
		b.WriteString(helpStyle.Render("tab next field • enter call • esc back"))

	case stateShowResult:
		sig := m.sigs[m.selected]
		b.WriteString(fmt.Sprintf("Result of %s:\n\n", funcStyle.Render(sig.Name)))
		if m.callErr != nil {
			b.WriteString(errorStyle.Render(formatError(m.callErr)))
		} else {
			b.WriteString(resultStyle.Render(m.result))
		}
		b.WriteString("\n\n")
		b.WriteString(helpStyle.Render("enter continue • q quit"))
	}

	return b.String()
}

func formatSignature(sig host.Signature) string {
	return funcStyle.Render(sig.Name) + typeStyle.Render(strings.TrimPrefix(sig.String(), sig.Name))
}

// acceptedTypes lists the WIT types argument i accepts, in dispatch order.
func acceptedTypes(sig host.Signature, i int) string {
	names := make([]string, 0, len(sig.Shapes))
	for _, sh := range sig.Shapes {
		if i < len(sh.Params) {
			names = append(names, host.WitTypeName(sh.Params[i]))
		}
	}
	return strings.Join(names, " | ")
}

func formatError(err error) string {
	var e *errors.Error
	if stderrors.As(err, &e) {
		return fmt.Sprintf("%s: %s", e.Class(), e.Message())
	}
	return fmt.Sprintf("Error: %v", err)
}

func runInteractive(moduleName string, log *zap.Logger) error {
	p := tea.NewProgram(newInteractiveModel(moduleName, log), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
