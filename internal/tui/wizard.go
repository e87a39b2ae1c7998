// Package tui provides the interactive assessment wizard using Bubble Tea.
package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/joss/acelera/internal/autosave"
	"github.com/joss/acelera/internal/session"
	"github.com/joss/acelera/internal/workflow"
)

// Styles
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("205")).
			MarginLeft(2)

	infoStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	doneStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42"))

	activeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42")).
			Bold(true)

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			MarginTop(1)

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("212"))
)

// field is one editable line in the current step.
type field struct {
	criterion string
	name      string
	label     string
}

// Message types
type analyzeDoneMsg struct{ err error }
type questionsDoneMsg struct{ err error }
type evaluateDoneMsg struct{ err error }

// Model is the wizard TUI model.
type Model struct {
	eng  *workflow.Engine
	auto *autosave.Controller

	fields   []field
	cursor   int
	editing  bool
	input    textinput.Model
	spinner  spinner.Model
	busy     bool
	status   string
	err      error
	width    int
	height   int
	quitting bool
}

// New creates a wizard model around a loaded engine.
func New(eng *workflow.Engine) Model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))

	ti := textinput.New()
	ti.CharLimit = 2000
	ti.Width = 70

	auto := autosave.New(func(ctx context.Context) error {
		return eng.Save(ctx)
	}, eng.HasSession)
	// Prime the controller so the initial load never writes.
	auto.Schedule()

	m := Model{
		eng:     eng,
		auto:    auto,
		spinner: s,
		input:   ti,
	}
	m.rebuildFields()
	return m
}

// rebuildFields flattens the editable fields for the current step.
func (m *Model) rebuildFields() {
	m.fields = nil
	sess := m.eng.Session()
	if sess == nil {
		return
	}

	switch sess.CurrentStep {
	case session.StepAnswers:
		for _, c := range m.eng.Variant().Criteria {
			for _, f := range c.Fields {
				m.fields = append(m.fields, field{
					criterion: c.Key,
					name:      f,
					label:     c.Title + " / " + f,
				})
			}
		}
	case session.StepFollowUp:
		for _, c := range m.eng.Variant().Criteria {
			cq, ok := sess.Questions[c.Key]
			if !ok {
				continue
			}
			for _, f := range c.Fields {
				label := c.Title + " / " + f
				if cq.Title != "" {
					label = cq.Title + " / " + f
				}
				m.fields = append(m.fields, field{criterion: c.Key, name: f, label: label})
			}
		}
	}
	if m.cursor >= len(m.fields) {
		m.cursor = 0
	}
}

// Init initializes the wizard.
func (m Model) Init() tea.Cmd {
	return m.spinner.Tick
}

// Update handles messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		if m.editing {
			return m.updateEditing(msg)
		}
		return m.updateBrowsing(msg)

	case analyzeDoneMsg:
		m.busy = false
		m.err = msg.err
		if msg.err == nil {
			m.status = "Analysis complete"
			m.rebuildFields()
		}
		return m, nil

	case questionsDoneMsg:
		m.busy = false
		m.err = msg.err
		if msg.err == nil {
			m.status = "Questions ready"
			m.rebuildFields()
		}
		return m, nil

	case evaluateDoneMsg:
		m.busy = false
		m.err = msg.err
		if msg.err == nil {
			m.status = "Final result ready"
			m.rebuildFields()
		}
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) updateEditing(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		f := m.fields[m.cursor]
		sess := m.eng.Session()
		if sess.CurrentStep == session.StepFollowUp {
			m.eng.SetFollowUpAnswer(f.criterion, f.name, m.input.Value())
		} else {
			m.eng.SetAnswer(f.criterion, f.name, m.input.Value())
		}
		m.auto.Schedule()
		m.editing = false
		m.input.Blur()
		m.status = "Edited " + f.criterion + "." + f.name
		return m, nil
	case "esc":
		m.editing = false
		m.input.Blur()
		return m, nil
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) updateBrowsing(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	sess := m.eng.Session()

	switch msg.String() {
	case "ctrl+c", "q":
		m.quitting = true
		if err := m.auto.Flush(context.Background()); err != nil {
			m.err = err
		}
		return m, tea.Quit

	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
		return m, nil

	case "down", "j":
		if m.cursor < len(m.fields)-1 {
			m.cursor++
		}
		return m, nil

	case "enter", "e":
		if m.busy || len(m.fields) == 0 {
			return m, nil
		}
		f := m.fields[m.cursor]
		current := ""
		if sess.CurrentStep == session.StepFollowUp {
			current = sess.FollowUp[f.criterion][f.name]
		} else {
			current = sess.Answers.Get(f.criterion, f.name)
		}
		m.editing = true
		m.input.SetValue(current)
		m.input.Focus()
		return m, textinput.Blink

	case "1", "2", "3", "4":
		step := int(msg.String()[0] - '0')
		if err := m.eng.GoToStep(step); err != nil {
			m.err = err
			return m, nil
		}
		m.err = nil
		m.rebuildFields()
		return m, nil

	case " ":
		return m.advance()
	}
	return m, nil
}

// advance runs the remote transition for the current step.
func (m Model) advance() (tea.Model, tea.Cmd) {
	if m.busy {
		return m, nil
	}
	sess := m.eng.Session()
	eng := m.eng

	switch sess.CurrentStep {
	case session.StepAnswers:
		m.busy = true
		m.status = "Analyzing answers"
		return m, tea.Batch(m.spinner.Tick, func() tea.Msg {
			return analyzeDoneMsg{err: eng.Analyze(context.Background())}
		})
	case session.StepAnalysis:
		m.busy = true
		m.status = "Generating follow-up questions"
		return m, tea.Batch(m.spinner.Tick, func() tea.Msg {
			return questionsDoneMsg{err: eng.GenerateQuestions(context.Background())}
		})
	case session.StepFollowUp:
		m.busy = true
		m.status = "Synthesizing improved text"
		return m, tea.Batch(m.spinner.Tick, func() tea.Msg {
			return evaluateDoneMsg{err: eng.EvaluateFollowUp(context.Background())}
		})
	}
	return m, nil
}

// View renders the wizard.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	sess := m.eng.Session()
	if sess == nil {
		return errorStyle.Render("no session loaded")
	}

	var sb strings.Builder
	sb.WriteString(titleStyle.Render(fmt.Sprintf("Acelera  %s  (%s)", sess.ProjectID, m.eng.Variant().Name)))
	sb.WriteString("\n\n")
	sb.WriteString(m.stepBar(sess))
	sb.WriteString("\n\n")

	switch sess.CurrentStep {
	case session.StepAnswers, session.StepFollowUp:
		sb.WriteString(m.fieldList(sess))
	case session.StepAnalysis:
		sb.WriteString(m.scoreView())
	case session.StepResult:
		sb.WriteString(m.resultView(sess))
	}

	if m.editing {
		sb.WriteString("\n" + m.input.View() + "\n")
	}
	if m.busy {
		sb.WriteString("\n" + m.spinner.View() + infoStyle.Render(m.status) + "\n")
	} else if m.status != "" {
		sb.WriteString("\n" + infoStyle.Render(m.status) + "\n")
	}
	if m.err != nil {
		sb.WriteString("\n" + errorStyle.Render("Error: "+m.err.Error()) + "\n")
	}

	help := "↑/↓ select, enter edit, space advance, 1-4 go to step, q quit"
	if m.editing {
		help = "enter save, esc cancel"
	}
	sb.WriteString(helpStyle.Render(help))
	return sb.String()
}

func (m Model) stepBar(sess *session.Session) string {
	names := []string{"Answers", "Analysis", "Questions", "Result"}
	parts := make([]string, 0, 4)
	for step := session.StepAnswers; step <= session.StepResult; step++ {
		label := fmt.Sprintf("%d %s", step, names[step-1])
		switch {
		case sess.CurrentStep == step:
			parts = append(parts, activeStyle.Render("▶ "+label))
		case sess.IsComplete(step):
			parts = append(parts, doneStyle.Render("✓ "+label))
		default:
			parts = append(parts, infoStyle.Render("○ "+label))
		}
	}
	return "  " + strings.Join(parts, "   ")
}

func (m Model) fieldList(sess *session.Session) string {
	if len(m.fields) == 0 {
		return infoStyle.Render("  Nothing to fill in on this step")
	}
	var sb strings.Builder
	for i, f := range m.fields {
		val := sess.Answers.Get(f.criterion, f.name)
		if sess.CurrentStep == session.StepFollowUp {
			val = sess.FollowUp[f.criterion][f.name]
		}
		display := val
		if display == "" {
			display = infoStyle.Render("(empty)")
		} else if len(display) > 60 {
			display = display[:57] + "..."
		}
		line := fmt.Sprintf("  %-40s %s", f.label, display)
		if i == m.cursor {
			line = selectedStyle.Render("> " + line[2:])
		}
		sb.WriteString(line + "\n")
	}
	return sb.String()
}

func (m Model) scoreView() string {
	scores, err := m.eng.Scores()
	if err != nil {
		return infoStyle.Render("  No analysis yet, press space to run it")
	}
	var sb strings.Builder
	for _, c := range m.eng.Variant().Criteria {
		got, max := scores.Criterion(c.Key), c.MaxScore()
		style := infoStyle
		if got == max {
			style = doneStyle
		}
		sb.WriteString(style.Render(fmt.Sprintf("  %-20s %5.1f / %.0f", c.Title, got, max)) + "\n")
	}
	sb.WriteString(activeStyle.Render(fmt.Sprintf("  %-20s %5.1f / %.0f", "Total", scores.Total(), scores.MaxTotal)) + "\n")
	return sb.String()
}

func (m Model) resultView(sess *session.Session) string {
	if !sess.HasImprovedText() {
		return infoStyle.Render("  No result yet")
	}
	var sb strings.Builder
	for _, c := range m.eng.Variant().Criteria {
		fields, ok := sess.ImprovedText[c.Key]
		if !ok {
			continue
		}
		sb.WriteString(activeStyle.Render("  "+c.Title) + "\n")
		for _, f := range c.Fields {
			if fields[f] == "" {
				continue
			}
			text := fields[f]
			if len(text) > 200 {
				text = text[:197] + "..."
			}
			sb.WriteString("    " + text + "\n")
		}
	}
	return sb.String()
}
