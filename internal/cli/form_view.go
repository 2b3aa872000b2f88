package cli

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

// huhTheme returns a custom huh theme using the existing Gruvbox palette.
func huhTheme() *huh.Theme {
	t := huh.ThemeBase()

	// Focused state: orange accent
	t.Focused.Title = lipgloss.NewStyle().Foreground(colorHeader).Bold(true)
	t.Focused.SelectSelector = lipgloss.NewStyle().Foreground(colorHeader)
	t.Focused.SelectedOption = lipgloss.NewStyle().Foreground(colorGreen)
	t.Focused.UnselectedOption = lipgloss.NewStyle().Foreground(colorFg)
	t.Focused.FocusedButton = lipgloss.NewStyle().Foreground(colorFg).Background(colorHeader).Padding(0, 1)
	t.Focused.BlurredButton = lipgloss.NewStyle().Foreground(colorDim).Padding(0, 1)
	t.Focused.TextInput.Cursor = lipgloss.NewStyle().Foreground(colorHeader)
	t.Focused.TextInput.Prompt = lipgloss.NewStyle().Foreground(colorHeader)
	t.Focused.TextInput.Text = lipgloss.NewStyle().Foreground(colorFg)
	t.Focused.TextInput.Placeholder = lipgloss.NewStyle().Foreground(colorDim)
	t.Focused.Description = lipgloss.NewStyle().Foreground(colorDim)

	// Blurred state: dimmed
	t.Blurred.Title = lipgloss.NewStyle().Foreground(colorDim)
	t.Blurred.SelectSelector = lipgloss.NewStyle().Foreground(colorDim)
	t.Blurred.SelectedOption = lipgloss.NewStyle().Foreground(colorDim)
	t.Blurred.UnselectedOption = lipgloss.NewStyle().Foreground(colorDim)
	t.Blurred.TextInput.Prompt = lipgloss.NewStyle().Foreground(colorDim)
	t.Blurred.TextInput.Text = lipgloss.NewStyle().Foreground(colorDim)

	return t
}

// formSubmittedMsg carries the result of a form's submit callback.
type formSubmittedMsg struct {
	err error
}

// formView wraps a huh.Form as a View on the navigation stack. When the form
// completes, the submit callback persists the collected values; the view pops
// and broadcasts a reconciling refresh only after the write succeeds.
type formView struct {
	state    *SharedState
	form     *huh.Form
	titleStr string
	submit   func() error

	submitted bool
	err       error
}

func newFormView(state *SharedState, title string, form *huh.Form, submit func() error) *formView {
	return &formView{
		state:    state,
		form:     form,
		titleStr: title,
		submit:   submit,
	}
}

func (v *formView) ID() ViewID    { return ViewForm }
func (v *formView) Title() string { return v.titleStr }

func (v *formView) ShortHelp() []key.Binding {
	return []key.Binding{
		keyBinding("enter", "next"),
		keyBinding("esc", "cancel"),
	}
}

func (v *formView) Init() tea.Cmd {
	return v.form.Init()
}

func (v *formView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.Type == tea.KeyEsc {
			return v, popView()
		}
	case formSubmittedMsg:
		if msg.err != nil {
			v.err = msg.err
			v.submitted = false
			return v, nil
		}
		return v, tea.Batch(popView(), refreshViews())
	}

	form, cmd := v.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		v.form = f
	}

	if v.form.State == huh.StateAborted {
		return v, popView()
	}
	if v.form.State == huh.StateCompleted && !v.submitted {
		v.submitted = true
		submit := v.submit
		return v, tea.Batch(cmd, func() tea.Msg {
			return formSubmittedMsg{err: submit()}
		})
	}

	return v, cmd
}

func (v *formView) View() string {
	out := v.form.View()
	if v.err != nil {
		out += "\n" + styleRed.Render("Error: "+v.err.Error())
	}
	return out
}
