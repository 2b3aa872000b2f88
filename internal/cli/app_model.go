package cli

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// appModel is the root bubbletea Model for the TUI. It manages a stack of
// views and routes messages: navigation and broadcast messages are handled
// here, everything else goes to the view on top. A data message that arrives
// after its view was popped is simply dropped.
type appModel struct {
	state     *SharedState
	viewStack []View
	quitting  bool
}

func newAppModel(app *App) appModel {
	state := &SharedState{
		App:       app,
		StoreCode: app.Config.StoreCode,
		UserRef:   app.Config.UserRef,
	}
	return appModel{
		state:     state,
		viewStack: []View{newHomeView(state)},
	}
}

// activeView returns the top view on the stack, or nil.
func (m *appModel) activeView() View {
	if len(m.viewStack) == 0 {
		return nil
	}
	return m.viewStack[len(m.viewStack)-1]
}

// setActiveView replaces the top of the view stack.
func (m *appModel) setActiveView(v View) {
	if len(m.viewStack) > 0 {
		m.viewStack[len(m.viewStack)-1] = v
	}
}

func (m appModel) Init() tea.Cmd {
	if v := m.activeView(); v != nil {
		return v.Init()
	}
	return nil
}

func (m appModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		m.state.Width = msg.Width
		m.state.Height = msg.Height
		return m.forward(msg)

	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			m.quitting = true
			return m, tea.Quit
		}
		return m.forward(msg)

	case pushViewMsg:
		m.viewStack = append(m.viewStack, msg.view)
		return m, msg.view.Init()

	case popViewMsg:
		if len(m.viewStack) > 1 {
			m.viewStack = m.viewStack[:len(m.viewStack)-1]
		}
		return m, nil

	case refreshViewsMsg:
		// Broadcast to the whole stack so views under the one that issued
		// a mutation reconcile with remote truth too.
		var cmds []tea.Cmd
		for i, v := range m.viewStack {
			updated, cmd := v.Update(msg)
			m.viewStack[i] = updated.(View)
			if cmd != nil {
				cmds = append(cmds, cmd)
			}
		}
		return m, tea.Batch(cmds...)

	case tea.QuitMsg:
		m.quitting = true
		return m, nil
	}

	return m.forward(msg)
}

// forward sends a message to the active view only.
func (m appModel) forward(msg tea.Msg) (tea.Model, tea.Cmd) {
	v := m.activeView()
	if v == nil {
		return m, nil
	}
	updated, cmd := v.Update(msg)
	m.setActiveView(updated.(View))
	return m, cmd
}

func (m appModel) View() string {
	if m.quitting {
		return ""
	}
	v := m.activeView()
	if v == nil {
		return ""
	}

	// Header: breadcrumb of view titles plus the active store scope.
	titles := make([]string, 0, len(m.viewStack))
	for _, view := range m.viewStack {
		titles = append(titles, view.Title())
	}
	header := styleHeader.Render(strings.Join(titles, " › ")) +
		styleDim.Render("  ["+m.state.StoreCode+"]")

	// Footer: key hints for the active view plus globals.
	hints := make([]string, 0, 8)
	for _, b := range v.ShortHelp() {
		hints = append(hints, styleFg.Render(b.Help().Key)+" "+styleDim.Render(b.Help().Desc))
	}
	hints = append(hints, styleFg.Render("ctrl+c")+" "+styleDim.Render("quit"))
	footer := styleDim.Render(strings.Repeat("─", max(m.state.Width, 1))) + "\n" +
		strings.Join(hints, styleDim.Render("  ·  "))

	return header + "\n\n" + v.View() + "\n" + footer
}

// keyBinding is a shorthand for building a help hint.
func keyBinding(keys, help string) key.Binding {
	return key.NewBinding(key.WithKeys(keys), key.WithHelp(keys, help))
}
