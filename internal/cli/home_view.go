package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

type homeSection struct {
	label string
	key   string
	open  func(state *SharedState) View
}

var homeSections = []homeSection{
	{"Tasks", "t", func(s *SharedState) View { return newTaskListView(s) }},
	{"Tickets", "i", func(s *SharedState) View { return newTicketListView(s) }},
	{"Clients", "c", func(s *SharedState) View { return newClientListView(s) }},
	{"Reports", "p", func(s *SharedState) View { return newReportView(s) }},
}

// homeView is the entry screen: a menu over the record sections.
type homeView struct {
	state  *SharedState
	cursor int
}

func newHomeView(state *SharedState) *homeView {
	return &homeView{state: state}
}

func (v *homeView) ID() ViewID    { return ViewHome }
func (v *homeView) Title() string { return "storedesk" }

func (v *homeView) ShortHelp() []key.Binding {
	return []key.Binding{
		keyBinding("enter", "open"),
		keyBinding("q", "quit"),
	}
}

func (v *homeView) Init() tea.Cmd { return nil }

func (v *homeView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return v, nil
	}

	switch keyMsg.String() {
	case "q":
		return v, tea.Quit
	case "up", "k":
		if v.cursor > 0 {
			v.cursor--
		}
	case "down", "j":
		if v.cursor < len(homeSections)-1 {
			v.cursor++
		}
	case "enter":
		return v, pushView(homeSections[v.cursor].open(v.state))
	default:
		for _, s := range homeSections {
			if keyMsg.String() == s.key {
				return v, pushView(s.open(v.state))
			}
		}
	}
	return v, nil
}

func (v *homeView) View() string {
	var b strings.Builder
	b.WriteString(styleDim.Render(fmt.Sprintf("store %s · user %s", v.state.StoreCode, v.state.UserRef)))
	b.WriteString("\n\n")
	for i, s := range homeSections {
		cursor := "  "
		label := styleFg.Render(s.label)
		if i == v.cursor {
			cursor = styleSelected.Render("> ")
			label = styleBold.Render(s.label)
		}
		b.WriteString(fmt.Sprintf("%s%s %s\n", cursor, label, styleDim.Render("("+s.key+")")))
	}
	return b.String()
}
