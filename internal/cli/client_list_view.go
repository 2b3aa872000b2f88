package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"storedesk/internal/domain"
)

type clientsLoadedMsg struct {
	gen     int
	clients []*domain.Client
	err     error
}

type clientsDeletedMsg struct {
	err error
}

// clientListView shows the client book for the active store.
type clientListView struct {
	state *SharedState
	sync  syncState[*domain.Client]

	cursor    int
	search    textinput.Model
	searching bool
	selected  selection
	notice    string
}

func newClientListView(state *SharedState) *clientListView {
	search := textinput.New()
	search.Prompt = "/"
	search.Placeholder = "search"
	search.CharLimit = 64
	return &clientListView{
		state:    state,
		search:   search,
		selected: make(selection),
	}
}

func (v *clientListView) ID() ViewID    { return ViewClientList }
func (v *clientListView) Title() string { return "Clients" }

func (v *clientListView) ShortHelp() []key.Binding {
	return []key.Binding{
		keyBinding("space", "select"),
		keyBinding("/", "search"),
		keyBinding("n", "new"),
		keyBinding("x", "delete selected"),
		keyBinding("r", "refresh"),
		keyBinding("esc", "back"),
	}
}

func (v *clientListView) Init() tea.Cmd {
	return v.load()
}

func (v *clientListView) load() tea.Cmd {
	gen := v.sync.begin()
	repo := v.state.App.Clients
	storeCode := v.state.StoreCode
	return func() tea.Msg {
		clients, err := repo.FetchByStore(context.Background(), storeCode)
		return clientsLoadedMsg{gen: gen, clients: clients, err: err}
	}
}

func (v *clientListView) deleteSelected(ids []string) tea.Cmd {
	repo := v.state.App.Clients
	return func() tea.Msg {
		var firstErr error
		for _, id := range ids {
			if err := repo.Delete(context.Background(), id); err != nil && firstErr == nil {
				firstErr = err
			}
		}
		return clientsDeletedMsg{err: firstErr}
	}
}

func (v *clientListView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case clientsLoadedMsg:
		if v.sync.apply(msg.gen, msg.clients, msg.err) {
			pruneSelection(v.selected, v.sync.items, func(c *domain.Client) string { return c.ID })
			v.clampCursor()
		}
		return v, nil

	case clientsDeletedMsg:
		v.notice = ""
		if msg.err != nil {
			v.notice = msg.err.Error()
		}
		return v, v.load()

	case refreshViewsMsg:
		return v, v.load()

	case tea.KeyMsg:
		return v.handleKey(msg)
	}
	return v, nil
}

func (v *clientListView) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if v.searching {
		switch msg.String() {
		case "enter":
			v.searching = false
			v.search.Blur()
		case "esc":
			v.searching = false
			v.search.Blur()
			v.search.SetValue("")
		default:
			var cmd tea.Cmd
			v.search, cmd = v.search.Update(msg)
			v.clampCursor()
			return v, cmd
		}
		return v, nil
	}

	visible := v.visible()
	switch msg.String() {
	case "q":
		return v, tea.Quit
	case "esc":
		return v, popView()
	case "up", "k":
		if v.cursor > 0 {
			v.cursor--
		}
	case "down", "j":
		if v.cursor < len(visible)-1 {
			v.cursor++
		}
	case "/":
		v.searching = true
		return v, v.search.Focus()
	case " ":
		if v.cursor < len(visible) {
			v.selected.toggle(visible[v.cursor].ID)
		}
	case "n":
		return v, pushView(newClientFormView(v.state))
	case "x":
		ids := v.selected.ids()
		if len(ids) == 0 && v.cursor < len(visible) {
			ids = []string{visible[v.cursor].ID}
		}
		if len(ids) > 0 {
			return v, v.deleteSelected(ids)
		}
	case "r":
		return v, v.load()
	}
	return v, nil
}

func (v *clientListView) visible() []*domain.Client {
	search := v.search.Value()
	rows := filterRows(v.sync.items, func(c *domain.Client) bool {
		return matchesSearch(search, c.GuestName, c.PartnerName, c.AccountNumber)
	})
	sortRows(rows, func(a, b *domain.Client) bool { return a.GuestName < b.GuestName })
	return rows
}

func (v *clientListView) clampCursor() {
	if n := len(v.visible()); v.cursor >= n {
		v.cursor = n - 1
	}
	if v.cursor < 0 {
		v.cursor = 0
	}
}

func (v *clientListView) View() string {
	var b strings.Builder

	if v.searching || v.search.Value() != "" {
		b.WriteString(v.search.View() + "\n")
	}
	if v.notice != "" {
		b.WriteString(styleRed.Render(v.notice) + "\n")
	}

	if v.sync.loading {
		b.WriteString(styleDim.Render("Loading…"))
		return b.String()
	}
	if v.sync.err != nil {
		b.WriteString(styleRed.Render("Error: "+v.sync.err.Error()) + "\n")
		b.WriteString(styleDim.Render("press r to retry"))
		return b.String()
	}

	visible := v.visible()
	if len(visible) == 0 {
		b.WriteString(styleDim.Render("No clients."))
		return b.String()
	}

	for i, c := range visible {
		cursor := "  "
		if i == v.cursor {
			cursor = styleSelected.Render("> ")
		}
		check := "[ ]"
		if v.selected.has(c.ID) {
			check = styleSelected.Render("[x]")
		}
		name := c.GuestName
		if c.PartnerName != "" {
			name += " & " + c.PartnerName
		}
		followUp := ""
		if c.FollowUp != nil {
			followUp = styleYellow.Render("follow up " + c.FollowUp.Format("2006-01-02"))
		}
		b.WriteString(fmt.Sprintf("%s%s %s %s %s\n",
			cursor, check, styleFg.Render(name),
			styleDim.Render(c.AccountNumber), followUp))
	}
	b.WriteString("\n" + styleDim.Render(fmt.Sprintf("%d of %d shown · %d selected",
		len(visible), len(v.sync.items), len(v.selected))))
	return b.String()
}
