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

type ticketsLoadedMsg struct {
	gen     int
	tickets []*domain.Ticket
	err     error
}

type ticketsDeletedMsg struct {
	err error
}

// ticketListView shows the tickets raised for the active store.
type ticketListView struct {
	state *SharedState
	sync  syncState[*domain.Ticket]

	cursor       int
	search       textinput.Model
	searching    bool
	statusFilter *domain.Status
	selected     selection
	notice       string

	// mineOnly narrows the scope to tickets the current user created.
	mineOnly bool
}

func newTicketListView(state *SharedState) *ticketListView {
	search := textinput.New()
	search.Prompt = "/"
	search.Placeholder = "search"
	search.CharLimit = 64
	return &ticketListView{
		state:    state,
		search:   search,
		selected: make(selection),
	}
}

func (v *ticketListView) ID() ViewID    { return ViewTicketList }
func (v *ticketListView) Title() string { return "Tickets" }

func (v *ticketListView) ShortHelp() []key.Binding {
	return []key.Binding{
		keyBinding("enter", "open"),
		keyBinding("space", "select"),
		keyBinding("/", "search"),
		keyBinding("f", "filter status"),
		keyBinding("m", "mine/store"),
		keyBinding("n", "new"),
		keyBinding("x", "delete selected"),
		keyBinding("r", "refresh"),
		keyBinding("esc", "back"),
	}
}

func (v *ticketListView) Init() tea.Cmd {
	return v.load()
}

func (v *ticketListView) load() tea.Cmd {
	gen := v.sync.begin()
	repo := v.state.App.Tickets
	storeCode := v.state.StoreCode
	userRef := v.state.UserRef
	mine := v.mineOnly
	return func() tea.Msg {
		var (
			tickets []*domain.Ticket
			err     error
		)
		if mine {
			tickets, err = repo.FetchByCreator(context.Background(), userRef)
		} else {
			tickets, err = repo.FetchByStore(context.Background(), storeCode)
		}
		return ticketsLoadedMsg{gen: gen, tickets: tickets, err: err}
	}
}

func (v *ticketListView) deleteSelected(ids []string) tea.Cmd {
	repo := v.state.App.Tickets
	return func() tea.Msg {
		var firstErr error
		for _, id := range ids {
			if err := repo.Delete(context.Background(), id); err != nil && firstErr == nil {
				firstErr = err
			}
		}
		return ticketsDeletedMsg{err: firstErr}
	}
}

func (v *ticketListView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case ticketsLoadedMsg:
		if v.sync.apply(msg.gen, msg.tickets, msg.err) {
			pruneSelection(v.selected, v.sync.items, func(t *domain.Ticket) string { return t.ID })
			v.clampCursor()
		}
		return v, nil

	case ticketsDeletedMsg:
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

func (v *ticketListView) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
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
	case "f":
		v.statusFilter = cycleStatusFilter(v.statusFilter)
		v.clampCursor()
	case "m":
		v.mineOnly = !v.mineOnly
		return v, v.load()
	case " ":
		if v.cursor < len(visible) {
			v.selected.toggle(visible[v.cursor].ID)
		}
	case "enter":
		if v.cursor < len(visible) {
			return v, pushView(newTicketDetailView(v.state, visible[v.cursor]))
		}
	case "n":
		return v, pushView(newTicketFormView(v.state))
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

func (v *ticketListView) visible() []*domain.Ticket {
	search := v.search.Value()
	rows := filterRows(v.sync.items, func(t *domain.Ticket) bool {
		return matchesSearch(search, t.Title, t.Description) && matchesStatus(v.statusFilter, t.Status)
	})
	// Newest first.
	sortRows(rows, func(a, b *domain.Ticket) bool {
		if a.CreatedAt.Equal(b.CreatedAt) {
			return a.Title < b.Title
		}
		return a.CreatedAt.After(b.CreatedAt)
	})
	return rows
}

func (v *ticketListView) clampCursor() {
	if n := len(v.visible()); v.cursor >= n {
		v.cursor = n - 1
	}
	if v.cursor < 0 {
		v.cursor = 0
	}
}

func (v *ticketListView) View() string {
	var b strings.Builder

	if v.searching || v.search.Value() != "" {
		b.WriteString(v.search.View() + "\n")
	}
	if v.statusFilter != nil {
		b.WriteString(styleDim.Render("filter: ") + statusStyle(*v.statusFilter).Render(string(*v.statusFilter)) + "\n")
	}
	if v.mineOnly {
		b.WriteString(styleDim.Render("scope: created by me") + "\n")
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
		b.WriteString(styleDim.Render("No tickets."))
		return b.String()
	}

	for i, t := range visible {
		cursor := "  "
		if i == v.cursor {
			cursor = styleSelected.Render("> ")
		}
		check := "[ ]"
		if v.selected.has(t.ID) {
			check = styleSelected.Render("[x]")
		}
		assignee := styleDim.Render("unassigned")
		if t.AssignedTo != "" {
			assignee = styleBlue.Render(t.AssignedTo)
		}
		b.WriteString(fmt.Sprintf("%s%s %s %s %s\n",
			cursor, check,
			statusStyle(t.Status).Render(fmt.Sprintf("%-11s", t.Status)),
			styleFg.Render(t.Title), assignee))
	}
	b.WriteString("\n" + styleDim.Render(fmt.Sprintf("%d of %d shown · %d selected",
		len(visible), len(v.sync.items), len(v.selected))))
	return b.String()
}
