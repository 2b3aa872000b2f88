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

// tasksLoadedMsg signals that a task fetch has completed.
type tasksLoadedMsg struct {
	gen   int
	tasks []*domain.Task
	err   error
}

// tasksDeletedMsg signals that a bulk delete finished. err carries the first
// failure; the deletes already issued are not rolled back.
type tasksDeletedMsg struct {
	err error
}

// taskListView shows the tasks applicable to the active store.
type taskListView struct {
	state *SharedState
	sync  syncState[*domain.Task]

	cursor       int
	search       textinput.Model
	searching    bool
	statusFilter *domain.Status
	selected     selection
	notice       string
}

func newTaskListView(state *SharedState) *taskListView {
	search := textinput.New()
	search.Prompt = "/"
	search.Placeholder = "search"
	search.CharLimit = 64
	return &taskListView{
		state:    state,
		search:   search,
		selected: make(selection),
	}
}

func (v *taskListView) ID() ViewID    { return ViewTaskList }
func (v *taskListView) Title() string { return "Tasks" }

func (v *taskListView) ShortHelp() []key.Binding {
	return []key.Binding{
		keyBinding("enter", "open"),
		keyBinding("space", "select"),
		keyBinding("/", "search"),
		keyBinding("f", "filter status"),
		keyBinding("n", "new"),
		keyBinding("x", "delete selected"),
		keyBinding("r", "refresh"),
		keyBinding("esc", "back"),
	}
}

func (v *taskListView) Init() tea.Cmd {
	return v.load()
}

// load starts a fetch for the active store. The closure captures the
// repository and generation token, never the view, so a completion arriving
// after this view is gone carries no reference back to it.
func (v *taskListView) load() tea.Cmd {
	gen := v.sync.begin()
	repo := v.state.App.Tasks
	storeCode := v.state.StoreCode
	return func() tea.Msg {
		tasks, err := repo.FetchByStore(context.Background(), storeCode)
		return tasksLoadedMsg{gen: gen, tasks: tasks, err: err}
	}
}

// deleteSelected issues best-effort deletes for every identity. A failure
// does not stop later deletes; the first error is reported.
func (v *taskListView) deleteSelected(ids []string) tea.Cmd {
	repo := v.state.App.Tasks
	return func() tea.Msg {
		var firstErr error
		for _, id := range ids {
			if err := repo.Delete(context.Background(), id); err != nil && firstErr == nil {
				firstErr = err
			}
		}
		return tasksDeletedMsg{err: firstErr}
	}
}

func (v *taskListView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tasksLoadedMsg:
		if v.sync.apply(msg.gen, msg.tasks, msg.err) {
			pruneSelection(v.selected, v.sync.items, func(t *domain.Task) string { return t.ID })
			v.clampCursor()
		}
		return v, nil

	case tasksDeletedMsg:
		v.notice = ""
		if msg.err != nil {
			v.notice = msg.err.Error()
		}
		// Reconciling refresh: unconditional, so the displayed collection
		// always reflects a fresh fetch after a mutation.
		return v, v.load()

	case refreshViewsMsg:
		return v, v.load()

	case tea.KeyMsg:
		return v.handleKey(msg)
	}
	return v, nil
}

func (v *taskListView) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
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
	case " ":
		if v.cursor < len(visible) {
			v.selected.toggle(visible[v.cursor].ID)
		}
	case "enter":
		if v.cursor < len(visible) {
			return v, pushView(newTaskDetailView(v.state, visible[v.cursor]))
		}
	case "n":
		return v, pushView(newTaskFormView(v.state))
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

// visible is the filtered, sorted projection of the synchronized collection.
func (v *taskListView) visible() []*domain.Task {
	search := v.search.Value()
	rows := filterRows(v.sync.items, func(t *domain.Task) bool {
		return matchesSearch(search, t.Title, t.Detail) && matchesStatus(v.statusFilter, t.Status)
	})
	sortRows(rows, func(a, b *domain.Task) bool {
		switch {
		case a.DueDate == nil && b.DueDate == nil:
			return a.Title < b.Title
		case a.DueDate == nil:
			return false
		case b.DueDate == nil:
			return true
		case a.DueDate.Equal(*b.DueDate):
			return a.Title < b.Title
		default:
			return a.DueDate.Before(*b.DueDate)
		}
	})
	return rows
}

func (v *taskListView) clampCursor() {
	if n := len(v.visible()); v.cursor >= n {
		v.cursor = n - 1
	}
	if v.cursor < 0 {
		v.cursor = 0
	}
}

func (v *taskListView) View() string {
	var b strings.Builder

	if v.searching || v.search.Value() != "" {
		b.WriteString(v.search.View())
		b.WriteString("\n")
	}
	if v.statusFilter != nil {
		b.WriteString(styleDim.Render("filter: ") + statusStyle(*v.statusFilter).Render(string(*v.statusFilter)))
		b.WriteString("\n")
	}
	if v.notice != "" {
		b.WriteString(styleRed.Render(v.notice))
		b.WriteString("\n")
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
		b.WriteString(styleDim.Render("No tasks."))
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
		due := ""
		if t.DueDate != nil {
			due = styleDim.Render("due " + t.DueDate.Format("2006-01-02"))
		}
		group := ""
		if t.IsGroupTask {
			group = styleBlue.Render(" ⚑")
		}
		b.WriteString(fmt.Sprintf("%s%s %s %s%s %s\n",
			cursor, check,
			statusStyle(t.Status).Render(fmt.Sprintf("%-11s", t.Status)),
			styleFg.Render(t.Title), group, due))
	}
	b.WriteString("\n" + styleDim.Render(fmt.Sprintf("%d of %d shown · %d selected",
		len(visible), len(v.sync.items), len(v.selected))))
	return b.String()
}
