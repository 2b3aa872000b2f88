package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"storedesk/internal/domain"
)

// taskSavedMsg signals that a task mutation has been persisted (or not).
type taskSavedMsg struct {
	err error
}

// taskDetailView shows one task and offers status, completion, and
// acknowledgment mutations. Mutations save a rebuilt value and broadcast a
// reconciling refresh; the view itself pops so stale detail is never shown.
type taskDetailView struct {
	state *SharedState
	task  *domain.Task
	err   error
}

func newTaskDetailView(state *SharedState, task *domain.Task) *taskDetailView {
	return &taskDetailView{state: state, task: task}
}

func (v *taskDetailView) ID() ViewID    { return ViewTaskDetail }
func (v *taskDetailView) Title() string { return v.task.Title }

func (v *taskDetailView) ShortHelp() []key.Binding {
	return []key.Binding{
		keyBinding("s", "cycle status"),
		keyBinding("space", "toggle done"),
		keyBinding("a", "acknowledge"),
		keyBinding("esc", "back"),
	}
}

func (v *taskDetailView) Init() tea.Cmd { return nil }

func (v *taskDetailView) save(t *domain.Task) tea.Cmd {
	repo := v.state.App.Tasks
	return func() tea.Msg {
		return taskSavedMsg{err: repo.Save(context.Background(), t)}
	}
}

func (v *taskDetailView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case taskSavedMsg:
		if msg.err != nil {
			v.err = msg.err
			return v, nil
		}
		return v, tea.Batch(popView(), refreshViews())

	case tea.KeyMsg:
		switch msg.String() {
		case "q":
			return v, tea.Quit
		case "esc":
			return v, popView()
		case "s":
			next := *v.task
			next.Status = v.task.Status.Next()
			return v, v.save(&next)
		case " ":
			next := *v.task
			next.CompletedBy = toggleRef(v.task.CompletedBy, v.state.UserRef)
			if !v.task.IsGroupTask {
				if len(next.CompletedBy) > 0 {
					next.Status = domain.StatusClosed
				} else {
					next.Status = domain.StatusOpen
				}
			}
			return v, v.save(&next)
		case "a":
			if v.task.RequiresAck {
				next := *v.task
				next.AcknowledgedBy = appendRef(v.task.AcknowledgedBy, v.state.UserRef)
				return v, v.save(&next)
			}
		}
	}
	return v, nil
}

func (v *taskDetailView) View() string {
	t := v.task
	var b strings.Builder

	b.WriteString(styleBold.Render(t.Title) + "\n")
	b.WriteString(statusStyle(t.Status).Render(string(t.Status)) + "\n\n")

	if t.Detail != "" {
		b.WriteString(styleFg.Render(t.Detail) + "\n\n")
	}

	row := func(label, value string) {
		if value != "" {
			b.WriteString(styleDim.Render(fmt.Sprintf("%-14s", label)) + styleFg.Render(value) + "\n")
		}
	}
	if t.DueDate != nil {
		row("Due", t.DueDate.Format("2006-01-02"))
	}
	row("Stores", strings.Join(t.Stores, ", "))
	row("Departments", strings.Join(t.Departments, ", "))
	row("Assigned", strings.Join(t.AssignedTo, ", "))
	row("Completed by", strings.Join(t.CompletedBy, ", "))
	row("Created by", t.CreatedBy)
	row("Created", t.CreatedAt.Format("2006-01-02 15:04"))
	if t.IsGroupTask {
		row("Group task", "yes")
	}
	if t.RequiresAck {
		ack := "pending"
		for _, u := range t.AcknowledgedBy {
			if u == v.state.UserRef {
				ack = "acknowledged"
			}
		}
		row("Ack", ack+" ("+strings.Join(t.AcknowledgedBy, ", ")+")")
	}

	if v.err != nil {
		b.WriteString("\n" + styleRed.Render("Error: "+v.err.Error()))
	}
	return b.String()
}

// toggleRef adds the reference if absent, removes it if present.
func toggleRef(refs []string, ref string) []string {
	out := make([]string, 0, len(refs)+1)
	found := false
	for _, r := range refs {
		if r == ref {
			found = true
			continue
		}
		out = append(out, r)
	}
	if !found {
		out = append(out, ref)
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

// appendRef adds the reference once.
func appendRef(refs []string, ref string) []string {
	for _, r := range refs {
		if r == ref {
			return refs
		}
	}
	return append(append([]string(nil), refs...), ref)
}
