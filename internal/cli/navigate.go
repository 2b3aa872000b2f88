package cli

import tea "github.com/charmbracelet/bubbletea"

// Navigation messages used by views to request view transitions.
// The appModel handles these in its Update method.

// pushViewMsg pushes a new view onto the navigation stack.
type pushViewMsg struct {
	view View
}

// popViewMsg pops the current view off the navigation stack,
// returning to the previous view.
type popViewMsg struct{}

// refreshViewsMsg asks every view on the stack to re-fetch its collection.
// It is broadcast after any mutation so displayed state is reconciled with
// remote truth, regardless of which view issued the write.
type refreshViewsMsg struct{}

// pushView returns a tea.Cmd that pushes a view onto the stack.
func pushView(v View) tea.Cmd {
	return func() tea.Msg { return pushViewMsg{view: v} }
}

// popView returns a tea.Cmd that pops the current view.
func popView() tea.Cmd {
	return func() tea.Msg { return popViewMsg{} }
}

// refreshViews returns a tea.Cmd that broadcasts a reconciling refresh.
func refreshViews() tea.Cmd {
	return func() tea.Msg { return refreshViewsMsg{} }
}
