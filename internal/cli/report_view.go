package cli

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"storedesk/internal/domain"
)

// reportsLoadedMsg carries one combined fetch of KPI snapshots and store
// reports. err is the first failure of the two fetches.
type reportsLoadedMsg struct {
	gen     int
	kpis    []*domain.KPISnapshot
	reports []*domain.StoreReport
	err     error
}

// reportView shows KPI snapshots and daily store reports side by side for the
// active store.
type reportView struct {
	state *SharedState

	gen     int
	loading bool
	err     error
	kpis    []*domain.KPISnapshot
	reports []*domain.StoreReport
}

func newReportView(state *SharedState) *reportView {
	return &reportView{state: state}
}

func (v *reportView) ID() ViewID    { return ViewReports }
func (v *reportView) Title() string { return "Reports" }

func (v *reportView) ShortHelp() []key.Binding {
	return []key.Binding{
		keyBinding("r", "refresh"),
		keyBinding("esc", "back"),
	}
}

func (v *reportView) Init() tea.Cmd {
	return v.load()
}

func (v *reportView) load() tea.Cmd {
	v.gen++
	v.loading = true
	gen := v.gen
	kpiRepo := v.state.App.KPIs
	reportRepo := v.state.App.Reports
	storeCode := v.state.StoreCode
	return func() tea.Msg {
		ctx := context.Background()
		kpis, err := kpiRepo.FetchByStore(ctx, storeCode)
		reports, rerr := reportRepo.FetchByStore(ctx, storeCode)
		if err == nil {
			err = rerr
		}
		return reportsLoadedMsg{gen: gen, kpis: kpis, reports: reports, err: err}
	}
}

func (v *reportView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case reportsLoadedMsg:
		if msg.gen != v.gen {
			return v, nil
		}
		v.loading = false
		v.err = msg.err
		if msg.err != nil {
			v.kpis = nil
			v.reports = nil
			return v, nil
		}
		v.kpis = msg.kpis
		v.reports = msg.reports
		sort.SliceStable(v.kpis, func(i, j int) bool { return v.kpis[i].Date.After(v.kpis[j].Date) })
		sort.SliceStable(v.reports, func(i, j int) bool { return v.reports[i].Date.After(v.reports[j].Date) })
		return v, nil

	case refreshViewsMsg:
		return v, v.load()

	case tea.KeyMsg:
		switch msg.String() {
		case "q":
			return v, tea.Quit
		case "esc":
			return v, popView()
		case "r":
			return v, v.load()
		}
	}
	return v, nil
}

func (v *reportView) View() string {
	if v.loading {
		return styleDim.Render("Loading…")
	}
	if v.err != nil {
		return styleRed.Render("Error: "+v.err.Error()) + "\n" +
			styleDim.Render("press r to retry")
	}

	var b strings.Builder

	b.WriteString(styleHeader.Render("Daily Reports") + "\n")
	if len(v.reports) == 0 {
		b.WriteString(styleDim.Render("No reports.") + "\n")
	} else {
		rows := make([][]string, 0, len(v.reports))
		for _, r := range v.reports {
			rows = append(rows, []string{
				r.Date.Format("2006-01-02"),
				styleGreen.Render(fmt.Sprintf("%.2f", r.TotalSales)),
				styleDim.Render(metricSummary(r.Metrics)),
			})
		}
		b.WriteString(renderTable([]string{"DATE", "SALES", "METRICS"}, rows))
	}

	b.WriteString("\n" + styleHeader.Render("KPI Snapshots") + "\n")
	if len(v.kpis) == 0 {
		b.WriteString(styleDim.Render("No KPI snapshots."))
	} else {
		rows := make([][]string, 0, len(v.kpis))
		for _, k := range v.kpis {
			rows = append(rows, []string{
				k.Date.Format("2006-01-02"),
				styleFg.Render(metricSummary(k.Metrics)),
			})
		}
		b.WriteString(renderTable([]string{"DATE", "METRICS"}, rows))
	}

	return b.String()
}

// metricSummary renders a metric map as "name=value" pairs in key order.
func metricSummary(metrics map[string]float64) string {
	if len(metrics) == 0 {
		return "-"
	}
	names := make([]string, 0, len(metrics))
	for name := range metrics {
		names = append(names, name)
	}
	sort.Strings(names)
	parts := make([]string, 0, len(names))
	for _, name := range names {
		parts = append(parts, fmt.Sprintf("%s=%.2f", name, metrics[name]))
	}
	return strings.Join(parts, " ")
}
