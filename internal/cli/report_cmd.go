package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"storedesk/internal/domain"
)

func newReportCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Manage store reports and KPI snapshots",
	}

	cmd.AddCommand(
		newReportListCmd(app),
		newReportRangeCmd(app),
		newReportAddCmd(app),
		newKPIAddCmd(app),
	)

	return cmd
}

// parseMetricFlags turns key=value pairs into a metric map.
func parseMetricFlags(pairs []string) (map[string]float64, error) {
	if len(pairs) == 0 {
		return nil, nil
	}
	metrics := make(map[string]float64, len(pairs))
	for _, pair := range pairs {
		parts := strings.SplitN(pair, "=", 2)
		if len(parts) != 2 {
			return nil, fmt.Errorf("invalid --metric format %q, expected name=value", pair)
		}
		v, err := strconv.ParseFloat(parts[1], 64)
		if err != nil {
			return nil, fmt.Errorf("invalid metric value in %q: %w", pair, err)
		}
		metrics[parts[0]] = v
	}
	return metrics, nil
}

func parseDay(s string) (time.Time, error) {
	d, err := time.ParseInLocation("2006-01-02", s, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: %w", s, err)
	}
	return d, nil
}

func newReportListCmd(app *App) *cobra.Command {
	var store string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List daily reports and KPI snapshots for a store",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			reports, err := app.Reports.FetchByStore(ctx, store)
			if err != nil {
				return err
			}
			kpis, err := app.KPIs.FetchByStore(ctx, store)
			if err != nil {
				return err
			}

			printReports(reports)
			printKPIs(kpis)
			return nil
		},
	}

	addStoreFlag(cmd.Flags(), &store, app.Config.StoreCode)

	return cmd
}

func newReportRangeCmd(app *App) *cobra.Command {
	var from, to string

	cmd := &cobra.Command{
		Use:   "range",
		Short: "List reports and KPI snapshots across all stores in a date range",
		RunE: func(cmd *cobra.Command, args []string) error {
			fromDate, err := parseDay(from)
			if err != nil {
				return err
			}
			toDate, err := parseDay(to)
			if err != nil {
				return err
			}

			ctx := context.Background()
			reports, err := app.Reports.FetchByDateRange(ctx, fromDate, toDate)
			if err != nil {
				return err
			}
			kpis, err := app.KPIs.FetchByDateRange(ctx, fromDate, toDate)
			if err != nil {
				return err
			}

			printReports(reports)
			printKPIs(kpis)
			return nil
		},
	}

	cmd.Flags().StringVar(&from, "from", "", "Range start (YYYY-MM-DD, inclusive)")
	cmd.Flags().StringVar(&to, "to", "", "Range end (YYYY-MM-DD, inclusive)")
	_ = cmd.MarkFlagRequired("from")
	_ = cmd.MarkFlagRequired("to")

	return cmd
}

func newReportAddCmd(app *App) *cobra.Command {
	var store, date string
	var sales float64
	var metricPairs []string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Record a daily store report",
		RunE: func(cmd *cobra.Command, args []string) error {
			day, err := parseDay(date)
			if err != nil {
				return err
			}
			metrics, err := parseMetricFlags(metricPairs)
			if err != nil {
				return err
			}

			r := &domain.StoreReport{
				StoreCode:  store,
				Date:       day,
				TotalSales: sales,
				Metrics:    metrics,
			}
			if err := app.Reports.Save(context.Background(), r); err != nil {
				return err
			}

			fmt.Printf("Recorded report for %s on %s\n", store, date)
			return nil
		},
	}

	addStoreFlag(cmd.Flags(), &store, app.Config.StoreCode)
	cmd.Flags().StringVar(&date, "date", "", "Report date (YYYY-MM-DD)")
	cmd.Flags().Float64Var(&sales, "sales", 0, "Total sales")
	cmd.Flags().StringArrayVar(&metricPairs, "metric", nil, "Additional metrics (name=value)")
	_ = cmd.MarkFlagRequired("date")

	return cmd
}

func newKPIAddCmd(app *App) *cobra.Command {
	var store, date string
	var metricPairs []string

	cmd := &cobra.Command{
		Use:   "add-kpi",
		Short: "Record a KPI snapshot",
		RunE: func(cmd *cobra.Command, args []string) error {
			day, err := parseDay(date)
			if err != nil {
				return err
			}
			metrics, err := parseMetricFlags(metricPairs)
			if err != nil {
				return err
			}

			k := &domain.KPISnapshot{
				StoreCode: store,
				Date:      day,
				Metrics:   metrics,
			}
			if err := app.KPIs.Save(context.Background(), k); err != nil {
				return err
			}

			fmt.Printf("Recorded KPI snapshot for %s on %s\n", store, date)
			return nil
		},
	}

	addStoreFlag(cmd.Flags(), &store, app.Config.StoreCode)
	cmd.Flags().StringVar(&date, "date", "", "Snapshot date (YYYY-MM-DD)")
	cmd.Flags().StringArrayVar(&metricPairs, "metric", nil, "Metrics (name=value)")
	_ = cmd.MarkFlagRequired("date")

	return cmd
}

func printReports(reports []*domain.StoreReport) {
	if len(reports) == 0 {
		fmt.Println("No reports found.")
		return
	}
	rows := make([][]string, 0, len(reports))
	for _, r := range reports {
		rows = append(rows, []string{
			r.Date.Format("2006-01-02"),
			r.StoreCode,
			fmt.Sprintf("%.2f", r.TotalSales),
			metricSummary(r.Metrics),
		})
	}
	fmt.Println(renderTable([]string{"DATE", "STORE", "SALES", "METRICS"}, rows))
}

func printKPIs(kpis []*domain.KPISnapshot) {
	if len(kpis) == 0 {
		fmt.Println("No KPI snapshots found.")
		return
	}
	rows := make([][]string, 0, len(kpis))
	for _, k := range kpis {
		rows = append(rows, []string{
			k.Date.Format("2006-01-02"),
			k.StoreCode,
			metricSummary(k.Metrics),
		})
	}
	fmt.Println(renderTable([]string{"DATE", "STORE", "METRICS"}, rows))
}
