package main

import (
	"fmt"
	"io"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/j-veylop/namespace-activity-tui/internal/config"
	"github.com/j-veylop/namespace-activity-tui/internal/models"
	"github.com/j-veylop/namespace-activity-tui/internal/ui/components"
)

// printReport writes a plain-text rendition of the three report views.
func printReport(w io.Writer, r *models.Report, cfg *config.Config) error {
	protocolRows := make([][]string, 0, len(r.Protocols))
	for _, p := range r.Protocols {
		protocolRows = append(protocolRows, []string{
			p.Namespace,
			components.FormatCount(p.TotalTxs),
			components.FormatCount(p.TotalUsers),
			strconv.Itoa(p.DaysActive),
			components.FormatRatio(p.AvgDailyUsers),
			components.FormatRatio(p.TxPerUser),
			components.FormatRatio(p.TxConcentration),
		})
	}

	dailyRows := make([][]string, 0, len(r.Daily))
	for _, d := range r.Daily {
		dailyRows = append(dailyRows, []string{
			d.Label,
			components.FormatCount(d.TotalTxs),
			components.FormatCount(d.TotalUsers),
			components.FormatRatio(d.AvgTxPerUser),
			strconv.Itoa(d.ProtocolsCount),
		})
	}

	e := r.Engagement
	threshold := components.FormatRatio(cfg.EngagementThreshold)

	_, err := fmt.Fprintf(w, "Source: %s\nRecords: %d (skipped rows %d, coerced fields %d, undated %d)\n\n"+
		"Protocols\n%s\n\nDaily activity\n%s\n\n"+
		"Engagement (high concentration: tx/user > %s)\n"+
		"  protocols:          %d\n  high concentration: %d (%s)\n  healthy engagement: %d\n",
		r.Source, r.RecordCount, r.SkippedRows, r.CoercedFields, r.UndatedRecords,
		renderTable(protocolRows, "Namespace", "Total Txs", "Total Users", "Days", "Users/Day", "Tx/User", "Tx/User/Day"),
		renderTable(dailyRows, "Date", "Txs", "Users", "Tx/User", "Protocols"),
		threshold,
		e.TotalProtocols, e.HighConcentration, components.FormatPercent(e.HighConcentrationShare()), e.HealthyEngagement,
	)
	if err != nil {
		return err
	}

	for i, name := range r.HighConcentrationNamespaces {
		if _, err := fmt.Fprintf(w, "  %3d. %s\n", i+1, name); err != nil {
			return err
		}
	}
	return nil
}

func renderTable(rows [][]string, headers ...string) string {
	return table.New().
		Border(lipgloss.NormalBorder()).
		Headers(headers...).
		Rows(rows...).
		String()
}
