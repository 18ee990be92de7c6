package main

import (
	"bytes"
	"math"
	"strings"
	"testing"
	"time"

	"github.com/j-veylop/namespace-activity-tui/internal/config"
	"github.com/j-veylop/namespace-activity-tui/internal/models"
)

func TestPrintReport(t *testing.T) {
	r := &models.Report{
		Source: "file:activity.csv",
		Protocols: []models.ProtocolSummary{
			{Namespace: "nft", TotalTxs: 1500, TotalUsers: 3, DaysActive: 1, AvgDailyUsers: 3, TxPerUser: 500, TxConcentration: 500},
			{Namespace: "idle", TotalTxs: 4, TxPerUser: math.NaN(), TxConcentration: math.NaN()},
		},
		Daily: []models.DailySummary{
			{Date: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), Label: "2024-01-01", TotalTxs: 1504, TotalUsers: 3, AvgTxPerUser: 1504.0 / 3, ProtocolsCount: 2},
		},
		Engagement:                  models.EngagementStats{TotalProtocols: 2, HighConcentration: 1, HealthyEngagement: 1},
		HighConcentrationNamespaces: []string{"nft"},
		RecordCount:                 2,
		UndatedRecords:              0,
	}

	var buf bytes.Buffer
	if err := printReport(&buf, r, &config.Config{EngagementThreshold: 100}); err != nil {
		t.Fatalf("printReport: %v", err)
	}
	out := buf.String()

	for _, want := range []string{
		"Source: file:activity.csv",
		"Records: 2",
		"Namespace", "Tx/User/Day",
		"1,500", "500.00", "—",
		"2024-01-01", "501.33",
		"tx/user > 100.00",
		"high concentration: 1 (50.0%)",
		"1. nft",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output should contain %q:\n%s", want, out)
		}
	}
	if n := strings.Count(out, ". nft"); n != 1 {
		t.Errorf("nft listed %d times, want once", n)
	}
}
