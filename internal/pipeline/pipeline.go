// Package pipeline turns a fetched activity table into a Report.
package pipeline

import (
	"bytes"
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/j-veylop/namespace-activity-tui/internal/analytics"
	"github.com/j-veylop/namespace-activity-tui/internal/logger"
	"github.com/j-veylop/namespace-activity-tui/internal/models"
	"github.com/j-veylop/namespace-activity-tui/internal/source"
	"github.com/j-veylop/namespace-activity-tui/internal/table"
)

// Compute parses data and aggregates it into a Report labelled with name.
// Parse failures are returned as a *models.LoadError of kind ErrorKindParse.
// The result depends only on data and cls.
func Compute(ctx context.Context, name string, data []byte, cls analytics.Classifier) (*models.Report, error) {
	tbl, err := table.Parse(bytes.NewReader(data))
	if err != nil {
		return nil, models.NewParseError(name, err)
	}
	set, err := table.Records(tbl)
	if err != nil {
		return nil, models.NewParseError(name, err)
	}

	var (
		protocols []models.ProtocolSummary
		daily     []models.DailySummary
		undated   int
	)

	// The two aggregators only read the record slice.
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		protocols = analytics.AggregateProtocols(set.Records)
		return gctx.Err()
	})
	g.Go(func() error {
		daily, undated = analytics.AggregateDaily(set.Records)
		return gctx.Err()
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	report := &models.Report{
		Source:                      name,
		Protocols:                   protocols,
		Daily:                       daily,
		Engagement:                  cls.Classify(protocols),
		HighConcentrationNamespaces: cls.HighConcentration(protocols),
		RecordCount:                 len(set.Records),
		SkippedRows:                 tbl.SkippedRows,
		CoercedFields:               set.CoercedFields,
		UndatedRecords:              undated,
	}

	logger.Debug("computed report",
		"source", name,
		"records", report.RecordCount,
		"skipped_rows", report.SkippedRows,
		"ragged_rows", tbl.RaggedRows,
		"coerced_fields", report.CoercedFields,
		"undated", report.UndatedRecords,
	)
	return report, nil
}

// Run fetches the table from src, bounded by timeout when it is positive, and
// computes its Report. Fetch failures are returned as a *models.LoadError of
// kind ErrorKindFetch.
func Run(ctx context.Context, src source.Source, cls analytics.Classifier, timeout time.Duration) (*models.Report, error) {
	fetchCtx := ctx
	if timeout > 0 {
		var cancel context.CancelFunc
		fetchCtx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	data, err := src.Fetch(fetchCtx)
	if err != nil {
		return nil, models.NewFetchError(src.Describe(), err)
	}

	return Compute(ctx, src.Describe(), data, cls)
}
