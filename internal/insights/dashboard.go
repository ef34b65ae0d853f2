package insights

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/pennywise-app/pennywise/internal/model"
	"github.com/pennywise-app/pennywise/internal/service"
)

// Service assembles the dashboard payload from transaction history.
type Service struct {
	storage       service.Storage
	logger        *slog.Logger
	baselineCents int64
}

// NewService creates a dashboard service. baselineCents is the reference
// monthly spend used by the budget-alert insight.
func NewService(storage service.Storage, baselineCents int64, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		storage:       storage,
		baselineCents: baselineCents,
		logger:        logger,
	}
}

// BuildDashboard computes the full dashboard for a user as of now. The
// three historical reads (current month, previous month, trailing three
// months) have no ordering dependency and are issued concurrently; insight
// generation runs only after all three complete.
func (s *Service) BuildDashboard(ctx context.Context, userID string, now time.Time) (*model.DashboardInsights, error) {
	currentStart := startOfMonth(now)
	currentEnd := endOfMonth(now)
	previousStart := startOfMonth(currentStart.AddDate(0, -1, 0))
	previousEnd := endOfMonth(previousStart)
	historyStart := startOfMonth(currentStart.AddDate(0, -historicalMonths, 0))
	historyEnd := currentStart.Add(-time.Nanosecond)

	var current, previous, historical []model.Transaction

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		current, err = s.storage.GetTransactionsByDateRange(gctx, userID, currentStart, currentEnd)
		return err
	})
	g.Go(func() error {
		var err error
		previous, err = s.storage.GetTransactionsByDateRange(gctx, userID, previousStart, previousEnd)
		return err
	})
	g.Go(func() error {
		var err error
		historical, err = s.storage.GetTransactionsByDateRange(gctx, userID, historyStart, historyEnd)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("failed to load dashboard history: %w", err)
	}

	currentSummary := Aggregate(current)
	previousSummary := Aggregate(previous)
	previousSummary.Categories = []model.CategorySpending{} // previous period reports totals only

	comparison := Compare(
		currentSummary.TotalSpentCents, previousSummary.TotalSpentCents,
		currentSummary.TransactionCount, previousSummary.TransactionCount,
	)

	// The payload always carries arrays, never null: quiet months and
	// cold starts serialize as [].
	anomalies := DetectAnomalies(current, historical)
	if anomalies == nil {
		anomalies = []model.Anomaly{}
	}

	generated := GenerateInsights(
		currentSummary.TotalSpentCents,
		previousSummary.TotalSpentCents,
		currentSummary.Categories,
		comparison.SpendingChangePercent,
		comparison.TransactionChangePercent,
		s.baselineCents,
	)
	if generated == nil {
		generated = []model.Insight{}
	}

	s.logger.Debug("built dashboard",
		"user_id", userID,
		"current_transactions", currentSummary.TransactionCount,
		"anomalies", len(anomalies),
		"insights", len(generated))

	return &model.DashboardInsights{
		CurrentMonth:  currentSummary,
		PreviousMonth: previousSummary,
		Comparison:    comparison,
		Anomalies:     anomalies,
		Insights:      generated,
	}, nil
}

func startOfMonth(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
}

func endOfMonth(t time.Time) time.Time {
	return startOfMonth(t).AddDate(0, 1, 0).Add(-time.Nanosecond)
}
