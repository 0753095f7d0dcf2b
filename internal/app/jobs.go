/**
 * @description
 * Scheduled job implementations for the library-service.
 */
package app

import (
	"context"
	"log/slog"
)

// Jobs contains the logic for all scheduled tasks.
type Jobs struct {
	repo   Repository
	logger *slog.Logger
}

// NewJobs creates a new Jobs runner.
func NewJobs(repo Repository, logger *slog.Logger) *Jobs {
	return &Jobs{repo: repo, logger: logger}
}

// ReportCirculation logs how much of the catalog is currently on loan.
func (j *Jobs) ReportCirculation() {
	stats, err := j.repo.Stats(context.Background())
	if err != nil {
		j.logger.Error("failed to collect circulation stats", "error", err)
		return
	}

	j.logger.Info("circulation report",
		"books", stats.Books,
		"books_on_loan", stats.BooksOnLoan,
		"books_available", stats.Books-stats.BooksOnLoan,
		"users", stats.Users,
		"history_entries", stats.HistoryEntries,
	)
}
