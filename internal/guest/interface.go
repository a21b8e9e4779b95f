// Package guest stores analyses produced before the user has an account.
// Records live only on this device, in a single compound document holding
// both an ordered summary list and an id index, and can later be migrated
// into the authenticated remote store without being deleted locally.
package guest

import (
	"context"

	"github.com/clauseguard/clauseguard/internal/models"
)

// SaveFn is the remote save capability handed to migration. It is expected
// to upsert on the remote side and tolerate being called more than once for
// the same logical analysis.
type SaveFn func(ctx context.Context, userID, documentText string, source models.Source, analysis models.GuestAnalysis) error

// MigrationReport counts the outcome of one migration run. Item failures
// are reported here, never as an error.
type MigrationReport struct {
	Migrated int
	Failed   int
	Skipped  int
}

// Repository describes the guest analysis store.
type Repository interface {
	// List returns summaries sorted by creation time descending.
	List(ctx context.Context) ([]models.GuestAnalysisSummary, error)

	// GetByID returns the full record, or common.ErrNotFound.
	GetByID(ctx context.Context, id string) (*models.GuestAnalysis, error)

	// Save validates and stores a new analysis, returning its summary.
	Save(ctx context.Context, raw models.AnalysisResult, documentText string, source models.Source) (*models.GuestAnalysisSummary, error)

	// Delete removes an analysis from both indexes. Absent ids are a no-op.
	Delete(ctx context.Context, id string) error

	// MigrateToRemote saves every guest analysis with non-empty document
	// text to the remote store under userID. Sequential: one item at a
	// time, each failure logged and counted but never aborting the rest.
	// Local data is kept afterwards.
	MigrateToRemote(ctx context.Context, userID string, save SaveFn) (MigrationReport, error)
}
