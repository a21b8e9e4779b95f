package guest

import (
	"context"
	"strings"
)

// MigrateToRemote pushes every guest analysis with non-empty document text
// to the remote store under userID, one item at a time. A failing item is
// logged and counted, then migration moves on; it never aborts the run.
// Local records are intentionally kept afterwards, both for continuity and
// so a later sign-in can re-attempt items that failed.
//
// There is no idempotency guard here: the remote save is expected to upsert,
// so re-running migration overwrites rather than duplicates.
func (s *Store) MigrateToRemote(ctx context.Context, userID string, save SaveFn) (MigrationReport, error) {
	var report MigrationReport

	if userID == "" || save == nil {
		s.log.Warn(ctx, "guest migration skipped", "reason", "missing user id or save capability")
		return report, nil
	}

	// Snapshot under the lock, then migrate without holding it so slow
	// remote calls do not block local reads and writes.
	s.mu.Lock()
	doc, err := s.load(ctx)
	s.mu.Unlock()
	if err != nil {
		return report, err
	}

	for _, sum := range doc.List {
		analysis, ok := doc.ByID[sum.ID]
		if !ok {
			continue
		}
		if strings.TrimSpace(analysis.DocumentText) == "" {
			report.Skipped++
			continue
		}

		payload := analysis
		payload.ID = "" // local-only id, not part of the remote record
		if err := save(ctx, userID, analysis.DocumentText, analysis.Source, payload); err != nil {
			s.log.Error(ctx, "guest analysis migration failed",
				"analysisID", analysis.ID, "userID", userID, "error", err)
			report.Failed++
			continue
		}
		report.Migrated++
	}

	s.log.Info(ctx, "guest migration finished",
		"migrated", report.Migrated, "failed", report.Failed, "skipped", report.Skipped)
	return report, nil
}
