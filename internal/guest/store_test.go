package guest

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clauseguard/clauseguard/internal/common"
	"github.com/clauseguard/clauseguard/internal/kvstore"
	"github.com/clauseguard/clauseguard/internal/logging"
	"github.com/clauseguard/clauseguard/internal/models"
)

func setupStore(t *testing.T) (*Store, kvstore.Store) {
	t.Helper()
	kv, err := kvstore.NewBadgerStore(kvstore.InMemoryConfig())
	require.NoError(t, err)
	t.Cleanup(func() { _ = kv.Close() })
	return NewStore(kv, logging.Nop()), kv
}

func TestList_EmptyStore(t *testing.T) {
	s, _ := setupStore(t)

	list, err := s.List(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, list)
	assert.Empty(t, list)
}

func TestSave_ListNewestFirst(t *testing.T) {
	s, _ := setupStore(t)
	ctx := context.Background()

	s1, err := s.Save(ctx, models.AnalysisResult{Summary: "first"}, "doc one", models.SourcePaste)
	require.NoError(t, err)
	s2, err := s.Save(ctx, models.AnalysisResult{Summary: "second"}, "doc two", models.SourceScan)
	require.NoError(t, err)

	list, err := s.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, s2.ID, list[0].ID, "most recent first")
	assert.Equal(t, s1.ID, list[1].ID)
}

func TestSave_GetByIDReturnsExactRecord(t *testing.T) {
	s, _ := setupStore(t)
	ctx := context.Background()

	raw := models.AnalysisResult{
		Summary:      "employment contract",
		DocumentType: "employment",
		Parties:      []string{"ACME", "J. Doe"},
		Amount:       "5400 EUR",
		Payments:     "monthly",
		KeyDates:     []string{"2026-01-01"},
		Score:        61,
		RedFlags:     []models.RedFlag{{Title: "non-compete", Type: models.RedFlagWarning}},
		Guidance:     []models.GuidanceItem{{Text: "negotiate notice period", Severity: models.SeverityHigh}},
	}

	sum, err := s.Save(ctx, raw, "full text", models.SourceUpload)
	require.NoError(t, err)

	got, err := s.GetByID(ctx, sum.ID)
	require.NoError(t, err)

	assert.Equal(t, sum.ID, got.ID)
	assert.Equal(t, "full text", got.DocumentText)
	assert.Equal(t, models.SourceUpload, got.Source)
	assert.Equal(t, 61, got.Score)
	if diff := cmp.Diff(raw.Parties, got.Parties); diff != "" {
		t.Errorf("parties mismatch (-want +got):\n%s", diff)
	}
	require.Len(t, got.RedFlags, 1)
	assert.Equal(t, "non-compete", got.RedFlags[0].Title)
}

func TestGetByID_Missing(t *testing.T) {
	s, _ := setupStore(t)

	_, err := s.GetByID(context.Background(), "nope")
	assert.ErrorIs(t, err, common.ErrNotFound)
}

func TestSave_CoercesScoreAndNilRedFlags(t *testing.T) {
	s, _ := setupStore(t)
	ctx := context.Background()

	sum, err := s.Save(ctx, models.AnalysisResult{Score: 150, RedFlags: nil}, "text", models.SourcePaste)
	require.NoError(t, err)
	assert.Equal(t, 100, sum.Score)

	got, err := s.GetByID(ctx, sum.ID)
	require.NoError(t, err)
	assert.Equal(t, 100, got.Score)
	assert.NotNil(t, got.RedFlags)
	assert.Empty(t, got.RedFlags)
}

func TestDelete_RemovesFromBothIndexes(t *testing.T) {
	s, _ := setupStore(t)
	ctx := context.Background()

	s1, err := s.Save(ctx, models.AnalysisResult{Summary: "a1"}, "text one", models.SourcePaste)
	require.NoError(t, err)
	s2, err := s.Save(ctx, models.AnalysisResult{Summary: "a2"}, "text two", models.SourcePaste)
	require.NoError(t, err)

	require.NoError(t, s.Delete(ctx, s1.ID))

	list, err := s.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, s2.ID, list[0].ID)

	_, err = s.GetByID(ctx, s1.ID)
	assert.ErrorIs(t, err, common.ErrNotFound)

	// the surviving record is intact
	got, err := s.GetByID(ctx, s2.ID)
	require.NoError(t, err)
	assert.Equal(t, "a2", got.Summary)
}

func TestDelete_AbsentIsNoOp(t *testing.T) {
	s, _ := setupStore(t)
	require.NoError(t, s.Delete(context.Background(), "missing"))
	require.NoError(t, s.Delete(context.Background(), ""))
}

func TestCorruptDocument_BehavesAsEmpty(t *testing.T) {
	s, kv := setupStore(t)
	ctx := context.Background()

	require.NoError(t, kv.Set(ctx, kvstore.KeyGuestAnalyses, []byte("### not json ###")))

	list, err := s.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)

	// the store recovers: a save replaces the corrupt document
	sum, err := s.Save(ctx, models.AnalysisResult{}, "text", models.SourcePaste)
	require.NoError(t, err)

	list, err = s.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, sum.ID, list[0].ID)
}

func TestMigrateToRemote_ContinuesPastFailures(t *testing.T) {
	s, _ := setupStore(t)
	ctx := context.Background()

	s1, err := s.Save(ctx, models.AnalysisResult{Summary: "fails"}, "text one", models.SourcePaste)
	require.NoError(t, err)
	s2, err := s.Save(ctx, models.AnalysisResult{Summary: "succeeds"}, "text two", models.SourceScan)
	require.NoError(t, err)

	var saved []string
	save := func(ctx context.Context, userID, documentText string, source models.Source, a models.GuestAnalysis) error {
		if documentText == "text one" {
			return errors.New("remote unavailable")
		}
		saved = append(saved, documentText)
		assert.Equal(t, "user-42", userID)
		assert.Empty(t, a.ID, "local id stripped from the remote payload")
		return nil
	}

	report, err := s.MigrateToRemote(ctx, "user-42", save)
	require.NoError(t, err, "item failures never surface as an error")
	assert.Equal(t, 1, report.Migrated)
	assert.Equal(t, 1, report.Failed)
	assert.Equal(t, []string{"text two"}, saved)

	// local data survives migration
	list, err := s.List(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 2)
	_, err = s.GetByID(ctx, s1.ID)
	assert.NoError(t, err)
	_, err = s.GetByID(ctx, s2.ID)
	assert.NoError(t, err)
}

func TestMigrateToRemote_SkipsEmptyDocumentText(t *testing.T) {
	s, _ := setupStore(t)
	ctx := context.Background()

	_, err := s.Save(ctx, models.AnalysisResult{Summary: "no text"}, "   ", models.SourcePaste)
	require.NoError(t, err)
	_, err = s.Save(ctx, models.AnalysisResult{Summary: "with text"}, "real text", models.SourcePaste)
	require.NoError(t, err)

	var calls int
	save := func(ctx context.Context, userID, documentText string, source models.Source, a models.GuestAnalysis) error {
		calls++
		return nil
	}

	report, err := s.MigrateToRemote(ctx, "user-1", save)
	require.NoError(t, err)
	assert.Equal(t, 1, calls)
	assert.Equal(t, 1, report.Migrated)
	assert.Equal(t, 1, report.Skipped)
	assert.Equal(t, 0, report.Failed)
}

func TestMigrateToRemote_MissingUserIDIsNoOp(t *testing.T) {
	s, _ := setupStore(t)
	ctx := context.Background()

	_, err := s.Save(ctx, models.AnalysisResult{}, "text", models.SourcePaste)
	require.NoError(t, err)

	var calls int
	save := func(ctx context.Context, userID, documentText string, source models.Source, a models.GuestAnalysis) error {
		calls++
		return nil
	}

	report, err := s.MigrateToRemote(ctx, "", save)
	require.NoError(t, err)
	assert.Zero(t, calls)
	assert.Zero(t, report.Migrated)

	report, err = s.MigrateToRemote(ctx, "user-1", nil)
	require.NoError(t, err)
	assert.Zero(t, report.Migrated)
}

func TestMigrateToRemote_RunTwiceReSavesEverything(t *testing.T) {
	s, _ := setupStore(t)
	ctx := context.Background()

	_, err := s.Save(ctx, models.AnalysisResult{}, "text", models.SourcePaste)
	require.NoError(t, err)

	var calls int
	save := func(ctx context.Context, userID, documentText string, source models.Source, a models.GuestAnalysis) error {
		calls++
		return nil
	}

	_, err = s.MigrateToRemote(ctx, "u", save)
	require.NoError(t, err)
	_, err = s.MigrateToRemote(ctx, "u", save)
	require.NoError(t, err)
	assert.Equal(t, 2, calls, "no idempotency guard; the remote upsert absorbs repeats")
}
