// Package remote implements the save capability consumed by guest-analysis
// migration. The managed backend exposes a PostgREST surface; analyses are
// upserted into a single table keyed by (user_id, content_hash), so calling
// the saver twice for the same document overwrites instead of duplicating.
package remote

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"

	"github.com/cenkalti/backoff/v4"
	"github.com/supabase-community/supabase-go"

	"github.com/clauseguard/clauseguard/internal/guest"
	"github.com/clauseguard/clauseguard/internal/logging"
	"github.com/clauseguard/clauseguard/internal/models"
)

const defaultTable = "analyses"

// Config holds the connection settings for the managed backend.
type Config struct {
	// URL is the project base URL, e.g. https://xyz.supabase.co.
	URL string

	// APIKey is the anon or service key used for PostgREST requests.
	APIKey string

	// Table overrides the destination table. Defaults to "analyses".
	Table string

	// MaxRetries bounds the retry attempts per save. Defaults to 3.
	MaxRetries uint64
}

// Saver upserts migrated analyses into the remote store.
type Saver struct {
	client     *supabase.Client
	log        logging.Logger
	table      string
	maxRetries uint64
	newBackOff func() backoff.BackOff // overridable in tests
}

func NewSaver(cfg Config, log logging.Logger) (*Saver, error) {
	if cfg.URL == "" {
		return nil, errors.New("remote: backend URL is required")
	}
	if cfg.APIKey == "" {
		return nil, errors.New("remote: API key is required")
	}
	if cfg.Table == "" {
		cfg.Table = defaultTable
	}
	if cfg.MaxRetries == 0 {
		cfg.MaxRetries = 3
	}
	if log == nil {
		log = logging.Nop()
	}

	client, err := supabase.NewClient(cfg.URL, cfg.APIKey, nil)
	if err != nil {
		return nil, fmt.Errorf("remote: create client: %w", err)
	}

	return &Saver{
		client:     client,
		log:        log,
		table:      cfg.Table,
		maxRetries: cfg.MaxRetries,
		newBackOff: func() backoff.BackOff { return backoff.NewExponentialBackOff() },
	}, nil
}

// analysisRow is the remote record shape. Local-only ids (the analysis id
// and per-item ids) are not part of it.
type analysisRow struct {
	UserID       string        `json:"user_id"`
	ContentHash  string        `json:"content_hash"`
	DocumentText string        `json:"document_text"`
	Source       string        `json:"source"`
	Summary      string        `json:"summary"`
	DocumentType string        `json:"document_type"`
	Parties      []string      `json:"parties"`
	Amount       string        `json:"amount"`
	Payments     string        `json:"payments"`
	KeyDates     []string      `json:"key_dates"`
	Score        int           `json:"score"`
	RedFlags     []redFlagRow  `json:"red_flags"`
	Guidance     []guidanceRow `json:"guidance"`
}

type redFlagRow struct {
	Type      string `json:"type"`
	Section   string `json:"section"`
	Title     string `json:"title"`
	Rationale string `json:"rationale"`
	Remedy    string `json:"remedy"`
}

type guidanceRow struct {
	Text     string `json:"text"`
	Severity string `json:"severity"`
	Section  string `json:"section,omitempty"`
	Done     bool   `json:"done"`
}

// SaveAnalysis upserts one analysis for userID. Transient failures are
// retried with capped exponential backoff before the error is returned to
// the caller (migration then counts it and moves on).
func (s *Saver) SaveAnalysis(ctx context.Context, userID, documentText string, source models.Source, a models.GuestAnalysis) error {
	row := analysisRow{
		UserID:       userID,
		ContentHash:  contentHash(documentText),
		DocumentText: documentText,
		Source:       string(source),
		Summary:      a.Summary,
		DocumentType: a.DocumentType,
		Parties:      a.Parties,
		Amount:       a.Amount,
		Payments:     a.Payments,
		KeyDates:     a.KeyDates,
		Score:        a.Score,
		RedFlags:     stripRedFlags(a.RedFlags),
		Guidance:     stripGuidance(a.Guidance),
	}

	op := func() error {
		_, _, err := s.client.From(s.table).
			Insert(row, true, "user_id,content_hash", "minimal", "").
			Execute()
		if err != nil {
			return fmt.Errorf("remote: upsert analysis: %w", err)
		}
		return nil
	}

	policy := backoff.WithContext(backoff.WithMaxRetries(s.newBackOff(), s.maxRetries), ctx)
	return backoff.Retry(op, policy)
}

// SaveFn adapts the saver to the capability signature migration expects.
func (s *Saver) SaveFn() guest.SaveFn {
	return s.SaveAnalysis
}

func contentHash(documentText string) string {
	sum := sha256.Sum256([]byte(documentText))
	return hex.EncodeToString(sum[:])
}

func stripRedFlags(in []models.RedFlag) []redFlagRow {
	out := make([]redFlagRow, 0, len(in))
	for _, rf := range in {
		out = append(out, redFlagRow{
			Type:      string(rf.Type),
			Section:   rf.Section,
			Title:     rf.Title,
			Rationale: rf.Rationale,
			Remedy:    rf.Remedy,
		})
	}
	return out
}

func stripGuidance(in []models.GuidanceItem) []guidanceRow {
	out := make([]guidanceRow, 0, len(in))
	for _, g := range in {
		out = append(out, guidanceRow{
			Text:     g.Text,
			Severity: string(g.Severity),
			Section:  g.Section,
			Done:     g.Done,
		})
	}
	return out
}
