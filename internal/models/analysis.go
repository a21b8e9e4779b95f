// Package models defines the typed records held by the offline mirror
// caches: guest analyses with their red flags and guidance, and the chat
// summary/message/metadata shapes.
package models

import (
	"fmt"
	"math"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/clauseguard/clauseguard/internal/common"
)

// Source identifies how the analyzed document entered the app.
type Source string

const (
	SourcePaste  Source = "paste"
	SourceUpload Source = "upload"
	SourceScan   Source = "scan"
)

// RedFlagType is the severity tier of a detected risk.
type RedFlagType string

const (
	RedFlagCritical RedFlagType = "critical"
	RedFlagWarning  RedFlagType = "warning"
	RedFlagTip      RedFlagType = "tip"
)

// Severity ranks a guidance item.
type Severity string

const (
	SeverityHigh   Severity = "high"
	SeverityMedium Severity = "medium"
	SeverityLow    Severity = "low"
)

// RedFlag is a detected risk or issue in an analyzed document.
type RedFlag struct {
	ID        string      `json:"id" validate:"required"`
	Type      RedFlagType `json:"type" validate:"oneof=critical warning tip"`
	Section   string      `json:"section"`
	Title     string      `json:"title"`
	Rationale string      `json:"rationale"`
	Remedy    string      `json:"remedy"`
}

// GuidanceItem is an actionable recommendation tied to an analysis.
type GuidanceItem struct {
	ID       string   `json:"id" validate:"required"`
	Text     string   `json:"text"`
	Severity Severity `json:"severity" validate:"oneof=high medium low"`
	Section  string   `json:"section,omitempty"`
	Done     bool     `json:"done"`
}

// AnalysisResult is the loosely-typed payload produced by the analysis
// backend. Fields may be absent or out of range; NewGuestAnalysis is the
// only place this shape is allowed to cross into storage.
type AnalysisResult struct {
	Summary      string         `json:"summary"`
	DocumentType string         `json:"documentType"`
	Parties      []string       `json:"parties"`
	Amount       string         `json:"amount"`
	Payments     string         `json:"payments"`
	KeyDates     []string       `json:"keyDates"`
	Score        float64        `json:"score"`
	RedFlags     []RedFlag      `json:"redFlags"`
	Guidance     []GuidanceItem `json:"guidance"`
}

// GuestAnalysis is the full stored record of one unauthenticated analysis.
type GuestAnalysis struct {
	ID           string         `json:"id" validate:"required"`
	CreatedAt    time.Time      `json:"createdAt" validate:"required"`
	DocumentText string         `json:"documentText"`
	Summary      string         `json:"summary"`
	DocumentType string         `json:"documentType"`
	Parties      []string       `json:"parties"`
	Amount       string         `json:"amount"`
	Payments     string         `json:"payments"`
	KeyDates     []string       `json:"keyDates"`
	Score        int            `json:"score" validate:"min=0,max=100"`
	RedFlags     []RedFlag      `json:"redFlags" validate:"dive"`
	Guidance     []GuidanceItem `json:"guidance" validate:"dive"`
	Source       Source         `json:"source" validate:"oneof=paste upload scan"`
}

// GuestAnalysisSummary is the lightweight listing record kept alongside the
// full analysis.
type GuestAnalysisSummary struct {
	ID           string    `json:"id"`
	CreatedAt    time.Time `json:"createdAt"`
	DocumentType string    `json:"documentType"`
	Summary      string    `json:"summary"`
	Score        int       `json:"score"`
	RedFlagCount int       `json:"redFlagCount"`
	Source       Source    `json:"source"`
}

// Summarize derives the listing record from a full analysis.
func (a *GuestAnalysis) Summarize() GuestAnalysisSummary {
	return GuestAnalysisSummary{
		ID:           a.ID,
		CreatedAt:    a.CreatedAt,
		DocumentType: a.DocumentType,
		Summary:      a.Summary,
		Score:        a.Score,
		RedFlagCount: len(a.RedFlags),
		Source:       a.Source,
	}
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// NewGuestAnalysis builds a typed GuestAnalysis from an upstream result.
// It is the single coercion point: the score is clamped to [0,100], enum
// fields fall back to their documented defaults, nil slices become empty,
// and items without ids get generated ones. The finished record is then
// schema-validated, so a malformed shape fails here rather than somewhere
// downstream after it was persisted.
func NewGuestAnalysis(raw AnalysisResult, documentText string, src Source) (*GuestAnalysis, error) {
	now := time.Now()

	a := &GuestAnalysis{
		ID:           newAnalysisID(now),
		CreatedAt:    now,
		DocumentText: documentText,
		Summary:      raw.Summary,
		DocumentType: raw.DocumentType,
		Parties:      coerceStrings(raw.Parties),
		Amount:       raw.Amount,
		Payments:     raw.Payments,
		KeyDates:     coerceStrings(raw.KeyDates),
		Score:        clampScore(raw.Score),
		RedFlags:     coerceRedFlags(raw.RedFlags),
		Guidance:     coerceGuidance(raw.Guidance),
		Source:       coerceSource(src),
	}

	if err := validate.Struct(a); err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrInvalidAnalysis, err)
	}
	return a, nil
}

// newAnalysisID builds a time-based id with a random suffix. Collisions are
// treated as negligible rather than formally prevented.
func newAnalysisID(now time.Time) string {
	return fmt.Sprintf("%d-%s", now.UnixMilli(), uuid.NewString()[:8])
}

func clampScore(score float64) int {
	if math.IsNaN(score) || score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return int(math.Round(score))
}

func coerceSource(src Source) Source {
	switch src {
	case SourcePaste, SourceUpload, SourceScan:
		return src
	default:
		return SourcePaste
	}
}

func coerceStrings(in []string) []string {
	if in == nil {
		return []string{}
	}
	return in
}

func coerceRedFlags(in []RedFlag) []RedFlag {
	out := make([]RedFlag, 0, len(in))
	for _, rf := range in {
		if rf.ID == "" {
			rf.ID = uuid.NewString()
		}
		switch rf.Type {
		case RedFlagCritical, RedFlagWarning, RedFlagTip:
		default:
			rf.Type = RedFlagTip
		}
		out = append(out, rf)
	}
	return out
}

func coerceGuidance(in []GuidanceItem) []GuidanceItem {
	out := make([]GuidanceItem, 0, len(in))
	for _, g := range in {
		if g.ID == "" {
			g.ID = uuid.NewString()
		}
		switch g.Severity {
		case SeverityHigh, SeverityMedium, SeverityLow:
		default:
			g.Severity = SeverityMedium
		}
		out = append(out, g)
	}
	return out
}
