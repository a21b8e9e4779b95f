package guest

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/clauseguard/clauseguard/internal/common"
	"github.com/clauseguard/clauseguard/internal/kvstore"
	"github.com/clauseguard/clauseguard/internal/logging"
	"github.com/clauseguard/clauseguard/internal/models"
)

// document is the compound record persisted under a single key, so the
// summary list and the id index are always written together and can never
// drift apart on disk.
type document struct {
	List []models.GuestAnalysisSummary   `json:"list"`
	ByID map[string]models.GuestAnalysis `json:"byId"`
}

func emptyDocument() document {
	return document{
		List: []models.GuestAnalysisSummary{},
		ByID: map[string]models.GuestAnalysis{},
	}
}

// Store implements Repository on the key-value store. A mutex serializes
// the read-modify-write of the compound document.
type Store struct {
	mu    sync.Mutex
	store kvstore.Store
	log   logging.Logger
}

var _ Repository = (*Store)(nil)

func NewStore(store kvstore.Store, log logging.Logger) *Store {
	if log == nil {
		log = logging.Nop()
	}
	return &Store{store: store, log: log}
}

func (s *Store) load(ctx context.Context) (document, error) {
	doc := emptyDocument()
	ok, err := kvstore.GetJSON(ctx, s.store, kvstore.KeyGuestAnalyses, &doc)
	if err != nil {
		return emptyDocument(), err
	}
	if !ok {
		return emptyDocument(), nil
	}
	if doc.List == nil {
		doc.List = []models.GuestAnalysisSummary{}
	}
	if doc.ByID == nil {
		doc.ByID = map[string]models.GuestAnalysis{}
	}
	return doc, nil
}

func (s *Store) persist(ctx context.Context, doc document) error {
	return kvstore.SetJSON(ctx, s.store, kvstore.KeyGuestAnalyses, doc)
}

func (s *Store) List(ctx context.Context) ([]models.GuestAnalysisSummary, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.load(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]models.GuestAnalysisSummary, len(doc.List))
	copy(out, doc.List)
	// Sort at read time rather than trusting the stored order.
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (s *Store) GetByID(ctx context.Context, id string) (*models.GuestAnalysis, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	a, ok := doc.ByID[id]
	if !ok {
		return nil, common.ErrNotFound
	}
	return &a, nil
}

func (s *Store) Save(ctx context.Context, raw models.AnalysisResult, documentText string, source models.Source) (*models.GuestAnalysisSummary, error) {
	analysis, err := models.NewGuestAnalysis(raw, documentText, source)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.load(ctx)
	if err != nil {
		return nil, err
	}

	summary := analysis.Summarize()
	doc.List = append([]models.GuestAnalysisSummary{summary}, doc.List...)
	doc.ByID[analysis.ID] = *analysis

	if err := s.persist(ctx, doc); err != nil {
		return nil, fmt.Errorf("guest: save analysis: %w", err)
	}
	return &summary, nil
}

func (s *Store) Delete(ctx context.Context, id string) error {
	if id == "" {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.load(ctx)
	if err != nil {
		return err
	}
	if _, ok := doc.ByID[id]; !ok {
		return nil
	}

	delete(doc.ByID, id)
	kept := doc.List[:0]
	for _, sum := range doc.List {
		if sum.ID != id {
			kept = append(kept, sum)
		}
	}
	doc.List = kept

	if err := s.persist(ctx, doc); err != nil {
		return fmt.Errorf("guest: delete analysis: %w", err)
	}
	return nil
}
