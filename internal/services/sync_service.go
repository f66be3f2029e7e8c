package services

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sort"
	"strings"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"golang.org/x/sync/errgroup"

	"github.com/yungbote/titanhub-backend/internal/analytics"
	"github.com/yungbote/titanhub-backend/internal/clients/sheets"
	"github.com/yungbote/titanhub-backend/internal/ingestion"
	"github.com/yungbote/titanhub-backend/internal/pkg/ctxutil"
	"github.com/yungbote/titanhub-backend/internal/pkg/logger"
	"github.com/yungbote/titanhub-backend/internal/platform/apierr"
)

type SyncState string

const (
	SyncPending SyncState = "pending"
	SyncOK      SyncState = "ok"
	SyncEmpty   SyncState = "empty"
	SyncFailed  SyncState = "failed"
	SyncDemo    SyncState = "demo"
)

// SyncStatus is the user-facing state of the last sync attempt. "empty"
// means the source was reached but held no records; "failed" means the
// primary tab could not be read at all.
type SyncStatus struct {
	State     SyncState   `json:"state"`
	Message   string      `json:"message,omitempty"`
	Loading   bool        `json:"loading"`
	LastSync  time.Time   `json:"last_sync"`
	TabCounts map[int]int `json:"tab_counts,omitempty"`
}

// SyncService owns the current record set and its aggregation snapshot.
// Every refresh rebuilds both wholesale and swaps them in atomically;
// readers never observe a half-merged set.
type SyncService struct {
	log     *logger.Logger
	sheets  sheets.Client
	headers *ingestion.HeaderMap
	gids    []int
	topN    int
	now     func() time.Time

	mu       sync.RWMutex
	records  []ingestion.Record
	snapshot *analytics.Snapshot
	status   SyncStatus
}

func NewSyncService(log *logger.Logger, sheetsClient sheets.Client, headers *ingestion.HeaderMap, gids []int, topN int) *SyncService {
	if len(gids) == 0 {
		gids = []int{0, 1, 2}
	}
	return &SyncService{
		log:      log.With("service", "SyncService"),
		sheets:   sheetsClient,
		headers:  headers,
		gids:     gids,
		topN:     topN,
		now:      time.Now,
		snapshot: analytics.Aggregate(nil, topN),
		status:   SyncStatus{State: SyncPending},
	}
}

type tabResult struct {
	gid     int
	records []ingestion.Record
	err     error
}

// Refresh fetches every configured tab concurrently, waits for all of them
// to settle, and replaces the current record set with the merge. A failed
// non-primary tab contributes zero records; a failed primary tab is a hard
// sync failure and leaves the previous record set in place. showLoading only
// controls the externally visible loading flag, so the silent periodic
// variant never interrupts the current view.
func (s *SyncService) Refresh(ctx context.Context, showLoading bool) error {
	if s.sheets == nil {
		err := apierr.New(http.StatusServiceUnavailable, "sheet_unconfigured",
			errors.New("no source sheet configured; set SHEET_ID"))
		s.setStatus(SyncStatus{State: SyncFailed, Message: err.Error(), LastSync: s.now()})
		return err
	}

	ctx = ctxutil.Default(ctx)
	ctx, span := otel.Tracer("titanhub/sync").Start(ctx, "sync.refresh")
	defer span.End()
	span.SetAttributes(attribute.Int("tabs", len(s.gids)))

	if showLoading {
		s.setLoading(true)
		defer s.setLoading(false)
	}

	results := make([]tabResult, len(s.gids))
	var g errgroup.Group
	for i, gid := range s.gids {
		i, gid := i, gid
		g.Go(func() error {
			records, err := s.fetchTab(ctx, gid)
			results[i] = tabResult{gid: gid, records: records, err: err}
			// A sibling's failure must never cancel an in-flight fetch, so
			// errors are carried in the result instead of returned.
			return nil
		})
	}
	_ = g.Wait()

	if err := results[0].err; err != nil {
		span.RecordError(err)
		s.log.Error("Primary tab sync failed", "gid", s.gids[0], "error", err)
		s.setStatus(SyncStatus{State: SyncFailed, Message: err.Error(), LastSync: s.now()})
		return asAPIError(err)
	}

	merged := make([]ingestion.Record, 0)
	tabCounts := make(map[int]int, len(results))
	for _, res := range results {
		if res.err != nil {
			s.log.Warn("Secondary tab skipped", "gid", res.gid, "error", res.err)
			continue
		}
		merged = append(merged, res.records...)
		tabCounts[res.gid] = len(res.records)
	}

	if len(merged) == 0 {
		diag := emptyDiagnostic(s.gids, results)
		s.log.Warn("Sync reached source but found no records", "detail", diag)
		s.swap(nil, SyncStatus{State: SyncEmpty, Message: diag, LastSync: s.now(), TabCounts: tabCounts})
		return nil
	}

	s.swap(merged, SyncStatus{State: SyncOK, LastSync: s.now(), TabCounts: tabCounts})
	s.log.Info("Sync complete", "records", len(merged), "tabs", len(tabCounts))
	return nil
}

// LoadDemo swaps in a synthetic record set. The presentation layer offers
// this as a fallback when the source is empty or unreachable.
func (s *SyncService) LoadDemo(records []ingestion.Record) {
	s.swap(records, SyncStatus{State: SyncDemo, Message: "demo data simulation active", LastSync: s.now()})
	s.log.Info("Demo data loaded", "records", len(records))
}

// Records returns the current merged record set.
func (s *SyncService) Records() []ingestion.Record {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]ingestion.Record, len(s.records))
	copy(out, s.records)
	return out
}

// SearchRecords filters the current set by a case-insensitive term over
// member, trainer, class and membership type.
func (s *SyncService) SearchRecords(term string) []ingestion.Record {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return s.Records()
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]ingestion.Record, 0)
	for _, r := range s.records {
		if strings.Contains(strings.ToLower(r.MemberName), term) ||
			strings.Contains(strings.ToLower(r.TrainerName), term) ||
			strings.Contains(strings.ToLower(r.ClassName), term) ||
			strings.Contains(strings.ToLower(r.MembershipType), term) {
			out = append(out, r)
		}
	}
	return out
}

// Current returns the aggregation snapshot for the current record set.
// Callers must treat it as read-only.
func (s *SyncService) Current() *analytics.Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshot
}

func (s *SyncService) Status() SyncStatus {
	s.mu.RLock()
	defer s.mu.RUnlock()
	st := s.status
	if st.TabCounts != nil {
		counts := make(map[int]int, len(st.TabCounts))
		for k, v := range st.TabCounts {
			counts[k] = v
		}
		st.TabCounts = counts
	}
	return st
}

func (s *SyncService) fetchTab(ctx context.Context, gid int) ([]ingestion.Record, error) {
	body, err := s.sheets.FetchTab(ctx, gid)
	if err != nil {
		return nil, err
	}
	return ingestion.ParseTab(body, s.headers), nil
}

func (s *SyncService) swap(records []ingestion.Record, status SyncStatus) {
	snap := analytics.Aggregate(records, s.topN)
	s.mu.Lock()
	defer s.mu.Unlock()
	status.Loading = s.status.Loading
	s.records = records
	s.snapshot = snap
	s.status = status
}

func (s *SyncService) setStatus(status SyncStatus) {
	s.mu.Lock()
	defer s.mu.Unlock()
	status.Loading = s.status.Loading
	s.status = status
}

func (s *SyncService) setLoading(v bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.status.Loading = v
}

func emptyDiagnostic(gids []int, results []tabResult) string {
	parts := make([]string, 0, len(gids))
	for _, g := range gids {
		parts = append(parts, fmt.Sprintf("%d", g))
	}
	diag := "no data records found across tabs " + strings.Join(parts, ", ")

	var failures []string
	for _, res := range results {
		if res.err != nil {
			failures = append(failures, res.err.Error())
		}
	}
	if len(failures) > 0 {
		sort.Strings(failures)
		diag += " (" + strings.Join(failures, "; ") + ")"
	}
	return diag
}

func asAPIError(err error) error {
	var tabErr *sheets.TabError
	if errors.As(err, &tabErr) {
		switch tabErr.Kind {
		case sheets.KindPrivate:
			return apierr.New(http.StatusBadGateway, "sheet_private", err)
		case sheets.KindMalformed:
			return apierr.New(http.StatusBadGateway, "sheet_malformed", err)
		}
	}
	return apierr.New(http.StatusBadGateway, "sheet_unreachable", err)
}
