package services

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/yungbote/titanhub-backend/internal/clients/sheets"
	"github.com/yungbote/titanhub-backend/internal/demo"
	"github.com/yungbote/titanhub-backend/internal/ingestion"
	"github.com/yungbote/titanhub-backend/internal/pkg/logger"
	"github.com/yungbote/titanhub-backend/internal/platform/apierr"
)

// fakeSheets serves canned bodies or errors per tab gid.
type fakeSheets struct {
	bodies map[int]string
	errs   map[int]error
}

func (f *fakeSheets) FetchTab(ctx context.Context, gid int) (string, error) {
	if err, ok := f.errs[gid]; ok {
		return "", err
	}
	return f.bodies[gid], nil
}

func tabBody(names ...string) string {
	body := "Date,Member ID,Member Name,Trainer,Class Name,Attendance Status\n"
	for i, name := range names {
		body += fmt.Sprintf("2025-03-0%d,%d,%s,Maya,Yoga,Yes\n", i+1, i+1, name)
	}
	return body
}

func newTestSync(t *testing.T, client sheets.Client) *SyncService {
	t.Helper()
	return NewSyncService(logger.NewNop(), client, ingestion.NewHeaderMap(), []int{0, 1, 2}, 5)
}

func TestRefresh_MergesTabsInGIDOrder(t *testing.T) {
	s := newTestSync(t, &fakeSheets{bodies: map[int]string{
		0: tabBody("Alpha"),
		1: tabBody("Beta"),
		2: tabBody("Gamma"),
	}})

	if err := s.Refresh(context.Background(), false); err != nil {
		t.Fatalf("Refresh: %v", err)
	}

	records := s.Records()
	if len(records) != 3 {
		t.Fatalf("records: %d", len(records))
	}
	for i, want := range []string{"Alpha", "Beta", "Gamma"} {
		if records[i].MemberName != want {
			t.Fatalf("record %d: got %q want %q", i, records[i].MemberName, want)
		}
	}

	st := s.Status()
	if st.State != SyncOK {
		t.Fatalf("state: %s", st.State)
	}
	if st.TabCounts[0] != 1 || st.TabCounts[1] != 1 || st.TabCounts[2] != 1 {
		t.Fatalf("tab counts: %v", st.TabCounts)
	}
}

func TestRefresh_SecondaryFailureIsTolerated(t *testing.T) {
	s := newTestSync(t, &fakeSheets{
		bodies: map[int]string{0: tabBody("Alpha"), 2: tabBody("Gamma")},
		errs:   map[int]error{1: &sheets.TabError{GID: 1, Kind: sheets.KindUnreachable}},
	})

	if err := s.Refresh(context.Background(), false); err != nil {
		t.Fatalf("Refresh: %v", err)
	}
	records := s.Records()
	if len(records) != 2 {
		t.Fatalf("records: %d", len(records))
	}
	st := s.Status()
	if st.State != SyncOK {
		t.Fatalf("state: %s", st.State)
	}
	if _, ok := st.TabCounts[1]; ok {
		t.Fatalf("failed tab should have no count: %v", st.TabCounts)
	}
}

func TestRefresh_PrimaryFailureKeepsPreviousRecords(t *testing.T) {
	client := &fakeSheets{bodies: map[int]string{
		0: tabBody("Alpha"),
		1: tabBody("Beta"),
		2: tabBody("Gamma"),
	}}
	s := newTestSync(t, client)
	if err := s.Refresh(context.Background(), false); err != nil {
		t.Fatalf("first refresh: %v", err)
	}

	client.errs = map[int]error{0: &sheets.TabError{GID: 0, Kind: sheets.KindPrivate}}
	err := s.Refresh(context.Background(), false)
	if err == nil {
		t.Fatalf("expected error")
	}
	var apiErr *apierr.Error
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected apierr, got %v", err)
	}
	if apiErr.Status != 502 || apiErr.Code != "sheet_private" {
		t.Fatalf("apierr: %+v", apiErr)
	}

	if got := len(s.Records()); got != 3 {
		t.Fatalf("previous records should survive, got %d", got)
	}
	if st := s.Status(); st.State != SyncFailed {
		t.Fatalf("state: %s", st.State)
	}
}

func TestRefresh_NoClientConfigured(t *testing.T) {
	s := NewSyncService(logger.NewNop(), nil, ingestion.NewHeaderMap(), nil, 5)

	err := s.Refresh(context.Background(), true)
	if err == nil {
		t.Fatalf("expected error")
	}
	var apiErr *apierr.Error
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected apierr, got %v", err)
	}
	if apiErr.Status != 503 || apiErr.Code != "sheet_unconfigured" {
		t.Fatalf("apierr: %+v", apiErr)
	}
	st := s.Status()
	if st.State != SyncFailed {
		t.Fatalf("state: %s", st.State)
	}
	if st.Loading {
		t.Fatalf("loading flag should not stick")
	}
}

func TestRefresh_EmptyButReachable(t *testing.T) {
	s := newTestSync(t, &fakeSheets{bodies: map[int]string{
		0: "Date,Member Name\n",
		1: "",
		2: "",
	}})

	if err := s.Refresh(context.Background(), false); err != nil {
		t.Fatalf("Refresh: %v", err)
	}
	st := s.Status()
	if st.State != SyncEmpty {
		t.Fatalf("state: %s", st.State)
	}
	if st.Message == "" {
		t.Fatalf("expected diagnostic message")
	}
	if got := len(s.Records()); got != 0 {
		t.Fatalf("records: %d", got)
	}
}

func TestLoadDemo(t *testing.T) {
	s := newTestSync(t, &fakeSheets{})
	s.LoadDemo(demo.Generate(50, 1))

	if got := len(s.Records()); got != 50 {
		t.Fatalf("records: %d", got)
	}
	if st := s.Status(); st.State != SyncDemo {
		t.Fatalf("state: %s", st.State)
	}
	if snap := s.Current(); snap.Metrics.TotalRecords != 50 {
		t.Fatalf("snapshot not rebuilt: %+v", snap.Metrics)
	}
}

func TestSearchRecords(t *testing.T) {
	s := newTestSync(t, &fakeSheets{bodies: map[int]string{
		0: tabBody("Alpha", "Beta"),
		1: "", 2: "",
	}})
	if err := s.Refresh(context.Background(), false); err != nil {
		t.Fatalf("Refresh: %v", err)
	}

	if got := s.SearchRecords("alp"); len(got) != 1 || got[0].MemberName != "Alpha" {
		t.Fatalf("search: %v", got)
	}
	if got := s.SearchRecords("yoga"); len(got) != 2 {
		t.Fatalf("class search: %d", len(got))
	}
	if got := s.SearchRecords("  "); len(got) != 2 {
		t.Fatalf("blank search returns all: %d", len(got))
	}
	if got := s.SearchRecords("zzz"); len(got) != 0 {
		t.Fatalf("miss: %v", got)
	}
}

func TestStatus_CopiesTabCounts(t *testing.T) {
	s := newTestSync(t, &fakeSheets{bodies: map[int]string{
		0: tabBody("Alpha"), 1: "", 2: "",
	}})
	if err := s.Refresh(context.Background(), false); err != nil {
		t.Fatalf("Refresh: %v", err)
	}
	st := s.Status()
	st.TabCounts[0] = 999
	if s.Status().TabCounts[0] == 999 {
		t.Fatalf("caller mutation leaked into service state")
	}
}
