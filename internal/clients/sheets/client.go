package sheets

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/yungbote/titanhub-backend/internal/pkg/httpx"
	"github.com/yungbote/titanhub-backend/internal/pkg/logger"
)

// Failure kinds for a tab fetch. The refresh layer decides whether a failure
// is fatal; the client only classifies it.
const (
	KindUnreachable = "unreachable"
	KindPrivate     = "private"
	KindMalformed   = "malformed"
)

// TabError describes why one tab could not be fetched.
type TabError struct {
	GID    int
	Kind   string
	Status int
	Err    error
}

func (e *TabError) Error() string {
	switch e.Kind {
	case KindPrivate:
		return fmt.Sprintf("tab %d is not publicly readable: the sheet must be shared as \"Anyone with the link can view\"", e.GID)
	case KindMalformed:
		return fmt.Sprintf("tab %d returned an unexpected response instead of CSV", e.GID)
	default:
		if e.Status != 0 {
			return fmt.Sprintf("tab %d fetch failed with status %d", e.GID, e.Status)
		}
		if e.Err != nil {
			return fmt.Sprintf("tab %d unreachable: %v", e.GID, e.Err)
		}
		return fmt.Sprintf("tab %d unreachable", e.GID)
	}
}

func (e *TabError) Unwrap() error { return e.Err }

// HTTPStatusCode lets httpx classify retryability.
func (e *TabError) HTTPStatusCode() int { return e.Status }

// Client fetches one tab of the source spreadsheet as exported CSV text.
type Client interface {
	FetchTab(ctx context.Context, gid int) (string, error)
}

type client struct {
	log        *logger.Logger
	baseURL    string
	sheetID    string
	httpClient *http.Client
	maxRetries int
}

// NewClient builds a client against the gviz CSV export endpoint. baseURL is
// overridable for tests; pass "" for the public Google endpoint.
func NewClient(log *logger.Logger, baseURL, sheetID string) (Client, error) {
	if strings.TrimSpace(sheetID) == "" {
		return nil, fmt.Errorf("sheet id required")
	}
	if log == nil {
		return nil, fmt.Errorf("logger required")
	}
	if strings.TrimSpace(baseURL) == "" {
		baseURL = "https://docs.google.com"
	}
	return &client{
		log:        log.With("service", "SheetsClient"),
		baseURL:    strings.TrimRight(baseURL, "/"),
		sheetID:    strings.TrimSpace(sheetID),
		httpClient: &http.Client{Timeout: 30 * time.Second},
		maxRetries: 2,
	}, nil
}

func (c *client) FetchTab(ctx context.Context, gid int) (string, error) {
	url := fmt.Sprintf("%s/spreadsheets/d/%s/gviz/tq?tqx=out:csv&gid=%d", c.baseURL, c.sheetID, gid)

	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if ctx.Err() != nil {
			return "", &TabError{GID: gid, Kind: KindUnreachable, Err: ctx.Err()}
		}

		body, err := c.fetchOnce(ctx, gid, url)
		if err == nil {
			return body, nil
		}
		lastErr = err
		if !httpx.IsRetryable(err) || attempt == c.maxRetries {
			break
		}

		sleep := httpx.SleepFor(nil, attempt, time.Second, 8*time.Second)
		c.log.Warn("Tab fetch retrying",
			"gid", gid,
			"attempt", attempt+1,
			"sleep", sleep.String(),
			"error", err.Error(),
		)
		time.Sleep(sleep)
	}
	return "", lastErr
}

func (c *client) fetchOnce(ctx context.Context, gid int, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", &TabError{GID: gid, Kind: KindUnreachable, Err: err}
	}
	// The export endpoint happily serves stale cached bodies otherwise.
	req.Header.Set("Cache-Control", "no-store")
	req.Header.Set("Pragma", "no-cache")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", &TabError{GID: gid, Kind: KindUnreachable, Err: err}
	}
	raw, readErr := io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	if readErr != nil {
		return "", &TabError{GID: gid, Kind: KindUnreachable, Err: readErr}
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", &TabError{GID: gid, Kind: KindUnreachable, Status: resp.StatusCode}
	}

	body := string(raw)
	return body, classifyBody(gid, body)
}

// classifyBody catches the endpoint's habit of answering 200 with an HTML
// page: a sign-in page when the sheet is private, something else when the
// request was mangled.
func classifyBody(gid int, body string) error {
	trimmed := strings.TrimSpace(body)
	if strings.HasPrefix(trimmed, "<!DOCTYPE") || strings.Contains(body, "google-signin") {
		return &TabError{GID: gid, Kind: KindPrivate}
	}
	if strings.HasPrefix(trimmed, "<") {
		return &TabError{GID: gid, Kind: KindMalformed}
	}
	return nil
}
