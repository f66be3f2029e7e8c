package app

import (
	"time"

	"github.com/yungbote/titanhub-backend/internal/platform/envutil"
)

type Config struct {
	LogMode       string
	Port          string
	SheetID       string
	SheetsBaseURL string
	TabGIDs       []int
	PollInterval  time.Duration
	TopN          int
	SynonymsFile  string
	AllowOrigins  []string
	DemoFallback  bool
}

func LoadConfig() Config {
	sheetID := envutil.String("SHEET_ID", "")
	if sheetID == "" {
		sheetID = envutil.String("GSHEET_ID", "")
	}
	return Config{
		LogMode:       envutil.String("LOG_MODE", "development"),
		Port:          envutil.String("PORT", "8080"),
		SheetID:       sheetID,
		SheetsBaseURL: envutil.String("SHEETS_BASE_URL", ""),
		TabGIDs:       envutil.Ints("SHEET_TAB_GIDS", []int{0, 1, 2}),
		PollInterval:  envutil.Duration("POLL_INTERVAL", 60*time.Second),
		TopN:          envutil.Int("TOP_N", 5),
		SynonymsFile:  envutil.String("SYNONYMS_FILE", ""),
		AllowOrigins:  envutil.Strings("CORS_ALLOW_ORIGINS", nil),
		DemoFallback:  envutil.Bool("DEMO_FALLBACK", true),
	}
}
