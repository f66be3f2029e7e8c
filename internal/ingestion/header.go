package ingestion

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// defaultSynonyms maps each canonical field to the header spellings accepted
// for it, in normalized form. The canonical name itself always matches. The
// upstream sheet schema is not contractually fixed, so this table is kept
// deliberately permissive; anything unmatched passes through as an extra
// column rather than failing.
var defaultSynonyms = map[string][]string{
	FieldDate:               {"session_date", "class_date", "workout_date"},
	FieldDay:                {"weekday", "day_name", "day_of_week"},
	FieldDayType:            {"daytype", "week_part"},
	FieldMemberID:           {"memberid", "member_no", "member_number"},
	FieldMemberName:         {"member", "name", "client", "client_name", "full_name"},
	FieldAge:                {"member_age"},
	FieldGender:             {"sex"},
	FieldMembershipType:     {"membership", "membership_tier", "tier", "plan", "member_type"},
	FieldClassID:            {"classid", "class_no"},
	FieldClassName:          {"class", "session_name", "activity", "workout"},
	FieldTrainerID:          {"trainerid", "coach_id", "staff_id"},
	FieldTrainerName:        {"trainer", "coach", "instructor", "coach_name", "staff_name"},
	FieldScheduledStartTime: {"start_time", "scheduled_start", "session_start", "start"},
	FieldScheduledEndTime:   {"end_time", "scheduled_end", "session_end", "end"},
	FieldSessionCapacity:    {"capacity", "max_capacity", "slots"},
	FieldAttendanceStatus:   {"attendance", "attended", "status", "present"},
	FieldLateFlag:           {"late", "was_late", "arrived_late"},
	FieldEarlyExitFlag:      {"early_exit", "left_early"},
	FieldExitReason:         {"early_exit_reason", "leave_reason", "reason"},
	FieldStayDuration:       {"stay", "duration", "stay_min", "stay_minutes", "duration_minutes", "time_spent"},
}

// HeaderMap resolves raw source column names to canonical field keys.
type HeaderMap struct {
	byNormalized map[string]string
}

func NewHeaderMap() *HeaderMap {
	m := make(map[string]string, len(defaultSynonyms)*4)
	for canonical, alts := range defaultSynonyms {
		m[canonical] = canonical
		for _, alt := range alts {
			m[alt] = canonical
		}
	}
	return &HeaderMap{byNormalized: m}
}

// LoadOverrides merges extra synonyms from a YAML file shaped as
//
//	trainer_name: [pt, pt_name]
//	class_name: [course]
//
// Entries for unknown canonical fields are skipped; overrides only ever add
// accepted spellings, they never remove the defaults.
func (h *HeaderMap) LoadOverrides(path string) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read synonyms file: %w", err)
	}
	var extra map[string][]string
	if err := yaml.Unmarshal(raw, &extra); err != nil {
		return fmt.Errorf("parse synonyms file: %w", err)
	}
	for canonical, alts := range extra {
		canonical = NormalizeHeader(canonical)
		if _, ok := defaultSynonyms[canonical]; !ok {
			continue
		}
		for _, alt := range alts {
			n := NormalizeHeader(alt)
			if n == "" {
				continue
			}
			h.byNormalized[n] = canonical
		}
	}
	return nil
}

// Canonicalize maps each raw header to a canonical key, or to its own
// normalized form when nothing matches.
func (h *HeaderMap) Canonicalize(raw []string) []string {
	out := make([]string, len(raw))
	for i, r := range raw {
		n := NormalizeHeader(r)
		if canonical, ok := h.byNormalized[n]; ok {
			out[i] = canonical
		} else {
			out[i] = n
		}
	}
	return out
}

// NormalizeHeader reduces a raw header cell to comparable form: BOM and
// surrounding noise stripped, lowercased, whitespace runs collapsed to a
// single underscore, anything outside [a-z0-9_] dropped.
func NormalizeHeader(raw string) string {
	s := strings.TrimPrefix(raw, "\uFEFF")
	s = strings.ToLower(strings.TrimSpace(s))

	var b strings.Builder
	inSpace := false
	for _, ch := range s {
		switch {
		case ch == ' ' || ch == '\t':
			inSpace = true
		case (ch >= 'a' && ch <= 'z') || (ch >= '0' && ch <= '9') || ch == '_':
			if inSpace {
				b.WriteByte('_')
				inSpace = false
			}
			b.WriteRune(ch)
		default:
			// Punctuation and anything non-ASCII is dropped outright.
		}
	}
	return b.String()
}
