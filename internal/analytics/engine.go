package analytics

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/yungbote/titanhub-backend/internal/ingestion"
)

var weekdays = [7]string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"}

const (
	trendWindowDays = 60
	dateLayout      = "2006-01-02"
)

// Revenue estimate per member by membership tier. Matching is a
// case-insensitive substring check, so "Annual Platinum" and "platinum"
// land in the same band. An estimate, not ledger-accurate.
const (
	revenuePremiumTier = 15000
	revenueGoldTier    = 8000
	revenueDefaultTier = 4000
)

// Aggregate computes the full derived view of one record set: member and
// trainer summaries, distributions, headline metrics and top-N rankings.
// It is a pure function of its input; aggregating the same records twice
// yields identical snapshots.
func Aggregate(records []ingestion.Record, topN int) *Snapshot {
	if topN <= 0 {
		topN = 5
	}

	snap := &Snapshot{
		Members:  make(map[string]*MemberSummary),
		Trainers: make(map[string]*TrainerSummary),
	}

	var (
		weekdayCounts  [7]int
		hourCounts     [24]int
		classCounts    = newTally()
		trainerCounts  = newTally()
		tierCounts     = newTally()
		exitCounts     = newTally()
		genderCounts   = newTally()
		trainerClasses = make(map[string]map[string]bool)
		attendedTotal  int
		stayTotal      int
	)

	for _, r := range records {
		attended := r.Attended()

		// Member rollup. First occurrence fixes identity attributes;
		// membership type is last-non-empty-wins because tiers get renewed
		// mid-history and the summary must reflect the latest one.
		mKey := MemberKey(r)
		m, ok := snap.Members[mKey]
		if !ok {
			m = &MemberSummary{
				Key:    mKey,
				ID:     r.MemberID,
				Name:   strings.TrimSpace(r.MemberName),
				Age:    r.Age,
				Gender: r.Gender,
				Type:   r.MembershipType,
			}
			snap.Members[mKey] = m
			snap.MemberOrder = append(snap.MemberOrder, mKey)
		}
		m.Sessions = append(m.Sessions, r)
		if t := strings.TrimSpace(r.MembershipType); t != "" {
			m.Type = t
		}
		if attended {
			m.Attended++
			m.TotalStay += r.StayDuration
			stayTotal += r.StayDuration
			attendedTotal++
		}

		// Trainer rollup. Rows without a usable trainer name never create
		// or touch a summary.
		tName := strings.TrimSpace(r.TrainerName)
		if tName != "" && tName != "None" {
			t, ok := snap.Trainers[tName]
			if !ok {
				t = &TrainerSummary{Name: tName, ID: r.TrainerID}
				snap.Trainers[tName] = t
				snap.TrainerOrder = append(snap.TrainerOrder, tName)
				trainerClasses[tName] = make(map[string]bool)
			}
			t.Sessions = append(t.Sessions, r)
			if c := strings.TrimSpace(r.ClassName); c != "" && !trainerClasses[tName][c] {
				trainerClasses[tName][c] = true
				t.Classes = append(t.Classes, c)
			}
			if attended {
				t.TotalAttended++
			}
		}

		// Distributions.
		if attended {
			if idx, ok := weekdayIndex(r.Day); ok {
				weekdayCounts[idx]++
			}
			if c := strings.TrimSpace(r.ClassName); c != "" {
				classCounts.add(c)
			}
			if tName != "" && tName != "None" {
				trainerCounts.add(tName)
			}
			if h, ok := ParseStartHour(r.ScheduledStartTime); ok {
				hourCounts[h]++
			}
		}
		if t := strings.TrimSpace(r.MembershipType); t != "" {
			tierCounts.add(t)
		}
		if g := strings.TrimSpace(r.Gender); g != "" {
			genderCounts.add(g)
		}
		if reason := strings.TrimSpace(r.ExitReason); reason != "" && reason != "None" {
			exitCounts.add(reason)
		}
	}

	snap.Distributions = Distributions{
		ByWeekday:        fixedBuckets(weekdays[:], weekdayCounts[:]),
		ByClass:          classCounts.buckets(),
		ByTrainer:        trainerCounts.buckets(),
		ByMembershipType: tierCounts.buckets(),
		ByExitReason:     exitCounts.buckets(),
		ByHour:           hourBuckets(hourCounts),
		ByGender:         genderCounts.buckets(),
		SessionTrend:     sessionTrend(records),
	}

	snap.Metrics = buildMetrics(snap, len(records), attendedTotal, stayTotal)
	snap.Rankings = buildRankings(snap, topN)
	return snap
}

// MemberKey resolves a row to a stable member identity: the numeric ID when
// positive, the trimmed name otherwise.
func MemberKey(r ingestion.Record) string {
	if r.MemberID > 0 {
		return "id:" + strconv.Itoa(r.MemberID)
	}
	return "name:" + strings.TrimSpace(r.MemberName)
}

// ParseStartHour extracts the hour bucket from a scheduled start time in
// either 12- or 24-hour form ("08:00 AM", "2:00 PM", "14:30"). Strings with
// no leading hour digits are rejected rather than defaulted.
func ParseStartHour(raw string) (int, bool) {
	s := strings.TrimSpace(raw)
	i := 0
	for i < len(s) && s[i] >= '0' && s[i] <= '9' {
		i++
	}
	if i == 0 {
		return 0, false
	}
	hour, err := strconv.Atoi(s[:i])
	if err != nil {
		return 0, false
	}
	lower := strings.ToLower(s)
	if strings.Contains(lower, "pm") && hour < 12 {
		hour += 12
	}
	if strings.Contains(lower, "am") && hour == 12 {
		hour = 0
	}
	if hour < 0 || hour > 23 {
		return 0, false
	}
	return hour, true
}

func buildMetrics(snap *Snapshot, total, attended, stayTotal int) Metrics {
	m := Metrics{
		TotalRecords:  total,
		UniqueMembers: len(snap.MemberOrder),
	}
	if total > 0 {
		m.AttendanceRate = float64(attended) / float64(total) * 100
	}
	if attended > 0 {
		m.AvgStayMinutes = float64(stayTotal) / float64(attended)
	}
	for _, key := range snap.MemberOrder {
		tier := strings.ToLower(snap.Members[key].Type)
		switch {
		case strings.Contains(tier, "platinum") || strings.Contains(tier, "annual"):
			m.RevenueProjection += revenuePremiumTier
		case strings.Contains(tier, "gold"):
			m.RevenueProjection += revenueGoldTier
		default:
			m.RevenueProjection += revenueDefaultTier
		}
	}
	return m
}

func buildRankings(snap *Snapshot, topN int) Rankings {
	members := make([]Bucket, 0, len(snap.MemberOrder))
	for _, key := range snap.MemberOrder {
		m := snap.Members[key]
		members = append(members, Bucket{Label: m.Name, Count: m.Attended})
	}
	trainers := make([]Bucket, 0, len(snap.TrainerOrder))
	for _, name := range snap.TrainerOrder {
		trainers = append(trainers, Bucket{Label: name, Count: snap.Trainers[name].TotalAttended})
	}
	return Rankings{
		TopClasses:  topBuckets(snap.Distributions.ByClass, topN),
		TopTrainers: topBuckets(trainers, topN),
		TopMembers:  topBuckets(members, topN),
	}
}

// topBuckets sorts descending by count and truncates. The sort is stable so
// ties keep the order the scan produced.
func topBuckets(in []Bucket, n int) []Bucket {
	out := make([]Bucket, len(in))
	copy(out, in)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Count > out[j].Count })
	if len(out) > n {
		out = out[:n]
	}
	return out
}

// sessionTrend counts attended sessions per calendar date inside the
// trailing trend window, anchored at the latest date present in the data.
func sessionTrend(records []ingestion.Record) []Bucket {
	var latest time.Time
	dates := make(map[string]time.Time)
	for _, r := range records {
		d, err := time.Parse(dateLayout, r.Date)
		if err != nil {
			continue
		}
		dates[r.Date] = d
		if d.After(latest) {
			latest = d
		}
	}
	if latest.IsZero() {
		return nil
	}
	windowStart := latest.AddDate(0, 0, -trendWindowDays)

	counts := make(map[string]int)
	for _, r := range records {
		d, ok := dates[r.Date]
		if !ok || !r.Attended() {
			continue
		}
		if d.Before(windowStart) || d.After(latest) {
			continue
		}
		counts[r.Date]++
	}

	labels := make([]string, 0, len(counts))
	for day := range counts {
		labels = append(labels, day)
	}
	sort.Strings(labels)
	out := make([]Bucket, 0, len(labels))
	for _, day := range labels {
		out = append(out, Bucket{Label: day, Count: counts[day]})
	}
	return out
}

func weekdayIndex(day string) (int, bool) {
	for i, name := range weekdays {
		if strings.EqualFold(strings.TrimSpace(day), name) {
			return i, true
		}
	}
	return 0, false
}

func fixedBuckets(labels []string, counts []int) []Bucket {
	out := make([]Bucket, len(labels))
	for i, label := range labels {
		out[i] = Bucket{Label: label, Count: counts[i]}
	}
	return out
}

func hourBuckets(counts [24]int) []Bucket {
	out := make([]Bucket, 24)
	for h := 0; h < 24; h++ {
		out[h] = Bucket{Label: fmt.Sprintf("%02d:00", h), Count: counts[h]}
	}
	return out
}

// tally is an insertion-ordered counter.
type tally struct {
	counts map[string]int
	order  []string
}

func newTally() *tally {
	return &tally{counts: make(map[string]int)}
}

func (t *tally) add(label string) {
	if _, ok := t.counts[label]; !ok {
		t.order = append(t.order, label)
	}
	t.counts[label]++
}

func (t *tally) buckets() []Bucket {
	out := make([]Bucket, 0, len(t.order))
	for _, label := range t.order {
		out = append(out, Bucket{Label: label, Count: t.counts[label]})
	}
	return out
}
