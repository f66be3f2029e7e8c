// Package demo fabricates a plausible attendance history so the dashboard
// stays usable when the live sheet is empty or unreachable.
package demo

import (
	"math/rand"
	"sort"
	"time"

	"github.com/yungbote/titanhub-backend/internal/ingestion"
)

var (
	trainers = []string{"Rahul Mehta", "Sarah Chen", "Mike Ross", "Elena Gomez"}
	classes  = []string{"Yoga Flow", "HIIT Blast", "Power Lifting", "Zumba Core"}
	members  = []string{"Amit Shah", "Priya Rai", "Kevin Durant", "Jessica Alba", "Tom Hardy"}
	weekdays = []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"}
)

// Generate builds n synthetic records spread over the trailing 90 days,
// date-ascending. The seed makes runs reproducible in tests.
func Generate(n int, seed int64) []ingestion.Record {
	if n <= 0 {
		n = 250
	}
	rng := rand.New(rand.NewSource(seed))
	base := time.Now()

	out := make([]ingestion.Record, 0, n)
	for i := 0; i < n; i++ {
		present := rng.Float64() > 0.15
		date := base.AddDate(0, 0, -(i % 90))

		tier := "Silver"
		switch {
		case i%4 == 0:
			tier = "Platinum"
		case i%3 == 0:
			tier = "Gold"
		}
		gender := "Male"
		if i%2 == 1 {
			gender = "Female"
		}
		dayType := "Weekday"
		if wd := date.Weekday(); wd == time.Saturday || wd == time.Sunday {
			dayType = "Weekend"
		}
		late := "No"
		if rng.Float64() > 0.8 {
			late = "Yes"
		}
		status, stay := "No", 0
		if present {
			status = "Yes"
			stay = 30 + rng.Intn(90)
		}

		out = append(out, ingestion.Record{
			Date:               date.Format("2006-01-02"),
			Day:                weekdayName(date),
			DayType:            dayType,
			MemberID:           1000 + (i % 15),
			MemberName:         members[i%len(members)],
			Age:                18 + rng.Intn(45),
			Gender:             gender,
			MembershipType:     tier,
			ClassID:            500 + (i % len(classes)),
			ClassName:          classes[i%len(classes)],
			TrainerID:          200 + (i % len(trainers)),
			TrainerName:        trainers[i%len(trainers)],
			ScheduledStartTime: "08:00 AM",
			ScheduledEndTime:   "09:00 AM",
			SessionCapacity:    20,
			AttendanceStatus:   status,
			LateFlag:           late,
			EarlyExitFlag:      "No",
			ExitReason:         "None",
			StayDuration:       stay,
		})
	}

	sort.SliceStable(out, func(i, j int) bool { return out[i].Date < out[j].Date })
	return out
}

func weekdayName(t time.Time) string {
	idx := int(t.Weekday()) - 1
	if idx < 0 {
		idx = 6
	}
	return weekdays[idx]
}
