package ingestion

import (
	"strconv"
	"strings"
)

// Canonical column keys. Every parsed row is normalized onto this fixed
// schema; columns that match none of them ride along in Record.Extra.
const (
	FieldDate               = "date"
	FieldDay                = "day"
	FieldDayType            = "day_type"
	FieldMemberID           = "member_id"
	FieldMemberName         = "member_name"
	FieldAge                = "age"
	FieldGender             = "gender"
	FieldMembershipType     = "membership_type"
	FieldClassID            = "class_id"
	FieldClassName          = "class_name"
	FieldTrainerID          = "trainer_id"
	FieldTrainerName        = "trainer_name"
	FieldScheduledStartTime = "scheduled_start_time"
	FieldScheduledEndTime   = "scheduled_end_time"
	FieldSessionCapacity    = "session_capacity"
	FieldAttendanceStatus   = "attendance_status"
	FieldLateFlag           = "late_flag"
	FieldEarlyExitFlag      = "early_exit_flag"
	FieldExitReason         = "exit_reason"
	FieldStayDuration       = "stay_duration"
)

// Record is one attendance event. The shape is always fully populated:
// absent source values become "" or 0 at build time, never at point of use.
type Record struct {
	Date               string `json:"date"`
	Day                string `json:"day"`
	DayType            string `json:"day_type"`
	MemberID           int    `json:"member_id"`
	MemberName         string `json:"member_name"`
	Age                int    `json:"age"`
	Gender             string `json:"gender"`
	MembershipType     string `json:"membership_type"`
	ClassID            int    `json:"class_id"`
	ClassName          string `json:"class_name"`
	TrainerID          int    `json:"trainer_id"`
	TrainerName        string `json:"trainer_name"`
	ScheduledStartTime string `json:"scheduled_start_time"`
	ScheduledEndTime   string `json:"scheduled_end_time"`
	SessionCapacity    int    `json:"session_capacity"`
	AttendanceStatus   string `json:"attendance_status"`
	LateFlag           string `json:"late_flag"`
	EarlyExitFlag      string `json:"early_exit_flag"`
	ExitReason         string `json:"exit_reason"`
	StayDuration       int    `json:"stay_duration"`

	// Extra holds columns the canonicalizer could not map. Aggregation
	// ignores them.
	Extra map[string]string `json:"-"`
}

// Attended reports whether the row is an attended session.
func (r Record) Attended() bool {
	return r.AttendanceStatus == "Yes"
}

// BuildRecord aligns one data row to the canonical header list. Rows shorter
// than the header list read as empty strings for the missing trailing
// columns; duplicate columns let the later value win.
func BuildRecord(headers []string, values []string) Record {
	var r Record
	for i, key := range headers {
		val := ""
		if i < len(values) {
			val = strings.TrimSpace(values[i])
		}
		switch key {
		case FieldDate:
			r.Date = val
		case FieldDay:
			r.Day = val
		case FieldDayType:
			r.DayType = val
		case FieldMemberID:
			r.MemberID = looseInt(val)
		case FieldMemberName:
			r.MemberName = val
		case FieldAge:
			r.Age = looseInt(val)
		case FieldGender:
			r.Gender = val
		case FieldMembershipType:
			r.MembershipType = val
		case FieldClassID:
			r.ClassID = looseInt(val)
		case FieldClassName:
			r.ClassName = val
		case FieldTrainerID:
			r.TrainerID = looseInt(val)
		case FieldTrainerName:
			r.TrainerName = val
		case FieldScheduledStartTime:
			r.ScheduledStartTime = val
		case FieldScheduledEndTime:
			r.ScheduledEndTime = val
		case FieldSessionCapacity:
			r.SessionCapacity = looseInt(val)
		case FieldAttendanceStatus:
			r.AttendanceStatus = val
		case FieldLateFlag:
			r.LateFlag = val
		case FieldEarlyExitFlag:
			r.EarlyExitFlag = val
		case FieldExitReason:
			r.ExitReason = val
		case FieldStayDuration:
			r.StayDuration = looseInt(val)
		default:
			if key == "" {
				continue
			}
			if r.Extra == nil {
				r.Extra = make(map[string]string)
			}
			r.Extra[key] = val
		}
	}
	return r
}

// looseInt coerces spreadsheet cells like "45 min" or "#1,024" to an
// integer by keeping only the digits. Anything without digits is 0.
func looseInt(raw string) int {
	var b strings.Builder
	for _, ch := range raw {
		if ch >= '0' && ch <= '9' {
			b.WriteRune(ch)
		}
	}
	if b.Len() == 0 {
		return 0
	}
	n, err := strconv.Atoi(b.String())
	if err != nil {
		return 0
	}
	return n
}
