package analytics

import (
	"github.com/yungbote/titanhub-backend/internal/ingestion"
)

// Bucket is one labeled count in an ordered distribution or ranking.
type Bucket struct {
	Label string `json:"label"`
	Count int    `json:"count"`
}

// MemberSummary is the per-member rollup. Key is stable across rows: the
// member ID when positive, the trimmed name otherwise.
type MemberSummary struct {
	Key       string             `json:"key"`
	ID        int                `json:"id"`
	Name      string             `json:"name"`
	Age       int                `json:"age"`
	Gender    string             `json:"gender"`
	Type      string             `json:"type"`
	Attended  int                `json:"attended"`
	TotalStay int                `json:"total_stay"`
	Sessions  []ingestion.Record `json:"sessions"`
}

// TrainerSummary is the per-trainer rollup, keyed by exact trimmed name.
type TrainerSummary struct {
	Name          string             `json:"name"`
	ID            int                `json:"id"`
	TotalAttended int                `json:"total_attended"`
	Classes       []string           `json:"classes"`
	Sessions      []ingestion.Record `json:"sessions"`
}

// Distributions are the categorical and temporal breakdowns of one record
// set. Weekday and hour names span their full fixed domains; the rest are
// ordered by first appearance in the scan.
type Distributions struct {
	ByWeekday        []Bucket `json:"by_weekday"`
	ByClass          []Bucket `json:"by_class"`
	ByTrainer        []Bucket `json:"by_trainer"`
	ByMembershipType []Bucket `json:"by_membership_type"`
	ByExitReason     []Bucket `json:"by_exit_reason"`
	ByHour           []Bucket `json:"by_hour"`
	ByGender         []Bucket `json:"by_gender"`
	SessionTrend     []Bucket `json:"session_trend"`
}

// Metrics are the headline rollup numbers for the overview view.
type Metrics struct {
	TotalRecords      int     `json:"total_records"`
	UniqueMembers     int     `json:"unique_members"`
	AttendanceRate    float64 `json:"attendance_rate"`
	AvgStayMinutes    float64 `json:"avg_stay_minutes"`
	RevenueProjection int     `json:"revenue_projection"`
}

// Rankings are the descending top-N leaderboards.
type Rankings struct {
	TopClasses  []Bucket `json:"top_classes"`
	TopTrainers []Bucket `json:"top_trainers"`
	TopMembers  []Bucket `json:"top_members"`
}

// Snapshot is one aggregation pass over one record set. It is rebuilt from
// scratch on every pass and handed out as an immutable view; consumers must
// not mutate it.
type Snapshot struct {
	Members       map[string]*MemberSummary  `json:"members"`
	MemberOrder   []string                   `json:"member_order"`
	Trainers      map[string]*TrainerSummary `json:"trainers"`
	TrainerOrder  []string                   `json:"trainer_order"`
	Distributions Distributions              `json:"distributions"`
	Metrics       Metrics                    `json:"metrics"`
	Rankings      Rankings                   `json:"rankings"`
}
