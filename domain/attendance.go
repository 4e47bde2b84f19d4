package domain

import (
	"context"
	"time"
)

type AttendanceStatus string

const (
	StatusPresent AttendanceStatus = "present"
	StatusAbsent  AttendanceStatus = "absent"
	StatusLate    AttendanceStatus = "late"
	StatusExcused AttendanceStatus = "excused"
)

// Valid returns true when the status is one of the four supported values.
func (s AttendanceStatus) Valid() bool {
	switch s {
	case StatusPresent, StatusAbsent, StatusLate, StatusExcused:
		return true
	default:
		return false
	}
}

// AttendanceEntry is one student's status inside a day's record. RollNumber
// and Name are snapshotted from the roster at marking time and are not
// refreshed when the roster changes later.
type AttendanceEntry struct {
	StudentID  int              `json:"student_id"`
	RollNumber string           `json:"roll_number"`
	Name       string           `json:"name"`
	Status     AttendanceStatus `json:"status"`
}

// AttendanceRecord holds one course's attendance for one calendar day.
// Date is always UTC midnight; the store keeps exactly one record per
// (course_id, date).
type AttendanceRecord struct {
	ID        int               `json:"id"`
	CourseID  int               `json:"course_id"`
	Date      time.Time         `json:"date"`
	Entries   []AttendanceEntry `json:"entries"`
	CreatedAt time.Time         `json:"created_at"`
	UpdatedAt time.Time         `json:"updated_at"`
}

// NormalizeDate drops the time-of-day component so that any submission for
// a calendar day resolves to the same record key.
func NormalizeDate(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

type MarkEntry struct {
	StudentID int              `json:"student_id" valid:"required~Student ID is required"`
	Status    AttendanceStatus `json:"status" valid:"required~Status is required"`
}

type MarkAttendancePayload struct {
	CourseID int         `json:"course_id" valid:"required~Course ID is required"`
	Date     string      `json:"date" valid:"required~Date is required"`
	Records  []MarkEntry `json:"records"`
}

// MarkingPolicy controls how a submission that does not cover the whole
// roster is treated. The default rejects partial days: a record where only
// some students are marked is ambiguous.
type MarkingPolicy struct {
	AllowPartial bool
}

// StatsPolicy pins down which statuses count toward the positive side of
// the attendance rate. Default: only "present" counts.
type StatsPolicy struct {
	LateCountsAsPresent    bool
	ExcusedCountsAsPresent bool
}

// Counts returns true when the given status counts as attended under the
// policy.
func (p StatsPolicy) Counts(s AttendanceStatus) bool {
	switch s {
	case StatusPresent:
		return true
	case StatusLate:
		return p.LateCountsAsPresent
	case StatusExcused:
		return p.ExcusedCountsAsPresent
	default:
		return false
	}
}

// StudentStats aggregates one student's history within a course.
// TotalClasses counts only the records that contain an entry for the
// student, so days before their enrollment never dilute the rate.
type StudentStats struct {
	CourseID             int `json:"course_id"`
	StudentID            int `json:"student_id"`
	Present              int `json:"present"`
	Absent               int `json:"absent"`
	Late                 int `json:"late"`
	Excused              int `json:"excused"`
	TotalClasses         int `json:"total_classes"`
	AttendancePercentage int `json:"attendance_percentage"`
}

type StudentSummaryRow struct {
	StudentID            int    `json:"student_id"`
	RollNumber           string `json:"roll_number"`
	Name                 string `json:"name"`
	Present              int    `json:"present"`
	Absent               int    `json:"absent"`
	Late                 int    `json:"late"`
	Excused              int    `json:"excused"`
	TotalClasses         int    `json:"total_classes"`
	AttendancePercentage int    `json:"attendance_percentage"`
}

// CourseSummary reports per-student rows against the current roster only;
// students removed from the roster keep their historical entries but drop
// out of the summary.
type CourseSummary struct {
	CourseID          int                 `json:"course_id"`
	TotalClasses      int                 `json:"total_classes"`
	StudentCount      int                 `json:"student_count"`
	AverageAttendance int                 `json:"average_attendance"`
	PerStudent        []StudentSummaryRow `json:"per_student"`
}

type AttendanceRepo interface {
	Upsert(ctx context.Context, record *AttendanceRecord) error
	GetByCourse(ctx context.Context, courseID int) ([]AttendanceRecord, error)
	GetByCourseAndDate(ctx context.Context, courseID int, date time.Time) (*AttendanceRecord, error)
}

type AttendanceUseCase interface {
	MarkAttendance(ctx context.Context, actor Claims, payload *MarkAttendancePayload) (*AttendanceRecord, error)
	GetCourseAttendance(ctx context.Context, courseID int) ([]AttendanceRecord, error)
	GetAttendanceByDate(ctx context.Context, courseID int, date time.Time) (*AttendanceRecord, error)
	StudentStats(ctx context.Context, courseID, studentID int) (*StudentStats, error)
	CourseSummary(ctx context.Context, courseID int) (*CourseSummary, error)
}
