package usecase

import (
	"context"
	"fmt"
	"time"

	"campus/domain"
)

type attendanceUC struct {
	attendanceRepo domain.AttendanceRepo
	courseRepo     domain.CourseRepo
	roster         domain.RosterProvider
	marking        domain.MarkingPolicy
	stats          domain.StatsPolicy
	TimeOut        time.Duration
}

func NewAttendanceUseCase(attendanceRepo domain.AttendanceRepo, courseRepo domain.CourseRepo, roster domain.RosterProvider, marking domain.MarkingPolicy, stats domain.StatsPolicy, timeOut time.Duration) domain.AttendanceUseCase {
	return &attendanceUC{
		attendanceRepo: attendanceRepo,
		courseRepo:     courseRepo,
		roster:         roster,
		marking:        marking,
		stats:          stats,
		TimeOut:        timeOut,
	}
}

// ParseDate accepts an ISO-8601 calendar date, with or without a time
// component, and normalizes it to UTC midnight.
func ParseDate(value string) (time.Time, error) {
	if t, err := time.Parse("2006-01-02", value); err == nil {
		return domain.NormalizeDate(t), nil
	}
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q, expected YYYY-MM-DD", value)
	}
	return domain.NormalizeDate(t), nil
}

// MarkAttendance validates a full day's submission against the current
// roster and upserts the single record for (course, date). All validation
// runs before any write; an invalid submission leaves the store untouched.
func (au *attendanceUC) MarkAttendance(ctx context.Context, actor domain.Claims, payload *domain.MarkAttendancePayload) (*domain.AttendanceRecord, error) {
	ctx, cancel := context.WithTimeout(ctx, au.TimeOut)
	defer cancel()

	date, err := ParseDate(payload.Date)
	if err != nil {
		return nil, domain.NewValidationError("invalid attendance submission",
			domain.FieldError{Field: "date", Message: err.Error()})
	}

	// Pre-marking future days is not allowed; "today" is server UTC.
	if date.After(domain.NormalizeDate(time.Now())) {
		return nil, domain.NewValidationError("invalid attendance submission",
			domain.FieldError{Field: "date", Message: "date is in the future"})
	}

	course, err := au.courseRepo.GetCourseByID(ctx, payload.CourseID)
	if err != nil {
		return nil, err
	}

	if !actor.CanMark(course) {
		return nil, &domain.ForbiddenError{
			Message: fmt.Sprintf("user %s may not mark attendance for course %s", actor.Username, course.Code),
		}
	}

	roster, err := au.roster.Roster(ctx, payload.CourseID)
	if err != nil {
		return nil, err
	}

	statusByStudent, fields := au.validateEntries(payload.Records, roster)
	if len(fields) > 0 {
		return nil, domain.NewValidationError("invalid attendance submission", fields...)
	}

	// Entries follow roster order and snapshot roll number and name as
	// they are today. Later roster edits do not rewrite this record.
	record := &domain.AttendanceRecord{
		CourseID: payload.CourseID,
		Date:     date,
	}
	for _, student := range roster {
		status, ok := statusByStudent[student.StudentID]
		if !ok {
			continue
		}
		record.Entries = append(record.Entries, domain.AttendanceEntry{
			StudentID:  student.StudentID,
			RollNumber: student.RollNumber,
			Name:       student.Name,
			Status:     status,
		})
	}

	if err := au.attendanceRepo.Upsert(ctx, record); err != nil {
		return nil, err
	}

	return record, nil
}

func (au *attendanceUC) validateEntries(records []domain.MarkEntry, roster []domain.RosterStudent) (map[int]domain.AttendanceStatus, []domain.FieldError) {
	enrolled := make(map[int]domain.RosterStudent, len(roster))
	for _, student := range roster {
		enrolled[student.StudentID] = student
	}

	var fields []domain.FieldError
	statusByStudent := make(map[int]domain.AttendanceStatus, len(records))

	for i, entry := range records {
		if _, ok := enrolled[entry.StudentID]; !ok {
			fields = append(fields, domain.FieldError{
				Field:   fmt.Sprintf("records[%d].student_id", i),
				Message: fmt.Sprintf("student %d is not enrolled in this course", entry.StudentID),
			})
			continue
		}
		if _, dup := statusByStudent[entry.StudentID]; dup {
			fields = append(fields, domain.FieldError{
				Field:   fmt.Sprintf("records[%d].student_id", i),
				Message: fmt.Sprintf("duplicate entry for student %d", entry.StudentID),
			})
			continue
		}
		if !entry.Status.Valid() {
			fields = append(fields, domain.FieldError{
				Field:   fmt.Sprintf("records[%d].status", i),
				Message: fmt.Sprintf("status %q is not one of present, absent, late, excused", entry.Status),
			})
			continue
		}
		statusByStudent[entry.StudentID] = entry.Status
	}

	if !au.marking.AllowPartial {
		for _, student := range roster {
			if _, ok := statusByStudent[student.StudentID]; !ok {
				fields = append(fields, domain.FieldError{
					Field:   "records",
					Message: fmt.Sprintf("student %d (roll %s) has no entry", student.StudentID, student.RollNumber),
				})
			}
		}
	}

	return statusByStudent, fields
}

// GetCourseAttendance lists a course's records, most recent date first. A
// course that has never been marked yields an empty list, not an error.
func (au *attendanceUC) GetCourseAttendance(ctx context.Context, courseID int) ([]domain.AttendanceRecord, error) {
	ctx, cancel := context.WithTimeout(ctx, au.TimeOut)
	defer cancel()

	return au.attendanceRepo.GetByCourse(ctx, courseID)
}

// GetAttendanceByDate fetches the single record for a course and day. An
// unmarked day surfaces as NotFoundError, which the handler maps to 404.
func (au *attendanceUC) GetAttendanceByDate(ctx context.Context, courseID int, date time.Time) (*domain.AttendanceRecord, error) {
	ctx, cancel := context.WithTimeout(ctx, au.TimeOut)
	defer cancel()

	return au.attendanceRepo.GetByCourseAndDate(ctx, courseID, date)
}
