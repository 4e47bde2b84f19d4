package usecase

import (
	"context"
	"math"

	"campus/domain"
)

// StudentStats tallies one student's history across the course's records.
// Days without an entry for the student (enrolled later, marked under a
// partial-day policy) do not count toward their TotalClasses.
func (au *attendanceUC) StudentStats(ctx context.Context, courseID, studentID int) (*domain.StudentStats, error) {
	ctx, cancel := context.WithTimeout(ctx, au.TimeOut)
	defer cancel()

	if _, err := au.courseRepo.GetCourseByID(ctx, courseID); err != nil {
		return nil, err
	}

	records, err := au.attendanceRepo.GetByCourse(ctx, courseID)
	if err != nil {
		return nil, err
	}

	stats := tally(records, studentID, au.stats)
	stats.CourseID = courseID

	return &stats, nil
}

// CourseSummary reports per-student statistics against the current roster.
// Students no longer enrolled keep their historical entries but are not
// listed; the roster is the denominator reference.
func (au *attendanceUC) CourseSummary(ctx context.Context, courseID int) (*domain.CourseSummary, error) {
	ctx, cancel := context.WithTimeout(ctx, au.TimeOut)
	defer cancel()

	if _, err := au.courseRepo.GetCourseByID(ctx, courseID); err != nil {
		return nil, err
	}

	roster, err := au.roster.Roster(ctx, courseID)
	if err != nil {
		return nil, err
	}

	records, err := au.attendanceRepo.GetByCourse(ctx, courseID)
	if err != nil {
		return nil, err
	}

	summary := &domain.CourseSummary{
		CourseID:     courseID,
		TotalClasses: len(records),
		StudentCount: len(roster),
		PerStudent:   []domain.StudentSummaryRow{},
	}

	sum := 0
	for _, student := range roster {
		stats := tally(records, student.StudentID, au.stats)
		summary.PerStudent = append(summary.PerStudent, domain.StudentSummaryRow{
			StudentID:            student.StudentID,
			RollNumber:           student.RollNumber,
			Name:                 student.Name,
			Present:              stats.Present,
			Absent:               stats.Absent,
			Late:                 stats.Late,
			Excused:              stats.Excused,
			TotalClasses:         stats.TotalClasses,
			AttendancePercentage: stats.AttendancePercentage,
		})
		sum += stats.AttendancePercentage
	}

	if len(roster) > 0 {
		summary.AverageAttendance = int(math.Round(float64(sum) / float64(len(roster))))
	}

	return summary, nil
}

func tally(records []domain.AttendanceRecord, studentID int, policy domain.StatsPolicy) domain.StudentStats {
	stats := domain.StudentStats{StudentID: studentID}

	attended := 0
	for _, record := range records {
		for _, entry := range record.Entries {
			if entry.StudentID != studentID {
				continue
			}
			stats.TotalClasses++
			switch entry.Status {
			case domain.StatusPresent:
				stats.Present++
			case domain.StatusAbsent:
				stats.Absent++
			case domain.StatusLate:
				stats.Late++
			case domain.StatusExcused:
				stats.Excused++
			}
			if policy.Counts(entry.Status) {
				attended++
			}
			break
		}
	}

	if stats.TotalClasses > 0 {
		stats.AttendancePercentage = int(math.Round(float64(attended) / float64(stats.TotalClasses) * 100))
	}

	return stats
}
