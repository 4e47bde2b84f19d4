package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"campus/domain"
)

func TestMarkAttendanceCreatesRecord(t *testing.T) {
	store, _, uc := setup()

	record, err := uc.MarkAttendance(context.Background(), teacherClaims(),
		fullDay("2024-03-01", domain.StatusPresent, domain.StatusPresent, domain.StatusAbsent))
	require.NoError(t, err)

	assert.Equal(t, 1, record.CourseID)
	assert.Equal(t, time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), record.Date)
	require.Len(t, record.Entries, 3)

	// entries follow roster order and carry the roster snapshot
	assert.Equal(t, "001", record.Entries[0].RollNumber)
	assert.Equal(t, "Asha", record.Entries[0].Name)
	assert.Equal(t, domain.StatusAbsent, record.Entries[2].Status)

	assert.Len(t, store.records, 1)
}

func TestMarkAttendanceNormalizesDate(t *testing.T) {
	store, _, uc := setup()

	_, err := uc.MarkAttendance(context.Background(), teacherClaims(),
		fullDay("2024-03-01T09:00:00Z", domain.StatusPresent, domain.StatusPresent, domain.StatusPresent))
	require.NoError(t, err)

	_, err = uc.MarkAttendance(context.Background(), teacherClaims(),
		fullDay("2024-03-01T23:00:00+05:00", domain.StatusPresent, domain.StatusPresent, domain.StatusAbsent))
	require.NoError(t, err)

	// both submissions resolve to the same calendar day
	assert.Len(t, store.records, 1)
}

func TestMarkAttendanceIdempotent(t *testing.T) {
	store, _, uc := setup()
	payload := fullDay("2024-03-01", domain.StatusPresent, domain.StatusAbsent, domain.StatusLate)

	first, err := uc.MarkAttendance(context.Background(), teacherClaims(), payload)
	require.NoError(t, err)

	second, err := uc.MarkAttendance(context.Background(), teacherClaims(), payload)
	require.NoError(t, err)

	assert.Len(t, store.records, 1)
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, first.Entries, second.Entries)
	assert.Equal(t, first.CreatedAt, second.CreatedAt)
}

func TestMarkAttendanceOverwrites(t *testing.T) {
	store, _, uc := setup()

	_, err := uc.MarkAttendance(context.Background(), teacherClaims(),
		fullDay("2024-03-01", domain.StatusPresent, domain.StatusPresent, domain.StatusPresent))
	require.NoError(t, err)

	record, err := uc.MarkAttendance(context.Background(), teacherClaims(),
		fullDay("2024-03-01", domain.StatusLate, domain.StatusAbsent, domain.StatusExcused))
	require.NoError(t, err)

	assert.Len(t, store.records, 1)
	assert.Equal(t, domain.StatusLate, record.Entries[0].Status)
	assert.Equal(t, domain.StatusAbsent, record.Entries[1].Status)
	assert.Equal(t, domain.StatusExcused, record.Entries[2].Status)
}

func TestMarkAttendanceUnknownStudent(t *testing.T) {
	store, _, uc := setup()

	payload := fullDay("2024-03-01", domain.StatusPresent, domain.StatusPresent, domain.StatusPresent)
	payload.Records[2].StudentID = 99

	_, err := uc.MarkAttendance(context.Background(), teacherClaims(), payload)

	var validationErr *domain.ValidationError
	require.ErrorAs(t, err, &validationErr)
	require.NotEmpty(t, validationErr.Fields)
	assert.Contains(t, validationErr.Error(), "student 99 is not enrolled")

	// nothing was written
	assert.Empty(t, store.records)
	_, err = uc.GetAttendanceByDate(context.Background(), 1, time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC))
	var notFoundErr *domain.NotFoundError
	assert.ErrorAs(t, err, &notFoundErr)
}

func TestMarkAttendanceDuplicateStudent(t *testing.T) {
	_, _, uc := setup()

	payload := fullDay("2024-03-01", domain.StatusPresent, domain.StatusPresent, domain.StatusPresent)
	payload.Records[1].StudentID = 1

	_, err := uc.MarkAttendance(context.Background(), teacherClaims(), payload)

	var validationErr *domain.ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Contains(t, validationErr.Error(), "duplicate entry for student 1")
}

func TestMarkAttendanceInvalidStatus(t *testing.T) {
	_, _, uc := setup()

	payload := fullDay("2024-03-01", domain.StatusPresent, domain.StatusPresent, domain.StatusPresent)
	payload.Records[0].Status = "sleeping"

	_, err := uc.MarkAttendance(context.Background(), teacherClaims(), payload)

	var validationErr *domain.ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Contains(t, validationErr.Error(), `"sleeping"`)
}

func TestMarkAttendanceIncompleteRosterRejected(t *testing.T) {
	_, _, uc := setup()

	payload := &domain.MarkAttendancePayload{
		CourseID: 1,
		Date:     "2024-03-01",
		Records: []domain.MarkEntry{
			{StudentID: 1, Status: domain.StatusPresent},
		},
	}

	_, err := uc.MarkAttendance(context.Background(), teacherClaims(), payload)

	var validationErr *domain.ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Len(t, validationErr.Fields, 2)
}

func TestMarkAttendancePartialPolicyAllowsGaps(t *testing.T) {
	attendanceRepo := newFakeAttendanceRepo()
	courseRepo := newFakeCourseRepo()
	courseRepo.courses[1] = &domain.Course{ID: 1, Code: "C1", Teacher: "jane"}
	courseRepo.rosters[1] = []domain.RosterStudent{
		{StudentID: 1, RollNumber: "001", Name: "Asha"},
		{StudentID: 2, RollNumber: "002", Name: "Ben"},
	}
	uc := NewAttendanceUseCase(attendanceRepo, courseRepo, courseRepo,
		domain.MarkingPolicy{AllowPartial: true}, domain.StatsPolicy{}, 5*time.Second)

	record, err := uc.MarkAttendance(context.Background(), teacherClaims(), &domain.MarkAttendancePayload{
		CourseID: 1,
		Date:     "2024-03-01",
		Records:  []domain.MarkEntry{{StudentID: 2, Status: domain.StatusPresent}},
	})
	require.NoError(t, err)

	require.Len(t, record.Entries, 1)
	assert.Equal(t, 2, record.Entries[0].StudentID)
}

func TestMarkAttendanceFutureDateRejected(t *testing.T) {
	_, _, uc := setup()

	tomorrow := time.Now().UTC().Add(48 * time.Hour).Format("2006-01-02")
	_, err := uc.MarkAttendance(context.Background(), teacherClaims(),
		fullDay(tomorrow, domain.StatusPresent, domain.StatusPresent, domain.StatusPresent))

	var validationErr *domain.ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Contains(t, validationErr.Error(), "future")
}

func TestMarkAttendanceUnknownCourse(t *testing.T) {
	_, _, uc := setup()

	payload := fullDay("2024-03-01", domain.StatusPresent)
	payload.CourseID = 42

	_, err := uc.MarkAttendance(context.Background(), teacherClaims(), payload)

	var notFoundErr *domain.NotFoundError
	require.ErrorAs(t, err, &notFoundErr)
	assert.Equal(t, "course", notFoundErr.Resource)
}

func TestMarkAttendanceForbiddenForOtherTeacher(t *testing.T) {
	_, _, uc := setup()

	other := domain.Claims{UserID: 11, Username: "sam", Role: domain.RoleTeacher}
	_, err := uc.MarkAttendance(context.Background(), other,
		fullDay("2024-03-01", domain.StatusPresent, domain.StatusPresent, domain.StatusPresent))

	var forbiddenErr *domain.ForbiddenError
	assert.ErrorAs(t, err, &forbiddenErr)
}

func TestMarkAttendanceAdminMayMarkAnyCourse(t *testing.T) {
	_, _, uc := setup()

	admin := domain.Claims{UserID: 1, Username: "root", Role: domain.RoleAdmin}
	_, err := uc.MarkAttendance(context.Background(), admin,
		fullDay("2024-03-01", domain.StatusPresent, domain.StatusPresent, domain.StatusPresent))

	assert.NoError(t, err)
}

func TestGetCourseAttendanceEmptyIsNotAnError(t *testing.T) {
	_, _, uc := setup()

	records, err := uc.GetCourseAttendance(context.Background(), 1)

	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestGetCourseAttendanceNewestFirst(t *testing.T) {
	_, _, uc := setup()

	for _, date := range []string{"2024-03-01", "2024-03-04", "2024-03-02"} {
		_, err := uc.MarkAttendance(context.Background(), teacherClaims(),
			fullDay(date, domain.StatusPresent, domain.StatusPresent, domain.StatusPresent))
		require.NoError(t, err)
	}

	records, err := uc.GetCourseAttendance(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, records, 3)

	assert.Equal(t, "2024-03-04", records[0].Date.Format("2006-01-02"))
	assert.Equal(t, "2024-03-02", records[1].Date.Format("2006-01-02"))
	assert.Equal(t, "2024-03-01", records[2].Date.Format("2006-01-02"))
}

func TestGetAttendanceByDate(t *testing.T) {
	_, _, uc := setup()

	_, err := uc.MarkAttendance(context.Background(), teacherClaims(),
		fullDay("2024-03-01", domain.StatusPresent, domain.StatusLate, domain.StatusAbsent))
	require.NoError(t, err)

	record, err := uc.GetAttendanceByDate(context.Background(), 1, time.Date(2024, 3, 1, 17, 30, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Len(t, record.Entries, 3)

	_, err = uc.GetAttendanceByDate(context.Background(), 1, time.Date(2024, 3, 2, 0, 0, 0, 0, time.UTC))
	var notFoundErr *domain.NotFoundError
	assert.ErrorAs(t, err, &notFoundErr)
}

func TestParseDate(t *testing.T) {
	parsed, err := ParseDate("2024-03-01")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), parsed)

	parsed, err = ParseDate("2024-03-01T23:30:00-03:00")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 3, 2, 0, 0, 0, 0, time.UTC), parsed)

	_, err = ParseDate("01/03/2024")
	assert.Error(t, err)
}
