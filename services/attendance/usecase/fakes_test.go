package usecase

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"time"

	"campus/domain"
)

type fakeAttendanceRepo struct {
	records map[string]*domain.AttendanceRecord
	nextID  int
}

func newFakeAttendanceRepo() *fakeAttendanceRepo {
	return &fakeAttendanceRepo{records: make(map[string]*domain.AttendanceRecord)}
}

func key(courseID int, date time.Time) string {
	return fmt.Sprintf("%d/%s", courseID, domain.NormalizeDate(date).Format("2006-01-02"))
}

func (f *fakeAttendanceRepo) Upsert(ctx context.Context, record *domain.AttendanceRecord) error {
	now := time.Now().UTC()
	k := key(record.CourseID, record.Date)
	if existing, ok := f.records[k]; ok {
		record.ID = existing.ID
		record.CreatedAt = existing.CreatedAt
	} else {
		f.nextID++
		record.ID = f.nextID
		record.CreatedAt = now
	}
	record.UpdatedAt = now

	stored := *record
	stored.Entries = append([]domain.AttendanceEntry(nil), record.Entries...)
	f.records[k] = &stored
	return nil
}

func (f *fakeAttendanceRepo) GetByCourse(ctx context.Context, courseID int) ([]domain.AttendanceRecord, error) {
	out := []domain.AttendanceRecord{}
	for _, record := range f.records {
		if record.CourseID == courseID {
			out = append(out, *record)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.After(out[j].Date) })
	return out, nil
}

func (f *fakeAttendanceRepo) GetByCourseAndDate(ctx context.Context, courseID int, date time.Time) (*domain.AttendanceRecord, error) {
	if record, ok := f.records[key(courseID, date)]; ok {
		copied := *record
		return &copied, nil
	}
	return nil, &domain.NotFoundError{
		Resource: "attendance record",
		Key:      fmt.Sprintf("course %d on %s", courseID, domain.NormalizeDate(date).Format("2006-01-02")),
	}
}

type fakeCourseRepo struct {
	courses map[int]*domain.Course
	rosters map[int][]domain.RosterStudent
}

func newFakeCourseRepo() *fakeCourseRepo {
	return &fakeCourseRepo{
		courses: make(map[int]*domain.Course),
		rosters: make(map[int][]domain.RosterStudent),
	}
}

func (f *fakeCourseRepo) GetCourseByID(ctx context.Context, id int) (*domain.Course, error) {
	if course, ok := f.courses[id]; ok {
		return course, nil
	}
	return nil, &domain.NotFoundError{Resource: "course", Key: strconv.Itoa(id)}
}

func (f *fakeCourseRepo) Roster(ctx context.Context, courseID int) ([]domain.RosterStudent, error) {
	return f.rosters[courseID], nil
}

func (f *fakeCourseRepo) CreateCourse(ctx context.Context, course *domain.Course) error {
	f.courses[course.ID] = course
	return nil
}

func (f *fakeCourseRepo) GetAllCourses(ctx context.Context) (*[]domain.Course, error) {
	courses := []domain.Course{}
	for _, course := range f.courses {
		courses = append(courses, *course)
	}
	return &courses, nil
}

func (f *fakeCourseRepo) CreateStudent(ctx context.Context, student *domain.Student) error {
	return nil
}

func (f *fakeCourseRepo) GetAllStudents(ctx context.Context) (*[]domain.Student, error) {
	return &[]domain.Student{}, nil
}

func (f *fakeCourseRepo) Enroll(ctx context.Context, enrollment *domain.Enrollment) error {
	return nil
}

func (f *fakeCourseRepo) Unenroll(ctx context.Context, courseID, studentID int) error {
	return nil
}

func setup() (*fakeAttendanceRepo, *fakeCourseRepo, domain.AttendanceUseCase) {
	attendanceRepo := newFakeAttendanceRepo()
	courseRepo := newFakeCourseRepo()

	courseRepo.courses[1] = &domain.Course{ID: 1, Code: "C1", Name: "Algorithms", Teacher: "jane"}
	courseRepo.rosters[1] = []domain.RosterStudent{
		{StudentID: 1, RollNumber: "001", Name: "Asha"},
		{StudentID: 2, RollNumber: "002", Name: "Ben"},
		{StudentID: 3, RollNumber: "003", Name: "Chen"},
	}

	uc := NewAttendanceUseCase(
		attendanceRepo,
		courseRepo,
		courseRepo,
		domain.MarkingPolicy{},
		domain.StatsPolicy{},
		5*time.Second,
	)

	return attendanceRepo, courseRepo, uc
}

func teacherClaims() domain.Claims {
	return domain.Claims{UserID: 10, Username: "jane", Role: domain.RoleTeacher}
}

func fullDay(date string, statuses ...domain.AttendanceStatus) *domain.MarkAttendancePayload {
	payload := &domain.MarkAttendancePayload{CourseID: 1, Date: date}
	for i, status := range statuses {
		payload.Records = append(payload.Records, domain.MarkEntry{StudentID: i + 1, Status: status})
	}
	return payload
}
