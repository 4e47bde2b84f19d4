package usecase

import (
	"context"
	"time"

	"campus/domain"
)

type courseUC struct {
	courseRepo domain.CourseRepo
	TimeOut    time.Duration
}

func NewCourseUseCase(repo domain.CourseRepo, timeOut time.Duration) domain.CourseUseCase {
	return &courseUC{
		courseRepo: repo,
		TimeOut:    timeOut,
	}
}

func (cu *courseUC) CreateCourse(ctx context.Context, course *domain.Course) error {
	ctx, cancel := context.WithTimeout(ctx, cu.TimeOut)
	defer cancel()

	return cu.courseRepo.CreateCourse(ctx, course)
}

func (cu *courseUC) GetAllCourses(ctx context.Context) (*[]domain.Course, error) {
	ctx, cancel := context.WithTimeout(ctx, cu.TimeOut)
	defer cancel()

	return cu.courseRepo.GetAllCourses(ctx)
}

func (cu *courseUC) GetCourseByID(ctx context.Context, id int) (*domain.Course, error) {
	ctx, cancel := context.WithTimeout(ctx, cu.TimeOut)
	defer cancel()

	return cu.courseRepo.GetCourseByID(ctx, id)
}

func (cu *courseUC) CreateStudent(ctx context.Context, student *domain.Student) error {
	ctx, cancel := context.WithTimeout(ctx, cu.TimeOut)
	defer cancel()

	return cu.courseRepo.CreateStudent(ctx, student)
}

func (cu *courseUC) GetAllStudents(ctx context.Context) (*[]domain.Student, error) {
	ctx, cancel := context.WithTimeout(ctx, cu.TimeOut)
	defer cancel()

	return cu.courseRepo.GetAllStudents(ctx)
}

func (cu *courseUC) Enroll(ctx context.Context, enrollment *domain.Enrollment) error {
	ctx, cancel := context.WithTimeout(ctx, cu.TimeOut)
	defer cancel()

	return cu.courseRepo.Enroll(ctx, enrollment)
}

func (cu *courseUC) Unenroll(ctx context.Context, courseID, studentID int) error {
	ctx, cancel := context.WithTimeout(ctx, cu.TimeOut)
	defer cancel()

	return cu.courseRepo.Unenroll(ctx, courseID, studentID)
}

func (cu *courseUC) Roster(ctx context.Context, courseID int) ([]domain.RosterStudent, error) {
	ctx, cancel := context.WithTimeout(ctx, cu.TimeOut)
	defer cancel()

	return cu.courseRepo.Roster(ctx, courseID)
}
