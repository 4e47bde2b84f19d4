package repository

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"gorm.io/gorm"

	"campus/domain"
)

type courseRepository struct {
	db *gorm.DB
}

func NewCourseRepository(database *gorm.DB) domain.CourseRepo {
	return &courseRepository{
		db: database,
	}
}

func (cr *courseRepository) CreateCourse(ctx context.Context, course *domain.Course) error {
	var existing domain.Course
	err := cr.db.WithContext(ctx).Where("code = ?", course.Code).First(&existing).Error
	if err == nil {
		return fmt.Errorf("course already exists with code %s", course.Code)
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return &domain.StoreError{Op: "create course", Err: err}
	}

	if err := cr.db.WithContext(ctx).Create(course).Error; err != nil {
		return &domain.StoreError{Op: "create course", Err: err}
	}

	return nil
}

func (cr *courseRepository) GetAllCourses(ctx context.Context) (*[]domain.Course, error) {
	var courses []domain.Course
	if err := cr.db.WithContext(ctx).Order("code ASC").Find(&courses).Error; err != nil {
		return nil, &domain.StoreError{Op: "get all courses", Err: err}
	}

	return &courses, nil
}

func (cr *courseRepository) GetCourseByID(ctx context.Context, id int) (*domain.Course, error) {
	var course domain.Course
	err := cr.db.WithContext(ctx).First(&course, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &domain.NotFoundError{Resource: "course", Key: strconv.Itoa(id)}
		}
		return nil, &domain.StoreError{Op: "get course by id", Err: err}
	}

	return &course, nil
}

func (cr *courseRepository) CreateStudent(ctx context.Context, student *domain.Student) error {
	if err := cr.db.WithContext(ctx).Create(student).Error; err != nil {
		return &domain.StoreError{Op: "create student", Err: err}
	}

	return nil
}

func (cr *courseRepository) GetAllStudents(ctx context.Context) (*[]domain.Student, error) {
	var students []domain.Student
	if err := cr.db.WithContext(ctx).Order("name ASC").Find(&students).Error; err != nil {
		return nil, &domain.StoreError{Op: "get all students", Err: err}
	}

	return &students, nil
}

func (cr *courseRepository) Enroll(ctx context.Context, enrollment *domain.Enrollment) error {
	var course domain.Course
	if err := cr.db.WithContext(ctx).First(&course, enrollment.CourseID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &domain.NotFoundError{Resource: "course", Key: strconv.Itoa(enrollment.CourseID)}
		}
		return &domain.StoreError{Op: "enroll student", Err: err}
	}

	var student domain.Student
	if err := cr.db.WithContext(ctx).First(&student, enrollment.StudentID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &domain.NotFoundError{Resource: "student", Key: strconv.Itoa(enrollment.StudentID)}
		}
		return &domain.StoreError{Op: "enroll student", Err: err}
	}

	if err := cr.db.WithContext(ctx).Create(enrollment).Error; err != nil {
		return &domain.StoreError{Op: "enroll student", Err: err}
	}

	return nil
}

func (cr *courseRepository) Unenroll(ctx context.Context, courseID, studentID int) error {
	result := cr.db.WithContext(ctx).
		Where("course_id = ? AND student_id = ?", courseID, studentID).
		Delete(&domain.Enrollment{})
	if result.Error != nil {
		return &domain.StoreError{Op: "unenroll student", Err: result.Error}
	}
	if result.RowsAffected == 0 {
		return &domain.NotFoundError{
			Resource: "enrollment",
			Key:      fmt.Sprintf("course %d student %d", courseID, studentID),
		}
	}

	return nil
}

// Roster answers the current enrolled-student list, ordered by roll number.
// Past attendance records keep their own snapshot of these fields.
func (cr *courseRepository) Roster(ctx context.Context, courseID int) ([]domain.RosterStudent, error) {
	var roster []domain.RosterStudent
	err := cr.db.WithContext(ctx).
		Table("enrollments e").
		Select("e.student_id, e.roll_number, s.name").
		Joins("JOIN students s ON s.id = e.student_id").
		Where("e.course_id = ?", courseID).
		Order("e.roll_number ASC").
		Scan(&roster).Error
	if err != nil {
		return nil, &domain.StoreError{Op: "get roster", Err: err}
	}

	return roster, nil
}
