package domain

import (
	"context"
	"time"
)

type Course struct {
	ID        int       `gorm:"primaryKey;autoIncrement" json:"id"`
	Code      string    `gorm:"type:varchar(20);not null;unique" json:"code" valid:"required~Course code is required"`
	Name      string    `gorm:"type:varchar(150);not null" json:"name" valid:"required~Course name is required"`
	Teacher   string    `gorm:"type:varchar(100);not null" json:"teacher" valid:"required~Teacher is required"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

type Student struct {
	ID        int       `gorm:"primaryKey;autoIncrement" json:"id"`
	Name      string    `gorm:"type:varchar(150);not null" json:"name" valid:"required~Name is required"`
	Telephone string    `gorm:"type:varchar(15)" json:"telephone"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// Enrollment links a student to a course. The roll number is scoped to the
// enrollment, not the student.
type Enrollment struct {
	ID         int       `gorm:"primaryKey;autoIncrement" json:"id"`
	CourseID   int       `gorm:"not null;uniqueIndex:idx_course_student" json:"course_id" valid:"required~Course ID is required"`
	StudentID  int       `gorm:"not null;uniqueIndex:idx_course_student" json:"student_id" valid:"required~Student ID is required"`
	RollNumber string    `gorm:"type:varchar(20);not null" json:"roll_number" valid:"required~Roll number is required"`
	EnrolledAt time.Time `gorm:"autoCreateTime" json:"enrolled_at"`
}

// RosterStudent is one row of the roster as the attendance core sees it.
type RosterStudent struct {
	StudentID  int    `json:"student_id"`
	RollNumber string `json:"roll_number"`
	Name       string `json:"name"`
}

// RosterProvider answers the enrolled-student list for a course as of now,
// ordered by roll number. The attendance core only ever reads from it.
type RosterProvider interface {
	Roster(ctx context.Context, courseID int) ([]RosterStudent, error)
}

type CourseRepo interface {
	CreateCourse(ctx context.Context, course *Course) error
	GetAllCourses(ctx context.Context) (*[]Course, error)
	GetCourseByID(ctx context.Context, id int) (*Course, error)
	CreateStudent(ctx context.Context, student *Student) error
	GetAllStudents(ctx context.Context) (*[]Student, error)
	Enroll(ctx context.Context, enrollment *Enrollment) error
	Unenroll(ctx context.Context, courseID, studentID int) error
	Roster(ctx context.Context, courseID int) ([]RosterStudent, error)
}

type CourseUseCase interface {
	CreateCourse(ctx context.Context, course *Course) error
	GetAllCourses(ctx context.Context) (*[]Course, error)
	GetCourseByID(ctx context.Context, id int) (*Course, error)
	CreateStudent(ctx context.Context, student *Student) error
	GetAllStudents(ctx context.Context) (*[]Student, error)
	Enroll(ctx context.Context, enrollment *Enrollment) error
	Unenroll(ctx context.Context, courseID, studentID int) error
	Roster(ctx context.Context, courseID int) ([]RosterStudent, error)
}
