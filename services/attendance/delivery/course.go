package delivery

import (
	"strconv"

	"github.com/asaskevich/govalidator"
	"github.com/gofiber/fiber/v2"

	"campus/config"
	"campus/domain"
	"campus/middleware"
)

type courseHandler struct {
	uc domain.CourseUseCase
}

func NewCourseHandler(app *fiber.App, uc domain.CourseUseCase) {
	handler := &courseHandler{
		uc: uc,
	}

	course := app.Group("/course", middleware.AuthRequired())
	course.Post("/insert", middleware.RoleRequired(domain.RoleAdmin), handler.CreateCourse)
	course.Get("/get_all", middleware.RoleRequired(domain.RoleAdmin, domain.RoleTeacher), handler.GetAllCourses)
	course.Get("/get/:id", middleware.RoleRequired(domain.RoleAdmin, domain.RoleTeacher), handler.GetCourseByID)
	course.Get("/roster/:id", middleware.RoleRequired(domain.RoleAdmin, domain.RoleTeacher), handler.GetRoster)
	course.Post("/enroll", middleware.RoleRequired(domain.RoleAdmin), handler.Enroll)
	course.Delete("/unenroll/:courseID/:studentID", middleware.RoleRequired(domain.RoleAdmin), handler.Unenroll)

	student := app.Group("/student", middleware.AuthRequired())
	student.Post("/insert", middleware.RoleRequired(domain.RoleAdmin), handler.CreateStudent)
	student.Get("/get_all", middleware.RoleRequired(domain.RoleAdmin, domain.RoleTeacher), handler.GetAllStudents)
}

func (h *courseHandler) CreateCourse(c *fiber.Ctx) error {
	userToken := c.Locals("user").(*domain.Claims)

	var course domain.Course
	if err := c.BodyParser(&course); err != nil {
		config.PrintLogInfo(&userToken.Username, fiber.StatusBadRequest, "CreateCourse")
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"error":   err.Error(),
			"message": "Invalid request body",
		})
	}

	if _, err := govalidator.ValidateStruct(course); err != nil {
		config.PrintLogInfo(&userToken.Username, fiber.StatusBadRequest, "CreateCourse")
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"error":   err.Error(),
			"message": "Invalid course data",
		})
	}

	if err := h.uc.CreateCourse(c.Context(), &course); err != nil {
		status := statusForError(err)
		config.PrintLogInfo(&userToken.Username, status, "CreateCourse")
		return c.Status(status).JSON(errorBody(err, "Failed to create course"))
	}

	config.PrintLogInfo(&userToken.Username, fiber.StatusCreated, "CreateCourse")
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"message": "Course created successfully",
		"data":    course,
	})
}

func (h *courseHandler) GetAllCourses(c *fiber.Ctx) error {
	userToken := c.Locals("user").(*domain.Claims)

	courses, err := h.uc.GetAllCourses(c.Context())
	if err != nil {
		status := statusForError(err)
		config.PrintLogInfo(&userToken.Username, status, "GetAllCourses")
		return c.Status(status).JSON(errorBody(err, "Failed to get courses"))
	}

	config.PrintLogInfo(&userToken.Username, fiber.StatusOK, "GetAllCourses")
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"message": "Courses retrieved successfully",
		"data":    courses,
	})
}

func (h *courseHandler) GetCourseByID(c *fiber.Ctx) error {
	userToken := c.Locals("user").(*domain.Claims)

	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		config.PrintLogInfo(&userToken.Username, fiber.StatusBadRequest, "GetCourseByID")
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"error":   "converter failure",
			"message": "Invalid course id",
		})
	}

	course, err := h.uc.GetCourseByID(c.Context(), id)
	if err != nil {
		status := statusForError(err)
		config.PrintLogInfo(&userToken.Username, status, "GetCourseByID")
		return c.Status(status).JSON(errorBody(err, "Failed to get course"))
	}

	config.PrintLogInfo(&userToken.Username, fiber.StatusOK, "GetCourseByID")
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"message": "Course retrieved successfully",
		"data":    course,
	})
}

func (h *courseHandler) GetRoster(c *fiber.Ctx) error {
	userToken := c.Locals("user").(*domain.Claims)

	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		config.PrintLogInfo(&userToken.Username, fiber.StatusBadRequest, "GetRoster")
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"error":   "converter failure",
			"message": "Invalid course id",
		})
	}

	roster, err := h.uc.Roster(c.Context(), id)
	if err != nil {
		status := statusForError(err)
		config.PrintLogInfo(&userToken.Username, status, "GetRoster")
		return c.Status(status).JSON(errorBody(err, "Failed to get roster"))
	}

	config.PrintLogInfo(&userToken.Username, fiber.StatusOK, "GetRoster")
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"message": "Roster retrieved successfully",
		"data":    roster,
	})
}

func (h *courseHandler) Enroll(c *fiber.Ctx) error {
	userToken := c.Locals("user").(*domain.Claims)

	var enrollment domain.Enrollment
	if err := c.BodyParser(&enrollment); err != nil {
		config.PrintLogInfo(&userToken.Username, fiber.StatusBadRequest, "Enroll")
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"error":   err.Error(),
			"message": "Invalid request body",
		})
	}

	if _, err := govalidator.ValidateStruct(enrollment); err != nil {
		config.PrintLogInfo(&userToken.Username, fiber.StatusBadRequest, "Enroll")
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"error":   err.Error(),
			"message": "Invalid enrollment data",
		})
	}

	if err := h.uc.Enroll(c.Context(), &enrollment); err != nil {
		status := statusForError(err)
		config.PrintLogInfo(&userToken.Username, status, "Enroll")
		return c.Status(status).JSON(errorBody(err, "Failed to enroll student"))
	}

	config.PrintLogInfo(&userToken.Username, fiber.StatusCreated, "Enroll")
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"message": "Student enrolled successfully",
		"data":    enrollment,
	})
}

func (h *courseHandler) Unenroll(c *fiber.Ctx) error {
	userToken := c.Locals("user").(*domain.Claims)

	courseID, err := strconv.Atoi(c.Params("courseID"))
	if err != nil {
		config.PrintLogInfo(&userToken.Username, fiber.StatusBadRequest, "Unenroll")
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"error":   "converter failure",
			"message": "Invalid course id",
		})
	}

	studentID, err := strconv.Atoi(c.Params("studentID"))
	if err != nil {
		config.PrintLogInfo(&userToken.Username, fiber.StatusBadRequest, "Unenroll")
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"error":   "converter failure",
			"message": "Invalid student id",
		})
	}

	if err := h.uc.Unenroll(c.Context(), courseID, studentID); err != nil {
		status := statusForError(err)
		config.PrintLogInfo(&userToken.Username, status, "Unenroll")
		return c.Status(status).JSON(errorBody(err, "Failed to unenroll student"))
	}

	config.PrintLogInfo(&userToken.Username, fiber.StatusOK, "Unenroll")
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"message": "Student unenrolled successfully",
	})
}

func (h *courseHandler) CreateStudent(c *fiber.Ctx) error {
	userToken := c.Locals("user").(*domain.Claims)

	var student domain.Student
	if err := c.BodyParser(&student); err != nil {
		config.PrintLogInfo(&userToken.Username, fiber.StatusBadRequest, "CreateStudent")
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"error":   err.Error(),
			"message": "Invalid request body",
		})
	}

	if _, err := govalidator.ValidateStruct(student); err != nil {
		config.PrintLogInfo(&userToken.Username, fiber.StatusBadRequest, "CreateStudent")
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"error":   err.Error(),
			"message": "Invalid student data",
		})
	}

	if err := h.uc.CreateStudent(c.Context(), &student); err != nil {
		status := statusForError(err)
		config.PrintLogInfo(&userToken.Username, status, "CreateStudent")
		return c.Status(status).JSON(errorBody(err, "Failed to create student"))
	}

	config.PrintLogInfo(&userToken.Username, fiber.StatusCreated, "CreateStudent")
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"message": "Student created successfully",
		"data":    student,
	})
}

func (h *courseHandler) GetAllStudents(c *fiber.Ctx) error {
	userToken := c.Locals("user").(*domain.Claims)

	students, err := h.uc.GetAllStudents(c.Context())
	if err != nil {
		status := statusForError(err)
		config.PrintLogInfo(&userToken.Username, status, "GetAllStudents")
		return c.Status(status).JSON(errorBody(err, "Failed to get students"))
	}

	config.PrintLogInfo(&userToken.Username, fiber.StatusOK, "GetAllStudents")
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"message": "Students retrieved successfully",
		"data":    students,
	})
}
