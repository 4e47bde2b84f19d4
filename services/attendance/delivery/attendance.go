package delivery

import (
	"errors"
	"strconv"

	"github.com/asaskevich/govalidator"
	"github.com/gofiber/fiber/v2"

	"campus/config"
	"campus/domain"
	"campus/middleware"
	"campus/services/attendance/usecase"
)

type attendanceHandler struct {
	uc domain.AttendanceUseCase
}

func NewAttendanceHandler(app *fiber.App, uc domain.AttendanceUseCase) {
	handler := &attendanceHandler{
		uc: uc,
	}

	route := app.Group("/attendance", middleware.AuthRequired(), middleware.RoleRequired(domain.RoleTeacher, domain.RoleAdmin))
	route.Post("/mark", handler.MarkAttendance)
	route.Get("/course/:courseID", handler.GetCourseAttendance)
	route.Get("/course/:courseID/date/:date", handler.GetAttendanceByDate)
	route.Get("/stats/:courseID/:studentID", handler.GetStudentStats)
	route.Get("/summary/:courseID", handler.GetCourseSummary)
}

// statusForError maps the domain error taxonomy onto HTTP statuses.
func statusForError(err error) int {
	var validationErr *domain.ValidationError
	var notFoundErr *domain.NotFoundError
	var forbiddenErr *domain.ForbiddenError
	var conflictErr *domain.ConflictError
	var storeErr *domain.StoreError

	switch {
	case errors.As(err, &validationErr):
		return fiber.StatusBadRequest
	case errors.As(err, &notFoundErr):
		return fiber.StatusNotFound
	case errors.As(err, &forbiddenErr):
		return fiber.StatusForbidden
	case errors.As(err, &conflictErr):
		return fiber.StatusConflict
	case errors.As(err, &storeErr):
		// marking is idempotent per (course, date), safe for the caller to retry
		return fiber.StatusServiceUnavailable
	default:
		return fiber.StatusInternalServerError
	}
}

func errorBody(err error, message string) fiber.Map {
	body := fiber.Map{
		"success": false,
		"error":   err.Error(),
		"message": message,
	}

	var validationErr *domain.ValidationError
	if errors.As(err, &validationErr) && len(validationErr.Fields) > 0 {
		body["fields"] = validationErr.Fields
	}

	return body
}

func (h *attendanceHandler) MarkAttendance(c *fiber.Ctx) error {
	userToken := c.Locals("user").(*domain.Claims)

	var payload domain.MarkAttendancePayload
	if err := c.BodyParser(&payload); err != nil {
		config.PrintLogInfo(&userToken.Username, fiber.StatusBadRequest, "MarkAttendance")
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"error":   err.Error(),
			"message": "Invalid request body",
		})
	}

	if _, err := govalidator.ValidateStruct(payload); err != nil {
		config.PrintLogInfo(&userToken.Username, fiber.StatusBadRequest, "MarkAttendance")
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"error":   err.Error(),
			"message": "Invalid attendance data",
		})
	}

	if len(payload.Records) == 0 {
		config.PrintLogInfo(&userToken.Username, fiber.StatusBadRequest, "MarkAttendance")
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"error":   "records is empty",
			"message": "Invalid attendance data",
		})
	}

	record, err := h.uc.MarkAttendance(c.Context(), *userToken, &payload)
	if err != nil {
		status := statusForError(err)
		config.PrintLogInfo(&userToken.Username, status, "MarkAttendance")
		return c.Status(status).JSON(errorBody(err, "Failed to mark attendance"))
	}

	config.PrintLogInfo(&userToken.Username, fiber.StatusCreated, "MarkAttendance")
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"message": "Attendance marked successfully",
		"data":    record,
	})
}

func (h *attendanceHandler) GetCourseAttendance(c *fiber.Ctx) error {
	userToken := c.Locals("user").(*domain.Claims)

	courseID, err := strconv.Atoi(c.Params("courseID"))
	if err != nil {
		config.PrintLogInfo(&userToken.Username, fiber.StatusBadRequest, "GetCourseAttendance")
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"error":   "converter failure",
			"message": "Invalid course id",
		})
	}

	records, err := h.uc.GetCourseAttendance(c.Context(), courseID)
	if err != nil {
		status := statusForError(err)
		config.PrintLogInfo(&userToken.Username, status, "GetCourseAttendance")
		return c.Status(status).JSON(errorBody(err, "Failed to get course attendance"))
	}

	config.PrintLogInfo(&userToken.Username, fiber.StatusOK, "GetCourseAttendance")
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"message": "Attendance retrieved successfully",
		"data":    records,
	})
}

func (h *attendanceHandler) GetAttendanceByDate(c *fiber.Ctx) error {
	userToken := c.Locals("user").(*domain.Claims)

	courseID, err := strconv.Atoi(c.Params("courseID"))
	if err != nil {
		config.PrintLogInfo(&userToken.Username, fiber.StatusBadRequest, "GetAttendanceByDate")
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"error":   "converter failure",
			"message": "Invalid course id",
		})
	}

	date, err := usecase.ParseDate(c.Params("date"))
	if err != nil {
		config.PrintLogInfo(&userToken.Username, fiber.StatusBadRequest, "GetAttendanceByDate")
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"error":   err.Error(),
			"message": "Invalid date",
		})
	}

	record, err := h.uc.GetAttendanceByDate(c.Context(), courseID, date)
	if err != nil {
		status := statusForError(err)
		config.PrintLogInfo(&userToken.Username, status, "GetAttendanceByDate")
		return c.Status(status).JSON(errorBody(err, "Failed to get attendance for date"))
	}

	config.PrintLogInfo(&userToken.Username, fiber.StatusOK, "GetAttendanceByDate")
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"message": "Attendance retrieved successfully",
		"data":    record,
	})
}

func (h *attendanceHandler) GetStudentStats(c *fiber.Ctx) error {
	userToken := c.Locals("user").(*domain.Claims)

	courseID, err := strconv.Atoi(c.Params("courseID"))
	if err != nil {
		config.PrintLogInfo(&userToken.Username, fiber.StatusBadRequest, "GetStudentStats")
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"error":   "converter failure",
			"message": "Invalid course id",
		})
	}

	studentID, err := strconv.Atoi(c.Params("studentID"))
	if err != nil {
		config.PrintLogInfo(&userToken.Username, fiber.StatusBadRequest, "GetStudentStats")
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"error":   "converter failure",
			"message": "Invalid student id",
		})
	}

	stats, err := h.uc.StudentStats(c.Context(), courseID, studentID)
	if err != nil {
		status := statusForError(err)
		config.PrintLogInfo(&userToken.Username, status, "GetStudentStats")
		return c.Status(status).JSON(errorBody(err, "Failed to get student statistics"))
	}

	config.PrintLogInfo(&userToken.Username, fiber.StatusOK, "GetStudentStats")
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"message": "Statistics retrieved successfully",
		"data":    stats,
	})
}

func (h *attendanceHandler) GetCourseSummary(c *fiber.Ctx) error {
	userToken := c.Locals("user").(*domain.Claims)

	courseID, err := strconv.Atoi(c.Params("courseID"))
	if err != nil {
		config.PrintLogInfo(&userToken.Username, fiber.StatusBadRequest, "GetCourseSummary")
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"error":   "converter failure",
			"message": "Invalid course id",
		})
	}

	summary, err := h.uc.CourseSummary(c.Context(), courseID)
	if err != nil {
		status := statusForError(err)
		config.PrintLogInfo(&userToken.Username, status, "GetCourseSummary")
		return c.Status(status).JSON(errorBody(err, "Failed to get course summary"))
	}

	config.PrintLogInfo(&userToken.Username, fiber.StatusOK, "GetCourseSummary")
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"message": "Summary retrieved successfully",
		"data":    summary,
	})
}
