package student

import (
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"rentaldesk/app/echoServer/jwtx"
	"rentaldesk/model"
	studentsvc "rentaldesk/service/student"
)

type Controller struct {
	Svc studentsvc.Service
	V   *validator.Validate
	Log *slog.Logger
}

// POST /api/students/add/
func (h *Controller) Add(c echo.Context) error {
	var req model.AddStudentReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Student name and email are required."})
	}
	if err := h.V.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Student name and email are required."})
	}

	out, err := h.Svc.Add(c.Request().Context(), req)
	if err != nil {
		switch studentsvc.Code(err) {
		case studentsvc.ErrEmailTaken:
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "A user with this email already exists."})
		case studentsvc.ErrBadInput:
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "Student name and email are required."})
		default:
			h.Log.Error("add student", "err", err)
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Something went wrong while creating student profile. Please try again later."})
		}
	}

	actorID, _ := jwtx.UserIDFromContext(c)
	h.Log.Info("student created", "student_id", out.Student.ID, "created_by", actorID)

	return c.JSON(http.StatusCreated, echo.Map{
		"message": "Student profile created successfully!",
		"student": echo.Map{
			"id":               out.Student.ID,
			"stu_id":           out.Student.StuID,
			"student_name":     out.Student.StudentName,
			"email":            out.Student.Email,
			"default_password": studentsvc.DefaultPassword,
		},
		"tokens": out.Tokens,
	})
}

// GET /api/student/list/?search=
func (h *Controller) List(c echo.Context) error {
	students, err := h.Svc.List(c.Request().Context(), c.QueryParam("search"))
	if err != nil {
		h.Log.Error("student list", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Something went wrong while fetching students."})
	}

	results := make([]echo.Map, 0, len(students))
	for _, s := range students {
		results = append(results, echo.Map{
			"id":           s.ID,
			"stu_id":       s.StuID,
			"student_name": s.StudentName,
			"email":        s.Email,
			"date_created": s.DateCreated.Format("2006-01-02 15:04:05"),
		})
	}

	return c.JSON(http.StatusOK, echo.Map{
		"count":   len(results),
		"results": results,
	})
}
