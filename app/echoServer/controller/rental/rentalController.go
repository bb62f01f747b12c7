package rental

import (
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"rentaldesk/app/echoServer/jwtx"
	"rentaldesk/model"
	rentalsvc "rentaldesk/service/rental"
	"rentaldesk/util/fee"
)

type Controller struct {
	Svc rentalsvc.Service
	V   *validator.Validate
	Log *slog.Logger
}

// POST /api/rentals/create/
func (h *Controller) Create(c echo.Context) error {
	var req model.CreateRentalReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid JSON"})
	}
	if err := h.V.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Book title is required"})
	}

	out, err := h.Svc.Create(c.Request().Context(), req.StudentID, req.Title)
	if err != nil {
		switch rentalsvc.Code(err) {
		case rentalsvc.ErrStudentNotFound:
			return c.JSON(http.StatusNotFound, echo.Map{"error": "Student not found"})
		case rentalsvc.ErrBookNotFound:
			return c.JSON(http.StatusNotFound, echo.Map{"error": "Book not found in OpenLibrary"})
		case rentalsvc.ErrNoPageCount:
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "Book has no page count; cannot price the rental"})
		default:
			h.Log.Error("rental create", "err", err)
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal error"})
		}
	}

	actor, _ := jwtx.EmailFromContext(c)
	h.Log.Info("rental created", "rental_id", out.Rental.ID, "book", out.Book.Title, "actor", actor)

	return c.JSON(http.StatusCreated, echo.Map{
		"message": fmt.Sprintf("Book '%s' rented successfully!", out.Book.Title),
		"rental":  detailView(out),
	})
}

// POST /api/rentals/extend/:id/
func (h *Controller) Extend(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid rental id"})
	}

	var req model.ExtendRentalReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid JSON"})
	}
	if err := h.V.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "extra_days must be a positive number"})
	}

	out, err := h.Svc.Extend(c.Request().Context(), id, req.ExtraDays)
	if err != nil {
		switch rentalsvc.Code(err) {
		case rentalsvc.ErrRentalNotFound:
			return c.JSON(http.StatusNotFound, echo.Map{"error": "Rental not found"})
		case rentalsvc.ErrAlreadyReturned:
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "Cannot extend a returned rental"})
		case rentalsvc.ErrBadExtension:
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "extra_days must be a positive number"})
		default:
			h.Log.Error("rental extend", "err", err, "rental_id", id)
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal error"})
		}
	}

	return c.JSON(http.StatusOK, echo.Map{
		"message": fmt.Sprintf("Rental extended successfully by %d month(s)!", fee.MonthsFromDays(req.ExtraDays)),
		"rental":  detailView(out),
	})
}

// PUT /api/rentals/return/:id/
func (h *Controller) Return(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid rental id"})
	}

	out, err := h.Svc.Return(c.Request().Context(), id)
	if err != nil {
		switch rentalsvc.Code(err) {
		case rentalsvc.ErrRentalNotFound:
			return c.JSON(http.StatusNotFound, echo.Map{"error": "Rental not found"})
		case rentalsvc.ErrAlreadyReturned:
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "Rental already returned"})
		default:
			h.Log.Error("rental return", "err", err, "rental_id", id)
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal error"})
		}
	}

	actor, _ := jwtx.EmailFromContext(c)
	h.Log.Info("rental returned", "rental_id", out.Rental.ID, "actor", actor)

	return c.JSON(http.StatusOK, echo.Map{
		"message": fmt.Sprintf("'%s' returned successfully!", out.Book.Title),
		"rental":  detailView(out),
	})
}

// GET /api/rentals/list/
func (h *Controller) ListAll(c echo.Context) error {
	rows, total, err := h.Svc.ListAll(c.Request().Context())
	if err != nil {
		h.Log.Error("rental list", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal error"})
	}

	rentals := make([]echo.Map, 0, len(rows))
	for _, r := range rows {
		rentals = append(rentals, rowView(r))
	}

	return c.JSON(http.StatusOK, echo.Map{
		"total_rentals":        len(rentals),
		"total_fees_collected": fee.Format(total),
		"rentals":              rentals,
	})
}

// GET /api/rentals/student/:id/
func (h *Controller) ByStudent(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid student id"})
	}

	student, rows, total, err := h.Svc.ByStudent(c.Request().Context(), id)
	if err != nil {
		switch rentalsvc.Code(err) {
		case rentalsvc.ErrStudentNotFound:
			return c.JSON(http.StatusNotFound, echo.Map{"error": "Student not found"})
		default:
			h.Log.Error("student rentals", "err", err, "student_id", id)
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal error"})
		}
	}

	rentals := make([]echo.Map, 0, len(rows))
	for _, r := range rows {
		rentals = append(rentals, historyView(r))
	}

	return c.JSON(http.StatusOK, echo.Map{
		"student":       studentView(student),
		"rentals":       rentals,
		"total_rentals": len(rentals),
		"total_fees":    fee.Format(total),
	})
}
