package analytics

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	analyticssvc "rentaldesk/service/analytics"
)

type Controller struct {
	Svc analyticssvc.Service
	Log *slog.Logger
}

// GET /api/analytics/
func (h *Controller) Overview(c echo.Context) error {
	out, err := h.Svc.Overview(c.Request().Context())
	if err != nil {
		h.Log.Error("analytics overview", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal error"})
	}

	topBooks := make([]echo.Map, 0, len(out.TopBooks))
	for _, t := range out.TopBooks {
		topBooks = append(topBooks, echo.Map{
			"id":           t.Book.ID,
			"title":        t.Book.Title,
			"author":       t.Book.Author,
			"pages":        t.Book.Pages,
			"cover_url":    t.Book.CoverURL,
			"rental_count": t.RentalCount,
		})
	}

	revenueByMonth := make(map[string]string, len(out.RevenueByMonth))
	for _, m := range out.RevenueByMonth {
		revenueByMonth[m.Month] = m.Revenue.StringFixed(2)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"total_rentals":    out.TotalRentals,
		"active_rentals":   out.ActiveRentals,
		"total_revenue":    out.TotalRevenue.StringFixed(2),
		"total_students":   out.TotalStudents,
		"total_books":      out.TotalBooks,
		"top_books":        topBooks,
		"revenue_by_month": revenueByMonth,
	})
}

// GET /api/recommendations/:student_id/
func (h *Controller) Recommendations(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("student_id"), 10, 64)
	if err != nil || id <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid student id"})
	}

	books, err := h.Svc.Recommendations(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, analyticssvc.ErrStudentNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "Student not found"})
		}
		h.Log.Error("recommendations", "err", err, "student_id", id)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal error"})
	}

	results := make([]echo.Map, 0, len(books))
	for _, b := range books {
		results = append(results, echo.Map{
			"id":        b.ID,
			"title":     b.Title,
			"author":    b.Author,
			"pages":     b.Pages,
			"cover_url": b.CoverURL,
		})
	}
	return c.JSON(http.StatusOK, echo.Map{"results": results})
}
