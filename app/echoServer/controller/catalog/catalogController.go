package catalog

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"rentaldesk/model"
	catalogsvc "rentaldesk/service/catalog"
)

type Controller struct {
	Svc catalogsvc.Service
	Log *slog.Logger
}

// searchResult mirrors the wire shape the rental form consumes; note the
// camelCase keys, unlike the rest of the API.
type searchResult struct {
	Title            string  `json:"title"`
	Author           string  `json:"author"`
	Pages            int     `json:"pages"`
	CoverURL         *string `json:"coverUrl"`
	OLID             *string `json:"olid"`
	FirstPublishYear *int    `json:"firstPublishYear,omitempty"`
}

func toResult(b model.Book) searchResult {
	return searchResult{
		Title:            b.Title,
		Author:           b.Author,
		Pages:            b.Pages,
		CoverURL:         b.CoverURL,
		OLID:             b.OLID,
		FirstPublishYear: b.FirstPublishYear,
	}
}

// GET /api/books/search/?title=
func (h *Controller) Search(c echo.Context) error {
	books, err := h.Svc.Search(c.Request().Context(), c.QueryParam("title"))
	if err != nil {
		if errors.Is(err, catalogsvc.ErrEmptyTitle) {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "Title parameter is required."})
		}
		h.Log.Error("book search", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Error searching books. Please try again."})
	}

	results := make([]searchResult, 0, len(books))
	for _, b := range books {
		results = append(results, toResult(b))
	}
	return c.JSON(http.StatusOK, echo.Map{"results": results})
}
