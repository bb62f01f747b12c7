package openlibrary

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"rentaldesk/model"
	"rentaldesk/util/httpx"
)

type httpRepo struct {
	baseURL string
	client  *http.Client
}

func NewHTTP(baseURL string) Repo {
	return &httpRepo{baseURL: strings.TrimRight(baseURL, "/"), client: httpx.Client()}
}

type searchDoc struct {
	Key              string   `json:"key"`
	Title            string   `json:"title"`
	AuthorName       []string `json:"author_name"`
	PagesMedian      int      `json:"number_of_pages_median"`
	CoverID          int64    `json:"cover_i"`
	FirstPublishYear int      `json:"first_publish_year"`
}

func (r *httpRepo) Lookup(ctx context.Context, title string) (*model.Book, error) {
	u := r.baseURL + "/search.json?title=" + url.QueryEscape(title)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}

	resp, err := r.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		return nil, fmt.Errorf("openlibrary search failed: %s", resp.Status)
	}

	var out struct {
		Docs []searchDoc `json:"docs"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, err
	}
	if len(out.Docs) == 0 {
		return nil, nil
	}

	doc := out.Docs[0]
	b := &model.Book{
		Title:  doc.Title,
		Author: "Unknown",
		Pages:  doc.PagesMedian,
	}
	if b.Title == "" {
		b.Title = title
	}
	if len(doc.AuthorName) > 0 {
		b.Author = strings.Join(doc.AuthorName, ", ")
	}
	if doc.CoverID != 0 {
		cover := fmt.Sprintf("https://covers.openlibrary.org/b/id/%d-L.jpg", doc.CoverID)
		b.CoverURL = &cover
	}
	if doc.Key != "" {
		olid := strings.TrimPrefix(doc.Key, "/works/")
		b.OLID = &olid
	}
	if doc.FirstPublishYear != 0 {
		y := doc.FirstPublishYear
		b.FirstPublishYear = &y
	}
	return b, nil
}
