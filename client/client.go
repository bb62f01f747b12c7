// Package client is the Go consumer of the rentaldesk API: it logs in,
// manages students and rentals, and turns raw wire records into the
// normalized shapes the dashboard aggregation works from.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"rentaldesk/client/session"
	"rentaldesk/util/httpx"
)

// APIError is a non-2xx response decoded from the backend's error body.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error %d: %s", e.Status, e.Message)
}

type Client struct {
	baseURL string
	http    *http.Client
	session session.Store
	log     *slog.Logger
}

// New builds a client for the API at baseURL. Tokens live in `store`; pass
// session.Memory() when persistence is not wanted. A nil logger falls back
// to slog.Default().
func New(baseURL string, store session.Store, log *slog.Logger) *Client {
	if log == nil {
		log = slog.Default()
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    httpx.Client(),
		session: store,
		log:     log,
	}
}

type tokensBody struct {
	Tokens struct {
		Access  string `json:"access"`
		Refresh string `json:"refresh"`
	} `json:"tokens"`
}

// Login authenticates and persists the returned token pair.
func (c *Client) Login(ctx context.Context, email, password string) error {
	var out tokensBody
	err := c.do(ctx, http.MethodPost, "/api/login/", map[string]string{
		"email":    email,
		"password": password,
	}, &out)
	if err != nil {
		return err
	}
	return c.session.Save(session.Tokens{Access: out.Tokens.Access, Refresh: out.Tokens.Refresh})
}

// Register creates an account and persists the returned token pair, so a
// fresh registration is immediately logged in.
func (c *Client) Register(ctx context.Context, username, email, password string) error {
	var out tokensBody
	err := c.do(ctx, http.MethodPost, "/api/register/", map[string]string{
		"username": username,
		"email":    email,
		"password": password,
	}, &out)
	if err != nil {
		return err
	}
	return c.session.Save(session.Tokens{Access: out.Tokens.Access, Refresh: out.Tokens.Refresh})
}

// Logout drops the persisted tokens. Purely local, the backend keeps no
// session state.
func (c *Client) Logout() error { return c.session.Clear() }

func (c *Client) ListStudents(ctx context.Context, search string) ([]Student, error) {
	p := "/api/student/list/"
	if search != "" {
		p += "?search=" + url.QueryEscape(search)
	}
	var out studentListBody
	if err := c.do(ctx, http.MethodGet, p, nil, &out); err != nil {
		return nil, err
	}
	students := make([]Student, 0, len(out.Results))
	for _, r := range out.Results {
		students = append(students, r.normalize())
	}
	return students, nil
}

func (c *Client) AddStudent(ctx context.Context, name, email string) (Student, error) {
	var out struct {
		Student rawStudent `json:"student"`
	}
	err := c.do(ctx, http.MethodPost, "/api/students/add/", map[string]string{
		"student_name": name,
		"email":        email,
	}, &out)
	if err != nil {
		return Student{}, err
	}
	return out.Student.normalize(), nil
}

// SearchBooks queries the catalog by title. No results is a valid empty
// state, not an error.
func (c *Client) SearchBooks(ctx context.Context, title string) ([]Book, error) {
	var out bookListBody
	p := "/api/books/search/?title=" + url.QueryEscape(title)
	if err := c.do(ctx, http.MethodGet, p, nil, &out); err != nil {
		return nil, err
	}
	books := make([]Book, 0, len(out.Results))
	for _, r := range out.Results {
		books = append(books, r.normalize())
	}
	return books, nil
}

func (c *Client) CreateRental(ctx context.Context, studentID, title string) (Rental, error) {
	// ids travel as numbers when they are numeric, mirroring how the backend
	// emits them
	var sid any = studentID
	if n, err := strconv.ParseInt(studentID, 10, 64); err == nil {
		sid = n
	}
	var out struct {
		Rental rawRental `json:"rental"`
	}
	err := c.do(ctx, http.MethodPost, "/api/rentals/create/", map[string]any{
		"student_id": sid,
		"title":      title,
	}, &out)
	if err != nil {
		return Rental{}, err
	}
	return out.Rental.normalize(c.log), nil
}

func (c *Client) ListRentals(ctx context.Context) ([]Rental, error) {
	var out rentalListBody
	err := c.do(ctx, http.MethodGet, "/api/rentals/list/", nil, &out)
	if isNotFound(err) {
		return []Rental{}, nil
	}
	if err != nil {
		return nil, err
	}
	return normalizeRentals(out.Rentals, c.log), nil
}

// StudentRentals fetches one student's rental history. A 404 means the
// student has no records yet and is reported as an empty history.
func (c *Client) StudentRentals(ctx context.Context, studentID string) (Student, []Rental, error) {
	var out studentRentalsBody
	err := c.do(ctx, http.MethodGet, "/api/rentals/student/"+url.PathEscape(studentID)+"/", nil, &out)
	if isNotFound(err) {
		return Student{}, []Rental{}, nil
	}
	if err != nil {
		return Student{}, nil, err
	}
	return out.Student.normalize(), normalizeRentals(out.Rentals, c.log), nil
}

func (c *Client) ExtendRental(ctx context.Context, rentalID string, extraDays int) (Rental, error) {
	var out struct {
		Rental rawRental `json:"rental"`
	}
	p := "/api/rentals/extend/" + url.PathEscape(rentalID) + "/"
	err := c.do(ctx, http.MethodPost, p, map[string]int{"extra_days": extraDays}, &out)
	if err != nil {
		return Rental{}, err
	}
	return out.Rental.normalize(c.log), nil
}

func (c *Client) ReturnRental(ctx context.Context, rentalID string) (Rental, error) {
	var out struct {
		Rental rawRental `json:"rental"`
	}
	p := "/api/rentals/return/" + url.PathEscape(rentalID) + "/"
	err := c.do(ctx, http.MethodPut, p, nil, &out)
	if err != nil {
		return Rental{}, err
	}
	return out.Rental.normalize(c.log), nil
}

func isNotFound(err error) bool {
	apiErr, ok := err.(*APIError)
	return ok && apiErr.Status == http.StatusNotFound
}

// do runs one request. The access token, when present, rides along as a
// bearer header. Requests are never retried; callers own that decision.
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var rd io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		rd = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, rd)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if t, ok, err := c.session.Load(); err != nil {
		return fmt.Errorf("load session: %w", err)
	} else if ok {
		req.Header.Set("Authorization", "Bearer "+t.Access)
	}

	res, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode > 299 {
		return decodeError(res)
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(res.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// decodeError pulls the message out of the backend's error body. Errors come
// as {"error": ...} from the API handlers and {"detail": ...} from the auth
// middleware.
func decodeError(res *http.Response) error {
	raw, _ := io.ReadAll(io.LimitReader(res.Body, 4096))
	var body struct {
		Error  string `json:"error"`
		Detail string `json:"detail"`
	}
	msg := strings.TrimSpace(string(raw))
	if err := json.Unmarshal(raw, &body); err == nil {
		if body.Error != "" {
			msg = body.Error
		} else if body.Detail != "" {
			msg = body.Detail
		}
	}
	if msg == "" {
		msg = http.StatusText(res.StatusCode)
	}
	return &APIError{Status: res.StatusCode, Message: msg}
}
