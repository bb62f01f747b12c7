package model

type Book struct {
	ID               int64   `json:"id"`
	Title            string  `json:"title"`
	Author           string  `json:"author"`
	Pages            int     `json:"pages"`
	CoverURL         *string `json:"cover_url,omitempty"`
	OLID             *string `json:"olid,omitempty"`
	FirstPublishYear *int    `json:"first_publish_year,omitempty"`
}
