package domain

import "time"

// BlogPost is a single article from the blog content feed.
// Posts are read-only: parsed from the upstream JSON, never mutated.
type BlogPost struct {
	Slug     string    `json:"slug"`
	Title    string    `json:"title"`
	Excerpt  string    `json:"excerpt,omitempty"`
	Content  string    `json:"content,omitempty"`
	Author   string    `json:"author,omitempty"`
	Date     time.Time `json:"date"`
	Category string    `json:"category,omitempty"`
	Image    string    `json:"image,omitempty"`
}
