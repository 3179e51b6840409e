package blog

import (
	"time"

	"github.com/google/uuid"
)

type Status string

const (
	StatusDraft     Status = "draft"
	StatusPublished Status = "published"
)

func (s Status) Valid() bool {
	return s == StatusDraft || s == StatusPublished
}

const (
	DefaultCategory = "General"
	MaxExcerptLen   = 300
)

// Author is the public projection of the writing admin
type Author struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name"`
	Email string    `json:"email"`
}

type Post struct {
	ID            uuid.UUID  `json:"id"`
	Title         string     `json:"title"`
	Slug          string     `json:"slug"`
	Excerpt       string     `json:"excerpt"`
	Content       string     `json:"content"`
	FeaturedImage string     `json:"featuredImage"`
	AuthorID      uuid.UUID  `json:"-"`
	Author        *Author    `json:"author"`
	Category      string     `json:"category"`
	Tags          []string   `json:"tags"`
	Status        Status     `json:"status"`
	PublishedAt   *time.Time `json:"publishedAt,omitempty"`
	CreatedAt     time.Time  `json:"createdAt"`
	UpdatedAt     time.Time  `json:"updatedAt"`
}

// Input carries create and update fields; nil means unchanged or default
type Input struct {
	Title         *string   `json:"title"`
	Slug          *string   `json:"slug"`
	Excerpt       *string   `json:"excerpt"`
	Content       *string   `json:"content"`
	FeaturedImage *string   `json:"featuredImage"`
	Category      *string   `json:"category"`
	Tags          *[]string `json:"tags"`
	Status        *string   `json:"status"`
}

// Filter selects one page of posts. Empty strings do not filter.
type Filter struct {
	Status   Status
	Category string
	Limit    int
	Offset   int
}
