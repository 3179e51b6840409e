// Package contact implements the public contact form and the admin inbox.
package contact

import (
	"time"

	"github.com/google/uuid"
)

type Status string

const (
	StatusNew      Status = "new"
	StatusRead     Status = "read"
	StatusReplied  Status = "replied"
	StatusArchived Status = "archived"
)

func (s Status) Valid() bool {
	switch s {
	case StatusNew, StatusRead, StatusReplied, StatusArchived:
		return true
	}
	return false
}

type Contact struct {
	ID              uuid.UUID `json:"id"`
	FullName        string    `json:"fullName"`
	Email           string    `json:"email"`
	Phone           string    `json:"phone"`
	ServiceInterest string    `json:"serviceInterest"`
	Message         string    `json:"message"`
	Status          Status    `json:"status"`
	Notes           string    `json:"notes"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

type SubmitInput struct {
	FullName        string `json:"fullName"`
	Email           string `json:"email"`
	Phone           string `json:"phone"`
	ServiceInterest string `json:"serviceInterest"`
	Message         string `json:"message"`
}

// UpdateInput changes triage fields. An empty status is ignored, a nil
// notes leaves the notes unchanged.
type UpdateInput struct {
	Status string  `json:"status"`
	Notes  *string `json:"notes"`
}

// Filter selects one page of the inbox
type Filter struct {
	Status Status
	Search string
	Limit  int
	Offset int
}

type Stats struct {
	Total    int `json:"total" bun:"total"`
	New      int `json:"new" bun:"new"`
	Read     int `json:"read" bun:"read"`
	Replied  int `json:"replied" bun:"replied"`
	Archived int `json:"archived" bun:"archived"`
}
