// Package offering manages the advisory services catalogue shown on the
// public site.
package offering

import (
	"time"

	"github.com/google/uuid"
)

// Offering is one advisory service
type Offering struct {
	ID               uuid.UUID `json:"id"`
	Title            string    `json:"title"`
	Slug             string    `json:"slug"`
	ShortDescription string    `json:"shortDescription"`
	Description      string    `json:"description"`
	Image            string    `json:"image"`
	Features         []string  `json:"features"`
	IsActive         bool      `json:"isActive"`
	Order            int       `json:"order"`
	CreatedAt        time.Time `json:"createdAt"`
	UpdatedAt        time.Time `json:"updatedAt"`
}

// Input carries create and update fields. Nil fields are left unchanged on
// update and take their defaults on create.
type Input struct {
	Title            *string   `json:"title"`
	Slug             *string   `json:"slug"`
	ShortDescription *string   `json:"shortDescription"`
	Description      *string   `json:"description"`
	Image            *string   `json:"image"`
	Features         *[]string `json:"features"`
	IsActive         *bool     `json:"isActive"`
	Order            *int      `json:"order"`
}
