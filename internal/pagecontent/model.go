// Package pagecontent stores the editable sections of the public pages.
package pagecontent

import (
	"time"

	"github.com/google/uuid"
)

type Page string

const (
	PageHome     Page = "home"
	PageAbout    Page = "about"
	PageServices Page = "services"
	PageBlog     Page = "blog"
	PageContact  Page = "contact"
)

// Pages lists every editable page
var Pages = []Page{PageHome, PageAbout, PageServices, PageBlog, PageContact}

func (p Page) Valid() bool {
	for _, known := range Pages {
		if p == known {
			return true
		}
	}
	return false
}

type Section struct {
	SectionID  string `json:"sectionId"`
	Title      string `json:"title,omitempty"`
	Subtitle   string `json:"subtitle,omitempty"`
	Content    string `json:"content,omitempty"`
	ButtonText string `json:"buttonText,omitempty"`
	ButtonLink string `json:"buttonLink,omitempty"`
	ImageURL   string `json:"imageUrl,omitempty"`
	Order      int    `json:"order"`
	IsActive   bool   `json:"isActive"`
}

// SectionInput is a section as sent by the admin panel. Nil fields are
// left unchanged when merging and take defaults when adding.
type SectionInput struct {
	SectionID  *string `json:"sectionId"`
	Title      *string `json:"title"`
	Subtitle   *string `json:"subtitle"`
	Content    *string `json:"content"`
	ButtonText *string `json:"buttonText"`
	ButtonLink *string `json:"buttonLink"`
	ImageURL   *string `json:"imageUrl"`
	Order      *int    `json:"order"`
	IsActive   *bool   `json:"isActive"`
}

// MergeInto overwrites the fields of s that in sets
func (in SectionInput) MergeInto(s *Section) {
	if in.SectionID != nil {
		s.SectionID = *in.SectionID
	}
	if in.Title != nil {
		s.Title = *in.Title
	}
	if in.Subtitle != nil {
		s.Subtitle = *in.Subtitle
	}
	if in.Content != nil {
		s.Content = *in.Content
	}
	if in.ButtonText != nil {
		s.ButtonText = *in.ButtonText
	}
	if in.ButtonLink != nil {
		s.ButtonLink = *in.ButtonLink
	}
	if in.ImageURL != nil {
		s.ImageURL = *in.ImageURL
	}
	if in.Order != nil {
		s.Order = *in.Order
	}
	if in.IsActive != nil {
		s.IsActive = *in.IsActive
	}
}

// New builds a section with defaults for the unset fields
func (in SectionInput) New() Section {
	s := Section{IsActive: true}
	in.MergeInto(&s)
	return s
}

type Content struct {
	ID        uuid.UUID  `json:"id"`
	Page      Page       `json:"page"`
	Sections  []Section  `json:"sections"`
	UpdatedBy *uuid.UUID `json:"updatedBy,omitempty"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`
}
