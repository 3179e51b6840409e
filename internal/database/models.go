package database

import (
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// User is the persisted admin account
type User struct {
	bun.BaseModel `bun:"table:users,alias:u"`

	ID                    uuid.UUID  `bun:"id,pk,type:uuid,default:gen_random_uuid()"`
	Name                  string     `bun:"name,notnull"`
	Email                 string     `bun:"email,notnull,unique"`
	PasswordHash          string     `bun:"password_hash,nullzero"`
	Role                  string     `bun:"role,notnull"`
	IsActive              bool       `bun:"is_active,notnull"`
	PasswordSetupComplete bool       `bun:"password_setup_complete,notnull"`
	ResetPasswordOTP      *string    `bun:"reset_password_otp"`
	ResetPasswordExpires  *time.Time `bun:"reset_password_expires"`
	InvitationToken       *string    `bun:"invitation_token"`
	InvitationExpires     *time.Time `bun:"invitation_expires"`
	CreatedAt             time.Time  `bun:"created_at,nullzero,notnull,default:current_timestamp"`
	UpdatedAt             time.Time  `bun:"updated_at,nullzero,notnull,default:current_timestamp"`
}

// Service is an advisory offering shown on the public site
type Service struct {
	bun.BaseModel `bun:"table:services,alias:s"`

	ID               uuid.UUID `bun:"id,pk,type:uuid,default:gen_random_uuid()"`
	Title            string    `bun:"title,notnull"`
	Slug             string    `bun:"slug,notnull,unique"`
	ShortDescription string    `bun:"short_description,notnull"`
	Description      string    `bun:"description,notnull"`
	Image            string    `bun:"image,notnull"`
	Features         []string  `bun:"features,array"`
	IsActive         bool      `bun:"is_active,notnull"`
	SortOrder        int       `bun:"sort_order,notnull"`
	CreatedAt        time.Time `bun:"created_at,nullzero,notnull,default:current_timestamp"`
	UpdatedAt        time.Time `bun:"updated_at,nullzero,notnull,default:current_timestamp"`
}

// BlogPost is an article authored by an admin
type BlogPost struct {
	bun.BaseModel `bun:"table:blog_posts,alias:bp"`

	ID            uuid.UUID  `bun:"id,pk,type:uuid,default:gen_random_uuid()"`
	Title         string     `bun:"title,notnull"`
	Slug          string     `bun:"slug,notnull,unique"`
	Excerpt       string     `bun:"excerpt,notnull"`
	Content       string     `bun:"content,notnull"`
	FeaturedImage string     `bun:"featured_image,notnull"`
	AuthorID      *uuid.UUID `bun:"author_id,type:uuid"`
	Author        *User      `bun:"rel:belongs-to,join:author_id=id"`
	Category      string     `bun:"category,notnull"`
	Tags          []string   `bun:"tags,array"`
	Status        string     `bun:"status,notnull"`
	PublishedAt   *time.Time `bun:"published_at"`
	CreatedAt     time.Time  `bun:"created_at,nullzero,notnull,default:current_timestamp"`
	UpdatedAt     time.Time  `bun:"updated_at,nullzero,notnull,default:current_timestamp"`
}

// Section is one block of a page, stored inside PageContent.Sections as JSONB
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

// PageContent holds the editable sections of one public page
type PageContent struct {
	bun.BaseModel `bun:"table:page_contents,alias:pc"`

	ID        uuid.UUID  `bun:"id,pk,type:uuid,default:gen_random_uuid()"`
	Page      string     `bun:"page,notnull,unique"`
	Sections  []Section  `bun:"sections,type:jsonb,notnull"`
	UpdatedBy *uuid.UUID `bun:"updated_by,type:uuid"`
	CreatedAt time.Time  `bun:"created_at,nullzero,notnull,default:current_timestamp"`
	UpdatedAt time.Time  `bun:"updated_at,nullzero,notnull,default:current_timestamp"`
}

type CompanyInfo struct {
	CIN               string `json:"cin"`
	IncorporationDate string `json:"incorporationDate"`
	Status            string `json:"status"`
}

type SocialLinks struct {
	Facebook  string `json:"facebook"`
	Twitter   string `json:"twitter"`
	LinkedIn  string `json:"linkedin"`
	Instagram string `json:"instagram"`
}

// Settings is the single site-wide settings row. Singleton carries a unique
// index so concurrent lazy creation cannot produce two rows.
type Settings struct {
	bun.BaseModel `bun:"table:settings,alias:st"`

	ID              uuid.UUID   `bun:"id,pk,type:uuid,default:gen_random_uuid()"`
	Singleton       bool        `bun:"singleton,notnull,unique"`
	SiteName        string      `bun:"site_name,notnull"`
	SiteDescription string      `bun:"site_description,notnull"`
	ContactEmail    string      `bun:"contact_email,notnull"`
	ContactPhone    string      `bun:"contact_phone,notnull"`
	Address         string      `bun:"address,notnull"`
	CompanyInfo     CompanyInfo `bun:"company_info,type:jsonb,notnull"`
	SocialLinks     SocialLinks `bun:"social_links,type:jsonb,notnull"`
	Logo            string      `bun:"logo,notnull"`
	Favicon         string      `bun:"favicon,notnull"`
	OGImage         string      `bun:"og_image,notnull"`
	UpdatedBy       *uuid.UUID  `bun:"updated_by,type:uuid"`
	CreatedAt       time.Time   `bun:"created_at,nullzero,notnull,default:current_timestamp"`
	UpdatedAt       time.Time   `bun:"updated_at,nullzero,notnull,default:current_timestamp"`
}

// Contact is a lead submitted through the public contact form
type Contact struct {
	bun.BaseModel `bun:"table:contacts,alias:c"`

	ID              uuid.UUID `bun:"id,pk,type:uuid,default:gen_random_uuid()"`
	FullName        string    `bun:"full_name,notnull"`
	Email           string    `bun:"email,notnull"`
	Phone           string    `bun:"phone,notnull"`
	ServiceInterest string    `bun:"service_interest,notnull"`
	Message         string    `bun:"message,notnull"`
	Status          string    `bun:"status,notnull"`
	Notes           string    `bun:"notes,notnull"`
	CreatedAt       time.Time `bun:"created_at,nullzero,notnull,default:current_timestamp"`
	UpdatedAt       time.Time `bun:"updated_at,nullzero,notnull,default:current_timestamp"`
}
