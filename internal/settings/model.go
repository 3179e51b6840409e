// Package settings holds the single site-wide settings record.
package settings

import (
	"time"

	"github.com/google/uuid"
)

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

type Settings struct {
	ID              uuid.UUID   `json:"id"`
	SiteName        string      `json:"siteName"`
	SiteDescription string      `json:"siteDescription"`
	ContactEmail    string      `json:"contactEmail"`
	ContactPhone    string      `json:"contactPhone"`
	Address         string      `json:"address"`
	CompanyInfo     CompanyInfo `json:"companyInfo"`
	SocialLinks     SocialLinks `json:"socialLinks"`
	Logo            string      `json:"logo"`
	Favicon         string      `json:"favicon"`
	OGImage         string      `json:"ogImage"`
	UpdatedBy       *uuid.UUID  `json:"updatedBy,omitempty"`
	CreatedAt       time.Time   `json:"createdAt"`
	UpdatedAt       time.Time   `json:"updatedAt"`
}

// Defaults returns the settings a fresh install starts with
func Defaults() *Settings {
	return &Settings{
		SiteName:        "89T Corporate Advisors",
		SiteDescription: "A compliance-focused corporate advisory firm supporting startups and growing businesses.",
		ContactEmail:    "89tcapl@gmail.com",
		Address:         "No.226/400, Sapthagiri Arc, Block No.206, 2nd Floor, Hoodi, Bangalore - 560048",
		CompanyInfo: CompanyInfo{
			CIN:               "U69201KA2025PTC213011",
			IncorporationDate: "23 Dec 2025",
			Status:            "Active",
		},
	}
}

// SocialLinksInput merges into SocialLinks key by key
type SocialLinksInput struct {
	Facebook  *string `json:"facebook"`
	Twitter   *string `json:"twitter"`
	LinkedIn  *string `json:"linkedin"`
	Instagram *string `json:"instagram"`
}

// Input is a partial settings update; nil fields are unchanged
type Input struct {
	SiteName        *string           `json:"siteName"`
	SiteDescription *string           `json:"siteDescription"`
	ContactEmail    *string           `json:"contactEmail"`
	ContactPhone    *string           `json:"contactPhone"`
	Address         *string           `json:"address"`
	CompanyInfo     *CompanyInfo      `json:"companyInfo"`
	SocialLinks     *SocialLinksInput `json:"socialLinks"`
	Logo            *string           `json:"logo"`
	Favicon         *string           `json:"favicon"`
	OGImage         *string           `json:"ogImage"`
}

func setIf(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}

// Apply writes the set fields of in onto s
func (in Input) Apply(s *Settings) {
	setIf(&s.SiteName, in.SiteName)
	setIf(&s.SiteDescription, in.SiteDescription)
	setIf(&s.ContactEmail, in.ContactEmail)
	setIf(&s.ContactPhone, in.ContactPhone)
	setIf(&s.Address, in.Address)
	setIf(&s.Logo, in.Logo)
	setIf(&s.Favicon, in.Favicon)
	setIf(&s.OGImage, in.OGImage)

	if in.CompanyInfo != nil {
		s.CompanyInfo = *in.CompanyInfo
	}
	if links := in.SocialLinks; links != nil {
		setIf(&s.SocialLinks.Facebook, links.Facebook)
		setIf(&s.SocialLinks.Twitter, links.Twitter)
		setIf(&s.SocialLinks.LinkedIn, links.LinkedIn)
		setIf(&s.SocialLinks.Instagram, links.Instagram)
	}
}
