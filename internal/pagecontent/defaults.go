package pagecontent

// DefaultSections returns the content a page starts with
func DefaultSections(page Page) []Section {
	switch page {
	case PageHome:
		return []Section{
			{
				SectionID:  "hero",
				Title:      "Your Trusted Partner in Corporate Compliance",
				Subtitle:   "Expert guidance for startups and growing businesses",
				Content:    "We provide comprehensive corporate advisory services including company registration, MCA compliance, GST, and taxation support.",
				ButtonText: "Get Started",
				ButtonLink: "/contact",
				Order:      1,
				IsActive:   true,
			},
			{
				SectionID: "features",
				Title:     "Why Choose Us",
				Subtitle:  "Professional Excellence",
				Content:   "Dedicated support for your business compliance needs",
				Order:     2,
				IsActive:  true,
			},
		}
	case PageAbout:
		return []Section{
			{
				SectionID: "intro",
				Title:     "About 89T Corporate Advisors",
				Subtitle:  "Your Compliance Partner",
				Content:   "We are a compliance-focused corporate advisory firm dedicated to supporting startups and growing businesses with registration, taxation, and business advisory services.",
				Order:     1,
				IsActive:  true,
			},
			{
				SectionID: "mission",
				Title:     "Our Mission",
				Content:   "To simplify corporate compliance and empower businesses to focus on growth.",
				Order:     2,
				IsActive:  true,
			},
		}
	case PageContact:
		return []Section{
			{
				SectionID: "header",
				Title:     "Get in Touch",
				Subtitle:  "We're here to help",
				Content:   "Have questions about our services? Fill out the form below and our team will get back to you shortly.",
				Order:     1,
				IsActive:  true,
			},
		}
	default:
		return []Section{}
	}
}
