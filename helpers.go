package compro

import "strings"

// Slugify converts a title to a URL-safe slug: lowercase, runs of
// non-alphanumeric characters collapsed to a single hyphen, leading and
// trailing hyphens trimmed.
func Slugify(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	var b strings.Builder
	prev := false
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			prev = false
		default:
			if !prev && b.Len() > 0 {
				b.WriteByte('-')
				prev = true
			}
		}
	}
	return strings.TrimRight(b.String(), "-")
}

// IsObjectIDHex reports whether s is a 24-character hexadecimal string.
// Path segments matching this rule are always resolved as document
// identifiers, never as slugs.
func IsObjectIDHex(s string) bool {
	if len(s) != 24 {
		return false
	}
	for _, r := range s {
		switch {
		case r >= '0' && r <= '9', r >= 'a' && r <= 'f', r >= 'A' && r <= 'F':
		default:
			return false
		}
	}
	return true
}

// applyPageDefaults fills derived and defaulted fields before a page is
// validated: slug from title, meta title from title, enum defaults, and the
// checkbox defaults for untouched groups.
func applyPageDefaults(p *Page) {
	if p.Slug == "" && p.Title != "" {
		p.Slug = Slugify(p.Title)
	}
	if p.SEO.MetaTitle == "" && p.Title != "" {
		p.SEO.MetaTitle = p.Title
	}
	if p.PageType == "" {
		p.PageType = PageTypeCustom
	}
	if p.Status == "" {
		p.Status = PageStatusPublished
	}
	if p.Navigation == (PageNavigation{}) {
		p.Navigation.ShowInMainMenu = true
	}
	if p.Content == (PageContent{}) {
		p.Content.HasHeroSection = true
	}
	if p.Analytics.ConversionGoals == nil && !p.Analytics.TrackPageViews {
		p.Analytics.TrackPageViews = true
	}
}

// applyPortfolioDefaults derives the slug and defaults the status before a
// portfolio item is validated.
func applyPortfolioDefaults(p *PortfolioItem) {
	if p.Slug == "" && p.Title != "" {
		p.Slug = Slugify(p.Title)
	}
	if p.Status == "" {
		p.Status = PortfolioStatusCompleted
	}
}

// applyServiceDefaults mirrors the service schema defaults.
func applyServiceDefaults(s *Service) {
	if s.Icon == "" {
		s.Icon = "🚀"
	}
	if s.Status == "" {
		s.Status = ServiceStatusActive
	}
}
