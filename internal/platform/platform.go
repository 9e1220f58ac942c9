package platform

import (
	"regexp"
	"strings"
)

// Platform identifies one of the social media sources the bot recognizes.
type Platform string

const (
	TikTok    Platform = "tiktok"
	Instagram Platform = "instagram"
	Twitter   Platform = "twitter"
	Tumblr    Platform = "tumblr"
)

// Title returns the display form of the platform name ("tiktok" -> "Tiktok").
func (p Platform) Title() string {
	s := string(p)
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// Pattern binds a platform to the URL shape it recognizes.
type Pattern struct {
	Name Platform
	re   *regexp.Regexp
}

// Link is a single URL occurrence attributed to a platform.
type Link struct {
	Platform Platform
	URL      string
}

// Matcher scans free-form text for links of the configured platforms.
// The pattern table is built once and never mutated afterwards.
type Matcher struct {
	patterns []Pattern
}

// NewMatcher returns a matcher over the fixed platform set, in declared
// order: tiktok, instagram, twitter, tumblr.
func NewMatcher() *Matcher {
	return &Matcher{
		patterns: []Pattern{
			{TikTok, regexp.MustCompile(`(?i)https?://(www\.)?tiktok\.com/@[^/\s]+/video/\d+`)},
			{Instagram, regexp.MustCompile(`(?i)https?://(www\.)?instagram\.com/(p|reel)/[^/\s]+/`)},
			{Twitter, regexp.MustCompile(`(?i)https?://(www\.)?(twitter\.com|x\.com)/[^/\s]+/status/\d+`)},
			{Tumblr, regexp.MustCompile(`(?i)https?://[^/\s]+\.tumblr\.com/post/\d+`)},
		},
	}
}

// FindLinks returns one Link per non-overlapping match of any platform
// pattern: outer iteration over platforms in declared order, inner
// iteration over occurrences in left-to-right text order. Matching is
// case-insensitive. A URL matched by more than one platform pattern is
// yielded once per platform; no deduplication is applied.
func (m *Matcher) FindLinks(text string) []Link {
	var links []Link
	for _, p := range m.patterns {
		for _, url := range p.re.FindAllString(text, -1) {
			links = append(links, Link{Platform: p.Name, URL: url})
		}
	}
	return links
}
