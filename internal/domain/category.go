package domain

import "strings"

// Category is one of the fixed event categories. Stored lower-case.
type Category string

const (
	CategoryWorkshop   Category = "workshop"
	CategoryMeetup     Category = "meetup"
	CategoryTechTalk   Category = "tech-talk"
	CategoryHackathon  Category = "hackathon"
	CategoryConference Category = "conference"
	CategorySocial     Category = "social"
	CategorySports     Category = "sports"
	CategoryEducation  Category = "education"
)

// Categories lists every supported category in display order.
var Categories = []Category{
	CategoryWorkshop,
	CategoryMeetup,
	CategoryTechTalk,
	CategoryHackathon,
	CategoryConference,
	CategorySocial,
	CategorySports,
	CategoryEducation,
}

// ParseCategory matches s against the fixed set case-insensitively and returns the canonical value.
func ParseCategory(s string) (Category, bool) {
	c := Category(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Categories {
		if c == known {
			return known, true
		}
	}
	return "", false
}

// Matches reports whether s names this category, ignoring case.
func (c Category) Matches(s string) bool {
	return strings.EqualFold(string(c), strings.TrimSpace(s))
}
