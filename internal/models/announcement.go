package models

import (
	"strings"
	"time"
)

// AnnouncementType selects the banner color
type AnnouncementType string

const (
	AnnouncementInfo    AnnouncementType = "info"
	AnnouncementPromo   AnnouncementType = "promo"
	AnnouncementWarning AnnouncementType = "warning"
)

// Announcement is a site-wide banner
type Announcement struct {
	ID        string           `json:"_id"`
	Title     string           `json:"title"`
	Message   string           `json:"message"`
	Type      AnnouncementType `json:"type"`
	Link      string           `json:"link,omitempty"`
	LinkText  string           `json:"linkText,omitempty"`
	IsActive  bool             `json:"isActive"`
	StartDate *time.Time       `json:"startDate,omitempty"`
	EndDate   *time.Time       `json:"endDate,omitempty"`
	Priority  int              `json:"priority"`
	CreatedAt time.Time        `json:"createdAt"`
}

// Live reports whether the banner should show at now
func (a *Announcement) Live(now time.Time) bool {
	if !a.IsActive {
		return false
	}
	if a.StartDate != nil && now.Before(*a.StartDate) {
		return false
	}
	if a.EndDate != nil && now.After(*a.EndDate) {
		return false
	}
	return true
}

// AnnouncementForm is the admin create/edit form
type AnnouncementForm struct {
	Title     string           `json:"title"`
	Message   string           `json:"message"`
	Type      AnnouncementType `json:"type"`
	Link      string           `json:"link,omitempty"`
	LinkText  string           `json:"linkText,omitempty"`
	IsActive  bool             `json:"isActive"`
	StartDate *time.Time       `json:"startDate,omitempty"`
	EndDate   *time.Time       `json:"endDate,omitempty"`
	Priority  int              `json:"priority"`
}

func (f *AnnouncementForm) Validate() ValidationErrors {
	errs := ValidationErrors{}
	if strings.TrimSpace(f.Title) == "" {
		errs.Add("title", "Title is required")
	}
	if strings.TrimSpace(f.Message) == "" {
		errs.Add("message", "Message is required")
	}
	switch f.Type {
	case AnnouncementInfo, AnnouncementPromo, AnnouncementWarning:
	default:
		errs.Add("type", "Type must be info, promo or warning")
	}
	if f.Link != "" && !safeLink(f.Link) {
		errs.Add("link", "Link must be a site path or an http(s) URL")
	}
	if f.StartDate != nil && f.EndDate != nil && f.EndDate.Before(*f.StartDate) {
		errs.Add("endDate", "End date must be after the start date")
	}
	return errs
}

func safeLink(link string) bool {
	lower := strings.ToLower(strings.TrimSpace(link))
	if strings.HasPrefix(lower, "//") {
		return false
	}
	return strings.HasPrefix(lower, "/") || strings.HasPrefix(lower, "https://") || strings.HasPrefix(lower, "http://")
}

// AnnouncementFormFrom pre-fills the edit form
func AnnouncementFormFrom(a *Announcement) AnnouncementForm {
	return AnnouncementForm{
		Title:     a.Title,
		Message:   a.Message,
		Type:      a.Type,
		Link:      a.Link,
		LinkText:  a.LinkText,
		IsActive:  a.IsActive,
		StartDate: a.StartDate,
		EndDate:   a.EndDate,
		Priority:  a.Priority,
	}
}

// VisibleAnnouncements drops dismissed and out-of-window banners
func VisibleAnnouncements(all []Announcement, dismissed map[string]bool, now time.Time) []Announcement {
	out := make([]Announcement, 0, len(all))
	for _, a := range all {
		if dismissed[a.ID] || !a.Live(now) {
			continue
		}
		out = append(out, a)
	}
	return out
}

// AdminAnnouncementFilter drives the admin announcements list
type AdminAnnouncementFilter struct {
	Search string
	Type   string
	Status string // active | inactive | ""
	Page   int
	Limit  int
}
