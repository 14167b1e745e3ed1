package models

import (
	"strings"
	"time"
)

// ReviewSort is one of the sort modes the reviews endpoint accepts
type ReviewSort string

const (
	SortNewest  ReviewSort = "newest"
	SortOldest  ReviewSort = "oldest"
	SortHighest ReviewSort = "highest"
	SortLowest  ReviewSort = "lowest"
)

// ParseReviewSort falls back to newest for anything unrecognised
func ParseReviewSort(s string) ReviewSort {
	switch ReviewSort(s) {
	case SortNewest, SortOldest, SortHighest, SortLowest:
		return ReviewSort(s)
	default:
		return SortNewest
	}
}

// ReviewAuthor is the populated user on a review, absent for guest reviews
type ReviewAuthor struct {
	ID    string `json:"_id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Review is a product review
type Review struct {
	ID                 string        `json:"_id"`
	Product            string        `json:"product"`
	User               *ReviewAuthor `json:"user,omitempty"`
	UserName           string        `json:"userName"`
	UserEmail          string        `json:"userEmail"`
	Rating             int           `json:"rating"`
	Title              string        `json:"title"`
	Comment            string        `json:"comment"`
	HelpfulCount       int           `json:"helpfulCount"`
	IsApproved         bool          `json:"isApproved"`
	IsVerifiedPurchase bool          `json:"isVerifiedPurchase"`
	CreatedAt          time.Time     `json:"createdAt"`
	UpdatedAt          time.Time     `json:"updatedAt"`
}

// AuthorName prefers the populated user name
func (r *Review) AuthorName() string {
	if r.User != nil && r.User.Name != "" {
		return r.User.Name
	}
	if r.UserName != "" {
		return r.UserName
	}
	return "Anonymous"
}

// CanManageReview decides whether the edit/delete controls are shown.
// It is an OR of two independent identity signals: the populated user id and
// the review's email. A guest review written with an email that later registers
// becomes editable by that account; this mirrors the backend contract as observed.
func CanManageReview(review *Review, session *Session) bool {
	if review == nil || session == nil {
		return false
	}
	if review.User != nil && review.User.ID != "" && review.User.ID == session.UserID {
		return true
	}
	return review.UserEmail != "" && strings.EqualFold(review.UserEmail, session.Email)
}

// ReviewStats is the server-computed aggregate for a product
type ReviewStats struct {
	AverageRating float64     `json:"averageRating"`
	TotalReviews  int         `json:"totalReviews"`
	Distribution  map[int]int `json:"ratingDistribution"`
}

// RatingPercent returns count_for_star / totalReviews * 100, or 0 when there are no reviews.
func (s ReviewStats) RatingPercent(star int) float64 {
	if s.TotalReviews <= 0 {
		return 0
	}
	return float64(s.Distribution[star]) / float64(s.TotalReviews) * 100
}

// RatingBar is one row of the histogram
type RatingBar struct {
	Star    int
	Count   int
	Percent float64
}

// Bars returns the histogram rows from 5 stars down to 1
func (s ReviewStats) Bars() []RatingBar {
	bars := make([]RatingBar, 0, 5)
	for star := 5; star >= 1; star-- {
		bars = append(bars, RatingBar{
			Star:    star,
			Count:   s.Distribution[star],
			Percent: s.RatingPercent(star),
		})
	}
	return bars
}

// ReviewPage is the GET /api/reviews/product/:id response
type ReviewPage struct {
	Reviews []Review    `json:"reviews"`
	Stats   ReviewStats `json:"stats"`
}

// ReviewForm is the create/edit review body
type ReviewForm struct {
	ProductID string `json:"productId"`
	Rating    int    `json:"rating"`
	Title     string `json:"title"`
	Comment   string `json:"comment"`
	UserName  string `json:"userName,omitempty"`
	UserEmail string `json:"userEmail,omitempty"`
}

func (f *ReviewForm) Validate() ValidationErrors {
	errs := ValidationErrors{}
	if f.Rating < 1 || f.Rating > 5 {
		errs.Add("rating", "Please select a rating")
	}
	if strings.TrimSpace(f.Comment) == "" {
		errs.Add("comment", "Please write a review")
	}
	if f.UserEmail != "" && !ValidEmail(f.UserEmail) {
		errs.Add("userEmail", "Please enter a valid email address")
	}
	return errs
}

// Disclosure tracks the progressive "show more" reveal. All reviews are fetched
// up front and revealed one more per click; "show less" goes back to one.
type Disclosure struct {
	Total   int
	Visible int
}

// NewDisclosure clamps the requested visible count into [min(1,total), total]
func NewDisclosure(total, visible int) Disclosure {
	d := Disclosure{Total: total, Visible: visible}
	d.clamp()
	return d
}

func (d *Disclosure) clamp() {
	if d.Visible < 1 {
		d.Visible = 1
	}
	if d.Visible > d.Total {
		d.Visible = d.Total
	}
}

func (d Disclosure) ShowMore() Disclosure {
	d.Visible++
	d.clamp()
	return d
}

func (d Disclosure) ShowLess() Disclosure {
	d.Visible = 1
	d.clamp()
	return d
}

func (d Disclosure) HasMore() bool {
	return d.Visible < d.Total
}

func (d Disclosure) CanCollapse() bool {
	return d.Visible > 1
}

// AdminReviewFilter drives the admin reviews list
type AdminReviewFilter struct {
	Search string
	Status string // approved | pending | ""
	Rating int
	Page   int
	Limit  int
}
