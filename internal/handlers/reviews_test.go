package handlers

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"soap-storefront/internal/models"
	"soap-storefront/internal/services"
)

func reviewPage() *models.ReviewPage {
	return &models.ReviewPage{
		Reviews: []models.Review{
			{ID: "r1", Product: "p1", UserName: "Kavya", Rating: 5, Comment: "Lovely lather", HelpfulCount: 3},
			{ID: "r2", Product: "p1", UserName: "Rohan", Rating: 4, Comment: "Smells of neem", HelpfulCount: 1},
			{ID: "r3", Product: "p1", UserName: "Divya", Rating: 2, Comment: "Too drying for me"},
		},
		Stats: models.ReviewStats{AverageRating: 3.7, TotalReviews: 3},
	}
}

func newReviewHandler(reviews *MockReviewService) (*ProductHandler, *services.HelpfulVoteGuard) {
	env := newTestEnv()
	guard := services.NewHelpfulVoteGuard()
	return NewProductHandler(env.base, new(MockProductService), reviews, guard), guard
}

func helpfulRequest(sid, reviewID, count string) *http.Request {
	req := newFormRequest(http.MethodPost, "/reviews/"+reviewID+"/helpful", url.Values{"count": {count}})
	return withURLParams(withBrowser(htmx(req), sid), "reviewID", reviewID)
}

func TestMarkHelpful_OncePerBrowser(t *testing.T) {
	mockReviewService := new(MockReviewService)
	handler, _ := newReviewHandler(mockReviewService)

	mockReviewService.On("MarkHelpful", mock.Anything, "r1").Return(nil).Once()

	first := httptest.NewRecorder()
	handler.MarkHelpful(first, helpfulRequest("browser-a", "r1", "3"))
	assert.Equal(t, http.StatusOK, first.Code)
	assert.Contains(t, first.Body.String(), "Helpful (4)")
	assert.Contains(t, first.Body.String(), "Thanks for your feedback")

	second := httptest.NewRecorder()
	handler.MarkHelpful(second, helpfulRequest("browser-a", "r1", "4"))
	assert.Equal(t, http.StatusOK, second.Code)
	assert.Contains(t, second.Body.String(), "Helpful (4)")

	mockReviewService.AssertNumberOfCalls(t, "MarkHelpful", 1)
}

func TestMarkHelpful_OtherBrowserMayVote(t *testing.T) {
	mockReviewService := new(MockReviewService)
	handler, guard := newReviewHandler(mockReviewService)

	mockReviewService.On("MarkHelpful", mock.Anything, "r1").Return(nil).Twice()

	handler.MarkHelpful(httptest.NewRecorder(), helpfulRequest("browser-a", "r1", "3"))
	handler.MarkHelpful(httptest.NewRecorder(), helpfulRequest("browser-b", "r1", "4"))

	assert.True(t, guard.Voted("browser-a", "r1"))
	assert.True(t, guard.Voted("browser-b", "r1"))
	mockReviewService.AssertExpectations(t)
}

func TestMarkHelpful_FailureReleasesVote(t *testing.T) {
	mockReviewService := new(MockReviewService)
	handler, guard := newReviewHandler(mockReviewService)

	mockReviewService.On("MarkHelpful", mock.Anything, "r2").Return(errors.New("backend unavailable")).Once()

	rr := httptest.NewRecorder()
	handler.MarkHelpful(rr, helpfulRequest("browser-a", "r2", "1"))

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "Helpful (1)")
	assert.Contains(t, rr.Body.String(), "We couldn&#39;t record your vote")
	assert.False(t, guard.Voted("browser-a", "r2"))
}

func TestReviews_Disclosure(t *testing.T) {
	mockReviewService := new(MockReviewService)
	handler, _ := newReviewHandler(mockReviewService)

	mockReviewService.On("ForProduct", mock.Anything, "p1", models.SortHighest).Return(reviewPage(), nil)

	req := withURLParams(httptest.NewRequest(http.MethodGet, "/products/p1/reviews?sort=highest&show=2", nil), "id", "p1")
	rr := httptest.NewRecorder()
	handler.Reviews(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	body := rr.Body.String()
	assert.Contains(t, body, "Lovely lather")
	assert.Contains(t, body, "Smells of neem")
	assert.NotContains(t, body, "Too drying for me")
	mockReviewService.AssertExpectations(t)
}

func TestReviews_LoadError(t *testing.T) {
	mockReviewService := new(MockReviewService)
	handler, _ := newReviewHandler(mockReviewService)

	mockReviewService.On("ForProduct", mock.Anything, "p1", models.SortNewest).Return(nil, errors.New("timeout"))

	rr := httptest.NewRecorder()
	handler.Reviews(rr, withURLParams(httptest.NewRequest(http.MethodGet, "/products/p1/reviews?sort=bogus", nil), "id", "p1"))

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "Reviews are unavailable right now.")
}

func TestCreateReview_Validation(t *testing.T) {
	mockReviewService := new(MockReviewService)
	handler, _ := newReviewHandler(mockReviewService)

	mockReviewService.On("ForProduct", mock.Anything, "p1", models.SortNewest).Return(reviewPage(), nil)

	form := url.Values{"rating": {"0"}, "comment": {""}, "userName": {"Guest"}}
	req := withURLParams(htmx(newFormRequest(http.MethodPost, "/products/p1/reviews", form)), "id", "p1")
	rr := httptest.NewRecorder()
	handler.CreateReview(rr, req)

	assert.Equal(t, http.StatusUnprocessableEntity, rr.Code)
	assert.Contains(t, rr.Body.String(), "Please select a rating")
	assert.Contains(t, rr.Body.String(), "Please write a review")
	mockReviewService.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything)
}

func TestCreateReview_SignedInUsesSessionIdentity(t *testing.T) {
	mockReviewService := new(MockReviewService)
	handler, _ := newReviewHandler(mockReviewService)

	mockReviewService.On("Create", mock.Anything, "user-token", models.ReviewForm{
		ProductID: "p1",
		Rating:    5,
		Comment:   "Best soap I have used",
		UserName:  "Asha Rao",
		UserEmail: "asha@example.com",
	}).Return(&models.Review{ID: "r9"}, nil)
	mockReviewService.On("ForProduct", mock.Anything, "p1", models.SortNewest).Return(reviewPage(), nil)

	form := url.Values{"rating": {"5"}, "comment": {"Best soap I have used"}, "userName": {"Someone Else"}}
	req := withURLParams(htmx(newFormRequest(http.MethodPost, "/products/p1/reviews", form)), "id", "p1")
	req = withSession(req, &models.Session{UserID: "u1", Name: "Asha Rao", Email: "asha@example.com", Token: "user-token", Role: models.UserRoleCustomer})
	rr := httptest.NewRecorder()
	handler.CreateReview(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `id="reviews"`)
	assert.Contains(t, rr.Body.String(), "Thanks for your review!")
	mockReviewService.AssertExpectations(t)
}

func TestDeleteReview_NonHTMXRedirects(t *testing.T) {
	mockReviewService := new(MockReviewService)
	handler, _ := newReviewHandler(mockReviewService)

	mockReviewService.On("Delete", mock.Anything, "user-token", "r1").Return(nil)

	req := withURLParams(newFormRequest(http.MethodPost, "/products/p1/reviews/r1/delete", url.Values{}), "id", "p1", "reviewID", "r1")
	req = withSession(req, &models.Session{UserID: "u1", Token: "user-token", Role: models.UserRoleCustomer})
	rr := httptest.NewRecorder()
	handler.DeleteReview(rr, req)

	assert.Equal(t, http.StatusSeeOther, rr.Code)
	assert.Equal(t, "/products/p1", rr.Header().Get("Location"))
	mockReviewService.AssertExpectations(t)
}
