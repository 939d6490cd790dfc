package api

import (
	"context"
	"net/http"

	"github.com/novaschool/stolovaya/cafeteria-client/internal/core/domain"
)

func (c *Client) Me(ctx context.Context) (*domain.User, error) {
	var user domain.User
	err := c.do(ctx, call{
		endpoint: "me",
		method:   http.MethodGet,
		path:     "/api/user/me/",
		authed:   true,
	}, &user)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (c *Client) UpdateAllergies(ctx context.Context, allergies string) error {
	return c.do(ctx, call{
		endpoint: "update_allergies",
		method:   http.MethodPatch,
		path:     "/api/user/me/",
		body:     map[string]string{"allergies": allergies},
		authed:   true,
	}, nil)
}

func (c *Client) MyReviews(ctx context.Context) ([]domain.Review, error) {
	var reviews []domain.Review
	err := c.do(ctx, call{
		endpoint: "my_reviews",
		method:   http.MethodGet,
		path:     "/api/user/reviews/",
		authed:   true,
	}, &reviews)
	if err != nil {
		return nil, err
	}
	return reviews, nil
}

func (c *Client) CreateReview(ctx context.Context, review domain.Review) error {
	return c.do(ctx, call{
		endpoint: "create_review",
		method:   http.MethodPost,
		path:     "/api/reviews/",
		body:     review,
		authed:   true,
	}, nil)
}
