package api

import (
	"context"
	"net/http"
	"net/url"

	"github.com/novaschool/stolovaya/cafeteria-client/internal/core/domain"
)

func (c *Client) CookDashboard(ctx context.Context) ([]domain.PurchaseRequest, error) {
	var dashboard struct {
		PurchaseRequests []domain.PurchaseRequest `json:"purchase_requests"`
	}
	err := c.do(ctx, call{
		endpoint: "cook_dashboard",
		method:   http.MethodGet,
		path:     "/api/cook/dashboard/",
		authed:   true,
	}, &dashboard)
	if err != nil {
		return nil, err
	}
	return dashboard.PurchaseRequests, nil
}

func (c *Client) PaidStudents(ctx context.Context, date string, meal domain.MealType) ([]domain.PaidStudent, error) {
	query := url.Values{}
	query.Set("date", date)
	query.Set("meal_type", string(meal))

	var students []domain.PaidStudent
	err := c.do(ctx, call{
		endpoint: "paid_students",
		method:   http.MethodGet,
		path:     "/api/paid-students/?" + query.Encode(),
		authed:   true,
	}, &students)
	if err != nil {
		return nil, err
	}
	return students, nil
}

func (c *Client) IssueMealForUser(ctx context.Context, userID int, meal domain.MealType, date string) error {
	return c.do(ctx, call{
		endpoint: "issue_meal",
		method:   http.MethodPost,
		path:     "/api/cook/issue-meal-for-user/",
		body: map[string]any{
			"user_id":   userID,
			"meal_type": string(meal),
			"date":      date,
		},
		authed: true,
	}, nil)
}

func (c *Client) CreatePurchaseRequest(ctx context.Context, productName string, quantity int, unit string) error {
	return c.do(ctx, call{
		endpoint: "create_purchase_request",
		method:   http.MethodPost,
		path:     "/api/cook/purchase-requests/",
		body: map[string]any{
			"product_name": productName,
			"quantity":     quantity,
			"unit":         unit,
		},
		authed: true,
	}, nil)
}
