package api

import (
	"context"
	"net/http"

	"github.com/novaschool/stolovaya/cafeteria-client/internal/core/domain"
)

func (c *Client) PayMeal(ctx context.Context, date string, meal domain.MealType, idempotencyKey string) error {
	return c.do(ctx, call{
		endpoint: "pay_meal",
		method:   http.MethodPost,
		path:     "/api/pay-meal/",
		body: map[string]string{
			"date":      date,
			"meal_type": string(meal),
		},
		authed:         true,
		idempotencyKey: idempotencyKey,
	}, nil)
}

func (c *Client) BuySubscription(ctx context.Context, startDate string, idempotencyKey string) error {
	return c.do(ctx, call{
		endpoint: "buy_subscription",
		method:   http.MethodPost,
		path:     "/api/buy-subscription/",
		body: map[string]string{
			"start_date": startDate,
		},
		authed:         true,
		idempotencyKey: idempotencyKey,
	}, nil)
}
