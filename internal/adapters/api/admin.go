package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/novaschool/stolovaya/cafeteria-client/internal/core/domain"
)

func (c *Client) AdminStats(ctx context.Context) (*domain.AdminStats, error) {
	var stats domain.AdminStats
	err := c.do(ctx, call{
		endpoint: "admin_stats",
		method:   http.MethodGet,
		path:     "/api/admin/stats/",
		authed:   true,
	}, &stats)
	if err != nil {
		return nil, err
	}
	return &stats, nil
}

func (c *Client) AdminPurchaseRequests(ctx context.Context) ([]domain.PurchaseRequest, error) {
	var requests []domain.PurchaseRequest
	err := c.do(ctx, call{
		endpoint: "admin_purchase_requests",
		method:   http.MethodGet,
		path:     "/api/admin/purchase-requests/",
		authed:   true,
	}, &requests)
	if err != nil {
		return nil, err
	}
	return requests, nil
}

func (c *Client) ApproveRequest(ctx context.Context, requestID int, approved bool) error {
	return c.do(ctx, call{
		endpoint: "approve_request",
		method:   http.MethodPost,
		path:     fmt.Sprintf("/api/admin/approve-request/%d/", requestID),
		body:     map[string]bool{"approved": approved},
		authed:   true,
	}, nil)
}

func (c *Client) DailyReport(ctx context.Context, date string) (*domain.DailyReport, error) {
	query := url.Values{}
	query.Set("date", date)

	var report domain.DailyReport
	err := c.do(ctx, call{
		endpoint: "daily_report",
		method:   http.MethodGet,
		path:     "/api/admin/reports/daily/?" + query.Encode(),
		authed:   true,
	}, &report)
	if err != nil {
		return nil, err
	}
	return &report, nil
}
