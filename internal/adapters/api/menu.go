package api

import (
	"context"
	"net/http"

	"github.com/novaschool/stolovaya/cafeteria-client/internal/core/ports"
)

func (c *Client) WeeklyMenu(ctx context.Context) (ports.RawWeek, error) {
	var week ports.RawWeek
	err := c.do(ctx, call{
		endpoint: "weekly_menu",
		method:   http.MethodGet,
		path:     "/api/menu/weekly/",
	}, &week)
	if err != nil {
		return nil, err
	}
	return week, nil
}

// Ping hits the public menu endpoint, the cheapest unauthenticated probe the
// backend offers.
func (c *Client) Ping(ctx context.Context) error {
	return c.do(ctx, call{
		endpoint: "ping",
		method:   http.MethodGet,
		path:     "/api/menu/weekly/",
	}, nil)
}
