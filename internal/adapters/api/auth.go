package api

import (
	"context"
	"net/http"

	"github.com/novaschool/stolovaya/cafeteria-client/internal/core/ports"
)

type credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (c *Client) Login(ctx context.Context, username, password string) (*ports.LoginResult, error) {
	var result ports.LoginResult
	err := c.do(ctx, call{
		endpoint: "login",
		method:   http.MethodPost,
		path:     "/api/token/",
		body:     credentials{Username: username, Password: password},
	}, &result)
	if err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *Client) Register(ctx context.Context, username, password string) error {
	return c.do(ctx, call{
		endpoint: "register",
		method:   http.MethodPost,
		path:     "/api/user/register/",
		body:     credentials{Username: username, Password: password},
	}, nil)
}

func (c *Client) RefreshToken(ctx context.Context, refresh string) (string, error) {
	var result struct {
		Access string `json:"access"`
	}
	err := c.do(ctx, call{
		endpoint: "refresh_token",
		method:   http.MethodPost,
		path:     "/api/token/refresh/",
		body:     map[string]string{"refresh": refresh},
	}, &result)
	if err != nil {
		return "", err
	}
	return result.Access, nil
}
