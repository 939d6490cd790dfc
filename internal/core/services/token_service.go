package services

import (
	"context"

	"github.com/golang-jwt/jwt/v5"

	"github.com/novaschool/stolovaya/cafeteria-client/internal/core/domain"
	"github.com/novaschool/stolovaya/cafeteria-client/internal/core/ports"
	"github.com/novaschool/stolovaya/cafeteria-client/pkg/logger"
)

// TokenAuthority validates and refreshes the cached access token. The
// client never verifies signatures; the signing key lives server-side and
// the token is only decoded for its expiry and role claims. Any decode,
// network or non-200 failure collapses to ErrUnauthenticated with no retry.
type TokenAuthority struct {
	cache   *SessionCache
	backend ports.Backend
	clock   ports.Clock
	log     *logger.Logger
}

func NewTokenAuthority(cache *SessionCache, backend ports.Backend, clock ports.Clock, log *logger.Logger) *TokenAuthority {
	return &TokenAuthority{cache: cache, backend: backend, clock: clock, log: log}
}

// claims decodes the token payload without signature verification.
func (a *TokenAuthority) claims(token string) (jwt.MapClaims, error) {
	claims := jwt.MapClaims{}
	_, _, err := jwt.NewParser().ParseUnverified(token, claims)
	if err != nil {
		return nil, err
	}
	return claims, nil
}

// Valid reports whether the token decodes and its expiry is in the future.
func (a *TokenAuthority) Valid(token string) bool {
	claims, err := a.claims(token)
	if err != nil {
		return false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return false
	}
	return exp.Time.After(a.clock.Now())
}

// Role derives the caller's role: the token claim wins, the cached role
// string is a last-resort fallback, and everything else defaults to student.
func (a *TokenAuthority) Role(ctx context.Context, token string) domain.Role {
	if claims, err := a.claims(token); err == nil {
		if role, ok := claims["role"].(string); ok && role != "" {
			return domain.Role(role)
		}
	}
	if cached, err := a.cache.CachedRole(ctx); err == nil && cached != "" {
		return cached
	}
	return domain.RoleStudent
}

// Refresh exchanges the cached refresh token for a new access token and
// stores it. The context is re-checked before the store write so a refresh
// resolving after logout or cancellation cannot repopulate cleared storage.
func (a *TokenAuthority) Refresh(ctx context.Context) (string, error) {
	refresh, err := a.cache.RefreshToken(ctx)
	if err != nil {
		return "", err
	}
	if refresh == "" {
		return "", ErrUnauthenticated
	}

	access, err := a.backend.RefreshToken(ctx, refresh)
	if err != nil {
		a.log.Debugw("token refresh failed", "error", err)
		return "", ErrUnauthenticated
	}

	if err := ctx.Err(); err != nil {
		return "", err
	}
	if err := a.cache.SetAccessToken(ctx, access); err != nil {
		return "", err
	}
	return access, nil
}

// EnsureFresh returns a currently valid access token, refreshing if the
// cached one has expired. A missing token is ErrUnauthenticated.
func (a *TokenAuthority) EnsureFresh(ctx context.Context) (string, error) {
	token, err := a.cache.AccessToken(ctx)
	if err != nil {
		return "", err
	}
	if token == "" {
		return "", ErrUnauthenticated
	}
	if a.Valid(token) {
		return token, nil
	}
	return a.Refresh(ctx)
}
