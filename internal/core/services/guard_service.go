package services

import (
	"context"

	"github.com/novaschool/stolovaya/cafeteria-client/internal/core/domain"
	"github.com/novaschool/stolovaya/cafeteria-client/pkg/logger"
)

// Decision is a route guard outcome: either admit, or redirect to the given
// route (the login screen, or the role's default screen on a role mismatch).
type Decision struct {
	Admit    bool
	Redirect string
	Role     domain.Role
}

func admit(role domain.Role) Decision {
	return Decision{Admit: true, Role: role}
}

func redirect(route string, role domain.Role) Decision {
	return Decision{Redirect: route, Role: role}
}

// RouteGuard gates every screen. The sequence per invocation: read the
// cached token; absent means unauthenticated; expired means a blocking
// refresh through the token authority; then the route's allowed-role set is
// matched against the derived role. Failures are silent decisions, not
// errors: an unauthenticated caller is sent to login, a role mismatch to the
// role's own screen.
type RouteGuard struct {
	cache *SessionCache
	auth  *TokenAuthority
	log   *logger.Logger
}

func NewRouteGuard(cache *SessionCache, auth *TokenAuthority, log *logger.Logger) *RouteGuard {
	return &RouteGuard{cache: cache, auth: auth, log: log}
}

// Authorize decides whether the caller may enter a screen restricted to
// allowedRoles. An empty set admits any authenticated caller.
func (g *RouteGuard) Authorize(ctx context.Context, allowedRoles ...domain.Role) Decision {
	token, err := g.cache.AccessToken(ctx)
	if err != nil {
		g.log.Debugw("session store unreadable", "error", err)
		return redirect(domain.RouteLogin, "")
	}
	if token == "" {
		return redirect(domain.RouteLogin, "")
	}

	if !g.auth.Valid(token) {
		token, err = g.auth.Refresh(ctx)
		if err != nil {
			return redirect(domain.RouteLogin, "")
		}
	}

	role := g.auth.Role(ctx, token)
	if len(allowedRoles) == 0 {
		return admit(role)
	}
	for _, allowed := range allowedRoles {
		if role == allowed {
			return admit(role)
		}
	}
	return redirect(domain.DefaultRoute(role), role)
}
