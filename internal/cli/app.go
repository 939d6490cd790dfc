package cli

import (
	"time"

	"github.com/novaschool/stolovaya/cafeteria-client/internal/config"
	"github.com/novaschool/stolovaya/cafeteria-client/internal/core/ports"
	"github.com/novaschool/stolovaya/cafeteria-client/internal/core/services"
	"github.com/novaschool/stolovaya/cafeteria-client/pkg/logger"
)

// App bundles the wired services the commands run against. The binary builds
// it once per invocation, after flags are parsed.
type App struct {
	Config *config.Config
	Log    *logger.Logger
	Clock  ports.Clock

	// Sleep pauses the terminal between a confirmation message and the
	// return of control. Tests swap it for a recorder.
	Sleep func(time.Duration)

	Cache        *services.SessionCache
	Auth         *services.TokenAuthority
	Guard        *services.RouteGuard
	Menu         *services.MenuProvider
	Entitlements *services.EntitlementEvaluator
	Payments     *services.PaymentRecorder
	Account      *services.AccountService
	Cook         *services.CookService
	Admin        *services.AdminService
}

// Factory builds the App. Construction is deferred until after flag parsing
// so --verbose can pick the logger.
type Factory func(verbose bool) (*App, error)
