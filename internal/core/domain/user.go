package domain

type Role string

const (
	RoleAdmin   Role = "admin"
	RoleCook    Role = "cook"
	RoleStudent Role = "student"
)

// DefaultRoute returns the landing route for a role. Unknown roles land on
// the student home screen, matching the backend's default role.
func DefaultRoute(r Role) string {
	switch r {
	case RoleAdmin:
		return RouteAdmin
	case RoleCook:
		return RouteCook
	default:
		return RouteHome
	}
}

// Client-side routes, used as identifiers of the client's screens.
const (
	RouteHome     = "/"
	RouteAdmin    = "/admin"
	RouteCook     = "/cook"
	RouteLogin    = "/login"
	RouteRegister = "/register"
	RouteLogout   = "/logout"
)

type User struct {
	ID        int    `json:"id"`
	Username  string `json:"username"`
	Role      Role   `json:"role"`
	Allergies string `json:"allergies"`
}

// PaidStudent is one row of the cook's paid-students list.
type PaidStudent struct {
	ID        int    `json:"id"`
	Username  string `json:"username"`
	FirstName string `json:"first_name,omitempty"`
	LastName  string `json:"last_name,omitempty"`
}

func (s PaidStudent) DisplayName() string {
	name := s.FirstName
	if name == "" {
		name = s.Username
	}
	if s.LastName != "" {
		name += " " + s.LastName
	}
	return name
}
