package services

import (
	"context"
	"strings"

	"github.com/novaschool/stolovaya/cafeteria-client/internal/core/domain"
	"github.com/novaschool/stolovaya/cafeteria-client/internal/core/ports"
	"github.com/novaschool/stolovaya/cafeteria-client/pkg/logger"
)

// AccountService handles login, registration, logout and the profile
// sidebar (allergies, reviews).
type AccountService struct {
	cache   *SessionCache
	backend ports.Backend
	clock   ports.Clock
	log     *logger.Logger
}

func NewAccountService(cache *SessionCache, backend ports.Backend, clock ports.Clock, log *logger.Logger) *AccountService {
	return &AccountService{cache: cache, backend: backend, clock: clock, log: log}
}

// Login authenticates and stores the session. The caller states which role
// they are logging in as; if the backend reports a different role the store
// is cleared and the login fails rather than landing the caller on the
// wrong screen.
func (s *AccountService) Login(ctx context.Context, username, password string, asRole domain.Role) (*domain.User, error) {
	res, err := s.backend.Login(ctx, username, password)
	if err != nil {
		return nil, err
	}

	role := res.Role
	if role == "" {
		role = domain.RoleStudent
	}
	if asRole != "" && asRole != role {
		if err := s.cache.Clear(ctx); err != nil {
			s.log.Warnw("failed to clear session after role mismatch", "error", err)
		}
		return nil, ErrRoleMismatch
	}

	res.Role = role
	if err := s.cache.StoreLogin(ctx, res); err != nil {
		return nil, err
	}
	s.log.Infow("logged in", "username", res.User.Username, "role", role)
	return &res.User, nil
}

// Register creates a student account. Registration never touches the
// session; the caller logs in afterwards.
func (s *AccountService) Register(ctx context.Context, username, password string) error {
	return s.backend.Register(ctx, username, password)
}

// Logout clears the whole session store.
func (s *AccountService) Logout(ctx context.Context) error {
	return s.cache.Clear(ctx)
}

// Profile returns the backend's current view of the user and refreshes the
// cached record.
func (s *AccountService) Profile(ctx context.Context) (*domain.User, error) {
	user, err := s.backend.Me(ctx)
	if err != nil {
		return nil, err
	}
	if err := s.cache.SetUser(ctx, user); err != nil {
		s.log.Warnw("failed to cache user record", "error", err)
	}
	return user, nil
}

// UpdateAllergies patches the allergies text and mirrors the change into
// the cached user record.
func (s *AccountService) UpdateAllergies(ctx context.Context, allergies string) error {
	allergies = strings.TrimSpace(allergies)
	if err := s.backend.UpdateAllergies(ctx, allergies); err != nil {
		return err
	}
	user, err := s.cache.User(ctx)
	if err != nil || user == nil {
		return err
	}
	user.Allergies = allergies
	return s.cache.SetUser(ctx, user)
}

// Reviews lists the caller's own reviews, newest first as the backend
// orders them.
func (s *AccountService) Reviews(ctx context.Context) ([]domain.Review, error) {
	return s.backend.MyReviews(ctx)
}

// SendReview files a review for one of today's meals.
func (s *AccountService) SendReview(ctx context.Context, meal domain.MealType, rating int, comment string) error {
	comment = strings.TrimSpace(comment)
	if comment == "" {
		return ErrEmptyComment
	}
	if rating < 1 || rating > 5 {
		return ErrInvalidRating
	}
	review := domain.Review{
		Date:     s.clock.Now().Format(domain.ISODate),
		MealType: meal,
		Rating:   rating,
		Comment:  comment,
	}
	return s.backend.CreateReview(ctx, review)
}
