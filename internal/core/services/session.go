package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/novaschool/stolovaya/cafeteria-client/internal/core/domain"
	"github.com/novaschool/stolovaya/cafeteria-client/internal/core/ports"
)

// Storage keys, kept stable so existing state files stay readable across
// upgrades.
const (
	keyAccessToken   = "access"
	keyRefreshToken  = "refresh"
	keyUserRole      = "user_role"
	keyUser          = "user"
	keySubscriptions = "subscriptions"
	keyMealPayments  = "mealPayments"
	keyIssuedMeals   = "issuedMeals"
)

// SessionCache is the typed façade over the key-value store: the token pair,
// the cached user record and the three receipt lists. All mutation goes
// through the store's atomic Update, so concurrent processes sharing one
// store cannot race a check against an append.
type SessionCache struct {
	kv ports.KeyValue
}

var _ ports.TokenSource = (*SessionCache)(nil)

func NewSessionCache(kv ports.KeyValue) *SessionCache {
	return &SessionCache{kv: kv}
}

// getOptional maps a missing key to the empty string; the cache treats
// absence and emptiness as the same state.
func (c *SessionCache) getOptional(ctx context.Context, key string) (string, error) {
	v, err := c.kv.Get(ctx, key)
	if errors.Is(err, ports.ErrKeyNotFound) {
		return "", nil
	}
	return v, err
}

func (c *SessionCache) AccessToken(ctx context.Context) (string, error) {
	return c.getOptional(ctx, keyAccessToken)
}

func (c *SessionCache) SetAccessToken(ctx context.Context, token string) error {
	return c.kv.Set(ctx, keyAccessToken, token)
}

func (c *SessionCache) RefreshToken(ctx context.Context) (string, error) {
	return c.getOptional(ctx, keyRefreshToken)
}

func (c *SessionCache) CachedRole(ctx context.Context) (domain.Role, error) {
	v, err := c.getOptional(ctx, keyUserRole)
	return domain.Role(v), err
}

// StoreLogin records a full login result in one pass: tokens, role string
// and the serialized user record.
func (c *SessionCache) StoreLogin(ctx context.Context, res *ports.LoginResult) error {
	if err := c.kv.Set(ctx, keyAccessToken, res.Access); err != nil {
		return err
	}
	if err := c.kv.Set(ctx, keyRefreshToken, res.Refresh); err != nil {
		return err
	}
	if err := c.kv.Set(ctx, keyUserRole, string(res.Role)); err != nil {
		return err
	}
	return c.SetUser(ctx, &res.User)
}

func (c *SessionCache) User(ctx context.Context) (*domain.User, error) {
	raw, err := c.getOptional(ctx, keyUser)
	if err != nil || raw == "" {
		return nil, err
	}
	var u domain.User
	if err := json.Unmarshal([]byte(raw), &u); err != nil {
		return nil, fmt.Errorf("corrupt user record: %w", err)
	}
	return &u, nil
}

func (c *SessionCache) SetUser(ctx context.Context, u *domain.User) error {
	raw, err := json.Marshal(u)
	if err != nil {
		return err
	}
	return c.kv.Set(ctx, keyUser, string(raw))
}

func (c *SessionCache) MealPayments(ctx context.Context) ([]domain.PaymentReceipt, error) {
	var out []domain.PaymentReceipt
	err := c.readList(ctx, keyMealPayments, &out)
	return out, err
}

// AppendMealPayment appends a receipt unless an identical (date, meal) pair
// is already cached, in which case it returns ErrAlreadyPaid. The check and
// the append run inside one store Update.
func (c *SessionCache) AppendMealPayment(ctx context.Context, r domain.PaymentReceipt) error {
	return c.kv.Update(ctx, keyMealPayments, func(current string) (string, error) {
		var list []domain.PaymentReceipt
		if err := unmarshalList(current, &list); err != nil {
			return "", err
		}
		for _, have := range list {
			if have.Date == r.Date && have.MealType == r.MealType {
				return "", ErrAlreadyPaid
			}
		}
		return marshalList(append(list, r))
	})
}

func (c *SessionCache) Subscriptions(ctx context.Context) ([]domain.SubscriptionReceipt, error) {
	var out []domain.SubscriptionReceipt
	err := c.readList(ctx, keySubscriptions, &out)
	return out, err
}

// AppendSubscription appends a subscription receipt unless a cached one
// already covers its start date.
func (c *SessionCache) AppendSubscription(ctx context.Context, r domain.SubscriptionReceipt) error {
	return c.kv.Update(ctx, keySubscriptions, func(current string) (string, error) {
		var list []domain.SubscriptionReceipt
		if err := unmarshalList(current, &list); err != nil {
			return "", err
		}
		for _, have := range list {
			if have.Covers(r.StartDate) {
				return "", ErrActiveSubscription
			}
		}
		return marshalList(append(list, r))
	})
}

func (c *SessionCache) IssuedMeals(ctx context.Context) ([]domain.IssuedMeal, error) {
	var out []domain.IssuedMeal
	err := c.readList(ctx, keyIssuedMeals, &out)
	return out, err
}

// RecordIssued appends an issued-meal record; duplicates are ignored since
// issuance is idempotent server-side.
func (c *SessionCache) RecordIssued(ctx context.Context, m domain.IssuedMeal) error {
	return c.kv.Update(ctx, keyIssuedMeals, func(current string) (string, error) {
		var list []domain.IssuedMeal
		if err := unmarshalList(current, &list); err != nil {
			return "", err
		}
		for _, have := range list {
			if have == m {
				return current, nil
			}
		}
		return marshalList(append(list, m))
	})
}

// Clear wipes the whole session at logout.
func (c *SessionCache) Clear(ctx context.Context) error {
	return c.kv.Clear(ctx)
}

func (c *SessionCache) readList(ctx context.Context, key string, out any) error {
	raw, err := c.getOptional(ctx, key)
	if err != nil {
		return err
	}
	if raw == "" {
		return nil
	}
	if err := json.Unmarshal([]byte(raw), out); err != nil {
		return fmt.Errorf("corrupt %s list: %w", key, err)
	}
	return nil
}

func unmarshalList[T any](raw string, out *[]T) error {
	if raw == "" {
		return nil
	}
	return json.Unmarshal([]byte(raw), out)
}

func marshalList[T any](list []T) (string, error) {
	raw, err := json.Marshal(list)
	if err != nil {
		return "", err
	}
	return string(raw), nil
}
