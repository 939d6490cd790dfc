package mocks

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/novaschool/stolovaya/cafeteria-client/internal/core/ports"
)

// FixedClock implements ports.Clock with a pinned instant so tests are not
// sensitive to when they run.
type FixedClock struct {
	T time.Time
}

var _ ports.Clock = FixedClock{}

func (c FixedClock) Now() time.Time { return c.T }

// SignedToken builds a syntactically valid JWT with the given expiry and
// optional role claim. The signing key is irrelevant because the client only
// decodes claims, it never verifies signatures.
func SignedToken(exp time.Time, role string) string {
	claims := jwt.MapClaims{"exp": exp.Unix()}
	if role != "" {
		claims["role"] = role
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte("test-secret"))
	if err != nil {
		panic(err)
	}
	return signed
}
