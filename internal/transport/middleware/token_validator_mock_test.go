package middleware

import (
	"context"
	"sync"

	"github.com/google/uuid"
)

var _ tokenValidator = (*tokenValidatorMock)(nil)

// tokenValidatorMock resolves bearer tokens through ValidateTokenFunc and
// remembers every token it was asked about.
type tokenValidatorMock struct {
	ValidateTokenFunc func(ctx context.Context, token string) (uuid.UUID, string, error)

	mu     sync.Mutex
	tokens []string
}

func (m *tokenValidatorMock) ValidateToken(ctx context.Context, token string) (uuid.UUID, string, error) {
	if m.ValidateTokenFunc == nil {
		panic("tokenValidatorMock: ValidateTokenFunc is nil")
	}
	m.mu.Lock()
	m.tokens = append(m.tokens, token)
	m.mu.Unlock()
	return m.ValidateTokenFunc(ctx, token)
}

// ValidateTokenCalls returns the tokens seen so far, in call order.
func (m *tokenValidatorMock) ValidateTokenCalls() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.tokens...)
}
