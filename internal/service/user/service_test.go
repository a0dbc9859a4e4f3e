package user

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heartmarshall/caseledger-backend/internal/adapter/memory"
	"github.com/heartmarshall/caseledger-backend/internal/domain"
)

func newTestService() *Service {
	logger := slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError}))
	return NewService(logger, memory.NewStore().Users())
}

// ---------------------------------------------------------------------------
// RegisterInput.Validate boundary tests
// ---------------------------------------------------------------------------

func TestRegisterInput_Validate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		input   RegisterInput
		wantErr bool
	}{
		{"valid", RegisterInput{Name: "Ada", Email: "ada@example.com", Role: domain.RoleStaff}, false},
		{"name at max length (255)", RegisterInput{Name: strings.Repeat("a", 255), Email: "a@b.io", Role: domain.RoleAdmin}, false},
		{"name at 256", RegisterInput{Name: strings.Repeat("a", 256), Email: "a@b.io", Role: domain.RoleAdmin}, true},
		{"empty name", RegisterInput{Email: "a@b.io", Role: domain.RoleAdmin}, true},
		{"display-name email", RegisterInput{Name: "Ada", Email: "Ada <ada@example.com>", Role: domain.RoleStaff}, true},
		{"bad email", RegisterInput{Name: "Ada", Email: "ada", Role: domain.RoleStaff}, true},
		{"unknown role", RegisterInput{Name: "Ada", Email: "ada@example.com", Role: "root"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := tt.input.Validate()
			if tt.wantErr {
				require.ErrorIs(t, err, domain.ErrValidation)
			} else {
				require.NoError(t, err)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// Register / List tests
// ---------------------------------------------------------------------------

func TestService_Register_NormalizesEmail(t *testing.T) {
	t.Parallel()

	svc := newTestService()
	p, err := svc.Register(context.Background(), RegisterInput{Name: " Grace ", Email: "Grace@Example.com", Role: domain.RoleManager})
	require.NoError(t, err)

	assert.Equal(t, "Grace", p.Name)
	assert.Equal(t, "grace@example.com", p.Email)

	got, err := svc.Get(context.Background(), p.ID)
	require.NoError(t, err)
	assert.Equal(t, p, got)
}

func TestService_Register_DuplicateEmail(t *testing.T) {
	t.Parallel()

	svc := newTestService()
	_, err := svc.Register(context.Background(), RegisterInput{Name: "A", Email: "dup@example.com", Role: domain.RoleStaff})
	require.NoError(t, err)

	_, err = svc.Register(context.Background(), RegisterInput{Name: "B", Email: "DUP@example.com", Role: domain.RoleStaff})
	require.ErrorIs(t, err, domain.ErrAlreadyExists)
}

func TestService_Get_NotFound(t *testing.T) {
	t.Parallel()

	_, err := newTestService().Get(context.Background(), uuid.New())
	assert.Equal(t, domain.CodeNotFound, domain.CodeOf(err))
}

func TestService_List_OrderedByEmail(t *testing.T) {
	t.Parallel()

	svc := newTestService()
	for _, email := range []string{"zed@example.com", "amy@example.com"} {
		_, err := svc.Register(context.Background(), RegisterInput{Name: "x", Email: email, Role: domain.RoleStaff})
		require.NoError(t, err)
	}

	list, err := svc.List(context.Background())
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "amy@example.com", list[0].Email)
}
