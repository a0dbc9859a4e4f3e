package rest

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/heartmarshall/caseledger-backend/internal/domain"
	"github.com/heartmarshall/caseledger-backend/internal/service/user"
	"github.com/heartmarshall/caseledger-backend/pkg/ctxutil"
)

type userService interface {
	Register(ctx context.Context, input user.RegisterInput) (*domain.Principal, error)
	Get(ctx context.Context, id uuid.UUID) (*domain.Principal, error)
	List(ctx context.Context) ([]domain.Principal, error)
}

// UserHandler serves the principal registry. Every endpoint requires an admin.
type UserHandler struct {
	svc userService
	log *slog.Logger
}

// NewUserHandler creates a UserHandler.
func NewUserHandler(svc userService, logger *slog.Logger) *UserHandler {
	return &UserHandler{svc: svc, log: logger.With("handler", "users")}
}

// Register mounts the user endpoints on r.
func (h *UserHandler) Register(r chi.Router) {
	r.Route("/users", func(r chi.Router) {
		r.Get("/", h.List)
		r.Post("/", h.Create)
		r.Get("/{userID}", h.Get)
	})
}

type registerUserRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

// Create handles POST /api/users.
func (h *UserHandler) Create(w http.ResponseWriter, r *http.Request) {
	if !h.requireAdmin(w, r) {
		return
	}
	var req registerUserRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	p, err := h.svc.Register(r.Context(), user.RegisterInput{
		Name:  req.Name,
		Email: req.Email,
		Role:  domain.Role(req.Role),
	})
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, toPrincipalResponse(*p))
}

// Get handles GET /api/users/{userID}.
func (h *UserHandler) Get(w http.ResponseWriter, r *http.Request) {
	if !h.requireAdmin(w, r) {
		return
	}
	id, ok := pathUUID(w, r, "userID")
	if !ok {
		return
	}

	p, err := h.svc.Get(r.Context(), id)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toPrincipalResponse(*p))
}

// List handles GET /api/users.
func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	if !h.requireAdmin(w, r) {
		return
	}

	list, err := h.svc.List(r.Context())
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	out := make([]principalResponse, 0, len(list))
	for _, p := range list {
		out = append(out, toPrincipalResponse(p))
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *UserHandler) requireAdmin(w http.ResponseWriter, r *http.Request) bool {
	if _, ok := ctxutil.UserIDFromCtx(r.Context()); !ok {
		writeError(w, http.StatusUnauthorized, domain.CodeUnauthorized, "unauthorized")
		return false
	}
	if !domain.Role(ctxutil.UserRoleFromCtx(r.Context())).IsAdmin() {
		writeError(w, http.StatusForbidden, domain.CodeForbidden, "admin access required")
		return false
	}
	return true
}
