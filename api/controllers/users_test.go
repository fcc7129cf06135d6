package controllers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	usersvc "github.com/litera-id/litera-backend/internal/users"
	"github.com/litera-id/litera-backend/pkg/enums"
	"github.com/litera-id/litera-backend/pkg/pagination"
	"github.com/litera-id/litera-backend/pkg/types"
)

type stubUserService struct {
	verifiedID uuid.UUID
}

func (s *stubUserService) ListUsers(ctx context.Context, params pagination.Params) ([]usersvc.UserDTO, types.Pagination, error) {
	return []usersvc.UserDTO{{ID: uuid.New(), Username: "reader", Role: enums.UserRoleMember}}, params.Meta(1), nil
}

func (s *stubUserService) VerifyUser(ctx context.Context, id uuid.UUID) (*usersvc.UserDTO, error) {
	s.verifiedID = id
	at := time.Now()
	return &usersvc.UserDTO{ID: id, Username: "reader", Role: enums.UserRoleMember, VerifiedAt: &at}, nil
}

func TestListUsers(t *testing.T) {
	logg := testLogger()

	req := httptest.NewRequest(http.MethodGet, "/api/v1/users?page=1&limit=20", nil)
	rec := httptest.NewRecorder()
	ListUsers(&stubUserService{}, logg).ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestVerifyUser(t *testing.T) {
	logg := testLogger()

	t.Run("invalid id", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/users/not-a-uuid/verify", nil)
		routeCtx := chi.NewRouteContext()
		routeCtx.URLParams.Add("id", "not-a-uuid")
		req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, routeCtx))
		rec := httptest.NewRecorder()
		VerifyUser(&stubUserService{}, logg).ServeHTTP(rec, req)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400 for invalid id, got %d", rec.Code)
		}
	})

	t.Run("success", func(t *testing.T) {
		userID := uuid.New()
		req := httptest.NewRequest(http.MethodPost, "/api/v1/users/"+userID.String()+"/verify", nil)
		routeCtx := chi.NewRouteContext()
		routeCtx.URLParams.Add("id", userID.String())
		req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, routeCtx))
		stub := &stubUserService{}
		rec := httptest.NewRecorder()
		VerifyUser(stub, logg).ServeHTTP(rec, req)
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		if stub.verifiedID != userID {
			t.Fatalf("expected VerifyUser to receive %s", userID)
		}
	})
}
