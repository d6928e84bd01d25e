package controllers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"

	usersvc "github.com/shopworks/storefront-backend/internal/users"
	pkgerrors "github.com/shopworks/storefront-backend/pkg/errors"
)

type stubUsersService struct {
	users []usersvc.UserDTO
	user  *usersvc.UserDTO
	err   error

	deletedTarget uuid.UUID
	deletedActor  uuid.UUID
}

func (s *stubUsersService) List(ctx context.Context) ([]usersvc.UserDTO, error) {
	return s.users, s.err
}

func (s *stubUsersService) Get(ctx context.Context, id uuid.UUID) (*usersvc.UserDTO, error) {
	return s.user, s.err
}

func (s *stubUsersService) Update(ctx context.Context, id uuid.UUID, dto usersvc.UpdateUserDTO) (*usersvc.UserDTO, error) {
	return s.user, s.err
}

func (s *stubUsersService) Delete(ctx context.Context, id, actorID uuid.UUID) error {
	s.deletedTarget = id
	s.deletedActor = actorID
	return s.err
}

func TestAdminUserDeleteForwardsActor(t *testing.T) {
	targetID := uuid.New()
	stub := &stubUsersService{}
	handler := AdminUserDelete(stub, nil)

	req := authedRequest(http.MethodDelete, "/api/admin/v1/users/"+targetID.String(), nil, map[string]string{"userId": targetID.String()})
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
	if stub.deletedTarget != targetID {
		t.Fatalf("expected target %s got %s", targetID, stub.deletedTarget)
	}
	if stub.deletedActor == uuid.Nil {
		t.Fatal("expected the acting admin id to be forwarded")
	}
}

func TestAdminUserDeleteSelfRefused(t *testing.T) {
	targetID := uuid.New()
	stub := &stubUsersService{err: pkgerrors.New(pkgerrors.CodeForbidden, "you cannot delete your own account")}
	handler := AdminUserDelete(stub, nil)

	req := authedRequest(http.MethodDelete, "/api/admin/v1/users/"+targetID.String(), nil, map[string]string{"userId": targetID.String()})
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusForbidden {
		t.Fatalf("expected 403 got %d", resp.Code)
	}
}

func TestMeReturnsProfile(t *testing.T) {
	stub := &stubUsersService{user: &usersvc.UserDTO{ID: uuid.New(), Username: "casey"}}
	handler := Me(stub, nil)

	req := authedRequest(http.MethodGet, "/api/v1/me", nil, nil)
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
}

func TestMeMissingUserContext(t *testing.T) {
	handler := Me(&stubUsersService{}, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/me", nil)
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 got %d", resp.Code)
	}
}
