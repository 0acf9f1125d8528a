package controllers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"volunteerhub/internal/delivery/http/helpers"
	"volunteerhub/internal/delivery/http/middleware"
	"volunteerhub/internal/domain"
)

func TestUserController_GetMe_Unauthorized(t *testing.T) {
	ctrl := NewUserController(discardLogger(), &mockUserService{})

	req := httptest.NewRequest(http.MethodGet, "/users/me", nil)
	w := httptest.NewRecorder()
	ctrl.GetMe(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected status %d, got %d", http.StatusUnauthorized, w.Code)
	}
}

func TestUserController_GetMe_Success(t *testing.T) {
	svc := &mockUserService{user: &domain.User{ID: 10, Name: "Ada", Email: "ada@example.com", Role: domain.RoleVolunteer}}
	ctrl := NewUserController(discardLogger(), svc)

	req := httptest.NewRequest(http.MethodGet, "/users/me", nil)
	req = req.WithContext(middleware.SetIdentity(req.Context(), 10, domain.RoleVolunteer))

	w := httptest.NewRecorder()
	ctrl.GetMe(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, w.Code)
	}
	var resp helpers.APIResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to unmarshal response: %v", err)
	}
	if resp.Error != nil {
		t.Fatalf("expected no error, got %v", resp.Error)
	}
}

func TestUserController_GetMe_NotFound(t *testing.T) {
	svc := &mockUserService{getErr: domain.ErrNotFound}
	ctrl := NewUserController(discardLogger(), svc)

	req := httptest.NewRequest(http.MethodGet, "/users/me", nil)
	req = req.WithContext(middleware.SetIdentity(req.Context(), 10, domain.RoleVolunteer))

	w := httptest.NewRecorder()
	ctrl.GetMe(w, req)

	if w.Code != http.StatusNotFound {
		t.Fatalf("expected status %d, got %d", http.StatusNotFound, w.Code)
	}
}
