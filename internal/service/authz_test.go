package service

import (
	"errors"
	"testing"

	"travel-api/internal/domain"
)

func TestCheckRoles_DeniesMissingRole(t *testing.T) {
	user := domain.User{ID: 1, Roles: []string{"user"}}
	if err := CheckRoles(user, "admin"); !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}

func TestCheckRoles_AllowsAnyIntersection(t *testing.T) {
	user := domain.User{ID: 1, Roles: []string{"admin", "user"}}
	if err := CheckRoles(user, "admin"); err != nil {
		t.Fatalf("expected allow, got %v", err)
	}
	if err := CheckRoles(user, "moderator", "user"); err != nil {
		t.Fatalf("expected allow on OR semantics, got %v", err)
	}
}

func TestCheckRoles_DeniesEmptyRoleSet(t *testing.T) {
	user := domain.User{ID: 1, Roles: nil}
	if err := CheckRoles(user, "admin"); !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden for user without roles, got %v", err)
	}
}

func TestCheckOwner(t *testing.T) {
	owner := domain.User{ID: 7}
	if err := CheckOwner(owner, 7); err != nil {
		t.Fatalf("expected owner allowed, got %v", err)
	}
	if err := CheckOwner(owner, 8); !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden for non-owner, got %v", err)
	}

	admin := domain.User{ID: 1, Roles: []string{"admin"}}
	if err := CheckOwner(admin, 8); !errors.Is(err, ErrForbidden) {
		t.Fatalf("admin role must not bypass owner check, got %v", err)
	}
}
