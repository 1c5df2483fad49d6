package usecase

import (
	"context"
	"testing"

	"github.com/digichlist/digichlist-bot/internal/biz/domain"
)

func TestAuthorize_UnknownUser(t *testing.T) {
	uc := NewAuthUsecase(newMockUserRepo())

	allowed, err := uc.Authorize(context.Background(), 100, domain.CapabilityAddDefects)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if allowed {
		t.Error("Expected unknown user to be denied")
	}
}

func TestAuthorize_RegisteredWithoutRole(t *testing.T) {
	users := newMockUserRepo()
	users.users[100] = &domain.User{ID: 1, ChatID: 100, IsRegistered: true}
	uc := NewAuthUsecase(users)

	allowed, err := uc.Authorize(context.Background(), 100, domain.CapabilityBeAssigned)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if allowed {
		t.Error("Expected a user without a role to be denied")
	}
}

func TestAuthorize_RoleGrants(t *testing.T) {
	users := newMockUserRepo()
	users.users[100] = &domain.User{
		ID:           1,
		ChatID:       100,
		IsRegistered: true,
		Role:         &domain.Role{Name: "admin", CanAdd: true, CanBeAssigned: true},
	}
	uc := NewAuthUsecase(users)

	for _, c := range []domain.Capability{domain.CapabilityAddDefects, domain.CapabilityBeAssigned} {
		allowed, err := uc.Authorize(context.Background(), 100, c)
		if err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}
		if !allowed {
			t.Errorf("Expected capability %v to be granted", c)
		}
	}
}
