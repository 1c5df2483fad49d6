package domain

import "testing"

func TestUser_Can_NoRole(t *testing.T) {
	user := &User{ChatID: 100, IsRegistered: true}

	if user.Can(CapabilityAddDefects) {
		t.Error("Expected a user without a role to be denied")
	}
	if user.Can(CapabilityBeAssigned) {
		t.Error("Expected a user without a role to be denied")
	}
}

func TestUser_Can_RoleFlags(t *testing.T) {
	user := &User{
		ChatID:       100,
		IsRegistered: true,
		Role:         &Role{Name: "worker", CanBeAssigned: true},
	}

	if user.Can(CapabilityAddDefects) {
		t.Error("Expected CanAdd=false to deny adding defects")
	}
	if !user.Can(CapabilityBeAssigned) {
		t.Error("Expected CanBeAssigned=true to allow assignment work")
	}
}
