package identity

import (
	"errors"
	"testing"

	"github.com/example/resale/internal/core/apperr"
)

func TestParseRole(t *testing.T) {
	tests := []struct {
		in      string
		want    Role
		wantErr bool
	}{
		{"seller", RoleSeller, false},
		{"  MANAGER ", RoleManager, false},
		{"delivery_agent", RoleDeliveryAgent, false},
		{"agent", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseRole(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseRole(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if tt.wantErr && !errors.Is(err, apperr.ErrValidation) {
				t.Errorf("error = %v, want validation", err)
			}
			if got != tt.want {
				t.Errorf("ParseRole(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestIdentity_Validate(t *testing.T) {
	tests := []struct {
		name    string
		id      Identity
		wantErr bool
	}{
		{"valid", Identity{ID: "USR-1", Role: RoleCustomer}, false},
		{"blank id", Identity{ID: "  ", Role: RoleCustomer}, true},
		{"unknown role", Identity{ID: "USR-1", Role: "wizard"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.id.Validate(); (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestIdentity_Is(t *testing.T) {
	admin := Identity{ID: "USR-ROOT", Role: RoleAdmin}
	if !admin.IsAdmin() || !admin.Is(RoleManager, RoleAdmin) {
		t.Error("expected admin to match")
	}
	if admin.Is(RoleSeller) {
		t.Error("admin is not a seller")
	}
}
