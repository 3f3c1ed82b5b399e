package auth

import (
	"errors"
	"testing"
	"time"
)

func TestIssueVerify(t *testing.T) {
	manager := NewTokenManager("secret", time.Hour, "issuer")
	token, err := manager.Issue("admin-1", "super-admin")
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}

	claims, err := manager.Verify(token)
	if err != nil {
		t.Fatalf("verify token: %v", err)
	}
	if claims.Subject != "admin-1" || claims.Role != "super-admin" {
		t.Fatalf("unexpected claims: %#v", claims)
	}
}

func TestIssueEmptySubject(t *testing.T) {
	manager := NewTokenManager("secret", time.Hour, "issuer")
	if _, err := manager.Issue("", "admin"); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected invalid token error, got %v", err)
	}
}

func TestVerifyMissing(t *testing.T) {
	manager := NewTokenManager("secret", time.Hour, "issuer")
	if _, err := manager.Verify(""); !errors.Is(err, ErrMissingToken) {
		t.Fatalf("expected missing token error, got %v", err)
	}
}

func TestVerifyExpired(t *testing.T) {
	manager := NewTokenManager("secret", -time.Minute, "issuer")
	token, err := manager.Issue("admin-1", "admin")
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}
	if _, err := manager.Verify(token); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected invalid token error, got %v", err)
	}
}

func TestVerifyWrongSecret(t *testing.T) {
	token, err := NewTokenManager("secret-a", time.Hour, "issuer").Issue("admin-1", "admin")
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}
	if _, err := NewTokenManager("secret-b", time.Hour, "issuer").Verify(token); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected invalid token error, got %v", err)
	}
}

func TestTokenFromHeader(t *testing.T) {
	if _, err := TokenFromHeader("nope"); !errors.Is(err, ErrMissingToken) {
		t.Fatalf("expected missing token error, got %v", err)
	}
	if token, err := TokenFromHeader("Bearer token"); err != nil || token != "token" {
		t.Fatalf("expected token, got %s err %v", token, err)
	}
}

func TestRoleAllowed(t *testing.T) {
	cases := []struct {
		role    string
		allowed []Role
		want    bool
	}{
		{"admin", []Role{RoleAdmin, RoleSuperAdmin}, true},
		{"super-admin", []Role{RoleAdmin, RoleSuperAdmin}, true},
		{"Super-Admin", []Role{RoleSuperAdmin}, true},
		{"admin", []Role{RoleSuperAdmin}, false},
		{"viewer", []Role{RoleAdmin, RoleSuperAdmin}, false},
		{"admin", nil, false},
	}
	for _, tc := range cases {
		if got := RoleAllowed(tc.role, tc.allowed...); got != tc.want {
			t.Fatalf("RoleAllowed(%q, %v) = %v, want %v", tc.role, tc.allowed, got, tc.want)
		}
	}
}

func TestCheckPassword(t *testing.T) {
	hash, err := HashPassword("Secret1")
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	if !CheckPassword(hash, "Secret1") {
		t.Fatal("expected password to match")
	}
	if CheckPassword(hash, "wrong") {
		t.Fatal("expected password mismatch")
	}
}
