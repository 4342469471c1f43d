package models

import "testing"

func TestCreateUser(t *testing.T) {
	user, err := CreateUser("Jane Doe", "jane@example.com", "secret123", ROLE_PARENT)
	if err != nil {
		t.Fatalf("CreateUser returned error: %v", err)
	}
	if user.Status != STATUS_INACTIVE {
		t.Fatalf("new user status = %q, want inactive", user.Status)
	}
	if user.Password == "secret123" {
		t.Fatalf("password stored in plain text")
	}
	if !user.CheckPassword("secret123") {
		t.Fatalf("hashed password does not verify")
	}
	if user.CheckPassword("wrong") {
		t.Fatalf("wrong password verified")
	}
}

func TestCreateUserValidation(t *testing.T) {
	if _, err := CreateUser("Jane", "not-an-email", "secret123", ROLE_PARENT); err == nil {
		t.Fatalf("expected invalid email to fail")
	}
	if _, err := CreateUser("Jane", "jane@example.com", "short", ROLE_PARENT); err == nil {
		t.Fatalf("expected short password to fail")
	}
	if _, err := CreateUser("J", "jane@example.com", "secret123", ROLE_PARENT); err == nil {
		t.Fatalf("expected too-short name to fail")
	}
	if _, err := CreateUser("Jane", "jane@example.com", "secret123", "superuser"); err == nil {
		t.Fatalf("expected unknown role to fail")
	}
}

func TestGenerateActivationToken(t *testing.T) {
	user := &User{}
	if err := user.GenerateActivationToken(); err != nil {
		t.Fatalf("GenerateActivationToken returned error: %v", err)
	}
	if len(user.ActivationToken) != 32 {
		t.Fatalf("token length = %d, want 32 hex chars", len(user.ActivationToken))
	}
	if user.ActivationSentAt == nil {
		t.Fatalf("ActivationSentAt not set")
	}

	first := user.ActivationToken
	if err := user.GenerateActivationToken(); err != nil {
		t.Fatalf("GenerateActivationToken returned error: %v", err)
	}
	if user.ActivationToken == first {
		t.Fatalf("tokens are not random")
	}
}

func TestRoleHelpers(t *testing.T) {
	parent := &User{Role: ROLE_PARENT, Status: STATUS_ACTIVE}
	tutor := &User{Role: ROLE_TUTOR, Status: STATUS_INACTIVE}

	if !parent.IsParent() || parent.IsTutor() {
		t.Fatalf("parent role helpers wrong")
	}
	if !tutor.IsTutor() || tutor.IsParent() {
		t.Fatalf("tutor role helpers wrong")
	}
	if !parent.IsActive() || tutor.IsActive() {
		t.Fatalf("status helper wrong")
	}
}
