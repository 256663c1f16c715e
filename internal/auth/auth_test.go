package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/lwandle/moneycircles/internal/models"
	"github.com/lwandle/moneycircles/internal/storage/memory"
)

func TestRegisterAndAuthenticate(t *testing.T) {
	ctx := context.Background()
	authenticator := NewPasswordAuthenticator(memory.New())

	user, err := authenticator.Register(ctx, "alice", "Alice Dube", "alice@example.com", "s3cret-pass")
	if err != nil {
		t.Fatalf("Register() error = %v", err)
	}
	if user.ID == 0 {
		t.Error("Register() did not assign an ID")
	}
	if user.PasswordHash == "s3cret-pass" {
		t.Error("password stored in plain text")
	}
	if user.WalletBalance != startingWalletBalance {
		t.Errorf("WalletBalance = %v, want %v", user.WalletBalance, startingWalletBalance)
	}
	if user.Level != 1 || user.XPPoints != 0 {
		t.Errorf("new user progression = level %d / %d XP, want level 1 / 0 XP", user.Level, user.XPPoints)
	}

	authed, err := authenticator.Authenticate(ctx, "alice", "s3cret-pass")
	if err != nil {
		t.Fatalf("Authenticate() error = %v", err)
	}
	if authed.ID != user.ID {
		t.Errorf("authenticated user ID = %d, want %d", authed.ID, user.ID)
	}

	if _, err := authenticator.Authenticate(ctx, "alice", "wrong-pass"); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("Authenticate(wrong password) error = %v, want ErrInvalidCredentials", err)
	}
	if _, err := authenticator.Authenticate(ctx, "nobody", "s3cret-pass"); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("Authenticate(unknown user) error = %v, want ErrInvalidCredentials", err)
	}
}

func TestRegisterRejectsDuplicatesAndWeakPasswords(t *testing.T) {
	ctx := context.Background()
	authenticator := NewPasswordAuthenticator(memory.New())

	if _, err := authenticator.Register(ctx, "alice", "Alice", "a@example.com", "s3cret-pass"); err != nil {
		t.Fatalf("Register() error = %v", err)
	}
	if _, err := authenticator.Register(ctx, "alice", "Alice Two", "a2@example.com", "other-pass1"); !errors.Is(err, ErrUsernameTaken) {
		t.Errorf("Register(duplicate) error = %v, want ErrUsernameTaken", err)
	}
	if _, err := authenticator.Register(ctx, "bob", "Bob", "b@example.com", "short"); !errors.Is(err, ErrWeakPassword) {
		t.Errorf("Register(weak password) error = %v, want ErrWeakPassword", err)
	}
	if _, err := authenticator.Register(ctx, "   ", "Blank", "c@example.com", "s3cret-pass"); err == nil {
		t.Error("Register(blank username) succeeded, want error")
	}
}

func TestJWTRoundTrip(t *testing.T) {
	manager := NewJWTManager("test-secret", time.Hour)
	user := &models.User{ID: 42, Username: "alice"}

	token, err := manager.Generate(user)
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	claims, err := manager.Validate(token)
	if err != nil {
		t.Fatalf("Validate() error = %v", err)
	}
	if claims.UserID != 42 {
		t.Errorf("UserID = %d, want 42", claims.UserID)
	}
	if claims.Username != "alice" {
		t.Errorf("Username = %q, want alice", claims.Username)
	}
}

func TestJWTRejectsBadTokens(t *testing.T) {
	manager := NewJWTManager("test-secret", time.Hour)
	user := &models.User{ID: 42, Username: "alice"}

	if _, err := manager.Validate("not-a-token"); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("Validate(garbage) error = %v, want ErrInvalidToken", err)
	}

	// Tokens signed with a different secret are rejected.
	other := NewJWTManager("other-secret", time.Hour)
	token, err := other.Generate(user)
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if _, err := manager.Validate(token); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("Validate(wrong secret) error = %v, want ErrInvalidToken", err)
	}

	// Expired tokens are rejected.
	expired := NewJWTManager("test-secret", -time.Hour)
	token, err = expired.Generate(user)
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if _, err := manager.Validate(token); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("Validate(expired) error = %v, want ErrInvalidToken", err)
	}
}
