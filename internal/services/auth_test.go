package services

import (
	"errors"
	"strings"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"
)

func testTokens() TokenService {
	return TokenService{
		Secret:     []byte("test-secret"),
		Issuer:     "pathways-test",
		AccessTTL:  time.Minute,
		RefreshTTL: time.Hour,
	}
}

func TestPasswordHashing(t *testing.T) {
	tokens := testTokens()
	hash, err := tokens.HashPassword("Secret123")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	if !strings.HasPrefix(hash, "$argon2id$") {
		t.Fatalf("unexpected hash format %q", hash)
	}
	if !tokens.VerifyPassword("Secret123", hash) {
		t.Fatal("expected password to verify")
	}
	if tokens.VerifyPassword("Secret124", hash) {
		t.Fatal("wrong password verified")
	}

	legacy, err := bcrypt.GenerateFromPassword([]byte("Legacy123"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("bcrypt: %v", err)
	}
	if !tokens.VerifyPassword("Legacy123", string(legacy)) {
		t.Fatal("expected bcrypt hash to verify")
	}
}

func TestTokenPair(t *testing.T) {
	tokens := testTokens()
	pair, err := tokens.IssuePair("user-1", "ada@example.com", "student")
	if err != nil {
		t.Fatalf("IssuePair: %v", err)
	}
	claims, err := tokens.ParseAccessToken(pair.AccessToken)
	if err != nil {
		t.Fatalf("ParseAccessToken: %v", err)
	}
	if claims.UserID != "user-1" || claims.Role != "student" || claims.Email != "ada@example.com" {
		t.Fatalf("unexpected claims %+v", claims)
	}
	if claims.ID == "" {
		t.Fatal("access token has no jti")
	}
	if _, err := tokens.ParseRefreshToken(pair.AccessToken); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("access token accepted as refresh token: %v", err)
	}
	if _, err := tokens.ParseAccessToken(pair.RefreshToken); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("refresh token accepted as access token: %v", err)
	}
	if _, err := tokens.ParseRefreshToken(pair.RefreshToken); err != nil {
		t.Fatalf("ParseRefreshToken: %v", err)
	}
}

func TestTokenRejections(t *testing.T) {
	tokens := testTokens()
	access, _, err := tokens.CreateAccessToken("user-1", "a@b.io", "admin")
	if err != nil {
		t.Fatalf("CreateAccessToken: %v", err)
	}

	other := testTokens()
	other.Secret = []byte("another-secret")
	if _, err := other.ParseAccessToken(access); err == nil {
		t.Fatal("token signed with another secret was accepted")
	}

	otherIssuer := testTokens()
	otherIssuer.Issuer = "someone-else"
	if _, err := otherIssuer.ParseAccessToken(access); err == nil {
		t.Fatal("token from another issuer was accepted")
	}

	expired := testTokens()
	expired.AccessTTL = -time.Minute
	stale, _, err := expired.CreateAccessToken("user-1", "a@b.io", "admin")
	if err != nil {
		t.Fatalf("CreateAccessToken: %v", err)
	}
	if _, err := tokens.ParseAccessToken(stale); err == nil {
		t.Fatal("expired token was accepted")
	}

	if _, err := tokens.ParseAccessToken("not-a-token"); err == nil {
		t.Fatal("garbage was accepted")
	}
}

func TestResetToken(t *testing.T) {
	token, digest, err := NewResetToken()
	if err != nil {
		t.Fatalf("NewResetToken: %v", err)
	}
	if token == "" || len(digest) != 64 {
		t.Fatalf("unexpected token %q digest %q", token, digest)
	}
	if HashResetToken(token) != digest {
		t.Fatal("digest does not match token")
	}
	other, _, _ := NewResetToken()
	if other == token {
		t.Fatal("tokens repeat")
	}
}
