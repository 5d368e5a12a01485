package auth

import (
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func TestExtractToken(t *testing.T) {
	tests := []struct {
		header  string
		want    string
		wantErr bool
	}{
		{"Bearer abc.def", "abc.def", false},
		{"bearer   abc ", "abc", false},
		{"", "", true},
		{"Basic abc", "", true},
		{"Bearer ", "", true},
		{"abc", "", true},
	}
	for _, tt := range tests {
		got, err := ExtractToken(tt.header)
		if (err != nil) != tt.wantErr {
			t.Errorf("ExtractToken(%q) error = %v, wantErr %v", tt.header, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("ExtractToken(%q) = %q, want %q", tt.header, got, tt.want)
		}
	}
}

func TestNewLocalJWTAuth(t *testing.T) {
	if _, err := NewLocalJWTAuth("", time.Hour); err == nil {
		t.Error("Expected error for empty secret")
	}

	a, err := NewLocalJWTAuth("secret", 0)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if a.TokenExpiry != DefaultTokenExpiry {
		t.Errorf("Expected default expiry %v, got %v", DefaultTokenExpiry, a.TokenExpiry)
	}
}

func TestGenerateAndVerifyToken(t *testing.T) {
	a, _ := NewLocalJWTAuth("test-secret", time.Hour)

	token, err := a.GenerateToken("65a1b2c3d4e5f6a7b8c9d0e1", "admin")
	if err != nil {
		t.Fatalf("Failed to generate token: %v", err)
	}

	claims, err := a.VerifyToken(token)
	if err != nil {
		t.Fatalf("Failed to verify token: %v", err)
	}
	if claims.UserID != "65a1b2c3d4e5f6a7b8c9d0e1" {
		t.Errorf("Expected user id claim, got %q", claims.UserID)
	}
	if claims.Username != "admin" {
		t.Errorf("Expected username claim, got %q", claims.Username)
	}
}

func TestVerifyTokenRejects(t *testing.T) {
	a, _ := NewLocalJWTAuth("test-secret", time.Hour)
	other, _ := NewLocalJWTAuth("other-secret", time.Hour)

	foreign, _ := other.GenerateToken("user", "u")
	if _, err := a.VerifyToken(foreign); err == nil {
		t.Error("Expected token signed with another secret to be rejected")
	}

	expired := jwt.NewWithClaims(jwt.SigningMethodHS256, JWTClaims{
		UserID: "user",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
		},
	})
	signed, _ := expired.SignedString(a.SecretKey)
	if _, err := a.VerifyToken(signed); err == nil {
		t.Error("Expected expired token to be rejected")
	}

	if _, err := a.VerifyToken("not-a-token"); err == nil {
		t.Error("Expected garbage to be rejected")
	}

	unsigned := jwt.NewWithClaims(jwt.SigningMethodNone, JWTClaims{UserID: "user"})
	none, _ := unsigned.SignedString(jwt.UnsafeAllowNoneSignatureType)
	if _, err := a.VerifyToken(none); err == nil {
		t.Error("Expected alg=none token to be rejected")
	}
}

func TestHashAndVerifyPassword(t *testing.T) {
	hash, err := HashPassword("admin")
	if err != nil {
		t.Fatalf("Failed to hash: %v", err)
	}
	if !strings.HasPrefix(hash, "$2") {
		t.Errorf("Expected a bcrypt hash, got %q", hash)
	}
	if !VerifyPassword(hash, "admin") {
		t.Error("Expected password to verify")
	}
	if VerifyPassword(hash, "wrong") {
		t.Error("Expected wrong password to fail")
	}
	if VerifyPassword("garbage", "admin") {
		t.Error("Expected malformed hash to fail")
	}
}
