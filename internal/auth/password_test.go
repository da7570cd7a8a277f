//go:build unit

package auth

import (
	"strings"
	"testing"
)

func TestHashAndCheckPassword(t *testing.T) {
	hash, err := HashPassword("password123")
	if err != nil {
		t.Fatalf("HashPassword failed: %v", err)
	}
	if hash == "password123" || strings.Contains(hash, "password123") {
		t.Error("hash must not contain the plaintext password")
	}

	if !CheckPassword(hash, "password123") {
		t.Error("correct password should verify")
	}
	if CheckPassword(hash, "wrong-password") {
		t.Error("wrong password should not verify")
	}
	if CheckPassword("not-a-real-hash", "password123") {
		t.Error("garbage hash should not verify")
	}
}
