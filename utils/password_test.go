package utils

import "testing"

func TestHashAndCheckPassword(t *testing.T) {
	hash, err := HashPassword("correct horse battery")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	if hash == "correct horse battery" {
		t.Fatalf("hash must not equal the plaintext")
	}

	if !CheckPassword(hash, "correct horse battery") {
		t.Fatalf("correct password rejected")
	}
	if CheckPassword(hash, "wrong password") {
		t.Fatalf("wrong password accepted")
	}
}

func TestCheckPasswordRejectsMalformedHash(t *testing.T) {
	if CheckPassword("not-a-bcrypt-hash", "anything") {
		t.Fatalf("malformed hash must never validate")
	}
}
