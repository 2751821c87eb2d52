package utils

import "testing"

func TestHashPasswordDeterministic(t *testing.T) {
	a := HashPassword("s3cret")
	b := HashPassword("s3cret")
	if a != b {
		t.Fatalf("same password produced different hashes: %q vs %q", a, b)
	}
	if a == "s3cret" {
		t.Fatal("hash equals plaintext")
	}
	if len(a) != 64 { // 32 bytes hex encoded
		t.Fatalf("hash length = %d, want 64", len(a))
	}
}

func TestVerifyPassword(t *testing.T) {
	h := HashPassword("correct horse")
	if !VerifyPassword(h, "correct horse") {
		t.Error("correct password rejected")
	}
	if VerifyPassword(h, "wrong horse") {
		t.Error("wrong password accepted")
	}
	if VerifyPassword("", "correct horse") {
		t.Error("empty stored hash accepted")
	}
}
