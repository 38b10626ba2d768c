package service

import (
	"os"
	"testing"
)

func TestJWTRoundTrip(t *testing.T) {
	os.Setenv("JWT_SECRET", "test-secret")
	InitJWT()

	token, err := GenerateJWT(1234)
	if err != nil {
		t.Fatalf("GenerateJWT: %v", err)
	}

	userID, err := ParseJWT(token)
	if err != nil {
		t.Fatalf("ParseJWT: %v", err)
	}
	if userID != 1234 {
		t.Fatalf("user_id = %d; want 1234", userID)
	}
}

func TestParseJWTRejectsGarbage(t *testing.T) {
	os.Setenv("JWT_SECRET", "test-secret")
	InitJWT()

	if _, err := ParseJWT("not.a.token"); err == nil {
		t.Fatalf("expected error for garbage token")
	}
}
