package util

import (
	"errors"
	"testing"
	"time"
)

func TestParseID(t *testing.T) {
	cases := []struct {
		in      string
		want    uint
		wantErr bool
	}{
		{"42", 42, false},
		{"0", 0, true},
		{"-1", 0, true},
		{"abc", 0, true},
		{"", 0, true},
	}
	for _, tc := range cases {
		got, err := ParseID(tc.in)
		if tc.wantErr {
			if !errors.Is(err, ErrInvalidID) {
				t.Fatalf("ParseID(%q) err = %v, want ErrInvalidID", tc.in, err)
			}
			continue
		}
		if err != nil || got != tc.want {
			t.Fatalf("ParseID(%q) = %d, %v", tc.in, got, err)
		}
	}
}

func TestJWTRoundTrip(t *testing.T) {
	token, err := GenerateJWT(7, "student", "a@example.com", "secret", time.Hour)
	if err != nil {
		t.Fatalf("GenerateJWT: %v", err)
	}
	claims, err := ParseJWT(token, "secret")
	if err != nil {
		t.Fatalf("ParseJWT: %v", err)
	}
	if claims.UserID != 7 || claims.Email != "a@example.com" {
		t.Fatalf("unexpected claims: %+v", claims)
	}
	if _, err := ParseJWT(token, "other"); err == nil {
		t.Fatal("expected signature error with wrong secret")
	}
}
