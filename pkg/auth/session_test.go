package auth

import (
	"encoding/base64"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestSessionToken_RoundTrip(t *testing.T) {
	token := CreateSessionToken("analyst", testSecret)

	got, err := VerifySessionToken(token, testSecret)
	if err != nil {
		t.Fatalf("VerifySessionToken: %v", err)
	}
	if got != "analyst" {
		t.Errorf("expected subject analyst, got %q", got)
	}
}

func TestVerifySessionToken_Rejects(t *testing.T) {
	valid := CreateSessionToken("analyst", testSecret)
	_, sig, _ := strings.Cut(valid, ".")

	last := byte('0')
	if sig[len(sig)-1] == '0' {
		last = '1'
	}
	tampered := valid[:len(valid)-1] + string(last)

	tests := []struct {
		name  string
		token string
	}{
		{"no separator", "abcdef"},
		{"bad base64", "!!!.00"},
		{"empty subject", ".00"},
		{"tampered signature", tampered},
		{"foreign subject", base64.URLEncoding.EncodeToString([]byte("other")) + "." + sig},
	}
	for _, tt := range tests {
		if _, err := VerifySessionToken(tt.token, testSecret); !errors.Is(err, ErrInvalidToken) {
			t.Errorf("%s: expected ErrInvalidToken, got %v", tt.name, err)
		}
	}
}

func TestTokenFromRequest(t *testing.T) {
	req := httptest.NewRequest("GET", "/", nil)
	if _, err := TokenFromRequest(req); !errors.Is(err, ErrNoToken) {
		t.Errorf("expected ErrNoToken, got %v", err)
	}

	req = httptest.NewRequest("GET", "/", nil)
	req.Header.Set("Authorization", "Basic dXNlcjpwYXNz")
	if _, err := TokenFromRequest(req); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("expected ErrInvalidToken for non-bearer scheme, got %v", err)
	}

	req = httptest.NewRequest("GET", "/", nil)
	req.Header.Set("Authorization", "bearer abc.def")
	req.AddCookie(&http.Cookie{Name: SessionCookieName(), Value: "cookie.value"})
	got, err := TokenFromRequest(req)
	if err != nil || got != "abc.def" {
		t.Errorf("expected header token to win, got %q (%v)", got, err)
	}

	req = httptest.NewRequest("GET", "/", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookieName(), Value: "cookie.value"})
	got, err = TokenFromRequest(req)
	if err != nil || got != "cookie.value" {
		t.Errorf("expected cookie token, got %q (%v)", got, err)
	}
}

func TestSessionSecretBytes_PadsShortSecret(t *testing.T) {
	if n := len(SessionSecretBytes("short")); n != 32 {
		t.Errorf("expected 32 bytes, got %d", n)
	}
	long := "0123456789abcdef0123456789abcdef-extra"
	if got := SessionSecretBytes(long); string(got) != long {
		t.Error("long secret should be used as-is")
	}
}
