package session

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestCodec_EncodeDecodeRoundtrip(t *testing.T) {
	codec := NewCodec("test-secret", time.Hour)

	token, err := codec.Encode("session-123")
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	if token == "session-123" {
		t.Error("token must not be the raw session id")
	}

	sid, err := codec.Decode(token)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if sid != "session-123" {
		t.Errorf("sid = %q, want session-123", sid)
	}
}

func TestCodec_RejectsWrongSecret(t *testing.T) {
	token, err := NewCodec("secret-a", time.Hour).Encode("session-123")
	if err != nil {
		t.Fatalf("encode: %v", err)
	}

	if _, err := NewCodec("secret-b", time.Hour).Decode(token); err == nil {
		t.Error("a token signed with a different secret must not verify")
	}
}

func TestCodec_RejectsGarbage(t *testing.T) {
	codec := NewCodec("test-secret", time.Hour)

	for _, token := range []string{"", "not-a-jwt", "a.b.c"} {
		if _, err := codec.Decode(token); err == nil {
			t.Errorf("Decode(%q) should fail", token)
		}
	}
}

func TestCodec_RejectsExpiredToken(t *testing.T) {
	codec := NewCodec("test-secret", -time.Minute)

	token, err := codec.Encode("session-123")
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	if _, err := codec.Decode(token); err == nil {
		t.Error("an expired token must not verify")
	}
}

func TestCodec_CookieRoundtrip(t *testing.T) {
	codec := NewCodec("test-secret", time.Hour)

	rec := httptest.NewRecorder()
	if err := codec.WriteCookie(rec, "session-123"); err != nil {
		t.Fatalf("write cookie: %v", err)
	}

	res := rec.Result()
	cookies := res.Cookies()
	if len(cookies) != 1 {
		t.Fatalf("got %d cookies, want 1", len(cookies))
	}
	if !cookies[0].HttpOnly {
		t.Error("session cookie must be HttpOnly")
	}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(cookies[0])

	if sid := codec.ReadCookie(req); sid != "session-123" {
		t.Errorf("sid = %q, want session-123", sid)
	}
}

func TestCodec_ReadCookie_MissingOrInvalid(t *testing.T) {
	codec := NewCodec("test-secret", time.Hour)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if sid := codec.ReadCookie(req); sid != "" {
		t.Errorf("sid = %q, want empty for a request without a cookie", sid)
	}

	req.AddCookie(&http.Cookie{Name: CookieName, Value: "tampered"})
	if sid := codec.ReadCookie(req); sid != "" {
		t.Errorf("sid = %q, want empty for a tampered cookie", sid)
	}
}
