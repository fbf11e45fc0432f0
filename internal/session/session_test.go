package session

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestIssueSetsCookie(t *testing.T) {
	m := NewManager("test-secret", 0, true)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/api/auth/login", nil)

	if err := m.Issue(c, 7, "alice@example.com"); err != nil {
		t.Fatalf("Issue: %v", err)
	}

	cookies := w.Result().Cookies()
	if len(cookies) != 1 {
		t.Fatalf("expected 1 cookie, got %d", len(cookies))
	}
	ck := cookies[0]
	if ck.Name != CookieName || ck.Path != "/" || !ck.HttpOnly || !ck.Secure || ck.SameSite != http.SameSiteLaxMode {
		t.Errorf("unexpected cookie attributes: %+v", ck)
	}
	if ck.MaxAge != int(DefaultTTL.Seconds()) {
		t.Errorf("MaxAge = %d, want %d", ck.MaxAge, int(DefaultTTL.Seconds()))
	}

	req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	req.AddCookie(ck)
	claims, ok := m.Resolve(req)
	if !ok {
		t.Fatal("expected issued cookie to resolve")
	}
	if claims.UserID != 7 || claims.Email != "alice@example.com" {
		t.Errorf("unexpected claims: %+v", claims)
	}
}

func TestResolveWithoutCookie(t *testing.T) {
	m := NewManager("test-secret", time.Hour, false)
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if _, ok := m.Resolve(req); ok {
		t.Error("expected no session without a cookie")
	}
}

func TestParseRejectsBadTokens(t *testing.T) {
	m := NewManager("test-secret", time.Hour, false)
	token, err := m.Sign(1, "a@example.com")
	if err != nil {
		t.Fatalf("Sign: %v", err)
	}

	tampered := token + "a"
	if _, err := m.Parse(tampered); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("tampered token: got %v", err)
	}

	other := NewManager("other-secret", time.Hour, false)
	if _, err := other.Parse(token); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("wrong secret: got %v", err)
	}

	if _, err := m.Parse("garbage"); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("garbage token: got %v", err)
	}
}

func TestParseRejectsExpiredToken(t *testing.T) {
	m := NewManager("test-secret", time.Hour, false)
	issued := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	m.now = func() time.Time { return issued }

	token, err := m.Sign(1, "a@example.com")
	if err != nil {
		t.Fatalf("Sign: %v", err)
	}
	if _, err := m.Parse(token); err != nil {
		t.Fatalf("fresh token rejected: %v", err)
	}

	m.now = func() time.Time { return issued.Add(2 * time.Hour) }
	if _, err := m.Parse(token); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("expired token: got %v", err)
	}
}

func TestRevokeClearsCookie(t *testing.T) {
	m := NewManager("test-secret", time.Hour, false)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/api/auth/logout", nil)

	m.Revoke(c)

	cookies := w.Result().Cookies()
	if len(cookies) != 1 {
		t.Fatalf("expected 1 cookie, got %d", len(cookies))
	}
	if cookies[0].Name != CookieName || cookies[0].Value != "" || cookies[0].MaxAge >= 0 {
		t.Errorf("expected an expiring empty cookie, got %+v", cookies[0])
	}
}
