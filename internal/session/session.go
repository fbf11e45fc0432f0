// Package session issues and verifies the signed, stateless session token
// carried in the "session" cookie.
package session

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

const (
	CookieName = "session"
	DefaultTTL = 7 * 24 * time.Hour
)

var ErrInvalidToken = errors.New("invalid session token")

// Claims is the token payload. The user id is the only identity the
// rest of the system trusts.
type Claims struct {
	UserID uint   `json:"userId"`
	Email  string `json:"email"`
	jwt.RegisteredClaims
}

type Manager struct {
	secret []byte
	ttl    time.Duration
	secure bool
	now    func() time.Time
}

// NewManager builds a manager signing with secret. Cookies carry the
// Secure attribute when secure is set, which callers do outside development.
func NewManager(secret string, ttl time.Duration, secure bool) *Manager {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Manager{
		secret: []byte(secret),
		ttl:    ttl,
		secure: secure,
		now:    time.Now,
	}
}

func (m *Manager) TTL() time.Duration {
	return m.ttl
}

// Sign creates a token for the user that expires after the manager's TTL.
func (m *Manager) Sign(userID uint, email string) (string, error) {
	now := m.now()
	claims := Claims{
		UserID: userID,
		Email:  email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   fmt.Sprint(userID),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
}

// Parse verifies signature, algorithm and expiry.
func (m *Manager) Parse(token string) (*Claims, error) {
	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(token, claims,
		func(*jwt.Token) (interface{}, error) { return m.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(m.now),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if !parsed.Valid || claims.UserID == 0 {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

// Issue signs a token and sets it as the session cookie.
func (m *Manager) Issue(c *gin.Context, userID uint, email string) error {
	token, err := m.Sign(userID, email)
	if err != nil {
		return err
	}
	http.SetCookie(c.Writer, m.cookie(token, int(m.ttl.Seconds())))
	return nil
}

// Resolve reads the session from the request. Any failure, a missing
// cookie included, means there is no session.
func (m *Manager) Resolve(r *http.Request) (*Claims, bool) {
	cookie, err := r.Cookie(CookieName)
	if err != nil || cookie.Value == "" {
		return nil, false
	}
	claims, err := m.Parse(cookie.Value)
	if err != nil {
		return nil, false
	}
	return claims, true
}

// Revoke clears the session cookie. Tokens already handed out stay
// valid until they expire.
func (m *Manager) Revoke(c *gin.Context) {
	http.SetCookie(c.Writer, m.cookie("", -1))
}

func (m *Manager) cookie(value string, maxAge int) *http.Cookie {
	return &http.Cookie{
		Name:     CookieName,
		Value:    value,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   m.secure,
		SameSite: http.SameSiteLaxMode,
	}
}
