package session

import (
	"errors"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// CookieName is the browser cookie carrying the signed session token.
const CookieName = "linkup_session"

// Codec signs and verifies the session cookie. The cookie payload is an
// HS256 JWT whose only claim of interest is the session ID; signing it
// stops clients from forging or tampering with session IDs while all
// mutable state stays server-side.
type Codec struct {
	secret []byte
	maxAge time.Duration
}

func NewCodec(secret string, maxAge time.Duration) *Codec {
	return &Codec{secret: []byte(secret), maxAge: maxAge}
}

// Encode wraps a session ID in a signed token.
func (c *Codec) Encode(sessionID string) (string, error) {
	claims := jwt.MapClaims{
		"sid": sessionID,
		"exp": time.Now().Add(c.maxAge).Unix(),
		"iat": time.Now().Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(c.secret)
}

// Decode verifies a token and extracts the session ID.
func (c *Codec) Decode(tokenString string) (string, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return "", jwt.ErrSignatureInvalid
		}
		return c.secret, nil
	})
	if err != nil {
		return "", err
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return "", errors.New("invalid session token")
	}

	sid, ok := claims["sid"].(string)
	if !ok || sid == "" {
		return "", errors.New("invalid session token claims")
	}
	return sid, nil
}

// WriteCookie sets the session cookie for the given session ID.
func (c *Codec) WriteCookie(w http.ResponseWriter, sessionID string) error {
	token, err := c.Encode(sessionID)
	if err != nil {
		return err
	}
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(c.maxAge.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}

// ReadCookie extracts and verifies the session ID from the request
// cookie. Returns "" when the cookie is absent or invalid.
func (c *Codec) ReadCookie(r *http.Request) string {
	cookie, err := r.Cookie(CookieName)
	if err != nil || cookie.Value == "" {
		return ""
	}
	sid, err := c.Decode(cookie.Value)
	if err != nil {
		return ""
	}
	return sid
}
