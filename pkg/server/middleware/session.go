package middleware

import (
	"errors"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/modelgate/modelgate/pkg/identity"
	"github.com/modelgate/modelgate/pkg/server/store"
)

// SessionCookieName is the cookie that carries the signed session token.
const SessionCookieName = "modelgate_session"

// LoginPath is where unauthenticated requests get redirected.
const LoginPath = "/login"

// SessionAuthenticator is middleware that validates session cookies
type SessionAuthenticator struct {
	Users  store.UsersStore
	Key    []byte
	TTL    time.Duration
	Secure bool
}

// NewSessionAuthenticator creates a new session authenticator middleware
func NewSessionAuthenticator(users store.UsersStore, key []byte, ttl time.Duration, secure bool) *SessionAuthenticator {
	return &SessionAuthenticator{Users: users, Key: key, TTL: ttl, Secure: secure}
}

// IssueCookie builds a session cookie holding a signed token for the user.
func (s *SessionAuthenticator) IssueCookie(user *store.User) (*http.Cookie, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": user.Login,
		"uid": user.ID,
		"iat": now.Unix(),
		"exp": now.Add(s.TTL).Unix(),
	})

	signed, err := token.SignedString(s.Key)
	if err != nil {
		return nil, err
	}

	return &http.Cookie{
		Name:     SessionCookieName,
		Value:    signed,
		Path:     "/",
		HttpOnly: true,
		Secure:   s.Secure,
		SameSite: http.SameSiteLaxMode,
		Expires:  now.Add(s.TTL),
	}, nil
}

// ClearCookie returns a cookie that expires the session.
func ClearCookie() *http.Cookie {
	return &http.Cookie{
		Name:     SessionCookieName,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		MaxAge:   -1,
	}
}

// Verify parses and validates a raw session token, resolving the user it
// names. A token for a user that no longer exists is invalid.
func (s *SessionAuthenticator) Verify(tokenStr string) (*identity.Identity, error) {
	token, err := jwt.Parse(
		tokenStr,
		func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, errors.New("unexpected signing method")
			}
			return s.Key, nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, errors.New("unexpected claims type")
	}

	userID, _ := claims["uid"].(string)
	if userID == "" {
		return nil, errors.New("token missing uid claim")
	}

	user, err := s.Users.FetchUser(userID)
	if err != nil {
		return nil, err
	}

	id := &identity.Identity{
		UserID: user.ID,
		Login:  user.Login,
	}
	if iat, err := claims.GetIssuedAt(); err == nil && iat != nil {
		id.IssuedAt = iat.Time
	}
	if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
		id.ExpiresAt = exp.Time
	}

	return id, nil
}

// Middleware returns an HTTP middleware that validates session cookies.
// Requests without a valid session are redirected to the login page.
func (s *SessionAuthenticator) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie(SessionCookieName)
		if err != nil || cookie.Value == "" {
			http.Redirect(w, r, LoginPath, http.StatusFound)
			return
		}

		id, err := s.Verify(cookie.Value)
		if err != nil {
			http.SetCookie(w, ClearCookie())
			http.Redirect(w, r, LoginPath, http.StatusFound)
			return
		}

		r = r.WithContext(identity.Set(r.Context(), id))
		next.ServeHTTP(w, r)
	})
}
