package middleware

import (
	"crypto/subtle"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/Dafin1723/fikri-production/internal/config"
	"github.com/Dafin1723/fikri-production/internal/models"
)

const (
	SessionCookie = "admin_session"
	AdminUserKey  = "admin_user"
)

var ErrInvalidCredentials = errors.New("invalid username or password")

// AuthResult is the outcome of checking a request's admin session.
type AuthResult int

const (
	AuthOK AuthResult = iota
	AuthMissing
	AuthInvalid
	AuthExpired
)

func (r AuthResult) String() string {
	switch r {
	case AuthOK:
		return "ok"
	case AuthMissing:
		return "missing"
	case AuthInvalid:
		return "invalid"
	case AuthExpired:
		return "expired"
	}
	return fmt.Sprintf("AuthResult(%d)", int(r))
}

// AdminGate issues and verifies the single administrator's session. The
// session is an HS256 token carried in an HttpOnly cookie.
type AdminGate struct {
	username     string
	passwordHash []byte
	secret       []byte
	ttl          time.Duration
	secureCookie bool
	now          func() time.Time
}

func NewAdminGate(cfg *config.Config) (*AdminGate, error) {
	hash := []byte(cfg.AdminPasswordHash)
	if len(hash) == 0 {
		var err error
		hash, err = bcrypt.GenerateFromPassword([]byte(cfg.AdminPassword), bcrypt.DefaultCost)
		if err != nil {
			return nil, fmt.Errorf("failed to hash admin password: %w", err)
		}
	} else if _, err := bcrypt.Cost(hash); err != nil {
		return nil, fmt.Errorf("invalid ADMIN_PASSWORD_HASH: %w", err)
	}

	return &AdminGate{
		username:     cfg.AdminUsername,
		passwordHash: hash,
		secret:       []byte(cfg.SessionSecret),
		ttl:          cfg.SessionTTL,
		secureCookie: cfg.Environment == "production",
		now:          time.Now,
	}, nil
}

// Login checks the credentials and returns a signed session token.
func (g *AdminGate) Login(username, password string) (string, error) {
	userOK := subtle.ConstantTimeCompare([]byte(username), []byte(g.username)) == 1
	passErr := bcrypt.CompareHashAndPassword(g.passwordHash, []byte(password))
	if !userOK || passErr != nil {
		return "", ErrInvalidCredentials
	}

	now := g.now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":   g.username,
		"admin": true,
		"iat":   now.Unix(),
		"exp":   now.Add(g.ttl).Unix(),
	})
	signed, err := token.SignedString(g.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign session: %w", err)
	}
	return signed, nil
}

func (g *AdminGate) Check(c *gin.Context) AuthResult {
	tokenString, err := c.Cookie(SessionCookie)
	if err != nil || tokenString == "" {
		return AuthMissing
	}
	return g.Verify(tokenString)
}

// Verify validates a session token on its own.
func (g *AdminGate) Verify(tokenString string) AuthResult {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		return g.secret, nil
	},
		jwt.WithValidMethods([]string{"HS256"}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(g.now),
	)
	if errors.Is(err, jwt.ErrTokenExpired) {
		return AuthExpired
	}
	if err != nil || !token.Valid {
		return AuthInvalid
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return AuthInvalid
	}
	if admin, _ := claims["admin"].(bool); !admin {
		return AuthInvalid
	}
	if sub, _ := claims["sub"].(string); sub != g.username {
		return AuthInvalid
	}
	return AuthOK
}

func (g *AdminGate) SetSession(c *gin.Context, token string) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(SessionCookie, token, int(g.ttl.Seconds()), "/", "", g.secureCookie, true)
}

func (g *AdminGate) ClearSession(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(SessionCookie, "", -1, "/", "", g.secureCookie, true)
}

var authMessages = map[AuthResult]string{
	AuthMissing: "admin session required",
	AuthInvalid: "admin session is invalid",
	AuthExpired: "admin session has expired",
}

// RequireAdmin rejects any request without a valid admin session.
func RequireAdmin(gate *AdminGate) gin.HandlerFunc {
	return func(c *gin.Context) {
		result := gate.Check(c)
		if result != AuthOK {
			c.AbortWithStatusJSON(http.StatusUnauthorized, models.ErrorResponse{
				Error:   "unauthorized",
				Message: authMessages[result],
			})
			return
		}

		c.Set(AdminUserKey, gate.username)
		c.Next()
	}
}
