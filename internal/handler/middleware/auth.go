package middleware

import (
	"log/slog"
	"net/http"
	"strings"

	"leisure-booking-api/internal/pkg/config"
	"leisure-booking-api/internal/pkg/errs"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

// AuthMiddleware guards the back-office surface. Tokens are issued by the
// staff identity service and carry a role claim; this service only validates
// them.
type AuthMiddleware struct {
	secret []byte
}

const ctxStaffSubjectKey = "staff_subject"

var (
	errMissingRole       = errs.New("token has no role claim")
	errInsufficientRole  = errs.New("role is not admin")
	errUnexpectedSigning = errs.New("unexpected token signing method")
)

func NewAuthMiddleware(cfg config.JWTConfig) *AuthMiddleware {
	return &AuthMiddleware{secret: []byte(cfg.Secret)}
}

func (m *AuthMiddleware) RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		var token string
		authHeader := c.GetHeader("Authorization")
		if authHeader != "" && strings.HasPrefix(authHeader, "Bearer ") {
			token = strings.TrimSpace(authHeader[len("Bearer "):])
		}

		if token == "" {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error": "Access token required",
			})
			c.Abort()
			return
		}

		subject, err := m.validateAdminToken(token)
		if err != nil {
			slog.Warn("token validation failed in auth middleware", "error", err.Error())
			c.JSON(http.StatusUnauthorized, gin.H{
				"error": "Invalid or expired token",
			})
			c.Abort()
			return
		}

		c.Set(ctxStaffSubjectKey, subject)
		c.Next()
	}
}

func (m *AuthMiddleware) validateAdminToken(raw string) (string, error) {
	claims := jwt.MapClaims{}
	token, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errUnexpectedSigning
		}
		return m.secret, nil
	})
	if err != nil {
		return "", err
	}
	if !token.Valid {
		return "", errs.New("invalid token")
	}

	role, ok := claims["role"].(string)
	if !ok {
		return "", errMissingRole
	}
	if role != "admin" {
		return "", errInsufficientRole
	}

	subject, _ := claims["sub"].(string)
	return subject, nil
}

func GetStaffSubject(c *gin.Context) (string, bool) {
	if v, exists := c.Get(ctxStaffSubjectKey); exists {
		if s, ok := v.(string); ok {
			return s, true
		}
	}
	return "", false
}
