package delivery_http

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	model "pinstack-post-page/internal/domain/models"
	ports "pinstack-post-page/internal/domain/ports/output"
)

const tokenCookieName = "token"

type identityClaims struct {
	UserID int64  `json:"user_id"`
	Email  string `json:"email"`
	jwt.RegisteredClaims
}

// IdentityMiddleware puts the signed-in user into the request context.
// Requests without a valid token continue as anonymous visitors.
func IdentityMiddleware(secret string, log ports.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		identity := model.Identity{}

		if token := tokenFromRequest(c); token != "" && secret != "" {
			parsed, err := parseIdentity(token, []byte(secret))
			if err != nil {
				log.Debug("Ignoring invalid identity token", slog.String("error", err.Error()))
			} else {
				identity = parsed
			}
		}

		c.Request = c.Request.WithContext(model.WithIdentity(c.Request.Context(), identity))
		c.Next()
	}
}

func tokenFromRequest(c *gin.Context) string {
	if header := c.GetHeader("Authorization"); strings.HasPrefix(header, "Bearer ") {
		return strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
	}
	if cookie, err := c.Cookie(tokenCookieName); err == nil {
		return cookie
	}
	return ""
}

func parseIdentity(tokenString string, secret []byte) (model.Identity, error) {
	claims := &identityClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", token.Header["alg"])
		}
		return secret, nil
	})
	if err != nil {
		return model.Identity{}, err
	}
	if !token.Valid {
		return model.Identity{}, errors.New("invalid token")
	}

	return model.Identity{
		UserID: claims.UserID,
		Email:  claims.Email,
		Token:  tokenString,
	}, nil
}
