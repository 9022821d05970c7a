// middleware/jwt_middleware.go
package middleware

import (
	"errors"
	"log"
	"time"

	"github.com/golang-jwt/jwt"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

// JwtCustomClaims for agency dashboard tokens
type JwtCustomClaims struct {
	AdminID string `json:"adminId"`
	Email   string `json:"email"`
	jwt.StandardClaims
}

// Valid implements the Claims interface for Echo's JWT middleware
func (c JwtCustomClaims) Valid() error {
	if c.ExpiresAt > 0 && time.Now().Unix() > c.ExpiresAt {
		return errors.New("token is expired")
	}
	if c.NotBefore > 0 && time.Now().Unix() < c.NotBefore {
		return errors.New("token used before valid")
	}
	return nil
}

// AdminJWT returns the JWT middleware guarding dashboard routes
func AdminJWT(secret string) echo.MiddlewareFunc {
	return middleware.JWTWithConfig(middleware.JWTConfig{
		SigningKey: []byte(secret),
		Claims:     &JwtCustomClaims{},
		SuccessHandler: func(c echo.Context) {
			user := c.Get("user").(*jwt.Token)
			claims := user.Claims.(*JwtCustomClaims)

			c.Set("adminId", claims.AdminID)
			c.Set("adminEmail", claims.Email)
		},
		ErrorHandler: func(err error) error {
			log.Printf("JWT middleware error: %v", err)
			return echo.NewHTTPError(echo.ErrUnauthorized.Code, "Please provide valid credentials")
		},
	})
}

// GenerateAdminJWT issues a dashboard token valid for 24 hours
func GenerateAdminJWT(secret, adminID, email string) (string, error) {
	claims := &JwtCustomClaims{
		AdminID: adminID,
		Email:   email,
		StandardClaims: jwt.StandardClaims{
			IssuedAt:  time.Now().Unix(),
			ExpiresAt: time.Now().Add(24 * time.Hour).Unix(),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// ExtractAdminID returns the authenticated admin id set by AdminJWT
func ExtractAdminID(c echo.Context) (string, error) {
	if adminID, ok := c.Get("adminId").(string); ok && adminID != "" {
		return adminID, nil
	}

	user, ok := c.Get("user").(*jwt.Token)
	if !ok {
		return "", errors.New("invalid token")
	}
	claims, ok := user.Claims.(*JwtCustomClaims)
	if !ok {
		return "", errors.New("invalid claims type")
	}
	return claims.AdminID, nil
}
