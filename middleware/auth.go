package middleware

import (
	"TravelMate/utils"
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"firebase.google.com/go/auth"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

// TokenVerifier turns a bearer token into the caller's user id
type TokenVerifier interface {
	Verify(ctx context.Context, token string) (string, error)
}

type Claims struct {
	UserID string `json:"userId"`
	jwt.RegisteredClaims
}

// JWTVerifier accepts HS256 tokens signed with a shared secret
type JWTVerifier struct {
	Secret []byte
}

func (v JWTVerifier) Verify(ctx context.Context, tokenString string) (string, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		return v.Secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return "", err
	}
	if !token.Valid {
		return "", errors.New("invalid token")
	}

	userID := claims.UserID
	if userID == "" {
		userID = claims.Subject
	}
	if userID == "" {
		return "", errors.New("token has no user id")
	}
	return userID, nil
}

// FirebaseVerifier accepts Firebase Auth ID tokens
type FirebaseVerifier struct {
	Client *auth.Client
}

func (v FirebaseVerifier) Verify(ctx context.Context, tokenString string) (string, error) {
	token, err := v.Client.VerifyIDToken(ctx, tokenString)
	if err != nil {
		return "", fmt.Errorf("verify id token: %w", err)
	}
	return token.UID, nil
}

// AuthMiddleware rejects requests without a valid bearer token and stores
// the caller under "userId"
func AuthMiddleware(verifier TokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		tokenString, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || tokenString == "" {
			utils.ErrorResponse(c, http.StatusUnauthorized, "Missing or malformed token")
			return
		}

		userID, err := verifier.Verify(c.Request.Context(), tokenString)
		if err != nil {
			utils.ErrorResponse(c, http.StatusUnauthorized, "Invalid token")
			return
		}

		c.Set("userId", userID)
		c.Next()
	}
}
