package auth

import (
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// --- Context Keys ---

// contextKey is a custom type used for context keys to avoid collisions.
type contextKey string

const (
	ClaimsKey contextKey = "claims"
)

const issuer = "agrotech-backend"

// ErrMissingClaims is returned for a correctly signed token without the user fields.
var ErrMissingClaims = errors.New("token is missing required claims")

// --- JWT Claims ---

// CustomClaims includes standard JWT claims plus the user identity.
type CustomClaims struct {
	UserID   uuid.UUID `json:"userId"`
	Username string    `json:"username"`
	Role     string    `json:"role"`
	jwt.RegisteredClaims
}

// NewAccessToken generates a new signed HS256 access token.
func NewAccessToken(userID uuid.UUID, username, role, jwtSecret string, expiration time.Duration) (string, error) {
	now := time.Now()
	claims := CustomClaims{
		UserID:   userID,
		Username: username,
		Role:     role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(expiration)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			Issuer:    issuer,
			Subject:   userID.String(),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	signedToken, err := token.SignedString([]byte(jwtSecret))
	if err != nil {
		log.Printf("Error signing JWT token for UserID %s: %v", userID, err)
		return "", err
	}

	return signedToken, nil
}

// ParseAccessToken validates tokenString and returns its claims.
// Errors wrap the jwt package sentinels (jwt.ErrTokenExpired, jwt.ErrTokenMalformed, ...).
func ParseAccessToken(tokenString, jwtSecret string) (*CustomClaims, error) {
	claims := &CustomClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(jwtSecret), nil
	}, jwt.WithIssuer(issuer))
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, jwt.ErrTokenSignatureInvalid
	}
	if claims.UserID == uuid.Nil || claims.Username == "" {
		return nil, ErrMissingClaims
	}
	return claims, nil
}

// VerifyToken is ParseAccessToken for callers that only need a yes/no answer.
func VerifyToken(tokenString, jwtSecret string) (*CustomClaims, bool) {
	claims, err := ParseAccessToken(tokenString, jwtSecret)
	if err != nil {
		return nil, false
	}
	return claims, true
}
