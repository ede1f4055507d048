package utils

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// SessionClaims identify the holder of a session token. Role may be empty
// for demo tokens; callers resolve it from the user store.
type SessionClaims struct {
	UserID string
	Role   string
}

// TokenIssuer creates and validates session credentials. The demo issuer
// is the default; the JWT issuer is the production-shaped replacement
// behind the same contract.
type TokenIssuer interface {
	Issue(userID, role string) (string, error)
	Validate(tokenString string) (*SessionClaims, error)
}

const demoTokenPrefix = "demo_token_"

var ErrInvalidToken = errors.New("invalid token")

// DemoTokenIssuer issues non-cryptographic placeholder tokens of the form
// demo_token_<id>. It stands in for real credential verification.
type DemoTokenIssuer struct{}

// NewDemoTokenIssuer creates a DemoTokenIssuer
func NewDemoTokenIssuer() *DemoTokenIssuer {
	return &DemoTokenIssuer{}
}

func (d *DemoTokenIssuer) Issue(userID, _ string) (string, error) {
	if userID == "" {
		return "", errors.New("user ID required")
	}
	return demoTokenPrefix + userID, nil
}

func (d *DemoTokenIssuer) Validate(tokenString string) (*SessionClaims, error) {
	id, ok := strings.CutPrefix(tokenString, demoTokenPrefix)
	if !ok || id == "" {
		return nil, ErrInvalidToken
	}
	return &SessionClaims{UserID: id}, nil
}

// JWTClaims custom claims for JWT sessions
type JWTClaims struct {
	UserID string `json:"user_id"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

// JWTUtil provides JWT generation and validation
type JWTUtil struct {
	secretKey       string
	expirationHours int64
}

// NewJWTUtil creates a new JWTUtil
func NewJWTUtil(secretKey string, expirationHours int64) *JWTUtil {
	return &JWTUtil{secretKey: secretKey, expirationHours: expirationHours}
}

// Issue generates a signed HS256 token
func (ju *JWTUtil) Issue(userID, role string) (string, error) {
	claims := &JWTClaims{
		UserID: userID,
		Role:   role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour * time.Duration(ju.expirationHours))),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			Subject:   userID,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(ju.secretKey))
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return tokenString, nil
}

// Validate parses and verifies a token
func (ju *JWTUtil) Validate(tokenString string) (*SessionClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &JWTClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(ju.secretKey), nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to parse token: %w", err)
	}

	if claims, ok := token.Claims.(*JWTClaims); ok && token.Valid {
		return &SessionClaims{UserID: claims.UserID, Role: claims.Role}, nil
	}
	return nil, ErrInvalidToken
}
