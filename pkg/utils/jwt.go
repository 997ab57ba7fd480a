package utils

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var secretKey []byte

// SetSecret configures the HMAC key used to sign and verify admin tokens.
func SetSecret(key string) {
	secretKey = []byte(key)
}

type Claims struct {
	UserID   string
	Username string
	Email    string
	Role     string
}

func GenerateJWT(c Claims, expiry time.Duration) (string, error) {
	if len(secretKey) == 0 {
		return "", fmt.Errorf("jwt secret not set")
	}

	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":      c.UserID,
		"username": c.Username,
		"email":    c.Email,
		"role":     c.Role,
		"iat":      now.Unix(),
		"exp":      now.Add(expiry).Unix(),
	})

	return token.SignedString(secretKey)
}

func ValidateJWT(tokenString string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return secretKey, nil
	})
	if err != nil {
		return nil, err
	}

	if claims, ok := token.Claims.(jwt.MapClaims); ok && token.Valid {
		return claims, nil
	}
	return nil, fmt.Errorf("invalid token")
}

func GenerateUUID() string {
	return uuid.NewString()
}

// ExtractClaims reads the token from the Authorization header, falling back to the accessToken cookie.
func ExtractClaims(r *http.Request) (*Claims, error) {
	tokenString := ""
	if auth := r.Header.Get("Authorization"); strings.HasPrefix(auth, "Bearer ") {
		tokenString = strings.TrimSpace(auth[len("Bearer "):])
	} else if cookie, err := r.Cookie("accessToken"); err == nil {
		tokenString = cookie.Value
	}

	if tokenString == "" {
		return nil, errors.New("no token found")
	}

	mapClaims, err := ValidateJWT(tokenString)
	if err != nil {
		return nil, err
	}

	userID, _ := mapClaims["sub"].(string)
	username, _ := mapClaims["username"].(string)
	email, _ := mapClaims["email"].(string)
	role, _ := mapClaims["role"].(string)

	return &Claims{
		UserID:   userID,
		Username: username,
		Email:    email,
		Role:     role,
	}, nil
}
