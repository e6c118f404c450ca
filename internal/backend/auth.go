package backend

import (
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/donut-tui/donut-tui/internal/model"
)

// Development credentials. There is no real auth service behind the
// wizard; login is checked against these and nothing else.
const (
	devUsername = "dev"
	devPassword = "dev123"
)

// Session is a logged-in user session.
type Session struct {
	Username  string
	Token     string
	ExpiresAt time.Time
}

// Login checks the credentials against the hardcoded development
// user and mints a signed session token.
func (c *Client) Login(username, password string) (*Session, error) {
	c.simulate()

	if username != devUsername || password != devPassword {
		return nil, fmt.Errorf("backend: invalid username or password")
	}

	expires := c.now().Add(24 * time.Hour)
	claims := jwt.MapClaims{
		"sub": username,
		"iat": c.now().Unix(),
		"exp": expires.Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(c.signingKey)
	if err != nil {
		return nil, fmt.Errorf("backend: sign session token: %w", err)
	}

	return &Session{Username: username, Token: token, ExpiresAt: expires}, nil
}

// ValidateToken parses and verifies a session token.
func (c *Client) ValidateToken(token string) (string, error) {
	parsed, err := jwt.Parse(token, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return c.signingKey, nil
	})
	if err != nil {
		return "", fmt.Errorf("backend: invalid session token: %w", err)
	}

	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok || !parsed.Valid {
		return "", fmt.Errorf("backend: invalid session token")
	}
	sub, _ := claims["sub"].(string)
	return sub, nil
}

// CreateAPIKey mints an inference API key for the deployment step.
// The full key is only returned once, on creation.
func (c *Client) CreateAPIKey(name string) (*model.APIKey, error) {
	c.simulate()

	if name == "" {
		name = "Default API Key"
	}

	raw := "dk_" + strings.ReplaceAll(uuid.NewString()+uuid.NewString(), "-", "")

	c.mu.Lock()
	defer c.mu.Unlock()

	key := model.APIKey{
		ID:        uuid.NewString(),
		Name:      name,
		Key:       raw,
		KeyPrefix: raw[:8],
		IsActive:  true,
		RateLimit: 1000,
		CreatedAt: c.now(),
	}
	c.keys = append(c.keys, key)
	c.recordLocked("Created API key %q (%s...)", key.Name, key.KeyPrefix)
	return &key, nil
}

// ListAPIKeys returns the created keys with the full key redacted.
func (c *Client) ListAPIKeys() ([]model.APIKey, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]model.APIKey, len(c.keys))
	for i, k := range c.keys {
		k.Key = ""
		out[i] = k
	}
	return out, nil
}
