package token

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Token kinds carried in the "typ" claim. Access and refresh tokens are
// never interchangeable: verification checks the kind explicitly.
const (
	KindAccess  = "access"
	KindRefresh = "refresh"
)

var (
	ErrInvalidToken = errors.New("token is invalid or expired")
	ErrWrongKind    = errors.New("token kind mismatch")
)

// Claims is the decoded identity carried by a verified token.
type Claims struct {
	UserID int64
	Role   string
	Kind   string
}

// Manager mints and verifies HS256 JWTs for the auth gate.
type Manager struct {
	secret     []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
}

func NewManager(secret string, accessTTL, refreshTTL time.Duration) *Manager {
	return &Manager{
		secret:     []byte(secret),
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
	}
}

func (m *Manager) AccessTTL() time.Duration  { return m.accessTTL }
func (m *Manager) RefreshTTL() time.Duration { return m.refreshTTL }

// NewAccessToken signs a short-lived access token for the user.
func (m *Manager) NewAccessToken(userID int64, role string) (string, error) {
	return m.mint(userID, role, KindAccess, m.accessTTL)
}

// NewRefreshToken signs a long-lived refresh token. The caller is expected
// to persist its hash so rotation can invalidate it on use.
func (m *Manager) NewRefreshToken(userID int64, role string) (string, time.Time, error) {
	exp := time.Now().UTC().Add(m.refreshTTL)
	signed, err := m.mint(userID, role, KindRefresh, m.refreshTTL)
	return signed, exp, err
}

func (m *Manager) mint(userID int64, role, kind string, ttl time.Duration) (string, error) {
	now := time.Now().UTC()
	claims := jwt.MapClaims{
		"sub":  fmt.Sprintf("%d", userID),
		"role": role,
		"typ":  kind,
		"exp":  now.Add(ttl).Unix(),
		"iat":  now.Unix(),
		"jti":  randomHex(8),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(m.secret)
}

// Verify parses the token, checks signature and expiry, and enforces the
// expected kind. A valid access token presented where a refresh token is
// required (or vice versa) fails with ErrWrongKind.
func (m *Manager) Verify(tokenString, wantKind string) (*Claims, error) {
	parsed, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return m.secret, nil
	})
	if err != nil || !parsed.Valid {
		return nil, ErrInvalidToken
	}

	mapClaims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return nil, ErrInvalidToken
	}

	kind, _ := mapClaims["typ"].(string)
	if kind != wantKind {
		return nil, ErrWrongKind
	}

	sub, _ := mapClaims["sub"].(string)
	var userID int64
	if _, err := fmt.Sscanf(sub, "%d", &userID); err != nil || userID <= 0 {
		return nil, ErrInvalidToken
	}

	role, _ := mapClaims["role"].(string)

	return &Claims{UserID: userID, Role: role, Kind: kind}, nil
}

// Hash returns the SHA-256 hex digest of a raw token. Only the hash is
// stored server-side so a leaked database cannot replay sessions.
func Hash(raw string) string {
	sum := sha256.Sum256([]byte(raw))
	return hex.EncodeToString(sum[:])
}

func randomHex(n int) string {
	buf := make([]byte, n)
	if _, err := rand.Read(buf); err != nil {
		return ""
	}
	return hex.EncodeToString(buf)
}
