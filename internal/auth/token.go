package auth

import (
	"errors"
	"strconv"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"

	"github.com/spec-kit/catalog-service/internal/domain"
	"github.com/spec-kit/catalog-service/internal/errs"
)

// TokenManager handles issuing and validating JWT tokens. It is the only
// component holding the signing secret; the secret is injected once at
// construction and read-only afterwards, so concurrent use needs no locking.
type TokenManager struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewTokenManager builds a new manager.
func NewTokenManager(secret string, ttlMinutes int) *TokenManager {
	if ttlMinutes <= 0 {
		ttlMinutes = 60
	}
	return &TokenManager{
		secret: []byte(secret),
		ttl:    time.Duration(ttlMinutes) * time.Minute,
		now:    time.Now,
	}
}

// WithClock overrides the wall clock; tests use it to step through the
// validity window deterministically.
func (tm *TokenManager) WithClock(now func() time.Time) *TokenManager {
	tm.now = now
	return tm
}

// Claims describes the JWT payload: subject id, role and the registered
// timestamps. Everything a validator needs is in here plus the secret.
type Claims struct {
	UserID int64       `json:"uid"`
	Role   domain.Role `json:"role"`
	jwt.RegisteredClaims
}

// GenerateToken builds and signs a token for the identity. It always
// succeeds for a well-formed user.
func (tm *TokenManager) GenerateToken(user *domain.User) (string, time.Time, error) {
	now := tm.now()
	expiresAt := now.Add(tm.ttl)
	claims := &Claims{
		UserID: user.ID,
		Role:   user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(user.ID, 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(tm.secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return tokenString, expiresAt, nil
}

// Validate parses and verifies a presented token. Signature or structural
// failures map to errs.ErrInvalidToken, expiry to errs.ErrTokenExpired.
// Existence of the subject is deliberately not checked here; callers that
// need it perform an explicit store lookup.
func (tm *TokenManager) Validate(tokenStr string) (*Claims, error) {
	parsed, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if token.Method != jwt.SigningMethodHS256 {
			return nil, errors.New("unexpected signing method")
		}
		return tm.secret, nil
	}, jwt.WithTimeFunc(tm.now))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, errs.ErrTokenExpired
		}
		return nil, errs.ErrInvalidToken
	}

	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid {
		return nil, errs.ErrInvalidToken
	}
	return claims, nil
}

// ValidateForSubject validates the token and additionally compares its
// subject against an expected identity id, typically one freshly loaded from
// the store. A mismatch maps to errs.ErrSubjectMismatch.
func (tm *TokenManager) ValidateForSubject(tokenStr string, subjectID int64) (*Claims, error) {
	claims, err := tm.Validate(tokenStr)
	if err != nil {
		return nil, err
	}
	if claims.UserID != subjectID {
		return nil, errs.ErrSubjectMismatch
	}
	return claims, nil
}

// SubjectID extracts the acting identity's id from a token, following the
// same signature and expiry rules as Validate.
func (tm *TokenManager) SubjectID(tokenStr string) (int64, error) {
	claims, err := tm.Validate(tokenStr)
	if err != nil {
		return 0, err
	}
	return claims.UserID, nil
}

// TTL returns the configured token lifetime.
func (tm *TokenManager) TTL() time.Duration {
	return tm.ttl
}
