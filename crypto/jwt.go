package crypto

import (
	"errors"
	"fmt"
	"time"

	"doodleparty/domain"

	"github.com/golang-jwt/jwt/v5"
)

const sessionIssuer = "doodleparty"

// guestClaims carries the guest's display name next to its id so the game
// never needs a user store.
type guestClaims struct {
	Id   string `json:"id"`
	Name string `json:"name"`
	jwt.RegisteredClaims
}

// JWTManager signs and checks HS256 guest session tokens.
type JWTManager struct {
	key    []byte
	maxAge time.Duration
	parser *jwt.Parser
}

func NewJWTManager(secretKey string, maxAge time.Duration) *JWTManager {
	return &JWTManager{
		key:    []byte(secretKey),
		maxAge: maxAge,
		parser: jwt.NewParser(jwt.WithIssuer(sessionIssuer), jwt.WithExpirationRequired()),
	}
}

func (m *JWTManager) Generate(id, name string, now time.Time) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, guestClaims{
		Id:   id,
		Name: name,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    sessionIssuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.maxAge)),
		},
	})

	signed, err := token.SignedString(m.key)
	if err != nil {
		return "", fmt.Errorf("%w: %w", domain.UnexpectedTokenGenerationError, err)
	}
	return signed, nil
}

func (m *JWTManager) keyFor(token *jwt.Token) (any, error) {
	if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
		return nil, domain.ErrInvalidSigningAlg
	}
	return m.key, nil
}

func (m *JWTManager) Verify(tokenString string) (domain.Session, error) {
	claims := &guestClaims{}
	if _, err := m.parser.ParseWithClaims(tokenString, claims, m.keyFor); err != nil {
		return domain.Session{}, verificationError(err)
	}
	if claims.Id == "" {
		return domain.Session{}, domain.ErrCorruptedToken
	}
	return domain.Session{Id: claims.Id, Name: claims.Name}, nil
}

func verificationError(err error) error {
	switch {
	case errors.Is(err, domain.ErrInvalidSigningAlg):
		return domain.ErrInvalidSigningAlg
	case errors.Is(err, jwt.ErrTokenExpired):
		return domain.ErrExpiredToken
	case errors.Is(err, jwt.ErrSignatureInvalid):
		return domain.ErrInvalidTokenSignature
	case errors.Is(err, jwt.ErrTokenMalformed),
		errors.Is(err, jwt.ErrTokenInvalidIssuer),
		errors.Is(err, jwt.ErrTokenRequiredClaimMissing):
		return domain.ErrCorruptedToken
	default:
		return fmt.Errorf("%w: %w", domain.UnexpectedTokenVerificationError, err)
	}
}
