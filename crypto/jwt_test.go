package crypto_test

import (
	"encoding/base64"
	"fmt"
	"strings"
	"testing"
	"time"

	"doodleparty/crypto"
	"doodleparty/domain"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testKey = "a signing key long enough for hs256 in tests"

func TestGenerate(t *testing.T) {
	manager := crypto.NewJWTManager(testKey, time.Hour)
	now := time.Now()
	token, err := manager.Generate("123-456", "Picasso", now)
	require.NoError(t, err)

	parts := strings.Split(token, ".")
	require.Len(t, parts, 3)
	head, _ := base64.RawURLEncoding.DecodeString(parts[0])
	body, _ := base64.RawURLEncoding.DecodeString(parts[1])
	signature, _ := base64.RawURLEncoding.DecodeString(parts[2])

	assert.JSONEq(t, `{"alg": "HS256","typ": "JWT"}`, string(head))
	assert.JSONEq(t, fmt.Sprintf(`{"id": "123-456", "name": "Picasso", "iss": "doodleparty", "iat": %d, "exp": %d}`,
		now.Unix(), now.Add(time.Hour).Unix()), string(body))
	assert.Len(t, signature, 256/8)
}

func TestVerify(t *testing.T) {
	manager := crypto.NewJWTManager(testKey, 2*time.Hour)
	now := time.Now()

	expired, _ := manager.Generate("idid", "Ada", now.Add(-3*time.Hour))
	valid, _ := manager.Generate("idid", "Ada", now.Add(-time.Hour))
	parts := strings.Split(valid, ".")

	testCases := []struct {
		desc     string
		token    string
		expected domain.Session
		err      error
	}{
		{desc: "valid", token: valid, expected: domain.Session{Id: "idid", Name: "Ada"}},
		{desc: "expired", token: expired, err: domain.ErrExpiredToken},
		{desc: "tampered signature", token: valid + "lol", err: domain.ErrInvalidTokenSignature},
		{desc: "other key", token: mustGenerate(t, crypto.NewJWTManager("another key entirely", time.Hour)), err: domain.ErrInvalidTokenSignature},
		{desc: "ES512 header", token: "eyJhbGciOiJFUzUxMiIsInR5cCI6IkpXVCJ9." + parts[1] + "." + parts[2], err: domain.ErrInvalidSigningAlg},
		{desc: "none alg", token: "eyJhbGciOiJub25lIiwidHlwIjoiSldUIn0." + parts[1] + ".", err: domain.ErrInvalidSigningAlg},
		{desc: "garbage", token: "stemretmretm", err: domain.ErrCorruptedToken},
		{desc: "foreign issuer", token: signForeign(t, jwt.MapClaims{"id": "idid", "iss": "elsewhere", "exp": now.Add(time.Hour).Unix()}), err: domain.ErrCorruptedToken},
		{desc: "no expiry", token: signForeign(t, jwt.MapClaims{"id": "idid", "iss": "doodleparty"}), err: domain.ErrCorruptedToken},
		{desc: "no id", token: signForeign(t, jwt.MapClaims{"iss": "doodleparty", "exp": now.Add(time.Hour).Unix()}), err: domain.ErrCorruptedToken},
	}

	for _, tc := range testCases {

		tc := tc
		t.Run(tc.desc, func(t *testing.T) {
			session, err := manager.Verify(tc.token)
			if tc.err != nil {
				assert.ErrorIs(t, err, tc.err)
				assert.Equal(t, domain.Session{}, session)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tc.expected, session)
		})
	}
}

func signForeign(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testKey))
	require.NoError(t, err)
	return token
}

func mustGenerate(t *testing.T, m *crypto.JWTManager) string {
	t.Helper()
	token, err := m.Generate("x", "y", time.Now())
	require.NoError(t, err)
	return token
}
