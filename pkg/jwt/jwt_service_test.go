package jwt

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"Sehat-Backend/domain"
)

func TestGetIdentityByToken(t *testing.T) {
	svc := NewJWTService("test-secret", "")
	userID := uuid.New()

	token, err := svc.GenerateToken(userID, "patient@example.com", time.Hour)
	require.NoError(t, err)

	identity, err := svc.GetIdentityByToken(token)

	require.NoError(t, err)
	assert.Equal(t, domain.Identity{UserID: userID, Email: "patient@example.com"}, identity)
}

func TestGetIdentityByToken_Expired(t *testing.T) {
	svc := NewJWTService("test-secret", "")

	token, err := svc.GenerateToken(uuid.New(), "", -time.Minute)
	require.NoError(t, err)

	_, err = svc.GetIdentityByToken(token)
	assert.ErrorIs(t, err, domain.ErrTokenExpired)
}

func TestGetIdentityByToken_WrongSecret(t *testing.T) {
	token, err := NewJWTService("other-secret", "").GenerateToken(uuid.New(), "", time.Hour)
	require.NoError(t, err)

	_, err = NewJWTService("test-secret", "").GetIdentityByToken(token)
	assert.ErrorIs(t, err, domain.ErrTokenInvalid)
}

func TestGetIdentityByToken_IssuerMismatch(t *testing.T) {
	token, err := NewJWTService("test-secret", "someone-else").GenerateToken(uuid.New(), "", time.Hour)
	require.NoError(t, err)

	_, err = NewJWTService("test-secret", "https://auth.sehat.example").GetIdentityByToken(token)
	assert.ErrorIs(t, err, domain.ErrTokenInvalid)
}

func TestGetIdentityByToken_RejectsNonUUIDSubject(t *testing.T) {
	claims := jwt.RegisteredClaims{
		Subject:   "not-a-uuid",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	require.NoError(t, err)

	_, err = NewJWTService("test-secret", "").GetIdentityByToken(token)
	assert.ErrorIs(t, err, domain.ErrTokenInvalid)
}

func TestGetIdentityByToken_RejectsNoneAlgorithm(t *testing.T) {
	claims := jwt.RegisteredClaims{Subject: uuid.NewString()}
	token, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = NewJWTService("test-secret", "").GetIdentityByToken(token)
	assert.ErrorIs(t, err, domain.ErrTokenInvalid)
}

func TestGetIdentityByToken_Garbage(t *testing.T) {
	_, err := NewJWTService("test-secret", "").GetIdentityByToken("abc.def.ghi")
	assert.ErrorIs(t, err, domain.ErrTokenInvalid)
}

func TestGetIdentityByToken_EmptySecretRefusesTokens(t *testing.T) {
	claims := authClaims{
		Email: "intruder@example.com",
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   uuid.NewString(),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(""))
	require.NoError(t, err)

	_, err = NewJWTService("", "").GetIdentityByToken(token)
	assert.ErrorIs(t, err, domain.ErrTokenInvalid)
}

func TestGenerateToken_EmptySecret(t *testing.T) {
	_, err := NewJWTService("", "").GenerateToken(uuid.New(), "", time.Hour)
	assert.ErrorIs(t, err, ErrMissingSecret)
}

func TestNewJWTServiceFromConfig(t *testing.T) {
	t.Setenv("JWT_SECRET", "")
	_, err := NewJWTServiceFromConfig()
	assert.ErrorIs(t, err, ErrMissingSecret)

	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("JWT_ISSUER", "")
	svc, err := NewJWTServiceFromConfig()
	require.NoError(t, err)

	token, err := svc.GenerateToken(uuid.New(), "", time.Hour)
	require.NoError(t, err)
	_, err = svc.GetIdentityByToken(token)
	assert.NoError(t, err)
}
