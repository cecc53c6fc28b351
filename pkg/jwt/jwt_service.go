package jwt

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"

	"Sehat-Backend/domain"
	"Sehat-Backend/internal/utils"
)

var ErrMissingSecret = errors.New("jwt secret is not configured")

type (
	// JWTService verifies the HS256 access tokens issued by the auth service.
	// The subject claim carries the user id.
	JWTService interface {
		GenerateToken(userID uuid.UUID, email string, duration time.Duration) (string, error)
		ValidateToken(token string) (*jwt.Token, error)
		GetIdentityByToken(token string) (domain.Identity, error)
	}

	authClaims struct {
		Email string `json:"email,omitempty"`
		Role  string `json:"role,omitempty"`
		jwt.RegisteredClaims
	}

	jwtService struct {
		secretKey string
		issuer    string
	}
)

func NewJWTService(secretKey, issuer string) JWTService {
	return &jwtService{
		secretKey: secretKey,
		issuer:    issuer,
	}
}

// NewJWTServiceFromConfig refuses to start without JWT_SECRET: an empty HMAC
// key would let anyone mint tokens for any user.
func NewJWTServiceFromConfig() (JWTService, error) {
	secret := utils.GetConfig("JWT_SECRET")
	if secret == "" {
		return nil, ErrMissingSecret
	}
	return NewJWTService(secret, utils.GetConfig("JWT_ISSUER")), nil
}

// GenerateToken signs a token shaped like the auth service's. Used for local
// development and tests.
func (j *jwtService) GenerateToken(userID uuid.UUID, email string, duration time.Duration) (string, error) {
	if j.secretKey == "" {
		return "", ErrMissingSecret
	}
	now := time.Now()
	claims := authClaims{
		Email: email,
		Role:  "authenticated",
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID.String(),
			ExpiresAt: jwt.NewNumericDate(now.Add(duration)),
			IssuedAt:  jwt.NewNumericDate(now),
			Issuer:    j.issuer,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(j.secretKey))
}

func (j *jwtService) parseToken(t_ *jwt.Token) (any, error) {
	if _, ok := t_.Method.(*jwt.SigningMethodHMAC); !ok {
		return nil, fmt.Errorf("unexpected signing method %v", t_.Header["alg"])
	}
	if j.secretKey == "" {
		return nil, ErrMissingSecret
	}
	return []byte(j.secretKey), nil
}

func (j *jwtService) ValidateToken(token string) (*jwt.Token, error) {
	return jwt.ParseWithClaims(token, &authClaims{}, j.parseToken)
}

func (j *jwtService) GetIdentityByToken(token string) (domain.Identity, error) {
	t_Token, err := j.ValidateToken(token)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return domain.Identity{}, domain.ErrTokenExpired
		}
		return domain.Identity{}, domain.ErrTokenInvalid
	}
	if !t_Token.Valid {
		return domain.Identity{}, domain.ErrTokenInvalid
	}

	claims := t_Token.Claims.(*authClaims)
	if j.issuer != "" && !claims.VerifyIssuer(j.issuer, true) {
		return domain.Identity{}, domain.ErrTokenInvalid
	}

	userID, err := uuid.Parse(claims.Subject)
	if err != nil || userID == uuid.Nil {
		return domain.Identity{}, domain.ErrTokenInvalid
	}

	return domain.Identity{UserID: userID, Email: claims.Email}, nil
}
