package jwt

import (
	"errors"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/lestrrat-go/jwx/v2/jwt"
)

// Claim names carried by access tokens.
const (
	ClaimUserID  = "user_id"
	ClaimIsAdmin = "is_admin"
	ClaimType    = "type"

	tokenTypeAccess = "access"
)

var ErrInvalidTokenType = errors.New("token is not an access token")

// Claims is the identity carried by an access token.
type Claims struct {
	UserID  string
	IsAdmin bool
}

type Service interface {
	GenerateAccessToken(userID string, isAdmin bool) (token string, expiresAt int64, err error)
	ParseAccessToken(tokenString string) (Claims, error)
	JWTAuth() *jwtauth.JWTAuth
}

type JWTService struct {
	accessTokenExpirationTime string
	tokenAuth                 *jwtauth.JWTAuth
	now                       func() time.Time
}

func NewJWTService(secretKey string, accessTokenExpirationTime string) Service {
	return &JWTService{
		accessTokenExpirationTime: accessTokenExpirationTime,
		tokenAuth:                 jwtauth.New("HS256", []byte(secretKey), nil, jwt.WithAcceptableSkew(30*time.Second)),
		now:                       time.Now,
	}
}

func (j *JWTService) JWTAuth() *jwtauth.JWTAuth {
	return j.tokenAuth
}

func (j *JWTService) GenerateAccessToken(userID string, isAdmin bool) (token string, expiresAt int64, err error) {
	expDuration, err := time.ParseDuration(j.accessTokenExpirationTime)
	if err != nil {
		return "", 0, err
	}
	now := j.now()
	expiresAt = now.Add(expDuration).Unix()

	_, tokenString, err := j.tokenAuth.Encode(map[string]interface{}{
		ClaimUserID:  userID,
		ClaimIsAdmin: isAdmin,
		ClaimType:    tokenTypeAccess,
		"iat":        now.Unix(),
		"exp":        expiresAt,
	})
	return tokenString, expiresAt, err
}

// ParseAccessToken verifies tokenString and returns its claims.
func (j *JWTService) ParseAccessToken(tokenString string) (Claims, error) {
	token, err := jwtauth.VerifyToken(j.tokenAuth, tokenString)
	if err != nil {
		return Claims{}, err
	}
	return ClaimsFromMap(token.PrivateClaims())
}

// ClaimsFromMap reads access token claims as returned by jwtauth.FromContext.
func ClaimsFromMap(claims map[string]interface{}) (Claims, error) {
	if tokenType, _ := claims[ClaimType].(string); tokenType != tokenTypeAccess {
		return Claims{}, ErrInvalidTokenType
	}
	userID, _ := claims[ClaimUserID].(string)
	if userID == "" {
		return Claims{}, jwt.ErrInvalidJWT()
	}
	isAdmin, _ := claims[ClaimIsAdmin].(bool)
	return Claims{UserID: userID, IsAdmin: isAdmin}, nil
}
