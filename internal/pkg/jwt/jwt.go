package jwt

import (
	"strconv"
	"sync"
	"time"

	"github.com/corvitlabs/attendance-tracker/internal/domain/user"
	"github.com/go-chi/jwtauth/v5"
	"github.com/google/uuid"
	"github.com/lestrrat-go/jwx/v2/jwt"
)

type Service interface {
	GenerateAccessToken(userID int64, email string, role user.Role) (token string, expiresAt int64, err error)
	JWTAuth() *jwtauth.JWTAuth
	RevokeToken(tokenID string, expiresAt int64)
	IsTokenRevoked(tokenID string) bool
}

type JWTService struct {
	accessTokenExpiration time.Duration
	tokenAuth             *jwtauth.JWTAuth
	now                   func() time.Time

	// jti -> exp, pruned as tokens expire
	revokedTokens map[string]int64
	mu            sync.RWMutex
}

func (j *JWTService) JWTAuth() *jwtauth.JWTAuth {
	return j.tokenAuth
}

// NewJWTService expects accessTokenExpiration to be a valid duration string;
// config.Validate guarantees it.
func NewJWTService(secretKey string, accessTokenExpiration string) Service {
	exp, err := time.ParseDuration(accessTokenExpiration)
	if err != nil || exp <= 0 {
		exp = 24 * time.Hour
	}
	return &JWTService{
		accessTokenExpiration: exp,
		tokenAuth:             jwtauth.New("HS256", []byte(secretKey), nil, jwt.WithAcceptableSkew(30*time.Second)),
		now:                   time.Now,
		revokedTokens:         make(map[string]int64),
	}
}

func (j *JWTService) GenerateAccessToken(userID int64, email string, role user.Role) (token string, expiresAt int64, err error) {
	tokenID, err := uuid.NewV7()
	if err != nil {
		return "", 0, err
	}

	issuedAt := j.now()
	expiresAt = issuedAt.Add(j.accessTokenExpiration).Unix()

	claims := map[string]interface{}{
		"jti":     tokenID.String(),
		"user_id": strconv.FormatInt(userID, 10),
		"email":   email,
		"role":    string(role),
		"type":    "access",
		"iat":     issuedAt.Unix(),
		"exp":     expiresAt,
	}

	_, tokenString, err := j.tokenAuth.Encode(claims)
	return tokenString, expiresAt, err
}

func (j *JWTService) RevokeToken(tokenID string, expiresAt int64) {
	j.mu.Lock()
	defer j.mu.Unlock()

	now := j.now().Unix()
	for id, exp := range j.revokedTokens {
		if exp < now {
			delete(j.revokedTokens, id)
		}
	}
	j.revokedTokens[tokenID] = expiresAt
}

func (j *JWTService) IsTokenRevoked(tokenID string) bool {
	j.mu.RLock()
	defer j.mu.RUnlock()
	_, revoked := j.revokedTokens[tokenID]
	return revoked
}
