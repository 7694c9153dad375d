package app

import (
	"context"
	"fmt"
	"time"

	"github.com/haierkeys/trade-journal-service/pkg/util"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

// 默认 Token 签发者
const DefaultTokenIssuer = "trade-journal-service"

// ContextUserKey gin 上下文中保存当前用户的键
const ContextUserKey = "user_token"

// TokenConfig 定义 Token 管理器的配置
type TokenConfig struct {
	SecretKey string        `yaml:"secret-key"` // JWT 签名密钥
	Expiry    time.Duration `yaml:"expiry"`     // Token 过期时间，默认 30 天
	Issuer    string        `yaml:"issuer"`     // Token 签发者
}

// TokenManager 定义 Token 管理接口
type TokenManager interface {
	Generate(uid, sessionID, ip string) (string, error)
	Parse(token string) (*UserEntity, error)
	Validate(token string) error
	Expiry() time.Duration
}

// tokenManager 实现 TokenManager 接口
type tokenManager struct {
	config TokenConfig
}

// NewTokenManager 创建一个新的 TokenManager 实例
func NewTokenManager(cfg TokenConfig) TokenManager {
	if cfg.Expiry == 0 {
		cfg.Expiry = 30 * 24 * time.Hour
	}
	if cfg.Issuer == "" {
		cfg.Issuer = DefaultTokenIssuer
	}
	return &tokenManager{config: cfg}
}

// UserEntity 会话 Token 中携带的用户信息，ID 声明即会话 ID
type UserEntity struct {
	UID string `json:"uid"`
	IP  string `json:"ip"`
	jwt.RegisteredClaims
}

// SessionID 返回会话 ID
func (u *UserEntity) SessionID() string {
	return u.ID
}

// Generate 生成一个新的 JWT Token
func (t *tokenManager) Generate(uid, sessionID, ip string) (string, error) {
	now := time.Now()
	claims := &UserEntity{
		UID: uid,
		IP:  ip,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(t.config.Expiry)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			Issuer:    t.config.Issuer,
			Subject:   "session",
			ID:        sessionID,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(t.signingKey())
}

// Parse 解析 JWT Token 并返回用户信息
func (t *tokenManager) Parse(token string) (*UserEntity, error) {
	claims := &UserEntity{}

	parsedToken, err := jwt.ParseWithClaims(token, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return t.signingKey(), nil
	}, jwt.WithIssuer(t.config.Issuer))

	if err != nil {
		return nil, err
	}

	if !parsedToken.Valid {
		return nil, fmt.Errorf("invalid token")
	}

	return claims, nil
}

// Validate 验证 Token 是否有效
func (t *tokenManager) Validate(token string) error {
	_, err := t.Parse(token)
	return err
}

// Expiry Token 有效期
func (t *tokenManager) Expiry() time.Duration {
	return t.config.Expiry
}

func (t *tokenManager) signingKey() []byte {
	return []byte(t.config.SecretKey + "_" + util.GetMachineID())
}

// GetUID extracts the user ID from the gin context.
func GetUID(ctx *gin.Context) (out string) {
	if user := GetUser(ctx); user != nil {
		out = user.UID
	}
	return
}

// GetUser 从 gin 上下文获取当前用户
func GetUser(ctx *gin.Context) *UserEntity {
	user, exist := ctx.Get(ContextUserKey)
	if !exist {
		return nil
	}
	userEntity, _ := user.(*UserEntity)
	return userEntity
}

type userCtxKey struct{}

// WithUser 将用户写入标准 context，供 GraphQL 解析器读取
func WithUser(ctx context.Context, user *UserEntity) context.Context {
	return context.WithValue(ctx, userCtxKey{}, user)
}

// UserFromContext 从标准 context 读取用户，未登录返回 nil
func UserFromContext(ctx context.Context) *UserEntity {
	user, _ := ctx.Value(userCtxKey{}).(*UserEntity)
	return user
}
