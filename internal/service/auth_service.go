package service

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/haierkeys/trade-journal-service/internal/domain"
	"github.com/haierkeys/trade-journal-service/internal/dto"
	"github.com/haierkeys/trade-journal-service/pkg/app"
	"github.com/haierkeys/trade-journal-service/pkg/code"
	"github.com/haierkeys/trade-journal-service/pkg/idgen"
	"github.com/haierkeys/trade-journal-service/pkg/util"

	"github.com/bytedance/sonic"
	"go.uber.org/zap"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"golang.org/x/sync/singleflight"
)

// GoogleUserInfoURL Google OpenID userinfo 接口
const GoogleUserInfoURL = "https://openidconnect.googleapis.com/v1/userinfo"

// GoogleOAuthConfig Google OAuth 客户端配置
type GoogleOAuthConfig struct {
	ClientID     string
	ClientSecret string
	CallbackURL  string
}

// NewGoogleOAuth2Config 构造 oauth2.Config，未配置 ClientID 时返回 nil
func NewGoogleOAuth2Config(c GoogleOAuthConfig) *oauth2.Config {
	if c.ClientID == "" {
		return nil
	}
	return &oauth2.Config{
		ClientID:     c.ClientID,
		ClientSecret: c.ClientSecret,
		RedirectURL:  c.CallbackURL,
		Scopes:       []string{"openid", "profile", "email"},
		Endpoint:     google.Endpoint,
	}
}

// ProfileFetcher 使用 OAuth token 拉取 Google 用户信息
type ProfileFetcher func(ctx context.Context, client *http.Client) (*dto.GoogleProfile, error)

// AuthService 登录、会话校验与退出
type AuthService interface {
	// AuthCodeURL 生成 Google 授权地址
	AuthCodeURL(state string) (string, error)

	// Exchange 用授权码换取 token 并获取用户信息
	Exchange(ctx context.Context, authCode string) (*dto.GoogleProfile, error)

	// LoginWithGoogle 根据 Google 用户信息登录或注册，并创建会话
	LoginWithGoogle(ctx context.Context, profile *dto.GoogleProfile, ip, userAgent string) (*dto.LoginResultDTO, error)

	// Authenticate 校验会话 token，返回会话中的用户
	Authenticate(ctx context.Context, token string) (*app.UserEntity, error)

	// Logout 删除会话
	Logout(ctx context.Context, sessionID string) error

	// CleanupSessions 删除过期会话
	CleanupSessions(ctx context.Context) (int64, error)
}

type authService struct {
	userRepo     domain.UserRepository
	sessionRepo  domain.SessionRepository
	tokenManager app.TokenManager
	oauth        *oauth2.Config
	fetchProfile ProfileFetcher
	sf           *singleflight.Group
	logger       *zap.Logger
	config       *ServiceConfig
}

// AuthServiceOption 配置项
type AuthServiceOption func(*authService)

// WithOAuth 设置 Google OAuth 配置
func WithOAuth(c *oauth2.Config) AuthServiceOption {
	return func(s *authService) {
		s.oauth = c
	}
}

// WithProfileFetcher 替换用户信息获取方式
func WithProfileFetcher(f ProfileFetcher) AuthServiceOption {
	return func(s *authService) {
		if f != nil {
			s.fetchProfile = f
		}
	}
}

// NewAuthService 创建 AuthService 实例
func NewAuthService(userRepo domain.UserRepository, sessionRepo domain.SessionRepository, tokenManager app.TokenManager, logger *zap.Logger, config *ServiceConfig, opts ...AuthServiceOption) AuthService {
	s := &authService{
		userRepo:     userRepo,
		sessionRepo:  sessionRepo,
		tokenManager: tokenManager,
		fetchProfile: fetchGoogleProfile,
		sf:           &singleflight.Group{},
		logger:       logger,
		config:       config,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *authService) AuthCodeURL(state string) (string, error) {
	if s.oauth == nil {
		return "", code.ErrorOAuthNotConfigure
	}
	return s.oauth.AuthCodeURL(state, oauth2.AccessTypeOnline), nil
}

func (s *authService) Exchange(ctx context.Context, authCode string) (*dto.GoogleProfile, error) {
	if s.oauth == nil {
		return nil, code.ErrorOAuthNotConfigure
	}
	tok, err := s.oauth.Exchange(ctx, authCode)
	if err != nil {
		s.logger.Warn("oauth code exchange failed", zap.Error(err))
		return nil, code.ErrorOAuthExchange.WithDetails(err.Error())
	}
	profile, err := s.fetchProfile(ctx, s.oauth.Client(ctx, tok))
	if err != nil {
		s.logger.Warn("fetch google profile failed", zap.Error(err))
		return nil, code.ErrorOAuthProfile.WithDetails(err.Error())
	}
	return profile, nil
}

func fetchGoogleProfile(ctx context.Context, client *http.Client) (*dto.GoogleProfile, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, GoogleUserInfoURL, nil)
	if err != nil {
		return nil, err
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("userinfo status %d", resp.StatusCode)
	}
	var p dto.GoogleProfile
	if err := sonic.Unmarshal(body, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// LoginWithGoogle 已存在用户按邮箱匹配，新用户以 Google subject 作为ID创建
func (s *authService) LoginWithGoogle(ctx context.Context, profile *dto.GoogleProfile, ip, userAgent string) (*dto.LoginResultDTO, error) {
	if profile == nil || profile.Subject == "" || !util.IsValidEmail(profile.Email) {
		return nil, code.ErrorOAuthProfile
	}

	user, err := s.userRepo.GetByEmail(ctx, profile.Email)
	switch {
	case err == nil:
		if user.OnboardingStep == "" {
			if err := s.userRepo.UpdateOnboarding(ctx, user.ID, domain.StepAccountSetup, user.OnboardingCompleted); err != nil {
				return nil, dbError(s.logger, "reset onboarding step failed", err, zap.String("uid", user.ID))
			}
			user.OnboardingStep = domain.StepAccountSetup
		}
	case isNotFound(err):
		user, err = s.userRepo.Create(ctx, &domain.User{
			ID:             profile.Subject,
			ParticipantID:  idgen.Snowflake(),
			Name:           profile.Name,
			Email:          profile.Email,
			Image:          profile.Picture,
			OnboardingStep: domain.StepAccountSetup,
		})
		if err != nil {
			return nil, dbError(s.logger, "create user failed", err, zap.String("email", profile.Email))
		}
		s.logger.Info("user registered", zap.String("uid", user.ID))
	default:
		return nil, dbError(s.logger, "get user by email failed", err)
	}

	session, err := s.sessionRepo.Create(ctx, &domain.Session{
		UserID:    user.ID,
		IP:        ip,
		UserAgent: truncate(userAgent, 255),
		ExpiresAt: time.Now().Add(s.config.sessionExpiry()),
	})
	if err != nil {
		s.logger.Error("create session failed", zap.String("uid", user.ID), zap.Error(err))
		return nil, code.ErrorSessionCreate.WithDetails(err.Error())
	}

	token, err := s.tokenManager.Generate(user.ID, session.ID, ip)
	if err != nil {
		s.logger.Error("sign session token failed", zap.String("uid", user.ID), zap.Error(err))
		return nil, code.ErrorSessionCreate.WithDetails(err.Error())
	}

	frontend := ""
	if s.config != nil {
		frontend = strings.TrimRight(s.config.Auth.FrontendURL, "/")
	}
	return &dto.LoginResultDTO{
		User:       userToDTO(user),
		Token:      token,
		SessionID:  session.ID,
		RedirectTo: frontend + user.RedirectPath(),
	}, nil
}

// Authenticate JWT 校验通过后还要求会话记录存在且未过期
// 同一会话的并发校验合并为一次查询
func (s *authService) Authenticate(ctx context.Context, token string) (*app.UserEntity, error) {
	if token == "" {
		return nil, code.ErrorNotUserAuthToken
	}
	entity, err := s.tokenManager.Parse(token)
	if err != nil {
		return nil, code.ErrorInvalidUserAuthToken
	}

	v, err, _ := s.sf.Do("session:"+entity.SessionID(), func() (interface{}, error) {
		return s.sessionRepo.GetByID(ctx, entity.SessionID())
	})
	if err != nil {
		if isNotFound(err) {
			return nil, code.ErrorInvalidUserAuthToken
		}
		return nil, dbError(s.logger, "get session failed", err)
	}

	session := v.(*domain.Session)
	if session.UserID != entity.UID || session.Expired(time.Now()) {
		return nil, code.ErrorInvalidUserAuthToken
	}
	return entity, nil
}

func (s *authService) Logout(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return nil
	}
	if err := s.sessionRepo.Delete(ctx, sessionID); err != nil {
		return dbError(s.logger, "delete session failed", err, zap.String("session", sessionID))
	}
	return nil
}

func (s *authService) CleanupSessions(ctx context.Context) (int64, error) {
	n, err := s.sessionRepo.DeleteExpired(ctx, time.Now())
	if err != nil {
		return 0, dbError(s.logger, "delete expired sessions failed", err)
	}
	return n, nil
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
