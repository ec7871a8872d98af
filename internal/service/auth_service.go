package service

import (
	"fmt"
	"strconv"

	"go.uber.org/zap"

	"genfly-deploy/internal/dto"
	"genfly-deploy/internal/model"
	"genfly-deploy/internal/pkg/config"
	"genfly-deploy/internal/pkg/crypto"
	"genfly-deploy/internal/pkg/jwt"
	"genfly-deploy/internal/repository"
	"genfly-deploy/pkg/constants"
	pkgErrors "genfly-deploy/pkg/errors"
)

// AuthService 认证服务接口
type AuthService interface {
	Login(req *dto.LoginRequest) (*dto.LoginResponse, error)
	RefreshToken(refreshToken string) (*dto.LoginResponse, error)
	GetUserInfo(userID string) (*dto.UserInfo, error)
}

type authService struct {
	userRepo repository.UserRepository
	cfg      *config.AuthConfig
	logger   *zap.Logger
}

// NewAuthService 创建认证服务实例
func NewAuthService(userRepo repository.UserRepository, cfg *config.AuthConfig, logger *zap.Logger) AuthService {
	return &authService{
		userRepo: userRepo,
		cfg:      cfg,
		logger:   logger,
	}
}

// Login 本地用户登录
func (s *authService) Login(req *dto.LoginRequest) (*dto.LoginResponse, error) {
	if !s.cfg.Local.Enabled {
		return nil, pkgErrors.New(pkgErrors.CodeForbidden, "本地登录未启用")
	}

	user, err := s.userRepo.FindByUsername(req.Username)
	if err != nil {
		if err == pkgErrors.ErrRecordNotFound {
			return nil, pkgErrors.ErrInvalidCredentials
		}
		return nil, err
	}

	if user.Status != constants.StatusEnabled {
		return nil, pkgErrors.ErrUserDisabled
	}

	if !crypto.CheckPassword(req.Password, user.Password) {
		s.logger.Warn("登录密码错误", zap.String("username", req.Username))
		return nil, pkgErrors.ErrInvalidCredentials
	}

	// 更新登录时间，失败不影响登录
	if err := s.userRepo.UpdateLastLogin(user.ID); err != nil {
		s.logger.Warn("更新登录时间失败", zap.Error(err))
	}

	return s.buildLoginResponse(user)
}

// RefreshToken 刷新Token
func (s *authService) RefreshToken(refreshToken string) (*dto.LoginResponse, error) {
	claims, err := jwt.ParseToken(refreshToken)
	if err != nil {
		return nil, err
	}

	if claims.Type != constants.JWTTypeRefresh {
		return nil, pkgErrors.ErrInvalidToken
	}

	userID, err := strconv.ParseInt(claims.UserID, 10, 64)
	if err != nil {
		return nil, pkgErrors.ErrInvalidToken
	}

	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		if err == pkgErrors.ErrRecordNotFound {
			return nil, pkgErrors.ErrInvalidToken
		}
		return nil, err
	}

	if user.Status != constants.StatusEnabled {
		return nil, pkgErrors.ErrUserDisabled
	}

	return s.buildLoginResponse(user)
}

// GetUserInfo 获取用户信息
func (s *authService) GetUserInfo(userID string) (*dto.UserInfo, error) {
	id, err := strconv.ParseInt(userID, 10, 64)
	if err != nil {
		return nil, pkgErrors.ErrInvalidToken
	}

	user, err := s.userRepo.FindByID(id)
	if err != nil {
		return nil, err
	}

	return toUserInfo(user), nil
}

// buildLoginResponse 签发Token对并组装响应
func (s *authService) buildLoginResponse(user *model.User) (*dto.LoginResponse, error) {
	info := toUserInfo(user)

	accessToken, err := jwt.GenerateAccessToken(info.UserID, info.Username, info.Email, info.DisplayName)
	if err != nil {
		return nil, pkgErrors.Wrap(pkgErrors.CodeInternalError, "生成访问Token失败", err)
	}

	refreshToken, err := jwt.GenerateRefreshToken(info.UserID, info.Username, info.Email, info.DisplayName)
	if err != nil {
		return nil, pkgErrors.Wrap(pkgErrors.CodeInternalError, "生成刷新Token失败", err)
	}

	return &dto.LoginResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresIn:    s.cfg.JWT.AccessTokenExpire,
		User:         info,
	}, nil
}

func toUserInfo(user *model.User) *dto.UserInfo {
	info := &dto.UserInfo{
		UserID:   fmt.Sprintf("%d", user.ID),
		Username: user.Username,
	}
	if user.Email != nil {
		info.Email = *user.Email
	}
	if user.DisplayName != nil {
		info.DisplayName = *user.DisplayName
	}
	return info
}
