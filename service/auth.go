package service

import (
	"context"
	"errors"
	"time"

	"LuckyChat/config"
	"LuckyChat/dao"
	"LuckyChat/models"
	"LuckyChat/pkg/jwt"
	"LuckyChat/pkg/response"
	"LuckyChat/pkg/snowflake"
	"LuckyChat/types"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const tokenTypeAccess = "access"

var (
	ErrUsernameTaken = response.NewError(40012, "用户名已被注册")
	ErrLoginFailed   = response.NewError(40101, "用户名或密码错误")
)

type IAuthService interface {
	Register(ctx context.Context, req *types.RegisterRequest) (*types.LoginResponse, error)
	Login(ctx context.Context, req *types.LoginRequest) (*types.LoginResponse, error)
}

var _ IAuthService = (*AuthService)(nil)

type AuthService struct {
	Config  *config.Config
	UserDAO *dao.User
}

func NewAuthService(cfg *config.Config, userDAO *dao.User) *AuthService {
	return &AuthService{Config: cfg, UserDAO: userDAO}
}

func (s *AuthService) Register(ctx context.Context, req *types.RegisterRequest) (*types.LoginResponse, error) {
	exists, err := s.UserDAO.ExistsByUsername(ctx, req.Username)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrUsernameTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	nickname := req.Nickname
	if nickname == "" {
		nickname = req.Username
	}
	user := &models.User{
		ID:       snowflake.GenUserID(),
		Username: req.Username,
		Password: string(hash),
		Nickname: nickname,
	}
	if err := s.UserDAO.Create(ctx, user); err != nil {
		return nil, err
	}
	return s.issueToken(user)
}

func (s *AuthService) Login(ctx context.Context, req *types.LoginRequest) (*types.LoginResponse, error) {
	user, err := s.UserDAO.FindByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrLoginFailed
		}
		return nil, err
	}
	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)) != nil {
		return nil, ErrLoginFailed
	}
	return s.issueToken(user)
}

func (s *AuthService) issueToken(user *models.User) (*types.LoginResponse, error) {
	expire := time.Duration(s.Config.Jwt.Expire) * time.Second
	if expire <= 0 {
		expire = 7 * 24 * time.Hour
	}
	token, err := jwt.GenerateToken([]byte(s.Config.Jwt.Secret), user.ID, user.Username, tokenTypeAccess, expire)
	if err != nil {
		return nil, err
	}
	return &types.LoginResponse{
		Token:    token,
		UserID:   user.ID,
		Username: user.Username,
		Nickname: user.Nickname,
	}, nil
}
