package service

import (
	"errors"
	"strings"
	"time"

	"prompt_market/internal/domain/user/model"
	"prompt_market/internal/domain/user/repository"
	"prompt_market/internal/pkg/otp"
	"prompt_market/pkg/utils"

	"gorm.io/gorm"
)

// UserService covers sign-in, profiles and role management.
type UserService interface {
	LoginOrRegister(email, code string) (string, error)
	SendSignInCode(email string) error
	GetUsers(page, limit int) ([]model.User, int64, error)
	GetUser(id string) (*model.User, error)
	UpdateUser(id string, nickname, avatarURL string) (*model.User, error)
	BecomeSeller(userID string) error
	DeleteUser(id string) error
}

type userService struct {
	repo repository.UserRepository
	otp  otp.OTPService
}

// NewUserService creates the user service.
func NewUserService(repo repository.UserRepository, otp otp.OTPService) UserService {
	return &userService{repo: repo, otp: otp}
}

// LoginOrRegister verifies the emailed code, creating the account on
// first sign-in, and returns a bearer token.
func (s *userService) LoginOrRegister(email, code string) (string, error) {
	if !s.otp.Verify(email, code) {
		return "", errors.New("invalid sign-in code")
	}

	user, err := s.repo.GetByEmail(email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			user = &model.User{
				Email:    email,
				Nickname: defaultNickname(email),
				Role:     model.RoleUser,
				Status:   model.StatusNormal,
			}
			if err := s.repo.Create(user); err != nil {
				return "", err
			}
		} else {
			return "", err
		}
	}

	if user.Status == model.StatusBanned {
		if user.BannedUntil != nil && time.Now().After(*user.BannedUntil) {
			user.Status = model.StatusNormal
			user.BannedUntil = nil
			s.repo.Update(user)
		} else {
			return "", errors.New("account is banned")
		}
	}
	if user.Status == model.StatusDeleted {
		return "", errors.New("account has been deleted")
	}

	token, tokenExpireAt, err := utils.GenerateToken(user.ID, user.Role)
	if err != nil {
		return "", err
	}

	now := time.Now()
	user.Token = token
	user.TokenExpireAt = tokenExpireAt
	user.LastLoginAt = &now
	if err := s.repo.Update(user); err != nil {
		return "", err
	}

	return token, nil
}

func (s *userService) SendSignInCode(email string) error {
	_, err := s.otp.Send(email)
	return err
}

// GetUsers returns a page of accounts (admin listing).
func (s *userService) GetUsers(page, limit int) ([]model.User, int64, error) {
	if page <= 0 {
		page = 1
	}
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	return s.repo.GetList((page-1)*limit, limit)
}

func (s *userService) GetUser(id string) (*model.User, error) {
	return s.repo.GetByID(id)
}

// UpdateUser changes the profile fields a user controls.
func (s *userService) UpdateUser(id string, nickname, avatarURL string) (*model.User, error) {
	user, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}

	if nickname != "" {
		user.Nickname = nickname
	}
	if avatarURL != "" {
		user.AvatarURL = avatarURL
	}

	if err := s.repo.Update(user); err != nil {
		return nil, err
	}
	return user, nil
}

// BecomeSeller upgrades a normal account so it can submit prompts.
func (s *userService) BecomeSeller(userID string) error {
	user, err := s.repo.GetByID(userID)
	if err != nil {
		return err
	}
	if user.Role == model.RoleAdmin {
		return nil
	}
	user.Role = model.RoleSeller
	return s.repo.Update(user)
}

func (s *userService) DeleteUser(id string) error {
	user, err := s.repo.GetByID(id)
	if err != nil {
		return err
	}
	user.Status = model.StatusDeleted
	if err := s.repo.Update(user); err != nil {
		return err
	}
	return s.repo.Delete(user)
}

func defaultNickname(email string) string {
	if at := strings.Index(email, "@"); at > 0 {
		return email[:at]
	}
	return "user"
}
