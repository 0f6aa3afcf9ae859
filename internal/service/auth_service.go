package service

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/qs3c/gym_go_server/config"
	"github.com/qs3c/gym_go_server/internal/model"
	"github.com/qs3c/gym_go_server/internal/model/dto"
	"github.com/qs3c/gym_go_server/internal/pkg/jwt"
	"github.com/qs3c/gym_go_server/internal/repository"
)

var (
	ErrUsernameExists     = errors.New("用户名已被使用")
	ErrInvalidCredentials = errors.New("用户名或密码错误")
	ErrStaffNotFound      = errors.New("员工不存在")
)

type AuthService struct {
	staffRepo *repository.StaffRepository
	cfg       *config.Config
}

func NewAuthService(staffRepo *repository.StaffRepository, cfg *config.Config) *AuthService {
	return &AuthService{staffRepo: staffRepo, cfg: cfg}
}

// Register 员工注册
func (s *AuthService) Register(req *dto.RegisterRequest) (*dto.RegisterResponse, error) {
	exists, err := s.staffRepo.ExistsByUsername(req.Username)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrUsernameExists
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	role := req.Role
	if role == "" {
		role = "recep"
	}
	staff := &model.Staff{
		Username:     req.Username,
		PasswordHash: string(hashedPassword),
		FullName:     req.FullName,
		Role:         role,
	}
	if err := s.staffRepo.Create(staff); err != nil {
		return nil, err
	}

	return &dto.RegisterResponse{StaffID: staff.ID}, nil
}

// Login 员工登录，校验通过后签发 JWT
func (s *AuthService) Login(req *dto.LoginRequest) (*dto.LoginResponse, error) {
	staff, err := s.staffRepo.GetByUsername(req.Username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(staff.PasswordHash), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	token, err := jwt.GenerateToken(staff.ID, s.cfg.JWT.Secret, s.cfg.JWT.ExpireHours)
	if err != nil {
		return nil, err
	}

	return &dto.LoginResponse{
		Token: token,
		Staff: buildStaffInfo(staff),
	}, nil
}

// GetStaff 获取员工信息（用于 /auth/me）
func (s *AuthService) GetStaff(id int64) (*dto.StaffInfo, error) {
	staff, err := s.staffRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrStaffNotFound
		}
		return nil, err
	}
	return buildStaffInfo(staff), nil
}

func buildStaffInfo(staff *model.Staff) *dto.StaffInfo {
	return &dto.StaffInfo{
		ID:       staff.ID,
		Username: staff.Username,
		FullName: staff.FullName,
		Role:     staff.Role,
	}
}
