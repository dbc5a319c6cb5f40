package service

import (
	"errors"
	"time"

	"github.com/google/uuid"

	"go-uniform-pos/internal/model"
	"go-uniform-pos/internal/repository"
	"go-uniform-pos/internal/ws"
	"go-uniform-pos/pkg/jwt"
	"go-uniform-pos/pkg/validator"
)

var (
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrUserNotFound       = errors.New("user not found")
	ErrUserInactive       = errors.New("user account is inactive")
	ErrWrongPassword      = errors.New("current password is incorrect")
	ErrSessionTimeout     = errors.New("session expired due to inactivity")
)

// sessionInactivityLimit bounds how long a token stays valid without a
// heartbeat.
const sessionInactivityLimit = 5 * time.Minute

type AuthService interface {
	Login(username, password string) (*LoginResponse, error)
	Register(req *RegisterRequest) (*LoginResponse, error)
	ResetPassword(username, oldPassword, newPassword string) error
	ValidateToken(tokenString string) (*TokenValidationResponse, error)
	Heartbeat(userID uuid.UUID) error
}

type LoginResponse struct {
	Token      string             `json:"token"`
	User       model.UserResponse `json:"user"`
	Role       *model.Role        `json:"role"`
	Privileges []string           `json:"privileges"`
}

type TokenValidationResponse struct {
	User       model.UserResponse `json:"user"`
	Role       *model.Role        `json:"role"`
	Privileges []string           `json:"privileges"`
}

// RegisterRequest creates a self-service account. Role defaults to KASIR
// when left empty; the code must be one of the seeded roles.
type RegisterRequest struct {
	Username string `json:"username" validate:"required,min=3"`
	Password string `json:"password" validate:"required,min=6"`
	Name     string `json:"name" validate:"required"`
	RoleCode string `json:"role_code" validate:"omitempty,oneof=ADMIN GUDANG KASIR"`
}

type authService struct {
	userRepo repository.UserRepository
	roleRepo repository.RoleRepository
	wsHub    *ws.Hub
}

func NewAuthService(userRepo repository.UserRepository, roleRepo repository.RoleRepository, hub *ws.Hub) AuthService {
	return &authService{
		userRepo: userRepo,
		roleRepo: roleRepo,
		wsHub:    hub,
	}
}

func (s *authService) Login(username, password string) (*LoginResponse, error) {
	// 1. Find user by username
	user, err := s.userRepo.FindByUsername(username)
	if err != nil {
		return nil, ErrInvalidCredentials
	}

	// 2. Check if user is active
	if !user.IsActive {
		return nil, ErrUserInactive
	}

	// 3. Verify password
	if !user.CheckPassword(password) {
		return nil, ErrInvalidCredentials
	}

	// 4. Get role code
	roleCode := ""
	if user.Role != nil {
		roleCode = user.Role.Code
	}

	// 5. Single session: rotate the token version and refresh presence
	newTokenVersion := uuid.New().String()
	now := time.Now()
	user.TokenVersion = newTokenVersion
	user.LastSeenAt = &now

	if err := s.userRepo.Update(user); err != nil {
		return nil, errors.New("failed to update session")
	}

	// 6. Generate JWT token carrying the token version
	token, err := jwt.GenerateToken(user.ID, user.Username, user.Name, roleCode, user.GetPrivilegeCodes(), newTokenVersion)
	if err != nil {
		return nil, errors.New("failed to generate token")
	}

	return &LoginResponse{
		Token:      token,
		User:       user.ToResponse(),
		Role:       user.Role,
		Privileges: user.GetPrivilegeCodes(),
	}, nil
}

// Register creates the account and logs it straight in.
func (s *authService) Register(req *RegisterRequest) (*LoginResponse, error) {
	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		firstErr := errs[0]
		return nil, errors.New("validation failed on field " + firstErr.FailedField)
	}

	existing, _ := s.userRepo.FindByUsername(req.Username)
	if existing != nil {
		return nil, ErrUsernameExists
	}

	roleCode := req.RoleCode
	if roleCode == "" {
		roleCode = model.RoleKasir
	}
	role, err := s.roleRepo.FindByCode(roleCode)
	if err != nil {
		return nil, errors.New("role not found")
	}

	user := &model.User{
		Username:   req.Username,
		Name:       req.Name,
		RoleID:     &role.ID,
		Role:       role,
		IsActive:   true,
		Privileges: role.Privileges,
	}
	user.CreatedBy = "self-register"
	user.UpdatedBy = "self-register"

	if err := user.SetPassword(req.Password); err != nil {
		return nil, errors.New("failed to hash password")
	}

	if err := s.userRepo.Create(user); err != nil {
		return nil, err
	}

	return s.Login(req.Username, req.Password)
}

func (s *authService) ResetPassword(username, oldPassword, newPassword string) error {
	// 1. Find user by username
	user, err := s.userRepo.FindByUsername(username)
	if err != nil {
		return ErrUserNotFound
	}

	// 2. Verify old password
	if !user.CheckPassword(oldPassword) {
		return ErrWrongPassword
	}

	// 3. Set new password
	if err := user.SetPassword(newPassword); err != nil {
		return errors.New("failed to hash new password")
	}

	// 4. Update in database
	return s.userRepo.Update(user)
}

func (s *authService) ValidateToken(tokenString string) (*TokenValidationResponse, error) {
	// 1. Validate JWT token
	claims, err := jwt.ValidateToken(tokenString)
	if err != nil {
		return nil, err
	}

	// 2. Find user by ID from token claims
	user, err := s.userRepo.FindByID(claims.UserID)
	if err != nil {
		return nil, ErrUserNotFound
	}

	// 3. Check if user is still active
	if !user.IsActive {
		return nil, ErrUserInactive
	}

	// 4. Check against DB for strict session (TokenVersion)
	if user.TokenVersion != claims.TokenVersion {
		return nil, errors.New("session expired (logged in on another device)")
	}

	// 5. Check inactivity. A nil LastSeenAt means the session never sent a
	// heartbeat, force a fresh login in that case too.
	if user.LastSeenAt == nil || time.Since(*user.LastSeenAt) > sessionInactivityLimit {
		return nil, ErrSessionTimeout
	}

	return &TokenValidationResponse{
		User:       user.ToResponse(),
		Role:       user.Role,
		Privileges: user.GetPrivilegeCodes(),
	}, nil
}

func (s *authService) Heartbeat(userID uuid.UUID) error {
	// 1. Update presence timestamp
	if err := s.userRepo.UpdateLastSeen(userID); err != nil {
		return err
	}

	// 2. Broadcast "online" so connected clients see fresh presence
	s.wsHub.BroadcastEvent(ws.Event{
		Type: "user_status_update",
		Data: map[string]interface{}{
			"user_id":      userID.String(),
			"status":       "online",
			"last_seen_at": time.Now(),
		},
	})

	return nil
}
