package service

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/wictors/BackendAssignment-Fitness/internal/entity"
	"github.com/wictors/BackendAssignment-Fitness/internal/repository"
	"github.com/wictors/BackendAssignment-Fitness/internal/utils"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Compared against on unknown email so login cost does not reveal whether
// the address is registered.
const dummyPasswordHash = "$2a$10$CwTycUXWue0Thq9StjUM0uJ8yQbWc1x9uxw2sQ2sXUNx5x9xJ9F2S"

type RegisterInput struct {
	Name     string
	Surname  string
	NickName string
	Email    string
	Age      int
	Role     entity.UserRole
	Password string
}

type LoginInput struct {
	Email     string
	Password  string
	IPAddress *string
}

type LoginResult struct {
	Token     string
	ExpiresIn int64
	User      *entity.User
}

type AuthService struct {
	users        repository.UserRepository
	auditLogs    repository.AuditLogRepository
	passwordHash PasswordHasher
	accessTokens AccessTokenIssuer
	clock        Clock
}

func NewAuthService(
	users repository.UserRepository,
	auditLogs repository.AuditLogRepository,
	passwordHash PasswordHasher,
	accessTokens AccessTokenIssuer,
	clock Clock,
) *AuthService {
	return &AuthService{
		users:        users,
		auditLogs:    auditLogs,
		passwordHash: passwordHash,
		accessTokens: accessTokens,
		clock:        clock,
	}
}

// Register creates a user with a hashed password. Email uniqueness is
// enforced procedurally here on top of the schema index.
func (s *AuthService) Register(ctx context.Context, input RegisterInput) (*entity.User, error) {
	if strings.TrimSpace(input.Email) == "" || strings.TrimSpace(input.Password) == "" {
		return nil, ErrInvalidInput
	}
	if !input.Role.Valid() {
		return nil, ErrInvalidRole
	}

	email := utils.NormalizeEmail(input.Email)
	existing, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrEmailAlreadyRegistered
	}

	hash, err := s.passwordHash.Hash(input.Password)
	if err != nil {
		return nil, err
	}

	user := &entity.User{
		Name:         input.Name,
		Surname:      input.Surname,
		NickName:     input.NickName,
		Email:        email,
		Age:          input.Age,
		Role:         input.Role,
		PasswordHash: hash,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}

	_ = s.logAudit(ctx, &user.ID, nil, entity.UserRegistered, map[string]any{"email": email})
	return user, nil
}

// Login verifies credentials and issues a signed identity token embedding
// id, email and role.
func (s *AuthService) Login(ctx context.Context, input LoginInput) (*LoginResult, error) {
	if strings.TrimSpace(input.Email) == "" || strings.TrimSpace(input.Password) == "" {
		return nil, ErrInvalidInput
	}

	email := utils.NormalizeEmail(input.Email)
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		_ = s.passwordHash.Verify(dummyPasswordHash, input.Password)
		_ = s.logAudit(ctx, nil, input.IPAddress, entity.LoginFailed, map[string]any{"email": email})
		return nil, ErrInvalidCredentials
	}

	if !s.passwordHash.Verify(user.PasswordHash, input.Password) {
		_ = s.logAudit(ctx, &user.ID, input.IPAddress, entity.LoginFailed, map[string]any{"email": email})
		return nil, ErrInvalidCredentials
	}

	token, ttl, err := s.accessTokens.IssueAccessToken(*user)
	if err != nil {
		return nil, err
	}

	_ = s.logAudit(ctx, &user.ID, input.IPAddress, entity.LoginSuccess, nil)
	return &LoginResult{
		Token:     token,
		ExpiresIn: int64(ttl.Seconds()),
		User:      user,
	}, nil
}

func (s *AuthService) logAudit(
	ctx context.Context,
	userID *uuid.UUID,
	ipAddress *string,
	action entity.AuditAction,
	metadata map[string]any,
) error {
	if s.auditLogs == nil {
		return nil
	}
	var payload datatypes.JSON
	if metadata != nil {
		bytes, err := json.Marshal(metadata)
		if err != nil {
			return err
		}
		payload = datatypes.JSON(bytes)
	}
	return s.auditLogs.Log(ctx, &entity.AuditLog{
		UserID:    userID,
		IPAddress: ipAddress,
		Action:    action,
		Metadata:  payload,
		CreatedAt: s.now(),
	})
}

func (s *AuthService) now() time.Time {
	if s.clock == nil {
		return time.Now()
	}
	return s.clock.Now()
}
