package auth

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/litera-id/litera-backend/internal/users"
	"github.com/litera-id/litera-backend/pkg/authtoken"
	"github.com/litera-id/litera-backend/pkg/config"
	"github.com/litera-id/litera-backend/pkg/db/models"
	pkgerrors "github.com/litera-id/litera-backend/pkg/errors"
	"github.com/litera-id/litera-backend/pkg/security"
	"github.com/litera-id/litera-backend/pkg/storage"
)

const (
	invalidCredentialsMessage = "invalid credentials"
	notVerifiedMessage        = "Account not verified"
)

// Service defines the behavior needed by the auth controller.
type Service interface {
	Register(ctx context.Context, req RegisterRequest) (*RegisterResponse, error)
	Login(ctx context.Context, req LoginRequest) (*LoginResponse, error)
	Profile(ctx context.Context, userID uuid.UUID) (*users.UserDTO, error)
	UpdateAvatar(ctx context.Context, userID uuid.UUID, upload AvatarUpload) (*users.UserDTO, error)
}

type userRepository interface {
	Create(ctx context.Context, dto users.CreateUserDTO) (*models.User, error)
	FindByUsername(ctx context.Context, username string) (*models.User, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	UpdateImage(ctx context.Context, id uuid.UUID, image *string) error
}

// AvatarUpload carries an uploaded profile image stream.
type AvatarUpload struct {
	ContentType string
	Body        io.Reader
	Size        int64
}

type service struct {
	users       userRepository
	store       storage.Store
	jwtCfg      config.JWTConfig
	passwordCfg config.PasswordConfig
}

// ServiceParams bundles the dependencies required to build an auth service.
type ServiceParams struct {
	UserRepo       userRepository
	Store          storage.Store
	JWTConfig      config.JWTConfig
	PasswordConfig config.PasswordConfig
}

// NewService constructs an auth service with the provided dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.UserRepo == nil {
		return nil, fmt.Errorf("user repository is required")
	}
	return &service{
		users:       params.UserRepo,
		store:       params.Store,
		jwtCfg:      params.JWTConfig,
		passwordCfg: params.PasswordConfig,
	}, nil
}

func (s *service) Register(ctx context.Context, req RegisterRequest) (*RegisterResponse, error) {
	username := strings.ToLower(strings.TrimSpace(req.Username))
	if username == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "username is required")
	}
	if req.Password != req.ConfirmPassword {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "passwords do not match")
	}

	if _, err := s.users.FindByUsername(ctx, username); err == nil {
		return nil, pkgerrors.New(pkgerrors.CodeConflict, "username already registered")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "check username")
	}

	passwordHash, err := security.HashPassword(req.Password, s.passwordCfg)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "hash password")
	}

	user, err := s.users.Create(ctx, users.CreateUserDTO{
		Username:     username,
		PasswordHash: passwordHash,
		Name:         strings.TrimSpace(req.Name),
	})
	if err != nil {
		if pkgerrors.IsUniqueViolation(err) {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "username already registered")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create user")
	}

	return &RegisterResponse{User: users.FromModel(user)}, nil
}

func (s *service) Login(ctx context.Context, req LoginRequest) (*LoginResponse, error) {
	user, err := s.authenticate(ctx, req.Username, req.Password)
	if err != nil {
		return nil, err
	}
	if user.VerifiedAt == nil {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, notVerifiedMessage)
	}

	accessToken, err := authtoken.MintAccessToken(s.jwtCfg, time.Now(), authtoken.AccessTokenPayload{
		UserID:   user.ID,
		Role:     user.Role,
		Name:     user.Name,
		Username: user.Username,
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "mint jwt")
	}

	return &LoginResponse{
		Token: TokenPair{Access: accessToken},
		User:  users.FromModel(user),
	}, nil
}

func (s *service) Profile(ctx context.Context, userID uuid.UUID) (*users.UserDTO, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "user not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load user")
	}
	return users.FromModel(user), nil
}

func (s *service) UpdateAvatar(ctx context.Context, userID uuid.UUID, upload AvatarUpload) (*users.UserDTO, error) {
	if s.store == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "storage unavailable")
	}

	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "user not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load user")
	}

	key := fmt.Sprintf("avatars/%s-%s%s", user.ID, uuid.NewString(), avatarExtension(upload.ContentType))
	if err := s.store.Put(ctx, key, upload.ContentType, upload.Body, upload.Size); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "storage: put avatar")
	}
	if err := s.users.UpdateImage(ctx, userID, &key); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: update image")
	}

	user.Image = &key
	return users.FromModel(user), nil
}

func avatarExtension(contentType string) string {
	switch contentType {
	case "image/png":
		return ".png"
	case "image/gif":
		return ".gif"
	case "image/webp":
		return ".webp"
	}
	return ".jpg"
}

func (s *service) authenticate(ctx context.Context, username, password string) (*models.User, error) {
	input := strings.ToLower(strings.TrimSpace(username))
	if input == "" || password == "" {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, invalidCredentialsMessage)
	}

	user, err := s.users.FindByUsername(ctx, input)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, invalidCredentialsMessage)
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load user")
	}

	ok, err := security.VerifyPassword(password, user.PasswordHash)
	if err != nil || !ok {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, invalidCredentialsMessage)
	}
	return user, nil
}
