package usecase

import (
	"context"
	"time"

	"storage-marketplace/internal/data/entity"
	"storage-marketplace/internal/data/repository"
	"storage-marketplace/internal/dto/request"
	"storage-marketplace/internal/dto/response"
	"storage-marketplace/pkg/database"
	"storage-marketplace/pkg/fault"
	"storage-marketplace/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type AuthService interface {
	Register(ctx context.Context, req *request.RegisterRequest) (*response.AuthResponse, error)
	Login(ctx context.Context, req *request.LoginRequest) (*response.AuthResponse, error)
	Logout(ctx context.Context, token string) error
}

type authService struct {
	db     database.PgxIface
	repo   *repository.Repository
	config *utils.Config
	log    *zap.Logger
}

func NewAuthService(
	db database.PgxIface,
	repo *repository.Repository,
	config *utils.Config,
	log *zap.Logger,
) AuthService {
	return &authService{
		db:     db,
		repo:   repo,
		config: config,
		log:    log.With(zap.String("service", "auth")),
	}
}

// Register creates the address and the user row in one transaction: either
// both commit or neither exists afterwards.
func (s *authService) Register(ctx context.Context, req *request.RegisterRequest) (*response.AuthResponse, error) {
	// 1. Validate input
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Register validation failed", zap.Any("errors", errs))
		return nil, fault.Newf(fault.Validation, "Validation failed: %s", utils.FormatValidationErrors(errs))
	}

	// 2. Check email already registered
	existingUser, err := s.repo.User.FindByEmail(ctx, req.Email)
	if err != nil {
		return nil, fault.Wrap(fault.Storage, "Failed to check email", err)
	}
	if existingUser != nil {
		return nil, fault.New(fault.Conflict, "Email already registered")
	}

	// 3. Check username already taken
	existingUser, err = s.repo.User.FindByUsername(ctx, req.Username)
	if err != nil {
		return nil, fault.Wrap(fault.Storage, "Failed to check username", err)
	}
	if existingUser != nil {
		return nil, fault.New(fault.Conflict, "Username already taken")
	}

	// 4. Hash password
	hashedPassword, err := utils.HashPassword(req.Password, s.config.Auth.BcryptCost)
	if err != nil {
		s.log.Error("Failed to hash password", zap.Error(err))
		return nil, fault.Wrap(fault.Storage, "Failed to process password", err)
	}

	// 5. Resolve address and insert user atomically
	tx, err := s.db.Begin(ctx)
	if err != nil {
		return nil, fault.Wrap(fault.Storage, "Failed to create account", err)
	}
	defer tx.Rollback(ctx)

	street := utils.NormalizeStreet(req.StreetName, req.HouseNumber)
	addressID, err := s.repo.Address.GetOrCreate(ctx, tx, street, req.City, req.PostalCode)
	if err != nil {
		return nil, fault.Wrap(fault.Storage, "Failed to create account", err)
	}

	now := time.Now()
	user := &entity.User{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: hashedPassword,
		Role:         entity.UserRole(req.Role),
		AddressID:    addressID,
		IsVerified:   false,
	}

	if err := s.repo.User.Create(ctx, tx, user); err != nil {
		return nil, fault.Wrap(fault.Storage, "Failed to create account", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fault.Wrap(fault.Storage, "Failed to create account", err)
	}

	// 6. Auto login after register
	session, err := s.createSession(ctx, user.ID)
	if err != nil {
		s.log.Warn("Failed to create session after register",
			zap.Error(err), zap.String("user_id", user.ID.String()))
		// Continue without session
	}

	s.log.Info("User registered",
		zap.String("user_id", user.ID.String()),
		zap.String("email", user.Email),
		zap.String("role", req.Role))

	resp := response.AuthToResponse(user, session)
	return &resp, nil
}

// Login accepts a username or an email as identifier. The shape of the
// identifier decides the lookup; email-shaped strings go to the email
// index, everything else (including malformed email-ish input) to the
// username index. Every failure surfaces the same generic message, though
// the work done per path is not constant-time.
func (s *authService) Login(ctx context.Context, req *request.LoginRequest) (*response.AuthResponse, error) {
	// 1. Validate
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Login validation failed", zap.Any("errors", errs))
		return nil, fault.Newf(fault.Validation, "Validation failed: %s", utils.FormatValidationErrors(errs))
	}

	// 2. Find user by the identifier's shape
	var user *entity.User
	var err error

	if utils.LooksLikeEmail(req.Identifier) {
		user, err = s.repo.User.FindByEmail(ctx, req.Identifier)
	} else {
		user, err = s.repo.User.FindByUsername(ctx, req.Identifier)
	}
	if err != nil {
		return nil, fault.Wrap(fault.Storage, "Failed to find user", err)
	}

	// 3. User not found
	if user == nil {
		s.log.Warn("User not found for login", zap.String("identifier", req.Identifier))
		return nil, fault.New(fault.InvalidCredentials, "Invalid credentials")
	}

	// 4. Check password
	if !utils.CheckPasswordHash(req.Password, user.PasswordHash) {
		s.log.Warn("Invalid password", zap.String("user_id", user.ID.String()))
		return nil, fault.New(fault.InvalidCredentials, "Invalid credentials")
	}

	// 5. Record last login
	now := time.Now()
	if err := s.repo.User.UpdateLastLogin(ctx, user.ID, now); err != nil {
		s.log.Warn("Failed to update last login",
			zap.Error(err), zap.String("user_id", user.ID.String()))
		// Login still succeeds
	} else {
		user.LastLoginAt = &now
	}

	// 6. Create session
	session, err := s.createSession(ctx, user.ID)
	if err != nil {
		return nil, fault.Wrap(fault.Storage, "Failed to create session", err)
	}

	s.log.Info("User logged in",
		zap.String("user_id", user.ID.String()),
		zap.String("username", user.Username))

	resp := response.AuthToResponse(user, session)
	return &resp, nil
}

func (s *authService) Logout(ctx context.Context, token string) error {
	// 1. Parse token
	tokenUUID, err := uuid.Parse(token)
	if err != nil {
		s.log.Warn("Invalid token format", zap.Error(err))
		return fault.New(fault.Validation, "Invalid token format")
	}

	// 2. Revoke session
	if err := s.repo.Session.Revoke(ctx, tokenUUID.String()); err != nil {
		return fault.Wrap(fault.Storage, "Failed to logout", err)
	}

	s.log.Info("User logged out")
	return nil
}

func (s *authService) createSession(ctx context.Context, userID uuid.UUID) (*entity.Session, error) {
	ttl := time.Duration(s.config.Auth.SessionTTLHours) * time.Hour

	session := &entity.Session{
		BaseSimple: entity.BaseSimple{
			ID:        uuid.New(),
			CreatedAt: time.Now(),
		},
		UserID:    userID,
		Token:     utils.GenerateSessionToken(),
		ExpiresAt: time.Now().Add(ttl),
	}

	if err := s.repo.Session.Create(ctx, session); err != nil {
		return nil, err
	}

	return session, nil
}
