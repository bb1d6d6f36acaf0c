package service

import (
	"context"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/facturio/facturio/internal/auth/domain"
	"github.com/facturio/facturio/internal/auth/password"
	"github.com/facturio/facturio/internal/auth/token"
	settingsdomain "github.com/facturio/facturio/internal/settings/domain"
	"github.com/facturio/facturio/pkg/db"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const minPasswordLen = 8

type Params struct {
	fx.In

	DB       *gorm.DB
	Log      *zap.Logger
	GenID    *snowflake.Node
	Repo     domain.Repository
	Issuer   *token.Issuer
	Settings settingsdomain.Service
}

type Service struct {
	db       *gorm.DB
	log      *zap.Logger
	genID    *snowflake.Node
	repo     domain.Repository
	issuer   *token.Issuer
	settings settingsdomain.Service
}

func New(p Params) domain.Service {
	return &Service{
		db:       p.DB,
		log:      p.Log.Named("auth.service"),
		genID:    p.GenID,
		repo:     p.Repo,
		issuer:   p.Issuer,
		settings: p.Settings,
	}
}

func (s *Service) Register(ctx context.Context, req domain.RegisterRequest) (domain.LoginResponse, error) {
	allowed, err := s.settings.RegistrationAllowed(ctx)
	if err != nil {
		return domain.LoginResponse{}, err
	}
	if !allowed {
		return domain.LoginResponse{}, domain.ErrRegistrationClosed
	}

	role := domain.RoleUser
	count, err := s.repo.Count(ctx, s.db)
	if err != nil {
		return domain.LoginResponse{}, err
	}
	// The first account bootstraps the instance.
	if count == 0 {
		role = domain.RoleAdmin
	}

	user, err := s.createUser(ctx, domain.CreateUserRequest{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Role:     role,
	})
	if err != nil {
		return domain.LoginResponse{}, err
	}

	signed, err := s.issuer.Issue(user.ID)
	if err != nil {
		return domain.LoginResponse{}, err
	}
	return domain.LoginResponse{User: user, Token: signed}, nil
}

func (s *Service) Login(ctx context.Context, req domain.LoginRequest) (domain.LoginResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	user, err := s.repo.FindByEmail(ctx, s.db, email)
	if err != nil {
		return domain.LoginResponse{}, err
	}
	if user == nil || !password.Verify(req.Password, user.PasswordHash) {
		return domain.LoginResponse{}, domain.ErrInvalidCredentials
	}
	if !user.Activated {
		return domain.LoginResponse{}, domain.ErrAccountDisabled
	}

	signed, err := s.issuer.Issue(user.ID)
	if err != nil {
		return domain.LoginResponse{}, err
	}
	return domain.LoginResponse{User: *user, Token: signed}, nil
}

func (s *Service) Verify(ctx context.Context, raw string) (domain.User, error) {
	id, err := s.issuer.Verify(raw)
	if err != nil {
		return domain.User{}, domain.ErrInvalidToken
	}

	user, err := s.repo.FindByID(ctx, s.db, id)
	if err != nil {
		return domain.User{}, err
	}
	if user == nil {
		return domain.User{}, domain.ErrInvalidToken
	}
	if !user.Activated {
		return domain.User{}, domain.ErrAccountDisabled
	}
	return *user, nil
}

func (s *Service) ListUsers(ctx context.Context) ([]domain.User, error) {
	items, err := s.repo.List(ctx, s.db)
	if err != nil {
		return nil, err
	}

	users := make([]domain.User, 0, len(items))
	for _, item := range items {
		users = append(users, *item)
	}
	return users, nil
}

func (s *Service) GetUser(ctx context.Context, id string) (domain.User, error) {
	parsed, err := parseID(id)
	if err != nil {
		return domain.User{}, err
	}

	user, err := s.repo.FindByID(ctx, s.db, parsed)
	if err != nil {
		return domain.User{}, err
	}
	if user == nil {
		return domain.User{}, domain.ErrUserNotFound
	}
	return *user, nil
}

func (s *Service) CreateUser(ctx context.Context, req domain.CreateUserRequest) (domain.User, error) {
	if req.Role == "" {
		req.Role = domain.RoleUser
	}
	return s.createUser(ctx, req)
}

func (s *Service) UpdateUser(ctx context.Context, req domain.UpdateUserRequest) (domain.User, error) {
	parsed, err := parseID(req.ID)
	if err != nil {
		return domain.User{}, err
	}

	user, err := s.repo.FindByID(ctx, s.db, parsed)
	if err != nil {
		return domain.User{}, err
	}
	if user == nil {
		return domain.User{}, domain.ErrUserNotFound
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return domain.User{}, domain.ErrInvalidName
		}
		user.Name = name
	}
	if req.Email != nil {
		email := strings.ToLower(strings.TrimSpace(*req.Email))
		if email == "" || !strings.Contains(email, "@") {
			return domain.User{}, domain.ErrInvalidEmail
		}
		user.Email = email
	}
	if req.Role != nil {
		if *req.Role != domain.RoleAdmin && *req.Role != domain.RoleUser {
			return domain.User{}, domain.ErrInvalidRole
		}
		user.Role = *req.Role
	}
	if req.Activated != nil {
		user.Activated = *req.Activated
	}
	user.UpdatedAt = time.Now().UTC()

	if err := s.repo.Update(ctx, s.db, user); err != nil {
		if db.IsDuplicateKeyErr(err) {
			return domain.User{}, domain.ErrUserExists
		}
		return domain.User{}, err
	}
	return *user, nil
}

func (s *Service) DeleteUser(ctx context.Context, id string) error {
	parsed, err := parseID(id)
	if err != nil {
		return err
	}

	removed, err := s.repo.Delete(ctx, s.db, parsed)
	if err != nil {
		return err
	}
	if !removed {
		return domain.ErrUserNotFound
	}
	return nil
}

func (s *Service) createUser(ctx context.Context, req domain.CreateUserRequest) (domain.User, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return domain.User{}, domain.ErrInvalidName
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email == "" || !strings.Contains(email, "@") {
		return domain.User{}, domain.ErrInvalidEmail
	}

	if len(req.Password) < minPasswordLen {
		return domain.User{}, domain.ErrInvalidPassword
	}
	if req.Role != domain.RoleAdmin && req.Role != domain.RoleUser {
		return domain.User{}, domain.ErrInvalidRole
	}

	hash, err := password.Hash(req.Password)
	if err != nil {
		return domain.User{}, err
	}

	now := time.Now().UTC()
	user := domain.User{
		ID:           s.genID.Generate(),
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		Role:         req.Role,
		Activated:    true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.repo.Insert(ctx, s.db, &user); err != nil {
		if db.IsDuplicateKeyErr(err) {
			return domain.User{}, domain.ErrUserExists
		}
		return domain.User{}, err
	}

	s.log.Info("user created", zap.String("user_id", user.ID.String()), zap.String("role", user.Role))
	return user, nil
}

func parseID(value string) (snowflake.ID, error) {
	id, err := snowflake.ParseString(strings.TrimSpace(value))
	if err != nil || id == 0 {
		return 0, domain.ErrInvalidID
	}
	return id, nil
}
