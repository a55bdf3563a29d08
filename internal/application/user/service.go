package user

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/go-verification-nosql/internal/domain"
	"github.com/go-verification-nosql/internal/pkg/logger"
)

// DynamoDB attribute names used in partial update maps.
const (
	fieldName  = "name"
	fieldImage = "image"
)

type Service interface {
	CreateUser(ctx context.Context, profile domain.Profile) (*domain.User, error)
	// GetUser and GetUserByEmail return (nil, nil) when no user matches.
	GetUser(ctx context.Context, id string) (*domain.User, error)
	GetUserByEmail(ctx context.Context, email string) (*domain.User, error)
	UpdateUser(ctx context.Context, id string, req domain.UpdateUserRequest) (*domain.User, error)
}

type userStore interface {
	Put(ctx context.Context, table string, u *domain.User) error
	Get(ctx context.Context, table, id string) (*domain.User, error)
	GetByEmail(ctx context.Context, table, email string) (*domain.User, error)
	Update(ctx context.Context, table, id string, updates map[string]interface{}) error
}

// ServiceDeps wires the user service. An empty Table disables writes:
// CreateUser returns the normalised user without persisting it.
type ServiceDeps struct {
	UserRepo userStore
	Table    string
	Logger   *slog.Logger
}

type service struct {
	repo  userStore
	table string
	log   *slog.Logger
}

func NewService(deps ServiceDeps) Service {
	s := &service{repo: deps.UserRepo, table: deps.Table, log: deps.Logger}
	if s.log == nil {
		s.log = logger.Discard()
	}
	return s
}

func (s *service) CreateUser(ctx context.Context, profile domain.Profile) (*domain.User, error) {
	const op = "createUser"
	u, err := newUser(profile)
	if err != nil {
		return nil, err
	}
	s.log.Debug(op, "id", u.ID)

	if s.table == "" {
		s.log.Debug(op, "id", u.ID, "reason", "users table not configured, skipping write")
		return u, nil
	}
	if err := s.repo.Put(ctx, s.table, u); err != nil {
		s.log.Error(op, "id", u.ID, "err", err)
		return nil, err
	}
	return u, nil
}

// newUser maps an email-only profile onto a user keyed by the address, with
// the local part as display name. Provider profiles keep their own id.
func newUser(p domain.Profile) (*domain.User, error) {
	if p.IsEmailProfile() {
		email := *p.Email
		name, _, _ := strings.Cut(email, "@")
		return &domain.User{
			ID:            email,
			Email:         p.Email,
			EmailVerified: p.EmailVerified,
			Name:          name,
		}, nil
	}
	if p.ID == "" {
		return nil, fmt.Errorf("profile has neither id nor email: %w", domain.ErrBadRequest)
	}
	return &domain.User{
		ID:    p.ID,
		Email: p.Email,
		Name:  p.Name,
		Image: p.Image,
	}, nil
}

func (s *service) GetUser(ctx context.Context, id string) (*domain.User, error) {
	if s.table == "" {
		return nil, nil
	}
	return s.absentAsNil(s.repo.Get(ctx, s.table, id))
}

func (s *service) GetUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	if s.table == "" {
		return nil, nil
	}
	return s.absentAsNil(s.repo.GetByEmail(ctx, s.table, email))
}

func (s *service) absentAsNil(u *domain.User, err error) (*domain.User, error) {
	if errors.Is(err, domain.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		s.log.Error("getUser", "err", err)
		return nil, err
	}
	return u, nil
}

func (s *service) UpdateUser(ctx context.Context, id string, req domain.UpdateUserRequest) (*domain.User, error) {
	if s.table == "" {
		return nil, fmt.Errorf("users table name was not provided: %w", domain.ErrConfiguration)
	}
	updates := map[string]interface{}{}
	if req.Name != nil {
		updates[fieldName] = *req.Name
	}
	if req.Image != nil {
		updates[fieldImage] = *req.Image
	}
	if len(updates) == 0 {
		return nil, fmt.Errorf("no fields to update: %w", domain.ErrBadRequest)
	}
	if err := s.repo.Update(ctx, s.table, id, updates); err != nil {
		return nil, err
	}
	return s.repo.Get(ctx, s.table, id)
}
