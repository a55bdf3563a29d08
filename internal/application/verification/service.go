package verification

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/go-verification-nosql/internal/domain"
	"github.com/go-verification-nosql/internal/pkg/logger"
)

// ExpiresLayout is the stored text form of a record's expiry: ISO-8601 in UTC
// with millisecond precision, e.g. 2000-12-30T00:13:00.000Z.
const ExpiresLayout = "2006-01-02T15:04:05.000Z07:00"

// MaxTokenBytes is the longest raw token bcrypt accepts.
const MaxTokenBytes = 72

// MaxAgeLimit is the largest token lifetime in seconds that fits a time.Duration.
const MaxAgeLimit = math.MaxInt64 / int64(time.Second)

// Repository is the persistence port for verification requests.
// Get returns an error wrapping domain.ErrNotFound when no item exists.
type Repository interface {
	Get(ctx context.Context, table, identifier string) (*domain.VerificationRequest, error)
	Put(ctx context.Context, table string, r *domain.VerificationRequest) error
	Delete(ctx context.Context, table, identifier string) error
}

// Hasher turns a raw token into a salted one-way hash and checks a raw token
// against a stored hash. Compare must not fail on mismatched input.
type Hasher interface {
	Hash(ctx context.Context, raw string) (string, error)
	Compare(raw, hash string) bool
}

// DeliverFunc performs the out-of-band delivery of a verification link.
// An error aborts the enclosing Create.
type DeliverFunc func(ctx context.Context, p domain.VerificationParams) error

// Provider describes the sign-in provider a token is issued for.
// MaxAge is the token lifetime in seconds; zero or less means the default.
type Provider struct {
	ID      string
	MaxAge  int
	Deliver DeliverFunc
}

type Service interface {
	Create(ctx context.Context, identifier, url, token string, provider Provider) (*domain.VerificationRecord, error)
	// Retrieve returns (nil, nil) when there is no usable record for identifier.
	Retrieve(ctx context.Context, identifier, token string) (*domain.VerificationRecord, error)
	Delete(ctx context.Context, identifier string) error
}

// ServiceDeps groups the collaborators and settings of the verification service.
// Table is the verification-requests table; empty means unconfigured and every
// operation fails with domain.ErrConfiguration before touching Repo.
type ServiceDeps struct {
	Repo    Repository
	Hasher  Hasher
	Table   string
	BaseURL string
	Now     func() time.Time
	Logger  *slog.Logger
}

type service struct {
	repo    Repository
	hasher  Hasher
	table   string
	baseURL string
	now     func() time.Time
	log     *slog.Logger
}

func NewService(deps ServiceDeps) Service {
	s := &service{
		repo:    deps.Repo,
		hasher:  deps.Hasher,
		table:   deps.Table,
		baseURL: deps.BaseURL,
		now:     deps.Now,
		log:     deps.Logger,
	}
	if s.now == nil {
		s.now = time.Now
	}
	if s.log == nil {
		s.log = logger.Discard()
	}
	return s
}

var errTableNotProvided = fmt.Errorf("verification requests table name was not provided: %w", domain.ErrConfiguration)

func (s *service) Create(ctx context.Context, identifier, url, token string, provider Provider) (*domain.VerificationRecord, error) {
	const op = "createVerificationRequest"
	s.log.Debug(op, "email", identifier)

	if s.table == "" {
		s.log.Error(op, "email", identifier, "err", errTableNotProvided)
		return nil, errTableNotProvided
	}
	if provider.Deliver == nil {
		err := fmt.Errorf("provider %q has no delivery callback: %w", provider.ID, domain.ErrConfiguration)
		s.log.Error(op, "email", identifier, "err", err)
		return nil, err
	}
	if identifier == "" || token == "" {
		err := fmt.Errorf("identifier and token are required: %w", domain.ErrBadRequest)
		s.log.Warn(op, "email", identifier, "err", err)
		return nil, err
	}
	if len(token) > MaxTokenBytes {
		err := fmt.Errorf("token is longer than %d bytes: %w", MaxTokenBytes, domain.ErrBadRequest)
		s.log.Warn(op, "email", identifier, "err", err)
		return nil, err
	}

	maxAge := provider.MaxAge
	if maxAge <= 0 {
		maxAge = domain.DefaultVerificationMaxAge
	}
	if int64(maxAge) > MaxAgeLimit {
		err := fmt.Errorf("max age %ds exceeds %ds: %w", maxAge, MaxAgeLimit, domain.ErrBadRequest)
		s.log.Warn(op, "email", identifier, "err", err)
		return nil, err
	}
	expires := s.now().Add(time.Duration(maxAge) * time.Second).UTC()

	hashed, err := s.hasher.Hash(ctx, token)
	if err != nil {
		s.log.Error(op, "email", identifier, "stage", "hash", "err", err)
		return nil, err
	}

	if err := s.repo.Put(ctx, s.table, &domain.VerificationRequest{
		Identifier:  identifier,
		HashedToken: hashed,
		Expires:     expires.Format(ExpiresLayout),
	}); err != nil {
		s.log.Error(op, "email", identifier, "stage", "put", "err", err)
		return nil, err
	}

	// The record stays in place if delivery fails; a new request overwrites it.
	if err := provider.Deliver(ctx, domain.VerificationParams{
		Identifier: identifier,
		URL:        url,
		Token:      token,
		BaseURL:    s.baseURL,
		ProviderID: provider.ID,
		Expires:    expires,
	}); err != nil {
		s.log.Error(op, "email", identifier, "stage", "deliver", "err", err)
		return nil, err
	}

	return &domain.VerificationRecord{Identifier: identifier, Token: token, Expires: expires}, nil
}

func (s *service) Retrieve(ctx context.Context, identifier, token string) (*domain.VerificationRecord, error) {
	const op = "getVerificationRequest"
	s.log.Debug(op, "email", identifier)

	if s.table == "" {
		s.log.Error(op, "email", identifier, "err", errTableNotProvided)
		return nil, errTableNotProvided
	}

	req, err := s.repo.Get(ctx, s.table, identifier)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			s.log.Debug(op, "email", identifier, "reason", "no verification request stored")
			return nil, nil
		}
		s.log.Error(op, "email", identifier, "err", err)
		return nil, err
	}
	if req.Expires == "" || req.HashedToken == "" {
		s.log.Debug(op, "email", identifier, "reason", "unable to retrieve required values from the database")
		return nil, nil
	}

	expires, err := time.Parse(time.RFC3339, req.Expires)
	if err != nil {
		s.log.Warn(op, "email", identifier, "err", domain.ErrTokenExpiredFormat)
		return nil, fmt.Errorf("expires %q: %w", req.Expires, domain.ErrTokenExpiredFormat)
	}

	// Expiry is checked before the signature so a stale but genuine token
	// is reported as expired.
	if expires.Before(s.now()) {
		s.log.Warn(op, "email", identifier, "err", domain.ErrTokenExpired)
		return nil, domain.ErrTokenExpired
	}
	if !s.hasher.Compare(token, req.HashedToken) {
		s.log.Warn(op, "email", identifier, "err", domain.ErrTokenInvalid)
		return nil, domain.ErrTokenInvalid
	}

	return &domain.VerificationRecord{Identifier: identifier, Token: token, Expires: expires.UTC()}, nil
}

func (s *service) Delete(ctx context.Context, identifier string) error {
	const op = "deleteVerificationRequest"
	s.log.Debug(op, "email", identifier)

	if s.table == "" {
		s.log.Error(op, "email", identifier, "err", errTableNotProvided)
		return errTableNotProvided
	}
	if err := s.repo.Delete(ctx, s.table, identifier); err != nil {
		s.log.Error(op, "email", identifier, "err", err)
		return err
	}
	return nil
}
