package handler

import (
	"context"

	"github.com/go-verification-nosql/internal/application/verification"
	"github.com/go-verification-nosql/internal/domain"
	"github.com/stretchr/testify/mock"
)

type mockVerificationSvc struct{ mock.Mock }

func (m *mockVerificationSvc) Create(ctx context.Context, identifier, url, token string, provider verification.Provider) (*domain.VerificationRecord, error) {
	args := m.Called(ctx, identifier, url, token, provider)
	if r, _ := args.Get(0).(*domain.VerificationRecord); r != nil {
		return r, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockVerificationSvc) Retrieve(ctx context.Context, identifier, token string) (*domain.VerificationRecord, error) {
	args := m.Called(ctx, identifier, token)
	if r, _ := args.Get(0).(*domain.VerificationRecord); r != nil {
		return r, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockVerificationSvc) Delete(ctx context.Context, identifier string) error {
	return m.Called(ctx, identifier).Error(0)
}

type mockUserSvc struct{ mock.Mock }

func (m *mockUserSvc) CreateUser(ctx context.Context, profile domain.Profile) (*domain.User, error) {
	args := m.Called(ctx, profile)
	if u, _ := args.Get(0).(*domain.User); u != nil {
		return u, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockUserSvc) GetUser(ctx context.Context, id string) (*domain.User, error) {
	args := m.Called(ctx, id)
	if u, _ := args.Get(0).(*domain.User); u != nil {
		return u, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockUserSvc) GetUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if u, _ := args.Get(0).(*domain.User); u != nil {
		return u, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockUserSvc) UpdateUser(ctx context.Context, id string, req domain.UpdateUserRequest) (*domain.User, error) {
	args := m.Called(ctx, id, req)
	if u, _ := args.Get(0).(*domain.User); u != nil {
		return u, args.Error(1)
	}
	return nil, args.Error(1)
}
