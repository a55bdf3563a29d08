package user

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/go-verification-nosql/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// --- mocks ---

type mockUserStore struct{ mock.Mock }

func (m *mockUserStore) Put(ctx context.Context, table string, u *domain.User) error {
	return m.Called(ctx, table, u).Error(0)
}
func (m *mockUserStore) Get(ctx context.Context, table, id string) (*domain.User, error) {
	args := m.Called(ctx, table, id)
	if u, _ := args.Get(0).(*domain.User); u != nil {
		return u, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *mockUserStore) GetByEmail(ctx context.Context, table, email string) (*domain.User, error) {
	args := m.Called(ctx, table, email)
	if u, _ := args.Get(0).(*domain.User); u != nil {
		return u, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *mockUserStore) Update(ctx context.Context, table, id string, updates map[string]interface{}) error {
	return m.Called(ctx, table, id, updates).Error(0)
}

func strPtr(s string) *string { return &s }

const table = "users"

// --- CreateUser ---

func TestCreateUser_EmailProfile(t *testing.T) {
	repo := &mockUserStore{}
	svc := NewService(ServiceDeps{UserRepo: repo, Table: table})
	verified := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)

	repo.On("Put", mock.Anything, table, mock.MatchedBy(func(u *domain.User) bool {
		return u.ID == "jane@example.com" && u.Name == "jane"
	})).Return(nil)

	u, err := svc.CreateUser(context.Background(), domain.Profile{
		Email:         strPtr("jane@example.com"),
		EmailVerified: &verified,
	})

	require.NoError(t, err)
	assert.Equal(t, "jane@example.com", u.ID)
	assert.Equal(t, "jane", u.Name)
	assert.Equal(t, "jane@example.com", *u.Email)
	assert.Equal(t, verified, *u.EmailVerified)
	assert.Nil(t, u.Image)
	repo.AssertExpectations(t)
}

func TestCreateUser_ProviderProfile(t *testing.T) {
	repo := &mockUserStore{}
	svc := NewService(ServiceDeps{UserRepo: repo, Table: table})
	verified := time.Now()

	repo.On("Put", mock.Anything, table, mock.AnythingOfType("*domain.User")).Return(nil)

	u, err := svc.CreateUser(context.Background(), domain.Profile{
		ID:            "gh-42",
		Name:          "Jane Doe",
		Email:         strPtr("jane@example.com"),
		Image:         strPtr("https://img.example.com/jane.png"),
		EmailVerified: &verified,
	})

	require.NoError(t, err)
	assert.Equal(t, "gh-42", u.ID)
	assert.Equal(t, "Jane Doe", u.Name)
	assert.Equal(t, "https://img.example.com/jane.png", *u.Image)
	assert.Nil(t, u.EmailVerified)
}

func TestCreateUser_NoTableSkipsWrite(t *testing.T) {
	repo := &mockUserStore{}
	svc := NewService(ServiceDeps{UserRepo: repo})

	u, err := svc.CreateUser(context.Background(), domain.Profile{Email: strPtr("a@b.c")})

	require.NoError(t, err)
	assert.Equal(t, "a@b.c", u.ID)
	repo.AssertNotCalled(t, "Put", mock.Anything, mock.Anything, mock.Anything)
}

func TestCreateUser_EmptyProfile(t *testing.T) {
	svc := NewService(ServiceDeps{UserRepo: &mockUserStore{}, Table: table})

	_, err := svc.CreateUser(context.Background(), domain.Profile{})
	assert.ErrorIs(t, err, domain.ErrBadRequest)
}

func TestCreateUser_PutError(t *testing.T) {
	repo := &mockUserStore{}
	svc := NewService(ServiceDeps{UserRepo: repo, Table: table})
	boom := errors.New("dynamo down")
	repo.On("Put", mock.Anything, table, mock.Anything).Return(boom)

	_, err := svc.CreateUser(context.Background(), domain.Profile{Email: strPtr("a@b.c")})
	assert.ErrorIs(t, err, boom)
}

// --- lookups ---

func TestGetUser(t *testing.T) {
	repo := &mockUserStore{}
	svc := NewService(ServiceDeps{UserRepo: repo, Table: table})
	want := &domain.User{ID: "u1"}
	repo.On("Get", mock.Anything, table, "u1").Return(want, nil)
	repo.On("Get", mock.Anything, table, "missing").Return(nil, domain.ErrNotFound)

	got, err := svc.GetUser(context.Background(), "u1")
	require.NoError(t, err)
	assert.Equal(t, want, got)

	got, err = svc.GetUser(context.Background(), "missing")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestGetUserByEmail(t *testing.T) {
	repo := &mockUserStore{}
	svc := NewService(ServiceDeps{UserRepo: repo, Table: table})
	boom := errors.New("throttled")
	repo.On("GetByEmail", mock.Anything, table, "a@b.c").Return(nil, boom)

	_, err := svc.GetUserByEmail(context.Background(), "a@b.c")
	assert.ErrorIs(t, err, boom)
}

func TestLookups_NoTable(t *testing.T) {
	repo := &mockUserStore{}
	svc := NewService(ServiceDeps{UserRepo: repo})

	u, err := svc.GetUser(context.Background(), "u1")
	assert.NoError(t, err)
	assert.Nil(t, u)
	u, err = svc.GetUserByEmail(context.Background(), "a@b.c")
	assert.NoError(t, err)
	assert.Nil(t, u)
	repo.AssertExpectations(t)
}

// --- UpdateUser ---

func TestUpdateUser(t *testing.T) {
	repo := &mockUserStore{}
	svc := NewService(ServiceDeps{UserRepo: repo, Table: table})
	repo.On("Update", mock.Anything, table, "u1", map[string]interface{}{"name": "New"}).Return(nil)
	repo.On("Get", mock.Anything, table, "u1").Return(&domain.User{ID: "u1", Name: "New"}, nil)

	u, err := svc.UpdateUser(context.Background(), "u1", domain.UpdateUserRequest{Name: strPtr("New")})

	require.NoError(t, err)
	assert.Equal(t, "New", u.Name)
	repo.AssertExpectations(t)
}

func TestUpdateUser_NothingToUpdate(t *testing.T) {
	svc := NewService(ServiceDeps{UserRepo: &mockUserStore{}, Table: table})

	_, err := svc.UpdateUser(context.Background(), "u1", domain.UpdateUserRequest{})
	assert.ErrorIs(t, err, domain.ErrBadRequest)
}

func TestUpdateUser_NoTable(t *testing.T) {
	svc := NewService(ServiceDeps{UserRepo: &mockUserStore{}})

	_, err := svc.UpdateUser(context.Background(), "u1", domain.UpdateUserRequest{Name: strPtr("x")})
	assert.ErrorIs(t, err, domain.ErrConfiguration)
}
