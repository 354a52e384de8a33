package service

import (
	"context"

	"github.com/stretchr/testify/mock"

	"craftshop-admin/internal/model"
)

// MockStore implements every store interface for tests.
type MockStore struct {
	mock.Mock
}

func (m *MockStore) ClientByClientID(ctx context.Context, clientID string) (model.Client, error) {
	args := m.Called(ctx, clientID)
	return args.Get(0).(model.Client), args.Error(1)
}

func (m *MockStore) CreateClient(ctx context.Context, client model.Client) (model.Client, error) {
	args := m.Called(ctx, client)
	return args.Get(0).(model.Client), args.Error(1)
}

func (m *MockStore) UserByID(ctx context.Context, id int64) (model.User, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(model.User), args.Error(1)
}

func (m *MockStore) UserByEmail(ctx context.Context, email string) (model.User, error) {
	args := m.Called(ctx, email)
	return args.Get(0).(model.User), args.Error(1)
}

func (m *MockStore) ListUsers(ctx context.Context, page int, limit int) ([]model.User, int, error) {
	args := m.Called(ctx, page, limit)
	var users []model.User
	if args.Get(0) != nil {
		users = args.Get(0).([]model.User)
	}
	return users, args.Int(1), args.Error(2)
}

func (m *MockStore) UpdateUser(ctx context.Context, user model.User) (model.User, error) {
	args := m.Called(ctx, user)
	return args.Get(0).(model.User), args.Error(1)
}

func (m *MockStore) DeleteUser(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockStore) CreateUserWithCredential(ctx context.Context, user model.User, cred model.Credential) (model.User, model.Credential, error) {
	args := m.Called(ctx, user, cred)
	return args.Get(0).(model.User), args.Get(1).(model.Credential), args.Error(2)
}

func (m *MockStore) CredentialByUsername(ctx context.Context, username string) (model.Credential, error) {
	args := m.Called(ctx, username)
	return args.Get(0).(model.Credential), args.Error(1)
}

func (m *MockStore) CredentialByUserID(ctx context.Context, userID int64) (model.Credential, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(model.Credential), args.Error(1)
}

func (m *MockStore) UpdateCredentialPassword(ctx context.Context, credentialID string, hashed string) error {
	args := m.Called(ctx, credentialID, hashed)
	return args.Error(0)
}

func (m *MockStore) CreateToken(ctx context.Context, token model.UserToken) (model.UserToken, error) {
	args := m.Called(ctx, token)
	return args.Get(0).(model.UserToken), args.Error(1)
}

func (m *MockStore) TokenByAccess(ctx context.Context, accessToken string) (model.AuthorizedToken, error) {
	args := m.Called(ctx, accessToken)
	return args.Get(0).(model.AuthorizedToken), args.Error(1)
}

func (m *MockStore) TokenByRefresh(ctx context.Context, refreshToken string) (model.AuthorizedToken, error) {
	args := m.Called(ctx, refreshToken)
	return args.Get(0).(model.AuthorizedToken), args.Error(1)
}

func (m *MockStore) DeleteToken(ctx context.Context, accessToken string, userID int64) error {
	args := m.Called(ctx, accessToken, userID)
	return args.Error(0)
}
