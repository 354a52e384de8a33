package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"craftshop-admin/internal/model"
)

// UserService covers operator-side user administration. Self-service on the
// calling account lives in AccountService.
type UserService struct {
	users       UserStore
	credentials CredentialStore
	hasher      *PasswordHasher
}

func NewUserService(users UserStore, credentials CredentialStore, hasher *PasswordHasher) *UserService {
	return &UserService{users: users, credentials: credentials, hasher: hasher}
}

func (s *UserService) User(ctx context.Context, id int64) (model.User, error) {
	return s.users.UserByID(ctx, id)
}

func (s *UserService) List(ctx context.Context, page int, limit int) ([]model.User, int, error) {
	return s.users.ListUsers(ctx, page, limit)
}

func (s *UserService) Create(ctx context.Context, req model.CreateUserRequest) (model.User, error) {
	if strings.TrimSpace(req.Name) == "" || strings.TrimSpace(req.Email) == "" {
		return model.User{}, fmt.Errorf("%w: name and email are required", model.ErrInvalidInput)
	}
	if strings.TrimSpace(req.Username) == "" {
		return model.User{}, fmt.Errorf("%w: username is required", model.ErrInvalidInput)
	}

	scope, ok := model.ParseScope(req.Scope)
	if !ok || scope == "" {
		return model.User{}, fmt.Errorf("%w: scope %q", model.ErrInvalidInput, req.Scope)
	}

	if _, err := s.credentials.CredentialByUsername(ctx, req.Username); err == nil {
		return model.User{}, fmt.Errorf("%w: username %q", model.ErrAlreadyExists, req.Username)
	} else if !errors.Is(err, model.ErrCredentialNotFound) {
		return model.User{}, err
	}

	hashed, err := s.hasher.Hash(req.Password)
	if err != nil {
		return model.User{}, err
	}

	user := model.User{
		Name:  req.Name,
		Email: req.Email,
		Scope: scope,
	}
	cred := model.Credential{
		ID:       uuid.NewString(),
		Username: req.Username,
		Password: hashed,
	}

	user, _, err = s.users.CreateUserWithCredential(ctx, user, cred)
	if err != nil {
		return model.User{}, err
	}

	return user, nil
}

func (s *UserService) Update(ctx context.Context, id int64, req model.UpdateUserRequest) (model.User, error) {
	user, err := s.users.UserByID(ctx, id)
	if err != nil {
		return model.User{}, err
	}

	if req.Name != nil {
		user.Name = *req.Name
	}
	if req.Email != nil {
		user.Email = *req.Email
	}
	if req.Scope != nil {
		scope, ok := model.ParseScope(*req.Scope)
		if !ok || scope == "" {
			return model.User{}, fmt.Errorf("%w: scope %q", model.ErrInvalidInput, *req.Scope)
		}
		user.Scope = scope
	}

	if strings.TrimSpace(user.Name) == "" || strings.TrimSpace(user.Email) == "" {
		return model.User{}, fmt.Errorf("%w: name and email must not be empty", model.ErrInvalidInput)
	}

	return s.users.UpdateUser(ctx, user)
}

func (s *UserService) Delete(ctx context.Context, id int64) error {
	if _, err := s.users.UserByID(ctx, id); err != nil {
		return err
	}
	return s.users.DeleteUser(ctx, id)
}
