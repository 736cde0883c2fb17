package services

import (
	"context"
	"fmt"
)

const usersPath = "/api/users"

type User struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Password string `json:"password,omitempty"`
	Email    string `json:"email"`
}

type CreateUserRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Email    string `json:"email"`
}

// UpdateUserRequest sends only the fields that are set.
type UpdateUserRequest struct {
	Username string `json:"username,omitempty"`
	Password string `json:"password,omitempty"`
	Email    string `json:"email,omitempty"`
}

// UserService manages backend user accounts.
type UserService interface {
	List(ctx context.Context) ([]User, error)
	Get(ctx context.Context, id int64) (*User, error)
	Create(ctx context.Context, req CreateUserRequest) (*User, error)
	Update(ctx context.Context, id int64, req UpdateUserRequest) (*User, error)
	Delete(ctx context.Context, id int64) error
}

type userService struct {
	api API
}

func NewUserService(api API) UserService {
	return &userService{api: api}
}

func userPath(id int64) string {
	return fmt.Sprintf("%s/%d", usersPath, id)
}

func (s *userService) List(ctx context.Context) ([]User, error) {
	var users []User
	if err := s.api.Get(ctx, usersPath, &users); err != nil {
		return nil, err
	}
	return users, nil
}

func (s *userService) Get(ctx context.Context, id int64) (*User, error) {
	var u User
	if err := s.api.Get(ctx, userPath(id), &u); err != nil {
		return nil, err
	}
	return &u, nil
}

func (s *userService) Create(ctx context.Context, req CreateUserRequest) (*User, error) {
	var u User
	if err := s.api.Post(ctx, usersPath, req, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

func (s *userService) Update(ctx context.Context, id int64, req UpdateUserRequest) (*User, error) {
	var u User
	if err := s.api.Put(ctx, userPath(id), req, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

func (s *userService) Delete(ctx context.Context, id int64) error {
	return s.api.Delete(ctx, userPath(id), nil)
}
