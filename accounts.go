package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// AccountManager owns registration and credential verification. Passwords are
// bcrypt-hashed before they ever reach the store; plaintext is never stored
// or logged.
type AccountManager struct {
	store Store
}

func NewAccountManager(store Store) *AccountManager {
	return &AccountManager{store: store}
}

// Register creates a new account. The email lookup catches duplicates in the
// common case; the store's unique index catches the rest.
func (m *AccountManager) Register(ctx context.Context, email, password string) (User, error) {
	if email == "" || password == "" {
		return User{}, ErrMissingCredentials
	}

	_, err := m.store.GetUserByEmail(ctx, email)
	if err == nil {
		return User{}, ErrEmailTaken
	}
	if !errors.Is(err, ErrUserNotFound) {
		return User{}, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return User{}, fmt.Errorf("failed to hash password: %v", err)
	}

	return m.store.CreateUser(ctx, email, string(hash))
}

// Authenticate verifies an email/password pair. An unknown email and a wrong
// password both return ErrInvalidCredentials, so a caller cannot probe which
// addresses are registered.
func (m *AccountManager) Authenticate(ctx context.Context, email, password string) (User, error) {
	if email == "" || password == "" {
		return User{}, ErrMissingCredentials
	}

	user, err := m.store.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return User{}, ErrInvalidCredentials
		}
		return User{}, err
	}

	// CompareHashAndPassword is constant-time.
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return User{}, ErrInvalidCredentials
	}

	return user, nil
}

// Profile looks up an account by id. An id that is not a well-formed UUID is
// treated the same as an absent account.
func (m *AccountManager) Profile(ctx context.Context, id string) (User, error) {
	if _, err := uuid.Parse(id); err != nil {
		return User{}, ErrUserNotFound
	}
	return m.store.GetUserById(ctx, id)
}

func (m *AccountManager) List(ctx context.Context) ([]User, error) {
	return m.store.ListUsers(ctx)
}
