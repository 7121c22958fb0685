package main

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

// memStore is an in-memory Store with the same contract as PostgresStore:
// duplicate emails fail with ErrEmailTaken, absent users with ErrUserNotFound,
// and lists come back newest first.
type memStore struct {
	mu       sync.Mutex
	users    []User
	expenses []Expense
}

func newMemStore() *memStore {
	return &memStore{}
}

func (s *memStore) CreateUser(_ context.Context, email, passwordHash string) (User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.users {
		if u.Email == email {
			return User{}, ErrEmailTaken
		}
	}

	user := User{
		Id:           uuid.NewString(),
		Email:        email,
		PasswordHash: passwordHash,
		CreatedAt:    time.Now().UTC(),
	}
	s.users = append(s.users, user)
	return user, nil
}

func (s *memStore) GetUserByEmail(_ context.Context, email string) (User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.users {
		if u.Email == email {
			return u, nil
		}
	}
	return User{}, ErrUserNotFound
}

func (s *memStore) GetUserById(_ context.Context, id string) (User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.users {
		if u.Id == id {
			return u, nil
		}
	}
	return User{}, ErrUserNotFound
}

func (s *memStore) ListUsers(_ context.Context) ([]User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	users := make([]User, 0, len(s.users))
	for i := len(s.users) - 1; i >= 0; i-- {
		users = append(users, s.users[i])
	}
	return users, nil
}

func (s *memStore) CreateExpense(_ context.Context, e Expense) (Expense, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e.Id = uuid.NewString()
	e.CreatedAt = time.Now().UTC()
	s.expenses = append(s.expenses, e)
	return e, nil
}

func (s *memStore) ListExpenses(_ context.Context) ([]Expense, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	expenses := make([]Expense, 0, len(s.expenses))
	for i := len(s.expenses) - 1; i >= 0; i-- {
		expenses = append(expenses, s.expenses[i])
	}
	return expenses, nil
}
