package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Store interface {
	CreateUser(ctx context.Context, email, passwordHash string) (User, error)
	GetUserByEmail(ctx context.Context, email string) (User, error)
	GetUserById(ctx context.Context, id string) (User, error)
	ListUsers(ctx context.Context) ([]User, error)

	CreateExpense(ctx context.Context, e Expense) (Expense, error)
	ListExpenses(ctx context.Context) ([]Expense, error)
}

// The unique index on email is what actually guarantees one account per
// address; the lookup AccountManager does before inserting only covers the
// common case. A concurrent duplicate insert loses the race here and comes
// back as ErrEmailTaken.
const schema = `
CREATE TABLE IF NOT EXISTS users (
    id UUID PRIMARY KEY,
    email TEXT NOT NULL,
    password_hash TEXT NOT NULL,
    created_at TIMESTAMPTZ NOT NULL
);
CREATE UNIQUE INDEX IF NOT EXISTS users_email_idx ON users (email);
CREATE TABLE IF NOT EXISTS expenses (
    id UUID PRIMARY KEY,
    category TEXT NOT NULL,
    price DOUBLE PRECISION NOT NULL,
    notes TEXT,
    date TIMESTAMPTZ NOT NULL,
    created_at TIMESTAMPTZ NOT NULL
);
`

// a pgx pool allows the app to reuse and efficiently manage a set of connections to the database,
// rather than opening and closing a new connection for every query.
type PostgresStore struct {
	conn *pgxpool.Pool
}

func NewPostgresStore(connStr string) (*PostgresStore, error) {
	conn, err := pgxpool.New(context.Background(), connStr)
	if err != nil {
		return nil, fmt.Errorf("unable to connect to database: %v", err)
	}

	if _, err := conn.Exec(context.Background(), schema); err != nil {
		conn.Close()
		return nil, fmt.Errorf("unable to initialize schema: %v", err)
	}

	return &PostgresStore{conn: conn}, nil
}

func (p *PostgresStore) Close() {
	p.conn.Close()
}

func (p *PostgresStore) CreateUser(ctx context.Context, email, passwordHash string) (User, error) {
	user := User{
		Id:           uuid.NewString(),
		Email:        email,
		PasswordHash: passwordHash,
		CreatedAt:    time.Now().UTC(),
	}

	query := `
        INSERT INTO users (id, email, password_hash, created_at)
        VALUES ($1, $2, $3, $4);
    `

	_, err := p.conn.Exec(ctx, query, user.Id, user.Email, user.PasswordHash, user.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return User{}, ErrEmailTaken
		}
		return User{}, fmt.Errorf("failed to create user: %v", err)
	}

	return user, nil
}

func (p *PostgresStore) GetUserByEmail(ctx context.Context, email string) (User, error) {
	var user User
	query := `SELECT id, email, password_hash, created_at FROM users WHERE email = $1`
	err := p.conn.QueryRow(ctx, query, email).Scan(&user.Id, &user.Email, &user.PasswordHash, &user.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return User{}, ErrUserNotFound
		}
		return User{}, fmt.Errorf("failed to look up user by email: %v", err)
	}
	return user, nil
}

func (p *PostgresStore) GetUserById(ctx context.Context, id string) (User, error) {
	var user User
	query := `SELECT id, email, password_hash, created_at FROM users WHERE id = $1`
	err := p.conn.QueryRow(ctx, query, id).Scan(&user.Id, &user.Email, &user.PasswordHash, &user.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return User{}, ErrUserNotFound
		}
		return User{}, fmt.Errorf("failed to look up user by id: %v", err)
	}
	return user, nil
}

func (p *PostgresStore) ListUsers(ctx context.Context) ([]User, error) {
	query := `
        SELECT id, email, password_hash, created_at
        FROM users
        ORDER BY created_at DESC;
    `

	rows, err := p.conn.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %v", err)
	}
	defer rows.Close()

	users := []User{}
	for rows.Next() {
		var u User
		err := rows.Scan(&u.Id, &u.Email, &u.PasswordHash, &u.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan user: %v", err)
		}
		users = append(users, u)
	}

	if rows.Err() != nil {
		return nil, rows.Err()
	}

	return users, nil
}

func (p *PostgresStore) CreateExpense(ctx context.Context, e Expense) (Expense, error) {
	e.Id = uuid.NewString()
	e.CreatedAt = time.Now().UTC()

	query := `
        INSERT INTO expenses (id, category, price, notes, date, created_at)
        VALUES ($1, $2, $3, $4, $5, $6);
    `

	_, err := p.conn.Exec(ctx, query, e.Id, e.Category, e.Price, e.Notes, e.Date, e.CreatedAt)
	if err != nil {
		return Expense{}, fmt.Errorf("failed to create expense: %v", err)
	}

	return e, nil
}

func (p *PostgresStore) ListExpenses(ctx context.Context) ([]Expense, error) {
	query := `
        SELECT id, category, price, notes, date, created_at
        FROM expenses
        ORDER BY created_at DESC;
    `

	rows, err := p.conn.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list expenses: %v", err)
	}
	defer rows.Close()

	expenses := []Expense{}
	for rows.Next() {
		var e Expense
		err := rows.Scan(&e.Id, &e.Category, &e.Price, &e.Notes, &e.Date, &e.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan expense: %v", err)
		}
		expenses = append(expenses, e)
	}

	if rows.Err() != nil {
		return nil, rows.Err()
	}

	return expenses, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
