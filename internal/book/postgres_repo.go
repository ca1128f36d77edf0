package book

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"bookstore/internal/store"
)

// PostgresRepo implements Repository against a books table. It holds no
// connection of its own; every call runs on the session passed in.
type PostgresRepo struct{}

func NewPostgresRepo() *PostgresRepo {
	return &PostgresRepo{}
}

const (
	sqlListBooks = `
		SELECT id, title, author, description, price, published_year, created_at, updated_at
		FROM   books
		ORDER  BY id`

	sqlGetBook = `
		SELECT id, title, author, description, price, published_year, created_at, updated_at
		FROM   books
		WHERE  id = $1
		LIMIT  1`

	sqlInsertBook = `
		INSERT INTO books (title, author, description, price, published_year, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $6)
		RETURNING id, title, author, description, price, published_year, created_at, updated_at`

	sqlDeleteBook = `
		DELETE FROM books WHERE id = $1`
)

// List returns every persisted book ordered by id.
func (r *PostgresRepo) List(ctx context.Context, sess store.Querier) ([]Book, error) {
	rows, err := sess.Query(ctx, sqlListBooks)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Book
	for rows.Next() {
		var b Book
		if err := rows.Scan(
			&b.ID, &b.Title, &b.Author, &b.Description, &b.Price, &b.PublishedYear,
			&b.CreatedAt, &b.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("book: scan: %w", err)
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

// Get returns a single book by id. Returns ErrNotFound when no row matches.
func (r *PostgresRepo) Get(ctx context.Context, sess store.Querier, id int64) (Book, error) {
	return scanBook(sess.QueryRow(ctx, sqlGetBook, id))
}

// Create persists a new book and returns the full row including the
// assigned id. Both timestamps are set to the same instant. The required
// fields are re-checked here so a half-valid row can never be persisted,
// whatever the caller validated.
func (r *PostgresRepo) Create(ctx context.Context, sess store.Querier, params CreateParams) (Book, error) {
	if strings.TrimSpace(params.Title) == "" {
		return Book{}, fmt.Errorf("%w: title must not be empty", ErrInvalid)
	}
	if strings.TrimSpace(params.Author) == "" {
		return Book{}, fmt.Errorf("%w: author must not be empty", ErrInvalid)
	}

	now := time.Now().UTC()
	row := sess.QueryRow(ctx, sqlInsertBook,
		params.Title, params.Author, params.Description, params.Price, params.PublishedYear, now,
	)
	return scanBook(row)
}

// Update applies a partial update: only non-nil params are written,
// updated_at is always refreshed. Returns ErrNotFound when the id does
// not exist. The merge happens in a single statement so the operation
// either commits fully or not at all.
func (r *PostgresRepo) Update(ctx context.Context, sess store.Querier, id int64, params UpdateParams) (Book, error) {
	setClauses := make([]string, 0, 6)
	args := make([]any, 0, 7)
	argn := 1

	add := func(col string, val any) {
		setClauses = append(setClauses, fmt.Sprintf("%s = $%d", col, argn))
		args = append(args, val)
		argn++
	}

	if params.Title != nil {
		if strings.TrimSpace(*params.Title) == "" {
			return Book{}, fmt.Errorf("%w: title must not be empty", ErrInvalid)
		}
		add("title", *params.Title)
	}
	if params.Author != nil {
		if strings.TrimSpace(*params.Author) == "" {
			return Book{}, fmt.Errorf("%w: author must not be empty", ErrInvalid)
		}
		add("author", *params.Author)
	}
	if params.Description != nil {
		add("description", *params.Description)
	}
	if params.Price != nil {
		add("price", *params.Price)
	}
	if params.PublishedYear != nil {
		add("published_year", *params.PublishedYear)
	}
	add("updated_at", time.Now().UTC())

	args = append(args, id)
	query := fmt.Sprintf(`
		UPDATE books
		SET    %s
		WHERE  id = $%d
		RETURNING id, title, author, description, price, published_year, created_at, updated_at`,
		strings.Join(setClauses, ", "), argn)

	return scanBook(sess.QueryRow(ctx, query, args...))
}

// Delete removes a book permanently. Returns ErrNotFound when no row
// was deleted.
func (r *PostgresRepo) Delete(ctx context.Context, sess store.Querier, id int64) error {
	tag, err := sess.Exec(ctx, sqlDeleteBook, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func scanBook(row pgx.Row) (Book, error) {
	var b Book
	err := row.Scan(
		&b.ID, &b.Title, &b.Author, &b.Description, &b.Price, &b.PublishedYear,
		&b.CreatedAt, &b.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Book{}, ErrNotFound
		}
		return Book{}, err
	}
	return b, nil
}
