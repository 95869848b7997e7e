package store

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/interviewqa/apiserver/types"
)

// UserRepository handles persistence for users. The authored and favorite
// reference sets live in user_questions and user_favorites.
type UserRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) GetByID(ctx context.Context, id string) (types.User, error) {
	userID, err := parseID(id)
	if err != nil {
		return types.User{}, err
	}
	const query = `
		SELECT id, username, email, password_hash, created_date
		FROM users
		WHERE id = $1`
	return r.getOne(ctx, query, userID)
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (types.User, error) {
	const query = `
		SELECT id, username, email, password_hash, created_date
		FROM users
		WHERE email = $1`
	return r.getOne(ctx, query, email)
}

func (r *UserRepository) getOne(ctx context.Context, query string, args ...any) (types.User, error) {
	var user types.User
	err := r.db.QueryRowContext(ctx, query, args...).Scan(
		&user.ID,
		&user.Username,
		&user.Email,
		&user.PasswordHash,
		&user.CreatedDate,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return types.User{}, ErrNotFound
		}
		return types.User{}, err
	}

	if user.Questions, err = r.referenceSet(ctx, "user_questions", user.ID); err != nil {
		return types.User{}, err
	}
	if user.Favorites, err = r.referenceSet(ctx, "user_favorites", user.ID); err != nil {
		return types.User{}, err
	}
	return user, nil
}

// referenceSet loads one set in insertion order. table is never user input.
func (r *UserRepository) referenceSet(ctx context.Context, table, userID string) ([]string, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT question_id FROM `+table+` WHERE user_id = $1 ORDER BY seq`,
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	ids := make([]string, 0)
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

func (r *UserRepository) ExistsByUsernameOrEmail(ctx context.Context, username, email string) (bool, error) {
	const query = `SELECT EXISTS (SELECT 1 FROM users WHERE username = $1 OR email = $2)`
	var exists bool
	if err := r.db.QueryRowContext(ctx, query, username, email).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

func (r *UserRepository) Create(ctx context.Context, user types.User) (types.User, error) {
	user.ID = uuid.NewString()
	user.CreatedDate = time.Now().UTC()
	user.Questions = []string{}
	user.Favorites = []string{}

	const query = `
		INSERT INTO users (id, username, email, password_hash, created_date)
		VALUES ($1, $2, $3, $4, $5)`
	if _, err := r.db.ExecContext(ctx, query,
		user.ID,
		user.Username,
		user.Email,
		user.PasswordHash,
		user.CreatedDate,
	); err != nil {
		return types.User{}, translatePQ(err)
	}
	return user, nil
}

func (r *UserRepository) AddQuestion(ctx context.Context, userID, questionID string) (types.User, error) {
	return r.addToSet(ctx, "user_questions", userID, questionID)
}

func (r *UserRepository) AddFavorite(ctx context.Context, userID, questionID string) (types.User, error) {
	return r.addToSet(ctx, "user_favorites", userID, questionID)
}

func (r *UserRepository) RemoveFavorite(ctx context.Context, userID, questionID string) (types.User, error) {
	ids, err := parseIDs(userID, questionID)
	if err != nil {
		return types.User{}, err
	}
	const query = `DELETE FROM user_favorites WHERE user_id = $1 AND question_id = $2`
	if _, err := r.db.ExecContext(ctx, query, ids[0], ids[1]); err != nil {
		return types.User{}, err
	}
	return r.GetByID(ctx, userID)
}

// addToSet inserts the reference unless present. A missing user surfaces as
// a foreign key violation, reported as ErrNotFound.
func (r *UserRepository) addToSet(ctx context.Context, table, userID, questionID string) (types.User, error) {
	ids, err := parseIDs(userID, questionID)
	if err != nil {
		return types.User{}, err
	}
	query := `INSERT INTO ` + table + ` (user_id, question_id) VALUES ($1, $2) ON CONFLICT DO NOTHING`
	if _, err := r.db.ExecContext(ctx, query, ids[0], ids[1]); err != nil {
		return types.User{}, translatePQ(err)
	}
	return r.GetByID(ctx, userID)
}
