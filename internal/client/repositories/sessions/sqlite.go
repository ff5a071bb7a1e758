// Package sessions persists the signed-in session in the client SQLite
// database. The session is a single row, so saving and clearing it are
// all-or-nothing.
package sessions

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/followupdesk/internal/client/models"
	"github.com/dmitrijs2005/followupdesk/internal/client/session"
	"github.com/dmitrijs2005/followupdesk/internal/dbx"
)

type SQLiteRepository struct {
	db *sql.DB
}

var _ session.Store = (*SQLiteRepository)(nil)

func NewSQLiteRepository(db *sql.DB) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

func (r *SQLiteRepository) Save(ctx context.Context, s session.Session) error {
	user, err := json.Marshal(s.User)
	if err != nil {
		return fmt.Errorf("failed to encode session user: %w", err)
	}

	err = dbx.WithTx(ctx, r.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM session`); err != nil {
			return err
		}
		_, err := tx.ExecContext(ctx, `
			INSERT INTO session (id, access_token, refresh_token, user_json, updated_at)
			VALUES (1, ?, ?, ?, CURRENT_TIMESTAMP)
		`, s.AccessToken, s.RefreshToken, user)
		return err
	})
	if err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) Load(ctx context.Context) (*session.Session, error) {
	var (
		s    session.Session
		user []byte
	)
	err := r.db.QueryRowContext(ctx,
		`SELECT access_token, refresh_token, user_json FROM session WHERE id = 1`,
	).Scan(&s.AccessToken, &s.RefreshToken, &user)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, session.ErrNoSession
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load session: %w", err)
	}

	var u models.User
	if err := json.Unmarshal(user, &u); err != nil {
		return nil, fmt.Errorf("failed to decode session user: %w", err)
	}
	s.User = u
	return &s, nil
}

func (r *SQLiteRepository) Clear(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM session`); err != nil {
		return fmt.Errorf("failed to clear session: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) SetAccessToken(ctx context.Context, token string) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE session SET access_token = ?, updated_at = CURRENT_TIMESTAMP WHERE id = 1`, token)
	if err != nil {
		return fmt.Errorf("failed to update access token: %w", err)
	}
	ok, err := dbx.AffectedOne(res)
	if err != nil {
		return fmt.Errorf("failed to update access token: %w", err)
	}
	if !ok {
		return session.ErrNoSession
	}
	return nil
}
