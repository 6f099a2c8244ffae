package model

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/zeromicro/go-zero/core/stores/sqlx"
)

var _ WatchlistEntriesModel = (*customWatchlistEntriesModel)(nil)

type (
	// WatchlistEntriesModel is an interface to be customized, add more methods here,
	// and implement the added methods in customWatchlistEntriesModel.
	WatchlistEntriesModel interface {
		watchlistEntriesModel
	}

	watchlistEntriesModel interface {
		Insert(ctx context.Context, data *WatchlistEntries) error
		FindOne(ctx context.Context, userId, symbol string) (*WatchlistEntries, error)
		FindByUser(ctx context.Context, userId string) ([]*WatchlistEntries, error)
		SymbolsByUser(ctx context.Context, userId string) ([]string, error)
		CountByUser(ctx context.Context, userId string) (int64, error)
		Delete(ctx context.Context, userId, symbol string) error
	}

	customWatchlistEntriesModel struct {
		*defaultWatchlistEntriesModel
	}

	defaultWatchlistEntriesModel struct {
		conn  sqlx.SqlConn
		table string
	}

	// WatchlistEntries is one (user, symbol) membership row.
	// The (user_id, symbol) pair is unique; added_at never changes after insert.
	WatchlistEntries struct {
		Id      int64     `db:"id"`
		UserId  string    `db:"user_id"`
		Symbol  string    `db:"symbol"`
		Company string    `db:"company"`
		AddedAt time.Time `db:"added_at"`
	}
)

// NewWatchlistEntriesModel returns a model for the database table.
func NewWatchlistEntriesModel(conn sqlx.SqlConn) WatchlistEntriesModel {
	return &customWatchlistEntriesModel{
		defaultWatchlistEntriesModel: &defaultWatchlistEntriesModel{
			conn:  conn,
			table: `"public"."watchlist_entries"`,
		},
	}
}

const watchlistEntriesRows = "id, user_id, symbol, company, added_at"

func (m *defaultWatchlistEntriesModel) Insert(ctx context.Context, data *WatchlistEntries) error {
	query := "INSERT INTO " + m.table + " (user_id, symbol, company, added_at) VALUES ($1, $2, $3, $4)"
	_, err := m.conn.ExecCtx(ctx, query, data.UserId, data.Symbol, data.Company, data.AddedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return ErrDuplicateEntry
		}
		return err
	}
	return nil
}

func (m *defaultWatchlistEntriesModel) FindOne(ctx context.Context, userId, symbol string) (*WatchlistEntries, error) {
	query := "SELECT " + watchlistEntriesRows + " FROM " + m.table +
		" WHERE user_id = $1 AND symbol = $2 LIMIT 1"
	var resp WatchlistEntries
	err := m.conn.QueryRowCtx(ctx, &resp, query, userId, symbol)
	switch err {
	case nil:
		return &resp, nil
	case sqlx.ErrNotFound:
		return nil, ErrNotFound
	default:
		return nil, err
	}
}

// FindByUser returns a user's membership, most recently added first.
// The id tie-break keeps ordering stable for rows added in the same instant.
func (m *defaultWatchlistEntriesModel) FindByUser(ctx context.Context, userId string) ([]*WatchlistEntries, error) {
	query := "SELECT " + watchlistEntriesRows + " FROM " + m.table +
		" WHERE user_id = $1 ORDER BY added_at DESC, id DESC"
	var resp []*WatchlistEntries
	if err := m.conn.QueryRowsCtx(ctx, &resp, query, userId); err != nil {
		return nil, err
	}
	return resp, nil
}

func (m *defaultWatchlistEntriesModel) SymbolsByUser(ctx context.Context, userId string) ([]string, error) {
	query := "SELECT symbol FROM " + m.table + " WHERE user_id = $1 ORDER BY added_at DESC, id DESC"
	var resp []string
	if err := m.conn.QueryRowsCtx(ctx, &resp, query, userId); err != nil {
		return nil, err
	}
	return resp, nil
}

func (m *defaultWatchlistEntriesModel) CountByUser(ctx context.Context, userId string) (int64, error) {
	query := "SELECT COUNT(*) FROM " + m.table + " WHERE user_id = $1"
	var count int64
	if err := m.conn.QueryRowCtx(ctx, &count, query, userId); err != nil {
		return 0, err
	}
	return count, nil
}

// Delete removes a membership row. Deleting an absent row is not an error.
func (m *defaultWatchlistEntriesModel) Delete(ctx context.Context, userId, symbol string) error {
	query := "DELETE FROM " + m.table + " WHERE user_id = $1 AND symbol = $2"
	_, err := m.conn.ExecCtx(ctx, query, userId, symbol)
	return err
}
