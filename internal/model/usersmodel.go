package model

import (
	"context"
	"time"

	"github.com/zeromicro/go-zero/core/stores/sqlx"
)

var _ UsersModel = (*customUsersModel)(nil)

type (
	// UsersModel is an interface to be customized, add more methods here,
	// and implement the added methods in customUsersModel.
	UsersModel interface {
		usersModel
	}

	usersModel interface {
		Insert(ctx context.Context, data *Users) error
		FindOne(ctx context.Context, id string) (*Users, error)
		FindOneByEmail(ctx context.Context, email string) (*Users, error)
		ListWithEmail(ctx context.Context) ([]*Users, error)
	}

	customUsersModel struct {
		*defaultUsersModel
	}

	defaultUsersModel struct {
		conn  sqlx.SqlConn
		table string
	}

	// Users mirrors the users table managed by the auth collaborator.
	Users struct {
		Id        string    `db:"id"`
		Email     string    `db:"email"`
		Name      string    `db:"name"`
		Country   string    `db:"country"`
		CreatedAt time.Time `db:"created_at"`
	}
)

// NewUsersModel returns a model for the database table.
func NewUsersModel(conn sqlx.SqlConn) UsersModel {
	return &customUsersModel{
		defaultUsersModel: &defaultUsersModel{
			conn:  conn,
			table: `"public"."users"`,
		},
	}
}

const usersRows = "id, email, name, country, created_at"

func (m *defaultUsersModel) Insert(ctx context.Context, data *Users) error {
	query := "INSERT INTO " + m.table + " (" + usersRows + ") VALUES ($1, $2, $3, $4, $5)"
	_, err := m.conn.ExecCtx(ctx, query, data.Id, data.Email, data.Name, data.Country, data.CreatedAt)
	return err
}

func (m *defaultUsersModel) FindOne(ctx context.Context, id string) (*Users, error) {
	query := "SELECT " + usersRows + " FROM " + m.table + " WHERE id = $1 LIMIT 1"
	var resp Users
	err := m.conn.QueryRowCtx(ctx, &resp, query, id)
	switch err {
	case nil:
		return &resp, nil
	case sqlx.ErrNotFound:
		return nil, ErrNotFound
	default:
		return nil, err
	}
}

func (m *defaultUsersModel) FindOneByEmail(ctx context.Context, email string) (*Users, error) {
	query := "SELECT " + usersRows + " FROM " + m.table + " WHERE email = $1 LIMIT 1"
	var resp Users
	err := m.conn.QueryRowCtx(ctx, &resp, query, email)
	switch err {
	case nil:
		return &resp, nil
	case sqlx.ErrNotFound:
		return nil, ErrNotFound
	default:
		return nil, err
	}
}

// ListWithEmail returns every user that can receive digest mail.
func (m *defaultUsersModel) ListWithEmail(ctx context.Context) ([]*Users, error) {
	query := "SELECT " + usersRows + " FROM " + m.table +
		" WHERE email IS NOT NULL AND email <> '' ORDER BY created_at"
	var resp []*Users
	if err := m.conn.QueryRowsCtx(ctx, &resp, query); err != nil {
		return nil, err
	}
	return resp, nil
}
