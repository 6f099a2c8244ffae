package model

import (
	"errors"

	"github.com/zeromicro/go-zero/core/stores/sqlx"
)

// ErrNotFound is returned when a queried row does not exist.
var ErrNotFound = sqlx.ErrNotFound

// ErrDuplicateEntry is returned when an insert violates a unique constraint.
var ErrDuplicateEntry = errors.New("model: duplicate entry")

// pgUniqueViolation is the Postgres error code for unique constraint violations.
const pgUniqueViolation = "23505"
