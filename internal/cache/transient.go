package cache

import (
	"context"
	"database/sql/driver"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
)

// isTransient classifies fetch errors that justify serving a stale snapshot:
// timeouts, dropped connections, and PostgreSQL class 53 (insufficient
// resources: connection limits, out of memory), which is the store-side
// equivalent of the sheet API's 429.
func isTransient(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, driver.ErrBadConn) {
		return true
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return strings.HasPrefix(pgErr.Code, "53")
	}
	return false
}
