package storage

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"fmt"
	"net"

	"github.com/guttosm/nsepulse/internal/apperrors"
	"github.com/lib/pq"
)

// classify maps driver and network failures to apperrors.TransientStoreError and
// prefixes everything else with the operation name.
func classify(op string, err error) error {
	if err == nil {
		return nil
	}
	if isTransient(err) {
		return apperrors.NewTransient(op, err)
	}
	return fmt.Errorf("%s: %w", op, err)
}

func isTransient(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) ||
		errors.Is(err, driver.ErrBadConn) ||
		errors.Is(err, sql.ErrConnDone) {
		return true
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch pqErr.Code.Class() {
		case "08", // connection exception
			"53", // insufficient resources
			"57": // operator intervention (admin shutdown, query canceled)
			return true
		}
		switch pqErr.Code {
		case "40001", "40P01": // serialization failure, deadlock detected
			return true
		}
		return false
	}

	var netErr net.Error
	return errors.As(err, &netErr)
}
