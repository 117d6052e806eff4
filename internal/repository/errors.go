package repository

import (
	"context"
	"errors"
	"fmt"
	"net"

	"foodshare/internal/model"

	"github.com/jackc/pgx/v5/pgconn"
	"go.mongodb.org/mongo-driver/mongo"
)

// storeError wraps a driver error with the failed operation. Connectivity
// failures and timeouts become model.ErrStoreUnavailable.
func storeError(op string, err error) error {
	if isUnavailable(err) {
		return model.ErrStoreUnavailable.Wrap(fmt.Errorf("failed to %s: %w", op, err))
	}
	return fmt.Errorf("failed to %s: %w", op, err)
}

func isUnavailable(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, mongo.ErrClientDisconnected) {
		return true
	}

	if mongo.IsTimeout(err) || mongo.IsNetworkError(err) {
		return true
	}

	if pgconn.Timeout(err) {
		return true
	}

	var connectErr *pgconn.ConnectError
	if errors.As(err, &connectErr) {
		return true
	}

	var netErr net.Error
	return errors.As(err, &netErr)
}
