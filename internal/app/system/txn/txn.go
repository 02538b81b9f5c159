// internal/app/system/txn/txn.go

// Package txn wraps multi-document MongoDB transactions behind a single
// run-atomically helper so the abort-on-any-failure discipline is enforced
// structurally instead of being repeated at each call site.
package txn

import (
	"context"
	"errors"
	"strings"

	"go.mongodb.org/mongo-driver/mongo"
)

// WithTransaction runs fn inside one transaction on a fresh session.
// If fn returns an error the transaction is aborted and nothing fn wrote
// is visible; otherwise the transaction commits before WithTransaction
// returns. All reads and writes inside fn must use the session context
// it receives.
func WithTransaction(ctx context.Context, client *mongo.Client, fn func(sc mongo.SessionContext) error) error {
	sess, err := client.StartSession()
	if err != nil {
		return err
	}
	defer sess.EndSession(ctx)

	_, err = sess.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		return nil, fn(sc)
	})
	return err
}

// IsNotSupported reports whether err indicates the server cannot run
// multi-document transactions (standalone mongod, no replica set).
// Used by tests to skip transaction cases on unsupported deployments.
func IsNotSupported(err error) bool {
	if err == nil {
		return false
	}

	var cmdErr mongo.CommandError
	if errors.As(err, &cmdErr) {
		// 20 IllegalOperation on standalone, 51 transaction numbers not
		// allowed, 263 operation not permitted in transaction.
		switch cmdErr.Code {
		case 20, 51, 263:
			return true
		}
	}

	msg := strings.ToLower(err.Error())
	if strings.Contains(msg, "illegal operation") {
		return true
	}
	if strings.Contains(msg, "transaction") &&
		(strings.Contains(msg, "replica set") || strings.Contains(msg, "session")) {
		return true
	}
	if strings.Contains(msg, "session") && strings.Contains(msg, "not supported") {
		return true
	}
	return false
}
