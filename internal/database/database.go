package database

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"strings"

	"github.com/surrealdb/surrealdb.go"
	"github.com/vintechs/portal/internal/config"
)

// NewDB connects to SurrealDB as the configured root user and selects the
// namespace and database. The returned connection is shared by every request.
func NewDB(ctx context.Context, cfg config.Provider) (*surrealdb.DB, error) {
	db, err := Dial(ctx, cfg.GetDBURL(), NewRetryer())
	if err != nil {
		return nil, err
	}

	authData := &surrealdb.Auth{
		Username: cfg.GetDBUser(),
		Password: cfg.GetDBPass(),
	}
	if _, err = db.SignIn(ctx, authData); err != nil {
		db.Close(ctx)
		return nil, fmt.Errorf("failed to sign in: %w", err)
	}

	if err = db.Use(ctx, cfg.GetDBNs(), cfg.GetDBDb()); err != nil {
		db.Close(ctx)
		return nil, fmt.Errorf("failed to use namespace/db: %w", err)
	}

	slog.InfoContext(ctx, "Successfully signed in to SurrealDB",
		"url", redactDBURL(cfg.GetDBURL()), "namespace", cfg.GetDBNs(), "database", cfg.GetDBDb())
	return db, nil
}

// Dial opens an unauthenticated connection, retrying while the server is
// unreachable.
func Dial(ctx context.Context, dbURL string, retryer *Retryer) (*surrealdb.DB, error) {
	var db *surrealdb.DB
	err := retryer.Retry(ctx, func() error {
		conn, err := surrealdb.FromEndpointURLString(ctx, dbURL)
		if err != nil {
			return err
		}
		db = conn
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to surrealdb at %s: %w", redactDBURL(dbURL), err)
	}
	return db, nil
}

// Ping asks the server for its version, which is the cheapest round trip
// the driver offers.
func Ping(ctx context.Context, db *surrealdb.DB) error {
	if db == nil {
		return errors.New("no active database connection")
	}
	if _, err := db.Version(ctx); err != nil {
		return fmt.Errorf("database health check failed: %w", err)
	}
	return nil
}

// isConnectionError reports whether err looks like a transport failure
// rather than an answer from the server.
func isConnectionError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "connection refused") ||
		strings.Contains(msg, "broken pipe") ||
		strings.Contains(msg, "unexpected eof") ||
		strings.Contains(msg, "use of closed network connection")
}

// redactDBURL hides any password embedded in the URL before it is logged.
func redactDBURL(dbURL string) string {
	parsedURL, err := url.Parse(dbURL)
	if err != nil {
		return "invalid-url"
	}
	return parsedURL.Redacted()
}
