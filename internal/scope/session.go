package scope

import (
	"context"
	"database/sql"
	"errors"
	"strconv"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/sirupsen/logrus"

	"github.com/mfiguera/credimutual/internal/repository"
	customError "github.com/mfiguera/credimutual/pkg/errors"
)

// Scope identifies the tenant and caller a unit of work runs for. It is an
// immutable value created once per request and passed explicitly; it is
// never stored in process-wide state.
type Scope struct {
	MutualID int64
	CallerID string
}

// Runner executes a body inside a tenant-scoped unit of work.
type Runner interface {
	Run(ctx context.Context, sc Scope, fn func(ctx context.Context, q repository.Queryer) error) error
}

// Session binds units of work to one tenant. Every Run opens its own
// transaction, sets the transaction-local parameters the store's
// row-level-security policies consult, and tears the binding down on commit
// or rollback. Queries issued through the handle cannot reach another
// tenant's rows even when they carry no tenant filter.
type Session struct {
	db      *sqlx.DB
	timeout time.Duration
	log     *logrus.Logger
}

func NewSession(db *sqlx.DB, timeout time.Duration, log *logrus.Logger) *Session {
	return &Session{db: db, timeout: timeout, log: log}
}

// Run validates the scope, opens a snapshot-isolated transaction with a
// bounded deadline and executes fn against it. Any error from fn rolls the
// whole unit of work back; deadline expiry surfaces as OperationFailed.
func (s *Session) Run(ctx context.Context, sc Scope, fn func(ctx context.Context, q repository.Queryer) error) error {
	if sc.MutualID <= 0 {
		return customError.WrapMissingTenantContext(sc.MutualID)
	}
	if sc.CallerID == "" {
		return customError.WrapMissingCallerContext()
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	tx, err := s.db.BeginTxx(ctx, &sql.TxOptions{Isolation: sql.LevelRepeatableRead})
	if err != nil {
		return customError.WrapOperationFailed(err)
	}
	// Rollback is a no-op once the transaction committed.
	defer tx.Rollback()

	// set_config with is_local=true scopes both parameters to this
	// transaction; they vanish with it and can never leak to another
	// connection or request.
	_, err = tx.ExecContext(ctx,
		`SELECT set_config('app.current_mutual', $1, true), set_config('app.current_caller', $2, true)`,
		strconv.FormatInt(sc.MutualID, 10), sc.CallerID)
	if err != nil {
		return customError.WrapOperationFailed(err)
	}

	if err := fn(ctx, tx); err != nil {
		s.log.WithFields(logrus.Fields{
			"mutual_id": sc.MutualID,
			"caller_id": sc.CallerID,
		}).WithError(err).Debug("tenant-scoped unit of work rolled back")
		if errors.Is(err, context.DeadlineExceeded) {
			return customError.WrapOperationFailed(err)
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return customError.WrapOperationFailed(err)
	}
	return nil
}
