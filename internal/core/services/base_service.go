package services

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	portsrepo "github.com/SscSPs/property_ledger/internal/core/ports/repositories"
	"github.com/SscSPs/property_ledger/internal/middleware"
	"github.com/google/uuid"
)

// BaseService provides common functionality for all services
type BaseService struct {
	store portsrepo.TxStore
	now   func() time.Time
	newID func() string
}

// Option configures the shared parts of a service.
type Option func(*BaseService)

// WithClock replaces time.Now. Tests use it to pin creation dates.
func WithClock(now func() time.Time) Option {
	return func(b *BaseService) {
		b.now = now
	}
}

// WithIDGenerator replaces the uuid generator used for new records.
func WithIDGenerator(newID func() string) Option {
	return func(b *BaseService) {
		b.newID = newID
	}
}

func newBaseService(store portsrepo.TxStore, opts ...Option) BaseService {
	b := BaseService{
		store: store,
		now:   time.Now,
		newID: uuid.NewString,
	}
	for _, opt := range opts {
		opt(&b)
	}
	return b
}

// GetLogger gets the logger from context or returns a default one
func (s *BaseService) GetLogger(ctx context.Context) *slog.Logger {
	return middleware.GetLoggerFromCtx(ctx)
}

// LogError logs an error with consistent formatting
func (s *BaseService) LogError(ctx context.Context, err error, msg string, keyvals ...any) {
	logger := s.GetLogger(ctx)
	args := make([]any, 0, len(keyvals)+1)
	args = append(args, slog.String("error", err.Error()))
	args = append(args, keyvals...)
	logger.Error(msg, args...)
}

// LogInfo logs an info message with consistent formatting
func (s *BaseService) LogInfo(ctx context.Context, msg string, keyvals ...any) {
	s.GetLogger(ctx).Info(msg, keyvals...)
}

// LogDebug logs a debug message with consistent formatting
func (s *BaseService) LogDebug(ctx context.Context, msg string, keyvals ...any) {
	s.GetLogger(ctx).Debug(msg, keyvals...)
}

type txStoreKey struct{}

// repo returns the transactional view carried by ctx, or the shared store outside a unit of work.
func (s *BaseService) repo(ctx context.Context) portsrepo.Store {
	if st, ok := ctx.Value(txStoreKey{}).(portsrepo.Store); ok {
		return st
	}
	return s.store
}

// runInTx executes fn in a unit of work. Nested calls join the unit already carried by ctx,
// so a reversal and the entry it creates commit or roll back together.
func (s *BaseService) runInTx(ctx context.Context, fn func(ctx context.Context, st portsrepo.Store) error) error {
	if st, ok := ctx.Value(txStoreKey{}).(portsrepo.Store); ok {
		return fn(ctx, st)
	}
	return s.store.WithTx(ctx, func(st portsrepo.Store) error {
		return fn(context.WithValue(ctx, txStoreKey{}, st), st)
	})
}

// snapshot serializes state for an audit record. Unserializable state is recorded as absent.
func snapshot(v any) json.RawMessage {
	if v == nil {
		return nil
	}
	b, err := json.Marshal(v)
	if err != nil {
		return nil
	}
	return b
}
