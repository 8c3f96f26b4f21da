package unitofwork

import "context"

type ctxKey struct{}

// WithUnitOfWork binds an open unit of work to ctx. Repository calls made
// further down the call chain join its transaction instead of taking a
// second pooled connection.
func WithUnitOfWork(ctx context.Context, uow UnitOfWork) context.Context {
	return context.WithValue(ctx, ctxKey{}, uow)
}

// Current returns the unit of work bound to ctx, or a fresh one from factory.
func Current(ctx context.Context, factory RepositoryFactory) UnitOfWork {
	if uow, ok := ctx.Value(ctxKey{}).(UnitOfWork); ok && uow != nil {
		return uow
	}
	return factory.NewUnitOfWork(ctx)
}
