package domain

import "context"

// TransactionManager runs a function inside a storage transaction.
// Repositories pick the transaction up from the context.
type TransactionManager interface {
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}
