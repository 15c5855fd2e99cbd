package database

import "context"

// Transactor runs fn inside one storage transaction. Repositories called with
// the ctx handed to fn take part in that transaction. Nested calls reuse the
// outer transaction.
type Transactor interface {
	WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}
