package repositories

import "context"

// TxFn is a function that runs within a transaction
type TxFn func(ctx context.Context) error

// TransactionManager handles database transactions
type TransactionManager interface {
	// ExecTx executes a function within a transaction, committing on nil
	// and rolling back on error.
	ExecTx(ctx context.Context, fn TxFn) error
}
