// Package repokit re-exports the store seams repos are written against
package repokit

import "sellerbot/internal/platform/store"

type (
	// Queryer is a pool or a transaction
	Queryer = store.RowQuerier
	// TxRunner is a Queryer that can open transactions
	TxRunner = store.TxRunner
)
