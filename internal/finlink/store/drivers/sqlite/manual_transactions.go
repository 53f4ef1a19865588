package sqlite

import (
	"context"

	"github.com/aussiebroadwan/finlink/internal/finlink/domain"
)

type manualTransactionsRepo struct {
	q dbtx
}

func (r *manualTransactionsRepo) Create(ctx context.Context, owner string, tx domain.Transaction) error {
	_, err := r.q.ExecContext(ctx, `
		INSERT INTO manual_transactions (id, owner, occurred_at, merchant, amount, category, type, account)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		tx.ID, owner, tx.Date.UTC(), tx.Merchant, tx.Amount.String(), tx.Category, string(tx.Type), tx.Account)
	return err
}

func (r *manualTransactionsRepo) List(ctx context.Context, owner string) ([]domain.Transaction, error) {
	rows, err := r.q.QueryContext(ctx, `
		SELECT id, occurred_at, merchant, amount, category, type, account
		FROM manual_transactions
		WHERE owner = ?
		ORDER BY occurred_at DESC, id DESC`, owner)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Transaction
	for rows.Next() {
		var (
			tx  domain.Transaction
			typ string
		)
		if err := rows.Scan(&tx.ID, &tx.Date, &tx.Merchant, &tx.Amount, &tx.Category, &typ, &tx.Account); err != nil {
			return nil, err
		}
		tx.Type = domain.TransactionType(typ)
		tx.Date = tx.Date.UTC()
		tx.Manual = true
		out = append(out, tx)
	}
	return out, rows.Err()
}
