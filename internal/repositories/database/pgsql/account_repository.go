package pgsql

import (
	"context"

	"github.com/SscSPs/property_ledger/internal/apperrors"
	"github.com/SscSPs/property_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/property_ledger/internal/core/ports/repositories"
	"github.com/SscSPs/property_ledger/internal/models"
	"github.com/SscSPs/property_ledger/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
)

type PgxAccountRepository struct {
	BaseRepository
}

var _ portsrepo.AccountRepositoryFacade = (*PgxAccountRepository)(nil)

// ListAccounts returns the whole chart ordered by sort order then code.
func (r *PgxAccountRepository) ListAccounts(ctx context.Context) ([]domain.ChartAccount, error) {
	query := `
		SELECT account_id, code, name_ar, name_en, account_type, parent_id, is_active, sort_order,
		       created_at, updated_at
		FROM chart_accounts
		ORDER BY sort_order, code;
	`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to list accounts", err)
	}
	defer rows.Close()

	accounts := make([]domain.ChartAccount, 0)
	for rows.Next() {
		var m models.ChartAccount
		if err := rows.Scan(
			&m.AccountID, &m.Code, &m.NameAr, &m.NameEn, &m.AccountType, &m.ParentID,
			&m.IsActive, &m.SortOrder, &m.CreatedAt, &m.UpdatedAt,
		); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan account", err)
		}
		accounts = append(accounts, mapping.ToDomainChartAccount(m))
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "failed to iterate accounts", err)
	}
	return accounts, nil
}

// ReplaceAccounts deletes the stored chart and inserts the snapshot in one batch.
// Run it inside WithTx so readers never observe an empty chart.
func (r *PgxAccountRepository) ReplaceAccounts(ctx context.Context, accounts []domain.ChartAccount) error {
	batch := &pgx.Batch{}
	batch.Queue(`DELETE FROM chart_accounts;`)
	insert := `
		INSERT INTO chart_accounts (account_id, code, name_ar, name_en, account_type, parent_id, is_active, sort_order, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
	`
	for _, a := range accounts {
		m := mapping.ToModelChartAccount(a)
		batch.Queue(insert,
			m.AccountID, m.Code, m.NameAr, m.NameEn, m.AccountType, m.ParentID,
			m.IsActive, m.SortOrder, m.CreatedAt, m.UpdatedAt,
		)
	}

	br := r.db.SendBatch(ctx, batch)
	if err := br.Close(); err != nil {
		if isUniqueViolation(err) {
			return apperrors.NewAppError(409, "chart of accounts contains a duplicate id or active code", apperrors.ErrDuplicate)
		}
		return apperrors.NewAppError(500, "failed to replace chart of accounts", err)
	}
	r.touch(ctx, portsrepo.CollectionAccounts)
	return nil
}
