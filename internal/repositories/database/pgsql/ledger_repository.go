package pgsql

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/SscSPs/wallet_backend/internal/apperrors"
	"github.com/SscSPs/wallet_backend/internal/core/domain"
	portsrepo "github.com/SscSPs/wallet_backend/internal/core/ports/repositories"
	"github.com/SscSPs/wallet_backend/internal/models"
	"github.com/SscSPs/wallet_backend/internal/utils/accounting"
	"github.com/SscSPs/wallet_backend/internal/utils/mapping"
	"github.com/SscSPs/wallet_backend/internal/utils/pagination"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PgxLedgerRepository stores the append-only entry log. Every mutation that
// touches a balance locks rows in the order entry, then account.
type PgxLedgerRepository struct {
	BaseRepository
	accountRepo *PgxAccountRepository
}

func newPgxLedgerRepository(pool *pgxpool.Pool, accountRepo *PgxAccountRepository) *PgxLedgerRepository {
	return &PgxLedgerRepository{
		BaseRepository: BaseRepository{Pool: pool},
		accountRepo:    accountRepo,
	}
}

var _ portsrepo.LedgerRepositoryFacade = (*PgxLedgerRepository)(nil)

const entryColumns = `entry_id, account_id, kind, amount, balance_after, points, description, metadata,
	external_ref, external_status, provider_id, payment_type, currency, processed, created_at`

func scanEntry(row pgx.Row) (*domain.LedgerEntry, error) {
	var m models.LedgerEntry
	err := row.Scan(
		&m.EntryID,
		&m.AccountID,
		&m.Kind,
		&m.Amount,
		&m.BalanceAfter,
		&m.Points,
		&m.Description,
		&m.Metadata,
		&m.ExternalRef,
		&m.ExternalStatus,
		&m.ProviderID,
		&m.PaymentType,
		&m.Currency,
		&m.Processed,
		&m.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	d, err := mapping.ToDomainLedgerEntry(m)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

// insertEntry appends an entry and returns it with the assigned ID.
func insertEntry(ctx context.Context, q interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}, entry domain.LedgerEntry) (*domain.LedgerEntry, error) {
	m, err := mapping.ToModelLedgerEntry(entry)
	if err != nil {
		return nil, err
	}

	query := `
		INSERT INTO ledger_entries (
			account_id, kind, amount, balance_after, points, description, metadata,
			external_ref, external_status, provider_id, payment_type, currency, processed, created_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		RETURNING entry_id;
	`
	err = q.QueryRow(ctx, query,
		m.AccountID,
		m.Kind,
		m.Amount,
		m.BalanceAfter,
		m.Points,
		m.Description,
		m.Metadata,
		m.ExternalRef,
		m.ExternalStatus,
		m.ProviderID,
		m.PaymentType,
		m.Currency,
		m.Processed,
		m.CreatedAt,
	).Scan(&entry.EntryID)
	if err != nil {
		switch pgErrorCode(err) {
		case pgUniqueViolation:
			return nil, fmt.Errorf("%w: external reference already recorded", apperrors.ErrDuplicate)
		case pgForeignKeyViolation:
			return nil, fmt.Errorf("%w: account %s", apperrors.ErrNotFound, entry.AccountID)
		}
		return nil, apperrors.NewAppError(500, "failed to insert ledger entry", err)
	}
	return &entry, nil
}

// ApplyEntry locks the account, stamps balance_after and appends the entry and
// its optional reward side entry, all in one transaction.
func (r *PgxLedgerRepository) ApplyEntry(ctx context.Context, entry domain.LedgerEntry, reward *domain.LedgerEntry) (*domain.ApplyResult, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer r.Rollback(ctx, tx)

	account, err := r.accountRepo.findAccountForUpdate(ctx, tx, entry.AccountID)
	if err != nil {
		return nil, err
	}

	newBalance, err := accounting.NextBalance(account.Balance, entry.Kind, entry.Amount)
	if err != nil {
		return nil, err
	}

	if entry.Points < 0 {
		// The account lock serialises all writers of this account's points.
		var current int64
		err := tx.QueryRow(ctx, `
			SELECT COALESCE(SUM(points), 0)::BIGINT FROM ledger_entries
			WHERE account_id = $1 AND processed AND kind IN ($2, $3);
		`, entry.AccountID, domain.KindRewardEarn.String(), domain.KindRewardRedeem.String()).Scan(&current)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to sum reward points", err)
		}
		if err := accounting.CheckPointsAvailable(current, entry.Points); err != nil {
			return nil, err
		}
	}

	if !newBalance.Equal(account.Balance) {
		if err := r.accountRepo.updateBalanceInTx(ctx, tx, entry.AccountID, newBalance, entry.CreatedAt); err != nil {
			return nil, err
		}
	}

	entry.BalanceAfter = &newBalance
	saved, err := insertEntry(ctx, tx, entry)
	if err != nil {
		return nil, err
	}
	result := &domain.ApplyResult{Entry: *saved}

	if reward != nil {
		side := *reward
		side.BalanceAfter = &newBalance
		savedReward, err := insertEntry(ctx, tx, side)
		if err != nil {
			return nil, err
		}
		result.Reward = savedReward
	}

	if err := r.Commit(ctx, tx); err != nil {
		return nil, err
	}
	return result, nil
}

// CreatePendingEntry appends an unprocessed external entry.
func (r *PgxLedgerRepository) CreatePendingEntry(ctx context.Context, entry domain.LedgerEntry) (*domain.LedgerEntry, error) {
	if entry.ExternalRef == nil || *entry.ExternalRef == "" {
		return nil, fmt.Errorf("%w: pending entry needs an external reference", apperrors.ErrValidation)
	}
	entry.BalanceAfter = nil
	entry.Processed = false
	return insertEntry(ctx, r.Pool, entry)
}

// FinalizeExternalEntry runs decide against the locked entry and, when it allows,
// credits the account and marks the entry processed in the same transaction.
func (r *PgxLedgerRepository) FinalizeExternalEntry(ctx context.Context, externalRef string, provider domain.ProviderRef, decide portsrepo.FinalizeDecision) (*domain.FinalizeResult, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer r.Rollback(ctx, tx)

	query := `SELECT ` + entryColumns + ` FROM ledger_entries WHERE external_ref = $1 FOR UPDATE;`
	entry, err := scanEntry(tx.QueryRow(ctx, query, externalRef))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: transaction %s", apperrors.ErrNotFound, externalRef)
		}
		return nil, apperrors.NewAppError(500, "failed to lock entry "+externalRef, err)
	}

	apply, err := decide(*entry)
	if err != nil {
		return nil, err
	}
	if !apply {
		return &domain.FinalizeResult{Outcome: domain.FinalizeAlreadyProcessed, Entry: *entry}, nil
	}

	account, err := r.accountRepo.findAccountForUpdate(ctx, tx, entry.AccountID)
	if err != nil {
		return nil, err
	}
	newBalance, err := accounting.NextBalance(account.Balance, entry.Kind, entry.Amount)
	if err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	if err := r.accountRepo.updateBalanceInTx(ctx, tx, entry.AccountID, newBalance, now); err != nil {
		return nil, err
	}

	_, err = tx.Exec(ctx, `
		UPDATE ledger_entries
		SET processed = TRUE, external_status = $2, provider_id = NULLIF($3, ''), payment_type = COALESCE(NULLIF($5, ''), payment_type), balance_after = $4
		WHERE entry_id = $1;
	`, entry.EntryID, string(domain.ExternalSuccessful), provider.ID, newBalance, provider.PaymentType)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to finalize entry "+externalRef, err)
	}

	if err := r.Commit(ctx, tx); err != nil {
		return nil, err
	}

	entry.Processed = true
	entry.ExternalStatus = domain.StatusPtr(domain.ExternalSuccessful)
	entry.ProviderID = provider.ID
	if provider.PaymentType != "" {
		entry.PaymentType = provider.PaymentType
	}
	entry.BalanceAfter = &newBalance
	return &domain.FinalizeResult{Outcome: domain.FinalizeApplied, Entry: *entry}, nil
}

// MarkExternalStatus records a provider status on an unprocessed entry.
func (r *PgxLedgerRepository) MarkExternalStatus(ctx context.Context, externalRef string, status domain.ExternalStatus) (bool, error) {
	cmdTag, err := r.Pool.Exec(ctx, `
		UPDATE ledger_entries SET external_status = $2
		WHERE external_ref = $1 AND NOT processed AND external_status IS DISTINCT FROM $2;
	`, externalRef, string(status))
	if err != nil {
		return false, apperrors.NewAppError(500, "failed to update status of "+externalRef, err)
	}
	return cmdTag.RowsAffected() > 0, nil
}

// ExpirePendingEntries marks stale pending entries failed. Balances are untouched.
func (r *PgxLedgerRepository) ExpirePendingEntries(ctx context.Context, cutoff time.Time) (int64, error) {
	cmdTag, err := r.Pool.Exec(ctx, `
		UPDATE ledger_entries SET external_status = $1
		WHERE NOT processed AND external_ref IS NOT NULL AND external_status = $2 AND created_at < $3;
	`, string(domain.ExternalFailed), string(domain.ExternalPending), cutoff)
	if err != nil {
		return 0, apperrors.NewAppError(500, "failed to expire pending entries", err)
	}
	return cmdTag.RowsAffected(), nil
}

// FindEntryByExternalRef retrieves the entry carrying externalRef.
func (r *PgxLedgerRepository) FindEntryByExternalRef(ctx context.Context, externalRef string) (*domain.LedgerEntry, error) {
	query := `SELECT ` + entryColumns + ` FROM ledger_entries WHERE external_ref = $1;`
	entry, err := scanEntry(r.Pool.QueryRow(ctx, query, externalRef))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: transaction %s", apperrors.ErrNotFound, externalRef)
		}
		return nil, fmt.Errorf("failed to find entry %s: %w", externalRef, err)
	}
	return entry, nil
}

// ExternalRefExists reports whether any entry carries externalRef.
func (r *PgxLedgerRepository) ExternalRefExists(ctx context.Context, externalRef string) (bool, error) {
	var exists bool
	err := r.Pool.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM ledger_entries WHERE external_ref = $1);`, externalRef).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check external reference %s: %w", externalRef, err)
	}
	return exists, nil
}

// ListEntriesByAccount returns entries newest first, keyed on (created_at, entry_id).
func (r *PgxLedgerRepository) ListEntriesByAccount(ctx context.Context, accountID string, limit int, nextToken *string) ([]domain.LedgerEntry, *string, error) {
	limit = pagination.ClampLimit(limit)
	// We fetch one extra item to determine if there's a next page.
	fetchLimit := limit + 1

	baseQuery := `SELECT ` + entryColumns + ` FROM ledger_entries WHERE account_id = $1`
	orderByClause := `ORDER BY created_at DESC, entry_id DESC`
	args := []any{accountID}

	query := baseQuery
	if nextToken != nil && *nextToken != "" {
		lastCreatedAt, lastEntryID, decodeErr := pagination.DecodeEntryToken(*nextToken)
		if decodeErr != nil {
			return nil, nil, fmt.Errorf("%w: invalid nextToken: %v", apperrors.ErrValidation, decodeErr)
		}
		query += ` AND (created_at, entry_id) < ($2, $3)`
		args = append(args, lastCreatedAt, lastEntryID)
	}
	query += " " + orderByClause + " LIMIT $" + strconv.Itoa(len(args)+1) + ";"
	args = append(args, fetchLimit)

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, apperrors.NewAppError(500, "failed to query entries for account "+accountID, err)
	}
	defer rows.Close()

	entries := make([]domain.LedgerEntry, 0, fetchLimit)
	for rows.Next() {
		entry, err := scanEntry(rows)
		if err != nil {
			return nil, nil, apperrors.NewAppError(500, "failed to scan entry row for account "+accountID, err)
		}
		entries = append(entries, *entry)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, apperrors.NewAppError(500, "error iterating entry rows for account "+accountID, err)
	}

	var nextTokenVal *string
	if len(entries) > limit {
		last := entries[limit-1]
		token := pagination.EncodeEntryToken(last.CreatedAt, last.EntryID)
		nextTokenVal = &token
		entries = entries[:limit]
	}
	return entries, nextTokenVal, nil
}

// SumPointsByAccount sums points over processed reward entries.
func (r *PgxLedgerRepository) SumPointsByAccount(ctx context.Context, accountID string) (int64, error) {
	var total int64
	err := r.Pool.QueryRow(ctx, `
		SELECT COALESCE(SUM(points), 0)::BIGINT FROM ledger_entries
		WHERE account_id = $1 AND processed AND kind IN ($2, $3);
	`, accountID, domain.KindRewardEarn.String(), domain.KindRewardRedeem.String()).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("failed to sum points for account %s: %w", accountID, err)
	}
	return total, nil
}
