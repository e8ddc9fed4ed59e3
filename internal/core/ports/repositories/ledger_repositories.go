package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/wallet_backend/internal/core/domain"
)

// FinalizeDecision is evaluated while the entry row is locked. It returns
// apply=false for a benign no-op, or an error to abort without mutating anything.
type FinalizeDecision func(entry domain.LedgerEntry) (apply bool, err error)

// LedgerReader defines read operations over the entry log
type LedgerReader interface {
	// FindEntryByExternalRef retrieves the entry carrying an external payment reference.
	FindEntryByExternalRef(ctx context.Context, externalRef string) (*domain.LedgerEntry, error)

	// ExternalRefExists reports whether any entry carries the reference.
	ExternalRefExists(ctx context.Context, externalRef string) (bool, error)

	// ListEntriesByAccount returns entries newest first using token-based pagination.
	ListEntriesByAccount(ctx context.Context, accountID string, limit int, nextToken *string) ([]domain.LedgerEntry, *string, error)

	// SumPointsByAccount sums points over processed reward entries.
	SumPointsByAccount(ctx context.Context, accountID string) (int64, error)
}

// LedgerWriter defines the atomic mutations of the ledger. Each method is a single
// unit of work: either everything it describes becomes visible or nothing does.
type LedgerWriter interface {
	// ApplyEntry locks the account, applies the entry's balance effect, stamps
	// balance_after and appends the entry plus the optional reward side entry.
	ApplyEntry(ctx context.Context, entry domain.LedgerEntry, reward *domain.LedgerEntry) (*domain.ApplyResult, error)

	// CreatePendingEntry appends an unprocessed external entry without touching the balance.
	CreatePendingEntry(ctx context.Context, entry domain.LedgerEntry) (*domain.LedgerEntry, error)

	// FinalizeExternalEntry locks the entry, then the account, and credits the entry
	// amount when decide allows it.
	FinalizeExternalEntry(ctx context.Context, externalRef string, provider domain.ProviderRef, decide FinalizeDecision) (*domain.FinalizeResult, error)

	// MarkExternalStatus records a provider status on an unprocessed entry.
	// It reports whether a row changed.
	MarkExternalStatus(ctx context.Context, externalRef string, status domain.ExternalStatus) (bool, error)

	// ExpirePendingEntries marks unprocessed pending entries created before cutoff as failed.
	ExpirePendingEntries(ctx context.Context, cutoff time.Time) (int64, error)
}

// LedgerRepositoryFacade combines all ledger-related repository interfaces
type LedgerRepositoryFacade interface {
	LedgerReader
	LedgerWriter
}
