// Package memory provides an in-process ledger store for development and tests.
package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/SscSPs/wallet_backend/internal/apperrors"
	"github.com/SscSPs/wallet_backend/internal/core/domain"
	portsrepo "github.com/SscSPs/wallet_backend/internal/core/ports/repositories"
	"github.com/SscSPs/wallet_backend/internal/utils/accounting"
	"github.com/SscSPs/wallet_backend/internal/utils/pagination"
)

// Store keeps accounts and entries in maps guarded by one mutex. Holding the
// write lock for a whole operation gives the same all-or-nothing behaviour the
// Postgres store gets from a transaction.
type Store struct {
	mu       sync.RWMutex
	accounts map[string]*domain.Account
	entries  []domain.LedgerEntry // Append-only, index = EntryID-1
	byRef    map[string]int       // external_ref -> index into entries
	now      func() time.Time
}

var (
	_ portsrepo.AccountRepositoryFacade = (*Store)(nil)
	_ portsrepo.LedgerRepositoryFacade  = (*Store)(nil)
)

func NewStore() *Store {
	return &Store{
		accounts: make(map[string]*domain.Account),
		byRef:    make(map[string]int),
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// NewRepositoryProvider wires a fresh Store behind both repository ports.
func NewRepositoryProvider() portsrepo.RepositoryProvider {
	s := NewStore()
	return portsrepo.RepositoryProvider{
		AccountRepo: s,
		LedgerRepo:  s,
	}
}

// =============================================================================
// ACCOUNTS
// =============================================================================

func (s *Store) FindAccountByID(_ context.Context, accountID string) (*domain.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	acc, ok := s.accounts[accountID]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	cp := *acc
	return &cp, nil
}

func (s *Store) SaveAccount(_ context.Context, account domain.Account) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.accounts[account.AccountID]; ok {
		return fmt.Errorf("%w: account with ID %s already exists", apperrors.ErrDuplicate, account.AccountID)
	}
	cp := account
	s.accounts[account.AccountID] = &cp
	return nil
}

func (s *Store) UpdateAccountPin(_ context.Context, accountID string, pinHash string, now time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	acc, ok := s.accounts[accountID]
	if !ok {
		return apperrors.ErrNotFound
	}
	acc.PinHash = pinHash
	acc.LastUpdatedAt = now
	return nil
}

// =============================================================================
// LEDGER
// =============================================================================

func (s *Store) appendLocked(entry domain.LedgerEntry) domain.LedgerEntry {
	entry.EntryID = int64(len(s.entries) + 1)
	s.entries = append(s.entries, entry)
	if entry.ExternalRef != nil {
		s.byRef[*entry.ExternalRef] = len(s.entries) - 1
	}
	return entry
}

func (s *Store) pointsLocked(accountID string) int64 {
	var total int64
	for _, e := range s.entries {
		if e.AccountID == accountID && e.Processed && e.Kind.IsReward() {
			total += e.Points
		}
	}
	return total
}

func (s *Store) ApplyEntry(_ context.Context, entry domain.LedgerEntry, reward *domain.LedgerEntry) (*domain.ApplyResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	acc, ok := s.accounts[entry.AccountID]
	if !ok {
		return nil, fmt.Errorf("%w: account %s", apperrors.ErrNotFound, entry.AccountID)
	}
	if entry.ExternalRef != nil {
		if _, taken := s.byRef[*entry.ExternalRef]; taken {
			return nil, fmt.Errorf("%w: external reference already recorded", apperrors.ErrDuplicate)
		}
	}

	newBalance, err := accounting.NextBalance(acc.Balance, entry.Kind, entry.Amount)
	if err != nil {
		return nil, err
	}
	if err := accounting.CheckPointsAvailable(s.pointsLocked(entry.AccountID), entry.Points); err != nil {
		return nil, err
	}

	// Every check has passed; nothing below can fail.
	acc.Balance = newBalance
	acc.LastUpdatedAt = entry.CreatedAt

	entry.BalanceAfter = &newBalance
	result := &domain.ApplyResult{Entry: s.appendLocked(entry)}
	if reward != nil {
		side := *reward
		side.BalanceAfter = &newBalance
		saved := s.appendLocked(side)
		result.Reward = &saved
	}
	return result, nil
}

func (s *Store) CreatePendingEntry(_ context.Context, entry domain.LedgerEntry) (*domain.LedgerEntry, error) {
	if entry.ExternalRef == nil || *entry.ExternalRef == "" {
		return nil, fmt.Errorf("%w: pending entry needs an external reference", apperrors.ErrValidation)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.accounts[entry.AccountID]; !ok {
		return nil, fmt.Errorf("%w: account %s", apperrors.ErrNotFound, entry.AccountID)
	}
	if _, taken := s.byRef[*entry.ExternalRef]; taken {
		return nil, fmt.Errorf("%w: external reference already recorded", apperrors.ErrDuplicate)
	}

	entry.BalanceAfter = nil
	entry.Processed = false
	saved := s.appendLocked(entry)
	return &saved, nil
}

func (s *Store) FinalizeExternalEntry(_ context.Context, externalRef string, provider domain.ProviderRef, decide portsrepo.FinalizeDecision) (*domain.FinalizeResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx, ok := s.byRef[externalRef]
	if !ok {
		return nil, fmt.Errorf("%w: transaction %s", apperrors.ErrNotFound, externalRef)
	}
	entry := s.entries[idx]

	apply, err := decide(entry)
	if err != nil {
		return nil, err
	}
	if !apply {
		return &domain.FinalizeResult{Outcome: domain.FinalizeAlreadyProcessed, Entry: entry}, nil
	}

	acc, ok := s.accounts[entry.AccountID]
	if !ok {
		return nil, fmt.Errorf("%w: account %s", apperrors.ErrNotFound, entry.AccountID)
	}
	newBalance, err := accounting.NextBalance(acc.Balance, entry.Kind, entry.Amount)
	if err != nil {
		return nil, err
	}

	acc.Balance = newBalance
	acc.LastUpdatedAt = s.now()

	entry.Processed = true
	entry.ExternalStatus = domain.StatusPtr(domain.ExternalSuccessful)
	entry.ProviderID = provider.ID
	if provider.PaymentType != "" {
		entry.PaymentType = provider.PaymentType
	}
	entry.BalanceAfter = &newBalance
	s.entries[idx] = entry

	return &domain.FinalizeResult{Outcome: domain.FinalizeApplied, Entry: entry}, nil
}

func (s *Store) MarkExternalStatus(_ context.Context, externalRef string, status domain.ExternalStatus) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx, ok := s.byRef[externalRef]
	if !ok {
		return false, nil
	}
	entry := &s.entries[idx]
	if entry.Processed || (entry.ExternalStatus != nil && *entry.ExternalStatus == status) {
		return false, nil
	}
	entry.ExternalStatus = domain.StatusPtr(status)
	return true, nil
}

func (s *Store) ExpirePendingEntries(_ context.Context, cutoff time.Time) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var n int64
	for i := range s.entries {
		e := &s.entries[i]
		if e.IsPending() && e.ExternalStatus != nil && *e.ExternalStatus == domain.ExternalPending && e.CreatedAt.Before(cutoff) {
			e.ExternalStatus = domain.StatusPtr(domain.ExternalFailed)
			n++
		}
	}
	return n, nil
}

func (s *Store) FindEntryByExternalRef(_ context.Context, externalRef string) (*domain.LedgerEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	idx, ok := s.byRef[externalRef]
	if !ok {
		return nil, fmt.Errorf("%w: transaction %s", apperrors.ErrNotFound, externalRef)
	}
	cp := s.entries[idx]
	return &cp, nil
}

func (s *Store) ExternalRefExists(_ context.Context, externalRef string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	_, ok := s.byRef[externalRef]
	return ok, nil
}

// ListEntriesByAccount orders by (created_at, entry_id) descending, like the Postgres store.
func (s *Store) ListEntriesByAccount(_ context.Context, accountID string, limit int, nextToken *string) ([]domain.LedgerEntry, *string, error) {
	limit = pagination.ClampLimit(limit)

	var (
		hasCursor bool
		curAt     time.Time
		curID     int64
	)
	if nextToken != nil && *nextToken != "" {
		at, id, err := pagination.DecodeEntryToken(*nextToken)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: invalid nextToken: %v", apperrors.ErrValidation, err)
		}
		hasCursor, curAt, curID = true, at, id
	}

	s.mu.RLock()
	matched := make([]domain.LedgerEntry, 0)
	for _, e := range s.entries {
		if e.AccountID != accountID {
			continue
		}
		if hasCursor && !before(e, curAt, curID) {
			continue
		}
		matched = append(matched, e)
	}
	s.mu.RUnlock()

	sort.Slice(matched, func(i, j int) bool {
		if !matched[i].CreatedAt.Equal(matched[j].CreatedAt) {
			return matched[i].CreatedAt.After(matched[j].CreatedAt)
		}
		return matched[i].EntryID > matched[j].EntryID
	})

	var next *string
	if len(matched) > limit {
		last := matched[limit-1]
		token := pagination.EncodeEntryToken(last.CreatedAt, last.EntryID)
		next = &token
		matched = matched[:limit]
	}
	return matched, next, nil
}

// before reports whether e sorts strictly after the cursor in descending order.
func before(e domain.LedgerEntry, at time.Time, id int64) bool {
	if e.CreatedAt.Equal(at) {
		return e.EntryID < id
	}
	return e.CreatedAt.Before(at)
}

func (s *Store) SumPointsByAccount(_ context.Context, accountID string) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.pointsLocked(accountID), nil
}
