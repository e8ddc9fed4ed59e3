package mapping

import (
	"encoding/json"
	"fmt"

	"github.com/SscSPs/wallet_backend/internal/core/domain"
	"github.com/SscSPs/wallet_backend/internal/models"
	"github.com/shopspring/decimal"
)

// ToModelLedgerEntry converts a domain LedgerEntry to a model LedgerEntry
func ToModelLedgerEntry(d domain.LedgerEntry) (models.LedgerEntry, error) {
	meta, err := json.Marshal(d.Metadata)
	if err != nil {
		return models.LedgerEntry{}, fmt.Errorf("failed to encode entry metadata: %w", err)
	}

	m := models.LedgerEntry{
		EntryID:     d.EntryID,
		AccountID:   d.AccountID,
		Kind:        d.Kind.String(),
		Amount:      d.Amount,
		Points:      d.Points,
		Description: d.Description,
		Metadata:    meta,
		ProviderID:  nullString(d.ProviderID),
		PaymentType: nullString(d.PaymentType),
		Currency:    d.Currency,
		Processed:   d.Processed,
		CreatedAt:   d.CreatedAt,
	}
	if d.BalanceAfter != nil {
		m.BalanceAfter = decimal.NewNullDecimal(*d.BalanceAfter)
	}
	if d.ExternalRef != nil {
		m.ExternalRef = nullString(*d.ExternalRef)
	}
	if d.ExternalStatus != nil {
		m.ExternalStatus = nullString(string(*d.ExternalStatus))
	}
	return m, nil
}

// ToDomainLedgerEntry converts a model LedgerEntry to a domain LedgerEntry
func ToDomainLedgerEntry(m models.LedgerEntry) (domain.LedgerEntry, error) {
	d := domain.LedgerEntry{
		EntryID:     m.EntryID,
		AccountID:   m.AccountID,
		Kind:        domain.ParseKind(m.Kind),
		Amount:      m.Amount,
		Points:      m.Points,
		Description: m.Description,
		ProviderID:  m.ProviderID.String,
		PaymentType: m.PaymentType.String,
		Currency:    m.Currency,
		Processed:   m.Processed,
		CreatedAt:   m.CreatedAt,
	}
	if len(m.Metadata) > 0 {
		if err := json.Unmarshal(m.Metadata, &d.Metadata); err != nil {
			return domain.LedgerEntry{}, fmt.Errorf("failed to decode metadata of entry %d: %w", m.EntryID, err)
		}
	}
	if m.BalanceAfter.Valid {
		bal := m.BalanceAfter.Decimal
		d.BalanceAfter = &bal
	}
	if m.ExternalRef.Valid {
		d.ExternalRef = domain.StringPtr(m.ExternalRef.String)
	}
	if m.ExternalStatus.Valid {
		d.ExternalStatus = domain.StatusPtr(domain.ExternalStatus(m.ExternalStatus.String))
	}
	return d, nil
}

// ToDomainLedgerEntrySlice converts a slice of model entries to domain entries
func ToDomainLedgerEntrySlice(ms []models.LedgerEntry) ([]domain.LedgerEntry, error) {
	ds := make([]domain.LedgerEntry, 0, len(ms))
	for _, m := range ms {
		d, err := ToDomainLedgerEntry(m)
		if err != nil {
			return nil, err
		}
		ds = append(ds, d)
	}
	return ds, nil
}
