package mapping

import (
	"database/sql"

	"github.com/SscSPs/wallet_backend/internal/core/domain"
	"github.com/SscSPs/wallet_backend/internal/models"
)

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

// ToModelAccount converts a domain Account to a model Account
func ToModelAccount(d domain.Account) models.Account {
	return models.Account{
		AccountID:   d.AccountID,
		Phone:       nullString(d.Phone),
		Balance:     d.Balance,
		PinHash:     nullString(d.PinHash),
		AuditFields: ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainAccount converts a model Account to a domain Account
func ToDomainAccount(m models.Account) domain.Account {
	return domain.Account{
		AccountID:   m.AccountID,
		Phone:       m.Phone.String,
		Balance:     m.Balance,
		PinHash:     m.PinHash.String,
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}
