package dataset

import (
	"churn-engine/internal/domain/customer"
	"churn-engine/internal/infrastructure/monitoring"
	"churn-engine/internal/pkg/apperrors"
)

// Merge left-joins the personal, internet and phone tables onto the
// contract table by customerID, in that order. Every contract row appears
// in the output exactly once, in its original position; customers missing
// from the optional internet/phone tables get NoService attributes.
func Merge(contracts []customer.ContractRow, personal []customer.PersonalRow, internet []customer.InternetRow, phone []customer.PhoneRow) ([]customer.Record, error) {
	if len(contracts) == 0 {
		return nil, apperrors.NewJoinError("", "contract table is empty")
	}

	personalByID := make(map[string]customer.PersonalRow, len(personal))
	for _, p := range personal {
		if _, ok := personalByID[p.CustomerID]; ok {
			return nil, apperrors.NewJoinError(p.CustomerID, "duplicate customerID in personal")
		}
		personalByID[p.CustomerID] = p
	}

	internetByID := make(map[string]customer.InternetRow, len(internet))
	for _, row := range internet {
		if _, ok := internetByID[row.CustomerID]; ok {
			return nil, apperrors.NewJoinError(row.CustomerID, "duplicate customerID in internet")
		}
		internetByID[row.CustomerID] = row
	}

	phoneByID := make(map[string]customer.PhoneRow, len(phone))
	for _, row := range phone {
		if _, ok := phoneByID[row.CustomerID]; ok {
			return nil, apperrors.NewJoinError(row.CustomerID, "duplicate customerID in phone")
		}
		phoneByID[row.CustomerID] = row
	}

	seen := make(map[string]struct{}, len(contracts))
	records := make([]customer.Record, 0, len(contracts))
	for _, c := range contracts {
		if _, ok := seen[c.CustomerID]; ok {
			return nil, apperrors.NewJoinError(c.CustomerID, "duplicate customerID in contract")
		}
		seen[c.CustomerID] = struct{}{}

		p, ok := personalByID[c.CustomerID]
		if !ok {
			return nil, apperrors.NewJoinError(c.CustomerID, "no matching personal row")
		}

		var inet *customer.InternetRow
		if row, ok := internetByID[c.CustomerID]; ok {
			inet = &row
		} else {
			monitoring.RecordNoServiceFill(SourceInternet)
		}

		var ph *customer.PhoneRow
		if row, ok := phoneByID[c.CustomerID]; ok {
			ph = &row
		} else {
			monitoring.RecordNoServiceFill(SourcePhone)
		}

		records = append(records, customer.NewRecord(c, p, inet, ph))
	}

	monitoring.RecordRowsMerged(len(records))
	return records, nil
}
