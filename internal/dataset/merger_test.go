package dataset

import (
	"errors"
	"testing"
	"time"

	"churn-engine/internal/domain/customer"
	"churn-engine/internal/pkg/apperrors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func contractRow(id string) customer.ContractRow {
	return customer.ContractRow{
		CustomerID: id,
		BeginDate:  time.Date(2019, time.January, 1, 0, 0, 0, 0, time.UTC),
		Type:       customer.TypeMonthToMonth,
	}
}

func personalRow(id string) customer.PersonalRow {
	return customer.PersonalRow{CustomerID: id, Gender: "Female"}
}

func TestMerge(t *testing.T) {
	t.Run("every contract row appears exactly once, in order", func(t *testing.T) {
		contracts := []customer.ContractRow{contractRow("A"), contractRow("B"), contractRow("C")}
		personal := []customer.PersonalRow{personalRow("C"), personalRow("A"), personalRow("B")}
		internet := []customer.InternetRow{{CustomerID: "A", Service: customer.InternetDSL}}
		phone := []customer.PhoneRow{{CustomerID: "B", MultipleLines: true}}

		records, err := Merge(contracts, personal, internet, phone)
		require.NoError(t, err)
		require.Len(t, records, 3)
		assert.Equal(t, "A", records[0].CustomerID)
		assert.Equal(t, "B", records[1].CustomerID)
		assert.Equal(t, "C", records[2].CustomerID)
	})

	t.Run("absent internet and phone become NoService, never missing", func(t *testing.T) {
		contracts := []customer.ContractRow{contractRow("A"), contractRow("B")}
		personal := []customer.PersonalRow{personalRow("A"), personalRow("B")}
		internet := []customer.InternetRow{{CustomerID: "A", Service: customer.InternetFiber, TechSupport: true}}

		records, err := Merge(contracts, personal, internet, nil)
		require.NoError(t, err)

		assert.Equal(t, customer.InternetFiber, records[0].Internet.Service)
		assert.Equal(t, customer.FlagYes, records[0].Internet.TechSupport)

		assert.Equal(t, customer.InternetNoService, records[1].Internet.Service)
		assert.Equal(t, customer.FlagNoService, records[1].Internet.OnlineSecurity)
		assert.Equal(t, customer.FlagNoService, records[0].Phone.MultipleLines)
		assert.Equal(t, customer.FlagNoService, records[1].Phone.MultipleLines)
	})

	t.Run("duplicate contract key fails the join", func(t *testing.T) {
		contracts := []customer.ContractRow{contractRow("A"), contractRow("A")}
		personal := []customer.PersonalRow{personalRow("A")}

		_, err := Merge(contracts, personal, nil, nil)
		assert.True(t, errors.Is(err, apperrors.ErrJoinIntegrity))

		var joinErr *apperrors.JoinError
		require.True(t, errors.As(err, &joinErr))
		assert.Equal(t, "A", joinErr.CustomerID)
	})

	t.Run("duplicate personal key fails the join", func(t *testing.T) {
		contracts := []customer.ContractRow{contractRow("A")}
		personal := []customer.PersonalRow{personalRow("A"), personalRow("A")}

		_, err := Merge(contracts, personal, nil, nil)
		assert.True(t, errors.Is(err, apperrors.ErrJoinIntegrity))
	})

	t.Run("contract row without personal counterpart fails the join", func(t *testing.T) {
		contracts := []customer.ContractRow{contractRow("A"), contractRow("B")}
		personal := []customer.PersonalRow{personalRow("A")}

		_, err := Merge(contracts, personal, nil, nil)
		assert.True(t, errors.Is(err, apperrors.ErrJoinIntegrity))
	})

	t.Run("empty contract table fails the join", func(t *testing.T) {
		_, err := Merge(nil, nil, nil, nil)
		assert.True(t, errors.Is(err, apperrors.ErrJoinIntegrity))
	})
}
