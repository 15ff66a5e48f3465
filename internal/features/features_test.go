package features

import (
	"math"
	"testing"
	"time"

	"churn-engine/internal/domain/customer"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func record(id string, begin time.Time, end *time.Time, internet *customer.InternetRow, phone *customer.PhoneRow) customer.Record {
	contract := customer.ContractRow{
		CustomerID:       id,
		BeginDate:        begin,
		EndDate:          end,
		Type:             customer.TypeMonthToMonth,
		PaperlessBilling: true,
		PaymentMethod:    customer.PaymentElectronicCheck,
		MonthlyCharges:   decimal.NewFromFloat(70.35),
		TotalCharges:     decimal.NewFromFloat(151.65),
	}
	personal := customer.PersonalRow{CustomerID: id, Gender: "Male", Partner: true}
	return customer.NewRecord(contract, personal, internet, phone)
}

func TestBuild(t *testing.T) {
	begin := time.Date(2019, time.December, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2020, time.January, 1, 0, 0, 0, 0, time.UTC)

	t.Run("label is 1 iff an end date is present", func(t *testing.T) {
		records := []customer.Record{
			record("A", begin, nil, nil, nil),
			record("B", begin, &end, nil, nil),
		}
		m, err := Build(records)
		require.NoError(t, err)
		assert.Equal(t, []int{0, 1}, m.Labels)
		assert.Equal(t, []string{"A", "B"}, m.CustomerIDs)
	})

	t.Run("tenure uses end date for churned and reference date for active", func(t *testing.T) {
		records := []customer.Record{
			record("A", begin, nil, nil, nil),
			record("B", begin, &end, nil, nil),
		}
		m, err := Build(records)
		require.NoError(t, err)
		assert.Equal(t, 62.0, m.Rows[0][0])
		assert.Equal(t, 31.0, m.Rows[1][0])
	})

	t.Run("matrix is dense even without internet or phone service", func(t *testing.T) {
		records := []customer.Record{record("A", begin, nil, nil, nil)}
		m, err := Build(records)
		require.NoError(t, err)
		require.Len(t, m.Rows[0], len(m.Names))
		for i, v := range m.Rows[0] {
			assert.False(t, math.IsNaN(v), "feature %s is NaN", m.Names[i])
		}
	})

	t.Run("missing services encode as the NoService category", func(t *testing.T) {
		records := []customer.Record{record("A", begin, nil, nil, nil)}
		m, err := Build(records)
		require.NoError(t, err)

		row := m.Rows[0]
		assert.Equal(t, internetServiceEnc.Code("NoService"), row[10])
		for col := 11; col <= 17; col++ {
			assert.Equal(t, serviceFlagEnc.Code("NoService"), row[col], "column %s", m.Names[col])
		}
	})

	t.Run("rejects an empty record set", func(t *testing.T) {
		_, err := Build(nil)
		assert.Error(t, err)
	})
}

func TestEncoding(t *testing.T) {
	t.Run("encoding is idempotent", func(t *testing.T) {
		assert.Equal(t, paymentMethodEnc.Code("Mailed check"), paymentMethodEnc.Code("Mailed check"))
		assert.Equal(t, contractTypeEnc.Code("Two year"), contractTypeEnc.Code("Two year"))
	})

	t.Run("vocabulary codes are fixed and distinct", func(t *testing.T) {
		assert.Equal(t, 0.0, contractTypeEnc.Code("Month-to-month"))
		assert.Equal(t, 1.0, contractTypeEnc.Code("One year"))
		assert.Equal(t, 2.0, contractTypeEnc.Code("Two year"))
	})

	t.Run("unknown categories go to the other bucket, not an error", func(t *testing.T) {
		assert.Equal(t, paymentMethodEnc.OtherCode(), paymentMethodEnc.Code("Barter"))
		assert.Equal(t, paymentMethodEnc.OtherCode(), paymentMethodEnc.Code("Barter"))
	})

	t.Run("identical rows encode identically", func(t *testing.T) {
		begin := time.Date(2019, time.June, 1, 0, 0, 0, 0, time.UTC)
		a := record("A", begin, nil, nil, nil)
		assert.Equal(t, Encode(&a), Encode(&a))
	})
}
