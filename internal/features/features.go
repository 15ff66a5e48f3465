package features

import (
	"time"

	"churn-engine/internal/domain/customer"
	"churn-engine/internal/pkg/apperrors"
)

// ReferenceDate is the fixed as-of date for tenure and churn: an end date
// before it means the customer had churned by then.
var ReferenceDate = time.Date(2020, time.February, 1, 0, 0, 0, 0, time.UTC)

var featureNames = []string{
	"tenure_days",
	"monthly_charges",
	"total_charges",
	"contract_type",
	"paperless_billing",
	"payment_method",
	"gender",
	"senior_citizen",
	"partner",
	"dependents",
	"internet_service",
	"online_security",
	"online_backup",
	"device_protection",
	"tech_support",
	"streaming_tv",
	"streaming_movies",
	"multiple_lines",
}

// Matrix is the model-ready view of the merged table: one dense float64
// row and one 0/1 label per customer, in merged-table order.
type Matrix struct {
	Names       []string
	Rows        [][]float64
	Labels      []int
	CustomerIDs []string
}

func (m *Matrix) Len() int {
	return len(m.Rows)
}

// Build derives the churn label and the feature row for every merged
// record. The output has no absent cells by construction: optional
// attributes arrive as NoService categoricals and encode like any other
// vocabulary value.
func Build(records []customer.Record) (*Matrix, error) {
	if len(records) == 0 {
		return nil, apperrors.NewInvalidArgumentError("cannot build features from an empty record set")
	}

	m := &Matrix{
		Names:       featureNames,
		Rows:        make([][]float64, 0, len(records)),
		Labels:      make([]int, 0, len(records)),
		CustomerIDs: make([]string, 0, len(records)),
	}

	for i := range records {
		r := &records[i]
		m.Rows = append(m.Rows, Encode(r))
		m.Labels = append(m.Labels, label(r))
		m.CustomerIDs = append(m.CustomerIDs, r.CustomerID)
	}
	return m, nil
}

// Encode maps one customer record to its feature row. The same mapping
// serves training, evaluation and single-customer scoring.
func Encode(r *customer.Record) []float64 {
	return []float64{
		r.TenureDays(ReferenceDate),
		r.Contract.MonthlyCharges.InexactFloat64(),
		r.Contract.TotalCharges.InexactFloat64(),
		contractTypeEnc.Code(string(r.Contract.Type)),
		boolToFloat(r.Contract.PaperlessBilling),
		paymentMethodEnc.Code(string(r.Contract.PaymentMethod)),
		genderEnc.Code(r.Personal.Gender),
		boolToFloat(r.Personal.SeniorCitizen),
		boolToFloat(r.Personal.Partner),
		boolToFloat(r.Personal.Dependents),
		internetServiceEnc.Code(string(r.Internet.Service)),
		serviceFlagEnc.Code(string(r.Internet.OnlineSecurity)),
		serviceFlagEnc.Code(string(r.Internet.OnlineBackup)),
		serviceFlagEnc.Code(string(r.Internet.DeviceProtection)),
		serviceFlagEnc.Code(string(r.Internet.TechSupport)),
		serviceFlagEnc.Code(string(r.Internet.StreamingTV)),
		serviceFlagEnc.Code(string(r.Internet.StreamingMovies)),
		serviceFlagEnc.Code(string(r.Phone.MultipleLines)),
	}
}

func label(r *customer.Record) int {
	if r.Churned() {
		return 1
	}
	return 0
}

func boolToFloat(b bool) float64 {
	if b {
		return 1
	}
	return 0
}
