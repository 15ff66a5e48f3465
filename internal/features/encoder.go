package features

import (
	"churn-engine/internal/infrastructure/monitoring"
)

// Encoding maps a categorical vocabulary to fixed numeric codes. The
// vocabulary is declared once at package scope so train and evaluation
// rows always see the same mapping. Values outside the vocabulary go to a
// single other bucket (one code past the known range) instead of failing
// the row.
type Encoding struct {
	attribute string
	codes     map[string]float64
	other     float64
}

func newEncoding(attribute string, vocabulary ...string) Encoding {
	codes := make(map[string]float64, len(vocabulary))
	for i, v := range vocabulary {
		codes[v] = float64(i)
	}
	return Encoding{attribute: attribute, codes: codes, other: float64(len(vocabulary))}
}

func (e Encoding) Code(value string) float64 {
	if code, ok := e.codes[value]; ok {
		return code
	}
	monitoring.RecordUnknownCategory(e.attribute)
	return e.other
}

// OtherCode is the bucket assigned to values outside the vocabulary.
func (e Encoding) OtherCode() float64 {
	return e.other
}

var (
	contractTypeEnc = newEncoding("contract_type",
		"Month-to-month", "One year", "Two year")

	paymentMethodEnc = newEncoding("payment_method",
		"Electronic check", "Mailed check", "Bank transfer (automatic)", "Credit card (automatic)")

	genderEnc = newEncoding("gender", "Female", "Male")

	internetServiceEnc = newEncoding("internet_service",
		"DSL", "Fiber optic", "NoService")

	serviceFlagEnc = newEncoding("service_flag", "No", "Yes", "NoService")
)
