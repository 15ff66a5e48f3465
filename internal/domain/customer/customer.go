package customer

import (
	"time"

	"github.com/shopspring/decimal"
)

type ContractType string

const (
	TypeMonthToMonth ContractType = "Month-to-month"
	TypeOneYear      ContractType = "One year"
	TypeTwoYear      ContractType = "Two year"
)

type PaymentMethod string

const (
	PaymentElectronicCheck PaymentMethod = "Electronic check"
	PaymentMailedCheck     PaymentMethod = "Mailed check"
	PaymentBankTransfer    PaymentMethod = "Bank transfer (automatic)"
	PaymentCreditCard      PaymentMethod = "Credit card (automatic)"
)

type InternetService string

const (
	InternetDSL       InternetService = "DSL"
	InternetFiber     InternetService = "Fiber optic"
	InternetNoService InternetService = "NoService"
)

// ServiceFlag is a tri-state subscription flag. Customers outside a
// service's source table carry FlagNoService, never a missing value.
type ServiceFlag string

const (
	FlagNo        ServiceFlag = "No"
	FlagYes       ServiceFlag = "Yes"
	FlagNoService ServiceFlag = "NoService"
)

type ContractRow struct {
	CustomerID       string
	BeginDate        time.Time
	EndDate          *time.Time
	Type             ContractType
	PaperlessBilling bool
	PaymentMethod    PaymentMethod
	MonthlyCharges   decimal.Decimal
	TotalCharges     decimal.Decimal
}

type PersonalRow struct {
	CustomerID    string
	Gender        string
	SeniorCitizen bool
	Partner       bool
	Dependents    bool
}

type InternetRow struct {
	CustomerID       string
	Service          InternetService
	OnlineSecurity   bool
	OnlineBackup     bool
	DeviceProtection bool
	TechSupport      bool
	StreamingTV      bool
	StreamingMovies  bool
}

type PhoneRow struct {
	CustomerID    string
	MultipleLines bool
}

type InternetAttributes struct {
	Service          InternetService
	OnlineSecurity   ServiceFlag
	OnlineBackup     ServiceFlag
	DeviceProtection ServiceFlag
	TechSupport      ServiceFlag
	StreamingTV      ServiceFlag
	StreamingMovies  ServiceFlag
}

type PhoneAttributes struct {
	MultipleLines ServiceFlag
}

// Record is the unified customer entity after the merge. It is built once
// per run and not mutated afterwards.
type Record struct {
	CustomerID string
	Contract   ContractRow
	Personal   PersonalRow
	Internet   InternetAttributes
	Phone      PhoneAttributes
}

// NewRecord joins one contract row with its personal counterpart and the
// optional internet and phone rows. Absent internet or phone subscriptions
// become explicit NoService attributes.
func NewRecord(contract ContractRow, personal PersonalRow, internet *InternetRow, phone *PhoneRow) Record {
	r := Record{
		CustomerID: contract.CustomerID,
		Contract:   contract,
		Personal:   personal,
	}

	if internet != nil {
		r.Internet = InternetAttributes{
			Service:          internet.Service,
			OnlineSecurity:   flagFromBool(internet.OnlineSecurity),
			OnlineBackup:     flagFromBool(internet.OnlineBackup),
			DeviceProtection: flagFromBool(internet.DeviceProtection),
			TechSupport:      flagFromBool(internet.TechSupport),
			StreamingTV:      flagFromBool(internet.StreamingTV),
			StreamingMovies:  flagFromBool(internet.StreamingMovies),
		}
	} else {
		r.Internet = InternetAttributes{
			Service:          InternetNoService,
			OnlineSecurity:   FlagNoService,
			OnlineBackup:     FlagNoService,
			DeviceProtection: FlagNoService,
			TechSupport:      FlagNoService,
			StreamingTV:      FlagNoService,
			StreamingMovies:  FlagNoService,
		}
	}

	if phone != nil {
		r.Phone = PhoneAttributes{MultipleLines: flagFromBool(phone.MultipleLines)}
	} else {
		r.Phone = PhoneAttributes{MultipleLines: FlagNoService}
	}

	return r
}

func (r *Record) Churned() bool {
	return r.Contract.EndDate != nil
}

// TenureDays is the elapsed contract duration in days: up to the end date
// for churned customers, up to the reference date for active ones.
func (r *Record) TenureDays(reference time.Time) float64 {
	end := reference
	if r.Contract.EndDate != nil {
		end = *r.Contract.EndDate
	}
	return end.Sub(r.Contract.BeginDate).Hours() / 24
}

func (r *Record) HasInternet() bool {
	return r.Internet.Service != InternetNoService
}

func (r *Record) HasPhone() bool {
	return r.Phone.MultipleLines != FlagNoService
}

func flagFromBool(subscribed bool) ServiceFlag {
	if subscribed {
		return FlagYes
	}
	return FlagNo
}
