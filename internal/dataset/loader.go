package dataset

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"time"

	"churn-engine/internal/domain/customer"
	"churn-engine/internal/infrastructure/monitoring"
	"churn-engine/internal/pkg/apperrors"

	"github.com/shopspring/decimal"
)

const (
	SourceContract = "contract"
	SourcePersonal = "personal"
	SourceInternet = "internet"
	SourcePhone    = "phone"
)

const (
	dateLayout = "2006-01-02"
	noEndDate  = "No"
	keyColumn  = "customerID"
)

var (
	contractColumns = []string{keyColumn, "BeginDate", "EndDate", "Type", "PaperlessBilling", "PaymentMethod", "MonthlyCharges", "TotalCharges"}
	personalColumns = []string{keyColumn, "gender", "SeniorCitizen", "Partner", "Dependents"}
	internetColumns = []string{keyColumn, "InternetService", "OnlineSecurity", "OnlineBackup", "DeviceProtection", "TechSupport", "StreamingTV", "StreamingMovies"}
	phoneColumns    = []string{keyColumn, "MultipleLines"}
)

// table resolves column names against a CSV header so rows can be read by
// name regardless of column order in the source file.
type table struct {
	source string
	index  map[string]int
	reader *csv.Reader
	line   int
}

func newTable(source string, r io.Reader, required []string) (*table, error) {
	cr := csv.NewReader(r)
	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read %s header: %w", source, err)
	}

	index := make(map[string]int, len(header))
	for i, name := range header {
		index[strings.TrimSpace(name)] = i
	}
	for _, col := range required {
		if _, ok := index[col]; !ok {
			return nil, apperrors.NewSchemaError(source, col)
		}
	}
	return &table{source: source, index: index, reader: cr, line: 1}, nil
}

// next reads one data row; io.EOF marks the end of the table.
func (t *table) next() ([]string, error) {
	rec, err := t.reader.Read()
	if err != nil {
		return nil, err
	}
	t.line++
	return rec, nil
}

func (t *table) value(rec []string, column string) string {
	return strings.TrimSpace(rec[t.index[column]])
}

func (t *table) parseErr(column, value string, cause error) error {
	return apperrors.NewParseError(t.source, t.line, column, value, cause)
}

func (t *table) parseDate(rec []string, column string) (time.Time, error) {
	raw := t.value(rec, column)
	d, err := time.Parse(dateLayout, raw)
	if err != nil {
		return time.Time{}, t.parseErr(column, raw, err)
	}
	return d, nil
}

// parseEndDate treats the literal "No" (and an empty cell) as "still
// active", matching the source data's sentinel for open contracts.
func (t *table) parseEndDate(rec []string, column string) (*time.Time, error) {
	raw := t.value(rec, column)
	if raw == "" || raw == noEndDate {
		return nil, nil
	}
	d, err := time.Parse(dateLayout, raw)
	if err != nil {
		return nil, t.parseErr(column, raw, err)
	}
	return &d, nil
}

func (t *table) parseYesNo(rec []string, column string) (bool, error) {
	raw := t.value(rec, column)
	switch raw {
	case "Yes":
		return true, nil
	case "No":
		return false, nil
	default:
		return false, t.parseErr(column, raw, fmt.Errorf("expected Yes or No"))
	}
}

func (t *table) parseBinary(rec []string, column string) (bool, error) {
	raw := t.value(rec, column)
	switch raw {
	case "1":
		return true, nil
	case "0":
		return false, nil
	default:
		return false, t.parseErr(column, raw, fmt.Errorf("expected 0 or 1"))
	}
}

func (t *table) parseDecimal(rec []string, column string, emptyIsZero bool) (decimal.Decimal, error) {
	raw := t.value(rec, column)
	if raw == "" && emptyIsZero {
		return decimal.Zero, nil
	}
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Decimal{}, t.parseErr(column, raw, err)
	}
	return d, nil
}

func LoadContracts(r io.Reader) ([]customer.ContractRow, error) {
	t, err := newTable(SourceContract, r, contractColumns)
	if err != nil {
		return nil, err
	}

	var rows []customer.ContractRow
	for {
		rec, err := t.next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read %s row: %w", t.source, err)
		}

		begin, err := t.parseDate(rec, "BeginDate")
		if err != nil {
			return nil, err
		}
		end, err := t.parseEndDate(rec, "EndDate")
		if err != nil {
			return nil, err
		}
		paperless, err := t.parseYesNo(rec, "PaperlessBilling")
		if err != nil {
			return nil, err
		}
		monthly, err := t.parseDecimal(rec, "MonthlyCharges", false)
		if err != nil {
			return nil, err
		}
		// Customers whose contract began on the reference date have an
		// empty total-charges cell: nothing billed yet, so zero.
		total, err := t.parseDecimal(rec, "TotalCharges", true)
		if err != nil {
			return nil, err
		}

		rows = append(rows, customer.ContractRow{
			CustomerID:       t.value(rec, keyColumn),
			BeginDate:        begin,
			EndDate:          end,
			Type:             customer.ContractType(t.value(rec, "Type")),
			PaperlessBilling: paperless,
			PaymentMethod:    customer.PaymentMethod(t.value(rec, "PaymentMethod")),
			MonthlyCharges:   monthly,
			TotalCharges:     total,
		})
	}

	monitoring.RecordRowsLoaded(SourceContract, len(rows))
	return rows, nil
}

func LoadPersonal(r io.Reader) ([]customer.PersonalRow, error) {
	t, err := newTable(SourcePersonal, r, personalColumns)
	if err != nil {
		return nil, err
	}

	var rows []customer.PersonalRow
	for {
		rec, err := t.next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read %s row: %w", t.source, err)
		}

		senior, err := t.parseBinary(rec, "SeniorCitizen")
		if err != nil {
			return nil, err
		}
		partner, err := t.parseYesNo(rec, "Partner")
		if err != nil {
			return nil, err
		}
		dependents, err := t.parseYesNo(rec, "Dependents")
		if err != nil {
			return nil, err
		}

		rows = append(rows, customer.PersonalRow{
			CustomerID:    t.value(rec, keyColumn),
			Gender:        t.value(rec, "gender"),
			SeniorCitizen: senior,
			Partner:       partner,
			Dependents:    dependents,
		})
	}

	monitoring.RecordRowsLoaded(SourcePersonal, len(rows))
	return rows, nil
}

func LoadInternet(r io.Reader) ([]customer.InternetRow, error) {
	t, err := newTable(SourceInternet, r, internetColumns)
	if err != nil {
		return nil, err
	}

	flags := []string{"OnlineSecurity", "OnlineBackup", "DeviceProtection", "TechSupport", "StreamingTV", "StreamingMovies"}

	var rows []customer.InternetRow
	for {
		rec, err := t.next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read %s row: %w", t.source, err)
		}

		parsed := make([]bool, len(flags))
		for i, col := range flags {
			parsed[i], err = t.parseYesNo(rec, col)
			if err != nil {
				return nil, err
			}
		}

		rows = append(rows, customer.InternetRow{
			CustomerID:       t.value(rec, keyColumn),
			Service:          customer.InternetService(t.value(rec, "InternetService")),
			OnlineSecurity:   parsed[0],
			OnlineBackup:     parsed[1],
			DeviceProtection: parsed[2],
			TechSupport:      parsed[3],
			StreamingTV:      parsed[4],
			StreamingMovies:  parsed[5],
		})
	}

	monitoring.RecordRowsLoaded(SourceInternet, len(rows))
	return rows, nil
}

func LoadPhone(r io.Reader) ([]customer.PhoneRow, error) {
	t, err := newTable(SourcePhone, r, phoneColumns)
	if err != nil {
		return nil, err
	}

	var rows []customer.PhoneRow
	for {
		rec, err := t.next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read %s row: %w", t.source, err)
		}

		multiple, err := t.parseYesNo(rec, "MultipleLines")
		if err != nil {
			return nil, err
		}

		rows = append(rows, customer.PhoneRow{
			CustomerID:    t.value(rec, keyColumn),
			MultipleLines: multiple,
		})
	}

	monitoring.RecordRowsLoaded(SourcePhone, len(rows))
	return rows, nil
}
