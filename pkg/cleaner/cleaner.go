// Package cleaner turns raw records into a typed, sorted and gap-annotated
// transaction table.
package cleaner

import (
	"database/sql"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"repeat-rca/pkg/models"

	"github.com/shopspring/decimal"
)

// DefaultDateLayout is day/month/year; day and month may be zero-padded or not.
const DefaultDateLayout = "2/1/2006"

// ParseAmount drops grouping commas and parses the remaining text as a decimal.
func ParseAmount(s string) (decimal.Decimal, error) {
	clean := strings.TrimSpace(strings.ReplaceAll(s, ",", ""))
	if clean == "" {
		return decimal.Zero, errors.New("empty amount")
	}
	return decimal.NewFromString(clean)
}

// ParseDate parses s under layout, in UTC.
func ParseDate(s, layout string) (time.Time, error) {
	return time.ParseInLocation(layout, strings.TrimSpace(s), time.UTC)
}

// Clean parses every record, sorts by (customer_id, date) keeping the
// source order on ties, and fills Gap. The first malformed field aborts.
func Clean(raw []models.RawRecord, layout string) ([]models.Transaction, error) {
	if layout == "" {
		layout = DefaultDateLayout
	}

	txs := make([]models.Transaction, 0, len(raw))
	for _, r := range raw {
		amt, err := ParseAmount(r.Amount)
		if err != nil {
			return nil, &models.DataFormatError{Line: r.Line, Field: models.ColAmount, Value: r.Amount, Err: err}
		}
		d, err := ParseDate(r.Date, layout)
		if err != nil {
			return nil, &models.DataFormatError{Line: r.Line, Field: models.ColDate, Value: r.Date, Err: err}
		}
		txs = append(txs, models.Transaction{
			TransactionID: r.TransactionID,
			CustomerID:    r.CustomerID,
			Date:          d,
			Amount:        amt,
			Product:       r.Product,
			Category:      r.Category,
			Gender:        r.Gender,
			DeviceType:    r.DeviceType,
		})
	}

	sort.SliceStable(txs, func(i, j int) bool {
		if c := CompareCustomerIDs(txs[i].CustomerID, txs[j].CustomerID); c != 0 {
			return c < 0
		}
		return txs[i].Date.Before(txs[j].Date)
	})

	annotateGaps(txs)
	return txs, nil
}

// annotateGaps expects txs sorted by customer then date.
func annotateGaps(txs []models.Transaction) {
	for i := range txs {
		if i == 0 || txs[i].CustomerID != txs[i-1].CustomerID {
			txs[i].Gap = sql.NullInt64{}
			continue
		}
		days := int64(txs[i].Date.Sub(txs[i-1].Date).Hours() / 24)
		txs[i].Gap = sql.NullInt64{Int64: days, Valid: true}
	}
}

// CompareCustomerIDs orders integer ids numerically and everything else
// lexically; integer ids come first.
func CompareCustomerIDs(a, b string) int {
	ai, aErr := strconv.ParseInt(a, 10, 64)
	bi, bErr := strconv.ParseInt(b, 10, 64)
	switch {
	case aErr == nil && bErr == nil:
		switch {
		case ai < bi:
			return -1
		case ai > bi:
			return 1
		}
		return strings.Compare(a, b)
	case aErr == nil:
		return -1
	case bErr == nil:
		return 1
	}
	return strings.Compare(a, b)
}

// Describe a DataFormatError for logs without the wrapped parser noise.
func Describe(err error) string {
	var dfe *models.DataFormatError
	if errors.As(err, &dfe) {
		return fmt.Sprintf("%s=%q at line %d", dfe.Field, dfe.Value, dfe.Line)
	}
	return err.Error()
}
