package calculator

import (
	"database/sql"

	"repeat-rca/pkg/models"

	"github.com/shopspring/decimal"
)

// DeriveFeatures rolls the cleaned table up to one row per customer.
// txs must be sorted by (customer_id, date); output follows first appearance.
func DeriveFeatures(txs []models.Transaction) []models.CustomerFeatures {
	type acc struct {
		sum      decimal.Decimal
		gapSum   int64
		gapCount int
		products map[string]struct{}
	}

	var out []models.CustomerFeatures
	var accs []*acc
	pos := map[string]int{}

	for _, tx := range txs {
		i, seen := pos[tx.CustomerID]
		if !seen {
			// first record wins for the demographic fields
			i = len(out)
			pos[tx.CustomerID] = i
			out = append(out, models.CustomerFeatures{
				CustomerID: tx.CustomerID,
				Gender:     tx.Gender,
				DeviceType: tx.DeviceType,
			})
			accs = append(accs, &acc{sum: decimal.Zero, products: map[string]struct{}{}})
		}
		a := accs[i]
		out[i].TotalTransactions++
		a.sum = a.sum.Add(tx.Amount)
		a.products[tx.Product] = struct{}{}
		if tx.Gap.Valid {
			a.gapSum += tx.Gap.Int64
			a.gapCount++
		}
	}

	for i := range out {
		a := accs[i]
		out[i].AvgAmount = a.sum.Div(decimal.NewFromInt(int64(out[i].TotalTransactions))).InexactFloat64()
		out[i].UniqueProducts = len(a.products)
		if a.gapCount > 0 {
			out[i].AvgGap = sql.NullFloat64{Float64: float64(a.gapSum) / float64(a.gapCount), Valid: true}
		}
	}
	return out
}

// SelectRepeat keeps customers with more than one transaction.
func SelectRepeat(features []models.CustomerFeatures) []models.CustomerFeatures {
	out := make([]models.CustomerFeatures, 0, len(features))
	for _, f := range features {
		if f.TotalTransactions > 1 {
			out = append(out, f)
		}
	}
	return out
}
