package models

import (
	"database/sql"
	"time"

	"github.com/shopspring/decimal"
)

/*
LOAD → raw rows as read from the source (CSV, XLSX or SQL table).
*/

// Column headers of the transaction log.
const (
	ColTransactionID = "Transaction_id"
	ColCustomerID    = "customer_id"
	ColDate          = "Date"
	ColAmount        = "Amount US$"
	ColProduct       = "Product"
	ColCategory      = "Category"
	ColGender        = "Gender"
	ColDeviceType    = "Device_Type"
)

// RequiredColumns lists the headers every source must provide, in reading order.
var RequiredColumns = []string{
	ColTransactionID, ColCustomerID, ColDate, ColAmount,
	ColProduct, ColCategory, ColGender, ColDeviceType,
}

// RawRecord is one source row, every field still textual.
type RawRecord struct {
	Line          int // 1-based source line (header = 1)
	TransactionID string
	CustomerID    string
	Date          string
	Amount        string
	Product       string
	Category      string
	Gender        string
	DeviceType    string
}

/*
CLEAN → typed transaction, sorted by (customer_id, date) and gap-annotated.
*/

// Transaction is a cleaned transaction record.
type Transaction struct {
	TransactionID string
	CustomerID    string
	Date          time.Time
	Amount        decimal.Decimal
	Product       string
	Category      string
	Gender        string
	DeviceType    string
	// Gap is the number of days since the customer's previous transaction.
	// Invalid for the customer's first transaction.
	Gap sql.NullInt64
}

/*
COMPUTE → customer-level features and summaries.
*/

// CustomerFeatures aggregates the transactions of one customer.
type CustomerFeatures struct {
	CustomerID        string
	AvgAmount         float64
	AvgGap            sql.NullFloat64 // invalid when the customer has a single transaction
	TotalTransactions int
	UniqueProducts    int
	Gender            string // from the chronologically first transaction
	DeviceType        string // idem
}

// DemographicCount is one (gender, device) cell of the cross-tab.
type DemographicCount struct {
	Gender     string
	DeviceType string
	Count      int
}

// ColumnStats holds describe()-style statistics for one numeric column.
// Fields other than Count are NaN when they cannot be computed.
type ColumnStats struct {
	Count int
	Mean  float64
	Std   float64
	Min   float64
	P25   float64
	P50   float64
	P75   float64
	Max   float64
}

// BehaviorSummary describes the repeat customers' spending and purchase rhythm.
type BehaviorSummary struct {
	AvgAmount ColumnStats
	AvgGap    ColumnStats
}

// CategoryCount is a label with its number of occurrences.
type CategoryCount struct {
	Category string
	Count    int
}

// Result bundles everything a run produces.
type Result struct {
	Transactions    []Transaction
	Customers       []CustomerFeatures
	RepeatCustomers []CustomerFeatures
	Demographics    []DemographicCount
	Behavior        BehaviorSummary
	TopCategories   []CategoryCount
	GenderCounts    []CategoryCount
	Warnings        []error // non-fatal conditions, e.g. ErrEmptyResult
}

/*
CONFIG → global parameters
*/

// Config holds the run parameters. Filled from RCA_* environment variables, then flags.
type Config struct {
	InputPath  string `envconfig:"INPUT" validate:"required_without=DSN"`
	DSN        string `envconfig:"DSN" validate:"required_without=InputPath"`
	Table      string `envconfig:"TABLE" default:"transactions" validate:"required,sqlident"`
	ChartPath  string `envconfig:"CHART" default:"gender_distribution.png"`
	DateLayout string `envconfig:"DATE_LAYOUT" default:"2/1/2006" validate:"required"`
	Delimiter  string `envconfig:"DELIMITER" default:"," validate:"required,len=1"`
	Verbose    bool   `envconfig:"VERBOSE" default:"true"`
}
