package database

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"net/url"
	"regexp"
	"strings"
	"time"

	"repeat-rca/pkg/models"

	_ "github.com/go-sql-driver/mysql"
)

// sqlDateFormat renders DATE columns as day/month/year, the layout the
// cleaner expects from file sources too.
const sqlDateFormat = "%d/%m/%Y"

var tableNameRe = regexp.MustCompile(`^[A-Za-z0-9_]+$`)

// Open accepts mariadb:// or mysql:// URLs as well as native driver DSNs.
func Open(dsn string) (*sql.DB, string, error) {
	mysqlDSN, err := toMySQLDSN(dsn)
	if err != nil {
		return nil, "", err
	}
	db, err := sql.Open("mysql", mysqlDSN)
	if err != nil {
		return nil, "", err
	}
	db.SetMaxOpenConns(4)
	db.SetMaxIdleConns(4)
	db.SetConnMaxLifetime(30 * time.Minute)
	return db, mysqlDSN, nil
}

func toMySQLDSN(dsn string) (string, error) {
	if strings.HasPrefix(dsn, "mariadb://") || strings.HasPrefix(dsn, "mysql://") {
		u, err := url.Parse(dsn)
		if err != nil {
			return "", fmt.Errorf("parse dsn: %w", err)
		}
		user := ""
		pass := ""
		if u.User != nil {
			user = u.User.Username()
			pw, _ := u.User.Password()
			pass = pw
		}
		host := u.Host
		db := strings.TrimPrefix(u.Path, "/")
		if user == "" || host == "" || db == "" {
			return "", fmt.Errorf("incomplete dsn (user/host/db)")
		}
		return fmt.Sprintf("%s:%s@tcp(%s)/%s?parseTime=true&loc=UTC&interpolateParams=true",
			user, pass, host, db), nil
	}
	return dsn, nil
}

// Table is a transaction log stored in a MariaDB/MySQL table.
type Table struct {
	DB   *sql.DB
	Name string
}

func (t Table) Records(ctx context.Context) ([]models.RawRecord, error) {
	return LoadRecords(ctx, t.DB, t.Name)
}

// LoadRecords reads the transaction log from tableName. Columns are cast to
// text so the rows go through the same cleaning as file sources.
func LoadRecords(ctx context.Context, db *sql.DB, tableName string) ([]models.RawRecord, error) {
	if !tableNameRe.MatchString(tableName) {
		return nil, fmt.Errorf("invalid table name %q", tableName)
	}

	if err := checkColumns(ctx, db, tableName); err != nil {
		return nil, err
	}

	q := fmt.Sprintf(`
		SELECT
			CAST(t.Transaction_id AS CHAR),
			CAST(t.customer_id AS CHAR),
			DATE_FORMAT(t.Date, '%s'),
			CAST(t.`+"`Amount US$`"+` AS CHAR),
			t.Product,
			t.Category,
			t.Gender,
			t.Device_Type
		FROM %s t
	`, sqlDateFormat, tableName)

	rows, err := db.QueryContext(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("query %s: %w", tableName, err)
	}
	defer rows.Close()

	var out []models.RawRecord
	n := 0
	for rows.Next() {
		n++
		var f [8]sql.NullString
		if err := rows.Scan(&f[0], &f[1], &f[2], &f[3], &f[4], &f[5], &f[6], &f[7]); err != nil {
			return nil, fmt.Errorf("scan row %d: %w", n, err)
		}
		out = append(out, models.RawRecord{
			Line:          n, // row number for SQL sources
			TransactionID: f[0].String,
			CustomerID:    f[1].String,
			Date:          f[2].String,
			Amount:        f[3].String,
			Product:       f[4].String,
			Category:      f[5].String,
			Gender:        f[6].String,
			DeviceType:    f[7].String,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	log.Printf("[DEBUG] rows read from %s: %d", tableName, len(out))
	return out, nil
}

// checkColumns fails with MissingColumnError before the data query when
// the table lacks a required column.
func checkColumns(ctx context.Context, db *sql.DB, tableName string) error {
	rows, err := db.QueryContext(ctx, fmt.Sprintf("SELECT * FROM %s LIMIT 0", tableName))
	if err != nil {
		return fmt.Errorf("inspect %s: %w", tableName, err)
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return fmt.Errorf("columns of %s: %w", tableName, err)
	}
	have := make(map[string]bool, len(cols))
	for _, c := range cols {
		have[strings.ToLower(c)] = true
	}
	var missing []string
	for _, c := range models.RequiredColumns {
		if !have[strings.ToLower(c)] {
			missing = append(missing, c)
		}
	}
	if len(missing) > 0 {
		return &models.MissingColumnError{Columns: missing}
	}
	return nil
}
