package calculator

import (
	"context"
	"errors"
	"testing"

	"repeat-rca/pkg/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type staticSource []models.RawRecord

func (s staticSource) Records(context.Context) ([]models.RawRecord, error) {
	return s, nil
}

type failingSource struct{ err error }

func (f failingSource) Records(context.Context) ([]models.RawRecord, error) {
	return nil, f.err
}

var quiet = models.Config{DateLayout: "2/1/2006"}

func TestRun_ScenarioAB(t *testing.T) {
	src := staticSource{
		rec(2, "1", "A", "01/01/2024", "10", "Phone", "Mobile", "Female", "Web"),
		rec(3, "2", "A", "02/01/2024", "20", "Case", "Accessories", "Female", "Web"),
		rec(4, "3", "A", "03/01/2024", "30", "Case", "Accessories", "Female", "Web"),
		rec(5, "4", "B", "01/01/2024", "1,234.50", "Phone", "Mobile", "Male", "Mobile"),
	}
	res, err := Run(context.Background(), src, quiet)
	require.NoError(t, err)

	assert.Len(t, res.Customers, 2)
	require.Len(t, res.RepeatCustomers, 1)
	a := res.RepeatCustomers[0]
	assert.Equal(t, "A", a.CustomerID)
	assert.InDelta(t, 20.0, a.AvgAmount, 1e-9)
	assert.InDelta(t, 1.0, a.AvgGap.Float64, 1e-9)
	assert.Equal(t, 3, a.TotalTransactions)

	assert.Equal(t, []models.DemographicCount{{Gender: "Female", DeviceType: "Web", Count: 1}}, res.Demographics)
	assert.Equal(t, []models.CategoryCount{{Category: "Accessories", Count: 2}, {Category: "Mobile", Count: 1}}, res.TopCategories)
	assert.Equal(t, []models.CategoryCount{{Category: "Female", Count: 1}}, res.GenderCounts)
	assert.Empty(t, res.Warnings)
}

func TestRun_Idempotent(t *testing.T) {
	src := staticSource{
		rec(2, "1", "A", "01/01/2024", "10", "Phone", "Mobile", "Female", "Web"),
		rec(3, "2", "B", "02/01/2024", "20", "Case", "Accessories", "Male", "Web"),
		rec(4, "3", "A", "05/01/2024", "30", "Case", "Accessories", "Female", "Web"),
		rec(5, "4", "B", "09/01/2024", "5", "Pen", "Office", "Male", "Mobile"),
	}
	first, err := Run(context.Background(), src, quiet)
	require.NoError(t, err)
	second, err := Run(context.Background(), src, quiet)
	require.NoError(t, err)

	assert.Equal(t, first.Demographics, second.Demographics)
	assert.Equal(t, first.TopCategories, second.TopCategories)
	assert.Equal(t, first.Behavior, second.Behavior)
}

func TestRun_EmptyRepeatSubset(t *testing.T) {
	src := staticSource{
		rec(2, "1", "A", "01/01/2024", "10", "Phone", "Mobile", "Female", "Web"),
		rec(3, "2", "B", "02/01/2024", "20", "Case", "Accessories", "Male", "Web"),
	}
	res, err := Run(context.Background(), src, quiet)
	require.NoError(t, err)

	assert.Len(t, res.Customers, 2)
	assert.Empty(t, res.RepeatCustomers)
	assert.Empty(t, res.Demographics)
	assert.Empty(t, res.TopCategories)
	assert.Empty(t, res.GenderCounts)
	assert.Equal(t, 0, res.Behavior.AvgAmount.Count)
	assert.Equal(t, 0, res.Behavior.AvgGap.Count)
	require.Len(t, res.Warnings, 1)
	assert.True(t, errors.Is(res.Warnings[0], models.ErrEmptyResult))
}

func TestRun_Errors(t *testing.T) {
	_, err := Run(context.Background(), staticSource{
		rec(2, "1", "A", "01/01/2024", "abc", "Phone", "Mobile", "Female", "Web"),
	}, quiet)
	var dfe *models.DataFormatError
	assert.True(t, errors.As(err, &dfe))

	missing := &models.MissingColumnError{Columns: []string{"Gender"}}
	_, err = Run(context.Background(), failingSource{err: missing}, quiet)
	var mce *models.MissingColumnError
	assert.True(t, errors.As(err, &mce))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = Run(ctx, staticSource{}, quiet)
	assert.ErrorIs(t, err, context.Canceled)
}
