package calculator

import (
	"context"
	"fmt"
	"log"

	"repeat-rca/pkg/cleaner"
	"repeat-rca/pkg/models"

	"github.com/schollz/progressbar/v3"
)

// Source yields the raw transaction log.
type Source interface {
	Records(ctx context.Context) ([]models.RawRecord, error)
}

const stageCount = 5

// Run executes load → clean → derive → segment → summarize.
// Any load or parse failure aborts with no partial result.
func Run(ctx context.Context, src Source, cfg models.Config) (*models.Result, error) {
	var bar *progressbar.ProgressBar
	if cfg.Verbose {
		bar = progressbar.Default(stageCount, "analysis")
	} else {
		bar = progressbar.DefaultSilent(stageCount, "analysis")
	}
	step := func(name string) error {
		_ = bar.Add(1)
		if cfg.Verbose {
			log.Printf("[INFO] stage %s done", name)
		}
		return ctx.Err()
	}

	raw, err := src.Records(ctx)
	if err != nil {
		return nil, fmt.Errorf("load: %w", err)
	}
	if err := step("load"); err != nil {
		return nil, err
	}

	txs, err := cleaner.Clean(raw, cfg.DateLayout)
	if err != nil {
		return nil, fmt.Errorf("clean: %w", err)
	}
	if err := step("clean"); err != nil {
		return nil, err
	}

	res := &models.Result{Transactions: txs}
	res.Customers = DeriveFeatures(txs)
	if err := step("derive"); err != nil {
		return nil, err
	}

	res.RepeatCustomers = SelectRepeat(res.Customers)
	if len(res.RepeatCustomers) == 0 {
		res.Warnings = append(res.Warnings, models.ErrEmptyResult)
	}
	if err := step("segment"); err != nil {
		return nil, err
	}

	res.Demographics = Demographics(res.RepeatCustomers)
	res.Behavior = Behavior(res.RepeatCustomers)
	res.TopCategories = TopCategories(txs, res.RepeatCustomers)
	res.GenderCounts = GenderCounts(res.RepeatCustomers)
	if err := step("summarize"); err != nil {
		return nil, err
	}

	if cfg.Verbose {
		log.Printf("[INFO] transactions=%d customers=%d repeat=%d",
			len(txs), len(res.Customers), len(res.RepeatCustomers))
	}
	return res, nil
}
