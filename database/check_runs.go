// C:\Users\PC_User\Desktop\Antigravity\在庫引当チェックツール_vr4\database\check_runs.go
package database

import (
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/bukkepapa/inventory-check-v4/model"
)

// InsertCheckRun は1回の引当チェック実行とその結果明細を保存します。
func InsertCheckRun(db *sqlx.DB, run model.CheckRun, results []model.AllocationResult) (int64, error) {
	tx, err := db.Beginx()
	if err != nil {
		return 0, fmt.Errorf("failed to start transaction: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.Exec(`
		INSERT INTO check_runs (run_at, stock_filename, order_filenames, shortage_count, exempt_count, sufficient_count)
		VALUES (?, ?, ?, ?, ?, ?)`,
		run.RunAt, run.StockFilename, run.OrderFilenames,
		run.ShortageCount, run.ExemptCount, run.SufficientCount)
	if err != nil {
		return 0, fmt.Errorf("failed to insert check run: %w", err)
	}

	runID, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get check run id: %w", err)
	}

	const q = `
		INSERT INTO allocation_results
			(check_run_id, product_code, product_name, total_ordered, available_quantity, post_allocation_balance, status)
		VALUES (?, ?, ?, ?, ?, ?, ?)`
	for _, r := range results {
		if _, err := tx.Exec(q, runID, r.ProductCode, r.ProductName,
			r.TotalOrdered, r.AvailableQuantity, r.PostAllocationBalance, r.Status); err != nil {
			return 0, fmt.Errorf("failed to insert allocation result for %s: %w", r.ProductCode, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit error: %w", err)
	}
	return runID, nil
}

// ListCheckRuns は実行履歴を新しい順に最大50件返します。
func ListCheckRuns(db *sqlx.DB) ([]model.CheckRun, error) {
	var runs []model.CheckRun
	err := db.Select(&runs, `
		SELECT id, run_at, stock_filename, order_filenames, shortage_count, exempt_count, sufficient_count
		FROM check_runs
		ORDER BY id DESC
		LIMIT 50`)
	if err != nil {
		return nil, fmt.Errorf("failed to list check runs: %w", err)
	}
	if runs == nil {
		runs = []model.CheckRun{}
	}
	return runs, nil
}

// GetCheckRunResults は指定した実行の引当結果明細を返します。
func GetCheckRunResults(db *sqlx.DB, runID int64) ([]model.AllocationResult, error) {
	var results []model.AllocationResult
	err := db.Select(&results, `
		SELECT product_code, product_name, total_ordered, available_quantity, post_allocation_balance, status
		FROM allocation_results
		WHERE check_run_id = ?
		ORDER BY id`, runID)
	if err != nil {
		return nil, fmt.Errorf("failed to get allocation results for run %d: %w", runID, err)
	}
	if results == nil {
		results = []model.AllocationResult{}
	}
	return results, nil
}
