// C:\Users\PC_User\Desktop\Antigravity\在庫引当チェックツール_vr4\model\result_types.go
package model

// 引当結果のステータス
const (
	StatusSufficient = "sufficient" // 在庫アリ
	StatusShortage   = "shortage"   // 不足
	StatusExempt     = "exempt"     // 引当対象外
)

// CustomerRef は不足商品を発注した得意先の参照です。
type CustomerRef struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

// AllocationResult は商品コード単位の引当計算結果です。
type AllocationResult struct {
	ProductCode           string        `db:"product_code" json:"productCode"`
	ProductName           string        `db:"product_name" json:"productName"`
	TotalOrdered          int           `db:"total_ordered" json:"totalOrdered"`
	AvailableQuantity     int           `db:"available_quantity" json:"availableQuantity"`
	PostAllocationBalance int           `db:"post_allocation_balance" json:"postAllocationBalance"`
	Status                string        `db:"status" json:"status"`
	Customers             []CustomerRef `db:"-" json:"customers,omitempty"`
}

// CheckRun は1回の引当チェック実行の記録です。
type CheckRun struct {
	ID              int64  `db:"id" json:"id"`
	RunAt           string `db:"run_at" json:"runAt"`
	StockFilename   string `db:"stock_filename" json:"stockFilename"`
	OrderFilenames  string `db:"order_filenames" json:"orderFilenames"`
	ShortageCount   int    `db:"shortage_count" json:"shortageCount"`
	ExemptCount     int    `db:"exempt_count" json:"exemptCount"`
	SufficientCount int    `db:"sufficient_count" json:"sufficientCount"`
}
