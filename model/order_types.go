// C:\Users\PC_User\Desktop\Antigravity\在庫引当チェックツール_vr4\model\order_types.go
package model

// OrderRecord は受注1明細です。PDF（OCR抽出）由来も受注ファイル（TSV）由来も
// 正規化後は同一に扱います。
type OrderRecord struct {
	CustomerCode    string `json:"customerCode"`
	CustomerName    string `json:"customerName"`
	SlipNumber      string `json:"slipNumber"`
	ProductCode     string `json:"productCode"`
	ProductName     string `json:"productName"`     // 商品名（漢字）
	ProductNameKana string `json:"productNameKana"` // 商品名（カナ）
	Quantity        int    `json:"quantity"`
}

// StockRecord は倉庫在庫1品目です。数量は取込時に（入庫予定 × 入数）を
// 加算済みの値です。
type StockRecord struct {
	ProductCode       string `json:"productCode"`
	AvailableQuantity int    `json:"availableQuantity"`
}
