// C:\Users\PC_User\Desktop\Antigravity\在庫引当チェックツール_vr4\model\ocr_types.go
package model

// BoundingBox はOCRが返す四隅座標です。
// [0]=左上, [1]=右上, [2]=右下, [3]=左下 の順（PaddleOCRのtext_regionと同じ）。
type BoundingBox [4][2]float64

// CenterX は上辺2点のX中点を返します。
func (b BoundingBox) CenterX() float64 {
	return (b[0][0] + b[1][0]) / 2
}

// Top は上辺のY座標を返します。
func (b BoundingBox) Top() float64 {
	return b[0][1]
}

// Bottom は下辺のY座標を返します。
func (b BoundingBox) Bottom() float64 {
	return b[2][1]
}

// Token はOCRが認識した1テキスト断片です。以降の処理では変更せず、
// フィルタとグループ化のみ行います。
type Token struct {
	Text       string      `json:"text"`
	Box        BoundingBox `json:"box"`
	Confidence float64     `json:"confidence"`
	PageIndex  int         `json:"pageIndex"`
}

// Anchor はラベル文字列（例: 出荷先）にマッチした基準トークンです。
// 見つからないことは正常系として扱います。
type Anchor struct {
	Pattern string
	Token   Token
}

// Column は表の1列（品目コード列・数量列）の水平位置です。
type Column struct {
	XCenter   float64
	Tolerance float64
}
