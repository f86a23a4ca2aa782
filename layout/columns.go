// C:\Users\PC_User\Desktop\Antigravity\在庫引当チェックツール_vr4\layout\columns.go
package layout

import (
	"strings"

	"github.com/bukkepapa/inventory-check-v4/model"
)

// ヘッダーの同義語。先に見つかったものを採用します。
var (
	ProductHeaderKeywords  = []string{"受注品目", "品目コード", "商品コード"}
	QuantityHeaderKeywords = []string{"数量", "受注数"}
)

// TableLayout は1ページ分の表レイアウト推定結果です。
type TableLayout struct {
	ProductCol model.Column
	QtyCol     model.Column
	TopY       float64 // 表本体の開始Y（品目ヘッダーの下辺）
	FromHeader bool    // false ならフォールバック位置
}

// FallbackRatios はヘッダー未検出時に使う、描画ページ寸法に対する比率です。
type FallbackRatios struct {
	ProductColX float64
	QtyColX     float64
	TableTopY   float64
}

// LocateColumns は品目コード列と数量列の位置、および表本体の開始Yを推定します。
// どちらかのヘッダーが見つからない場合は、両列と開始Yをフォールバック比率から
// 決めます（描画寸法は倍率に比例するため、倍率が変わっても位置関係は一定）。
// フォールバックはソフトな縮退であり、エラーにはしません。
func LocateColumns(tokens []model.Token, pageW, pageH, tolerance float64, fb FallbackRatios) TableLayout {
	var (
		prodX, qtyX, topY   float64
		prodFound, qtyFound bool
	)

	for _, t := range tokens {
		if !prodFound && containsAny(t.Text, ProductHeaderKeywords) {
			prodX = t.Box.CenterX()
			topY = t.Box.Bottom() // 開始Yは品目ヘッダーだけで決める
			prodFound = true
		}
		if !qtyFound && containsAny(t.Text, QuantityHeaderKeywords) {
			qtyX = t.Box.CenterX()
			qtyFound = true
		}
		if prodFound && qtyFound {
			break
		}
	}

	if !prodFound || !qtyFound {
		return TableLayout{
			ProductCol: model.Column{XCenter: pageW * fb.ProductColX, Tolerance: tolerance},
			QtyCol:     model.Column{XCenter: pageW * fb.QtyColX, Tolerance: tolerance},
			TopY:       pageH * fb.TableTopY,
			FromHeader: false,
		}
	}

	return TableLayout{
		ProductCol: model.Column{XCenter: prodX, Tolerance: tolerance},
		QtyCol:     model.Column{XCenter: qtyX, Tolerance: tolerance},
		TopY:       topY,
		FromHeader: true,
	}
}

func containsAny(s string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(s, kw) {
			return true
		}
	}
	return false
}
