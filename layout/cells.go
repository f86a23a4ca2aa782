// C:\Users\PC_User\Desktop\Antigravity\在庫引当チェックツール_vr4\layout\cells.go
package layout

import (
	"strconv"
	"strings"

	"github.com/bukkepapa/inventory-check-v4/model"
)

// 品目コードとして受け付ける桁数の範囲
const (
	minProductCodeDigits = 4
	maxProductCodeDigits = 12
)

// AssignCells は1行分のトークンを列に割り当て、品目コードと数量を返します。
// 各列とも許容範囲内で列中心に最も近いトークンを採用します（同距離なら後の
// トークン優先）。旧版の「最後にマッチしたトークン勝ち」は正しい読みを
// 上書きすることがあったため、最近傍方式に変更しています。
// コードと数量の両方が取れなければ ok=false で、行は黙って捨てられます。
func AssignCells(row []model.Token, tl TableLayout) (code string, qty int, ok bool) {
	var (
		codeDist = -1.0
		qtyDist  = -1.0
		qtySet   bool
	)

	for _, t := range row {
		cx := t.Box.CenterX()

		if d := abs(cx - tl.ProductCol.XCenter); d < tl.ProductCol.Tolerance {
			digits := digitsOnly(t.Text)
			if len(digits) >= minProductCodeDigits && len(digits) <= maxProductCodeDigits {
				if codeDist < 0 || d <= codeDist {
					code = digits
					codeDist = d
				}
			}
		}

		if d := abs(cx - tl.QtyCol.XCenter); d < tl.QtyCol.Tolerance {
			if n, parsed := parseQuantity(t.Text); parsed {
				if qtyDist < 0 || d <= qtyDist {
					qty = n
					qtyDist = d
					qtySet = true
				}
			}
			// パースできないトークンは無視する（ここで0にしない）
		}
	}

	if code == "" || !qtySet {
		return "", 0, false
	}
	return code, qty, true
}

// parseQuantity は数字とピリオド以外を取り除いてから数値化し、整数に切り捨てます。
func parseQuantity(s string) (int, bool) {
	var sb strings.Builder
	for _, r := range s {
		if (r >= '0' && r <= '9') || r == '.' {
			sb.WriteRune(r)
		}
	}
	cleaned := sb.String()
	if cleaned == "" {
		return 0, false
	}
	f, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0, false
	}
	return int(f), true
}
