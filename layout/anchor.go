// C:\Users\PC_User\Desktop\Antigravity\在庫引当チェックツール_vr4\layout\anchor.go
package layout

import (
	"sort"
	"strings"

	"github.com/bukkepapa/inventory-check-v4/model"
)

// FindAnchor はトークン列を元の順序で走査し、patternを含む最初のトークンを
// アンカーとして返します。見つからない場合は ok=false（エラーではない）。
func FindAnchor(tokens []model.Token, pattern string) (model.Anchor, bool) {
	for _, t := range tokens {
		if strings.Contains(t.Text, pattern) {
			return model.Anchor{Pattern: pattern, Token: t}, true
		}
	}
	return model.Anchor{}, false
}

// TokensBelow はアンカー直下のトークンを上から順に返します。
// 条件: X中心の差が xRange 未満、上辺がアンカー下辺より下、縦の距離が yLimit 未満。
func TokensBelow(tokens []model.Token, anchor model.Anchor, xRange, yLimit float64) []model.Token {
	anchorX := anchor.Token.Box.CenterX()
	anchorBottom := anchor.Token.Box.Bottom()

	var candidates []model.Token
	for _, t := range tokens {
		cx := t.Box.CenterX()
		top := t.Box.Top()
		if abs(cx-anchorX) < xRange && top > anchorBottom && (top-anchorBottom) < yLimit {
			candidates = append(candidates, t)
		}
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].Box.Top() < candidates[j].Box.Top()
	})
	return candidates
}

// ResolveCustomer はアンカー直下のトークン列から顧客コードと顧客名を解決します。
// codeLength 桁の数字連続を含む最初のトークンがコード、その次のコードでない
// トークンが名前です。どちらも見つからなければ空文字を返します。
func ResolveCustomer(below []model.Token, codeLength int) (code, name string) {
	for _, t := range below {
		digits := digitsOnly(t.Text)
		if len(digits) == codeLength {
			if code == "" {
				code = digits
			}
			continue
		}
		if code != "" && name == "" && strings.TrimSpace(t.Text) != "" {
			name = strings.TrimSpace(t.Text)
		}
	}
	return code, name
}

func digitsOnly(s string) string {
	var sb strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			sb.WriteRune(r)
		}
	}
	return sb.String()
}

func abs(f float64) float64 {
	if f < 0 {
		return -f
	}
	return f
}
