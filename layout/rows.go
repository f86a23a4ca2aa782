// C:\Users\PC_User\Desktop\Antigravity\在庫引当チェックツール_vr4\layout\rows.go
package layout

import (
	"sort"

	"github.com/bukkepapa/inventory-check-v4/model"
)

// ヘッダー下辺ぎりぎりのかけらを表本体に入れないための下駄
const headerMargin = 5.0

type rowCluster struct {
	key    float64 // 行の代表Y（最初に入ったトークンの上辺）
	tokens []model.Token
}

// ClusterRows は表本体開始Yより下のトークンを行にまとめ、上から順に返します。
// 代表Yとの差が tolerance 未満なら既存の行に入り、なければ新しい行を開きます。
// 複数の行が許容範囲内にある場合は、先に開かれた行に入ります（決定的）。
// 保証するのは行の上下順だけで、行内のトークン順は列割当に任せます。
func ClusterRows(tokens []model.Token, topY, tolerance float64) [][]model.Token {
	var clusters []rowCluster

	for _, t := range tokens {
		top := t.Box.Top()
		if top <= topY+headerMargin {
			continue
		}
		joined := false
		for i := range clusters {
			if abs(top-clusters[i].key) < tolerance {
				clusters[i].tokens = append(clusters[i].tokens, t)
				joined = true
				break
			}
		}
		if !joined {
			clusters = append(clusters, rowCluster{key: top, tokens: []model.Token{t}})
		}
	}

	sort.SliceStable(clusters, func(i, j int) bool {
		return clusters[i].key < clusters[j].key
	})

	result := make([][]model.Token, 0, len(clusters))
	for _, c := range clusters {
		result = append(result, c.tokens)
	}
	return result
}
