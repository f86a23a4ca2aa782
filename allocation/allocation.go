// C:\Users\PC_User\Desktop\Antigravity\在庫引当チェックツール_vr4\allocation\allocation.go
package allocation

import (
	"github.com/bukkepapa/inventory-check-v4/config"
	"github.com/bukkepapa/inventory-check-v4/model"
	"github.com/bukkepapa/inventory-check-v4/parsers"
)

// NormalizeOrders は全ソースの受注明細を連結した後の正規化です。
// 商品コードの先頭ゼロを除去し、空になった明細と除外コードの明細を捨て、
// 負の数量を0に繰り上げます。これ以降、PDF由来とファイル由来の区別は
// 一切残りません。
func NormalizeOrders(records []model.OrderRecord, cfg config.Config) []model.OrderRecord {
	var result []model.OrderRecord
	for _, rec := range records {
		code := parsers.StripLeadingZeros(rec.ProductCode)
		if code == "" {
			continue
		}
		if code == cfg.ExcludedProductCode {
			continue
		}
		if rec.Quantity < 0 {
			rec.Quantity = 0
		}
		rec.ProductCode = code
		result = append(result, rec)
	}
	return result
}

// Calculate は正規化済みの受注明細を商品コードで集計し、倉庫在庫と突き合わせて
// 引当結果を返します。入力だけで結果が決まる純関数で、同じ入力なら何度実行
// しても同じ結果になります。
//
// - 受注合計は全ソースの数量の総和（取込順に依存しない）
// - 商品名は集計順で最初に見つかった漢字名、なければカナ名
// - 在庫にない商品は在庫0として扱う（受注主導の結合。在庫だけある商品は出ない）
// - 対象外コードは在庫・受注によらず status=exempt、引当後在庫=0
func Calculate(orders []model.OrderRecord, stock []model.StockRecord, cfg config.Config) []model.AllocationResult {
	stockByCode := make(map[string]int)
	for _, s := range stock {
		code := parsers.StripLeadingZeros(s.ProductCode)
		if code == "" {
			continue
		}
		stockByCode[code] += s.AvailableQuantity
	}

	type group struct {
		total     int
		nameKanji string
		nameKana  string
		customers []model.CustomerRef
		seen      map[string]struct{}
	}

	var codeOrder []string
	groups := make(map[string]*group)

	for _, rec := range orders {
		g, ok := groups[rec.ProductCode]
		if !ok {
			g = &group{seen: make(map[string]struct{})}
			groups[rec.ProductCode] = g
			codeOrder = append(codeOrder, rec.ProductCode)
		}
		g.total += rec.Quantity
		if g.nameKanji == "" && rec.ProductName != "" {
			g.nameKanji = rec.ProductName
		}
		if g.nameKana == "" && rec.ProductNameKana != "" {
			g.nameKana = rec.ProductNameKana
		}
		if rec.CustomerCode != "" || rec.CustomerName != "" {
			key := rec.CustomerCode + "|" + rec.CustomerName
			if _, dup := g.seen[key]; !dup {
				g.seen[key] = struct{}{}
				g.customers = append(g.customers, model.CustomerRef{
					Code: rec.CustomerCode,
					Name: rec.CustomerName,
				})
			}
		}
	}

	results := make([]model.AllocationResult, 0, len(codeOrder))
	for _, code := range codeOrder {
		g := groups[code]

		name := g.nameKanji
		if name == "" {
			name = g.nameKana
		}

		available := stockByCode[code] // 在庫レコードがなければ0

		res := model.AllocationResult{
			ProductCode:       code,
			ProductName:       name,
			TotalOrdered:      g.total,
			AvailableQuantity: available,
			Customers:         g.customers,
		}

		if !cfg.DisableExemptHandling && code == cfg.ExemptProductCode {
			res.Status = model.StatusExempt
			res.PostAllocationBalance = 0
		} else {
			res.PostAllocationBalance = available - g.total
			if res.PostAllocationBalance < 0 {
				res.Status = model.StatusShortage
			} else {
				res.Status = model.StatusSufficient
			}
		}

		results = append(results, res)
	}
	return results
}
