// C:\Users\PC_User\Desktop\Antigravity\在庫引当チェックツール_vr4\parsers\order_txt_parser.go
package parsers

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"log"
	"strings"

	"github.com/bukkepapa/inventory-check-v4/model"
)

// 受注ファイル（タブ区切り、ヘッダー1行）の列位置（0始まり）
const (
	orderColSlipNumber   = 4   // 受注伝票番号
	orderColCustomerCode = 14  // 顧客コード
	orderColCustomerName = 15  // 顧客名
	orderColProductCode  = 97  // 商品コード
	orderColNameKanji    = 106 // 商品名（漢字）
	orderColNameKana     = 108 // 商品名（カナ）
	orderColQuantity     = 118 // 発注数量
)

// ParseOrderTXT は受注ファイル（Shift-JIS・タブ区切り）を読み込みます。
// 商品コードは先頭ゼロを除去し、空になった行は捨てます。発注数量は変換
// 失敗時0、負数は0に繰り上げます。除外コードの適用はここでは行いません
// （PDF由来と合流した後の正規化段階で一括適用）。
func ParseOrderTXT(r io.Reader) ([]model.OrderRecord, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("受注ファイルの読み取りに失敗: %w", err)
	}

	decoded, encName, err := DecodeJapanese(raw)
	if err != nil {
		return nil, fmt.Errorf("受注ファイルの文字コードエラー: %w", err)
	}
	log.Printf("Order TXT decoded as %s", encName)

	reader := csv.NewReader(SkipBOM(bytes.NewReader(decoded)))
	reader.Comma = '\t'
	reader.LazyQuotes = true
	reader.FieldsPerRecord = -1

	// ヘッダー行を読み飛ばす
	if _, err := reader.Read(); err == io.EOF {
		return nil, fmt.Errorf("受注ファイルが空です")
	} else if err != nil {
		return nil, fmt.Errorf("受注ファイルのヘッダー読み取りに失敗: %w", err)
	}

	var records []model.OrderRecord
	line := 1
	for {
		line++
		rec, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			log.Printf("WARN: 受注ファイル %d行目の読み取りエラー (スキップ): %v", line, err)
			continue
		}

		get := func(idx int) string {
			if idx < len(rec) {
				return strings.TrimSpace(rec[idx])
			}
			return ""
		}

		code := StripLeadingZeros(get(orderColProductCode))
		if code == "" {
			continue
		}

		quantity := parseIntField(get(orderColQuantity))
		if quantity < 0 {
			quantity = 0
		}

		records = append(records, model.OrderRecord{
			CustomerCode:    get(orderColCustomerCode),
			CustomerName:    get(orderColCustomerName),
			SlipNumber:      get(orderColSlipNumber),
			ProductCode:     code,
			ProductName:     get(orderColNameKanji),
			ProductNameKana: get(orderColNameKana),
			Quantity:        quantity,
		})
	}
	return records, nil
}
