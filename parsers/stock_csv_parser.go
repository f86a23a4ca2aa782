// C:\Users\PC_User\Desktop\Antigravity\在庫引当チェックツール_vr4\parsers\stock_csv_parser.go
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

// 速報倉庫在庫CSVの列位置（ヘッダーなし、0始まり）
const (
	stockColLocation = 1  // B列: 保管場所
	stockColCode     = 8  // I列: 商品コード
	stockColPackSize = 10 // K列: 入数
	stockColQuantity = 13 // N列: 在庫数
	stockColIncoming = 22 // W列: 入庫予定
)

// ParseStockCSV は速報倉庫在庫ファイルを読み込みます。
// 指定の保管場所の行だけを対象にし、在庫数には（入庫予定 × 入数）を加算します。
// 文字コードが判別できない場合はバッチ中断すべきエラーを返します。
func ParseStockCSV(r io.Reader, storageLocation string) ([]model.StockRecord, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("在庫ファイルの読み取りに失敗: %w", err)
	}

	decoded, encName, err := DecodeJapanese(raw)
	if err != nil {
		return nil, fmt.Errorf("在庫ファイルの文字コードエラー: %w", err)
	}
	log.Printf("Stock CSV decoded as %s", encName)

	reader := csv.NewReader(SkipBOM(bytes.NewReader(decoded)))
	reader.LazyQuotes = true
	reader.FieldsPerRecord = -1

	var records []model.StockRecord
	line := 0
	for {
		line++
		rec, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			log.Printf("WARN: 在庫CSV %d行目の読み取りエラー (スキップ): %v", line, err)
			continue
		}

		get := func(idx int) string {
			if idx < len(rec) {
				return strings.TrimSpace(rec[idx])
			}
			return ""
		}

		if get(stockColLocation) != storageLocation {
			continue
		}

		code := StripLeadingZeros(get(stockColCode))
		if code == "" {
			continue
		}

		quantity := parseIntField(get(stockColQuantity))
		packSize := parseIntField(get(stockColPackSize))
		incoming := parseIntField(get(stockColIncoming))

		// 棚卸中などでマイナス在庫が載ってくることがあるため0に繰り上げる
		available := quantity + incoming*packSize
		if available < 0 {
			available = 0
		}

		records = append(records, model.StockRecord{
			ProductCode:       code,
			AvailableQuantity: available,
		})
	}
	return records, nil
}

// StripLeadingZeros は商品コードの先頭ゼロを除去して正規化します。
// 全部ゼロのコードは空文字になります（呼び出し側で行ごと捨てる）。
func StripLeadingZeros(code string) string {
	return strings.TrimLeft(strings.TrimSpace(code), "0")
}
