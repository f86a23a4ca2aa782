// C:\Users\PC_User\Desktop\Antigravity\在庫引当チェックツール_vr4\pdforder\extract.go
package pdforder

import (
	"context"
	"image"
	"log"

	"github.com/bukkepapa/inventory-check-v4/config"
	"github.com/bukkepapa/inventory-check-v4/layout"
	"github.com/bukkepapa/inventory-check-v4/model"
)

// 出荷先欄のラベル。顧客コード・顧客名はこのアンカーの直下から拾います。
const shipToAnchor = "出荷先"

// Recognizer は文字認識エンジンの境界です。実装は ocr.Client ですが、
// テストでは合成トークンを返すスタブを差し込みます。
type Recognizer interface {
	Recognize(ctx context.Context, img image.Image, pageIndex int) ([]model.Token, error)
}

// ProcessDocument はスキャン済み受注PDFを1ページずつ処理して受注明細を
// 返します。ページ単位の認識失敗はWARNを出してそのページを飛ばすだけで、
// バッチ全体は止めません。PDFが開けない場合だけエラーを返します。
func ProcessDocument(ctx context.Context, data []byte, filename string, rec Recognizer, cfg config.Config) ([]model.OrderRecord, error) {
	doc, err := OpenDocument(data, cfg.OCRZoom)
	if err != nil {
		return nil, err
	}
	defer doc.Close()

	var all []model.OrderRecord
	for page := 0; page < doc.NumPages(); page++ {
		img, err := doc.RenderPage(page)
		if err != nil {
			log.Printf("WARN: %s ページ%d のラスタライズに失敗 (スキップ): %v", filename, page+1, err)
			continue
		}

		tokens, err := rec.Recognize(ctx, img, page)
		if err != nil {
			log.Printf("WARN: %s ページ%d のOCRに失敗 (スキップ): %v", filename, page+1, err)
			continue
		}
		if len(tokens) == 0 {
			continue
		}

		bounds := img.Bounds()
		records := extractPage(tokens, float64(bounds.Dx()), float64(bounds.Dy()), cfg)
		all = append(all, records...)
	}
	return all, nil
}

// extractPage は1ページ分のトークン列から受注明細を組み立てます。
// 認識エンジンに依存しない純粋な処理なので、合成トークンでテストできます。
func extractPage(tokens []model.Token, pageW, pageH float64, cfg config.Config) []model.OrderRecord {
	// 顧客の解決。アンカーがなければ「不明」のまま続行する
	customerCode := ""
	customerName := "不明"
	if anchor, found := layout.FindAnchor(tokens, shipToAnchor); found {
		below := layout.TokensBelow(tokens, anchor, cfg.AnchorXRange, cfg.AnchorYLimit)
		code, name := layout.ResolveCustomer(below, cfg.CustomerCodeLength)
		if code != "" {
			customerCode = code
		}
		if name != "" {
			customerName = name
		}
	}

	tl := layout.LocateColumns(tokens, pageW, pageH, cfg.ColumnTolerance, layout.FallbackRatios{
		ProductColX: cfg.FallbackProductColRatio,
		QtyColX:     cfg.FallbackQtyColRatio,
		TableTopY:   cfg.FallbackTableTopRatio,
	})
	if !tl.FromHeader {
		log.Printf("WARN: 表ヘッダー未検出のためフォールバック位置を使用します (page=%d)", tokens[0].PageIndex+1)
	}

	var records []model.OrderRecord
	for _, row := range layout.ClusterRows(tokens, tl.TopY, cfg.RowTolerance) {
		code, qty, ok := layout.AssignCells(row, tl)
		if !ok {
			// コードか数量が取れない行はOCRノイズとして黙って捨てる
			continue
		}
		records = append(records, model.OrderRecord{
			CustomerCode: customerCode,
			CustomerName: customerName,
			ProductCode:  code,
			Quantity:     qty,
		})
	}
	return records
}
