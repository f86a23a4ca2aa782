// C:\Users\PC_User\Desktop\Antigravity\在庫引当チェックツール_vr4\pdforder\rasterizer.go
package pdforder

import (
	"fmt"
	"image"

	"github.com/disintegration/imaging"
	"github.com/gen2brain/go-fitz"
)

// Document はPDFコンテナのラスタライズ境界です。
type Document struct {
	doc  *fitz.Document
	zoom float64
}

// OpenDocument はPDFをメモリから開きます。開けない場合はバッチ中断すべき
// エラーです（スキャン済みPDF以外が紛れたケース）。
func OpenDocument(data []byte, zoom float64) (*Document, error) {
	doc, err := fitz.NewFromMemory(data)
	if err != nil {
		return nil, fmt.Errorf("PDFを開けませんでした: %w", err)
	}
	return &Document{doc: doc, zoom: zoom}, nil
}

func (d *Document) Close() error {
	return d.doc.Close()
}

// NumPages はページ数を返します。
func (d *Document) NumPages() int {
	return d.doc.NumPage()
}

// RenderPage は指定ページを倍率に応じたDPIでレンダリングし、OCR向けの
// 前処理（グレースケール・コントラスト・シャープ化）をかけた画像を返します。
func (d *Document) RenderPage(pageIndex int) (image.Image, error) {
	// MuPDFの既定は72dpi相当なので、倍率をそのままDPIに換算する
	img, err := d.doc.ImageDPI(pageIndex, 72*d.zoom)
	if err != nil {
		return nil, fmt.Errorf("ページ%dのラスタライズに失敗: %w", pageIndex+1, err)
	}
	return enhanceForOCR(img), nil
}

// enhanceForOCR は認識精度を上げるための前処理です。
func enhanceForOCR(src image.Image) image.Image {
	img := imaging.Grayscale(src)
	img = imaging.AdjustContrast(img, 20)
	img = imaging.Sharpen(img, 1.0)
	return img
}
