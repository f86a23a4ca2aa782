// C:\Users\PC_User\Desktop\Antigravity\在庫引当チェックツール_vr4\ocr\client.go
package ocr

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"image"
	"image/png"
	"net/http"
	"time"

	"github.com/bukkepapa/inventory-check-v4/model"
)

// Client はPaddleOCR serving (hub serving ocr_system) へのHTTPクライアントです。
// 認識エンジン自体はブラックボックスとして扱い、画像を渡してトークン列を
// 受け取るだけの境界です。
type Client struct {
	endpoint   string
	httpClient *http.Client
}

func NewClient(endpoint string) *Client {
	return &Client{
		endpoint: endpoint,
		httpClient: &http.Client{
			Timeout: 120 * time.Second,
		},
	}
}

type ocrRequest struct {
	Images []string `json:"images"`
}

type ocrResponse struct {
	Status  string           `json:"status"`
	Msg     string           `json:"msg"`
	Results [][]ocrLineEntry `json:"results"`
}

type ocrLineEntry struct {
	Text       string       `json:"text"`
	Confidence float64      `json:"confidence"`
	TextRegion [][2]float64 `json:"text_region"`
}

// Recognize は1ページ分の画像をOCRにかけ、認識トークンを返します。
// 認識結果が1件もないのは正常です（空スライスを返す）。呼び出しは
// contextでキャンセルできます。
func (c *Client) Recognize(ctx context.Context, img image.Image, pageIndex int) ([]model.Token, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("ページ画像のPNGエンコードに失敗: %w", err)
	}

	payload, err := json.Marshal(ocrRequest{
		Images: []string{base64.StdEncoding.EncodeToString(buf.Bytes())},
	})
	if err != nil {
		return nil, fmt.Errorf("OCRリクエストの作成に失敗: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("OCRリクエストの作成に失敗: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("OCRサーバーへの接続に失敗: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("OCRサーバーがエラーを返しました: HTTP %d", resp.StatusCode)
	}

	var decoded ocrResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, fmt.Errorf("OCRレスポンスの解析に失敗: %w", err)
	}

	// hub servingは成功時 status="000" を返す
	if decoded.Status != "" && decoded.Status != "000" {
		return nil, fmt.Errorf("OCRサーバーがエラーを返しました: status=%s msg=%s", decoded.Status, decoded.Msg)
	}

	var tokens []model.Token
	for _, page := range decoded.Results {
		for _, line := range page {
			if line.Text == "" || len(line.TextRegion) < 4 {
				continue
			}
			var box model.BoundingBox
			for i := 0; i < 4; i++ {
				box[i] = line.TextRegion[i]
			}
			tokens = append(tokens, model.Token{
				Text:       line.Text,
				Box:        box,
				Confidence: line.Confidence,
				PageIndex:  pageIndex,
			})
		}
	}
	return tokens, nil
}
