// C:\Users\PC_User\Desktop\Antigravity\在庫引当チェックツール_vr4\ocr\client_test.go
package ocr

import (
	"context"
	"encoding/json"
	"image"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func testImage() image.Image {
	return image.NewGray(image.Rect(0, 0, 10, 10))
}

func TestRecognize(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req ocrRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("リクエストの解析失敗: %v", err)
		}
		if len(req.Images) != 1 || req.Images[0] == "" {
			t.Errorf("images = %v", req.Images)
		}

		resp := ocrResponse{
			Status: "000",
			Results: [][]ocrLineEntry{{
				{
					Text:       "出荷先",
					Confidence: 0.98,
					TextRegion: [][2]float64{{30, 50}, {90, 50}, {90, 65}, {30, 65}},
				},
				{
					Text:       "", // 空テキストは捨てる
					Confidence: 0.5,
					TextRegion: [][2]float64{{0, 0}, {1, 0}, {1, 1}, {0, 1}},
				},
				{
					Text:       "頂点不足",
					Confidence: 0.9,
					TextRegion: [][2]float64{{0, 0}, {1, 1}},
				},
			}},
		}
		json.NewEncoder(w).Encode(resp)
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	tokens, err := client.Recognize(context.Background(), testImage(), 3)
	if err != nil {
		t.Fatalf("err = %v", err)
	}
	if len(tokens) != 1 {
		t.Fatalf("len(tokens) = %d, want 1", len(tokens))
	}

	tk := tokens[0]
	if tk.Text != "出荷先" || tk.PageIndex != 3 {
		t.Errorf("token = %+v", tk)
	}
	if tk.Box.CenterX() != 60 || tk.Box.Top() != 50 || tk.Box.Bottom() != 65 {
		t.Errorf("box = %+v", tk.Box)
	}
}

func TestRecognizeNoResults(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(ocrResponse{Status: "000", Results: [][]ocrLineEntry{{}}})
	}))
	defer srv.Close()

	tokens, err := NewClient(srv.URL).Recognize(context.Background(), testImage(), 0)
	if err != nil {
		t.Fatalf("err = %v", err)
	}
	if len(tokens) != 0 {
		t.Errorf("len(tokens) = %d, want 0 (認識0件は正常)", len(tokens))
	}
}

func TestRecognizeStatusError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(ocrResponse{Status: "-1", Msg: "Please check data format!"})
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL).Recognize(context.Background(), testImage(), 0)
	if err == nil {
		t.Fatal("エラーステータスでエラーにならなかった")
	}
	if !strings.Contains(err.Error(), "-1") {
		t.Errorf("エラーにステータスが含まれていない: %v", err)
	}
}

func TestRecognizeServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	if _, err := NewClient(srv.URL).Recognize(context.Background(), testImage(), 0); err == nil {
		t.Error("HTTP 500でエラーにならなかった")
	}
}

func TestRecognizeCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	defer srv.Close()

	if _, err := NewClient(srv.URL).Recognize(ctx, testImage(), 0); err == nil {
		t.Error("キャンセル済みcontextでエラーにならなかった")
	}
}
