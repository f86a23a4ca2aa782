// C:\Users\PC_User\Desktop\Antigravity\在庫引当チェックツール_vr4\allocation\handler.go
package allocation

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	"golang.org/x/sync/errgroup"

	"github.com/bukkepapa/inventory-check-v4/config"
	"github.com/bukkepapa/inventory-check-v4/database"
	"github.com/bukkepapa/inventory-check-v4/model"
	"github.com/bukkepapa/inventory-check-v4/ocr"
	"github.com/bukkepapa/inventory-check-v4/parsers"
	"github.com/bukkepapa/inventory-check-v4/pdforder"
)

func writeJSONError(w http.ResponseWriter, message string, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(map[string]string{"message": message})
}

// RunCheckResponse は引当チェックAPIの応答です。不足と対象外は明細を返し、
// 在庫アリは件数のみ返します。
type RunCheckResponse struct {
	Message         string                   `json:"message"`
	RunID           int64                    `json:"runId,omitempty"`
	Shortages       []model.AllocationResult `json:"shortages"`
	Exempts         []model.AllocationResult `json:"exempts"`
	SufficientCount int                      `json:"sufficientCount"`
	AllClear        bool                     `json:"allClear"`
}

type orderSource struct {
	filename string
	data     []byte
	isPDF    bool
}

// RunCheckHandler は在庫引当チェックを実行します。
// multipartで在庫ファイル1つ（stock）と受注ソース1つ以上（orders、
// PDFとテキスト混在可）を受け取り、引当結果を返します。
// 受注ソースは互いに独立なので並行処理し、連結順はアップロード順を保ちます。
func RunCheckHandler(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			writeJSONError(w, "Method Not Allowed", http.StatusMethodNotAllowed)
			return
		}
		log.Println("Received allocation check request...")

		if err := r.ParseMultipartForm(64 << 20); err != nil {
			writeJSONError(w, "ファイルのアップロードに失敗しました: "+err.Error(), http.StatusBadRequest)
			return
		}
		defer r.MultipartForm.RemoveAll()

		cfg := config.GetConfig()

		stockHeaders := r.MultipartForm.File["stock"]
		orderHeaders := r.MultipartForm.File["orders"]
		if len(stockHeaders) != 1 || len(orderHeaders) == 0 {
			writeJSONError(w, "在庫ファイル1つと受注ファイル1つ以上をアップロードしてください。", http.StatusBadRequest)
			return
		}

		// 在庫ファイルの読み込み。文字コード不明はバッチ中断（致命）
		stockRecords, err := readStockFile(stockHeaders[0], cfg)
		if err != nil {
			writeJSONError(w, err.Error(), http.StatusBadRequest)
			return
		}
		log.Printf("Loaded %d stock records from %s", len(stockRecords), stockHeaders[0].Filename)

		// 受注ソースを先にメモリへ読み込む（並行処理の準備）
		sources := make([]orderSource, 0, len(orderHeaders))
		var orderNames []string
		for _, fh := range orderHeaders {
			file, openErr := fh.Open()
			if openErr != nil {
				writeJSONError(w, fmt.Sprintf("%s を開けませんでした: %v", fh.Filename, openErr), http.StatusBadRequest)
				return
			}
			data, readErr := io.ReadAll(file)
			file.Close()
			if readErr != nil {
				writeJSONError(w, fmt.Sprintf("%s の読み取りに失敗しました: %v", fh.Filename, readErr), http.StatusBadRequest)
				return
			}
			isPDF := strings.EqualFold(filepath.Ext(fh.Filename), ".pdf")
			if isPDF && cfg.DisableScannedOrders {
				writeJSONError(w, fmt.Sprintf("スキャンPDFの取込は設定で無効化されています: %s", fh.Filename), http.StatusBadRequest)
				return
			}
			sources = append(sources, orderSource{filename: fh.Filename, data: data, isPDF: isPDF})
			orderNames = append(orderNames, fh.Filename)
		}

		// 各受注ソースは共有状態を持たないため並行に処理できる。
		// 結果はインデックスで格納し、連結順＝アップロード順を保証する。
		recognizer := ocr.NewClient(cfg.OCREndpoint)
		perSource := make([][]model.OrderRecord, len(sources))
		g, ctx := errgroup.WithContext(r.Context())
		for i, src := range sources {
			g.Go(func() error {
				var records []model.OrderRecord
				var err error
				if src.isPDF {
					records, err = pdforder.ProcessDocument(ctx, src.data, src.filename, recognizer, cfg)
				} else {
					records, err = parsers.ParseOrderTXT(bytes.NewReader(src.data))
				}
				if err != nil {
					return fmt.Errorf("%s: %w", src.filename, err)
				}
				perSource[i] = records
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			// 致命エラー（PDFが開けない・文字コード不明）だけがここに届く
			writeJSONError(w, err.Error(), http.StatusBadRequest)
			return
		}

		var allOrders []model.OrderRecord
		for _, records := range perSource {
			allOrders = append(allOrders, records...)
		}
		log.Printf("Collected %d order records from %d source(s)", len(allOrders), len(sources))

		normalized := NormalizeOrders(allOrders, cfg)
		results := Calculate(normalized, stockRecords, cfg)

		resp := RunCheckResponse{Shortages: []model.AllocationResult{}, Exempts: []model.AllocationResult{}}
		for _, res := range results {
			switch res.Status {
			case model.StatusShortage:
				resp.Shortages = append(resp.Shortages, res)
			case model.StatusExempt:
				resp.Exempts = append(resp.Exempts, res)
			default:
				resp.SufficientCount++
			}
		}
		resp.AllClear = len(resp.Shortages) == 0
		if resp.AllClear {
			resp.Message = "全商品在庫アリ。伝票印字・データ送信が可能です。"
		} else {
			resp.Message = fmt.Sprintf("不足商品アリ: %d件", len(resp.Shortages))
		}

		// 実行履歴の保存は補助機能なので、失敗してもチェック結果は返す
		run := model.CheckRun{
			RunAt:           time.Now().Format("2006-01-02 15:04:05"),
			StockFilename:   stockHeaders[0].Filename,
			OrderFilenames:  strings.Join(orderNames, ", "),
			ShortageCount:   len(resp.Shortages),
			ExemptCount:     len(resp.Exempts),
			SufficientCount: resp.SufficientCount,
		}
		runID, err := database.InsertCheckRun(db, run, results)
		if err != nil {
			log.Printf("WARN: 実行履歴の保存に失敗: %v", err)
		} else {
			resp.RunID = runID
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(resp)
		log.Println("Finished allocation check request.")
	}
}

func readStockFile(fh *multipart.FileHeader, cfg config.Config) ([]model.StockRecord, error) {
	file, err := fh.Open()
	if err != nil {
		return nil, fmt.Errorf("%s を開けませんでした: %v", fh.Filename, err)
	}
	defer file.Close()

	records, err := parsers.ParseStockCSV(file, cfg.StorageLocation)
	if err != nil {
		return nil, fmt.Errorf("%s: %v", fh.Filename, err)
	}
	return records, nil
}

// GetCheckHistoryHandler は過去の実行履歴を新しい順に返します。
func GetCheckHistoryHandler(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		runs, err := database.ListCheckRuns(db)
		if err != nil {
			log.Printf("Failed to list check runs: %v", err)
			writeJSONError(w, "履歴の取得に失敗しました。", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(runs)
	}
}

// GetCheckRunResultsHandler は指定した実行の引当結果明細を返します。
func GetCheckRunResultsHandler(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		idStr := strings.TrimPrefix(r.URL.Path, "/api/check/history/")
		id, err := strconv.ParseInt(idStr, 10, 64)
		if err != nil {
			writeJSONError(w, "実行IDが不正です。", http.StatusBadRequest)
			return
		}
		results, err := database.GetCheckRunResults(db, id)
		if err != nil {
			log.Printf("Failed to get check run results (id=%d): %v", id, err)
			writeJSONError(w, "実行結果の取得に失敗しました。", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(results)
	}
}
