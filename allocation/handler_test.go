// C:\Users\PC_User\Desktop\Antigravity\在庫引当チェックツール_vr4\allocation\handler_test.go
package allocation

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"

	"github.com/bukkepapa/inventory-check-v4/config"
)

func testDB(t *testing.T) *sqlx.DB {
	t.Helper()
	db, err := sqlx.Open("sqlite3", ":memory:")
	if err != nil {
		t.Fatalf("db open: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	schema, err := os.ReadFile("../schema.sql")
	if err != nil {
		t.Fatalf("schema read: %v", err)
	}
	if _, err := db.Exec(string(schema)); err != nil {
		t.Fatalf("schema apply: %v", err)
	}
	return db
}

// 在庫CSVの1行（23列）。既定の保管場所 A309001 を使う。
func stockRow(code, packSize, quantity, incoming string) string {
	cols := make([]string, 23)
	cols[1] = "A309001"
	cols[8] = code
	cols[10] = packSize
	cols[13] = quantity
	cols[22] = incoming
	return strings.Join(cols, ",")
}

// 受注ファイルの1行（120列タブ区切り）。
func orderRow(prodCode, qty string) string {
	cols := make([]string, 120)
	cols[14] = "111111111"
	cols[15] = "A薬局"
	cols[97] = prodCode
	cols[118] = qty
	return strings.Join(cols, "\t")
}

func orderFile(rows ...string) string {
	header := strings.Repeat("H\t", 119) + "H"
	return header + "\r\n" + strings.Join(rows, "\r\n")
}

func multipartRequest(t *testing.T, stockCSV string, orders map[string]string) *http.Request {
	t.Helper()
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)

	fw, err := mw.CreateFormFile("stock", "stock.csv")
	if err != nil {
		t.Fatal(err)
	}
	fw.Write([]byte(stockCSV))

	for name, content := range orders {
		fw, err := mw.CreateFormFile("orders", name)
		if err != nil {
			t.Fatal(err)
		}
		fw.Write([]byte(content))
	}
	mw.Close()

	req := httptest.NewRequest(http.MethodPost, "/api/check/run", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func TestRunCheckHandler(t *testing.T) {
	if _, err := config.LoadConfig(); err != nil {
		t.Fatalf("config: %v", err)
	}
	db := testDB(t)

	stockCSV := strings.Join([]string{
		stockRow("12345", "1", "15", "0"),
		stockRow("67890", "1", "10", "0"),
	}, "\r\n")

	orderTXT := orderFile(
		orderRow("0012345", "10"),
		orderRow("12345", "7"), // 合算して17 → 在庫15で不足
		orderRow("67890", "2"),
		orderRow("19005", "50"), // 対象外コード
	)

	req := multipartRequest(t, stockCSV, map[string]string{"orders.txt": orderTXT})
	rr := httptest.NewRecorder()
	RunCheckHandler(db)(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rr.Code, rr.Body.String())
	}

	var resp RunCheckResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("レスポンスの解析失敗: %v", err)
	}

	if resp.AllClear {
		t.Error("不足があるのにAllClear")
	}
	if len(resp.Shortages) != 1 || resp.Shortages[0].ProductCode != "12345" ||
		resp.Shortages[0].PostAllocationBalance != -2 {
		t.Errorf("Shortages = %+v", resp.Shortages)
	}
	if len(resp.Exempts) != 1 || resp.Exempts[0].ProductCode != "19005" {
		t.Errorf("Exempts = %+v", resp.Exempts)
	}
	if resp.SufficientCount != 1 {
		t.Errorf("SufficientCount = %d, want 1", resp.SufficientCount)
	}
	if resp.RunID == 0 {
		t.Error("実行履歴が保存されていない")
	}
}

func TestRunCheckHandlerAllClear(t *testing.T) {
	if _, err := config.LoadConfig(); err != nil {
		t.Fatalf("config: %v", err)
	}
	db := testDB(t)

	stockCSV := stockRow("12345", "1", "100", "0")
	orderTXT := orderFile(orderRow("12345", "10"))

	req := multipartRequest(t, stockCSV, map[string]string{"orders.txt": orderTXT})
	rr := httptest.NewRecorder()
	RunCheckHandler(db)(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rr.Code, rr.Body.String())
	}

	var resp RunCheckResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if !resp.AllClear || len(resp.Shortages) != 0 {
		t.Errorf("resp = %+v", resp)
	}
}

func TestRunCheckHandlerValidation(t *testing.T) {
	if _, err := config.LoadConfig(); err != nil {
		t.Fatalf("config: %v", err)
	}
	db := testDB(t)

	t.Run("GETは拒否", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/check/run", nil)
		rr := httptest.NewRecorder()
		RunCheckHandler(db)(rr, req)
		if rr.Code != http.StatusMethodNotAllowed {
			t.Errorf("status = %d", rr.Code)
		}
	})

	t.Run("受注ファイルなし", func(t *testing.T) {
		req := multipartRequest(t, stockRow("12345", "1", "10", "0"), nil)
		rr := httptest.NewRecorder()
		RunCheckHandler(db)(rr, req)
		if rr.Code != http.StatusBadRequest {
			t.Errorf("status = %d", rr.Code)
		}
	})

	t.Run("在庫ファイルの文字コード不明", func(t *testing.T) {
		req := multipartRequest(t, string([]byte{0xFF, 0xFF, 0xFF}),
			map[string]string{"orders.txt": orderFile(orderRow("12345", "1"))})
		rr := httptest.NewRecorder()
		RunCheckHandler(db)(rr, req)
		if rr.Code != http.StatusBadRequest {
			t.Errorf("status = %d", rr.Code)
		}
	})
}
