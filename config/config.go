// C:\Users\PC_User\Desktop\Antigravity\在庫引当チェックツール_vr4\config\config.go
package config

import (
	"encoding/json"
	"os"
	"sync"
)

// Config は引当チェックの調整値です。ゼロ値の項目はロード時に既定値で埋めます。
type Config struct {
	// 引当ルール
	ExcludedProductCode string `json:"excludedProductCode"` // 全ソースから除外する商品コード
	ExemptProductCode   string `json:"exemptProductCode"`   // 不足判定の対象外とする商品コード
	StorageLocation     string `json:"storageLocation"`     // 在庫ファイルで読み取る保管場所

	// OCR・レイアウト推定
	OCRZoom            float64 `json:"ocrZoom"`            // ラスタライズ倍率
	OCREndpoint        string  `json:"ocrEndpoint"`        // PaddleOCR servingのURL
	RowTolerance       float64 `json:"rowTolerance"`       // 行クラスタリングの許容Y差
	ColumnTolerance    float64 `json:"columnTolerance"`    // 列中心との許容X差
	AnchorXRange       float64 `json:"anchorXRange"`       // アンカー直下とみなす許容X差
	AnchorYLimit       float64 `json:"anchorYLimit"`       // アンカー直下とみなす許容Y距離
	CustomerCodeLength int     `json:"customerCodeLength"` // 顧客コードの桁数

	// ヘッダー未検出時のフォールバック位置（描画ページ寸法に対する比率）
	FallbackProductColRatio float64 `json:"fallbackProductColRatio"`
	FallbackQtyColRatio     float64 `json:"fallbackQtyColRatio"`
	FallbackTableTopRatio   float64 `json:"fallbackTableTopRatio"`

	// 機能フラグ（ゼロ値 = 有効）
	DisableScannedOrders  bool `json:"disableScannedOrders"`  // PDF受注の取込を止める
	DisableExemptHandling bool `json:"disableExemptHandling"` // 対象外コードの特例を止める

	// ▼▼▼【ここから追加】受注ポータル自動受信用 ▼▼▼
	PortalURL       string `json:"portalURL"`
	PortalUserID    string `json:"portalUserID"`
	PortalPassword  string `json:"portalPassword"`
	OrderFolderPath string `json:"orderFolderPath"`
	// ▲▲▲【追加ここまで】▲▲▲
}

var (
	cfg Config
	mu  sync.RWMutex
)

const configFilePath = "./inventory_check_config.json"

func defaults(c Config) Config {
	if c.ExcludedProductCode == "" {
		c.ExcludedProductCode = "30126"
	}
	if c.ExemptProductCode == "" {
		c.ExemptProductCode = "19005"
	}
	if c.StorageLocation == "" {
		c.StorageLocation = "A309001"
	}
	if c.OCRZoom == 0 {
		c.OCRZoom = 2.5
	}
	if c.OCREndpoint == "" {
		c.OCREndpoint = "http://localhost:8868/predict/ocr_system"
	}
	if c.RowTolerance == 0 {
		c.RowTolerance = 15
	}
	if c.ColumnTolerance == 0 {
		c.ColumnTolerance = 50
	}
	if c.AnchorXRange == 0 {
		c.AnchorXRange = 20
	}
	if c.AnchorYLimit == 0 {
		c.AnchorYLimit = 100
	}
	if c.CustomerCodeLength == 0 {
		c.CustomerCodeLength = 9
	}
	if c.FallbackProductColRatio == 0 {
		c.FallbackProductColRatio = 0.18
	}
	if c.FallbackQtyColRatio == 0 {
		c.FallbackQtyColRatio = 0.76
	}
	if c.FallbackTableTopRatio == 0 {
		c.FallbackTableTopRatio = 0.28
	}
	return c
}

func LoadConfig() (Config, error) {
	mu.Lock()
	defer mu.Unlock()

	file, err := os.ReadFile(configFilePath)
	if err != nil {
		if os.IsNotExist(err) {
			cfg = defaults(Config{})
			return cfg, nil
		}
		return Config{}, err
	}

	var tempCfg Config
	if err := json.Unmarshal(file, &tempCfg); err != nil {
		return Config{}, err
	}
	cfg = defaults(tempCfg)

	return cfg, nil
}

func SaveConfig(newCfg Config) error {
	mu.Lock()
	defer mu.Unlock()

	newCfg = defaults(newCfg)

	file, err := json.MarshalIndent(newCfg, "", "  ")
	if err != nil {
		return err
	}

	if err := os.WriteFile(configFilePath, file, 0644); err != nil {
		return err
	}
	cfg = newCfg
	return nil
}

func GetConfig() Config {
	mu.RLock()
	defer mu.RUnlock()
	return cfg
}
