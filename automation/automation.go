// C:\Users\PC_User\Desktop\Antigravity\在庫引当チェックツール_vr4\automation\automation.go
package automation

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/input"
	"github.com/go-rod/rod/lib/launcher"
)

// DownloadOrderFile は受注ポータルにログインし、未受信の受注ファイルを
// ダウンロードして保存先パスを返します。未受信データがない場合は
// "NO_DATA" を返します（正常終了）。
func DownloadOrderFile(portalURL, userId, password, saveDir string) (string, error) {
	if _, err := os.Stat(saveDir); os.IsNotExist(err) {
		if err := os.MkdirAll(saveDir, 0755); err != nil {
			return "", fmt.Errorf("保存先フォルダの作成に失敗: %v", err)
		}
	}

	// Leakless(false) でセキュリティソフト対策
	u := launcher.New().
		Headless(false).
		Leakless(false).
		MustLaunch()

	browser := rod.New().ControlURL(u).MustConnect()
	defer browser.MustClose()

	fmt.Println("受注ポータルにアクセス中...")
	page := browser.MustPage(portalURL)
	page.MustWaitStable()

	fmt.Println("ログイン情報を入力中...")

	if err := rod.Try(func() {
		page.MustElement("[name='userid']").MustInput(userId)
	}); err != nil {
		return "", fmt.Errorf("ユーザーID入力欄が見つかりません: %v", err)
	}

	if err := rod.Try(func() {
		page.MustElement("[name='userpsw']").MustInput(password)
	}); err != nil {
		return "", fmt.Errorf("パスワード入力欄が見つかりません: %v", err)
	}

	fmt.Println("ログインボタンをクリック...")
	loginBtn, err := page.ElementR("input, button, a, img", "ログイン")
	if err == nil {
		loginBtn.MustClick()
	} else {
		page.KeyActions().Press(input.Enter).MustDo()
	}

	page.MustWaitStable()

	fmt.Println("メニュー[受注処理]を検索中...")
	if err := rod.Try(func() {
		page.MustElementR("a, span, div, img", "受注処理").MustClick()
	}); err != nil {
		return "", fmt.Errorf("メニュー[受注処理]が見つかりません（ログイン失敗の可能性あり）: %v", err)
	}
	page.MustWaitStable()

	fmt.Println("メニュー[受注一覧ダウンロード]を検索中...")
	if err := rod.Try(func() {
		page.MustElementR("a, span, input", "受注一覧").MustClick()
	}); err != nil {
		return "", fmt.Errorf("メニュー[受注一覧ダウンロード]が見つかりません: %v", err)
	}
	page.MustWaitStable()

	wait := browser.MustWaitDownload()

	// ダイアログ（アラート）が出たら自動的にOKを押して閉じる設定
	go page.MustHandleDialog()

	fmt.Println("ダウンロードボタンをクリック...")
	clicked := false
	selectors := []string{
		"input[value*='未受信データ']",
		"input[type='button']",
		"button",
	}

	for _, sel := range selectors {
		if el, err := page.ElementR(sel, "未受信"); err == nil {
			el.MustClick()
			clicked = true
			break
		}
	}

	if !clicked {
		return "", fmt.Errorf("「未受信データ受信」ボタンが見つかりませんでした")
	}

	// ダウンロード開始と画面メッセージの両方を監視する
	fmt.Println("ダウンロード待機中...")

	var fileData []byte
	resultChan := make(chan string)

	go func() {
		defer func() {
			_ = recover()
		}()
		data := wait()
		fileData = data
		resultChan <- "downloaded"
	}()

	go func() {
		// 最大30秒待つ
		for i := 0; i < 60; i++ {
			time.Sleep(500 * time.Millisecond)

			if body, err := page.Element("body"); err == nil {
				text, _ := body.Text()

				if strings.Contains(text, "ありませんでした") {
					resultChan <- "no_data"
					return
				}
			}
		}
	}()

	select {
	case res := <-resultChan:
		if res == "no_data" {
			return "NO_DATA", nil
		}

	case <-time.After(60 * time.Second):
		return "", fmt.Errorf("処理がタイムアウトしました（ダウンロードもメッセージも確認できず）")
	}

	if len(fileData) == 0 {
		return "", fmt.Errorf("ダウンロードデータが空です")
	}

	fileName := fmt.Sprintf("JUCHU_%s.txt", time.Now().Format("20060102150405"))
	destPath := filepath.Join(saveDir, fileName)

	if err := os.WriteFile(destPath, fileData, 0644); err != nil {
		return "", fmt.Errorf("ファイルの書き込みに失敗: %v", err)
	}

	fmt.Printf("ダウンロード完了: %s\n", destPath)
	return destPath, nil
}
