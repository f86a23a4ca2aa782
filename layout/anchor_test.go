// C:\Users\PC_User\Desktop\Antigravity\在庫引当チェックツール_vr4\layout\anchor_test.go
package layout

import (
	"testing"

	"github.com/bukkepapa/inventory-check-v4/model"
)

// tok はテスト用のトークンを作ります。(x, y) が左上、w×h がサイズ。
func tok(text string, x, y, w, h float64) model.Token {
	return model.Token{
		Text: text,
		Box: model.BoundingBox{
			{x, y}, {x + w, y}, {x + w, y + h}, {x, y + h},
		},
		Confidence: 0.95,
	}
}

func TestFindAnchor(t *testing.T) {
	tokens := []model.Token{
		tok("ご注文ありがとうございます", 10, 10, 200, 15),
		tok("出荷先", 30, 50, 60, 15),
		tok("出荷先コード", 30, 300, 100, 15),
	}

	anchor, ok := FindAnchor(tokens, "出荷先")
	if !ok {
		t.Fatal("アンカーが見つからない")
	}
	// 部分一致で先に出現したトークンを採用する
	if anchor.Token.Box.Top() != 50 {
		t.Errorf("Top = %v, want 50 (最初の出現)", anchor.Token.Box.Top())
	}

	if _, ok := FindAnchor(tokens, "納品先"); ok {
		t.Error("存在しないパターンでアンカーが返った")
	}
	if _, ok := FindAnchor(nil, "出荷先"); ok {
		t.Error("空のトークン列でアンカーが返った")
	}
}

func TestTokensBelow(t *testing.T) {
	anchorTok := tok("出荷先", 30, 50, 60, 15) // 中心X=60, 下辺=65
	anchor := model.Anchor{Pattern: "出荷先", Token: anchorTok}

	tokens := []model.Token{
		anchorTok,
		tok("123456789", 35, 100, 60, 12), // 中心X=65 → 範囲内
		tok("サンプル薬局", 40, 80, 70, 12),  // 中心X=75 → 範囲内
		tok("999999999", 300, 90, 60, 12), // Xが遠い → 除外
		tok("ずっと下の行", 35, 400, 60, 12),  // yLimit超過 → 除外
		tok("上にある", 35, 20, 60, 12),     // アンカーより上 → 除外
	}

	below := TokensBelow(tokens, anchor, 20, 100)
	if len(below) != 2 {
		t.Fatalf("len = %d, want 2", len(below))
	}
	// 上から順に並ぶこと
	if below[0].Text != "サンプル薬局" || below[1].Text != "123456789" {
		t.Errorf("順序が不正: %q, %q", below[0].Text, below[1].Text)
	}
}

func TestResolveCustomer(t *testing.T) {
	tests := []struct {
		name     string
		below    []model.Token
		wantCode string
		wantName string
	}{
		{
			name: "コードの後に名前",
			below: []model.Token{
				tok("123456789", 0, 0, 10, 10),
				tok("サンプル薬局", 0, 20, 10, 10),
			},
			wantCode: "123456789",
			wantName: "サンプル薬局",
		},
		{
			name: "コード桁数が合わないトークンは飛ばす",
			below: []model.Token{
				tok("12345", 0, 0, 10, 10), // 5桁 → コードではない
				tok("987654321", 0, 20, 10, 10),
				tok("テスト商店", 0, 40, 10, 10),
			},
			wantCode: "987654321",
			// コード検出前のトークンは名前候補にならない
			wantName: "テスト商店",
		},
		{
			name: "コードが見つからない",
			below: []model.Token{
				tok("名前だけ", 0, 0, 10, 10),
			},
			wantCode: "",
			wantName: "",
		},
		{
			name:     "空",
			below:    nil,
			wantCode: "",
			wantName: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, name := ResolveCustomer(tt.below, 9)
			if code != tt.wantCode || name != tt.wantName {
				t.Errorf("ResolveCustomer = (%q, %q), want (%q, %q)", code, name, tt.wantCode, tt.wantName)
			}
		})
	}
}
