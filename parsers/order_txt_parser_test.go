// C:\Users\PC_User\Desktop\Antigravity\在庫引当チェックツール_vr4\parsers\order_txt_parser_test.go
package parsers

import (
	"bytes"
	"strings"
	"testing"
)

// makeOrderRow は受注ファイルの1行（120列タブ区切り）を組み立てます。
func makeOrderRow(slip, custCode, custName, prodCode, nameKanji, nameKana, qty string) string {
	cols := make([]string, 120)
	cols[orderColSlipNumber] = slip
	cols[orderColCustomerCode] = custCode
	cols[orderColCustomerName] = custName
	cols[orderColProductCode] = prodCode
	cols[orderColNameKanji] = nameKanji
	cols[orderColNameKana] = nameKana
	cols[orderColQuantity] = qty
	return strings.Join(cols, "\t")
}

func orderHeader() string {
	cols := make([]string, 120)
	for i := range cols {
		cols[i] = "H"
	}
	return strings.Join(cols, "\t")
}

func TestParseOrderTXT(t *testing.T) {
	rows := []string{
		orderHeader(),
		makeOrderRow("D0001", "111111111", "サンプル薬局", "0012345", "サンプル薬", "サンプルヤク", "10"),
		makeOrderRow("D0002", "222222222", "テスト商店", "67890", "", "ベツノヤク", "-3"),
		makeOrderRow("D0003", "333333333", "どこか", "000", "", "", "5"), // 全部ゼロのコード → 除外
	}
	data := encodeCP932(t, strings.Join(rows, "\r\n"))

	got, err := ParseOrderTXT(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("err = %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("len = %d, want 2: %+v", len(got), got)
	}

	r := got[0]
	if r.SlipNumber != "D0001" || r.CustomerCode != "111111111" || r.CustomerName != "サンプル薬局" ||
		r.ProductCode != "12345" || r.ProductName != "サンプル薬" || r.ProductNameKana != "サンプルヤク" ||
		r.Quantity != 10 {
		t.Errorf("got[0] = %+v", r)
	}

	// 負の数量は0に繰り上げ
	if got[1].Quantity != 0 {
		t.Errorf("got[1].Quantity = %d, want 0", got[1].Quantity)
	}
}

func TestParseOrderTXTExcludedCodeSurvivesParsing(t *testing.T) {
	// 除外コードの適用はパーサーの仕事ではない（正規化段階で一括適用）
	rows := []string{
		orderHeader(),
		makeOrderRow("D0001", "111111111", "A薬局", "30126", "", "", "1"),
	}
	data := encodeCP932(t, strings.Join(rows, "\r\n"))

	got, err := ParseOrderTXT(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("err = %v", err)
	}
	if len(got) != 1 || got[0].ProductCode != "30126" {
		t.Errorf("got = %+v", got)
	}
}

func TestParseOrderTXTEmpty(t *testing.T) {
	if _, err := ParseOrderTXT(bytes.NewReader(nil)); err == nil {
		t.Error("空ファイルでエラーにならなかった")
	}

	// ヘッダーだけなら明細0件で正常
	got, err := ParseOrderTXT(strings.NewReader(orderHeader()))
	if err != nil {
		t.Fatalf("err = %v", err)
	}
	if len(got) != 0 {
		t.Errorf("len = %d, want 0", len(got))
	}
}
