// C:\Users\PC_User\Desktop\Antigravity\在庫引当チェックツール_vr4\parsers\parser_utils.go
package parsers

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/japanese"
	"golang.org/x/text/transform"
)

// SkipBOM はUTF-8 BOMをスキップします。
func SkipBOM(r io.Reader) io.Reader {
	br := bufio.NewReader(r)
	bom := []byte{0xEF, 0xBB, 0xBF}
	peeked, err := br.Peek(3)
	if err != nil {
		return br
	}
	isBOM := true
	for i, b := range bom {
		if peeked[i] != b {
			isBOM = false
			break
		}
	}
	if isBOM {
		br.Read(make([]byte, 3))
	}
	return br
}

// 文字コードの候補。順に試し、最初に成功したものを採用します。
// UTF-8を先に判定する。日本語のUTF-8バイト列はCP932としても「読めてしまう」
// ことが多く、CP932を先に試すと文字化けしたまま成功扱いになるため。
// ASCIIのみのデータはどちらで読んでも同じ。
var candidateEncodings = []struct {
	Name string
	Enc  encoding.Encoding // nil = UTF-8（変換なし）
}{
	{"UTF-8", nil},
	{"CP932", japanese.ShiftJIS},
}

// DecodeJapanese はバイト列を候補の文字コードで順に復号します。
// 全候補で失敗した場合は、試した文字コード名を列挙したエラーを1つ返します。
func DecodeJapanese(data []byte) ([]byte, string, error) {
	for _, cand := range candidateEncodings {
		if cand.Enc == nil {
			if utf8.Valid(data) {
				return data, cand.Name, nil
			}
			continue
		}
		decoded, _, err := transform.Bytes(cand.Enc.NewDecoder(), data)
		if err != nil {
			continue
		}
		// x/textのデコーダーは不正バイトをU+FFFDに置換するので、
		// 置換文字の有無で成否を判定する
		if strings.ContainsRune(string(decoded), utf8.RuneError) {
			continue
		}
		return decoded, cand.Name, nil
	}

	names := make([]string, 0, len(candidateEncodings))
	for _, cand := range candidateEncodings {
		names = append(names, cand.Name)
	}
	return nil, "", fmt.Errorf("文字コードを判別できませんでした（試行: %s）", strings.Join(names, ", "))
}

// parseIntField は数値フィールドをintに変換します（変換失敗時は0）。
// "10.0" や "1,200" のような表記も来るため一度floatを経由します。
func parseIntField(s string) int {
	s = strings.TrimSpace(strings.ReplaceAll(s, ",", ""))
	f, _ := strconv.ParseFloat(s, 64)
	return int(f)
}
