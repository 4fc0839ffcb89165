package tokenizer

import (
	"fmt"

	"github.com/pkoukk/tiktoken-go"
)

// Encoding はトークン数の見積もりに使うエンコーディング
const Encoding = "cl100k_base"

// Tokenizer はtiktokenによるトークンカウンタ
// retrieval.TokenCounterインターフェースを実装する
type Tokenizer struct {
	// エンコーダのロードは重いため、全操作で使い回す
	tok *tiktoken.Tiktoken
}

// New は新しいTokenizerを作成する
func New() (*Tokenizer, error) {
	tok, err := tiktoken.GetEncoding(Encoding)
	if err != nil {
		return nil, fmt.Errorf("failed to load token encoder: %w", err)
	}
	return &Tokenizer{tok: tok}, nil
}

// CountTokens はテキストのトークン数をカウントする
func (t *Tokenizer) CountTokens(text string) int {
	return len(t.tok.Encode(text, nil, nil))
}

// TrimToTokenLimit はテキストを指定トークン数に収まるよう末尾を切り詰める
func (t *Tokenizer) TrimToTokenLimit(text string, maxTokens int) string {
	if maxTokens <= 0 {
		return text
	}

	tokens := t.tok.Encode(text, nil, nil)
	if len(tokens) <= maxTokens {
		return text
	}

	return t.tok.Decode(tokens[:maxTokens])
}
