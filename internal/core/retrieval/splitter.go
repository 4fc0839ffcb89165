package retrieval

import (
	"fmt"
)

// Chunk は検索単位となる文書テキストの断片を表す
type Chunk struct {
	// 文書内でのチャンク順序（0始まり）
	Index int

	// チャンクのテキスト内容
	Content string
}

// Split は文書テキストを固定長・固定オーバーラップのチャンク列に分割する
// maxSize・overlapは文字（rune）単位。overlap < maxSize であること
// 境界のoverlap文字分は隣接チャンク両方に含まれるため、境界をまたぐ
// 臨床記述が失われない。同じ入力・パラメータに対して決定的
func Split(text string, maxSize, overlap int) ([]Chunk, error) {
	if maxSize <= 0 {
		return nil, fmt.Errorf("invalid chunk size: %d", maxSize)
	}
	if overlap < 0 || overlap >= maxSize {
		return nil, fmt.Errorf("invalid chunk overlap: %d (must be smaller than chunk size %d)", overlap, maxSize)
	}

	runes := []rune(text)
	if len(runes) == 0 {
		return nil, nil
	}

	stride := maxSize - overlap
	chunks := make([]Chunk, 0, len(runes)/stride+1)

	for start := 0; start < len(runes); start += stride {
		end := start + maxSize
		if end > len(runes) {
			end = len(runes)
		}

		chunks = append(chunks, Chunk{
			Index:   len(chunks),
			Content: string(runes[start:end]),
		})

		if end == len(runes) {
			break
		}
	}

	return chunks, nil
}

// Reassemble は各チャンクの非オーバーラップ部分を連結して元テキストを復元する
// Splitのラウンドトリップ検証用
func Reassemble(chunks []Chunk, maxSize, overlap int) string {
	stride := maxSize - overlap

	var out []rune
	for i, chunk := range chunks {
		runes := []rune(chunk.Content)
		if i == len(chunks)-1 {
			out = append(out, runes...)
			break
		}
		out = append(out, runes[:stride]...)
	}
	return string(out)
}
