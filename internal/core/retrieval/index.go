package retrieval

import (
	"fmt"
	"strconv"

	"github.com/blevesearch/bleve/v2"
)

// Index はひとつの文書のチャンク列に対する字句検索インデックス
// 検索呼び出しごとに構築し、使用後に破棄する（キャッシュしない）
type Index struct {
	idx    bleve.Index
	chunks []Chunk
}

// chunkID はチャンク順序を辞書順ソート可能なIDに変換する
// 同スコア時のタイブレークを「元のチャンク順・先頭優先」で決定的にするため
// ゼロ埋めする
func chunkID(index int) string {
	return fmt.Sprintf("%08d", index)
}

// indexedChunk はインデックスに登録するフィールド構造
type indexedChunk struct {
	Content string `json:"content"`
}

// BuildIndex はチャンク列からインメモリの字句検索インデックスを構築する
func BuildIndex(chunks []Chunk) (*Index, error) {
	mapping := bleve.NewIndexMapping()
	idx, err := bleve.NewMemOnly(mapping)
	if err != nil {
		return nil, fmt.Errorf("failed to create in-memory index: %w", err)
	}

	for _, chunk := range chunks {
		if err := idx.Index(chunkID(chunk.Index), indexedChunk{Content: chunk.Content}); err != nil {
			idx.Close()
			return nil, fmt.Errorf("failed to index chunk %d: %w", chunk.Index, err)
		}
	}

	return &Index{idx: idx, chunks: chunks}, nil
}

// Size は登録済みチャンク数を返す
func (i *Index) Size() int {
	return len(i.chunks)
}

// Search はクエリに対する上位kチャンクを関連度順に返す
// スコアが同じ場合は元のチャンク順（先頭優先）で返す
// 語の重なりがひとつもない場合は元の文書順で先頭kチャンクを返す
// （コンテキストなしで回答を合成させないため）
func (i *Index) Search(query string, k int) ([]Chunk, error) {
	if k <= 0 || len(i.chunks) == 0 {
		return nil, nil
	}

	q := bleve.NewMatchQuery(query)
	req := bleve.NewSearchRequest(q)
	req.Size = k
	req.SortBy([]string{"-_score", "_id"})

	res, err := i.idx.Search(req)
	if err != nil {
		return nil, fmt.Errorf("index search failed: %w", err)
	}

	if len(res.Hits) == 0 {
		if k > len(i.chunks) {
			k = len(i.chunks)
		}
		return i.chunks[:k], nil
	}

	out := make([]Chunk, 0, len(res.Hits))
	for _, hit := range res.Hits {
		idx, err := strconv.Atoi(hit.ID)
		if err != nil || idx < 0 || idx >= len(i.chunks) {
			return nil, fmt.Errorf("unexpected chunk id in search result: %q", hit.ID)
		}
		out = append(out, i.chunks[idx])
	}

	return out, nil
}

// Close はインデックスのリソースを解放する
func (i *Index) Close() error {
	return i.idx.Close()
}
