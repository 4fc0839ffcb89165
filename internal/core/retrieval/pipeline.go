package retrieval

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/reconect/reconect/internal/core/document"
)

var (
	// ErrRetrievalEmpty はインデックスがチャンクをひとつも持たない場合のエラー
	// 呼び出し側はセンチネル回答（NoInformationFound）に置き換えること
	ErrRetrievalEmpty = errors.New("retrieval index contains no chunks")
)

// NoInformationFound は空文書に対するセンチネル回答
// 最終レポートにはエラーではなくこの文字列を埋め込む
const NoInformationFound = "No information found in the reference document."

// LLMClient はLLM通信インターフェース
type LLMClient interface {
	GenerateCompletion(ctx context.Context, prompt string) (string, error)
}

// TokenCounter はプロンプトのトークン見積もりインターフェース
type TokenCounter interface {
	CountTokens(text string) int
	TrimToTokenLimit(text string, maxTokens int) string
}

// Config は検索パイプラインのパラメータ
type Config struct {
	ChunkSize         int // チャンク最大文字数
	ChunkOverlap      int // 境界オーバーラップ文字数
	TopK              int // クエリごとの取得チャンク数
	ContextTokenLimit int // LLMに渡すコンテキストのトークン上限
}

// DefaultConfig は元のワークフローと同じ既定値を返す
func DefaultConfig() Config {
	return Config{
		ChunkSize:         1000,
		ChunkOverlap:      100,
		TopK:              4,
		ContextTokenLimit: 3000,
	}
}

// Pipeline は文書からクエリごとの合成回答を生成する検索パイプライン
type Pipeline struct {
	llm    LLMClient
	tokens TokenCounter
	cfg    Config
	logger *slog.Logger
}

type PipelineOption func(*Pipeline)

// WithPipelineLogger はPipelineにロガーを設定する
func WithPipelineLogger(logger *slog.Logger) PipelineOption {
	return func(p *Pipeline) {
		p.logger = logger
	}
}

// NewPipeline は新しいPipelineを作成する
func NewPipeline(llm LLMClient, tokens TokenCounter, cfg Config, opts ...PipelineOption) *Pipeline {
	p := &Pipeline{
		llm:    llm,
		tokens: tokens,
		cfg:    cfg,
		logger: slog.Default(),
	}

	for _, opt := range opts {
		opt(p)
	}

	return p
}

// RetrieveAndSynthesize は上位チャンクをコンテキストとして回答を合成する
// インデックスが空の場合はErrRetrievalEmptyを返す
func (p *Pipeline) RetrieveAndSynthesize(ctx context.Context, index *Index, query string) (string, error) {
	if index.Size() == 0 {
		return "", ErrRetrievalEmpty
	}

	chunks, err := index.Search(query, p.cfg.TopK)
	if err != nil {
		return "", fmt.Errorf("failed to retrieve context: %w", err)
	}

	prompt := BuildContextPrompt(query, chunks)
	if p.tokens != nil && p.cfg.ContextTokenLimit > 0 {
		prompt = p.tokens.TrimToTokenLimit(prompt, p.cfg.ContextTokenLimit)
	}

	answer, err := p.llm.GenerateCompletion(ctx, prompt)
	if err != nil {
		return "", fmt.Errorf("failed to synthesize answer: %w", err)
	}

	return answer, nil
}

// ProcessDocuments は全文書×全クエリの組み合わせごとに合成回答を生成する
// ログ・標準出力の副作用を文書順→クエリ順で再現可能に保つため、逐次実行する
func (p *Pipeline) ProcessDocuments(ctx context.Context, docs []*document.Document, queries []string) (map[int]map[string]string, error) {
	results := make(map[int]map[string]string, len(docs))

	for i, doc := range docs {
		chunks, err := Split(doc.Text(), p.cfg.ChunkSize, p.cfg.ChunkOverlap)
		if err != nil {
			return nil, fmt.Errorf("failed to split document %d (%s): %w", i, doc.Role, err)
		}

		index, err := BuildIndex(chunks)
		if err != nil {
			return nil, fmt.Errorf("failed to index document %d (%s): %w", i, doc.Role, err)
		}

		docResults := make(map[string]string, len(queries))
		for _, query := range queries {
			answer, err := p.RetrieveAndSynthesize(ctx, index, query)
			if err != nil {
				if errors.Is(err, ErrRetrievalEmpty) {
					// 空文書はセンチネル回答で埋め、レポートには失敗を伝播させない
					p.logger.Warn("document has no retrievable content",
						"document", i, "role", string(doc.Role), "query", query)
					docResults[query] = NoInformationFound
					continue
				}
				index.Close()
				return nil, fmt.Errorf("retrieval failed for document %d (%s), query %q: %w", i, doc.Role, query, err)
			}

			docResults[query] = answer

			p.logger.Info("context synthesized", "document", i, "role", string(doc.Role), "query", query)
			fmt.Printf("Document %d, Query: %s\n", i, query)
			fmt.Println(answer)
			fmt.Println("---")
		}

		if err := index.Close(); err != nil {
			p.logger.Warn("failed to close index", "document", i, "error", err)
		}

		results[i] = docResults
	}

	return results, nil
}
