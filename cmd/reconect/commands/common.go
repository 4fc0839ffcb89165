package commands

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/reconect/reconect/internal/core/document"
	"github.com/reconect/reconect/internal/infra/openai"
	"github.com/reconect/reconect/internal/infra/tokenizer"
	"github.com/reconect/reconect/internal/platform/config"
	"github.com/reconect/reconect/internal/platform/logger"
)

// AppContext はコマンド実行に必要な共通コンテキストを保持する
type AppContext struct {
	Config    *config.Config
	LLMClient *openai.Client
	Tokenizer *tokenizer.Tokenizer
	Library   *document.Library
	logger    *slog.Logger
}

// NewAppContext は設定を読み込み、コラボレータを初期化してAppContextを作成する
// 参照文書（臨床ガイドPDF）もここで一度だけ読み込む
func NewAppContext(_ context.Context, envFile string) (*AppContext, error) {
	cfg, err := config.Load(envFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	appLogger := logger.New(logger.DefaultConfig())

	llm, err := openai.NewClient(cfg.OpenAI.APIKey, cfg.OpenAI.Model, cfg.OpenAI.Temperature, cfg.OpenAI.MaxTokens)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize LLM client: %w", err)
	}

	tok, err := tokenizer.New()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize tokenizer: %w", err)
	}

	loader := document.NewPDFLoader(appLogger)
	library, err := document.LoadLibrary(loader, cfg.Documents.Dir)
	if err != nil {
		return nil, fmt.Errorf("failed to load reference documents: %w", err)
	}

	return &AppContext{
		Config:    cfg,
		LLMClient: llm,
		Tokenizer: tok,
		Library:   library,
		logger:    appLogger,
	}, nil
}

// Logger はAppContextのロガーを返す
func (ac *AppContext) Logger() *slog.Logger {
	if ac.logger != nil {
		return ac.logger
	}
	return slog.Default()
}
