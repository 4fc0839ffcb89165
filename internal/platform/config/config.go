package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config はアプリケーション全体の設定を保持します
type Config struct {
	// OpenAI設定（診断・リハビリ評価の回答生成に使用）
	OpenAI OpenAIConfig

	// 参照文書（臨床ガイドPDF）の設定
	Documents DocumentsConfig

	// 患者評価データ（CSV）の設定
	Assessment AssessmentConfig

	// 検索パイプラインの設定
	Retrieval RetrievalConfig

	// 対話入力の設定
	Intake IntakeConfig
}

// OpenAIConfig はOpenAI API設定
type OpenAIConfig struct {
	APIKey      string
	Model       string
	Temperature float64
	MaxTokens   int
}

// DocumentsConfig は参照文書の読み込み設定
type DocumentsConfig struct {
	// 臨床ガイドPDFを配置するディレクトリ
	Dir string
}

// AssessmentConfig は患者ごとの評価履歴CSVの設定
type AssessmentConfig struct {
	// 評価CSVのルートディレクトリ（<Dir>/<診断評価ID>.csv を読み込む）
	Dir string

	// 移動平均のウィンドウ日数
	WindowDays int
}

// RetrievalConfig は文書検索パイプラインの設定
type RetrievalConfig struct {
	// チャンクの最大文字数
	ChunkSize int

	// チャンク境界のオーバーラップ文字数（ChunkSize未満であること）
	ChunkOverlap int

	// クエリごとに取得する上位チャンク数
	TopK int

	// LLMに渡すコンテキストのトークン上限
	ContextTokenLimit int
}

// IntakeConfig は対話入力ループの設定
type IntakeConfig struct {
	// 1問あたりの最大入力試行回数
	MaxAttempts int
}

// Load は環境変数または.envファイルから設定を読み込みます
func Load(envFilePath string) (*Config, error) {
	// .envファイルが存在する場合は読み込む
	if envFilePath != "" {
		if err := godotenv.Load(envFilePath); err != nil {
			// ファイルが存在しない場合はエラーとしない（環境変数のみで動作可能）
			if !os.IsNotExist(err) {
				return nil, fmt.Errorf("failed to load .env file: %w", err)
			}
		}
	}

	cfg := &Config{
		OpenAI: OpenAIConfig{
			APIKey:      getEnv("OPENAI_API_KEY", ""),
			Model:       getEnv("OPENAI_LLM_MODEL", "gpt-4o-mini"),
			Temperature: getEnvAsFloat("OPENAI_LLM_TEMPERATURE", 0.0),
			MaxTokens:   getEnvAsInt("OPENAI_LLM_MAX_TOKENS", 2048),
		},
		Documents: DocumentsConfig{
			Dir: getEnv("RECONECT_DOCS_DIR", "/var/lib/reconect/docs"),
		},
		Assessment: AssessmentConfig{
			Dir:        getEnv("RECONECT_DATA_DIR", "/var/lib/reconect/data"),
			WindowDays: getEnvAsInt("RECONECT_WINDOW_DAYS", 7),
		},
		Retrieval: RetrievalConfig{
			ChunkSize:         getEnvAsInt("RECONECT_CHUNK_SIZE", 1000),
			ChunkOverlap:      getEnvAsInt("RECONECT_CHUNK_OVERLAP", 100),
			TopK:              getEnvAsInt("RECONECT_RETRIEVAL_TOP_K", 4),
			ContextTokenLimit: getEnvAsInt("RECONECT_CONTEXT_TOKEN_LIMIT", 3000),
		},
		Intake: IntakeConfig{
			MaxAttempts: getEnvAsInt("RECONECT_MAX_INPUT_ATTEMPTS", 10),
		},
	}

	if cfg.Retrieval.ChunkOverlap >= cfg.Retrieval.ChunkSize {
		return nil, fmt.Errorf("invalid retrieval config: overlap (%d) must be smaller than chunk size (%d)",
			cfg.Retrieval.ChunkOverlap, cfg.Retrieval.ChunkSize)
	}

	return cfg, nil
}

// getEnv は環境変数を取得し、存在しない場合はデフォルト値を返します
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsInt は環境変数を整数として取得します
func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

// getEnvAsFloat は環境変数を浮動小数点数として取得します
func getEnvAsFloat(key string, defaultValue float64) float64 {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.ParseFloat(valueStr, 64)
	if err != nil {
		return defaultValue
	}
	return value
}
