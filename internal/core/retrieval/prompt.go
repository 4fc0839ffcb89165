package retrieval

import (
	"strings"
)

// BuildContextPrompt はコンテキスト限定回答を指示する固定テンプレートで
// 合成用プロンプトを構築する
func BuildContextPrompt(question string, contextChunks []Chunk) string {
	var sb strings.Builder

	sb.WriteString("Please provide most correct answer from the following context.\n")
	sb.WriteString("Answer only from the given context. If the context does not contain the answer, say so.\n")
	sb.WriteString("---\n")
	sb.WriteString("Question: ")
	sb.WriteString(question)
	sb.WriteString("\n---\n")
	sb.WriteString("Context:\n")

	for _, chunk := range contextChunks {
		sb.WriteString(chunk.Content)
		sb.WriteString("\n")
	}

	return sb.String()
}
