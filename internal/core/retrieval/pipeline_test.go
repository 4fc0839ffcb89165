package retrieval

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reconect/reconect/internal/core/document"
)

// fakeLLM は受け取ったプロンプトを記録し、固定回答を返すテスト用クライアント
type fakeLLM struct {
	prompts []string
	answer  string
	err     error
}

func (f *fakeLLM) GenerateCompletion(_ context.Context, prompt string) (string, error) {
	f.prompts = append(f.prompts, prompt)
	if f.err != nil {
		return "", f.err
	}
	return f.answer, nil
}

func testDoc(role document.Role, text string) *document.Document {
	return &document.Document{
		Role:     role,
		Segments: []document.Segment{{Index: 0, Content: text}},
	}
}

func TestPipeline_RetrieveAndSynthesize_EmptyIndex(t *testing.T) {
	index, err := BuildIndex(nil)
	require.NoError(t, err)
	defer index.Close()

	llm := &fakeLLM{answer: "unused"}
	pipeline := NewPipeline(llm, nil, DefaultConfig())

	_, err = pipeline.RetrieveAndSynthesize(context.Background(), index, "complications")
	assert.ErrorIs(t, err, ErrRetrievalEmpty)
	assert.Empty(t, llm.prompts, "LLM must not be called for an empty index")
}

func TestPipeline_RetrieveAndSynthesize_BuildsContextPrompt(t *testing.T) {
	chunks, err := Split("Hemiplegic shoulder pain presents with pain on passive movement.", 1000, 100)
	require.NoError(t, err)

	index, err := BuildIndex(chunks)
	require.NoError(t, err)
	defer index.Close()

	llm := &fakeLLM{answer: "synthesized answer"}
	pipeline := NewPipeline(llm, nil, DefaultConfig())

	answer, err := pipeline.RetrieveAndSynthesize(context.Background(), index, "shoulder pain")
	require.NoError(t, err)
	assert.Equal(t, "synthesized answer", answer)

	require.Len(t, llm.prompts, 1)
	assert.Contains(t, llm.prompts[0], "Question: shoulder pain")
	assert.Contains(t, llm.prompts[0], "Hemiplegic shoulder pain")
	assert.Contains(t, llm.prompts[0], "answer from the following context")
}

func TestPipeline_ProcessDocuments_AllPairs(t *testing.T) {
	docs := []*document.Document{
		testDoc(document.RoleCUEManual, strings.Repeat("Reach forward uses shoulder flexors. ", 10)),
		testDoc(document.RolePTXGuide, strings.Repeat("Wall slide exercise for the shoulder. ", 10)),
	}
	queries := []string{"upper extremity, complications", "shoulder"}

	llm := &fakeLLM{answer: "ctx"}
	pipeline := NewPipeline(llm, nil, DefaultConfig())

	results, err := pipeline.ProcessDocuments(context.Background(), docs, queries)
	require.NoError(t, err)

	require.Len(t, results, 2)
	for i := range docs {
		require.Len(t, results[i], 2, "document %d", i)
		for _, q := range queries {
			assert.Equal(t, "ctx", results[i][q])
		}
	}

	// 文書×クエリの組み合わせごとに1回ずつLLMが呼ばれること
	assert.Len(t, llm.prompts, len(docs)*len(queries))
}

func TestPipeline_ProcessDocuments_EmptyDocumentGetsSentinel(t *testing.T) {
	docs := []*document.Document{
		testDoc(document.RoleStrokeComplications, ""),
	}

	llm := &fakeLLM{answer: "unused"}
	pipeline := NewPipeline(llm, nil, DefaultConfig())

	results, err := pipeline.ProcessDocuments(context.Background(), docs, []string{"complications"})
	require.NoError(t, err)

	// 空文書は失敗ではなくセンチネル回答になること
	assert.Equal(t, NoInformationFound, results[0]["complications"])
	assert.Empty(t, llm.prompts)
}

func TestPipeline_ProcessDocuments_LLMFailurePropagates(t *testing.T) {
	docs := []*document.Document{
		testDoc(document.RolePainGuide, "Cervical radiculopathy causes arm numbness."),
	}

	llm := &fakeLLM{err: errors.New("api unreachable")}
	pipeline := NewPipeline(llm, nil, DefaultConfig())

	_, err := pipeline.ProcessDocuments(context.Background(), docs, []string{"numbness"})
	require.Error(t, err)
	assert.ErrorContains(t, err, "api unreachable")
}
