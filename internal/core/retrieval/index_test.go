package retrieval

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildTestIndex(t *testing.T, contents []string) *Index {
	t.Helper()

	chunks := make([]Chunk, 0, len(contents))
	for i, content := range contents {
		chunks = append(chunks, Chunk{Index: i, Content: content})
	}

	index, err := BuildIndex(chunks)
	require.NoError(t, err)
	t.Cleanup(func() { index.Close() })

	return index
}

func TestIndex_Search_RanksByRelevance(t *testing.T) {
	index := buildTestIndex(t, []string{
		"orthostatic hypotension presents with pallor and dizziness",
		"shoulder pain during passive flexion suggests hemiplegic shoulder pain",
		"wrist extension exercises with a cup over the table edge",
	})

	hits, err := index.Search("shoulder pain on flexion", 2)
	require.NoError(t, err)
	require.NotEmpty(t, hits)
	assert.Equal(t, 1, hits[0].Index)
}

func TestIndex_Search_NoLexicalOverlapFallsBackToDocumentOrder(t *testing.T) {
	index := buildTestIndex(t, []string{
		"first chunk about complications",
		"second chunk about exercises",
		"third chunk about anatomy",
	})

	// 語の重なりがないクエリでもコンテキストは返ること（元の文書順で先頭k件）
	hits, err := index.Search("zzzz qqqq", 2)
	require.NoError(t, err)
	require.Len(t, hits, 2)
	assert.Equal(t, 0, hits[0].Index)
	assert.Equal(t, 1, hits[1].Index)
}

func TestIndex_Search_LimitsToK(t *testing.T) {
	index := buildTestIndex(t, []string{
		"neck pain assessment",
		"neck pain treatment",
		"neck pain imaging",
		"neck pain history",
		"neck pain exercises",
	})

	hits, err := index.Search("neck pain", 3)
	require.NoError(t, err)
	assert.Len(t, hits, 3)
}

func TestIndex_Search_Deterministic(t *testing.T) {
	contents := []string{
		"reach forward with the affected arm",
		"reach upward against gravity",
		"reach downward toward the floor",
	}

	first := buildTestIndex(t, contents)
	second := buildTestIndex(t, contents)

	hitsA, err := first.Search("reach", 3)
	require.NoError(t, err)
	hitsB, err := second.Search("reach", 3)
	require.NoError(t, err)

	assert.Equal(t, hitsA, hitsB)
}

func TestIndex_EmptyChunks(t *testing.T) {
	index := buildTestIndex(t, nil)
	assert.Equal(t, 0, index.Size())

	hits, err := index.Search("anything", 4)
	require.NoError(t, err)
	assert.Empty(t, hits)
}
