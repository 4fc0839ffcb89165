package session

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildDiagnosisPrompt(t *testing.T) {
	answers := map[string]string{
		"patient's chief complaint": "neck pain",
		"patient's severity":        "extremely severe",
		"patient's age":             "45",
		"patient's Spurling test":   "positive",
	}
	contexts := map[int]map[string]string{
		0: {"q": "pain guide context"},
		1: {"q": "pain guide 2 context"},
		2: {"q": "pain guide 3 context"},
		3: {"q": "ptx context"},
	}

	prompt := BuildDiagnosisPrompt(answers, contexts)

	assert.Contains(t, prompt, "Chief complaint: neck pain")
	assert.Contains(t, prompt, "Severity (severe/moderate/mild): extremely severe")
	assert.Contains(t, prompt, "Age: 45")
	assert.Contains(t, prompt, "pain guide 2 context")
	assert.Contains(t, prompt, "ptx context")
	assert.Contains(t, prompt, ">>Example3<<")

	// 危険徴候リストが全件埋め込まれること
	for _, flag := range redFlags {
		assert.Contains(t, prompt, flag)
	}
}

func TestBuildRehabilitationPrompt(t *testing.T) {
	answers := map[string]string{
		"diagnosed patient":       "Spinal Cord Injury",
		"patient's disability":    "Activities using arm",
		"functional evaluation":   "CUE-T",
		"newly acquired symptoms": "Face looks pale, frequently feel dizzy",
	}
	contexts := map[int]map[string]string{
		0: {"q": "cue manual context"},
		1: {"q": "ptx context"},
		2: {"q": "stroke complications context"},
		3: {"q": "sci complications context"},
	}

	prompt := BuildRehabilitationPrompt(answers, []string{"Pinch Die", "Wrist Up"}, nil, contexts)

	assert.Contains(t, prompt, "diagnosed patient: Spinal Cord Injury")
	assert.Contains(t, prompt, "ITEMs: Pinch Die, Wrist Up")
	assert.Contains(t, prompt, "cue manual context")
	assert.Contains(t, prompt, "sci complications context")
	assert.NotContains(t, prompt, "insufficient history")
}

func TestBuildRehabilitationPrompt_NoDataItems(t *testing.T) {
	prompt := BuildRehabilitationPrompt(map[string]string{}, nil, []string{"Pencil"}, nil)

	assert.Contains(t, prompt, "insufficient history")
	assert.Contains(t, prompt, "Pencil")
}

func TestContextAnswer_DeterministicOrder(t *testing.T) {
	results := map[int]map[string]string{
		0: {"b query": "second", "a query": "first"},
	}

	combined := contextAnswer(results, 0)
	assert.Equal(t, "first\nsecond", combined)
	assert.True(t, strings.Contains(combined, "first"))

	// 存在しない文書インデックスは空文字
	assert.Equal(t, "", contextAnswer(results, 9))
}
