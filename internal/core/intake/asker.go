package intake

import (
	"errors"
	"fmt"

	"github.com/manifoldco/promptui"
)

var (
	// ErrMaxAttemptsExceeded は最大試行回数まで妥当な回答が得られなかった場合のエラー
	// 元の実装の無制限再帰を、上限付きリトライに置き換えている
	ErrMaxAttemptsExceeded = errors.New("maximum input attempts exceeded")
)

// Verdict はひとつの入力試行の判定結果
type Verdict int

const (
	// VerdictAccepted は回答が受理されたことを表す
	VerdictAccepted Verdict = iota

	// VerdictRejected は回答が拒否され、再入力が必要なことを表す
	VerdictRejected
)

// Evaluate はひとつの生入力を質問の述語で判定する
func Evaluate(q Question, raw string) Verdict {
	if q.Validate == nil || q.Validate(raw) {
		return VerdictAccepted
	}
	return VerdictRejected
}

// Prompter は1回分の生入力を読み取るインターフェース
// 端末なしでリトライロジックをテストできるよう分離している
type Prompter interface {
	Prompt(label string) (string, error)
}

// TerminalPrompter はpromptuiで端末から入力を読むPrompter実装
type TerminalPrompter struct{}

// Prompt はラベル付きプロンプトを表示して入力を1行読み取る
func (TerminalPrompter) Prompt(label string) (string, error) {
	prompt := promptui.Prompt{
		Label: label,
	}
	return prompt.Run()
}

// Asker は検証付き入力ループを提供する
type Asker struct {
	prompter    Prompter
	maxAttempts int
}

// NewAsker は新しいAskerを作成する
// maxAttemptsが0以下の場合は既定の10回を使う
func NewAsker(prompter Prompter, maxAttempts int) *Asker {
	if maxAttempts <= 0 {
		maxAttempts = 10
	}
	return &Asker{
		prompter:    prompter,
		maxAttempts: maxAttempts,
	}
}

// Ask は述語が受理するまで質問を繰り返し、受理された回答をそのまま返す
// 最大試行回数を超えた場合はErrMaxAttemptsExceededを返す
func (a *Asker) Ask(q Question) (string, error) {
	for attempt := 1; attempt <= a.maxAttempts; attempt++ {
		raw, err := a.prompter.Prompt(q.Label)
		if err != nil {
			return "", fmt.Errorf("failed to read input for %q: %w", q.Key, err)
		}

		if Evaluate(q, raw) == VerdictAccepted {
			return raw, nil
		}

		fmt.Println("Invalid input. Please try again.")
	}

	return "", fmt.Errorf("%w: question %q", ErrMaxAttemptsExceeded, q.Key)
}

// AskAll は質問リストを順に尋ね、回答をキーごとに集める
// 受理のたびに進捗率を表示する
func (a *Asker) AskAll(questions []Question) (map[string]string, error) {
	answers := make(map[string]string, len(questions))

	for i, q := range questions {
		answer, err := a.Ask(q)
		if err != nil {
			return nil, err
		}
		answers[q.Key] = answer

		progress := float64(i+1) / float64(len(questions)) * 100
		fmt.Printf("Progress: %.1f%%\n", progress)
	}

	return answers, nil
}
