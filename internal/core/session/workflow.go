package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/olekukonko/tablewriter"
	"github.com/samber/mo"

	"github.com/reconect/reconect/internal/core/assessment"
	"github.com/reconect/reconect/internal/core/document"
	"github.com/reconect/reconect/internal/core/intake"
	"github.com/reconect/reconect/internal/core/retrieval"
)

var (
	// ErrCollaborator はLLMなど外部コラボレータの回復不能な失敗を表す
	// 呼び出し側は非ゼロ終了コードで、患者向けには平易なメッセージで報告すること
	ErrCollaborator = errors.New("language model service failed")
)

// Branch はセッションの分岐先を表す
type Branch string

const (
	BranchNewDiagnosis Branch = "new_diagnosis"
	BranchFollowUp     Branch = "follow_up"
)

// branchQuestion はセッション冒頭の分岐質問
var branchQuestion = intake.Question{
	Key:      "has diagnostic assessment",
	Label:    "Do you have a diagnostic assessment? (yes/no)",
	Validate: intake.YesNo,
}

// assessmentIDQuestion はフォローアップフローの評価ID質問
var assessmentIDQuestion = intake.Question{
	Key:      "diagnostic assessment id",
	Label:    "Please enter the diagnostic assessment ID",
	Validate: intake.NonEmpty,
}

// Config はセッションワークフローの設定
type Config struct {
	// 評価履歴CSVのルートディレクトリ
	DataDir string

	// 移動平均のウィンドウ日数
	WindowDays int
}

// State はセッション中に収集した検証済み回答と選択された分岐を保持する
// セッション開始時に作成され、終了時に破棄される（永続化しない）
type State struct {
	ID      uuid.UUID
	Branch  Branch
	Answers map[string]string
}

// Workflow はひとつの患者セッションを駆動する
type Workflow struct {
	library  *document.Library
	pipeline *retrieval.Pipeline
	llm      retrieval.LLMClient
	asker    *intake.Asker
	cfg      Config
	logger   *slog.Logger
	now      func() time.Time
}

type WorkflowOption func(*Workflow)

// WithWorkflowLogger はWorkflowにロガーを設定する
func WithWorkflowLogger(logger *slog.Logger) WorkflowOption {
	return func(w *Workflow) {
		w.logger = logger
	}
}

// WithClock は基準時刻の取得関数を差し替える（テスト用）
func WithClock(now func() time.Time) WorkflowOption {
	return func(w *Workflow) {
		w.now = now
	}
}

// NewWorkflow は新しいWorkflowを作成する
func NewWorkflow(
	library *document.Library,
	pipeline *retrieval.Pipeline,
	llm retrieval.LLMClient,
	asker *intake.Asker,
	cfg Config,
	opts ...WorkflowOption,
) *Workflow {
	if cfg.WindowDays <= 0 {
		cfg.WindowDays = assessment.DefaultWindowDays
	}

	w := &Workflow{
		library:  library,
		pipeline: pipeline,
		llm:      llm,
		asker:    asker,
		cfg:      cfg,
		logger:   slog.Default(),
		now:      time.Now,
	}

	for _, opt := range opts {
		opt(w)
	}

	return w
}

// Run はひとつのセッションを最初から最後まで実行する
func (w *Workflow) Run(ctx context.Context) error {
	state := &State{
		ID:      uuid.New(),
		Answers: make(map[string]string),
	}

	w.logger.Info("session started", "sessionID", state.ID.String())

	answer, err := w.asker.Ask(branchQuestion)
	if err != nil {
		return fmt.Errorf("branch selection failed: %w", err)
	}

	// 大文字小文字を無視して分岐する（"YES" も "yes" と同じ経路）
	if strings.EqualFold(strings.TrimSpace(answer), "yes") {
		state.Branch = BranchFollowUp
		w.logger.Info("branch selected", "sessionID", state.ID.String(), "branch", string(state.Branch))
		return w.runFollowUp(ctx, state)
	}

	state.Branch = BranchNewDiagnosis
	w.logger.Info("branch selected", "sessionID", state.ID.String(), "branch", string(state.Branch))
	return w.runNewDiagnosis(ctx, state)
}

// runNewDiagnosis は新規診断フローを実行する
// 31問の検証付き問診 → ペインガイド検索 → 最終プロンプト → レポート
func (w *Workflow) runNewDiagnosis(ctx context.Context, state *State) error {
	answers, err := w.asker.AskAll(intake.DiagnosisQuestions)
	if err != nil {
		return fmt.Errorf("diagnosis intake failed: %w", err)
	}
	for key, value := range answers {
		state.Answers[key] = value
	}

	docs, err := w.library.Select(
		document.RolePainGuide,
		document.RolePainGuide2,
		document.RolePainGuide3,
		document.RolePTXGuide,
	)
	if err != nil {
		return fmt.Errorf("failed to select diagnosis documents: %w", err)
	}

	chiefComplaint := state.Answers["patient's chief complaint"]
	queries := []string{
		fmt.Sprintf("symptoms, findings, diagnoses, evaluations related to %s", chiefComplaint),
	}

	contexts, err := w.pipeline.ProcessDocuments(ctx, docs, queries)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrCollaborator, err)
	}

	prompt := BuildDiagnosisPrompt(state.Answers, contexts)

	return w.report(ctx, state, prompt)
}

// runFollowUp はフォローアップフローを実行する
// 評価履歴の移動平均 → 現在スコア入力 → 低下項目の特定 → 患者情報 → レポート
func (w *Workflow) runFollowUp(ctx context.Context, state *State) error {
	assessmentID, err := w.asker.Ask(assessmentIDQuestion)
	if err != nil {
		return fmt.Errorf("assessment ID input failed: %w", err)
	}
	state.Answers[assessmentIDQuestion.Key] = assessmentID

	filePath := filepath.Join(w.cfg.DataDir, assessmentID+".csv")
	records, err := assessment.ReadRecords(filePath)
	if err != nil {
		return fmt.Errorf("failed to read assessment history: %w", err)
	}

	averages := assessment.RollingAverage(records, w.now(), w.cfg.WindowDays)
	fmt.Printf("%d-day average scores calculated.\n", w.cfg.WindowDays)

	fmt.Println("\nPlease input the current scores for each item:")
	currentScores, err := w.askItemScores(state)
	if err != nil {
		return fmt.Errorf("score input failed: %w", err)
	}

	comparison, err := assessment.Compare(currentScores, averages)
	if err != nil {
		return fmt.Errorf("score comparison failed: %w", err)
	}

	w.printComparison(currentScores, averages, comparison)

	fmt.Println("\nPlease provide the following patient information:")
	patientInfo, err := w.asker.AskAll(intake.PatientInfoQuestions)
	if err != nil {
		return fmt.Errorf("patient info intake failed: %w", err)
	}
	for key, value := range patientInfo {
		state.Answers[key] = value
	}

	docs, err := w.library.Select(
		document.RoleCUEManual,
		document.RolePTXGuide,
		document.RoleStrokeComplications,
		document.RoleSCIComplications,
	)
	if err != nil {
		return fmt.Errorf("failed to select follow-up documents: %w", err)
	}

	queries := []string{"upper extremity, complications"}

	contexts, err := w.pipeline.ProcessDocuments(ctx, docs, queries)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrCollaborator, err)
	}

	prompt := BuildRehabilitationPrompt(state.Answers, comparison.Decreased, comparison.NoData, contexts)

	return w.report(ctx, state, prompt)
}

// askItemScores は17項目の現在スコアを検証付きで入力させる
func (w *Workflow) askItemScores(state *State) ([]float64, error) {
	scores := make([]float64, 0, assessment.NumItems)

	for i := 0; i < assessment.NumItems; i++ {
		q := intake.Question{
			Key:      fmt.Sprintf("current score: %s", assessment.ItemNames[i]),
			Label:    fmt.Sprintf("Enter the score for Item %d (%s)", i+1, assessment.ItemNames[i]),
			Validate: intake.Numeric,
		}

		answer, err := w.asker.Ask(q)
		if err != nil {
			return nil, err
		}
		state.Answers[q.Key] = answer

		// 述語がNumericなので必ず解釈できる
		score, err := strconv.ParseFloat(strings.TrimSpace(answer), 64)
		if err != nil {
			return nil, fmt.Errorf("unexpected non-numeric score %q: %w", answer, err)
		}
		scores = append(scores, score)
	}

	return scores, nil
}

// printComparison は項目ごとの現在値・平均値・判定を表形式で表示する
func (w *Workflow) printComparison(current []float64, averages [assessment.NumItems]mo.Option[float64], comparison *assessment.Comparison) {
	table := tablewriter.NewWriter(os.Stdout)
	table.Header("Item", "Current", "7-day Avg", "Status")

	decreased := make(map[string]bool, len(comparison.Decreased))
	for _, name := range comparison.Decreased {
		decreased[name] = true
	}
	noData := make(map[string]bool, len(comparison.NoData))
	for _, name := range comparison.NoData {
		noData[name] = true
	}

	for i := 0; i < assessment.NumItems; i++ {
		name := assessment.ItemNames[i]

		avgText := "-"
		if avg, ok := averages[i].Get(); ok {
			avgText = strconv.FormatFloat(avg, 'f', 2, 64)
		}

		status := "stable"
		switch {
		case noData[name]:
			status = "insufficient history"
		case decreased[name]:
			status = "decreased"
		}

		table.Append(
			name,
			strconv.FormatFloat(current[i], 'f', 2, 64),
			avgText,
			status,
		)
	}

	table.Render()

	fmt.Println("\nItems with decreased scores:", comparison.Decreased)
	if len(comparison.NoData) > 0 {
		fmt.Println("Items with insufficient history:", comparison.NoData)
	}
}

// report はレポーティング状態を実行する（終端状態）
// 最終プロンプトを1回だけLLMに送り、結果を表示する
func (w *Workflow) report(ctx context.Context, state *State, prompt string) error {
	w.logger.Info("generating final report", "sessionID", state.ID.String(), "branch", string(state.Branch))

	result, err := w.llm.GenerateCompletion(ctx, prompt)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrCollaborator, err)
	}

	fmt.Println("\nAssessment Result:")
	fmt.Println(result)
	fmt.Println("\nWorkflow completed.")

	w.logger.Info("session completed", "sessionID", state.ID.String())

	return nil
}
