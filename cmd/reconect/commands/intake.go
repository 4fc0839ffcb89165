package commands

import (
	"context"
	"errors"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/reconect/reconect/internal/core/intake"
	"github.com/reconect/reconect/internal/core/retrieval"
	"github.com/reconect/reconect/internal/core/session"
)

// IntakeStartAction は対話型の患者セッションを開始するコマンドのアクション
func IntakeStartAction(ctx context.Context, cmd *cli.Command) error {
	envFile := cmd.String("env")

	appCtx, err := NewAppContext(ctx, envFile)
	if err != nil {
		return err
	}

	pipeline := retrieval.NewPipeline(
		appCtx.LLMClient,
		appCtx.Tokenizer,
		retrieval.Config{
			ChunkSize:         appCtx.Config.Retrieval.ChunkSize,
			ChunkOverlap:      appCtx.Config.Retrieval.ChunkOverlap,
			TopK:              appCtx.Config.Retrieval.TopK,
			ContextTokenLimit: appCtx.Config.Retrieval.ContextTokenLimit,
		},
		retrieval.WithPipelineLogger(appCtx.Logger()),
	)

	asker := intake.NewAsker(intake.TerminalPrompter{}, appCtx.Config.Intake.MaxAttempts)

	workflow := session.NewWorkflow(
		appCtx.Library,
		pipeline,
		appCtx.LLMClient,
		asker,
		session.Config{
			DataDir:    appCtx.Config.Assessment.Dir,
			WindowDays: appCtx.Config.Assessment.WindowDays,
		},
		session.WithWorkflowLogger(appCtx.Logger()),
	)

	if err := workflow.Run(ctx); err != nil {
		// 詳細は診断ログへ、患者向けには平易なメッセージを返す
		appCtx.Logger().Error("session failed", "error", err)

		switch {
		case errors.Is(err, session.ErrCollaborator):
			return fmt.Errorf("the assessment service is currently unavailable; please try again later")
		case errors.Is(err, intake.ErrMaxAttemptsExceeded):
			return fmt.Errorf("too many invalid answers; please restart the session")
		default:
			return fmt.Errorf("the session could not be completed: %w", err)
		}
	}

	return nil
}
