package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/urfave/cli/v3"

	"github.com/reconect/reconect/cmd/reconect/commands"
	"github.com/reconect/reconect/internal/platform/logger"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 構造化ログの設定（診断ログはstderr、セッション出力はstdout）
	logger.New(logger.DefaultConfig())

	app := &cli.Command{
		Name:  "reconect",
		Usage: "臨床ガイドに基づく診断・リハビリ評価の対話型問診ワークフロー",
		Commands: []*cli.Command{
			{
				Name:  "intake",
				Usage: "患者セッションコマンド",
				Commands: []*cli.Command{
					{
						Name:  "start",
						Usage: "対話型の問診セッションを開始",
						Flags: []cli.Flag{
							&cli.StringFlag{
								Name:  "env",
								Usage: "環境変数ファイルパス",
								Value: ".env",
							},
						},
						Action: commands.IntakeStartAction,
					},
				},
			},
			{
				Name:  "docs",
				Usage: "参照文書管理コマンド",
				Commands: []*cli.Command{
					{
						Name:  "list",
						Usage: "読み込み済みの臨床ガイド一覧を表示",
						Flags: []cli.Flag{
							&cli.StringFlag{
								Name:  "env",
								Usage: "環境変数ファイルパス",
								Value: ".env",
							},
						},
						Action: commands.DocsListAction,
					},
				},
			},
		},
	}

	if err := app.Run(ctx, os.Args); err != nil {
		log.Fatal(err)
	}
}
