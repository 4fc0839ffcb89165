package commands

import (
	"context"
	"os"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/urfave/cli/v3"

	"github.com/reconect/reconect/internal/core/document"
)

// DocsListAction は読み込み済みの参照文書の一覧を表示するコマンドのアクション
// 臨床ガイドの配置を検証するための補助コマンド
func DocsListAction(ctx context.Context, cmd *cli.Command) error {
	envFile := cmd.String("env")

	appCtx, err := NewAppContext(ctx, envFile)
	if err != nil {
		return err
	}

	table := tablewriter.NewWriter(os.Stdout)
	table.Header("Role", "Source", "Segments", "Characters")

	for _, role := range document.AllRoles {
		doc, err := appCtx.Library.Get(role)
		if err != nil {
			return err
		}

		table.Append(
			string(doc.Role),
			doc.SourcePath,
			strconv.Itoa(len(doc.Segments)),
			strconv.Itoa(len(doc.Text())),
		)
	}

	table.Render()

	return nil
}
