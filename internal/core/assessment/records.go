package assessment

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"
)

// ErrDataShape は評価データの形状不正を表す
// 列の欠落・数値でないセル・スコア列長の不一致はすべてこのエラーで即時失敗する
// （黙って補正しない）
var ErrDataShape = errors.New("assessment data shape error")

// Record は1回の評価を表す時刻付きスコア行
type Record struct {
	Timestamp time.Time
	Scores    [NumItems]float64
}

// CSVのdatetime列で受け付けるフォーマット
var timestampLayouts = []string{
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// ReadRecords は患者ごとの評価履歴CSVを読み込む
// ヘッダにdatetime列とItem 1〜Item 17列が必要。列順には依存しない
func ReadRecords(path string) ([]Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open assessment file: %w", err)
	}
	defer f.Close()

	return parseRecords(f)
}

func parseRecords(r io.Reader) ([]Record, error) {
	reader := csv.NewReader(r)

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read CSV header: %v", ErrDataShape, err)
	}

	columns := make(map[string]int, len(header))
	for i, name := range header {
		columns[name] = i
	}

	dateCol, ok := columns["datetime"]
	if !ok {
		return nil, fmt.Errorf("%w: missing required column %q", ErrDataShape, "datetime")
	}

	var itemCols [NumItems]int
	for i := 0; i < NumItems; i++ {
		name := fmt.Sprintf("Item %d", i+1)
		col, ok := columns[name]
		if !ok {
			return nil, fmt.Errorf("%w: missing required column %q", ErrDataShape, name)
		}
		itemCols[i] = col
	}

	var records []Record
	for rowNum := 2; ; rowNum++ {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: malformed CSV at row %d: %v", ErrDataShape, rowNum, err)
		}

		ts, err := parseTimestamp(row[dateCol])
		if err != nil {
			return nil, fmt.Errorf("%w: invalid datetime %q at row %d", ErrDataShape, row[dateCol], rowNum)
		}

		rec := Record{Timestamp: ts}
		for i, col := range itemCols {
			score, err := strconv.ParseFloat(row[col], 64)
			if err != nil {
				return nil, fmt.Errorf("%w: non-numeric score %q for %q at row %d", ErrDataShape, row[col], ItemNames[i], rowNum)
			}
			rec.Scores[i] = score
		}

		records = append(records, rec)
	}

	return records, nil
}

func parseTimestamp(value string) (time.Time, error) {
	for _, layout := range timestampLayouts {
		if ts, err := time.Parse(layout, value); err == nil {
			return ts, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized timestamp format: %q", value)
}
