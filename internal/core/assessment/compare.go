package assessment

import (
	"fmt"

	"github.com/samber/mo"
)

// Comparison は最新スコアと移動平均の比較結果
type Comparison struct {
	// 平均より厳密に低下した項目名（固定項目順）
	Decreased []string

	// 平均が計算できなかった項目名（履歴不足、固定項目順）
	NoData []string
}

// Compare は各項目の最新スコアを移動平均と比較し、低下した項目を特定する
// 低下は厳密な小なり（current < average）。同値は低下とみなさない
// currentは固定項目順に揃った17要素であること。長さ不一致は契約違反として即時失敗する
func Compare(current []float64, averages [NumItems]mo.Option[float64]) (*Comparison, error) {
	if len(current) != NumItems {
		return nil, fmt.Errorf("%w: expected %d current scores, got %d", ErrDataShape, NumItems, len(current))
	}

	result := &Comparison{}

	for i := 0; i < NumItems; i++ {
		avg, ok := averages[i].Get()
		if !ok {
			result.NoData = append(result.NoData, ItemNames[i])
			continue
		}
		if current[i] < avg {
			result.Decreased = append(result.Decreased, ItemNames[i])
		}
	}

	return result, nil
}
