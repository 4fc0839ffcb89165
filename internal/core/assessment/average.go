package assessment

import (
	"math"
	"time"

	"github.com/samber/mo"
)

// DefaultWindowDays は移動平均の既定ウィンドウ日数
const DefaultWindowDays = 7

// RollingAverage は基準日からウィンドウ日数さかのぼった期間の項目別平均を計算する
// 対象は timestamp > ref − window の行（境界日は含まない）
// 対象行がひとつもない項目は mo.None（履歴不足センチネル）になる
// 数値は小数第2位に丸める
func RollingAverage(records []Record, ref time.Time, windowDays int) [NumItems]mo.Option[float64] {
	cutoff := ref.AddDate(0, 0, -windowDays)

	var sums [NumItems]float64
	var count int

	for _, rec := range records {
		if !rec.Timestamp.After(cutoff) {
			continue
		}
		for i, score := range rec.Scores {
			sums[i] += score
		}
		count++
	}

	var averages [NumItems]mo.Option[float64]
	for i := range averages {
		if count == 0 {
			averages[i] = mo.None[float64]()
			continue
		}
		averages[i] = mo.Some(round2(sums[i] / float64(count)))
	}

	return averages
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
