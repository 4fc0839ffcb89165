package assessment

import (
	"testing"
	"time"

	"github.com/samber/mo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(n int) time.Time {
	base := time.Date(2024, 8, 1, 12, 0, 0, 0, time.UTC)
	return base.AddDate(0, 0, n-1)
}

func recordAt(ts time.Time, item1, item2 float64) Record {
	rec := Record{Timestamp: ts}
	rec.Scores[0] = item1
	rec.Scores[1] = item2
	return rec
}

func TestRollingAverage_WindowBoundary(t *testing.T) {
	// 14日間にまたがる10行。基準日=day14、ウィンドウ=7日のとき
	// day7より後（day7当日は含まない）の行だけが対象になる
	records := []Record{
		recordAt(day(1), 10, 100),
		recordAt(day(3), 10, 100),
		recordAt(day(5), 10, 100),
		recordAt(day(7), 10, 100), // 境界ちょうど: 除外
		recordAt(day(8), 2, 20),
		recordAt(day(9), 4, 40),
		recordAt(day(10), 6, 60),
		recordAt(day(11), 8, 80),
		recordAt(day(13), 10, 10),
		recordAt(day(14), 12, 30),
	}

	averages := RollingAverage(records, day(14), 7)

	// Item 1: (2+4+6+8+10+12)/6 = 7.0
	avg1, ok := averages[0].Get()
	require.True(t, ok)
	assert.InDelta(t, 7.0, avg1, 1e-9)

	// Item 2: (20+40+60+80+10+30)/6 = 40.0
	avg2, ok := averages[1].Get()
	require.True(t, ok)
	assert.InDelta(t, 40.0, avg2, 1e-9)
}

func TestRollingAverage_WorkedExample(t *testing.T) {
	// 仕様化された例: day-3とday-6は対象、day-9は対象外 → Item 1平均は5.0
	ref := time.Date(2024, 8, 20, 0, 0, 0, 0, time.UTC)
	records := []Record{
		recordAt(ref.AddDate(0, 0, -3), 4.0, 0),
		recordAt(ref.AddDate(0, 0, -6), 6.0, 0),
		recordAt(ref.AddDate(0, 0, -9), 8.0, 0),
	}

	averages := RollingAverage(records, ref, 7)

	avg, ok := averages[0].Get()
	require.True(t, ok)
	assert.InDelta(t, 5.0, avg, 1e-9)

	// 平均5.0に対し、4.0は低下として検出され、5.0（同値）は検出されない
	current := make([]float64, NumItems)
	current[0] = 4.0
	result, err := Compare(current, averages)
	require.NoError(t, err)
	assert.Contains(t, result.Decreased, "Reach fwd")

	current[0] = 5.0
	result, err = Compare(current, averages)
	require.NoError(t, err)
	assert.NotContains(t, result.Decreased, "Reach fwd")
}

func TestRollingAverage_NoQualifyingRows(t *testing.T) {
	// ウィンドウ内に行がない場合はNaNではなくNoneになること
	records := []Record{
		recordAt(day(1), 5, 5),
	}

	averages := RollingAverage(records, day(14), 7)

	for i, avg := range averages {
		assert.Equal(t, mo.None[float64](), avg, "item %d", i)
	}
}

func TestRollingAverage_RoundsToTwoDecimals(t *testing.T) {
	records := []Record{
		recordAt(day(13), 1, 0),
		recordAt(day(14), 2, 0),
		recordAt(day(14), 2, 0),
	}

	averages := RollingAverage(records, day(14), 7)

	avg, ok := averages[0].Get()
	require.True(t, ok)
	assert.Equal(t, 1.67, avg)
}
