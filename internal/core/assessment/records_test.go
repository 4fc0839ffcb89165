package assessment

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func csvHeader() string {
	cols := []string{"datetime"}
	for i := 1; i <= NumItems; i++ {
		cols = append(cols, fmt.Sprintf("Item %d", i))
	}
	return strings.Join(cols, ",")
}

func csvRow(datetime string, score float64) string {
	cols := []string{datetime}
	for i := 0; i < NumItems; i++ {
		cols = append(cols, fmt.Sprintf("%g", score))
	}
	return strings.Join(cols, ",")
}

func TestParseRecords(t *testing.T) {
	data := csvHeader() + "\n" +
		csvRow("2024-08-01 09:00:00", 4) + "\n" +
		csvRow("2024-08-03", 6) + "\n"

	records, err := parseRecords(strings.NewReader(data))
	require.NoError(t, err)
	require.Len(t, records, 2)

	assert.Equal(t, 4.0, records[0].Scores[0])
	assert.Equal(t, 6.0, records[1].Scores[NumItems-1])
	assert.Equal(t, 2024, records[0].Timestamp.Year())
}

func TestParseRecords_MissingColumn(t *testing.T) {
	// Item 17列を欠落させる
	header := csvHeader()
	header = strings.TrimSuffix(header, ",Item 17")

	_, err := parseRecords(strings.NewReader(header + "\n"))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrDataShape)
	assert.ErrorContains(t, err, "Item 17")
}

func TestParseRecords_MissingDatetimeColumn(t *testing.T) {
	header := strings.Replace(csvHeader(), "datetime", "date", 1)

	_, err := parseRecords(strings.NewReader(header + "\n"))
	assert.ErrorIs(t, err, ErrDataShape)
}

func TestParseRecords_NonNumericScore(t *testing.T) {
	row := csvRow("2024-08-01", 4)
	row = strings.Replace(row, "4", "four", 1)

	_, err := parseRecords(strings.NewReader(csvHeader() + "\n" + row + "\n"))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrDataShape)
	assert.ErrorContains(t, err, "row 2")
}

func TestParseRecords_InvalidTimestamp(t *testing.T) {
	_, err := parseRecords(strings.NewReader(csvHeader() + "\n" + csvRow("01/08/2024", 4) + "\n"))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrDataShape)
}

func TestParseRecords_MalformedRow(t *testing.T) {
	// 列数が合わない行
	data := csvHeader() + "\n2024-08-01,1,2\n"

	_, err := parseRecords(strings.NewReader(data))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrDataShape)
}

func TestReadRecords_FileNotFound(t *testing.T) {
	_, err := ReadRecords("/nonexistent/patient.csv")
	assert.Error(t, err)
}
