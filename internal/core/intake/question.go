package intake

import (
	"regexp"
	"strconv"
	"strings"
)

// Question は患者に提示するひとつの質問を表す
type Question struct {
	// 回答を保存する固定キー
	Key string

	// 患者に表示する質問文
	Label string

	// 回答を受理するか判定する述語。受理された回答は正規化せずそのまま保存される
	Validate func(string) bool
}

// severityPattern は重症度の自由回答を受理するパターン
// "mild" や "extremely severe" を受理し、"bad" などは拒否する
var severityPattern = regexp.MustCompile(`\b(extremely\s+)?(mild|moderate|severe)\b`)

// NonEmpty は空でない回答を受理する
func NonEmpty(answer string) bool {
	return len(answer) > 0
}

// YesNo はyes/noの回答を大文字小文字を無視して受理する
func YesNo(answer string) bool {
	lower := strings.ToLower(answer)
	return lower == "yes" || lower == "no"
}

// YesNoWithDetail はyes/no、またはyesに続く補足（部位など）を受理する
func YesNoWithDetail(answer string) bool {
	lower := strings.ToLower(answer)
	return YesNo(answer) || (strings.HasPrefix(lower, "yes") && len(answer) > 3)
}

// Severity は重症度の回答を受理する
func Severity(answer string) bool {
	return severityPattern.MatchString(strings.ToLower(answer))
}

// OneOf は候補のいずれか（大文字小文字を無視）を受理する述語を返す
func OneOf(options ...string) func(string) bool {
	return func(answer string) bool {
		lower := strings.ToLower(answer)
		for _, opt := range options {
			if lower == opt {
				return true
			}
		}
		return false
	}
}

// IntInRange はmin < n < max の整数を受理する述語を返す
func IntInRange(min, max int) func(string) bool {
	return func(answer string) bool {
		n, err := strconv.Atoi(answer)
		if err != nil {
			return false
		}
		return n > min && n < max
	}
}

// IntInRangeInclusive はmin <= n <= max の整数を受理する述語を返す
func IntInRangeInclusive(min, max int) func(string) bool {
	return func(answer string) bool {
		n, err := strconv.Atoi(answer)
		if err != nil {
			return false
		}
		return n >= min && n <= max
	}
}

// Numeric は数値として解釈できる回答を受理する
func Numeric(answer string) bool {
	_, err := strconv.ParseFloat(strings.TrimSpace(answer), 64)
	return err == nil
}
