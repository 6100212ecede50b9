package service

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/lshigami/examprep/internal/model"
	"github.com/rs/zerolog/log"
)

// maxElapsedSeconds caps recorded elapsed time at one day.
const maxElapsedSeconds = 24 * 60 * 60

// ScoreAttempt sums the marks of every question whose recorded answer equals
// its correct index. Unanswered questions and answers for unknown question ids
// contribute nothing.
func ScoreAttempt(questions []model.Question, answers model.AnswerMap) int {
	score := 0
	for _, q := range questions {
		selected, answered := answers[q.ID]
		if answered && selected == q.CorrectIdx {
			score += q.Marks
		}
	}
	return score
}

// PercentageOf is the rounding rule used for every displayed score:
// round(score/total*100), and 0 when total is not positive.
func PercentageOf(score, total int) int {
	if total <= 0 {
		return 0
	}
	return int(math.Round(float64(score) / float64(total) * 100))
}

// NormalizeElapsedSeconds coerces client timing telemetry. Missing,
// non-numeric or non-finite values become 0, numbers are rounded, negatives
// become 0. It never fails.
func NormalizeElapsedSeconds(raw any) int {
	value, ok := toFloat(raw)
	if !ok || math.IsNaN(value) || math.IsInf(value, 0) {
		log.Debug().Interface("timeTaken", raw).Msg("Coercing unusable elapsed time to 0")
		return 0
	}
	rounded := math.Round(value)
	if rounded < 0 {
		log.Debug().Float64("timeTaken", value).Msg("Coercing negative elapsed time to 0")
		return 0
	}
	if rounded > maxElapsedSeconds {
		log.Debug().Float64("timeTaken", value).Int("cap", maxElapsedSeconds).Msg("Capping elapsed time")
		return maxElapsedSeconds
	}
	return int(rounded)
}

func toFloat(raw any) (float64, bool) {
	switch v := raw.(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	case json.Number:
		f, err := v.Float64()
		return f, err == nil
	default:
		return 0, false
	}
}

// NormalizeAnswers converts a decoded JSON answer object into an AnswerMap.
// Null values mean unanswered and are dropped. Numbers and numeric strings
// are accepted; a number that is not a usable option index (fractional,
// negative, too large) is dropped too, so it scores nothing. Any other value
// makes the whole map malformed.
func NormalizeAnswers(raw map[string]any) (model.AnswerMap, error) {
	answers := make(model.AnswerMap, len(raw))
	for questionID, value := range raw {
		if value == nil {
			continue
		}
		f, ok := answerNumber(value)
		if !ok {
			return nil, fmt.Errorf("answer for question %q is not a valid option index: %v", questionID, value)
		}
		idx, ok := optionIndex(f)
		if !ok {
			log.Debug().Str("questionID", questionID).Float64("answer", f).Msg("Ignoring answer that is not an option index")
			continue
		}
		answers[questionID] = idx
	}
	return answers, nil
}

func answerNumber(value any) (float64, bool) {
	if v, ok := value.(string); ok {
		parsed, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		return parsed, err == nil
	}
	return toFloat(value)
}

func optionIndex(f float64) (int, bool) {
	if math.IsNaN(f) || math.IsInf(f, 0) || f != math.Trunc(f) || f < 0 || f > math.MaxInt32 {
		return 0, false
	}
	return int(f), true
}
