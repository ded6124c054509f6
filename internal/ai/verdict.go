package ai

import (
	"encoding/json"
	"math"
	"strings"

	"hireai/internal/errors"
	"hireai/internal/types"
)

// verdictPayload is the wire shape the model is asked to produce. The score
// arrives as a JSON number; models sometimes emit fractional values, so it is
// decoded as float64 and coerced to an integer during parsing.
type verdictPayload struct {
	MatchPercentage float64  `json:"matchPercentage"`
	Summary         string   `json:"summary"`
	Pros            []string `json:"pros"`
	Cons            []string `json:"cons"`
	InterviewQues   []string `json:"interviewQuestions"`
}

// extractJSON strips markdown code fences that some models wrap around
// JSON output even when a structured response is requested.
func extractJSON(text string) string {
	cleaned := strings.TrimSpace(text)

	if after, ok := strings.CutPrefix(cleaned, "```json"); ok {
		cleaned = after
	} else if after, ok := strings.CutPrefix(cleaned, "```"); ok {
		cleaned = after
	}
	cleaned = strings.TrimSuffix(strings.TrimSpace(cleaned), "```")

	return strings.TrimSpace(cleaned)
}

// parseVerdict decodes a model response into an EvaluationVerdict. Fractional
// scores are rounded and scores outside [0, 100] are clamped, both flagged
// rather than rejected. A response
// that cannot be decoded produces a malformed-response error carrying the
// raw text for diagnosis.
func parseVerdict(raw string) (types.EvaluationVerdict, error) {
	var payload verdictPayload
	if err := json.Unmarshal([]byte(extractJSON(raw)), &payload); err != nil {
		return types.EvaluationVerdict{}, errors.NewScoringError(
			errors.ErrCodeScoringMalformed,
			"Scoring service returned a response that is not valid JSON", err,
		).WithContext("raw_response", raw)
	}

	score := int(math.Round(payload.MatchPercentage))
	coerced := payload.MatchPercentage != float64(score)

	verdict := types.EvaluationVerdict{
		MatchPercentage:    score,
		Summary:            payload.Summary,
		Pros:               payload.Pros,
		Cons:               payload.Cons,
		InterviewQuestions: payload.InterviewQues,
	}

	switch {
	case verdict.MatchPercentage < 0:
		verdict.MatchPercentage = 0
		coerced = true
	case verdict.MatchPercentage > 100:
		verdict.MatchPercentage = 100
		coerced = true
	}
	verdict.Clamped = coerced

	return verdict, nil
}
