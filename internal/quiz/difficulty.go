package quiz

import (
	"math/rand"

	"github.com/quizwhiz/backend/internal/models"
)

// descriptiveShare is the probability that the next question is
// descriptive rather than multiple choice.
const descriptiveShare = 0.3

// NextDifficulty is the adaptive rule: one step up on a correct answer,
// one step down on an incorrect one, clamped to [MinDifficulty, MaxDifficulty].
func NextDifficulty(current int, wasCorrect bool) int {
	if wasCorrect {
		if current+1 > models.MaxDifficulty {
			return models.MaxDifficulty
		}
		return current + 1
	}
	if current-1 < models.MinDifficulty {
		return models.MinDifficulty
	}
	return current - 1
}

// NextQuestionType picks the type of the next question.
func NextQuestionType(rng *rand.Rand) models.QuestionType {
	if rng.Float64() < descriptiveShare {
		return models.TypeDescriptive
	}
	return models.TypeMultipleChoice
}
