package engine

import "github.com/hammamikhairi/stepcook/internal/domain"

// StepProgress returns how far through its current step the session is,
// as a whole percentage in [0, 100].
func StepProgress(recipe *domain.Recipe, session domain.Session) int {
	idx := session.CurrentStepIndex
	if idx < 0 || idx >= len(recipe.Steps) {
		return 0
	}
	total := recipe.Steps[idx].DurationSec()
	elapsed := total - session.StepRemainingSec
	return percent(elapsed, total)
}

// OverallProgress returns how far through the whole recipe the session
// is, as a whole percentage in [0, 100].
func OverallProgress(recipe *domain.Recipe, session domain.Session) int {
	total := 0
	for _, step := range recipe.Steps {
		total += step.DurationSec()
	}
	return percent(total-session.OverallRemainingSec, total)
}

func percent(elapsed, total int) int {
	if total <= 0 {
		return 0
	}
	if elapsed < 0 {
		elapsed = 0
	}
	if elapsed > total {
		elapsed = total
	}
	return (elapsed*100 + total/2) / total
}
