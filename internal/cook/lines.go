// Every user-facing string the driver prints lives here. Keep lines
// short and direct.

package cook

import (
	"fmt"
	"strings"

	"github.com/hammamikhairi/stepcook/internal/domain"
)

// ── Session lifecycle ────────────────────────────────────────────

func LineCookingStart(title string, steps, totalMinutes int) string {
	return fmt.Sprintf("Cooking %s. %d steps, %d minutes. Here we go.", title, steps, totalMinutes)
}

func LineRecipeComplete(title string) string {
	return fmt.Sprintf("Recipe complete: %s. Enjoy.", title)
}

func LineEnded() string {
	return "Session ended."
}

func LinePaused() string {
	return "Paused. Say resume when ready."
}

func LineResumed() string {
	return "Resumed."
}

func LineAlreadyPaused() string {
	return "Already paused."
}

func LineAlreadyRunning() string {
	return "Already running."
}

func LineUnknown(input string) string {
	return fmt.Sprintf("Didn't catch that: %s. Say help for commands.", input)
}

// ── Step narration ───────────────────────────────────────────────

// LineStep announces a step with its duration and, for cooking steps,
// the appliance settings. Instruction steps list their ingredients.
func LineStep(recipe *domain.Recipe, index int) string {
	step := recipe.Steps[index]

	var b strings.Builder
	fmt.Fprintf(&b, "Step %d/%d: %s (%s)", index+1, len(recipe.Steps), step.Description, formatMinutes(step.DurationMinutes))

	switch step.Type {
	case domain.StepCooking:
		if step.Settings != nil {
			fmt.Fprintf(&b, " at %d°C, speed %d", step.Settings.Temperature, step.Settings.Speed)
		}
	case domain.StepInstruction:
		names := make([]string, 0, len(step.IngredientIDs))
		for _, id := range step.IngredientIDs {
			if ing := recipe.IngredientByID(id); ing != nil {
				names = append(names, ing.Name)
			}
		}
		if len(names) > 0 {
			fmt.Fprintf(&b, ". Uses: %s", strings.Join(names, ", "))
		}
	}
	b.WriteString(".")
	return b.String()
}

// ── Status ───────────────────────────────────────────────────────

func LineStatus(recipe *domain.Recipe, session domain.Session) string {
	state := "running"
	if !session.IsRunning {
		state = "paused"
	}
	return fmt.Sprintf("Step %d of %d, %s left in this step, %s overall (%s).",
		session.CurrentStepIndex+1, len(recipe.Steps),
		domain.FormatClock(session.StepRemainingSec),
		domain.FormatClock(session.OverallRemainingSec),
		state)
}

func LineHelp() string {
	return "Commands: pause, resume, p (toggle), next (finish step), status, end."
}

func formatMinutes(m int) string {
	if m == 1 {
		return "1 minute"
	}
	return fmt.Sprintf("%d minutes", m)
}
