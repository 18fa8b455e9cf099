package display

import (
	"fmt"
	"strings"

	"github.com/hammamikhairi/stepcook/internal/domain"
	"github.com/hammamikhairi/stepcook/internal/engine"
	"github.com/hammamikhairi/stepcook/internal/recipe"
)

func (m model) View() string {
	var b strings.Builder
	if m.screen == screenCook && m.current != nil {
		m.viewCook(&b)
	} else {
		m.viewList(&b)
	}
	if m.err != "" {
		b.WriteString("\n" + urgentStyle.Render(m.err) + "\n")
	}
	return b.String()
}

func (m model) viewList(b *strings.Builder) {
	header := titleStyle.Render(appTitle)
	filter := "all recipes"
	if m.favoritesOnly {
		filter = "favorites"
	}
	header += metaStyle.Render(fmt.Sprintf("  %s, by %s", filter, m.sortBy))
	b.WriteString(header + "\n\n")

	if len(m.recipes) == 0 {
		b.WriteString(metaStyle.Render("  No recipes. Import some with: stepcook recipes import <file.yaml>") + "\n")
	}
	for i, s := range m.recipes {
		cursor := "  "
		line := primaryStyle.Render(s.Title)
		if i == m.cursor {
			cursor = cursorStyle.Render("> ")
			line = cursorStyle.Render(s.Title)
		}
		star := "  "
		if s.Favorite {
			star = favoriteStyle.Render("★ ")
		}
		meta := metaStyle.Render(fmt.Sprintf("  %s · %d min · %d steps", s.Difficulty, s.TotalMinutes, s.StepCount))
		b.WriteString(cursor + star + line + meta + "\n")
	}

	if p := m.miniPlayer(); p != "" {
		b.WriteString("\n" + p + "\n")
	}
	b.WriteString("\n" + m.help.View(m.listKeys) + "\n")
}

// miniPlayer summarises the active session while browsing.
func (m model) miniPlayer() string {
	if m.active == nil {
		return ""
	}
	s, ok := m.eng.Session(m.active.ID)
	if !ok {
		return ""
	}
	state := "▶ running"
	if !s.IsRunning {
		state = "⏸ paused"
	}
	return playerStyle.Render(fmt.Sprintf("%s · %s · step %d/%d · %s · %s left",
		state, m.active.Title, s.CurrentStepIndex+1, len(m.active.Steps),
		domain.FormatClock(s.DisplayStepRemaining()),
		domain.FormatClock(s.DisplayOverallRemaining())))
}

func (m model) viewCook(b *strings.Builder) {
	r := m.current
	b.WriteString(titleStyle.Render(r.Title) + "\n")
	meta := fmt.Sprintf("%s · %d min", r.Difficulty, recipe.TotalMinutes(r))
	if r.Cuisine != "" {
		meta += " · " + r.Cuisine
	}
	b.WriteString(metaStyle.Render(meta) + "\n\n")

	if m.finished == r.ID {
		b.WriteString(doneStyle.Render("Recipe complete! Enjoy your "+r.Title+".") + "\n\n")
		m.viewTimeline(b, len(r.Steps))
		b.WriteString("\n" + m.help.View(m.cookKeys) + "\n")
		return
	}

	s, cooking := m.eng.Session(r.ID)
	switch {
	case cooking:
		m.viewSession(b, s)
	case m.active != nil:
		b.WriteString(pausedStyle.Render(m.active.Title+" is cooking. Open it with c from the list.") + "\n\n")
		m.viewTimeline(b, -1)
	default:
		b.WriteString(metaStyle.Render("Press s to start cooking.") + "\n\n")
		m.viewTimeline(b, -1)
	}
	b.WriteString("\n" + m.help.View(m.cookKeys) + "\n")
}

func (m model) viewSession(b *strings.Builder, s domain.Session) {
	r := m.current
	step := r.Steps[s.CurrentStepIndex]

	b.WriteString(stepStyle.Render(fmt.Sprintf("Step %d of %d", s.CurrentStepIndex+1, len(r.Steps))))
	if !s.IsRunning {
		b.WriteString("  " + pausedStyle.Render("paused"))
	}
	b.WriteString("\n" + primaryStyle.Render(step.Description) + "\n")
	if detail := stepDetail(r, step); detail != "" {
		b.WriteString(metaStyle.Render(detail) + "\n")
	}

	b.WriteString("\n" + clockStyle.Render(domain.FormatClock(s.DisplayStepRemaining())) + "\n")
	b.WriteString(m.stepBar.ViewAs(float64(engine.StepProgress(r, s))/100) + "\n\n")

	m.viewTimeline(b, s.CurrentStepIndex)

	b.WriteString("\n" + metaStyle.Render("Overall ") +
		clockStyle.Render(domain.FormatClock(s.DisplayOverallRemaining())) +
		metaStyle.Render(" remaining") + "\n")
	b.WriteString(m.overallBar.ViewAs(float64(engine.OverallProgress(r, s))/100) + "\n")
}

// viewTimeline lists every step. Steps before current are done; a
// current of -1 means nothing has started.
func (m model) viewTimeline(b *strings.Builder, current int) {
	for i, step := range m.current.Steps {
		mark, style := "·", metaStyle
		switch {
		case current >= 0 && i < current:
			mark, style = "✓", doneStyle
		case i == current:
			mark, style = "▶", stepStyle
		}
		line := fmt.Sprintf("%s %d. %s", mark, i+1, step.Description)
		b.WriteString("  " + style.Render(line) + sepStyle.Render(fmt.Sprintf("  %dm", step.DurationMinutes)) + "\n")
	}
}

// stepDetail renders appliance settings or the ingredients a step uses.
func stepDetail(r *domain.Recipe, step domain.Step) string {
	if step.Type == domain.StepCooking && step.Settings != nil {
		return fmt.Sprintf("%d°C · speed %d", step.Settings.Temperature, step.Settings.Speed)
	}
	var names []string
	for _, id := range step.IngredientIDs {
		ing := r.IngredientByID(id)
		if ing == nil {
			continue
		}
		names = append(names, fmt.Sprintf("%s (%g %s)", ing.Name, ing.Quantity, ing.Unit))
	}
	if len(names) == 0 {
		return ""
	}
	return "Uses: " + strings.Join(names, ", ")
}
