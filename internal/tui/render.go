package tui

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"neuroflash/internal/model"
)

const barWidth = 40

var arrows = map[string]string{"up": "↑", "down": "↓", "left": "←", "right": "→"}

func (m Model) View() string {
	if m.done {
		return ""
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("NEUROFLASH"))
	b.WriteString("\n")
	b.WriteString(hudStyle.Render(m.hud()))
	b.WriteString("\n\n")
	b.WriteString(panelStyle.Render(m.body()))
	b.WriteString("\n")

	if m.cue != "" && m.now().Sub(m.cueAt) < cueTTL {
		b.WriteString(cueStyle.Render("♪ " + string(m.cue)))
	}
	b.WriteString("\n")
	if m.err != nil {
		b.WriteString(errorStyle.Render(m.err.Error()))
	}
	b.WriteString("\n")
	b.WriteString(helpStyle.Render(m.help()))
	return b.String()
}

func (m Model) hud() string {
	hearts := strings.Repeat("♥", max(0, m.snap.Lives))
	return fmt.Sprintf("%s  score %d  round %d  level %d  x%.2f  [%s]",
		hearts, m.snap.Score, m.snap.Round, m.snap.Difficulty, m.snap.SpeedMultiplier, m.snap.Language)
}

func (m Model) help() string {
	switch m.snap.Phase {
	case model.PhaseMenu:
		return "enter play · L language · q quit"
	case model.PhaseGameOver:
		return "enter play again · q quit"
	default:
		return "space tap · y/n answer · 1-9 select · arrows swipe · r restart · q quit"
	}
}

func (m Model) body() string {
	s := m.snap
	switch s.Phase {
	case model.PhaseMenu:
		return bigStyle.Render("Press ENTER to play") + "\n\n" + m.scores()
	case model.PhaseInstruction:
		return m.gameTitle() + "\n\n" + bigStyle.Render(s.Instruction)
	case model.PhasePlaying:
		return m.gameTitle() + "\n\n" + m.game() + "\n\n" + timeBar(s.TimeRemainingPct)
	case model.PhaseResult:
		if s.LastResult == model.ResultWin {
			return winStyle.Render("WIN")
		}
		return loseStyle.Render("LOSE")
	case model.PhaseGameOver:
		return loseStyle.Render("GAME OVER") + "\n" + fmt.Sprintf("score %d", s.Score) + "\n\n" + m.scores()
	default:
		return ""
	}
}

// gameTitle "TIMING_BAR" -> "Timing Bar"
func (m Model) gameTitle() string {
	raw := strings.ToLower(strings.ReplaceAll(string(m.snap.ActiveGame.Type), "_", " "))
	return titleStyle.Render(m.titler.String(raw))
}

func (m Model) scores() string {
	if len(m.snap.HighScores) == 0 {
		return hudStyle.Render("no high scores yet")
	}
	lines := make([]string, 0, len(m.snap.HighScores))
	for i, e := range m.snap.HighScores {
		lines = append(lines, fmt.Sprintf("%d. %4d  %s", i+1, e.Score, e.Timestamp.Format("Jan 02 15:04")))
	}
	return strings.Join(lines, "\n")
}

func (m Model) game() string {
	v := m.snap.View
	if v == nil {
		return ""
	}
	switch m.snap.ActiveGame.Type {
	case model.GameReflex:
		if v["status"] == "GO" {
			return winStyle.Render("GO!")
		}
		return loseStyle.Render("wait...")
	case model.GameMath:
		eq, _ := v["equation"].(string)
		return bigStyle.Render(eq) + "\n\n[y] true   [n] false"
	case model.GameStroop:
		return renderStroop(v)
	case model.GameCube:
		return renderCube(v)
	case model.GameMemory:
		return renderMemory(v)
	case model.GameTimingBar:
		return renderTiming(v)
	case model.GameSwipe:
		arrow, _ := v["arrow"].(string)
		out := bigStyle.Render(arrows[arrow])
		if reverse, _ := v["reverse"].(bool); reverse {
			out += "\n" + loseStyle.Render("REVERSE")
		}
		return out
	default:
		return fmt.Sprint(v)
	}
}

func renderStroop(v map[string]any) string {
	word, _ := v["word"].(string)
	ink, _ := v["ink"].(string)
	options, _ := v["options"].([]string)

	out := lipgloss.NewStyle().Bold(true).Foreground(inkColors[ink]).Render(word)
	parts := make([]string, 0, len(options))
	for i, o := range options {
		parts = append(parts, fmt.Sprintf("[%d] %s", i+1, o))
	}
	return out + "\n\n" + strings.Join(parts, "   ")
}

func renderCube(v map[string]any) string {
	angle, _ := v["angle"].(float64)
	face := "side"
	switch {
	case angle <= 45 || angle >= 315:
		face = "FRONT"
	case angle >= 135 && angle <= 225:
		face = "back"
	}
	return bigStyle.Render(fmt.Sprintf("%3.0f°", angle)) + "\n" + face + "\n\n[space] stop"
}

func renderMemory(v map[string]any) string {
	grid, _ := v["grid"].([]bool)
	phase, _ := v["phase"].(string)

	var b strings.Builder
	b.WriteString(phase)
	b.WriteString("\n\n")
	for i, on := range grid {
		label := fmt.Sprintf(" %d ", i+1)
		if on {
			b.WriteString(cellOn.Render(label))
		} else {
			b.WriteString(cellOff.Render(label))
		}
		if i%3 == 2 {
			b.WriteString("\n")
		} else {
			b.WriteString(" ")
		}
	}
	return b.String()
}

func renderTiming(v map[string]any) string {
	pos, _ := v["position"].(float64)
	zone, _ := v["zone"].([]float64)
	if len(zone) != 2 {
		return ""
	}
	cell := func(x float64) int {
		return min(barWidth-1, max(0, int(math.Round(x/100*float64(barWidth-1)))))
	}
	from, to, at := cell(zone[0]), cell(zone[1]), cell(pos)

	var b strings.Builder
	for i := range barWidth {
		switch {
		case i == at:
			b.WriteString(bigStyle.Render("|"))
		case i >= from && i <= to:
			b.WriteString(winStyle.Render("="))
		default:
			b.WriteString(cellOff.Render("-"))
		}
	}
	return b.String() + "\n\n[space] stop"
}

func timeBar(pct float64) string {
	filled := int(math.Round(pct / 100 * barWidth))
	filled = min(barWidth, max(0, filled))
	style := winStyle
	if pct < 30 {
		style = loseStyle
	}
	return style.Render(strings.Repeat("█", filled)) + cellOff.Render(strings.Repeat("░", barWidth-filled))
}
