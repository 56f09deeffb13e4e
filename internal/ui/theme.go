package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/rocketscienceinc/resobingo-backend/internal/entity"
)

const (
	IconBingo = "🎉"
	IconDone  = "✅"
	IconError = "🧨"
	IconBoss  = "👑"
)

const cellWidth = 16

var (
	cPrimary = lipgloss.Color("63")  // blue
	cAccent  = lipgloss.Color("205") // magenta
	cGood    = lipgloss.Color("42")  // green
	cBad     = lipgloss.Color("196") // red
	cMuted   = lipgloss.Color("244") // gray
	cGold    = lipgloss.Color("220") // gold
)

var (
	Title = lipgloss.NewStyle().Bold(true).Foreground(cAccent)
	Key   = lipgloss.NewStyle().Bold(true).Foreground(cPrimary)
	Good  = lipgloss.NewStyle().Bold(true).Foreground(cGood)
	Bad   = lipgloss.NewStyle().Bold(true).Foreground(cBad)
	Muted = lipgloss.NewStyle().Foreground(cMuted)

	cell = lipgloss.NewStyle().
		Width(cellWidth).
		Height(3).
		MaxHeight(5).
		Padding(0, 1).
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(cMuted)
	markedCell = cell.BorderForeground(cGood).Foreground(cGood)
	bossCell   = cell.BorderForeground(cGold).Bold(true)
)

func LabelValue(label string, value any) string {
	return fmt.Sprintf("%s %v", Key.Render(label+":"), value)
}

// RenderBoard draws the card as a 5x5 grid. Every square shows its index so it
// can be passed to mark and edit.
func RenderBoard(board *entity.Board) string {
	rows := make([]string, 0, 5)

	for row := 0; row < 5; row++ {
		cells := make([]string, 0, 5)
		for col := 0; col < 5; col++ {
			index := row*5 + col
			cells = append(cells, renderCell(index, board.Squares[index]))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cells...))
	}

	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func renderCell(index int, square entity.Cell) string {
	style := cell
	prefix := fmt.Sprintf("%d", index)

	switch {
	case square.IsBoss && square.Marked:
		style = bossCell.Foreground(cGood)
		prefix += " " + IconBoss + IconDone
	case square.IsBoss:
		style = bossCell
		prefix += " " + IconBoss
	case square.Marked:
		style = markedCell
		prefix += " " + IconDone
	}

	return style.Render(Muted.Render(prefix) + "\n" + truncate(square.Text, cellWidth*3))
}

func truncate(text string, limit int) string {
	runes := []rune(strings.TrimSpace(text))
	if len(runes) <= limit {
		return string(runes)
	}

	return string(runes[:limit-1]) + "…"
}
