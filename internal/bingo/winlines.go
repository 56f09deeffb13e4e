package bingo

import "github.com/rocketscienceinc/resobingo-backend/internal/entity"

// WinLines lists the 5 rows, 5 columns and 2 diagonals of the card.
var WinLines = [12][5]int{
	{0, 1, 2, 3, 4},
	{5, 6, 7, 8, 9},
	{10, 11, 12, 13, 14},
	{15, 16, 17, 18, 19},
	{20, 21, 22, 23, 24},
	{0, 5, 10, 15, 20},
	{1, 6, 11, 16, 21},
	{2, 7, 12, 17, 22},
	{3, 8, 13, 18, 23},
	{4, 9, 14, 19, 24},
	{0, 6, 12, 18, 24},
	{4, 8, 12, 16, 20},
}

func HasBingo(squares [entity.BoardSize]entity.Cell) bool {
	for _, line := range WinLines {
		if isLineMarked(squares, line) {
			return true
		}
	}

	return false
}

// CompletedLines returns every fully marked line, in WinLines order.
func CompletedLines(squares [entity.BoardSize]entity.Cell) [][5]int {
	var lines [][5]int
	for _, line := range WinLines {
		if isLineMarked(squares, line) {
			lines = append(lines, line)
		}
	}

	return lines
}

func isLineMarked(squares [entity.BoardSize]entity.Cell, line [5]int) bool {
	for _, index := range line {
		if !squares[index].Marked {
			return false
		}
	}

	return true
}
