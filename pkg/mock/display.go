package mock

import (
	"strings"
	"sync"

	"github.com/fako1024/foodscale/pkg/scale"
)

// Display denotes a mock character display keeping its content in memory
type Display struct {
	mu     sync.Mutex
	width  int
	rows   [][]byte
	clears []int
	writes []int
}

// Ensure Display implements scale.Display
var _ scale.Display = (*Display)(nil)

// NewDisplay instantiates a new mock display with the given geometry
func NewDisplay(rows, width int) *Display {
	d := &Display{
		width:  width,
		rows:   make([][]byte, rows),
		clears: make([]int, rows),
		writes: make([]int, rows),
	}
	for i := range d.rows {
		d.rows[i] = []byte(strings.Repeat(" ", width))
	}
	return d
}

// ClearRow blanks the full width of a row
func (d *Display) ClearRow(row int) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if row < 0 || row >= len(d.rows) {
		return
	}
	for i := range d.rows[row] {
		d.rows[row][i] = ' '
	}
	d.clears[row]++
}

// WriteAt writes text at the given row / column, dropping characters beyond the width
func (d *Display) WriteAt(row, col int, text string) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if row < 0 || row >= len(d.rows) {
		return
	}
	for i := 0; i < len(text); i++ {
		if c := col + i; c >= 0 && c < d.width {
			d.rows[row][c] = text[i]
		}
	}
	d.writes[row]++
}

// Row returns the current content of a row with trailing blanks removed
func (d *Display) Row(row int) string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return strings.TrimRight(string(d.rows[row]), " ")
}

// Writes returns the number of writes to a row so far
func (d *Display) Writes(row int) int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.writes[row]
}

// Clears returns the number of clears of a row so far
func (d *Display) Clears(row int) int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.clears[row]
}
