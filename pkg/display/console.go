package display

import (
	"bytes"
	"io"
	"sync"

	"github.com/fako1024/foodscale/pkg/scale"
)

// Console denotes a character display emulated on a text stream. After every
// write the full frame is printed, framed by a border
type Console struct {
	mu    sync.Mutex
	out   io.Writer
	width int
	rows  [][]byte
}

// Ensure Console implements scale.Display
var _ scale.Display = (*Console)(nil)

// NewConsole instantiates a new console display with the given geometry
func NewConsole(out io.Writer, rows, width int) *Console {
	c := &Console{
		out:   out,
		width: width,
		rows:  make([][]byte, rows),
	}
	for i := range c.rows {
		c.rows[i] = bytes.Repeat([]byte{' '}, width)
	}
	return c
}

// ClearRow blanks the full width of a row
func (c *Console) ClearRow(row int) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if row < 0 || row >= len(c.rows) {
		return
	}
	for i := range c.rows[row] {
		c.rows[row][i] = ' '
	}
}

// WriteAt writes text at the given row / column and prints the resulting frame
func (c *Console) WriteAt(row, col int, text string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if row < 0 || row >= len(c.rows) {
		return
	}
	for i := 0; i < len(text); i++ {
		if x := col + i; x >= 0 && x < c.width {
			c.rows[row][x] = text[i]
		}
	}

	_, _ = c.out.Write(c.frame())
}

// String returns the current frame
func (c *Console) String() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return string(c.frame())
}

func (c *Console) frame() []byte {
	var buf bytes.Buffer
	border := append(append([]byte{'+'}, bytes.Repeat([]byte{'-'}, c.width)...), '+', '\n')

	buf.Write(border)
	for _, row := range c.rows {
		buf.WriteByte('|')
		buf.Write(row)
		buf.WriteString("|\n")
	}
	buf.Write(border)

	return buf.Bytes()
}
