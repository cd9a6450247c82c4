// Package display renders the selected category and the current weight on a
// two-row character display, touching a row only when its value changed.
package display

import (
	"errors"
	"strconv"

	"github.com/fako1024/foodscale/pkg/scale"
)

const (

	// DefaultWidth is the number of columns of the reference 16x2 display
	DefaultWidth = 16

	// RowCategory is the row showing the selected category
	RowCategory = 0

	// RowWeight is the row showing the current weight
	RowWeight = 1
)

// Presenter tracks the last rendered values and redraws rows on change only
type Presenter struct {
	display  scale.Display
	width    int
	recorder scale.Recorder

	category      scale.Category
	weight        int
	categoryValid bool
	weightValid   bool
}

// NewPresenter instantiates a new Presenter on a display, executing functional options, if any
func NewPresenter(d scale.Display, options ...func(*Presenter)) (*Presenter, error) {
	if d == nil {
		return nil, errors.New("no display provided")
	}

	p := &Presenter{
		display:  d,
		width:    DefaultWidth,
		recorder: scale.NullRecorder{},
	}

	for _, option := range options {
		option(p)
	}

	return p, nil
}

// WithWidth sets the number of columns of the display
func WithWidth(width int) func(*Presenter) {
	return func(p *Presenter) {
		if width > 0 {
			p.width = width
		}
	}
}

// WithRecorder sets the recorder notified about row redraws
func WithRecorder(r scale.Recorder) func(*Presenter) {
	return func(p *Presenter) {
		if r != nil {
			p.recorder = r
		}
	}
}

// Update redraws the category and / or weight row if the respective value
// differs from what was last rendered
func (p *Presenter) Update(category scale.Category, weight int) {
	if !p.categoryValid || category != p.category {
		p.render(RowCategory, CategoryLine(category))
		p.category, p.categoryValid = category, true
	}

	if !p.weightValid || weight != p.weight {
		p.render(RowWeight, WeightLine(weight))
		p.weight, p.weightValid = weight, true
	}
}

// Splash shows a two-line message. The next Update redraws both rows
func (p *Presenter) Splash(top, bottom string) {
	p.render(RowCategory, top)
	p.render(RowWeight, bottom)
	p.categoryValid, p.weightValid = false, false
}

// CategoryLine returns the text shown for a category
func CategoryLine(category scale.Category) string {
	return "Food = " + category.Name
}

// WeightLine returns the text shown for a weight
func WeightLine(weight int) string {
	return "Weight = " + strconv.Itoa(weight) + "g"
}

////////////////////////////////////////////////////////////////////////////////

// The display has no partial-line erase, so the full row is blanked before
// writing to avoid stale trailing characters
func (p *Presenter) render(row int, text string) {
	if len(text) > p.width {
		text = text[:p.width]
	}

	p.display.ClearRow(row)
	p.display.WriteAt(row, 0, text)
	p.recorder.RowRendered(row)
}
