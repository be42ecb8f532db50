package ui

import (
	"strconv"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/uniseg"

	"github.com/samdwyer/neonsnake/internal/game"
	"github.com/samdwyer/neonsnake/internal/session"
)

const (
	title      = "NEON SNAKE"
	helpLine   = "arrows/WASD move  P pause  Enter start  Q quit"
	cellWidth  = 2 // Terminal cells per grid column, keeps the board square
	headerRows = 3
)

// Renderer handles drawing the game to the screen.
type Renderer struct {
	screen *Screen

	textStyle       tcell.Style
	mutedStyle      tcell.Style
	highScoreStyle  tcell.Style
	borderStyle     tcell.Style
	floorStyle      tcell.Style
	foodStyle       tcell.Style
	commentaryStyle tcell.Style
	gameOverStyle   tcell.Style
}

// NewRenderer creates a new renderer for the given screen.
func NewRenderer(screen *Screen) *Renderer {
	base := tcell.StyleDefault.Background(tcell.ColorBlack)
	return &Renderer{
		screen:          screen,
		textStyle:       base.Foreground(MustParseHexColor(colorText)).Bold(true),
		mutedStyle:      base.Foreground(MustParseHexColor(colorMuted)),
		highScoreStyle:  base.Foreground(MustParseHexColor(colorHighScore)).Bold(true),
		borderStyle:     base.Foreground(MustParseHexColor(colorBorder)),
		floorStyle:      base.Foreground(MustParseHexColor(colorFloor)),
		foodStyle:       base.Foreground(MustParseHexColor(colorFood)).Bold(true),
		commentaryStyle: base.Foreground(MustParseHexColor(colorCommentary)),
		gameOverStyle:   base.Foreground(MustParseHexColor(colorGameOver)).Bold(true),
	}
}

// Layout is the screen position of the board.
type Layout struct {
	Left, Top     int // Top-left corner of the border
	Width, Height int // Border-inclusive size in terminal cells
}

// BoardLayout centers a board of gridSize cells horizontally on a screen of
// the given width.
func BoardLayout(screenWidth, gridSize int) Layout {
	w := gridSize*cellWidth + 2
	left := (screenWidth - w) / 2
	if left < 0 {
		left = 0
	}
	return Layout{Left: left, Top: headerRows, Width: w, Height: gridSize + 2}
}

// CenterX returns the column at which text is centered within [left, left+width).
func CenterX(left, width int, text string) int {
	x := left + (width-uniseg.StringWidth(text))/2
	if x < left {
		return left
	}
	return x
}

// Render draws a full frame for the snapshot.
func (r *Renderer) Render(snap session.Snapshot) {
	r.screen.Clear()
	width, _ := r.screen.Size()
	layout := BoardLayout(width, snap.GridSize)

	r.renderHeader(snap, width)
	r.renderBoard(snap, layout)
	r.renderOverlay(snap, layout)

	hintStyle := r.mutedStyle
	if snap.Commentary != "" || snap.CommentaryPending {
		hintStyle = r.commentaryStyle
	}
	hintY := layout.Top + layout.Height + 1
	r.centered(0, width, hintY, snap.Hint(), hintStyle)
	r.centered(0, width, hintY+2, helpLine, r.mutedStyle)

	r.screen.Show()
}

func (r *Renderer) renderHeader(snap session.Snapshot, width int) {
	r.centered(0, width, 0, title, r.commentaryStyle.Bold(true))

	high := "HIGH SCORE " + strconv.Itoa(snap.HighScore)
	score := "SCORE " + strconv.Itoa(snap.Score)
	line := high + "    " + score
	x := CenterX(0, width, line)
	x = r.screen.SetString(x, 1, high, r.highScoreStyle)
	r.screen.SetString(x+4, 1, score, r.textStyle)
}

func (r *Renderer) renderBoard(snap session.Snapshot, l Layout) {
	right := l.Left + l.Width - 1
	bottom := l.Top + l.Height - 1

	// Border
	for x := l.Left + 1; x < right; x++ {
		r.screen.SetContent(x, l.Top, '─', r.borderStyle)
		r.screen.SetContent(x, bottom, '─', r.borderStyle)
	}
	for y := l.Top + 1; y < bottom; y++ {
		r.screen.SetContent(l.Left, y, '│', r.borderStyle)
		r.screen.SetContent(right, y, '│', r.borderStyle)
	}
	r.screen.SetContent(l.Left, l.Top, '┌', r.borderStyle)
	r.screen.SetContent(right, l.Top, '┐', r.borderStyle)
	r.screen.SetContent(l.Left, bottom, '└', r.borderStyle)
	r.screen.SetContent(right, bottom, '┘', r.borderStyle)

	// Floor
	for y := 0; y < snap.GridSize; y++ {
		for x := 0; x < snap.GridSize; x++ {
			r.cell(l, x, y, '·', ' ', r.floorStyle)
		}
	}

	// Food, then snake on top
	r.cell(l, snap.Food.X, snap.Food.Y, '●', ' ', r.foodStyle)

	colors := Gradient(len(snap.Snake))
	for i := len(snap.Snake) - 1; i >= 0; i-- {
		p := snap.Snake[i]
		style := tcell.StyleDefault.Background(colors[i])
		r.cell(l, p.X, p.Y, ' ', ' ', style)
	}
}

// cell draws one grid cell as cellWidth terminal columns.
func (r *Renderer) cell(l Layout, x, y int, left, right rune, style tcell.Style) {
	sx := l.Left + 1 + x*cellWidth
	sy := l.Top + 1 + y
	r.screen.SetContent(sx, sy, left, style)
	r.screen.SetContent(sx+1, sy, right, style)
}

func (r *Renderer) renderOverlay(snap session.Snapshot, l Layout) {
	mid := l.Top + l.Height/2
	switch snap.Status {
	case game.StatusPaused:
		r.centered(l.Left, l.Width, mid, " PAUSED ", r.textStyle)
	case game.StatusGameOver:
		r.centered(l.Left, l.Width, mid-1, " GAME OVER ", r.gameOverStyle)
		r.centered(l.Left, l.Width, mid+1, " [ "+snap.StartLabel()+" ] ", r.textStyle)
	case game.StatusIdle:
		r.centered(l.Left, l.Width, mid+2, " [ "+snap.StartLabel()+" ] ", r.textStyle)
	}
}

func (r *Renderer) centered(left, width, y int, text string, style tcell.Style) {
	r.screen.SetString(CenterX(left, width, text), y, text, style)
}
