package ask

import (
	"fmt"
	"io"
	"strings"

	"github.com/mattn/go-runewidth"
)

// Frame symbols.
const (
	symbolActive = "◆"
	symbolDone   = "◇"
	symbolCancel = "■"
	symbolError  = "▲"
	symbolBar    = "│"
	symbolStart  = "┌"
	symbolEnd    = "└"

	symbolRadioOn   = "●"
	symbolRadioOff  = "○"
	symbolCheckOn   = "◼"
	symbolCheckOff  = "◻"
	symbolMask      = "•"
	symbolSeparator = "/"
)

// renderer redraws one prompt frame in place.
//
// Each draw erases the previous frame by moving the cursor back to its first
// line and clearing to the end of the screen, so a frame may grow or shrink
// between key presses without leaving stale lines behind.
type renderer struct {
	output      io.Writer    // Target output writer (typically stdout or colorable wrapper)
	colorScheme *ColorScheme // Color configuration for themed rendering
	lastLines   int          // Lines of the frame currently on screen
	cursorRow   int          // Row of the frame the cursor was left on
}

// newRenderer creates a new renderer with the given output and color scheme.
func newRenderer(output io.Writer, colorScheme *ColorScheme) *renderer {
	return &renderer{
		output:      output,
		colorScheme: colorScheme,
	}
}

// draw replaces the current frame with lines and leaves the cursor at
// (cursorRow, cursorCol). A negative cursorRow leaves the cursor after the
// last line.
func (r *renderer) draw(lines []string, cursorRow, cursorCol int) error {
	var b strings.Builder
	r.writeClear(&b)

	b.WriteString(strings.Join(lines, "\r\n"))

	if cursorRow < 0 || cursorRow >= len(lines) {
		cursorRow = len(lines) - 1
	} else {
		if up := len(lines) - 1 - cursorRow; up > 0 {
			fmt.Fprintf(&b, "\x1b[%dA", up)
		}
		b.WriteString("\r")
		if cursorCol > 0 {
			fmt.Fprintf(&b, "\x1b[%dC", cursorCol)
		}
	}

	if _, err := io.WriteString(r.output, b.String()); err != nil {
		return err
	}
	r.lastLines = len(lines)
	r.cursorRow = cursorRow
	return nil
}

// finish draws the final frame and moves below it. The next draw starts a
// new frame.
func (r *renderer) finish(lines []string) error {
	if err := r.draw(lines, -1, 0); err != nil {
		return err
	}
	if _, err := io.WriteString(r.output, "\r\n"); err != nil {
		return err
	}
	r.lastLines = 0
	r.cursorRow = 0
	return nil
}

// println writes a standalone line outside of any frame.
func (r *renderer) println(line string) error {
	_, err := io.WriteString(r.output, line+"\r\n")
	return err
}

func (r *renderer) writeClear(b *strings.Builder) {
	if r.lastLines == 0 {
		return
	}
	if r.cursorRow > 0 {
		fmt.Fprintf(b, "\x1b[%dA", r.cursorRow)
	}
	b.WriteString("\r\x1b[J")
}

func (r *renderer) hideCursor() {
	if !r.colorScheme.Plain {
		io.WriteString(r.output, "\x1b[?25l")
	}
}

func (r *renderer) showCursor() {
	if !r.colorScheme.Plain {
		io.WriteString(r.output, "\x1b[?25h")
	}
}

// Frame building helpers. Every helper returns the styled text; widths are
// measured on the unstyled text by the caller.

func (r *renderer) header(symbol string, symbolColor Color, message string) string {
	cs := r.colorScheme
	return cs.paint(symbolColor, symbol) + "  " + cs.paint(cs.Message, message)
}

func (r *renderer) bar(content string) string {
	return r.colorScheme.paint(r.colorScheme.Bar, symbolBar) + "  " + content
}

func (r *renderer) footer(errMessage string) string {
	cs := r.colorScheme
	if errMessage != "" {
		return cs.paint(cs.Error, symbolError) + "  " + cs.paint(cs.Error, errMessage)
	}
	return cs.paint(cs.Bar, symbolEnd)
}

// barWidth is the display width of the bar prefix written by bar.
var barWidth = runewidth.StringWidth(symbolBar + "  ")
