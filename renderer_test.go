package ask

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRendererDraw(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		lines     []string
		cursorRow int
		cursorCol int
		expected  string
	}{
		{
			name:      "cursor after last line",
			lines:     []string{"a", "b"},
			cursorRow: -1,
			expected:  "a\r\nb",
		},
		{
			name:      "cursor on second of three lines",
			lines:     []string{"a", "b", "c"},
			cursorRow: 1,
			cursorCol: 4,
			expected:  "a\r\nb\r\nc\x1b[1A\r\x1b[4C",
		},
		{
			name:      "cursor at column zero of last line",
			lines:     []string{"a", "b"},
			cursorRow: 1,
			expected:  "a\r\nb\r",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var out bytes.Buffer
			r := newRenderer(&out, ThemePlain)
			require.NoError(t, r.draw(tt.lines, tt.cursorRow, tt.cursorCol))
			assert.Equal(t, tt.expected, out.String())
			assert.Equal(t, len(tt.lines), r.lastLines)
		})
	}
}

func TestRendererRedrawClearsPreviousFrame(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer
	r := newRenderer(&out, ThemePlain)

	require.NoError(t, r.draw([]string{"a", "b", "c"}, 1, 0))
	out.Reset()

	require.NoError(t, r.draw([]string{"x"}, -1, 0))
	assert.Equal(t, "\x1b[1A\r\x1b[Jx", out.String())
}

func TestRendererFinish(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer
	r := newRenderer(&out, ThemePlain)

	require.NoError(t, r.draw([]string{"a", "b"}, -1, 0))
	require.NoError(t, r.finish([]string{"done"}))
	assert.Equal(t, 0, r.lastLines)

	out.Reset()
	require.NoError(t, r.draw([]string{"next"}, -1, 0))
	assert.Equal(t, "next", out.String(), "a finished frame must not be cleared")
}

func TestRendererFrameHelpers(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer
	plain := newRenderer(&out, ThemePlain)
	assert.Equal(t, symbolActive+"  Name", plain.header(symbolActive, Color{}, "Name"))
	assert.Equal(t, symbolBar+"  value", plain.bar("value"))
	assert.Equal(t, symbolEnd, plain.footer(""))
	assert.Equal(t, symbolError+"  Oops", plain.footer("Oops"))

	colored := newRenderer(&out, ThemeDefault)
	assert.Contains(t, colored.header(symbolActive, ThemeDefault.Active, "Name"), ThemeDefault.Active.ToANSI())
}

func TestColorScheme(t *testing.T) {
	t.Parallel()

	t.Run("ToANSI", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, "\x1b[38;2;1;2;3m", Color{R: 1, G: 2, B: 3}.ToANSI())
		assert.Equal(t, "\x1b[1;38;2;1;2;3m", Color{R: 1, G: 2, B: 3, Bold: true}.ToANSI())
	})

	t.Run("paint", func(t *testing.T) {
		t.Parallel()
		c := Color{R: 1}
		assert.Equal(t, "x", ThemePlain.paint(c, "x"))
		assert.Equal(t, "", ThemeDefault.paint(c, ""))
		assert.Equal(t, c.ToANSI()+"x"+Reset(), ThemeDefault.paint(c, "x"))
	})

	t.Run("ThemeByName", func(t *testing.T) {
		t.Parallel()
		for _, name := range ThemeNames() {
			theme, ok := ThemeByName(name)
			require.True(t, ok, name)
			assert.Equal(t, name, theme.Name)
		}
		theme, ok := ThemeByName("DRACULA")
		require.True(t, ok)
		assert.Equal(t, ThemeDracula, theme)

		_, ok = ThemeByName("solarized")
		assert.False(t, ok)
	})
}
