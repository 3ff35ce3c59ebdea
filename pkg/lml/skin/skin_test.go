package skin

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleSkin = `
styles:
  label:
    default:
      font_color: white
    title:
      font_color: yellow
      bold: true
  table:
    default:
      border: rounded
      padding: 1
`

func TestParseAndLookup(t *testing.T) {
	s, err := Parse([]byte(sampleSkin))
	require.NoError(t, err)

	title, ok := s.Style("label", "title")
	require.True(t, ok)
	assert.Equal(t, "yellow", title.FontColor)
	assert.True(t, title.Bold)

	// Unknown name falls back to the kind's default.
	fallback, ok := s.Style("label", "missing")
	require.True(t, ok)
	assert.Equal(t, "white", fallback.FontColor)

	// Unknown kind finds nothing.
	_, ok = s.Style("dialog", "default")
	assert.False(t, ok)

	assert.True(t, s.Has("table", "default"))
	assert.False(t, s.Has("table", "fancy"))
}

func TestParseRejectsBadYAML(t *testing.T) {
	_, err := Parse([]byte("styles: [not, a, map]"))
	assert.Error(t, err)
}

func TestDefaultSkinCoversBuiltins(t *testing.T) {
	s := Default()
	for _, kind := range []string{"label", "button", "table", "tree", "group", "scrollpane", "progressbar", "slider"} {
		_, ok := s.Style(kind, "default")
		assert.True(t, ok, "missing default style for %s", kind)
	}
}
