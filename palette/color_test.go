package palette

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseColor(t *testing.T) {
	tests := []struct {
		in   string
		want Color
	}{
		{"#FF0000", Color{Kind: ColorTrue, Hex: "#ff0000"}},
		{"#f0a", Color{Kind: ColorTrue, Hex: "#ff00aa"}},
		{"red", Color{Kind: ColorStandard, Number: 1}},
		{"bright_blue", Color{Kind: ColorStandard, Number: 12}},
		{"bright-blue", Color{Kind: ColorStandard, Number: 12}},
		{"color(200)", Color{Kind: ColorEightBit, Number: 200}},
		{"color(3)", Color{Kind: ColorStandard, Number: 3}},
		{"42", Color{Kind: ColorEightBit, Number: 42}},
		{"default", Color{Kind: ColorDefault}},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseColor(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	t.Run("rejects garbage", func(t *testing.T) {
		for _, in := range []string{"", "#12345", "#gggggg", "color(256)", "chartreuse-ish"} {
			_, err := ParseColor(in)
			assert.ErrorIs(t, err, ErrInvalidColor, in)
		}
	})
}

func TestColorSequence(t *testing.T) {
	red := Color{Kind: ColorTrue, Hex: "#ff0000"}
	assert.Equal(t, "38;2;255;0;0", red.Sequence(false))
	assert.Equal(t, "48;2;255;0;0", red.Sequence(true))

	assert.Equal(t, "31", Color{Kind: ColorStandard, Number: 1}.Sequence(false))
	assert.Equal(t, "101", Color{Kind: ColorStandard, Number: 9}.Sequence(true))
	assert.Equal(t, "38;5;200", Color{Kind: ColorEightBit, Number: 200}.Sequence(false))
	assert.Equal(t, "39", Color{Kind: ColorDefault}.Sequence(false))
	assert.Equal(t, "", Color{}.Sequence(false))
}

func TestColorHexValue(t *testing.T) {
	assert.Equal(t, "#800000", Color{Kind: ColorStandard, Number: 1}.HexValue())
	assert.Equal(t, "#ff5f00", Color{Kind: ColorEightBit, Number: 202}.HexValue())
	assert.Equal(t, "#080808", Color{Kind: ColorEightBit, Number: 232}.HexValue())
	assert.Equal(t, "", Color{Kind: ColorDefault}.HexValue())

	r, g, b, ok := Color{Kind: ColorTrue, Hex: "#102030"}.RGB()
	require.True(t, ok)
	assert.Equal(t, []uint8{0x10, 0x20, 0x30}, []uint8{r, g, b})
}

func TestColorStringRoundTrips(t *testing.T) {
	for _, c := range []Color{
		{Kind: ColorTrue, Hex: "#abcdef"},
		{Kind: ColorStandard, Number: 4},
		{Kind: ColorEightBit, Number: 99},
		{Kind: ColorDefault},
	} {
		got, err := ParseColor(c.String())
		require.NoError(t, err)
		assert.Equal(t, c, got)
	}
	assert.Equal(t, "blue", Color{Kind: ColorStandard, Number: 4}.Name())
}
