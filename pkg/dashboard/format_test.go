package dashboard

import (
	"testing"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
)

func TestFormatAge(t *testing.T) {
	assert.Equal(t, "45s", FormatAge(45*time.Second))
	assert.Equal(t, "3m", FormatAge(3*time.Minute+20*time.Second))
	assert.Equal(t, "5h", FormatAge(5*time.Hour))
	assert.Equal(t, "2d", FormatAge(49*time.Hour))
}

func TestFormatWithCommas(t *testing.T) {
	assert.Equal(t, "1,000,000", FormatWithCommas("1000000"))
	assert.Equal(t, "042", FormatWithCommas("042"))
	assert.Equal(t, "-12,345", FormatWithCommas("-12345"))
	assert.Equal(t, "not-a-number", FormatWithCommas("not-a-number"))
}

func TestShortAddr(t *testing.T) {
	assert.Equal(t, "terra1zdpgj…qup0je", ShortAddr("terra1zdpgj8am5nqqvht927k3etljyl6a52kwqup0je"))
	assert.Equal(t, "terra1short", ShortAddr("terra1short"))
}

func TestHumanizeCamelCase(t *testing.T) {
	assert.Equal(t, "Token Address", HumanizeCamelCase("tokenAddress"))
	assert.Equal(t, "Generator Registered", HumanizeCamelCase("generatorRegistered"))
	assert.Equal(t, "", HumanizeCamelCase(""))
}

func TestColorizeLogLinePrefixes(t *testing.T) {
	plain := "no prefix here"
	assert.Equal(t, plain, ColorizeLogLine(plain))

	colored := ColorizeLogLine("[deploy] step deploy-token completed")
	assert.Contains(t, colored, " step deploy-token completed")
	assert.NotEqual(t, "[deploy] step deploy-token completed", colored)
}

func TestLogViewportRows(t *testing.T) {
	assert.GreaterOrEqual(t, LogViewportRows(10), 3)
	assert.Greater(t, LogViewportRows(60), LogViewportRows(20))
}

func TestPadLines(t *testing.T) {
	lines := PadLines([]string{"abc"}, 3, 5)

	assert.Len(t, lines, 3)
	for _, line := range lines {
		assert.Equal(t, 5, lipgloss.Width(line))
	}
}

func TestTruncateToWidth(t *testing.T) {
	assert.Equal(t, "abc", TruncateToWidth("abc", 5))
	assert.Equal(t, 4, lipgloss.Width(TruncateToWidth("abcdefgh", 4)))
}
