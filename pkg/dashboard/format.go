// Package dashboard provides pure data-transformation and formatting utilities
// used by the astroctl TUI dashboard. These functions are extracted from
// cmd/dash.go to enable unit testing without TUI dependencies.
package dashboard

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
)

// Colours used by the dashboard.
var (
	Cyan   = lipgloss.Color("#00FFFF")
	Orange = lipgloss.Color("#FF7400")
	Green  = lipgloss.Color("#00CC66")
	Yellow = lipgloss.Color("#FFAA00")
	Red    = lipgloss.Color("#FF4444")
	Gray   = lipgloss.Color("#666666")
)

// FormatAge converts a duration into a short human-readable string.
func FormatAge(d time.Duration) string {
	switch {
	case d < time.Minute:
		return fmt.Sprintf("%ds", int(d.Seconds()))
	case d < time.Hour:
		return fmt.Sprintf("%dm", int(d.Minutes()))
	case d < 24*time.Hour:
		return fmt.Sprintf("%dh", int(d.Hours()))
	default:
		return fmt.Sprintf("%dd", int(d.Hours()/24))
	}
}

// RenderStatus returns a styled status string: red for failures and offline
// states, yellow for in-flight, cyan otherwise.
func RenderStatus(s string) string {
	switch s {
	case "Offline", "failed", "Stopped":
		return lipgloss.NewStyle().Foreground(Red).Render(s)
	case "running":
		return lipgloss.NewStyle().Foreground(Yellow).Render(s)
	case "completed", "Healthy":
		return lipgloss.NewStyle().Foreground(Green).Render(s)
	default:
		return lipgloss.NewStyle().Foreground(Cyan).Render(s)
	}
}

// FormatWithCommas adds thousand separators to a numeric string.
func FormatWithCommas(s string) string {
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return s
	}
	sign := ""
	if n < 0 {
		sign = "-"
		n = -n
	}
	digits := strconv.FormatInt(n, 10)
	var buf []byte
	for i, c := range digits {
		if i > 0 && (len(digits)-i)%3 == 0 {
			buf = append(buf, ',')
		}
		buf = append(buf, byte(c)) // #nosec G115 -- digits are ASCII 0-9
	}
	return sign + string(buf)
}

// ShortAddr truncates a bech32 address to prefix…suffix for narrow panels.
func ShortAddr(addr string) string {
	if len(addr) <= 20 {
		return addr
	}
	return addr[:11] + "…" + addr[len(addr)-6:]
}

// ColorizeLogLine applies colour to log line prefixes.
func ColorizeLogLine(line string) string {
	if strings.HasPrefix(line, "[chain]") {
		return lipgloss.NewStyle().Foreground(Cyan).Render("[chain]") + line[7:]
	}
	if strings.HasPrefix(line, "[deploy]") {
		return lipgloss.NewStyle().Foreground(Green).Render("[deploy]") + line[8:]
	}
	if strings.HasPrefix(line, "[localnet]") {
		return lipgloss.NewStyle().Foreground(Yellow).Render("[localnet]") + line[10:]
	}
	if strings.HasPrefix(line, "[notify]") {
		return lipgloss.NewStyle().Foreground(lipgloss.Color("#CC88FF")).Render("[notify]") + line[8:]
	}
	return line
}

// HumanizeCamelCase converts "tokenAddress" to "Token Address", etc.
func HumanizeCamelCase(s string) string {
	if s == "" {
		return ""
	}
	var words []string
	start := 0
	for i := 1; i < len(s); i++ {
		if s[i] >= 'A' && s[i] <= 'Z' {
			words = append(words, s[start:i])
			start = i
		}
	}
	words = append(words, s[start:])
	for i, w := range words {
		if len(w) > 0 {
			words[i] = strings.ToUpper(w[:1]) + w[1:]
		}
	}
	return strings.Join(words, " ")
}

// LogViewportRows returns the number of log lines visible in the log panel
// given the current terminal height.
func LogViewportRows(height int) int {
	headerH := 1
	available := height - headerH
	topRows := (available * 30) / 100
	if topRows < 8 {
		topRows = 8
	}
	botRows := available - topRows - 3 // 3 = top/mid/bottom borders
	if botRows < 3 {
		botRows = 3
	}
	return botRows
}
