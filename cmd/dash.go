package cmd

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"astroctl/pkg/artifacts"
	"astroctl/pkg/config"
	"astroctl/pkg/dashboard"
	"astroctl/pkg/status"
)

var dashCmd = &cobra.Command{
	Use:   "dash",
	Short: "Launch the deployment dashboard",
	Long:  `Launches an interactive terminal dashboard showing chain health and the target network's deployment record, refreshed every few seconds.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		network, net, err := targetNetwork()
		if err != nil {
			return err
		}

		store := artifacts.NewStore(config.Loaded.GetArtifactsDir())
		m := initialModel(network, net.Node, store)
		p := tea.NewProgram(m, tea.WithAltScreen())

		if _, err := p.Run(); err != nil {
			return err
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(dashCmd)
}

var (
	headerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#111111")).
			Background(dashboard.Orange).
			Padding(0, 1).
			Bold(true)

	dashLabelStyle = lipgloss.NewStyle().Foreground(dashboard.Orange).Bold(true)
	dashValueStyle = lipgloss.NewStyle().Foreground(dashboard.Cyan)
	dashGrayStyle  = lipgloss.NewStyle().Foreground(dashboard.Gray)
)

type TickMsg time.Time
type StatsMsg struct {
	Chain  status.ChainStat
	Record artifacts.Record
}

func tickCmd() tea.Cmd {
	return tea.Tick(2*time.Second, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

type model struct {
	network   string
	node      string
	store     *artifacts.Store
	width     int
	height    int
	startTime time.Time
	chain     status.ChainStat
	record    artifacts.Record
	logs      []string
}

func initialModel(network, node string, store *artifacts.Store) model {
	return model{
		network:   network,
		node:      node,
		store:     store,
		startTime: time.Now(),
		chain:     status.ChainStat{RPCStatus: "Checking...", ChainID: "-", Height: "-", CatchingUp: "-"},
		record:    artifacts.Record{},
	}
}

func (m model) fetchStats() tea.Msg {
	record, err := m.store.Load(m.network)
	if err != nil {
		record = artifacts.Record{}
	}
	return StatsMsg{
		Chain:  status.GatherChainHealth(m.node),
		Record: record,
	}
}

func (m model) Init() tea.Cmd {
	return tea.Batch(tickCmd(), m.fetchStats)
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case TickMsg:
		return m, tea.Batch(tickCmd(), m.fetchStats)

	case StatsMsg:
		if msg.Chain.Height != m.chain.Height && msg.Chain.Height != "-" {
			m.logs = appendLog(m.logs, fmt.Sprintf("[chain] height %s", dashboard.FormatWithCommas(msg.Chain.Height)))
		}
		for _, key := range msg.Record.Keys() {
			if !m.record.Has(key) {
				m.logs = appendLog(m.logs, fmt.Sprintf("[deploy] %s = %s", key, msg.Record.Get(key)))
			}
		}
		m.chain = msg.Chain
		m.record = msg.Record
	}

	return m, nil
}

// appendLog caps the log buffer at 100 lines to avoid unbounded growth.
func appendLog(logs []string, line string) []string {
	logs = append(logs, line)
	if len(logs) > 100 {
		logs = logs[len(logs)-100:]
	}
	return logs
}

// panelWidths splits the terminal into left/right top panels and the full
// width log panel, accounting for the three vertical border columns.
func (m model) panelWidths() (leftInner, rightInner, logInner int) {
	leftInner = (m.width - 3) / 2
	rightInner = m.width - 3 - leftInner
	logInner = m.width - 2

	if leftInner < 1 {
		leftInner = 1
	}
	if rightInner < 1 {
		rightInner = 1
	}
	if logInner < 1 {
		logInner = 1
	}
	return leftInner, rightInner, logInner
}

// addrShortener returns a width-aware shortener for bech32 addresses. On
// narrow terminals it keeps only a short prefix and suffix.
func (m model) addrShortener() func(string) string {
	if m.width < 60 {
		return func(addr string) string {
			if len(addr) <= 12 {
				return addr
			}
			return addr[:6] + "…" + addr[len(addr)-4:]
		}
	}
	return dashboard.ShortAddr
}

// maxLogScroll returns how far back the log view can scroll.
func (m model) maxLogScroll() int {
	visible := dashboard.LogViewportRows(m.height)
	scroll := len(m.logs) - visible
	if scroll < 0 {
		return 0
	}
	return scroll
}

func (m model) View() string {
	if m.width == 0 {
		return "Initializing..."
	}

	// ── Header bar ──
	uptime := dashboard.FormatAge(time.Since(m.startTime))
	headerTitle := fmt.Sprintf(" astroctl dashboard | %s | Uptime: %s ", m.network, uptime)
	padLen := m.width - lipgloss.Width(headerTitle)
	if padLen < 0 {
		padLen = 0
	}
	header := headerStyle.Width(m.width).Render(headerTitle + strings.Repeat(" ", padLen))
	headerH := lipgloss.Height(header)

	leftInner, rightInner, logInner := m.panelWidths()

	// Vertical budget: headerH + 1(top border) + topRows + 1(mid border) + botRows + 1(bot border)
	available := m.height - headerH
	topRows := (available * 2) / 5
	if topRows < 5 {
		topRows = 5
	}
	botRows := available - topRows - 3
	if botRows < 3 {
		botRows = 3
	}

	leftLines := dashboard.PadLines(dashboard.RenderToLines(m.renderChainPanel(), leftInner), topRows, leftInner)
	rightLines := dashboard.PadLines(dashboard.RenderToLines(m.renderRecordPanel(), rightInner), topRows, rightInner)

	startIdx := len(m.logs) - botRows
	if startIdx < 0 {
		startIdx = 0
	}
	colored := make([]string, 0, len(m.logs)-startIdx)
	for _, line := range m.logs[startIdx:] {
		colored = append(colored, dashboard.ColorizeLogLine(line))
	}
	logLines := dashboard.PadLines(dashboard.RenderToLines(strings.Join(colored, "\n"), logInner), botRows, logInner)
	logLines = dashboard.OverlayLogo(logLines, logInner)

	var out strings.Builder
	out.WriteString(header)
	out.WriteByte('\n')

	out.WriteString(dashboard.BuildTopBorder(leftInner, rightInner, "Chain Health", "Deployment Record"))
	out.WriteByte('\n')

	for i := 0; i < topRows; i++ {
		out.WriteString(dashboard.BorderStr("│") + leftLines[i] + dashboard.BorderStr("│") + rightLines[i] + dashboard.BorderStr("│"))
		out.WriteByte('\n')
	}

	out.WriteString(dashboard.BuildMiddleBorder(m.width, leftInner, "Combined Log View"))
	out.WriteByte('\n')

	for i := 0; i < botRows; i++ {
		out.WriteString(dashboard.BorderStr("│") + logLines[i] + dashboard.BorderStr("│"))
		out.WriteByte('\n')
	}

	out.WriteString(dashboard.BuildBottomBorder(m.width, "[q] quit"))

	return out.String()
}

func (m model) renderChainPanel() string {
	var b bytes.Buffer
	b.WriteString("\n")
	b.WriteString(dashLabelStyle.Render(" RPC:         ") + dashboard.RenderStatus(m.chain.RPCStatus) + "\n")
	b.WriteString(dashLabelStyle.Render(" Chain ID:    ") + dashValueStyle.Render(m.chain.ChainID) + "\n")
	b.WriteString(dashLabelStyle.Render(" Height:      ") + dashValueStyle.Render(dashboard.FormatWithCommas(m.chain.Height)) + "\n")
	b.WriteString(dashLabelStyle.Render(" Catching Up: ") + dashValueStyle.Render(m.chain.CatchingUp) + "\n\n")

	b.WriteString(dashLabelStyle.Render(" Node: ") + " " + m.node + "\n")
	return b.String()
}

func (m model) renderRecordPanel() string {
	var b bytes.Buffer
	b.WriteString("\n")

	if len(m.record) == 0 {
		b.WriteString(dashGrayStyle.Render("  Nothing deployed yet.\n"))
		return b.String()
	}

	shorten := m.addrShortener()
	for _, key := range m.record.Keys() {
		value := m.record.Get(key)
		if strings.HasSuffix(key, "Address") {
			value = shorten(value)
		}
		b.WriteString(fmt.Sprintf("  %-28s %s\n", dashboard.HumanizeCamelCase(key), dashValueStyle.Render(value)))
	}
	return b.String()
}
