package screens

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/emilianohg/launchtracker/internal/config"
	"github.com/emilianohg/launchtracker/internal/models"
	"github.com/emilianohg/launchtracker/internal/storage"
	"github.com/emilianohg/launchtracker/internal/store"
)

// Env is what every screen needs. Stores are only touched from Update.
type Env struct {
	Config   *store.ConfigStore
	Launches *store.LaunchStore
	KV       storage.KV
	Keys     storage.Keys
	Settings *config.Config
	Log      logrus.FieldLogger
	Now      func() time.Time
}

// NavigateMsg is sent when navigation to another screen is requested.
// LaunchID and Back are only set when opening the launch detail.
type NavigateMsg struct {
	Screen   string
	LaunchID string
	Back     string
}

func Navigate(screen string) tea.Cmd {
	return func() tea.Msg {
		return NavigateMsg{Screen: screen}
	}
}

// OpenDetail navigates to the detail of a launch; back is the screen q returns to.
func OpenDetail(launchID, back string) tea.Cmd {
	return func() tea.Msg {
		return NavigateMsg{Screen: "detail", LaunchID: launchID, Back: back}
	}
}

// RefreshMsg is sent when data should be refreshed
type RefreshMsg struct{}

func Refresh() tea.Cmd {
	return func() tea.Msg {
		return RefreshMsg{}
	}
}

// Palette offered when adding or recolouring taxonomy items.
var Palette = []string{"#0073ea", "#00c875", "#fdab3d", "#e2445c", "#a25ddc", "#c4c4c4", "#579bfc", "#ff642e"}

func nextColor(current string) string {
	for i, c := range Palette {
		if strings.EqualFold(c, current) {
			return Palette[(i+1)%len(Palette)]
		}
	}
	return Palette[0]
}

// Styles
var (
	TitleStyle    lipgloss.Style
	SubtitleStyle lipgloss.Style
	HelpStyle     lipgloss.Style
	SelectedStyle lipgloss.Style
	NormalStyle   lipgloss.Style
	DimStyle      lipgloss.Style
	SuccessStyle  lipgloss.Style
	WarningStyle  lipgloss.Style
	ErrorStyle    lipgloss.Style
	BoxStyle      lipgloss.Style
	HeaderStyle   lipgloss.Style
)

func init() {
	ApplyTheme(false)
}

// ApplyTheme switches every shared style between the light and dark palettes.
func ApplyTheme(dark bool) {
	text, dim, accent, border := "235", "244", "162", "62"
	if dark {
		text, dim, accent, border = "252", "241", "212", "99"
	}

	TitleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205")).MarginBottom(1)
	SubtitleStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(dim)).MarginBottom(1)
	HelpStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(dim)).MarginTop(1)
	SelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(accent))
	NormalStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(text))
	DimStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(dim))
	SuccessStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	WarningStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	ErrorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	BoxStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(border)).
		Padding(0, 2)
	HeaderStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(dim))
}

// Swatch renders a coloured dot followed by label.
func Swatch(color, label string) string {
	if color == "" {
		return "  " + label
	}
	return lipgloss.NewStyle().Foreground(lipgloss.Color(color)).Render("●") + " " + label
}

func colored(color, label string) string {
	if color == "" {
		return label
	}
	return lipgloss.NewStyle().Foreground(lipgloss.Color(color)).Render(label)
}

// cell pads or truncates s to width display columns.
func cell(s string, width int) string {
	w := lipgloss.Width(s)
	if w > width {
		r := []rune(s)
		if len(r) > width-1 && width > 1 {
			return string(r[:width-1]) + "…"
		}
		return s
	}
	return s + strings.Repeat(" ", width-w)
}

var (
	ErrNameRequired = errors.New("il nome e' obbligatorio")
	ErrDateOrder    = errors.New("la data di fine non puo' precedere la data di inizio")
	ErrDateFormat   = errors.New("le date devono essere nel formato AAAA-MM-GG")
)

// ValidateLaunch checks the fields the stores accept without looking at them.
func ValidateLaunch(name, start, end string) error {
	if strings.TrimSpace(name) == "" {
		return ErrNameRequired
	}
	var s, e time.Time
	var okS, okE bool
	if start != "" {
		if s, okS = models.ParseDate(start); !okS {
			return ErrDateFormat
		}
	}
	if end != "" {
		if e, okE = models.ParseDate(end); !okE {
			return ErrDateFormat
		}
	}
	if okS && okE && e.Before(s) {
		return ErrDateOrder
	}
	return nil
}

func renderMessage(b *strings.Builder, message string, err error) {
	if err != nil {
		b.WriteString(ErrorStyle.Render(fmt.Sprintf("Errore: %v", err)))
		b.WriteString("\n\n")
	}
	if message != "" {
		b.WriteString(SuccessStyle.Render(message))
		b.WriteString("\n\n")
	}
}

func clampCursor(cursor, n int) int {
	if cursor >= n {
		cursor = n - 1
	}
	if cursor < 0 {
		cursor = 0
	}
	return cursor
}
