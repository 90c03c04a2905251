package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/recera/surfaceview/pkg/controller"
	"github.com/recera/surfaceview/pkg/page"
	"github.com/recera/surfaceview/pkg/surface"
)

// Style definitions
var (
	primaryColor = lipgloss.Color("#3b82f6")
	successColor = lipgloss.Color("#10b981")
	errorColor   = lipgloss.Color("#ef4444")
	mutedColor   = lipgloss.Color("#94a3b8")

	baseStyle = lipgloss.NewStyle().
			Padding(1, 2)

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(primaryColor).
			MarginBottom(1)

	labelStyle = lipgloss.NewStyle().
			Width(14).
			Foreground(mutedColor)

	selectedStyle = lipgloss.NewStyle().
			Foreground(primaryColor).
			Bold(true)

	normalStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#ffffff"))

	errorStyle = lipgloss.NewStyle().
			Foreground(errorColor).
			Bold(true)

	successStyle = lipgloss.NewStyle().
			Foreground(successColor).
			Bold(true)

	buttonStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			Padding(0, 2)

	helpStyle = lipgloss.NewStyle().
			Foreground(mutedColor).
			MarginTop(1)
)

const sliderWidth = 30

// View renders the current model
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("Minimal Surface Generator"))
	b.WriteString("\n")

	state := m.ctrl.State()
	b.WriteString(m.row(FieldSurfaceType, "Surface type", m.choice(surfaceLabel(state.SurfaceType))))
	b.WriteString(m.row(FieldResolution, "Resolution", slider(state.Resolution)+" "+m.vm.ResolutionLabel))
	if m.vm.OptionsVisible {
		b.WriteString(m.row(FieldOrder, "Order", m.order.View()))
	}
	b.WriteString(m.row(FieldColormap, "Colormap", m.choice(colormapLabel(state.Colormap))))

	button := buttonStyle.Render("Generate")
	if m.focus == FieldGenerate {
		button = buttonStyle.BorderForeground(primaryColor).Foreground(primaryColor).Render("Generate")
	}
	b.WriteString(button)
	b.WriteString("\n\n")

	b.WriteString(m.status())

	b.WriteString(helpStyle.Render(m.help.View(DefaultKeyMap)))

	return baseStyle.Render(b.String())
}

func (m Model) row(f Field, label, value string) string {
	cursor := "  "
	style := normalStyle
	if m.focus == f {
		cursor = selectedStyle.Render("▸ ")
		style = selectedStyle
	}
	return cursor + labelStyle.Render(label) + style.Render(value) + "\n"
}

func (m Model) choice(label string) string {
	return "‹ " + label + " ›"
}

func (m Model) status() string {
	if m.vm.Loading {
		return m.spinner.View() + " Generating surface...\n"
	}

	var lines []string
	switch m.vm.Content.Kind {
	case controller.ContentError:
		lines = append(lines, errorStyle.Render(m.vm.Content.Message))
	case controller.ContentPlot:
		lines = append(lines, successStyle.Render("✅ "+m.vm.Content.Plot.Layout.Title.Text))
	case controller.ContentImage:
		lines = append(lines, successStyle.Render("✅ Surface image ready"))
	}
	if m.writeErr != nil {
		lines = append(lines, errorStyle.Render(fmt.Sprintf("❌ write failed: %v", m.writeErr)))
	} else if m.lastPath != "" {
		lines = append(lines, "📄 "+m.lastPath)
	}
	if len(lines) == 0 {
		return ""
	}
	return strings.Join(lines, "\n") + "\n"
}

func slider(resolution int) string {
	span := page.MaxResolution - page.MinResolution
	filled := (resolution - page.MinResolution) * sliderWidth / span
	if filled < 0 {
		filled = 0
	}
	if filled > sliderWidth {
		filled = sliderWidth
	}
	return strings.Repeat("█", filled) + strings.Repeat("░", sliderWidth-filled)
}

func surfaceLabel(t surface.Type) string {
	for _, st := range page.SurfaceTypes {
		if st.Value == t {
			return st.Label
		}
	}
	return string(t)
}

func colormapLabel(name string) string {
	if name == surface.Monochrome {
		return "Monochrome"
	}
	return name
}
