package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/hoanghai1803/inkwell/internal/listing"
	"github.com/hoanghai1803/inkwell/internal/models"
)

// View implements tea.Model.
func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}
	if m.focus == focusForm && m.form != nil {
		return m.viewForm()
	}
	return lipgloss.JoinVertical(lipgloss.Left,
		m.viewNav(),
		m.theme.Divider.Render(strings.Repeat("─", m.width)),
		m.viewBody(),
		m.viewStatus(),
	)
}

func (m Model) viewNav() string {
	now := m.opts.Now()
	parts := []string{
		m.theme.Brand.Render("✒ inkwell"),
		m.theme.NavDate.Render(now.Format("Monday") + " · " + now.Format("2 Jan 2006")),
	}

	if m.category == "" {
		parts = append(parts, m.theme.NavActive.Render("ALL"))
	} else {
		parts = append(parts, m.theme.NavActive.Render(models.CategoryIcon(m.category)+" "+strings.ToUpper(m.category)))
	}

	switch {
	case m.focus == focusSearch:
		parts = append(parts, m.search.View())
	case m.search.Value() != "":
		parts = append(parts, m.theme.NavMuted.Render("/ "+m.search.Value()))
	default:
		parts = append(parts, m.theme.Help.Render("/ search"))
	}
	return ansi.Truncate(strings.Join(parts, "  "), m.width, "…")
}

func (m Model) viewBody() string {
	h := max(m.bodyHeight(), 1)
	switch {
	case !m.loaded && m.loadErr != nil:
		msg := m.theme.Error.Render("Could not load blogs") + "\n" +
			m.theme.Muted.Render(m.loadErr.Error()) + "\n\n" +
			m.theme.Help.Render("press r to retry")
		return lipgloss.Place(m.width, h, lipgloss.Center, lipgloss.Center, msg)
	case !m.loaded:
		return lipgloss.Place(m.width, h, lipgloss.Center, lipgloss.Center, m.theme.Muted.Render("Loading blogs..."))
	}

	listW := m.listWidth()
	divider := m.theme.Divider.Render(strings.TrimSuffix(strings.Repeat("│\n", h), "\n"))
	return lipgloss.JoinHorizontal(lipgloss.Top,
		lipgloss.NewStyle().Width(listW).Height(h).MaxHeight(h).Render(m.viewList(listW, h)),
		divider,
		m.viewDetail(h),
	)
}

func (m Model) viewList(width, height int) string {
	if len(m.visible) == 0 {
		msg := m.theme.Muted.Render("No articles found")
		if m.category != "" || m.search.Value() != "" {
			msg += "\n" + m.theme.Help.Render("x clears filters")
		}
		return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, msg)
	}

	perPage := max(height/rowHeight, 1)
	start := 0
	if c := m.cursor(); c >= perPage {
		start = c - perPage + 1
	}
	end := min(start+perPage, len(m.visible))

	textW := max(width-3, 1)
	rows := make([]string, 0, end-start)
	for _, b := range m.visible[start:end] {
		title := ansi.Truncate(models.CategoryIcon(b.PrimaryCategory())+" "+b.Title, textW, "…")
		meta := ansi.Truncate(strings.ToUpper(b.PrimaryCategory())+" · "+listing.FormatShort(b.Date), textW, "…")
		style := m.theme.Row
		if m.sel.IsActive(b.ID) {
			style = m.theme.RowActive
		}
		rows = append(rows, style.Render(title+"\n"+m.theme.RowMeta.Render(meta)))
	}
	return strings.Join(rows, "\n")
}

func (m Model) viewDetail(height int) string {
	w := m.detail.Width
	if _, ok := m.sel.Active(); !ok {
		return lipgloss.Place(w, height, lipgloss.Center, lipgloss.Center,
			m.theme.Muted.Render("Select an article to start reading"))
	}
	return lipgloss.NewStyle().PaddingLeft(1).Render(m.detail.View())
}

// renderArticle lays out a post for the detail pane.
func (m Model) renderArticle(b models.Blog, width int) string {
	w := max(width-2, 10)
	var sb strings.Builder

	badges := make([]string, 0, len(b.Category))
	for _, c := range b.Category {
		badges = append(badges, m.theme.Badge.Render(models.CategoryIcon(c)+" "+strings.ToUpper(c)))
	}
	if len(badges) > 0 {
		sb.WriteString(strings.Join(badges, " "))
		sb.WriteString("\n\n")
	}

	sb.WriteString(m.theme.Title.Width(w).Render(b.Title))
	sb.WriteString("\n")

	meta := []string{listing.FormatLong(b.Date)}
	if rel := listing.Relative(b.Date, m.opts.Now()); rel != "" {
		meta = append(meta, rel)
	}
	if rt := listing.ReadingTimeLabel(b.Content); rt != "" {
		meta = append(meta, rt)
	}
	sb.WriteString(m.theme.Meta.Width(w).Render(strings.Join(meta, " · ")))
	sb.WriteString("\n")

	switch {
	case b.CoverImage == "":
	case b.HasInlineCover():
		sb.WriteString(m.theme.Muted.Render("cover: inline image"))
		sb.WriteString("\n")
	default:
		sb.WriteString(m.theme.Muted.Render(ansi.Truncate("cover: "+b.CoverImage, w, "…")))
		sb.WriteString("\n")
	}

	if b.Description != "" {
		sb.WriteString("\n")
		sb.WriteString(m.theme.Description.Width(w).Render(b.Description))
		sb.WriteString("\n")
	}

	for _, p := range listing.Paragraphs(b.Content) {
		sb.WriteString("\n")
		sb.WriteString(m.theme.Body.Width(w).Render(p))
		sb.WriteString("\n")
	}
	return sb.String()
}

func (m Model) viewStatus() string {
	if m.toast != "" {
		style := m.theme.Toast
		if m.toastError {
			style = m.theme.ToastError
		}
		return ansi.Truncate(style.Render(m.toast), m.width, "…")
	}

	var left string
	switch {
	case m.loading && m.loaded:
		left = "Refreshing..."
	case m.loaded:
		left = fmt.Sprintf("%d of %d articles", len(m.visible), len(m.all))
	}

	k := m.keys
	help := shortHelp(k.Down, k.Search, k.NextCategory, k.ClearFilters, k.CopyLink, k.Refresh, k.Create, k.Quit)
	line := m.theme.Muted.Render(left) + "  " + m.theme.Help.Render(strings.Join(help, " · "))
	return ansi.Truncate(line, m.width, "…")
}

func (m Model) viewForm() string {
	f := m.form
	var sb strings.Builder
	sb.WriteString(m.theme.Brand.Render("✒ inkwell") + m.theme.NavDate.Render("  new post"))
	sb.WriteString("\n\n")

	label := func(i int) string {
		style := m.theme.Label
		if f.focus == i {
			style = m.theme.LabelFocus
		}
		return style.Width(14).Render(fieldLabels[i])
	}

	for i := range f.inputs {
		sb.WriteString(label(i) + f.inputs[i].View())
		sb.WriteString("\n")
		if msg := f.fieldError(i); msg != "" {
			sb.WriteString(strings.Repeat(" ", 14) + m.theme.Error.Render(fieldLabels[i]+" "+msg))
		}
		sb.WriteString("\n")
	}

	sb.WriteString(label(fieldContent))
	if msg := f.fieldError(fieldContent); msg != "" {
		sb.WriteString(m.theme.Error.Render(fieldLabels[fieldContent] + " " + msg))
	}
	sb.WriteString("\n")
	sb.WriteString(f.content.View())
	sb.WriteString("\n")

	switch {
	case f.submitting:
		sb.WriteString(m.theme.Muted.Render("Publishing..."))
	case f.err != nil:
		sb.WriteString(m.theme.Error.Render("Could not publish: " + f.err.Error()))
	case m.toast != "":
		style := m.theme.Toast
		if m.toastError {
			style = m.theme.ToastError
		}
		sb.WriteString(style.Render(m.toast))
	default:
		k := f.keys
		sb.WriteString(m.theme.Help.Render(strings.Join(shortHelp(k.Next, k.Prev, k.Submit, k.Cancel), " · ")))
	}
	return sb.String()
}
