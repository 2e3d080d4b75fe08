package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/pranavsinghpatil/meshmemory/internal/core/styles"
	"github.com/pranavsinghpatil/meshmemory/internal/core/transcript"
)

// emptyPlaceholder is shown when a transcript has no chunks. Every display
// mode renders this same text so an empty transcript looks identical no
// matter how the view would have laid out a populated one.
const emptyPlaceholder = "no transcript chunks"

// View renders the browser.
func (m Model) View() string {
	if m.preview != nil {
		return m.preview.View()
	}

	var b strings.Builder
	b.WriteString(m.headerView())
	b.WriteString("\n")

	if m.searching {
		b.WriteString(m.searchView())
		b.WriteString("\n")
	}

	if msg := m.ctrl.Pager().Err(); msg != "" {
		b.WriteString(styles.ErrorBanner().Render(msg + "  (r to retry)"))
		b.WriteString("\n")
	}

	body := m.listView()
	if !m.store.SidebarCollapsed() {
		body = lipgloss.JoinHorizontal(lipgloss.Top, m.sidebarView(), body)
	}
	b.WriteString(body)
	b.WriteString("\n")
	b.WriteString(m.statusView())
	return b.String()
}

func (m Model) headerView() string {
	title := "meshmemory"
	if u := m.store.User(); u != nil {
		title = fmt.Sprintf("meshmemory · %s", u.Name)
	} else if !m.store.Identity.IsHydrated() {
		title = "meshmemory · …"
	}
	if ws := m.store.CurrentWorkspace(); ws.ID != "" {
		title += fmt.Sprintf(" · %s", ws.Name)
	}
	return styles.Title().Render(title)
}

func (m Model) searchView() string {
	var b strings.Builder
	b.WriteString(m.search.View())
	for _, s := range m.suggestions {
		b.WriteString("\n  ")
		b.WriteString(styles.Muted().Render(s))
	}
	return b.String()
}

func (m Model) listView() string {
	chunks, rng := m.ctrl.Visible(m.listHeight())
	if len(chunks) == 0 {
		return styles.Muted().Render(emptyPlaceholder)
	}

	var b strings.Builder
	for i, chunk := range chunks {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(m.chunkView(chunk, rng.Start+i == m.ctrl.Cursor()))
	}
	return b.String()
}

func (m Model) chunkView(chunk transcript.Chunk, selected bool) string {
	label := styles.Participant().Render(chunk.Participant)
	if chunk.Model != "" {
		label += " " + styles.Badge().Render(chunk.Model)
	}

	expanded := m.ctrl.Expansion().Expanded(chunk.ID)
	text := chunk.Text
	if !expanded {
		text = truncate(firstLine(text), 80)
	}

	line := fmt.Sprintf("%s  %s", label, text)
	if n := len(chunk.MicroThreads); n > 0 && !expanded {
		line += " " + styles.Muted().Render(fmt.Sprintf("(%d follow-ups)", n))
	}
	if selected {
		line = styles.Selected().Render(line)
	}

	if expanded && len(chunk.MicroThreads) > 0 {
		var b strings.Builder
		b.WriteString(line)
		for _, mt := range chunk.MicroThreads {
			b.WriteString("\n")
			b.WriteString(styles.Expanded().Render(fmt.Sprintf("↳ %s\n  %s", mt.UserPrompt, mt.AssistantResponse)))
		}
		return b.String()
	}
	return line
}

func (m Model) sidebarView() string {
	var b strings.Builder
	b.WriteString(styles.Title().Render("benchmarks"))
	if !m.store.Workspace.IsHydrated() {
		b.WriteString("\n" + styles.Muted().Render("loading…"))
	}
	for _, bm := range m.store.Benchmarks() {
		b.WriteString("\n  " + truncate(bm.Name, 24))
	}

	b.WriteString("\n\n")
	b.WriteString(styles.Title().Render("parallel chats"))
	for _, pc := range m.store.ParallelChats() {
		b.WriteString("\n  " + truncate(pc.Title, 24))
	}
	return lipgloss.NewStyle().Width(28).Render(b.String())
}

func (m Model) statusView() string {
	parts := []string{fmt.Sprintf("mode:%s", m.ctrl.Mode())}

	if pag := m.ctrl.Pager().Pagination(); m.ctrl.Pager().Loaded() {
		parts = append(parts, fmt.Sprintf("page %d/%d", pag.Page, pag.TotalPages))
		parts = append(parts, fmt.Sprintf("%d chunks", pag.TotalCount))
	}
	parts = append(parts, fmt.Sprintf("limit:%d", m.ctrl.Pager().Limit()))

	if m.ctrl.Pager().Loading() {
		parts = append(parts, m.spin.View())
	}

	if pending := m.pendingNamespaces(); len(pending) > 0 {
		parts = append(parts, "hydrating: "+strings.Join(pending, ","))
	}
	return styles.StatusBar().Render(strings.Join(parts, "  "))
}

// pendingNamespaces lists the persisted namespaces still hydrating.
func (m Model) pendingNamespaces() []string {
	var pending []string
	if !m.store.Identity.IsHydrated() {
		pending = append(pending, m.store.Identity.Namespace())
	}
	if !m.store.Workspace.IsHydrated() {
		pending = append(pending, m.store.Workspace.Namespace())
	}
	if !m.store.UIPrefs.IsHydrated() {
		pending = append(pending, m.store.UIPrefs.Namespace())
	}
	return pending
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}
