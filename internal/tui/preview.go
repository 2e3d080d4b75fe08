package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"

	"github.com/pranavsinghpatil/meshmemory/internal/core/styles"
	"github.com/pranavsinghpatil/meshmemory/internal/core/transcript"
)

// previewModal shows one chunk's full text, rendered as markdown, in a
// scrollable overlay.
type previewModal struct {
	chunk transcript.Chunk
	vp    viewport.Model
}

func newPreviewModal(chunk transcript.Chunk, width, height int) *previewModal {
	p := &previewModal{chunk: chunk}
	p.SetSize(width, height)
	return p
}

// SetSize resizes the modal to fit inside the given terminal dimensions and
// re-renders the markdown at the new wrap width.
func (p *previewModal) SetSize(width, height int) {
	w := width - 8
	if w < 20 {
		w = 20
	}
	h := height - 6
	if h < 5 {
		h = 5
	}

	p.vp = viewport.New(w, h)
	p.vp.SetContent(p.render(w))
}

func (p *previewModal) Update(msg tea.KeyMsg) {
	p.vp, _ = p.vp.Update(msg)
}

func (p *previewModal) View() string {
	title := styles.Title().Render(fmt.Sprintf("%s · %s", p.chunk.Participant, p.chunk.Model))
	body := p.vp.View()
	footer := styles.Muted().Render(fmt.Sprintf("%3.0f%%", p.vp.ScrollPercent()*100))
	return styles.Expanded().Render(strings.Join([]string{title, body, footer}, "\n"))
}

func (p *previewModal) render(width int) string {
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return p.chunk.Text
	}
	out, err := r.Render(p.chunk.Text)
	if err != nil {
		return p.chunk.Text
	}
	return out
}
