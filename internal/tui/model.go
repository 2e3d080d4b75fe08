// Package tui is the terminal transcript browser. It glues the pagination
// controller, render-mode selector, windowed renderer and state store
// together inside one Bubble Tea update loop.
package tui

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/pranavsinghpatil/meshmemory/internal/api"
	"github.com/pranavsinghpatil/meshmemory/internal/core/config"
	"github.com/pranavsinghpatil/meshmemory/internal/core/logging"
	"github.com/pranavsinghpatil/meshmemory/internal/paging"
	"github.com/pranavsinghpatil/meshmemory/internal/render"
	"github.com/pranavsinghpatil/meshmemory/internal/state"
	"github.com/pranavsinghpatil/meshmemory/internal/suggest"
)

// Model is the top-level Bubble Tea model for the transcript browser.
type Model struct {
	cfg    *config.Config
	client *api.Client
	store  *state.Store
	ctrl   *Controller
	keys   KeyMap
	log    zerolog.Logger

	search      textinput.Model
	searching   bool
	deb         *suggest.Debouncer
	suggestions []string

	spin    spinner.Model
	preview *previewModal

	width  int
	height int
}

// New creates the browser for one transcript reference.
func New(cfg *config.Config, client *api.Client, store *state.Store, ref api.ChunkRef) Model {
	limit := store.PageLimit()
	if limit == 0 {
		limit = cfg.Pagination.DefaultLimit
	}

	search := textinput.New()
	search.Placeholder = "search transcripts"
	search.CharLimit = 128

	spin := spinner.New()
	spin.Spinner = spinner.Dot

	return Model{
		cfg:    cfg,
		client: client,
		store:  store,
		ctrl:   NewController(ref, limit, cfg.Render.PaginateThreshold, cfg.Render.ItemHeight, cfg.Render.Overscan),
		keys:   DefaultKeyMap(),
		log:    logging.Component("tui"),
		search: search,
		deb:    suggest.NewDebouncer(suggest.DefaultDelay),
		spin:   spin,
	}
}

// Init issues the initial page fetch and starts the hydration indicator.
func (m Model) Init() tea.Cmd {
	req := m.ctrl.Pager().Load()
	return tea.Batch(
		fetchPage(m.client, m.cfg.API.Timeout(), req),
		scheduleHydrationTick(),
		m.spin.Tick,
	)
}

// Update handles messages for the browser.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if m.preview != nil {
			m.preview.SetSize(msg.Width, msg.Height)
		}
		return m, nil

	case pageLoadedMsg:
		return m.handlePageLoaded(msg)

	case allLoadedMsg:
		return m.handleAllLoaded(msg)

	case suggestionsMsg:
		return m.handleSuggestions(msg)

	case debounceMsg:
		return m.handleDebounce(msg)

	case hydrationTickMsg:
		// Polling stops once every persisted namespace is ready; the tick
		// only exists to repaint the hydration indicator.
		if len(m.pendingNamespaces()) > 0 {
			return m, scheduleHydrationTick()
		}
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m Model) handlePageLoaded(msg pageLoadedMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		m.log.Warn().Err(msg.err).Uint64("seq", msg.seq).Msg("page fetch failed")
		m.ctrl.FailPage(msg.seq)
		return m, nil
	}

	if !m.ctrl.ApplyPage(paging.Result{Seq: msg.seq, Page: msg.page}) {
		m.log.Debug().Uint64("seq", msg.seq).Msg("stale page discarded")
		return m, nil
	}

	// Full and virtualized display want the whole transcript in memory.
	if m.ctrl.NeedsAll() {
		return m, fetchAll(m.client, m.cfg.API.Timeout(), m.ctrl.Pager().Ref(), m.ctrl.Pager().Limit())
	}
	return m, nil
}

func (m Model) handleAllLoaded(msg allLoadedMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		// The page already on screen stays; full display just isn't
		// available until a retry.
		m.log.Warn().Err(msg.err).Msg("full transcript fetch failed")
		return m, nil
	}
	m.ctrl.SetAll(msg.chunks)
	return m, nil
}

func (m Model) handleSuggestions(msg suggestionsMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		m.log.Debug().Err(msg.err).Str("query", msg.query).Msg("suggestion fetch failed")
		return m, nil
	}
	if m.searching && msg.query == m.search.Value() {
		m.suggestions = msg.items
	}
	return m, nil
}

func (m Model) handleDebounce(msg debounceMsg) (tea.Model, tea.Cmd) {
	query, ok := m.deb.Fire(msg.gen)
	if !ok {
		return m, nil
	}
	return m, fetchSuggestions(m.client, m.cfg.API.Timeout(), query, m.cfg.API.SuggestLimit)
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.preview != nil {
		if key.Matches(msg, m.keys.Cancel, m.keys.Preview, m.keys.Quit) {
			m.preview = nil
			return m, nil
		}
		m.preview.Update(msg)
		return m, nil
	}

	if m.searching {
		return m.handleSearchKey(msg)
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		m.deb.Stop()
		return m, tea.Quit

	case key.Matches(msg, m.keys.Search):
		m.searching = true
		m.suggestions = nil
		m.search.Focus()
		return m, textinput.Blink

	case key.Matches(msg, m.keys.Up):
		m.ctrl.MoveUp(m.listHeight())
		return m, nil

	case key.Matches(msg, m.keys.Down):
		m.ctrl.MoveDown(m.listHeight())
		return m, nil

	case key.Matches(msg, m.keys.NextPage):
		return m, m.navigate(m.ctrl.Pager().Next())

	case key.Matches(msg, m.keys.PrevPage):
		return m, m.navigate(m.ctrl.Pager().Prev())

	case key.Matches(msg, m.keys.FirstPage):
		return m, m.navigate(m.ctrl.Pager().First())

	case key.Matches(msg, m.keys.LastPage):
		return m, m.navigate(m.ctrl.Pager().Last())

	case key.Matches(msg, m.keys.CycleLimit):
		return m.cycleLimit()

	case key.Matches(msg, m.keys.CycleMode):
		// An active override stays cyclable even when the transcript has
		// since shrunk below the threshold, otherwise there would be no key
		// left to clear it.
		if m.ctrl.OverrideVisible() || m.ctrl.Overridden() {
			m.ctrl.CycleMode()
			if m.ctrl.NeedsAll() {
				return m, fetchAll(m.client, m.cfg.API.Timeout(), m.ctrl.Pager().Ref(), m.ctrl.Pager().Limit())
			}
		}
		return m, nil

	case key.Matches(msg, m.keys.Expand):
		m.ctrl.ToggleSelected()
		return m, nil

	case key.Matches(msg, m.keys.Preview):
		if sel := m.ctrl.Selected(); sel != nil {
			m.preview = newPreviewModal(*sel, m.width, m.height)
		}
		return m, nil

	case key.Matches(msg, m.keys.Retry):
		return m, m.navigate(m.ctrl.Pager().Retry())

	case key.Matches(msg, m.keys.Sidebar):
		m.store.ToggleSidebar()
		return m, nil

	case key.Matches(msg, m.keys.AddBenchmark):
		if sel := m.ctrl.Selected(); sel != nil {
			m.store.AddBenchmark(state.Benchmark{
				ID:       uuid.NewString(),
				Name:     fmt.Sprintf("%s · %s", sel.Participant, sel.Model),
				ChunkIDs: []string{sel.ID},
			})
		}
		return m, nil

	case key.Matches(msg, m.keys.AddChat):
		if sel := m.ctrl.Selected(); sel != nil {
			m.store.AddParallelChat(state.ParallelChat{
				ID:            uuid.NewString(),
				Title:         truncate(sel.Text, 40),
				SourceChunkID: sel.ID,
				CreatedAt:     time.Now(),
			})
		}
		return m, nil
	}

	return m, nil
}

func (m Model) handleSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Cancel):
		m.searching = false
		m.suggestions = nil
		m.search.Blur()
		m.search.SetValue("")
		m.deb.Stop()
		return m, nil

	case msg.Type == tea.KeyEnter:
		// Accepting a query just closes the prompt; querying itself is the
		// search screen's job, not the transcript browser's.
		m.searching = false
		m.search.Blur()
		m.deb.Stop()
		return m, nil
	}

	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)

	gen := m.deb.Input(m.search.Value())
	return m, tea.Batch(cmd, scheduleDebounce(m.deb.Delay(), gen))
}

func (m Model) navigate(req *paging.Request) tea.Cmd {
	if req == nil {
		return nil
	}
	return fetchPage(m.client, m.cfg.API.Timeout(), req)
}

func (m Model) cycleLimit() (tea.Model, tea.Cmd) {
	current := m.ctrl.Pager().Limit()
	next := paging.AllowedLimits[0]
	for i, l := range paging.AllowedLimits {
		if l == current {
			next = paging.AllowedLimits[(i+1)%len(paging.AllowedLimits)]
			break
		}
	}

	req := m.ctrl.Pager().SetLimit(next)
	if req == nil {
		return m, nil
	}
	m.store.SetPageLimit(next)
	return m, fetchPage(m.client, m.cfg.API.Timeout(), req)
}

// listHeight is the vertical room for chunk rows, excluding header, status
// bar and any error banner.
func (m Model) listHeight() int {
	h := m.height - 4
	if m.ctrl.Pager().Err() != "" {
		h -= 2
	}
	if h < render.DefaultOverscan {
		h = render.DefaultOverscan
	}
	return h
}

func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n-1]) + "…"
}
