package tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/pranavsinghpatil/meshmemory/internal/api"
	"github.com/pranavsinghpatil/meshmemory/internal/core/transcript"
	"github.com/pranavsinghpatil/meshmemory/internal/paging"
)

// hydrationPollInterval paces the status-bar hydration indicator refresh.
const hydrationPollInterval = 100 * time.Millisecond

type pageLoadedMsg struct {
	seq  uint64
	page api.ChunksPage
	err  error
}

type allLoadedMsg struct {
	chunks []transcript.Chunk
	err    error
}

type suggestionsMsg struct {
	query string
	items []string
	err   error
}

type debounceMsg struct {
	gen int
}

type hydrationTickMsg struct{}

func fetchPage(client *api.Client, timeout time.Duration, req *paging.Request) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		page, err := client.FetchChunks(ctx, req.Ref, req.Page, req.Limit)
		return pageLoadedMsg{seq: req.Seq, page: page, err: err}
	}
}

func fetchAll(client *api.Client, timeout time.Duration, ref api.ChunkRef, limit int) tea.Cmd {
	return func() tea.Msg {
		// Walking every page can take several requests.
		ctx, cancel := context.WithTimeout(context.Background(), 10*timeout)
		defer cancel()

		chunks, err := client.FetchAllChunks(ctx, ref, limit)
		return allLoadedMsg{chunks: chunks, err: err}
	}
}

func fetchSuggestions(client *api.Client, timeout time.Duration, query string, limit int) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		items, err := client.FetchSuggestions(ctx, query, limit)
		return suggestionsMsg{query: query, items: items, err: err}
	}
}

func scheduleDebounce(delay time.Duration, gen int) tea.Cmd {
	return tea.Tick(delay, func(time.Time) tea.Msg {
		return debounceMsg{gen: gen}
	})
}

func scheduleHydrationTick() tea.Cmd {
	return tea.Tick(hydrationPollInterval, func(time.Time) tea.Msg {
		return hydrationTickMsg{}
	})
}
