package tui

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pranavsinghpatil/meshmemory/internal/api"
	"github.com/pranavsinghpatil/meshmemory/internal/core/transcript"
	"github.com/pranavsinghpatil/meshmemory/internal/paging"
	"github.com/pranavsinghpatil/meshmemory/internal/render"
	"github.com/pranavsinghpatil/meshmemory/pkg/tuitest"
)

// loadedModel returns a model with page 1 of a 120-chunk transcript applied.
func loadedModel(t *testing.T) Model {
	t.Helper()

	m := testModel(t)
	req := m.ctrl.Pager().Load()
	require.NotNil(t, req)

	next, _ := m.Update(pageLoadedMsg{
		seq: req.Seq,
		page: api.ChunksPage{
			Chunks:     mkChunks(0, 50),
			Pagination: transcript.NewPaginationInfo(1, 50, 120),
		},
	})
	return next.(Model)
}

func TestModel_StalePageDiscarded(t *testing.T) {
	m := loadedModel(t)

	first := m.ctrl.Pager().Next()
	require.NotNil(t, first)
	second := m.ctrl.Pager().JumpTo(3)
	require.NotNil(t, second)

	// The slower earlier fetch resolves after the later one was issued.
	next, _ := m.Update(pageLoadedMsg{
		seq: first.Seq,
		page: api.ChunksPage{
			Chunks:     mkChunks(50, 50),
			Pagination: transcript.NewPaginationInfo(2, 50, 120),
		},
	})
	m = next.(Model)
	assert.Equal(t, 1, m.ctrl.Pager().Page(), "stale resolution must not install")

	next, _ = m.Update(pageLoadedMsg{
		seq: second.Seq,
		page: api.ChunksPage{
			Chunks:     mkChunks(100, 20),
			Pagination: transcript.NewPaginationInfo(3, 50, 120),
		},
	})
	m = next.(Model)
	assert.Equal(t, 3, m.ctrl.Pager().Page())
}

func TestModel_BoundaryKeysIssueNoFetch(t *testing.T) {
	m := loadedModel(t)
	require.Equal(t, 1, m.ctrl.Pager().Page())

	_, cmd := m.Update(tuitest.KeyPress('p'))
	assert.Nil(t, cmd, "prev on the first page must not fetch")

	_, cmd = m.Update(tuitest.KeyPress('g'))
	assert.Nil(t, cmd, "first on the first page must not fetch")
}

func TestModel_NextPageFetches(t *testing.T) {
	m := loadedModel(t)

	_, cmd := m.Update(tuitest.KeyPress('n'))
	assert.NotNil(t, cmd)
}

func TestModel_FailureArmsRetry(t *testing.T) {
	m := loadedModel(t)

	req := m.ctrl.Pager().Next()
	require.NotNil(t, req)

	next, _ := m.Update(pageLoadedMsg{seq: req.Seq, err: assert.AnError})
	m = next.(Model)
	assert.Equal(t, paging.LoadErrorMessage, m.ctrl.Pager().Err())
	assert.Equal(t, 1, m.ctrl.Pager().Page(), "previous page stays on screen")

	_, cmd := m.Update(tuitest.KeyPress('r'))
	assert.NotNil(t, cmd, "retry re-issues the failed fetch")
}

func TestModel_DebounceOnlyLatestGenerationFires(t *testing.T) {
	m := loadedModel(t)

	next, _ := m.Update(tuitest.KeyPress('/'))
	m = next.(Model)
	require.True(t, m.searching)

	for _, r := range "grad" {
		next, _ = m.Update(tuitest.KeyPress(r))
		m = next.(Model)
	}

	gen := m.deb.Generation()
	_, cmd := m.Update(debounceMsg{gen: gen - 1})
	assert.Nil(t, cmd, "superseded timers must not fetch")

	_, cmd = m.Update(debounceMsg{gen: gen})
	assert.NotNil(t, cmd, "the latest timer fetches")
}

func TestModel_ShortQueryNeverFetches(t *testing.T) {
	m := loadedModel(t)

	next, _ := m.Update(tuitest.KeyPress('/'))
	m = next.(Model)
	for _, r := range "gr" {
		next, _ = m.Update(tuitest.KeyPress(r))
		m = next.(Model)
	}

	_, cmd := m.Update(debounceMsg{gen: m.deb.Generation()})
	assert.Nil(t, cmd)
}

func TestModel_CancelSearchStopsDebounce(t *testing.T) {
	m := loadedModel(t)

	next, _ := m.Update(tuitest.KeyPress('/'))
	m = next.(Model)
	for _, r := range "grad" {
		next, _ = m.Update(tuitest.KeyPress(r))
		m = next.(Model)
	}
	gen := m.deb.Generation()

	next, _ = m.Update(tuitest.KeyEsc())
	m = next.(Model)
	assert.False(t, m.searching)

	_, cmd := m.Update(debounceMsg{gen: gen})
	assert.Nil(t, cmd, "teardown cancels the pending fire")
}

func TestModel_AddBenchmarkMintsEntry(t *testing.T) {
	m := loadedModel(t)

	next, _ := m.Update(tuitest.KeyPress('b'))
	m = next.(Model)

	bms := m.store.Benchmarks()
	require.Len(t, bms, 1)
	assert.NotEmpty(t, bms[0].ID)
	assert.Equal(t, []string{"chunk-000"}, bms[0].ChunkIDs)
}

func TestModel_AddParallelChatFromSelection(t *testing.T) {
	m := loadedModel(t)
	m.ctrl.MoveDown(20)

	next, _ := m.Update(tuitest.KeyPress('c'))
	m = next.(Model)

	chats := m.store.ParallelChats()
	require.Len(t, chats, 1)
	assert.Equal(t, "chunk-001", chats[0].SourceChunkID)
}

func TestModel_SidebarToggles(t *testing.T) {
	m := loadedModel(t)
	require.False(t, m.store.SidebarCollapsed())

	next, _ := m.Update(tuitest.KeyPress('s'))
	m = next.(Model)
	assert.True(t, m.store.SidebarCollapsed())
}

func TestModel_ModeCycleStaysAvailableWhileOverridden(t *testing.T) {
	m := loadedModel(t)

	// Override to full; the in-memory walk starts.
	next, cmd := m.Update(tuitest.KeyPress('m'))
	m = next.(Model)
	require.NotNil(t, cmd)
	require.Equal(t, render.ModeFull, m.ctrl.Mode())

	// The walk resolves a transcript below the automatic threshold, so the
	// toggle disappears from the status bar while the override still holds.
	next, _ = m.Update(allLoadedMsg{chunks: mkChunks(0, 80)})
	m = next.(Model)
	require.False(t, m.ctrl.OverrideVisible())
	require.True(t, m.ctrl.Overridden())

	// The cycle key keeps working until the override is cleared.
	next, _ = m.Update(tuitest.KeyPress('m'))
	m = next.(Model)
	assert.Equal(t, render.ModePaginated, m.ctrl.Mode())

	next, _ = m.Update(tuitest.KeyPress('m'))
	m = next.(Model)
	assert.Equal(t, render.ModeVirtualized, m.ctrl.Mode())

	next, _ = m.Update(tuitest.KeyPress('m'))
	m = next.(Model)
	assert.False(t, m.ctrl.Overridden())
	assert.Equal(t, render.ModeFull, m.ctrl.Mode())
}
