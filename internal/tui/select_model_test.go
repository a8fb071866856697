package tui

import (
	"context"
	"errors"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skipwise/skipselect/internal/skips"
)

func stubFetch(items []skips.SkipOption, err error) skips.Fetcher {
	return func(_ context.Context) ([]skips.SkipOption, error) {
		return items, err
	}
}

func testBatch() []skips.SkipOption {
	return []skips.SkipOption{
		{ID: 1, Size: 4, HirePeriodDays: 14, PriceBeforeVAT: 200, VATPercent: 20},
		{ID: 2, Size: 6, HirePeriodDays: 14, PriceBeforeVAT: 250, VATPercent: 20},
		{ID: 3, Size: 8, HirePeriodDays: 14, PriceBeforeVAT: 300, VATPercent: 20, AllowedOnRoad: true},
	}
}

func keyMsg(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "ctrl+c":
		return tea.KeyMsg{Type: tea.KeyCtrlC}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
	}
}

func TestNewSelectModel(t *testing.T) {
	m := NewSelectModel(context.Background(), stubFetch(testBatch(), nil), "NR32, Lowestoft")

	assert.Equal(t, ViewStateLoading, m.state)
	assert.Equal(t, -1, m.selected)
	assert.Nil(t, m.Choice())
	assert.NotNil(t, m.Init())
}

func TestSelectModel_LoadSuccessShowsList(t *testing.T) {
	m := NewSelectModel(context.Background(), stubFetch(testBatch(), nil), "NR32, Lowestoft")

	updated, _ := m.Update(skipsLoadedMsg{result: skips.LoadResult{State: skips.StateReady, Items: testBatch()}})
	m = updated.(*SelectModel)

	assert.Equal(t, ViewStateList, m.state)
	assert.Len(t, m.items, 3)
	assert.Equal(t, -1, m.selected, "loading a batch must not select anything")
	assert.Contains(t, m.View(), "4 Yard Skip")
	assert.Contains(t, m.View(), "£240")
}

func TestSelectModel_LoadFailureShowsErrorPanel(t *testing.T) {
	m := NewSelectModel(context.Background(), stubFetch(nil, nil), "NR32, Lowestoft")

	updated, _ := m.Update(skipsLoadedMsg{result: skips.LoadResult{
		State:   skips.StateFailed,
		Message: "catalogue request failed with status 503",
	}})
	m = updated.(*SelectModel)

	assert.Equal(t, ViewStateError, m.state)
	assert.Contains(t, m.View(), "503")
	assert.Contains(t, m.View(), "reload")
}

func TestSelectModel_ReloadFromError(t *testing.T) {
	m := NewSelectModel(context.Background(), stubFetch(testBatch(), nil), "NR32, Lowestoft")

	updated, _ := m.Update(skipsLoadedMsg{result: skips.LoadResult{State: skips.StateFailed, Message: "boom"}})
	m = updated.(*SelectModel)
	require.Equal(t, ViewStateError, m.state)

	updated, cmd := m.Update(keyMsg("r"))
	m = updated.(*SelectModel)

	assert.Equal(t, ViewStateLoading, m.state)
	assert.Nil(t, m.items)
	assert.Equal(t, -1, m.selected)
	assert.NotNil(t, cmd, "reload must start a fresh fetch")
}

func TestSelectModel_SelectionReplacesPrevious(t *testing.T) {
	m := NewSelectModel(context.Background(), stubFetch(testBatch(), nil), "NR32, Lowestoft")
	updated, _ := m.Update(skipsLoadedMsg{result: skips.LoadResult{State: skips.StateReady, Items: testBatch()}})
	m = updated.(*SelectModel)

	// Select item A.
	updated, _ = m.Update(keyMsg("enter"))
	m = updated.(*SelectModel)
	require.NotNil(t, m.Selected())
	assert.Equal(t, 1, m.Selected().ID)

	// Move to item B and select it: exactly B must remain selected.
	updated, _ = m.Update(keyMsg("down"))
	m = updated.(*SelectModel)
	updated, _ = m.Update(keyMsg("enter"))
	m = updated.(*SelectModel)

	require.NotNil(t, m.Selected())
	assert.Equal(t, 2, m.Selected().ID)
	assert.Equal(t, 1, m.selected)
}

func TestSelectModel_NoDeselectAffordance(t *testing.T) {
	m := NewSelectModel(context.Background(), stubFetch(testBatch(), nil), "NR32, Lowestoft")
	updated, _ := m.Update(skipsLoadedMsg{result: skips.LoadResult{State: skips.StateReady, Items: testBatch()}})
	m = updated.(*SelectModel)

	updated, _ = m.Update(keyMsg("enter"))
	m = updated.(*SelectModel)
	require.NotNil(t, m.Selected())

	// Re-selecting the same item keeps the selection; nothing clears it.
	updated, _ = m.Update(keyMsg("enter"))
	m = updated.(*SelectModel)
	assert.NotNil(t, m.Selected())
}

func TestSelectModel_ContinueRequiresSelection(t *testing.T) {
	m := NewSelectModel(context.Background(), stubFetch(testBatch(), nil), "NR32, Lowestoft")
	updated, _ := m.Update(skipsLoadedMsg{result: skips.LoadResult{State: skips.StateReady, Items: testBatch()}})
	m = updated.(*SelectModel)

	updated, cmd := m.Update(keyMsg("c"))
	m = updated.(*SelectModel)

	assert.Equal(t, ViewStateList, m.state, "continue without selection must be a no-op")
	assert.Nil(t, cmd)
	assert.Nil(t, m.Choice())
}

func TestSelectModel_ContinueWithSelectionQuits(t *testing.T) {
	m := NewSelectModel(context.Background(), stubFetch(testBatch(), nil), "NR32, Lowestoft")
	updated, _ := m.Update(skipsLoadedMsg{result: skips.LoadResult{State: skips.StateReady, Items: testBatch()}})
	m = updated.(*SelectModel)

	updated, _ = m.Update(keyMsg("down"))
	m = updated.(*SelectModel)
	updated, _ = m.Update(keyMsg("enter"))
	m = updated.(*SelectModel)

	updated, cmd := m.Update(keyMsg("c"))
	m = updated.(*SelectModel)

	assert.Equal(t, ViewStateQuitting, m.state)
	require.NotNil(t, cmd)
	require.NotNil(t, m.Choice())
	assert.Equal(t, 2, m.Choice().ID)
}

func TestSelectModel_ContinueIgnoredWhileLoading(t *testing.T) {
	m := NewSelectModel(context.Background(), stubFetch(testBatch(), nil), "NR32, Lowestoft")

	updated, cmd := m.Update(keyMsg("c"))
	m = updated.(*SelectModel)

	assert.Equal(t, ViewStateLoading, m.state)
	assert.Nil(t, cmd)
}

func TestSelectModel_QuitTearsDown(t *testing.T) {
	m := NewSelectModel(context.Background(), stubFetch(testBatch(), nil), "NR32, Lowestoft")
	updated, cmd := m.Update(keyMsg("q"))
	m = updated.(*SelectModel)

	assert.Equal(t, ViewStateQuitting, m.state)
	assert.NotNil(t, cmd)
}

func TestSelectModel_TeardownDiscardsLateResult(t *testing.T) {
	resolve := make(chan struct{})
	fetch := func(_ context.Context) ([]skips.SkipOption, error) {
		<-resolve
		return testBatch(), nil
	}

	m := NewSelectModel(context.Background(), fetch, "NR32, Lowestoft")
	loadCmd := m.startLoad()

	// Tear down with the request still outstanding, then let the fake
	// transport resolve: the pending command must yield no message, so no
	// Ready or Failed mutation can reach the model.
	m.teardown()
	close(resolve)

	done := make(chan tea.Msg, 1)
	go func() { done <- loadCmd() }()

	select {
	case msg := <-done:
		assert.Nil(t, msg)
	case <-time.After(2 * time.Second):
		t.Fatal("load command did not complete after teardown")
	}
}

func TestSelectModel_CursorBounds(t *testing.T) {
	m := NewSelectModel(context.Background(), stubFetch(testBatch(), nil), "NR32, Lowestoft")
	updated, _ := m.Update(skipsLoadedMsg{result: skips.LoadResult{State: skips.StateReady, Items: testBatch()}})
	m = updated.(*SelectModel)

	updated, _ = m.Update(keyMsg("up"))
	m = updated.(*SelectModel)
	assert.Equal(t, 0, m.cursor)

	for range 10 {
		updated, _ = m.Update(keyMsg("down"))
		m = updated.(*SelectModel)
	}
	assert.Equal(t, 2, m.cursor)
}

func TestSelectModel_BadgesRendered(t *testing.T) {
	items := []skips.SkipOption{
		{ID: 1, Size: 4, HirePeriodDays: 14, PriceBeforeVAT: 200, VATPercent: 20, Forbidden: true},
	}
	m := NewSelectModel(context.Background(), stubFetch(items, nil), "NR32, Lowestoft")
	updated, _ := m.Update(skipsLoadedMsg{result: skips.LoadResult{State: skips.StateReady, Items: items}})
	m = updated.(*SelectModel)

	view := m.View()
	assert.Contains(t, view, "Unavailable")
	assert.Contains(t, view, "Not allowed on road")
}

func TestSelectModel_ErrorIsNotRetriedAutomatically(t *testing.T) {
	calls := 0
	fetch := func(_ context.Context) ([]skips.SkipOption, error) {
		calls++
		return nil, errors.New("boom")
	}

	m := NewSelectModel(context.Background(), fetch, "NR32, Lowestoft")
	loadCmd := m.startLoad()
	msg := loadCmd()
	require.IsType(t, skipsLoadedMsg{}, msg)

	updated, _ := m.Update(msg)
	m = updated.(*SelectModel)
	assert.Equal(t, ViewStateError, m.state)
	assert.Equal(t, 1, calls)
}
