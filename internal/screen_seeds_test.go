package internal

import (
	"testing"

	"github.com/charmbracelet/bubbles/list"
	"github.com/ptshare/ptshare-client/internal/api"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSeedsScreen(t *testing.T) *SeedsScreen {
	t.Helper()
	return &SeedsScreen{
		list:     list.New([]list.Item{}, newSeedDelegate(), 80, 24),
		model:    &Model{apiClient: api.New("http://localhost", nil)},
		category: api.CategoryAll,
	}
}

func TestSeedsScreen_StaleResponseDropped(t *testing.T) {
	s := newTestSeedsScreen(t)

	// Two reloads in a row; only the second generation is live.
	_ = s.Reload()
	firstGen := s.gen
	_ = s.Reload()
	secondGen := s.gen
	require.NotEqual(t, firstGen, secondGen)

	// The slow first response arrives after the second request was
	// issued. Its items must not be shown.
	s.ApplyList(seedListMsg{gen: firstGen, items: []api.SeedItem{{ID: 1, Name: "stale.iso"}}})
	assert.Empty(t, s.list.Items())
	assert.True(t, s.loading)

	// The live response lands.
	s.ApplyList(seedListMsg{gen: secondGen, items: []api.SeedItem{{ID: 2, Name: "fresh.iso"}}})
	require.Len(t, s.list.Items(), 1)
	item, ok := s.list.Items()[0].(seedItem)
	require.True(t, ok)
	assert.Equal(t, "fresh.iso", item.seed.Name)
	assert.False(t, s.loading)
}

func TestSeedsScreen_FinishLoad(t *testing.T) {
	s := newTestSeedsScreen(t)

	_ = s.Reload()
	staleGen := s.gen
	_ = s.Reload()

	// A failure for the stale generation must not clear the spinner of
	// the in-flight request.
	s.FinishLoad(staleGen)
	assert.True(t, s.loading)

	s.FinishLoad(s.gen)
	assert.False(t, s.loading)
}

func TestSeedsScreen_ReloadBumpsGeneration(t *testing.T) {
	s := newTestSeedsScreen(t)

	_ = s.Reload()
	gen1 := s.gen
	s.category = api.CategoryMusic
	_ = s.Reload()

	assert.Greater(t, s.gen, gen1)
	assert.True(t, s.loading)
}

func TestSeedItemPresentation(t *testing.T) {
	item := seedItem{seed: api.SeedItem{
		Name:        "concert.flac",
		CategoryID:  api.CategoryMusic,
		Creator:     "alice",
		CreatedTime: "2026-03-01",
		SeederCount: 12,
	}}

	assert.Equal(t, "concert.flac", item.FilterValue())
	assert.Contains(t, item.Title(), "concert.flac")
	assert.Contains(t, item.Title(), "Music")
	assert.Contains(t, item.Description(), "alice")
	assert.Contains(t, item.Description(), "12 seeding")
}
