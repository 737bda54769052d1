package app

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/flora/internal/plant"
	"github.com/Faultbox/flora/internal/scene"
)

type recorder struct {
	frames [][]scene.DrawItem
	err    error
}

func (r *recorder) Render(items []scene.DrawItem) error {
	r.frames = append(r.frames, items)
	return r.err
}

func newApp(t *testing.T, seed int64) *App {
	t.Helper()
	cfg := plant.DefaultConfig()
	cfg.Seed = seed
	return New(cfg, plant.DefaultOptions(), nil)
}

func firstLeaf(t *testing.T, a *App) string {
	t.Helper()
	leaves := a.Plant().Leaves()
	require.NotEmpty(t, leaves)
	return leaves[0].ID
}

func bladeColor(items []scene.DrawItem, id string) (scene.DrawItem, bool) {
	for _, it := range items {
		if it.Kind == scene.KindBlade && it.HitID == id {
			return it, true
		}
	}
	return scene.DrawItem{}, false
}

func TestNewUsesWallClockForZeroSeed(t *testing.T) {
	a := newApp(t, 0)
	assert.NotZero(t, a.Config().Seed)
	assert.Equal(t, plant.PlantID(a.Config().Seed), a.Config().ID)
}

func TestFrameGrowsAndRenders(t *testing.T) {
	a := newApp(t, 42)
	a.Frame(1, 1)
	assert.InDelta(t, 0.2, a.Growth(), 1e-9)

	var r recorder
	require.NoError(t, a.Render(&r))
	require.Len(t, r.frames, 1)
	assert.NotEmpty(t, r.frames[0])
}

func TestRenderWrapsError(t *testing.T) {
	a := newApp(t, 42)
	boom := errors.New("boom")
	err := a.Render(&recorder{err: boom})
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
}

func TestPauseFreezesGrowth(t *testing.T) {
	a := newApp(t, 42)
	a.Frame(1, 1)
	assert.True(t, a.TogglePause())
	a.Frame(5, 4)
	assert.InDelta(t, 0.2, a.Growth(), 1e-9)
	a.SetPaused(false)
	a.Frame(6, 1)
	assert.InDelta(t, 0.4, a.Growth(), 1e-9)
}

func TestLeafSelectionCreatesOverride(t *testing.T) {
	a := newApp(t, 42)
	id := firstLeaf(t, a)

	a.HandleLeafHit(id)
	assert.Equal(t, id, a.Selected())
	ov, ok := a.Overrides()[id]
	require.True(t, ok)
	assert.Nil(t, ov.Size)
	assert.Nil(t, ov.Angle)
	assert.Nil(t, ov.Color)

	// Hitting the same leaf deselects but keeps the override.
	a.HandleLeafHit(id)
	assert.Empty(t, a.Selected())
	assert.Contains(t, a.Overrides(), id)

	a.HandleLeafHit(id)
	a.HandleLeafHit("")
	assert.Empty(t, a.Selected())
}

func TestLeafEdits(t *testing.T) {
	a := newApp(t, 42)
	assert.False(t, a.SetLeafSize(2), "no selection")
	assert.Error(t, a.SetLeafColor("#ff0000"))

	id := firstLeaf(t, a)
	a.HandleLeafHit(id)

	require.True(t, a.SetLeafSize(9))
	require.True(t, a.SetLeafAngle(45))
	require.NoError(t, a.SetLeafColor("#ff0000"))
	assert.Error(t, a.SetLeafColor("red"))

	ov := a.Overrides()[id]
	require.NotNil(t, ov.Size)
	assert.Equal(t, 3.0, *ov.Size, "clamped to the size range")
	require.NotNil(t, ov.Angle)
	assert.Equal(t, 45.0, *ov.Angle)
	require.NotNil(t, ov.Color)
	assert.Equal(t, "#ff0000", *ov.Color)

	require.True(t, a.ResetLeaf())
	assert.Equal(t, plant.LeafOverride{}, a.Overrides()[id])
}

func TestSelectedLeafIsHighlighted(t *testing.T) {
	a := newApp(t, 42)
	a.Frame(10, 10)
	id := firstLeaf(t, a)
	a.HandleLeafHit(id)
	require.NoError(t, a.SetLeafColor("#0000ff"))
	a.Frame(10.1, 0.1)

	var r recorder
	require.NoError(t, a.Render(&r))
	it, ok := bladeColor(r.frames[0], id)
	require.True(t, ok)
	assert.Equal(t, plant.HighlightColor, it.Material.Color)

	a.HandleLeafHit("")
	a.Frame(10.2, 0.1)
	r = recorder{}
	require.NoError(t, a.Render(&r))
	it, ok = bladeColor(r.frames[0], id)
	require.True(t, ok)
	want, err := plant.ParseColor("#0000ff")
	require.NoError(t, err)
	assert.Equal(t, want, it.Material.Color)
}

func TestRegenerateClearsOverridesAndGrowth(t *testing.T) {
	a := newApp(t, 42)
	a.Frame(2, 2)
	id := firstLeaf(t, a)
	a.HandleLeafHit(id)
	require.True(t, a.SetLeafSize(2))

	a.Regenerate(7)
	assert.Equal(t, int64(7), a.Config().Seed)
	assert.Equal(t, "plant-7", a.Config().ID)
	assert.Zero(t, a.Growth())
	assert.Empty(t, a.Overrides())
	assert.Empty(t, a.Selected())
}

func TestRegenerateFromClock(t *testing.T) {
	a := newApp(t, 42)
	a.now = func() time.Time { return time.UnixMilli(1700000000000) }
	a.Regenerate(0)
	assert.Equal(t, int64(1700000000000), a.Config().Seed)

	// Same millisecond still produces a new plant.
	a.Regenerate(0)
	assert.Equal(t, int64(1700000000001), a.Config().Seed)
}

func TestSetParamKeepsOverridesAndGrowth(t *testing.T) {
	a := newApp(t, 42)
	a.Frame(2, 2)
	id := firstLeaf(t, a)
	a.HandleLeafHit(id)
	require.True(t, a.SetLeafAngle(10))

	v, err := a.SetParam(ParamHeight, 6)
	require.NoError(t, err)
	assert.Equal(t, 6.0, v)
	assert.Len(t, a.Plant().Branches(), 12)
	assert.InDelta(t, 0.4, a.Growth(), 1e-9)
	assert.Contains(t, a.Overrides(), id)
	assert.Equal(t, id, a.Selected())
}

func TestSetParamClamps(t *testing.T) {
	a := newApp(t, 42)
	tests := []struct {
		param Param
		in    float64
		want  float64
	}{
		{ParamHeight, 100, 8},
		{ParamHeight, 3.3, 3.5},
		{ParamPetalCount, 1, 5},
		{ParamPetalCount, 12.4, 12},
		{ParamLeafSize, 0, 0.1},
		{ParamBranchAngleMax, 200, 120},
		{ParamCurvature, -1, 0},
	}
	for _, tt := range tests {
		got, err := a.SetParam(tt.param, tt.in)
		require.NoError(t, err)
		assert.InDelta(t, tt.want, got, 1e-9, "%s(%v)", tt.param, tt.in)
		cur, err := a.Param(tt.param)
		require.NoError(t, err)
		assert.InDelta(t, tt.want, cur, 1e-9)
	}

	_, err := a.SetParam("petal_shape", 1)
	assert.Error(t, err)
}

func TestSetConfigNewSeedResets(t *testing.T) {
	a := newApp(t, 42)
	a.Frame(1, 1)
	a.HandleLeafHit(firstLeaf(t, a))

	cfg := a.Config()
	cfg.Curvature = 0.8
	a.SetConfig(cfg)
	assert.NotEmpty(t, a.Selected())

	cfg.Seed = 43
	a.SetConfig(cfg)
	assert.Equal(t, "plant-43", a.Config().ID)
	assert.Empty(t, a.Selected())
	assert.Empty(t, a.Overrides())
	assert.Zero(t, a.Growth())
}

func TestSetGradient(t *testing.T) {
	a := newApp(t, 42)
	require.NoError(t, a.SetGradient("#112233", "#445566"))
	assert.Equal(t, "#112233", a.Config().PetalGradientStart)
	assert.Error(t, a.SetGradient("nope", "#445566"))
	assert.Equal(t, "#112233", a.Config().PetalGradientStart)
}
