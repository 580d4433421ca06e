package wm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/1broseidon/anshos/internal/apps"
)

func TestDrag_TitleBarPressFollowsPointer(t *testing.T) {
	m := newTestManager(t)
	id := mustLaunch(t, m, apps.Calculator)

	require.NoError(t, m.Press(id, Point{X: 130, Y: 60}, RegionTitleBar))
	assert.Equal(t, DragDragging, m.DragPhase())

	assert.True(t, m.Drag(Point{X: 430, Y: 260}))
	assert.Equal(t, Point{X: 400, Y: 250}, mustWindow(t, m, id).Position)

	m.Release()
	assert.Equal(t, DragIdle, m.DragPhase())
	assert.False(t, m.Drag(Point{X: 0, Y: 0}))
	assert.Equal(t, Point{X: 400, Y: 250}, mustWindow(t, m, id).Position)
}

func TestDrag_PositionIsNotClamped(t *testing.T) {
	m := newTestManager(t)
	m.SetWorkArea(Rect{Width: 800, Height: 600})
	id := mustLaunch(t, m, apps.Paint)

	require.NoError(t, m.Press(id, Point{X: 110, Y: 55}, RegionTitleBar))
	m.Drag(Point{X: -500, Y: -400})
	assert.Equal(t, Point{X: -510, Y: -405}, mustWindow(t, m, id).Position)

	m.Drag(Point{X: 5000, Y: 4000})
	assert.Equal(t, Point{X: 4990, Y: 3995}, mustWindow(t, m, id).Position)
}

func TestPress_BodyFocusesWithoutDragging(t *testing.T) {
	m := newTestManager(t)
	a := mustLaunch(t, m, apps.Calculator)
	mustLaunch(t, m, apps.Todo)

	require.NoError(t, m.Press(a, Point{X: 150, Y: 200}, RegionBody))

	focused, _ := m.Focused()
	assert.Equal(t, a, focused.ID)
	_, dragging := m.Dragging()
	assert.False(t, dragging)
}

func TestPress_MaximizedFocusesWithoutDragging(t *testing.T) {
	m := newTestManager(t)
	a := mustLaunch(t, m, apps.Calculator)
	mustLaunch(t, m, apps.Todo)
	require.NoError(t, m.ToggleMaximize(a))

	require.NoError(t, m.Press(a, Point{X: 10, Y: 5}, RegionTitleBar))

	focused, _ := m.Focused()
	assert.Equal(t, a, focused.ID)
	assert.Equal(t, DragIdle, m.DragPhase())
}

func TestDrag_CancelledWhenWindowCloses(t *testing.T) {
	m := newTestManager(t)
	id := mustLaunch(t, m, apps.Timer)

	require.NoError(t, m.Press(id, Point{X: 120, Y: 55}, RegionTitleBar))
	dragged, ok := m.Dragging()
	require.True(t, ok)
	assert.Equal(t, id, dragged)

	require.NoError(t, m.Close(id))

	assert.Equal(t, DragIdle, m.DragPhase())
	assert.False(t, m.Drag(Point{X: 1, Y: 1}))
}

func TestDrag_CancelledWhenWindowMaximizes(t *testing.T) {
	m := newTestManager(t)
	id := mustLaunch(t, m, apps.Timer)

	require.NoError(t, m.Press(id, Point{X: 120, Y: 55}, RegionTitleBar))
	require.NoError(t, m.ToggleMaximize(id))

	assert.False(t, m.Drag(Point{X: 300, Y: 300}))
	assert.Equal(t, Point{X: 100, Y: 50}, mustWindow(t, m, id).Position)
}

func TestDragPhase_String(t *testing.T) {
	assert.Equal(t, "idle", DragIdle.String())
	assert.Equal(t, "dragging", DragDragging.String())
	assert.Equal(t, "DragPhase(7)", DragPhase(7).String())
}
