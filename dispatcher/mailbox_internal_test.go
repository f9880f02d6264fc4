package dispatcher

import (
	"testing"

	"github.com/katalvlaran/mazechase/maze"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMailbox_Generations(t *testing.T) {
	var m Mailbox
	a, b := maze.NewNode(maze.C(0, 0)), maze.NewNode(maze.C(1, 0))

	g1, ok := m.begin(false)
	require.True(t, ok)
	assert.True(t, m.Waiting())
	_, ok = m.begin(false)
	assert.False(t, ok, "only forced requests replace one in flight")

	g2, ok := m.begin(true)
	require.True(t, ok)
	assert.Greater(t, g2, g1)

	assert.False(t, m.complete(g1, []*maze.Node{a}), "stale result")
	assert.True(t, m.Waiting())
	m.abort(g1)
	assert.True(t, m.Waiting(), "stale abort")

	assert.True(t, m.complete(g2, []*maze.Node{a, b}))
	assert.False(t, m.Waiting())
	path, ok := m.Take()
	require.True(t, ok)
	assert.Equal(t, []*maze.Node{a, b}, path)
	_, ok = m.Take()
	assert.False(t, ok, "delivered once")
}

func TestMailbox_EmptyDelivery(t *testing.T) {
	var m Mailbox
	gen, _ := m.begin(false)
	require.True(t, m.complete(gen, nil))
	path, ok := m.Take()
	assert.True(t, ok)
	assert.Empty(t, path)
}

func TestMailbox_PutAndReset(t *testing.T) {
	var m Mailbox
	a := maze.NewNode(maze.C(0, 0))

	gen, _ := m.begin(false)
	m.put([]*maze.Node{a})
	assert.False(t, m.Waiting())
	assert.False(t, m.complete(gen, nil), "put supersedes the request")
	path, ok := m.Take()
	require.True(t, ok)
	assert.Equal(t, []*maze.Node{a}, path)

	gen, _ = m.begin(false)
	m.put([]*maze.Node{a})
	m.reset()
	_, ok = m.Take()
	assert.False(t, ok)
	assert.False(t, m.Waiting())
	assert.False(t, m.complete(gen, []*maze.Node{a}))
}

func TestRegistry_ReusesSlots(t *testing.T) {
	var r registry
	id1 := r.add(nil, slot{})
	id2 := r.add(nil, slot{})
	assert.NotEqual(t, id1, id2)

	_, ok := r.remove(id1)
	require.True(t, ok)
	_, ok = r.remove(id1)
	assert.False(t, ok)
	assert.Nil(t, r.get(id1))

	id3 := r.add(nil, slot{})
	assert.Equal(t, id1.index, id3.index)
	assert.NotEqual(t, id1.gen, id3.gen)
	assert.Nil(t, r.get(id1))
	assert.NotNil(t, r.get(id3))

	var order []ID
	r.each(func(id ID, _ *slot) { order = append(order, id) })
	assert.Equal(t, []ID{id2, id3}, order, "registration order")
	assert.Equal(t, 2, r.live)
}
