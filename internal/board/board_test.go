package board

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/samdwyer/forageband/internal/world"
)

func TestPostIdempotent(t *testing.T) {
	b := New()

	c := world.Coord{X: 3, Y: 4}
	assert.True(t, b.Post(c, world.Mineral, 5))
	assert.False(t, b.Post(c, world.Mineral, 4), "re-posting the same coordinate must not create a new entry")
	assert.Equal(t, 1, b.Len())

	reps := b.Snapshot()
	require.Len(t, reps, 1)
	assert.Equal(t, 4, reps[0].Quantity, "re-post refreshes the quantity")
	assert.Equal(t, Unclaimed, reps[0].ClaimedBy)
}

func TestPostKeepsClaim(t *testing.T) {
	b := New()
	c := world.Coord{X: 1, Y: 1}
	b.Post(c, world.Energy, 3)

	_, ok := b.ClaimNearest(world.Coord{}, 7)
	require.True(t, ok)

	b.Post(c, world.Energy, 2)
	reps := b.Snapshot()
	require.Len(t, reps, 1)
	assert.Equal(t, 7, reps[0].ClaimedBy, "re-post must not clear an existing claim")
}

func TestClaimNearestPicksClosest(t *testing.T) {
	b := New()
	b.Post(world.Coord{X: 9, Y: 9}, world.Mineral, 1)
	b.Post(world.Coord{X: 2, Y: 2}, world.Energy, 1)
	b.Post(world.Coord{X: 5, Y: 6}, world.Mineral, 1)

	r, ok := b.ClaimNearest(world.Coord{X: 1, Y: 1}, 0)
	require.True(t, ok)
	assert.Equal(t, world.Coord{X: 2, Y: 2}, r.Coord)
	assert.Equal(t, 0, r.ClaimedBy)
}

func TestClaimNearestTieBreak(t *testing.T) {
	b := New()
	// Both are distance 2 from the origin.
	b.Post(world.Coord{X: 2, Y: 0}, world.Mineral, 1)
	b.Post(world.Coord{X: 0, Y: 2}, world.Mineral, 1)

	r, ok := b.ClaimNearest(world.Coord{}, 0)
	require.True(t, ok)
	assert.Equal(t, world.Coord{X: 0, Y: 2}, r.Coord, "lexicographically lowest coordinate wins the tie")
}

func TestClaimNearestSkipsClaimed(t *testing.T) {
	b := New()
	b.Post(world.Coord{X: 1, Y: 0}, world.Mineral, 1)
	b.Post(world.Coord{X: 2, Y: 0}, world.Mineral, 1)

	r1, ok := b.ClaimNearest(world.Coord{}, 0)
	require.True(t, ok)
	r2, ok := b.ClaimNearest(world.Coord{}, 1)
	require.True(t, ok)
	assert.NotEqual(t, r1.Coord, r2.Coord)

	_, ok = b.ClaimNearest(world.Coord{}, 2)
	assert.False(t, ok, "no unclaimed entries left; not an error, just nothing to do")
}

func TestClaimExclusiveUnderContention(t *testing.T) {
	b := New()
	b.Post(world.Coord{X: 4, Y: 4}, world.Energy, 8)

	const miners = 16
	var wg sync.WaitGroup
	winners := make(chan int, miners)
	wg.Add(miners)
	for id := 0; id < miners; id++ {
		go func(id int) {
			defer wg.Done()
			if _, ok := b.ClaimNearest(world.Coord{}, id); ok {
				winners <- id
			}
		}(id)
	}
	wg.Wait()
	close(winners)

	count := 0
	for range winners {
		count++
	}
	assert.Equal(t, 1, count, "exactly one concurrent claimant may win")
}

func TestReleaseAllowsReclaim(t *testing.T) {
	b := New()
	c := world.Coord{X: 3, Y: 3}
	b.Post(c, world.Mineral, 2)

	_, ok := b.ClaimNearest(world.Coord{}, 0)
	require.True(t, ok)

	b.Release(c, 0)
	r, ok := b.ClaimNearest(world.Coord{}, 1)
	require.True(t, ok)
	assert.Equal(t, 1, r.ClaimedBy)
}

func TestReleaseByNonClaimantPanics(t *testing.T) {
	b := New()
	c := world.Coord{X: 1, Y: 2}
	b.Post(c, world.Mineral, 2)
	_, ok := b.ClaimNearest(world.Coord{}, 0)
	require.True(t, ok)

	assert.Panics(t, func() { b.Release(c, 1) })
}

func TestRemove(t *testing.T) {
	b := New()
	c := world.Coord{X: 6, Y: 1}
	b.Post(c, world.Energy, 1)
	b.Remove(c)
	assert.Equal(t, 0, b.Len())

	// Removing an absent coordinate is a no-op.
	b.Remove(c)
	assert.Equal(t, 0, b.Len())

	_, ok := b.ClaimNearest(world.Coord{}, 0)
	assert.False(t, ok)
}
