package catalog

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oweller/ipteav/internal/domain"
	"github.com/oweller/ipteav/internal/log"
	"github.com/oweller/ipteav/internal/syncstate"
)

func TestSyncCompletionResetsNavigationToRoot(t *testing.T) {
	nav, cache, fake := fixtureNav(t)
	drillToLeaf(t, nav, cache)
	require.Equal(t, 2, nav.Depth())

	tracker := syncstate.NewTracker(log.NullLogger())
	coord := NewCoordinator(tracker, nav, log.NullLogger())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go coord.Run(ctx)

	// Give the coordinator a beat to subscribe before the event fires.
	time.Sleep(10 * time.Millisecond)
	before := fake.callCount("categories:LIVE")

	tracker.Apply(domain.SyncNotification{Status: domain.SyncCompleted, Message: "Done"})

	assert.Eventually(t, func() bool {
		return nav.Depth() == 0 && fake.callCount("categories:LIVE") > before
	}, time.Second, 5*time.Millisecond, "completion should reset to root and refetch the top level")

	assert.Empty(t, cache.Items())
}

func TestFailedSyncDoesNotResetNavigation(t *testing.T) {
	nav, cache, _ := fixtureNav(t)
	drillToLeaf(t, nav, cache)

	tracker := syncstate.NewTracker(log.NullLogger())
	coord := NewCoordinator(tracker, nav, log.NullLogger())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go coord.Run(ctx)

	time.Sleep(10 * time.Millisecond)
	tracker.Apply(domain.SyncNotification{Status: domain.SyncFailed, Message: "boom"})

	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, 2, nav.Depth(), "a failed import must not disturb navigation")
	assert.Len(t, cache.Items(), 10)
}

func TestEveryCompletionTriggersRefresh(t *testing.T) {
	nav, _, fake := fixtureNav(t)

	tracker := syncstate.NewTracker(log.NullLogger())
	coord := NewCoordinator(tracker, nav, log.NullLogger())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go coord.Run(ctx)

	time.Sleep(10 * time.Millisecond)
	before := fake.callCount("categories:LIVE")

	tracker.Apply(domain.SyncNotification{Status: domain.SyncCompleted, Message: "first"})
	require.Eventually(t, func() bool {
		return fake.callCount("categories:LIVE") == before+1
	}, time.Second, 5*time.Millisecond)

	tracker.Apply(domain.SyncNotification{Status: domain.SyncCompleted, Message: "second"})
	require.Eventually(t, func() bool {
		return fake.callCount("categories:LIVE") == before+2
	}, time.Second, 5*time.Millisecond)
}
