package tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/oweller/ipteav/internal/catalog"
	"github.com/oweller/ipteav/internal/domain"
)

const (
	fetchTimeout    = 30 * time.Second
	statusClearTime = 5 * time.Second
	tickInterval    = 100 * time.Millisecond
)

// Command factories for async operations

// navCmd wraps a navigator operation in a command with a fetch timeout.
func navCmd(op func(context.Context) error, errContext string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), fetchTimeout)
		defer cancel()

		if err := op(ctx); err != nil {
			return ErrMsg{Err: err, Context: errContext}
		}
		return NavChangedMsg{}
	}
}

// InitCatalogCmd performs the initial top-level fetch.
func InitCatalogCmd(nav *catalog.Navigator) tea.Cmd {
	return navCmd(nav.RefreshTopLevel, "loading catalog")
}

// SelectNodeCmd drills into the given node.
func SelectNodeCmd(nav *catalog.Navigator, node catalog.Node) tea.Cmd {
	return navCmd(func(ctx context.Context) error {
		return nav.SelectNode(ctx, node)
	}, "opening "+node.Label)
}

// GoBackCmd pops one navigation level.
func GoBackCmd(nav *catalog.Navigator) tea.Cmd {
	return navCmd(nav.GoBack, "going back")
}

// GoToLevelCmd pops the stack to the given depth.
func GoToLevelCmd(nav *catalog.Navigator, index int) tea.Cmd {
	return navCmd(func(ctx context.Context) error {
		return nav.GoToLevel(ctx, index)
	}, "going back")
}

// GoToRootCmd resets navigation and refetches the top level.
func GoToRootCmd(nav *catalog.Navigator) tea.Cmd {
	return navCmd(func(ctx context.Context) error {
		nav.GoToRoot()
		return nav.RefreshTopLevel(ctx)
	}, "returning to root")
}

// ChangeContentTypeCmd switches to another catalog section.
func ChangeContentTypeCmd(nav *catalog.Navigator, t domain.ContentType) tea.Cmd {
	return navCmd(func(ctx context.Context) error {
		return nav.ChangeContentType(ctx, t)
	}, "switching to "+t.String())
}

// LoadMoreCmd fetches the next item page for the active leaf.
func LoadMoreCmd(nav *catalog.Navigator, cache *catalog.Cache) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), fetchTimeout)
		defer cancel()

		before := len(cache.Items())
		if err := nav.LoadMore(ctx); err != nil {
			return ErrMsg{Err: err, Context: "loading more"}
		}
		return ItemsAppendedMsg{Added: len(cache.Items()) - before}
	}
}

// TriggerRefreshCmd asks the backend to start a catalog import.
func TriggerRefreshCmd(client domain.CatalogClient) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), fetchTimeout)
		defer cancel()

		if err := client.TriggerRefresh(ctx); err != nil {
			return ErrMsg{Err: err, Context: "triggering refresh"}
		}
		return RefreshRequestedMsg{}
	}
}

// WaitSyncChangedCmd blocks on the tracker change subscription. The
// command is reissued after every SyncChangedMsg.
func WaitSyncChangedCmd(changed <-chan struct{}) tea.Cmd {
	return func() tea.Msg {
		<-changed
		return SyncChangedMsg{}
	}
}

// FetchVodDetailCmd loads extended metadata for a VOD entry.
func FetchVodDetailCmd(client domain.CatalogClient, id int) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), fetchTimeout)
		defer cancel()

		detail, err := client.VodDetail(ctx, id)
		if err != nil {
			return ErrMsg{Err: err, Context: "loading details"}
		}
		return VodDetailMsg{Detail: detail}
	}
}

// FetchSeriesDetailCmd loads series metadata together with its episodes.
func FetchSeriesDetailCmd(client domain.CatalogClient, id int) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), fetchTimeout)
		defer cancel()

		series, err := client.SeriesDetail(ctx, id)
		if err != nil {
			return ErrMsg{Err: err, Context: "loading details"}
		}
		episodes, err := client.Episodes(ctx, id, 0)
		if err != nil {
			return ErrMsg{Err: err, Context: "loading episodes"}
		}
		return SeriesDetailMsg{Series: series, Episodes: episodes}
	}
}

// PlayItemCmd records the item as recently played.
func PlayItemCmd(store domain.SessionStore, item domain.MediaItem) tea.Cmd {
	return func() tea.Msg {
		if store != nil {
			_ = store.AddRecent(item)
		}
		return ItemPlayedMsg{Name: item.Name, StreamURL: item.StreamURL}
	}
}

// ClearStatusCmd clears the status line after a delay.
func ClearStatusCmd() tea.Cmd {
	return tea.Tick(statusClearTime, func(time.Time) tea.Msg {
		return ClearStatusMsg{}
	})
}

// TickCmd drives the spinner animation.
func TickCmd() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}
