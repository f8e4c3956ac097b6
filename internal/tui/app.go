package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/oweller/ipteav/internal/catalog"
	"github.com/oweller/ipteav/internal/domain"
	"github.com/oweller/ipteav/internal/syncstate"
	"github.com/oweller/ipteav/internal/tui/components"
)

// Model is the main Bubble Tea model for the application
type Model struct {
	// Services
	nav     *catalog.Navigator
	cache   *catalog.Cache
	tracker *syncstate.Tracker
	client  domain.CatalogClient
	store   domain.SessionStore

	// UI components
	keys   KeyMap
	column *components.Column

	// Sync display state
	session     domain.SyncSession
	syncChanged <-chan struct{}

	// Inspector overlay, nil when closed
	inspector *inspectorState

	// Transient status line
	statusMsg   string
	statusIsErr bool

	width        int
	height       int
	ready        bool
	loading      bool
	spinnerFrame int
}

// inspectorState holds the detail pane contents for one item.
type inspectorState struct {
	vod      *domain.VodDetail
	series   *domain.Series
	episodes []domain.Episode
}

// NewModel wires the TUI to the navigation and sync services.
func NewModel(
	nav *catalog.Navigator,
	cache *catalog.Cache,
	tracker *syncstate.Tracker,
	client domain.CatalogClient,
	store domain.SessionStore,
) Model {
	changed, _ := tracker.SubscribeChanged()
	return Model{
		nav:         nav,
		cache:       cache,
		tracker:     tracker,
		client:      client,
		store:       store,
		keys:        DefaultKeyMap(),
		column:      components.NewColumn("All"),
		session:     tracker.Session(),
		syncChanged: changed,
	}
}

// Init starts the initial catalog fetch and the sync subscription.
func (m Model) Init() tea.Cmd {
	m.column.SetLoading(true, "Loading…")
	return tea.Batch(
		InitCatalogCmd(m.nav),
		WaitSyncChangedCmd(m.syncChanged),
		TickCmd(),
	)
}

// Update handles all messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		m.column.SetSize(m.width, m.height-chromeHeight())
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case NavChangedMsg:
		m.loading = false
		m.rebuildColumn()
		return m, nil

	case ItemsAppendedMsg:
		m.loading = false
		m.rebuildColumn()
		m.statusMsg = fmt.Sprintf("Loaded %d more", msg.Added)
		m.statusIsErr = false
		return m, ClearStatusCmd()

	case SyncChangedMsg:
		m.session = m.tracker.Session()
		// A completed import resets navigation to the root behind our
		// back; mirror the new stack in the listing. Skip while a manual
		// fetch is in flight, its NavChangedMsg will rebuild.
		if !m.loading {
			m.rebuildColumn()
		}
		return m, WaitSyncChangedCmd(m.syncChanged)

	case RefreshRequestedMsg:
		m.statusMsg = "Catalog refresh requested"
		m.statusIsErr = false
		return m, ClearStatusCmd()

	case ItemPlayedMsg:
		m.statusMsg = "Playing " + msg.Name
		m.statusIsErr = false
		return m, ClearStatusCmd()

	case ErrMsg:
		m.loading = false
		m.column.SetLoading(false, "")
		m.statusMsg = msg.Error()
		m.statusIsErr = true
		return m, ClearStatusCmd()

	case VodDetailMsg:
		m.inspector = &inspectorState{vod: &msg.Detail}
		return m, nil

	case SeriesDetailMsg:
		m.inspector = &inspectorState{series: &msg.Series, episodes: msg.Episodes}
		return m, nil

	case ClearStatusMsg:
		m.statusMsg = ""
		m.statusIsErr = false
		return m, nil

	case TickMsg:
		m.spinnerFrame++
		m.column.SetSpinnerFrame(m.spinnerFrame)
		return m, TickCmd()
	}

	return m, nil
}

// handleKey routes key presses.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Filter mode captures printable keys for the query; only the
	// literal control keys keep their meaning.
	if m.column.FilterActive() {
		switch msg.String() {
		case "esc":
			m.column.StopFilter()
			return m, nil
		case "enter":
			m.column.StopFilter()
			return m.selectCurrent()
		case "up":
			m.column.CursorUp()
			return m, nil
		case "down":
			m.column.CursorDown()
			return m, nil
		case "ctrl+c":
			m.saveSession()
			return m, tea.Quit
		default:
			input := m.column.FilterInput()
			var cmd tea.Cmd
			*input, cmd = input.Update(msg)
			m.column.ApplyFilter()
			return m, cmd
		}
	}

	// An open inspector swallows everything except close and quit.
	if m.inspector != nil {
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.saveSession()
			return m, tea.Quit
		case key.Matches(msg, m.keys.Escape), key.Matches(msg, m.keys.Back), key.Matches(msg, m.keys.Info):
			m.inspector = nil
			return m, nil
		}
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		m.saveSession()
		return m, tea.Quit

	case key.Matches(msg, m.keys.Up):
		m.column.CursorUp()
		return m, nil

	case key.Matches(msg, m.keys.Down):
		m.column.CursorDown()
		return m, nil

	case key.Matches(msg, m.keys.Home):
		m.column.CursorToStart()
		return m, nil

	case key.Matches(msg, m.keys.End):
		m.column.CursorToEnd()
		return m, nil

	case key.Matches(msg, m.keys.Enter):
		return m.selectCurrent()

	case key.Matches(msg, m.keys.Back):
		m.startLoading()
		return m, GoBackCmd(m.nav)

	case key.Matches(msg, m.keys.Root):
		m.startLoading()
		return m, GoToRootCmd(m.nav)

	case key.Matches(msg, m.keys.TabLive):
		return m.changeTab(domain.ContentTypeLive)
	case key.Matches(msg, m.keys.TabVOD):
		return m.changeTab(domain.ContentTypeVOD)
	case key.Matches(msg, m.keys.TabSeries):
		return m.changeTab(domain.ContentTypeSeries)
	case key.Matches(msg, m.keys.TabRadio):
		return m.changeTab(domain.ContentTypeRadio)

	case key.Matches(msg, m.keys.LoadMore):
		if m.nav.ActiveLevel().Leaf && m.cache.HasMore() {
			m.startLoading()
			return m, LoadMoreCmd(m.nav, m.cache)
		}
		return m, nil

	case key.Matches(msg, m.keys.Info):
		return m.inspectCurrent()

	case key.Matches(msg, m.keys.Refresh):
		return m, TriggerRefreshCmd(m.client)

	case key.Matches(msg, m.keys.Filter):
		m.column.StartFilter()
		return m, nil
	}

	return m, nil
}

// selectCurrent acts on the row under the cursor: drill into catalog
// nodes, play leaf items.
func (m Model) selectCurrent() (tea.Model, tea.Cmd) {
	row, ok := m.column.SelectedRow()
	if !ok {
		return m, nil
	}

	active := m.nav.ActiveLevel()
	if active.Leaf {
		items := m.cache.Items()
		if row.Index >= len(items) {
			return m, nil
		}
		return m, PlayItemCmd(m.store, items[row.Index])
	}

	node, ok := m.nodeAt(active, row.Index)
	if !ok {
		return m, nil
	}
	m.startLoading()
	return m, SelectNodeCmd(m.nav, node)
}

// nodeAt resolves a row index to a selectable node for the active level.
func (m Model) nodeAt(active catalog.Level, index int) (catalog.Node, bool) {
	switch active.Kind {
	case catalog.LevelRoot:
		if m.cache.Scheme() == catalog.SchemePrefixes {
			prefixes := m.cache.TopLevelPrefixes()
			if index >= len(prefixes) {
				return catalog.Node{}, false
			}
			return catalog.PrefixNode(prefixes[index]), true
		}
		categories := m.cache.TopLevelCategories()
		if index >= len(categories) {
			return catalog.Node{}, false
		}
		return catalog.CategoryNode(categories[index]), true

	default:
		groups, ok := m.cache.Children(active.Key)
		if !ok || index >= len(groups) {
			return catalog.Node{}, false
		}
		return catalog.GroupNode(groups[index]), true
	}
}

// inspectCurrent opens the detail pane for the selected leaf item.
// Only VOD and series entries carry extended metadata.
func (m Model) inspectCurrent() (tea.Model, tea.Cmd) {
	if !m.nav.ActiveLevel().Leaf {
		return m, nil
	}
	row, ok := m.column.SelectedRow()
	if !ok {
		return m, nil
	}
	items := m.cache.Items()
	if row.Index >= len(items) {
		return m, nil
	}

	item := items[row.Index]
	switch item.Type {
	case domain.ContentTypeVOD:
		return m, FetchVodDetailCmd(m.client, item.ID)
	case domain.ContentTypeSeries:
		return m, FetchSeriesDetailCmd(m.client, item.ID)
	default:
		return m, nil
	}
}

func (m Model) changeTab(t domain.ContentType) (tea.Model, tea.Cmd) {
	if t == m.nav.ContentType() {
		return m, nil
	}
	m.startLoading()
	return m, ChangeContentTypeCmd(m.nav, t)
}

// startLoading flags the column as loading until the next nav message.
func (m *Model) startLoading() {
	m.loading = true
	_, phase := m.cache.Loading()
	if phase == "" {
		phase = "Loading…"
	}
	m.column.SetLoading(true, phase)
}

// rebuildColumn regenerates the visible rows from the cache for the
// active breadcrumb level.
func (m *Model) rebuildColumn() {
	active := m.nav.ActiveLevel()
	m.column.SetLoading(false, "")
	m.column.SetTitle(levelTitle(active, m.nav.ContentType()))

	switch {
	case active.Leaf:
		items := m.cache.Items()
		rows := make([]components.Row, 0, len(items))
		for i, item := range items {
			rows = append(rows, components.Row{Title: item.Name, Index: i})
		}
		m.column.SetRows(rows)

	case active.Kind == catalog.LevelRoot:
		if m.cache.Scheme() == catalog.SchemePrefixes {
			prefixes := m.cache.TopLevelPrefixes()
			rows := make([]components.Row, 0, len(prefixes))
			for i, p := range prefixes {
				rows = append(rows, components.Row{
					Title: p.Prefix,
					Desc:  fmt.Sprintf("%d groups · %d items", p.GroupCount, p.TotalItemCount),
					Index: i,
				})
			}
			m.column.SetRows(rows)
			return
		}
		categories := m.cache.TopLevelCategories()
		rows := make([]components.Row, 0, len(categories))
		for i, c := range categories {
			rows = append(rows, components.Row{
				Title: c.OriginalName,
				Desc:  fmt.Sprintf("%d items", c.ItemCount),
				Index: i,
			})
		}
		m.column.SetRows(rows)

	default:
		groups, _ := m.cache.Children(active.Key)
		rows := make([]components.Row, 0, len(groups))
		for i, g := range groups {
			rows = append(rows, components.Row{
				Title: g.Title(),
				Desc:  fmt.Sprintf("%d items", g.ItemCount),
				Index: i,
			})
		}
		m.column.SetRows(rows)
	}
}

// saveSession persists the UI state worth restoring next run.
func (m Model) saveSession() {
	if m.store == nil {
		return
	}
	_ = m.store.SaveSession(domain.UISession{
		ContentType: m.nav.ContentType(),
		Scheme:      string(m.cache.Scheme()),
	})
}

func levelTitle(level catalog.Level, t domain.ContentType) string {
	if level.Kind == catalog.LevelRoot {
		return tabLabel(t)
	}
	return level.Label
}
