package ui

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/stepx/internal/library"
	"github.com/desertthunder/stepx/internal/models"
	"github.com/desertthunder/stepx/internal/repositories"
	"github.com/desertthunder/stepx/internal/tasks"
)

// ViewState represents the current view in the TUI.
type ViewState int

const (
	SearchView ViewState = iota
	CollectionsView
	CollectionDetailView
	DanceDetailView
	AccountView
)

// Model represents the TUI application state.
type Model struct {
	ctx     context.Context
	view    ViewState
	engine  *tasks.DanceEngine
	store   *library.Store
	session *tasks.SessionManager
	queries *repositories.RecentQueryRepository

	width  int
	height int

	searchInput   textinput.Model
	searchFocused bool
	resultsList   list.Model
	results       []models.Dance
	recent        models.RecentQueries
	searching     bool
	searched      bool
	lastQuery     string

	collectionsList list.Model
	collectionName  string
	collectionList  list.Model

	detail       models.Dance
	stepsLoaded  bool
	detailReturn ViewState
	snapshotChan chan tasks.DanceSnapshot

	// generation discards async results that arrive after a newer request.
	generation int

	nameInput     textinput.Model
	namingActive  bool
	confirmDelete string

	status string
	err    error
	help   help.Model
	keys   keyMap
}

type searchResultsMsg struct {
	generation int
	dances     []models.Dance
	err        error
}

type danceSnapshotMsg struct {
	generation int
	snapshot   tasks.DanceSnapshot
	closed     bool
}

type syncDoneMsg struct {
	action string
	err    error
}

// NewModel creates a new TUI model with the provided dependencies.
// The query repository may be nil; recent searches are then session-only.
func NewModel(ctx context.Context, engine *tasks.DanceEngine, store *library.Store, session *tasks.SessionManager, queries *repositories.RecentQueryRepository) *Model {
	searchInput := textinput.New()
	searchInput.Placeholder = "Search dances..."
	searchInput.CharLimit = 100
	searchInput.Focus()

	nameInput := textinput.New()
	nameInput.Placeholder = "Collection name"
	nameInput.CharLimit = 60

	resultsList := list.New(nil, list.NewDefaultDelegate(), 0, 0)
	resultsList.Title = "Results"

	m := &Model{
		ctx:             ctx,
		view:            SearchView,
		engine:          engine,
		store:           store,
		session:         session,
		queries:         queries,
		searchInput:     searchInput,
		searchFocused:   true,
		resultsList:     resultsList,
		collectionsList: list.New(nil, list.NewDefaultDelegate(), 0, 0),
		collectionList:  list.New(nil, list.NewDefaultDelegate(), 0, 0),
		nameInput:       nameInput,
		help:            help.New(),
		keys:            newKeyMap(),
	}

	if queries != nil {
		if recent, err := queries.Load(); err == nil {
			m.recent = recent
		}
	}

	return m
}

func (m *Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles incoming messages and updates the model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resultsList.SetSize(msg.Width-4, msg.Height-10)
		m.collectionsList.SetSize(msg.Width-4, msg.Height-8)
		m.collectionList.SetSize(msg.Width-4, msg.Height-8)
		return m, nil

	case tea.KeyMsg:
		switch m.view {
		case SearchView:
			return m.handleSearchKeys(msg)
		case CollectionsView:
			return m.handleCollectionsKeys(msg)
		case CollectionDetailView:
			return m.handleCollectionDetailKeys(msg)
		case DanceDetailView:
			return m.handleDanceDetailKeys(msg)
		case AccountView:
			return m.handleAccountKeys(msg)
		}

	case searchResultsMsg:
		if msg.generation != m.generation {
			return m, nil
		}
		m.searching = false
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.err = nil
		m.searched = true
		m.results = msg.dances
		items := make([]list.Item, len(msg.dances))
		for i, d := range msg.dances {
			items[i] = danceItem{dance: d}
		}
		m.resultsList = list.New(items, list.NewDefaultDelegate(), 0, 0)
		m.resultsList.Title = "Results"
		m.resultsList.SetSize(m.width-4, m.height-10)
		return m, nil

	case danceSnapshotMsg:
		if msg.generation != m.generation {
			return m, nil
		}
		if msg.closed {
			m.stepsLoaded = true
			m.snapshotChan = nil
			return m, nil
		}
		m.detail = msg.snapshot.Dance
		if msg.snapshot.StepsLoaded {
			m.stepsLoaded = true
		}
		return m, m.waitForSnapshot(msg.generation)

	case syncDoneMsg:
		if msg.err != nil {
			m.status = styles.err.Render(fmt.Sprintf("%s failed: %v", msg.action, msg.err))
		} else {
			m.status = styles.ok.Render(fmt.Sprintf("%s complete", msg.action))
		}
		return m, nil
	}

	return m.updateLists(msg)
}

// View renders the UI based on the current view state.
func (m *Model) View() string {
	switch m.view {
	case SearchView:
		return m.renderSearch()
	case CollectionsView:
		return m.renderCollections()
	case CollectionDetailView:
		return m.renderCollectionDetail()
	case DanceDetailView:
		return m.renderDanceDetail()
	case AccountView:
		return m.renderAccount()
	default:
		return ""
	}
}

func (m *Model) handleSearchKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.searchFocused {
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "esc":
			m.searchFocused = false
			m.searchInput.Blur()
			return m, nil
		case "enter":
			query := m.searchInput.Value()
			m.searchFocused = false
			m.searchInput.Blur()
			return m, m.runSearch(query)
		case "tab":
			return m.switchTo(CollectionsView)
		}

		var cmd tea.Cmd
		m.searchInput, cmd = m.searchInput.Update(msg)
		return m, cmd
	}

	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "/":
		m.searchFocused = true
		return m, m.searchInput.Focus()
	case "tab":
		return m.switchTo(CollectionsView)
	case "enter":
		if selected, ok := m.resultsList.SelectedItem().(danceItem); ok {
			return m, m.openDance(selected.dance, SearchView)
		}
	}

	var cmd tea.Cmd
	m.resultsList, cmd = m.resultsList.Update(msg)
	return m, cmd
}

func (m *Model) handleCollectionsKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// delete confirmation traps all input until answered
	if m.confirmDelete != "" {
		switch msg.String() {
		case "y":
			name := m.confirmDelete
			m.confirmDelete = ""
			if err := m.store.Delete(name); err != nil {
				m.status = styles.err.Render(err.Error())
			} else {
				m.status = styles.ok.Render(fmt.Sprintf("Deleted %q", name))
			}
			m.refreshCollections()
			return m, nil
		case "n", "esc":
			m.confirmDelete = ""
			return m, nil
		}
		return m, nil
	}

	if m.namingActive {
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "esc":
			m.namingActive = false
			m.nameInput.Reset()
			return m, nil
		case "enter":
			name := m.nameInput.Value()
			m.namingActive = false
			m.nameInput.Reset()
			if err := m.store.Create(name); err != nil {
				m.status = styles.err.Render(err.Error())
			} else {
				m.status = styles.ok.Render(fmt.Sprintf("Created %q", models.FoldName(name)))
			}
			m.refreshCollections()
			return m, nil
		}

		var cmd tea.Cmd
		m.nameInput, cmd = m.nameInput.Update(msg)
		return m, cmd
	}

	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "/":
		return m.switchTo(SearchView)
	case "tab":
		return m.switchTo(AccountView)
	case "n":
		m.namingActive = true
		return m, m.nameInput.Focus()
	case "d":
		if selected, ok := m.collectionsList.SelectedItem().(collectionItem); ok {
			m.confirmDelete = selected.name
		}
		return m, nil
	case "enter":
		if selected, ok := m.collectionsList.SelectedItem().(collectionItem); ok {
			m.collectionName = selected.name
			m.refreshCollectionDetail()
			m.view = CollectionDetailView
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.collectionsList, cmd = m.collectionsList.Update(msg)
	return m, cmd
}

func (m *Model) handleCollectionDetailKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// deleting the collection being viewed returns to the collections list
	if m.confirmDelete != "" {
		switch msg.String() {
		case "y":
			name := m.confirmDelete
			m.confirmDelete = ""
			if err := m.store.Delete(name); err != nil {
				m.status = styles.err.Render(err.Error())
				return m, nil
			}
			m.status = styles.ok.Render(fmt.Sprintf("Deleted %q", name))
			m.refreshCollections()
			m.view = CollectionsView
		case "n", "esc":
			m.confirmDelete = ""
		}
		return m, nil
	}

	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "esc":
		m.refreshCollections()
		m.view = CollectionsView
		return m, nil
	case "d":
		m.confirmDelete = m.collectionName
		return m, nil
	case "x":
		if selected, ok := m.collectionList.SelectedItem().(danceItem); ok {
			if _, err := m.store.Remove(selected.dance.ID, m.collectionName); err != nil {
				m.status = styles.err.Render(err.Error())
			}
			m.refreshCollectionDetail()
		}
		return m, nil
	case "enter":
		if selected, ok := m.collectionList.SelectedItem().(danceItem); ok {
			return m, m.openDance(selected.dance, CollectionDetailView)
		}
	}

	var cmd tea.Cmd
	m.collectionList, cmd = m.collectionList.Update(msg)
	return m, cmd
}

func (m *Model) handleDanceDetailKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	pressed := msg.String()

	switch pressed {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "esc":
		m.generation++ // late snapshots for this dance are now stale
		m.snapshotChan = nil
		if m.detailReturn == CollectionDetailView {
			m.refreshCollectionDetail()
		}
		m.view = m.detailReturn
		return m, nil
	}

	// digits toggle membership in the numbered collection
	if n, err := strconv.Atoi(pressed); err == nil && n >= 1 {
		names := m.store.Names()
		if n <= len(names) {
			m.toggleMembership(names[n-1])
		}
		return m, nil
	}

	return m, nil
}

func (m *Model) handleAccountKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "esc":
		return m.switchTo(SearchView)
	case "tab":
		return m.switchTo(SearchView)
	case "s":
		return m, m.runSync("Push", func() error { return m.session.Push(m.ctx, nil) })
	case "p":
		return m, m.runSync("Pull", func() error { return m.session.Pull(m.ctx, nil) })
	}
	return m, nil
}

func (m *Model) switchTo(view ViewState) (tea.Model, tea.Cmd) {
	m.status = ""
	m.view = view

	switch view {
	case CollectionsView:
		m.refreshCollections()
	case SearchView:
		if len(m.results) == 0 && !m.searchFocused {
			m.searchFocused = true
			return m, m.searchInput.Focus()
		}
	}
	return m, nil
}

func (m *Model) toggleMembership(name string) {
	if m.store.Snapshot().Contains(name, m.detail.ID) {
		if _, err := m.store.Remove(m.detail.ID, name); err != nil {
			m.status = styles.err.Render(err.Error())
			return
		}
		m.status = styles.warn.Render(fmt.Sprintf("Removed from %q", name))
		return
	}

	if _, err := m.store.Add(m.detail, name); err != nil {
		m.status = styles.err.Render(err.Error())
		return
	}
	m.status = styles.ok.Render(fmt.Sprintf("Added to %q", name))
}

func (m *Model) updateLists(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.view {
	case SearchView:
		if m.searchFocused {
			m.searchInput, cmd = m.searchInput.Update(msg)
		} else {
			m.resultsList, cmd = m.resultsList.Update(msg)
		}
	case CollectionsView:
		m.collectionsList, cmd = m.collectionsList.Update(msg)
	case CollectionDetailView:
		m.collectionList, cmd = m.collectionList.Update(msg)
	}
	return m, cmd
}

func (m *Model) refreshCollections() {
	names := m.store.Names()
	items := make([]list.Item, len(names))
	for i, name := range names {
		dances, _ := m.store.Get(name)
		items[i] = collectionItem{name: name, count: len(dances)}
	}
	m.collectionsList = list.New(items, list.NewDefaultDelegate(), 0, 0)
	m.collectionsList.Title = "Collections"
	m.collectionsList.SetSize(m.width-4, m.height-8)
}

func (m *Model) refreshCollectionDetail() {
	dances, _ := m.store.Get(m.collectionName)
	items := make([]list.Item, len(dances))
	for i, d := range dances {
		items[i] = danceItem{dance: d}
	}
	m.collectionList = list.New(items, list.NewDefaultDelegate(), 0, 0)
	m.collectionList.Title = m.collectionName
	m.collectionList.SetSize(m.width-4, m.height-8)
}

func (m *Model) runSearch(query string) tea.Cmd {
	if strings.TrimSpace(query) == "" {
		return nil
	}

	m.generation++
	generation := m.generation
	m.searching = true
	m.lastQuery = query
	m.recent = m.recent.Push(query)

	return func() tea.Msg {
		if m.queries != nil {
			// the query is recorded whether or not the search succeeds
			_, _ = m.queries.Record(query)
		}
		dances, err := m.engine.Search(m.ctx, nil, query)
		return searchResultsMsg{generation: generation, dances: dances, err: err}
	}
}

func (m *Model) openDance(dance models.Dance, returnTo ViewState) tea.Cmd {
	m.generation++
	generation := m.generation
	m.detail = models.Normalize(dance)
	m.stepsLoaded = false
	m.detailReturn = returnTo
	m.view = DanceDetailView

	ch := make(chan tasks.DanceSnapshot, 3)
	m.snapshotChan = ch

	go func() {
		_, _ = m.engine.LoadFull(m.ctx, ch, dance)
	}()

	return m.waitForSnapshot(generation)
}

func (m *Model) waitForSnapshot(generation int) tea.Cmd {
	ch := m.snapshotChan
	return func() tea.Msg {
		if ch == nil {
			return danceSnapshotMsg{generation: generation, closed: true}
		}
		snap, ok := <-ch
		if !ok {
			return danceSnapshotMsg{generation: generation, closed: true}
		}
		return danceSnapshotMsg{generation: generation, snapshot: snap}
	}
}

func (m *Model) runSync(action string, fn func() error) tea.Cmd {
	m.status = fmt.Sprintf("%s in progress...", action)
	return func() tea.Msg {
		return syncDoneMsg{action: action, err: fn()}
	}
}

func (m *Model) renderSearch() string {
	title := styles.title.Render("Search")

	var body string
	switch {
	case m.searching:
		body = "Searching..."
	case m.err != nil:
		body = styles.err.Render(fmt.Sprintf("Search failed: %v", m.err))
	case len(m.results) > 0:
		body = m.resultsList.View()
	case len(m.recent) > 0 && m.searchFocused:
		body = styles.help.Render("Recent: " + strings.Join(m.recent, ", "))
	case m.searched:
		body = styles.help.Render(fmt.Sprintf("No dances found for %q.", m.lastQuery))
	default:
		body = styles.help.Render("Type a title, artist, or song and press enter.")
	}

	helpKeys := []key.Binding{m.keys.enter, m.keys.search, m.keys.tab, m.keys.quit}
	helpView := m.help.ShortHelpView(helpKeys)

	return fmt.Sprintf("%s\n%s\n\n%s\n\n%s", title, m.searchInput.View(), body, helpView)
}

func (m *Model) renderCollections() string {
	if m.confirmDelete != "" {
		return m.renderConfirmDelete()
	}

	if m.namingActive {
		title := styles.title.Render("New Collection")
		return fmt.Sprintf("%s\n%s\n\n%s", title, m.nameInput.View(),
			m.help.ShortHelpView([]key.Binding{m.keys.enter, m.keys.back}))
	}

	helpKeys := []key.Binding{m.keys.enter, m.keys.create, m.keys.delete, m.keys.tab, m.keys.quit}
	helpView := m.help.ShortHelpView(helpKeys)
	return fmt.Sprintf("%s\n%s\n\n%s", m.collectionsList.View(), m.statusLine(), helpView)
}

func (m *Model) renderCollectionDetail() string {
	if m.confirmDelete != "" {
		return m.renderConfirmDelete()
	}

	helpKeys := []key.Binding{m.keys.enter, m.keys.remove, m.keys.delete, m.keys.back, m.keys.quit}
	helpView := m.help.ShortHelpView(helpKeys)
	return fmt.Sprintf("%s\n%s\n\n%s", m.collectionList.View(), m.statusLine(), helpView)
}

func (m *Model) renderConfirmDelete() string {
	title := styles.title.Render(fmt.Sprintf("Delete %q?", m.confirmDelete))
	prompt := "This cannot be undone."
	helpView := m.help.ShortHelpView([]key.Binding{m.keys.yes, m.keys.no})
	return fmt.Sprintf("%s\n%s\n\n%s", title, prompt, helpView)
}

func (m *Model) renderDanceDetail() string {
	d := m.detail

	title := styles.title.Render(d.Title)
	info := fmt.Sprintf("%s • %d counts • %d walls\n%s - %s",
		tierBadge(d), d.Counts, d.WallCount, d.SongArtist, d.SongTitle)
	if d.StepSheetURL != "" {
		info += fmt.Sprintf("\n%s", styles.help.Render(d.StepSheetURL))
	}

	var steps string
	switch {
	case len(d.StepSheet) > 0:
		steps = renderStepSheet(d.StepSheet)
	case m.stepsLoaded:
		steps = styles.help.Render("step sheet not available")
	default:
		steps = styles.help.Render("loading steps...")
	}

	memberships := m.renderMemberships()
	helpView := m.help.ShortHelpView([]key.Binding{m.keys.back, m.keys.quit})

	return fmt.Sprintf("%s\n%s\n\n%s\n\n%s\n%s\n\n%s", title, info, steps, memberships, m.statusLine(), helpView)
}

func (m *Model) renderMemberships() string {
	names := m.store.Names()
	set := m.store.Snapshot()

	var b strings.Builder
	b.WriteString(styles.help.Render("Toggle membership:"))
	for i, name := range names {
		marker := " "
		if set.Contains(name, m.detail.ID) {
			marker = "✓"
		}
		b.WriteString(fmt.Sprintf("\n  [%d] %s %s", i+1, marker, name))
	}
	return b.String()
}

func renderStepSheet(rows []models.StepRow) string {
	var b strings.Builder
	for _, row := range rows {
		switch {
		case row.Heading != "":
			b.WriteString(styles.warn.Render(row.Heading))
			b.WriteString("\n")
		case row.Text != "":
			if row.Counts != "" {
				b.WriteString(fmt.Sprintf("  %s  %s\n", styles.help.Render(row.Counts), row.Text))
			} else {
				b.WriteString(fmt.Sprintf("  %s\n", row.Text))
			}
		case row.Note != "":
			b.WriteString(styles.help.Render("  " + row.Note))
			b.WriteString("\n")
		}
	}
	return strings.TrimRight(b.String(), "\n")
}

func (m *Model) renderAccount() string {
	title := styles.title.Render("Account")

	var body string
	identity := m.session.Identity()
	if identity == nil {
		body = "Signed out. Use `stepx account login` to sign in."
	} else {
		body = fmt.Sprintf("Signed in as %s", identity.Email)
		if profile := m.session.Profile(); profile != nil && profile.Username != "" {
			body += fmt.Sprintf(" (%s)", profile.Username)
		}
		body += fmt.Sprintf("\nState: %s", m.session.State())
	}

	helpKeys := []key.Binding{m.keys.syncNow, m.keys.pull, m.keys.back, m.keys.quit}
	helpView := m.help.ShortHelpView(helpKeys)

	return fmt.Sprintf("%s\n%s\n%s\n\n%s", title, body, m.statusLine(), helpView)
}

func (m *Model) statusLine() string {
	if m.status == "" {
		return ""
	}
	return m.status
}
