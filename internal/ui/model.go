package ui

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"companypicker/internal/domain"
	"companypicker/internal/eventbus"
	"companypicker/internal/logo"
	"companypicker/internal/ui/input"
	inputtypes "companypicker/internal/ui/input/types"
	"companypicker/internal/ui/services/search"
	"companypicker/internal/ui/services/selection"
	"companypicker/internal/ui/views"
)

// Source loads the data the picker starts from
type Source interface {
	LoadCatalog(ctx context.Context) ([]domain.Company, error)
	LoadSelection(ctx context.Context) ([]domain.Company, error)
}

// LogoLoader renders company logos for the terminal
type LogoLoader interface {
	Load(ctx context.Context, url string) (string, error)
	Size() (width, height int)
}

type logoEntry struct {
	status views.LogoStatus
	art    string
}

// Model represents the UI state. The catalog is loaded once; the selection
// service owns the list of selected companies.
type Model struct {
	bus    eventbus.EventBus
	source Source
	logos  LogoLoader
	logger *zap.Logger

	catalog   []domain.Company
	selection *selection.Service
	search    *search.Service
	logoState map[string]logoEntry

	loading   bool
	loadErr   error
	cursor    int
	sync      views.SyncStatus
	showHelp  bool
	inPager   bool
	width     int
	height    int
	spinner   spinner.Model
	help      help.Model
	keys      normalKeys
	pickKeys  pickerKeys
	renderer  *views.Renderer
	input     *input.Handler
	helpOps   *HelpOps
	loadLimit time.Duration
}

// NewModel creates a new UI model. bus and logos may be nil.
func NewModel(bus eventbus.EventBus, source Source, logos LogoLoader, logger *zap.Logger) *Model {
	if logger == nil {
		logger = zap.NewNop()
	}

	logoWidth, logoHeight := 4, 2
	if logos != nil {
		logoWidth, logoHeight = logos.Size()
	}

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	return &Model{
		bus:       bus,
		source:    source,
		logos:     logos,
		logger:    logger,
		catalog:   []domain.Company{},
		selection: selection.NewService(bus),
		search:    search.NewService(),
		logoState: make(map[string]logoEntry),
		loading:   true,
		spinner:   sp,
		help:      help.New(),
		keys:      newNormalKeys(),
		pickKeys:  newPickerKeys(),
		renderer:  views.NewRenderer(logoWidth, logoHeight),
		input:     input.New(),
		helpOps:   NewHelpOps(nil),
		loadLimit: 10 * time.Second,
	}
}

// SetProgram sets the program reference for terminal management
func (m *Model) SetProgram(p *tea.Program) {
	m.helpOps = NewHelpOps(p)
}

// Init fetches the catalog and the persisted selection
func (m *Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.load())
}

// load fetches both lists concurrently. A failure of either discards both,
// so nothing loaded half way is saved back.
func (m *Model) load() tea.Cmd {
	source := m.source
	limit := m.loadLimit
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), limit)
		defer cancel()

		var catalog, selected []domain.Company
		g, gctx := errgroup.WithContext(ctx)
		g.Go(func() error {
			var err error
			catalog, err = source.LoadCatalog(gctx)
			if err != nil {
				return fmt.Errorf("load companies: %w", err)
			}
			return nil
		})
		g.Go(func() error {
			var err error
			selected, err = source.LoadSelection(gctx)
			if err != nil {
				return fmt.Errorf("load selected companies: %w", err)
			}
			return nil
		})
		if err := g.Wait(); err != nil {
			return loadedMsg{err: err}
		}
		return loadedMsg{catalog: catalog, selection: selected}
	}
}

// Update handles messages
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	default:
		inputCmd := m.input.Update(msg)
		model, cmd := m.handleNonKeyboardMsg(msg)
		return model, tea.Batch(inputCmd, cmd)
	}
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.loading {
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		}
		return m, nil
	}

	if m.showHelp {
		m.showHelp = false
		m.help.ShowAll = false
		return m, nil
	}

	ctx := &input.ModelContext{
		CursorIndex: m.cursor,
		Selected:    m.selection.Len(),
		Full:        m.selection.Full(),
		Results:     len(m.search.Results()),
	}

	actions, cmd := m.input.HandleKey(msg, ctx)

	cmds := []tea.Cmd{}
	if cmd != nil {
		cmds = append(cmds, cmd)
	}
	for _, action := range actions {
		if actionCmd := m.processAction(action); actionCmd != nil {
			cmds = append(cmds, actionCmd)
		}
	}
	return m, tea.Batch(cmds...)
}

// processAction processes an action from the input handler
func (m *Model) processAction(action inputtypes.Action) tea.Cmd {
	switch a := action.(type) {
	case inputtypes.NavigateAction:
		m.navigate(a.Direction)

	case inputtypes.PickerNavigateAction:
		switch a.Direction {
		case "up":
			m.search.Move(-1)
		case "down":
			m.search.Move(1)
		case "pageup":
			m.search.Move(-5)
		case "pagedown":
			m.search.Move(5)
		}

	case inputtypes.ChangeModeAction:
		if a.Mode == inputtypes.ModePicker {
			m.search.Reset()
		}

	case inputtypes.UpdateTextAction:
		m.search.SetQuery(a.Text)

	case inputtypes.AddCompanyAction:
		return m.addCurrent()

	case inputtypes.RemoveCompanyAction:
		index := a.Index
		if index < 0 {
			index = m.cursor
		}
		m.removeAt(index)

	case inputtypes.ShowHelpAction:
		if m.helpOps.program != nil {
			return m.fetchHelpPager(renderHelpContent())
		}
		m.showHelp = true
		m.help.ShowAll = true

	case inputtypes.QuitAction:
		return tea.Quit
	}
	return nil
}

func (m *Model) navigate(direction string) {
	last := m.selection.Len() // the add control
	switch direction {
	case "up":
		m.cursor--
	case "down":
		m.cursor++
	case "pageup":
		m.cursor -= 5
	case "pagedown":
		m.cursor += 5
	case "home":
		m.cursor = 0
	case "end":
		m.cursor = last
	}
	m.clampCursor()
}

func (m *Model) clampCursor() {
	if m.cursor > m.selection.Len() {
		m.cursor = m.selection.Len()
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

// addCurrent adds the company highlighted in the picker. Filling the last
// slot closes the picker.
func (m *Model) addCurrent() tea.Cmd {
	c, ok := m.search.Current()
	if !ok {
		return nil
	}
	if !m.selection.Add(c) {
		return nil
	}
	m.logger.Debug("company added", zap.Int64("id", c.ID), zap.String("name", c.Name))
	m.sync = views.SyncSaving

	if m.selection.Full() {
		m.input.Reset()
		m.cursor = m.selection.Len() - 1
	} else if m.cursor >= m.selection.Len()-1 {
		// keep the cursor on the add control
		m.cursor = m.selection.Len()
	}
	return m.loadLogos()
}

func (m *Model) removeAt(index int) {
	c, ok := m.selection.At(index)
	if !ok {
		return
	}
	if !m.selection.Remove(c.ID) {
		return
	}
	m.logger.Debug("company removed", zap.Int64("id", c.ID), zap.String("name", c.Name))
	m.sync = views.SyncSaving
	m.clampCursor()
}

// loadLogos starts a download for every selected logo not seen before
func (m *Model) loadLogos() tea.Cmd {
	var cmds []tea.Cmd
	for _, c := range m.selection.Items() {
		if _, seen := m.logoState[c.Logo]; seen {
			continue
		}
		if m.logos == nil {
			m.logoState[c.Logo] = logoEntry{status: views.LogoFailed}
			continue
		}
		m.logoState[c.Logo] = logoEntry{status: views.LogoPending}
		cmds = append(cmds, m.fetchLogo(c.Logo))
	}
	return tea.Batch(cmds...)
}

func (m *Model) fetchLogo(url string) tea.Cmd {
	loader := m.logos
	return func() tea.Msg {
		art, err := loader.Load(context.Background(), url)
		return logoMsg{url: url, art: art, err: err}
	}
}

// fetchHelpPager returns a command that shows help using ov pager
func (m *Model) fetchHelpPager(helpContent string) tea.Cmd {
	ops := m.helpOps
	return func() tea.Msg {
		ops.program.Send(pauseRenderingMsg{})
		err := ops.ShowHelpInPager(helpContent)
		ops.program.Send(resumeRenderingMsg{})
		return helpPagerMsg{err: err}
	}
}

func (m *Model) handleNonKeyboardMsg(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case spinner.TickMsg:
		if !m.loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case loadedMsg:
		m.loading = false
		if msg.err != nil {
			m.loadErr = msg.err
			m.logger.Error("initial load failed", zap.Error(msg.err))
			return m, nil
		}
		m.catalog = domain.Clone(msg.catalog)
		m.search.SetCatalog(m.catalog)
		m.selection.Replace(msg.selection)
		m.clampCursor()
		m.logger.Info("companies loaded",
			zap.Int("catalog", len(m.catalog)),
			zap.Int("selected", m.selection.Len()))
		if m.bus != nil {
			m.bus.Publish(eventbus.CatalogLoadedEvent{Count: len(m.catalog)})
			m.bus.Publish(eventbus.SelectionLoadedEvent{Count: m.selection.Len()})
		}
		return m, m.loadLogos()

	case logoMsg:
		if msg.err != nil {
			m.logoState[msg.url] = logoEntry{status: views.LogoFailed}
		} else {
			m.logoState[msg.url] = logoEntry{status: views.LogoReady, art: msg.art}
		}
		return m, nil

	case EventMsg:
		m.handleEvent(msg.Event)
		return m, nil

	case helpPagerMsg:
		if msg.err != nil {
			m.logger.Warn("help pager failed", zap.Error(msg.err))
			m.showHelp = true
			m.help.ShowAll = true
		}
		return m, nil

	case pauseRenderingMsg:
		m.inPager = true
		return m, nil

	case resumeRenderingMsg:
		m.inPager = false
		return m, nil
	}
	return m, nil
}

// handleEvent applies save results. Results for revisions older than the
// current selection are stale and ignored.
func (m *Model) handleEvent(event eventbus.DomainEvent) {
	switch e := event.(type) {
	case eventbus.SelectionSavedEvent:
		if e.Revision < m.selection.Revision() {
			return
		}
		m.sync = views.SyncSaved
	case eventbus.SelectionSaveFailedEvent:
		if e.Revision < m.selection.Revision() {
			return
		}
		m.sync = views.SyncIdle
	}
}

// View renders the UI
func (m *Model) View() string {
	if m.inPager {
		return ""
	}
	return m.renderer.Render(m.viewState())
}

func (m *Model) viewState() views.ViewState {
	items := m.selection.Items()
	rows := make([]views.CompanyRow, len(items))
	selectedIDs := make(map[int64]bool, len(items))
	for i, c := range items {
		entry := m.logoState[c.Logo]
		rows[i] = views.CompanyRow{
			ID:         c.ID,
			Name:       c.Name,
			Logo:       entry.art,
			LogoStatus: entry.status,
		}
		selectedIDs[c.ID] = true
	}

	state := views.ViewState{
		Width:       m.width,
		Height:      m.height,
		Loading:     m.loading,
		Spinner:     m.spinner.View(),
		Rows:        rows,
		Cursor:      m.cursor,
		MaxSelected: domain.MaxSelected,
		AddEnabled:  !m.loading && !m.selection.Full(),
		SelectedIDs: selectedIDs,
		Sync:        m.sync,
	}
	if m.loadErr != nil {
		state.LoadError = "Failed to load companies"
	}

	pickerOpen := m.input.CurrentMode() == inputtypes.ModePicker
	if pickerOpen {
		state.PickerOpen = true
		state.PickerQuery = m.search.Query()
		state.PickerResults = m.search.Results()
		state.PickerCursor = m.search.Cursor()
		if ti := m.input.TextInput(); ti != nil {
			state.PickerInput = ti.View()
		}
		state.Help = m.help.View(m.pickKeys)
	} else {
		state.Help = m.help.View(m.keys)
	}
	return state
}

// Selected returns the current selection
func (m *Model) Selected() []domain.Company {
	return m.selection.Items()
}

// PickerOpen reports whether the company menu is open
func (m *Model) PickerOpen() bool {
	return m.input.CurrentMode() == inputtypes.ModePicker
}

// Loaded reports whether the initial load has finished
func (m *Model) Loaded() bool {
	return !m.loading
}

var _ LogoLoader = (*logo.Loader)(nil)
