// Package ui is the Bubble Tea front end of the repository search screen.
// It renders store snapshots and turns key presses into store actions; all
// screen state lives in the store.
package ui

import (
	"context"
	"fmt"
	"slices"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"reposearch/internal/features/detail"
	"reposearch/internal/features/repolist"
	"reposearch/internal/features/row"
	"reposearch/internal/navigation"
	"reposearch/internal/store"
	"reposearch/internal/ui/input"
	inputtypes "reposearch/internal/ui/input/types"
	"reposearch/internal/ui/logic"
	"reposearch/internal/ui/views"
)

// chrome is the number of lines around the result list (padding, title,
// search line, footer)
const chrome = 9

// Model represents the UI state
type Model struct {
	store       *store.Store[repolist.State]
	updates     <-chan repolist.State
	unsubscribe func()
	state       repolist.State
	rowIDs      []int64

	width    int
	height   int
	nav      *logic.Navigator
	spinning bool
	status   string

	help      help.Model
	keys      KeyMap
	spinner   spinner.Model
	detail    viewport.Model
	detailKey string

	inputHandler *input.Handler
	renderer     *views.Renderer
	helpRenderer *HelpRenderer
	pager        *Pager
}

// NewModel creates a UI model driven by s. Pager may be nil, in which case
// help is not available.
func NewModel(s *store.Store[repolist.State], pager *Pager) *Model {
	updates, unsubscribe := s.Subscribe()
	return &Model{
		store:        s,
		updates:      updates,
		unsubscribe:  unsubscribe,
		state:        s.State(),
		nav:          logic.NewNavigator(),
		help:         help.New(),
		keys:         DefaultKeyMap(),
		spinner:      spinner.New(spinner.WithSpinner(spinner.Dot)),
		detail:       viewport.New(0, 0),
		inputHandler: input.New(),
		renderer:     views.NewRenderer(),
		helpRenderer: NewHelpRenderer(),
		pager:        pager,
	}
}

// SetProgram sets the program reference for terminal management
func (m *Model) SetProgram(p *tea.Program) {
	if m.pager != nil {
		m.pager.SetProgram(p)
	}
}

// Close detaches the model from the store
func (m *Model) Close() {
	m.unsubscribe()
}

// Mode returns the active input mode
func (m *Model) Mode() inputtypes.Mode {
	return m.inputHandler.CurrentMode()
}

// Init starts the screen and begins listening for store updates
func (m *Model) Init() tea.Cmd {
	return tea.Batch(waitForState(m.updates), m.send(repolist.Appeared{}))
}

// waitForState delivers the next store snapshot as a message
func waitForState(updates <-chan repolist.State) tea.Cmd {
	return func() tea.Msg {
		if _, ok := <-updates; !ok {
			return storeClosedMsg{}
		}
		return stateMsg{}
	}
}

// Update handles messages
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.resizeDetail()
		m.ensureCursorVisible()
		return m, nil

	case stateMsg:
		// Always read the latest state: the notification may be older than
		// what a key press already applied.
		cmds := []tea.Cmd{waitForState(m.updates)}
		if cmd := m.applyState(m.store.State()); cmd != nil {
			cmds = append(cmds, cmd)
		}
		return m, tea.Batch(cmds...)

	case storeClosedMsg:
		return m, tea.Quit

	case spinner.TickMsg:
		if !m.state.IsLoading {
			m.spinning = false
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case helpPagerMsg:
		m.status = ""
		if msg.err != nil {
			m.status = fmt.Sprintf("help: %v", msg.err)
		}
		return m, nil

	case tea.KeyMsg:
		ctx := m.inputContext()
		actions, cmd := m.inputHandler.HandleKey(msg, ctx)

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

	default:
		return m, m.inputHandler.Update(msg)
	}
}

func (m *Model) inputContext() input.ModelContext {
	return input.ModelContext{State: m.state, Cursor: m.nav.GetSelectedIndex()}
}

// applyState takes a new snapshot: resets the cursor for new results, moves
// input focus to whatever is on top and loads the detail viewport.
func (m *Model) applyState(s repolist.State) tea.Cmd {
	m.state = s

	ids := s.Rows.IDs()
	if !slices.Equal(ids, m.rowIDs) {
		m.rowIDs = ids
		m.nav.Reset()
	}
	m.ensureCursorVisible()

	m.inputHandler.SetMode(m.focusMode(), m.inputContext())
	m.syncDetail()

	if s.IsLoading && !m.spinning {
		m.spinning = true
		return m.spinner.Tick
	}
	return nil
}

// focusMode picks the input mode for the current state. The search box keeps
// focus while only the list is showing.
func (m *Model) focusMode() inputtypes.Mode {
	if dest, ok := m.state.Destination.Get(); ok && dest.Alert != nil {
		return inputtypes.ModeAlert
	}
	if _, _, ok := m.topDetail(); ok {
		return inputtypes.ModeDetail
	}
	switch current := m.inputHandler.CurrentMode(); current {
	case inputtypes.ModeList, inputtypes.ModeSearch:
		return current
	default:
		return inputtypes.ModeList
	}
}

// topDetail returns the detail on top of the screen and a key identifying it
func (m *Model) topDetail() (detail.State, string, bool) {
	if dest, ok := m.state.Destination.Get(); ok && dest.Detail != nil {
		return *dest.Detail, fmt.Sprintf("modal:%d", dest.Detail.Repository.ID), true
	}
	if top, ok := m.state.Path.Top(); ok {
		return top.State, fmt.Sprintf("path:%d", top.ID), true
	}
	return detail.State{}, "", false
}

func (m *Model) modalDetail() bool {
	dest, ok := m.state.Destination.Get()
	return ok && dest.Detail != nil
}

func (m *Model) syncDetail() {
	d, key, ok := m.topDetail()
	if !ok {
		m.detailKey = ""
		return
	}
	if key == m.detailKey {
		return
	}
	m.detailKey = key
	m.resizeDetail()
	m.detail.SetContent(m.renderer.RenderDetailBody(d.Repository))
	m.detail.GotoTop()
}

func (m *Model) resizeDetail() {
	m.detail.Width = max(m.width-8, 20)
	m.detail.Height = max(m.height-chrome, 5)
}

func (m *Model) listHeight() int {
	if m.height == 0 {
		return 0
	}
	return max(m.height-chrome, 1)
}

// ensureCursorVisible clamps the cursor and scrolls the list so it is on screen
func (m *Model) ensureCursorVisible() {
	m.nav.UpdateState(m.state.Rows.Len(), m.listHeight())
}

func (m *Model) navigate(direction string) {
	if m.inputHandler.CurrentMode() == inputtypes.ModeDetail {
		switch direction {
		case "up":
			m.detail.LineUp(1)
		case "down":
			m.detail.LineDown(1)
		}
		return
	}

	m.nav.Move(direction)
}

// send dispatches action and applies the resulting state before the next
// key is read, so input focus never trails the store
func (m *Model) send(action store.Action) tea.Cmd {
	m.store.Send(action)
	return m.applyState(m.store.State())
}

// processAction turns an input action into store actions or commands
func (m *Model) processAction(action inputtypes.Action) tea.Cmd {
	switch action := action.(type) {
	case inputtypes.NavigateAction:
		m.navigate(action.Direction)

	case inputtypes.UpdateTextAction:
		return m.send(repolist.QueryChanged{Text: action.Text})

	case inputtypes.SubmitTextAction:
		if action.Mode != inputtypes.ModeSearch {
			break
		}
		var cmds []tea.Cmd
		if action.Text != m.state.Query {
			cmds = append(cmds, m.send(repolist.QueryChanged{Text: action.Text}))
		}
		return tea.Batch(append(cmds, m.send(repolist.QueryCommitted{}))...)

	case inputtypes.OpenAction:
		index := action.Index
		if index < 0 {
			index = m.nav.GetSelectedIndex()
		}
		if index < m.state.Rows.Len() {
			return m.send(repolist.RowAction{ID: m.state.Rows.At(index).ID(), Action: row.Tapped{}})
		}

	case inputtypes.BackAction:
		switch {
		case m.modalDetail():
			return m.send(repolist.DestinationAction{Action: navigation.Dismiss{}})
		case m.state.Path.Len() > 0:
			return m.send(repolist.PathAction{Action: navigation.PopTo{Len: m.state.Path.Len() - 1}})
		}

	case inputtypes.OpenPagerAction:
		if m.modalDetail() {
			return m.send(repolist.DestinationAction{Action: navigation.Presented{
				Action: repolist.DetailAction{Action: detail.PagerRequested{}},
			}})
		} else if top, ok := m.state.Path.Top(); ok {
			return m.send(repolist.PathAction{Action: navigation.ElementAction{
				ID:     top.ID,
				Action: detail.PagerRequested{},
			}})
		}

	case inputtypes.RefreshAction:
		return m.send(repolist.Refreshed{})

	case inputtypes.DismissAlertAction:
		return m.send(repolist.DestinationAction{Action: navigation.Dismiss{}})

	case inputtypes.ToggleHelpAction:
		return m.showHelp()

	case inputtypes.QuitAction:
		m.store.Send(repolist.Disappeared{})
		return tea.Quit
	}
	return nil
}

func (m *Model) showHelp() tea.Cmd {
	if m.pager == nil {
		return nil
	}
	pager, content := m.pager, m.helpRenderer.RenderHelpContent()
	return func() tea.Msg {
		return helpPagerMsg{err: pager.Page(context.Background(), "Help", content)}
	}
}

// View renders the UI
func (m *Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	start, end := m.nav.VisibleRange()
	vs := views.ViewState{
		Width:      m.width,
		Height:     m.height,
		Rows:       m.state.Repositories(),
		Cursor:     m.nav.GetSelectedIndex(),
		Offset:     start,
		ListHeight: end - start,
		Query:      m.state.Query,
		Loading:    m.state.IsLoading,
		Spinner:    m.spinner.View(),
		Help:       m.help.View(modeKeys{km: m.keys, mode: m.inputHandler.CurrentMode()}),
	}
	if m.status != "" {
		vs.Help = m.status + "  " + vs.Help
	}

	if ti := m.inputHandler.TextInput(); ti != nil {
		vs.Searching = true
		vs.SearchPrompt = m.inputHandler.Prompt()
		vs.SearchInput = ti.View()
	}

	if dest, ok := m.state.Destination.Get(); ok && dest.Alert != nil {
		vs.Alert = &views.AlertView{Title: dest.Alert.Title, Message: dest.Alert.Message}
	}

	if d, _, ok := m.topDetail(); ok {
		vs.Detail = &views.DetailView{
			Repository: d.Repository,
			Body:       m.detail.View(),
			Modal:      m.modalDetail(),
			Breadcrumb: m.breadcrumb(),
			PagerError: d.PagerError,
		}
	}

	return m.renderer.Render(vs)
}

// breadcrumb lists the pushed details below the list title
func (m *Model) breadcrumb() []string {
	if m.modalDetail() || m.state.Path.Len() == 0 {
		return nil
	}
	crumbs := []string{views.AppTitle}
	for _, el := range m.state.Path.Elements() {
		crumbs = append(crumbs, el.State.Repository.FullName)
	}
	return crumbs
}
