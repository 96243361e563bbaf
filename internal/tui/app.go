// Package tui is the terminal front-end of the news feed. It renders the same two
// screens as the web server, list and article, with bubbletea.
package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/go-while/go-newsfeed/internal/models"
	"github.com/go-while/go-newsfeed/internal/router"
	"github.com/go-while/go-newsfeed/internal/store"
	"github.com/go-while/go-newsfeed/internal/views"
)

type screen int

const (
	screenList screen = iota
	screenDetail
)

const (
	defaultWidth  = 80
	defaultHeight = 24
	snippetRunes  = 120
	chromeLines   = 8 // header, meta and help around the article body
)

type listLoadedMsg struct {
	ticket views.Ticket
	fetch  uint64
	res    store.ListResult
}

type articleLoadedMsg struct {
	ticket views.Ticket
	fetch  uint64
	res    store.ArticleResult
}

// App is the bubbletea model.
type App struct {
	src     views.Source
	logger  *zap.Logger
	timeout time.Duration

	screen   screen
	list     *views.ListView
	detail   *views.DetailView
	selected int
	notice   string // shown above the list, e.g. for an unknown start path

	cancel   context.CancelFunc // cancels the fetch in flight
	inflight uint64             // fetch id owning cancel
	fetches  uint64
	spinner  spinner.Model
	viewport viewport.Model

	width  int
	height int
}

// NewApp creates the model. startPath is resolved like a web path ("/" or "/article/{id}").
// timeout bounds each fetch, 0 means no bound. logger may be nil.
func NewApp(src views.Source, startPath string, timeout time.Duration, logger *zap.Logger) *App {
	if logger == nil {
		logger = zap.NewNop()
	}
	sp := spinner.New(spinner.WithSpinner(spinner.Dot))
	sp.Style = spinnerStyle

	a := &App{
		src:      src,
		logger:   logger.With(zap.String("component", "tui")),
		timeout:  timeout,
		list:     views.NewListView(),
		detail:   views.NewDetailView(),
		spinner:  sp,
		viewport: viewport.New(defaultWidth, defaultHeight-chromeLines),
		width:    defaultWidth,
		height:   defaultHeight,
	}
	m := router.Resolve(startPath)
	switch m.Route {
	case router.RouteDetail:
		a.screen = screenDetail
		a.detail.Enter(m.ID)
	case router.RouteNotFound:
		a.notice = fmt.Sprintf("No page at %q, showing the news feed.", startPath)
	}
	return a
}

// Init starts the spinner and the first fetch.
func (a *App) Init() tea.Cmd {
	return tea.Batch(a.spinner.Tick, a.reload())
}

// Update is called when a message is received.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.viewport.Width = max(20, msg.Width-4)
		a.viewport.Height = max(3, msg.Height-chromeLines)
		return a, nil

	case listLoadedMsg:
		if a.list.Resolve(msg.ticket, msg.res) {
			a.release(msg.fetch)
			a.selected = min(a.selected, max(0, len(a.list.Cards())-1))
			a.logger.Debug("List loaded", zap.String("state", a.list.State().String()), zap.Int("cards", len(a.list.Cards())))
		} else {
			a.logger.Debug("Dropped stale list result")
		}
		return a, nil

	case articleLoadedMsg:
		if a.detail.Resolve(msg.ticket, msg.res) {
			a.release(msg.fetch)
			a.viewport.SetContent(a.articleBody())
			a.viewport.GotoTop()
			a.logger.Debug("Article loaded", zap.String("id", msg.ticket.ID()), zap.String("state", a.detail.State().String()))
		} else {
			a.logger.Debug("Dropped stale article result", zap.String("id", msg.ticket.ID()))
		}
		return a, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		a.spinner, cmd = a.spinner.Update(msg)
		return a, cmd

	case tea.KeyMsg:
		return a.handleKey(msg)
	}
	return a, nil
}

func (a *App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "q":
		a.clearCancel()
		return a, tea.Quit
	case "r":
		return a, a.reload()
	}

	if a.screen == screenList {
		cards := a.list.Cards()
		switch msg.String() {
		case "up", "k":
			if a.selected > 0 {
				a.selected--
			}
		case "down", "j":
			if a.selected < len(cards)-1 {
				a.selected++
			}
		case "enter":
			if a.selected < len(cards) {
				return a, a.open(cards[a.selected].ID)
			}
		}
		return a, nil
	}

	switch msg.String() {
	case "esc", "backspace":
		return a, a.back()
	}
	var cmd tea.Cmd
	a.viewport, cmd = a.viewport.Update(msg)
	return a, cmd
}

// open switches to the article screen for id.
func (a *App) open(id string) tea.Cmd {
	a.list.Leave()
	a.screen = screenDetail
	a.detail.Enter(id)
	return a.reload()
}

// back returns to the list, which fetches again like re-entering the page does.
func (a *App) back() tea.Cmd {
	a.detail.Leave()
	a.screen = screenList
	a.notice = ""
	return a.reload()
}

// reload restarts the current screen and returns the fetch command for it.
// Whatever was in flight is canceled and its ticket is no longer current.
func (a *App) reload() tea.Cmd {
	a.clearCancel()
	if a.screen == screenList {
		t := a.list.Enter()
		ctx, id := a.fetchContext()
		src := a.src
		return func() tea.Msg {
			return listLoadedMsg{ticket: t, fetch: id, res: src.ListArticles(ctx)}
		}
	}

	t, fetch := a.detail.Enter(a.detail.ID())
	if !fetch {
		return nil
	}
	ctx, id := a.fetchContext()
	src := a.src
	return func() tea.Msg {
		return articleLoadedMsg{ticket: t, fetch: id, res: src.GetArticle(ctx, t.ID())}
	}
}

// fetchContext starts a new fetch and returns its context and id.
func (a *App) fetchContext() (context.Context, uint64) {
	var ctx context.Context
	if a.timeout > 0 {
		ctx, a.cancel = context.WithTimeout(context.Background(), a.timeout)
	} else {
		ctx, a.cancel = context.WithCancel(context.Background())
	}
	a.fetches++
	a.inflight = a.fetches
	return ctx, a.inflight
}

// release frees the context of fetch id once its result is applied.
// A finished fetch never cancels one started after it.
func (a *App) release(id uint64) {
	if id == a.inflight {
		a.clearCancel()
	}
}

func (a *App) clearCancel() {
	if a.cancel != nil {
		a.cancel()
		a.cancel = nil
	}
	a.inflight = 0
}

// View renders the current screen.
func (a *App) View() string {
	var b strings.Builder
	b.WriteString(headerStyle.Width(max(20, a.width)).Render(views.PageTitle))
	b.WriteString("\n\n")
	if a.screen == screenList {
		b.WriteString(a.listView())
		b.WriteString(helpStyle.Render("↑/k up · ↓/j down · enter open · r reload · q quit"))
	} else {
		b.WriteString(a.detailView())
		b.WriteString(helpStyle.Render("↑/↓ scroll · esc back · r reload · q quit"))
	}
	return b.String()
}

func (a *App) listView() string {
	var b strings.Builder
	if a.notice != "" {
		b.WriteString(noticeStyle.Render(a.notice) + "\n\n")
	}
	switch a.list.State() {
	case views.StateLoading:
		b.WriteString(a.spinner.View() + " Loading articles...\n")
	case views.StateError:
		b.WriteString(errorStyle.Render(a.list.Message()) + "\n")
		b.WriteString(noticeStyle.Render(views.MsgListHint) + "\n")
	default:
		if a.list.Empty() {
			b.WriteString(noticeStyle.Render(a.list.Message()) + "\n")
			break
		}
		width := max(20, a.width-4)
		for i, c := range a.list.Cards() {
			b.WriteString(renderCard(c, i == a.selected, width) + "\n")
		}
	}
	return b.String()
}

func renderCard(c views.Card, selected bool, width int) string {
	style := cardStyle
	marker := "  "
	if selected {
		style = selectedCardStyle
		marker = "> "
	}
	lines := []string{cardTitleStyle.Render(marker + c.Title)}
	if c.Snippet != "" {
		lines = append(lines, snippetStyle.Render(models.Truncate(c.Snippet, snippetRunes)))
	}
	if c.Age != "" {
		lines = append(lines, metaStyle.Render(c.Age))
	}
	return style.Width(width).Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}

func (a *App) detailView() string {
	var b strings.Builder
	switch a.detail.State() {
	case views.StateLoading:
		b.WriteString(a.spinner.View() + " Loading article...\n")
	case views.StateError:
		b.WriteString(errorStyle.Render(a.detail.Message()) + "\n")
		b.WriteString(noticeStyle.Render(views.MsgBack+" (esc)") + "\n")
	default:
		art := a.detail.Article()
		b.WriteString(titleStyle.Render(art.Title) + "\n")
		b.WriteString(metaStyle.Render(publishedLine(art)) + "\n")
		if art.ImageURL != "" {
			b.WriteString(metaStyle.Render("Image: "+art.ImageURL) + "\n")
		}
		b.WriteString("\n" + a.viewport.View() + "\n")
	}
	return b.String()
}

func (a *App) articleBody() string {
	art := a.detail.Article()
	if art == nil {
		return ""
	}
	return lipgloss.NewStyle().Width(a.viewport.Width).Render(art.Content)
}

func publishedLine(a *models.Article) string {
	line := "Published on: " + a.PublishedDate()
	if cat := a.CategoryLabel(); cat != "" {
		line += " | Category: " + cat
	}
	return line
}
