// Package tui is the terminal reader: the list of posts beside the selected
// post, with search, category filters, link sharing and a create form.
package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/hoanghai1803/inkwell/internal/blogs"
	"github.com/hoanghai1803/inkwell/internal/listing"
	"github.com/hoanghai1803/inkwell/internal/models"
	"github.com/hoanghai1803/inkwell/internal/selection"
)

const (
	defaultToastDuration = 4 * time.Second

	// listPaneRatio is the fraction of the terminal width given to the
	// list pane, bounded by the min and max widths below.
	listPaneRatio = 0.38
	minListWidth  = 28
	maxListWidth  = 60

	// rowHeight is the number of lines one post takes in the list pane.
	rowHeight = 2
)

// Source loads and creates posts. *blogs.Service implements it.
type Source interface {
	FetchBlogs(ctx context.Context) ([]models.Blog, error)
	CreateBlog(ctx context.Context, payload models.NewBlog) (models.Blog, error)
	Refresh()
}

// Options configures a Model. The zero value is usable.
type Options struct {
	// ShareBase is the public web address copied links point at.
	ShareBase string
	// ToastDuration is how long a notice stays in the status bar.
	ToastDuration time.Duration
	// Clipboard writes text to the system clipboard. Defaults to
	// clipboard.WriteAll.
	Clipboard func(string) error
	// Now is the clock used for the navbar date and relative dates.
	Now func() time.Time
}

func (o Options) withDefaults() Options {
	if o.ToastDuration <= 0 {
		o.ToastDuration = defaultToastDuration
	}
	if o.Clipboard == nil {
		o.Clipboard = clipboard.WriteAll
	}
	if o.Now == nil {
		o.Now = time.Now
	}
	return o
}

// focusRegion identifies which part of the screen receives key presses.
type focusRegion int

const (
	focusList focusRegion = iota
	focusSearch
	focusForm
)

// blogsLoadedMsg carries the result of a list fetch.
// seq is the load request it answers.
type blogsLoadedMsg struct {
	seq   int
	blogs []models.Blog
	err   error
}

// linkCopiedMsg reports a clipboard write.
type linkCopiedMsg struct {
	url string
	err error
}

// toastExpiredMsg dismisses the toast with the same sequence number. A newer
// toast has a higher number, so an old timer firing late leaves it alone.
type toastExpiredMsg struct {
	seq int
}

// blogCreatedMsg carries the outcome of the create form.
type blogCreatedMsg struct {
	blog models.Blog
	err  error
}

// Model is the bubbletea model of the reader.
type Model struct {
	ctx    context.Context
	source Source
	opts   Options
	keys   KeyMap
	theme  Theme

	width  int
	height int

	all     []models.Blog
	loaded  bool
	loading bool
	loadErr error
	loadSeq int
	memo    *listing.Memo
	visible []models.Blog

	category string
	search   textinput.Model
	focus    focusRegion

	// routeID plays the part of the address bar: it only changes when the
	// user picks a post, never when a filter hides it.
	routeID  string
	sel      selection.Selection
	detail   viewport.Model
	detailID models.ID

	toast      string
	toastError bool
	toastSeq   int

	form *createForm
}

// New creates a Model that loads posts from source. ctx bounds every request
// the model makes.
func New(ctx context.Context, source Source, opts Options) Model {
	search := textinput.New()
	search.Prompt = "/ "
	search.Placeholder = "Search articles"

	return Model{
		ctx:     ctx,
		source:  source,
		opts:    opts.withDefaults(),
		keys:    DefaultKeyMap,
		theme:   DefaultTheme,
		loading: true,
		memo:    &listing.Memo{},
		search:  search,
		detail:  viewport.New(0, 0),
	}
}

// Init implements tea.Model. It starts the first list load.
func (m Model) Init() tea.Cmd {
	return m.load()
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()
		return m, nil

	case tea.KeyMsg:
		switch m.focus {
		case focusSearch:
			return m.handleSearchKeys(msg)
		case focusForm:
			return m.handleFormKeys(msg)
		}
		return m.handleListKeys(msg)

	case blogsLoadedMsg:
		// A reply to an older request must not replace a newer list.
		if msg.seq != m.loadSeq {
			return m, nil
		}
		m.loading = false
		if msg.err != nil {
			m.loadErr = msg.err
			if m.loaded {
				cmd := m.showToast("Refresh failed: "+msg.err.Error(), true)
				return m, cmd
			}
			return m, nil
		}
		m.all = msg.blogs
		m.loaded = true
		m.loadErr = nil
		m.refilter()
		return m, nil

	case linkCopiedMsg:
		var cmd tea.Cmd
		if msg.err != nil {
			cmd = m.showToast("Could not copy link: "+msg.err.Error(), true)
		} else {
			cmd = m.showToast("Link copied: "+msg.url, false)
		}
		return m, cmd

	case toastExpiredMsg:
		if msg.seq == m.toastSeq {
			m.toast = ""
			m.toastError = false
		}
		return m, nil

	case blogCreatedMsg:
		return m.handleCreated(msg)
	}

	// Cursor blinks and other component messages.
	var cmd tea.Cmd
	switch {
	case m.focus == focusForm && m.form != nil:
		cmd = m.form.update(msg)
	case m.focus == focusSearch:
		m.search, cmd = m.search.Update(msg)
	}
	return m, cmd
}

func (m Model) handleListKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Up):
		m.moveTo(m.cursor() - 1)
	case key.Matches(msg, m.keys.Down):
		m.moveTo(m.cursor() + 1)
	case key.Matches(msg, m.keys.Top):
		m.moveTo(0)
	case key.Matches(msg, m.keys.Bottom):
		m.moveTo(len(m.visible) - 1)
	case key.Matches(msg, m.keys.PageUp):
		m.detail.LineUp(max(1, m.detail.Height/2))
	case key.Matches(msg, m.keys.PageDown):
		m.detail.LineDown(max(1, m.detail.Height/2))
	case key.Matches(msg, m.keys.Search):
		m.focus = focusSearch
		cmd = m.search.Focus()
	case key.Matches(msg, m.keys.NextCategory):
		m.cycleCategory(1)
	case key.Matches(msg, m.keys.PrevCategory):
		m.cycleCategory(-1)
	case key.Matches(msg, m.keys.ClearFilters):
		m.category = ""
		m.search.SetValue("")
		m.refilter()
	case key.Matches(msg, m.keys.CopyLink):
		cmd = m.copyLink()
	case key.Matches(msg, m.keys.Refresh):
		cmd = m.refresh()
	case key.Matches(msg, m.keys.Create):
		cmd = m.openForm()
	}
	return m, cmd
}

// handleSearchKeys routes typing to the search input. Esc clears the query,
// or leaves the input when it is already empty; enter keeps the query and
// returns to the list.
func (m Model) handleSearchKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.ForceQuit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Cancel):
		if m.search.Value() != "" {
			m.search.SetValue("")
			m.refilter()
			return m, nil
		}
		m.search.Blur()
		m.focus = focusList
		return m, nil
	case key.Matches(msg, m.keys.Confirm):
		m.search.Blur()
		m.focus = focusList
		return m, nil
	case msg.Type == tea.KeyUp:
		m.moveTo(m.cursor() - 1)
		return m, nil
	case msg.Type == tea.KeyDown:
		m.moveTo(m.cursor() + 1)
		return m, nil
	}

	before := m.search.Value()
	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	if m.search.Value() != before {
		m.refilter()
	}
	return m, cmd
}

// refilter recomputes the visible posts and the selection.
func (m *Model) refilter() {
	m.visible = m.memo.Visible(m.all, m.category, m.search.Value())
	m.sel = selection.Reconcile(m.routeID, m.visible)
	m.syncDetail()
}

// cursor is the index of the selected post in the visible list, or -1.
func (m Model) cursor() int {
	for i, b := range m.visible {
		if m.sel.IsActive(b.ID) {
			return i
		}
	}
	return -1
}

func (m *Model) moveTo(i int) {
	if len(m.visible) == 0 {
		return
	}
	i = max(0, min(i, len(m.visible)-1))
	m.routeID = m.visible[i].ID.String()
	m.sel = selection.Reconcile(m.routeID, m.visible)
	m.syncDetail()
}

// categoryOptions is "all" followed by every category the navbar offers.
func (m Model) categoryOptions() []string {
	counts := listing.CategoryCounts(m.all)
	opts := make([]string, 0, len(counts)+1)
	opts = append(opts, "")
	for _, c := range counts {
		opts = append(opts, c.Name)
	}
	return opts
}

func (m *Model) cycleCategory(step int) {
	opts := m.categoryOptions()
	i := 0
	for j, c := range opts {
		if strings.EqualFold(c, m.category) {
			i = j
			break
		}
	}
	i = (i + step + len(opts)) % len(opts)
	m.category = opts[i]
	m.refilter()
}

// syncDetail renders the selected post into the detail pane. The scroll
// position resets only when a different post is selected.
func (m *Model) syncDetail() {
	blog, ok := m.sel.Active()
	if !ok {
		m.detailID = ""
		m.detail.SetContent("")
		return
	}
	m.detail.SetContent(m.renderArticle(blog, m.detail.Width))
	if blog.ID != m.detailID {
		m.detailID = blog.ID
		m.detail.GotoTop()
	}
}

func (m *Model) resize() {
	m.detail.Width = max(m.width-m.listWidth()-2, 10)
	m.detail.Height = max(m.bodyHeight(), 1)
	m.search.Width = max(m.width/3, 10)
	if m.form != nil {
		m.form.setSize(m.width, m.height)
	}
	m.syncDetail()
}

func (m Model) listWidth() int {
	w := int(float64(m.width) * listPaneRatio)
	return max(minListWidth, min(w, maxListWidth))
}

// bodyHeight leaves room for the navbar, its rule and the status bar.
func (m Model) bodyHeight() int {
	return m.height - 3
}

// showToast puts text in the status bar and schedules its dismissal.
func (m *Model) showToast(text string, isErr bool) tea.Cmd {
	m.toastSeq++
	m.toast = text
	m.toastError = isErr
	seq := m.toastSeq
	return tea.Tick(m.opts.ToastDuration, func(time.Time) tea.Msg {
		return toastExpiredMsg{seq: seq}
	})
}

func (m *Model) copyLink() tea.Cmd {
	blog, ok := m.sel.Active()
	if !ok {
		return m.showToast("Select an article to share", true)
	}
	url := blogs.ShareURL(m.opts.ShareBase, blog.ID)
	write := m.opts.Clipboard
	return func() tea.Msg {
		return linkCopiedMsg{url: url, err: write(url)}
	}
}

// load fetches the list for the current load sequence. Callers starting a new
// request bump loadSeq first.
func (m Model) load() tea.Cmd {
	ctx, source, seq := m.ctx, m.source, m.loadSeq
	return func() tea.Msg {
		list, err := source.FetchBlogs(ctx)
		return blogsLoadedMsg{seq: seq, blogs: list, err: err}
	}
}

// refresh marks the cached list stale and reloads it. Posts already shown
// stay on screen until the new list arrives.
func (m *Model) refresh() tea.Cmd {
	if m.loading {
		return nil
	}
	m.source.Refresh()
	m.loading = true
	m.loadSeq++
	return m.load()
}

func (m *Model) openForm() tea.Cmd {
	m.form = newCreateForm(blogs.NewCreateFlow(m.source))
	m.form.setSize(m.width, m.height)
	m.focus = focusForm
	return m.form.focusField()
}

func (m *Model) closeForm() {
	m.form = nil
	m.focus = focusList
}

func (m Model) handleFormKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	f := m.form
	switch {
	case key.Matches(msg, m.keys.ForceQuit):
		return m, tea.Quit
	case key.Matches(msg, f.keys.Cancel):
		if !f.submitting {
			m.closeForm()
		}
		return m, nil
	case key.Matches(msg, f.keys.Submit):
		if f.submitting {
			return m, nil
		}
		f.submitting = true
		f.invalid = nil
		f.err = nil
		return m, m.submit(f.draft())
	case key.Matches(msg, f.keys.Next):
		return m, f.cycle(1)
	case key.Matches(msg, f.keys.Prev):
		return m, f.cycle(-1)
	}
	if f.submitting {
		return m, nil
	}
	return m, f.update(msg)
}

// submit runs the create flow. A cover written as @path is read from disk
// and sent inline.
func (m Model) submit(d blogs.Draft) tea.Cmd {
	ctx, flow := m.ctx, m.form.flow
	return func() tea.Msg {
		if path, ok := strings.CutPrefix(strings.TrimSpace(d.CoverImage), "@"); ok {
			cover, err := blogs.ReadCoverFile(strings.TrimSpace(path))
			if err != nil {
				return blogCreatedMsg{err: &blogs.ValidationError{
					Fields: []blogs.FieldError{{Field: "coverImage", Message: err.Error()}},
				}}
			}
			d.CoverImage = cover
		}
		created, err := flow.Submit(ctx, d)
		return blogCreatedMsg{blog: created, err: err}
	}
}

func (m Model) handleCreated(msg blogCreatedMsg) (tea.Model, tea.Cmd) {
	if m.form == nil {
		return m, nil
	}
	m.form.submitting = false
	if msg.err != nil {
		var invalid *blogs.ValidationError
		if errors.As(msg.err, &invalid) {
			m.form.invalid = invalid
			return m, nil
		}
		m.form.err = msg.err
		return m, nil
	}

	m.closeForm()
	m.category = ""
	m.search.SetValue("")
	m.routeID = msg.blog.ID.String()
	m.refilter()
	m.loading = true
	m.loadSeq++
	cmd := tea.Batch(m.load(), m.showToast(fmt.Sprintf("Published %q", msg.blog.Title), false))
	return m, cmd
}
