package update

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	"github.com/charmbracelet/log"
	"github.com/sandeepkv93/todod/internal/controller"
	"github.com/sandeepkv93/todod/internal/scheduler"
)

// FormErrorText is shown under the form when a submission is missing a
// field or carries an unparseable date.
const FormErrorText = "fill out ALL fields"

// statusTTL is how long a non-error status stays in the status bar.
const statusTTL = 4 * time.Second

type Focus string

const (
	FocusList Focus = "list"
	FocusText Focus = "text"
	FocusDate Focus = "date"
)

type StatusBar struct {
	Text    string
	IsError bool
}

type GlobalKeyMap struct {
	Help string
	Quit string
}

type FormState struct {
	Err         string
	TextInvalid bool
	DateInvalid bool
}

type EditState struct {
	Active bool
	ID     int64
}

type CommandPaletteState struct {
	Active bool
	Input  string
}

type Model struct {
	Focus       Focus
	Cursor      int
	Form        FormState
	Edit        EditState
	Palette     CommandPaletteState
	HelpVisible bool
	Status      StatusBar
	Keys        GlobalKeyMap
	Quitting    bool
	LastError   error
	Scheduler   *scheduler.Engine
	LastDue     *scheduler.DueEvent

	ctrl   *controller.Controller
	ctx    context.Context
	logger *log.Logger
	now    func() time.Time

	statusSeq int
	statusTTL time.Duration

	textInput    textinput.Model
	dateInput    textinput.Model
	editInput    textinput.Model
	commandInput textinput.Model
	progressBar  progress.Model
	helpModel    help.Model
	helpViewport viewport.Model
}

type Option func(*Model)

func WithScheduler(engine *scheduler.Engine) Option {
	return func(m *Model) { m.Scheduler = engine }
}

func WithLogger(logger *log.Logger) Option {
	return func(m *Model) {
		if logger != nil {
			m.logger = logger
		}
	}
}

func WithClock(now func() time.Time) Option {
	return func(m *Model) {
		if now != nil {
			m.now = now
		}
	}
}

func WithContext(ctx context.Context) Option {
	return func(m *Model) {
		if ctx != nil {
			m.ctx = ctx
		}
	}
}

// WithStartupError shows err in the status bar on the first frame.
func WithStartupError(err error) Option {
	return func(m *Model) {
		if err != nil {
			m.LastError = err
			m.Status = StatusBar{Text: err.Error(), IsError: true}
		}
	}
}

// ClearStatusMsg clears the status bar if no newer status replaced the one
// numbered Seq.
type ClearStatusMsg struct {
	Seq int
}

type AppErrorMsg struct {
	Err error
}

// DueReachedMsg reports that a todo's due moment has passed.
type DueReachedMsg struct {
	Event scheduler.DueEvent
}

func NewModel(ctrl *controller.Controller, opts ...Option) Model {
	m := Model{
		Focus: FocusList,
		Keys: GlobalKeyMap{
			Help: "?",
			Quit: "q",
		},
		ctrl:   ctrl,
		ctx:    context.Background(),
		logger: log.New(io.Discard),
		now:    time.Now,

		statusTTL: statusTTL,
	}
	for _, opt := range opts {
		opt(&m)
	}
	m.initBubbleComponents()
	m.clampCursor()
	return m
}

// Controller exposes the list owner, mostly for tests and main.
func (m Model) Controller() *controller.Controller {
	return m.ctrl
}

func (m *Model) initBubbleComponents() {
	m.textInput = textinput.New()
	m.textInput.Prompt = "text> "
	m.textInput.Placeholder = "what needs doing"
	m.textInput.CharLimit = 0
	m.textInput.Width = 40

	m.dateInput = textinput.New()
	m.dateInput.Prompt = "due>  "
	m.dateInput.Placeholder = "YYYY-MM-DD"
	m.dateInput.CharLimit = 10
	m.dateInput.Width = 12

	m.editInput = textinput.New()
	m.editInput.Prompt = "edit> "
	m.editInput.CharLimit = 0
	m.editInput.Width = 40

	m.commandInput = textinput.New()
	m.commandInput.Prompt = "/"
	m.commandInput.CharLimit = 0
	m.commandInput.Width = 44

	m.progressBar = progress.New(progress.WithDefaultGradient(), progress.WithWidth(30), progress.WithoutPercentage())
	m.helpModel = help.New()
	m.helpViewport = viewport.New(46, 14)
}

func (m Model) currentView() controller.View {
	if m.ctrl == nil {
		return controller.View{}
	}
	return m.ctrl.LastView()
}

func (m *Model) clampCursor() {
	n := len(m.currentView().Items)
	if m.Cursor >= n {
		m.Cursor = n - 1
	}
	if m.Cursor < 0 {
		m.Cursor = 0
	}
}

// selectedItem returns the list entry under the cursor.
func (m Model) selectedItem() (controller.Item, bool) {
	items := m.currentView().Items
	if m.Cursor < 0 || m.Cursor >= len(items) {
		return controller.Item{}, false
	}
	return items[m.Cursor], true
}
