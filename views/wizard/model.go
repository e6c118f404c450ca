package wizard

import (
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/donut-tui/donut-tui/internal/autosave"
	"github.com/donut-tui/donut-tui/internal/backend"
	"github.com/donut-tui/donut-tui/internal/config"
	"github.com/donut-tui/donut-tui/internal/model"
	"github.com/donut-tui/donut-tui/internal/theme"
	"github.com/donut-tui/donut-tui/internal/wizard"
)

// Step indices, matching wizard.DefaultSteps order.
const (
	stepDocumentType = iota
	stepFields
	stepUpload
	stepAnnotate
	stepConfigure
	stepTrain
	stepTest
	stepReview
	stepDeploy
)

type mode int

const (
	modeWizard mode = iota
	modeResumePrompt
	modeResetConfirm
)

// Deps are the shared application services the wizard operates on.
type Deps struct {
	Cfg    *config.Config
	Client *backend.Client
	Saver  *autosave.Saver
}

// Model drives the full training wizard: a step sidebar on the left,
// the current step's screen on the right, autosave underneath.
type Model struct {
	deps      Deps
	container *wizard.Container

	width  int
	height int
	mode   mode

	// Transient banner shown above the step content.
	alert      string
	alertError bool
	savedAt    time.Time

	// Pending restored state while the resume prompt is shown.
	restored *wizard.State

	busy    bool
	spinner spinner.Model

	// Per-step screens
	docType   docTypeStep
	fields    fieldsStep
	upload    uploadStep
	annotate  annotateStep
	configure configureStep
	train     trainStep
	test      testStep
	review    reviewStep
	deploy    deployStep
}

// Messages produced by backend commands.
type (
	errMsg          struct{ err error }
	configSavedMsg  struct{ dataset *model.TrainingDataset }
	uploadedMsg     struct{ docs []model.Document }
	labelsSavedMsg  struct{ labels []model.DocumentLabel }
	trainStartedMsg struct{ job *model.TrainingJob }
	trainTickMsg    struct{ jobID string }
	trainStatusMsg  struct {
		job     *model.TrainingJob
		trained *model.TrainedModel
	}
	testResultsMsg struct{ results map[string]model.TestResult }
	promotedMsg    struct{ promoted *model.TrainedModel }
	apiKeyMsg      struct{ key *model.APIKey }
	clearAlertMsg  struct{}
)

// New builds the wizard view. A fresh autosave snapshot, if one
// exists and is not stale, triggers a resume prompt before the
// wizard itself is shown.
func New(deps Deps) Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = theme.InfoStyle

	m := Model{
		deps:      deps,
		container: wizard.New(),
		width:     100,
		height:    30,
		spinner:   sp,
	}

	var snap wizard.State
	if deps.Saver != nil && deps.Saver.Load(&snap) {
		m.restored = &snap
		m.mode = modeResumePrompt
	}

	m.initSteps()
	return m
}

func (m *Model) initSteps() {
	m.docType.init(m)
	m.fields.init(m)
	m.upload.init(m)
	m.annotate.init(m)
	m.configure.init(m)
	m.train.init(m)
	m.test.init(m)
	m.review.init(m)
	m.deploy.init(m)
}

func (m Model) Init() tea.Cmd {
	return m.spinner.Tick
}

// dispatch routes an action through the container and schedules a
// debounced save of the new state.
func (m *Model) dispatch(action wizard.Action) {
	m.container.Dispatch(action)
	if m.deps.Saver != nil {
		m.deps.Saver.Update(m.container.State())
	}
}

func (m *Model) setAlert(text string, isErr bool) tea.Cmd {
	m.alert = text
	m.alertError = isErr
	return tea.Tick(4*time.Second, func(time.Time) tea.Msg { return clearAlertMsg{} })
}

// ForceSave flushes the pending autosave immediately. Called from
// Ctrl+S and on shutdown.
func (m *Model) ForceSave() {
	if m.deps.Saver != nil {
		m.deps.Saver.Update(m.container.State())
		m.deps.Saver.ForceSave()
	}
}

func (m *Model) state() wizard.State {
	return m.container.State()
}
