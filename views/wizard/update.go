package wizard

import (
	"log/slog"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/donut-tui/donut-tui/internal/model"
	"github.com/donut-tui/donut-tui/internal/wizard"
)

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case clearAlertMsg:
		m.alert = ""
		return m, nil

	case errMsg:
		m.busy = false
		slog.Error("wizard operation failed", "error", msg.err)
		return m, m.setAlert(msg.err.Error(), true)

	case configSavedMsg:
		m.busy = false
		m.dispatch(wizard.SetDataset{Dataset: msg.dataset})
		return m, m.setAlert("Configuration saved", false)

	case uploadedMsg:
		m.busy = false
		docs := append(m.state().UploadedDocuments, msg.docs...)
		m.dispatch(wizard.SetUploadedDocuments{Documents: docs})
		m.annotate.reload(&m)
		return m, m.setAlert("Documents uploaded", false)

	case labelsSavedMsg:
		m.busy = false
		m.dispatch(wizard.SetLabeledDocuments{Labels: msg.labels})
		return m, m.setAlert("Annotations saved", false)

	case trainStartedMsg:
		m.busy = false
		m.dispatch(wizard.SetTrainingJob{Job: msg.job})
		m.container.NextStep()
		m.dispatch(wizard.SetCurrentStep{Step: m.container.CurrentStep()})
		return m, m.train.tick(&m, msg.job.ID)

	case trainTickMsg:
		return m, m.train.poll(&m, msg.jobID)

	case trainStatusMsg:
		m.dispatch(wizard.SetTrainingJob{Job: msg.job})
		if msg.trained != nil {
			m.dispatch(wizard.SetTrainedModel{Model: msg.trained})
		}
		if msg.job.Terminal() {
			return m, nil
		}
		return m, m.train.tick(&m, msg.job.ID)

	case testResultsMsg:
		m.busy = false
		m.dispatch(wizard.SetTestResults{Results: msg.results})
		return m, m.setAlert("Test run finished", false)

	case promotedMsg:
		m.busy = false
		m.dispatch(wizard.SetTrainedModel{Model: msg.promoted})
		m.deploy.promoted = true
		return m, m.setAlert("Model promoted to production", false)

	case apiKeyMsg:
		m.busy = false
		m.deploy.apiKey = msg.key
		return m, m.setAlert("API key created", false)
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch m.mode {
	case modeResumePrompt:
		return m.handleResumeKey(msg)
	case modeResetConfirm:
		return m.handleResetKey(msg)
	}

	// Global keys first.
	switch msg.String() {
	case "ctrl+c":
		m.ForceSave()
		return m, tea.Quit
	case "ctrl+s":
		m.ForceSave()
		m.savedAt = time.Now()
		return m, m.setAlert("Progress saved", false)
	case "ctrl+r":
		m.mode = modeResetConfirm
		return m, nil
	case "esc":
		if m.stepCaptures() {
			break
		}
		m.ForceSave()
		return m, func() tea.Msg { return "dashboard_view" }
	case "ctrl+n":
		return m.advance()
	case "ctrl+p":
		m.container.PreviousStep()
		m.dispatch(wizard.SetCurrentStep{Step: m.container.CurrentStep()})
		return m, nil
	}

	if m.busy {
		return m, nil
	}

	// Digit keys jump to any already-visited step, unless a text
	// editor owns the keyboard.
	if !m.typingCapture() {
		if k := msg.String(); len(k) == 1 && k[0] >= '1' && k[0] <= '9' {
			return m.jumpTo(int(k[0] - '1'))
		}
	}

	var cmd tea.Cmd
	switch m.container.CurrentStep() {
	case stepDocumentType:
		cmd = m.docType.handleKey(&m, msg)
	case stepFields:
		cmd = m.fields.handleKey(&m, msg)
	case stepUpload:
		cmd = m.upload.handleKey(&m, msg)
	case stepAnnotate:
		cmd = m.annotate.handleKey(&m, msg)
	case stepConfigure:
		cmd = m.configure.handleKey(&m, msg)
	case stepTrain:
		cmd = m.train.handleKey(&m, msg)
	case stepTest:
		cmd = m.test.handleKey(&m, msg)
	case stepReview:
		cmd = m.review.handleKey(&m, msg)
	case stepDeploy:
		cmd = m.deploy.handleKey(&m, msg)
	}
	return m, cmd
}

// advance moves to the next step if the current one is complete.
// Some steps persist to the backend on the way out.
func (m Model) advance() (Model, tea.Cmd) {
	cur := m.container.CurrentStep()

	if !m.container.StepComplete(cur) {
		return m, m.setAlert("Complete this step before continuing", true)
	}

	// Finishing the last step wraps up the session entirely.
	if cur == stepDeploy {
		m.container.ResetWizard()
		if m.deps.Saver != nil {
			m.deps.Saver.ClearSaved()
		}
		m.initSteps()
		return m, func() tea.Msg { return "dashboard_view" }
	}

	// The fields step commits the schema and creates the dataset.
	if cur == stepFields && m.state().Dataset == nil {
		m.busy = true
		return m, m.fields.save(&m)
	}

	// The configure step hands off to the backend to start the run.
	if cur == stepConfigure {
		job := m.state().TrainingJob
		if job == nil || (job.Terminal() && job.Status != model.JobCompleted) {
			m.busy = true
			return m, m.configure.start(&m)
		}
	}

	m.container.NextStep()
	m.dispatch(wizard.SetCurrentStep{Step: m.container.CurrentStep()})

	// Entering the training monitor with a live job resumes polling.
	if m.container.CurrentStep() == stepTrain {
		if job := m.state().TrainingJob; job != nil && !job.Terminal() {
			return m, m.train.tick(&m, job.ID)
		}
	}

	return m, nil
}

// stepCaptures reports whether the current step's screen is in a
// sub-editor that should receive Esc instead of the shell.
func (m *Model) stepCaptures() bool {
	switch m.container.CurrentStep() {
	case stepFields:
		return m.fields.adding
	case stepAnnotate:
		return m.annotate.editing
	}
	return false
}

// typingCapture reports whether a text field currently owns plain
// character input.
func (m *Model) typingCapture() bool {
	switch m.container.CurrentStep() {
	case stepDocumentType:
		return m.docType.focusName
	case stepFields:
		return m.fields.adding
	case stepAnnotate:
		return m.annotate.editing
	case stepConfigure:
		return true
	}
	return false
}

// jumpTo moves directly to a step the user has already reached.
func (m Model) jumpTo(n int) (Model, tea.Cmd) {
	s := m.state()
	if n >= len(s.Steps) {
		return m, nil
	}
	if n > m.container.CurrentStep() && !s.Steps[n].Completed {
		return m, m.setAlert("Finish the earlier steps first", true)
	}
	m.container.GoToStep(n)
	m.dispatch(wizard.SetCurrentStep{Step: m.container.CurrentStep()})
	if n == stepTrain {
		return m, m.ResumePolling()
	}
	return m, nil
}

// ResumePolling restarts the training status ticker, used when the
// wizard regains focus or jumps back to the monitor.
func (m *Model) ResumePolling() tea.Cmd {
	if m.container.CurrentStep() != stepTrain {
		return nil
	}
	if job := m.state().TrainingJob; job != nil && !job.Terminal() {
		return m.train.tick(m, job.ID)
	}
	return nil
}

func (m Model) handleResumeKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "r", "enter":
		if m.restored != nil {
			m.container = wizard.Restore(*m.restored)
			m.restored = nil
		}
		m.mode = modeWizard
		m.initSteps()
		cmd := m.setAlert("Session restored", false)
		// A restored in-flight training run resumes polling.
		if m.container.CurrentStep() == stepTrain {
			if job := m.state().TrainingJob; job != nil && !job.Terminal() {
				return m, tea.Batch(cmd, m.train.tick(&m, job.ID))
			}
		}
		return m, cmd
	case "d":
		if m.deps.Saver != nil {
			m.deps.Saver.ClearSaved()
		}
		m.restored = nil
		m.mode = modeWizard
		return m, nil
	}
	return m, nil
}

func (m Model) handleResetKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "y", "enter":
		m.container.ResetWizard()
		if m.deps.Saver != nil {
			m.deps.Saver.ClearSaved()
		}
		m.mode = modeWizard
		m.initSteps()
		return m, m.setAlert("Wizard reset", false)
	case "n", "esc":
		m.mode = modeWizard
	}
	return m, nil
}
