package wizard

import (
	"github.com/donut-tui/donut-tui/internal/model"
)

// Step is one screen of the wizard. Completed is the only stored
// flag; whether a step is active derives from the current index.
type Step struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Completed   bool   `json:"completed"`
}

// State is the aggregate wizard session. It is owned by the
// Container and mutated only through dispatched actions.
type State struct {
	CurrentStep       int                         `json:"currentStep"`
	DocumentType      *model.DocumentType         `json:"documentType,omitempty"`
	Fields            []model.FieldDef            `json:"fields,omitempty"`
	UploadedDocuments []model.Document            `json:"uploadedDocuments,omitempty"`
	Dataset           *model.TrainingDataset      `json:"dataset,omitempty"`
	LabeledDocuments  []model.DocumentLabel       `json:"labeledDocuments,omitempty"`
	TrainingConfig    map[string]string           `json:"trainingConfig,omitempty"`
	TrainingJob       *model.TrainingJob          `json:"trainingJob,omitempty"`
	TrainedModel      *model.TrainedModel         `json:"trainedModel,omitempty"`
	TestResults       map[string]model.TestResult `json:"testResults,omitempty"`
	Steps             []Step                      `json:"steps"`
}

// Container holds the wizard session and is its only sanctioned
// mutation surface. It performs no I/O and never returns errors:
// out-of-range operations are no-ops.
type Container struct {
	state State
}

// DefaultSteps is the wizard's fixed step list.
func DefaultSteps() []Step {
	return []Step{
		{ID: "document_type", Title: "Document Type", Description: "Choose the kind of document to extract from"},
		{ID: "fields", Title: "Fields", Description: "Define the fields the model should extract"},
		{ID: "upload", Title: "Upload", Description: "Add training documents"},
		{ID: "annotate", Title: "Annotate", Description: "Label each document's fields"},
		{ID: "configure", Title: "Training Setup", Description: "Configure the training run"},
		{ID: "train", Title: "Training", Description: "Monitor training progress"},
		{ID: "test", Title: "Testing", Description: "Run the model against held-out documents"},
		{ID: "review", Title: "Review", Description: "Review extraction results"},
		{ID: "deploy", Title: "Deploy", Description: "Promote the model and generate API access"},
	}
}

// New creates a container with empty state at step zero.
func New() *Container {
	return &Container{state: State{Steps: DefaultSteps()}}
}

// Restore creates a container from a previously saved snapshot. A
// snapshot with a missing or short step list is topped up from the
// defaults so the index invariant holds.
func Restore(s State) *Container {
	if len(s.Steps) < len(DefaultSteps()) {
		steps := DefaultSteps()
		for i := range s.Steps {
			steps[i].Completed = s.Steps[i].Completed
		}
		s.Steps = steps
	}
	if s.CurrentStep < 0 || s.CurrentStep >= len(s.Steps) {
		s.CurrentStep = 0
	}
	return &Container{state: s}
}

// State returns a copy of the current state for reading.
func (c *Container) State() State {
	return c.state
}

// StepCount returns the number of wizard steps.
func (c *Container) StepCount() int {
	return len(c.state.Steps)
}

// CurrentStep returns the current step index.
func (c *Container) CurrentStep() int {
	return c.state.CurrentStep
}

// Active reports whether step i is the current one. Active is
// derived, never stored, so exactly one step is active at a time.
func (c *Container) Active(i int) bool {
	return i == c.state.CurrentStep
}

// NextStep marks the current step completed and advances by one.
// No-op on the last step.
func (c *Container) NextStep() {
	if c.state.CurrentStep >= len(c.state.Steps)-1 {
		return
	}
	c.state.Steps[c.state.CurrentStep].Completed = true
	c.state.CurrentStep++
}

// PreviousStep retreats by one without touching completed flags.
// No-op on the first step.
func (c *Container) PreviousStep() {
	if c.state.CurrentStep <= 0 {
		return
	}
	c.state.CurrentStep--
}

// GoToStep jumps directly to step n. Out-of-range indices are
// silently ignored. Callers are expected to restrict jumps to
// visited steps; the container itself does not.
func (c *Container) GoToStep(n int) {
	if n < 0 || n >= len(c.state.Steps) {
		return
	}
	c.state.CurrentStep = n
}

// ResetWizard restores the initial empty state and step flags.
func (c *Container) ResetWizard() {
	c.state = State{Steps: DefaultSteps()}
}
