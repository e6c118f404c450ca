package wizard

import (
	"github.com/donut-tui/donut-tui/internal/model"
)

// Action is the tagged union of wizard mutations. Each action
// replaces exactly one top-level field of the state; cross-field
// validation is left to the step that dispatched it.
type Action interface {
	isAction()
}

type SetCurrentStep struct{ Step int }

type SetDocumentType struct{ DocumentType *model.DocumentType }

type SetFields struct{ Fields []model.FieldDef }

type SetUploadedDocuments struct{ Documents []model.Document }

type SetDataset struct{ Dataset *model.TrainingDataset }

type SetLabeledDocuments struct{ Labels []model.DocumentLabel }

type SetTrainingConfig struct{ Config map[string]string }

type SetTrainingJob struct{ Job *model.TrainingJob }

type SetTrainedModel struct{ Model *model.TrainedModel }

type SetTestResults struct{ Results map[string]model.TestResult }

type Reset struct{}

func (SetCurrentStep) isAction()       {}
func (SetDocumentType) isAction()      {}
func (SetFields) isAction()            {}
func (SetUploadedDocuments) isAction() {}
func (SetDataset) isAction()           {}
func (SetLabeledDocuments) isAction()  {}
func (SetTrainingConfig) isAction()    {}
func (SetTrainingJob) isAction()       {}
func (SetTrainedModel) isAction()      {}
func (SetTestResults) isAction()       {}
func (Reset) isAction()                {}

// Dispatch applies one action to the state. Unknown step indices in
// SetCurrentStep are ignored, matching GoToStep.
func (c *Container) Dispatch(action Action) {
	switch a := action.(type) {
	case SetCurrentStep:
		c.GoToStep(a.Step)
	case SetDocumentType:
		c.state.DocumentType = a.DocumentType
	case SetFields:
		c.state.Fields = a.Fields
	case SetUploadedDocuments:
		c.state.UploadedDocuments = a.Documents
	case SetDataset:
		c.state.Dataset = a.Dataset
	case SetLabeledDocuments:
		c.state.LabeledDocuments = a.Labels
	case SetTrainingConfig:
		c.state.TrainingConfig = a.Config
	case SetTrainingJob:
		c.state.TrainingJob = a.Job
	case SetTrainedModel:
		c.state.TrainedModel = a.Model
	case SetTestResults:
		c.state.TestResults = a.Results
	case Reset:
		c.ResetWizard()
	}
}
