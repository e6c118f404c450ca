package wizard

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/donut-tui/donut-tui/internal/model"
)

func TestGoToStep_Bounds(t *testing.T) {
	c := New()
	c.GoToStep(3)
	require.Equal(t, 3, c.CurrentStep())

	for _, n := range []int{-1, -100, c.StepCount(), c.StepCount() + 5} {
		c.GoToStep(n)
		assert.Equal(t, 3, c.CurrentStep(), "out-of-range jump to %d must be a no-op", n)
	}
}

func TestNextStep_MarksCompletedAndAdvances(t *testing.T) {
	c := New()
	c.NextStep()

	assert.Equal(t, 1, c.CurrentStep())
	assert.True(t, c.State().Steps[0].Completed)
	assert.False(t, c.State().Steps[1].Completed)
}

func TestNextStep_NoOpOnLastStep(t *testing.T) {
	c := New()
	last := c.StepCount() - 1
	c.GoToStep(last)
	c.NextStep()

	assert.Equal(t, last, c.CurrentStep())
	assert.False(t, c.State().Steps[last].Completed)
}

func TestPreviousStep_DoesNotAlterCompleted(t *testing.T) {
	c := New()
	c.NextStep()
	c.NextStep()
	require.Equal(t, 2, c.CurrentStep())

	c.PreviousStep()
	assert.Equal(t, 1, c.CurrentStep())
	assert.True(t, c.State().Steps[0].Completed)
	assert.True(t, c.State().Steps[1].Completed)

	// No-op on first step
	c.GoToStep(0)
	c.PreviousStep()
	assert.Equal(t, 0, c.CurrentStep())
}

func TestActive_DerivedSingleStep(t *testing.T) {
	c := New()
	c.NextStep()
	c.NextStep()

	activeCount := 0
	for i := 0; i < c.StepCount(); i++ {
		if c.Active(i) {
			activeCount++
		}
	}
	assert.Equal(t, 1, activeCount)
	assert.True(t, c.Active(2))
}

func TestResetWizard_Idempotent(t *testing.T) {
	c := New()
	c.Dispatch(SetDocumentType{DocumentType: &model.DocumentType{ID: "invoice"}})
	c.NextStep()
	c.NextStep()

	c.ResetWizard()
	once := c.State()

	c.ResetWizard()
	twice := c.State()

	assert.Equal(t, once, twice)
	assert.Equal(t, 0, twice.CurrentStep)
	assert.Nil(t, twice.DocumentType)
	for _, s := range twice.Steps {
		assert.False(t, s.Completed)
	}
}

func TestDispatch_ReplacesSingleField(t *testing.T) {
	c := New()

	docType := &model.DocumentType{ID: "invoice", DisplayName: "Invoice"}
	c.Dispatch(SetDocumentType{DocumentType: docType})
	c.Dispatch(SetFields{Fields: []model.FieldDef{{ID: "field-1", Name: "Invoice Number"}}})

	s := c.State()
	assert.Equal(t, "invoice", s.DocumentType.ID)
	assert.Len(t, s.Fields, 1)
	assert.Nil(t, s.Dataset, "unrelated fields stay untouched")

	c.Dispatch(SetFields{Fields: nil})
	assert.Empty(t, c.State().Fields)
	assert.Equal(t, "invoice", c.State().DocumentType.ID)
}

func TestWizard_EndToEndScenario(t *testing.T) {
	c := New()

	c.Dispatch(SetDocumentType{DocumentType: &model.DocumentType{ID: "invoice"}})
	c.Dispatch(SetUploadedDocuments{Documents: []model.Document{
		{ID: "doc-a", Filename: "invoice-001.pdf"},
	}})
	c.NextStep()
	c.NextStep()

	s := c.State()
	assert.Equal(t, 2, s.CurrentStep)
	assert.True(t, s.Steps[0].Completed)
	assert.True(t, s.Steps[1].Completed)
	assert.Equal(t, "invoice", s.DocumentType.ID)
	assert.Len(t, s.UploadedDocuments, 1)
}

func TestStepComplete_PresenceChecks(t *testing.T) {
	c := New()
	assert.False(t, c.StepComplete(0))

	c.Dispatch(SetDocumentType{DocumentType: &model.DocumentType{ID: "invoice"}})
	assert.True(t, c.StepComplete(0))

	assert.False(t, c.StepComplete(2))
	c.Dispatch(SetUploadedDocuments{Documents: []model.Document{{ID: "doc-a"}}})
	assert.True(t, c.StepComplete(2))

	// Annotation requires a label per uploaded document
	assert.False(t, c.StepComplete(3))
	c.Dispatch(SetLabeledDocuments{Labels: []model.DocumentLabel{{DocumentID: "doc-a"}}})
	assert.True(t, c.StepComplete(3))

	// Training step requires a completed job
	c.Dispatch(SetTrainingJob{Job: &model.TrainingJob{ID: "job-1", Status: model.JobTraining}})
	assert.False(t, c.StepComplete(5))
	c.Dispatch(SetTrainingJob{Job: &model.TrainingJob{ID: "job-1", Status: model.JobCompleted}})
	assert.True(t, c.StepComplete(5))

	assert.False(t, c.StepComplete(-1))
	assert.False(t, c.StepComplete(c.StepCount()))
}

func TestState_RoundTripsThroughJSON(t *testing.T) {
	c := New()
	c.Dispatch(SetDocumentType{DocumentType: &model.DocumentType{ID: "invoice"}})
	c.Dispatch(SetTrainingConfig{Config: map[string]string{"epochs": "10"}})
	c.NextStep()

	data, err := json.Marshal(c.State())
	require.NoError(t, err)

	var restored State
	require.NoError(t, json.Unmarshal(data, &restored))

	r := Restore(restored)
	assert.Equal(t, 1, r.CurrentStep())
	assert.True(t, r.State().Steps[0].Completed)
	assert.Equal(t, "invoice", r.State().DocumentType.ID)
	assert.Equal(t, "10", r.State().TrainingConfig["epochs"])
}

func TestRestore_RepairsBadSnapshots(t *testing.T) {
	r := Restore(State{CurrentStep: 42, Steps: []Step{{ID: "document_type", Completed: true}}})
	assert.Equal(t, 0, r.CurrentStep())
	assert.Equal(t, len(DefaultSteps()), r.StepCount())
	assert.True(t, r.State().Steps[0].Completed)
}

func TestProgress(t *testing.T) {
	c := New()
	assert.Equal(t, 0.0, c.Progress())

	c.NextStep()
	c.NextStep()
	assert.InDelta(t, 2.0/float64(c.StepCount()), c.Progress(), 1e-9)
}
