package wizard

import "github.com/donut-tui/donut-tui/internal/model"

// StepComplete reports whether step i's completeness predicate holds
// against the current state. These are presence checks only; field
// level validation belongs to the step forms.
func (c *Container) StepComplete(i int) bool {
	if i < 0 || i >= len(c.state.Steps) {
		return false
	}

	s := c.state
	switch s.Steps[i].ID {
	case "document_type":
		return s.DocumentType != nil
	case "fields":
		return len(s.Fields) > 0
	case "upload":
		return len(s.UploadedDocuments) > 0
	case "annotate":
		return len(s.LabeledDocuments) > 0 &&
			len(s.LabeledDocuments) >= len(s.UploadedDocuments)
	case "configure":
		return len(s.TrainingConfig) > 0
	case "train":
		return s.TrainingJob != nil && s.TrainingJob.Status == model.JobCompleted
	case "test":
		return len(s.TestResults) > 0
	case "review":
		return len(s.TestResults) > 0
	case "deploy":
		return s.TrainedModel != nil && s.TrainedModel.IsProduction
	default:
		return false
	}
}

// Progress returns the completed fraction of the step list, for the
// shell's overall progress bar.
func (c *Container) Progress() float64 {
	if len(c.state.Steps) == 0 {
		return 0
	}
	done := 0
	for _, s := range c.state.Steps {
		if s.Completed {
			done++
		}
	}
	return float64(done) / float64(len(c.state.Steps))
}
