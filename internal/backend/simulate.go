package backend

import (
	"fmt"
	"math"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/donut-tui/donut-tui/internal/model"
)

// trainingRun couples a job record with the wall-clock anchor the
// simulator uses to advance it. Progress is a pure function of
// elapsed time, so polls are idempotent and order-independent.
type trainingRun struct {
	job             model.TrainingJob
	startedAt       time.Time
	secondsPerEpoch float64
	cancelled       bool
}

// TrainingParams are the knobs collected on the configuration step.
// Zero values fall back to the configured defaults.
type TrainingParams struct {
	BaseModel    string
	Epochs       int
	BatchSize    int
	LearningRate float64
	WeightDecay  float64
	ImageSize    int
}

// ParamsFromConfig builds TrainingParams from the wizard's free-form
// key/value training config.
func ParamsFromConfig(kv map[string]string) TrainingParams {
	p := TrainingParams{BaseModel: kv["baseModel"]}
	p.Epochs, _ = strconv.Atoi(kv["epochs"])
	p.BatchSize, _ = strconv.Atoi(kv["batchSize"])
	p.LearningRate, _ = strconv.ParseFloat(kv["learningRate"], 64)
	p.WeightDecay, _ = strconv.ParseFloat(kv["weightDecay"], 64)
	p.ImageSize, _ = strconv.Atoi(kv["imageSize"])
	return p
}

// StartTraining creates and starts a simulated training job over a
// labeled dataset.
func (c *Client) StartTraining(datasetID string, params TrainingParams) (*model.TrainingJob, error) {
	c.simulate()

	c.mu.Lock()
	defer c.mu.Unlock()

	ds, ok := c.datasets[datasetID]
	if !ok {
		return nil, fmt.Errorf("backend: dataset %s not found", datasetID)
	}
	if ds.LabeledDocuments == 0 {
		return nil, fmt.Errorf("backend: dataset %s has no labeled documents", datasetID)
	}

	defaults := c.cfg.Training
	if params.BaseModel == "" {
		params.BaseModel = defaults.BaseModel
	}
	if params.Epochs <= 0 {
		params.Epochs = defaults.Epochs
	}
	if params.BatchSize <= 0 {
		params.BatchSize = defaults.BatchSize
	}
	if params.LearningRate <= 0 {
		params.LearningRate = defaults.LearningRate
	}
	if params.WeightDecay <= 0 {
		params.WeightDecay = defaults.WeightDecay
	}
	if params.ImageSize <= 0 {
		params.ImageSize = defaults.ImageSize
	}

	stepsPerEpoch := (ds.LabeledDocuments + params.BatchSize - 1) / params.BatchSize
	now := c.now()

	job := model.TrainingJob{
		ID:           uuid.NewString(),
		DatasetID:    datasetID,
		BaseModel:    params.BaseModel,
		Epochs:       params.Epochs,
		BatchSize:    params.BatchSize,
		LearningRate: params.LearningRate,
		WeightDecay:  params.WeightDecay,
		ImageSize:    params.ImageSize,

		GradientAccumulationSteps: 1,
		Status:                    model.JobPending,
		TotalSteps:                stepsPerEpoch * params.Epochs,
		StartedAt:                 &now,
		CreatedAt:                 now,
	}

	c.runs[job.ID] = &trainingRun{
		job:             job,
		startedAt:       now,
		secondsPerEpoch: defaults.SecondsPerEpoch,
	}
	c.recordLocked("Started training %q (%s, %d epochs)", ds.Name, params.BaseModel, params.Epochs)
	return &job, nil
}

// TrainingStatus returns the job advanced to the current wall-clock
// position. The first poll past the end materializes the trained
// model.
func (c *Client) TrainingStatus(jobID string) (*model.TrainingJob, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	run, ok := c.runs[jobID]
	if !ok {
		return nil, fmt.Errorf("backend: training job %s not found", jobID)
	}
	if run.cancelled || run.job.Terminal() {
		j := run.job
		return &j, nil
	}

	c.advanceLocked(run)
	j := run.job
	return &j, nil
}

// advanceLocked recomputes the run's visible state from elapsed time.
// Phase layout: a fixed preparing window, then the epochs, then a
// short evaluating window, then completed.
func (c *Client) advanceLocked(run *trainingRun) {
	const prepareSecs = 2.0
	const evaluateSecs = 2.0

	elapsed := c.now().Sub(run.startedAt).Seconds()
	trainSecs := run.secondsPerEpoch * float64(run.job.Epochs)

	switch {
	case elapsed < prepareSecs:
		run.job.Status = model.JobPreparing

	case elapsed < prepareSecs+trainSecs:
		run.job.Status = model.JobTraining
		frac := (elapsed - prepareSecs) / trainSecs
		run.job.CurrentEpoch = int(frac*float64(run.job.Epochs)) + 1
		if run.job.CurrentEpoch > run.job.Epochs {
			run.job.CurrentEpoch = run.job.Epochs
		}
		run.job.CurrentStep = int(frac * float64(run.job.TotalSteps))
		c.updateLossLocked(run, frac)

	case elapsed < prepareSecs+trainSecs+evaluateSecs:
		run.job.Status = model.JobEvaluating
		run.job.CurrentEpoch = run.job.Epochs
		run.job.CurrentStep = run.job.TotalSteps
		c.updateLossLocked(run, 1)

	default:
		run.job.Status = model.JobCompleted
		run.job.CurrentEpoch = run.job.Epochs
		run.job.CurrentStep = run.job.TotalSteps
		c.updateLossLocked(run, 1)
		done := c.now()
		run.job.CompletedAt = &done
		c.materializeModelLocked(run)
	}
}

// updateLossLocked follows a decaying curve with a little noise, the
// shape a real fine-tune run would show.
func (c *Client) updateLossLocked(run *trainingRun, frac float64) {
	noise := (c.rng.Float64() - 0.5) * 0.05
	run.job.TrainLoss = round4(2.4*math.Exp(-3*frac) + 0.08 + noise)
	run.job.ValLoss = round4(run.job.TrainLoss + 0.06 + c.rng.Float64()*0.04)
	if run.job.BestValLoss == 0 || run.job.ValLoss < run.job.BestValLoss {
		run.job.BestValLoss = run.job.ValLoss
	}
}

func (c *Client) materializeModelLocked(run *trainingRun) {
	for _, m := range c.models {
		if m.JobID == run.job.ID {
			return
		}
	}

	ds := c.datasets[run.job.DatasetID]
	name := "model"
	docTypeID := ""
	if ds != nil {
		name = ds.Name
		docTypeID = ds.DocumentTypeID
	}

	m := &model.TrainedModel{
		ID:             uuid.NewString(),
		JobID:          run.job.ID,
		Version:        fmt.Sprintf("1.%d", len(c.models)),
		Name:           name,
		DocumentTypeID: docTypeID,

		JSONExactMatch:   round4(0.82 + c.rng.Float64()*0.12),
		FieldAccuracy:    round4(0.88 + c.rng.Float64()*0.09),
		RowRecall:        round4(0.78 + c.rng.Float64()*0.15),
		AvgInferenceTime: round4(0.6 + c.rng.Float64()*0.8),

		Status:    model.ModelInactive,
		CreatedAt: c.now(),
	}
	c.models[m.ID] = m
	c.recordLocked("Training finished for %q (v%s)", m.Name, m.Version)
}

// CancelTraining stops a running job. Completed jobs cannot be
// cancelled.
func (c *Client) CancelTraining(jobID string) (*model.TrainingJob, error) {
	c.simulate()

	c.mu.Lock()
	defer c.mu.Unlock()

	run, ok := c.runs[jobID]
	if !ok {
		return nil, fmt.Errorf("backend: training job %s not found", jobID)
	}
	if run.job.Status == model.JobCompleted {
		return nil, fmt.Errorf("backend: training job %s already completed", jobID)
	}

	run.cancelled = true
	run.job.Status = model.JobCancelled
	done := c.now()
	run.job.CompletedAt = &done
	c.recordLocked("Cancelled training job %s", jobID[:8])
	j := run.job
	return &j, nil
}

// ModelForJob returns the trained model produced by a completed job.
func (c *Client) ModelForJob(jobID string) (*model.TrainedModel, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, m := range c.models {
		if m.JobID == jobID {
			out := *m
			return &out, nil
		}
	}
	return nil, fmt.Errorf("backend: no model for job %s", jobID)
}

// PromoteModel activates a model for production inference.
func (c *Client) PromoteModel(modelID string) (*model.TrainedModel, error) {
	c.simulate()

	c.mu.Lock()
	defer c.mu.Unlock()

	m, ok := c.models[modelID]
	if !ok {
		return nil, fmt.Errorf("backend: model %s not found", modelID)
	}

	// Only one production model per document type.
	for _, other := range c.models {
		if other.DocumentTypeID == m.DocumentTypeID && other.IsProduction {
			other.IsProduction = false
			other.Status = model.ModelArchived
		}
	}

	now := c.now()
	m.Status = model.ModelActive
	m.IsProduction = true
	m.PromotedAt = &now
	c.recordLocked("Promoted %q v%s to production", m.Name, m.Version)
	out := *m
	return &out, nil
}

// TestModel runs simulated extraction over the given documents and
// returns per-document results keyed by document ID. Confidences are
// seeded per document so repeated runs agree.
func (c *Client) TestModel(modelID string, docs []model.Document, fields []model.FieldDef) (map[string]model.TestResult, error) {
	c.simulate()

	c.mu.Lock()
	defer c.mu.Unlock()

	m, ok := c.models[modelID]
	if !ok {
		return nil, fmt.Errorf("backend: model %s not found", modelID)
	}

	results := make(map[string]model.TestResult, len(docs))
	for _, doc := range docs {
		results[doc.ID] = c.extractLocked(m, doc, fields)
	}
	m.InferenceCount += len(docs)
	return results, nil
}

// ExtractPreview runs simulated extraction for a single document.
func (c *Client) ExtractPreview(modelID string, doc model.Document, fields []model.FieldDef) (*model.TestResult, error) {
	c.simulate()

	c.mu.Lock()
	defer c.mu.Unlock()

	m, ok := c.models[modelID]
	if !ok {
		return nil, fmt.Errorf("backend: model %s not found", modelID)
	}
	m.InferenceCount++
	r := c.extractLocked(m, doc, fields)
	return &r, nil
}

func (c *Client) extractLocked(m *model.TrainedModel, doc model.Document, fields []model.FieldDef) model.TestResult {
	seeded := seededRand(doc.ID)

	out := model.TestResult{
		DocumentID:  doc.ID,
		Fields:      make(map[string]model.ExtractedField, len(fields)),
		ExactMatch:  true,
		InferenceMS: 400 + seeded.Intn(900),
	}

	for _, f := range fields {
		conf := 0.6 + seeded.Float64()*0.39
		out.Fields[f.ID] = model.ExtractedField{
			Value:      sampleValue(f, seeded),
			Confidence: round4(conf),
		}
		if conf < 0.75 {
			out.ExactMatch = false
		}
	}
	return out
}

func round4(v float64) float64 {
	return math.Round(v*10000) / 10000
}
