package backend

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/donut-tui/donut-tui/internal/config"
	"github.com/donut-tui/donut-tui/internal/model"
)

// testClient returns a client with zero latency, a fixed seed, and a
// controllable clock.
func testClient(t *testing.T) (*Client, *time.Time) {
	t.Helper()
	now := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	clock := &now
	c := NewClient(config.DefaultConfig(),
		WithLatency(0),
		WithSeed(42),
		WithClock(func() time.Time { return *clock }))
	return c, clock
}

func tempDocs(t *testing.T, names ...string) []string {
	t.Helper()
	dir := t.TempDir()
	paths := make([]string, 0, len(names))
	for _, n := range names {
		p := filepath.Join(dir, n)
		require.NoError(t, os.WriteFile(p, []byte("stub"), 0o644))
		paths = append(paths, p)
	}
	return paths
}

// setupDataset walks the client to a labeled dataset.
func setupDataset(t *testing.T, c *Client) (*model.TrainingDataset, []model.Document) {
	t.Helper()

	fields := model.DefaultFields("invoice")
	ds, err := c.SaveWizardConfig(model.DocumentType{ID: "invoice", DisplayName: "Invoice"}, "Invoice Model v1", fields)
	require.NoError(t, err)

	docs, err := c.UploadDocuments(ds.ID, tempDocs(t, "a.pdf", "b.png", "c.jpg"))
	require.NoError(t, err)
	require.Len(t, docs, 3)

	labels := make([]model.DocumentLabel, len(docs))
	for i, d := range docs {
		labels[i] = model.DocumentLabel{DocumentID: d.ID, LabelData: map[string]string{"field-1": "INV-1"}, Validated: true}
	}
	require.NoError(t, c.SaveAnnotations(ds.ID, labels))
	return ds, docs
}

func TestLogin(t *testing.T) {
	c, _ := testClient(t)

	_, err := c.Login("dev", "wrong")
	assert.Error(t, err)

	sess, err := c.Login("dev", "dev123")
	require.NoError(t, err)
	assert.Equal(t, "dev", sess.Username)
	assert.NotEmpty(t, sess.Token)

	sub, err := c.ValidateToken(sess.Token)
	require.NoError(t, err)
	assert.Equal(t, "dev", sub)

	_, err = c.ValidateToken("garbage")
	assert.Error(t, err)
}

func TestSaveWizardConfig_Validation(t *testing.T) {
	c, _ := testClient(t)

	_, err := c.SaveWizardConfig(model.DocumentType{ID: "invoice"}, "", model.DefaultFields("invoice"))
	assert.Error(t, err, "model name is required")

	_, err = c.SaveWizardConfig(model.DocumentType{ID: "invoice"}, "Invoice Model", nil)
	assert.Error(t, err, "at least one field is required")

	ds, err := c.SaveWizardConfig(model.DocumentType{ID: "invoice", DisplayName: "Invoice"}, "Invoice Model", model.DefaultFields("invoice"))
	require.NoError(t, err)
	assert.Equal(t, "invoice", ds.DocumentTypeID)
	assert.Equal(t, 0.8, ds.TrainSplit)
}

func TestUploadDocuments_RejectsUnsupportedExtension(t *testing.T) {
	c, _ := testClient(t)
	ds, _ := setupDataset(t, c)

	_, err := c.UploadDocuments(ds.ID, tempDocs(t, "notes.txt"))
	assert.Error(t, err)

	_, err = c.UploadDocuments("no-such-dataset", tempDocs(t, "a.pdf"))
	assert.Error(t, err)
}

func TestRecentActivity_NewestFirstAndCapped(t *testing.T) {
	c, _ := testClient(t)
	setupDataset(t, c)

	entries, err := c.RecentActivity(2)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	// setupDataset creates, uploads, then annotates.
	assert.Contains(t, entries[0].Message, "annotation")
	assert.Contains(t, entries[1].Message, "Uploaded")

	all, err := c.RecentActivity(100)
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestSaveAnnotations_MarksDocumentsLabeled(t *testing.T) {
	c, _ := testClient(t)
	ds, _ := setupDataset(t, c)

	docs, err := c.Documents(ds.ID)
	require.NoError(t, err)
	for _, d := range docs {
		assert.Equal(t, model.DocumentLabeled, d.Status)
	}
}

func TestTrainingLifecycle(t *testing.T) {
	c, clock := testClient(t)
	ds, _ := setupDataset(t, c)

	job, err := c.StartTraining(ds.ID, TrainingParams{Epochs: 4})
	require.NoError(t, err)
	assert.Equal(t, model.JobPending, job.Status)
	assert.Equal(t, 4, job.Epochs)
	assert.Equal(t, "naver-clova-ix/donut-base", job.BaseModel, "defaults fill unset params")

	// Preparing window
	*clock = clock.Add(1 * time.Second)
	st, err := c.TrainingStatus(job.ID)
	require.NoError(t, err)
	assert.Equal(t, model.JobPreparing, st.Status)

	// Mid-training: 2s prepare + 4 epochs * 4s/epoch
	*clock = clock.Add(9 * time.Second)
	st, err = c.TrainingStatus(job.ID)
	require.NoError(t, err)
	assert.Equal(t, model.JobTraining, st.Status)
	assert.GreaterOrEqual(t, st.CurrentEpoch, 1)
	assert.LessOrEqual(t, st.CurrentEpoch, 4)
	assert.Greater(t, st.TrainLoss, 0.0)
	midLoss := st.TrainLoss

	// Evaluating window
	*clock = clock.Add(9 * time.Second)
	st, err = c.TrainingStatus(job.ID)
	require.NoError(t, err)
	assert.Equal(t, model.JobEvaluating, st.Status)
	assert.Less(t, st.TrainLoss, midLoss, "loss decays over the run")

	// Completed: model materializes
	*clock = clock.Add(5 * time.Second)
	st, err = c.TrainingStatus(job.ID)
	require.NoError(t, err)
	assert.Equal(t, model.JobCompleted, st.Status)
	assert.Equal(t, 4, st.CurrentEpoch)
	require.NotNil(t, st.CompletedAt)

	tm, err := c.ModelForJob(job.ID)
	require.NoError(t, err)
	assert.Equal(t, "Invoice Model v1", tm.Name)
	assert.Equal(t, model.ModelInactive, tm.Status)

	// Terminal state is sticky
	*clock = clock.Add(time.Hour)
	st2, err := c.TrainingStatus(job.ID)
	require.NoError(t, err)
	assert.Equal(t, model.JobCompleted, st2.Status)
}

func TestStartTraining_RequiresLabels(t *testing.T) {
	c, _ := testClient(t)

	ds, err := c.SaveWizardConfig(model.DocumentType{ID: "invoice", DisplayName: "Invoice"}, "M", model.DefaultFields("invoice"))
	require.NoError(t, err)

	_, err = c.StartTraining(ds.ID, TrainingParams{})
	assert.Error(t, err, "unlabeled dataset cannot train")
}

func TestCancelTraining(t *testing.T) {
	c, clock := testClient(t)
	ds, _ := setupDataset(t, c)

	job, err := c.StartTraining(ds.ID, TrainingParams{Epochs: 4})
	require.NoError(t, err)

	*clock = clock.Add(3 * time.Second)
	st, err := c.CancelTraining(job.ID)
	require.NoError(t, err)
	assert.Equal(t, model.JobCancelled, st.Status)

	// Cancelled jobs stay cancelled on later polls.
	*clock = clock.Add(time.Hour)
	st, err = c.TrainingStatus(job.ID)
	require.NoError(t, err)
	assert.Equal(t, model.JobCancelled, st.Status)

	// Completed jobs cannot be cancelled.
	job2, err := c.StartTraining(ds.ID, TrainingParams{Epochs: 1})
	require.NoError(t, err)
	*clock = clock.Add(time.Hour)
	_, err = c.TrainingStatus(job2.ID)
	require.NoError(t, err)
	_, err = c.CancelTraining(job2.ID)
	assert.Error(t, err)
}

func TestTestModel_DeterministicPerDocument(t *testing.T) {
	c, clock := testClient(t)
	ds, docs := setupDataset(t, c)
	fields := model.DefaultFields("invoice")

	job, err := c.StartTraining(ds.ID, TrainingParams{Epochs: 1})
	require.NoError(t, err)
	*clock = clock.Add(time.Hour)
	_, err = c.TrainingStatus(job.ID)
	require.NoError(t, err)
	tm, err := c.ModelForJob(job.ID)
	require.NoError(t, err)

	first, err := c.TestModel(tm.ID, docs, fields)
	require.NoError(t, err)
	require.Len(t, first, len(docs))

	second, err := c.TestModel(tm.ID, docs, fields)
	require.NoError(t, err)

	for id, r := range first {
		assert.Equal(t, r.Fields, second[id].Fields, "same document yields same extraction")
		assert.Len(t, r.Fields, len(fields))
		for _, f := range r.Fields {
			assert.GreaterOrEqual(t, f.Confidence, 0.6)
			assert.LessOrEqual(t, f.Confidence, 1.0)
		}
	}
}

func TestPromoteModel_SingleProductionPerType(t *testing.T) {
	c, clock := testClient(t)
	ds, _ := setupDataset(t, c)

	trainOne := func() *model.TrainedModel {
		job, err := c.StartTraining(ds.ID, TrainingParams{Epochs: 1})
		require.NoError(t, err)
		*clock = clock.Add(time.Hour)
		_, err = c.TrainingStatus(job.ID)
		require.NoError(t, err)
		tm, err := c.ModelForJob(job.ID)
		require.NoError(t, err)
		return tm
	}

	first := trainOne()
	second := trainOne()

	p1, err := c.PromoteModel(first.ID)
	require.NoError(t, err)
	assert.True(t, p1.IsProduction)
	assert.Equal(t, model.ModelActive, p1.Status)

	p2, err := c.PromoteModel(second.ID)
	require.NoError(t, err)
	assert.True(t, p2.IsProduction)

	models, err := c.Models()
	require.NoError(t, err)
	production := 0
	for _, m := range models {
		if m.IsProduction {
			production++
		}
	}
	assert.Equal(t, 1, production)
}

func TestCreateAPIKey(t *testing.T) {
	c, _ := testClient(t)

	key, err := c.CreateAPIKey("Production Key")
	require.NoError(t, err)
	assert.NotEmpty(t, key.Key)
	assert.Equal(t, key.Key[:8], key.KeyPrefix)
	assert.True(t, key.IsActive)

	listed, err := c.ListAPIKeys()
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.Empty(t, listed[0].Key, "full key only returned on creation")
	assert.Equal(t, key.KeyPrefix, listed[0].KeyPrefix)
}

func TestMetrics(t *testing.T) {
	c, clock := testClient(t)
	ds, _ := setupDataset(t, c)

	job, err := c.StartTraining(ds.ID, TrainingParams{Epochs: 1})
	require.NoError(t, err)

	m, err := c.Metrics()
	require.NoError(t, err)
	assert.Equal(t, 3, m.DocumentsProcessed)
	assert.Equal(t, 1, m.ActiveJobs)
	assert.Equal(t, 0, m.ModelsTrained)
	assert.Len(t, m.AccuracyTrend, 14)

	*clock = clock.Add(time.Hour)
	_, err = c.TrainingStatus(job.ID)
	require.NoError(t, err)

	m, err = c.Metrics()
	require.NoError(t, err)
	assert.Equal(t, 0, m.ActiveJobs)
	assert.Equal(t, 1, m.ModelsTrained)
	assert.Greater(t, m.AvgFieldAccuracy, 0.0)
	assert.Equal(t, 3, m.ExtractionsByType["Invoice"])
}
