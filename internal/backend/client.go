package backend

import (
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/donut-tui/donut-tui/internal/config"
	"github.com/donut-tui/donut-tui/internal/model"
)

// Client simulates the training backend in-process. It exposes the
// REST surface the wizard assumes (document types, uploads, datasets,
// training jobs, models, API keys) with small artificial latency and
// timer-driven training progress. No real network I/O happens here.
type Client struct {
	mu sync.Mutex

	cfg     *config.Config
	now     func() time.Time
	latency time.Duration
	rng     *rand.Rand

	docTypes map[string]model.DocumentType
	datasets map[string]*model.TrainingDataset
	docs     map[string][]model.Document      // dataset ID -> documents
	labels   map[string][]model.DocumentLabel // dataset ID -> labels
	runs     map[string]*trainingRun          // job ID -> run
	models   map[string]*model.TrainedModel
	keys     []model.APIKey
	activity []ActivityEntry

	signingKey []byte
}

// Option configures a Client.
type Option func(*Client)

// WithLatency overrides the simulated request latency. Tests pass 0.
func WithLatency(d time.Duration) Option {
	return func(c *Client) { c.latency = d }
}

// WithClock overrides the time source used by the training simulator.
func WithClock(now func() time.Time) Option {
	return func(c *Client) { c.now = now }
}

// WithSeed makes the simulated metrics deterministic.
func WithSeed(seed int64) Option {
	return func(c *Client) { c.rng = rand.New(rand.NewSource(seed)) }
}

// NewClient creates a client seeded with the built-in document types.
func NewClient(cfg *config.Config, opts ...Option) *Client {
	c := &Client{
		cfg:        cfg,
		now:        time.Now,
		latency:    150 * time.Millisecond,
		rng:        rand.New(rand.NewSource(time.Now().UnixNano())),
		docTypes:   make(map[string]model.DocumentType),
		datasets:   make(map[string]*model.TrainingDataset),
		docs:       make(map[string][]model.Document),
		labels:     make(map[string][]model.DocumentLabel),
		runs:       make(map[string]*trainingRun),
		models:     make(map[string]*model.TrainedModel),
		signingKey: []byte(uuid.NewString()),
	}
	for _, opt := range opts {
		opt(c)
	}
	for _, dt := range model.BuiltinDocumentTypes() {
		c.docTypes[dt.ID] = dt
	}
	return c
}

// simulate blocks for the artificial request latency.
func (c *Client) simulate() {
	if c.latency > 0 {
		time.Sleep(c.latency)
	}
}

// ListDocumentTypes returns the document type catalog.
func (c *Client) ListDocumentTypes() ([]model.DocumentType, error) {
	c.simulate()
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]model.DocumentType, 0, len(c.docTypes))
	for _, dt := range model.BuiltinDocumentTypes() {
		out = append(out, c.docTypes[dt.ID])
	}
	return out, nil
}

// SaveWizardConfig creates or updates a document type schema and
// creates the training dataset for it. Mirrors the backend's wizard
// convenience endpoint.
func (c *Client) SaveWizardConfig(docType model.DocumentType, modelName string, fields []model.FieldDef) (*model.TrainingDataset, error) {
	c.simulate()

	if docType.ID == "" || modelName == "" {
		return nil, fmt.Errorf("backend: document type and model name are required")
	}
	if len(fields) == 0 {
		return nil, fmt.Errorf("backend: at least one field must be defined")
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	dt, ok := c.docTypes[docType.ID]
	if !ok {
		dt = docType
	}
	dt.Fields = fields
	c.docTypes[dt.ID] = dt

	ds := &model.TrainingDataset{
		ID:             uuid.NewString(),
		Name:           modelName,
		Description:    fmt.Sprintf("Training dataset for %s", dt.DisplayName),
		DocumentTypeID: dt.ID,
		TrainSplit:     c.cfg.Dataset.TrainSplit,
		ValSplit:       c.cfg.Dataset.ValSplit,
		TestSplit:      c.cfg.Dataset.TestSplit,
		CreatedAt:      c.now(),
	}
	c.datasets[ds.ID] = ds
	c.recordLocked("Created dataset %q for %s", ds.Name, dt.DisplayName)
	return ds, nil
}

// UploadDocuments registers local files as training documents for a
// dataset. Unsupported extensions are rejected.
func (c *Client) UploadDocuments(datasetID string, paths []string) ([]model.Document, error) {
	c.simulate()

	c.mu.Lock()
	ds, ok := c.datasets[datasetID]
	c.mu.Unlock()
	if !ok {
		return nil, fmt.Errorf("backend: dataset %s not found", datasetID)
	}

	var uploaded []model.Document
	for _, p := range paths {
		ext := strings.ToLower(filepath.Ext(p))
		if !allowedExt(ext) {
			return nil, fmt.Errorf("backend: unsupported file type %q", ext)
		}

		var size int64
		if info, err := os.Stat(p); err == nil {
			size = info.Size()
		}

		uploaded = append(uploaded, model.Document{
			ID:         uuid.NewString(),
			Filename:   filepath.Base(p),
			Path:       p,
			Size:       size,
			Status:     model.DocumentUploaded,
			PageCount:  1 + c.intn(4),
			UploadedAt: c.now(),
		})
	}

	c.mu.Lock()
	c.docs[datasetID] = append(c.docs[datasetID], uploaded...)
	ds.TotalDocuments = len(c.docs[datasetID])
	c.recordLocked("Uploaded %d document(s) to %q", len(uploaded), ds.Name)
	c.mu.Unlock()

	return uploaded, nil
}

// Documents lists a dataset's uploaded documents.
func (c *Client) Documents(datasetID string) ([]model.Document, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.datasets[datasetID]; !ok {
		return nil, fmt.Errorf("backend: dataset %s not found", datasetID)
	}
	return append([]model.Document(nil), c.docs[datasetID]...), nil
}

// SaveAnnotations stores document labels for a dataset and flips the
// labeled documents to their labeled status.
func (c *Client) SaveAnnotations(datasetID string, labels []model.DocumentLabel) error {
	c.simulate()

	c.mu.Lock()
	defer c.mu.Unlock()

	ds, ok := c.datasets[datasetID]
	if !ok {
		return fmt.Errorf("backend: dataset %s not found", datasetID)
	}

	c.labels[datasetID] = labels
	ds.LabeledDocuments = len(labels)

	labeled := make(map[string]bool, len(labels))
	for _, l := range labels {
		labeled[l.DocumentID] = true
	}
	docs := c.docs[datasetID]
	for i := range docs {
		if labeled[docs[i].ID] {
			docs[i].Status = model.DocumentLabeled
		}
	}
	c.recordLocked("Saved %d annotation(s) for %q", len(labels), ds.Name)
	return nil
}

func (c *Client) intn(n int) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.rng.Intn(n)
}

func allowedExt(ext string) bool {
	for _, a := range model.AllowedExtensions() {
		if ext == a {
			return true
		}
	}
	return false
}
