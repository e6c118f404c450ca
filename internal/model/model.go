package model

import "time"

// Passive records mirroring the training backend's response shapes.
// Nothing here is validated beyond the presence checks the wizard
// steps perform; the backend owns these objects.

// Document statuses
const (
	DocumentUploaded   = "uploaded"
	DocumentProcessing = "processing"
	DocumentLabeled    = "labeled"
	DocumentTraining   = "training"
	DocumentCompleted  = "completed"
	DocumentError      = "error"
)

// Training job statuses
const (
	JobPending    = "pending"
	JobPreparing  = "preparing"
	JobTraining   = "training"
	JobEvaluating = "evaluating"
	JobCompleted  = "completed"
	JobFailed     = "failed"
	JobCancelled  = "cancelled"
)

// Trained model statuses
const (
	ModelActive   = "active"
	ModelInactive = "inactive"
	ModelTesting  = "testing"
	ModelArchived = "archived"
)

// FieldDef describes one extraction field of a document type schema.
type FieldDef struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Type     string `json:"type"` // text, number, date, currency, table
	Required bool   `json:"required"`
}

// DocumentType is a document category with its expected fields.
type DocumentType struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	DisplayName string     `json:"display_name"`
	Description string     `json:"description"`
	Fields      []FieldDef `json:"fields"`
}

// Document is an uploaded document file descriptor.
type Document struct {
	ID         string    `json:"id"`
	Filename   string    `json:"original_filename"`
	Path       string    `json:"path"`
	Size       int64     `json:"file_size"`
	Status     string    `json:"status"`
	PageCount  int       `json:"page_count"`
	UploadedAt time.Time `json:"created_at"`
}

// DocumentLabel holds the annotated ground truth for one document.
type DocumentLabel struct {
	DocumentID       string            `json:"document_id"`
	LabelData        map[string]string `json:"label_data"` // field ID -> annotated value
	Validated        bool              `json:"is_validated"`
	TimeSpentSeconds int               `json:"time_spent_seconds"`
}

// TrainingDataset is a named collection of documents for training.
type TrainingDataset struct {
	ID               string    `json:"id"`
	Name             string    `json:"name"`
	Description      string    `json:"description"`
	DocumentTypeID   string    `json:"document_type"`
	TrainSplit       float64   `json:"train_split"`
	ValSplit         float64   `json:"val_split"`
	TestSplit        float64   `json:"test_split"`
	TotalDocuments   int       `json:"total_documents"`
	LabeledDocuments int       `json:"labeled_documents"`
	CreatedAt        time.Time `json:"created_at"`
}

// TrainingJob is one training run over a dataset.
type TrainingJob struct {
	ID        string `json:"id"`
	DatasetID string `json:"dataset"`

	// Configuration
	BaseModel                 string  `json:"base_model"`
	Epochs                    int     `json:"epochs"`
	BatchSize                 int     `json:"batch_size"`
	LearningRate              float64 `json:"learning_rate"`
	WeightDecay               float64 `json:"weight_decay"`
	GradientAccumulationSteps int     `json:"gradient_accumulation_steps"`
	ImageSize                 int     `json:"image_size"`

	// State
	Status       string `json:"status"`
	CurrentEpoch int    `json:"current_epoch"`
	CurrentStep  int    `json:"current_step"`
	TotalSteps   int    `json:"total_steps"`

	// Metrics
	TrainLoss   float64 `json:"train_loss"`
	ValLoss     float64 `json:"val_loss"`
	BestValLoss float64 `json:"best_val_loss"`

	// Timing
	StartedAt   *time.Time `json:"started_at,omitempty"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`

	ErrorMessage string    `json:"error_message,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

// Terminal reports whether the job reached a final status.
func (j *TrainingJob) Terminal() bool {
	switch j.Status {
	case JobCompleted, JobFailed, JobCancelled:
		return true
	}
	return false
}

// TrainedModel is a completed model ready for testing or deployment.
type TrainedModel struct {
	ID             string `json:"id"`
	JobID          string `json:"training_job"`
	Version        string `json:"version"`
	Name           string `json:"name"`
	DocumentTypeID string `json:"document_type"`

	// Performance metrics
	JSONExactMatch   float64 `json:"json_exact_match"`
	FieldAccuracy    float64 `json:"field_accuracy"`
	RowRecall        float64 `json:"row_recall"`
	AvgInferenceTime float64 `json:"avg_inference_time"`

	// Deployment
	Status       string     `json:"status"`
	IsProduction bool       `json:"is_production"`
	PromotedAt   *time.Time `json:"promoted_at,omitempty"`

	InferenceCount int       `json:"inference_count"`
	CreatedAt      time.Time `json:"created_at"`
}

// ExtractedField is one predicted field value with its confidence.
type ExtractedField struct {
	Value      string  `json:"value"`
	Confidence float64 `json:"confidence"`
}

// TestResult is the extraction outcome for one test document.
type TestResult struct {
	DocumentID  string                    `json:"document_id"`
	Fields      map[string]ExtractedField `json:"fields"`
	ExactMatch  bool                      `json:"exact_match"`
	InferenceMS int                       `json:"inference_ms"`
}

// APIKey is an inference API credential shown on the deployment step.
type APIKey struct {
	ID            string     `json:"id"`
	Name          string     `json:"name"`
	Key           string     `json:"key,omitempty"` // full key, only present on creation
	KeyPrefix     string     `json:"key_prefix"`
	IsActive      bool       `json:"is_active"`
	RateLimit     int        `json:"rate_limit"`
	TotalRequests int        `json:"total_requests"`
	CreatedAt     time.Time  `json:"created_at"`
	ExpiresAt     *time.Time `json:"expires_at,omitempty"`
}
