package backend

import (
	"sort"

	"github.com/donut-tui/donut-tui/internal/model"
)

// Metrics are the aggregates the dashboard and analytics views show.
// Counters reflect real client state; trends are generated.
type Metrics struct {
	DocumentsProcessed int
	ModelsTrained      int
	ActiveJobs         int
	AvgFieldAccuracy   float64
	AvgInferenceMS     int

	// AccuracyTrend is a 14-point series for the sparkline.
	AccuracyTrend []float64

	// ExtractionsByType maps document type display names to counts.
	ExtractionsByType map[string]int
}

// Metrics computes the dashboard aggregates.
func (c *Client) Metrics() (*Metrics, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	m := &Metrics{
		ExtractionsByType: make(map[string]int),
	}

	for _, docs := range c.docs {
		m.DocumentsProcessed += len(docs)
	}
	for _, run := range c.runs {
		if !run.job.Terminal() && !run.cancelled {
			m.ActiveJobs++
		}
	}

	var accSum float64
	var latSum float64
	for _, tm := range c.models {
		m.ModelsTrained++
		accSum += tm.FieldAccuracy
		latSum += tm.AvgInferenceTime
	}
	if m.ModelsTrained > 0 {
		m.AvgFieldAccuracy = round4(accSum / float64(m.ModelsTrained))
		m.AvgInferenceMS = int(latSum / float64(m.ModelsTrained) * 1000)
	}

	// Random-walk trend anchored at the current average accuracy.
	base := m.AvgFieldAccuracy
	if base == 0 {
		base = 0.85
	}
	trend := make([]float64, 14)
	v := base - 0.06
	for i := range trend {
		v += (c.rng.Float64() - 0.45) * 0.02
		if v < 0.5 {
			v = 0.5
		}
		if v > 0.99 {
			v = 0.99
		}
		trend[i] = round4(v)
	}
	trend[len(trend)-1] = base
	m.AccuracyTrend = trend

	for dsID, docs := range c.docs {
		ds := c.datasets[dsID]
		if ds == nil {
			continue
		}
		if dt, ok := c.docTypes[ds.DocumentTypeID]; ok {
			m.ExtractionsByType[dt.DisplayName] += len(docs)
		}
	}

	return m, nil
}

// Models lists trained models, newest first.
func (c *Client) Models() ([]model.TrainedModel, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]model.TrainedModel, 0, len(c.models))
	for _, m := range c.models {
		out = append(out, *m)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}
