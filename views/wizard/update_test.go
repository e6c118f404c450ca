package wizard

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/donut-tui/donut-tui/internal/backend"
	"github.com/donut-tui/donut-tui/internal/config"
	"github.com/donut-tui/donut-tui/internal/model"
	"github.com/donut-tui/donut-tui/internal/wizard"
)

func testModel(t *testing.T) Model {
	t.Helper()
	cfg := config.DefaultConfig()
	return New(Deps{Cfg: cfg, Client: backend.NewClient(cfg, backend.WithLatency(0))})
}

func TestAdvance_DeployCompletionWithoutSaver(t *testing.T) {
	m := testModel(t)

	m.dispatch(wizard.SetTrainedModel{Model: &model.TrainedModel{ID: "m1", IsProduction: true}})
	m.container.GoToStep(stepDeploy)

	// No Saver is wired here; finishing the wizard must still reset
	// cleanly and hand control back to the dashboard.
	next, cmd := m.advance()
	require.NotNil(t, cmd)
	assert.Equal(t, "dashboard_view", cmd())
	assert.Equal(t, 0, next.container.CurrentStep())
	assert.Nil(t, next.state().TrainedModel)
}

func TestAdvance_BlockedOnIncompleteStep(t *testing.T) {
	m := testModel(t)

	next, cmd := m.advance()
	assert.Equal(t, 0, next.container.CurrentStep())
	require.NotNil(t, cmd, "blocked advance raises an alert")
}
