package wizard

import (
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/donut-tui/donut-tui/internal/backend"
	"github.com/donut-tui/donut-tui/internal/components"
	"github.com/donut-tui/donut-tui/internal/theme"
	"github.com/donut-tui/donut-tui/internal/validate"
	"github.com/donut-tui/donut-tui/internal/wizard"
)

// configureStep collects the hyperparameters for the training run.
type configureStep struct {
	inputs   []*components.InputField
	keys     []string
	fieldIdx int
}

func (s *configureStep) init(m *Model) {
	cfg := m.deps.Cfg.Training
	stored := m.state().TrainingConfig

	def := func(key, fallback string) string {
		if stored[key] != "" {
			return stored[key]
		}
		return fallback
	}

	mk := func(label, key, value string, rules validate.Rules) *components.InputField {
		s.keys = append(s.keys, key)
		return components.NewInputField(value).
			SetLabel(label).
			SetMaxLength(24).
			SetRules(rules).
			SetValue(value)
	}

	s.keys = nil
	s.inputs = []*components.InputField{
		mk("Base model", "baseModel", def("baseModel", cfg.BaseModel),
			validate.Rules{Required: true}),
		mk("Epochs", "epochs", def("epochs", strconv.Itoa(cfg.Epochs)),
			validate.Rules{Required: true, Numeric: true, Min: validate.Float(1), Max: validate.Float(100)}),
		mk("Batch size", "batchSize", def("batchSize", strconv.Itoa(cfg.BatchSize)),
			validate.Rules{Required: true, Numeric: true, Min: validate.Float(1), Max: validate.Float(64)}),
		mk("Learning rate", "learningRate", def("learningRate", strconv.FormatFloat(cfg.LearningRate, 'g', -1, 64)),
			validate.Rules{Required: true, Numeric: true, Min: validate.Float(1e-7), Max: validate.Float(1)}),
		mk("Weight decay", "weightDecay", def("weightDecay", strconv.FormatFloat(cfg.WeightDecay, 'g', -1, 64)),
			validate.Rules{Required: true, Numeric: true, Min: validate.Float(0), Max: validate.Float(1)}),
		mk("Image size", "imageSize", def("imageSize", strconv.Itoa(cfg.ImageSize)),
			validate.Rules{Required: true, Numeric: true, Min: validate.Float(256), Max: validate.Float(2560)}),
	}
	s.fieldIdx = 0
	s.inputs[0].SetFocused(true)
	s.store(m)
}

func (s *configureStep) handleKey(m *Model, msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "tab", "down":
		s.move(1)
		return nil
	case "shift+tab", "up":
		s.move(-1)
		return nil
	}

	s.inputs[s.fieldIdx].HandleKey(msg)
	s.store(m)
	return nil
}

func (s *configureStep) move(delta int) {
	s.inputs[s.fieldIdx].SetFocused(false)
	s.fieldIdx = (s.fieldIdx + delta + len(s.inputs)) % len(s.inputs)
	s.inputs[s.fieldIdx].SetFocused(true)
}

// store writes the current values into wizard state so autosave and
// validation see them.
func (s *configureStep) store(m *Model) {
	cfg := make(map[string]string, len(s.keys)+1)
	for k, v := range m.state().TrainingConfig {
		cfg[k] = v
	}
	for i, key := range s.keys {
		cfg[key] = s.inputs[i].GetValue()
	}
	m.dispatch(wizard.SetTrainingConfig{Config: cfg})
}

func (s *configureStep) valid() bool {
	for _, inp := range s.inputs {
		inp.Touch()
		if !inp.IsValid() {
			return false
		}
	}
	return true
}

// start kicks off the simulated training run.
func (s *configureStep) start(m *Model) tea.Cmd {
	if !s.valid() {
		m.busy = false
		return m.setAlert("Fix the highlighted parameters first", true)
	}

	ds := m.state().Dataset
	if ds == nil {
		m.busy = false
		return m.setAlert("Finish the fields step first", true)
	}

	client := m.deps.Client
	datasetID := ds.ID
	params := backend.ParamsFromConfig(m.state().TrainingConfig)

	return func() tea.Msg {
		job, err := client.StartTraining(datasetID, params)
		if err != nil {
			return errMsg{err}
		}
		return trainStartedMsg{job: job}
	}
}

func (s *configureStep) render(m *Model, width, height int) string {
	var b strings.Builder
	for _, inp := range s.inputs {
		b.WriteString(inp.SetWidth(width-34).Render() + "\n")
	}
	b.WriteString("\n" + theme.TextDimStyle.Render(
		"Training is simulated locally; no GPU is touched."))
	b.WriteString("\n" + theme.RenderHelpBar([]string{
		"[Tab] Next field", "[Ctrl+N] Start Training",
	}, width-4))
	return b.String()
}
