package wizard

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/donut-tui/donut-tui/internal/components"
	"github.com/donut-tui/donut-tui/internal/model"
	"github.com/donut-tui/donut-tui/internal/theme"
	"github.com/donut-tui/donut-tui/internal/utils"
)

// trainStep monitors the running training job.
type trainStep struct {
	bar *components.ProgressBar
}

func (s *trainStep) init(m *Model) {
	s.bar = components.NewProgressBar(1).
		SetLabel("Training").
		SetShowPercent(true).
		SetShowETA(true)
}

// tick schedules the next status poll.
func (s *trainStep) tick(m *Model, jobID string) tea.Cmd {
	interval := time.Duration(m.deps.Cfg.Training.PollIntervalSecs) * time.Second
	if interval <= 0 {
		interval = 2 * time.Second
	}
	return tea.Tick(interval, func(time.Time) tea.Msg {
		return trainTickMsg{jobID: jobID}
	})
}

// poll fetches the job status and, once the job completes, the
// resulting model.
func (s *trainStep) poll(m *Model, jobID string) tea.Cmd {
	// Stale tick from a job we navigated away from.
	cur := m.state().TrainingJob
	if cur == nil || cur.ID != jobID {
		return nil
	}

	client := m.deps.Client
	return func() tea.Msg {
		job, err := client.TrainingStatus(jobID)
		if err != nil {
			return errMsg{err}
		}
		msg := trainStatusMsg{job: job}
		if job.Status == model.JobCompleted {
			if trained, err := client.ModelForJob(jobID); err == nil {
				msg.trained = trained
			}
		}
		return msg
	}
}

func (s *trainStep) handleKey(m *Model, msg tea.KeyMsg) tea.Cmd {
	if msg.String() != "x" {
		return nil
	}

	job := m.state().TrainingJob
	if job == nil || job.Terminal() {
		return nil
	}

	client := m.deps.Client
	jobID := job.ID
	return func() tea.Msg {
		cancelled, err := client.CancelTraining(jobID)
		if err != nil {
			return errMsg{err}
		}
		return trainStatusMsg{job: cancelled}
	}
}

func (s *trainStep) render(m *Model, width, height int) string {
	job := m.state().TrainingJob
	if job == nil {
		return theme.TextDimStyle.Render("No training run yet. Start one from the previous step.")
	}

	var b strings.Builder

	b.WriteString("Status: " + theme.StatusTextStyle(job.Status).Render(job.Status) + "\n")
	b.WriteString(theme.TextDimStyle.Render("Base model: "+job.BaseModel) + "\n\n")

	total := int64(job.TotalSteps)
	if total < 1 {
		total = 1
	}
	s.bar.SetWidth(width - 30).SetProgress(int64(job.CurrentStep), total)
	b.WriteString(s.bar.Render() + "\n\n")

	rows := [][2]string{
		{"Epoch", fmt.Sprintf("%d / %d", job.CurrentEpoch, job.Epochs)},
		{"Step", fmt.Sprintf("%d / %d", job.CurrentStep, job.TotalSteps)},
		{"Train loss", fmt.Sprintf("%.4f", job.TrainLoss)},
		{"Val loss", fmt.Sprintf("%.4f", job.ValLoss)},
		{"Best val loss", fmt.Sprintf("%.4f", job.BestValLoss)},
	}
	for _, r := range rows {
		b.WriteString(utils.PadString(r[0], 16) + theme.TextBoldStyle.Render(r[1]) + "\n")
	}

	if job.StartedAt != nil {
		elapsed := time.Since(*job.StartedAt).Truncate(time.Second)
		b.WriteString(utils.PadString("Elapsed", 16) + utils.FormatDuration(elapsed) + "\n")
	}

	switch job.Status {
	case model.JobCompleted:
		b.WriteString("\n" + theme.SuccessStyle.Render("Training complete. Continue to testing."))
	case model.JobFailed:
		b.WriteString("\n" + theme.ErrorStyle.Render("Training failed: "+job.ErrorMessage))
	case model.JobCancelled:
		b.WriteString("\n" + theme.WarningStyle.Render("Training cancelled."))
	default:
		b.WriteString("\n" + theme.RenderHelpBar([]string{"[X] Cancel Training"}, width-4))
	}

	return b.String()
}
