package cli

import (
	"fmt"

	"github.com/pterm/pterm"
)

type Progress struct {
	bar *pterm.ProgressbarPrinter
}

// StartProgress shows a progress bar for total training iterations.
func StartProgress(total int) (*Progress, error) {
	bar, err := pterm.DefaultProgressbar.WithTotal(total).WithTitle("Training").Start()
	if err != nil {
		return nil, err
	}
	return &Progress{bar: bar}, nil
}

// Update matches the trainer's progress callback.
func (p *Progress) Update(iteration int, utility [2]float64) {
	p.bar.UpdateTitle(fmt.Sprintf("Training (%.2f / %.2f)", utility[0], utility[1]))
	p.bar.Increment()
}

func (p *Progress) Stop() {
	_, _ = p.bar.Stop()
}
