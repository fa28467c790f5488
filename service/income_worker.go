package service

import (
	"context"
	"time"

	log "github.com/sirupsen/logrus"
)

// IncomeWorker invokes the accrual sweep on a fixed interval
type IncomeWorker struct {
	incomeService IncomeService
	interval      time.Duration
}

// NewIncomeWorker creates a new income worker
func NewIncomeWorker(incomeService IncomeService, interval time.Duration) *IncomeWorker {
	return &IncomeWorker{
		incomeService: incomeService,
		interval:      interval,
	}
}

// Start begins the periodic accrual loop and returns a stop function.
// Each tick runs a full sweep; a failed sweep is logged and the loop
// keeps its schedule.
func (w *IncomeWorker) Start(ctx context.Context) func() {
	stopChan := make(chan struct{})

	go func() {
		log.Infof("Income worker started, accruing every %v", w.interval)

		for {
			select {
			case <-ctx.Done():
				log.Info("Income worker shutting down (context cancelled)...")
				return
			case <-stopChan:
				log.Info("Income worker shutting down (stop requested)...")
				return
			case <-time.After(w.interval):
				run, err := w.incomeService.RunAccrualTick(ctx)
				if err != nil {
					log.Errorf("Error running income accrual tick: %v", err)
					continue
				}
				log.WithFields(log.Fields{
					"total_credited":    run.TotalCredited,
					"accounts_credited": run.AccountsCredited,
				}).Debug("Income accrual tick finished")
			}
		}
	}()

	return func() {
		close(stopChan)
	}
}
