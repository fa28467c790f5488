package service

import (
	"context"
	"errors"
	"time"

	"cardbot/events"
	"cardbot/models"

	log "github.com/sirupsen/logrus"
)

// incomeService implements the IncomeService interface
type incomeService struct {
	uowFactory UnitOfWorkFactory
}

// NewIncomeService creates a new income service
func NewIncomeService(uowFactory UnitOfWorkFactory) IncomeService {
	return &incomeService{
		uowFactory: uowFactory,
	}
}

// RunAccrualTick credits every account the summed hourly income of its
// current inventory. The credit is additive per invocation; the caller
// owns the once-per-interval schedule. An account whose row cannot be
// credited is logged and skipped, the sweep itself keeps going.
func (s *incomeService) RunAccrualTick(ctx context.Context) (*models.AccrualRun, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, storageErr("run accrual tick", err)
	}
	defer uow.Rollback()

	incomes, err := uow.InventoryRepository().SumIncomeByOwner(ctx)
	if err != nil {
		return nil, storageErr("run accrual tick", err)
	}

	now := time.Now().UTC()

	var totalCredited int64
	var accountsCredited, accountsSkipped int

	for _, income := range incomes {
		if income.Income <= 0 {
			continue
		}

		if err := uow.AccountRepository().AddCoins(ctx, income.UserID, income.Income); err != nil {
			if errors.Is(err, ErrAccountNotFound) {
				// Account deleted since the sum was taken.
				log.WithFields(log.Fields{
					"user_id": income.UserID,
					"income":  income.Income,
				}).Warn("Skipping accrual credit for missing account")
				accountsSkipped++
				continue
			}
			return nil, storageErr("run accrual tick", err)
		}

		totalCredited += income.Income
		accountsCredited++
	}

	run := &models.AccrualRun{
		RanAt:            now,
		TotalCredited:    totalCredited,
		AccountsCredited: accountsCredited,
		ExecutionSummary: map[string]interface{}{
			"owners_seen":       len(incomes),
			"accounts_credited": accountsCredited,
			"accounts_skipped":  accountsSkipped,
			"total_credited":    totalCredited,
		},
	}
	if err := uow.AccrualRunRepository().Create(ctx, run); err != nil {
		return nil, storageErr("run accrual tick", err)
	}

	uow.EventBus().Publish(events.AccrualCompleteEvent{
		TotalCredited:    totalCredited,
		AccountsCredited: accountsCredited,
	})

	if err := uow.Commit(); err != nil {
		return nil, storageErr("run accrual tick", err)
	}

	log.WithFields(log.Fields{
		"owners_seen":       len(incomes),
		"accounts_credited": accountsCredited,
		"accounts_skipped":  accountsSkipped,
		"total_credited":    totalCredited,
	}).Info("Completed income accrual tick")

	return run, nil
}
