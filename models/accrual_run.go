package models

import (
	"time"
)

// AccrualRun records one execution of the passive-income sweep
type AccrualRun struct {
	ID               int64                  `db:"id"`
	RanAt            time.Time              `db:"ran_at"`
	TotalCredited    int64                  `db:"total_credited"`
	AccountsCredited int                    `db:"accounts_credited"`
	ExecutionSummary map[string]interface{} `db:"execution_summary"`
	CreatedAt        time.Time              `db:"created_at"`
}
