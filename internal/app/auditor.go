/**
 * @description
 * Scheduled balance audit. Each run compares every account's cached balance
 * against its opening balance plus the signed sum of its transactions and
 * logs any account that has drifted. With repair enabled the cached balance
 * is rewritten from the ledger.
 */

package app

import (
	"context"
	"log"
	"time"

	"github.com/financeflow/finance-service/internal/store"
)

// BalanceAuditor reconciles cached account balances against the ledger.
type BalanceAuditor struct {
	repo   store.BalanceAuditRepository
	repair bool
}

// NewBalanceAuditor creates an auditor. With repair true drifted balances
// are corrected in place, otherwise they are only reported.
func NewBalanceAuditor(repo store.BalanceAuditRepository, repair bool) *BalanceAuditor {
	return &BalanceAuditor{repo: repo, repair: repair}
}

// Run executes one audit pass. It is safe to call from a cron schedule; a
// run that fails only logs and leaves the next run to retry.
func (a *BalanceAuditor) Run() {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	drifts, err := a.repo.AccountBalanceDrift(ctx)
	if err != nil {
		log.Printf("level=error component=balance_auditor msg=\"audit query failed\" err=%v", err)
		return
	}
	if len(drifts) == 0 {
		log.Printf("level=info component=balance_auditor msg=\"audit clean\"")
		return
	}

	for _, drift := range drifts {
		log.Printf("level=warn component=balance_auditor msg=\"balance drift detected\" account_id=%s cached=%s ledger=%s",
			drift.AccountID, drift.CachedBalance, drift.LedgerBalance)
		if !a.repair {
			continue
		}
		if err := a.repo.SetAccountBalance(ctx, drift.AccountID, drift.LedgerBalance); err != nil {
			log.Printf("level=error component=balance_auditor msg=\"balance repair failed\" account_id=%s err=%v", drift.AccountID, err)
			continue
		}
		log.Printf("level=info component=balance_auditor msg=\"balance repaired\" account_id=%s balance=%s", drift.AccountID, drift.LedgerBalance)
	}
}
