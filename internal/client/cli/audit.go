package cli

import (
	"context"
	"fmt"
	"strconv"
	"time"
)

const defaultAuditLimit = 20

// Audit prints the operator's recent audit trail. An optional argument
// overrides the entry limit.
func (a *App) Audit(ctx context.Context, args []string) error {
	limit := defaultAuditLimit
	if len(args) > 0 {
		n, err := strconv.Atoi(args[0])
		if err != nil || n <= 0 {
			fmt.Println("Usage: audit [limit]")
			return nil
		}
		limit = n
	}

	entries, err := a.client.RecentAudit(ctx, limit)
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		fmt.Println("No audit entries.")
		return nil
	}
	for i := range entries {
		e := entries[i]
		fmt.Printf("%s  %-17s  %s\n",
			time.UnixMilli(e.Timestamp).Format(time.RFC3339), e.Action, e.Details)
	}
	return nil
}
