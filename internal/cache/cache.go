// Package cache provides a result cache for simulated schedules. Simulation
// is a pure function of the loan configuration and extra-payment plan, so
// results can be cached indefinitely under a hash of those inputs.
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"sort"
	"strings"

	"github.com/hypotools/amortize/internal/config"
)

// Cache stores serialized schedule responses keyed by a configuration hash.
type Cache interface {
	Get(ctx context.Context, key string) (string, bool)
	Set(ctx context.Context, key string, value string) error
}

// Key derives a deterministic cache key from a loan's simulation inputs.
// Only fields that influence the schedule participate; cosmetic fields like
// the loan name do not.
func Key(l config.Loan) string {
	var b strings.Builder
	fmt.Fprintf(&b, "p=%v;r=%v;t=%d;m=%v;c=%v", l.Principal, l.AnnualRate, l.TermMonths, l.MonthlyPayment, l.SondertilgungCapPercent)
	extras := make([]config.ExtraPayment, len(l.ExtraPayments))
	copy(extras, l.ExtraPayments)
	sort.Slice(extras, func(i, j int) bool {
		if extras[i].Month != extras[j].Month {
			return extras[i].Month < extras[j].Month
		}
		return extras[i].EveryMonths < extras[j].EveryMonths
	})
	for _, extra := range extras {
		fmt.Fprintf(&b, ";e=%d:%v:%d:%d", extra.Month, extra.Amount, extra.EveryMonths, extra.UntilMonth)
	}
	sum := sha256.Sum256([]byte(b.String()))
	return "schedule:" + hex.EncodeToString(sum[:])
}
