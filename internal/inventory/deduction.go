package inventory

import (
	"fmt"

	"github.com/numjklpp1/parts-management-pro/internal/models"
)

// Expand turns a primary record into the full batch to persist: the
// primary first, followed by compensating negative records for the
// upstream stages it consumed from.
//
// Availability is always projected against pre, the ledger as it stood
// before this batch, so compensations emitted earlier in the same batch
// are never double counted. Each chain is walked in priority order with
// capped subtraction: a stage gives up at most its projected stock, and
// any shortfall carries to the next stage. Shortfall left at the end of
// a chain is deliberately not compensated; the last stage going
// negative is the backlog signal.
//
// Manual adjustments never trigger deductions; that is the operator's
// escape hatch for correcting stock without side effects.
func Expand(primary models.PartRecord, pre []models.PartRecord, manual bool) []models.PartRecord {
	batch := []models.PartRecord{primary}

	if manual || primary.Category != models.CategoryGlassSlidingDoor || primary.Quantity <= 0 {
		return batch
	}
	chains, linked := deductionChains[Stage(primary.Specification)]
	if !linked {
		return batch
	}

	for _, chain := range chains {
		need := primary.Quantity
		for _, source := range chain {
			if need <= 0 {
				break
			}
			available := Project(pre, source, primary.Name)
			consume := min(available, need)
			if consume > 0 {
				batch = append(batch, models.PartRecord{
					ID:            NewRecordID(primary.Category),
					Timestamp:     primary.Timestamp,
					Category:      primary.Category,
					Name:          NormalizeModel(source, primary.Name),
					Specification: string(source),
					Quantity:      -consume,
					Note:          fmt.Sprintf("自動扣料 (%s)", source),
				})
				need -= consume
			}
		}
	}
	return batch
}
