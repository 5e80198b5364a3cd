package inventory

import "github.com/numjklpp1/parts-management-pro/internal/models"

// StockSnapshot maps stage -> model bucket -> projected stock. It is
// derived, never persisted, and recomputed from the full record list on
// every read so it cannot drift from the ledger.
type StockSnapshot map[Stage]map[string]int

// Project sums the quantities of every glass-door record matching the
// stage and model, applying side-less normalization where the stage
// calls for it. Returns 0 when nothing matches.
func Project(records []models.PartRecord, stage Stage, model string) int {
	want := NormalizeModel(stage, model)
	total := 0
	for _, r := range records {
		if r.Category != models.CategoryGlassSlidingDoor {
			continue
		}
		if Stage(r.Specification) != stage {
			continue
		}
		if NormalizeModel(stage, r.Name) != want {
			continue
		}
		total += r.Quantity
	}
	return total
}

// Summary projects every (stage, model) pair into a full snapshot.
func Summary(records []models.PartRecord) StockSnapshot {
	snap := make(StockSnapshot, len(StageOrder))
	for _, stage := range StageOrder {
		buckets := make(map[string]int)
		for _, model := range StageModels(stage) {
			buckets[model] = Project(records, stage, model)
		}
		snap[stage] = buckets
	}
	return snap
}
