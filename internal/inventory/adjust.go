package inventory

import (
	"fmt"

	"github.com/numjklpp1/parts-management-pro/internal/models"
)

// Reconcile diffs an edited stock snapshot against the current
// projection and emits one delta record per changed cell. The absolute
// edited value is never persisted; only the difference enters the
// ledger, so replaying the full history still reproduces the edited
// state. Reconciling a snapshot against itself yields an empty batch.
//
// Cells are visited in stage/model display order so the emitted batch
// is deterministic. Cells the edited snapshot omits are left unchanged.
func Reconcile(edited map[string]map[string]int, baseline StockSnapshot) []models.PartRecord {
	var batch []models.PartRecord
	timestamp := Timestamp()

	for _, stage := range StageOrder {
		editedModels, ok := edited[string(stage)]
		if !ok {
			continue
		}
		for _, model := range StageModels(stage) {
			want, ok := editedModels[model]
			if !ok {
				continue
			}
			have := baseline[stage][model]
			if want == have {
				continue
			}
			batch = append(batch, models.PartRecord{
				ID:            NewRecordID(models.CategoryGlassSlidingDoor),
				Timestamp:     timestamp,
				Category:      models.CategoryGlassSlidingDoor,
				Name:          model,
				Specification: string(stage),
				Quantity:      want - have,
				Note:          fmt.Sprintf("[盤點調整] %d -> %d", have, want),
			})
		}
	}
	return batch
}
