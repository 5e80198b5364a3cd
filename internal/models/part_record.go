package models

// PartCategory identifies one of the part families the shop tracks.
// The values are the labels used in the backing spreadsheet, so they
// must not change without migrating the sheet.
type PartCategory string

const (
	CategoryGlassSlidingDoor PartCategory = "玻璃拉門"
	CategoryIronSlidingDoor  PartCategory = "鐵拉門"
	CategoryDrawer           PartCategory = "抽屜"
	CategoryCabinetBody      PartCategory = "桶身"
	CategoryPaint            PartCategory = "噴漆"
)

// Categories lists every category in display order.
var Categories = []PartCategory{
	CategoryGlassSlidingDoor,
	CategoryIronSlidingDoor,
	CategoryDrawer,
	CategoryCabinetBody,
	CategoryPaint,
}

func (c PartCategory) Valid() bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

// PartRecord is a single immutable fact in the append-only ledger.
// Stock for any (category, specification, name) is the sum of Quantity
// over its records; corrections are new offsetting records, never edits.
type PartRecord struct {
	ID            string       `json:"id"`
	Timestamp     string       `json:"timestamp"`
	Category      PartCategory `json:"category"`
	Name          string       `json:"name"`
	Specification string       `json:"specification"`
	Quantity      int          `json:"quantity"`
	Note          string       `json:"note"`
}

// SubmitRecordRequest is the payload for a manual submission.
// Adjustment marks the record as a manual stock correction: the note is
// prefixed and no automatic deductions are generated for it.
type SubmitRecordRequest struct {
	Category      PartCategory `json:"category" validate:"required"`
	Name          string       `json:"name" validate:"required"`
	Specification string       `json:"specification" validate:"required"`
	Quantity      int          `json:"quantity"`
	Note          string       `json:"note"`
	Adjustment    bool         `json:"adjustment"`
}

// SubmitResult reports what a submission pipeline run persisted.
type SubmitResult struct {
	State   string       `json:"state"` // "committed" or "rolled_back"
	Records []PartRecord `json:"records"`
}

// AdjustStockRequest carries a fully edited glass-door stock snapshot.
// Only cells that differ from the current projection produce records.
type AdjustStockRequest struct {
	Edited map[string]map[string]int `json:"edited" validate:"required"`
	Note   string                    `json:"note"`
}

// DashboardStats mirrors the numbers the dashboard view renders.
type DashboardStats struct {
	TotalItems           int                `json:"total_items"`
	TotalQuantity        int                `json:"total_quantity"`
	CategoryDistribution []CategoryQuantity `json:"category_distribution"`
	RecentActivity       []PartRecord       `json:"recent_activity"`
}

type CategoryQuantity struct {
	Name  PartCategory `json:"name"`
	Value int          `json:"value"`
}
