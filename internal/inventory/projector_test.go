package inventory

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/numjklpp1/parts-management-pro/internal/models"
)

func glassRecord(stage Stage, name string, qty int) models.PartRecord {
	return models.PartRecord{
		Category:      models.CategoryGlassSlidingDoor,
		Name:          name,
		Specification: string(stage),
		Quantity:      qty,
	}
}

func TestProject_SumsMatchingRecords(t *testing.T) {
	records := []models.PartRecord{
		glassRecord(StageFinished, "UG3A-L", 5),
		glassRecord(StageFinished, "UG3A-L", 3),
		glassRecord(StageFinished, "UG3A-L", -2),
		glassRecord(StageFinished, "UG3A-R", 7),      // other side
		glassRecord(StageFrameSprayed, "UG3A-L", 10), // other stage
	}

	assert.Equal(t, 6, Project(records, StageFinished, "UG3A-L"))
	assert.Equal(t, 7, Project(records, StageFinished, "UG3A-R"))
	assert.Equal(t, 10, Project(records, StageFrameSprayed, "UG3A-L"))
}

func TestProject_EmptyAndNoMatch(t *testing.T) {
	assert.Equal(t, 0, Project(nil, StageFinished, "UG3A-L"))

	records := []models.PartRecord{glassRecord(StageFinished, "AK2U-L", 4)}
	assert.Equal(t, 0, Project(records, StageFinished, "UG3A-L"))
}

func TestProject_IgnoresOtherCategories(t *testing.T) {
	records := []models.PartRecord{
		glassRecord(StageFinished, "UG3A-L", 5),
		{
			Category:      models.CategoryDrawer,
			Name:          "UG3A-L",
			Specification: string(StageFinished),
			Quantity:      100,
		},
	}
	assert.Equal(t, 5, Project(records, StageFinished, "UG3A-L"))
}

func TestProject_OrderIndependent(t *testing.T) {
	records := []models.PartRecord{
		glassRecord(StageFinished, "AK3U-L", 4),
		glassRecord(StageFinished, "AK3U-L", -1),
		glassRecord(StageFinished, "AK3U-L", 9),
		glassRecord(StageFinished, "AK3U-L", -5),
	}
	want := Project(records, StageFinished, "AK3U-L")

	reversed := make([]models.PartRecord, 0, len(records))
	for i := len(records) - 1; i >= 0; i-- {
		reversed = append(reversed, records[i])
	}
	assert.Equal(t, want, Project(reversed, StageFinished, "AK3U-L"))
	assert.Equal(t, 7, want)
}

func TestProject_SideLessMergesModels(t *testing.T) {
	// UG3A and AK3B share raw glass: both sides of both models land in
	// one bucket at the side-less stages.
	records := []models.PartRecord{
		glassRecord(StageGlass, "UG3A-L", 2),
		glassRecord(StageGlass, "UG3A-R", 3),
		glassRecord(StageGlass, "AK3B-L", 4),
		glassRecord(StageGlass, "UG3A/AK3B", 1),
	}

	for _, model := range []string{"UG3A-L", "UG3A-R", "AK3B-L", "AK3B-R", "UG3A/AK3B"} {
		assert.Equal(t, 10, Project(records, StageGlass, model), "model %s", model)
	}

	// Handed stages keep the variants apart.
	assert.Equal(t, 0, Project(records, StageFinished, "UG3A-L"))
}

func TestBaseName(t *testing.T) {
	tests := []struct {
		model string
		want  string
	}{
		{"UG3A-L", "UG3A/AK3B"},
		{"AK3B-R", "UG3A/AK3B"},
		{"UG2A-L", "UG2A/AK2B"},
		{"AK2B-R", "UG2A/AK2B"},
		{"樹德4尺-L", "樹德4尺"},
		{"4尺88-R", "4尺88"},
		{"AK3U", "AK3U"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, BaseName(tt.model), "model %s", tt.model)
	}
}

func TestStageModels_SideLessDeduplicates(t *testing.T) {
	handed := StageModels(StageFinished)
	assert.Len(t, handed, len(Models))

	sideLess := StageModels(StageGlass)
	// 12 base models, two merged pairs collapse 4 bases into 2 buckets.
	assert.Len(t, sideLess, 10)
	assert.Contains(t, sideLess, "UG3A/AK3B")
	assert.NotContains(t, sideLess, "UG3A")
}

func TestSummary_CoversEveryCell(t *testing.T) {
	records := []models.PartRecord{
		glassRecord(StageFinished, "UG3A-L", 5),
		glassRecord(StageGlass, "AK3B-L", 4),
	}
	snap := Summary(records)

	require.Len(t, snap, len(StageOrder))
	assert.Equal(t, 5, snap[StageFinished]["UG3A-L"])
	assert.Equal(t, 0, snap[StageFinished]["UG3A-R"])
	assert.Equal(t, 4, snap[StageGlass]["UG3A/AK3B"])
	for _, stage := range StageOrder {
		assert.Len(t, snap[stage], len(StageModels(stage)))
	}
}
