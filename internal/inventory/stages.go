// Package inventory implements the glass-sliding-door production core:
// stock projection over the append-only record ledger, automatic
// upstream deductions, the dispatch task queue, and snapshot-based
// batch adjustments.
package inventory

import "strings"

// Stage is a glass-door production stage. The wire values are the stage
// labels used in the backing spreadsheet.
type Stage string

const (
	StageFinished      Stage = "完成"
	StageFrameSprayed  Stage = "框_噴完"
	StageFrameProduced Stage = "框_製作完成"
	StageFramePending  Stage = "框_待辦"
	StageGlassStrip    Stage = "玻璃條"
	StageGlass         Stage = "玻璃"
)

// StageOrder lists stages from most finished to most raw. The order
// doubles as display priority and deduction priority: a later stage is
// only consumed once the stage before it is exhausted.
var StageOrder = []Stage{
	StageFinished,
	StageFrameSprayed,
	StageFrameProduced,
	StageFramePending,
	StageGlassStrip,
	StageGlass,
}

func ValidStage(s Stage) bool {
	for _, known := range StageOrder {
		if s == known {
			return true
		}
	}
	return false
}

// deductionChains maps a trigger stage to the upstream stages it
// consumes from, in priority order. The finished stage draws from two
// independent chains (frame and glass); intermediate stages draw a
// single level from the stage immediately upstream.
var deductionChains = map[Stage][][]Stage{
	StageFinished: {
		{StageFrameSprayed, StageFrameProduced, StageFramePending},
		{StageGlassStrip, StageGlass},
	},
	StageFrameSprayed:  {{StageFrameProduced}},
	StageFrameProduced: {{StageFramePending}},
	StageGlassStrip:    {{StageGlass}},
}

// sideLessStages are stages whose parts are not handed: the -L/-R
// suffix is meaningless there and certain model pairs share one part.
var sideLessStages = map[Stage]bool{
	StageGlassStrip: true,
	StageGlass:      true,
}

// SideLess reports whether model names at this stage ignore handedness.
func (s Stage) SideLess() bool {
	return sideLessStages[s]
}

// Models lists every door model, as mirrored L/R variants.
var Models = []string{
	"樹德4尺-L", "樹德4尺-R", "樹德3尺-L", "樹德3尺-R",
	"UG3A-L", "UG3A-R", "UG2A-L", "UG2A-R",
	"AK3U-L", "AK3U-R", "AK2U-L", "AK2U-R",
	"AK3B-L", "AK3B-R", "AK2B-L", "AK2B-R",
	"4尺88-L", "4尺88-R", "3尺88-L", "3尺88-R",
	"4尺106-L", "4尺106-R", "4尺74-L", "4尺74-R",
}

// BaseModels lists the models the task dispatcher takes orders for;
// each order spawns an L and an R task.
var BaseModels = []string{
	"樹德4尺", "樹德3尺", "UG3A", "UG2A", "AK3U", "AK2U",
	"AK3B", "AK2B", "4尺88", "3尺88", "4尺106", "4尺74",
}

// mergedBases collapses model pairs that share the same raw glass parts
// into a single bucket. This is a fixed lookup, not an inference.
var mergedBases = map[string]string{
	"UG3A": "UG3A/AK3B",
	"AK3B": "UG3A/AK3B",
	"UG2A": "UG2A/AK2B",
	"AK2B": "UG2A/AK2B",
}

// BaseName strips the -L/-R handedness suffix and applies the merge table.
func BaseName(model string) string {
	base := strings.TrimSuffix(strings.TrimSuffix(model, "-L"), "-R")
	if merged, ok := mergedBases[base]; ok {
		return merged
	}
	return base
}

// NormalizeModel maps a model name to its bucket key for a stage:
// side-less stages aggregate by merged base name, handed stages keep
// the full model name.
func NormalizeModel(stage Stage, model string) string {
	if stage.SideLess() {
		return BaseName(model)
	}
	return model
}

// StageModels returns the model buckets that exist at a stage, in
// display order and without duplicates.
func StageModels(stage Stage) []string {
	if !stage.SideLess() {
		out := make([]string, len(Models))
		copy(out, Models)
		return out
	}
	seen := make(map[string]bool, len(Models))
	var out []string
	for _, m := range Models {
		base := BaseName(m)
		if !seen[base] {
			seen[base] = true
			out = append(out, base)
		}
	}
	return out
}

func ValidModel(stage Stage, model string) bool {
	for _, m := range StageModels(stage) {
		if m == model {
			return true
		}
	}
	return false
}
