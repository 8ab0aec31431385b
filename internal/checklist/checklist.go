// Package checklist derives completion state from an inspection and the
// global checklist settings. Pure functions only: no I/O, no errors, nil
// maps are treated as empty.
package checklist

import (
	"math"
	"sort"

	"roadworthy/internal/model"
)

// ProgressResult — сводка готовности чек-листа.
type ProgressResult struct {
	Completed  int `json:"completed"`
	Total      int `json:"total"`
	Percentage int `json:"percentage"`
}

// ItemState is the derived per-item display state.
type ItemState struct {
	Required   bool `json:"required"`
	Completed  bool `json:"completed"`
	PhotoCount int  `json:"photoCount"`
}

// Progress counts required items when settings are present. With nil
// settings it falls back to counting across the whole vocabulary — a
// documented fallback, not an error path. An empty required set is
// vacuously 100%.
func Progress(insp *model.Inspection, settings *model.Settings) ProgressResult {
	var total, completed int
	for _, item := range model.ChecklistItems {
		if settings != nil && settings.ItemLevel(item) != model.LevelRequired {
			continue
		}
		total++
		if insp != nil && insp.ChecklistItems[item] {
			completed++
		}
	}

	pct := 100
	if total > 0 {
		pct = int(math.Round(100 * float64(completed) / float64(total)))
	}
	return ProgressResult{Completed: completed, Total: total, Percentage: pct}
}

// ItemStatus returns the derived state of one item. Recomputed on every
// call, nothing is cached.
func ItemStatus(item string, insp *model.Inspection, settings *model.Settings) ItemState {
	st := ItemState{
		Required: settings.ItemLevel(item) == model.LevelRequired,
	}
	if insp != nil {
		st.Completed = insp.ChecklistItems[item]
		st.PhotoCount = insp.PhotoCount(item)
	}
	return st
}

// CanComplete reports whether every required item is checked off, and the
// names of the ones that are not. Hidden does not exempt an item from the
// required gate: a required+hidden item still blocks, and shows up in the
// missing list so the misconfiguration is at least visible.
func CanComplete(insp *model.Inspection, settings *model.Settings) (bool, []string) {
	var missing []string
	for _, item := range model.ChecklistItems {
		if settings.ItemLevel(item) != model.LevelRequired {
			continue
		}
		if insp == nil || !insp.ChecklistItems[item] {
			missing = append(missing, item)
		}
	}
	return len(missing) == 0, missing
}

// DisplayOrder returns checklist items in display order with hidden items
// filtered out. An explicit ChecklistItemOrder wins; otherwise the legacy
// fallback sorts required before optional, then alphabetically.
func DisplayOrder(settings *model.Settings) []string {
	if settings != nil && len(settings.ChecklistItemOrder) > 0 {
		out := make([]string, 0, len(settings.ChecklistItemOrder))
		for _, item := range settings.ChecklistItemOrder {
			if !model.IsChecklistItem(item) {
				continue
			}
			if settings.ItemLevel(item) == model.LevelHidden {
				continue
			}
			out = append(out, item)
		}
		return out
	}

	rank := func(item string) int {
		switch settings.ItemLevel(item) {
		case model.LevelRequired:
			return 0
		default:
			return 1
		}
	}

	out := make([]string, 0, len(model.ChecklistItems))
	for _, item := range model.ChecklistItems {
		if settings.ItemLevel(item) == model.LevelHidden {
			continue
		}
		out = append(out, item)
	}
	sort.SliceStable(out, func(i, j int) bool {
		ri, rj := rank(out[i]), rank(out[j])
		if ri != rj {
			return ri < rj
		}
		return out[i] < out[j]
	})
	return out
}
