// Package patch holds the conditional, idempotent list edits the mod applies to
// host tables: slot filter extension and blacklist registration.
package patch

import (
	"slices"

	"painter/internal/tables"
)

// AppendUnique appends id to list unless it is already present. It reports
// whether the list changed.
func AppendUnique(list []string, id string) ([]string, bool) {
	if slices.Contains(list, id) {
		return list, false
	}
	return append(list, id), true
}

// Blacklist adds id to the lootable item blacklist if it is not already listed.
func Blacklist(cfg *tables.ItemConfig, id string) bool {
	if cfg == nil {
		return false
	}
	var added bool
	cfg.LootableItemBlacklist, added = AppendUnique(cfg.LootableItemBlacklist, id)
	return added
}

type ContainerResult struct {
	ID        string
	Name      string
	Additions int
}

type Result struct {
	Containers []ContainerResult
	Total      int
}

// Filters appends newID to every slot filter list that already allows refID and
// does not allow newID yet. Nil containers are skipped but still reported with
// zero additions so callers can tell which lookups came back empty.
func Filters(containers []*tables.ItemTemplate, refID, newID string) Result {
	var result Result
	for _, container := range containers {
		if container == nil {
			result.Containers = append(result.Containers, ContainerResult{})
			continue
		}
		entry := ContainerResult{ID: container.ID, Name: container.Name}
		for i := range container.Props.Slots {
			filters := container.Props.Slots[i].Props.Filters
			for j := range filters {
				if !slices.Contains(filters[j].Filter, refID) {
					continue
				}
				var added bool
				filters[j].Filter, added = AppendUnique(filters[j].Filter, newID)
				if added {
					entry.Additions++
				}
			}
		}
		result.Total += entry.Additions
		result.Containers = append(result.Containers, entry)
	}
	return result
}
