package tables

import (
	"encoding/json"
	"testing"

	"github.com/google/go-cmp/cmp"
)

const hallTemplate = `{
	"_id": "63dbd45917fff4dee40fe16e",
	"_name": "hall_of_fame_1",
	"_parent": "5d6fd13186f77424ad2a8c69",
	"_type": "Item",
	"_props": {
		"Name": "Hall of Fame",
		"Weight": 1.5,
		"Slots": [
			{
				"_name": "dogtag_1",
				"_id": "slot1",
				"_parent": "63dbd45917fff4dee40fe16e",
				"_props": {"filters": [{"Shift": 0, "Filter": ["59e3647686f774176a362507"]}]},
				"_required": false,
				"_mergeSlotWithChildren": false,
				"_proto": "55d30c4c4bdc2db4468b457e"
			}
		]
	},
	"_proto": "5d6fd13186f77424ad2a8c69"
}`

func TestItemTemplateDecode(t *testing.T) {
	var item ItemTemplate
	if err := json.Unmarshal([]byte(hallTemplate), &item); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(item.Props.Slots) != 1 {
		t.Fatalf("expected 1 slot, got %d", len(item.Props.Slots))
	}
	want := []string{"59e3647686f774176a362507"}
	if diff := cmp.Diff(want, item.Props.Slots[0].Props.Filters[0].Filter); diff != "" {
		t.Fatalf("filter mismatch (-want +got):\n%s", diff)
	}
	if _, ok := item.Props.Fields["Slots"]; ok {
		t.Fatalf("expected Slots to be lifted out of raw fields")
	}

	var name string
	found, err := item.Props.Get("Name", &name)
	if err != nil || !found {
		t.Fatalf("expected Name property, found=%v err=%v", found, err)
	}
	if name != "Hall of Fame" {
		t.Fatalf("unexpected name %q", name)
	}
}

func TestItemTemplateRoundTripKeepsUnknownFields(t *testing.T) {
	var item ItemTemplate
	if err := json.Unmarshal([]byte(hallTemplate), &item); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	data, err := json.Marshal(&item)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var got, want map[string]any
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("unmarshal output: %v", err)
	}
	if err := json.Unmarshal([]byte(hallTemplate), &want); err != nil {
		t.Fatalf("unmarshal input: %v", err)
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestItemTemplateClone(t *testing.T) {
	var item ItemTemplate
	if err := json.Unmarshal([]byte(hallTemplate), &item); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	clone, err := item.Clone()
	if err != nil {
		t.Fatalf("clone: %v", err)
	}
	clone.Props.Slots[0].Props.Filters[0].Filter = append(clone.Props.Slots[0].Props.Filters[0].Filter, "new")
	if err := clone.Props.Set("Name", "Changed"); err != nil {
		t.Fatalf("set: %v", err)
	}

	if len(item.Props.Slots[0].Props.Filters[0].Filter) != 1 {
		t.Fatalf("expected source filter untouched")
	}
	var name string
	if _, err := item.Props.Get("Name", &name); err != nil {
		t.Fatalf("get: %v", err)
	}
	if name != "Hall of Fame" {
		t.Fatalf("expected source name untouched, got %q", name)
	}
}

const armorTemplate = `{
	"_id": "armor",
	"_name": "armor",
	"_parent": "vest",
	"_type": "Item",
	"_props": {
		"Slots": [
			{
				"_name": "Front_plate",
				"_id": "slot_front",
				"_parent": "armor",
				"_props": {
					"filters": [{
						"Shift": 0,
						"Filter": ["plate1"],
						"locked": true,
						"Plate": "plate1",
						"armorColliders": ["RibcageUp", "RibcageLow"],
						"armorPlateColliders": ["Plate_Granit_SAPI_chest"]
					}],
					"ExcludedFilter": ["plate2"]
				},
				"_required": true,
				"_mergeSlotWithChildren": false,
				"_botsAvailable": false
			}
		]
	}
}`

func TestItemTemplateCloneKeepsSlotFields(t *testing.T) {
	var item ItemTemplate
	if err := json.Unmarshal([]byte(armorTemplate), &item); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	clone, err := item.Clone()
	if err != nil {
		t.Fatalf("clone: %v", err)
	}
	filter := &clone.Props.Slots[0].Props.Filters[0]
	filter.Filter = append(filter.Filter, "plate3")

	data, err := json.Marshal(clone)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var got, want map[string]any
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("unmarshal output: %v", err)
	}
	if err := json.Unmarshal([]byte(armorTemplate), &want); err != nil {
		t.Fatalf("unmarshal input: %v", err)
	}
	wantSlot := want["_props"].(map[string]any)["Slots"].([]any)[0].(map[string]any)
	wantFilter := wantSlot["_props"].(map[string]any)["filters"].([]any)[0].(map[string]any)
	wantFilter["Filter"] = []any{"plate1", "plate3"}

	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("slot fields lost on clone (-want +got):\n%s", diff)
	}
	if len(item.Props.Slots[0].Props.Filters[0].Filter) != 1 {
		t.Fatalf("expected source filter untouched")
	}
}

func TestItemPropsSetRejectsSlots(t *testing.T) {
	var props ItemProps
	if err := props.Set("Slots", []Slot{}); err == nil {
		t.Fatalf("expected error")
	}
	if err := props.Set("Weight", 25); err != nil {
		t.Fatalf("set: %v", err)
	}
	if string(props.Fields["Weight"]) != "25" {
		t.Fatalf("unexpected weight %s", props.Fields["Weight"])
	}
}

func TestHandbookUpsert(t *testing.T) {
	var handbook Handbook
	handbook.Upsert(HandbookItem{ID: "a", ParentID: "p", Price: 1})
	handbook.Upsert(HandbookItem{ID: "b", ParentID: "p", Price: 2})
	handbook.Upsert(HandbookItem{ID: "a", ParentID: "p", Price: 3})

	if len(handbook.Items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(handbook.Items))
	}
	item, ok := handbook.Find("a")
	if !ok || item.Price != 3 {
		t.Fatalf("expected updated price, got %#v", item)
	}
}

func TestSetUpdateTime(t *testing.T) {
	var cfg TraderConfig
	cfg.SetUpdateTime(UpdateTime{TraderID: "t", Seconds: MinMax{Min: 1, Max: 2}})
	cfg.SetUpdateTime(UpdateTime{TraderID: "t", Seconds: MinMax{Min: 3, Max: 4}})

	want := []UpdateTime{{TraderID: "t", Seconds: MinMax{Min: 3, Max: 4}}}
	if diff := cmp.Diff(want, cfg.UpdateTime); diff != "" {
		t.Fatalf("update time mismatch (-want +got):\n%s", diff)
	}
}
