package tables

import (
	"encoding/json"
	"fmt"
	"maps"
)

type ItemTemplate struct {
	ID     string    `json:"_id"`
	Name   string    `json:"_name"`
	Parent string    `json:"_parent"`
	Type   string    `json:"_type"`
	Props  ItemProps `json:"_props"`
	Proto  string    `json:"_proto,omitempty"`
}

// ItemProps keeps Slots typed so filters can be patched in place. Every other
// property is carried as raw JSON and survives cloning untouched.
type ItemProps struct {
	Slots  []Slot
	Fields map[string]json.RawMessage
}

// Slot, SlotProps and Filter keep the fields the patcher reads typed. Any other
// key is carried in Fields and written back on encode.
type Slot struct {
	Name                  string                     `json:"_name"`
	ID                    string                     `json:"_id"`
	Parent                string                     `json:"_parent"`
	Props                 SlotProps                  `json:"_props"`
	Required              bool                       `json:"_required"`
	MergeSlotWithChildren bool                       `json:"_mergeSlotWithChildren"`
	Proto                 string                     `json:"_proto,omitempty"`
	Fields                map[string]json.RawMessage `json:"-"`
}

type SlotProps struct {
	Filters []Filter                   `json:"filters"`
	Fields  map[string]json.RawMessage `json:"-"`
}

type Filter struct {
	Shift  int                        `json:"Shift"`
	Filter []string                   `json:"Filter"`
	Fields map[string]json.RawMessage `json:"-"`
}

var (
	slotKeys      = []string{"_name", "_id", "_parent", "_props", "_required", "_mergeSlotWithChildren", "_proto"}
	slotPropsKeys = []string{"filters"}
	filterKeys    = []string{"Shift", "Filter"}
)

type (
	plainSlot      Slot
	plainSlotProps SlotProps
	plainFilter    Filter
)

func (s *Slot) UnmarshalJSON(data []byte) error {
	var typed plainSlot
	fields, err := splitFields(data, &typed, slotKeys)
	if err != nil {
		return err
	}
	*s = Slot(typed)
	s.Fields = fields
	return nil
}

func (s Slot) MarshalJSON() ([]byte, error) {
	return joinFields(plainSlot(s), s.Fields)
}

func (p *SlotProps) UnmarshalJSON(data []byte) error {
	var typed plainSlotProps
	fields, err := splitFields(data, &typed, slotPropsKeys)
	if err != nil {
		return err
	}
	*p = SlotProps(typed)
	p.Fields = fields
	return nil
}

func (p SlotProps) MarshalJSON() ([]byte, error) {
	return joinFields(plainSlotProps(p), p.Fields)
}

func (f *Filter) UnmarshalJSON(data []byte) error {
	var typed plainFilter
	fields, err := splitFields(data, &typed, filterKeys)
	if err != nil {
		return err
	}
	*f = Filter(typed)
	f.Fields = fields
	return nil
}

func (f Filter) MarshalJSON() ([]byte, error) {
	return joinFields(plainFilter(f), f.Fields)
}

// splitFields decodes data into typed and returns the keys not in known, or nil
// when there are none.
func splitFields(data []byte, typed any, known []string) (map[string]json.RawMessage, error) {
	if err := json.Unmarshal(data, typed); err != nil {
		return nil, err
	}
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return nil, err
	}
	for _, key := range known {
		delete(fields, key)
	}
	if len(fields) == 0 {
		return nil, nil
	}
	return fields, nil
}

// joinFields encodes typed and adds extra keys; typed fields win on collision.
func joinFields(typed any, extra map[string]json.RawMessage) ([]byte, error) {
	data, err := json.Marshal(typed)
	if err != nil || len(extra) == 0 {
		return data, err
	}
	var out map[string]json.RawMessage
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, err
	}
	for key, raw := range extra {
		if _, ok := out[key]; !ok {
			out[key] = raw
		}
	}
	return json.Marshal(out)
}

const slotsField = "Slots"

func (p *ItemProps) UnmarshalJSON(data []byte) error {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return err
	}
	p.Slots = nil
	if raw, ok := fields[slotsField]; ok {
		if err := json.Unmarshal(raw, &p.Slots); err != nil {
			return fmt.Errorf("decoding %s: %w", slotsField, err)
		}
		delete(fields, slotsField)
	}
	p.Fields = fields
	return nil
}

func (p ItemProps) MarshalJSON() ([]byte, error) {
	out := make(map[string]json.RawMessage, len(p.Fields)+1)
	maps.Copy(out, p.Fields)
	if p.Slots != nil {
		raw, err := json.Marshal(p.Slots)
		if err != nil {
			return nil, fmt.Errorf("encoding %s: %w", slotsField, err)
		}
		out[slotsField] = raw
	}
	return json.Marshal(out)
}

// Set stores value under key, encoded as JSON.
func (p *ItemProps) Set(key string, value any) error {
	if key == slotsField {
		return fmt.Errorf("property %s cannot be overridden", slotsField)
	}
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encoding property %s: %w", key, err)
	}
	if p.Fields == nil {
		p.Fields = make(map[string]json.RawMessage)
	}
	p.Fields[key] = raw
	return nil
}

// Get decodes the property stored under key into target. It reports false when
// the property is absent.
func (p *ItemProps) Get(key string, target any) (bool, error) {
	raw, ok := p.Fields[key]
	if !ok {
		return false, nil
	}
	if err := json.Unmarshal(raw, target); err != nil {
		return true, fmt.Errorf("decoding property %s: %w", key, err)
	}
	return true, nil
}

// Clone returns a deep copy of the template.
func (t *ItemTemplate) Clone() (*ItemTemplate, error) {
	data, err := json.Marshal(t)
	if err != nil {
		return nil, fmt.Errorf("encoding template %s: %w", t.ID, err)
	}
	var clone ItemTemplate
	if err := json.Unmarshal(data, &clone); err != nil {
		return nil, fmt.Errorf("decoding template %s: %w", t.ID, err)
	}
	return &clone, nil
}
