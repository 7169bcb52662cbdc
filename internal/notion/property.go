package notion

import (
	"encoding/json"
	"fmt"
)

// PropertyValue is the tagged union behind every entry of a page's property
// map. The Type discriminant names the populated payload field. Discriminants
// this package does not model (new upstream property kinds) are preserved
// verbatim in the raw payload and re-emitted unchanged on marshal.
type PropertyValue struct {
	ID   string
	Type string

	Title          []RichText
	RichText       []RichText
	Number         *float64
	Select         *SelectOption
	MultiSelect    []SelectOption
	Date           *DateValue
	People         []User
	Files          []any
	Checkbox       *bool
	URL            string
	Email          string
	PhoneNumber    string
	Formula        map[string]any
	Relation       []Relation
	Rollup         map[string]any
	CreatedTime    string
	CreatedBy      *User
	LastEditedTime string
	LastEditedBy   *User
	Status         *SelectOption
	UniqueID       *UniqueID

	// raw holds the full upstream object so unknown discriminants and
	// unmodeled sibling fields survive a round trip.
	raw map[string]json.RawMessage
}

func (p *PropertyValue) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	p.raw = raw

	if v, ok := raw["id"]; ok {
		if err := json.Unmarshal(v, &p.ID); err != nil {
			return fmt.Errorf("parse property id: %w", err)
		}
	}
	if v, ok := raw["type"]; ok {
		if err := json.Unmarshal(v, &p.Type); err != nil {
			return fmt.Errorf("parse property type: %w", err)
		}
	}

	payload, ok := raw[p.Type]
	if !ok || string(payload) == "null" {
		return nil
	}

	var err error
	switch p.Type {
	case "title":
		err = json.Unmarshal(payload, &p.Title)
	case "rich_text":
		err = json.Unmarshal(payload, &p.RichText)
	case "number":
		err = json.Unmarshal(payload, &p.Number)
	case "select":
		err = json.Unmarshal(payload, &p.Select)
	case "multi_select":
		err = json.Unmarshal(payload, &p.MultiSelect)
	case "date":
		err = json.Unmarshal(payload, &p.Date)
	case "people":
		err = json.Unmarshal(payload, &p.People)
	case "files":
		err = json.Unmarshal(payload, &p.Files)
	case "checkbox":
		err = json.Unmarshal(payload, &p.Checkbox)
	case "url":
		err = json.Unmarshal(payload, &p.URL)
	case "email":
		err = json.Unmarshal(payload, &p.Email)
	case "phone_number":
		err = json.Unmarshal(payload, &p.PhoneNumber)
	case "formula":
		err = json.Unmarshal(payload, &p.Formula)
	case "relation":
		err = json.Unmarshal(payload, &p.Relation)
	case "rollup":
		err = json.Unmarshal(payload, &p.Rollup)
	case "created_time":
		err = json.Unmarshal(payload, &p.CreatedTime)
	case "created_by":
		err = json.Unmarshal(payload, &p.CreatedBy)
	case "last_edited_time":
		err = json.Unmarshal(payload, &p.LastEditedTime)
	case "last_edited_by":
		err = json.Unmarshal(payload, &p.LastEditedBy)
	case "status":
		err = json.Unmarshal(payload, &p.Status)
	case "unique_id":
		err = json.Unmarshal(payload, &p.UniqueID)
	default:
		// Unknown discriminant: keep the payload opaquely in raw.
	}
	if err != nil {
		return fmt.Errorf("parse %s property: %w", p.Type, err)
	}
	return nil
}

func (p PropertyValue) MarshalJSON() ([]byte, error) {
	if p.raw != nil {
		return json.Marshal(p.raw)
	}

	out := map[string]any{}
	if p.ID != "" {
		out["id"] = p.ID
	}
	if p.Type != "" {
		out["type"] = p.Type
	}
	if payload, ok := p.payload(); ok {
		out[p.Type] = payload
	}
	return json.Marshal(out)
}

func (p PropertyValue) payload() (any, bool) {
	switch p.Type {
	case "title":
		return p.Title, true
	case "rich_text":
		return p.RichText, true
	case "number":
		return p.Number, true
	case "select":
		return p.Select, true
	case "multi_select":
		return p.MultiSelect, true
	case "date":
		return p.Date, true
	case "people":
		return p.People, true
	case "files":
		return p.Files, true
	case "checkbox":
		return p.Checkbox, true
	case "url":
		return p.URL, true
	case "email":
		return p.Email, true
	case "phone_number":
		return p.PhoneNumber, true
	case "formula":
		return p.Formula, true
	case "relation":
		return p.Relation, true
	case "rollup":
		return p.Rollup, true
	case "created_time":
		return p.CreatedTime, true
	case "created_by":
		return p.CreatedBy, true
	case "last_edited_time":
		return p.LastEditedTime, true
	case "last_edited_by":
		return p.LastEditedBy, true
	case "status":
		return p.Status, true
	case "unique_id":
		return p.UniqueID, true
	default:
		return nil, false
	}
}
