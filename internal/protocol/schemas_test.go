package protocol_test

import (
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

func TestSchemas_ValidateSamples(t *testing.T) {
	compile := func(name string) *jsonschema.Schema {
		t.Helper()
		p := filepath.Join("..", "..", "schemas", name)
		s, err := jsonschema.Compile(p)
		if err != nil {
			t.Fatalf("compile %s: %v", name, err)
		}
		return s
	}

	validate := func(s *jsonschema.Schema, v any) {
		t.Helper()
		if err := s.Validate(v); err != nil {
			t.Fatalf("validate: %v", err)
		}
	}

	plantSchema := compile("plant_trees.schema.json")
	clearSchema := compile("clear_trees.schema.json")
	groupSchema := compile("place_tree_group.schema.json")
	removeSchema := compile("remove_all_trees.schema.json")

	var plant any
	_ = json.Unmarshal([]byte(`{
	  "type":"PLANT_TREES",
	  "protocol_version":"1.0",
	  "company_id":"C1",
	  "start":[4,4],
	  "end":[7,6],
	  "species":-1,
	  "dry_run":true
	}`), &plant)
	validate(plantSchema, plant)

	var clear any
	_ = json.Unmarshal([]byte(`{
	  "type":"CLEAR_TREES",
	  "protocol_version":"1.0",
	  "company_id":"C1",
	  "tile":[12,30]
	}`), &clear)
	validate(clearSchema, clear)

	var group any
	_ = json.Unmarshal([]byte(`{
	  "type":"PLACE_TREE_GROUP",
	  "protocol_version":"1.0",
	  "center":[64,64],
	  "species":20,
	  "radius":13,
	  "count":200,
	  "set_zone":true
	}`), &group)
	validate(groupSchema, group)

	var remove any
	_ = json.Unmarshal([]byte(`{
	  "type":"REMOVE_ALL_TREES",
	  "protocol_version":"1.0"
	}`), &remove)
	validate(removeSchema, remove)

	var badPlant any
	_ = json.Unmarshal([]byte(`{
	  "type":"PLANT_TREES",
	  "protocol_version":"1.0",
	  "start":[4,4],
	  "end":[7,6],
	  "species":99
	}`), &badPlant)
	if err := plantSchema.Validate(badPlant); err == nil {
		t.Fatalf("out-of-range species accepted")
	}
}
