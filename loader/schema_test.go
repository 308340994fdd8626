package loader

import "testing"

func TestValidateSchemaAccepts(t *testing.T) {
	docs := map[string]string{
		"minimal": "crate_name: demo\n",
		"full": `
crate_name: demo
namespace: demo
records:
  - name: Point
    fields:
      - name: x
        type: f64
enums:
  - name: Color
    repr: u8
    variants:
      - name: red
        discr: 1
functions:
  - name: ping
    async: true
`,
	}
	for name, doc := range docs {
		if err := ValidateSchema([]byte(doc)); err != nil {
			t.Errorf("%s: %v", name, err)
		}
	}
}

func TestValidateSchemaRejects(t *testing.T) {
	docs := map[string]string{
		"missing crate_name":  "namespace: demo\n",
		"bad crate_name case": "crate_name: Demo\n",
		"unknown key":         "crate_name: demo\nextra: true\n",
		"record without fields": `
crate_name: demo
records:
  - name: Point
    fields: []
`,
		"repr outside integer set": `
crate_name: demo
enums:
  - name: Color
    repr: f32
    variants:
      - name: red
`,
		"string discriminant": `
crate_name: demo
enums:
  - name: Color
    variants:
      - name: red
        discr: red
`,
	}
	for name, doc := range docs {
		if err := ValidateSchema([]byte(doc)); err == nil {
			t.Errorf("%s: expected validation failure", name)
		}
	}
}

func TestSchemaJSONIsStable(t *testing.T) {
	if SchemaJSON() == "" {
		t.Fatal("embedded schema is empty")
	}
	if SchemaJSON() != schemaJSON {
		t.Error("SchemaJSON should return the embedded text verbatim")
	}
}
