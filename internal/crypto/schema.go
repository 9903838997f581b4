package crypto

import (
	"encoding/json"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// payloadSchema constrains the serialized record on both sides of the cipher:
// a blob that authenticates but does not match the schema is treated as
// corrupt rather than handed to callers.
const payloadSchema = `{
  "type": "object",
  "additionalProperties": false,
  "properties": {
    "invoice_number": {"type": "string", "minLength": 1},
    "invoice_date":   {"type": "string", "minLength": 1},
    "vendor_name":    {"type": "string", "minLength": 1},
    "vendor_gstin":   {"type": "string", "minLength": 1},
    "buyer_name":     {"type": "string", "minLength": 1},
    "cgst":           {"type": "string", "pattern": "^\\d+\\.\\d{2}$"},
    "sgst":           {"type": "string", "pattern": "^\\d+\\.\\d{2}$"},
    "grand_total":    {"type": "string", "pattern": "^\\d+\\.\\d{2}$"},
    "currency":       {"type": "string", "minLength": 3, "maxLength": 3}
  },
  "required": [
    "invoice_number", "invoice_date", "vendor_name", "vendor_gstin",
    "buyer_name", "cgst", "sgst", "grand_total", "currency"
  ]
}`

var recordSchema = jsonschema.MustCompileString("invoice-payload.schema.json", payloadSchema)

func validatePayload(raw []byte) error {
	var doc any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return err
	}
	return recordSchema.Validate(doc)
}
