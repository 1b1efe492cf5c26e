package http

// JSON Schemas for the bill write endpoints. additionalProperties is false so
// unknown-shape bodies are rejected before binding; field-level rules mirror
// the service's own validation and produce clearer 400 messages.

const billCreateSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "additionalProperties": false,
  "required": ["description", "total_amount", "due_date", "split_rule", "shares"],
  "properties": {
    "description": {"type": "string", "minLength": 1},
    "bill_type": {"type": "string"},
    "total_amount": {"type": "number", "exclusiveMinimum": 0},
    "due_date": {"type": "string", "pattern": "^[0-9]{4}-[0-9]{2}-[0-9]{2}$"},
    "split_rule": {"enum": ["equal", "custom"]},
    "shares": {
      "type": "array",
      "minItems": 1,
      "items": {
        "type": "object",
        "additionalProperties": false,
        "required": ["user_id"],
        "properties": {
          "user_id": {"type": "integer", "minimum": 1},
          "amount_due": {"type": "number"},
          "status": {"enum": ["paid", "unpaid"]}
        }
      }
    }
  }
}`

// Same shape as create, but shares may be omitted: an update without shares
// touches scalar fields only.
const billUpdateSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "additionalProperties": false,
  "required": ["description", "total_amount", "due_date", "split_rule"],
  "properties": {
    "description": {"type": "string", "minLength": 1},
    "bill_type": {"type": "string"},
    "total_amount": {"type": "number", "exclusiveMinimum": 0},
    "due_date": {"type": "string", "pattern": "^[0-9]{4}-[0-9]{2}-[0-9]{2}$"},
    "split_rule": {"enum": ["equal", "custom"]},
    "shares": {
      "type": "array",
      "items": {
        "type": "object",
        "additionalProperties": false,
        "required": ["user_id"],
        "properties": {
          "user_id": {"type": "integer", "minimum": 1},
          "amount_due": {"type": "number"},
          "status": {"enum": ["paid", "unpaid"]}
        }
      }
    }
  }
}`
