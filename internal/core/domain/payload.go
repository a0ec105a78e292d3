package domain

// Payload is a parsed gateway response body. The gateway returns loosely
// structured JSON objects whose shape varies per resource, so responses are
// kept as a string-keyed map with typed accessors for the handful of fields
// this integration reads back.
type Payload map[string]interface{}

// Str returns the string value under key, or "" if absent or not a string.
func (p Payload) Str(key string) string {
	if v, ok := p[key].(string); ok {
		return v
	}
	return ""
}

// GatewayErrorBody is the error object the gateway embeds in a response body.
type GatewayErrorBody struct {
	Code        string
	Description string
}

// ErrorBody extracts the embedded gateway error, or nil if the response
// reports no error.
func (p Payload) ErrorBody() *GatewayErrorBody {
	raw, ok := p["error"].(map[string]interface{})
	if !ok || len(raw) == 0 {
		return nil
	}
	body := &GatewayErrorBody{}
	if code, ok := raw["code"].(string); ok {
		body.Code = code
	}
	if desc, ok := raw["description"].(string); ok {
		body.Description = desc
	}
	return body
}
