package mcpserver

import (
	"encoding/json"

	"github.com/cppintel/mcp-cpp-bridge/internal/bridgeerr"
)

// errorPayload is the typed error object of the {success, error, issues}
// envelope (§7).
type errorPayload struct {
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

// errorEnvelope builds the failure form of the tool-result envelope.
// Every bridge-internal error is a *bridgeerr.Error; anything else (a
// programmer error slipping through) is reported under "io" rather than
// panicking the tool call.
func errorEnvelope(err error) map[string]interface{} {
	kind := bridgeerr.Io.String()
	if k, ok := bridgeerr.Of(err); ok {
		kind = k.String()
	}
	return map[string]interface{}{
		"success": false,
		"error": errorPayload{
			Kind:    kind,
			Message: err.Error(),
		},
	}
}

// successEnvelope merges data into the success form of the envelope,
// attaching issues only when there are any to report.
func successEnvelope(data map[string]interface{}, issues []string) map[string]interface{} {
	env := map[string]interface{}{"success": true}
	for k, v := range data {
		env[k] = v
	}
	if len(issues) > 0 {
		env["issues"] = issues
	}
	return env
}

func marshalIndent(v interface{}) (string, error) {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return "", err
	}
	return string(b), nil
}
