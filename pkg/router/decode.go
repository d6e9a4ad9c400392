package router

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/go-viper/mapstructure/v2"
)

// decodeJSON unmarshals a JSON body into target, matching snake_case wire
// field names to exported Go field names (user_id populates UserID). A
// `json` struct tag, when present, wins over the convention.
func decodeJSON(body []byte, target any) error {
	var raw any
	if err := json.Unmarshal(body, &raw); err != nil {
		return fmt.Errorf("unmarshal response: %w", err)
	}

	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           target,
		TagName:          "json",
		MatchName:        matchSnakeName,
		WeaklyTypedInput: true,
		DecodeHook:       mapstructure.StringToTimeHookFunc(time.RFC3339),
	})
	if err != nil {
		return fmt.Errorf("build decoder: %w", err)
	}
	if err := dec.Decode(raw); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// matchSnakeName equates a snake_case map key with a camel-case field name.
func matchSnakeName(mapKey, fieldName string) bool {
	return strings.EqualFold(strings.ReplaceAll(mapKey, "_", ""), fieldName)
}
