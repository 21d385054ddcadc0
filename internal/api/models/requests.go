package models

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// SignupRequest defines the structure for a user signup request.
type SignupRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Bio      string `json:"bio"`
	ImageURL string `json:"image_url"`
}

// LoginRequest defines the structure for a user login request.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// CreateRecipeRequest defines the structure for a recipe creation request.
// A missing or null minutes_to_complete stays nil. Numeric strings such as
// "30" are accepted; anything that is not a whole number is a validation
// failure reported by Minutes, not a decoding error.
type CreateRecipeRequest struct {
	Title             string `json:"title"`
	Instructions      string `json:"instructions"`
	MinutesToComplete *int   `json:"minutes_to_complete"`

	minutesErr error
}

func (r *CreateRecipeRequest) UnmarshalJSON(data []byte) error {
	type plain CreateRecipeRequest
	var raw struct {
		plain
		MinutesToComplete json.RawMessage `json:"minutes_to_complete"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	*r = CreateRecipeRequest(raw.plain)
	r.MinutesToComplete, r.minutesErr = parseMinutes(raw.MinutesToComplete)
	return nil
}

// Minutes returns the decoded minutes_to_complete, or the validation error
// recorded while decoding it.
func (r *CreateRecipeRequest) Minutes() (*int, error) {
	if r.minutesErr != nil {
		return nil, r.minutesErr
	}
	return r.MinutesToComplete, nil
}

func parseMinutes(raw json.RawMessage) (*int, error) {
	text := strings.TrimSpace(string(raw))
	if text == "" || text == "null" {
		return nil, nil
	}

	notWhole := invalidField("minutes_to_complete", "Minutes to complete must be a whole number.")
	if text[0] == '"' {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return nil, notWhole
		}
		text = strings.TrimSpace(s)
	}

	if n, err := strconv.Atoi(text); err == nil && n >= math.MinInt32 && n <= math.MaxInt32 {
		return &n, nil
	}
	f, err := strconv.ParseFloat(text, 64)
	if err != nil || f != math.Trunc(f) || f < math.MinInt32 || f > math.MaxInt32 {
		return nil, notWhole
	}
	n := int(f)
	return &n, nil
}
