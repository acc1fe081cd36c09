package dto

import (
	"encoding/json"
	"fmt"

	"github.com/Geeth0476/Vigilant-Backend/internal/domain/model"
)

const defaultFactorType = "BEHAVIOR"

// RiskFactorInput is one contributing factor as submitted by the client.
// Two wire shapes are accepted: a bare string ("Requests SMS access") or a
// structured object with description, type and score. Both decode into the
// same normalized form.
type RiskFactorInput struct {
	Description string `json:"description"`
	FactorType  string `json:"type"`
	Score       int    `json:"score"`
}

// UnmarshalJSON accepts either a JSON string or a factor object.
func (f *RiskFactorInput) UnmarshalJSON(data []byte) error {
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*f = RiskFactorInput{Description: s}
		return nil
	}

	type alias RiskFactorInput
	var obj alias
	if err := json.Unmarshal(data, &obj); err != nil {
		return fmt.Errorf("risk factor must be a string or an object: %w", err)
	}
	*f = RiskFactorInput(obj)
	return nil
}

// ToModel normalizes the factor, filling in defaults for missing fields.
func (f RiskFactorInput) ToModel() model.RiskFactor {
	desc := f.Description
	if desc == "" {
		desc = "Unknown"
	}
	factorType := f.FactorType
	if factorType == "" {
		factorType = defaultFactorType
	}
	score := f.Score
	if score < 0 {
		score = 0
	}
	return model.RiskFactor{
		Description: desc,
		FactorType:  factorType,
		Score:       score,
	}
}
