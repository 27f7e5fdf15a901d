// Package domain holds DTOs for detection http and service contracts
package domain

// DetectInput is the voice detection request payload
type DetectInput struct {
	Language    string `json:"language" validate:"required" example:"English"`
	AudioFormat string `json:"audioFormat" validate:"required,oneof=mp3" example:"mp3"`
	AudioBase64 string `json:"audioBase64" validate:"required,min=50" example:"SUQzBAAAAAAA..."`
}

// StrategyScore is one evaluator's contribution to the verdict
type StrategyScore struct {
	Name   string  `json:"name" example:"cepstral_variance"`
	Score  float64 `json:"score" example:"0.72"`
	Detail string  `json:"detail,omitempty" example:"no voiced frames"`
}

// Analysis carries the per-clip breakdown behind a verdict
type Analysis struct {
	Composite  float64         `json:"composite" example:"0.63"`
	DurationMs int64           `json:"durationMs" example:"4200"`
	Frames     int             `json:"frames" example:"417"`
	Strategies []StrategyScore `json:"strategies"`
}

// DetectResult is the voice detection response payload
type DetectResult struct {
	Status          string    `json:"status" example:"success"`
	Language        string    `json:"language" example:"English"`
	Classification  string    `json:"classification" example:"AI_GENERATED"`
	ConfidenceScore float64   `json:"confidenceScore" example:"0.85"`
	Explanation     string    `json:"explanation" example:"Unnatural pitch consistency and robotic speech patterns detected"`
	Analysis        *Analysis `json:"analysis,omitempty"`
}
