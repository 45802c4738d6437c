package model

// SlotCandidate - вычисляемый слот для выбора времени, никогда не сохраняется
type SlotCandidate struct {
	Value     string `json:"value"` // HH:MM:SS
	Label     string `json:"label"` // HH:MM
	Available bool   `json:"available"`
}
