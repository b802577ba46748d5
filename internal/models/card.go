package models

// Card is a single clue card: two hints of different strength for the same
// concept. The partial hint is worth 1 point, the full hint 3.
type Card struct {
	Partial string `json:"partial"`
	Full    string `json:"full"`
}
