package models

// BatchFailure describes one rejected item of a batch creation
type BatchFailure struct {
	Index   int    `json:"index"`
	Field   string `json:"field,omitempty"`
	Message string `json:"message"`
}

// BatchResult is the per-item report of a batch creation
type BatchResult struct {
	Created []Account      `json:"created"`
	Failed  []BatchFailure `json:"failed"`
	Count   int            `json:"count"`
}

// CountResponse wraps the number of stored accounts
type CountResponse struct {
	Count int `json:"count"`
}
