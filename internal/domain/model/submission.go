package model

// Submission is a raw draw record tagged with the game it belongs to. It is
// the payload that flows from the ingest endpoint through the queue to the
// workers.
type Submission struct {
	Game string  `json:"game"`
	Draw RawDraw `json:"draw"`
}

// IngestOutcome summarizes what happened to a batch of submitted draws.
type IngestOutcome struct {
	Accepted   int `json:"accepted"`
	Duplicates int `json:"duplicates"`
	Rejected   int `json:"rejected"`
}
