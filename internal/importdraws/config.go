package importdraws

import "time"

// Config holds configuration for the draw import run.
type Config struct {
	BaseURL   string        // Base URL of the service
	File      string        // Path to the JSON draws file
	Game      string        // Game name when the file holds a bare draw array
	BatchSize int           // Draws per submission request
	Workers   int           // Number of concurrent workers
	Timeout   time.Duration // HTTP request timeout
	LogFile   string        // Log file for import output
	Verbose   bool          // Enable verbose logging
	Verify    bool          // Verify statistics after importing
}

// Draw mirrors the service wire format for one historical draw.
type Draw struct {
	Date        string `json:"date"`
	Numbers     []int  `json:"numbers"`
	SpecialBall *int   `json:"specialBall"`
}

// Batch is one submission request body.
type Batch struct {
	Game  string `json:"game"`
	Draws []Draw `json:"draws"`
}

// AckResponse represents the response from a draw submission.
type AckResponse struct {
	Status     string `json:"status"`
	Accepted   int    `json:"accepted"`
	Duplicates int    `json:"duplicates"`
	Rejected   int    `json:"rejected"`
}

// Stats holds import statistics.
type Stats struct {
	DrawsRead        int
	BatchesSubmitted int
	DrawsAccepted    int
	DrawsDuplicate   int
	DrawsRejected    int
	BatchesFailed    int
	GamesVerified    int
	StartTime        time.Time
	EndTime          time.Time
	Duration         time.Duration
}
