package domain

// DownloadResult records the outcome for exactly one target track. It is
// created once the track resolves (or fails to) and never mutated afterwards.
type DownloadResult struct {
	Index    int    `json:"index"`
	Title    string `json:"title"`
	Artist   string `json:"artist"`
	Album    string `json:"album"`
	Accepted bool   `json:"accepted"`
	Path     string `json:"path,omitempty"`
	Reason   string `json:"reason,omitempty"`
}

// BatchReport aggregates the per-track outcomes of one batch run. Exactly one
// DownloadResult exists per input track, preserving the input ordering.
type BatchReport struct {
	Downloaded []DownloadResult `json:"downloaded"`
	NotFound   []DownloadResult `json:"not_found"`
}

// Add appends a result to the matching bucket.
func (r *BatchReport) Add(res DownloadResult) {
	if res.Accepted {
		r.Downloaded = append(r.Downloaded, res)
	} else {
		r.NotFound = append(r.NotFound, res)
	}
}

// Total returns the number of tracks accounted for in the report.
func (r *BatchReport) Total() int {
	return len(r.Downloaded) + len(r.NotFound)
}
