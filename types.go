package haveup

import "context"

// Transport copies a local file to a remote destination.
type Transport interface {
	Transfer(ctx context.Context, localPath, destination string) error
}

// Digester computes the hex digest of a file with the named algorithm.
type Digester interface {
	Digest(ctx context.Context, path, algorithm string) (string, error)
}

// SideChannel receives the list of published links, one per line.
// Implementations must not fail; errors are theirs to swallow.
type SideChannel interface {
	Publish(ctx context.Context, text string)
}

// Notifier shows a short message to the user. Delivery is best effort.
type Notifier interface {
	Notify(ctx context.Context, title, body string)
}

// PublishResult describes the outcome for a single file.
type PublishResult struct {
	LocalPath         string `json:"local_path"`
	TargetName        string `json:"target_name"`
	DownloadURL       string `json:"download_url"`
	UploadDestination string `json:"upload_destination"`
	Succeeded         bool   `json:"succeeded"`
	Err               error  `json:"-"` // nil on success
}

// Report is the outcome of a Run.
type Report struct {
	Results []PublishResult `json:"results"`
	Links   []string        `json:"links"`
}

// Skipped returns the number of files that were not published.
func (r *Report) Skipped() int {
	n := 0
	for i := range r.Results {
		if !r.Results[i].Succeeded {
			n++
		}
	}
	return n
}
