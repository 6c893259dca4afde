package haveup

import (
	"encoding/json"
	"fmt"
	"io"
)

// Formatter formats results for output.
type Formatter interface {
	FormatPublished(w io.Writer, result *PublishResult) error
	FormatReport(w io.Writer, report *Report) error
	FormatError(w io.Writer, err error) error
}

// NewFormatter returns the appropriate formatter based on flags.
func NewFormatter(jsonOutput bool) Formatter {
	if jsonOutput {
		return &JSONFormatter{}
	}
	return &HumanFormatter{}
}

// HumanFormatter prints one "path: url" line per published file.
type HumanFormatter struct{}

// FormatPublished prints the link for a published file.
func (f *HumanFormatter) FormatPublished(w io.Writer, result *PublishResult) error {
	_, err := fmt.Fprintf(w, "%s: %s\n", result.LocalPath, result.DownloadURL)
	return err
}

// FormatReport is a no-op; links were already printed as files completed.
func (f *HumanFormatter) FormatReport(io.Writer, *Report) error {
	return nil
}

// FormatError formats an error as human-readable text.
func (f *HumanFormatter) FormatError(w io.Writer, err error) error {
	_, _ = fmt.Fprintf(w, "Error: %v\n", err)
	return nil
}

// JSONFormatter writes a single JSON document once the run is over.
type JSONFormatter struct{}

// FormatPublished is a no-op; results are part of the final report.
func (f *JSONFormatter) FormatPublished(io.Writer, *PublishResult) error {
	return nil
}

// FormatReport formats the whole run as JSON.
func (f *JSONFormatter) FormatReport(w io.Writer, report *Report) error {
	type jsonResult struct {
		LocalPath         string `json:"local_path"`
		TargetName        string `json:"target_name"`
		DownloadURL       string `json:"download_url"`
		UploadDestination string `json:"upload_destination"`
		Succeeded         bool   `json:"succeeded"`
		Error             string `json:"error,omitempty"`
	}

	output := struct {
		Results []jsonResult `json:"results"`
		Links   []string     `json:"links"`
		Skipped int          `json:"skipped"`
	}{
		Results: make([]jsonResult, len(report.Results)),
		Links:   report.Links,
		Skipped: report.Skipped(),
	}
	if output.Links == nil {
		output.Links = []string{}
	}

	for i := range report.Results {
		r := &report.Results[i]
		jr := jsonResult{
			LocalPath:         r.LocalPath,
			TargetName:        r.TargetName,
			DownloadURL:       r.DownloadURL,
			UploadDestination: r.UploadDestination,
			Succeeded:         r.Succeeded,
		}
		if r.Err != nil {
			jr.Error = r.Err.Error()
		}
		output.Results[i] = jr
	}

	return writeJSON(w, output)
}

// FormatError formats an error as JSON.
func (f *JSONFormatter) FormatError(w io.Writer, err error) error {
	output := struct {
		Error string `json:"error"`
	}{
		Error: err.Error(),
	}
	return writeJSON(w, output)
}

// writeJSON writes a value as indented JSON.
func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
