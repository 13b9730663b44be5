package utils

import (
	"time"

	"github.com/go-resty/resty/v2"
)

// LinkTarget is one URL to verify during a course link audit
type LinkTarget struct {
	Kind  string `json:"kind"` // slide or video
	Title string `json:"title"`
	URL   string `json:"url"`
}

// LinkStatus is the audit result for a single URL
type LinkStatus struct {
	Kind       string `json:"kind"`
	Title      string `json:"title"`
	URL        string `json:"url"`
	OK         bool   `json:"ok"`
	StatusCode int    `json:"status_code"`
	Error      string `json:"error,omitempty"`
}

// NewLinkClient builds the outbound client used for link audits
func NewLinkClient(timeoutSeconds int) *resty.Client {
	if timeoutSeconds <= 0 {
		timeoutSeconds = 10
	}
	return resty.New().
		SetTimeout(time.Duration(timeoutSeconds) * time.Second).
		SetHeader("User-Agent", "clp-link-audit/1.0")
}

// AuditLinks HEAD-checks every target and reports per-URL status
func AuditLinks(client *resty.Client, targets []LinkTarget) []LinkStatus {
	results := make([]LinkStatus, 0, len(targets))
	for _, target := range targets {
		status := LinkStatus{Kind: target.Kind, Title: target.Title, URL: target.URL}

		resp, err := client.R().Head(target.URL)
		if err != nil {
			status.Error = err.Error()
		} else {
			status.StatusCode = resp.StatusCode()
			status.OK = resp.StatusCode() < 400
		}

		results = append(results, status)
	}
	return results
}
