package internal

import (
	"context"
	"fmt"
	"io"
	"net/http"
)

// ReportSource supplies the extracted text of the daily use plan. Document
// retrieval and text extraction live outside this service; the source hands
// over plain text.
type ReportSource interface {
	FetchReport(ctx context.Context) (string, error)
}

type httpReportSource struct {
	url    string
	client *http.Client
}

func (s *httpReportSource) FetchReport(ctx context.Context) (string, error) {
	return httpGetText(ctx, s.client, s.url)
}

func httpGetText(ctx context.Context, client *http.Client, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", err
	}

	resp, err := client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("%s returned status %d", url, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}

	return string(body), nil
}
