// Package recognize turns handwriting captures into candidate answers.
// The recognizer is a best-effort black box: a low-confidence or empty
// guess still flows into grading as-is and simply grades incorrect.
package recognize

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"
)

// Result is the recognizer's best guess for one capture.
type Result struct {
	Value      string  `json:"value"`
	Confidence float64 `json:"confidence"`
	IsEmpty    bool    `json:"is_empty"`
}

// Recognizer converts a raw capture (stroke or image bytes) into a
// candidate answer. The expected answer, when known, lets the backend
// bias recognition toward the answer's alphabet (digits vs letters).
type Recognizer interface {
	Recognize(ctx context.Context, capture []byte, expected string) (Result, error)
}

// ErrUnavailable is returned on any transport failure to the backend.
var ErrUnavailable = errors.New("recognize: backend unavailable")

// HTTPRecognizer calls an external recognition service.
type HTTPRecognizer struct {
	baseURL string
	http    *http.Client
}

func NewHTTPRecognizer(baseURL string, timeout time.Duration) *HTTPRecognizer {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &HTTPRecognizer{baseURL: baseURL, http: &http.Client{Timeout: timeout}}
}

type recognizeRequest struct {
	Capture  string `json:"capture"` // base64-encoded
	Expected string `json:"expected,omitempty"`
}

func (r *HTTPRecognizer) Recognize(ctx context.Context, capture []byte, expected string) (Result, error) {
	body, err := json.Marshal(recognizeRequest{
		Capture:  base64.StdEncoding.EncodeToString(capture),
		Expected: expected,
	})
	if err != nil {
		return Result{}, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.baseURL+"/v1/recognize", bytes.NewReader(body))
	if err != nil {
		return Result{}, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := r.http.Do(req)
	if err != nil {
		return Result{}, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Result{}, fmt.Errorf("%w: status %d", ErrUnavailable, resp.StatusCode)
	}

	var res Result
	if err := json.NewDecoder(resp.Body).Decode(&res); err != nil {
		return Result{}, fmt.Errorf("%w: decoding response: %v", ErrUnavailable, err)
	}
	return res, nil
}

// Resolve maps a capture to the answer string handed to grading. A nil
// recognizer, a failed call, or an empty capture all resolve to "",
// which grades as incorrect rather than erroring the submission.
func Resolve(ctx context.Context, rec Recognizer, capture []byte, expected string) string {
	if rec == nil || len(capture) == 0 {
		return ""
	}
	res, err := rec.Recognize(ctx, capture, expected)
	if err != nil || res.IsEmpty {
		return ""
	}
	return res.Value
}

var _ Recognizer = (*HTTPRecognizer)(nil)
