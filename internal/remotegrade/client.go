// Package remotegrade calls the server-side assessment validator. The
// remote verdict is authoritative when reachable; callers fall back to
// local grading on any error here.
package remotegrade

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gleegrow/gleegrow-api/internal/assessment"
	"github.com/gleegrow/gleegrow-api/internal/content"
	"github.com/gleegrow/gleegrow-api/internal/level"
)

// ErrUnavailable covers every transport-level failure: dial errors,
// timeouts, and non-2xx responses alike.
var ErrUnavailable = errors.New("remotegrade: validator unavailable")

// Client is an HTTP client for the validator endpoint.
type Client struct {
	baseURL string
	http    *http.Client
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: timeout},
	}
}

type validateRequest struct {
	ChildID   string   `json:"child_id"`
	Subject   string   `json:"subject"`
	Operation string   `json:"operation,omitempty"`
	AgeGroup  string   `json:"age_group"`
	Answers   []string `json:"answers"`
}

type validateResponse struct {
	CorrectCount int                   `json:"correct_count"`
	Total        int                   `json:"total"`
	Percentage   int                   `json:"percentage"`
	Level        int                   `json:"level"`
	AgeGroup     string                `json:"age_group"`
	Difficulty   string                `json:"difficulty"`
	Reason       string                `json:"reason"`
	Feedback     []assessment.Feedback `json:"feedback"`
}

// Validate submits an answer set for server-side grading.
func (c *Client) Validate(ctx context.Context, childID string, subject content.Subject, op content.Operation, age level.AgeGroup, answers []string) (assessment.RemoteResult, error) {
	body, err := json.Marshal(validateRequest{
		ChildID:   childID,
		Subject:   string(subject),
		Operation: string(op),
		AgeGroup:  string(age),
		Answers:   answers,
	})
	if err != nil {
		return assessment.RemoteResult{}, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/assessments/validate", bytes.NewReader(body))
	if err != nil {
		return assessment.RemoteResult{}, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return assessment.RemoteResult{}, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return assessment.RemoteResult{}, fmt.Errorf("%w: status %d", ErrUnavailable, resp.StatusCode)
	}

	var vr validateResponse
	if err := json.NewDecoder(resp.Body).Decode(&vr); err != nil {
		return assessment.RemoteResult{}, fmt.Errorf("%w: decoding response: %v", ErrUnavailable, err)
	}

	return assessment.RemoteResult{
		CorrectCount: vr.CorrectCount,
		Total:        vr.Total,
		Percentage:   vr.Percentage,
		Level:        level.Level(vr.Level),
		AgeGroup:     level.AgeGroup(vr.AgeGroup),
		Difficulty:   level.Difficulty(vr.Difficulty),
		Reason:       vr.Reason,
		Feedback:     vr.Feedback,
	}, nil
}

var _ assessment.RemoteValidator = (*Client)(nil)
