package portal

import (
	"fmt"
	"time"

	"github.com/mitchellh/mapstructure"
)

// Interview is the booking confirmation returned by both booking mutations.
type Interview struct {
	InterviewID int    `mapstructure:"interviewId"`
	StartTime   string `mapstructure:"startTime"`
}

type graphQLRequest struct {
	Query     string         `json:"query"`
	Variables map[string]any `json:"variables,omitempty"`
}

type graphQLResponse struct {
	Data   map[string]any `json:"data"`
	Errors []struct {
		Message string `json:"message"`
	} `json:"errors"`
}

// postGraphQL executes one GraphQL operation and returns the data envelope.
// A response with a non-empty errors array becomes an *APIError carrying the
// first error's message verbatim.
func (c *Client) postGraphQL(query string, variables map[string]any) (map[string]any, error) {
	var resp graphQLResponse
	if err := c.postJSON(graphqlPath, graphQLRequest{Query: query, Variables: variables}, &resp); err != nil {
		return nil, err
	}

	if len(resp.Errors) > 0 {
		return nil, &APIError{Message: resp.Errors[0].Message}
	}

	return resp.Data, nil
}

const findSlotsQuery = `
query FindSlots($candidateId: Int!, $jobId: Int!, $durationMinutes: Int!, $numDays: Int!) {
  findAvailableSlots(candidateId: $candidateId, jobId: $jobId, durationMinutes: $durationMinutes, numDays: $numDays)
}`

// FindAvailableSlots returns conflict-free interview start times (ISO
// timestamps) for the (candidate, job) pair. An empty result means no open
// slots in the window and is not an error.
func (c *Client) FindAvailableSlots(candidateID, jobID, durationMinutes, windowDays int) ([]string, error) {
	data, err := c.postGraphQL(findSlotsQuery, map[string]any{
		"candidateId":     candidateID,
		"jobId":           jobID,
		"durationMinutes": durationMinutes,
		"numDays":         windowDays,
	})
	if err != nil {
		return nil, err
	}

	raw, ok := data["findAvailableSlots"]
	if !ok {
		return nil, fmt.Errorf("findAvailableSlots missing from response")
	}

	slots := make([]string, 0)
	if raw == nil {
		return slots, nil
	}

	items, ok := raw.([]any)
	if !ok {
		return nil, fmt.Errorf("findAvailableSlots has unexpected shape %T", raw)
	}

	for _, item := range items {
		slot, ok := item.(string)
		if !ok {
			return nil, fmt.Errorf("slot has unexpected shape %T", item)
		}
		slots = append(slots, slot)
	}

	return slots, nil
}

const bookInterviewMutation = `
mutation BookInterview($jobId: Int!, $candidateId: Int!, $startTime: String!, $endTime: String!) {
  bookInterview(jobId: $jobId, candidateId: $candidateId, startTime: $startTime, endTime: $endTime) {
    interviewId
    startTime
  }
}`

// BookInterview books the chosen slot on behalf of a recruiter.
func (c *Client) BookInterview(jobID, candidateID int, start, end time.Time) (*Interview, error) {
	data, err := c.postGraphQL(bookInterviewMutation, map[string]any{
		"jobId":       jobID,
		"candidateId": candidateID,
		"startTime":   isoTime(start),
		"endTime":     isoTime(end),
	})
	if err != nil {
		return nil, err
	}

	return decodeInterview(data["bookInterview"])
}

const selectSlotMutation = `
mutation SelectSlot($applicationId: Int!, $startTime: String!) {
  selectInterviewSlot(applicationId: $applicationId, startTime: $startTime) {
    interviewId
    startTime
  }
}`

// SelectInterviewSlot books the chosen slot on behalf of an applicant who
// received an invitation, keyed by their application id.
func (c *Client) SelectInterviewSlot(applicationID int, start time.Time) (*Interview, error) {
	data, err := c.postGraphQL(selectSlotMutation, map[string]any{
		"applicationId": applicationID,
		"startTime":     isoTime(start),
	})
	if err != nil {
		return nil, err
	}

	return decodeInterview(data["selectInterviewSlot"])
}

const updateStatusMutation = `
mutation UpdateStatus($userId: Int!, $jobId: Int!, $newStatus: String!) {
  updateApplicationStatus(userId: $userId, jobId: $jobId, newStatus: $newStatus) {
    status
  }
}`

// UpdateApplicationStatus moves an application to a new status (hire,
// reject, ...) and returns the status the backend settled on.
func (c *Client) UpdateApplicationStatus(userID, jobID int, newStatus string) (string, error) {
	data, err := c.postGraphQL(updateStatusMutation, map[string]any{
		"userId":    userID,
		"jobId":     jobID,
		"newStatus": newStatus,
	})
	if err != nil {
		return "", err
	}

	var result struct {
		Status string `mapstructure:"status"`
	}
	if err := mapstructure.Decode(data["updateApplicationStatus"], &result); err != nil {
		return "", fmt.Errorf("decoding status update result: %w", err)
	}

	return result.Status, nil
}

func decodeInterview(raw any) (*Interview, error) {
	if raw == nil {
		return nil, fmt.Errorf("empty booking result")
	}

	var interview Interview
	if err := mapstructure.WeakDecode(raw, &interview); err != nil {
		return nil, fmt.Errorf("decoding booking result: %w", err)
	}

	return &interview, nil
}
