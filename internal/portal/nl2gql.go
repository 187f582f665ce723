package portal

import "github.com/RJBOGA/JAP/internal/session"

// smallTalkMarker is the literal generated-query value the NL-to-query
// service returns when it short-circuits a conversational turn without
// touching the database.
const smallTalkMarker = "Small talk handled by service logic"

// UserContext shapes the logged-in identity for the NL-to-query service.
// The service resolves "my applications" style requests by reading the id
// under the exact key "UserID"; the remaining keys follow the login
// payload's casing. The lookup is case-sensitive, so the spelling here is
// part of the wire contract.
func UserContext(user session.User) map[string]any {
	return map[string]any{
		"UserID":    user.ID,
		"firstName": user.FirstName,
		"lastName":  user.LastName,
		"email":     user.Email,
		"role":      string(user.Role),
	}
}

// TranslateResult is one turn's answer from the NL-to-query service: the
// query it generated and the untyped result of executing it.
type TranslateResult struct {
	GeneratedQuery string    `json:"graphql"`
	Result         RawResult `json:"result"`
}

// SmallTalk returns the canned conversational response when the service
// handled the turn itself instead of generating a query.
func (r *TranslateResult) SmallTalk() (string, bool) {
	if r.GeneratedQuery != smallTalkMarker {
		return "", false
	}

	response, ok := r.Result["response"].(string)
	if !ok || response == "" {
		return "", false
	}

	return response, true
}

type translateRequest struct {
	Query       string         `json:"query"`
	UserContext map[string]any `json:"userContext,omitempty"`
}

// TranslateAndExecute sends a free-form request to the NL-to-query service
// and returns the generated query plus its execution result. The userContext
// lets the service resolve "my applications" style requests.
func (c *Client) TranslateAndExecute(query string, userContext map[string]any) (*TranslateResult, error) {
	var result TranslateResult
	if err := c.postJSON(nl2gqlPath, translateRequest{Query: query, UserContext: userContext}, &result); err != nil {
		return nil, err
	}

	if result.Result == nil {
		result.Result = RawResult{}
	}

	return &result, nil
}
