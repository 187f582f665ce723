package portal

import (
	"fmt"

	"github.com/RJBOGA/JAP/internal/session"
)

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	User *session.User `json:"user"`
}

// Login authenticates against the backend and returns the account identity.
// Session creation (expiry stamping, persistence) is the caller's concern.
func (c *Client) Login(email, password string) (*session.User, error) {
	var resp loginResponse
	if err := c.postJSON(loginPath, loginRequest{Email: email, Password: password}, &resp); err != nil {
		return nil, err
	}

	if resp.User == nil {
		return nil, fmt.Errorf("login response carried no user")
	}

	return resp.User, nil
}
