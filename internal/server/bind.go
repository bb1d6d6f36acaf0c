package server

import (
	"encoding/json"
	"io"

	"github.com/gin-gonic/gin"
)

// bindAllowList decodes the request body into target, rejecting any key not
// in the allow list. A rejected body never mutates the target.
func bindAllowList(c *gin.Context, target any, allowed ...string) error {
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		return invalidRequestError()
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(body, &raw); err != nil {
		return invalidRequestError()
	}

	permitted := make(map[string]bool, len(allowed))
	for _, key := range allowed {
		permitted[key] = true
	}
	for key := range raw {
		if !permitted[key] {
			return newValidationError(key, "field_not_updatable", "field cannot be updated")
		}
	}

	if err := json.Unmarshal(body, target); err != nil {
		return invalidRequestError()
	}
	return nil
}

func bindJSON(c *gin.Context, target any) error {
	if err := c.ShouldBindJSON(target); err != nil {
		return invalidRequestError()
	}
	return nil
}
