package entity

import (
	"slices"

	"github.com/mitchellh/mapstructure"
)

type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

var roles = []Role{RoleUser, RoleSystem, RoleAssistant}

// Roles lists the conversation roles a caller may send, in the order the
// echo tool documents them.
func Roles() []Role {
	return slices.Clone(roles)
}

func (r Role) Valid() bool {
	return slices.Contains(roles, r)
}

type (
	// Message is one turn of the caller's conversation history. Tools only
	// read it; nothing here is persisted.
	Message struct {
		Role    Role   `json:"role" mapstructure:"role"`
		Content string `json:"content" mapstructure:"content"`
	}

	// ToolRequest is the JSON body of POST /tool/{name}.
	ToolRequest struct {
		Messages []Message `json:"messages" mapstructure:"messages"`
		Arg      string    `json:"arg" mapstructure:"arg"`
	}
)

// DecodeToolRequest converts a decoded JSON object into a ToolRequest.
// Field types are checked strictly: arg must be a string and messages a list
// of objects with string role and content.
func DecodeToolRequest(raw map[string]any) (ToolRequest, error) {
	var req ToolRequest
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:  &req,
		TagName: "mapstructure",
	})
	if err != nil {
		return req, err
	}
	if err := decoder.Decode(raw); err != nil {
		return ToolRequest{}, err
	}
	return req, nil
}
