package entity_test

import (
	"testing"

	"github.com/habiliai/toolserver/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoleValid(t *testing.T) {
	assert.True(t, entity.RoleUser.Valid())
	assert.True(t, entity.RoleSystem.Valid())
	assert.True(t, entity.RoleAssistant.Valid())
	assert.False(t, entity.Role("tool").Valid())
	assert.False(t, entity.Role("").Valid())
}

func TestRolesIsACopy(t *testing.T) {
	roles := entity.Roles()
	roles[0] = "mutated"

	assert.Equal(t, entity.RoleUser, entity.Roles()[0])
}

func TestDecodeToolRequest(t *testing.T) {
	req, err := entity.DecodeToolRequest(map[string]any{
		"messages": []any{
			map[string]any{"role": "user", "content": "hi"},
			map[string]any{"role": "assistant", "content": "hello", "extra": true},
		},
		"arg": "2,3",
	})
	require.NoError(t, err)

	assert.Equal(t, entity.ToolRequest{
		Messages: []entity.Message{
			{Role: entity.RoleUser, Content: "hi"},
			{Role: entity.RoleAssistant, Content: "hello"},
		},
		Arg: "2,3",
	}, req)
}

func TestDecodeToolRequest_WrongShapes(t *testing.T) {
	for name, raw := range map[string]map[string]any{
		"numeric arg":       {"messages": []any{}, "arg": 1.0},
		"messages string":   {"messages": "hi", "arg": ""},
		"message not a map": {"messages": []any{"hi"}, "arg": ""},
	} {
		_, err := entity.DecodeToolRequest(raw)
		assert.Error(t, err, name)
	}
}
