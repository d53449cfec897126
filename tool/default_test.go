package tool_test

import (
	"testing"

	"github.com/habiliai/toolserver/config"
	"github.com/habiliai/toolserver/tool"
	"github.com/stretchr/testify/assert"
)

func TestNewDefaultRegistry(t *testing.T) {
	r := tool.NewDefaultRegistry(tool.Defaults{Config: config.NewConfig()})

	assert.Equal(t, []string{"tools", "echo", "add", "web", "wiki", "wikishort", "rss"}, r.List())
	assert.Equal(t, []string{
		tool.EchoUsage,
		tool.AddUsage,
		tool.WebUsage,
		tool.WikiUsage,
		tool.WikiShortUsage,
		tool.RSSUsage,
	}, r.Usages())
}
