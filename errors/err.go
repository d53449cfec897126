package errors

import (
	"fmt"
)

var (
	ErrInvalidConfig = fmt.Errorf("toolserver: invalid config")
	ErrNotFound      = fmt.Errorf("toolserver: not found")
	ErrInvalidParams = fmt.Errorf("toolserver: invalid params")
	ErrToolExecution = fmt.Errorf("toolserver: tool execution failed")
	ErrUpstream      = fmt.Errorf("toolserver: upstream request failed")
)
