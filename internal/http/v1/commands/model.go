package commands

import "github.com/personavault/bridge/internal/platform/timeutil"

// Invocation is the successful result of a command.
type Invocation struct {
	Command     string        `json:"command"     doc:"Invoked command"                 example:"get_data_from_fastapi"`
	Result      string        `json:"result"      doc:"Text returned by the command"    example:"Hello from FastAPI"`
	CompletedAt timeutil.Time `json:"completedAt" doc:"Time the command finished (UTC)" example:"2024-01-15T10:30:00.000Z"`
}
