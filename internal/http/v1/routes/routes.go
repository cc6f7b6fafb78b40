package routes

import (
	"github.com/danielgtaylor/huma/v2"

	"github.com/personavault/bridge/internal/command"
	"github.com/personavault/bridge/internal/http/v1/commands"
)

// Register wires all HTTP routes into the provided API router.
func Register(api huma.API, registry *command.Registry) {
	commands.Register(api, registry)
}
