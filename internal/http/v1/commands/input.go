package commands

// InvokeInput defines path parameters for invoking a command.
type InvokeInput struct {
	Name string `path:"name" doc:"Command name" example:"get_data_from_fastapi" pattern:"^[a-z][a-z0-9_]{0,63}$"`
}
