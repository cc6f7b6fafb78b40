package commands

// ListData is the response body for listing commands.
type ListData struct {
	Commands []string `json:"commands" doc:"Registered command names"`
	Count    int      `json:"count"    doc:"Number of registered commands" example:"1"`
}

// ListOutput is the response wrapper for GET /commands.
type ListOutput struct {
	Body ListData
}

// InvokeOutput is the response wrapper for POST /commands/{name}.
type InvokeOutput struct {
	Body Invocation
}
