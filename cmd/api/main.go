package main

import (
	"fmt"
	"os"

	"github.com/taskmaster/tasklist/cmd/api/commands"
)

// @title TaskList API
// @version 1.0
// @description Single-list todo manager with subtasks, comments, assignments and reminders

// @contact.name TaskList Support
// @contact.url https://github.com/taskmaster/tasklist

// @license.name MIT
// @license.url https://github.com/taskmaster/tasklist/blob/main/LICENSE

// @host localhost:8080
// @BasePath /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and the token from `tasklist token issue`.

func main() {
	if err := commands.NewRootCommand().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
