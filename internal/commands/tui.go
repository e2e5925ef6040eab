package commands

import (
	"github.com/urfave/cli/v2"

	"github.com/tildaslashalef/codelens/internal/app"
	"github.com/tildaslashalef/codelens/internal/tui"
)

// TUICommand returns the CLI command for the interactive interface
func TUICommand() *cli.Command {
	return &cli.Command{
		Name:        "tui",
		Usage:       "Start the interactive code review interface",
		Description: "Paste code, pick a language and read the feedback without leaving the terminal. Logs go to ~/.codelens/codelens.log.",
		Action:      tuiAction,
	}
}

func tuiAction(c *cli.Context) error {
	application, err := app.FromContext(c)
	if err != nil {
		return err
	}

	return tui.NewService(application.NewController(), tui.Options{
		Provider: application.Config.LLMProvider,
		Model:    application.Config.Model(),
	}).Run(c.Context)
}
