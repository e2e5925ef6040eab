package commands

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/urfave/cli/v2"

	"github.com/tildaslashalef/codelens/internal/app"
	"github.com/tildaslashalef/codelens/internal/config"
	"github.com/tildaslashalef/codelens/internal/utils"
)

// InitCommand returns the CLI command that writes a starter configuration
func InitCommand() *cli.Command {
	return &cli.Command{
		Name:        "init",
		Usage:       "Create ~/.codelens/.env with every setting documented",
		Description: "An existing .env is kept unless --force is given, in which case it is backed up first.",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "force",
				Usage: "Overwrite an existing .env after backing it up",
			},
		},
		Action: func(c *cli.Context) error {
			application, err := app.FromContext(c)
			if err != nil {
				return err
			}

			w := c.App.Writer
			dir := application.Config.Dir
			utils.PrintHeading(w, "Initializing codelens")
			utils.PrintInfo(w, "Configuration directory: "+color.YellowString("%s", dir))

			written, err := config.WriteSampleEnv(dir, c.Bool("force"))
			if err != nil {
				utils.PrintError(c.App.ErrWriter, fmt.Sprintf("Failed to write configuration: %s", err))
				return cli.Exit("", 1)
			}
			if !written {
				utils.PrintWarning(w, "A .env already exists; use --force to replace it")
				return nil
			}

			utils.PrintSuccess(w, "Wrote sample configuration")
			if !application.Config.HasCredential() {
				utils.PrintKeyValue(w, "Next", "set "+application.Config.CredentialEnvVar()+" in the .env file")
			}
			return nil
		},
	}
}
