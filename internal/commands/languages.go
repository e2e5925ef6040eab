package commands

import (
	"github.com/urfave/cli/v2"

	"github.com/tildaslashalef/codelens/internal/language"
	"github.com/tildaslashalef/codelens/internal/utils"
)

// LanguagesCommand lists the languages a review can be requested for
func LanguagesCommand() *cli.Command {
	return &cli.Command{
		Name:  "languages",
		Usage: "List supported languages",
		Action: func(c *cli.Context) error {
			def := language.Default()
			rows := make([][]string, 0, len(language.All()))
			for _, l := range language.All() {
				mark := ""
				if l.ID == def.ID {
					mark = "default"
				}
				rows = append(rows, []string{l.ID, l.Name, mark})
			}

			opts := utils.DefaultTableOptions()
			opts.Title = "Languages"
			opts.Output = c.App.Writer
			utils.PrintTable([]string{"ID", "Name", ""}, rows, opts)
			return nil
		},
	}
}
