package commands

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/tildaslashalef/codelens/internal/app"
	"github.com/tildaslashalef/codelens/internal/feedback"
	"github.com/tildaslashalef/codelens/internal/language"
	"github.com/tildaslashalef/codelens/internal/loggy"
	"github.com/tildaslashalef/codelens/internal/review"
	"github.com/tildaslashalef/codelens/internal/utils"
)

// maxSourceBytes bounds what the review command reads
const maxSourceBytes = 1 << 20

// ReviewCommand returns the CLI command for one-shot reviews
func ReviewCommand() *cli.Command {
	return &cli.Command{
		Name:      "review",
		Usage:     "Review a file (or stdin) once and print the feedback",
		ArgsUsage: "[FILE|-]",
		Description: "Sends the code to the configured model with the fixed review prompt. " +
			"The language is detected from the file name and content unless --language is given.",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "language",
				Aliases: []string{"l"},
				Usage:   "Language id: " + strings.Join(language.IDs(), ", "),
			},
			&cli.BoolFlag{
				Name:  "raw",
				Usage: "Print the model's Markdown without rendering",
			},
			&cli.IntFlag{
				Name:  "width",
				Usage: "Wrap rendered feedback at this many columns",
				Value: 100,
			},
		},
		Action: reviewAction,
	}
}

func reviewAction(c *cli.Context) error {
	application, err := app.FromContext(c)
	if err != nil {
		return err
	}

	path := c.Args().First()
	code, err := readSource(c.App.Reader, path)
	if err != nil {
		utils.PrintError(c.App.ErrWriter, err.Error())
		return cli.Exit("", 1)
	}

	langID := c.String("language")
	if langID == "" {
		langID = guessLanguage(c, path, code)
	}

	ctrl := application.NewController()
	st, err := ctrl.Submit(c.Context, string(code), langID)
	if err != nil {
		msg := st.Err
		if msg == "" {
			msg = review.UserMessage(err)
		}
		utils.PrintError(c.App.ErrWriter, msg)
		return cli.Exit("", 1)
	}

	out := st.Feedback
	if !c.Bool("raw") {
		out = feedback.Terminal(st.Feedback, c.Int("width"))
	}
	fmt.Fprintln(c.App.Writer, out)
	return nil
}

// readSource reads FILE, or stdin for "" and "-"
func readSource(stdin io.Reader, path string) ([]byte, error) {
	var r io.Reader = stdin
	if path != "" && path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("failed to open %s: %w", path, err)
		}
		defer f.Close()
		r = f
	}

	code, err := io.ReadAll(io.LimitReader(r, maxSourceBytes+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read code: %w", err)
	}
	if len(code) > maxSourceBytes {
		return nil, fmt.Errorf("input is larger than %d bytes", maxSourceBytes)
	}
	return code, nil
}

func guessLanguage(c *cli.Context, path string, code []byte) string {
	name := ""
	if path != "" && path != "-" {
		name = filepath.Base(path)
	}
	if lang, ok := language.Detect(name, code); ok {
		loggy.Debug("Detected language", "language", lang.ID, "file", path)
		return lang.ID
	}

	lang := language.Default()
	utils.PrintWarning(c.App.ErrWriter, fmt.Sprintf("Could not detect the language, reviewing as %s. Use --language to choose.", lang.Name))
	return lang.ID
}
