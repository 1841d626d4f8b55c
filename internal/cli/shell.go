package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"ldq/internal/adapters"
	"ldq/internal/app"
	"ldq/internal/core"
	"ldq/internal/types"
)

func newShellCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "shell",
		Short: "Interactive query session with incremental chain rebuilds",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runShell(cmd.Context(), cmd.InOrStdin(), cmd.OutOrStdout())
		},
	}
}

// runShell reads commands line by line. Edits mark exactly one input as
// changed; the next run rebuilds only the stale part of the chain.
func runShell(ctx context.Context, in io.Reader, out io.Writer) error {
	service := app.NewService()
	session := service.NewSession()

	var source, contextText, subject string
	format := types.OutputFormatText

	fmt.Fprintln(out, "ldq shell — type 'help' for commands")
	scanner := bufio.NewScanner(in)
	for {
		fmt.Fprint(out, "> ")
		if !scanner.Scan() {
			return scanner.Err()
		}
		command, argument := splitShellLine(scanner.Text())
		switch command {
		case "":
			continue
		case "help":
			printShellHelp(out)
		case "source":
			source = argument
			service.InputChanged(session, core.InputSource)
		case "context":
			contextText = argument
			service.InputChanged(session, core.InputContext)
		case "subject":
			subject = argument
			service.InputChanged(session, core.InputSubject)
		case "format":
			format = types.OutputFormat(argument)
		case "run":
			result, err := service.Execute(ctx, session, app.ExecuteRequest{
				Source:         source,
				ContextText:    contextText,
				Subject:        subject,
				PathExpression: argument,
			})
			if err != nil {
				fmt.Fprintln(out, errorMessage(err))
				continue
			}
			rendered, err := adapters.NewResultRendererAdapter(format).Render(types.CollectedResult{Values: result.Values})
			if err != nil {
				fmt.Fprintln(out, errorMessage(err))
				continue
			}
			fmt.Fprint(out, rendered)
		case "subjects":
			result, err := service.ListSubjects(ctx, session, app.ListSubjectsRequest{Source: source})
			if err != nil {
				fmt.Fprintln(out, errorMessage(err))
				continue
			}
			for _, value := range result.Subjects {
				fmt.Fprintln(out, value)
			}
		case "properties":
			result, err := service.ListProperties(ctx, session, app.ListPropertiesRequest{
				Source:  source,
				Subject: subject,
			})
			if err != nil {
				fmt.Fprintln(out, errorMessage(err))
				continue
			}
			for _, value := range result.Properties {
				fmt.Fprintln(out, value)
			}
		case "link":
			result, err := service.Permalink(app.PermalinkRequest{
				Base: argument,
				State: types.QueryState{
					Source:      source,
					ContextText: contextText,
					Format:      format,
				},
			})
			if err != nil {
				fmt.Fprintln(out, errorMessage(err))
				continue
			}
			fmt.Fprintln(out, result.URI)
		case "quit", "exit":
			return nil
		default:
			fmt.Fprintf(out, "unknown command %q — type 'help'\n", command)
		}
	}
}

func splitShellLine(line string) (string, string) {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" {
		return "", ""
	}
	parts := strings.SplitN(trimmed, " ", 2)
	if len(parts) == 1 {
		return parts[0], ""
	}
	return parts[0], strings.TrimSpace(parts[1])
}

func printShellHelp(out io.Writer) {
	fmt.Fprintln(out, "commands:")
	fmt.Fprintln(out, "  source <uri>      set the source document")
	fmt.Fprintln(out, "  context <doc>     set the context document")
	fmt.Fprintln(out, "  subject <uri>     set the subject")
	fmt.Fprintln(out, "  format <fmt>      set the output format (text, json, yaml)")
	fmt.Fprintln(out, "  run <path>        resolve a path expression")
	fmt.Fprintln(out, "  subjects          list the document's subjects")
	fmt.Fprintln(out, "  properties        list the subject's properties")
	fmt.Fprintln(out, "  link <base>       print a shareable link")
	fmt.Fprintln(out, "  quit              leave the shell")
}
