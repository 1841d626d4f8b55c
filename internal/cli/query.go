package cli

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"ldq/internal/adapters"
	"ldq/internal/app"
	"ldq/internal/types"
)

type queryOptions struct {
	Source      string
	Context     string
	ContextFile string
	Subject     string
	Path        string
	Format      string
}

func newQueryCommand() *cobra.Command {
	opts := queryOptions{}
	cmd := &cobra.Command{
		Use:   "query",
		Short: "Resolve a path expression against a linked-data source",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runQuery(cmd.Context(), cmd, opts)
		},
	}
	cmd.Flags().StringVar(&opts.Source, "source", "", "Source document URI")
	cmd.Flags().StringVar(&opts.Context, "context", "", "Inline context document")
	cmd.Flags().StringVar(&opts.ContextFile, "context-file", "", "Context document file")
	cmd.Flags().StringVar(&opts.Subject, "subject", "", "Subject URI")
	cmd.Flags().StringVar(&opts.Path, "path", "", "Path expression")
	cmd.Flags().StringVar(&opts.Format, "format", "text", "Output format (text, json, yaml)")
	_ = viper.BindPFlag("source", cmd.Flags().Lookup("source"))
	_ = viper.BindPFlag("context", cmd.Flags().Lookup("context"))
	_ = viper.BindPFlag("context_file", cmd.Flags().Lookup("context-file"))
	_ = viper.BindPFlag("subject", cmd.Flags().Lookup("subject"))
	_ = viper.BindPFlag("path", cmd.Flags().Lookup("path"))
	_ = viper.BindPFlag("format", cmd.Flags().Lookup("format"))
	return cmd
}

func runQuery(ctx context.Context, cmd *cobra.Command, opts queryOptions) error {
	contextText, err := loadContextText(
		resolveString(cmd, opts.Context, "context", "context"),
		resolveString(cmd, opts.ContextFile, "context_file", "context-file"),
	)
	if err != nil {
		return err
	}
	service := app.NewService()
	session := service.NewSession()
	result, err := service.Execute(ctx, session, app.ExecuteRequest{
		Source:         resolveString(cmd, opts.Source, "source", "source"),
		ContextText:    contextText,
		Subject:        resolveString(cmd, opts.Subject, "subject", "subject"),
		PathExpression: resolveString(cmd, opts.Path, "path", "path"),
	})
	if err != nil {
		return err
	}
	renderer := adapters.NewResultRendererAdapter(types.OutputFormat(resolveString(cmd, opts.Format, "format", "format")))
	rendered, err := renderer.Render(types.CollectedResult{Values: result.Values})
	if err != nil {
		return err
	}
	fmt.Print(rendered)
	return nil
}

func loadContextText(inline string, file string) (string, error) {
	if strings.TrimSpace(inline) != "" {
		return inline, nil
	}
	if strings.TrimSpace(file) == "" {
		return "", nil
	}
	data, err := os.ReadFile(file)
	if err != nil {
		return "", errbuilder.New().
			WithCode(errbuilder.CodeNotFound).
			WithMsg("context file not found").
			WithCause(err)
	}
	return string(data), nil
}

func resolveString(cmd *cobra.Command, value string, key string, flagName string) string {
	if cmd == nil {
		if value != "" {
			return value
		}
		return viper.GetString(key)
	}
	if flagChanged(cmd, flagName) {
		return value
	}
	return viper.GetString(key)
}

func flagChanged(cmd *cobra.Command, name string) bool {
	if cmd == nil || strings.TrimSpace(name) == "" {
		return false
	}
	if flag := cmd.Flags().Lookup(name); flag != nil {
		return flag.Changed
	}
	if flag := cmd.PersistentFlags().Lookup(name); flag != nil {
		return flag.Changed
	}
	return false
}
