package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"ldq/internal/app"
	"ldq/internal/types"
)

type permalinkOptions struct {
	Base        string
	Source      string
	Context     string
	ContextFile string
	Format      string
}

func newPermalinkCommand() *cobra.Command {
	opts := permalinkOptions{}
	cmd := &cobra.Command{
		Use:   "permalink",
		Short: "Build a shareable link for the given query inputs",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runPermalink(cmd, opts)
		},
	}
	cmd.Flags().StringVar(&opts.Base, "base", "", "Base URI of the shared query page")
	cmd.Flags().StringVar(&opts.Source, "source", "", "Source document URI")
	cmd.Flags().StringVar(&opts.Context, "context", "", "Inline context document")
	cmd.Flags().StringVar(&opts.ContextFile, "context-file", "", "Context document file")
	cmd.Flags().StringVar(&opts.Format, "format", "", "Output format (text, json, yaml)")
	_ = viper.BindPFlag("permalink_base", cmd.Flags().Lookup("base"))
	_ = viper.BindPFlag("source", cmd.Flags().Lookup("source"))
	_ = viper.BindPFlag("context", cmd.Flags().Lookup("context"))
	_ = viper.BindPFlag("context_file", cmd.Flags().Lookup("context-file"))
	_ = viper.BindPFlag("format", cmd.Flags().Lookup("format"))
	return cmd
}

func runPermalink(cmd *cobra.Command, opts permalinkOptions) error {
	contextText, err := loadContextText(
		resolveString(cmd, opts.Context, "context", "context"),
		resolveString(cmd, opts.ContextFile, "context_file", "context-file"),
	)
	if err != nil {
		return err
	}
	service := app.NewService()
	result, err := service.Permalink(app.PermalinkRequest{
		Base: resolveString(cmd, opts.Base, "permalink_base", "base"),
		State: types.QueryState{
			Source:      resolveString(cmd, opts.Source, "source", "source"),
			ContextText: contextText,
			Format:      types.OutputFormat(resolveString(cmd, opts.Format, "format", "format")),
		},
	})
	if err != nil {
		return err
	}
	fmt.Println(result.URI)
	return nil
}
