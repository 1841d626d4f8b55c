package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"ldq/internal/app"
)

type propertiesOptions struct {
	Source  string
	Subject string
}

func newPropertiesCommand() *cobra.Command {
	opts := propertiesOptions{}
	cmd := &cobra.Command{
		Use:   "properties",
		Short: "List the properties of a subject",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runProperties(cmd.Context(), cmd, opts)
		},
	}
	cmd.Flags().StringVar(&opts.Source, "source", "", "Source document URI")
	cmd.Flags().StringVar(&opts.Subject, "subject", "", "Subject URI")
	_ = viper.BindPFlag("source", cmd.Flags().Lookup("source"))
	_ = viper.BindPFlag("subject", cmd.Flags().Lookup("subject"))
	return cmd
}

func runProperties(ctx context.Context, cmd *cobra.Command, opts propertiesOptions) error {
	service := app.NewService()
	session := service.NewSession()
	result, err := service.ListProperties(ctx, session, app.ListPropertiesRequest{
		Source:  resolveString(cmd, opts.Source, "source", "source"),
		Subject: resolveString(cmd, opts.Subject, "subject", "subject"),
	})
	if err != nil {
		return err
	}
	for _, property := range result.Properties {
		fmt.Println(property)
	}
	return nil
}
