package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"ldq/internal/app"
)

type subjectsOptions struct {
	Source string
}

func newSubjectsCommand() *cobra.Command {
	opts := subjectsOptions{}
	cmd := &cobra.Command{
		Use:   "subjects",
		Short: "List the subjects of a linked-data source",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runSubjects(cmd.Context(), cmd, opts)
		},
	}
	cmd.Flags().StringVar(&opts.Source, "source", "", "Source document URI")
	_ = viper.BindPFlag("source", cmd.Flags().Lookup("source"))
	return cmd
}

func runSubjects(ctx context.Context, cmd *cobra.Command, opts subjectsOptions) error {
	service := app.NewService()
	session := service.NewSession()
	result, err := service.ListSubjects(ctx, session, app.ListSubjectsRequest{
		Source: resolveString(cmd, opts.Source, "source", "source"),
	})
	if err != nil {
		return err
	}
	for _, subject := range result.Subjects {
		fmt.Println(subject)
	}
	return nil
}
