package cli

import (
	"fmt"

	"github.com/alexanderramin/agrismart/internal/cli/formatter"
	"github.com/spf13/cobra"
)

func newVideosCmd(app *App) *cobra.Command {
	var tag string

	cmd := &cobra.Command{
		Use:   "videos",
		Short: "List tutorial videos",
		RunE: func(cmd *cobra.Command, args []string) error {
			lang, err := languageFlag(cmd.Flags())
			if err != nil {
				return err
			}
			videos := app.Catalog.Videos()
			if tag != "" {
				videos = app.Catalog.VideosTagged(tag)
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatVideos(lang, videos))
			return nil
		},
	}
	cmd.Flags().StringVar(&tag, "tag", "", "only videos with this tag (agriculture, pest)")
	return cmd
}

func newSchemesCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "schemes",
		Short: "List government schemes for farmers",
		RunE: func(cmd *cobra.Command, args []string) error {
			lang, err := languageFlag(cmd.Flags())
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatSchemes(lang, app.Catalog.Schemes()))
			return nil
		},
	}
}

func newDashboardCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "dashboard",
		Short: "Show assistants, schemes and videos",
		RunE: func(cmd *cobra.Command, args []string) error {
			lang, err := languageFlag(cmd.Flags())
			if err != nil {
				return err
			}
			p, err := app.currentUser(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatDashboard(lang, p.Name, app.Catalog.Schemes(), app.Catalog.Videos()))
			return nil
		},
	}
}
