package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/zeyaddeeb/zeyaddeeb/internal/app"
	"github.com/zeyaddeeb/zeyaddeeb/internal/domain/models"
	"github.com/zeyaddeeb/zeyaddeeb/internal/lib/markdown"
	"github.com/zeyaddeeb/zeyaddeeb/internal/lib/validation"
	"github.com/zeyaddeeb/zeyaddeeb/internal/seed"
	"github.com/zeyaddeeb/zeyaddeeb/internal/services/auth"
	collection "github.com/zeyaddeeb/zeyaddeeb/internal/services/collection_service"
	content "github.com/zeyaddeeb/zeyaddeeb/internal/services/content_service"
	posts "github.com/zeyaddeeb/zeyaddeeb/internal/services/post_service"
)

var (
	adminEmail    string
	adminPassword string
	adminName     string
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Create the admin user and load the sample content",
	Long: `seed creates the admin user if it does not exist yet and loads the
bundled collection items and posts. Items whose slug is taken are skipped.
Add the printed admin id to auth.admin_ids to allow that user to write.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		const op = "cmd.seed"

		if len(adminPassword) < 8 {
			return errors.New("admin password must be at least 8 characters")
		}

		ctx := cmd.Context()

		stores, err := app.OpenStores(ctx, log, cfg)
		if err != nil {
			return fmt.Errorf("%s: %w", op, err)
		}
		defer stores.Close()

		authSvc := auth.New(log, stores.Users, stores.Users, stores.Tokens, cfg.Auth.TokenSecret, cfg.Auth.TokenTTL)

		if _, err := authSvc.RegisterNewUser(ctx, adminName, adminEmail, adminPassword); err != nil {
			if !errors.Is(err, auth.ErrUserExist) {
				return fmt.Errorf("%s: %w", op, err)
			}
			log.Info("admin user already exists")
		}

		admin, err := stores.Users.UserByEmail(ctx, strings.ToLower(strings.TrimSpace(adminEmail)))
		if err != nil {
			return fmt.Errorf("%s: %w", op, err)
		}
		adminID := admin.ID
		session := &models.Session{User: admin}

		policy := auth.NewAdminPolicy(adminID)
		validate := validation.New()
		contentSvc := content.NewContentService(log, stores.Posts, stores.Collection, stores.Cache)

		seeder := seed.New(log,
			posts.NewPostService(log, stores.Posts, policy, validate, markdown.New()),
			collection.NewCollectionService(log, stores.Collection, policy, validate, contentSvc),
		)

		report, err := seeder.Run(ctx, session, seed.Content())
		if err != nil {
			return fmt.Errorf("%s: %w", op, err)
		}

		fmt.Fprintf(cmd.OutOrStdout(),
			"admin id: %s\ncollection items: %d created, %d skipped\nposts: %d created, %d skipped\n",
			adminID, report.ItemsCreated, report.ItemsSkipped, report.PostsCreated, report.PostsSkipped,
		)

		return nil
	},
}

func init() {
	rootCmd.AddCommand(seedCmd)

	seedCmd.Flags().StringVar(&adminEmail, "admin-email", "admin@example.com", "admin email")
	seedCmd.Flags().StringVar(&adminPassword, "admin-password", "", "admin password (at least 8 characters)")
	seedCmd.Flags().StringVar(&adminName, "admin-name", "Admin", "admin display name")
	_ = seedCmd.MarkFlagRequired("admin-password")
}
