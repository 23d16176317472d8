package commands

import (
	"github.com/spf13/cobra"
)

func newCreateAdminCommand(configPath *string) *cobra.Command {
	var username, password string

	cmd := &cobra.Command{
		Use:   "create-admin",
		Short: "Create the first admin account if none exists",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, log, deps, err := bootstrap(cmd, *configPath)
			if err != nil {
				return err
			}
			created, err := deps.Auth.EnsureAdmin(cmd.Context(), username, password)
			if err != nil {
				return err
			}
			if !created {
				log.Info("an admin account already exists; nothing to do")
				return nil
			}
			log.WithField("username", username).Info("admin account created")
			return nil
		},
	}
	cmd.Flags().StringVarP(&username, "username", "u", "", "admin username")
	cmd.Flags().StringVarP(&password, "password", "p", "", "admin password")
	_ = cmd.MarkFlagRequired("username")
	_ = cmd.MarkFlagRequired("password")
	return cmd
}
