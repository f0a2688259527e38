package cmd

import (
	"errors"
	"fmt"

	"component-loader/feature/repository"

	"github.com/spf13/cobra"
)

// repositoryCmd represents the repository command
var repositoryCmd = &cobra.Command{
	Use:   "repository",
	Short: "Manage the component package repository",
	Long:  `Fetches, mirrors and publishes component libraries in the S3/MinIO package repository.`,
}

// newRepositoryService builds the repository service, failing when it is disabled.
func newRepositoryService() (*repository.Service, error) {
	rt, err := bootstrap()
	if err != nil {
		return nil, err
	}
	if rt.store == nil {
		return nil, errors.New("package repository is disabled (set REPOSITORY_ENABLED=true)")
	}
	svc := repository.NewService(rt.store, rt.cfg.Repository, rt.logger,
		repository.WithCodec(rt.loader.Codec(), rt.loader.Target()))
	return svc, nil
}

var repositoryFetchCmd = &cobra.Command{
	Use:   "fetch <package>",
	Short: "Download a package into the cache directory",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, err := newRepositoryService()
		if err != nil {
			return err
		}
		local, err := svc.Fetch(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		fmt.Println(local)
		return nil
	},
}

var repositorySyncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Download every published library into the cache directory",
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, err := newRepositoryService()
		if err != nil {
			return err
		}
		report, err := svc.Sync(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Println("\n=== Repository Sync ===")
		fmt.Printf("Downloaded: %d\n", len(report.Downloaded))
		fmt.Printf("Failed: %d\n", len(report.Failed))
		for _, key := range report.Failed {
			fmt.Printf("  %s\n", key)
		}
		return nil
	},
}

var repositoryPublishCmd = &cobra.Command{
	Use:   "publish <file> <package>",
	Short: "Upload a library under a package name",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, err := newRepositoryService()
		if err != nil {
			return err
		}
		key, err := svc.Publish(cmd.Context(), args[0], args[1])
		if err != nil {
			return err
		}
		fmt.Printf("Published %s to %s/%s\n", args[0], svc.Bucket(), key)
		return nil
	},
}

func init() {
	RootCmd.AddCommand(repositoryCmd)
	repositoryCmd.AddCommand(repositoryFetchCmd, repositorySyncCmd, repositoryPublishCmd)
}
