package cmd

import (
	"context"
	"fmt"
	"os"

	"component-loader/feature/integrity"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	fixFlag       bool
	integrityPath string
)

// integrityCmd represents the integrity command
var integrityCmd = &cobra.Command{
	Use:   "integrity",
	Short: "Perform integrity checks on the loader deployment",
	Long:  `Checks the search path, probes library files, and verifies the package repository and the journal schema.`,
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) > 0 {
			cmd.Help()
			return
		}
		runIntegrityChecks(cmd.Context(), true, true, true, true)
	},
}

var searchPathCmd = &cobra.Command{
	Use:   "searchpath",
	Short: "Check and fix search path directories",
	Run: func(cmd *cobra.Command, args []string) {
		runIntegrityChecks(cmd.Context(), true, false, false, false)
	},
}

var librariesCmd = &cobra.Command{
	Use:   "libraries",
	Short: "Probe library files on the search path",
	Run: func(cmd *cobra.Command, args []string) {
		runIntegrityChecks(cmd.Context(), false, true, false, false)
	},
}

var repositoryCheckCmd = &cobra.Command{
	Use:   "repository",
	Short: "Check and fix the package repository bucket",
	Run: func(cmd *cobra.Command, args []string) {
		runIntegrityChecks(cmd.Context(), false, false, true, false)
	},
}

var journalCheckCmd = &cobra.Command{
	Use:   "journal",
	Short: "Check the journal database schema",
	Run: func(cmd *cobra.Command, args []string) {
		runIntegrityChecks(cmd.Context(), false, false, false, true)
	},
}

func init() {
	RootCmd.AddCommand(integrityCmd)
	integrityCmd.AddCommand(searchPathCmd, librariesCmd, repositoryCheckCmd, journalCheckCmd)

	integrityCmd.PersistentFlags().StringVar(&integrityPath, "path", "", "Path list searched before the default path")
	searchPathCmd.Flags().BoolVar(&fixFlag, "fix", false, "Create missing directories")
	repositoryCheckCmd.Flags().BoolVar(&fixFlag, "fix", false, "Create the missing bucket")
}

func runIntegrityChecks(ctx context.Context, runSearchPath, runLibraries, runRepository, runJournal bool) {
	rt, err := bootstrap()
	if err != nil {
		fmt.Printf("Failed to initialize: %v\n", err)
		os.Exit(1)
	}
	logg := rt.logger
	svc := integrity.NewService(rt.loader, rt.store, rt.cfg.Repository, rt.db, logg)
	all := runSearchPath && runLibraries && runRepository && runJournal

	if runSearchPath {
		logg.Info("Checking search path...")
		report := svc.CheckSearchPath(integrityPath)
		for _, dir := range report.Directories {
			logg.Info("Search path directory",
				zap.String("dir", dir.Path),
				zap.Bool("exists", dir.Exists),
				zap.Bool("target_dir", dir.TargetDir),
				zap.Int("libraries", dir.Libraries))
		}
		if len(report.Missing) == 0 {
			logg.Info("Search path is intact.")
		} else {
			logg.Warn("Missing search path directories detected", zap.Strings("missing", report.Missing))
			if !all && fixFlag {
				logg.Info("Creating missing directories...")
				if err := svc.FixSearchPath(report.Missing); err != nil {
					logg.Fatal("Failed to fix search path", zap.Error(err))
				}
				logg.Info("Search path fixed successfully.")
			} else if !all {
				logg.Info("Run with --fix to create missing directories.")
			}
		}
	}

	if runLibraries {
		logg.Info("Probing libraries...")
		report := svc.CheckLibraries(integrityPath)
		for _, lib := range report.Libraries {
			switch {
			case lib.Error != "":
				logg.Warn("Invalid library", zap.String("path", lib.Path), zap.String("error", lib.Error))
			case lib.ShadowedBy != "":
				logg.Warn("Shadowed library", zap.String("path", lib.Path), zap.String("shadowed_by", lib.ShadowedBy))
			}
		}
		logg.Info("Library probe completed", zap.Int("valid", report.Valid), zap.Int("invalid", report.Invalid))
	}

	if runRepository {
		if rt.store == nil {
			logg.Info("Package repository disabled, skipping.")
		} else {
			logg.Info("Checking package repository...", zap.String("bucket", rt.cfg.Repository.Bucket))
			report, err := svc.CheckRepository(ctx)
			if err != nil {
				logg.Fatal("Repository check failed", zap.Error(err))
			}
			if report.BucketExists {
				logg.Info("Repository bucket is present.", zap.Int("libraries", report.Libraries))
			} else {
				logg.Warn("Repository bucket is missing", zap.String("bucket", report.Bucket))
				if !all && fixFlag {
					if err := svc.FixRepository(ctx); err != nil {
						logg.Fatal("Failed to create bucket", zap.Error(err))
					}
					logg.Info("Repository bucket created.")
				} else if !all {
					logg.Info("Run with --fix to create the bucket.")
				}
			}
		}
	}

	if runJournal {
		if rt.db == nil {
			logg.Info("Journal database disabled, skipping.")
			return
		}
		logg.Info("Checking journal schema...")
		report, err := svc.CheckJournal()
		if err != nil {
			logg.Error("Journal schema check failed", zap.Error(err))
			return
		}
		if report.Status == "ok" {
			logg.Info("Journal schema matches.", zap.String("table", report.Table))
		} else {
			logg.Warn("Journal schema mismatches found",
				zap.String("table", report.Table),
				zap.String("status", report.Status),
				zap.Strings("missing_columns", report.MissingColumns))
		}
	}
}
