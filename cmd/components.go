package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"component-loader/core/loader"
	"component-loader/feature/integrity/checks"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var componentsPath string

// componentsCmd represents the components command
var componentsCmd = &cobra.Command{
	Use:   "components",
	Short: "Inspect component libraries",
	Long:  `Lists, probes and imports component libraries without starting the server.`,
}

// componentsListCmd lists library files of the search path with their protocol.
var componentsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List library files on the search path and their protocol",
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := bootstrap()
		if err != nil {
			return err
		}
		l := rt.loader
		report := checks.ProbeLibraries(l.Opener(), l.Codec(), l.SearchPath(componentsPath), l.Target())

		fmt.Println("\n=== Component Libraries ===")
		for _, lib := range report.Libraries {
			switch {
			case lib.Error != "":
				fmt.Printf("%-20s INVALID  %s\n           %s\n", lib.ShortName, lib.Path, lib.Error)
			default:
				fmt.Printf("%-20s %-8s %s [%s]\n", lib.ShortName, lib.Protocol, lib.Path, strings.Join(lib.Types, ", "))
			}
			if lib.ShadowedBy != "" {
				fmt.Printf("           shadowed by %s\n", lib.ShadowedBy)
			}
		}
		fmt.Printf("Valid: %d\nInvalid: %d\n", report.Valid, report.Invalid)
		return nil
	},
}

// componentsProbeCmd probes a single file.
var componentsProbeCmd = &cobra.Command{
	Use:   "probe <file>",
	Short: "Report the protocol and component types of one library",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := bootstrap()
		if err != nil {
			return err
		}
		shape, err := loader.Probe(rt.loader.Opener(), args[0])
		if err != nil {
			return err
		}
		out, err := json.MarshalIndent(map[string]any{
			"path":     args[0],
			"protocol": shape.Protocol(),
			"types":    shape.Types(),
		}, "", "  ")
		if err != nil {
			return err
		}
		fmt.Fprintln(os.Stdout, string(out))
		return nil
	},
}

// componentsTypesCmd imports the search path and lists registered types.
var componentsTypesCmd = &cobra.Command{
	Use:   "types",
	Short: "Import the search path and list the registered component types",
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := bootstrap()
		if err != nil {
			return err
		}
		res := rt.loader.ImportAll(componentsPath)
		for _, failure := range res.Failures {
			rt.logger.Warn("Skipped library", zap.Error(failure))
		}
		for _, name := range rt.loader.ComponentTypes() {
			fmt.Println(name)
		}
		return nil
	},
}

// componentsImportCmd imports a package by name.
var componentsImportCmd = &cobra.Command{
	Use:   "import <package>",
	Short: "Resolve a package name on the search path and load it",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := bootstrap()
		if err != nil {
			return err
		}
		if err := rt.loader.ImportPackage(args[0], componentsPath); err != nil {
			return err
		}
		for _, lib := range rt.loader.Libraries() {
			fmt.Printf("%s %s [%s]\n", lib.ShortName, lib.Path, strings.Join(lib.TypeNames, ", "))
		}
		return nil
	},
}

func init() {
	RootCmd.AddCommand(componentsCmd)
	componentsCmd.AddCommand(componentsListCmd, componentsProbeCmd, componentsTypesCmd, componentsImportCmd)
	componentsCmd.PersistentFlags().StringVar(&componentsPath, "path", "", "Path list searched before the default path")
}
