package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/tools/go/packages"

	"github.com/otelderive/otelderive/compiler/engine"
	"github.com/otelderive/otelderive/compiler/errors"
	"github.com/otelderive/otelderive/internal/cli/config"
)

var (
	generateJSON    bool
	generateVerbose bool
	generateDryRun  bool
	generateOutput  string
	generateNoColor bool
)

func init() {
	generateCmd.Flags().BoolVar(&generateJSON, "json", false, "Output diagnostics in JSON format")
	generateCmd.Flags().BoolVar(&generateVerbose, "verbose", false, "Show detailed generation output")
	generateCmd.Flags().BoolVar(&generateDryRun, "dry-run", false, "Print generated code to stdout instead of writing files")
	generateCmd.Flags().StringVar(&generateOutput, "output", "", "Generated file name per package (default from config)")
	generateCmd.Flags().BoolVar(&generateNoColor, "no-color", false, "Disable colored diagnostics")
}

var generateCmd = &cobra.Command{
	Use:   "generate [packages...]",
	Short: "Generate attribute conversions for annotated packages",
	Long: `Load the given Go packages (default "."), find types annotated with
//otel:derive directives, and write the generated conversions into each
package. Any invalid annotation fails the run; no partial output is
written for a package with errors.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		output := cfg.Generate.Output
		if cmd.Flags().Changed("output") {
			output = generateOutput
		}
		if !strings.HasSuffix(output, ".go") {
			return fmt.Errorf("output must name a .go file, got %q", output)
		}
		noColor := cfg.NoColor || generateNoColor

		log := zap.NewNop()
		if generateVerbose {
			log, err = zap.NewDevelopment()
			if err != nil {
				return fmt.Errorf("failed to create logger: %w", err)
			}
			defer log.Sync() //nolint:errcheck
		}

		patterns := args
		if len(patterns) == 0 {
			patterns = []string{"."}
		}

		pkgs, err := packages.Load(&packages.Config{
			Mode: packages.NeedName | packages.NeedFiles | packages.NeedSyntax,
		}, patterns...)
		if err != nil {
			return fmt.Errorf("failed to load packages: %w", err)
		}

		eng := engine.New(log)
		eng.SetMethodPrefix(cfg.Generate.MethodPrefix)

		var allDiags []errors.CompilerError
		generated := 0

		for _, pkg := range pkgs {
			for _, loadErr := range pkg.Errors {
				return fmt.Errorf("failed to load %s: %s", pkg.PkgPath, loadErr.Msg)
			}

			// The previous run's output would re-enter the pipeline as an
			// input file; drop it before scanning.
			files := pkg.Syntax[:0:0]
			for _, f := range pkg.Syntax {
				name := filepath.Base(pkg.Fset.Position(f.Pos()).Filename)
				if name == output {
					continue
				}
				files = append(files, f)
			}

			code, diags := eng.GeneratePackage(pkg.Fset, pkg.Name, files)
			allDiags = append(allDiags, diags...)
			if errors.HasErrors(diags) || code == "" {
				continue
			}

			if generateDryRun {
				fmt.Println(code)
				generated++
				continue
			}

			if len(pkg.GoFiles) == 0 {
				continue
			}
			dest := filepath.Join(filepath.Dir(pkg.GoFiles[0]), output)
			if err := os.WriteFile(dest, []byte(code), 0644); err != nil {
				return fmt.Errorf("failed to write %s: %w", dest, err)
			}
			if generateVerbose {
				log.Info("wrote generated file", zap.String("path", dest))
			}
			generated++
		}

		if len(allDiags) > 0 {
			if generateJSON {
				out, jsonErr := errors.FormatJSON(allDiags)
				if jsonErr != nil {
					return jsonErr
				}
				fmt.Fprintln(os.Stderr, out)
			} else {
				errors.WriteTerminal(os.Stderr, allDiags, readSourceLines(allDiags), noColor)
			}
		}
		if errors.HasErrors(allDiags) {
			return fmt.Errorf("generation failed")
		}

		if generateVerbose {
			log.Info("generation complete", zap.Int("packages", generated))
		}
		return nil
	},
}

// readSourceLines loads the source line behind each diagnostic so the
// terminal renderer can underline the offending token.
func readSourceLines(diags []errors.CompilerError) map[errors.SourceLocation]string {
	lines := make(map[errors.SourceLocation]string)
	cache := make(map[string][]string)

	for _, d := range diags {
		if d.Location.File == "" || d.Location.Line <= 0 {
			continue
		}
		fileLines, ok := cache[d.Location.File]
		if !ok {
			data, err := os.ReadFile(d.Location.File)
			if err != nil {
				cache[d.Location.File] = nil
				continue
			}
			fileLines = strings.Split(string(data), "\n")
			cache[d.Location.File] = fileLines
		}
		if d.Location.Line <= len(fileLines) {
			lines[d.Location] = fileLines[d.Location.Line-1]
		}
	}
	return lines
}
