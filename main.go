package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// defaultRootPath is the climate data folder analyzed when nothing else is configured.
const defaultRootPath = "climate data"

var (
	// Filtering
	skipHidden      bool
	useGitignore    bool
	includePatterns string
	excludePatterns string
	maxSizeBytes    int64
	maxDepth        int
	maxLineBytes    int

	// Output
	printTreeView   bool
	pdfOutputFile   string
	copyToClipboard bool

	// Interactive Mode
	interactiveMode bool

	// Logging
	logLevel string
	noColor  bool

	cfgFile string
)

// version is the application version, set via ldflags.
var version string = "dev"

// writeClipboard is swapped out in tests.
var writeClipboard = clipboard.WriteAll

var rootCmd = &cobra.Command{
	Use:   "climate-report [ROOT]",
	Short: "Count alphabetical units per subfolder of a climate data folder.",
	Long: `climate-report walks every subfolder of ROOT, counts the alphabetical units
of each file on lines that contain letters, collects the numbers found on those
lines and writes ROOT/climate_data_analysis.csv.`,
	Version: version,
	Args:    cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		v := viper.GetViper()
		log := NewConsoleLogger(os.Stderr, v.GetString("log_level"), v.GetBool("no_color"))
		opts := loadScanOptions(v)

		root := v.GetString("root")
		if len(args) == 1 {
			root = args[0]
		}
		if v.GetBool("interactive") {
			selected, err := runInteractiveFinder(".", opts.ShowHidden)
			if errors.Is(err, errSelectionAborted) {
				fmt.Println("Interactive selection aborted.")
				return
			}
			if err != nil {
				fmt.Fprintf(os.Stderr, "Interactive mode error: %v\n", err)
				os.Exit(1)
			}
			root = selected
		}

		if code := runReport(root, opts, loadOutputOptions(v), log, os.Stdout, os.Stderr); code != 0 {
			os.Exit(code)
		}
	},
}

// outputOptions selects the renderings produced besides the CSV file.
type outputOptions struct {
	Tree      bool
	PDFPath   string
	Clipboard bool
}

// runReport builds the report for root and handles every outcome. A CSV write
// failure, including one caused by a missing root, is reported but is not a
// failed run; only invalid settings return non-zero.
func runReport(root string, opts ScanOptions, out outputOptions, log *ConsoleLogger, stdout, stderr io.Writer) int {
	log.LogInfo(fmt.Sprintf("Analyzing %s", root))

	result, err := buildReport(root, opts, log)
	if err != nil {
		var writeErr *ReportWriteError
		if errors.As(err, &writeErr) {
			fmt.Fprintf(stdout, "Error writing CSV file: %v\n", writeErr.Err)
			return 0
		}
		log.LogError(err.Error())
		return 1
	}
	fmt.Fprintf(stdout, "Successfully created %s at: %s\n", reportFileName, result.Path)
	log.LogInfo(fmt.Sprintf("%d subfolders, %d files, %d alphabetical units, %d files skipped",
		result.Summary.Subfolders, result.Summary.Files, result.Summary.TotalAlphaCount, result.Summary.SkippedFiles))

	if out.Tree {
		fmt.Fprint(stdout, printTree(buildTree(result.Subfolders, root)))
	}
	if out.PDFPath != "" {
		if err := generatePDF(result.Subfolders, result.Summary, root, out.PDFPath); err != nil {
			log.LogError(fmt.Sprintf("Error generating PDF: %v", err))
		} else {
			log.LogInfo(fmt.Sprintf("Successfully saved PDF to %s", out.PDFPath))
		}
	}
	if out.Clipboard {
		if err := writeClipboard(string(result.CSV)); err != nil {
			log.LogWarn(fmt.Sprintf("Error writing to clipboard: %v", err))
		} else {
			log.LogInfo("Report copied to clipboard.")
		}
	}
	return 0
}

// loadScanOptions reads the walk settings after defaults, config, env and flags are merged.
func loadScanOptions(v *viper.Viper) ScanOptions {
	opts := defaultScanOptions()
	opts.ShowHidden = !v.GetBool("skip_hidden")
	opts.NoIgnore = !v.GetBool("gitignore")
	opts.IncludePatterns = patternsFromConfig(v, "include")
	opts.ExcludePatterns = patternsFromConfig(v, "exclude")
	opts.MaxSizeBytes = v.GetInt64("max_size")
	opts.MaxDepth = v.GetInt("max_depth")
	if n := v.GetInt("max_line_bytes"); n > 0 {
		opts.MaxLineBytes = n
	}
	return opts
}

func loadOutputOptions(v *viper.Viper) outputOptions {
	return outputOptions{
		Tree:      v.GetBool("tree"),
		PDFPath:   v.GetString("pdf"),
		Clipboard: v.GetBool("clipboard"),
	}
}

// patternsFromConfig accepts either a comma-separated string (flags, env) or a
// list (config file).
func patternsFromConfig(v *viper.Viper, key string) []string {
	if s, ok := v.Get(key).(string); ok {
		return parsePatterns(s)
	}
	var out []string
	for _, p := range v.GetStringSlice(key) {
		out = append(out, parsePatterns(p)...)
	}
	return out
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.config/climate-report/config.toml)")

	// Filtering
	rootCmd.Flags().BoolVar(&skipHidden, "skip-hidden", false, "Skip hidden files and directories")
	viper.BindPFlag("skip_hidden", rootCmd.Flags().Lookup("skip-hidden"))
	rootCmd.Flags().BoolVar(&useGitignore, "gitignore", false, "Respect the root's .gitignore file")
	viper.BindPFlag("gitignore", rootCmd.Flags().Lookup("gitignore"))
	rootCmd.Flags().StringVarP(&includePatterns, "include", "i", "", "Only analyze files matching these patterns (comma-separated, e.g. *.txt,*.dat)")
	viper.BindPFlag("include", rootCmd.Flags().Lookup("include"))
	rootCmd.Flags().StringVarP(&excludePatterns, "exclude", "e", "", "Skip files and directories matching these patterns (comma-separated)")
	viper.BindPFlag("exclude", rootCmd.Flags().Lookup("exclude"))
	rootCmd.Flags().Int64VarP(&maxSizeBytes, "max-size", "s", 0, "Maximum file size in bytes (0 for no limit)")
	viper.BindPFlag("max_size", rootCmd.Flags().Lookup("max-size"))
	rootCmd.Flags().IntVar(&maxDepth, "max-depth", 0, "Maximum subfolder depth to traverse (0 for no limit)")
	viper.BindPFlag("max_depth", rootCmd.Flags().Lookup("max-depth"))
	rootCmd.Flags().IntVar(&maxLineBytes, "max-line-bytes", defaultMaxLineBytes, "Longest line accepted before a file is skipped")
	viper.BindPFlag("max_line_bytes", rootCmd.Flags().Lookup("max-line-bytes"))

	// Output
	rootCmd.Flags().BoolVar(&printTreeView, "tree", false, "Print the report as a tree")
	viper.BindPFlag("tree", rootCmd.Flags().Lookup("tree"))
	rootCmd.Flags().StringVar(&pdfOutputFile, "pdf", "", "Also save the report as PDF")
	viper.BindPFlag("pdf", rootCmd.Flags().Lookup("pdf"))
	rootCmd.Flags().BoolVarP(&copyToClipboard, "clipboard", "c", false, "Copy the CSV report to the clipboard")
	viper.BindPFlag("clipboard", rootCmd.Flags().Lookup("clipboard"))

	// Interactive Mode
	rootCmd.Flags().BoolVar(&interactiveMode, "interactive", false, "Pick the root directory with a fuzzy finder")
	viper.BindPFlag("interactive", rootCmd.Flags().Lookup("interactive"))

	// Logging
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "Log level: trace, debug, info, warn, error")
	viper.BindPFlag("log_level", rootCmd.PersistentFlags().Lookup("log-level"))
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "Disable colored log output")
	viper.BindPFlag("no_color", rootCmd.PersistentFlags().Lookup("no-color"))

	setDefaults(viper.GetViper())
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("root", defaultRootPath)
	v.SetDefault("skip_hidden", false)
	v.SetDefault("gitignore", false)
	v.SetDefault("max_size", 0)
	v.SetDefault("max_depth", 0)
	v.SetDefault("max_line_bytes", defaultMaxLineBytes)
	v.SetDefault("log_level", "info")
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		cobra.CheckErr(err)

		viper.AddConfigPath(filepath.Join(home, ".config", "climate-report"))
		viper.AddConfigPath(".")
		viper.SetConfigName("config")
		viper.SetConfigType("toml")
	}

	viper.SetEnvPrefix("CLIMATE")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	viper.AutomaticEnv() // read in environment variables that match CLIMATE_*

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	} else {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			fmt.Fprintf(os.Stderr, "Error reading config file: %s\n", err)
		}
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
