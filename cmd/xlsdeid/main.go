// Package main provides the CLI entry point for xlsdeid.
package main

import (
	"database/sql"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/go-sql-driver/mysql"
	"github.com/spf13/cobra"
	"github.com/ukaji3/xlsdeid/internal/log"
	"github.com/ukaji3/xlsdeid/internal/tui"
	"github.com/ukaji3/xlsdeid/internal/ui/colorize"
	"github.com/ukaji3/xlsdeid/pkg/deid"
	"github.com/ukaji3/xlsdeid/pkg/deid/config"
	"github.com/ukaji3/xlsdeid/pkg/deid/models"
	"github.com/ukaji3/xlsdeid/pkg/deid/output"
	"github.com/ukaji3/xlsdeid/pkg/deid/session"
	"go.uber.org/zap"
)

var (
	configPath      string
	extraIDs        []string
	sheet           string
	caseInsensitive bool
	exactNumbers    bool
	debug           bool
	mysqlDSN        string

	outputPath   string
	pretty       bool
	reportPath   string
	reportValues bool
	removeOne    []string
	removeTwo    []string
	skipPassTwo  bool
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "xlsdeid [input.xlsx]",
		Short: "Remove personally identifying columns from spreadsheets",
		Long: `xlsdeid removes personally identifying columns from a spreadsheet in two passes.

Pass one flags columns whose names contain an identifying string (default: name, dob).
Pass two flags remaining columns that share values with the columns removed in pass one.

Examples:
  xlsdeid patients.xlsx                      # interactive session
  xlsdeid scan patients.xlsx --pretty        # JSON report of both passes
  xlsdeid apply patients.xlsx -o clean.xlsx  # remove every flagged column
  xlsdeid apply people --mysql-dsn 'user:pw@tcp(db:3306)/crm' -o people.xlsx`,
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE:         runInteractive,
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&configPath, "config", "c", "", "YAML configuration file")
	flags.StringSliceVar(&extraIDs, "id", nil, "additional identifying string (repeatable)")
	flags.StringVar(&sheet, "sheet", "", "sheet to read (default: first sheet)")
	flags.BoolVar(&caseInsensitive, "case-insensitive", false, "ignore case when comparing values in pass two")
	flags.BoolVar(&exactNumbers, "exact-numbers", false, "compare numeric text literally (5 and 5.0 differ)")
	flags.BoolVar(&debug, "debug", false, "debug logging")
	flags.StringVar(&mysqlDSN, "mysql-dsn", "", "read the input as a MySQL table using this DSN")

	scanCmd := &cobra.Command{
		Use:   "scan <input>",
		Short: "Report the columns both passes would flag",
		Args:  cobra.ExactArgs(1),
		RunE:  runScan,
	}
	scanCmd.Flags().StringVarP(&outputPath, "output", "o", "", "report file path (default: stdout)")
	scanCmd.Flags().BoolVar(&pretty, "pretty", false, "pretty-print JSON output")
	scanCmd.Flags().BoolVar(&reportValues, "report-values", false, "include matched cell values in the report")

	applyCmd := &cobra.Command{
		Use:   "apply <input>",
		Short: "Remove flagged columns and write the result",
		Args:  cobra.ExactArgs(1),
		RunE:  runApply,
	}
	applyCmd.Flags().StringVarP(&outputPath, "output", "o", "", "output file (default: <input>_deidentified.<ext>)")
	applyCmd.Flags().StringSliceVar(&removeOne, "remove", nil, "columns to remove in pass one (default: every name match)")
	applyCmd.Flags().StringSliceVar(&removeTwo, "remove-pass2", nil, "columns to remove in pass two (default: every value match)")
	applyCmd.Flags().BoolVar(&skipPassTwo, "skip-pass2", false, "stop after pass one")
	applyCmd.Flags().StringVar(&reportPath, "report", "", "also write a JSON report to this path")
	applyCmd.Flags().BoolVar(&reportValues, "report-values", false, "include matched cell values in the report")
	applyCmd.Flags().BoolVar(&pretty, "pretty", false, "pretty-print the JSON report")

	rootCmd.AddCommand(scanCmd, applyCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// newSession builds a session from the config file and flags and loads source.
// The returned func releases the data source and must be called when the session is done.
func newSession(source string) (*session.Session, func(), error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, nil, err
	}

	log.Init(debug || cfg.Debug)
	logger := log.Get()

	opts := cfg.Options()
	if sheet != "" {
		opts.Sheet = sheet
	}
	if len(extraIDs) > 0 {
		opts.IdentifyingStrings = append(append([]string(nil), opts.InitialIdentifyingStrings()...), extraIDs...)
	}
	if caseInsensitive {
		opts.CaseInsensitiveValues = true
	}
	if exactNumbers {
		off := false
		opts.CanonicalNumbers = &off
	}

	loader, closeLoader, err := newLoader(opts, logger)
	if err != nil {
		return nil, nil, err
	}

	sess := session.New(opts, loader, deid.FileWriter{}, logger)
	if err := sess.Load(source); err != nil {
		closeLoader()
		return nil, nil, err
	}
	return sess, closeLoader, nil
}

func newLoader(opts deid.Options, logger *zap.Logger) (session.Loader, func(), error) {
	if mysqlDSN == "" {
		return deid.FileLoader{Sheet: opts.Sheet}, func() {}, nil
	}

	dsn, err := mysql.ParseDSN(mysqlDSN)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid MySQL DSN: %w", err)
	}
	db, err := sql.Open("mysql", dsn.FormatDSN())
	if err != nil {
		return nil, nil, fmt.Errorf("open database: %w", err)
	}
	logger.Debug("mysql source", zap.String("addr", dsn.Addr), zap.String("db", dsn.DBName))
	closeDB := func() {
		if err := db.Close(); err != nil {
			logger.Warn("close database", zap.Error(err))
		}
	}
	return deid.SQLLoader{DB: db}, closeDB, nil
}

func runInteractive(cmd *cobra.Command, args []string) error {
	sess, closeSource, err := newSession(args[0])
	if err != nil {
		return err
	}
	defer closeSource()

	final, err := tea.NewProgram(tui.New(sess)).Run()
	if err != nil {
		return fmt.Errorf("interactive session failed: %w", err)
	}
	if m, ok := final.(tui.Model); ok && !m.Done() {
		if m.Err() != nil {
			return m.Err()
		}
		fmt.Fprintln(os.Stderr, "No file written.")
	}
	return nil
}

func runScan(cmd *cobra.Command, args []string) error {
	sess, closeSource, err := newSession(args[0])
	if err != nil {
		return err
	}
	defer closeSource()

	matches, err := sess.MatchPassOne()
	if err != nil {
		return err
	}
	if _, err := sess.ConfirmPassOne(models.NameMatchColumns(matches)); err != nil {
		return err
	}
	if _, err := sess.MatchPassTwo(); err != nil {
		return err
	}

	return emitReport(sess.Report(reportValues), outputPath)
}

func runApply(cmd *cobra.Command, args []string) error {
	sess, closeSource, err := newSession(args[0])
	if err != nil {
		return err
	}
	defer closeSource()

	matches, err := sess.MatchPassOne()
	if err != nil {
		return err
	}
	cols := removeOne
	if !cmd.Flags().Changed("remove") {
		cols = models.NameMatchColumns(matches)
	}
	record, err := sess.ConfirmPassOne(cols)
	if err != nil {
		return fmt.Errorf("pass one: %w", err)
	}
	fmt.Printf("Pass one removed: %v\n", record.Columns)

	if !skipPassTwo {
		overlap, err := sess.MatchPassTwo()
		if err != nil {
			return err
		}
		cols = removeTwo
		if !cmd.Flags().Changed("remove-pass2") {
			cols = models.OverlapMatchColumns(overlap)
		}
		if err := sess.ConfirmPassTwo(cols); err != nil {
			return fmt.Errorf("pass two: %w", err)
		}
		fmt.Printf("Pass two removed: %v\n", cols)
	}

	name := outputPath
	if name == "" {
		name = sess.DefaultOutputName()
	}
	path, err := sess.Write(name)
	if err != nil {
		return err
	}
	log.Get().Info("apply finished", log.Source(sess.Source()), log.Columns(sess.Table().ColumnNames()))
	fmt.Printf("File processed successfully. De-identified file saved as %s.\n", path)

	if reportPath != "" {
		return emitReport(sess.Report(reportValues), reportPath)
	}
	return nil
}

func emitReport(r *models.Report, path string) error {
	data, err := output.ToJSON(r, pretty)
	if err != nil {
		return fmt.Errorf("serialization failed: %w", err)
	}
	if path == "" {
		doc := string(data)
		if colorize.IsTerminal(os.Stdout) {
			doc = colorize.JSON(doc)
		}
		fmt.Println(doc)
		return nil
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	return nil
}
