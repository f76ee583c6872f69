package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/rafaelalmeida/fatura-parser/internal/archive"
	"github.com/rafaelalmeida/fatura-parser/internal/batch"
	"github.com/rafaelalmeida/fatura-parser/internal/domain"
	"github.com/rafaelalmeida/fatura-parser/internal/export"
	"github.com/rafaelalmeida/fatura-parser/internal/itau"
	"github.com/rafaelalmeida/fatura-parser/internal/logger"
	"github.com/rafaelalmeida/fatura-parser/internal/money"
	"github.com/rafaelalmeida/fatura-parser/internal/reconcile"
	"github.com/rs/zerolog"
)

var version = "dev"

func main() {
	log := logger.New()

	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "parse":
		runParse(log)
	case "batch":
		runBatch(log)
	case "view":
		runView(log)
	case "archive":
		runArchive(log)
	case "version":
		fmt.Println("fatura " + version)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println("Itaú Fatura Parser")
	fmt.Println("\nUsage:")
	fmt.Println("  fatura <command> [options]")
	fmt.Println("\nCommands:")
	fmt.Println("  parse     Parse a fatura PDF and write the export")
	fmt.Println("  batch     Parse every PDF in a directory interactively")
	fmt.Println("  view      Show a parsed JSON export as a table")
	fmt.Println("  archive   Upload an export file to GCS for retention")
	fmt.Println("  version   Print the tool version")
	fmt.Println("  help      Show this help message")
	fmt.Println("\nRun 'fatura <command> -h' for more information on a command.")
}

func runParse(log zerolog.Logger) {
	fs := flag.NewFlagSet("parse", flag.ExitOnError)
	input := fs.String("in", "", "Path to the fatura PDF")
	output := fs.String("out", "", "Output path (defaults to <input>_parsed.<ext>)")
	format := fs.String("format", "json", "Export format: csv, ynab, or json")
	year := fs.Int("year", 0, "Year for transaction dates when the statement date is missing")
	fs.Parse(os.Args[2:])

	if *input == "" {
		log.Fatal().Msg("Error: -in is required")
	}
	f, err := export.ParseFormat(*format)
	if err != nil {
		log.Fatal().Err(err).Msg("Invalid format")
	}
	if *output == "" {
		*output = export.DefaultOutputPath(*input, f)
	}

	parser := itau.New(log)
	parser.FallbackYear = *year

	st, err := parser.ParseFile(*input)
	if err != nil {
		log.Fatal().Err(err).Msg("Parsing failed")
	}

	report := reconcile.Check(st)
	fmt.Printf("%s: %d transactions, %d cards\n", *input, len(st.Transactions), len(st.Cards))
	fmt.Println(report.String())
	if !report.Matches() {
		log.Warn().
			Str("diff", report.Diff.String()).
			Str("class", string(report.Class)).
			Msg("reconciliation discrepancy")
	}

	out, err := os.Create(*output)
	if err != nil {
		log.Fatal().Err(err).Msg("Creating output file failed")
	}
	defer out.Close()

	switch f {
	case export.FormatYNAB:
		if _, err := (export.YNABExporter{Stamp: time.Now()}).Export(st, out); err != nil {
			log.Fatal().Err(err).Msg("Export failed")
		}
	case export.FormatCSV:
		if err := (export.CSVExporter{}).Export(st, out); err != nil {
			log.Fatal().Err(err).Msg("Export failed")
		}
	case export.FormatJSON:
		if err := (export.JSONExporter{}).Export(st, out); err != nil {
			log.Fatal().Err(err).Msg("Export failed")
		}
	}

	fmt.Printf("Wrote %s\n", *output)
}

func runBatch(log zerolog.Logger) {
	fs := flag.NewFlagSet("batch", flag.ExitOnError)
	dir := fs.String("dir", ".", "Directory to scan for fatura PDFs")
	format := fs.String("format", "json", "Export format: csv, ynab, or json")
	autoYes := fs.Bool("yes", false, "Accept every parse without prompting")
	logDir := fs.String("log-dir", "", "Run log directory (defaults to <dir>/logs)")
	year := fs.Int("year", 0, "Year for transaction dates when the statement date is missing")
	fs.Parse(os.Args[2:])

	f, err := export.ParseFormat(*format)
	if err != nil {
		log.Fatal().Err(err).Msg("Invalid format")
	}

	parser := itau.New(log)
	parser.FallbackYear = *year

	runner := batch.NewRunner(batch.Options{
		Dir:     *dir,
		Format:  f,
		AutoYes: *autoYes,
		LogDir:  *logDir,
	}, parser, log, os.Stdin, os.Stdout)

	summary, err := runner.Run()
	if err != nil {
		log.Fatal().Err(err).Msg("Batch run failed")
	}
	if summary.Errors > 0 {
		os.Exit(1)
	}
}

func runView(log zerolog.Logger) {
	fs := flag.NewFlagSet("view", flag.ExitOnError)
	input := fs.String("in", "", "Path to a parsed JSON export")
	fs.Parse(os.Args[2:])

	if *input == "" {
		log.Fatal().Msg("Error: -in is required")
	}

	f, err := os.Open(*input)
	if err != nil {
		log.Fatal().Err(err).Msg("Opening export failed")
	}
	defer f.Close()

	st, err := export.ReadJSON(f)
	if err != nil {
		log.Fatal().Err(err).Msg("Reading export failed")
	}

	renderStatement(os.Stdout, st)
}

func renderStatement(out *os.File, st *domain.Statement) {
	table := tablewriter.NewWriter(out)
	table.SetHeader([]string{"Date", "Description", "Amount", "Card", "Kind", "Category"})
	table.SetBorder(false)
	table.SetAlignment(tablewriter.ALIGN_LEFT)

	for _, tx := range st.Transactions {
		kind := string(tx.Kind)
		if tx.Installment != nil {
			kind = fmt.Sprintf("%s %d/%d", kind, tx.Installment.Current, tx.Installment.Total)
		}
		if tx.International != nil {
			kind = kind + " intl"
		}
		table.Append([]string{
			money.FormatDate(tx.Date),
			tx.Description,
			tx.Amount.StringFixed(2),
			tx.CardLastDigits,
			kind,
			tx.Category,
		})
	}
	table.SetFooter([]string{"", "Total", st.CalculatedTotal().StringFixed(2), "", "", ""})
	table.Render()
}

func runArchive(log zerolog.Logger) {
	fs := flag.NewFlagSet("archive", flag.ExitOnError)
	bucket := fs.String("bucket", "", "GCS bucket name")
	object := fs.String("object", "", "GCS object name (defaults to a dated path)")
	file := fs.String("file", "", "Path to the local export file")
	fs.Parse(os.Args[2:])

	if *bucket == "" || *file == "" {
		log.Fatal().Msg("Usage: fatura archive -bucket NAME -file PATH")
	}
	if *object == "" {
		*object = archive.DefaultObjectName(*file, time.Now())
	}

	ctx := logger.WithContext(context.Background(), log)

	log.Info().
		Str("bucket", *bucket).
		Str("object", *object).
		Str("file", filepath.Base(*file)).
		Msg("Uploading export to GCS")

	uploader := archive.NewGCSUploader()
	if err := uploader.UploadFile(ctx, *bucket, *object, *file); err != nil {
		log.Fatal().Err(err).Msg("Upload failed")
	}

	fmt.Printf("Uploaded %s to gs://%s/%s\n", *file, *bucket, *object)
}
