// Package batch drives the interactive directory workflow: discover fatura
// PDFs, parse and export each one, reconcile, and keep an auditable log of
// what was accepted, rejected, skipped, or failed.
package batch

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/rafaelalmeida/fatura-parser/internal/domain"
	"github.com/rafaelalmeida/fatura-parser/internal/export"
	"github.com/rafaelalmeida/fatura-parser/internal/itau"
	"github.com/rafaelalmeida/fatura-parser/internal/reconcile"
	"github.com/rs/zerolog"
)

// Options configures one batch run.
type Options struct {
	Dir    string
	Format export.Format

	// AutoYes disables all prompts: existing outputs are replaced and every
	// parse is accepted.
	AutoYes bool

	// LogDir receives the run log; defaults to <Dir>/logs.
	LogDir string
}

// Summary counts outcomes across one batch run.
type Summary struct {
	Accepted int
	Rejected int
	Skipped  int
	Errors   int
}

func (s Summary) Total() int { return s.Accepted + s.Rejected + s.Skipped + s.Errors }

func (s *Summary) count(status Status) {
	switch status {
	case StatusAccepted:
		s.Accepted++
	case StatusRejected:
		s.Rejected++
	case StatusSkipped:
		s.Skipped++
	case StatusError:
		s.Errors++
	}
}

// Runner processes every PDF under a directory with one parser.
type Runner struct {
	opts   Options
	parser *itau.Parser
	log    zerolog.Logger
	in     *bufio.Reader
	out    io.Writer
}

// NewRunner wires a runner. in and out carry the interactive prompts; pass
// any reader when AutoYes is set.
func NewRunner(opts Options, parser *itau.Parser, log zerolog.Logger, in io.Reader, out io.Writer) *Runner {
	return &Runner{
		opts:   opts,
		parser: parser,
		log:    log,
		in:     bufio.NewReader(in),
		out:    out,
	}
}

// Discover returns all *.pdf files under dir, sorted for deterministic
// processing order.
func Discover(dir string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.EqualFold(filepath.Ext(path), ".pdf") {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("batch.Discover: %w", err)
	}
	sort.Strings(files)
	return files, nil
}

// Run processes the directory and returns the outcome summary.
func (r *Runner) Run() (Summary, error) {
	files, err := Discover(r.opts.Dir)
	if err != nil {
		return Summary{}, err
	}

	logDir := r.opts.LogDir
	if logDir == "" {
		logDir = filepath.Join(r.opts.Dir, "logs")
	}
	if err := os.MkdirAll(logDir, 0o755); err != nil {
		return Summary{}, fmt.Errorf("batch.Run: creating log dir: %w", err)
	}
	runLog, err := OpenRunLog(filepath.Join(logDir, "runs.jsonl"))
	if err != nil {
		return Summary{}, err
	}
	defer runLog.Close()

	var summary Summary
	for _, file := range files {
		rec := r.processFile(file)
		summary.count(rec.Status)
		if err := runLog.Append(rec); err != nil {
			return summary, err
		}
		r.log.Info().
			Str("file", file).
			Str("status", string(rec.Status)).
			Str("run_id", rec.RunID).
			Msg("file processed")
	}

	fmt.Fprintf(r.out, "\nProcessed %d files: %d accepted, %d rejected, %d skipped, %d errors\n",
		summary.Total(), summary.Accepted, summary.Rejected, summary.Skipped, summary.Errors)
	return summary, nil
}

func (r *Runner) processFile(file string) Record {
	rec := NewRecord(file)
	output := export.DefaultOutputPath(file, r.opts.Format)
	rec.Output = output

	if _, err := os.Stat(output); err == nil && !r.opts.AutoYes {
		switch r.promptSkipReplace(output) {
		case "skip":
			return rec.finish(StatusSkipped, "output already exists")
		}
	}

	st, err := r.parser.ParseFile(file)
	if err != nil {
		return rec.finish(StatusError, err.Error())
	}

	rendered, report, err := r.render(st)
	if err != nil {
		return rec.finish(StatusError, err.Error())
	}

	fmt.Fprintf(r.out, "\n%s: %d transactions, %d cards\n", file, len(st.Transactions), len(st.Cards))
	fmt.Fprintln(r.out, report.String())
	if !report.Matches() {
		r.log.Warn().Str("file", file).Str("diff", report.Diff.String()).
			Str("class", string(report.Class)).Msg("reconciliation discrepancy")
	}

	if !r.opts.AutoYes && !r.promptYesNo("Accept and write "+output+"?") {
		return rec.finish(StatusRejected, "rejected by user")
	}

	if err := os.WriteFile(output, rendered, 0o644); err != nil {
		return rec.finish(StatusError, err.Error())
	}
	return rec.finish(StatusAccepted, report.String())
}

// render produces the export bytes and the reconciliation report.
func (r *Runner) render(st *domain.Statement) ([]byte, reconcile.Report, error) {
	var buf bytes.Buffer
	report := reconcile.Check(st)

	switch r.opts.Format {
	case export.FormatYNAB:
		if _, err := (export.YNABExporter{}).Export(st, &buf); err != nil {
			return nil, report, err
		}
	case export.FormatCSV:
		if err := (export.CSVExporter{}).Export(st, &buf); err != nil {
			return nil, report, err
		}
	case export.FormatJSON:
		if err := (export.JSONExporter{}).Export(st, &buf); err != nil {
			return nil, report, err
		}
	default:
		return nil, report, fmt.Errorf("batch.render: unsupported format %q", r.opts.Format)
	}
	return buf.Bytes(), report, nil
}

func (r *Runner) promptYesNo(message string) bool {
	for {
		fmt.Fprintf(r.out, "%s [y/n]: ", message)
		line, err := r.in.ReadString('\n')
		if err != nil {
			return false
		}
		switch strings.ToLower(strings.TrimSpace(line)) {
		case "y", "yes":
			return true
		case "n", "no":
			return false
		}
		fmt.Fprintln(r.out, "Please enter 'y' or 'n'")
	}
}

// promptSkipReplace asks what to do about an existing output file. "view"
// prints the current file and asks again.
func (r *Runner) promptSkipReplace(output string) string {
	for {
		fmt.Fprintf(r.out, "File exists: %s. [s]kip, [r]eplace, or [v]iew? ", output)
		line, err := r.in.ReadString('\n')
		if err != nil {
			return "skip"
		}
		switch strings.ToLower(strings.TrimSpace(line)) {
		case "s", "skip":
			return "skip"
		case "r", "replace":
			return "replace"
		case "v", "view":
			if data, err := os.ReadFile(output); err == nil {
				r.out.Write(data)
				fmt.Fprintln(r.out)
			}
		default:
			fmt.Fprintln(r.out, "Please enter 's', 'r', or 'v'")
		}
	}
}
