package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"vlanpath/internal/config"
	"vlanpath/internal/fabric"
	"vlanpath/internal/input"
	"vlanpath/internal/logger"
	"vlanpath/internal/model"
	"vlanpath/internal/tui"
	"vlanpath/internal/web"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-isatty"
	"github.com/spf13/pflag"
	"github.com/tcnksm/go-latest"
)

const (
	exitFailure = 1
	exitUsage   = 2
)

type options struct {
	endpoint    string
	attachments string
	epg         string
	fallbackPod string
	output      string
	configPath  string
	logLevel    string
	addr        string
	verbose     bool
}

func checkUpdate(w io.Writer, cfg *config.Config, currentVer string, explicit bool) {
	githubTag := &latest.GithubTag{
		Owner:      cfg.Update.Owner,
		Repository: cfg.Update.Repository,
	}

	res, err := latest.Check(githubTag, currentVer)
	if err != nil {
		slog.Debug("version check failed", "err", err)
		return
	}

	printUpdate(w, cfg, res, currentVer, explicit)
}

func printUpdate(w io.Writer, cfg *config.Config, res *latest.CheckResponse, currentVer string, explicit bool) {
	if res.Outdated {
		fmt.Fprintf(w, "\n✨ A new version is available: %s (you have %s)\n", res.Current, currentVer)
		fmt.Fprintf(w, "👉 Download it from https://github.com/%s/%s/releases\n", cfg.Update.Owner, cfg.Update.Repository)
	} else if explicit {
		fmt.Fprintf(w, "✅ You are using the latest version: %s\n", currentVer)
	}
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout))
}

func run(args []string, stdin io.Reader, stdout io.Writer) int {
	flags := pflag.NewFlagSet("vlanpath", pflag.ContinueOnError)
	flags.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: vlanpath -e ENDPOINT_FILE -a ATTACHMENT_FILE [options]\n\n")
		fmt.Fprintf(os.Stderr, "vlanpath checks the VPC paths seen in a fabric endpoint lookup against the\n")
		fmt.Fprintf(os.Stderr, "static path attachments of a directory query dump, and reports every path\n")
		fmt.Fprintf(os.Stderr, "that has no attachment on the endpoint VLAN.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flags.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  vlanpath -e ep.txt -a atts.txt                # Interactive view (terminal) or CSV (pipe)\n")
		fmt.Fprintf(os.Stderr, "  vlanpath -e ep.txt -a atts.txt --csv -o r.csv # Save CSV report to file\n")
		fmt.Fprintf(os.Stderr, "  vlanpath -e - -a atts.txt --report < ep.txt   # Text report, endpoint from stdin\n")
		fmt.Fprintf(os.Stderr, "  vlanpath -e ep.txt -a atts.txt --json         # Output analysis as JSON\n")
		fmt.Fprintf(os.Stderr, "  vlanpath --web                                # Paste inputs in the browser\n")
	}

	var opts options
	flags.StringVarP(&opts.endpoint, "endpoint", "e", "", "Endpoint lookup output file (- for stdin)")
	flags.StringVarP(&opts.attachments, "attachments", "a", "", "Directory query (rspathAtt) output file (- for stdin)")
	flags.StringVarP(&opts.epg, "epg", "g", "", "EPG name written to the CSV (default: from the attachments)")
	flags.StringVar(&opts.fallbackPod, "fallback-pod", "", "Pod used when no attachment names one (default: pod-2)")
	flags.StringVarP(&opts.output, "output", "o", "", "Write the output to the specified file")
	flags.StringVarP(&opts.configPath, "config", "c", "", "Configuration file")
	flags.StringVar(&opts.logLevel, "log-level", "", "Log level: debug, info, warn, error")
	flags.StringVar(&opts.addr, "addr", "", "Listen address for --web (default: localhost:8080)")
	csvFlag := flags.Bool("csv", false, "Output the CSV report of not-allowed paths")
	jsonFlag := flags.BoolP("json", "j", false, "Output raw analysis data as JSON")
	reportFlag := flags.BoolP("report", "r", false, "Generate a detailed text report")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "Include the attachment inventory in the report")
	webFlag := flags.BoolP("web", "w", false, "Start Web Mode")
	versionFlag := flags.BoolP("version", "V", false, "Print version information")
	updateFlag := flags.BoolP("update", "u", false, "Check for the latest version")
	helpFlag := flags.BoolP("help", "h", false, "Show this help message")

	if err := flags.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return 0
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return exitUsage
	}

	if *helpFlag {
		flags.Usage()
		return 0
	}

	if *versionFlag {
		fmt.Fprintf(stdout, "vlanpath version %s\n", model.Version)
		return 0
	}

	cfg, cfgPath, err := loadConfig(opts.configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		return exitFailure
	}
	opts.applyConfig(cfg)

	if err := logger.SetLevel(opts.logLevel); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return exitUsage
	}
	logger.Init()
	if cfgPath != "" {
		slog.Debug("config loaded", "path", cfgPath)
	}

	if *updateFlag {
		checkUpdate(stdout, cfg, model.Version, true)
		return 0
	}

	if *webFlag {
		return runWebMode(opts, stdin, stdout)
	}

	if opts.endpoint == "" || opts.attachments == "" {
		fmt.Fprintf(os.Stderr, "Error: both --endpoint and --attachments are required\n\n")
		flags.Usage()
		return exitUsage
	}

	switch {
	case *reportFlag:
		return runReportMode(opts, stdin, stdout)
	case *jsonFlag:
		return runJsonMode(opts, stdin, stdout)
	case *csvFlag || opts.output != "" || !isTerminal(stdout):
		return runCSVMode(opts, stdin, stdout)
	}

	// Default: TUI
	return runTuiMode(opts, stdin, stdout)
}

func loadConfig(path string) (*config.Config, string, error) {
	if path != "" {
		return config.LoadFromPath(path)
	}
	return config.Load()
}

// applyConfig fills options not set on the command line.
func (o *options) applyConfig(cfg *config.Config) {
	if o.epg == "" {
		o.epg = cfg.EPG
	}
	if o.fallbackPod == "" {
		o.fallbackPod = cfg.FallbackPod
	}
	if o.logLevel == "" {
		o.logLevel = cfg.LogLevel
	}
	if o.addr == "" {
		o.addr = cfg.Web.Addr
	}
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

func analyze(opts options, stdin io.Reader) (model.AnalysisResult, error) {
	endpointText, attachmentText, err := input.Pair(opts.endpoint, opts.attachments, stdin)
	if err != nil {
		return model.AnalysisResult{}, err
	}
	return analyzeText(opts, endpointText, attachmentText)
}

func analyzeText(opts options, endpointText, attachmentText string) (model.AnalysisResult, error) {
	res, err := fabric.NewAnalyzer(opts.epg, opts.fallbackPod).Analyze(endpointText, attachmentText)
	if err != nil {
		return model.AnalysisResult{}, err
	}

	slog.Info("analysis complete",
		"vlan", res.Endpoint.VLAN,
		"epg", res.EPG,
		"paths", len(res.Results),
		"attachments", len(res.Attachments),
		"not_allowed", len(res.NotAllowed()),
	)
	for _, d := range res.Diagnostics {
		slog.Debug(d)
	}
	return res, nil
}

func fail(err error) int {
	if errors.Is(err, fabric.ErrNoEndpointData) {
		slog.Error("cannot validate: endpoint output has no usable data", "err", err)
	} else {
		slog.Error("analysis failed", "err", err)
	}
	return exitFailure
}

func writeOutput(opts options, content string, stdout io.Writer) int {
	if err := input.Write(opts.output, content, stdout); err != nil {
		slog.Error("failed to write output", "err", err)
		return exitFailure
	}
	if opts.output != "" && opts.output != input.Stdin {
		fmt.Fprintf(os.Stderr, "Report saved to %s\n", opts.output)
	}
	return 0
}

func runCSVMode(opts options, stdin io.Reader, stdout io.Writer) int {
	res, err := analyze(opts, stdin)
	if err != nil {
		return fail(err)
	}
	return writeOutput(opts, res.CSV+"\n", stdout)
}

func runReportMode(opts options, stdin io.Reader, stdout io.Writer) int {
	res, err := analyze(opts, stdin)
	if err != nil {
		return fail(err)
	}
	return writeOutput(opts, fabric.GenerateReport(res, opts.verbose), stdout)
}

func runJsonMode(opts options, stdin io.Reader, stdout io.Writer) int {
	res, err := analyze(opts, stdin)
	if err != nil {
		return fail(err)
	}

	data, err := json.MarshalIndent(res, "", "  ")
	if err != nil {
		slog.Error("failed to encode analysis", "err", err)
		return exitFailure
	}
	return writeOutput(opts, string(data)+"\n", stdout)
}

func runWebMode(opts options, stdin io.Reader, stdout io.Writer) int {
	var loaded *model.AnalysisResult
	if opts.endpoint != "" && opts.attachments != "" {
		res, err := analyze(opts, stdin)
		if err != nil {
			return fail(err)
		}
		loaded = &res
	}

	srv := web.NewServer(loaded, opts.fallbackPod, slog.Default())
	fmt.Fprintf(stdout, "Go to http://%s in your browser.\n", opts.addr)
	if err := srv.ListenAndServe(opts.addr); err != nil {
		slog.Error("web server stopped", "err", err)
		return exitFailure
	}
	return 0
}

func runTuiMode(opts options, stdin io.Reader, stdout io.Writer) int {
	load := func() (model.AnalysisResult, error) {
		return analyze(opts, stdin)
	}
	progOpts := []tea.ProgramOption{tea.WithAltScreen()}

	if opts.endpoint == input.Stdin || opts.attachments == input.Stdin {
		// Piped input is consumed up front; keys then come from the terminal.
		endpointText, attachmentText, err := input.Pair(opts.endpoint, opts.attachments, stdin)
		if err != nil {
			return fail(err)
		}
		load = func() (model.AnalysisResult, error) {
			return analyzeText(opts, endpointText, attachmentText)
		}
		progOpts = append(progOpts, tea.WithInputTTY())
	}

	// Log lines would tear the alternate screen.
	logger.Silence()

	progOpts = append(progOpts, tea.WithOutput(stdout))
	p := tea.NewProgram(tui.InitialModel(load), progOpts...)
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Alas, there's been an error: %v\n", err)
		return exitFailure
	}
	return 0
}
