package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/vidinfo"
	"github.com/fwojciec/vidinfo/extract"
	"github.com/fwojciec/vidinfo/fs"
	vihttp "github.com/fwojciec/vidinfo/http"
	"github.com/fwojciec/vidinfo/m3u8"
	"github.com/fwojciec/vidinfo/rod"
	"github.com/fwojciec/vidinfo/site"
	visl "github.com/fwojciec/vidinfo/slog"
	"github.com/fwojciec/vidinfo/sqlite"
)

func main() {
	ctx := context.Background()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Database path used when VIDINFO_DB and --db are unset.
	DBPath string

	// SQLite database used by the catalog.
	DB *sqlite.DB

	// closers are released in reverse order by Close.
	closers []io.Closer
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{
		DBPath: defaultDBPath(),
	}
}

// Close gracefully stops the program.
func (m *Main) Close() error {
	var firstErr error
	for i := len(m.closers) - 1; i >= 0; i-- {
		if err := m.closers[i].Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	m.closers = nil
	if m.DB != nil {
		if err := m.DB.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
		m.DB = nil
	}
	return firstErr
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("vidinfo"),
		kong.Description("Extract media metadata and formats from supported sites."),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'vidinfo --help' to see available commands")
	}

	if args[0] == "help" || args[0] == "--help" || args[0] == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}
	defer m.Close()

	cmd := strings.Fields(kongCtx.Command())[0]

	level := slog.LevelWarn
	if cli.Verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	if needsCatalog(cmd, cli) {
		path := cli.DB
		if path == "" {
			path = m.DBPath
		}
		m.DB = sqlite.NewDB(path)
		if err := m.DB.Open(); err != nil {
			m.DB = nil
			fmt.Fprintf(stderr, "Hint: Set VIDINFO_DB to use a different database path\n")
			return fmt.Errorf("failed to open database at %q: %w", path, err)
		}
		deps.Media = sqlite.NewMediaService(m.DB)
	}

	if cmd == "extract" || cmd == "formats" || cmd == "handlers" {
		router, err := m.buildRouter(cli, logger, stderr)
		if err != nil {
			return err
		}
		deps.Router = router
		deps.Extractor = extract.NewExtractor(router)
	}

	if cmd == "extract" && cli.Extract.OutputDir != "" {
		deps.Writer = fs.NewWriter(cli.Extract.OutputDir)
	}

	return kongCtx.Run(deps)
}

// buildRouter wires the fetchers, resolver and site handlers.
func (m *Main) buildRouter(cli *CLI, logger *slog.Logger, stderr io.Writer) (vidinfo.Router, error) {
	cookies, err := loadCookies(cli.Cookies)
	if err != nil {
		fmt.Fprintf(stderr, "Hint: VIDINFO_COOKIES must point to a Netscape cookies.txt file\n")
		return nil, err
	}

	httpFetcher := vihttp.NewFetcher(
		vihttp.WithTimeout(cli.Timeout),
		vihttp.WithRetryDelays(retryDelays(cli.Retries)),
		vihttp.WithRetryLogger(func(format string, args ...any) {
			logger.Warn(fmt.Sprintf(format, args...))
		}),
		vihttp.WithRateLimit(cli.Rate),
		vihttp.WithCookieJar(cookies.Jar()),
	)
	m.closers = append(m.closers, httpFetcher)

	var fetcher vidinfo.Fetcher = httpFetcher
	var pages vidinfo.Fetcher = httpFetcher
	if cli.Browser {
		browser, err := rod.NewFetcher(rod.WithTimeout(cli.Timeout))
		if err != nil {
			fmt.Fprintln(stderr, "Hint: Chrome or Chromium must be installed")
			return nil, fmt.Errorf("failed to start browser: %w", err)
		}
		m.closers = append(m.closers, browser)
		pages = browser
	}

	var resolver vidinfo.ManifestResolver
	if cli.Verbose {
		fetcher = visl.NewLoggingFetcher(fetcher, logger)
		pages = visl.NewLoggingFetcher(pages, logger)
		resolver = visl.NewLoggingResolver(m3u8.NewResolver(fetcher), logger)
	} else {
		resolver = m3u8.NewResolver(fetcher)
	}

	handlers := site.DefaultHandlers(site.Dependencies{
		Fetcher:     fetcher,
		PageFetcher: pages,
		Resolver:    resolver,
		Credentials: cookies,
	})
	if cli.Verbose {
		return visl.NewLoggingRouter(extract.NewRegistry(visl.WrapHandlers(handlers, logger)...), logger), nil
	}
	return extract.NewRegistry(handlers...), nil
}

// needsCatalog reports whether cmd reads or writes the catalog.
func needsCatalog(cmd string, cli *CLI) bool {
	switch cmd {
	case "list", "show", "delete":
		return true
	case "extract":
		return cli.Extract.Save
	}
	return false
}

func loadCookies(path string) (*vihttp.CookieStore, error) {
	if path == "" {
		return vihttp.NewCookieStore()
	}
	return vihttp.LoadCookieStore(path)
}

// retryDelays returns n exponential backoff delays starting at one second.
func retryDelays(n int) []time.Duration {
	delays := make([]time.Duration, 0, n)
	d := time.Second
	for range n {
		delays = append(delays, d)
		d *= 2
	}
	return delays
}

func defaultDBPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "vidinfo.db"
	}
	dir := filepath.Join(home, ".vidinfo")
	_ = os.MkdirAll(dir, 0755)
	return filepath.Join(dir, "vidinfo.db")
}
