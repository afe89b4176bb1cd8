package main

import (
	"context"
	"io"
	"time"

	"github.com/fwojciec/vidinfo"
	"github.com/fwojciec/vidinfo/extract"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx       context.Context
	Stdout    io.Writer
	Stderr    io.Writer
	Router    vidinfo.Router
	Extractor *extract.Extractor
	Media     vidinfo.MediaService
	Writer    vidinfo.InfoWriter
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	DB      string        `name:"db" env:"VIDINFO_DB" help:"Catalog database path (default ~/.vidinfo/vidinfo.db)"`
	Cookies string        `env:"VIDINFO_COOKIES" help:"Netscape cookies.txt file for authenticated handlers"`
	Timeout time.Duration `default:"10s" help:"Per-request timeout"`
	Retries int           `default:"3" help:"Retries for transient fetch failures"`
	Rate    float64       `default:"2" help:"Requests per second per host (0 disables)"`
	Browser bool          `help:"Fetch HTML pages with a headless browser"`
	Verbose bool          `short:"v" help:"Log requests and extractions to stderr"`

	Extract  ExtractCmd  `cmd:"" help:"Extract media info as JSON lines"`
	Formats  FormatsCmd  `cmd:"" help:"Show the formats available for a URL"`
	Handlers HandlersCmd `cmd:"" help:"List registered handlers in routing order"`
	List     ListCmd     `cmd:"" help:"List cataloged media"`
	Show     ShowCmd     `cmd:"" help:"Show a cataloged media record"`
	Delete   DeleteCmd   `cmd:"" help:"Delete a cataloged media record"`
}

// ExtractCmd is the "extract" subcommand.
type ExtractCmd struct {
	URLs        []string `arg:"" name:"url" help:"Page URLs to extract"`
	Save        bool     `short:"s" help:"Store results in the catalog"`
	OutputDir   string   `short:"o" name:"output-dir" help:"Also write each record to DIR/<handler>/<id>.info.json"`
	Concurrency int      `short:"c" default:"4" help:"Concurrent extraction limit"`
}

// FormatsCmd is the "formats" subcommand.
type FormatsCmd struct {
	URL string `arg:"" help:"Page URL"`
}

// HandlersCmd is the "handlers" subcommand.
type HandlersCmd struct{}

// ListCmd is the "list" subcommand.
type ListCmd struct {
	Extractor string `short:"e" help:"Only show records from this handler"`
	Limit     int    `short:"n" help:"Maximum records to show"`
	Offset    int    `help:"Records to skip"`
}

// ShowCmd is the "show" subcommand.
type ShowCmd struct {
	Extractor string `arg:"" help:"Handler name, e.g. kick:video"`
	ID        string `arg:"" help:"Media ID"`
}

// DeleteCmd is the "delete" subcommand.
type DeleteCmd struct {
	Extractor string `arg:"" help:"Handler name"`
	ID        string `arg:"" help:"Media ID"`
	Force     bool   `help:"Confirm deletion"`
}
