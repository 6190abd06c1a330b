package commands

import (
	"context"
	"fmt"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/jmylchreest/rightscrape/internal/logger"
	"github.com/jmylchreest/rightscrape/internal/output"
	"github.com/jmylchreest/rightscrape/pkg/extractor"
	"github.com/jmylchreest/rightscrape/pkg/extractor/domonly"
	"github.com/jmylchreest/rightscrape/pkg/extractor/pagemodel"
	"github.com/jmylchreest/rightscrape/pkg/fetcher"
	"github.com/jmylchreest/rightscrape/pkg/listing"
	"github.com/jmylchreest/rightscrape/pkg/pipeline"
)

func init() {
	flags := rootCmd.Flags()

	// Emit mode
	flags.BoolP("json", "j", false, "emit one JSON object per listing")
	flags.BoolP("urls", "u", false, "emit the URL of each accepted listing")
	flags.BoolP("floorplan", "f", false, "drop listings without a floorplan")

	// Extraction settings
	flags.String("strategy", extractor.StrategyAuto, "extraction strategy: auto, pagemodel, domonly")
	flags.String("selectors", "", "YAML file overriding the built-in selector profile")
	flags.Bool("continue-on-error", false, "log failing URLs and keep going (exit status is still non-zero)")
	flags.String("dump-path", "tmp.html", "write the body of a page that failed extraction here (empty disables)")

	// Fetch settings
	flags.Duration("timeout", 30*time.Second, "request timeout")
	flags.String("user-agent", "", "User-Agent header (default: desktop Chrome)")
	flags.String("max-body-size", humanize.Bytes(fetcher.DefaultMaxBodySize), "max response body size (e.g., 512KB, 10MB, 0=unlimited)")

	// Bind to viper
	for _, name := range []string{
		"json", "urls", "floorplan",
		"strategy", "selectors", "continue-on-error", "dump-path",
		"timeout", "user-agent", "max-body-size",
	} {
		_ = viper.BindPFlag(strings.ReplaceAll(name, "-", "_"), flags.Lookup(name))
	}
}

func runScrape(cmd *cobra.Command, args []string) error {
	// Initialize logger based on flags
	logger.Init(logger.Options{
		Debug:  viper.GetBool("debug"),
		Quiet:  viper.GetBool("quiet"),
		Output: cmd.ErrOrStderr(),
	})

	// Configuration errors are reported before any input is read.
	format, err := output.FormatFromFlags(viper.GetBool("json"), viper.GetBool("urls"))
	if err != nil {
		return err
	}

	profile := extractor.DefaultProfile()
	if path := viper.GetString("selectors"); path != "" {
		logger.Debug("loading selector profile", "path", path)
		profile, err = extractor.LoadProfile(path)
		if err != nil {
			return err
		}
	}

	ext, err := buildExtractor(viper.GetString("strategy"), profile)
	if err != nil {
		return err
	}
	logger.Debug("extractor built", "extractor", ext.Name())

	maxBodySize, err := parseSize(viper.GetString("max_body_size"))
	if err != nil {
		return fmt.Errorf("invalid max-body-size %q: %w", viper.GetString("max_body_size"), err)
	}

	timeout := viper.GetDuration("timeout")
	f := fetcher.NewStatic(fetcher.StaticConfig{
		UserAgent:   viper.GetString("user_agent"),
		Timeout:     timeout,
		MaxBodySize: maxBodySize,
	})
	logger.Debug("fetcher configured", "timeout", timeout, "max_body_size", humanize.Bytes(uint64(maxBodySize)))

	w, err := output.NewWriter(cmd.OutOrStdout(), format)
	if err != nil {
		return err
	}

	policy := pipeline.AbortOnError
	if viper.GetBool("continue_on_error") {
		policy = pipeline.ContinueOnError
	}

	p, err := pipeline.New(
		pipeline.WithFetcher(f),
		pipeline.WithExtractor(ext),
		pipeline.WithWriter(w),
		pipeline.WithFilter(listing.FilterOptions{Floorplan: viper.GetBool("floorplan")}),
		pipeline.WithErrorPolicy(policy),
		pipeline.WithDumpPath(viper.GetString("dump_path")),
	)
	if err != nil {
		return err
	}
	defer func() { _ = p.Close() }()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	logger.Debug("reading URLs from stdin", "format", format, "policy", policy.String())
	_, err = p.Run(ctx, cmd.InOrStdin())
	return err
}

// buildExtractor returns the extractor for a strategy name. "auto" chains
// the page-model strategy before the DOM-only one.
func buildExtractor(strategy string, profile extractor.Profile) (extractor.Extractor, error) {
	if err := profile.Validate(); err != nil {
		return nil, err
	}

	switch strings.ToLower(strings.TrimSpace(strategy)) {
	case extractor.StrategyAuto, "":
		pm, err := pagemodel.New(profile.PageModel)
		if err != nil {
			return nil, err
		}
		dom, err := domonly.New(profile.DOM)
		if err != nil {
			return nil, err
		}
		return extractor.NewFallback(pm, dom), nil
	case extractor.StrategyPageModel:
		pm, err := pagemodel.New(profile.PageModel)
		if err != nil {
			return nil, err
		}
		return pm, nil
	case extractor.StrategyDOMOnly:
		dom, err := domonly.New(profile.DOM)
		if err != nil {
			return nil, err
		}
		return dom, nil
	default:
		return nil, fmt.Errorf("unknown strategy: %s (use 'auto', 'pagemodel' or 'domonly')", strategy)
	}
}

// parseSize parses a humanized byte size. Empty and "0" mean unlimited.
func parseSize(s string) (int, error) {
	s = strings.TrimSpace(s)
	if s == "" || s == "0" {
		return 0, nil
	}
	n, err := humanize.ParseBytes(s)
	if err != nil {
		return 0, err
	}
	return int(n), nil
}
