package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Alwanly/ttn-storage-pull/internal/config"
	"github.com/Alwanly/ttn-storage-pull/internal/models"
	"github.com/Alwanly/ttn-storage-pull/internal/storage"
	"github.com/Alwanly/ttn-storage-pull/pkg/logger"
)

// pullFlags maps flag names to the config keys they override.
var pullFlags = map[string]string{
	"app":         "app",
	"access-key":  "access_key",
	"last":        "last",
	"api-version": "api_version",
	"output-dir":  "output_dir",
	"format":      "format",
	"timeout":     "request_timeout",
	"cluster-url": "v3_base_url",
	"log-level":   "log_level",
}

func newPullCommand(s *settings) *cobra.Command {
	v := config.NewPullViper()

	cmd := &cobra.Command{
		Use:   "pull",
		Short: "Fetch uplinks for the last time window",
		Example: `  # V3, last day, pretty JSON
  TTN_ACCESS_KEY=NNSXS.... ttnpull pull --app my-app --last 1d

  # V3 table view from the EU cluster
  ttnpull pull --app my-app --last 12h --cluster-url https://eu1.cloud.thethings.network --format table

  # V2, also keep a copy in ./data/sensors_lastperiod.json
  ttnpull pull --app my-app --last 2d --api-version 2 --output-dir ./data`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if s.configFile != "" {
				v.SetConfigFile(s.configFile)
			}
			cfg, err := config.LoadPullConfig(v)
			if err != nil {
				return err
			}
			return runPull(cmd.Context(), s, cfg)
		},
	}

	f := cmd.Flags()
	f.String("app", "", "application name (env TTN_APP)")
	f.String("access-key", "", "storage API key (prefer env TTN_ACCESS_KEY)")
	f.String("last", "1d", "trailing time window, e.g. 12h or 2d (env TTN_WINDOW)")
	f.String("api-version", "3", "storage API version, 2 or 3 (env TTN_API_VERSION)")
	f.String("output-dir", "", "also write the raw body to DIR/"+models.OutputFileName+" (env TTN_OUTPUT_DIR)")
	f.String("format", formatJSON, "output format: json, table, raw")
	f.String("timeout", storage.DefaultTimeout.String(), "request timeout (env REQUEST_TIMEOUT)")
	f.String("cluster-url", storage.DefaultV3BaseURL, "V3 cluster base URL (env TTN_V3_BASE_URL)")
	f.String("log-level", "warn", "log level written to stderr (env LOG_LEVEL)")

	for name, key := range pullFlags {
		_ = v.BindPFlag(key, f.Lookup(name))
	}

	return cmd
}

func runPull(ctx context.Context, s *settings, cfg *config.PullConfig) error {
	if ctx == nil {
		ctx = context.Background()
	}
	if !validFormat(cfg.Format) {
		return fmt.Errorf("unsupported format %q (want json, table or raw)", cfg.Format)
	}

	log, err := logger.NewLogger("ttnpull", cfg.LogFormat, cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer log.Sync()

	var opts []storage.Option
	if s.httpClient != nil {
		opts = append(opts, storage.WithHTTPClient(s.httpClient))
	}
	client := storage.NewClient(cfg.Storage(), log, opts...)

	req := cfg.Request()
	log.Debug("starting pull", logger.Object("request", req))

	res, err := client.Pull(ctx, req)
	if err != nil {
		log.WithError(err).Debug("pull failed", logger.String(logger.FieldErrorKind, storage.Kind(err)))
		return err
	}

	if err := render(s.out, res, cfg.Format); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	if res.Version == models.APIVersionV2 {
		success(s.errOut, "pulled %d bytes from %s (%s, last %s)", res.Len(), req.AppName, res.Version, req.TimeWindow)
	} else {
		success(s.errOut, "pulled %d records from %s (%s, last %s)", res.Len(), req.AppName, res.Version, req.TimeWindow)
	}
	if res.OutputPath != "" {
		info(s.errOut, "saved to %s", res.OutputPath)
	}
	return nil
}
