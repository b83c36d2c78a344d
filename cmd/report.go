package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/seceng-tools/access-review/api/schemas"
	"github.com/seceng-tools/access-review/internal/bedrock"
	"github.com/seceng-tools/access-review/internal/config"
	"github.com/seceng-tools/access-review/internal/findings"
	"github.com/seceng-tools/access-review/internal/narrative"
	"github.com/seceng-tools/access-review/internal/observability"
	"github.com/seceng-tools/access-review/internal/reporting"
)

// invokerProvider abstracts construction of the model invoker so tests can
// inject a mock instead of a live Bedrock client. A nil invoker with a nil
// error means no model is configured and the local narrative should be used.
type invokerProvider interface {
	Create(cfg config.ModelConfig, logger *zap.Logger) (schemas.ModelInvoker, error)
}

// uploaderProvider abstracts construction of the S3 uploader for the same
// reason.
type uploaderProvider interface {
	Create(cfg config.S3Config, logger *zap.Logger) (reportUploader, error)
}

// reportUploader is the slice of reporting.Uploader the report flow needs.
type reportUploader interface {
	PutReport(ctx context.Context, key string, content []byte, contentType string) (string, error)
}

// defaultInvokerProvider builds the production Bedrock client, or no invoker
// at all when the model is disabled or unconfigured.
type defaultInvokerProvider struct{}

func (p *defaultInvokerProvider) Create(cfg config.ModelConfig, logger *zap.Logger) (schemas.ModelInvoker, error) {
	if cfg.Disabled {
		logger.Info("Model invocation disabled by configuration.")
		return nil, nil
	}
	if cfg.APIKey == "" {
		logger.Info("No Bedrock API key configured; narrative will be generated locally.")
		return nil, nil
	}
	return bedrock.New(cfg, logger)
}

// defaultUploaderProvider builds the production S3 uploader.
type defaultUploaderProvider struct{}

func (p *defaultUploaderProvider) Create(cfg config.S3Config, logger *zap.Logger) (reportUploader, error) {
	return reporting.NewUploader(cfg, logger)
}

// reportOptions carries the flag values for one report run.
type reportOptions struct {
	inputPath string
	outputDir string
	upload    bool
}

// newReportCmd creates and configures the `report` command.
func newReportCmd(provider invokerProvider) *cobra.Command {
	var opts reportOptions

	reportCmd := &cobra.Command{
		Use:   "report",
		Short: "Generate a narrative and CSV report from a findings file",
		Long: `Reads collected security findings from a JSON file, generates the report
narrative (model-backed when a Bedrock key is configured, locally otherwise)
and the detailed CSV report, writes both to the output directory, and
optionally uploads them to S3.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			logger := observability.GetLogger()

			cfg, err := getConfigFromContext(ctx)
			if err != nil {
				return err
			}

			// Delegate to the testable core logic function.
			return runReport(ctx, logger, cfg, opts, provider, &defaultUploaderProvider{})
		},
	}

	reportCmd.Flags().StringVarP(&opts.inputPath, "input", "i", "", "Findings JSON file to report on (required)")
	_ = reportCmd.MarkFlagRequired("input")
	reportCmd.Flags().StringVarP(&opts.outputDir, "output", "o", "", "Output directory for report files (defaults to report.output_dir)")
	reportCmd.Flags().BoolVar(&opts.upload, "upload", false, "Upload the report files to the configured S3 bucket")

	return reportCmd
}

// runReport contains the core, testable logic for one report run.
func runReport(
	ctx context.Context,
	logger *zap.Logger,
	cfg config.Config,
	opts reportOptions,
	invokers invokerProvider,
	uploaders uploaderProvider,
) error {
	runID := uuid.NewString()
	now := time.Now().UTC()
	logger.Info("Starting access review report",
		zap.String("run_id", runID), zap.String("input", opts.inputPath))

	list, err := findings.LoadFile(opts.inputPath)
	if err != nil {
		return err
	}
	logger.Info("Findings loaded.", zap.Int("count", len(list)))

	invoker, err := invokers.Create(cfg.Model, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize model client: %w", err)
	}

	var text string
	if invoker == nil {
		text = narrative.LocalNarrative(list, now)
	} else {
		text = narrative.NewGenerator(invoker, logger).Generate(ctx, list)
	}

	csvContent, err := reporting.CSVReport(list)
	if err != nil {
		return fmt.Errorf("failed to generate CSV report: %w", err)
	}

	outputDir := opts.outputDir
	if outputDir == "" {
		outputDir = cfg.Report.OutputDir
	}
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return fmt.Errorf("failed to create output directory %s: %w", outputDir, err)
	}

	narrativeName := reporting.NarrativeFilename(now)
	csvName := reporting.CSVFilename(now)
	if err := os.WriteFile(filepath.Join(outputDir, narrativeName), []byte(text), 0o644); err != nil {
		return fmt.Errorf("failed to write narrative file: %w", err)
	}
	if err := os.WriteFile(filepath.Join(outputDir, csvName), csvContent, 0o644); err != nil {
		return fmt.Errorf("failed to write CSV file: %w", err)
	}
	logger.Info("Report files written.",
		zap.String("dir", outputDir),
		zap.String("narrative", narrativeName),
		zap.String("csv", csvName))

	if !opts.upload {
		return nil
	}

	uploader, err := uploaders.Create(cfg.Report.S3, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize report uploader: %w", err)
	}
	prefix := cfg.Report.S3.Prefix
	if _, err := uploader.PutReport(ctx, reporting.ReportKey(prefix, runID, csvName), csvContent, "text/csv"); err != nil {
		return fmt.Errorf("failed to upload CSV report: %w", err)
	}
	if _, err := uploader.PutReport(ctx, reporting.ReportKey(prefix, runID, narrativeName), []byte(text), "text/markdown"); err != nil {
		return fmt.Errorf("failed to upload narrative: %w", err)
	}

	return nil
}
