package convert

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"

	"docmill/internal/fileutil"
	"docmill/internal/logging"
	"docmill/internal/markup"
	"docmill/internal/services"
	"docmill/internal/services/soffice"
)

// ErrNoSources reports that the input directory held no convertible files.
var ErrNoSources = errors.New("no source documents found")

// Result captures one variant's outcome for one source document.
type Result struct {
	Variant    Variant
	OutputPath string
	Skipped    bool
	Reason     string
	Err        error
}

// Failed reports whether the variant was attempted and did not produce output.
func (r Result) Failed() bool { return !r.Skipped && r.Err != nil }

// Succeeded reports whether the variant produced a Markdown artifact.
func (r Result) Succeeded() bool { return !r.Skipped && r.Err == nil }

// Retryable reports whether the failure is transient enough for another run.
// Validation and configuration failures need a human instead.
func (r Result) Retryable() bool { return r.Failed() && services.Retryable(r.Err) }

// Summary aggregates a directory run.
type Summary struct {
	Sources   []string
	Results   map[string][]Result
	Attempted int
	Succeeded int
	Failed    int
	Skipped   int
}

// FileSucceeded reports whether at least one variant produced output for the
// source path.
func (s *Summary) FileSucceeded(path string) bool {
	for _, res := range s.Results[path] {
		if res.Succeeded() {
			return true
		}
	}
	return false
}

// RetryableFailures counts failed variants worth another automatic attempt,
// so callers can separate transient breakage from work needing attention.
func (s *Summary) RetryableFailures() int {
	count := 0
	for _, results := range s.Results {
		for _, res := range results {
			if res.Retryable() {
				count++
			}
		}
	}
	return count
}

// FirstFailure returns the first variant error recorded for the source path.
func (s *Summary) FirstFailure(path string) error {
	for _, res := range s.Results[path] {
		if res.Failed() {
			return res.Err
		}
	}
	return nil
}

// Runner executes conversion variants sequentially. A nil soffice client
// marks every LibreOffice-dependent variant as skipped instead of failing it.
type Runner struct {
	soffice  *soffice.Client
	variants []Variant
	logger   *slog.Logger

	availability map[string]error
}

// NewRunner constructs a Runner over the given variant set.
func NewRunner(sofficeClient *soffice.Client, variants []Variant, logger *slog.Logger) *Runner {
	return &Runner{
		soffice:  sofficeClient,
		variants: variants,
		logger:   logging.NewComponentLogger(logger, "convert"),
	}
}

// FindSources globs dir for .fodt documents, sorted for deterministic runs.
func FindSources(dir string) ([]string, error) {
	matches, err := filepath.Glob(filepath.Join(dir, "*.fodt"))
	if err != nil {
		return nil, fmt.Errorf("scan %s: %w", dir, err)
	}
	sort.Strings(matches)
	return matches, nil
}

// ProcessDirectory converts every source document in dir through every
// variant. Variant failures are recorded, logged, and never block sibling
// variants or later files.
func (r *Runner) ProcessDirectory(ctx context.Context, dir, outputDir string) (*Summary, error) {
	sources, err := FindSources(dir)
	if err != nil {
		return nil, err
	}
	if len(sources) == 0 {
		return nil, fmt.Errorf("%w in %s", ErrNoSources, dir)
	}

	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return nil, fmt.Errorf("create output directory: %w", err)
	}

	summary := &Summary{
		Sources: sources,
		Results: make(map[string][]Result, len(sources)),
	}
	for _, source := range sources {
		fileCtx := services.WithSourceFile(ctx, source)
		results := r.ConvertFile(fileCtx, source, outputDir)
		summary.Results[source] = results
		for _, res := range results {
			switch {
			case res.Skipped:
				summary.Skipped++
			case res.Err != nil:
				summary.Attempted++
				summary.Failed++
			default:
				summary.Attempted++
				summary.Succeeded++
			}
		}
	}
	return summary, nil
}

// ConvertFile runs every variant against one source document.
func (r *Runner) ConvertFile(ctx context.Context, sourcePath, outputDir string) []Result {
	results := make([]Result, 0, len(r.variants))
	for _, variant := range r.variants {
		variantCtx := services.WithVariant(ctx, variant.Name())
		logger := logging.WithContext(variantCtx, r.logger)

		result := r.runVariant(variantCtx, variant, sourcePath, outputDir)
		switch {
		case result.Skipped:
			logger.Info("variant skipped", logging.String("reason", result.Reason))
		case result.Err != nil:
			logger.Error("variant failed", logging.Error(result.Err))
		default:
			logger.Info("variant completed", logging.String("output", result.OutputPath))
		}
		results = append(results, result)
	}
	return results
}

func (r *Runner) runVariant(ctx context.Context, v Variant, sourcePath, outputDir string) Result {
	result := Result{Variant: v}

	if v.Stage.needsSoffice() && r.soffice == nil {
		result.Skipped = true
		result.Reason = "soffice not available"
		return result
	}
	if err := r.engineAvailable(ctx, v.Engine); err != nil {
		result.Skipped = true
		result.Reason = err.Error()
		return result
	}

	outputPath := filepath.Join(outputDir, v.OutputName(sourcePath))

	intermediate, fromFormat, err := r.produceIntermediate(ctx, v.Stage, sourcePath, outputDir)
	if intermediate != "" {
		// Intermediates are scratch files; remove them on every path.
		defer fileutil.RemoveIfExists(intermediate)
	}
	if err != nil {
		result.Err = services.Wrap(services.ErrExternalTool, "convert", v.Stage.String(), "intermediate export", err)
		return result
	}

	if err := v.Engine.FileToMarkdown(ctx, intermediate, fromFormat, outputPath); err != nil {
		if errors.Is(err, markup.ErrUnsupportedFormat) {
			result.Skipped = true
			result.Reason = fmt.Sprintf("%s engine: %v", v.Engine.Name(), err)
			return result
		}
		result.Err = services.Wrap(services.ErrExternalTool, "convert", v.Stage.String(), "markup conversion", err)
		return result
	}

	result.OutputPath = outputPath
	return result
}

// produceIntermediate materializes the stage's intermediate file and reports
// the markup source format to read it as. HTML lands in the output
// directory; word-processor intermediates land beside the source, matching
// where LibreOffice drops them in the classic flow.
func (r *Runner) produceIntermediate(ctx context.Context, stage Stage, sourcePath, outputDir string) (string, string, error) {
	switch stage {
	case StageViaHTML:
		path, err := r.soffice.Convert(ctx, sourcePath, soffice.FilterHTML, outputDir)
		return path, "html", err
	case StageViaODT:
		path, err := r.soffice.Convert(ctx, sourcePath, soffice.FilterODT, filepath.Dir(sourcePath))
		return path, "odt", err
	case StageViaRawCopy:
		base := filepath.Base(sourcePath)
		odt := filepath.Join(outputDir, base[:len(base)-len(filepath.Ext(base))]+".odt")
		// The renamed copy feeds pandoc directly, so verify it arrived intact.
		if err := fileutil.CopyFileVerified(sourcePath, odt); err != nil {
			return "", "", fmt.Errorf("copy source: %w", err)
		}
		return odt, "odt", nil
	case StageViaDOC:
		path, err := r.soffice.Convert(ctx, sourcePath, soffice.FilterDOC, filepath.Dir(sourcePath))
		if err == nil {
			return path, "doc", nil
		}
		r.logger.Warn("doc export failed, retrying as rtf", logging.Error(err))
		path, rtfErr := r.soffice.Convert(ctx, sourcePath, soffice.FilterRTF, filepath.Dir(sourcePath))
		if rtfErr != nil {
			return "", "", fmt.Errorf("doc export: %v; rtf fallback: %w", err, rtfErr)
		}
		return path, "rtf", nil
	default:
		return "", "", fmt.Errorf("unknown stage %v", stage)
	}
}

func (r *Runner) engineAvailable(ctx context.Context, engine markup.Engine) error {
	if engine == nil {
		return errors.New("no markup engine configured")
	}
	if r.availability == nil {
		r.availability = make(map[string]error)
	}
	if cached, ok := r.availability[engine.Name()]; ok {
		return cached
	}
	err := engine.Available(ctx)
	r.availability[engine.Name()] = err
	return err
}
