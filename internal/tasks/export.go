package tasks

import (
	"context"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/desertthunder/stepx/internal/formatter"
	"github.com/desertthunder/stepx/internal/models"
	"golang.org/x/time/rate"
)

// ExportOpts contains configuration for collection exports.
type ExportOpts struct {
	Format       string  // Export format: json, csv, markdown
	Path         string  // Output file (default: stepx_export_{epoch}.{ext})
	IncludeSteps bool    // Fetch missing step sheets before exporting
	NumWorkers   int     // Concurrent step sheet fetches (default: 5)
	RateLimit    float64 // Requests per second (default: 5)
}

// ExportResult summarizes a completed export.
type ExportResult struct {
	Path          string `json:"path"`
	Collections   int    `json:"collections"`
	Dances        int    `json:"dances"`
	SheetsFetched int    `json:"sheetsFetched,omitempty"`
	SheetFailures int    `json:"sheetFailures,omitempty"`
}

// stepFetchJob identifies one dance needing its step sheet fetched.
type stepFetchJob struct {
	collection string
	index      int
	dance      models.Dance
}

type stepFetchResult struct {
	collection string
	index      int
	rows       []models.StepRow
	err        error
}

// Export writes the collection set to a file in the requested format.
//
// With IncludeSteps, dances missing step sheet content are filled in first
// via a rate-limited worker pool. Fetch failures leave the dance without a
// sheet and are counted, not fatal.
func (e *DanceEngine) Export(ctx context.Context, prog chan<- ProgressUpdate, set models.CollectionSet, opts ExportOpts) (*ExportResult, error) {
	if opts.Format == "" {
		opts.Format = "json"
	}
	if opts.Path == "" {
		opts.Path = fmt.Sprintf("stepx_export_%d.%s", time.Now().Unix(), extensionFor(opts.Format))
	}

	set = set.Clone()

	result := &ExportResult{
		Path:        opts.Path,
		Collections: len(set),
	}
	for _, dances := range set {
		result.Dances += len(dances)
	}

	if opts.IncludeSteps {
		fetched, failed := e.fetchMissingSheets(ctx, prog, set, opts)
		result.SheetsFetched = fetched
		result.SheetFailures = failed
	}

	var (
		data []byte
		err  error
	)
	switch opts.Format {
	case "csv":
		data, err = formatter.ExportCollectionsCSV(set)
	case "markdown":
		data, err = formatter.ExportCollectionsMarkdown(set)
	case "json":
		data, err = formatter.ExportCollectionsJSON(set)
	default:
		return nil, fmt.Errorf("unsupported export format: %s", opts.Format)
	}
	if err != nil {
		return nil, err
	}

	if err := os.WriteFile(opts.Path, data, 0644); err != nil {
		return nil, fmt.Errorf("failed to write export file: %w", err)
	}

	e.sendProgress(prog, exportCompletedUpdate(result.Collections, result.Collections, opts.Path))
	return result, nil
}

// fetchMissingSheets fills in absent step sheets across the set using a
// rate-limited worker pool. Returns fetched and failed counts.
func (e *DanceEngine) fetchMissingSheets(ctx context.Context, prog chan<- ProgressUpdate, set models.CollectionSet, opts ExportOpts) (int, int) {
	if opts.NumWorkers <= 0 {
		opts.NumWorkers = 5
	}
	if opts.NumWorkers > 10 {
		opts.NumWorkers = 10
	}
	if opts.RateLimit <= 0 {
		opts.RateLimit = 5.0
	}

	var pending []stepFetchJob
	for name, dances := range set {
		for i, d := range dances {
			if len(d.StepSheet) == 0 {
				pending = append(pending, stepFetchJob{collection: name, index: i, dance: d})
			}
		}
	}
	if len(pending) == 0 {
		return 0, 0
	}

	limiter := rate.NewLimiter(rate.Limit(opts.RateLimit), 1)
	jobs := make(chan stepFetchJob, len(pending))
	results := make(chan stepFetchResult, len(pending))

	var wg sync.WaitGroup
	for i := 0; i < opts.NumWorkers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for job := range jobs {
				if err := limiter.Wait(ctx); err != nil {
					results <- stepFetchResult{collection: job.collection, index: job.index, err: err}
					continue
				}
				rows, err := e.catalog.GetStepSheet(ctx, stepSheetKey(job.dance, job.dance))
				results <- stepFetchResult{collection: job.collection, index: job.index, rows: rows, err: err}
			}
		}()
	}

	for i, job := range pending {
		e.sendProgress(prog, exportingCollectionUpdate(i+1, len(pending), job.dance.Title))
		jobs <- job
	}
	close(jobs)

	go func() {
		wg.Wait()
		close(results)
	}()

	fetched, failed := 0, 0
	for res := range results {
		if res.err != nil {
			failed++
			e.logger.Warn("step sheet fetch failed during export",
				"collection", res.collection, "err", res.err)
			continue
		}
		set[res.collection][res.index].StepSheet = res.rows
		fetched++
	}
	return fetched, failed
}

// Import reads a JSON export file and returns the normalized collection set.
func (e *DanceEngine) Import(path string) (models.CollectionSet, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read import file: %w", err)
	}

	set, err := formatter.ParseCollectionsJSON(data)
	if err != nil {
		return nil, err
	}

	return set.Normalized().WithDefaults(), nil
}

func extensionFor(format string) string {
	switch format {
	case "csv":
		return "csv"
	case "markdown":
		return "md"
	default:
		return "json"
	}
}
