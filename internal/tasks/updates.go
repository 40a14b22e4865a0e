package tasks

import (
	"fmt"

	"github.com/desertthunder/stepx/internal/models"
)

// ProgressUpdate represents a progress event during a long-running operation.
//
// Used to send real-time updates to the CLI or UI layer for display.
type ProgressUpdate struct {
	Phase   Phase  // Operation phase
	Step    int    // Current step number within phase
	Total   int    // Total steps in this phase
	Message string // Human-readable message for display
	Data    any    // Optional phase-specific data for advanced UIs
}

// Operation phase enumeration
type Phase int

const (
	SearchCatalog Phase = iota
	FetchDetail
	FetchSteps
	PullDocument
	PushDocument
	ExportCollections
	ImportCollections
)

func (p Phase) String() string {
	switch p {
	case SearchCatalog:
		return "search_catalog"
	case FetchDetail:
		return "fetch_detail"
	case FetchSteps:
		return "fetch_steps"
	case PullDocument:
		return "pull_document"
	case PushDocument:
		return "push_document"
	case ExportCollections:
		return "export_collections"
	case ImportCollections:
		return "import_collections"
	default:
		return ""
	}
}

func searchingUpdate(query, catalog string) ProgressUpdate {
	return ProgressUpdate{
		Phase:   SearchCatalog,
		Step:    1,
		Total:   1,
		Message: fmt.Sprintf("Searching %s for %q...", catalog, query),
	}
}

func searchResultsUpdate(query string, dances []models.Dance) ProgressUpdate {
	return ProgressUpdate{
		Phase:   SearchCatalog,
		Step:    1,
		Total:   1,
		Message: fmt.Sprintf("Found %d dances for %q", len(dances), query),
		Data:    dances,
	}
}

func exportingCollectionUpdate(step, total int, name string) ProgressUpdate {
	return ProgressUpdate{
		Phase:   ExportCollections,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] Exporting: %s...", step, total, name),
	}
}

func exportCompletedUpdate(step, total int, path string) ProgressUpdate {
	return ProgressUpdate{
		Phase:   ExportCollections,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("Export written to %s", path),
	}
}

func pullDocumentUpdate(step, total int) ProgressUpdate {
	return ProgressUpdate{
		Phase:   PullDocument,
		Step:    step,
		Total:   total,
		Message: "Fetching remote document...",
	}
}

func pushDocumentUpdate(revision int64) ProgressUpdate {
	return ProgressUpdate{
		Phase:   PushDocument,
		Step:    1,
		Total:   1,
		Message: fmt.Sprintf("Pushing document (revision %d)...", revision),
	}
}
