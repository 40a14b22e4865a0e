// package formatter converts collection sets to export formats (JSON, CSV, Markdown)
package formatter

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"

	"github.com/desertthunder/stepx/internal/models"
	"github.com/desertthunder/stepx/internal/shared"
)

// ExportCollectionsJSON serializes the set as indented JSON. The output is the
// same shape ParseCollectionsJSON accepts, so exports round-trip as imports.
func ExportCollectionsJSON(set models.CollectionSet) ([]byte, error) {
	return shared.MarshalJSON(set, true)
}

// ParseCollectionsJSON parses a JSON export. Both the bare collection map and
// a full sync document wrapping one are accepted.
func ParseCollectionsJSON(data []byte) (models.CollectionSet, error) {
	var set models.CollectionSet
	if err := json.Unmarshal(data, &set); err == nil && len(set) > 0 {
		return set, nil
	}

	var doc models.SyncDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse collections JSON: %w", err)
	}
	if len(doc.Collections) == 0 {
		return nil, fmt.Errorf("%w: no collections found in import", shared.ErrInvalidInput)
	}
	return doc.Collections, nil
}

// ExportCollectionsCSV flattens the set to CSV with columns:
// Collection, ID, Title, Level, Counts, Walls, Song, Artist, StepSheetURL
func ExportCollectionsCSV(set models.CollectionSet) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	headers := []string{"Collection", "ID", "Title", "Level", "Counts", "Walls", "Song", "Artist", "StepSheetURL"}
	if err := writer.Write(headers); err != nil {
		return nil, fmt.Errorf("failed to write CSV headers: %w", err)
	}

	for _, name := range set.Names() {
		for _, d := range set[name] {
			record := []string{
				name,
				d.ID,
				d.Title,
				d.DifficultyLevel,
				strconv.Itoa(d.Counts),
				strconv.Itoa(d.WallCount),
				d.SongTitle,
				d.SongArtist,
				d.StepSheetURL,
			}
			if err := writer.Write(record); err != nil {
				return nil, fmt.Errorf("failed to write CSV record: %w", err)
			}
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("CSV writer error: %w", err)
	}

	return buf.Bytes(), nil
}

// ExportCollectionsMarkdown renders the set as a document with one section per
// collection and step sheets inlined where present.
func ExportCollectionsMarkdown(set models.CollectionSet) ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteString("# Dance Collections\n\n")

	total := 0
	for _, dances := range set {
		total += len(dances)
	}
	buf.WriteString(fmt.Sprintf("**Collections**: %d\n", len(set)))
	buf.WriteString(fmt.Sprintf("**Dances**: %d\n\n", total))

	for _, name := range set.Names() {
		dances := set[name]
		buf.WriteString(fmt.Sprintf("## %s\n\n", name))

		if len(dances) == 0 {
			buf.WriteString("_empty_\n\n")
			continue
		}

		for i, d := range dances {
			buf.WriteString(fmt.Sprintf("%d. **%s** (%s)\n", i+1, d.Title, d.Summary()))
			buf.WriteString(fmt.Sprintf("   %s - %s\n", d.SongArtist, d.SongTitle))
			if d.StepSheetURL != "" {
				buf.WriteString(fmt.Sprintf("   [Step sheet](%s)\n", d.StepSheetURL))
			}
			writeStepSheet(&buf, d.StepSheet)
		}
		buf.WriteString("\n")
	}

	return buf.Bytes(), nil
}

// writeStepSheet renders inline step sheet rows under a dance entry.
func writeStepSheet(buf *bytes.Buffer, rows []models.StepRow) {
	for _, row := range rows {
		switch {
		case row.Heading != "":
			buf.WriteString(fmt.Sprintf("   - _%s_\n", row.Heading))
		case row.Text != "":
			line := row.Text
			if row.Counts != "" {
				line = fmt.Sprintf("[%s] %s", row.Counts, line)
			}
			buf.WriteString(fmt.Sprintf("   - %s\n", line))
		case row.Note != "":
			buf.WriteString(fmt.Sprintf("   - Note: %s\n", row.Note))
		}
	}
}

// SortedTiers returns the set's dances grouped by difficulty tier, each group
// alphabetized by title. Used by the CLI stats output.
func SortedTiers(set models.CollectionSet) map[models.Tier][]models.Dance {
	grouped := make(map[models.Tier][]models.Dance)
	seen := make(map[string]bool)

	for _, dances := range set {
		for _, d := range dances {
			if seen[d.ID] {
				continue
			}
			seen[d.ID] = true
			tier := d.Tier()
			grouped[tier] = append(grouped[tier], d)
		}
	}

	for tier := range grouped {
		sort.Slice(grouped[tier], func(i, j int) bool {
			return grouped[tier][i].Title < grouped[tier][j].Title
		})
	}
	return grouped
}
