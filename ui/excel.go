package ui

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	"trendtruth/domain/analysis"
)

// analysisSheet is the workbook tab holding one row per analyzed trend
const analysisSheet = "Analysis"

// healthSheet is the workbook tab holding per-source health statuses
const healthSheet = "Source Health"

var analysisHeaders = []string{
	"Platform", "Category", "Title", "URL", "Verdict",
	"Fake Probability", "Spread Index", "Credibility Score",
	"Credible Hits", "Total Hits", "Source Diversity", "Reasons",
}

// BuildWorkbook renders a batch as an xlsx workbook for offline review.
func BuildWorkbook(batch *analysis.Batch) (*bytes.Buffer, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", analysisSheet); err != nil {
		return nil, fmt.Errorf("failed to name analysis sheet: %w", err)
	}

	for col, header := range analysisHeaders {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return nil, fmt.Errorf("failed to address header cell: %w", err)
		}
		if err := f.SetCellValue(analysisSheet, cell, header); err != nil {
			return nil, fmt.Errorf("failed to write header: %w", err)
		}
	}

	for i, r := range batch.Results {
		row := []interface{}{
			r.Trend.Platform,
			r.Trend.Category,
			r.Trend.Title,
			r.Trend.URL,
			string(r.Verdict),
			r.FakeProbability,
			r.SpreadIndex,
			r.CredibilityScore,
			r.Evidence.CredibleHits,
			r.Evidence.TotalHits,
			r.Evidence.SourceDiversity,
			strings.Join(r.Reasons, "; "),
		}
		for col, value := range row {
			cell, err := excelize.CoordinatesToCellName(col+1, i+2)
			if err != nil {
				return nil, fmt.Errorf("failed to address result cell: %w", err)
			}
			if err := f.SetCellValue(analysisSheet, cell, value); err != nil {
				return nil, fmt.Errorf("failed to write result row: %w", err)
			}
		}
	}

	if _, err := f.NewSheet(healthSheet); err != nil {
		return nil, fmt.Errorf("failed to create health sheet: %w", err)
	}
	if err := f.SetCellValue(healthSheet, "A1", "Source"); err != nil {
		return nil, fmt.Errorf("failed to write health header: %w", err)
	}
	if err := f.SetCellValue(healthSheet, "B1", "Status"); err != nil {
		return nil, fmt.Errorf("failed to write health header: %w", err)
	}
	for i, status := range batch.SourceHealth {
		if err := f.SetCellValue(healthSheet, fmt.Sprintf("A%d", i+2), status.Name); err != nil {
			return nil, fmt.Errorf("failed to write health row: %w", err)
		}
		if err := f.SetCellValue(healthSheet, fmt.Sprintf("B%d", i+2), status.Status); err != nil {
			return nil, fmt.Errorf("failed to write health row: %w", err)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to serialize workbook: %w", err)
	}
	return buf, nil
}
