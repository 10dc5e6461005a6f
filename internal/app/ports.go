package app

import (
	"context"
	"io"

	"github.com/alexanderramin/epcrisk/internal/domain"
	"github.com/alexanderramin/epcrisk/internal/importer"
)

type AssessRiskUseCase interface {
	Assess(ctx context.Context, req RiskRequest) (*RiskResponse, error)
}

type ExportUseCase interface {
	WriteMilestoneCSV(ctx context.Context, w io.Writer, req RiskRequest) error
	WriteSpendCSV(ctx context.Context, w io.Writer, projectID string) error
}

type ImportResult struct {
	Project        *domain.Project
	MilestoneCount int
	LogCount       int
	// Merged counts legacy logs summed into another entry for the same day.
	Merged int
	// Skipped lists legacy rows that could not be mapped, with the reason.
	Skipped []string
}

type ImportLegacyUseCase interface {
	ImportLegacyFile(ctx context.Context, path string, opts importer.Options) (*ImportResult, error)
	ImportLegacy(ctx context.Context, store *importer.LegacyStore, opts importer.Options) (*ImportResult, error)
}
