package adapter

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	m "github.com/mouse-blink/guardpatch/internal/model"
)

// ErrNoRunID is returned when saving a report that was never assigned a run id.
var ErrNoRunID = errors.New("report has no run id")

// ReportStore persists and retrieves run reports.
type ReportStore interface {
	SaveReport(dir m.Path, report m.RunReport) (m.Path, error)
	LoadReports(dir m.Path) ([]m.RunReport, error)
}

// LocalReportStore keeps one YAML file per run under a directory.
type LocalReportStore struct{}

// NewReportStore constructs a ReportStore implementation.
func NewReportStore() ReportStore {
	return &LocalReportStore{}
}

// SaveReport writes report to dir/<run-id>.yaml, creating dir if needed.
func (rs *LocalReportStore) SaveReport(dir m.Path, report m.RunReport) (m.Path, error) {
	if report.RunID == "" {
		return "", ErrNoRunID
	}

	if err := os.MkdirAll(string(dir), 0o750); err != nil {
		return "", fmt.Errorf("create reports dir: %w", err)
	}

	data, err := yaml.Marshal(report)
	if err != nil {
		return "", fmt.Errorf("marshal report: %w", err)
	}

	path := filepath.Join(string(dir), report.RunID+".yaml")
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return "", fmt.Errorf("write report: %w", err)
	}

	return m.Path(path), nil
}

// LoadReports reads every report in dir, oldest first. A missing directory
// holds no reports.
func (rs *LocalReportStore) LoadReports(dir m.Path) ([]m.RunReport, error) {
	entries, err := os.ReadDir(string(dir))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}

		return nil, err
	}

	var reports []m.RunReport

	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".yaml") {
			continue
		}

		path := filepath.Join(string(dir), entry.Name())

		// #nosec G304 - path is inside the configured reports directory
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}

		var report m.RunReport
		if err := yaml.Unmarshal(data, &report); err != nil {
			return nil, fmt.Errorf("decode %s: %w", path, err)
		}

		reports = append(reports, report)
	}

	sort.SliceStable(reports, func(i, j int) bool {
		return reports[i].StartedAt.Before(reports[j].StartedAt)
	})

	return reports, nil
}
