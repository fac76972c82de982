package datasource

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"gorm.io/gorm"

	"github.com/massaction/configserver/pkg/discovery"
)

// Browser enumerates the available bulk data sources and describes their
// output columns. Report metadata is locally introspectable; list view
// columns require a remote describe through the capability service.
type Browser struct {
	db        *gorm.DB
	discovery *discovery.Client
	logger    *slog.Logger
}

// NewBrowser creates a new Browser.
func NewBrowser(db *gorm.DB, client *discovery.Client, logger *slog.Logger) *Browser {
	if logger == nil {
		logger = slog.Default()
	}
	return &Browser{db: db, discovery: client, logger: logger}
}

// AutoMigrate creates or updates the data source tables.
func (b *Browser) AutoMigrate() error {
	return b.db.AutoMigrate(&ReportFolder{}, &Report{}, &ListView{})
}

// ListReportFolders returns report-type folders that carry a developer
// name, sorted by display label. Folders without one are system-managed.
func (b *Browser) ListReportFolders() ([]Option, error) {
	var folders []ReportFolder
	err := b.db.
		Where("type = ? AND developer_name <> ''", FolderTypeReport).
		Order("label ASC").
		Find(&folders).Error
	if err != nil {
		return nil, fmt.Errorf("list report folders: %w", err)
	}

	options := make([]Option, len(folders))
	for i, f := range folders {
		options[i] = Option{Label: f.Label, Value: CanonicalID(f.ID)}
	}
	return options, nil
}

// ListReportsInFolder returns the tabular reports of a folder sorted by
// name. Non-tabular formats are not valid bulk data sources.
func (b *Browser) ListReportsInFolder(folderID string) ([]Option, error) {
	var reports []Report
	err := b.db.
		Where("folder_id = ? AND format = ?", CanonicalID(folderID), FormatTabular).
		Order("name ASC").
		Find(&reports).Error
	if err != nil {
		return nil, fmt.Errorf("list reports in folder %q: %w", folderID, err)
	}

	options := make([]Option, len(reports))
	for i, rp := range reports {
		options[i] = Option{Label: rp.Name, Value: CanonicalID(rp.ID)}
	}
	return options, nil
}

// reportExtendedMetadata is the structural metadata stored for a report by
// the report describe API. Detail columns appear in report-defined order.
type reportExtendedMetadata struct {
	DetailColumns []struct {
		Label    string `json:"label"`
		Name     string `json:"name"`
		DataType string `json:"dataType"`
	} `json:"detailColumns"`
}

// DescribeReportColumns returns the output columns of a report from its
// stored extended metadata. A blank report ID, or an unknown one, yields an
// empty list rather than an error.
func (b *Browser) DescribeReportColumns(reportID string) ([]Column, error) {
	if reportID == "" {
		return []Column{}, nil
	}

	var report Report
	if err := b.db.First(&report, "id = ?", CanonicalID(reportID)).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return []Column{}, nil
		}
		return nil, fmt.Errorf("get report %q: %w", reportID, err)
	}

	if report.ColumnMetadata == "" {
		return []Column{}, nil
	}

	var meta reportExtendedMetadata
	if err := json.Unmarshal([]byte(report.ColumnMetadata), &meta); err != nil {
		return nil, fmt.Errorf("decode report metadata of %q: %w", reportID, err)
	}

	columns := make([]Column, len(meta.DetailColumns))
	for i, dc := range meta.DetailColumns {
		columns[i] = Column{Label: dc.Label, Value: dc.Name, DataType: dc.DataType}
	}
	return columns, nil
}

// ListListViewsForObject returns the query-compatible list views of an
// object sorted by name. A view built on criteria not expressible as a
// structured query cannot drive a bulk execution and is excluded.
func (b *Browser) ListListViewsForObject(objectName string) ([]Option, error) {
	var views []ListView
	err := b.db.
		Where("object_name = ? AND query_compatible = ?", objectName, true).
		Order("name ASC").
		Find(&views).Error
	if err != nil {
		return nil, fmt.Errorf("list views for object %q: %w", objectName, err)
	}

	options := make([]Option, len(views))
	for i, v := range views {
		label := v.Label
		if label == "" {
			label = v.Name
		}
		options[i] = Option{Label: label, Value: CanonicalID(v.ID)}
	}
	return options, nil
}

// DescribeListViewColumns returns the output columns of a list view via a
// remote describe call. A blank list view ID yields an empty list.
func (b *Browser) DescribeListViewColumns(ctx context.Context, endpointName, listViewID string) ([]Column, error) {
	if listViewID == "" {
		return []Column{}, nil
	}

	described, err := b.discovery.DescribeListViewColumns(ctx, endpointName, CanonicalID(listViewID))
	if err != nil {
		return nil, err
	}

	columns := make([]Column, len(described))
	for i, d := range described {
		columns[i] = Column{Label: d.Label, Value: d.Name, DataType: d.DataType}
	}
	return columns, nil
}
