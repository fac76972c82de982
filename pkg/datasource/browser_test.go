package datasource

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/massaction/configserver/pkg/discovery"
	"github.com/massaction/configserver/pkg/endpoint"
	"github.com/massaction/configserver/pkg/schema"
)

func setupTestBrowser(t *testing.T, handler http.Handler) (*Browser, *gorm.DB) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	endpoints := endpoint.NewStore(db)
	require.NoError(t, endpoints.AutoMigrate())
	registry := schema.NewRegistry(db)
	require.NoError(t, registry.AutoMigrate())

	if handler != nil {
		srv := httptest.NewServer(handler)
		t.Cleanup(srv.Close)
		require.NoError(t, db.Create(&endpoint.Endpoint{
			Name:    "prod",
			Label:   "Production",
			BaseURL: srv.URL,
		}).Error)
	}

	browser := NewBrowser(db, discovery.NewClient(endpoints, registry, nil), nil)
	require.NoError(t, browser.AutoMigrate())
	return browser, db
}

func TestCanonicalID(t *testing.T) {
	assert.Equal(t, "00O4x0000048wQA", CanonicalID("00O4x0000048wQAEAY"))
	assert.Equal(t, "00O4x0000048wQA", CanonicalID("00O4x0000048wQA"))
	assert.Equal(t, "", CanonicalID(""))
}

func TestListReportFoldersFiltersAndSorts(t *testing.T) {
	browser, db := setupTestBrowser(t, nil)
	// Developer-name order would put Sales first; the sort key is the label.
	require.NoError(t, db.Create(&[]ReportFolder{
		{ID: "00l4x000000A1aaAAC", DeveloperName: "AAA_Sales", Label: "Sales Reports", Type: FolderTypeReport},
		{ID: "00l4x000000A1bbAAC", DeveloperName: "ZZZ_Admin", Label: "Admin Reports", Type: FolderTypeReport},
		{ID: "00l4x000000A1ccAAC", DeveloperName: "", Label: "Private Reports", Type: FolderTypeReport},
		{ID: "00l4x000000A1ddAAC", DeveloperName: "Dashboards", Label: "Dashboards", Type: "Dashboard"},
	}).Error)

	folders, err := browser.ListReportFolders()
	require.NoError(t, err)
	require.Len(t, folders, 2, "system folders and non-report folders are excluded")
	assert.Equal(t, "Admin Reports", folders[0].Label)
	assert.Equal(t, "Sales Reports", folders[1].Label)
	assert.Len(t, folders[0].Value, 15)
}

func TestListReportsInFolderTabularOnly(t *testing.T) {
	browser, db := setupTestBrowser(t, nil)
	require.NoError(t, db.Create(&[]Report{
		{ID: "00O4x0000048wAAEAY", FolderID: "00l4x000000A1aa", Name: "Open Opportunities", Format: FormatTabular},
		{ID: "00O4x0000048wBBEAY", FolderID: "00l4x000000A1aa", Name: "Accounts by Region", Format: FormatTabular},
		{ID: "00O4x0000048wCCEAY", FolderID: "00l4x000000A1aa", Name: "Pipeline Matrix", Format: "Matrix"},
		{ID: "00O4x0000048wDDEAY", FolderID: "00l4x000000A1zz", Name: "Other Folder", Format: FormatTabular},
	}).Error)

	reports, err := browser.ListReportsInFolder("00l4x000000A1aa")
	require.NoError(t, err)
	require.Len(t, reports, 2)
	assert.Equal(t, "Accounts by Region", reports[0].Label)
	assert.Equal(t, "Open Opportunities", reports[1].Label)
	assert.Equal(t, "00O4x0000048wBB", reports[0].Value)
}

func TestDescribeReportColumns(t *testing.T) {
	browser, db := setupTestBrowser(t, nil)
	require.NoError(t, db.Create(&Report{
		ID:       "00O4x0000048wAA",
		FolderID: "00l4x000000A1aa",
		Name:     "Open Opportunities",
		Format:   FormatTabular,
		ColumnMetadata: `{"detailColumns":[
			{"label":"Opportunity Name","name":"OPPORTUNITY_NAME","dataType":"string"},
			{"label":"Amount","name":"AMOUNT","dataType":"currency"}
		]}`,
	}).Error)

	columns, err := browser.DescribeReportColumns("00O4x0000048wAAEAY")
	require.NoError(t, err)
	require.Len(t, columns, 2)
	assert.Equal(t, "OPPORTUNITY_NAME", columns[0].Value)
	assert.Equal(t, "currency", columns[1].DataType)
}

func TestDescribeReportColumnsBlankAndUnknown(t *testing.T) {
	browser, _ := setupTestBrowser(t, nil)

	columns, err := browser.DescribeReportColumns("")
	require.NoError(t, err)
	assert.Empty(t, columns)

	columns, err = browser.DescribeReportColumns("00O4x000000nope")
	require.NoError(t, err)
	assert.Empty(t, columns)
}

func TestReportBrowseRoundTripWithFullLengthIDs(t *testing.T) {
	browser, db := setupTestBrowser(t, nil)
	require.NoError(t, db.Create(&ReportFolder{
		ID: "00l4x000000A1aaAAC", DeveloperName: "Sales_Reports", Label: "Sales Reports", Type: FolderTypeReport,
	}).Error)
	require.NoError(t, db.Create(&Report{
		ID:       "00O4x0000048wQAEAY",
		FolderID: "00l4x000000A1aaAAC",
		Name:     "Open Opportunities",
		Format:   FormatTabular,
		ColumnMetadata: `{"detailColumns":[
			{"label":"Opportunity Name","name":"OPPORTUNITY_NAME","dataType":"string"}
		]}`,
	}).Error)

	// The full-length identifiers the upstream store returned must resolve
	// through the canonical values the pickers hand back.
	folders, err := browser.ListReportFolders()
	require.NoError(t, err)
	require.Len(t, folders, 1)

	reports, err := browser.ListReportsInFolder(folders[0].Value)
	require.NoError(t, err)
	require.Len(t, reports, 1)
	assert.Equal(t, "00O4x0000048wQA", reports[0].Value)

	columns, err := browser.DescribeReportColumns(reports[0].Value)
	require.NoError(t, err)
	require.Len(t, columns, 1)
	assert.Equal(t, "OPPORTUNITY_NAME", columns[0].Value)

	// The full-length variants themselves keep working as lookup keys.
	reports, err = browser.ListReportsInFolder("00l4x000000A1aaAAC")
	require.NoError(t, err)
	assert.Len(t, reports, 1)

	columns, err = browser.DescribeReportColumns("00O4x0000048wQAEAY")
	require.NoError(t, err)
	assert.Len(t, columns, 1)
}

func TestListListViewsQueryCompatibleOnly(t *testing.T) {
	browser, db := setupTestBrowser(t, nil)
	require.NoError(t, db.Create(&[]ListView{
		{ID: "00B4x000001SlaaAAC", ObjectName: "Contact", Name: "MyContacts", Label: "My Contacts", QueryCompatible: true},
		{ID: "00B4x000001SlbbAAC", ObjectName: "Contact", Name: "AllContacts", Label: "All Contacts", QueryCompatible: true},
		{ID: "00B4x000001SlccAAC", ObjectName: "Contact", Name: "RecentlyViewed", Label: "Recently Viewed", QueryCompatible: false},
		{ID: "00B4x000001SlddAAC", ObjectName: "Account", Name: "AllAccounts", Label: "All Accounts", QueryCompatible: true},
	}).Error)

	views, err := browser.ListListViewsForObject("Contact")
	require.NoError(t, err)
	require.Len(t, views, 2)
	assert.Equal(t, "All Contacts", views[0].Label)
	assert.Equal(t, "My Contacts", views[1].Label)
	assert.Len(t, views[0].Value, 15)
}

func TestDescribeListViewColumnsBlankID(t *testing.T) {
	browser, _ := setupTestBrowser(t, nil)

	columns, err := browser.DescribeListViewColumns(context.Background(), "prod", "")
	require.NoError(t, err)
	assert.Empty(t, columns)
}

func TestDescribeListViewColumnsRemote(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/v1/listviews/00B4x000001Slaa/columns", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"columns":[{"label":"Email","name":"Email","dataType":"email"}]}`))
	})

	browser, _ := setupTestBrowser(t, mux)

	// The full 18-character identifier normalizes to the canonical 15.
	columns, err := browser.DescribeListViewColumns(context.Background(), "prod", "00B4x000001SlaaAAC")
	require.NoError(t, err)
	require.Len(t, columns, 1)
	assert.Equal(t, "Email", columns[0].Value)
	assert.Equal(t, "email", columns[0].DataType)
}
