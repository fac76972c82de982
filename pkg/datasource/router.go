package datasource

import (
	"github.com/go-chi/chi/v5"
)

// Router creates a chi.Router for the data source browsing API.
func Router(browser *Browser) chi.Router {
	r := chi.NewRouter()
	r.Get("/report-folders", ListReportFoldersHandler(browser))
	r.Get("/report-folders/{folderId}/reports", ListReportsInFolderHandler(browser))
	r.Get("/reports/{reportId}/columns", DescribeReportColumnsHandler(browser))
	r.Get("/objects/{objectName}/listviews", ListListViewsHandler(browser))
	r.Get("/listviews/{listViewId}/columns", DescribeListViewColumnsHandler(browser))
	return r
}
