package datasource

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
)

// ListReportFoldersHandler handles GET /api/v1/datasources/report-folders
func ListReportFoldersHandler(browser *Browser) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		folders, err := browser.ListReportFolders()
		if err != nil {
			writeError(w, http.StatusInternalServerError, fmt.Sprintf("failed to list report folders: %v", err))
			return
		}
		writeJSON(w, http.StatusOK, folders)
	}
}

// ListReportsInFolderHandler handles GET /api/v1/datasources/report-folders/{folderId}/reports
func ListReportsInFolderHandler(browser *Browser) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		reports, err := browser.ListReportsInFolder(chi.URLParam(r, "folderId"))
		if err != nil {
			writeError(w, http.StatusInternalServerError, fmt.Sprintf("failed to list reports: %v", err))
			return
		}
		writeJSON(w, http.StatusOK, reports)
	}
}

// DescribeReportColumnsHandler handles GET /api/v1/datasources/reports/{reportId}/columns
func DescribeReportColumnsHandler(browser *Browser) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		columns, err := browser.DescribeReportColumns(chi.URLParam(r, "reportId"))
		if err != nil {
			writeError(w, http.StatusInternalServerError, fmt.Sprintf("failed to describe report columns: %v", err))
			return
		}
		writeJSON(w, http.StatusOK, columns)
	}
}

// ListListViewsHandler handles GET /api/v1/datasources/objects/{objectName}/listviews
func ListListViewsHandler(browser *Browser) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		views, err := browser.ListListViewsForObject(chi.URLParam(r, "objectName"))
		if err != nil {
			writeError(w, http.StatusInternalServerError, fmt.Sprintf("failed to list views: %v", err))
			return
		}
		writeJSON(w, http.StatusOK, views)
	}
}

// DescribeListViewColumnsHandler handles GET /api/v1/datasources/listviews/{listViewId}/columns
// Query params: endpoint
func DescribeListViewColumnsHandler(browser *Browser) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		listViewID := chi.URLParam(r, "listViewId")
		endpointName := r.URL.Query().Get("endpoint")
		if listViewID != "" && endpointName == "" {
			writeError(w, http.StatusBadRequest, "missing endpoint parameter")
			return
		}

		columns, err := browser.DescribeListViewColumns(r.Context(), endpointName, listViewID)
		if err != nil {
			writeError(w, http.StatusBadGateway, fmt.Sprintf("failed to describe list view columns: %v", err))
			return
		}
		writeJSON(w, http.StatusOK, columns)
	}
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
