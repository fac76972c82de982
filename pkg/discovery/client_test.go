package discovery

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

	"github.com/massaction/configserver/pkg/endpoint"
	"github.com/massaction/configserver/pkg/schema"
)

func setupTestClient(t *testing.T, handler http.Handler) (*Client, *gorm.DB) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	endpoints := endpoint.NewStore(db)
	require.NoError(t, endpoints.AutoMigrate())
	registry := schema.NewRegistry(db)
	require.NoError(t, registry.AutoMigrate())

	baseURL := "http://127.0.0.1:1" // unroutable unless a test server is given
	if handler != nil {
		srv := httptest.NewServer(handler)
		t.Cleanup(srv.Close)
		baseURL = srv.URL
	}
	require.NoError(t, db.Create(&endpoint.Endpoint{
		Name:    "prod",
		Label:   "Production",
		BaseURL: baseURL,
	}).Error)

	return NewClient(endpoints, registry, nil), db
}

func TestParseCategory(t *testing.T) {
	for _, valid := range []string{
		"guided-process", "scheduled-notification",
		"lightweight-workflow-trigger", "generic-invocable",
	} {
		_, err := ParseCategory(valid)
		assert.NoError(t, err, valid)
	}

	_, err := ParseCategory("apex-trigger")
	assert.Error(t, err)
}

func TestListCapableObjectsFiltersAndSorts(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/v1/capabilities/guided-process/objects", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"objects":[
			{"objectName":"Zebra__c"},
			{"objectName":"Account"},
			{"objectName":"Dropped__c"}
		]}`))
	})

	client, db := setupTestClient(t, mux)
	require.NoError(t, db.Create(&[]schema.ObjectDef{
		{Name: "Zebra__c", Label: "Animal"},
		{Name: "Account", Label: "Account"},
		// Dropped__c deliberately absent from the local schema.
	}).Error)

	objects, err := client.ListCapableObjects(context.Background(), "prod", CategoryGuidedProcess)
	require.NoError(t, err)
	require.Len(t, objects, 2, "objects absent from local schema are excluded")
	assert.Equal(t, "Account", objects[0].Label)
	assert.Equal(t, "Animal", objects[1].Label)
}

func TestListCapableObjectsLabelTieBreaksOnName(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/v1/capabilities/generic-invocable/objects", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"objects":[{"objectName":"Task_B__c"},{"objectName":"Task_A__c"}]}`))
	})

	client, db := setupTestClient(t, mux)
	require.NoError(t, db.Create(&[]schema.ObjectDef{
		{Name: "Task_A__c", Label: "Task"},
		{Name: "Task_B__c", Label: "Task"},
	}).Error)

	objects, err := client.ListCapableObjects(context.Background(), "prod", CategoryGenericInvocable)
	require.NoError(t, err)
	require.Len(t, objects, 2)
	assert.Equal(t, "Task_A__c", objects[0].ObjectName)
	assert.Equal(t, "Task_B__c", objects[1].ObjectName)
}

func TestListOperationsPreservesRemoteOrder(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/v1/capabilities/guided-process/objects/Account/operations", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"operations":[
			{"label":"Welcome Outreach","name":"Welcome_Outreach"},
			{"label":"Account Cleanup","name":"Account_Cleanup"}
		]}`))
	})

	client, _ := setupTestClient(t, mux)

	operations, err := client.ListOperations(context.Background(), "prod", CategoryGuidedProcess, "Account")
	require.NoError(t, err)
	require.Len(t, operations, 2)
	assert.Equal(t, "Welcome_Outreach", operations[0].Name)
	assert.Equal(t, "Account_Cleanup", operations[1].Name)
}

func TestListOperationInputsUppercasesDataType(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/v1/capabilities/scheduled-notification/operations/Follow_Up/describe", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Contact", r.URL.Query().Get("objectName"))
		_, _ = w.Write([]byte(`{"inputs":[
			{"label":"Subject","name":"Subject","dataType":"string","required":true},
			{"label":"Who","name":"WhoId","dataType":"id","required":false,"description":"Recipient record."}
		]}`))
	})

	client, _ := setupTestClient(t, mux)

	inputs, err := client.ListOperationInputs(context.Background(), "prod", CategoryScheduledNotification, "Follow_Up", "Contact")
	require.NoError(t, err)
	require.Len(t, inputs, 2)
	assert.Equal(t, "STRING", inputs[0].DataType)
	assert.Equal(t, "ID", inputs[1].DataType)
	assert.True(t, inputs[0].Required)
	assert.Equal(t, "Recipient record.", inputs[1].Description)
}

func TestWorkflowTriggerInputsAreSynthetic(t *testing.T) {
	// No test server: the workflow-trigger contract never touches the
	// remote service, whatever the operation or object arguments are.
	client, _ := setupTestClient(t, nil)

	for _, operationName := range []string{"Escalate", "Anything_At_All", ""} {
		inputs, err := client.ListOperationInputs(context.Background(), "prod", CategoryWorkflowTrigger, operationName, "Case")
		require.NoError(t, err)
		require.Len(t, inputs, 1)
		assert.Equal(t, "ContextId", inputs[0].Name)
		assert.Equal(t, "Record ID", inputs[0].Label)
		assert.Equal(t, "ID", inputs[0].DataType)
		assert.True(t, inputs[0].Required)
	}
}

func TestDiscoveryErrorPropagates(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "capability backend unavailable", http.StatusServiceUnavailable)
	})

	client, _ := setupTestClient(t, mux)

	_, err := client.ListCapableObjects(context.Background(), "prod", CategoryGuidedProcess)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "503")
}

func TestUnknownEndpointFails(t *testing.T) {
	client, _ := setupTestClient(t, nil)

	_, err := client.ListOperations(context.Background(), "missing", CategoryGuidedProcess, "Account")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not configured")
}

func TestDescribeListViewColumns(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/v1/listviews/00B4x000001Slxx/columns", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"columns":[
			{"label":"Full Name","name":"Name","dataType":"string"},
			{"label":"Email","name":"Email","dataType":"email"}
		]}`))
	})

	client, _ := setupTestClient(t, mux)

	columns, err := client.DescribeListViewColumns(context.Background(), "prod", "00B4x000001Slxx")
	require.NoError(t, err)
	require.Len(t, columns, 2)
	assert.Equal(t, "Name", columns[0].Name)
	assert.Equal(t, "email", columns[1].DataType)
}
