package massaction

import (
	"encoding/json"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupTestStore(t *testing.T) (*Store, *gorm.DB) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	store := NewStore(db, nil)
	require.NoError(t, store.AutoMigrate())
	return store, db
}

const validConfig = `{
	"name": "Notify Contacts",
	"active": true,
	"targetCategory": "scheduled-notification",
	"targetAction": "Follow_Up",
	"targetObject": "Contact",
	"sourceType": "tabular-report",
	"sourceReportId": "00O4x0000048wQA"
}`

// configJSONWithID re-serializes a loaded configuration header so a
// follow-up save addresses the existing record.
func configJSONWithID(detail *ConfigurationDetail) ([]byte, error) {
	return json.Marshal(detail.Configuration)
}

func TestSaveConfigurationRoundTripMinusBlanks(t *testing.T) {
	store, _ := setupTestStore(t)

	mappings := `{"Subject": "", "WhoId": "Contact__r.Email"}`
	result, err := store.SaveConfiguration([]byte(validConfig), []byte(mappings))
	require.NoError(t, err)
	require.True(t, result.Success)
	require.NotEmpty(t, result.RecordID)

	detail, err := store.LoadConfiguration(result.RecordID)
	require.NoError(t, err)
	require.NotNil(t, detail)

	assert.Equal(t, "Notify Contacts", detail.Name)
	assert.Equal(t, SourceTypeReport, detail.SourceType)
	// Blank source fields never produce a row; the unmapped input is absent.
	assert.Equal(t, map[string]string{"WhoId": "Contact__r.Email"}, detail.FieldMappings)
}

func TestSaveConfigurationIdempotent(t *testing.T) {
	store, db := setupTestStore(t)

	mappings := `{"WhoId": "Contact__r.Email", "Subject": "SUBJECT_COL"}`
	first, err := store.SaveConfiguration([]byte(validConfig), []byte(mappings))
	require.NoError(t, err)

	// Re-submit the identical payloads for the now-existing record.
	detail, err := store.LoadConfiguration(first.RecordID)
	require.NoError(t, err)
	updated, err := configJSONWithID(detail)
	require.NoError(t, err)

	second, err := store.SaveConfiguration(updated, []byte(mappings))
	require.NoError(t, err)
	assert.Equal(t, first.RecordID, second.RecordID)

	var count int64
	require.NoError(t, db.Model(&FieldMapping{}).
		Where("configuration_id = ?", first.RecordID).Count(&count).Error)
	assert.EqualValues(t, 2, count, "rows are replaced, never accumulated")
}

func TestSaveConfigurationReplacesMappingSet(t *testing.T) {
	store, _ := setupTestStore(t)

	first, err := store.SaveConfiguration([]byte(validConfig), []byte(`{"WhoId": "EMAIL", "Subject": "SUBJECT_COL"}`))
	require.NoError(t, err)

	detail, err := store.LoadConfiguration(first.RecordID)
	require.NoError(t, err)
	updated, err := configJSONWithID(detail)
	require.NoError(t, err)

	_, err = store.SaveConfiguration(updated, []byte(`{"WhoId": "PHONE"}`))
	require.NoError(t, err)

	reloaded, err := store.LoadConfiguration(first.RecordID)
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"WhoId": "PHONE"}, reloaded.FieldMappings)
}

func TestSaveConfigurationRejectsUnknownFields(t *testing.T) {
	store, _ := setupTestStore(t)

	payload := `{"name": "X", "targetCategory": "guided-process", "bogusField": 1}`
	_, err := store.SaveConfiguration([]byte(payload), []byte(`{}`))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidPayload)
}

func TestSaveConfigurationRejectsMalformedMappings(t *testing.T) {
	store, _ := setupTestStore(t)

	_, err := store.SaveConfiguration([]byte(validConfig), []byte(`{"WhoId": 42}`))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidPayload)
}

func TestSaveConfigurationRejectsUnknownCategory(t *testing.T) {
	store, _ := setupTestStore(t)

	payload := `{"name": "X", "targetCategory": "apex-trigger", "targetAction": "Y", "sourceType": "tabular-report"}`
	_, err := store.SaveConfiguration([]byte(payload), []byte(`{}`))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidPayload)
}

func TestSaveFailureRollsBackHeaderUpsert(t *testing.T) {
	store, db := setupTestStore(t)

	first, err := store.SaveConfiguration([]byte(validConfig), []byte(`{"WhoId": "EMAIL"}`))
	require.NoError(t, err)

	// Force the mapping replacement to fail mid-transaction.
	require.NoError(t, db.Migrator().DropTable(&FieldMapping{}))

	var header Configuration
	require.NoError(t, db.First(&header, "id = ?", first.RecordID).Error)
	header.Name = "Renamed Mid-Failure"
	updated, err := json.Marshal(header)
	require.NoError(t, err)

	_, err = store.SaveConfiguration(updated, []byte(`{"WhoId": "EMAIL"}`))
	require.Error(t, err)

	// The header update from the failed call must be rolled back too.
	var restored Configuration
	require.NoError(t, db.First(&restored, "id = ?", first.RecordID).Error)
	assert.Equal(t, "Notify Contacts", restored.Name)
}

func TestLoadConfigurationNotFound(t *testing.T) {
	store, _ := setupTestStore(t)

	detail, err := store.LoadConfiguration("no-such-id")
	require.NoError(t, err)
	assert.Nil(t, detail)
}
