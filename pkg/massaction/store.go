package massaction

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sort"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/massaction/configserver/pkg/discovery"
)

// ErrInvalidPayload marks a submitted payload that failed strict
// deserialization; unknown fields or malformed JSON are rejected outright.
var ErrInvalidPayload = errors.New("invalid payload")

// Store provides database operations for mass-action configurations.
type Store struct {
	db     *gorm.DB
	logger *slog.Logger
}

// NewStore creates a new Store.
func NewStore(db *gorm.DB, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{db: db, logger: logger}
}

// AutoMigrate creates or updates the configuration tables.
func (s *Store) AutoMigrate() error {
	return s.db.AutoMigrate(&Configuration{}, &FieldMapping{})
}

// SaveConfiguration persists a configuration header and its full mapping
// set as one unit. The header is inserted when the payload carries no
// identifier and updated otherwise; existing mapping rows are deleted and
// the submitted non-blank mappings inserted in their place. Any failure
// rolls the whole transaction back and surfaces only the error message;
// detail stays in the server log.
//
// Concurrent saves of the same identifier are last-writer-wins at mapping
// set granularity; no version check is performed before overwrite.
func (s *Store) SaveConfiguration(configurationPayload, mappingPayload []byte) (*SaveResult, error) {
	cfg, err := decodeConfiguration(configurationPayload)
	if err != nil {
		return nil, err
	}
	mappings, err := decodeMappings(mappingPayload)
	if err != nil {
		return nil, err
	}

	if _, err := discovery.ParseCategory(cfg.TargetCategory); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPayload, err)
	}

	txErr := s.db.Transaction(func(tx *gorm.DB) error {
		if cfg.ID == "" {
			cfg.ID = uuid.New().String()
			if err := tx.Create(cfg).Error; err != nil {
				return fmt.Errorf("insert configuration: %w", err)
			}
		} else if err := tx.Save(cfg).Error; err != nil {
			return fmt.Errorf("update configuration %q: %w", cfg.ID, err)
		}

		if err := tx.Where("configuration_id = ?", cfg.ID).Delete(&FieldMapping{}).Error; err != nil {
			return fmt.Errorf("delete field mappings of %q: %w", cfg.ID, err)
		}

		rows := buildMappingRows(cfg.ID, mappings)
		if len(rows) > 0 {
			if err := tx.Create(&rows).Error; err != nil {
				return fmt.Errorf("insert field mappings of %q: %w", cfg.ID, err)
			}
		}
		return nil
	})
	if txErr != nil {
		s.logger.Error("save configuration failed", "configurationId", cfg.ID, "error", txErr)
		// Message only; transaction detail is not exposed to the caller.
		return nil, fmt.Errorf("save configuration: %v", txErr)
	}

	return &SaveResult{Success: true, RecordID: cfg.ID}, nil
}

// LoadConfiguration retrieves a configuration and its mapping set. Returns
// nil when no configuration with that identifier exists; callers check for
// emptiness rather than an error signal.
func (s *Store) LoadConfiguration(id string) (*ConfigurationDetail, error) {
	var cfg Configuration
	if err := s.db.First(&cfg, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("load configuration %q: %w", id, err)
	}

	rows, err := s.ListMappings(id)
	if err != nil {
		return nil, err
	}

	detail := &ConfigurationDetail{
		Configuration: cfg,
		FieldMappings: make(map[string]string, len(rows)),
	}
	for _, row := range rows {
		detail.FieldMappings[row.TargetFieldName] = row.SourceFieldName
	}
	return detail, nil
}

// ListMappings returns the mapping rows of a configuration ordered by
// target input name.
func (s *Store) ListMappings(configurationID string) ([]FieldMapping, error) {
	var rows []FieldMapping
	err := s.db.
		Where("configuration_id = ?", configurationID).
		Order("target_field_name ASC").
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("list field mappings of %q: %w", configurationID, err)
	}
	return rows, nil
}

// decodeConfiguration strictly deserializes a configuration payload;
// unknown fields are a hard error, not ignored.
func decodeConfiguration(payload []byte) (*Configuration, error) {
	dec := json.NewDecoder(bytes.NewReader(payload))
	dec.DisallowUnknownFields()

	var cfg Configuration
	if err := dec.Decode(&cfg); err != nil {
		return nil, fmt.Errorf("%w: decode configuration: %v", ErrInvalidPayload, err)
	}
	return &cfg, nil
}

// decodeMappings strictly deserializes the target-input-name to
// source-field-name mapping payload.
func decodeMappings(payload []byte) (map[string]string, error) {
	dec := json.NewDecoder(bytes.NewReader(payload))
	dec.DisallowUnknownFields()

	var mappings map[string]string
	if err := dec.Decode(&mappings); err != nil {
		return nil, fmt.Errorf("%w: decode field mappings: %v", ErrInvalidPayload, err)
	}
	return mappings, nil
}

// buildMappingRows constructs the replacement row set. A blank source field
// means the input is unmapped: represented by absence of a row, never by an
// empty-valued one. Rows are built in target name order so inserts are
// deterministic.
func buildMappingRows(configurationID string, mappings map[string]string) []FieldMapping {
	targets := make([]string, 0, len(mappings))
	for target := range mappings {
		targets = append(targets, target)
	}
	sort.Strings(targets)

	rows := make([]FieldMapping, 0, len(targets))
	for _, target := range targets {
		source := mappings[target]
		if source == "" {
			continue
		}
		rows = append(rows, FieldMapping{
			ConfigurationID: configurationID,
			TargetFieldName: target,
			SourceFieldName: source,
		})
	}
	return rows
}
