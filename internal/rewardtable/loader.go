package rewardtable

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/lunefall/rewardengine/internal/domain"
	"github.com/lunefall/rewardengine/internal/validation"
)

// SchemaDir holds the JSON schemas the config documents are checked against.
// A document whose schema file is absent skips the schema pass.
const SchemaDir = "configs/schemas"

// Sentinel errors for table loading
var (
	ErrInvalidConfig     = errors.New("invalid configuration")
	ErrDuplicateKey      = errors.New("duplicate key")
	ErrDanglingReference = errors.New("dangling table reference")
	ErrReferenceCycle    = errors.New("reward table reference cycle")
	ErrWeightMismatch    = errors.New("total weight does not match candidate weights")
	ErrDuplicateGroup    = errors.New("duplicate campaign group")
)

// TablesConfig is the JSON document holding all reward rows.
type TablesConfig struct {
	Version     string             `json:"version"`
	Description string             `json:"description"`
	Rows        []domain.RewardRow `json:"rows" validate:"required,dive"`
}

// ItemTypesConfig is the JSON document holding all item type definitions.
type ItemTypesConfig struct {
	Version string            `json:"version"`
	Types   []domain.ItemType `json:"types" validate:"required,dive"`
}

// CampaignsConfig is the JSON document holding all gacha campaign definitions.
type CampaignsConfig struct {
	Version   string                  `json:"version"`
	Campaigns []domain.CampaignConfig `json:"campaigns" validate:"required,dive"`
}

// Loader handles loading and validating static reward data
type Loader interface {
	Load(tablesPath, itemTypesPath, campaignsPath string) (*Registry, error)
}

type tableLoader struct {
	validate *validator.Validate
	schemas  validation.SchemaValidator
}

// NewLoader creates a new Loader instance
func NewLoader() Loader {
	return &tableLoader{
		validate: validator.New(),
		schemas:  validation.NewSchemaValidator(),
	}
}

// Load reads the three JSON documents, validates them as a whole and builds the
// immutable Registry the resolution engine reads from.
func (l *tableLoader) Load(tablesPath, itemTypesPath, campaignsPath string) (*Registry, error) {
	var tables TablesConfig
	if err := l.loadJSON(tablesPath, &tables); err != nil {
		return nil, fmt.Errorf("reward tables: %w", err)
	}

	var itemTypes ItemTypesConfig
	if err := l.loadJSON(itemTypesPath, &itemTypes); err != nil {
		return nil, fmt.Errorf("item types: %w", err)
	}

	var campaigns CampaignsConfig
	if err := l.loadJSON(campaignsPath, &campaigns); err != nil {
		return nil, fmt.Errorf("campaigns: %w", err)
	}

	reg, err := BuildRegistry(&tables, &itemTypes, &campaigns)
	if err != nil {
		return nil, err
	}
	return reg, nil
}

func (l *tableLoader) loadJSON(path string, out any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}
	if schemaPath := schemaPathFor(path); validation.SchemaExists(schemaPath) {
		if err := l.schemas.ValidateBytes(data, schemaPath); err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
		}
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("failed to parse config: %w", err)
	}
	if err := l.validate.Struct(out); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	return nil
}

// schemaPathFor maps configs/reward_tables.json to
// configs/schemas/reward_tables.schema.json.
func schemaPathFor(dataPath string) string {
	name := strings.TrimSuffix(filepath.Base(dataPath), ".json")
	return filepath.Join(SchemaDir, name+".schema.json")
}
