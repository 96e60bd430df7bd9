package adapter

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	m "rsdisco.dev/pkg/rsdisco/internal/model"
)

// InventoryVersion is the format version written into exported inventories.
const InventoryVersion = 1

const inventoryPerm = 0o644

// ErrUnknownInventoryFormat is returned for export paths whose extension is
// neither json nor yaml.
var ErrUnknownInventoryFormat = errors.New("unknown inventory format")

// InventoryStore persists discovered inventories so they can be compared or
// consumed by other tools.
type InventoryStore interface {
	SaveInventory(path m.Path, inventory m.Inventory) error
	LoadInventory(path m.Path) (m.Inventory, error)
}

// FSInventoryStore stores inventories through a SourceFSAdapter, choosing the
// encoding from the file extension.
type FSInventoryStore struct {
	fs SourceFSAdapter
}

// NewInventoryStore builds an InventoryStore backed by fs.
func NewInventoryStore(fs SourceFSAdapter) *FSInventoryStore {
	return &FSInventoryStore{fs: fs}
}

// IsInventoryFile reports whether path looks like an exported inventory.
func IsInventoryFile(path m.Path) bool {
	_, err := inventoryFormat(path)
	return err == nil
}

// SaveInventory encodes inventory as JSON or YAML and writes it to path.
func (s *FSInventoryStore) SaveInventory(path m.Path, inventory m.Inventory) error {
	format, err := inventoryFormat(path)
	if err != nil {
		return err
	}

	if inventory.Version == 0 {
		inventory.Version = InventoryVersion
	}

	data, err := EncodeInventory(format, inventory)
	if err != nil {
		return fmt.Errorf("encode inventory: %w", err)
	}

	if err := s.fs.WriteFile(path, data, inventoryPerm); err != nil {
		slog.Error("failed to write inventory", "path", path, "error", err)
		return fmt.Errorf("write inventory %s: %w", path, err)
	}

	slog.Info("inventory saved", "path", path, "units", len(inventory.Units), "tests", inventory.CountTests())

	return nil
}

// LoadInventory reads an inventory previously written by SaveInventory.
func (s *FSInventoryStore) LoadInventory(path m.Path) (m.Inventory, error) {
	format, err := inventoryFormat(path)
	if err != nil {
		return m.Inventory{}, err
	}

	data, err := s.fs.ReadFile(path)
	if err != nil {
		return m.Inventory{}, fmt.Errorf("read inventory %s: %w", path, err)
	}

	var inventory m.Inventory

	switch format {
	case "json":
		err = json.Unmarshal(data, &inventory)
	default:
		err = yaml.Unmarshal(data, &inventory)
	}

	if err != nil {
		return m.Inventory{}, fmt.Errorf("decode inventory %s: %w", path, err)
	}

	if inventory.Version > InventoryVersion {
		return m.Inventory{}, fmt.Errorf("inventory %s has unsupported version %d", path, inventory.Version)
	}

	return inventory, nil
}

// EncodeInventory renders inventory as "json" (indented) or "yaml".
func EncodeInventory(format string, inventory m.Inventory) ([]byte, error) {
	switch format {
	case "json":
		data, err := json.MarshalIndent(inventory, "", "  ")
		if err != nil {
			return nil, err
		}

		return append(data, '\n'), nil
	case "yaml":
		return yaml.Marshal(inventory)
	}

	return nil, fmt.Errorf("%w: %s", ErrUnknownInventoryFormat, format)
}

func inventoryFormat(path m.Path) (string, error) {
	switch strings.ToLower(filepath.Ext(string(path))) {
	case ".json":
		return "json", nil
	case ".yaml", ".yml":
		return "yaml", nil
	}

	return "", fmt.Errorf("%w: %s", ErrUnknownInventoryFormat, path)
}
