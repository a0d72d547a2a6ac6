package storage

import (
	"database/sql"
	"fmt"

	"github.com/julianstephens/habitual/internal/logger"
	"github.com/julianstephens/habitual/internal/models"
)

// ScanSettings reads the key/value rows of the settings table. A table
// without rows is ErrNotFound.
func ScanSettings(rows *sql.Rows) (models.Settings, error) {
	var settings models.Settings
	found := false
	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return models.Settings{}, err
		}
		if !settings.SetRow(key, value) {
			logger.Debug("ignoring unknown setting", "key", key)
		}
		found = true
	}
	if err := rows.Err(); err != nil {
		return models.Settings{}, err
	}
	if !found {
		return models.Settings{}, fmt.Errorf("settings: %w", ErrNotFound)
	}
	return settings, nil
}
