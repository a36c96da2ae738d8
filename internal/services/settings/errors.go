package settings

import "errors"

var (
	// ErrSettingNotFound means the referenced settings row does not exist.
	ErrSettingNotFound = errors.New("setting not found")

	// ErrNoActiveSetting means no row in the table is currently active.
	// Callers must treat this as a distinct, reportable condition, not a
	// silent default.
	ErrNoActiveSetting = errors.New("no active setting configured")

	// ErrLastActiveSetting blocks deleting the sole active row; a different
	// row must be activated first.
	ErrLastActiveSetting = errors.New("cannot delete the only active setting")
)
