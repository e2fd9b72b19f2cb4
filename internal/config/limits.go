package config

const (
	// MaxUsernameLength is the maximum length for usernames.
	// Kept short for URL and display friendliness.
	MaxUsernameLength = 30

	// MinPasswordLength is the minimum accepted password length.
	MinPasswordLength = 8

	// MaxProjectNameLength is the maximum length for project names.
	// Limited to fit in PostgreSQL VARCHAR(100) and provide reasonable
	// UX (names should be short and descriptive).
	MaxProjectNameLength = 100

	// MaxFolderNameLength is the maximum length for folder names.
	MaxFolderNameLength = 100

	// MaxFileNameLength is the maximum length for file names and sub names.
	MaxFileNameLength = 100

	// MaxDescriptionLength is the maximum length for project descriptions.
	MaxDescriptionLength = 1000

	// MaxSectionLength is the maximum length for a section's text body.
	MaxSectionLength = 20000
)
