package constants

import "time"

// Session
const (
	SessionTokenExpiry = 24 * time.Hour
)

// API version
const APIVersion = "0.1.0"

// Default ports
const DefaultPort = "8080"

// Date format
const DateFormat = "2006-01-02"
