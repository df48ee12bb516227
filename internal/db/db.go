// Package db holds small helpers for connecting to Postgres.
package db

import "fmt"

// FormatConnectionString builds a lib/pq connection string from individual
// settings. sslMode may be empty, in which case the driver default applies.
func FormatConnectionString(host string, port int, name, user, password, sslMode string) string {
	s := fmt.Sprintf("host=%s port=%d dbname=%s user=%s password=%s", host, port, name, user, password)
	if sslMode != "" {
		s += fmt.Sprintf(" sslmode=%s", sslMode)
	}
	return s
}
