// internal/config/database.go
package config

import (
	"fmt"
	"strings"
)

// DSN builds the postgres keyword/value connection string. Empty optional settings are left out.
func (d *DatabaseConfig) DSN() string {
	parts := []string{
		"host=" + d.Host,
		"port=" + d.Port,
		"user=" + d.User,
	}
	if d.Password != "" {
		parts = append(parts, "password="+quoteDSNValue(d.Password))
	}
	parts = append(parts, "dbname="+d.Database, "sslmode="+d.SSLMode)
	if d.TimeZone != "" {
		parts = append(parts, "TimeZone="+d.TimeZone)
	}
	parts = append(parts, "application_name=packscan")
	return strings.Join(parts, " ")
}

func quoteDSNValue(v string) string {
	if !strings.ContainsAny(v, " '\\") {
		return v
	}
	v = strings.ReplaceAll(v, `\`, `\\`)
	v = strings.ReplaceAll(v, `'`, `\'`)
	return fmt.Sprintf("'%s'", v)
}
