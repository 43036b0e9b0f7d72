package config

import (
	"fmt"
	"net/url"
	"os"
	"strings"

	"edakit/internal/errors"

	"gopkg.in/yaml.v3"
)

// Credentials mirrors the credentials.yaml file handed out with the database.
// The RDS_* keys match the file the analysts already use.
type Credentials struct {
	Host     string `yaml:"RDS_HOST"`
	Port     int    `yaml:"RDS_PORT"`
	User     string `yaml:"RDS_USER"`
	Password string `yaml:"RDS_PASSWORD"`
	Database string `yaml:"RDS_DATABASE"`
	Type     string `yaml:"RDS_TYPE"`
	SSLMode  string `yaml:"RDS_SSLMODE"`
	DSN      string `yaml:"RDS_DSN"` // optional explicit DSN
}

// LoadCredentials reads a YAML credentials file.
func LoadCredentials(path string) (Credentials, error) {
	var creds Credentials
	raw, err := os.ReadFile(path)
	if err != nil {
		return creds, errors.WithCode(errors.CodeConfigInvalid, fmt.Errorf("read credentials: %w", err))
	}
	if err := yaml.Unmarshal(raw, &creds); err != nil {
		return Credentials{}, errors.WithCode(errors.CodeConfigInvalid, fmt.Errorf("parse credentials %s: %w", path, err))
	}
	return creds, nil
}

// NormalizeDriver maps common aliases to registered driver names.
func NormalizeDriver(d string) string {
	switch strings.ToLower(strings.TrimSpace(d)) {
	case "postgresql", "pg", "postgres", "":
		return "postgres"
	case "mysql", "mariadb":
		return "mysql"
	case "sqlite", "sqlite3":
		return "sqlite"
	case "mssql", "sqlserver":
		return "sqlserver"
	default:
		return strings.ToLower(d)
	}
}

// BuildDriverAndDSN produces a driver name and DSN. fallbackType is used when
// the credentials file does not name a database type.
func BuildDriverAndDSN(c Credentials, fallbackType string) (driver string, dsn string, err error) {
	dbType := c.Type
	if dbType == "" {
		dbType = fallbackType
	}
	driver = NormalizeDriver(dbType)

	if c.DSN != "" {
		return driver, c.DSN, nil
	}

	switch driver {
	case "postgres":
		sslMode := c.SSLMode
		if sslMode == "" {
			sslMode = "disable"
		}
		u := url.URL{
			Scheme:   "postgres",
			User:     url.UserPassword(c.User, c.Password),
			Host:     fmt.Sprintf("%s:%d", c.Host, portOr(c.Port, 5432)),
			Path:     "/" + c.Database,
			RawQuery: "sslmode=" + url.QueryEscape(sslMode),
		}
		dsn = u.String()
	case "mysql":
		dsn = fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?parseTime=true",
			c.User, c.Password, c.Host, portOr(c.Port, 3306), c.Database)
	case "sqlite":
		if c.Database == "" {
			return "", "", errors.ConfigInvalid("sqlite needs a file path in RDS_DATABASE")
		}
		dsn = fmt.Sprintf("file:%s?mode=ro", c.Database)
	case "sqlserver":
		u := url.URL{
			Scheme:   "sqlserver",
			User:     url.UserPassword(c.User, c.Password),
			Host:     fmt.Sprintf("%s:%d", c.Host, portOr(c.Port, 1433)),
			RawQuery: "database=" + url.QueryEscape(c.Database),
		}
		dsn = u.String()
	default:
		err = errors.ConfigInvalid(fmt.Sprintf("unsupported database type: %s", dbType))
	}
	return
}

func portOr(port, fallback int) int {
	if port == 0 {
		return fallback
	}
	return port
}
