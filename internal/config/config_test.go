package config

import (
	"testing"
	"time"

	"edakit/internal/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadCredentials(t *testing.T) {
	var tests = []struct {
		name     string
		filename string
		creds    Credentials
		errIsNil bool
	}{
		{"Valid Credentials",
			"./testdata/valid_credentials.yaml",
			Credentials{
				Host:     "eda-db.example.internal",
				Port:     5432,
				User:     "analyst",
				Password: "s3cret/pass",
				Database: "payments",
			},
			true},
		{"Invalid Credentials", "./testdata/invalid_credentials.yaml", Credentials{}, false},
		{"File Not Found", "./testdata/no_such_file.yaml", Credentials{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := LoadCredentials(tt.filename)
			assert.Equal(t, tt.creds, c)
			if tt.errIsNil {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
				assert.Equal(t, errors.CodeConfigInvalid, errors.GetCode(err))
			}
		})
	}
}

func TestNormalizeDriver(t *testing.T) {
	var tests = []struct {
		driverIn  string
		driverOut string
	}{
		{"postgresql", "postgres"},
		{"pg", "postgres"},
		{"", "postgres"},
		{"MariaDB", "mysql"},
		{"sqlite3", "sqlite"},
		{"mssql", "sqlserver"},
		{"Oracle", "oracle"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.driverOut, NormalizeDriver(tt.driverIn), tt.driverIn)
	}
}

func TestBuildDriverAndDSN(t *testing.T) {
	creds := Credentials{Host: "h", Port: 5432, User: "u", Password: "p@ss", Database: "d"}

	var tests = []struct {
		name     string
		creds    Credentials
		fallback string
		driver   string
		dsn      string
		errIsNil bool
	}{
		{"postgres from fallback", creds, "postgres", "postgres", "postgres://u:p%40ss@h:5432/d?sslmode=disable", true},
		{"mysql default port", Credentials{Host: "h", User: "u", Password: "p", Database: "d", Type: "mysql"}, "postgres", "mysql", "u:p@tcp(h:3306)/d?parseTime=true", true},
		{"sqlite path", Credentials{Database: "loans.db"}, "sqlite", "sqlite", "file:loans.db?mode=ro", true},
		{"sqlite without path", Credentials{}, "sqlite", "", "", false},
		{"sqlserver", Credentials{Host: "h", User: "u", Password: "p", Database: "d"}, "mssql", "sqlserver", "sqlserver://u:p@h:1433?database=d", true},
		{"explicit dsn", Credentials{DSN: "file::memory:", Type: "sqlite"}, "postgres", "sqlite", "file::memory:", true},
		{"unsupported", creds, "oracle", "oracle", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			driver, dsn, err := BuildDriverAndDSN(tt.creds, tt.fallback)
			if !tt.errIsNil {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.driver, driver)
			assert.Equal(t, tt.dsn, dsn)
		})
	}
}

func TestLoadDefaultsAndOverrides(t *testing.T) {
	t.Setenv("EDA_TABLE", "")
	t.Setenv("EDA_CONNECT_TIMEOUT", "")
	t.Setenv("EDA_SERVER_PORT", "")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "loan_payments", cfg.Database.Table)
	assert.Equal(t, 10*time.Second, cfg.Database.ConnectTimeout)
	assert.Equal(t, "8080", cfg.Server.Port)

	t.Setenv("EDA_TABLE", "customers")
	t.Setenv("EDA_CONNECT_TIMEOUT", "1m")
	cfg, err = Load()
	require.NoError(t, err)
	assert.Equal(t, "customers", cfg.Database.Table)
	assert.Equal(t, time.Minute, cfg.Database.ConnectTimeout)

	t.Setenv("EDA_SERVER_PORT", "http")
	_, err = Load()
	assert.Equal(t, errors.CodeConfigInvalid, errors.GetCode(err))
}
