package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadFile_JSON(t *testing.T) {
	path := writeFile(t, "config.json", `{"server_address":":9090","jwt_secret":"s","store":"mongo"}`)
	opts := &Options{LogLevel: "info"}

	require.NoError(t, loadFile(path, opts))
	assert.Equal(t, ":9090", opts.Port)
	assert.Equal(t, "s", opts.JWTSecret)
	assert.Equal(t, StoreMongo, opts.Store)
	assert.Equal(t, "info", opts.LogLevel, "keys absent from the file keep their values")
}

func TestLoadFile_YAML(t *testing.T) {
	path := writeFile(t, "config.yaml", "database_dsn: postgres://db\nlog_level: debug\nclient_origin: https://a.example, https://b.example\n")
	opts := &Options{}

	require.NoError(t, loadFile(path, opts))
	assert.Equal(t, "postgres://db", opts.DatabaseDSN)
	assert.Equal(t, "debug", opts.LogLevel)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, opts.Origins())
}

func TestLoadFile_Errors(t *testing.T) {
	assert.Error(t, loadFile(filepath.Join(t.TempDir(), "missing.json"), &Options{}))
	assert.Error(t, loadFile(writeFile(t, "bad.json", `{"server_address":`), &Options{}))
}

func TestApplyEnv(t *testing.T) {
	t.Setenv("SERVER_ADDRESS", ":7070")
	t.Setenv("JWT_SECRET", "from-env")
	t.Setenv("MONGODB_DATABASE", "")

	opts := &Options{Port: ":8080", JWTSecret: "from-file", MongoDatabase: "habit_tracker"}
	applyEnv(opts)

	assert.Equal(t, ":7070", opts.Port)
	assert.Equal(t, "from-env", opts.JWTSecret)
	assert.Equal(t, "habit_tracker", opts.MongoDatabase, "empty variables do not override")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		opts    Options
		wantErr bool
	}{
		{"postgres ok", Options{JWTSecret: "s", Store: StorePostgres, DatabaseDSN: "dsn"}, false},
		{"mongo ok", Options{JWTSecret: "s", Store: StoreMongo, MongoURI: "mongodb://x", MongoDatabase: "db"}, false},
		{"missing secret", Options{Store: StorePostgres, DatabaseDSN: "dsn"}, true},
		{"missing dsn", Options{JWTSecret: "s", Store: StorePostgres}, true},
		{"missing mongo uri", Options{JWTSecret: "s", Store: StoreMongo, MongoDatabase: "db"}, true},
		{"unknown store", Options{JWTSecret: "s", Store: "sqlite"}, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.opts.Validate()
			if tc.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
