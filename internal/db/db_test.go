package db

import (
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRebind(t *testing.T) {
	sqlite := &DB{Driver: DriverSQLite}
	pg := &DB{Driver: DriverPostgres}

	tests := []struct {
		in   string
		want string
	}{
		{"SELECT 1", "SELECT 1"},
		{"WHERE id = $1", "WHERE id = ?"},
		{"VALUES ($1, $2, $10)", "VALUES (?, ?, ?)"},
		{"SELECT '$' || name FROM t WHERE a = $1", "SELECT '$' || name FROM t WHERE a = ?"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, sqlite.Rebind(tt.in))
		assert.Equal(t, tt.in, pg.Rebind(tt.in))
	}
}

func TestNewRejectsUnknownDriver(t *testing.T) {
	_, err := New("mysql", "dsn")
	assert.Error(t, err)

	_, err = New(DriverSQLite, "")
	assert.Error(t, err)
}

func TestRunMigrationsSQLite(t *testing.T) {
	database, err := New(DriverSQLite, ":memory:")
	require.NoError(t, err)
	defer database.Close()

	require.NoError(t, database.RunMigrations(Migrations, "migrations"))
	// Second run is a no-op.
	require.NoError(t, database.RunMigrations(Migrations, "migrations"))

	var count int
	require.NoError(t, database.QueryRow("SELECT COUNT(*) FROM schema_migrations").Scan(&count))
	assert.Equal(t, 1, count)

	_, err = database.Exec(database.Rebind("INSERT INTO users (id, name, email) VALUES ($1, $2, $3)"), "u-1", "Asha", "asha@example.com")
	require.NoError(t, err)
}

func TestReadMigrationsOrdersAndSkips(t *testing.T) {
	fsys := fstest.MapFS{
		"m/010_later.sql":       {Data: []byte("SELECT 10")},
		"m/002_second_step.sql": {Data: []byte("SELECT 2")},
		"m/readme.txt":          {Data: []byte("ignored")},
		"m/nonumber_x.sql":      {Data: []byte("ignored")},
	}
	migrations, err := readMigrations(fsys, "m")
	require.NoError(t, err)
	require.Len(t, migrations, 2)
	assert.Equal(t, 2, migrations[0].Number)
	assert.Equal(t, "second_step", migrations[0].Name)
	assert.Equal(t, 10, migrations[1].Number)
}
