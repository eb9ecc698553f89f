package database

import (
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSQLiteMigrations_UpDown(t *testing.T) {
	db, err := Open(DriverSQLite, ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	m, err := NewMigrator(db)
	require.NoError(t, err)

	require.NoError(t, m.Up())
	require.NoError(t, m.Up(), "second up is a no-op")

	v, dirty, err := m.Version()
	require.NoError(t, err)
	assert.Equal(t, uint(1), v)
	assert.False(t, dirty)

	var tables []string
	require.NoError(t, db.Select(&tables, `SELECT name FROM sqlite_master WHERE type = 'table' AND name NOT LIKE 'sqlite_%' AND name <> 'schema_migrations' ORDER BY name`))
	assert.Equal(t, []string{"course_settings", "pretest_attempts", "pretests", "quiz_attempts", "quiz_definitions"}, tables)

	require.NoError(t, m.Down(0))
	v, _, err = m.Version()
	require.NoError(t, err)
	assert.Equal(t, uint(0), v)
}

func TestLoadMigrationFiles(t *testing.T) {
	fsys := fstest.MapFS{
		"m/000002_second.up.sql":   {Data: []byte("B")},
		"m/000001_first.up.sql":    {Data: []byte("A")},
		"m/000001_first.down.sql":  {Data: []byte("a")},
		"m/000002_second.down.sql": {Data: []byte("b")},
		"m/README.md":              {Data: []byte("ignored")},
	}
	files, err := loadMigrationFiles(fsys, "m")
	require.NoError(t, err)
	require.Len(t, files, 2)
	assert.Equal(t, migrationFile{version: 1, up: "A", down: "a"}, files[0])
	assert.Equal(t, migrationFile{version: 2, up: "B", down: "b"}, files[1])

	_, err = loadMigrationFiles(fstest.MapFS{"m/abc_x.up.sql": {Data: []byte("x")}}, "m")
	assert.Error(t, err)
}

func TestEmbeddedOracleMigrationsParse(t *testing.T) {
	files, err := loadMigrationFiles(migrationFiles, "migrations/oracle")
	require.NoError(t, err)
	require.NotEmpty(t, files)
	for _, f := range files {
		assert.NotEmpty(t, splitStatements(f.up))
		assert.NotEmpty(t, splitStatements(f.down))
	}
}

func TestSplitStatements(t *testing.T) {
	got := splitStatements("CREATE TABLE a (x INT);\n\n  CREATE INDEX i ON a (x) ;\n")
	assert.Equal(t, []string{"CREATE TABLE a (x INT)", "CREATE INDEX i ON a (x)"}, got)
}
