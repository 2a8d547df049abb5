package postgres

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/veyrascripts/gallery/internal/models"
	"github.com/veyrascripts/gallery/internal/repository"
)

var scriptColumns = []string{
	"id", "name", "description", "author", "version", "category", "tags",
	"icon", "match", "grant", "code", "screenshots", "features", "changelog",
}

// newMockRepo creates a gorm-backed repository over sqlmock with expectation checking on cleanup.
func newMockRepo(t *testing.T) (repository.ScriptsRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	gdb, err := gorm.Open(postgres.New(postgres.Config{Conn: db}), &gorm.Config{
		SkipDefaultTransaction: true,
		TranslateError:         true,
	})
	require.NoError(t, err)

	t.Cleanup(func() {
		if err := mock.ExpectationsWereMet(); err != nil {
			t.Errorf("unfulfilled expectations: %v", err)
		}
		db.Close()
	})
	return NewPostgresScriptsRepository(gdb), mock
}

func addScriptRow(rows *sqlmock.Rows, id, name, category string) *sqlmock.Rows {
	return rows.AddRow(
		id, name, "desc of "+name, "A", "1.0.0", category, "{farm,wave}",
		"📜", "*://*/*", "{GM_xmlhttpRequest}", "console.log(1)", nil, nil,
		[]byte(`[{"version":"1.0.0","changes":["first"]}]`),
	)
}

func TestListScriptsWithoutFilters(t *testing.T) {
	repo, mock := newMockRepo(t)

	rows := sqlmock.NewRows(scriptColumns)
	addScriptRow(rows, "a", "Alpha", "Utilities")
	addScriptRow(rows, "b", "Beta", "Loot")
	mock.ExpectQuery(`^SELECT \* FROM "scripts" ORDER BY name, id$`).WillReturnRows(rows)

	scripts, err := repo.ListScripts(context.Background(), repository.ScriptFilter{})
	require.NoError(t, err)
	require.Len(t, scripts, 2)

	assert.Equal(t, "a", scripts[0].ID)
	assert.Equal(t, []string{"farm", "wave"}, []string(scripts[0].Tags))
	assert.Equal(t, []string{"GM_xmlhttpRequest"}, []string(scripts[0].Grant))
	assert.Equal(t, []models.ChangelogEntry{{Version: "1.0.0", Changes: []string{"first"}}}, scripts[0].Changelog)
}

func TestListScriptsAllCategoryDoesNotFilter(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery(`^SELECT \* FROM "scripts" ORDER BY name, id$`).
		WillReturnRows(sqlmock.NewRows(scriptColumns))

	scripts, err := repo.ListScripts(context.Background(), repository.ScriptFilter{Category: repository.AllCategories})
	require.NoError(t, err)
	assert.Empty(t, scripts)
}

func TestListScriptsComposesFilters(t *testing.T) {
	repo, mock := newMockRepo(t)

	rows := addScriptRow(sqlmock.NewRows(scriptColumns), "farmer", "Loot Farmer", "Loot")
	mock.ExpectQuery(`SELECT \* FROM "scripts" WHERE category = \$1 AND \(name ILIKE \$2 ESCAPE '\\' OR description ILIKE \$3 ESCAPE '\\'\) ORDER BY name, id`).
		WithArgs("Loot", "%farm%", "%farm%").
		WillReturnRows(rows)

	scripts, err := repo.ListScripts(context.Background(), repository.ScriptFilter{Search: "farm", Category: "Loot"})
	require.NoError(t, err)
	require.Len(t, scripts, 1)
	assert.Equal(t, "farmer", scripts[0].ID)
}

func TestListScriptsSearchOnly(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery(`SELECT \* FROM "scripts" WHERE name ILIKE \$1 ESCAPE '\\' OR description ILIKE \$2 ESCAPE '\\' ORDER BY name, id`).
		WithArgs("%wave%", "%wave%").
		WillReturnRows(sqlmock.NewRows(scriptColumns))

	_, err := repo.ListScripts(context.Background(), repository.ScriptFilter{Search: "wave"})
	require.NoError(t, err)
}

func TestListScriptsSearchIsLiteral(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery(`SELECT \* FROM "scripts" WHERE name ILIKE \$1 ESCAPE '\\' OR description ILIKE \$2 ESCAPE '\\' ORDER BY name, id`).
		WithArgs(`%100\%\_off\\%`, `%100\%\_off\\%`).
		WillReturnRows(sqlmock.NewRows(scriptColumns))

	_, err := repo.ListScripts(context.Background(), repository.ScriptFilter{Search: `100%_off\`})
	require.NoError(t, err)
}

func TestGetScriptByIDMissingIsNotAnError(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery(`SELECT \* FROM "scripts" WHERE id = \$1 LIMIT \$2`).
		WithArgs("missing", 1).
		WillReturnRows(sqlmock.NewRows(scriptColumns))

	script, err := repo.GetScriptByID(context.Background(), "missing")
	require.NoError(t, err)
	assert.Nil(t, script)
}

func TestGetScriptByID(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery(`SELECT \* FROM "scripts" WHERE id = \$1 LIMIT \$2`).
		WithArgs("a", 1).
		WillReturnRows(addScriptRow(sqlmock.NewRows(scriptColumns), "a", "Alpha", "Utilities"))

	script, err := repo.GetScriptByID(context.Background(), "a")
	require.NoError(t, err)
	require.NotNil(t, script)
	assert.Equal(t, "Alpha", script.Name)
	assert.Nil(t, script.Screenshots)
}

func TestCreateScript(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectExec(`INSERT INTO "scripts"`).WillReturnResult(sqlmock.NewResult(0, 1))

	script := &models.Script{ID: "foo", Name: "Foo Tool", Author: "A", Version: "1.0.0",
		Category: "Utilities", Icon: "📜", Match: "*://*/*", Code: "console.log(1)"}
	script.Normalize()

	require.NoError(t, repo.CreateScript(context.Background(), script))
}

func TestCreateScriptDuplicateID(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectExec(`INSERT INTO "scripts"`).
		WillReturnError(&pgconn.PgError{Code: "23505", Message: "duplicate key value violates unique constraint"})

	err := repo.CreateScript(context.Background(), &models.Script{ID: "foo"})
	assert.ErrorIs(t, err, repository.ErrDuplicateID)
}

func TestUpdateScriptMergesPatch(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT \* FROM "scripts" WHERE id = \$1 LIMIT \$2`).
		WithArgs("a", 1).
		WillReturnRows(addScriptRow(sqlmock.NewRows(scriptColumns), "a", "Alpha", "Utilities"))
	mock.ExpectExec(`UPDATE "scripts" SET .+ WHERE "id" = \$\d+`).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	version := "2.0.0"
	script, err := repo.UpdateScript(context.Background(), "a", models.ScriptPatch{Version: &version})
	require.NoError(t, err)
	assert.Equal(t, "a", script.ID)
	assert.Equal(t, "2.0.0", script.Version)
	assert.Equal(t, "Alpha", script.Name)
}

func TestUpdateScriptUnknownID(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT \* FROM "scripts" WHERE id = \$1 LIMIT \$2`).
		WithArgs("nope", 1).
		WillReturnRows(sqlmock.NewRows(scriptColumns))
	mock.ExpectRollback()

	version := "2.0.0"
	_, err := repo.UpdateScript(context.Background(), "nope", models.ScriptPatch{Version: &version})
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestDeleteScriptIsIdempotent(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectExec(`DELETE FROM "scripts" WHERE id = \$1`).
		WithArgs("gone").
		WillReturnResult(sqlmock.NewResult(0, 0))

	assert.NoError(t, repo.DeleteScript(context.Background(), "gone"))
}
