package handler

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-sql-driver/mysql"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/advert-board/internal/config"
	"github.com/iliyamo/advert-board/internal/model"
	"github.com/iliyamo/advert-board/internal/repository"
	"github.com/iliyamo/advert-board/internal/rights"
)

const userSelectByID = "SELECT id,username,role,registered_at FROM users WHERE id=? LIMIT 1"

func newUserHandler(t *testing.T) (*UserHandler, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherEqual))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	cfg := config.Config{ValuesOnPage: 5, BcryptCost: 4}
	h := NewUserHandler(cfg, repository.NewUserRepo(db), rights.NewTable(rights.DefaultSchema()))
	return h, mock
}

func userRow(id uint64, username string) *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "username", "role", "registered_at"}).
		AddRow(id, username, "user", time.Now().UTC())
}

func userContext(method, target, body string, actor *model.User, id string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if id != "" {
		c.SetParamNames("id")
		c.SetParamValues(id)
	}
	if actor != nil {
		c.Set("actor", actor)
	}
	return c, rec
}

func TestUserCreateOpenRegistration(t *testing.T) {
	h, mock := newUserHandler(t)

	mock.ExpectExec("INSERT INTO users (username,password_hash,role) VALUES (?,?,?)").
		WithArgs("alice", sqlmock.AnyArg(), "user").
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectQuery(userSelectByID).
		WithArgs(uint64(1)).
		WillReturnRows(userRow(1, "alice"))

	c, rec := userContext(http.MethodPost, "/user/", `{"username":"alice","password":"Passw0rd"}`, nil, "")
	require.NoError(t, h.Create(c))
	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Contains(t, rec.Body.String(), `"username":"alice"`)
	assert.NotContains(t, rec.Body.String(), "password")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserCreateWeakPassword(t *testing.T) {
	h, _ := newUserHandler(t)

	c, rec := userContext(http.MethodPost, "/user/", `{"username":"alice","password":"password"}`, nil, "")
	require.NoError(t, h.Create(c))
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestUserCreateDuplicateUsername(t *testing.T) {
	h, mock := newUserHandler(t)

	mock.ExpectExec("INSERT INTO users (username,password_hash,role) VALUES (?,?,?)").
		WithArgs("alice", sqlmock.AnyArg(), "user").
		WillReturnError(&mysql.MySQLError{Number: 1062, Message: "Duplicate entry"})

	c, rec := userContext(http.MethodPost, "/user/", `{"username":"alice","password":"Passw0rd"}`, nil, "")
	require.NoError(t, h.Create(c))
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestUserListPaginates(t *testing.T) {
	h, mock := newUserHandler(t)

	mock.ExpectQuery("SELECT COUNT(*) FROM users WHERE 1 = 1").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(7))
	mock.ExpectQuery("SELECT id,username,role,registered_at FROM users WHERE 1 = 1 ORDER BY id ASC LIMIT ? OFFSET ?").
		WithArgs(5, 0).
		WillReturnRows(userRow(1, "alice").AddRow(2, "bob", "user", time.Now().UTC()))

	c, rec := userContext(http.MethodGet, "/user/?page=1", "", nil, "")
	require.NoError(t, h.List(c))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"quantity":7`)
	assert.Contains(t, rec.Body.String(), `"current_page":1`)
	next := `"next":"` // the envelope carries an absolute next link
	assert.Contains(t, rec.Body.String(), next)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserListRejectsNonNumericPage(t *testing.T) {
	h, _ := newUserHandler(t)

	c, rec := userContext(http.MethodGet, "/user/?page=abc", "", nil, "")
	require.NoError(t, h.List(c))
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestUserPatchOwnAccount(t *testing.T) {
	h, mock := newUserHandler(t)
	owner := &model.User{ID: 1, Role: model.RoleUser}

	mock.ExpectQuery(userSelectByID).
		WithArgs(uint64(1)).
		WillReturnRows(userRow(1, "alice"))
	mock.ExpectExec("UPDATE users SET username=? WHERE id=?").
		WithArgs("alicia", uint64(1)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(userSelectByID).
		WithArgs(uint64(1)).
		WillReturnRows(userRow(1, "alicia"))

	c, rec := userContext(http.MethodPatch, "/user/1/", `{"username":"alicia"}`, owner, "1")
	require.NoError(t, h.Patch(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"username":"alicia"`)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserPatchForeignAccountForbidden(t *testing.T) {
	h, mock := newUserHandler(t)
	stranger := &model.User{ID: 2, Role: model.RoleUser}

	mock.ExpectQuery(userSelectByID).
		WithArgs(uint64(1)).
		WillReturnRows(userRow(1, "alice"))

	c, rec := userContext(http.MethodPatch, "/user/1/", `{"username":"hijack"}`, stranger, "1")
	require.NoError(t, h.Patch(c))
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestUserDeleteRequiresAuth(t *testing.T) {
	h, mock := newUserHandler(t)

	mock.ExpectQuery(userSelectByID).
		WithArgs(uint64(1)).
		WillReturnRows(userRow(1, "alice"))

	c, rec := userContext(http.MethodDelete, "/user/1/", "", nil, "1")
	require.NoError(t, h.Delete(c))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestUserDeleteByAdmin(t *testing.T) {
	h, mock := newUserHandler(t)
	admin := &model.User{ID: 99, Role: model.RoleAdmin}

	mock.ExpectQuery(userSelectByID).
		WithArgs(uint64(1)).
		WillReturnRows(userRow(1, "alice"))
	mock.ExpectExec("DELETE FROM users WHERE id=?").
		WithArgs(uint64(1)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	c, rec := userContext(http.MethodDelete, "/user/1/", "", admin, "1")
	require.NoError(t, h.Delete(c))
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}
