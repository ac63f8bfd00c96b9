package handler_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/wictors/BackendAssignment-Fitness/api/handler"
	apiMiddleware "github.com/wictors/BackendAssignment-Fitness/api/middleware"
	"github.com/wictors/BackendAssignment-Fitness/api/routes"
	"github.com/wictors/BackendAssignment-Fitness/config"
	"github.com/wictors/BackendAssignment-Fitness/internal/entity"
	"github.com/wictors/BackendAssignment-Fitness/internal/repository"
	"github.com/wictors/BackendAssignment-Fitness/internal/service"
	"github.com/wictors/BackendAssignment-Fitness/internal/utils"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type testApp struct {
	echo *echo.Echo
	db   *gorm.DB
}

// newTestApp wires the full stack against an in-memory sqlite database, one
// per test so state never leaks between them.
func newTestApp(t *testing.T) *testApp {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, config.Migrate(db))

	jwtManager := utils.JWTManager{Secret: []byte("test_jwt_secret"), Issuer: "test", TTL: 5 * time.Minute}

	userRepo := repository.NewUserRepository(db)
	programRepo := repository.NewProgramRepository(db)
	exerciseRepo := repository.NewExerciseRepository(db)
	userExerciseRepo := repository.NewUserExerciseRepository(db)
	auditRepo := repository.NewAuditLogRepository(db)

	hasher := service.BcryptPasswordHasher{Cost: 4}
	issuer := service.JWTAccessIssuer{Manager: &jwtManager}

	authService := service.NewAuthService(userRepo, auditRepo, hasher, issuer, service.RealClock{})
	userService := service.NewUserService(userRepo, userExerciseRepo, auditRepo)
	exerciseService := service.NewExerciseService(exerciseRepo, programRepo, userExerciseRepo, nil)

	validate := validator.New()
	app := echo.New()
	router := routes.NewRouter(
		app,
		handler.NewAuthHandler(authService, validate),
		handler.NewAdminHandler(userService, exerciseService, validate),
		handler.NewUserHandler(userService, exerciseService, validate),
		handler.NewProgramHandler(exerciseService),
		apiMiddleware.AuthMiddleware{JWT: &jwtManager},
	)
	router.RegisterRoutes()

	return &testApp{echo: app, db: db}
}

func (a *testApp) request(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	if token != "" {
		// Raw signed token, the way existing clients send it.
		req.Header.Set("Authorization", token)
	}
	rec := httptest.NewRecorder()
	a.echo.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func (a *testApp) seedProgram(t *testing.T, name string) entity.Program {
	t.Helper()
	program := entity.Program{Name: name}
	require.NoError(t, a.db.Create(&program).Error)
	return program
}

func (a *testApp) seedExercise(t *testing.T, name string, difficulty entity.ExerciseDifficulty, programID uuid.UUID) entity.Exercise {
	t.Helper()
	exercise := entity.Exercise{Name: name, Difficulty: difficulty, ProgramID: programID}
	require.NoError(t, a.db.Create(&exercise).Error)
	return exercise
}

func (a *testApp) registerAndLogin(t *testing.T, email, role string) string {
	t.Helper()
	rec := a.request(t, http.MethodPost, "/registration", "", map[string]any{
		"name":     "Test",
		"surname":  "User",
		"nickName": strings.Split(email, "@")[0],
		"email":    email,
		"age":      30,
		"role":     role,
		"password": "abcde",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = a.request(t, http.MethodPost, "/login", "", map[string]string{
		"email":    email,
		"password": "abcde",
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	token, _ := decodeBody(t, rec)["token"].(string)
	require.NotEmpty(t, token)
	return token
}

func TestRegistrationAndLogin(t *testing.T) {
	app := newTestApp(t)

	rec := app.request(t, http.MethodPost, "/registration", "", map[string]any{
		"name":     "Jane",
		"surname":  "Doe",
		"nickName": "jdoe",
		"email":    "a@b.com",
		"age":      28,
		"role":     "USER",
		"password": "abcde",
	})
	assert.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	body := decodeBody(t, rec)
	user := body["data"].(map[string]any)
	assert.Equal(t, "a@b.com", user["email"])
	assert.Equal(t, "USER", user["role"])
	_, hasPassword := user["password"]
	assert.False(t, hasPassword)

	// Duplicate email.
	rec = app.request(t, http.MethodPost, "/registration", "", map[string]any{
		"name":     "Jane",
		"surname":  "Doe",
		"nickName": "jdoe2",
		"email":    "a@b.com",
		"age":      28,
		"role":     "USER",
		"password": "abcde",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = app.request(t, http.MethodPost, "/login", "", map[string]string{"email": "a@b.com", "password": "abcde"})
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, decodeBody(t, rec)["token"])

	rec = app.request(t, http.MethodPost, "/login", "", map[string]string{"email": "a@b.com", "password": "wrong"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = app.request(t, http.MethodPost, "/login", "", map[string]string{"email": "nobody@b.com", "password": "abcde"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAccessControl(t *testing.T) {
	app := newTestApp(t)
	userToken := app.registerAndLogin(t, "user@b.com", "USER")
	adminToken := app.registerAndLogin(t, "admin@b.com", "ADMIN")

	// No token and a garbage token both collapse to 401.
	for _, token := range []string{"", "garbage"} {
		rec := app.request(t, http.MethodGet, "/all_users", token, nil)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	}

	// A USER token is rejected on every admin-only route.
	adminRoutes := []struct{ method, path string }{
		{http.MethodGet, "/all_users"},
		{http.MethodGet, "/user?email=user@b.com"},
		{http.MethodPut, "/exercise/" + uuid.NewString()},
		{http.MethodPut, "/user/" + uuid.NewString()},
		{http.MethodDelete, "/user/" + uuid.NewString()},
	}
	for _, route := range adminRoutes {
		rec := app.request(t, route.method, route.path, userToken, map[string]any{})
		assert.Equal(t, http.StatusForbidden, rec.Code, route.path)
	}

	// And an ADMIN token on the user-only routes.
	userRoutes := []string{"/users", "/profile", "/profile/exercises"}
	for _, path := range userRoutes {
		rec := app.request(t, http.MethodGet, path, adminToken, nil)
		assert.Equal(t, http.StatusForbidden, rec.Code, path)
	}

	// A "Bearer "-prefixed token is tolerated.
	rec := app.request(t, http.MethodGet, "/all_users", "Bearer "+adminToken, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestExpiredTokenRejected(t *testing.T) {
	app := newTestApp(t)
	app.registerAndLogin(t, "user@b.com", "USER")

	var user entity.User
	require.NoError(t, app.db.First(&user, "email = ?", "user@b.com").Error)

	expired := utils.JWTManager{Secret: []byte("test_jwt_secret"), Issuer: "test", TTL: -time.Minute}
	token, _, err := expired.IssueAccessToken(user.ID.String(), user.Email, string(user.Role))
	require.NoError(t, err)

	rec := app.request(t, http.MethodGet, "/profile", token, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAdminExerciseLifecycle(t *testing.T) {
	app := newTestApp(t)
	adminToken := app.registerAndLogin(t, "admin@b.com", "ADMIN")
	program := app.seedProgram(t, "Strength")
	otherProgram := app.seedProgram(t, "Cardio")

	// Create requires all fields.
	rec := app.request(t, http.MethodPost, "/exercise", adminToken, map[string]any{"name": "Squats"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	// Invalid difficulty is rejected before any row is written.
	rec = app.request(t, http.MethodPost, "/exercise", adminToken, map[string]any{
		"name":       "Squats",
		"difficulty": "IMPOSSIBLE",
		"programId":  program.ID.String(),
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	var count int64
	require.NoError(t, app.db.Model(&entity.Exercise{}).Count(&count).Error)
	assert.Zero(t, count)

	// Unknown program.
	rec = app.request(t, http.MethodPost, "/exercise", adminToken, map[string]any{
		"name":       "Squats",
		"difficulty": "MEDIUM",
		"programId":  uuid.NewString(),
	})
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = app.request(t, http.MethodPost, "/exercise", adminToken, map[string]any{
		"name":       "Squats",
		"difficulty": "MEDIUM",
		"programId":  program.ID.String(),
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	created := decodeBody(t, rec)["data"].(map[string]any)
	exerciseID := created["id"].(string)

	// Resending the stored state is a no-op.
	rec = app.request(t, http.MethodPut, "/exercise/"+exerciseID, adminToken, map[string]any{
		"name":       "Squats",
		"difficulty": "MEDIUM",
		"programId":  program.ID.String(),
	})
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "No changes made", decodeBody(t, rec)["message"])

	// Pointing at a missing program leaves the exercise unchanged.
	rec = app.request(t, http.MethodPut, "/exercise/"+exerciseID, adminToken, map[string]any{
		"programId": uuid.NewString(),
	})
	assert.Equal(t, http.StatusNotFound, rec.Code)
	var stored entity.Exercise
	require.NoError(t, app.db.First(&stored, "id = ?", exerciseID).Error)
	assert.Equal(t, program.ID, stored.ProgramID)

	// A differing field persists.
	rec = app.request(t, http.MethodPut, "/exercise/"+exerciseID, adminToken, map[string]any{
		"difficulty": "HARD",
		"programId":  otherProgram.ID.String(),
	})
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Exercise updated", decodeBody(t, rec)["message"])
	require.NoError(t, app.db.First(&stored, "id = ?", exerciseID).Error)
	assert.Equal(t, entity.DifficultyHard, stored.Difficulty)
	assert.Equal(t, otherProgram.ID, stored.ProgramID)

	// Update of a missing exercise.
	rec = app.request(t, http.MethodPut, "/exercise/"+uuid.NewString(), adminToken, map[string]any{"name": "x"})
	assert.Equal(t, http.StatusNotFound, rec.Code)

	// PUT without the id segment.
	rec = app.request(t, http.MethodPut, "/exercise", adminToken, map[string]any{"name": "x"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = app.request(t, http.MethodDelete, "/exercise/"+exerciseID, adminToken, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	err := app.db.First(&entity.Exercise{}, "id = ?", exerciseID).Error
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestAdminUserManagement(t *testing.T) {
	app := newTestApp(t)
	adminToken := app.registerAndLogin(t, "admin@b.com", "ADMIN")
	app.registerAndLogin(t, "user@b.com", "USER")

	rec := app.request(t, http.MethodGet, "/all_users", adminToken, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	users := decodeBody(t, rec)["data"].([]any)
	assert.Len(t, users, 2)

	rec = app.request(t, http.MethodGet, "/user?email=user@b.com", adminToken, nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = app.request(t, http.MethodGet, "/user", adminToken, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = app.request(t, http.MethodGet, "/user?email=nobody@b.com", adminToken, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	var user entity.User
	require.NoError(t, app.db.First(&user, "email = ?", "user@b.com").Error)

	// Identical payload: no write reported.
	rec = app.request(t, http.MethodPut, "/user/"+user.ID.String(), adminToken, map[string]any{
		"name": user.Name,
		"age":  user.Age,
	})
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "No changes made", decodeBody(t, rec)["message"])

	// Unknown role value.
	rec = app.request(t, http.MethodPut, "/user/"+user.ID.String(), adminToken, map[string]any{"role": "OWNER"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = app.request(t, http.MethodPut, "/user/"+user.ID.String(), adminToken, map[string]any{"nickName": "renamed"})
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "User updated", decodeBody(t, rec)["message"])

	rec = app.request(t, http.MethodPut, "/user", adminToken, map[string]any{"nickName": "x"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	// Soft delete: gone from the API, tombstoned in storage.
	rec = app.request(t, http.MethodDelete, "/user/"+user.ID.String(), adminToken, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	err := app.db.First(&entity.User{}, "id = ?", user.ID).Error
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
	var tombstoned entity.User
	require.NoError(t, app.db.Unscoped().First(&tombstoned, "id = ?", user.ID).Error)
	assert.True(t, tombstoned.DeletedAt.Valid)
}

func TestUserExerciseLogging(t *testing.T) {
	app := newTestApp(t)
	userToken := app.registerAndLogin(t, "user@b.com", "USER")
	otherToken := app.registerAndLogin(t, "other@b.com", "USER")
	program := app.seedProgram(t, "Strength")
	exercise := app.seedExercise(t, "Squats", entity.DifficultyMedium, program.ID)

	// Nothing logged yet.
	rec := app.request(t, http.MethodGet, "/profile/exercises", userToken, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	// Unknown exercise.
	rec = app.request(t, http.MethodPost, "/exercise", userToken, map[string]any{"exerciseId": uuid.NewString()})
	assert.Equal(t, http.StatusNotFound, rec.Code)

	// The same exercise logged twice makes two distinct rows.
	first := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	rec = app.request(t, http.MethodPost, "/exercise", userToken, map[string]any{
		"exerciseId":  exercise.ID.String(),
		"completedAt": first,
		"duration":    20,
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	rec = app.request(t, http.MethodPost, "/exercise", userToken, map[string]any{
		"exerciseId": exercise.ID.String(),
	})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = app.request(t, http.MethodGet, "/profile/exercises", userToken, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	logged := decodeBody(t, rec)["data"].([]any)
	require.Len(t, logged, 2)
	firstRow := logged[0].(map[string]any)
	assert.Equal(t, "Squats", firstRow["exercise"].(map[string]any)["name"])
	rowID := firstRow["id"].(string)

	// Profile includes the performances.
	rec = app.request(t, http.MethodGet, "/profile", userToken, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	profile := decodeBody(t, rec)["data"].(map[string]any)
	assert.Equal(t, "user@b.com", profile["email"])
	assert.Len(t, profile["completedExercises"].([]any), 2)

	// Another user's row is invisible to the delete, even for probing.
	rec = app.request(t, http.MethodDelete, "/exercise/"+rowID, otherToken, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	var count int64
	require.NoError(t, app.db.Model(&entity.UserExercise{}).Count(&count).Error)
	assert.EqualValues(t, 2, count)

	// The owner can delete it.
	rec = app.request(t, http.MethodDelete, "/exercise/"+rowID, userToken, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	rec = app.request(t, http.MethodGet, "/profile/exercises", userToken, nil)
	logged = decodeBody(t, rec)["data"].([]any)
	assert.Len(t, logged, 1)
}

func TestPublicCatalogue(t *testing.T) {
	app := newTestApp(t)
	program := app.seedProgram(t, "Strength")
	app.seedExercise(t, "Squats", entity.DifficultyMedium, program.ID)

	rec := app.request(t, http.MethodGet, "/programs", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	programs := decodeBody(t, rec)["data"].([]any)
	require.Len(t, programs, 1)
	assert.Equal(t, "Strength", programs[0].(map[string]any)["name"])

	rec = app.request(t, http.MethodGet, "/exercises", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	exercises := decodeBody(t, rec)["data"].([]any)
	require.Len(t, exercises, 1)
	got := exercises[0].(map[string]any)
	assert.Equal(t, "MEDIUM", got["difficulty"])
	assert.Equal(t, "Strength", got["program"].(map[string]any)["name"])
}

func TestUserDirectory(t *testing.T) {
	app := newTestApp(t)
	userToken := app.registerAndLogin(t, "user@b.com", "USER")
	app.registerAndLogin(t, "admin@b.com", "ADMIN")

	rec := app.request(t, http.MethodGet, "/users", userToken, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	users := decodeBody(t, rec)["data"].([]any)
	require.Len(t, users, 2)
	// Only id and nickname leak to other users.
	entry := users[0].(map[string]any)
	assert.Contains(t, entry, "nickName")
	assert.NotContains(t, entry, "email")
}
