package api

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRegisterUser(t *testing.T) {
	server := setupTestServer(t)

	code, envelope := do(t, server, http.MethodPost, "/api/users", map[string]string{
		"name":   "Alice",
		"email":  "alice@example.com",
		"avatar": "https://example.com/alice.png",
	})

	assert.Equal(t, http.StatusCreated, code)
	assert.True(t, envelope.Success)
	assert.Equal(t, "User created successfully", envelope.Message)

	data := dataMap(t, envelope)
	assert.NotEmpty(t, data["id"])
	assert.Equal(t, "Alice", data["name"])
	assert.Equal(t, "alice@example.com", data["email"])
}

func TestRegisterUser_Validation(t *testing.T) {
	server := setupTestServer(t)

	tests := []struct {
		name string
		body map[string]string
	}{
		{"missing name", map[string]string{"email": "a@example.com"}},
		{"missing email", map[string]string{"name": "Alice"}},
		{"bad email", map[string]string{"name": "Alice", "email": "nope"}},
		{"bad avatar url", map[string]string{"name": "Alice", "email": "a@example.com", "avatar": "not a url"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, envelope := do(t, server, http.MethodPost, "/api/users", tt.body)
			assert.Equal(t, http.StatusBadRequest, code)
			assert.False(t, envelope.Success)
			assert.NotEmpty(t, envelope.Error)
		})
	}
}

func TestRegisterUser_DuplicateEmail(t *testing.T) {
	server := setupTestServer(t)
	registerUser(t, server, "Alice", "alice@example.com")

	code, envelope := do(t, server, http.MethodPost, "/api/users", map[string]string{
		"name":  "Another Alice",
		"email": "alice@example.com",
	})

	assert.Equal(t, http.StatusConflict, code)
	assert.False(t, envelope.Success)
	assert.Contains(t, envelope.Error, "email")
}

func TestLogin(t *testing.T) {
	server := setupTestServer(t)
	userID := registerUser(t, server, "Alice", "alice@example.com")

	code, envelope := do(t, server, http.MethodPost, "/api/users/login", map[string]string{
		"email": "alice@example.com",
	})
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, userID, dataMap(t, envelope)["id"])

	code, _ = do(t, server, http.MethodPost, "/api/users/login", map[string]string{
		"email": "nobody@example.com",
	})
	assert.Equal(t, http.StatusNotFound, code)

	code, _ = do(t, server, http.MethodPost, "/api/users/login", map[string]string{
		"email": "not-an-email",
	})
	assert.Equal(t, http.StatusBadRequest, code)
}

func TestListAndGetUsers(t *testing.T) {
	server := setupTestServer(t)
	aliceID := registerUser(t, server, "Alice", "alice@example.com")
	registerUser(t, server, "Bob", "bob@example.com")

	code, envelope := do(t, server, http.MethodGet, "/api/users", nil)
	assert.Equal(t, http.StatusOK, code)
	assert.Len(t, dataList(t, envelope), 2)

	code, envelope = do(t, server, http.MethodGet, "/api/users/"+aliceID, nil)
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "Alice", dataMap(t, envelope)["name"])

	code, _ = do(t, server, http.MethodGet, "/api/users/00000000-0000-4000-8000-000000000000", nil)
	assert.Equal(t, http.StatusNotFound, code)

	code, _ = do(t, server, http.MethodGet, "/api/users/not-a-uuid", nil)
	assert.Equal(t, http.StatusBadRequest, code)
}

func TestUpdateUser(t *testing.T) {
	server := setupTestServer(t)
	aliceID := registerUser(t, server, "Alice", "alice@example.com")
	registerUser(t, server, "Bob", "bob@example.com")

	code, envelope := do(t, server, http.MethodPut, "/api/users/"+aliceID, map[string]string{
		"name": "Alice Cooper",
	})
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "Alice Cooper", dataMap(t, envelope)["name"])

	// Taking another user's email conflicts.
	code, _ = do(t, server, http.MethodPut, "/api/users/"+aliceID, map[string]string{
		"email": "bob@example.com",
	})
	assert.Equal(t, http.StatusConflict, code)

	// Empty patch is a 400.
	code, envelope = do(t, server, http.MethodPut, "/api/users/"+aliceID, map[string]string{})
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Contains(t, envelope.Error, "no fields to update")
}

func TestDeleteUser_Cascades(t *testing.T) {
	server := setupTestServer(t)
	aliceID := registerUser(t, server, "Alice", "alice@example.com")
	categoryID := createCategory(t, server, "Work", "#112233", aliceID)
	noteID := createNote(t, server, map[string]any{
		"title":      "Standup",
		"categoryId": categoryID,
		"userId":     aliceID,
	})

	code, envelope := do(t, server, http.MethodDelete, "/api/users/"+aliceID, nil)
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "User deleted successfully", envelope.Message)

	code, _ = do(t, server, http.MethodGet, "/api/users/"+aliceID, nil)
	assert.Equal(t, http.StatusNotFound, code)
	code, _ = do(t, server, http.MethodGet, "/api/notes/"+noteID, nil)
	assert.Equal(t, http.StatusNotFound, code)
	code, _ = do(t, server, http.MethodGet, "/api/categories/"+categoryID, nil)
	assert.Equal(t, http.StatusNotFound, code)
}
