package handlers_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stellaracademy/academy-be/internal/models"
)

func TestListCoursesIsPublic(t *testing.T) {
	env := newTestEnv(t, nil)
	astronomy, orbits := seedCourses(env)

	// No Authorization header on purpose; the catalog is not guarded.
	resp := env.get(t, "/api/courses", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	courses := decodeBody[[]models.Course](t, resp)
	require.Len(t, courses, 2)
	assert.Equal(t, astronomy.ID, courses[0].ID)
	assert.Equal(t, orbits.ID, courses[1].ID)
}

func TestListCoursesEmptyCatalog(t *testing.T) {
	env := newTestEnv(t, nil)

	resp := env.get(t, "/api/courses", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `[]`, readBody(t, resp))
}
