package daemon

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sanjeeviv/shark/internal/models"
)

type stubRun struct {
	status models.RunStatus
}

func (s stubRun) Status() models.RunStatus { return s.status }

type stubEvents struct {
	entries []*logrus.Entry
}

func (s stubEvents) GetEvents() []*logrus.Entry { return s.entries }

func serve(t *testing.T, s *Server, target string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	return rec
}

func TestGetHealth(t *testing.T) {
	s := NewServer("127.0.0.1:0", stubRun{}, nil)
	rec := serve(t, s, "/healthz")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestGetStatus(t *testing.T) {
	run := stubRun{status: models.RunStatus{
		RunID:     "run-1",
		State:     models.RunStateRunning,
		Workspace: "/opt/shark",
		PID:       901,
		PGID:      901,
	}}
	events := stubEvents{entries: []*logrus.Entry{
		{Message: "Log sink unreadable, will retry"},
	}}

	s := NewServer("127.0.0.1:0", run, events)
	rec := serve(t, s, "/api/status")
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Run    models.RunStatus `json:"run"`
		Events []string         `json:"events"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "run-1", body.Run.RunID)
	assert.Equal(t, models.RunStateRunning, body.Run.State)
	assert.Equal(t, []string{"Log sink unreadable, will retry"}, body.Events)
}

func TestGetLogs(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "shark-ci.log")
	require.NoError(t, os.WriteFile(logPath, []byte("line 1\nline 2\nline 3\n"), 0o644))

	s := NewServer("127.0.0.1:0", stubRun{status: models.RunStatus{LogPath: logPath}}, nil)

	rec := serve(t, s, "/api/logs")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "line 1\nline 2\nline 3\n", rec.Body.String())

	rec = serve(t, s, "/api/logs?tail=2")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "line 2\nline 3\n", rec.Body.String())
}

func TestGetLogsMissingSink(t *testing.T) {
	s := NewServer("127.0.0.1:0", stubRun{}, nil)
	rec := serve(t, s, "/api/logs")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	s = NewServer("127.0.0.1:0", stubRun{status: models.RunStatus{LogPath: "/nonexistent.log"}}, nil)
	rec = serve(t, s, "/api/logs")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestTailBytes(t *testing.T) {
	data := []byte("a\nb\nc\n")
	assert.Equal(t, []byte("c\n"), tailBytes(data, "1"))
	assert.Equal(t, []byte("b\nc\n"), tailBytes(data, "2"))
	assert.Equal(t, data, tailBytes(data, "10"))
	assert.Equal(t, data, tailBytes(data, "0"))
	assert.Equal(t, data, tailBytes(data, "nope"))
}
