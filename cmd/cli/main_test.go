package main

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/akeren/creatorchain/internal/log"
	"github.com/akeren/creatorchain/pkg/synth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	root := newRootCmd(log.NewDiscardLogger())
	root.SetOut(&stdout)
	root.SetErr(&stderr)
	root.SetArgs(args)
	err := root.Execute()
	return stdout.String(), stderr.String(), err
}

func TestValidateCmd(t *testing.T) {
	out, _, err := run(t, "validate", "maker@example.com")
	require.NoError(t, err)
	assert.Contains(t, out, "is valid")

	_, _, err = run(t, "validate", "a@b.c")
	assert.Error(t, err)

	_, _, err = run(t, "validate")
	assert.Error(t, err)
}

func TestFeedbackCmd_Stdout(t *testing.T) {
	out, _, err := run(t, "feedback", "--kind", "error")
	require.NoError(t, err)

	// Two 100ms bursts staggered by 50ms.
	assert.Equal(t, synth.WAVSize(synth.SamplesFor(150*time.Millisecond, synth.DefaultSampleRate)), len(out))
	assert.Equal(t, "RIFF", out[:4])
}

func TestFeedbackCmd_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "success.wav")

	_, stderr, err := run(t, "feedback", "--kind", "success", "--out", path)
	require.NoError(t, err)
	assert.Contains(t, stderr, "wrote success cue")

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, int64(synth.WAVSize(synth.SamplesFor(200*time.Millisecond, synth.DefaultSampleRate))), info.Size())
}

func TestFeedbackCmd_UnknownKind(t *testing.T) {
	_, _, err := run(t, "feedback", "--kind", "chime")
	assert.ErrorContains(t, err, "unknown feedback kind")
}

func TestSubmitCmd(t *testing.T) {
	var got map[string]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/f/testform", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_, _ = w.Write([]byte(`{"ok":true}`))
	}))
	defer srv.Close()

	t.Setenv("WAITLIST_FORM_ENDPOINT", srv.URL+"/f")
	t.Setenv("WAITLIST_FORM_ID", "testform")

	out, _, err := run(t, "submit", "--email", "maker@example.com", "--platform", "twitch")
	require.NoError(t, err)
	assert.Contains(t, out, "You're in!")
	assert.Equal(t, "maker@example.com", got["email"])
	assert.Equal(t, "twitch", got["platform"])
	assert.Equal(t, "", got["creatorType"])
}

func TestSubmitCmd_InvalidEmailNeverCallsBackend(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("backend must not be called")
	}))
	defer srv.Close()
	t.Setenv("WAITLIST_FORM_ENDPOINT", srv.URL+"/f")

	_, stderr, err := run(t, "submit", "--email", "nope")
	require.Error(t, err)
	assert.Contains(t, stderr, "email")
}

func TestSubmitCmd_Rejected(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = w.Write([]byte(`{"errors":[{"field":"email","code":"TYPE_EMAIL","message":"should be an email"}]}`))
	}))
	defer srv.Close()
	t.Setenv("WAITLIST_FORM_ENDPOINT", srv.URL+"/f")

	_, stderr, err := run(t, "submit", "--email", "maker@example.com")
	require.Error(t, err)
	assert.Contains(t, stderr, "should be an email")
}
