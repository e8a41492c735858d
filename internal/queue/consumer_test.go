package queue

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFormatLine(t *testing.T) {
	line := FormatLine(ContactReceivedEvent{
		MessageID:  7,
		Name:       "Jane",
		Email:      "jane@example.com",
		Subject:    "Hello",
		Preview:    "first\nsecond",
		ReceivedAt: "2024-05-01T10:00:00Z",
	})
	require.True(t, strings.HasSuffix(line, "\n"))
	require.Equal(t, 1, strings.Count(line, "\n"))
	require.Contains(t, line, "message_id=7")
	require.Contains(t, line, `from="Jane" <jane@example.com>`)
	require.Contains(t, line, `preview="first second"`)
}

func TestConsumer_HandleAppends(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "contact.log")
	c := &Consumer{LogPath: path}

	require.NoError(t, c.Handle([]byte(`{"message_id":1,"name":"A","email":"a@example.com"}`)))
	require.NoError(t, c.Handle([]byte(`{"message_id":2,"name":"B","email":"b@example.com"}`)))

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(b)), "\n")
	require.Len(t, lines, 2)
	require.Contains(t, lines[1], "message_id=2")
}

func TestConsumer_HandleRejectsGarbage(t *testing.T) {
	c := &Consumer{LogPath: filepath.Join(t.TempDir(), "contact.log")}
	require.Error(t, c.Handle([]byte("not json")))
}
