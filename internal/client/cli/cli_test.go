package cli

import (
	"bytes"
	"context"
	"image/png"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/linkspark/internal/client/analytics"
	"github.com/iudanet/linkspark/internal/client/contact"
	"github.com/iudanet/linkspark/internal/client/history"
	"github.com/iudanet/linkspark/internal/client/iocli"
	"github.com/iudanet/linkspark/internal/client/storage/boltdb"
	"github.com/iudanet/linkspark/internal/client/storage/sqlite"
	"github.com/iudanet/linkspark/internal/models"
	"github.com/iudanet/linkspark/internal/payload"
)

type testEnv struct {
	cli     *Cli
	out     *bytes.Buffer
	history history.Service
	dir     string
}

// setupCli собирает CLI на настоящих хранилищах во временной директории
func setupCli(t *testing.T, input string) *testEnv {
	t.Helper()
	ctx := context.Background()
	dir := t.TempDir()

	bolt, err := boltdb.New(ctx, filepath.Join(dir, "history.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = bolt.Close() })

	events, err := sqlite.New(ctx, ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = events.Close() })

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	tracker := analytics.NewTracker(events, logger)
	hist := history.NewService(bolt, tracker, logger)
	contacts := contact.NewService(events, tracker, logger, 0)

	out := &bytes.Buffer{}
	c := New(iocli.New(strings.NewReader(input), out), hist, contacts, tracker, payload.New(), logger, time.Hour)

	return &testEnv{cli: c, out: out, history: hist, dir: dir}
}

func TestRun_UnknownCommand(t *testing.T) {
	env := setupCli(t, "")

	err := env.cli.Run(context.Background(), "frobnicate", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown command")
	assert.Contains(t, env.out.String(), "Usage:")
}

func TestGenerate(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		args      []string
		wantErr   string
		wantInOut []string
	}{
		{
			name:      "url from arguments",
			args:      []string{"url", "url=example.com"},
			wantInOut: []string{"https://example.com"},
		},
		{
			name:      "prompts for missing field",
			input:     "Hello world\n",
			args:      []string{"text"},
			wantInOut: []string{"Text: ", "Hello world"},
		},
		{
			name:      "wifi password is prompted",
			input:     "secret123\n",
			args:      []string{"wifi", "wifi_ssid=Home", "wifi_encryption=WPA"},
			wantInOut: []string{"WIFI:T:WPA;S:Home;P:secret123;H:false;;"},
		},
		{
			name:    "missing field without prompt",
			args:    []string{"url", "--no-prompt"},
			wantErr: "cannot generate url QR code",
		},
		{
			name:    "missing type",
			args:    nil,
			wantErr: "missing QR type",
		},
		{
			name:    "unknown type",
			args:    []string{"fax"},
			wantErr: "unknown QR type",
		},
		{
			name:    "bad assignment",
			args:    []string{"url", "example.com"},
			wantErr: "expected key=value",
		},
		{
			name:    "unknown style option",
			args:    []string{"url", "url=example.com", "style.sparkle=yes"},
			wantErr: "unknown style option",
		},
		{
			name:      "invalid email is reported",
			args:      []string{"email", "email=not-an-email", "--no-prompt"},
			wantErr:   "cannot generate email QR code",
			wantInOut: []string{"error:"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := setupCli(t, tt.input)

			err := env.cli.Run(context.Background(), "generate", tt.args)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
			} else {
				require.NoError(t, err)
			}
			for _, want := range tt.wantInOut {
				assert.Contains(t, env.out.String(), want)
			}
		})
	}
}

func TestGenerate_WritesImage(t *testing.T) {
	tests := []struct {
		name   string
		file   string
		format string
		check  func(t *testing.T, data []byte)
	}{
		{
			name: "png by extension",
			file: "qr.png",
			check: func(t *testing.T, data []byte) {
				img, err := png.Decode(bytes.NewReader(data))
				require.NoError(t, err)
				assert.Equal(t, 300, img.Bounds().Dx())
			},
		},
		{
			name: "svg by extension",
			file: "qr.svg",
			check: func(t *testing.T, data []byte) {
				assert.True(t, strings.HasPrefix(string(data), "<svg"))
			},
		},
		{
			name:   "format flag wins over extension",
			file:   "qr.img",
			format: "jpeg",
			check: func(t *testing.T, data []byte) {
				require.GreaterOrEqual(t, len(data), 2)
				assert.Equal(t, []byte{0xFF, 0xD8}, data[:2])
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := setupCli(t, "")
			path := filepath.Join(env.dir, tt.file)

			args := []string{"url", "url=https://example.com", "--out", path}
			if tt.format != "" {
				args = append(args, "--format", tt.format)
			}
			require.NoError(t, env.cli.Run(context.Background(), "generate", args))

			data, err := os.ReadFile(path)
			require.NoError(t, err)
			tt.check(t, data)
			assert.Contains(t, env.out.String(), "Image:")
		})
	}
}

func TestGenerate_SaveAndDuplicateNotice(t *testing.T) {
	ctx := context.Background()
	env := setupCli(t, "")
	args := []string{"url", "url=https://example.com", "--save", "--label", "Site"}

	require.NoError(t, env.cli.Run(ctx, "generate", args))
	assert.Contains(t, env.out.String(), "Saved:")

	env.out.Reset()
	require.NoError(t, env.cli.Run(ctx, "generate", args))
	assert.Contains(t, env.out.String(), "already exists in history")

	entries, err := env.history.List(ctx)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "Site", entries[0].Label)
}

func TestHistoryCommands(t *testing.T) {
	ctx := context.Background()
	env := setupCli(t, "")

	require.NoError(t, env.cli.Run(ctx, "generate", []string{"url", "url=https://example.com", "--save", "--label", "Site"}))
	require.NoError(t, env.cli.Run(ctx, "generate", []string{"text", "text=Shopping list", "--save"}))

	entries, err := env.history.List(ctx)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	textID, urlID := entries[0].ID, entries[1].ID

	t.Run("list", func(t *testing.T) {
		env.out.Reset()
		require.NoError(t, env.cli.Run(ctx, "history", nil))
		assert.Contains(t, env.out.String(), "Saved QR codes (2)")
		assert.Contains(t, env.out.String(), urlID)
		assert.Contains(t, env.out.String(), "text QR")
	})

	t.Run("search", func(t *testing.T) {
		env.out.Reset()
		require.NoError(t, env.cli.Run(ctx, "history", []string{"SHOPPING"}))
		assert.Contains(t, env.out.String(), textID)
		assert.NotContains(t, env.out.String(), urlID)
	})

	t.Run("search without match", func(t *testing.T) {
		env.out.Reset()
		require.NoError(t, env.cli.Run(ctx, "history", []string{"nothing"}))
		assert.Contains(t, env.out.String(), `No entries match "nothing"`)
	})

	t.Run("show", func(t *testing.T) {
		env.out.Reset()
		require.NoError(t, env.cli.Run(ctx, "show", []string{urlID}))
		assert.Contains(t, env.out.String(), "=== Site ===")
		assert.Contains(t, env.out.String(), "url: https://example.com")
		assert.Contains(t, env.out.String(), "error correction Q")
	})

	t.Run("load writes image", func(t *testing.T) {
		env.out.Reset()
		path := filepath.Join(env.dir, "loaded.png")
		require.NoError(t, env.cli.Run(ctx, "load", []string{urlID, "--out", path}))
		assert.Contains(t, env.out.String(), "Payload: https://example.com")
		assert.FileExists(t, path)
	})

	t.Run("label", func(t *testing.T) {
		env.out.Reset()
		require.NoError(t, env.cli.Run(ctx, "label", []string{textID, "My", "list"}))
		assert.Contains(t, env.out.String(), `"My list"`)
	})

	t.Run("duplicate", func(t *testing.T) {
		env.out.Reset()
		require.NoError(t, env.cli.Run(ctx, "duplicate", []string{urlID}))
		assert.Contains(t, env.out.String(), "Site (copy)")
	})

	t.Run("delete", func(t *testing.T) {
		require.NoError(t, env.cli.Run(ctx, "delete", []string{textID}))
		err := env.cli.Run(ctx, "show", []string{textID})
		require.ErrorIs(t, err, history.ErrNotFound)
	})

	t.Run("missing id", func(t *testing.T) {
		for _, cmd := range []string{"show", "load", "delete", "duplicate", "label"} {
			err := env.cli.Run(ctx, cmd, nil)
			require.Error(t, err, cmd)
			assert.Contains(t, err.Error(), "missing entry ID", cmd)
		}
	})
}

func TestClear(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		args      []string
		wantLeft  int
		wantInOut string
	}{
		{name: "confirmed", input: "yes\n", wantLeft: 0, wantInOut: "Removed 1 entries"},
		{name: "cancelled", input: "no\n", wantLeft: 1, wantInOut: "Clear cancelled."},
		{name: "forced", args: []string{"--yes"}, wantLeft: 0, wantInOut: "Removed 1 entries"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			env := setupCli(t, tt.input)
			require.NoError(t, env.cli.Run(ctx, "generate", []string{"url", "url=https://example.com", "--save"}))

			require.NoError(t, env.cli.Run(ctx, "clear", tt.args))
			assert.Contains(t, env.out.String(), tt.wantInOut)

			entries, err := env.history.List(ctx)
			require.NoError(t, err)
			assert.Len(t, entries, tt.wantLeft)
		})
	}
}

func TestWatch(t *testing.T) {
	ctx := context.Background()
	input := strings.Join([]string{
		"url=example.com",
		"style.dot_shape=dots",
		":save Site",
		":type text",
		"text=hello",
		":quit",
	}, "\n") + "\n"
	env := setupCli(t, input)
	path := filepath.Join(env.dir, "live.svg")

	require.NoError(t, env.cli.Run(ctx, "watch", []string{"url", "--out", path}))

	out := env.out.String()
	assert.Contains(t, out, "[url] https://example.com")
	assert.Contains(t, out, `as "Site"`)
	assert.Contains(t, out, "[text] hello")

	// последнее состояние записано в файл
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "<svg"))

	entries, err := env.history.List(ctx)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, models.TypeURL, entries[0].Type)
	assert.Equal(t, models.DotCircle, entries[0].Style.DotShape)
}

func TestWatch_BadLinesDoNotStopSession(t *testing.T) {
	env := setupCli(t, "nonsense\n:type fax\n:bogus\nurl=example.com\n")

	require.NoError(t, env.cli.Run(context.Background(), "watch", []string{"url"}))

	out := env.out.String()
	assert.Contains(t, out, "expected key=value")
	assert.Contains(t, out, "unknown QR type")
	assert.Contains(t, out, "unknown command :bogus")
	assert.Contains(t, out, "[url] https://example.com")
}

func TestContact(t *testing.T) {
	ctx := context.Background()

	t.Run("flags", func(t *testing.T) {
		env := setupCli(t, "")
		args := []string{"--name", "Ann", "--email", "ann@example.com", "--message", "Love the dot shapes!"}

		require.NoError(t, env.cli.Run(ctx, "contact", args))
		assert.Contains(t, env.out.String(), "Message #1 received")

		env.out.Reset()
		require.NoError(t, env.cli.Run(ctx, "contact", []string{"--list"}))
		assert.Contains(t, env.out.String(), "Ann <ann@example.com>")
	})

	t.Run("prompts", func(t *testing.T) {
		env := setupCli(t, "Bob\nbob@example.com\nPlease add more colors\n")

		require.NoError(t, env.cli.Run(ctx, "contact", nil))
		assert.Contains(t, env.out.String(), "Email: ")
		assert.Contains(t, env.out.String(), "received")
	})

	t.Run("invalid", func(t *testing.T) {
		env := setupCli(t, "")
		args := []string{"--name", "Ann", "--email", "ann@example.com", "--message", "short"}

		err := env.cli.Run(ctx, "contact", args)
		require.ErrorIs(t, err, contact.ErrInvalidMessage)
	})
}

func TestEvents(t *testing.T) {
	ctx := context.Background()
	env := setupCli(t, "")

	require.NoError(t, env.cli.Run(ctx, "events", nil))
	assert.Contains(t, env.out.String(), "No events recorded.")

	require.NoError(t, env.cli.Run(ctx, "generate", []string{"url", "url=example.com"}))
	env.out.Reset()

	require.NoError(t, env.cli.Run(ctx, "events", []string{"--limit", "5"}))
	assert.Contains(t, env.out.String(), "generate")
	assert.Contains(t, env.out.String(), "type=url")

	require.Error(t, env.cli.Run(ctx, "events", []string{"--limit", "0"}))
}

func TestTypes(t *testing.T) {
	env := setupCli(t, "")

	require.NoError(t, env.cli.Run(context.Background(), "types", nil))
	out := env.out.String()
	for _, qt := range models.AllTypes() {
		assert.Contains(t, out, string(qt))
	}
	assert.Contains(t, out, "wifi_ssid")

	env.out.Reset()
	require.NoError(t, env.cli.Run(context.Background(), "types", []string{"upi"}))
	assert.Contains(t, env.out.String(), "upi_amount")
	assert.NotContains(t, env.out.String(), "wifi_ssid")
}

func TestParseInterleaved(t *testing.T) {
	fs := newFlagSet("test")
	out := fs.String("out", "", "")
	save := fs.Bool("save", false, "")

	positional, err := parseInterleaved(fs, []string{"url", "--out", "a.png", "url=x.com", "--save", "style.size=200"})
	require.NoError(t, err)
	assert.Equal(t, []string{"url", "url=x.com", "style.size=200"}, positional)
	assert.Equal(t, "a.png", *out)
	assert.True(t, *save)
}

func TestSplitAssignments(t *testing.T) {
	fields, styles, err := splitAssignments([]string{"text=a=b", "style.size=200", "email_body="})
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"text": "a=b", "email_body": ""}, fields)
	assert.Equal(t, map[string]string{"size": "200"}, styles)

	_, _, err = splitAssignments([]string{"=value"})
	require.Error(t, err)
}

func TestResolveMedia(t *testing.T) {
	dir := t.TempDir()
	imgPath := filepath.Join(dir, "cover.png")
	audioPath := filepath.Join(dir, "song.mp3")
	require.NoError(t, os.WriteFile(imgPath, []byte("\x89PNG\r\n\x1a\nfake"), 0o600))
	require.NoError(t, os.WriteFile(audioPath, []byte("ID3fake"), 0o600))

	fields, err := resolveMedia(models.TypeAudioImage, map[string]string{
		models.FieldAudioURL: audioPath,
		models.FieldImageURL: imgPath,
	})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(fields[models.FieldAudioURL], "data:audio/mpeg;base64,"))
	assert.True(t, strings.HasPrefix(fields[models.FieldImageURL], "data:image/png;base64,"))

	// файл не того типа
	_, err = resolveMedia(models.TypeAudioImage, map[string]string{models.FieldAudioURL: imgPath})
	require.Error(t, err)

	// другие типы не трогаются
	same, err := resolveMedia(models.TypeURL, map[string]string{models.FieldURL: imgPath})
	require.NoError(t, err)
	assert.Equal(t, imgPath, same[models.FieldURL])
}
