package logger_test

import (
	"bytes"
	"io"
	"os"
	"strings"
	"testing"

	"go.trai.ch/ledger/internal/adapters/logger"
)

// captureStderr captures output written to os.Stderr during the execution of fn.
func captureStderr(fn func()) (string, error) {
	originalStderr := os.Stderr

	r, w, err := os.Pipe()
	if err != nil {
		return "", err
	}
	os.Stderr = w

	done := make(chan string, 1)
	go func() {
		buf, _ := io.ReadAll(r)
		done <- string(buf)
	}()

	fn()

	if err := w.Close(); err != nil {
		os.Stderr = originalStderr
		return "", err
	}
	output := <-done
	if err := r.Close(); err != nil {
		os.Stderr = originalStderr
		return "", err
	}
	os.Stderr = originalStderr

	return output, nil
}

func TestLogger_Info(t *testing.T) {
	var buf bytes.Buffer
	lg := logger.NewWithWriter(&buf)
	lg.Info("configured variant", "variant", "debug")

	output := buf.String()
	if !strings.Contains(output, "configured variant") {
		t.Errorf("Expected output to contain 'configured variant', got: %s", output)
	}
	if !strings.Contains(output, "variant=debug") {
		t.Errorf("Expected output to contain 'variant=debug', got: %s", output)
	}
}

func TestLogger_Error(t *testing.T) {
	var buf bytes.Buffer
	lg := logger.NewWithWriter(&buf)
	lg.Error(os.ErrPermission)

	output := buf.String()
	if !strings.Contains(output, "permission denied") {
		t.Errorf("Expected output to contain 'permission denied', got: %s", output)
	}
	if !strings.HasPrefix(output, "✗ Error: ") {
		t.Errorf("Expected output to start with '✗ Error: ', got: %s", output)
	}
}

func TestLogger_Warn(t *testing.T) {
	var buf bytes.Buffer
	lg := logger.NewWithWriter(&buf)
	lg.Warn("some warning", "artifact", "BUNDLE")

	output := buf.String()
	if !strings.Contains(output, "some warning") {
		t.Errorf("Expected output to contain 'some warning', got: %s", output)
	}
	if !strings.Contains(output, "! some warning artifact=BUNDLE") {
		t.Errorf("Expected a warning marker and attributes, got: %s", output)
	}
}

func TestLogger_Verbose(t *testing.T) {
	var buf bytes.Buffer
	lg := logger.NewWithWriter(&buf)

	lg.Debug("hidden")
	if strings.Contains(buf.String(), "hidden") {
		t.Errorf("Expected debug output to be filtered, got: %s", buf.String())
	}

	lg.SetVerbose(true)
	lg.Debug("shown")
	if !strings.Contains(buf.String(), "shown") {
		t.Errorf("Expected debug output after SetVerbose, got: %s", buf.String())
	}
}

func TestLogger_SetOutput(t *testing.T) {
	var first, second bytes.Buffer
	lg := logger.NewWithWriter(&first)
	lg.SetOutput(&second)
	lg.Info("redirected")

	if first.Len() != 0 {
		t.Errorf("Expected no output on the original writer, got: %s", first.String())
	}
	if !strings.Contains(second.String(), "redirected") {
		t.Errorf("Expected output on the new writer, got: %s", second.String())
	}
}

func TestLogger_JSON(t *testing.T) {
	var buf bytes.Buffer
	lg := logger.NewWithWriter(&buf)
	lg.SetJSON(true)
	lg.Info("configured variant", "variant", "debug")
	lg.Error(os.ErrNotExist)

	output := buf.String()
	if !strings.Contains(output, `"level":"INFO"`) {
		t.Errorf("Expected JSON level field, got: %s", output)
	}
	if !strings.Contains(output, `"variant":"debug"`) {
		t.Errorf("Expected JSON attribute, got: %s", output)
	}
	if !strings.Contains(output, `"error":"file does not exist"`) {
		t.Errorf("Expected JSON error field, got: %s", output)
	}
}

func TestLogger_ErrorNil(t *testing.T) {
	var buf bytes.Buffer
	lg := logger.NewWithWriter(&buf)
	lg.Error(nil)

	if buf.Len() != 0 {
		t.Errorf("Expected no output for a nil error, got: %s", buf.String())
	}
}

func TestNew(t *testing.T) {
	output, err := captureStderr(func() {
		lg := logger.New()
		lg.Info("test initialization")
	})
	if err != nil {
		t.Fatalf("Failed to capture stderr: %v", err)
	}

	if !strings.Contains(output, "test initialization") {
		t.Errorf("Expected logger to log 'test initialization', got: %s", output)
	}
}
