package main

import (
	"bytes"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	a := &app{stdout: &stdout, stderr: &stderr, logger: zap.NewNop()}
	root := newRootCmd(a)
	root.SetArgs(args)
	err := root.Execute()
	return stdout.String(), err
}

func TestSubmit_Success(t *testing.T) {
	out, err := run(t, "submit",
		"--first-name", "Marcelo",
		"--last-name", "Barros",
		"--email", "marcelo.barros@teste.com",
		"--comment", "teste",
		"--product", "YouTube",
		"--service", "feedback",
	)
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if !strings.HasPrefix(out, "Mensagem enviada com sucesso.\n") {
		t.Fatalf("unexpected output %q", out)
	}
	if !strings.Contains(out, `"product": "youtube"`) {
		t.Fatalf("payload missing product:\n%s", out)
	}
}

func TestSubmit_PhoneRequired(t *testing.T) {
	out, err := run(t, "submit",
		"--first-name", "Marcelo",
		"--last-name", "Barros",
		"--email", "marcelo.barros@teste.com",
		"--comment", "teste",
		"--phone", "abcdefgh",
		"--phone-required",
	)
	if !errors.Is(err, errFailed) {
		t.Fatalf("expected errFailed, got %v", err)
	}
	want := "Valide os campos obrigatórios!\nO campo Telefone é obrigatório.\n"
	if out != want {
		t.Fatalf("unexpected output\nwant: %q\n got: %q", want, out)
	}
}

func TestSubmit_EnglishFormPayload(t *testing.T) {
	out, err := run(t, "--locale", "en", "submit",
		"--first-name", "Ada",
		"--last-name", "Lovelace",
		"--email", "ada@example.com",
		"--comment", "<b>hi</b>",
		"--format", "form",
	)
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	want := "Message sent successfully.\nemail=ada%40example.com&firstName=Ada&lastName=Lovelace&open-text-area=hi\n"
	if out != want {
		t.Fatalf("unexpected output\nwant: %q\n got: %q", want, out)
	}
}

func TestRender_WritesPages(t *testing.T) {
	dir := t.TempDir()
	if _, err := run(t, "render", "--out", dir); err != nil {
		t.Fatalf("render: %v", err)
	}
	index, err := os.ReadFile(filepath.Join(dir, "index.html"))
	if err != nil {
		t.Fatalf("read index: %v", err)
	}
	if !strings.Contains(string(index), "<title>Central de Atendimento ao Cliente TAT</title>") {
		t.Fatalf("index missing title")
	}
	if _, err := os.Stat(filepath.Join(dir, "privacy.html")); err != nil {
		t.Fatalf("privacy page missing: %v", err)
	}
}

func TestCheck(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/missing" {
			http.NotFound(w, r)
			return
		}
		_, _ = w.Write([]byte("<html><h1>CAC TAT</h1></html>"))
	}))
	defer srv.Close()

	out, err := run(t, "check", srv.URL+"/index.html")
	if err != nil {
		t.Fatalf("check: %v", err)
	}
	if !strings.Contains(out, "200") {
		t.Fatalf("unexpected output %q", out)
	}

	if _, err := run(t, "check", srv.URL+"/missing"); !errors.Is(err, errFailed) {
		t.Fatalf("expected errFailed, got %v", err)
	}
}

func TestConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cactat.yaml")
	if err := os.WriteFile(path, []byte("banner_duration: 0s\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := run(t, "--config", path, "submit"); err == nil || errors.Is(err, errFailed) {
		t.Fatalf("expected config error, got %v", err)
	}
}
