package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-regform/pkg/orchestrator"
	"github.com/goliatone/go-regform/pkg/result"
	"github.com/goliatone/go-regform/pkg/rules"
	"github.com/goliatone/go-regform/pkg/testsupport"
)

func execute(t *testing.T, a *app, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd(a)
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func writeConfig(t *testing.T, endpoint, driver string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "regform.yaml")
	body := fmt.Sprintf(`endpoint: %s
storage:
  driver: %s
  path: %s
log:
  level: error
`, endpoint, driver, filepath.Join(dir, "store"))
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func writeValues(t *testing.T, values map[string]string) string {
	t.Helper()
	data, err := yaml.Marshal(values)
	require.NoError(t, err)
	path := filepath.Join(t.TempDir(), "values.yaml")
	require.NoError(t, os.WriteFile(path, data, 0o644))
	return path
}

func registrationServer(t *testing.T, hits *atomic.Int32) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		var body map[string]string
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		fmt.Fprintf(w, `{"id":11,"fullName":%q}`, body[rules.FieldFullName])
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestSubmitThenLast(t *testing.T) {
	var hits atomic.Int32
	srv := registrationServer(t, &hits)
	cfg := writeConfig(t, srv.URL+"/users", "file")
	values := writeValues(t, testsupport.RegistrationValues())

	out, err := execute(t, newApp(), "submit", "--config", cfg, "--values", values, "--check-contract")
	require.NoError(t, err)
	require.Contains(t, out, result.SuccessHeading)
	require.Contains(t, out, `"fullName": "Ana Gomez"`)
	require.EqualValues(t, 1, hits.Load())

	out, err = execute(t, newApp(), "last", "--config", cfg)
	require.NoError(t, err)

	var stored map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &stored))
	require.EqualValues(t, 11, stored["id"])
}

func TestSubmit_InvalidFieldsBlockTheRequest(t *testing.T) {
	var hits atomic.Int32
	srv := registrationServer(t, &hits)
	cfg := writeConfig(t, srv.URL+"/users", "memory")
	values := writeValues(t, testsupport.RegistrationValues())

	out, err := execute(t, newApp(), "submit", "--config", cfg, "--values", values, "--set", "age=17")
	require.Error(t, err)
	require.True(t, errors.Is(err, orchestrator.ErrFormInvalid))
	require.Contains(t, out, orchestrator.InvalidFormMessage)
	require.Contains(t, out, "Edad: "+rules.MessageAge)
	require.EqualValues(t, 0, hits.Load())
}

func TestSubmit_FailureResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte("upstream down"))
	}))
	defer srv.Close()
	cfg := writeConfig(t, srv.URL, "memory")
	values := writeValues(t, testsupport.RegistrationValues())

	out, err := execute(t, newApp(), "submit", "--config", cfg, "--values", values)
	require.Error(t, err)
	require.Contains(t, out, result.FailureHeading)
	require.Contains(t, out, `"error"`)
}

func TestLast_NothingStored(t *testing.T) {
	cfg := writeConfig(t, "http://localhost/users", "sqlite")
	_, err := execute(t, newApp(), "last", "--config", cfg)
	require.Error(t, err)
	require.Contains(t, err.Error(), "nothing stored")
}

func TestContract(t *testing.T) {
	out, err := execute(t, newApp(), "contract", "--endpoint", "https://api.example.com/v1/users")
	require.NoError(t, err)

	var doc map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &doc))
	paths, ok := doc["paths"].(map[string]any)
	require.True(t, ok)
	require.Contains(t, paths, "/v1/users")

	out, err = execute(t, newApp(), "contract", "--format", "yaml")
	require.NoError(t, err)
	require.Contains(t, out, "submitRegistration")

	_, err = execute(t, newApp(), "contract", "--format", "toml")
	require.Error(t, err)
}

func TestRender_ValidateShowsInlineErrors(t *testing.T) {
	output := filepath.Join(t.TempDir(), "page.html")
	out, err := execute(t, newApp(), "render",
		"--set", "fullName=Ana Gomez",
		"--set", "age=17",
		"--validate",
		"--output", output,
	)
	require.NoError(t, err)
	require.Contains(t, out, "written to")

	html, err := os.ReadFile(output)
	require.NoError(t, err)
	page := string(html)
	require.Contains(t, page, "HOLA Ana Gomez")
	require.Contains(t, page, `id="ageError"`)
	require.Contains(t, page, rules.MessageAge)
	require.False(t, strings.Contains(page, rules.MessageFullName))
}

func TestRun_RequiresTerminal(t *testing.T) {
	a := newApp()
	a.isTerminal = func() bool { return false }
	_, err := execute(t, a, "run")
	require.ErrorIs(t, err, errNotTerminal)
}

func TestLoadValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "values.yaml")
	require.NoError(t, os.WriteFile(path, []byte("age: 30\ncity: Roma\n"), 0o644))

	values, err := loadValues(path, []string{"city=Lima", "dni=1234567"})
	require.NoError(t, err)
	require.Equal(t, map[string]string{"age": "30", "city": "Lima", "dni": "1234567"}, values)

	_, err = loadValues("", []string{"nope"})
	require.Error(t, err)
}

func TestLoadValues_KeepsScalarText(t *testing.T) {
	path := filepath.Join(t.TempDir(), "values.yaml")
	body := "dni: 01234567\npostalCode: 007\nage: 0x20\nphone: 1e7\ncity: ~\naddress: 'null'\n"
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))

	values, err := loadValues(path, nil)
	require.NoError(t, err)
	require.Equal(t, map[string]string{
		"dni":        "01234567",
		"postalCode": "007",
		"age":        "0x20",
		"phone":      "1e7",
		"city":       "",
		"address":    "null",
	}, values)
	require.True(t, rules.DNI(values["dni"]))
	require.True(t, rules.PostalCode(values["postalCode"]))
	require.False(t, rules.Age(values["age"]))

	nested := filepath.Join(t.TempDir(), "nested.yaml")
	require.NoError(t, os.WriteFile(nested, []byte("city:\n  name: Roma\n"), 0o644))
	_, err = loadValues(nested, nil)
	require.Error(t, err)
}

func TestSubmit_LeadingZeroDNIIsPostedVerbatim(t *testing.T) {
	var got atomic.Value
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body map[string]string
		_ = json.NewDecoder(r.Body).Decode(&body)
		got.Store(body[rules.FieldDNI])
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"id":12}`))
	}))
	defer srv.Close()

	values := testsupport.RegistrationValues()
	delete(values, rules.FieldDNI)
	data, err := yaml.Marshal(values)
	require.NoError(t, err)
	path := filepath.Join(t.TempDir(), "values.yaml")
	require.NoError(t, os.WriteFile(path, append(data, []byte("dni: 01234567\n")...), 0o644))

	cfg := writeConfig(t, srv.URL+"/users", "memory")
	_, err = execute(t, newApp(), "submit", "--config", cfg, "--values", path)
	require.NoError(t, err)
	require.Equal(t, "01234567", got.Load())
}

func TestRender_TemplatesDirectory(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "templates"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "templates", "page.tmpl"),
		[]byte("<section>{{ title }}</section>\n"), 0o644))

	out, err := execute(t, newApp(), "render", "--set", "fullName=Ana Gomez", "--templates", dir)
	require.NoError(t, err)
	require.Equal(t, "<section>HOLA Ana Gomez</section>\n", out)
}

func TestContract_TitleAndVersion(t *testing.T) {
	out, err := execute(t, newApp(), "contract", "--title", "Alta de socios", "--version", "3.1.0")
	require.NoError(t, err)

	var doc struct {
		Info struct {
			Title   string `json:"title"`
			Version string `json:"version"`
		} `json:"info"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &doc))
	require.Equal(t, "Alta de socios", doc.Info.Title)
	require.Equal(t, "3.1.0", doc.Info.Version)
}
