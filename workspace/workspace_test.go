package workspace

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	protocol "github.com/tliron/glsp/protocol_3_16"

	"github.com/dhamidi/comb/grammar/calc"
	"github.com/dhamidi/comb/grammar/json"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestScanAll(t *testing.T) {
	dir := t.TempDir()
	good := writeFile(t, dir, "a.json", `{"a": [1, 2]}`)
	bad := writeFile(t, dir, "conf/app.conf", "a = 1\nb = }\n")
	writeFile(t, dir, "notes.txt", "ignored")
	writeFile(t, dir, ".hidden/x.json", "{")

	ws := New(dir)
	require.NoError(t, ws.ScanAll())

	docs := ws.Documents()
	require.Len(t, docs, 2)
	assert.Equal(t, good, docs[0].Path)
	assert.Equal(t, bad, docs[1].Path)

	doc := ws.GetFile(good)
	require.NotNil(t, doc)
	require.NoError(t, doc.Err)
	assert.Equal(t, "json", doc.Language.Name)
	v, ok := doc.Value.(json.Object)
	require.True(t, ok)
	assert.Equal(t, `{"a":[1,2]}`, v.String())
	assert.Empty(t, doc.Diagnostics())

	diags := ws.Diagnostics()
	require.Len(t, diags, 1)
	assert.Equal(t, bad, diags[0].Path)
	assert.Equal(t, "syntax", diags[0].Source)
	assert.Equal(t, 2, diags[0].Start.Line)
	assert.Equal(t, SeverityError, diags[0].Severity)
	assert.NotEmpty(t, diags[0].Message)
}

func TestUpdateFile(t *testing.T) {
	ws := New(t.TempDir())

	doc, err := ws.UpdateFile("jobs.cron", []byte("0 3 * * * backup\n"))
	require.NoError(t, err)
	assert.Equal(t, 1, doc.Version)
	assert.NoError(t, doc.Err)

	doc, err = ws.UpdateFile("jobs.cron", []byte("0 3 * * * backup\n0 24 * * * late\n"))
	require.NoError(t, err)
	assert.Equal(t, 2, doc.Version)
	require.Error(t, doc.Err)
	diags := doc.Diagnostics()
	require.Len(t, diags, 1)
	assert.Equal(t, 2, diags[0].Start.Line)
	assert.Equal(t, "jobs.cron", diags[0].Start.Filename)

	_, err = ws.UpdateFile("readme.md", []byte("# hi"))
	assert.True(t, errors.Is(err, ErrUnknownLanguage), "err = %v", err)

	ws.RemoveFile("jobs.cron")
	assert.Nil(t, ws.GetFile("jobs.cron"))
}

func TestRuntimeDiagnostic(t *testing.T) {
	ws := New(t.TempDir())
	doc, err := ws.UpdateFile("prog.calc", []byte("let x = 1;\nprint x / 0;\n"))
	require.NoError(t, err)
	assert.True(t, errors.Is(doc.Err, calc.ErrDivisionByZero))

	diags := doc.Diagnostics()
	require.Len(t, diags, 1)
	assert.Equal(t, "calc", diags[0].Source)
	assert.Equal(t, "division by zero", diags[0].Message)
	assert.Equal(t, 2, diags[0].Start.Line)
	assert.Equal(t, 9, diags[0].Start.Column)
	assert.Equal(t, 10, diags[0].End.Column)
}

func TestLintWarnings(t *testing.T) {
	ws := New(t.TempDir())
	doc, err := ws.UpdateFile("jobs.cron", []byte("@daily ok\n0 0 30 2 * never\n"))
	require.NoError(t, err)
	require.NoError(t, doc.Err)

	diags := doc.Diagnostics()
	require.Len(t, diags, 1)
	assert.Equal(t, SeverityWarning, diags[0].Severity)
	assert.Equal(t, "lint", diags[0].Source)
	assert.Equal(t, "schedule never fires", diags[0].Message)
	assert.Equal(t, 2, diags[0].Start.Line)
	assert.Equal(t, 1, diags[0].Start.Column)
	assert.Equal(t, "jobs.cron:2:1: warning: schedule never fires", diags[0].String())

	pd := toProtocolDiagnostic(diags[0])
	assert.Equal(t, protocol.DiagnosticSeverityWarning, *pd.Severity)
}

func TestWithExtensions(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "settings.cfg", "a = 1")

	assert.Nil(t, New(dir).LanguageFor(path))

	ws := New(dir, WithExtensions("hocon", "cfg"), WithExtensions("nope", ".x"))
	require.NoError(t, ws.ScanAll())
	doc := ws.GetFile(path)
	require.NotNil(t, doc)
	assert.Equal(t, "hocon", doc.Language.Name)
	assert.NoError(t, doc.Err)
	assert.Nil(t, ws.LanguageFor("a.x"))
}

func TestLanguages(t *testing.T) {
	assert.Equal(t, "hocon", LanguageFor("x/app.CONF").Name)
	assert.Equal(t, "cron", LanguageFor("jobs.crontab").Name)
	assert.Nil(t, LanguageFor("main.go"))
	require.NotNil(t, LanguageNamed("uri"))

	v, err := LanguageNamed("uri").Parse([]byte("http://example.com/a?b=c\n"))
	require.NoError(t, err)
	assert.Equal(t, "http://example.com/a?b=c", v.(interface{ String() string }).String())
}

func TestFileWatcher(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "a.json", "[1]")
	ws := New(dir)
	fw := NewFileWatcher(ws, time.Hour)

	var changed []string
	fw.OnChange(func(p string, doc *Document) {
		if doc == nil {
			changed = append(changed, "-"+p)
			return
		}
		changed = append(changed, p)
	})

	fw.Scan()
	assert.Equal(t, []string{path}, changed)
	assert.Equal(t, 1, ws.GetFile(path).Version)

	fw.Scan()
	assert.Len(t, changed, 1, "unchanged files are not rescanned")

	require.NoError(t, os.WriteFile(path, []byte("[1,"), 0o644))
	later := time.Now().Add(time.Minute)
	require.NoError(t, os.Chtimes(path, later, later))
	fw.Scan()
	require.Len(t, changed, 2)
	assert.Equal(t, 2, ws.GetFile(path).Version)
	assert.Error(t, ws.GetFile(path).Err)

	require.NoError(t, os.Remove(path))
	fw.Scan()
	assert.Equal(t, "-"+path, changed[2])
	assert.Nil(t, ws.GetFile(path))
}

func TestProtocolDiagnostic(t *testing.T) {
	ws := New(t.TempDir())
	doc, err := ws.UpdateFile("prog.calc", []byte("print y;"))
	require.NoError(t, err)
	diags := doc.Diagnostics()
	require.Len(t, diags, 1)

	pd := toProtocolDiagnostic(diags[0])
	assert.Equal(t, protocol.Position{Line: 0, Character: 6}, pd.Range.Start)
	assert.Equal(t, protocol.Position{Line: 0, Character: 7}, pd.Range.End)
	require.NotNil(t, pd.Severity)
	assert.Equal(t, protocol.DiagnosticSeverityError, *pd.Severity)
	assert.Equal(t, "comb/calc", *pd.Source)
}

func TestURIConversion(t *testing.T) {
	path, err := uriToPath("file:///tmp/a%20b/c.json")
	require.NoError(t, err)
	assert.Equal(t, "/tmp/a b/c.json", path)

	path, err = uriToPath("untitled:1")
	require.NoError(t, err)
	assert.Equal(t, "untitled:1", path)

	assert.Equal(t, "file:///tmp/a%20b/c.json", pathToURI("/tmp/a b/c.json"))
}
