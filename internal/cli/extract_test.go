package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mvp-joe/stencil/internal/clipboard"
	"github.com/mvp-joe/stencil/internal/extract"
	"github.com/mvp-joe/stencil/internal/extraction"
	"github.com/mvp-joe/stencil/internal/notify"
)

// Test Plan for extract command:
// - single TypeScript file prints its interface
// - single file with nothing to extract warns with the "check for classes" message
// - unsupported file reports the unsupported message and errReported
// - --copy places the text on the clipboard and confirms with an info message
// - directory argument extracts supported files with "// path" headers in order
// - directory with no supported files warns
// - ignore patterns from config skip matching files during discovery
// - languages lists every language with its extensions

type runnerFixture struct {
	runner   *extractRunner
	out      *bytes.Buffer
	notifier *notify.Recorder
	clip     *clipboard.Memory
}

func newRunnerFixture(ignore ...string) *runnerFixture {
	f := &runnerFixture{
		out:      &bytes.Buffer{},
		notifier: &notify.Recorder{},
	}
	f.runner = &extractRunner{
		service:  extract.NewService(),
		ignore:   ignore,
		opts:     extraction.DefaultOptions(),
		out:      f.out,
		errOut:   &bytes.Buffer{},
		notifier: f.notifier,
	}
	return f
}

func (f *runnerFixture) withClipboard() *runnerFixture {
	f.clip = &clipboard.Memory{}
	f.runner.clipboard = f.clip
	return f
}

func writeSource(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, filepath.FromSlash(name))
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestExtract_SingleFile(t *testing.T) {
	t.Parallel()

	path := writeSource(t, t.TempDir(), "user.ts", "export interface User {\n  id: string;\n}\n")
	f := newRunnerFixture()

	require.NoError(t, f.runner.run(context.Background(), []string{path}))
	assert.Equal(t, "interface User {\n  id: string;\n}\n", f.out.String())
	assert.Empty(t, f.notifier.Messages)
}

func TestExtract_EmptyFile(t *testing.T) {
	t.Parallel()

	path := writeSource(t, t.TempDir(), "script.py", "# nothing here\nprint('hi')\n")
	f := newRunnerFixture()

	require.NoError(t, f.runner.run(context.Background(), []string{path}))
	assert.Empty(t, f.out.String())
	require.Len(t, f.notifier.Messages, 1)
	assert.Equal(t, notify.Message{Level: notify.LevelWarning, Text: extract.EmptyMessage}, f.notifier.Messages[0])
}

func TestExtract_Unsupported(t *testing.T) {
	t.Parallel()

	path := writeSource(t, t.TempDir(), "package.json", "{}")
	f := newRunnerFixture()

	err := f.runner.run(context.Background(), []string{path})
	assert.ErrorIs(t, err, errReported)
	require.Len(t, f.notifier.Messages, 1)
	assert.Equal(t, notify.Message{Level: notify.LevelError, Text: extract.UnsupportedMessage}, f.notifier.Messages[0])
}

func TestExtract_Copy(t *testing.T) {
	t.Parallel()

	src := "class Foo:\n    def bar(self, x: int = 5) -> str:\n        pass\n"
	path := writeSource(t, t.TempDir(), "foo.py", src)
	f := newRunnerFixture().withClipboard()

	require.NoError(t, f.runner.run(context.Background(), []string{path}))
	assert.Equal(t, "interface Foo {\n    bar(x?: number): string\n}", f.clip.Text)
	assert.Equal(t, "interface Foo {\n    bar(x?: number): string\n}\n", f.out.String())
	require.Len(t, f.notifier.Messages, 1)
	assert.Equal(t, notify.LevelInfo, f.notifier.Messages[0].Level)
}

func TestExtract_Directory(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeSource(t, dir, "b/model.py", "class Model:\n    name: str\n")
	writeSource(t, dir, "a.ts", "export function a(): void {}\n")
	writeSource(t, dir, "notes.md", "# notes")
	writeSource(t, dir, "empty.ts", "const x = 1;\n")

	f := newRunnerFixture()
	require.NoError(t, f.runner.run(context.Background(), []string{dir}))

	want := "// " + filepath.ToSlash(filepath.Join(dir, "a.ts")) + "\n" +
		"function a(): void;\n" +
		"\n" +
		"// " + filepath.ToSlash(filepath.Join(dir, "b", "model.py")) + "\n" +
		"interface Model {\n    name: string\n}\n"
	assert.Equal(t, want, f.out.String())
}

func TestExtract_DirectoryWithoutSupportedFiles(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeSource(t, dir, "README.md", "# readme")

	f := newRunnerFixture()
	require.NoError(t, f.runner.run(context.Background(), []string{dir}))
	assert.Empty(t, f.out.String())
	require.Len(t, f.notifier.Messages, 1)
	assert.Equal(t, notify.LevelWarning, f.notifier.Messages[0].Level)
}

func TestExtract_DirectoryIgnorePatterns(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeSource(t, dir, "src/app.ts", "export class App {}\n")
	writeSource(t, dir, "node_modules/lib/index.js", "export class Lib {}\n")
	writeSource(t, dir, "src/types.d.ts", "export declare class Ambient {}\n")

	f := newRunnerFixture("node_modules/**", "**/*.d.ts")
	require.NoError(t, f.runner.run(context.Background(), []string{dir}))

	assert.Contains(t, f.out.String(), "class App {\n}")
	assert.NotContains(t, f.out.String(), "Lib")
	assert.NotContains(t, f.out.String(), "Ambient")
}

func TestLanguagesCommand(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer
	languagesCmd.SetOut(&out)
	languagesCmd.Run(languagesCmd, nil)

	assert.Equal(t, "javascript   .cjs .js .jsx .mjs\n"+
		"python       .py .pyi\n"+
		"tsx          .tsx\n"+
		"typescript   .cts .mts .ts\n", out.String())
}
