package parsers

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mvp-joe/stencil/internal/extraction"
)

// Test Plan for TypeScript/JavaScript Parsers:
// - Render the fixture class, interface, type alias, enum and functions with default options
// - Include private/protected members and non-exported declarations with IncludePrivate
// - Keep the export keyword only with IncludeExportKeyword
// - Drop decorators and doc comments when IncludeDecorators is false
// - N public and M private methods yield N or N+M signatures in order
// - Extraction is idempotent and class blocks are balanced
// - Method decorators, abstract classes and namespace members
// - Anonymous default-exported classes keep their members
// - JavaScript classes (fields, accessors, default params) and functions
// - TSX files parse with the TSX grammar
// - Comment-only and empty files yield ""
// - Syntax errors do not fail extraction
// - Language() reports the grammar name

const serviceFixture = "../../testdata/code/typescript/service.ts"

func readFixture(t *testing.T, path string) []byte {
	t.Helper()
	source, err := os.ReadFile(filepath.Join(path))
	require.NoError(t, err)
	return source
}

func TestTypeScriptParser_Fixture(t *testing.T) {
	t.Parallel()

	// Test: Default options render only the public, exported surface
	parser := NewTypeScriptParser()
	out, err := parser.Extract(readFixture(t, serviceFixture), extraction.DefaultOptions())
	require.NoError(t, err)

	expected := `/**
 * Stores users in memory.
 * @example new UserService(repo)
 */
@Injectable()
class UserService<T extends User = User> extends BaseService implements Disposable {
  /**
   * Number of cached users.
   */
  public count: number;
  readonly name?: string;
  constructor(private readonly repo: Repository<T>, @Inject("cfg") config?: Config);
  /**
   * Finds a user.
   * @param id the user id
   */
  async findById(id: string): Promise<T | undefined>;
  static create<U extends User>(repo: Repository<U>, limit = 10): UserService<U>;
}

interface User {
  id: string;
  name?: string;
}

type UserId = string;

enum Role {
  Admin,
  Member,
}

function createUser(name: string, ...tags: string[]): User;

function* ids(): Generator<number>;

declare function ambient(x: number): string;
`
	assert.Equal(t, expected, out)
}

func TestTypeScriptParser_IncludePrivate(t *testing.T) {
	t.Parallel()

	// Test: Private members and non-exported declarations appear with IncludePrivate
	parser := NewTypeScriptParser()
	source := readFixture(t, serviceFixture)

	out, err := parser.Extract(source, extraction.Options{IncludePrivate: true, IncludeDecorators: true})
	require.NoError(t, err)

	assert.Contains(t, out, "  private cache: Map<string, T>;\n")
	assert.Contains(t, out, "  #secret;\n")
	assert.Contains(t, out, "  protected validate(user: T): boolean;\n")
	assert.Contains(t, out, "function helper(): void;\n")

	// Members keep source order.
	assert.Less(t, strings.Index(out, "findById"), strings.Index(out, "validate"))
	assert.Less(t, strings.Index(out, "validate"), strings.Index(out, "static create"))

	defaults, err := parser.Extract(source, extraction.DefaultOptions())
	require.NoError(t, err)
	assert.NotContains(t, defaults, "cache")
	assert.NotContains(t, defaults, "#secret")
	assert.NotContains(t, defaults, "helper")
}

func TestTypeScriptParser_ExportKeyword(t *testing.T) {
	t.Parallel()

	parser := NewTypeScriptParser()
	source := readFixture(t, serviceFixture)

	t.Run("removed by default", func(t *testing.T) {
		t.Parallel()

		out, err := parser.Extract(source, extraction.DefaultOptions())
		require.NoError(t, err)
		assert.NotContains(t, out, "export ")
	})

	t.Run("kept when requested", func(t *testing.T) {
		t.Parallel()

		opts := extraction.DefaultOptions()
		opts.IncludeExportKeyword = true
		out, err := parser.Extract(source, opts)
		require.NoError(t, err)

		assert.Contains(t, out, "\nexport class UserService<T extends User = User>")
		assert.Contains(t, out, "\nexport interface User {\n")
		assert.Contains(t, out, "\nexport type UserId = string;\n")
		assert.Contains(t, out, "\nexport enum Role {\n")
		assert.Contains(t, out, "\nexport function createUser(")
		// Ambient declarations keep declare and never gain export.
		assert.Contains(t, out, "\ndeclare function ambient(x: number): string;\n")
	})
}

func TestTypeScriptParser_WithoutDecorators(t *testing.T) {
	t.Parallel()

	// Test: IncludeDecorators=false drops decorators and doc comments alike
	parser := NewTypeScriptParser()
	out, err := parser.Extract(readFixture(t, serviceFixture), extraction.Options{})
	require.NoError(t, err)

	assert.NotContains(t, out, "@Injectable")
	assert.NotContains(t, out, "@Inject(")
	assert.NotContains(t, out, "/**")
	assert.True(t, strings.HasPrefix(out, "class UserService<T extends User = User>"))
	assert.Contains(t, out, "  constructor(private readonly repo: Repository<T>, config?: Config);\n")
}

func TestTypeScriptParser_PublicAndPrivateMethods(t *testing.T) {
	t.Parallel()

	// Test: N public and M private methods render as N or N+M signatures in order
	const public, private = 3, 2

	var b strings.Builder
	b.WriteString("export class Widget {\n")
	var all, visible []string
	for i := 0; i < public+private; i++ {
		name := fmt.Sprintf("method%d", i)
		if i%2 == 1 && len(all)-len(visible) < private {
			b.WriteString(fmt.Sprintf("  private %s(): void {}\n", name))
			all = append(all, "private "+name)
		} else {
			b.WriteString(fmt.Sprintf("  %s(): void {}\n", name))
			all = append(all, name)
			visible = append(visible, name)
		}
	}
	b.WriteString("}\n")
	require.Len(t, visible, public)

	parser := NewTypeScriptParser()
	signatures := func(opts extraction.Options) []string {
		out, err := parser.Extract([]byte(b.String()), opts)
		require.NoError(t, err)

		var sigs []string
		for _, line := range strings.Split(out, "\n") {
			if strings.HasSuffix(line, "(): void;") {
				sigs = append(sigs, strings.TrimSuffix(strings.TrimSpace(line), "(): void;"))
			}
		}
		return sigs
	}

	assert.Equal(t, visible, signatures(extraction.Options{}))
	assert.Equal(t, all, signatures(extraction.Options{IncludePrivate: true}))
}

func TestTypeScriptParser_IdempotentAndBalanced(t *testing.T) {
	t.Parallel()

	parser := NewTypeScriptParser()
	source := readFixture(t, serviceFixture)

	for _, opts := range []extraction.Options{
		{},
		extraction.DefaultOptions(),
		{IncludePrivate: true, IncludeExportKeyword: true, IncludeDecorators: true},
	} {
		first, err := parser.Extract(source, opts)
		require.NoError(t, err)
		second, err := parser.Extract(source, opts)
		require.NoError(t, err)

		assert.Equal(t, first, second)
		assert.Equal(t, strings.Count(first, "{"), strings.Count(first, "}"))
		assert.True(t, strings.HasSuffix(first, ";\n"))
	}
}

func TestTypeScriptParser_MethodDecorators(t *testing.T) {
	t.Parallel()

	source := []byte(`export class UserController {
  @Get(":id")
  find(@Param("id") id: string): string {
    return id;
  }
}
`)
	parser := NewTypeScriptParser()

	out, err := parser.Extract(source, extraction.DefaultOptions())
	require.NoError(t, err)
	assert.Contains(t, out, "  @Get(\":id\")\n  find(@Param(\"id\") id: string): string;\n")

	out, err = parser.Extract(source, extraction.Options{})
	require.NoError(t, err)
	assert.Equal(t, "class UserController {\n  find(id: string): string;\n}\n", out)
}

func TestTypeScriptParser_AbstractClass(t *testing.T) {
	t.Parallel()

	source := []byte(`export abstract class Shape {
  abstract area(): number;
  describe(): string {
    return "shape";
  }
}
`)
	parser := NewTypeScriptParser()
	out, err := parser.Extract(source, extraction.DefaultOptions())
	require.NoError(t, err)
	assert.Equal(t, "abstract class Shape {\n  abstract area(): number;\n  describe(): string;\n}\n", out)
}

func TestTypeScriptParser_AnonymousDefaultClass(t *testing.T) {
	t.Parallel()

	source := []byte(`export default class extends Base {
  render(): string {
    return "";
  }
  private state = 0;
}

const Local = class {
  hidden(): void {}
};
`)
	parser := NewTypeScriptParser()

	out, err := parser.Extract(source, extraction.DefaultOptions())
	require.NoError(t, err)
	assert.Equal(t, "default class extends Base {\n  render(): string;\n}\n", out)

	opts := extraction.DefaultOptions()
	opts.IncludeExportKeyword = true
	out, err = parser.Extract(source, opts)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "export default class extends Base {\n"))
	assert.NotContains(t, out, "hidden")
}

func TestTypeScriptParser_Namespace(t *testing.T) {
	t.Parallel()

	// Test: Recursion reaches declarations nested in namespaces
	source := []byte(`export namespace Geometry {
  export function area(radius: number): number {
    return Math.PI * radius * radius;
  }
}
`)
	parser := NewTypeScriptParser()
	out, err := parser.Extract(source, extraction.DefaultOptions())
	require.NoError(t, err)
	assert.Equal(t, "function area(radius: number): number;\n", out)
}

func TestTypeScriptParser_FilteredDocCommentDropped(t *testing.T) {
	t.Parallel()

	source := []byte(`/** Internal helper. */
class Internal {
  run(): void {}
}
`)
	parser := NewTypeScriptParser()
	out, err := parser.Extract(source, extraction.DefaultOptions())
	require.NoError(t, err)
	assert.Equal(t, "", out)
}

func TestTypeScriptParser_EmptyAndCommentOnly(t *testing.T) {
	t.Parallel()

	parser := NewTypeScriptParser()
	for _, source := range []string{"", "// only a comment\n", "/* block */\nconst x = 1;\n"} {
		out, err := parser.Extract([]byte(source), extraction.DefaultOptions())
		require.NoError(t, err)
		assert.Equal(t, "", out, "source %q", source)
	}
}

func TestTypeScriptParser_SyntaxErrors(t *testing.T) {
	t.Parallel()

	// Test: tree-sitter recovers from errors, so extraction still succeeds
	parser := NewTypeScriptParser()
	_, err := parser.Extract([]byte("export function broken(a: string {\n  return\n"), extraction.DefaultOptions())
	assert.NoError(t, err)
}

func TestJavaScriptParser_Class(t *testing.T) {
	t.Parallel()

	source := []byte(`export class Counter {
  #count = 0;
  static zero = 0;

  increment(step = 1) {
    this.#count += step;
  }

  get value() {
    return this.#count;
  }
}

export function sum(a, b) {
  return a + b;
}

function internal() {}
`)
	parser := NewJavaScriptParser()
	out, err := parser.Extract(source, extraction.DefaultOptions())
	require.NoError(t, err)

	expected := "class Counter {\n" +
		"  static zero;\n" +
		"  increment(step = 1);\n" +
		"  get value();\n" +
		"}\n" +
		"\n" +
		"function sum(a, b);\n"
	assert.Equal(t, expected, out)

	out, err = parser.Extract(source, extraction.Options{IncludePrivate: true})
	require.NoError(t, err)
	assert.Contains(t, out, "  #count;\n")
	assert.Contains(t, out, "function internal();\n")
}

func TestTSXParser_Component(t *testing.T) {
	t.Parallel()

	source := []byte(`export function App(props: Props): JSX.Element {
  return <div className="app">{props.title}</div>;
}
`)
	parser := NewTSXParser()
	out, err := parser.Extract(source, extraction.DefaultOptions())
	require.NoError(t, err)
	assert.Equal(t, "function App(props: Props): JSX.Element;\n", out)
}

func TestTypeScriptParser_Language(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "typescript", NewTypeScriptParser().Language())
	assert.Equal(t, "tsx", NewTSXParser().Language())
	assert.Equal(t, "javascript", NewJavaScriptParser().Language())
}
