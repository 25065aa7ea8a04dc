package gen

import (
	"bytes"
	"strings"
	"testing"

	"github.com/nvimbind/nvimgen/manifest"
)

func i64(v int64) *int64 {
	return &v
}

func testManifest() *manifest.Manifest {
	return &manifest.Manifest{
		Version: manifest.Version{
			APICompatible: 0,
			APILevel:      13,
			Major:         0,
			Minor:         11,
			Patch:         2,
		},
		ErrorTypes: map[string]manifest.ErrorType{
			"Validation": {ID: 1},
			"Exception":  {ID: 0},
		},
		Types: map[string]manifest.HandleType{
			"Window":  {ID: 1, Prefix: "nvim_win_"},
			"Buffer":  {ID: 0, Prefix: "nvim_buf_"},
			"Tabpage": {ID: 2, Prefix: "nvim_tabpage_"},
		},
		Functions: []manifest.Function{
			{
				Name: "nvim_buf_line_count",
				Parameters: []manifest.Parameter{
					{Type: manifest.ScalarType("Buffer"), Name: "buffer"},
				},
				ReturnType: manifest.ScalarType("Integer"),
				Since:      1,
				Method:     true,
			},
			{
				Name: "nvim_buf_set_lines",
				Parameters: []manifest.Parameter{
					{Type: manifest.ScalarType("Buffer"), Name: "buffer"},
					{Type: manifest.ScalarType("Integer"), Name: "start"},
					{Type: manifest.ScalarType("Integer"), Name: "end"},
					{Type: manifest.ScalarType("Boolean"), Name: "strict_indexing"},
					{Type: manifest.DynamicArrayType("String"), Name: "replacement"},
				},
				ReturnType: manifest.ScalarType("void"),
				Since:      1,
			},
			{
				Name: "nvim_win_get_position",
				Parameters: []manifest.Parameter{
					{Type: manifest.ScalarType("Window"), Name: "window"},
				},
				ReturnType: manifest.FixedArrayType{Elem: "Integer", Size: 2},
				Since:      1,
			},
			{
				Name: "nvim_list_bufs",
				ReturnType: manifest.DynamicArrayType("Buffer"),
				Since:      1,
			},
			{
				Name:       "nvim_get_mode",
				ReturnType: manifest.ScalarType("Object"),
				Since:      2,
			},
			{
				Name: "window_get_cursor",
				Parameters: []manifest.Parameter{
					{Type: manifest.ScalarType("Window"), Name: "window"},
				},
				ReturnType:      manifest.ScalarType("Object"),
				Since:           1,
				DeprecatedSince: i64(1),
			},
			{
				Name: "nvim_buf_attach",
				Parameters: []manifest.Parameter{
					{Type: manifest.ScalarType("Buffer"), Name: "buffer"},
					{Type: manifest.ScalarType("LuaRef"), Name: "on_lines"},
				},
				ReturnType: manifest.ScalarType("Boolean"),
				Since:      4,
			},
		},
		UIOptions: []string{"rgb", "ext_cmdline", "ext_popupmenu"},
	}
}

func generate(t *testing.T, m *manifest.Manifest, opts Options) string {
	t.Helper()
	src, err := New(m, opts).Generate()
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	return string(src)
}

func TestGenerate_Declarations(t *testing.T) {
	src := generate(t, testManifest(), Options{})

	for _, want := range []string{
		"// Code generated by nvimgen. DO NOT EDIT.",
		"package nvim",
		"var APIVersion = rpc.Version{",
		"APILevel:      13,",
		"ErrorException",
		"ErrorValidation int64 = 1",
		"int64 = 0",
		"type Buffer int64",
		"const BufferTag int8 = 0",
		"type Window int64",
		"const WindowTag int8 = 1",
		"type Tabpage int64",
		"const TabpageTag int8 = 2",
	} {
		if !strings.Contains(src, want) {
			t.Errorf("output missing %q", want)
		}
	}
}

func TestGenerate_SortedTables(t *testing.T) {
	src := generate(t, testManifest(), Options{})

	// Lexicographic emission order regardless of map iteration order.
	if strings.Index(src, "ErrorException") > strings.Index(src, "ErrorValidation") {
		t.Error("error discriminants not sorted by name")
	}
	b, w, tp := strings.Index(src, "type Buffer"), strings.Index(src, "type Window"), strings.Index(src, "type Tabpage")
	if !(b < tp && tp < w) {
		t.Errorf("handle declarations not sorted by name: Buffer=%d Tabpage=%d Window=%d", b, tp, w)
	}
}

func TestGenerate_ScalarStub(t *testing.T) {
	src := generate(t, testManifest(), Options{})

	if !strings.Contains(src, "func NvimBufLineCount(ctx context.Context, s rpc.Session, buffer Buffer) (int64, error) {") {
		t.Error("missing NvimBufLineCount signature")
	}
	if !strings.Contains(src, `err := s.Call(ctx, "nvim_buf_line_count", 1, func(e *msgpack.Encoder) error {`) {
		t.Error("missing call with wire name and argument count")
	}
	if !strings.Contains(src, "e.WriteHandle(msgpack.Handle{Tag: BufferTag, ID: int64(buffer)})") {
		t.Error("missing handle argument encoding")
	}
	if !strings.Contains(src, "v, err := d.ReadInt()") {
		t.Error("missing integer reply decoding")
	}
}

func TestGenerate_VoidAndSeqParam(t *testing.T) {
	src := generate(t, testManifest(), Options{})

	if !strings.Contains(src, "replacement iter.Seq[string]) error {") {
		t.Error("dynamic array parameter should be a sequence and the return void")
	}
	if !strings.Contains(src, "msgpack.EncodeSeq(e, replacement, func(e *msgpack.Encoder, el string) error {") {
		t.Error("missing sequence argument encoding")
	}
	if !strings.Contains(src, "return d.Skip()") {
		t.Error("void return should skip the result slot")
	}
	if !strings.Contains(src, `"iter"`) {
		t.Error("missing iter import")
	}
	// strict_indexing collides with nothing but still lower-camels.
	if !strings.Contains(src, "strictIndexing bool") {
		t.Error("parameter name not normalized")
	}
}

func TestGenerate_FixedArrayReturn(t *testing.T) {
	src := generate(t, testManifest(), Options{})

	if !strings.Contains(src, "func NvimWinGetPosition(ctx context.Context, s rpc.Session, window Window) ([2]int64, error) {") {
		t.Error("fixed array return should keep its size in the type")
	}
	if !strings.Contains(src, "d.ReadFixedArrayLen(2)") {
		t.Error("missing fixed length check in reply decoding")
	}
}

func TestGenerate_DynamicArrayReturn(t *testing.T) {
	src := generate(t, testManifest(), Options{})

	if !strings.Contains(src, "func NvimListBufs(ctx context.Context, s rpc.Session) ([]Buffer, error) {") {
		t.Error("dynamic array return should be a slice")
	}
	if !strings.Contains(src, "d.ReadHandleTag(BufferTag)") {
		t.Error("missing tag-checked handle element decoding")
	}
	if !strings.Contains(src, "out = append(out, Buffer(v))") {
		t.Error("missing handle element conversion")
	}
}

func TestGenerate_ObjectReturnPrefix(t *testing.T) {
	src := generate(t, testManifest(), Options{})

	// The legacy window_ family claims its handle kind for Object
	// returns; the nvim_ family stays dynamic.
	if !strings.Contains(src, "func WindowGetCursor(ctx context.Context, s rpc.Session, window Window) (Window, error) {") {
		t.Error("window_ Object return should be typed Window")
	}
	if !strings.Contains(src, "func NvimGetMode(ctx context.Context, s rpc.Session) (msgpack.Value, error) {") {
		t.Error("nvim_ Object return should stay dynamic")
	}
}

func TestGenerate_LuaRefSkipped(t *testing.T) {
	src := generate(t, testManifest(), Options{})

	if strings.Contains(src, "NvimBufAttach") {
		t.Error("function with callback-reference parameter must yield no stub")
	}
	if strings.Contains(src, "nvim_buf_attach") {
		t.Error("skipped function leaked into output")
	}
}

func TestGenerate_SkipDeprecated(t *testing.T) {
	src := generate(t, testManifest(), Options{})
	if !strings.Contains(src, "// Deprecated: since API level 1.") {
		t.Error("deprecated stub should carry a deprecation notice")
	}

	src = generate(t, testManifest(), Options{SkipDeprecated: true})
	if strings.Contains(src, "WindowGetCursor") {
		t.Error("deprecated stub emitted despite SkipDeprecated")
	}
}

func TestGenerate_UIOptions(t *testing.T) {
	src := generate(t, testManifest(), Options{})

	for _, want := range []string{
		"type UIOption int",
		"UIOptionRgb UIOption = iota",
		"UIOptionExtCmdline",
		"UIOptionExtPopupmenu",
		`"ext_cmdline",`,
		"func UIOptionFromString(s string) (UIOption, bool) {",
	} {
		if !strings.Contains(src, want) {
			t.Errorf("output missing %q", want)
		}
	}
}

func TestGenerate_UIOptionCollision(t *testing.T) {
	m := testManifest()
	m.UIOptions = []string{"ext_cmdline", "ext__cmdline"}

	_, err := New(m, Options{}).Generate()
	if err == nil {
		t.Fatal("expected an error for colliding enumerants")
	}
	if !strings.Contains(err.Error(), "ExtCmdline") {
		t.Errorf("error should name the colliding enumerant, got %v", err)
	}
}

func TestGenerate_Deterministic(t *testing.T) {
	a, err := New(testManifest(), Options{}).Generate()
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	b, err := New(testManifest(), Options{}).Generate()
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if !bytes.Equal(a, b) {
		t.Error("two runs over identical input differ")
	}
}

func TestGenerate_PackageName(t *testing.T) {
	src := generate(t, testManifest(), Options{PackageName: "remote"})
	if !strings.Contains(src, "package remote") {
		t.Error("package clause should follow Options.PackageName")
	}
}
