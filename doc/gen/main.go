// Command gen renders each container with sample data, captures framebuffer
// pixels, and saves JPEG screenshots to doc/imgs/.
//
// Usage:
//
//	devbox shell
//	go run ./doc/gen/
package main

import (
	"fmt"
	"image"
	"image/jpeg"
	"os"
	"path/filepath"
	"runtime"
	"strconv"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"

	"github.com/go-theft-auto/vflow"
	"github.com/go-theft-auto/vflow/backend/opengl"
	"github.com/go-theft-auto/vflow/internal/democonfig"
)

func init() {
	runtime.LockOSThread()
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// screenshot defines a single capture.
type screenshot struct {
	name          string // filename without extension
	width, height int
	// build lays the view out at the given size and returns its painter.
	build         func(w, h float64) func(dl *vflow.DrawList)
}

func run() error {
	if err := glfw.Init(); err != nil {
		return fmt.Errorf("glfw init: %w", err)
	}
	defer glfw.Terminate()

	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	glfw.WindowHint(glfw.Visible, glfw.False)

	window, err := glfw.CreateWindow(800, 600, "screenshot-gen", nil, nil)
	if err != nil {
		return fmt.Errorf("create window: %w", err)
	}
	window.MakeContextCurrent()

	if err := gl.Init(); err != nil {
		return fmt.Errorf("gl init: %w", err)
	}

	renderer, err := opengl.NewRenderer(800, 600)
	if err != nil {
		return fmt.Errorf("renderer: %w", err)
	}
	defer renderer.Delete()

	outDir := filepath.Join("doc", "imgs")
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return fmt.Errorf("mkdir: %w", err)
	}

	shots := buildScreenshots()
	for _, s := range shots {
		if err := capture(renderer, s, outDir); err != nil {
			return fmt.Errorf("capture %s: %w", s.name, err)
		}
		fmt.Printf("  %s.jpg (%dx%d)\n", s.name, s.width, s.height)
	}

	fmt.Printf("\nGenerated %d screenshots in %s/\n", len(shots), outDir)
	return nil
}

func capture(renderer *opengl.Renderer, s screenshot, outDir string) error {
	// The hidden window stays at 800x600, larger than every screenshot; only
	// the projection changes.
	renderer.Resize(s.width, s.height)
	paint := s.build(float64(s.width), float64(s.height))

	gl.Viewport(0, 0, int32(s.width), int32(s.height))
	gl.ClearColor(0.12, 0.12, 0.14, 1.0)
	gl.Clear(gl.COLOR_BUFFER_BIT)

	dl := vflow.AcquireDrawList()
	dl.FontTexture = renderer.FontTextureID()
	paint(dl)
	err := renderer.Render(dl)
	vflow.ReleaseDrawList(dl)
	if err != nil {
		return err
	}

	pixels := make([]byte, s.width*s.height*4)
	gl.ReadPixels(0, 0, int32(s.width), int32(s.height), gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(pixels))

	// OpenGL origin is bottom-left
	rowLen := s.width * 4
	tmp := make([]byte, rowLen)
	for y := 0; y < s.height/2; y++ {
		top := y * rowLen
		bot := (s.height - 1 - y) * rowLen
		copy(tmp, pixels[top:top+rowLen])
		copy(pixels[top:top+rowLen], pixels[bot:bot+rowLen])
		copy(pixels[bot:bot+rowLen], tmp)
	}

	img := image.NewRGBA(image.Rect(0, 0, s.width, s.height))
	copy(img.Pix, pixels)

	f, err := os.Create(filepath.Join(outDir, s.name+".jpg"))
	if err != nil {
		return err
	}
	defer f.Close()
	return jpeg.Encode(f, img, &jpeg.Options{Quality: 90})
}

func buildScreenshots() []screenshot {
	style := vflow.DarkStyle()
	origin := vflow.Vec2{}

	return []screenshot{
		{
			name: "list", width: 400, height: 300,
			build: func(w, h float64) func(*vflow.DrawList) {
				list := vflow.NewListView(vflow.NewObservableList(democonfig.SampleLines(100_000)...),
					vflow.WithStyle(style))
				list.Resize(w, h)
				list.Layout()
				return func(dl *vflow.DrawList) { list.Paint(dl, origin) }
			},
		},
		{
			name: "list_wrapped", width: 400, height: 300,
			build: func(w, h float64) func(*vflow.DrawList) {
				list := vflow.NewListView(vflow.NewObservableList(democonfig.SampleLines(100_000)...),
					vflow.WithStyle(style), vflow.WithWrap(vflow.WrapModeWord))
				bar := vflow.NewScrollBar(list.Engine())
				list.Resize(w-float64(style.ScrollbarSize), h)
				list.ScrollTo(50_000)
				list.Layout()
				return func(dl *vflow.DrawList) {
					list.Paint(dl, origin)
					bar.Paint(dl, vflow.Rect{X: float32(w) - style.ScrollbarSize, W: style.ScrollbarSize, H: float32(h)}, style)
				}
			},
		},
		{
			name: "tree", width: 400, height: 300,
			build: func(w, h float64) func(*vflow.DrawList) {
				root := democonfig.SampleTree(200, 3)
				root.Children()[0].ExpandAll()
				tree := vflow.NewTreeView(root, vflow.WithStyle(style))
				tree.Resize(w, h)
				tree.Layout()
				return func(dl *vflow.DrawList) { tree.Paint(dl, origin) }
			},
		},
		{
			name: "table", width: 500, height: 300,
			build: func(w, h float64) func(*vflow.DrawList) {
				rows := vflow.NewObservableList(democonfig.SampleRows(10_000)...)
				table, err := vflow.NewTableView(rows, []*vflow.TableColumn[democonfig.Row]{
					{Title: "ID", Value: func(r democonfig.Row) string { return strconv.Itoa(r.ID) }, Flags: vflow.ColumnWidthFixed, InitWidth: 80},
					{Title: "Name", Value: func(r democonfig.Row) string { return r.Name }},
					{Title: "Words", Value: func(r democonfig.Row) string { return strconv.Itoa(r.Words) }, Flags: vflow.ColumnWidthStretch},
				}, vflow.WithStyle(style))
				if err != nil {
					panic(err)
				}
				table.Resize(w, h)
				table.Layout()
				return func(dl *vflow.DrawList) { table.Paint(dl, origin) }
			},
		},
	}
}
