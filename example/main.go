// Example opens a GLFW window over a virtualized list, tree or table of
// generated items. Only the visible rows are realized, so a million items
// scroll as smoothly as ten.
//
// Prerequisites:
//
//	Install devbox: https://www.jetify.com/devbox
//	devbox shell                         # provides Go + OpenGL/X11 headers
//	go run ./example/                    # 100k wrapped list items
//	go run ./example/ demo.toml          # settings from a TOML file
//
// Keys: Up/Down move the anchor, PageUp/PageDown page, Home/End jump, Enter
// toggles a tree row, Left/Right scroll table columns. The wheel and the
// scrollbar scroll without moving the anchor.
package main

import (
	"fmt"
	"os"
	"runtime"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"

	"github.com/go-theft-auto/vflow"
	"github.com/go-theft-auto/vflow/backend/opengl"
	"github.com/go-theft-auto/vflow/internal/democonfig"
)

const margin = 10

func init() {
	// GLFW must run on the main thread.
	runtime.LockOSThread()
}

func main() {
	cfg := democonfig.Default()
	if len(os.Args) > 1 {
		var err error
		if cfg, err = democonfig.Load(os.Args[1]); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
	}
	if err := run(cfg); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

type scrollTarget interface {
	vflow.Navigable
	vflow.Scroller
}

// view is the part of a container the frame loop needs.
type view struct {
	resize func(w, h float64)
	layout func()
	paint  func(dl *vflow.DrawList, origin vflow.Vec2)
	target scrollTarget
	// header is the height taken above the rows, in pixels.
	header float32
	bind   func(nav *vflow.Navigator)
}

func run(cfg democonfig.Config) error {
	vflow.SetDebug(cfg.Debug)

	if err := glfw.Init(); err != nil {
		return fmt.Errorf("glfw init: %w", err)
	}
	defer glfw.Terminate()

	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)

	window, err := glfw.CreateWindow(cfg.Window.Width, cfg.Window.Height, cfg.Window.Title, nil, nil)
	if err != nil {
		return fmt.Errorf("create window: %w", err)
	}
	window.MakeContextCurrent()
	glfw.SwapInterval(1) // vsync

	if err := gl.Init(); err != nil {
		return fmt.Errorf("gl init: %w", err)
	}

	renderer, err := opengl.NewRenderer(cfg.Window.Width, cfg.Window.Height)
	if err != nil {
		return fmt.Errorf("renderer: %w", err)
	}
	defer renderer.Delete()

	input := opengl.NewGLFWInputAdapter(window)
	sched := vflow.NewScheduler()
	style, _ := cfg.Style()

	v, err := buildView(cfg, sched)
	if err != nil {
		return err
	}
	nav := vflow.NewNavigator(v.target, cfg.Options()...)
	if v.bind != nil {
		v.bind(nav)
	}
	bar := vflow.NewScrollBar(v.target)

	lastW, lastH := -1, -1
	for !window.ShouldClose() {
		in := input.Update()
		glfw.PollEvents()

		w, h := window.GetFramebufferSize()
		if w != lastW || h != lastH {
			renderer.Resize(w, h)
			v.resize(float64(w-2*margin)-float64(style.ScrollbarSize), float64(h-2*margin))
			lastW, lastH = w, h
		}

		barRect := vflow.Rect{
			X: float32(w-margin) - style.ScrollbarSize,
			Y: margin + v.header,
			W: style.ScrollbarSize,
			H: float32(h-2*margin) - v.header,
		}
		handleScrollBar(bar, barRect, in)
		nav.Handle(in)

		// one coalesced layout pass per frame
		sched.Flush()
		v.layout()

		gl.Viewport(0, 0, int32(w), int32(h))
		gl.ClearColor(0.12, 0.12, 0.14, 1.0)
		gl.Clear(gl.COLOR_BUFFER_BIT)

		dl := vflow.AcquireDrawList()
		dl.FontTexture = renderer.FontTextureID()
		v.paint(dl, vflow.Vec2{X: margin, Y: margin})
		if bar.Needed() {
			bar.Paint(dl, barRect, style)
		}
		err := renderer.Render(dl)
		vflow.ReleaseDrawList(dl)
		if err != nil {
			return fmt.Errorf("render: %w", err)
		}

		window.SwapBuffers()
	}
	return nil
}

func handleScrollBar(bar *vflow.ScrollBar, r vflow.Rect, in *vflow.InputState) {
	pos := float64(in.MouseY - r.Y)
	switch {
	case in.MouseClicked(vflow.MouseButtonLeft):
		if r.Contains(vflow.Vec2{X: in.MouseX, Y: in.MouseY}) {
			bar.Press(pos, float64(r.H))
		}
	case in.MouseReleased(vflow.MouseButtonLeft):
		bar.Release()
	case bar.Dragging():
		bar.DragTo(pos, float64(r.H))
	}
}

func buildView(cfg democonfig.Config, sched *vflow.Scheduler) (view, error) {
	opts := append(cfg.Options(), vflow.WithScheduler(sched))

	switch cfg.View {
	case "tree":
		tree := vflow.NewTreeView(democonfig.SampleTree(cfg.Items, 4), opts...)
		return view{
			resize: tree.Resize,
			layout: tree.Layout,
			paint:  tree.Paint,
			target: tree.Engine(),
			bind: func(nav *vflow.Navigator) {
				nav.Bind("toggle", vflow.KeyCheck(vflow.KeyEnter), func() { tree.Toggle(nav.Anchor()) })
			},
		}, nil

	case "table":
		rows := vflow.NewObservableList(democonfig.SampleRows(cfg.Items)...)
		table, err := vflow.NewTableView(rows, tableColumns(), opts...)
		if err != nil {
			return view{}, fmt.Errorf("table: %w", err)
		}
		return view{
			resize: table.Resize,
			layout: table.Layout,
			paint:  table.Paint,
			target: table.RowEngine(),
			header: float32(table.RowHeight()),
			bind: func(nav *vflow.Navigator) {
				nav.Bind("columns-left", vflow.KeyCheck(vflow.KeyLeft), func() { table.ScrollColumns(-64) })
				nav.Bind("columns-right", vflow.KeyCheck(vflow.KeyRight), func() { table.ScrollColumns(64) })
			},
		}, nil

	default:
		list := vflow.NewListView(vflow.NewObservableList(democonfig.SampleLines(cfg.Items)...), opts...)
		return view{
			resize: list.Resize,
			layout: list.Layout,
			paint:  list.Paint,
			target: list.Engine(),
		}, nil
	}
}

func tableColumns() []*vflow.TableColumn[democonfig.Row] {
	return []*vflow.TableColumn[democonfig.Row]{
		{Title: "ID", Value: func(r democonfig.Row) string { return fmt.Sprint(r.ID) }, Flags: vflow.ColumnWidthFixed, InitWidth: 80},
		{Title: "Name", Value: func(r democonfig.Row) string { return r.Name }},
		{Title: "Words", Value: func(r democonfig.Row) string { return fmt.Sprint(r.Words) }, Flags: vflow.ColumnWidthFixed, InitWidth: 60},
		{Title: "Notes", Value: func(democonfig.Row) string { return "" }, Flags: vflow.ColumnWidthStretch, MinWidth: 100},
	}
}
