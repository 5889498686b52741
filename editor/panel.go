package editor

import (
	"fmt"
	"image"
	"strings"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/mlange-42/arche/ecs"

	"gltfviewer/engine"
	"gltfviewer/engine/render"
)

var (
	panelColor    = render.RGBA(0x10, 0x10, 0x18, 0xC0)
	textColor     = render.RGB(0xE0, 0xE0, 0xE0)
	dimColor      = render.RGB(0x90, 0x90, 0x90)
	selectedColor = render.RGB(0xFF, 0xD0, 0x40)
)

const (
	panelWidth = 220
	pad        = 4
	maxRows    = 24
)

// Draw renders the editor panel into o. It draws nothing while inactive.
func (ed *Editor) Draw(o *render.Overlay, w *engine.World) {
	if !ed.active {
		return
	}
	_, h := o.Size()
	o.Panel(image.Rect(0, 0, panelWidth, int(h)), panelColor)

	y := pad
	line := func(s string, c render.Color) {
		o.Text(pad, y, s, c)
		y += render.LineHeight
	}

	d := w.Diagnostics
	line(fmt.Sprintf("%.1f fps  %.2f ms", d.FPS(), d.FrameTimeMS()), textColor)
	line(fmt.Sprintf("work %.2f ms", d.WorkMS()), textColor)
	line(fmt.Sprintf("entities %d", d.Entities()), textColor)
	if w.Time.Paused() {
		line("time paused", selectedColor)
	}
	y += pad

	switch {
	case ed.filtering:
		line("/"+string(ed.filter)+"_", selectedColor)
	case len(ed.filter) > 0:
		line("/"+string(ed.filter), dimColor)
	default:
		line(ed.controls.Describe(StartFilter)+" to filter", dimColor)
	}

	vis := ed.Visible(w)
	first := 0
	for i, e := range vis {
		if e == ed.selected && i >= maxRows {
			first = i - maxRows + 1
		}
	}
	for i := first; i < len(vis) && i < first+maxRows; i++ {
		e := vis[i]
		name := indent(w, e) + w.Name(e)
		if e == ed.selected {
			line("> "+name, selectedColor)
			continue
		}
		line("  "+name, textColor)
	}
	if len(vis) > maxRows {
		line(fmt.Sprintf("  (%d more)", len(vis)-maxRows), dimColor)
	}

	if !w.Alive(ed.selected) {
		return
	}
	if t := w.Transform(ed.selected); t != nil {
		y += pad
		p := t.Translation
		line(fmt.Sprintf("pos %.2f %.2f %.2f", p[0], p[1], p[2]), textColor)
		s := t.Scale
		line(fmt.Sprintf("scale %.2f %.2f %.2f", s[0], s[1], s[2]), textColor)
		line(fmt.Sprintf("yaw %.1f deg", mgl32.RadToDeg(t.Yaw())), textColor)
	}
	if r := w.SceneRoot(ed.selected); r != nil {
		line(fmt.Sprintf("scene %s", r.Handle.State()), textColor)
		line(fmt.Sprintf("v%d  %d roots", r.Spawned(), len(r.Instance())), dimColor)
	}
}

func indent(w *engine.World, e ecs.Entity) string {
	depth := 0
	for p, ok := w.ParentOf(e); ok && depth < 8 && w.Alive(p); p, ok = w.ParentOf(p) {
		depth++
	}
	return strings.Repeat(" ", depth)
}
