package editor

import (
	"golang.org/x/mobile/event/key"

	"github.com/example/markshot/internal/geom"
	"github.com/example/markshot/internal/shape"
	"github.com/example/markshot/internal/toolbar"
	"github.com/example/markshot/internal/ui"
)

// Tool is the armed tool: what a press on the image does.
type Tool int

const (
	ToolNone Tool = iota
	ToolCrop
	ToolRect
	ToolCircle
	ToolLine
	ToolText
	ToolNumber
	ToolPen
)

// Tools lists the selectable tools in toolbar order.
var Tools = []Tool{ToolCrop, ToolRect, ToolCircle, ToolLine, ToolText, ToolNumber, ToolPen}

func (t Tool) String() string {
	switch t {
	case ToolCrop:
		return "Crop"
	case ToolRect:
		return "Rect"
	case ToolCircle:
		return "Circle"
	case ToolLine:
		return "Line"
	case ToolText:
		return "Text"
	case ToolNumber:
		return "Number"
	case ToolPen:
		return "Pen"
	}
	return "None"
}

// toolKeys maps single key presses to tools.
var toolKeys = map[key.Code]Tool{
	key.CodeM: ToolNone,
	key.CodeR: ToolCrop,
	key.CodeX: ToolRect,
	key.CodeO: ToolCircle,
	key.CodeL: ToolLine,
	key.CodeA: ToolLine,
	key.CodeT: ToolText,
	key.CodeH: ToolNumber,
	key.CodeB: ToolPen,
}

// pending holds the attributes the next shape of each kind gets.
type pending struct {
	rect   shape.RectAttrs
	circle shape.CircleAttrs
	line   shape.LineAttrs
	pen    shape.PenAttrs
	number shape.NumberAttrs
	text   shape.TextAttrs
}

func defaultPending(font string) pending {
	return pending{
		rect:   shape.DefaultRectAttrs(),
		circle: shape.DefaultCircleAttrs(),
		line:   shape.DefaultLineAttrs(),
		pen:    shape.DefaultPenAttrs(),
		number: shape.DefaultNumberAttrs(),
		text:   shape.DefaultTextAttrs(font),
	}
}

// toolbar adds the pending attributes of t to form.
func (p *pending) toolbar(t Tool, form *toolbar.Form) {
	switch t {
	case ToolRect:
		p.rect.Toolbar(form)
	case ToolCircle:
		p.circle.Toolbar(form)
	case ToolLine:
		p.line.Toolbar(form)
	case ToolPen:
		p.pen.Toolbar(form)
	case ToolNumber:
		p.number.Toolbar(form)
	case ToolText:
		p.text.Toolbar(form)
	}
}

// factory returns the creation function of t, or nil when t creates nothing.
func (e *Editor) factory(t Tool) shape.Factory {
	switch t {
	case ToolRect:
		return func(pos geom.Point, info ui.RenderInfo) shape.Shape {
			return shape.NewRectangle(pos, info, e.pending.rect)
		}
	case ToolCircle:
		return func(pos geom.Point, info ui.RenderInfo) shape.Shape {
			return shape.NewCircle(pos, info, e.pending.circle)
		}
	case ToolLine:
		return func(pos geom.Point, info ui.RenderInfo) shape.Shape {
			return shape.NewLine(pos, info, e.pending.line)
		}
	case ToolPen:
		return func(pos geom.Point, info ui.RenderInfo) shape.Shape {
			return shape.NewPen(pos, info, e.pending.pen)
		}
	case ToolNumber:
		return func(pos geom.Point, info ui.RenderInfo) shape.Shape {
			return shape.NewNumber(pos, info, e.pending.number, int(e.numbers.Next()))
		}
	case ToolText:
		return func(pos geom.Point, info ui.RenderInfo) shape.Shape {
			return shape.NewText(pos, info, e.pending.text)
		}
	}
	return nil
}
