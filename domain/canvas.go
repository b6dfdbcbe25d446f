package domain

type Cursor struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

type Participant struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Color    string `json:"color"`
	Cursor   Cursor `json:"cursor"`
}

type Tool string

const (
	ToolBrush     Tool = "brush"
	ToolEraser    Tool = "eraser"
	ToolLine      Tool = "line"
	ToolRectangle Tool = "rectangle"
	ToolCircle    Tool = "circle"
	ToolText      Tool = "text"
	ToolImage     Tool = "image"
)

func (t Tool) Valid() bool {
	switch t {
	case ToolBrush, ToolEraser, ToolLine, ToolRectangle, ToolCircle, ToolText, ToolImage:
		return true
	}
	return false
}

// DrawAction is one atomic drawing operation. The meaning of the end point depends on
// the tool: stroke endpoint, opposite shape corner, or image dimensions.
type DrawAction struct {
	Tool        Tool    `json:"tool"`
	StartX      float64 `json:"startX"`
	StartY      float64 `json:"startY"`
	EndX        float64 `json:"endX"`
	EndY        float64 `json:"endY"`
	Color       string  `json:"color"`
	StrokeWidth float64 `json:"strokeWidth"`
	Text        string  `json:"text,omitempty"`
	ImageData   string  `json:"imageData,omitempty"`
}

// Normalize drops payload fields that do not belong to the action's tool.
func (a DrawAction) Normalize() DrawAction {
	if a.Tool != ToolText {
		a.Text = ""
	}
	if a.Tool != ToolImage {
		a.ImageData = ""
	}
	return a
}
