package graphicsstate

import (
	"errors"
	"math"
	"unicode/utf8"
)

// ErrStackUnderflow is returned by Restore when there is no matching Save.
var ErrStackUnderflow = errors.New("graphics state stack underflow")

// GraphicsState represents the PDF graphics state
type GraphicsState struct {
	// Current Transformation Matrix
	CTM Matrix

	// Text state
	Text TextState

	// Graphics state stack (for q/Q operators)
	stack []*GraphicsState

	// Line attributes
	LineWidth float64

	// Color (simplified - just RGB for now)
	StrokeColor [3]float64
	FillColor   [3]float64
}

// TextState represents text-specific state
type TextState struct {
	// Font and size
	FontName string
	FontSize float64

	// Character and word spacing
	CharSpacing float64
	WordSpacing float64

	// Horizontal scaling (percentage)
	HorizontalScaling float64

	// Leading (line spacing)
	Leading float64

	// Text rendering mode
	RenderingMode int

	// Text rise
	Rise float64

	// Text matrices
	TextMatrix     Matrix
	TextLineMatrix Matrix
}

// NewGraphicsState creates a new graphics state with default values
func NewGraphicsState() *GraphicsState {
	return &GraphicsState{
		CTM:         Identity(),
		LineWidth:   1.0,
		StrokeColor: [3]float64{0, 0, 0}, // Black
		FillColor:   [3]float64{0, 0, 0}, // Black
		Text: TextState{
			FontSize:          12.0,
			HorizontalScaling: 100.0,
			TextMatrix:        Identity(),
			TextLineMatrix:    Identity(),
		},
	}
}

// Clone copies the graphics state. The save stack is not carried over;
// a clone starts with an empty stack.
func (gs *GraphicsState) Clone() *GraphicsState {
	clone := &GraphicsState{
		CTM:         gs.CTM,
		LineWidth:   gs.LineWidth,
		StrokeColor: gs.StrokeColor,
		FillColor:   gs.FillColor,
		Text:        gs.Text,
	}
	return clone
}

// Save pushes the current graphics state onto the stack (q operator)
func (gs *GraphicsState) Save() {
	gs.stack = append(gs.stack, gs.Clone())
}

// Restore pops a graphics state from the stack (Q operator)
func (gs *GraphicsState) Restore() error {
	if len(gs.stack) == 0 {
		return ErrStackUnderflow
	}

	// Pop from stack
	saved := gs.stack[len(gs.stack)-1]
	gs.stack = gs.stack[:len(gs.stack)-1]

	// Restore state
	gs.CTM = saved.CTM
	gs.LineWidth = saved.LineWidth
	gs.StrokeColor = saved.StrokeColor
	gs.FillColor = saved.FillColor
	gs.Text = saved.Text

	return nil
}

// Transform concatenates a matrix onto the CTM (cm operator).
// The new matrix applies first: CTM' = m x CTM, so coordinates in
// later operators are expressed in the space m establishes.
func (gs *GraphicsState) Transform(m Matrix) {
	gs.CTM = m.Multiply(gs.CTM)
}

// SetLineWidth sets the line width (w operator)
func (gs *GraphicsState) SetLineWidth(width float64) {
	gs.LineWidth = width
}

// SetStrokeColorRGB sets the stroke color (RG operator)
func (gs *GraphicsState) SetStrokeColorRGB(r, g, b float64) {
	gs.StrokeColor = [3]float64{r, g, b}
}

// SetFillColorRGB sets the fill color (rg operator)
func (gs *GraphicsState) SetFillColorRGB(r, g, b float64) {
	gs.FillColor = [3]float64{r, g, b}
}

// SetFont sets the current font (Tf operator)
func (gs *GraphicsState) SetFont(name string, size float64) {
	gs.Text.FontName = name
	gs.Text.FontSize = size
}

// SetCharSpacing sets character spacing (Tc operator)
func (gs *GraphicsState) SetCharSpacing(spacing float64) {
	gs.Text.CharSpacing = spacing
}

// SetWordSpacing sets word spacing (Tw operator)
func (gs *GraphicsState) SetWordSpacing(spacing float64) {
	gs.Text.WordSpacing = spacing
}

// SetHorizontalScaling sets horizontal scaling (Tz operator)
func (gs *GraphicsState) SetHorizontalScaling(scale float64) {
	gs.Text.HorizontalScaling = scale
}

// SetLeading sets text leading (TL operator)
func (gs *GraphicsState) SetLeading(leading float64) {
	gs.Text.Leading = leading
}

// SetRenderingMode sets text rendering mode (Tr operator)
func (gs *GraphicsState) SetRenderingMode(mode int) {
	gs.Text.RenderingMode = mode
}

// SetTextRise sets text rise (Ts operator)
func (gs *GraphicsState) SetTextRise(rise float64) {
	gs.Text.Rise = rise
}

// BeginText initializes text state (BT operator)
func (gs *GraphicsState) BeginText() {
	gs.Text.TextMatrix = Identity()
	gs.Text.TextLineMatrix = Identity()
}

// EndText ends a text object (ET operator). The text matrices are
// discarded; the next BeginText reinitializes them.
func (gs *GraphicsState) EndText() {
}

// SetTextMatrix sets the text matrix (Tm operator)
func (gs *GraphicsState) SetTextMatrix(m Matrix) {
	gs.Text.TextMatrix = m
	gs.Text.TextLineMatrix = m
}

// TranslateText moves to the start of the next line, offset from the
// start of the current line by (tx, ty) in unscaled text space units
// (Td operator): Tlm' = Tm' = T(tx, ty) x Tlm.
func (gs *GraphicsState) TranslateText(tx, ty float64) {
	gs.Text.TextLineMatrix = Translate(tx, ty).Multiply(gs.Text.TextLineMatrix)
	gs.Text.TextMatrix = gs.Text.TextLineMatrix
}

// TranslateTextSetLeading translates text and sets leading (TD operator)
func (gs *GraphicsState) TranslateTextSetLeading(tx, ty float64) {
	gs.SetLeading(-ty)
	gs.TranslateText(tx, ty)
}

// NextLine moves to next line (T* operator)
func (gs *GraphicsState) NextLine() {
	gs.TranslateText(0, -gs.Text.Leading)
}

// ShowText updates position after showing text (Tj operator) when no
// glyph metrics are available. It assumes an average glyph width of
// half an em; callers with real font metrics should use
// ShowTextWithWidth instead. Returns the text space displacement.
func (gs *GraphicsState) ShowText(text string) (dx, dy float64) {
	chars := float64(utf8.RuneCountInString(text))
	width := chars * 0.5 * gs.Text.FontSize * gs.Text.HorizontalScaling / 100.0
	return gs.ShowTextWithWidth(text, width)
}

// ShowTextWithWidth updates position after showing text whose glyph
// advance is known. width is the summed glyph displacement in text
// space units (glyph widths scaled by font size and horizontal
// scaling). Character and word spacing are added per rune and per
// space here.
func (gs *GraphicsState) ShowTextWithWidth(text string, width float64) (dx, dy float64) {
	var chars, spaces float64
	for _, c := range text {
		chars++
		if c == ' ' {
			spaces++
		}
	}

	scale := gs.Text.HorizontalScaling / 100.0
	advance := width
	advance += spaces * gs.Text.WordSpacing * scale
	advance += chars * gs.Text.CharSpacing * scale

	gs.advanceText(advance)
	return advance, 0
}

// AdjustText applies a TJ array positioning adjustment. v is in
// thousandths of a unit of text space; positive values move the next
// glyph towards the start of the line.
func (gs *GraphicsState) AdjustText(v float64) {
	gs.advanceText(-v / 1000.0 * gs.Text.FontSize * gs.Text.HorizontalScaling / 100.0)
}

// advanceText displaces the text matrix along the baseline:
// Tm' = T(tx, 0) x Tm. Only Tm moves; the line matrix stays at the
// line start so T* and TD return to it.
func (gs *GraphicsState) advanceText(tx float64) {
	gs.Text.TextMatrix[4] += tx * gs.Text.TextMatrix[0]
	gs.Text.TextMatrix[5] += tx * gs.Text.TextMatrix[1]
}

// GetTextPosition returns the current text position in device space
func (gs *GraphicsState) GetTextPosition() (x, y float64) {
	// The glyph origin is (0, rise) in text space; map it through the
	// text matrix and then the CTM.
	p := gs.Text.TextMatrix.Transform(Point{X: 0, Y: gs.Text.Rise})
	p = gs.CTM.Transform(p)
	return p.X, p.Y
}

// GetTextMatrix returns the current text matrix
func (gs *GraphicsState) GetTextMatrix() Matrix {
	return gs.Text.TextMatrix
}

// GetFontSize returns the current font size
func (gs *GraphicsState) GetFontSize() float64 {
	return gs.Text.FontSize
}

// GetEffectiveFontSize returns the font size accounting for text matrix
// transformations. The text matrix can scale the font even when the Tf
// operator uses size=1.
func (gs *GraphicsState) GetEffectiveFontSize() float64 {
	vertical := math.Abs(gs.Text.TextMatrix[3])
	horizontal := math.Abs(gs.Text.TextMatrix[0])

	scale := vertical
	if horizontal > vertical {
		scale = horizontal
	}

	return gs.Text.FontSize * scale
}

// GetFontName returns the current font name
func (gs *GraphicsState) GetFontName() string {
	return gs.Text.FontName
}
