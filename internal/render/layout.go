package render

import (
	"fmt"
	"image/color"
	"strings"
	"sync"

	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
)

// Page geometry in millimetres, A4 portrait.
const (
	pageWidthMM  = 210.0
	pageHeightMM = 297.0
	marginMM     = 20.0
	lineHeightMM = 7.0
	bottomMM     = pageHeightMM - marginMM

	// pxPerMM sets the raster resolution of the page images (~76 dpi).
	pxPerMM = 3.0
	// ptToMM converts a font size in points to millimetres.
	ptToMM = 0.3528
)

// Section page-break thresholds: a section or entry that would start below
// these lines begins on a fresh page instead.
const (
	experienceBreakMM     = 250.0
	educationBreakMM      = 230.0
	certificationsBreakMM = 240.0
	languagesBreakMM      = 250.0
)

var (
	primaryColor = color.RGBA{R: 37, G: 99, B: 235, A: 255}
	textColor    = color.RGBA{R: 17, G: 24, B: 39, A: 255}
	mutedColor   = color.RGBA{R: 107, G: 114, B: 128, A: 255}
)

type textStyle struct {
	Size  float64
	Bold  bool
	Color color.RGBA
}

var (
	nameStyle    = textStyle{Size: 24, Bold: true, Color: primaryColor}
	titleStyle   = textStyle{Size: 14, Bold: true, Color: textColor}
	headingStyle = textStyle{Size: 14, Bold: true, Color: primaryColor}
	entryStyle   = textStyle{Size: 11, Bold: true, Color: textColor}
	bodyStyle    = textStyle{Size: 10, Color: textColor}
	mutedStyle   = textStyle{Size: 10, Color: mutedColor}
)

// textOp draws Text with its baseline at (X, Y) mm.
type textOp struct {
	X, Y  float64
	Text  string
	Style textStyle
}

// ruleOp draws a horizontal line from X1 to X2 at Y mm.
type ruleOp struct {
	X1, X2, Y float64
	Width     float64
	Color     color.RGBA
}

type page struct {
	Texts []textOp
	Rules []ruleOp
}

var (
	fontsOnce   sync.Once
	regularFont *truetype.Font
	boldFont    *truetype.Font
	fontsErr    error
)

func loadFonts() error {
	fontsOnce.Do(func() {
		regularFont, fontsErr = truetype.Parse(goregular.TTF)
		if fontsErr != nil {
			fontsErr = fmt.Errorf("failed to parse regular font: %w", fontsErr)
			return
		}
		boldFont, fontsErr = truetype.Parse(gobold.TTF)
		if fontsErr != nil {
			fontsErr = fmt.Errorf("failed to parse bold font: %w", fontsErr)
		}
	})
	return fontsErr
}

// faceSet hands out font faces by style. Faces are not safe for concurrent
// use, so each render pass owns its own set.
type faceSet struct {
	faces map[textStyle]font.Face
}

func newFaceSet() (*faceSet, error) {
	if err := loadFonts(); err != nil {
		return nil, err
	}
	return &faceSet{faces: map[textStyle]font.Face{}}, nil
}

func (fs *faceSet) face(s textStyle) font.Face {
	key := textStyle{Size: s.Size, Bold: s.Bold}
	if f, ok := fs.faces[key]; ok {
		return f
	}
	ttf := regularFont
	if s.Bold {
		ttf = boldFont
	}
	f := truetype.NewFace(ttf, &truetype.Options{
		Size:    s.Size * ptToMM * pxPerMM,
		DPI:     72,
		Hinting: font.HintingNone,
	})
	fs.faces[key] = f
	return f
}

func (fs *faceSet) Close() {
	for _, f := range fs.faces {
		f.Close()
	}
}

// widthMM measures text in the given style.
func (fs *faceSet) widthMM(text string, s textStyle) float64 {
	adv := font.MeasureString(fs.face(s), text)
	return float64(adv) / 64 / pxPerMM
}

// wrap breaks text into lines no wider than maxMM. A single word wider than
// the line is kept whole.
func (fs *faceSet) wrap(text string, s textStyle, maxMM float64) []string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return nil
	}
	var lines []string
	line := words[0]
	for _, w := range words[1:] {
		candidate := line + " " + w
		if fs.widthMM(candidate, s) > maxMM {
			lines = append(lines, line)
			line = w
			continue
		}
		line = candidate
	}
	return append(lines, line)
}

// layout places a view onto pages, tracking a running vertical cursor.
type layout struct {
	faces *faceSet
	pages []*page
	y     float64
}

func newLayout(faces *faceSet) *layout {
	l := &layout{faces: faces}
	l.newPage()
	return l
}

func (l *layout) current() *page { return l.pages[len(l.pages)-1] }

func (l *layout) newPage() {
	l.pages = append(l.pages, &page{})
	l.y = marginMM
}

// breakAfter starts a new page once the cursor has passed threshold.
func (l *layout) breakAfter(threshold float64) {
	if l.y > threshold {
		l.newPage()
	}
}

func (l *layout) text(x float64, s string, style textStyle) {
	l.current().Texts = append(l.current().Texts, textOp{X: x, Y: l.y, Text: s, Style: style})
}

func (l *layout) rule(x1, x2, width float64, c color.RGBA) {
	l.current().Rules = append(l.current().Rules, ruleOp{X1: x1, X2: x2, Y: l.y, Width: width, Color: c})
}

// paragraph writes wrapped text, moving to a new page whenever a line
// would fall below the bottom margin.
func (l *layout) paragraph(x float64, s string, style textStyle) {
	for _, line := range l.faces.wrap(s, style, pageWidthMM-marginMM-x) {
		if l.y > bottomMM {
			l.newPage()
		}
		l.text(x, line, style)
		l.y += lineHeightMM
	}
}

func (l *layout) heading(s string, ruleLen float64) {
	l.text(marginMM, s, headingStyle)
	l.y += 2
	l.rule(marginMM, marginMM+ruleLen, 0.3, primaryColor)
	l.y += 6
}

// layoutView lays out the whole resume and returns its pages.
func layoutView(v View, faces *faceSet) []*page {
	l := newLayout(faces)

	l.text(marginMM, v.Name, nameStyle)
	l.y += 8
	l.rule(marginMM, pageWidthMM-marginMM, 0.5, primaryColor)
	l.y += 8
	l.text(marginMM, v.Title, titleStyle)
	l.y += 8
	l.text(marginMM, v.Contact(), mutedStyle)
	l.y += 12

	l.heading("SKILLS", 30)
	if len(v.Skills) > 0 {
		l.paragraph(marginMM, strings.Join(v.Skills, " • "), bodyStyle)
	} else {
		l.paragraph(marginMM, PlaceholderSkills, mutedStyle)
	}
	l.y += 8

	l.breakAfter(experienceBreakMM)
	l.heading("WORK EXPERIENCE", 50)
	if len(v.Experience) == 0 {
		l.paragraph(marginMM, PlaceholderExperience, mutedStyle)
	}
	for _, exp := range v.Experience {
		l.text(marginMM, exp.Title, entryStyle)
		l.y += 6
		l.text(marginMM, exp.CompanyLine(), mutedStyle)
		l.y += 6
		if exp.Responsibilities != "" {
			l.paragraph(marginMM, exp.Responsibilities, bodyStyle)
		}
		for _, p := range exp.Points {
			l.paragraph(marginMM+5, "• "+p, bodyStyle)
		}
		l.y += 6
		l.breakAfter(experienceBreakMM)
	}

	l.breakAfter(educationBreakMM)
	l.heading("EDUCATION", 40)
	if len(v.Education) == 0 {
		l.paragraph(marginMM, PlaceholderEducation, mutedStyle)
	}
	for _, edu := range v.Education {
		l.text(marginMM, edu.Degree, entryStyle)
		l.y += 6
		l.text(marginMM, edu.InstitutionLine(), mutedStyle)
		l.y += 8
		l.breakAfter(bottomMM - 2*lineHeightMM)
	}

	l.breakAfter(certificationsBreakMM)
	l.heading("CERTIFICATIONS", 50)
	if len(v.Certifications) == 0 {
		l.paragraph(marginMM, PlaceholderCertifications, mutedStyle)
	}
	for _, cert := range v.Certifications {
		l.paragraph(marginMM, "• "+cert.String(), bodyStyle)
	}

	if len(v.Languages) > 0 {
		l.y += 6
		l.breakAfter(languagesBreakMM)
		l.heading("LANGUAGES", 35)
		l.paragraph(marginMM, strings.Join(v.Languages, ", "), bodyStyle)
	}

	return l.pages
}
