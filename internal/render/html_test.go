package render

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/khrees2412/tradecv/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func renderDoc(t *testing.T, rec models.ResumeRecord) (*Document, *goquery.Document) {
	t.Helper()
	doc, err := NewHTMLRenderer().Render(context.Background(), rec)
	require.NoError(t, err)
	dom, err := goquery.NewDocumentFromReader(bytes.NewReader(doc.Body))
	require.NoError(t, err)
	return doc, dom
}

func TestHTMLRenderer_EmptyRecord(t *testing.T) {
	doc, dom := renderDoc(t, models.NewResumeRecord(3))

	assert.Equal(t, "resume_Resume.html", doc.Filename)
	assert.Equal(t, FormatHTML, doc.Format)
	assert.Equal(t, "Your Name", dom.Find("#name").Text())
	assert.Equal(t, "Professional Title", strings.TrimSpace(dom.Find("#title").Text()))
	assert.Equal(t, "email@example.com | Phone | Location", strings.TrimSpace(dom.Find("#contact").Text()))
	assert.Equal(t, "No skills added", dom.Find("#skills .empty").Text())
	assert.Equal(t, "No experience added", dom.Find("#experience .empty").Text())
	assert.Equal(t, "No education added", dom.Find("#education .empty").Text())
	assert.Equal(t, "No certifications added", dom.Find("#certifications .empty").Text())
	assert.Equal(t, 0, dom.Find("#languages").Length())
}

func TestHTMLRenderer_FullRecord(t *testing.T) {
	doc, dom := renderDoc(t, fullRecord())

	assert.Equal(t, "Jane_Doe_Resume.html", doc.Filename)
	assert.Equal(t, "Jane Doe - Resume", dom.Find("title").Text())

	var skills []string
	dom.Find("#skills .skill").Each(func(_ int, s *goquery.Selection) {
		skills = append(skills, s.Text())
	})
	assert.Equal(t, []string{"Wiring", "Circuit Testing", "Safety Compliance"}, skills)

	job := dom.Find("#experience .job").First()
	assert.Equal(t, "Senior Electrician", job.Find("strong").Text())
	assert.Contains(t, job.Text(), "Acme Corp | 2019 - 2024")
	assert.Contains(t, job.Text(), "panel installation")
	assert.Equal(t, 2, job.Find("li").Length())

	assert.Equal(t, 2, dom.Find("#certifications li").Length())
	assert.Equal(t, "NFPA 70E - NFPA", dom.Find("#certifications li").Last().Text())
	assert.Equal(t, "English, Spanish", dom.Find("#languages p").Text())
	assert.Equal(t, 0, dom.Find(".empty").Length())
}

func TestHTMLRenderer_EscapesInput(t *testing.T) {
	rec := models.NewResumeRecord(0)
	rec.Name = `<script>alert("x")</script>`
	rec.Skills = []string{"<b>Welding</b>"}

	doc, dom := renderDoc(t, rec)
	assert.NotContains(t, string(doc.Body), "<script>alert")
	assert.Equal(t, 0, dom.Find("script").Length())
	assert.Equal(t, rec.Name, dom.Find("#name").Text())
	assert.Equal(t, "<b>Welding</b>", dom.Find(".skill").Text())
}

func TestHTMLRenderer_Deterministic(t *testing.T) {
	r := NewHTMLRenderer()
	a, err := r.Render(context.Background(), fullRecord())
	require.NoError(t, err)
	b, err := r.Render(context.Background(), fullRecord())
	require.NoError(t, err)
	assert.Equal(t, a.Body, b.Body)
}
