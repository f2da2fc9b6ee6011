package interview

import (
	"testing"

	"github.com/khrees2412/tradecv/pkg/models"
	"github.com/stretchr/testify/assert"
)

func TestParseStringList(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{"trims and drops empties", "Wiring, Circuit Testing,  Safety Compliance ", []string{"Wiring", "Circuit Testing", "Safety Compliance"}},
		{"single item", "Welding", []string{"Welding"}},
		{"only commas", " , ,, ", []string{}},
		{"empty", "", []string{}},
		{"keeps inner spaces", "forklift  operation", []string{"forklift  operation"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseStringList(tt.input))
		})
	}
}

func TestParseExperience(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  models.ExperienceEntry
	}{
		{
			name:  "full sentence",
			input: "Senior Electrician at Acme Corp doing panel installation",
			want:  models.ExperienceEntry{Title: "Senior Electrician", Company: "Acme Corp", Responsibilities: "panel installation", Points: []string{}},
		},
		{
			name:  "no match keeps raw text as title",
			input: "I fixed stuff",
			want:  models.ExperienceEntry{Title: "I fixed stuff", Points: []string{}},
		},
		{
			name:  "case insensitive separators",
			input: "Carpenter AT BuildRight DOING framing and trim",
			want:  models.ExperienceEntry{Title: "Carpenter", Company: "BuildRight", Responsibilities: "framing and trim", Points: []string{}},
		},
		{
			name:  "without doing clause",
			input: "Forklift Driver at Costco",
			want:  models.ExperienceEntry{Title: "Forklift Driver", Company: "Costco", Points: []string{}},
		},
		{
			name:  "surrounding whitespace",
			input: "  Welder at Shipyard   ",
			want:  models.ExperienceEntry{Title: "Welder", Company: "Shipyard", Points: []string{}},
		},
		{
			name:  "at inside a word is not a separator",
			input: "Caterer",
			want:  models.ExperienceEntry{Title: "Caterer", Points: []string{}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseExperience(tt.input))
		})
	}
}

func TestParseEducation(t *testing.T) {
	got := ParseEducation(" HVAC certificate from Lincoln Tech ")
	assert.Equal(t, models.EducationEntry{Degree: "HVAC certificate from Lincoln Tech"}, got)
}

func TestApply_DoesNotMutateInput(t *testing.T) {
	rec := models.NewResumeRecord(3)
	rec.Skills[0] = "Wiring"
	rec.Experience = append(rec.Experience, models.ExperienceEntry{Title: "Helper", Points: []string{}})
	before := rec.Clone()

	_ = apply(rec, AskSlot(FieldSkills, 1, "Skill 2?"), "Soldering")
	_ = apply(rec, Ask(FieldExperience, KindExperienceSentence, "Work?"), "Lead at Acme")
	_ = apply(rec, Ask(FieldName, KindScalar, "Name?"), "Jane")

	assert.Equal(t, before, rec)
}

func TestApply_SkillSlotGrowsWhenNeeded(t *testing.T) {
	rec := models.NewResumeRecord(0)
	got := apply(rec, AskSlot(FieldSkills, 2, "Skill 3?"), "Safety")
	assert.Equal(t, []string{"", "", "Safety"}, got.Skills)
}

func TestApply_ListReplaces(t *testing.T) {
	rec := models.NewResumeRecord(0)
	rec.Skills = []string{"old"}
	got := apply(rec, Ask(FieldSkills, KindStringList, "Skills?"), "a, b")
	assert.Equal(t, []string{"a", "b"}, got.Skills)
}

func TestApply_ScalarTrims(t *testing.T) {
	got := apply(models.NewResumeRecord(0), Ask(FieldEmail, KindEmail, "Email?"), "  jane@x.com ")
	assert.Equal(t, "jane@x.com", got.Email)
}
