package interview

import (
	"regexp"
	"strings"

	"github.com/khrees2412/tradecv/pkg/models"
)

var experiencePattern = regexp.MustCompile(`(?is)^\s*(.+?)\s+at\s+(.+?)(?:\s+doing\s+(.+?))?\s*$`)

// ParseStringList splits a comma separated answer, trimming each item and
// dropping empty ones.
func ParseStringList(answer string) []string {
	items := []string{}
	for _, part := range strings.Split(answer, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			items = append(items, part)
		}
	}
	return items
}

// ParseExperience reads "<title> at <company> doing <responsibilities>".
// The "doing" clause is optional. Sentences that do not fit are kept whole
// as the title.
func ParseExperience(answer string) models.ExperienceEntry {
	answer = strings.TrimSpace(answer)
	m := experiencePattern.FindStringSubmatch(answer)
	if m == nil {
		return models.ExperienceEntry{Title: answer, Points: []string{}}
	}
	return models.ExperienceEntry{
		Title:            strings.TrimSpace(m[1]),
		Company:          strings.TrimSpace(m[2]),
		Responsibilities: strings.TrimSpace(m[3]),
		Points:           []string{},
	}
}

// ParseEducation keeps the whole answer as the degree.
func ParseEducation(answer string) models.EducationEntry {
	return models.EducationEntry{Degree: strings.TrimSpace(answer)}
}

func parseCertifications(answer string) []models.Certification {
	certs := []models.Certification{}
	for _, name := range ParseStringList(answer) {
		certs = append(certs, models.Certification{Name: name})
	}
	return certs
}

// apply returns a copy of rec with the answer to q applied. rec is never
// modified; only the touched field is re-allocated.
func apply(rec models.ResumeRecord, q Question, answer string) models.ResumeRecord {
	answer = strings.TrimSpace(answer)

	switch q.Kind {
	case KindScalar, KindEmail, KindPhone:
		if q.HasSlot() {
			return withSkillSlot(rec, q.Slot, answer)
		}
		return withScalar(rec, q.Field, answer)
	case KindStringList:
		switch q.Field {
		case FieldSkills:
			rec.Skills = ParseStringList(answer)
		case FieldLanguages:
			rec.Languages = ParseStringList(answer)
		case FieldCertifications:
			rec.Certifications = parseCertifications(answer)
		}
		return rec
	case KindExperienceSentence:
		return appendExperience(rec, ParseExperience(answer))
	case KindEducationSentence:
		return appendEducation(rec, ParseEducation(answer))
	}
	return rec
}

func withScalar(rec models.ResumeRecord, field Field, value string) models.ResumeRecord {
	switch field {
	case FieldName:
		rec.Name = value
	case FieldTitle:
		rec.Title = value
	case FieldEmail:
		rec.Email = value
	case FieldPhone:
		rec.Phone = value
	case FieldLocation:
		rec.Location = value
	}
	return rec
}

func withSkillSlot(rec models.ResumeRecord, slot int, value string) models.ResumeRecord {
	size := len(rec.Skills)
	if slot >= size {
		size = slot + 1
	}
	skills := make([]string, size)
	copy(skills, rec.Skills)
	skills[slot] = value
	rec.Skills = skills
	return rec
}

func appendExperience(rec models.ResumeRecord, entry models.ExperienceEntry) models.ResumeRecord {
	exp := make([]models.ExperienceEntry, len(rec.Experience), len(rec.Experience)+1)
	copy(exp, rec.Experience)
	rec.Experience = append(exp, entry)
	return rec
}

func appendEducation(rec models.ResumeRecord, entry models.EducationEntry) models.ResumeRecord {
	edu := make([]models.EducationEntry, len(rec.Education), len(rec.Education)+1)
	copy(edu, rec.Education)
	rec.Education = append(edu, entry)
	return rec
}
