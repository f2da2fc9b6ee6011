package render

import "github.com/khrees2412/tradecv/pkg/models"

func fullRecord() models.ResumeRecord {
	rec := models.NewResumeRecord(0)
	rec.Name = "Jane Doe"
	rec.Title = "Electrician"
	rec.Email = "jane@x.com"
	rec.Phone = "+1 555-0100"
	rec.Location = "Austin, TX"
	rec.Skills = []string{"Wiring", "Circuit Testing", "Safety Compliance"}
	rec.Experience = []models.ExperienceEntry{{
		Title:            "Senior Electrician",
		Company:          "Acme Corp",
		Year:             "2019 - 2024",
		Responsibilities: "panel installation",
		Points:           []string{"Led a crew of four", "Passed every inspection"},
	}}
	rec.Education = []models.EducationEntry{{Degree: "Journeyman License", Institution: "Austin Community College", Year: "2015"}}
	rec.Certifications = []models.Certification{{Name: "OSHA 10"}, {Name: "NFPA 70E", Org: "NFPA"}}
	rec.Languages = []string{"English", "Spanish"}
	return rec
}
