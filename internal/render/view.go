package render

import (
	"strings"

	"github.com/khrees2412/tradecv/pkg/models"
)

// Placeholders shown for fields that are still empty.
const (
	PlaceholderName           = "Your Name"
	PlaceholderTitle          = "Professional Title"
	PlaceholderEmail          = "email@example.com"
	PlaceholderPhone          = "Phone"
	PlaceholderLocation       = "Location"
	PlaceholderSkills         = "No skills added"
	PlaceholderExperience     = "No experience added"
	PlaceholderEducation      = "No education added"
	PlaceholderCertifications = "No certifications added"
	PlaceholderJobTitle       = "Job Title"
	PlaceholderCompany        = "Company Name"
	PlaceholderDegree         = "Degree / Certification"
	PlaceholderInstitution    = "Institution Name"
	PlaceholderCertification  = "Certification Name"
)

// View is a record with every gap filled for display. All renderers and
// the terminal preview read the record through it.
type View struct {
	Name     string
	Title    string
	Email    string
	Phone    string
	Location string

	Skills         []string
	Experience     []ExperienceView
	Education      []EducationView
	Certifications []CertificationView
	Languages      []string
}

type ExperienceView struct {
	Title            string
	Company          string
	Year             string
	Responsibilities string
	Points           []string
}

type EducationView struct {
	Degree      string
	Institution string
	Year        string
}

type CertificationView struct {
	Name string
	Org  string
}

// NewView builds the display form of rec. It never fails.
func NewView(rec models.ResumeRecord) View {
	v := View{
		Name:      or(rec.Name, PlaceholderName),
		Title:     or(rec.Title, PlaceholderTitle),
		Email:     or(rec.Email, PlaceholderEmail),
		Phone:     or(rec.Phone, PlaceholderPhone),
		Location:  or(rec.Location, PlaceholderLocation),
		Skills:    nonBlank(rec.Skills),
		Languages: nonBlank(rec.Languages),
	}

	for _, exp := range rec.Experience {
		v.Experience = append(v.Experience, ExperienceView{
			Title:            or(exp.Title, PlaceholderJobTitle),
			Company:          or(exp.Company, PlaceholderCompany),
			Year:             strings.TrimSpace(exp.Year),
			Responsibilities: strings.TrimSpace(exp.Responsibilities),
			Points:           nonBlank(exp.Points),
		})
	}
	for _, edu := range rec.Education {
		v.Education = append(v.Education, EducationView{
			Degree:      or(edu.Degree, PlaceholderDegree),
			Institution: or(edu.Institution, PlaceholderInstitution),
			Year:        strings.TrimSpace(edu.Year),
		})
	}
	for _, cert := range rec.Certifications {
		v.Certifications = append(v.Certifications, CertificationView{
			Name: or(cert.Name, PlaceholderCertification),
			Org:  strings.TrimSpace(cert.Org),
		})
	}
	return v
}

// Contact is the one-line contact summary.
func (v View) Contact() string {
	return v.Email + " | " + v.Phone + " | " + v.Location
}

// CompanyLine is "Company | Year", or just the company when no year is known.
func (e ExperienceView) CompanyLine() string {
	if e.Year == "" {
		return e.Company
	}
	return e.Company + " | " + e.Year
}

func (e EducationView) InstitutionLine() string {
	if e.Year == "" {
		return e.Institution
	}
	return e.Institution + " | " + e.Year
}

func (c CertificationView) String() string {
	if c.Org == "" {
		return c.Name
	}
	return c.Name + " - " + c.Org
}

func or(value, placeholder string) string {
	if s := strings.TrimSpace(value); s != "" {
		return s
	}
	return placeholder
}

func nonBlank(in []string) []string {
	out := []string{}
	for _, s := range in {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
