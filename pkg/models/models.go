package models

import "time"

// ResumeRecord is the resume being assembled by an interview.
// Every field has a usable zero value; NewResumeRecord additionally
// guarantees non-nil slices so renderers never see an absent field.
type ResumeRecord struct {
	Name           string            `json:"name"`
	Title          string            `json:"title"`
	Email          string            `json:"email"`
	Phone          string            `json:"phone"`
	Location       string            `json:"location"`
	Skills         []string          `json:"skills"`
	Experience     []ExperienceEntry `json:"experience"`
	Education      []EducationEntry  `json:"education"`
	Certifications []Certification   `json:"certifications"`
	Languages      []string          `json:"languages"`
}

// ExperienceEntry is a single job. Points are bullet items (chat flow),
// Responsibilities is a free-form sentence (voice flow). Either may be empty.
type ExperienceEntry struct {
	Title            string   `json:"title"`
	Company          string   `json:"company"`
	Year             string   `json:"year"`
	Responsibilities string   `json:"responsibilities"`
	Points           []string `json:"points"`
}

// EducationEntry represents a degree or course
type EducationEntry struct {
	Degree      string `json:"degree"`
	Institution string `json:"institution"`
	Year        string `json:"year"`
}

// Certification represents a trade certificate or licence
type Certification struct {
	Name string `json:"name"`
	Org  string `json:"org"`
}

// NewResumeRecord returns a record with every field at its default.
// skillSlots pre-allocates that many empty skill slots.
func NewResumeRecord(skillSlots int) ResumeRecord {
	if skillSlots < 0 {
		skillSlots = 0
	}
	return ResumeRecord{
		Skills:         make([]string, skillSlots),
		Experience:     []ExperienceEntry{},
		Education:      []EducationEntry{},
		Certifications: []Certification{},
		Languages:      []string{},
	}
}

// Clone returns a deep copy of the record.
func (r ResumeRecord) Clone() ResumeRecord {
	out := r
	out.Skills = cloneStrings(r.Skills)
	out.Languages = cloneStrings(r.Languages)

	out.Experience = make([]ExperienceEntry, len(r.Experience))
	for i, exp := range r.Experience {
		exp.Points = cloneStrings(exp.Points)
		out.Experience[i] = exp
	}

	out.Education = append([]EducationEntry{}, r.Education...)
	out.Certifications = append([]Certification{}, r.Certifications...)
	return out
}

// Normalize replaces nil slices with empty ones. Records decoded from
// JSON or loaded from the archive go through this before use.
func (r ResumeRecord) Normalize() ResumeRecord {
	if r.Skills == nil {
		r.Skills = []string{}
	}
	if r.Experience == nil {
		r.Experience = []ExperienceEntry{}
	}
	if r.Education == nil {
		r.Education = []EducationEntry{}
	}
	if r.Certifications == nil {
		r.Certifications = []Certification{}
	}
	if r.Languages == nil {
		r.Languages = []string{}
	}
	for i := range r.Experience {
		if r.Experience[i].Points == nil {
			r.Experience[i].Points = []string{}
		}
	}
	return r
}

// FilledSkills returns the non-blank skills in order.
func (r ResumeRecord) FilledSkills() []string {
	out := []string{}
	for _, s := range r.Skills {
		if s != "" {
			out = append(out, s)
		}
	}
	return out
}

func cloneStrings(in []string) []string {
	if in == nil {
		return []string{}
	}
	out := make([]string, len(in))
	copy(out, in)
	return out
}

// Speaker identifies who produced a transcript line
type Speaker string

const (
	SpeakerAI   Speaker = "ai"
	SpeakerUser Speaker = "user"
)

// TranscriptEntry is one line of the interview conversation
type TranscriptEntry struct {
	Speaker Speaker `json:"speaker"`
	Text    string  `json:"text"`
}

// Session is an archived interview
type Session struct {
	ID          string            `json:"id"`
	Catalog     string            `json:"catalog"`
	Record      ResumeRecord      `json:"record"`
	Transcript  []TranscriptEntry `json:"transcript"`
	Progress    int               `json:"progress"`
	Complete    bool              `json:"complete"`
	CreatedAt   time.Time         `json:"created_at"`
	CompletedAt *time.Time        `json:"completed_at"` // nil while unfinished
}

// Export is a document written from an archived session
type Export struct {
	ID        int       `json:"id"`
	SessionID string    `json:"session_id"`
	Format    string    `json:"format"`
	FilePath  string    `json:"file_path"`
	CreatedAt time.Time `json:"created_at"`
}
