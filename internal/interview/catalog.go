// Package interview implements the guided resume interview: the question
// catalogs, the answer parsers and the engine that applies answers to a
// resume record one at a time.
package interview

import (
	"fmt"
	"sort"
	"strings"
)

// Field names a top-level key of the resume record
type Field string

const (
	FieldName           Field = "name"
	FieldTitle          Field = "title"
	FieldEmail          Field = "email"
	FieldPhone          Field = "phone"
	FieldLocation       Field = "location"
	FieldSkills         Field = "skills"
	FieldExperience     Field = "experience"
	FieldEducation      Field = "education"
	FieldCertifications Field = "certifications"
	FieldLanguages      Field = "languages"
)

// ParseKind selects how a raw answer becomes a record update.
type ParseKind int

const (
	KindScalar ParseKind = iota
	KindEmail
	KindPhone
	KindStringList
	KindExperienceSentence
	KindEducationSentence
)

func (k ParseKind) String() string {
	switch k {
	case KindScalar:
		return "scalar"
	case KindEmail:
		return "email"
	case KindPhone:
		return "phone"
	case KindStringList:
		return "stringList"
	case KindExperienceSentence:
		return "experienceSentence"
	case KindEducationSentence:
		return "educationSentence"
	default:
		return fmt.Sprintf("ParseKind(%d)", int(k))
	}
}

// NoSlot marks a question that targets a whole field rather than an array slot.
const NoSlot = -1

// Question binds a prompt to a record field.
type Question struct {
	Field  Field
	Slot   int
	Prompt string
	Kind   ParseKind
}

// Ask builds a question targeting a whole field.
func Ask(field Field, kind ParseKind, prompt string) Question {
	return Question{Field: field, Slot: NoSlot, Prompt: prompt, Kind: kind}
}

// AskSlot builds a question targeting one fixed skill slot.
func AskSlot(field Field, slot int, prompt string) Question {
	return Question{Field: field, Slot: slot, Prompt: prompt, Kind: KindScalar}
}

// HasSlot reports whether the question targets an array slot.
func (q Question) HasSlot() bool {
	return q.Slot != NoSlot
}

// ProgressPolicy decides which fields count toward completion.
type ProgressPolicy int

const (
	// ProgressSlots counts the five identity fields plus every fixed skill slot.
	ProgressSlots ProgressPolicy = iota
	// ProgressFields counts every top-level record key with a non-empty value.
	ProgressFields
)

// Catalog is an immutable ordered list of questions. The order is the
// interview's transition table: answering question N leads to N+1.
type Catalog struct {
	name          string
	questions     []Question
	closing       string
	policy        ProgressPolicy
	pinOnComplete bool
	skillSlots    int
}

// CatalogOption configures optional catalog behaviour
type CatalogOption func(*Catalog)

// WithProgressPolicy sets how progress is computed.
func WithProgressPolicy(p ProgressPolicy) CatalogOption {
	return func(c *Catalog) { c.policy = p }
}

// WithFullProgressOnComplete pins progress to 100 once the last answer is in.
func WithFullProgressOnComplete() CatalogOption {
	return func(c *Catalog) { c.pinOnComplete = true }
}

// NewCatalog validates the question bindings and returns a catalog.
func NewCatalog(name, closing string, questions []Question, opts ...CatalogOption) (*Catalog, error) {
	if len(questions) == 0 {
		return nil, fmt.Errorf("%w: catalog %q has no questions", ErrInvalidQuestion, name)
	}

	c := &Catalog{
		name:      name,
		questions: append([]Question(nil), questions...),
		closing:   closing,
		policy:    ProgressSlots,
	}
	for _, opt := range opts {
		opt(c)
	}

	for i, q := range c.questions {
		if err := validateQuestion(q); err != nil {
			return nil, fmt.Errorf("catalog %q question %d: %w", name, i, err)
		}
		if q.HasSlot() && q.Slot+1 > c.skillSlots {
			c.skillSlots = q.Slot + 1
		}
	}
	return c, nil
}

func validateQuestion(q Question) error {
	if strings.TrimSpace(q.Prompt) == "" {
		return fmt.Errorf("%w: empty prompt", ErrInvalidQuestion)
	}

	if q.HasSlot() {
		if q.Field != FieldSkills || q.Slot < 0 {
			return fmt.Errorf("%w: slot %d on field %q", ErrInvalidQuestion, q.Slot, q.Field)
		}
		if q.Kind != KindScalar {
			return fmt.Errorf("%w: slot question must be scalar, got %s", ErrInvalidQuestion, q.Kind)
		}
		return nil
	}

	switch q.Field {
	case FieldName, FieldTitle, FieldEmail, FieldPhone, FieldLocation:
		if q.Kind != KindScalar && q.Kind != KindEmail && q.Kind != KindPhone {
			return fmt.Errorf("%w: %s answer on scalar field %q", ErrInvalidQuestion, q.Kind, q.Field)
		}
	case FieldSkills, FieldCertifications, FieldLanguages:
		if q.Kind != KindStringList {
			return fmt.Errorf("%w: %s answer on list field %q", ErrInvalidQuestion, q.Kind, q.Field)
		}
	case FieldExperience:
		if q.Kind != KindExperienceSentence {
			return fmt.Errorf("%w: %s answer on experience", ErrInvalidQuestion, q.Kind)
		}
	case FieldEducation:
		if q.Kind != KindEducationSentence {
			return fmt.Errorf("%w: %s answer on education", ErrInvalidQuestion, q.Kind)
		}
	default:
		return fmt.Errorf("%w: unknown field %q", ErrInvalidQuestion, q.Field)
	}
	return nil
}

// Name returns the catalog's registry name.
func (c *Catalog) Name() string { return c.name }

// Len returns the number of questions.
func (c *Catalog) Len() int { return len(c.questions) }

// At returns the question at index i. It panics when i is out of range,
// like a slice index.
func (c *Catalog) At(i int) Question { return c.questions[i] }

// Questions returns a copy of the ordered questions.
func (c *Catalog) Questions() []Question {
	return append([]Question(nil), c.questions...)
}

// ClosingMessage is spoken or shown once the last question is answered.
func (c *Catalog) ClosingMessage() string { return c.closing }

// SkillSlots is the number of fixed skill slots the catalog addresses.
func (c *Catalog) SkillSlots() int { return c.skillSlots }

// Built-in catalog names
const (
	CatalogChat  = "chat"
	CatalogVoice = "voice"
)

var registry = map[string]*Catalog{
	CatalogChat:  mustCatalog(newChatCatalog()),
	CatalogVoice: mustCatalog(newVoiceCatalog()),
}

// LookupCatalog returns a built-in catalog by name.
func LookupCatalog(name string) (*Catalog, error) {
	c, ok := registry[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return nil, fmt.Errorf("%w: %q (available: %s)", ErrUnknownCatalog, name, strings.Join(CatalogNames(), ", "))
	}
	return c, nil
}

// CatalogNames lists the built-in catalogs, sorted.
func CatalogNames() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func mustCatalog(c *Catalog, err error) *Catalog {
	if err != nil {
		panic(err)
	}
	return c
}

func newChatCatalog() (*Catalog, error) {
	return NewCatalog(CatalogChat, "Awesome! Resume basics are done.", []Question{
		Ask(FieldName, KindScalar, "What's your full name?"),
		Ask(FieldTitle, KindScalar, "What's your professional title?"),
		Ask(FieldEmail, KindEmail, "Your email address?"),
		Ask(FieldPhone, KindPhone, "Your phone number?"),
		Ask(FieldLocation, KindScalar, "City and state of residence?"),
		AskSlot(FieldSkills, 0, "Skill 1?"),
		AskSlot(FieldSkills, 1, "Skill 2?"),
		AskSlot(FieldSkills, 2, "Skill 3?"),
	}, WithProgressPolicy(ProgressSlots))
}

func newVoiceCatalog() (*Catalog, error) {
	return NewCatalog(CatalogVoice, "Excellent! Your resume is ready. You can now preview and download it.", []Question{
		Ask(FieldName, KindScalar, "Hello! Welcome to the AI Voice Resume Builder. What is your full name?"),
		Ask(FieldTitle, KindScalar, "Great! What is your current job title or the position you are seeking?"),
		Ask(FieldEmail, KindEmail, "What is your email address?"),
		Ask(FieldPhone, KindPhone, "Please provide your phone number."),
		Ask(FieldLocation, KindScalar, "Which city and state do you currently live in?"),
		Ask(FieldSkills, KindStringList, "What are your main skills? Please list them one by one, separated by commas."),
		Ask(FieldExperience, KindExperienceSentence, "Tell me about your work experience. What was your job title, company name, and key responsibilities?"),
		Ask(FieldEducation, KindEducationSentence, "What is your educational background? Please mention your degree and institution."),
		Ask(FieldCertifications, KindStringList, "Do you have any certifications? If yes, please name them."),
		Ask(FieldLanguages, KindStringList, "What languages do you speak?"),
	}, WithProgressPolicy(ProgressFields), WithFullProgressOnComplete())
}
