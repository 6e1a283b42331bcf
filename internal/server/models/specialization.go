package models

// Specialization is a translatable catalog record: each base field keeps two
// language-suffixed shadow copies that the pipeline fills in asynchronously.
// The record owns its shadow fields; the pipeline only reads base values and
// writes the shadows it computes.
type Specialization struct {
	RecordID string

	Title   string
	TitleRU string
	TitleEN string

	Description   string
	DescriptionRU string
	DescriptionEN string
}

func (s *Specialization) Kind() string { return "Specialization" }

func (s *Specialization) ID() string { return s.RecordID }

func (s *Specialization) TranslatableFields() []string {
	return []string{"title", "description"}
}

func (s *Specialization) Field(name string) (string, bool) {
	switch name {
	case "id":
		return s.RecordID, true
	case "title":
		return s.Title, true
	case "title_ru":
		return s.TitleRU, true
	case "title_en":
		return s.TitleEN, true
	case "description":
		return s.Description, true
	case "description_ru":
		return s.DescriptionRU, true
	case "description_en":
		return s.DescriptionEN, true
	}
	return "", false
}

func (s *Specialization) SetField(name, value string) bool {
	switch name {
	case "id":
		s.RecordID = value
	case "title":
		s.Title = value
	case "title_ru":
		s.TitleRU = value
	case "title_en":
		s.TitleEN = value
	case "description":
		s.Description = value
	case "description_ru":
		s.DescriptionRU = value
	case "description_en":
		s.DescriptionEN = value
	default:
		return false
	}
	return true
}
