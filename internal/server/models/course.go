package models

// Course is the second translatable kind; same shadow-field convention as
// Specialization.
type Course struct {
	RecordID string

	Title   string
	TitleRU string
	TitleEN string

	Description   string
	DescriptionRU string
	DescriptionEN string
}

func (c *Course) Kind() string { return "Course" }

func (c *Course) ID() string { return c.RecordID }

func (c *Course) TranslatableFields() []string {
	return []string{"title", "description"}
}

func (c *Course) Field(name string) (string, bool) {
	switch name {
	case "id":
		return c.RecordID, true
	case "title":
		return c.Title, true
	case "title_ru":
		return c.TitleRU, true
	case "title_en":
		return c.TitleEN, true
	case "description":
		return c.Description, true
	case "description_ru":
		return c.DescriptionRU, true
	case "description_en":
		return c.DescriptionEN, true
	}
	return "", false
}

func (c *Course) SetField(name, value string) bool {
	switch name {
	case "id":
		c.RecordID = value
	case "title":
		c.Title = value
	case "title_ru":
		c.TitleRU = value
	case "title_en":
		c.TitleEN = value
	case "description":
		c.Description = value
	case "description_ru":
		c.DescriptionRU = value
	case "description_en":
		c.DescriptionEN = value
	default:
		return false
	}
	return true
}
