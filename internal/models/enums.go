package models

// SkillLevel represents a professional skill's proficiency
type SkillLevel string

const (
	SkillBeginner     SkillLevel = "BEGINNER"
	SkillIntermediate SkillLevel = "INTERMEDIATE"
	SkillAdvanced     SkillLevel = "ADVANCED"
)

var skillStars = map[SkillLevel]int{
	SkillBeginner:     1,
	SkillIntermediate: 2,
	SkillAdvanced:     3,
}

// Stars is the 1-3 rating shown next to a skill, 0 for unknown levels.
func (l SkillLevel) Stars() int {
	return skillStars[l]
}

// Label is the display name the backend pairs with each level.
func (l SkillLevel) Label() string {
	switch l {
	case SkillBeginner:
		return "Beginner"
	case SkillIntermediate:
		return "Intermediate"
	case SkillAdvanced:
		return "Advanced"
	}
	return string(l)
}

// ProjectContentType represents the kind of media on a project card
type ProjectContentType string

const (
	ProjectImage ProjectContentType = "IMAGE"
	ProjectVideo ProjectContentType = "VIDEO"
)

// DetailContentType represents the kind of a project detail block
type DetailContentType string

const (
	DetailText  DetailContentType = "TEXT"
	DetailImage DetailContentType = "IMAGE"
	DetailVideo DetailContentType = "VIDEO"
)
