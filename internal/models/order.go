package models

import "sort"

// Ordered is implemented by every entity carrying a client-supplied display order.
type Ordered interface {
	Order() int
}

func (p Project) Order() int              { return p.DisplayOrder }
func (j JobHistory) Order() int           { return j.DisplayOrder }
func (e EducationHistory) Order() int     { return e.DisplayOrder }
func (s ProfessionalSkill) Order() int    { return s.DisplayOrder }
func (d ProjectDetailContent) Order() int { return d.DisplayOrder }

// SortByDisplayOrder sorts ascending in place. Equal orders keep their server order,
// since the backend does not enforce uniqueness.
func SortByDisplayOrder[T Ordered](items []T) {
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].Order() < items[j].Order()
	})
}

// ForProject returns the blocks belonging to projectID, sorted for display.
func ForProject(items []ProjectDetailContent, projectID string) []ProjectDetailContent {
	out := make([]ProjectDetailContent, 0, len(items))
	for _, item := range items {
		if item.ProjectID == projectID {
			out = append(out, item)
		}
	}
	SortByDisplayOrder(out)
	return out
}

// FirstPersonalInfo returns the first record, or nil when none exist.
func FirstPersonalInfo(list []PersonalInfo) *PersonalInfo {
	if len(list) == 0 {
		return nil
	}
	info := list[0]
	return &info
}
