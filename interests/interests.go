// Package interests manages interest categories and the interests inside them.
package interests

import (
	"bytes"
	"encoding/json"
	"strings"
	"time"

	apperrors "github.com/jrsteele09/speet-admin/internal/errors"
	"github.com/jrsteele09/speet-admin/internal/pagination"
	"github.com/jrsteele09/speet-admin/internal/utils"
)

type Category struct {
	ID        string
	Name      string
	CreatedAt time.Time
	UpdatedAt time.Time
}

type Interest struct {
	ID         string
	Name       string
	Color      string
	CategoryID string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

type CategoryPage struct {
	Categories []Category
	Pagination pagination.Info
}

// Group is a category together with its interests.
type Group struct {
	Category  Category
	Interests []Interest
}

// InterestInput is the editable part of an interest.
type InterestInput struct {
	Name       string
	Color      string
	CategoryID string
}

func (in InterestInput) Validate() error {
	switch {
	case strings.TrimSpace(in.Name) == "":
		return apperrors.NewValidationError("name", "name is required")
	case strings.TrimSpace(in.Color) == "":
		return apperrors.NewValidationError("color", "color is required")
	case strings.TrimSpace(in.CategoryID) == "":
		return apperrors.NewValidationError("categoryId", "category is required")
	}
	return nil
}

func validateCategoryName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", apperrors.NewValidationError("name", "category name is required")
	}
	return name, nil
}

type rawCategory struct {
	ID        string `json:"_id"`
	Name      string `json:"name"`
	CreatedAt string `json:"createdAt"`
	UpdatedAt string `json:"updatedAt"`
}

func (r rawCategory) normalize() Category {
	c := Category{
		ID:        r.ID,
		Name:      r.Name,
		CreatedAt: utils.ParseTime(r.CreatedAt),
		UpdatedAt: utils.ParseTime(r.UpdatedAt),
	}
	if c.UpdatedAt.IsZero() {
		c.UpdatedAt = c.CreatedAt
	}
	return c
}

// rawCategoryList accepts either a paged object or a bare array of categories.
type rawCategoryList struct {
	Categories []rawCategory
	Pagination *pagination.Raw
	Paged      bool
}

func (l *rawCategoryList) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '[' {
		return json.Unmarshal(data, &l.Categories)
	}
	var paged struct {
		Categories []rawCategory    `json:"categories"`
		Pagination *pagination.Raw `json:"pagination"`
	}
	if err := json.Unmarshal(data, &paged); err != nil {
		return err
	}
	l.Categories, l.Pagination, l.Paged = paged.Categories, paged.Pagination, true
	return nil
}

type rawInterest struct {
	ID        string `json:"_id"`
	Name      string `json:"name"`
	Color     string `json:"color"`
	Category  any    `json:"interestCategory"`
	CreatedAt string `json:"createdAt"`
	UpdatedAt string `json:"updatedAt"`
}

// categoryID reads interestCategory, which is an ID or a populated category object.
func (r rawInterest) categoryID() string {
	switch v := r.Category.(type) {
	case string:
		return v
	case map[string]any:
		if id, ok := v["_id"].(string); ok {
			return id
		}
	}
	return ""
}

func (r rawInterest) normalize() Interest {
	i := Interest{
		ID:         r.ID,
		Name:       r.Name,
		Color:      r.Color,
		CategoryID: r.categoryID(),
		CreatedAt:  utils.ParseTime(r.CreatedAt),
		UpdatedAt:  utils.ParseTime(r.UpdatedAt),
	}
	if i.UpdatedAt.IsZero() {
		i.UpdatedAt = i.CreatedAt
	}
	return i
}

// rawInterestList accepts one interest object or an array of them.
type rawInterestList []rawInterest

func (l *rawInterestList) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '{' {
		var one rawInterest
		if err := json.Unmarshal(data, &one); err != nil {
			return err
		}
		*l = rawInterestList{one}
		return nil
	}
	return json.Unmarshal(data, (*[]rawInterest)(l))
}

// GroupByCategory puts every interest under its category, keeping category order.
// Interests whose category is unknown are collected under an "Uncategorized" group at the end.
func GroupByCategory(categories []Category, interests []Interest) []Group {
	groups := make([]Group, len(categories))
	index := make(map[string]int, len(categories))
	for i, c := range categories {
		groups[i] = Group{Category: c, Interests: []Interest{}}
		index[c.ID] = i
	}

	var orphans []Interest
	for _, in := range interests {
		if i, ok := index[in.CategoryID]; ok {
			groups[i].Interests = append(groups[i].Interests, in)
			continue
		}
		orphans = append(orphans, in)
	}
	if len(orphans) > 0 {
		groups = append(groups, Group{Category: Category{Name: "Uncategorized"}, Interests: orphans})
	}
	return groups
}
