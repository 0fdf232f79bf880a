package server

import (
	"context"
	"fmt"
	"net/http"

	"github.com/jrsteele09/speet-admin/interests"
)

// InterestsPageData is the model of the interests page
type InterestsPageData struct {
	Categories []interests.Category
	Groups     []interests.Group
}

func interestInput(r *http.Request) interests.InterestInput {
	return interests.InterestInput{
		Name:       r.FormValue("name"),
		Color:      r.FormValue("color"),
		CategoryID: r.FormValue("categoryId"),
	}
}

// AdminCategoriesListHandler lists one page of interest categories
func (s *Server) AdminCategoriesListHandler() http.HandlerFunc {
	return s.adminPage(func(w http.ResponseWriter, r *http.Request, a adminRequest) {
		page, err := interests.NewService(a.api, a.cache).ListCategories(r.Context(), s.pageParams(r))
		s.renderAdminPage(w, r, a, "categories", "Interest categories", "admin_categories_content.html", page, err)
	})
}

func (s *Server) AdminCategoryCreateHandler() http.HandlerFunc {
	return s.adminAction(RouteAdminCategories, func(ctx context.Context, r *http.Request, a adminRequest) (string, error) {
		category, err := interests.NewService(a.api, a.cache).CreateCategory(ctx, r.FormValue("name"))
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("Category %q created", category.Name), nil
	})
}

func (s *Server) AdminCategoryUpdateHandler() http.HandlerFunc {
	return s.adminAction(RouteAdminCategories, func(ctx context.Context, r *http.Request, a adminRequest) (string, error) {
		if _, err := interests.NewService(a.api, a.cache).UpdateCategory(ctx, r.PathValue("id"), r.FormValue("name")); err != nil {
			return "", err
		}
		return "Category updated", nil
	})
}

func (s *Server) AdminCategoryDeleteHandler() http.HandlerFunc {
	return s.adminAction(RouteAdminCategories, func(ctx context.Context, r *http.Request, a adminRequest) (string, error) {
		if err := interests.NewService(a.api, a.cache).DeleteCategory(ctx, r.PathValue("id")); err != nil {
			return "", err
		}
		return "Category deleted", nil
	})
}

// AdminInterestsListHandler shows every interest grouped under its category
func (s *Server) AdminInterestsListHandler() http.HandlerFunc {
	return s.adminPage(func(w http.ResponseWriter, r *http.Request, a adminRequest) {
		service := interests.NewService(a.api, a.cache)
		var data InterestsPageData
		categories, err := service.AllCategories(r.Context())
		if err == nil {
			var list []interests.Interest
			if list, err = service.ListInterests(r.Context()); err == nil {
				data.Categories = categories
				data.Groups = interests.GroupByCategory(categories, list)
			}
		}
		s.renderAdminPage(w, r, a, "interests", "Interests", "admin_interests_content.html", data, err)
	})
}

func (s *Server) AdminInterestCreateHandler() http.HandlerFunc {
	return s.adminAction(RouteAdminInterests, func(ctx context.Context, r *http.Request, a adminRequest) (string, error) {
		if _, err := interests.NewService(a.api, a.cache).CreateInterest(ctx, interestInput(r)); err != nil {
			return "", err
		}
		return "Interest created", nil
	})
}

func (s *Server) AdminInterestUpdateHandler() http.HandlerFunc {
	return s.adminAction(RouteAdminInterests, func(ctx context.Context, r *http.Request, a adminRequest) (string, error) {
		if _, err := interests.NewService(a.api, a.cache).UpdateInterest(ctx, r.PathValue("id"), interestInput(r)); err != nil {
			return "", err
		}
		return "Interest updated", nil
	})
}

func (s *Server) AdminInterestDeleteHandler() http.HandlerFunc {
	return s.adminAction(RouteAdminInterests, func(ctx context.Context, r *http.Request, a adminRequest) (string, error) {
		if err := interests.NewService(a.api, a.cache).DeleteInterest(ctx, r.PathValue("id")); err != nil {
			return "", err
		}
		return "Interest deleted", nil
	})
}
