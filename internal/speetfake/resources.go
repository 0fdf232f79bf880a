package speetfake

import (
	"net/http"
	"slices"
	"strconv"
)

func itoa(n int) string {
	return strconv.Itoa(n)
}

// AddUser stores a raw user record as the API would return it and returns its ID.
func (b *Backend) AddUser(user map[string]any) string {
	b.mu.Lock()
	defer b.mu.Unlock()
	if _, ok := user["_id"]; !ok {
		user["_id"] = b.nextID("user")
	}
	b.users = append(b.users, user)
	return user["_id"].(string)
}

func (b *Backend) listUsers(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	items, current, pages, _ := page(r, b.users)
	total := len(b.users)
	b.mu.Unlock()

	writeJSON(w, http.StatusOK, "Users retrieved", map[string]any{
		"users": items,
		"pagination": map[string]any{
			"totalUsers":  total,
			"currentPage": current,
			"totalPages":  pages,
		},
	})
}

func (b *Backend) getUser(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	_, user := find(b.users, r.PathValue("id"))
	b.mu.Unlock()
	if user == nil {
		writeError(w, http.StatusNotFound, "User not found")
		return
	}
	writeJSON(w, http.StatusOK, "User retrieved", user)
}

// Badges

func (b *Backend) AddBadge(name, tag, info, color string) string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.addBadge(name, tag, info, color)
}

func (b *Backend) addBadge(name, tag, info, color string) string {
	stamp := b.stamp()
	id := b.nextID("badge")
	b.badges = append(b.badges, map[string]any{
		"_id": id, "name": name, "tag": tag, "info": info, "color": color,
		"createdAt": stamp, "updatedAt": stamp,
	})
	return id
}

func (b *Backend) Badges() []map[string]any {
	b.mu.Lock()
	defer b.mu.Unlock()
	return slices.Clone(b.badges)
}

type badgeBody struct {
	Name  string `json:"name"`
	Tag   string `json:"tag"`
	Info  string `json:"info"`
	Color string `json:"color"`
}

func (b *Backend) listBadges(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	items, current, pages, limit := page(r, b.badges)
	total := len(b.badges)
	b.mu.Unlock()

	writeJSON(w, http.StatusOK, "Badges retrieved", map[string]any{
		"badges": items,
		"pagination": map[string]any{
			"totalBadges": total,
			"currentPage": current,
			"totalPages":  pages,
			"pageSize":    limit,
		},
	})
}

func (b *Backend) createBadge(w http.ResponseWriter, r *http.Request) {
	var body badgeBody
	if !decode(w, r, &body) {
		return
	}
	if body.Name == "" {
		writeError(w, http.StatusBadRequest, "Name is required")
		return
	}
	b.mu.Lock()
	id := b.addBadge(body.Name, body.Tag, body.Info, body.Color)
	_, badge := find(b.badges, id)
	b.mu.Unlock()
	writeJSON(w, http.StatusCreated, "Badge created", badge)
}

func (b *Backend) getBadge(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	_, badge := find(b.badges, r.PathValue("id"))
	b.mu.Unlock()
	if badge == nil {
		writeError(w, http.StatusNotFound, "Badge not found")
		return
	}
	writeJSON(w, http.StatusOK, "Badge retrieved", badge)
}

func (b *Backend) updateBadge(w http.ResponseWriter, r *http.Request) {
	var body badgeBody
	if !decode(w, r, &body) {
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	_, badge := find(b.badges, r.PathValue("id"))
	if badge == nil {
		writeError(w, http.StatusNotFound, "Badge not found")
		return
	}
	badge["name"], badge["tag"], badge["info"], badge["color"] = body.Name, body.Tag, body.Info, body.Color
	badge["updatedAt"] = b.stamp()
	writeJSON(w, http.StatusOK, "Badge updated", badge)
}

func (b *Backend) deleteBadge(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	defer b.mu.Unlock()
	i, _ := find(b.badges, r.PathValue("id"))
	if i < 0 {
		writeError(w, http.StatusNotFound, "Badge not found")
		return
	}
	b.badges = slices.Delete(b.badges, i, i+1)
	writeJSON(w, http.StatusOK, "Badge deleted", nil)
}

// Categories and interests

func (b *Backend) AddCategory(name string) string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.addCategory(name)
}

func (b *Backend) addCategory(name string) string {
	stamp := b.stamp()
	id := b.nextID("category")
	b.categories = append(b.categories, map[string]any{
		"_id": id, "name": name, "createdAt": stamp, "updatedAt": stamp, "__v": 0,
	})
	return id
}

func (b *Backend) listCategories(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	bare := b.BareCategories
	all := slices.Clone(b.categories)
	items, current, pages, limit := page(r, b.categories)
	b.mu.Unlock()

	if bare {
		writeJSON(w, http.StatusOK, "Categories retrieved", all)
		return
	}
	writeJSON(w, http.StatusOK, "Categories retrieved", map[string]any{
		"categories": items,
		"pagination": map[string]any{
			"total":       len(all),
			"currentPage": current,
			"totalPages":  pages,
			"limit":       limit,
		},
	})
}

func (b *Backend) createCategory(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Name string `json:"name"`
	}
	if !decode(w, r, &body) {
		return
	}
	if body.Name == "" {
		writeError(w, http.StatusBadRequest, "Category name is required")
		return
	}
	b.mu.Lock()
	id := b.addCategory(body.Name)
	_, category := find(b.categories, id)
	b.mu.Unlock()
	writeJSON(w, http.StatusCreated, "Category created", category)
}

func (b *Backend) updateCategory(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Name string `json:"name"`
	}
	if !decode(w, r, &body) {
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	_, category := find(b.categories, r.PathValue("id"))
	if category == nil {
		writeError(w, http.StatusNotFound, "Category not found")
		return
	}
	category["name"] = body.Name
	category["updatedAt"] = b.stamp()
	writeJSON(w, http.StatusOK, "Category updated", category)
}

func (b *Backend) deleteCategory(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	defer b.mu.Unlock()
	i, _ := find(b.categories, r.PathValue("id"))
	if i < 0 {
		writeError(w, http.StatusNotFound, "Category not found")
		return
	}
	b.categories = slices.Delete(b.categories, i, i+1)
	writeJSON(w, http.StatusOK, "Category deleted", nil)
}

func (b *Backend) AddInterest(name, color, categoryID string) string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.addInterest(name, color, categoryID)
}

func (b *Backend) addInterest(name, color, categoryID string) string {
	stamp := b.stamp()
	id := b.nextID("interest")
	b.interests = append(b.interests, map[string]any{
		"_id": id, "name": name, "color": color, "interestCategory": categoryID,
		"createdAt": stamp, "updatedAt": stamp,
	})
	return id
}

func (b *Backend) listInterests(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	items := slices.Clone(b.interests)
	b.mu.Unlock()
	writeJSON(w, http.StatusOK, "Interests retrieved", items)
}

func (b *Backend) createInterest(w http.ResponseWriter, r *http.Request) {
	var body struct {
		NameAndColor []struct {
			Name  string `json:"name"`
			Color string `json:"color"`
		} `json:"nameAndColor"`
		InterestCategory string `json:"interestCategory"`
	}
	if !decode(w, r, &body) {
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	if _, category := find(b.categories, body.InterestCategory); category == nil {
		writeError(w, http.StatusBadRequest, "Invalid interest category")
		return
	}
	if len(body.NameAndColor) == 0 {
		writeError(w, http.StatusBadRequest, "nameAndColor is required")
		return
	}
	created := make([]map[string]any, 0, len(body.NameAndColor))
	for _, nc := range body.NameAndColor {
		_, interest := find(b.interests, b.addInterest(nc.Name, nc.Color, body.InterestCategory))
		created = append(created, interest)
	}
	writeJSON(w, http.StatusCreated, "Interest created", created)
}

func (b *Backend) updateInterest(w http.ResponseWriter, r *http.Request) {
	var body map[string]any
	if !decode(w, r, &body) {
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	_, interest := find(b.interests, r.PathValue("id"))
	if interest == nil {
		writeError(w, http.StatusNotFound, "Interest not found")
		return
	}
	for _, field := range []string{"name", "color", "interestCategory"} {
		if v, ok := body[field].(string); ok && v != "" {
			interest[field] = v
		}
	}
	interest["updatedAt"] = b.stamp()
	writeJSON(w, http.StatusOK, "Interest updated", interest)
}

func (b *Backend) deleteInterest(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	defer b.mu.Unlock()
	i, _ := find(b.interests, r.PathValue("id"))
	if i < 0 {
		writeError(w, http.StatusNotFound, "Interest not found")
		return
	}
	b.interests = slices.Delete(b.interests, i, i+1)
	writeJSON(w, http.StatusOK, "Interest deleted", nil)
}
