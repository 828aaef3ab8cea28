package registry

// SidebarJSON describes the navigation the front end renders: instance
// branding plus resources grouped by their parent section.
type SidebarJSON struct {
	CompanyName string             `json:"companyName"`
	Logo        string             `json:"logo,omitempty"`
	RootPath    string             `json:"rootPath"`
	Groups      []SidebarGroupJSON `json:"groups"`
}

// SidebarGroupJSON is one sidebar section.
type SidebarGroupJSON struct {
	Name      string                `json:"name"`
	Icon      string                `json:"icon"`
	Resources []SidebarResourceJSON `json:"resources"`
}

// SidebarResourceJSON is one navigation entry.
type SidebarResourceJSON struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Href string `json:"href"`
}

// Sidebar groups resources by parent section, in registration order
// with sections ordered by first appearance.
func (r *Registry) Sidebar() SidebarJSON {
	out := SidebarJSON{
		CompanyName: r.branding.CompanyName,
		Logo:        r.branding.Logo,
		RootPath:    r.branding.RootPath,
	}

	index := make(map[string]int)
	for _, res := range r.List() {
		parent := res.Parent()
		i, ok := index[parent.Name]
		if !ok {
			i = len(out.Groups)
			index[parent.Name] = i
			out.Groups = append(out.Groups, SidebarGroupJSON{
				Name: parent.Name,
				Icon: parent.Icon,
			})
		}
		out.Groups[i].Resources = append(out.Groups[i].Resources, SidebarResourceJSON{
			ID:   res.ID(),
			Name: res.Name(),
			Href: res.Href(),
		})
	}
	return out
}
