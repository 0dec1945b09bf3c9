package rbac

import (
	"sort"

	"github.com/jhoicas/Accesos-api/internal/domain/entity"
)

// MenuNode nodo del árbol de navegación (máximo dos niveles).
type MenuNode struct {
	ID       int64      `json:"id"`
	Name     string     `json:"name"`
	Path     *string    `json:"path"`
	Icon     *string    `json:"icon"`
	Children []MenuNode `json:"children"`
}

// FilterMenusByTenant conserva los menús globales y los del tenant del usuario.
func FilterMenusByTenant(menus []entity.Menu, userTenantID *int64) []entity.Menu {
	out := make([]entity.Menu, 0, len(menus))
	for _, m := range menus {
		if m.VisibleFor(userTenantID) {
			out = append(out, m)
		}
	}
	return out
}

// BuildMenuTree arma el bosque ordenado a partir de registros planos.
// Se indexa una sola vez por parent_id; cada partición se ordena por (sort_order, id).
// Un menú cuyo padre no está en el conjunto queda huérfano y no aparece en el árbol.
func BuildMenuTree(menus []entity.Menu) []MenuNode {
	var roots []entity.Menu
	children := make(map[int64][]entity.Menu)
	seen := make(map[int64]struct{}, len(menus))
	for _, m := range menus {
		if _, dup := seen[m.ID]; dup {
			continue
		}
		seen[m.ID] = struct{}{}
		if m.ParentID == nil {
			roots = append(roots, m)
			continue
		}
		children[*m.ParentID] = append(children[*m.ParentID], m)
	}

	sortMenus(roots)
	tree := make([]MenuNode, 0, len(roots))
	for _, root := range roots {
		kids := children[root.ID]
		sortMenus(kids)
		node := toNode(root)
		for _, k := range kids {
			node.Children = append(node.Children, toNode(k))
		}
		tree = append(tree, node)
	}
	return tree
}

func sortMenus(ms []entity.Menu) {
	sort.Slice(ms, func(i, j int) bool {
		if ms[i].SortOrder != ms[j].SortOrder {
			return ms[i].SortOrder < ms[j].SortOrder
		}
		return ms[i].ID < ms[j].ID
	})
}

func toNode(m entity.Menu) MenuNode {
	return MenuNode{
		ID:       m.ID,
		Name:     m.Name,
		Path:     m.Path,
		Icon:     m.Icon,
		Children: []MenuNode{},
	}
}
