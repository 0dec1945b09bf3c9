package dto

import (
	"bytes"
	"encoding/json"
)

// AssignRolesRequest conjunto completo de roles del usuario (reemplaza el anterior).
// Acepta {"role_ids":[...]} o el arreglo plano [...].
type AssignRolesRequest struct {
	RoleIDs []int64 `json:"role_ids"`
}

func (r *AssignRolesRequest) UnmarshalJSON(data []byte) error {
	return unmarshalIDList(data, "role_ids", &r.RoleIDs)
}

// AssignMenusRequest conjunto completo de menús del rol. Acepta objeto o arreglo plano.
type AssignMenusRequest struct {
	MenuIDs []int64 `json:"menu_ids"`
}

func (r *AssignMenusRequest) UnmarshalJSON(data []byte) error {
	return unmarshalIDList(data, "menu_ids", &r.MenuIDs)
}

// AssignFeaturesRequest conjunto completo de features del rol. Acepta objeto o arreglo plano.
type AssignFeaturesRequest struct {
	FeatureIDs []int64 `json:"feature_ids"`
}

func (r *AssignFeaturesRequest) UnmarshalJSON(data []byte) error {
	return unmarshalIDList(data, "feature_ids", &r.FeatureIDs)
}

// unmarshalIDList lee [1,2] o {"<key>":[1,2]}; clave ausente o null => lista vacía.
func unmarshalIDList(data []byte, key string, dst *[]int64) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '[' {
		return json.Unmarshal(data, dst)
	}
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(data, &obj); err != nil {
		return err
	}
	*dst = nil
	raw, ok := obj[key]
	if !ok {
		return nil
	}
	return json.Unmarshal(raw, dst)
}
