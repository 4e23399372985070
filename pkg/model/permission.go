package model

// Permission represents a named capability granted to a user. Permissions
// are an unordered set per user and are checked independently per action.
type Permission struct {
	UserID     string `gorm:"column:user_id;primaryKey"`
	Permission string `gorm:"column:permission;primaryKey"`
}

func (Permission) TableName() string {
	return "permissions"
}

// The capability names gating each resource action.
const (
	PermModelAccess = "model_access"
	PermModelCreate = "model_create"
	PermModelShow   = "model_show"
	PermModelEdit   = "model_edit"
	PermModelUpdate = "model_update"
	PermModelDelete = "model_delete"
)

// AllPermissions lists every known capability name, in grant-file order.
var AllPermissions = []string{
	PermModelAccess,
	PermModelCreate,
	PermModelShow,
	PermModelEdit,
	PermModelUpdate,
	PermModelDelete,
}
