package rbac

const (
	PermQuizPlay    = "quiz:play"
	PermBankReplace = "bank:replace"
)

// Default policy. Admin-key requests hold every permission.
var RolePermissions = map[string][]string{
	"player": {
		PermQuizPlay,
	},
	"admin": {
		"*",
	},
}
