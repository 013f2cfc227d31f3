package rbac

// Simple default policy. Expand as needed.
var RolePermissions = map[string][]string{
	"parent": {
		"child:create",
		"child:view",
		"assessment:start",
		"assessment:submit",
		"assessment:view",
		"completion:save",
		"completion:view",
		"gate:check",
		"leveltest:take",
		"worksheet:view",
		"worksheet:submit",
	},
	"admin": {
		"*", // everything
	},
}
