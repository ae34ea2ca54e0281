package role

import (
	"errors"
	"fmt"
)

// ErrUnknownPermission is returned when a permission token falls outside
// the closed enumeration.
var ErrUnknownPermission = errors.New("unknown permission")

// Permission is a single capability token. The set is closed: roles and
// route guards both draw from the constants below, and anything else is
// rejected at validation time instead of being silently ignored.
type Permission string

const (
	PermCreate Permission = "create"
	PermRead   Permission = "read"
	PermUpdate Permission = "update"
	PermDelete Permission = "delete"

	PermOrder        Permission = "order"
	PermManageOrders Permission = "manage_orders"
	PermViewOrders   Permission = "view_orders"

	PermManageMenu       Permission = "manage_menu"
	PermManageCategories Permission = "manage_categories"
	PermManageItems      Permission = "manage_items"

	PermManageStaff     Permission = "manage_staff"
	PermManageCustomers Permission = "manage_customers"
	PermManageAdmins    Permission = "manage_admins"

	PermViewAnalytics   Permission = "view_analytics"
	PermManageSettings  Permission = "manage_settings"
	PermManageInventory Permission = "manage_inventory"

	PermManagePayments Permission = "manage_payments"
	PermViewReports    Permission = "view_reports"
	PermManageTables   Permission = "manage_tables"
)

var allPermissions = map[Permission]bool{
	PermCreate: true, PermRead: true, PermUpdate: true, PermDelete: true,
	PermOrder: true, PermManageOrders: true, PermViewOrders: true,
	PermManageMenu: true, PermManageCategories: true, PermManageItems: true,
	PermManageStaff: true, PermManageCustomers: true, PermManageAdmins: true,
	PermViewAnalytics: true, PermManageSettings: true, PermManageInventory: true,
	PermManagePayments: true, PermViewReports: true, PermManageTables: true,
}

// Valid reports whether p belongs to the closed enumeration.
func (p Permission) Valid() bool {
	return allPermissions[p]
}

// ValidatePermissions rejects any token outside the enumeration.
func ValidatePermissions(perms []Permission) error {
	for _, p := range perms {
		if !p.Valid() {
			return fmt.Errorf("%w %q", ErrUnknownPermission, p)
		}
	}
	return nil
}

// PermissionStrings converts a permission set to plain strings for storage
// and response payloads.
func PermissionStrings(perms []Permission) []string {
	out := make([]string, len(perms))
	for i, p := range perms {
		out[i] = string(p)
	}
	return out
}

// PermissionsFromStrings converts stored strings back to permissions
// without validating them; validation happens on write, not read.
func PermissionsFromStrings(values []string) []Permission {
	out := make([]Permission, len(values))
	for i, v := range values {
		out[i] = Permission(v)
	}
	return out
}
