package tables

import "github.com/AndrewAXue/libmelee/pkg/core"

// maxSubMenu is the last sub-state ID in the menu scene table.
const maxSubMenu = 0x33

// SubMenuFromID validates a raw submenu sub-state ID. Unmapped IDs
// resolve to UnknownSubmenu.
func SubMenuFromID(id uint8) core.SubMenu {
	if id > maxSubMenu {
		return core.UnknownSubmenu
	}
	return core.SubMenu(id)
}
