package auth

const (
	RoleSystemAdmin         = "system_admin"
	RoleOperationalManager  = "operational_manager"
	RoleBranchManager       = "branch_manager"
	RoleReceptionist        = "receptionist"
	RoleStylist             = "stylist"
	RoleInventoryController = "inventory_controller"
	RoleClient              = "client"
)

var Roles = []string{
	RoleSystemAdmin,
	RoleOperationalManager,
	RoleBranchManager,
	RoleReceptionist,
	RoleStylist,
	RoleInventoryController,
	RoleClient,
}

const (
	PermCoreRead         = "core.read"
	PermCoreWrite        = "core.write"
	PermScheduleRead     = "schedule.read"
	PermScheduleWrite    = "schedule.write"
	PermLeaveRead        = "leave.read"
	PermLeaveWrite       = "leave.write"
	PermLeaveApprove     = "leave.approve"
	PermLendingRead      = "lending.read"
	PermLendingWrite     = "lending.write"
	PermLendingApprove   = "lending.approve"
	PermBookingRead      = "booking.read"
	PermBookingWrite     = "booking.write"
	PermBillingRead      = "billing.read"
	PermBillingWrite     = "billing.write"
	PermInventoryRead    = "inventory.read"
	PermInventoryWrite   = "inventory.write"
	PermNotificationRead = "notifications.read"
	PermSystemAdmin      = "admin.system"
)

var DefaultPermissions = []string{
	PermCoreRead,
	PermCoreWrite,
	PermScheduleRead,
	PermScheduleWrite,
	PermLeaveRead,
	PermLeaveWrite,
	PermLeaveApprove,
	PermLendingRead,
	PermLendingWrite,
	PermLendingApprove,
	PermBookingRead,
	PermBookingWrite,
	PermBillingRead,
	PermBillingWrite,
	PermInventoryRead,
	PermInventoryWrite,
	PermNotificationRead,
	PermSystemAdmin,
}

var RolePermissions = map[string][]string{
	RoleSystemAdmin: DefaultPermissions,
	RoleOperationalManager: {
		PermCoreRead,
		PermCoreWrite,
		PermScheduleRead,
		PermScheduleWrite,
		PermLeaveRead,
		PermLeaveApprove,
		PermLendingRead,
		PermLendingWrite,
		PermLendingApprove,
		PermBookingRead,
		PermBillingRead,
		PermInventoryRead,
		PermNotificationRead,
	},
	RoleBranchManager: {
		PermCoreRead,
		PermScheduleRead,
		PermScheduleWrite,
		PermLeaveRead,
		PermLeaveApprove,
		PermLendingRead,
		PermLendingWrite,
		PermBookingRead,
		PermBookingWrite,
		PermBillingRead,
		PermBillingWrite,
		PermInventoryRead,
		PermNotificationRead,
	},
	RoleReceptionist: {
		PermCoreRead,
		PermScheduleRead,
		PermBookingRead,
		PermBookingWrite,
		PermBillingRead,
		PermBillingWrite,
		PermNotificationRead,
	},
	RoleStylist: {
		PermCoreRead,
		PermScheduleRead,
		PermLeaveRead,
		PermLeaveWrite,
		PermBookingRead,
		PermNotificationRead,
	},
	RoleInventoryController: {
		PermCoreRead,
		PermInventoryRead,
		PermInventoryWrite,
		PermNotificationRead,
	},
	RoleClient: {
		PermBookingRead,
		PermBookingWrite,
		PermNotificationRead,
	},
}
